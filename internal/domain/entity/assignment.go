package entity

import "time"

// Assignment hands an asset to a person. An asset has at most one active
// assignment at a time; returning it closes the record (terminal), and a
// re-assignment creates a new record.
type Assignment struct {
	ID                 string
	AssetID            string
	AssignedToUserID   string
	AssignmentDate     time.Time
	BaseOfAssignmentID string
	Purpose            string
	ExpectedReturnDate *time.Time // nil = open-ended
	ReturnedDate       *time.Time // nil until returned
	IsActive           bool
	RecordedBy         string // UserID
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
