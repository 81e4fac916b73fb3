package repository

import (
	"time"

	"github.com/seshu362/kristalball-backend/internal/domain/entity"
)

// AssignmentRow is the raw joined row for assignment listings.
type AssignmentRow struct {
	AssignmentID       string
	AssignmentDate     time.Time
	AssignedTo         string // full name of the assignee
	BaseName           string
	ModelName          string
	SerialNumber       string
	Purpose            string
	ExpectedReturnDate *time.Time
	IsActive           bool
	RecordedBy         string
}

// AssignmentRepository is the persistence port for assignment events.
type AssignmentRepository interface {
	Create(a *entity.Assignment) error
	GetByID(id string) (*entity.Assignment, error)
	// GetForUpdate locks the assignment row for the return transition.
	GetForUpdate(id string) (*entity.Assignment, error)
	// GetActiveByAsset returns the active assignment for an asset, or nil.
	// Call with the asset row locked to make check-then-insert safe.
	GetActiveByAsset(assetID string) (*entity.Assignment, error)
	SetReturned(id string, returnedDate time.Time) error
	ListForLedger(baseID, equipmentTypeID string) ([]*entity.Assignment, error)
	List(baseID string, activeOnly bool, limit, offset int) ([]AssignmentRow, error)
}
