package dto

// CreateAssignmentRequest body for POST /api/assignments.
type CreateAssignmentRequest struct {
	AssetID            string `json:"assetId" validate:"required"`
	AssignedToUserID   string `json:"assignedToUserId" validate:"required"`
	AssignmentDate     string `json:"assignmentDate" validate:"required,datetime=2006-01-02"`
	BaseOfAssignmentID string `json:"baseOfAssignmentId" validate:"required"`
	Purpose            string `json:"purpose,omitempty"`
	ExpectedReturnDate string `json:"expectedReturnDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

// ReturnAssignmentRequest body for PUT /api/assignments/:id/return.
// ReturnDate defaults to today when omitted.
type ReturnAssignmentRequest struct {
	ReturnDate string `json:"returnDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

// AssignmentListItem listing item for GET /api/assignments.
type AssignmentListItem struct {
	AssignmentID       string `json:"assignment_id"`
	AssignmentDate     string `json:"assignment_date"`
	AssignedTo         string `json:"assigned_to"`
	BaseName           string `json:"base_name"`
	ModelName          string `json:"model_name"`
	SerialNumber       string `json:"serial_number,omitempty"`
	Purpose            string `json:"purpose,omitempty"`
	ExpectedReturnDate string `json:"expected_return_date,omitempty"`
	IsActive           bool   `json:"is_active"`
	RecordedBy         string `json:"recorded_by"`
}
