package entity

import "time"

// Transfer statuses. Pending is the only non-terminal state.
const (
	TransferStatusPending   = "Pending"
	TransferStatusCompleted = "Completed"
	TransferStatusCancelled = "Cancelled"
)

// Transfer moves a quantity of an equipment type between two bases.
// Stock moves only while status is Completed.
type Transfer struct {
	ID                string
	EquipmentTypeID   string
	Quantity          int64
	SourceBaseID      string
	DestinationBaseID string
	TransferDate      time.Time
	Reason            string
	Status            string // Pending, Completed, Cancelled
	InitiatedBy       string // UserID
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// ValidTransferStatus reports whether s is a known status value.
func ValidTransferStatus(s string) bool {
	switch s {
	case TransferStatusPending, TransferStatusCompleted, TransferStatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo enforces the one-way state machine:
// Pending -> Completed or Pending -> Cancelled; both branches terminal.
func (t *Transfer) CanTransitionTo(newStatus string) bool {
	if t.Status != TransferStatusPending {
		return false
	}
	return newStatus == TransferStatusCompleted || newStatus == TransferStatusCancelled
}
