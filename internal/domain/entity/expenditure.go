package entity

import "time"

// Expenditure reasons (must match the CHECK on the expenditures table).
const (
	ExpenditureReasonTraining = "Training"
	ExpenditureReasonCombat   = "Combat Operation"
	ExpenditureReasonDamage   = "Damage"
	ExpenditureReasonOther    = "Other"
)

// Expenditure records stock consumed at a base. Irrevocable once recorded
// (append-only ledger entry).
type Expenditure struct {
	ID               string
	EquipmentTypeID  string
	QuantityExpended int64
	ExpenditureDate  time.Time
	BaseID           string
	Reason           string // see ExpenditureReason* constants
	ReportedBy       string // UserID
	CreatedAt        time.Time
}

// ValidExpenditureReason reports whether r is a known reason value.
func ValidExpenditureReason(r string) bool {
	switch r {
	case ExpenditureReasonTraining, ExpenditureReasonCombat,
		ExpenditureReasonDamage, ExpenditureReasonOther:
		return true
	}
	return false
}
