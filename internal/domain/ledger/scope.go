package ledger

import (
	"time"

	"github.com/seshu362/kristalball-backend/internal/domain"
)

// FilterScope is the immutable query scope for every ledger computation:
// optional date range, base and equipment type. Absence of a field means
// unrestricted on that dimension. Constructed per request; never mutated.
type FilterScope struct {
	StartDate       *time.Time
	EndDate         *time.Time
	BaseID          string
	EquipmentTypeID string
}

// Validate rejects a scope whose start date is after its end date.
func (s FilterScope) Validate() error {
	if s.StartDate != nil && s.EndDate != nil && s.StartDate.After(*s.EndDate) {
		return domain.ErrInvalidScope
	}
	return nil
}

// InRange reports whether t falls inside the scope's date window.
// Both endpoints are inclusive.
func (s FilterScope) InRange(t time.Time) bool {
	if s.StartDate != nil && t.Before(*s.StartDate) {
		return false
	}
	if s.EndDate != nil && t.After(*s.EndDate) {
		return false
	}
	return true
}

// BeforeStart reports whether t is strictly before the scope's start date.
// Always false when the scope has no start date (opening balance is then 0
// and the closing balance accumulates from the dawn of the event set).
func (s FilterScope) BeforeStart(t time.Time) bool {
	return s.StartDate != nil && t.Before(*s.StartDate)
}

// MatchesBase reports whether a base id passes the base filter.
func (s FilterScope) MatchesBase(baseID string) bool {
	return s.BaseID == "" || s.BaseID == baseID
}

// MatchesEquipment reports whether an equipment type id passes the filter.
func (s FilterScope) MatchesEquipment(equipmentTypeID string) bool {
	return s.EquipmentTypeID == "" || s.EquipmentTypeID == equipmentTypeID
}
