package entity

import "time"

// Base represents a military base where equipment is held. Identity is
// immutable once created; every ledger event references a base.
type Base struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
