package entity

import "time"

// StockLevel is the materialized quantity of an equipment type at a base.
// It is the row-lock anchor for serialized mutations; the event ledger stays
// authoritative and validation replays it inside the transaction.
type StockLevel struct {
	BaseID          string
	EquipmentTypeID string
	Quantity        int64
	UpdatedAt       time.Time
}
