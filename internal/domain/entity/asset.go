package entity

import "time"

// Asset statuses. Assets are never deleted; expended assets stay on record.
const (
	AssetStatusActive   = "active"
	AssetStatusExpended = "expended"
)

// Asset represents an individually tracked piece of equipment.
// BaseID is the current location; transfers relocate it, assignments hand it
// to a person without changing the base.
type Asset struct {
	ID              string
	EquipmentTypeID string
	BaseID          string
	ModelName       string
	SerialNumber    string // optional; unique when present
	Status          string // active, expended
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
