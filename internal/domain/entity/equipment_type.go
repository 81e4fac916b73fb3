package entity

import "time"

// EquipmentType represents a category of trackable equipment
// (e.g. rifles, vehicles, ammunition). Same lifecycle as Base.
type EquipmentType struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
