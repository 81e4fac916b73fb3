package repository

import "github.com/seshu362/kristalball-backend/internal/domain/entity"

// StockLevelRepository is the persistence port for the materialized stock
// row per (base, equipment type). The row doubles as the lock anchor that
// serializes mutations on that pair.
type StockLevelRepository interface {
	Get(baseID, equipmentTypeID string) (*entity.StockLevel, error)
	// GetForUpdate locks the row (SELECT ... FOR UPDATE), inserting a zero
	// row first if none exists, so two writers on the same pair serialize.
	GetForUpdate(baseID, equipmentTypeID string) (*entity.StockLevel, error)
	Upsert(level *entity.StockLevel) error
}
