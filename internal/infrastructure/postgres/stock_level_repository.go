package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/seshu362/kristalball-backend/internal/domain/entity"
	"github.com/seshu362/kristalball-backend/internal/domain/repository"
)

var _ repository.StockLevelRepository = (*StockLevelRepo)(nil)

// StockLevelRepo implements StockLevelRepository over PostgreSQL. The
// (base_id, equipment_type_id) row is the lock anchor serializing mutations
// on that pair.
type StockLevelRepo struct {
	q Querier
}

// NewStockLevelRepository builds the adapter. Pass a pool or tx (Querier).
func NewStockLevelRepository(q Querier) *StockLevelRepo {
	return &StockLevelRepo{q: q}
}

// Get returns the stock row, or nil when the pair has never moved.
func (r *StockLevelRepo) Get(baseID, equipmentTypeID string) (*entity.StockLevel, error) {
	query := `
		SELECT base_id, equipment_type_id, quantity, updated_at
		FROM stock_levels WHERE base_id = $1 AND equipment_type_id = $2`
	var level entity.StockLevel
	err := r.q.QueryRow(context.Background(), query, baseID, equipmentTypeID).Scan(
		&level.BaseID, &level.EquipmentTypeID, &level.Quantity, &level.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock level: %w", err)
	}
	return &level, nil
}

// GetForUpdate locks the stock row for the pair. A zero row is inserted
// first when none exists, so two concurrent writers on the same pair always
// have a row to contend on.
func (r *StockLevelRepo) GetForUpdate(baseID, equipmentTypeID string) (*entity.StockLevel, error) {
	ctx := context.Background()
	_, err := r.q.Exec(ctx, `
		INSERT INTO stock_levels (base_id, equipment_type_id, quantity, updated_at)
		VALUES ($1, $2, 0, NOW())
		ON CONFLICT (base_id, equipment_type_id) DO NOTHING`,
		baseID, equipmentTypeID)
	if err != nil {
		return nil, fmt.Errorf("seed stock level: %w", err)
	}

	query := `
		SELECT base_id, equipment_type_id, quantity, updated_at
		FROM stock_levels
		WHERE base_id = $1 AND equipment_type_id = $2
		FOR UPDATE`
	var level entity.StockLevel
	err = r.q.QueryRow(ctx, query, baseID, equipmentTypeID).Scan(
		&level.BaseID, &level.EquipmentTypeID, &level.Quantity, &level.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("lock stock level: %w", err)
	}
	return &level, nil
}

// Upsert writes the materialized quantity for the pair.
func (r *StockLevelRepo) Upsert(level *entity.StockLevel) error {
	_, err := r.q.Exec(context.Background(), `
		INSERT INTO stock_levels (base_id, equipment_type_id, quantity, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (base_id, equipment_type_id)
		DO UPDATE SET quantity = EXCLUDED.quantity, updated_at = EXCLUDED.updated_at`,
		level.BaseID, level.EquipmentTypeID, level.Quantity, level.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert stock level: %w", err)
	}
	return nil
}
