package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/seshu362/kristalball-backend/internal/domain"
	"github.com/seshu362/kristalball-backend/internal/domain/entity"
	"github.com/seshu362/kristalball-backend/internal/domain/repository"
)

var _ repository.EquipmentTypeRepository = (*EquipmentTypeRepo)(nil)

// EquipmentTypeRepo implements EquipmentTypeRepository over PostgreSQL.
type EquipmentTypeRepo struct {
	q Querier
}

// NewEquipmentTypeRepository builds the adapter. Pass a pool or tx (Querier).
func NewEquipmentTypeRepository(q Querier) *EquipmentTypeRepo {
	return &EquipmentTypeRepo{q: q}
}

// Create persists an equipment type.
func (r *EquipmentTypeRepo) Create(et *entity.EquipmentType) error {
	query := `
		INSERT INTO equipment_types (id, name, created_at, updated_at)
		VALUES ($1, $2, $3, $4)`
	_, err := r.q.Exec(context.Background(), query, et.ID, et.Name, et.CreatedAt, et.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create equipment type: %w", err)
	}
	return nil
}

// GetByID returns an equipment type, or nil when absent.
func (r *EquipmentTypeRepo) GetByID(id string) (*entity.EquipmentType, error) {
	query := `SELECT id, name, created_at, updated_at FROM equipment_types WHERE id = $1`
	var et entity.EquipmentType
	err := r.q.QueryRow(context.Background(), query, id).Scan(&et.ID, &et.Name, &et.CreatedAt, &et.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get equipment type: %w", err)
	}
	return &et, nil
}

// List returns equipment types ordered by name.
func (r *EquipmentTypeRepo) List(limit, offset int) ([]*entity.EquipmentType, error) {
	query := `
		SELECT id, name, created_at, updated_at
		FROM equipment_types ORDER BY name LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list equipment types: %w", err)
	}
	defer rows.Close()
	var list []*entity.EquipmentType
	for rows.Next() {
		var et entity.EquipmentType
		if err := rows.Scan(&et.ID, &et.Name, &et.CreatedAt, &et.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan equipment type: %w", err)
		}
		list = append(list, &et)
	}
	return list, rows.Err()
}

// Exists reports whether an equipment type id is present.
func (r *EquipmentTypeRepo) Exists(id string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS (SELECT 1 FROM equipment_types WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("equipment type exists: %w", err)
	}
	return exists, nil
}
