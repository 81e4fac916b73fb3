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

var _ repository.BaseRepository = (*BaseRepo)(nil)

// BaseRepo implements BaseRepository over PostgreSQL (pool or tx).
type BaseRepo struct {
	q Querier
}

// NewBaseRepository builds the adapter. Pass a pool or tx (Querier).
func NewBaseRepository(q Querier) *BaseRepo {
	return &BaseRepo{q: q}
}

// Create persists a base.
func (r *BaseRepo) Create(base *entity.Base) error {
	query := `
		INSERT INTO bases (id, name, created_at, updated_at)
		VALUES ($1, $2, $3, $4)`
	_, err := r.q.Exec(context.Background(), query, base.ID, base.Name, base.CreatedAt, base.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create base: %w", err)
	}
	return nil
}

// GetByID returns a base, or nil when absent.
func (r *BaseRepo) GetByID(id string) (*entity.Base, error) {
	query := `SELECT id, name, created_at, updated_at FROM bases WHERE id = $1`
	var b entity.Base
	err := r.q.QueryRow(context.Background(), query, id).Scan(&b.ID, &b.Name, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get base: %w", err)
	}
	return &b, nil
}

// List returns bases ordered by name.
func (r *BaseRepo) List(limit, offset int) ([]*entity.Base, error) {
	query := `
		SELECT id, name, created_at, updated_at
		FROM bases ORDER BY name LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list bases: %w", err)
	}
	defer rows.Close()
	var list []*entity.Base
	for rows.Next() {
		var b entity.Base
		if err := rows.Scan(&b.ID, &b.Name, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan base: %w", err)
		}
		list = append(list, &b)
	}
	return list, rows.Err()
}

// Exists reports whether a base id is present.
func (r *BaseRepo) Exists(id string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS (SELECT 1 FROM bases WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("base exists: %w", err)
	}
	return exists, nil
}
