package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/seshu362/kristalball-backend/internal/domain"
	"github.com/seshu362/kristalball-backend/internal/domain/entity"
	"github.com/seshu362/kristalball-backend/internal/domain/repository"
)

var _ repository.AssignmentRepository = (*AssignmentRepo)(nil)

// AssignmentRepo implements AssignmentRepository over PostgreSQL.
type AssignmentRepo struct {
	q Querier
}

// NewAssignmentRepository builds the adapter. Pass a pool or tx (Querier).
func NewAssignmentRepository(q Querier) *AssignmentRepo {
	return &AssignmentRepo{q: q}
}

const assignmentColumns = `id, asset_id, assigned_to_user_id, assignment_date,
	base_of_assignment_id, COALESCE(purpose, ''), expected_return_date,
	returned_date, is_active, recorded_by, created_at, updated_at`

// Create persists an assignment.
func (r *AssignmentRepo) Create(a *entity.Assignment) error {
	query := `
		INSERT INTO assignments (
			id, asset_id, assigned_to_user_id, assignment_date,
			base_of_assignment_id, purpose, expected_return_date,
			returned_date, is_active, recorded_by, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		a.ID, a.AssetID, a.AssignedToUserID, a.AssignmentDate,
		a.BaseOfAssignmentID, nullIfEmpty(a.Purpose), a.ExpectedReturnDate,
		a.ReturnedDate, a.IsActive, a.RecordedBy, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create assignment: %w", err)
	}
	return nil
}

// GetByID returns an assignment, or nil when absent.
func (r *AssignmentRepo) GetByID(id string) (*entity.Assignment, error) {
	return r.getWhere(`id = $1`, id, false)
}

// GetForUpdate returns the assignment with its row locked for the return
// transition.
func (r *AssignmentRepo) GetForUpdate(id string) (*entity.Assignment, error) {
	return r.getWhere(`id = $1`, id, true)
}

// GetActiveByAsset returns the active assignment for an asset, or nil.
func (r *AssignmentRepo) GetActiveByAsset(assetID string) (*entity.Assignment, error) {
	return r.getWhere(`asset_id = $1 AND is_active`, assetID, false)
}

func (r *AssignmentRepo) getWhere(where string, arg any, forUpdate bool) (*entity.Assignment, error) {
	query := `SELECT ` + assignmentColumns + ` FROM assignments WHERE ` + where
	if forUpdate {
		query += ` FOR UPDATE`
	}
	var a entity.Assignment
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&a.ID, &a.AssetID, &a.AssignedToUserID, &a.AssignmentDate,
		&a.BaseOfAssignmentID, &a.Purpose, &a.ExpectedReturnDate,
		&a.ReturnedDate, &a.IsActive, &a.RecordedBy, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get assignment: %w", err)
	}
	return &a, nil
}

// SetReturned closes an assignment: records the return date and clears the
// active flag.
func (r *AssignmentRepo) SetReturned(id string, returnedDate time.Time) error {
	tag, err := r.q.Exec(context.Background(), `
		UPDATE assignments
		SET returned_date = $2, is_active = FALSE, updated_at = $2
		WHERE id = $1`, id, returnedDate)
	if err != nil {
		return fmt.Errorf("return assignment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListForLedger returns assignment events joined through their asset so the
// aggregation core can resolve base and equipment type.
func (r *AssignmentRepo) ListForLedger(baseID, equipmentTypeID string) ([]*entity.Assignment, error) {
	query := `
		SELECT a.id, a.asset_id, a.assigned_to_user_id, a.assignment_date,
		       a.base_of_assignment_id, COALESCE(a.purpose, ''), a.expected_return_date,
		       a.returned_date, a.is_active, a.recorded_by, a.created_at, a.updated_at
		FROM assignments a
		JOIN assets s ON s.id = a.asset_id
		WHERE ($1 = '' OR a.base_of_assignment_id = $1)
		  AND ($2 = '' OR s.equipment_type_id = $2)`
	rows, err := r.q.Query(context.Background(), query, baseID, equipmentTypeID)
	if err != nil {
		return nil, fmt.Errorf("list assignments for ledger: %w", err)
	}
	defer rows.Close()
	var list []*entity.Assignment
	for rows.Next() {
		var a entity.Assignment
		if err := rows.Scan(
			&a.ID, &a.AssetID, &a.AssignedToUserID, &a.AssignmentDate,
			&a.BaseOfAssignmentID, &a.Purpose, &a.ExpectedReturnDate,
			&a.ReturnedDate, &a.IsActive, &a.RecordedBy, &a.CreatedAt, &a.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan assignment: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}

// List returns joined rows for the assignment history view, newest first.
func (r *AssignmentRepo) List(baseID string, activeOnly bool, limit, offset int) ([]repository.AssignmentRow, error) {
	query := `
		SELECT a.id, a.assignment_date, au.full_name, b.name,
		       s.model_name, COALESCE(s.serial_number, ''),
		       COALESCE(a.purpose, ''), a.expected_return_date, a.is_active,
		       ru.full_name
		FROM assignments a
		JOIN assets s ON s.id = a.asset_id
		JOIN bases b ON b.id = a.base_of_assignment_id
		JOIN users au ON au.id = a.assigned_to_user_id
		JOIN users ru ON ru.id = a.recorded_by
		WHERE ($1 = '' OR a.base_of_assignment_id = $1)
		  AND (NOT $2 OR a.is_active)
		ORDER BY a.assignment_date DESC, a.id LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(context.Background(), query, baseID, activeOnly, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list assignments: %w", err)
	}
	defer rows.Close()
	var list []repository.AssignmentRow
	for rows.Next() {
		var row repository.AssignmentRow
		if err := rows.Scan(
			&row.AssignmentID, &row.AssignmentDate, &row.AssignedTo, &row.BaseName,
			&row.ModelName, &row.SerialNumber,
			&row.Purpose, &row.ExpectedReturnDate, &row.IsActive,
			&row.RecordedBy,
		); err != nil {
			return nil, fmt.Errorf("scan assignment row: %w", err)
		}
		list = append(list, row)
	}
	return list, rows.Err()
}
