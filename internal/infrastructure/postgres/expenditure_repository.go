package postgres

import (
	"context"
	"fmt"

	"github.com/seshu362/kristalball-backend/internal/domain/entity"
	"github.com/seshu362/kristalball-backend/internal/domain/repository"
)

var _ repository.ExpenditureRepository = (*ExpenditureRepo)(nil)

// ExpenditureRepo implements ExpenditureRepository over PostgreSQL.
// Expenditures are append-only; there is no update or delete path.
type ExpenditureRepo struct {
	q Querier
}

// NewExpenditureRepository builds the adapter. Pass a pool or tx (Querier).
func NewExpenditureRepository(q Querier) *ExpenditureRepo {
	return &ExpenditureRepo{q: q}
}

// Create appends an expenditure ledger entry.
func (r *ExpenditureRepo) Create(e *entity.Expenditure) error {
	query := `
		INSERT INTO expenditures (
			id, equipment_type_id, quantity_expended, expenditure_date,
			base_id, reason, reported_by, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		e.ID, e.EquipmentTypeID, e.QuantityExpended, e.ExpenditureDate,
		e.BaseID, e.Reason, e.ReportedBy, e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create expenditure: %w", err)
	}
	return nil
}

// ListForLedger returns the raw expenditure events for ledger replay.
func (r *ExpenditureRepo) ListForLedger(baseID, equipmentTypeID string) ([]*entity.Expenditure, error) {
	query := `
		SELECT id, equipment_type_id, quantity_expended, expenditure_date,
		       base_id, reason, reported_by, created_at
		FROM expenditures
		WHERE ($1 = '' OR base_id = $1)
		  AND ($2 = '' OR equipment_type_id = $2)`
	rows, err := r.q.Query(context.Background(), query, baseID, equipmentTypeID)
	if err != nil {
		return nil, fmt.Errorf("list expenditures for ledger: %w", err)
	}
	defer rows.Close()
	var list []*entity.Expenditure
	for rows.Next() {
		var e entity.Expenditure
		if err := rows.Scan(
			&e.ID, &e.EquipmentTypeID, &e.QuantityExpended, &e.ExpenditureDate,
			&e.BaseID, &e.Reason, &e.ReportedBy, &e.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan expenditure: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}

// List returns joined rows for the expenditure history view, newest first.
func (r *ExpenditureRepo) List(baseID, equipmentTypeID string, limit, offset int) ([]repository.ExpenditureRow, error) {
	query := `
		SELECT e.id, e.expenditure_date, et.name, b.name,
		       e.quantity_expended, e.reason, u.full_name
		FROM expenditures e
		JOIN equipment_types et ON et.id = e.equipment_type_id
		JOIN bases b ON b.id = e.base_id
		JOIN users u ON u.id = e.reported_by
		WHERE ($1 = '' OR e.base_id = $1)
		  AND ($2 = '' OR e.equipment_type_id = $2)
		ORDER BY e.expenditure_date DESC, e.id LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(context.Background(), query, baseID, equipmentTypeID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list expenditures: %w", err)
	}
	defer rows.Close()
	var list []repository.ExpenditureRow
	for rows.Next() {
		var row repository.ExpenditureRow
		if err := rows.Scan(
			&row.ExpenditureID, &row.ExpenditureDate, &row.TypeName, &row.BaseName,
			&row.QuantityExpended, &row.Reason, &row.ReportedBy,
		); err != nil {
			return nil, fmt.Errorf("scan expenditure row: %w", err)
		}
		list = append(list, row)
	}
	return list, rows.Err()
}
