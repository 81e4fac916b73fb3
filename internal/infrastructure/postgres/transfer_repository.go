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

var _ repository.TransferRepository = (*TransferRepo)(nil)

// TransferRepo implements TransferRepository over PostgreSQL.
type TransferRepo struct {
	q Querier
}

// NewTransferRepository builds the adapter. Pass a pool or tx (Querier).
func NewTransferRepository(q Querier) *TransferRepo {
	return &TransferRepo{q: q}
}

const transferColumns = `id, equipment_type_id, quantity, source_base_id, destination_base_id,
	transfer_date, COALESCE(reason, ''), status, initiated_by, created_at, updated_at`

// Create persists a transfer event.
func (r *TransferRepo) Create(t *entity.Transfer) error {
	query := `
		INSERT INTO transfers (
			id, equipment_type_id, quantity, source_base_id, destination_base_id,
			transfer_date, reason, status, initiated_by, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		t.ID, t.EquipmentTypeID, t.Quantity, t.SourceBaseID, t.DestinationBaseID,
		t.TransferDate, nullIfEmpty(t.Reason), t.Status, t.InitiatedBy,
		t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create transfer: %w", err)
	}
	return nil
}

// GetByID returns a transfer, or nil when absent.
func (r *TransferRepo) GetByID(id string) (*entity.Transfer, error) {
	return r.get(id, false)
}

// GetForUpdate returns the transfer with its row locked for the status
// transition.
func (r *TransferRepo) GetForUpdate(id string) (*entity.Transfer, error) {
	return r.get(id, true)
}

func (r *TransferRepo) get(id string, forUpdate bool) (*entity.Transfer, error) {
	query := `SELECT ` + transferColumns + ` FROM transfers WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	var t entity.Transfer
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&t.ID, &t.EquipmentTypeID, &t.Quantity, &t.SourceBaseID, &t.DestinationBaseID,
		&t.TransferDate, &t.Reason, &t.Status, &t.InitiatedBy,
		&t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transfer: %w", err)
	}
	return &t, nil
}

// UpdateStatus moves a transfer into a new status.
func (r *TransferRepo) UpdateStatus(id, status string, updatedAt time.Time) error {
	tag, err := r.q.Exec(context.Background(),
		`UPDATE transfers SET status = $2, updated_at = $3 WHERE id = $1`,
		id, status, updatedAt,
	)
	if err != nil {
		return fmt.Errorf("update transfer status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListForLedger returns transfers touching the base as source or destination.
// Empty baseID = all transfers.
func (r *TransferRepo) ListForLedger(baseID, equipmentTypeID string) ([]*entity.Transfer, error) {
	query := `
		SELECT ` + transferColumns + `
		FROM transfers
		WHERE ($1 = '' OR source_base_id = $1 OR destination_base_id = $1)
		  AND ($2 = '' OR equipment_type_id = $2)`
	rows, err := r.q.Query(context.Background(), query, baseID, equipmentTypeID)
	if err != nil {
		return nil, fmt.Errorf("list transfers for ledger: %w", err)
	}
	defer rows.Close()
	var list []*entity.Transfer
	for rows.Next() {
		var t entity.Transfer
		if err := rows.Scan(
			&t.ID, &t.EquipmentTypeID, &t.Quantity, &t.SourceBaseID, &t.DestinationBaseID,
			&t.TransferDate, &t.Reason, &t.Status, &t.InitiatedBy,
			&t.CreatedAt, &t.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan transfer: %w", err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}

// List returns joined rows for the transfer history view, newest first.
// The base filter matches either end of the movement.
func (r *TransferRepo) List(baseID, equipmentTypeID string, limit, offset int) ([]repository.TransferRow, error) {
	query := `
		SELECT t.id, t.transfer_date, et.name, sb.name, db.name,
		       t.quantity, COALESCE(t.reason, ''), t.status, u.full_name
		FROM transfers t
		JOIN equipment_types et ON et.id = t.equipment_type_id
		JOIN bases sb ON sb.id = t.source_base_id
		JOIN bases db ON db.id = t.destination_base_id
		JOIN users u ON u.id = t.initiated_by
		WHERE ($1 = '' OR t.source_base_id = $1 OR t.destination_base_id = $1)
		  AND ($2 = '' OR t.equipment_type_id = $2)
		ORDER BY t.transfer_date DESC, t.id LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(context.Background(), query, baseID, equipmentTypeID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list transfers: %w", err)
	}
	defer rows.Close()
	var list []repository.TransferRow
	for rows.Next() {
		var row repository.TransferRow
		if err := rows.Scan(
			&row.TransferID, &row.TransferDate, &row.TypeName,
			&row.SourceBase, &row.DestinationBase,
			&row.Quantity, &row.Reason, &row.Status, &row.InitiatedBy,
		); err != nil {
			return nil, fmt.Errorf("scan transfer row: %w", err)
		}
		list = append(list, row)
	}
	return list, rows.Err()
}
