package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/seshu362/kristalball-backend/internal/domain/entity"
	"github.com/seshu362/kristalball-backend/internal/domain/repository"
)

var _ repository.PurchaseRepository = (*PurchaseRepo)(nil)

// PurchaseRepo implements PurchaseRepository over PostgreSQL. Purchases are
// append-only; there is no update or delete path.
type PurchaseRepo struct {
	q Querier
}

// NewPurchaseRepository builds the adapter. Pass a pool or tx (Querier).
func NewPurchaseRepository(q Querier) *PurchaseRepo {
	return &PurchaseRepo{q: q}
}

// Create appends a purchase ledger entry.
func (r *PurchaseRepo) Create(p *entity.Purchase) error {
	query := `
		INSERT INTO purchases (
			id, equipment_type_id, quantity, unit_cost, total_cost,
			purchase_date, receiving_base_id, supplier_info,
			purchase_order_number, recorded_by, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.EquipmentTypeID, p.Quantity, p.UnitCost, p.TotalCost,
		p.PurchaseDate, p.ReceivingBaseID, nullIfEmpty(p.SupplierInfo),
		nullIfEmpty(p.PurchaseOrderNumber), p.RecordedBy, p.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create purchase: %w", err)
	}
	return nil
}

// GetByID returns a purchase, or nil when absent.
func (r *PurchaseRepo) GetByID(id string) (*entity.Purchase, error) {
	query := `
		SELECT id, equipment_type_id, quantity, unit_cost, total_cost,
		       purchase_date, receiving_base_id,
		       COALESCE(supplier_info, ''), COALESCE(purchase_order_number, ''),
		       recorded_by, created_at
		FROM purchases WHERE id = $1`
	var p entity.Purchase
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&p.ID, &p.EquipmentTypeID, &p.Quantity, &p.UnitCost, &p.TotalCost,
		&p.PurchaseDate, &p.ReceivingBaseID, &p.SupplierInfo,
		&p.PurchaseOrderNumber, &p.RecordedBy, &p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase: %w", err)
	}
	return &p, nil
}

// ListForLedger returns the raw purchase events for ledger replay.
// Empty baseID / equipmentTypeID leave that dimension unrestricted.
func (r *PurchaseRepo) ListForLedger(baseID, equipmentTypeID string) ([]*entity.Purchase, error) {
	query := `
		SELECT id, equipment_type_id, quantity, unit_cost, total_cost,
		       purchase_date, receiving_base_id,
		       COALESCE(supplier_info, ''), COALESCE(purchase_order_number, ''),
		       recorded_by, created_at
		FROM purchases
		WHERE ($1 = '' OR receiving_base_id = $1)
		  AND ($2 = '' OR equipment_type_id = $2)`
	rows, err := r.q.Query(context.Background(), query, baseID, equipmentTypeID)
	if err != nil {
		return nil, fmt.Errorf("list purchases for ledger: %w", err)
	}
	defer rows.Close()
	var list []*entity.Purchase
	for rows.Next() {
		var p entity.Purchase
		if err := rows.Scan(
			&p.ID, &p.EquipmentTypeID, &p.Quantity, &p.UnitCost, &p.TotalCost,
			&p.PurchaseDate, &p.ReceivingBaseID, &p.SupplierInfo,
			&p.PurchaseOrderNumber, &p.RecordedBy, &p.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan purchase: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// List returns joined rows for the purchase history view, newest first.
func (r *PurchaseRepo) List(baseID, equipmentTypeID string, limit, offset int) ([]repository.PurchaseRow, error) {
	query := `
		SELECT p.id, p.purchase_date, et.name, b.name,
		       p.quantity, p.unit_cost, p.total_cost,
		       COALESCE(p.supplier_info, ''), COALESCE(p.purchase_order_number, ''),
		       u.full_name
		FROM purchases p
		JOIN equipment_types et ON et.id = p.equipment_type_id
		JOIN bases b ON b.id = p.receiving_base_id
		JOIN users u ON u.id = p.recorded_by
		WHERE ($1 = '' OR p.receiving_base_id = $1)
		  AND ($2 = '' OR p.equipment_type_id = $2)
		ORDER BY p.purchase_date DESC, p.id LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(context.Background(), query, baseID, equipmentTypeID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list purchases: %w", err)
	}
	defer rows.Close()
	var list []repository.PurchaseRow
	for rows.Next() {
		var row repository.PurchaseRow
		if err := rows.Scan(
			&row.PurchaseID, &row.PurchaseDate, &row.TypeName, &row.BaseName,
			&row.Quantity, &row.UnitCost, &row.TotalCost,
			&row.SupplierInfo, &row.PurchaseOrderNumber, &row.RecordedBy,
		); err != nil {
			return nil, fmt.Errorf("scan purchase row: %w", err)
		}
		list = append(list, row)
	}
	return list, rows.Err()
}
