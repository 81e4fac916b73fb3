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

var _ repository.AssetRepository = (*AssetRepo)(nil)

// AssetRepo implements AssetRepository over PostgreSQL (pool or tx).
type AssetRepo struct {
	q Querier
}

// NewAssetRepository builds the adapter. Pass a pool or tx (Querier).
func NewAssetRepository(q Querier) *AssetRepo {
	return &AssetRepo{q: q}
}

const assetColumns = `id, equipment_type_id, base_id, model_name, serial_number, status, created_at, updated_at`

// Create persists an asset. Duplicate serial numbers map to ErrDuplicate.
func (r *AssetRepo) Create(asset *entity.Asset) error {
	query := `
		INSERT INTO assets (id, equipment_type_id, base_id, model_name, serial_number, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	serial := (*string)(nil)
	if asset.SerialNumber != "" {
		serial = &asset.SerialNumber
	}
	_, err := r.q.Exec(context.Background(), query,
		asset.ID, asset.EquipmentTypeID, asset.BaseID, asset.ModelName,
		serial, asset.Status, asset.CreatedAt, asset.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create asset: %w", err)
	}
	return nil
}

// GetByID returns an asset, or nil when absent.
func (r *AssetRepo) GetByID(id string) (*entity.Asset, error) {
	return r.get(id, false)
}

// GetForUpdate returns the asset with its row locked (SELECT FOR UPDATE).
func (r *AssetRepo) GetForUpdate(id string) (*entity.Asset, error) {
	return r.get(id, true)
}

func (r *AssetRepo) get(id string, forUpdate bool) (*entity.Asset, error) {
	query := `SELECT ` + assetColumns + ` FROM assets WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	var a entity.Asset
	var serial *string
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&a.ID, &a.EquipmentTypeID, &a.BaseID, &a.ModelName, &serial,
		&a.Status, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get asset: %w", err)
	}
	if serial != nil {
		a.SerialNumber = *serial
	}
	return &a, nil
}

// List returns assets filtered by base and equipment type (empty = all).
func (r *AssetRepo) List(baseID, equipmentTypeID string, limit, offset int) ([]*entity.Asset, error) {
	query := `
		SELECT ` + assetColumns + `
		FROM assets
		WHERE ($1 = '' OR base_id = $1)
		  AND ($2 = '' OR equipment_type_id = $2)
		ORDER BY created_at DESC LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(context.Background(), query, baseID, equipmentTypeID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list assets: %w", err)
	}
	defer rows.Close()
	return scanAssets(rows)
}

// ListForLedger returns the asset snapshot the aggregator resolves
// equipment types through (no pagination).
func (r *AssetRepo) ListForLedger(baseID, equipmentTypeID string) ([]*entity.Asset, error) {
	query := `
		SELECT ` + assetColumns + `
		FROM assets
		WHERE ($1 = '' OR base_id = $1)
		  AND ($2 = '' OR equipment_type_id = $2)`
	rows, err := r.q.Query(context.Background(), query, baseID, equipmentTypeID)
	if err != nil {
		return nil, fmt.Errorf("list assets for ledger: %w", err)
	}
	defer rows.Close()
	return scanAssets(rows)
}

func scanAssets(rows pgx.Rows) ([]*entity.Asset, error) {
	var list []*entity.Asset
	for rows.Next() {
		var a entity.Asset
		var serial *string
		if err := rows.Scan(
			&a.ID, &a.EquipmentTypeID, &a.BaseID, &a.ModelName, &serial,
			&a.Status, &a.CreatedAt, &a.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan asset: %w", err)
		}
		if serial != nil {
			a.SerialNumber = *serial
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}
