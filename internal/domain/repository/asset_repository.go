package repository

import "github.com/seshu362/kristalball-backend/internal/domain/entity"

// AssetRepository is the persistence port for individually tracked assets.
type AssetRepository interface {
	Create(asset *entity.Asset) error
	GetByID(id string) (*entity.Asset, error)
	// GetForUpdate locks the asset row; the assignment use case holds the
	// lock across its active-assignment check and insert.
	GetForUpdate(id string) (*entity.Asset, error)
	List(baseID, equipmentTypeID string, limit, offset int) ([]*entity.Asset, error)
	ListForLedger(baseID, equipmentTypeID string) ([]*entity.Asset, error)
}
