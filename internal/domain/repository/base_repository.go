package repository

import "github.com/seshu362/kristalball-backend/internal/domain/entity"

// BaseRepository is the persistence port for Base (DIP).
type BaseRepository interface {
	Create(base *entity.Base) error
	GetByID(id string) (*entity.Base, error)
	List(limit, offset int) ([]*entity.Base, error)
	// Exists is the cheap reference check the ledger use case runs before
	// aggregating with a base filter.
	Exists(id string) (bool, error)
}
