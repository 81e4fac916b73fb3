package repository

import "github.com/seshu362/kristalball-backend/internal/domain/entity"

// EquipmentTypeRepository is the persistence port for EquipmentType (DIP).
type EquipmentTypeRepository interface {
	Create(et *entity.EquipmentType) error
	GetByID(id string) (*entity.EquipmentType, error)
	List(limit, offset int) ([]*entity.EquipmentType, error)
	Exists(id string) (bool, error)
}
