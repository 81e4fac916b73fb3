// Package usecase holds the reference-data use cases (bases, equipment
// types, assets) consumed by the filter dropdowns and the event forms.
package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/seshu362/kristalball-backend/internal/application/auth"
	"github.com/seshu362/kristalball-backend/internal/application/dto"
	"github.com/seshu362/kristalball-backend/internal/domain"
	"github.com/seshu362/kristalball-backend/internal/domain/entity"
	"github.com/seshu362/kristalball-backend/internal/domain/repository"
)

// ReferenceUseCase manages bases and equipment types. Identities are
// immutable once created; there is no update or delete.
type ReferenceUseCase struct {
	baseRepo      repository.BaseRepository
	equipmentRepo repository.EquipmentTypeRepository
	policy        auth.Policy
}

// NewReferenceUseCase builds the use case.
func NewReferenceUseCase(
	baseRepo repository.BaseRepository,
	equipmentRepo repository.EquipmentTypeRepository,
	policy auth.Policy,
) *ReferenceUseCase {
	return &ReferenceUseCase{baseRepo: baseRepo, equipmentRepo: equipmentRepo, policy: policy}
}

// CreateBase registers a new base (administrative action).
func (uc *ReferenceUseCase) CreateBase(actorRole string, in dto.CreateBaseRequest) (*dto.BaseResponse, error) {
	if !uc.policy.Allow(actorRole, auth.ActionCreateReference) {
		return nil, domain.ErrPermissionDenied
	}
	now := time.Now()
	base := &entity.Base{
		ID:        uuid.New().String(),
		Name:      in.Name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.baseRepo.Create(base); err != nil {
		return nil, err
	}
	return &dto.BaseResponse{BaseID: base.ID, BaseName: base.Name}, nil
}

// ListBases returns all bases.
func (uc *ReferenceUseCase) ListBases(limit, offset int) ([]dto.BaseResponse, error) {
	bases, err := uc.baseRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.BaseResponse, 0, len(bases))
	for _, b := range bases {
		out = append(out, dto.BaseResponse{BaseID: b.ID, BaseName: b.Name})
	}
	return out, nil
}

// CreateEquipmentType registers a new equipment type.
func (uc *ReferenceUseCase) CreateEquipmentType(actorRole string, in dto.CreateEquipmentTypeRequest) (*dto.EquipmentTypeResponse, error) {
	if !uc.policy.Allow(actorRole, auth.ActionCreateReference) {
		return nil, domain.ErrPermissionDenied
	}
	now := time.Now()
	et := &entity.EquipmentType{
		ID:        uuid.New().String(),
		Name:      in.Name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.equipmentRepo.Create(et); err != nil {
		return nil, err
	}
	return &dto.EquipmentTypeResponse{EquipmentTypeID: et.ID, TypeName: et.Name}, nil
}

// ListEquipmentTypes returns all equipment types.
func (uc *ReferenceUseCase) ListEquipmentTypes(limit, offset int) ([]dto.EquipmentTypeResponse, error) {
	types, err := uc.equipmentRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.EquipmentTypeResponse, 0, len(types))
	for _, t := range types {
		out = append(out, dto.EquipmentTypeResponse{EquipmentTypeID: t.ID, TypeName: t.Name})
	}
	return out, nil
}
