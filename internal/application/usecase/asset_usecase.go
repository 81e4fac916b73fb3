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

// AssetUseCase registers and lists individually tracked assets.
type AssetUseCase struct {
	assetRepo     repository.AssetRepository
	baseRepo      repository.BaseRepository
	equipmentRepo repository.EquipmentTypeRepository
	policy        auth.Policy
}

// NewAssetUseCase builds the use case.
func NewAssetUseCase(
	assetRepo repository.AssetRepository,
	baseRepo repository.BaseRepository,
	equipmentRepo repository.EquipmentTypeRepository,
	policy auth.Policy,
) *AssetUseCase {
	return &AssetUseCase{
		assetRepo:     assetRepo,
		baseRepo:      baseRepo,
		equipmentRepo: equipmentRepo,
		policy:        policy,
	}
}

// Create registers an asset at a base. Serial numbers are unique when
// present; duplicates surface as ErrDuplicate.
func (uc *AssetUseCase) Create(actorRole string, in dto.CreateAssetRequest) (*dto.AssetResponse, error) {
	if !uc.policy.Allow(actorRole, auth.ActionCreateAsset) {
		return nil, domain.ErrPermissionDenied
	}
	ok, err := uc.baseRepo.Exists(in.BaseID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrUnknownReference
	}
	ok, err = uc.equipmentRepo.Exists(in.EquipmentTypeID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrUnknownReference
	}

	now := time.Now()
	asset := &entity.Asset{
		ID:              uuid.New().String(),
		EquipmentTypeID: in.EquipmentTypeID,
		BaseID:          in.BaseID,
		ModelName:       in.ModelName,
		SerialNumber:    in.SerialNumber,
		Status:          entity.AssetStatusActive,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := uc.assetRepo.Create(asset); err != nil {
		return nil, err
	}
	return toAssetResponse(asset), nil
}

// List returns assets, optionally filtered by base and equipment type.
func (uc *AssetUseCase) List(baseID, equipmentTypeID string, limit, offset int) ([]dto.AssetResponse, error) {
	assets, err := uc.assetRepo.List(baseID, equipmentTypeID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.AssetResponse, 0, len(assets))
	for _, a := range assets {
		out = append(out, *toAssetResponse(a))
	}
	return out, nil
}

func toAssetResponse(a *entity.Asset) *dto.AssetResponse {
	return &dto.AssetResponse{
		AssetID:         a.ID,
		EquipmentTypeID: a.EquipmentTypeID,
		BaseID:          a.BaseID,
		ModelName:       a.ModelName,
		SerialNumber:    a.SerialNumber,
		Status:          a.Status,
	}
}
