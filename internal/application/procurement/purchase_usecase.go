// Package procurement records purchases and inter-base transfers against
// the ledger, with stock effects applied transactionally.
package procurement

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/seshu362/kristalball-backend/internal/application/auth"
	"github.com/seshu362/kristalball-backend/internal/application/dto"
	"github.com/seshu362/kristalball-backend/internal/application/ports"
	"github.com/seshu362/kristalball-backend/internal/domain"
	"github.com/seshu362/kristalball-backend/internal/domain/entity"
	"github.com/seshu362/kristalball-backend/internal/domain/repository"
)

const dateLayout = "2006-01-02"

// PurchaseUseCase appends purchase ledger entries and bumps the receiving
// base's stock in one transaction.
type PurchaseUseCase struct {
	txRunner      ports.TxRunner
	policy        auth.Policy
	baseRepo      repository.BaseRepository
	equipmentRepo repository.EquipmentTypeRepository
	listRepo      repository.PurchaseRepository
}

// NewPurchaseUseCase builds the use case.
func NewPurchaseUseCase(
	txRunner ports.TxRunner,
	policy auth.Policy,
	baseRepo repository.BaseRepository,
	equipmentRepo repository.EquipmentTypeRepository,
	listRepo repository.PurchaseRepository,
) *PurchaseUseCase {
	return &PurchaseUseCase{
		txRunner:      txRunner,
		policy:        policy,
		baseRepo:      baseRepo,
		equipmentRepo: equipmentRepo,
		listRepo:      listRepo,
	}
}

// Record validates and appends a purchase. The total cost is always
// recomputed server-side; a client-submitted total that disagrees with
// quantity × unitCost is rejected rather than trusted.
func (uc *PurchaseUseCase) Record(ctx context.Context, actorRole, actorID string, in dto.CreatePurchaseRequest) (*entity.Purchase, error) {
	if !uc.policy.Allow(actorRole, auth.ActionCreatePurchase) {
		return nil, domain.ErrPermissionDenied
	}
	if in.Quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}
	if in.UnitCost.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	date, err := time.Parse(dateLayout, in.PurchaseDate)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}

	totalCost := entity.DeriveTotalCost(in.Quantity, in.UnitCost)
	if in.TotalCost != nil && !in.TotalCost.Equal(totalCost) {
		return nil, domain.ErrInvalidInput
	}

	ok, err := uc.baseRepo.Exists(in.ReceivingBaseID)
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

	purchase := &entity.Purchase{
		ID:                  uuid.New().String(),
		EquipmentTypeID:     in.EquipmentTypeID,
		Quantity:            in.Quantity,
		UnitCost:            in.UnitCost,
		TotalCost:           totalCost,
		PurchaseDate:        date,
		ReceivingBaseID:     in.ReceivingBaseID,
		SupplierInfo:        in.SupplierInfo,
		PurchaseOrderNumber: in.PurchaseOrderNumber,
		RecordedBy:          actorID,
		CreatedAt:           time.Now(),
	}

	err = uc.txRunner.Run(ctx, func(tx ports.TxRepos) error {
		level, err := tx.Stock.GetForUpdate(in.ReceivingBaseID, in.EquipmentTypeID)
		if err != nil {
			return err
		}
		if err := tx.Purchases.Create(purchase); err != nil {
			return err
		}
		level.Quantity += in.Quantity
		level.UpdatedAt = purchase.CreatedAt
		return tx.Stock.Upsert(level)
	})
	if err != nil {
		return nil, err
	}
	return purchase, nil
}

// List returns purchase rows for display.
func (uc *PurchaseUseCase) List(baseID, equipmentTypeID string, limit, offset int) ([]dto.PurchaseListItem, error) {
	rows, err := uc.listRepo.List(baseID, equipmentTypeID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.PurchaseListItem, 0, len(rows))
	for _, r := range rows {
		items = append(items, dto.PurchaseListItem{
			PurchaseID:          r.PurchaseID,
			PurchaseDate:        r.PurchaseDate.Format(dateLayout),
			TypeName:            r.TypeName,
			BaseName:            r.BaseName,
			Quantity:            r.Quantity,
			UnitCost:            r.UnitCost,
			TotalCost:           r.TotalCost,
			SupplierInfo:        r.SupplierInfo,
			PurchaseOrderNumber: r.PurchaseOrderNumber,
			RecordedBy:          r.RecordedBy,
		})
	}
	return items, nil
}
