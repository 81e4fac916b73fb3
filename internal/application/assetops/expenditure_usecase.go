package assetops

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/seshu362/kristalball-backend/internal/application/auth"
	"github.com/seshu362/kristalball-backend/internal/application/dto"
	"github.com/seshu362/kristalball-backend/internal/application/ports"
	"github.com/seshu362/kristalball-backend/internal/domain"
	"github.com/seshu362/kristalball-backend/internal/domain/entity"
	"github.com/seshu362/kristalball-backend/internal/domain/ledger"
	"github.com/seshu362/kristalball-backend/internal/domain/repository"
)

// ExpenditureUseCase records stock consumption. The sufficiency check
// replays the ledger for the (base, equipment) pair under a stock-row lock,
// so two concurrent expenditures cannot both pass against a stale balance.
type ExpenditureUseCase struct {
	txRunner      ports.TxRunner
	policy        auth.Policy
	baseRepo      repository.BaseRepository
	equipmentRepo repository.EquipmentTypeRepository
	listRepo      repository.ExpenditureRepository
}

// NewExpenditureUseCase builds the use case.
func NewExpenditureUseCase(
	txRunner ports.TxRunner,
	policy auth.Policy,
	baseRepo repository.BaseRepository,
	equipmentRepo repository.EquipmentTypeRepository,
	listRepo repository.ExpenditureRepository,
) *ExpenditureUseCase {
	return &ExpenditureUseCase{
		txRunner:      txRunner,
		policy:        policy,
		baseRepo:      baseRepo,
		equipmentRepo: equipmentRepo,
		listRepo:      listRepo,
	}
}

// Record validates and appends an expenditure event. Fails with
// InvalidQuantity on non-positive quantities and InsufficientStock when the
// quantity exceeds the replayed balance as of the expenditure date. On any
// failure the store is unchanged.
func (uc *ExpenditureUseCase) Record(ctx context.Context, actorRole, actorID string, in dto.CreateExpenditureRequest) (*entity.Expenditure, error) {
	if !uc.policy.Allow(actorRole, auth.ActionCreateExpenditure) {
		return nil, domain.ErrPermissionDenied
	}
	if in.QuantityExpended <= 0 {
		return nil, domain.ErrInvalidQuantity
	}
	if !entity.ValidExpenditureReason(in.Reason) {
		return nil, domain.ErrInvalidInput
	}
	date, err := time.Parse(dateLayout, in.ExpenditureDate)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}

	if err := uc.checkReferences(in.BaseID, in.EquipmentTypeID); err != nil {
		return nil, err
	}

	expenditure := &entity.Expenditure{
		ID:               uuid.New().String(),
		EquipmentTypeID:  in.EquipmentTypeID,
		QuantityExpended: in.QuantityExpended,
		ExpenditureDate:  date,
		BaseID:           in.BaseID,
		Reason:           in.Reason,
		ReportedBy:       actorID,
		CreatedAt:        time.Now(),
	}

	err = uc.txRunner.Run(ctx, func(tx ports.TxRepos) error {
		// The stock row is the serialization point for this (base, equipment)
		// pair: lock it, then replay the ledger inside the same transaction.
		level, err := tx.Stock.GetForUpdate(in.BaseID, in.EquipmentTypeID)
		if err != nil {
			return err
		}

		events, err := loadPairEvents(tx, in.BaseID, in.EquipmentTypeID)
		if err != nil {
			return err
		}
		asOf := date.Add(24*time.Hour - time.Nanosecond)
		available := ledger.StockAsOf(in.BaseID, in.EquipmentTypeID, asOf, events)
		if in.QuantityExpended > available {
			return domain.ErrInsufficientStock
		}

		if err := tx.Expenditures.Create(expenditure); err != nil {
			return err
		}
		level.Quantity -= in.QuantityExpended
		level.UpdatedAt = expenditure.CreatedAt
		return tx.Stock.Upsert(level)
	})
	if err != nil {
		return nil, err
	}
	return expenditure, nil
}

// List returns expenditure rows for display.
func (uc *ExpenditureUseCase) List(baseID, equipmentTypeID string, limit, offset int) ([]dto.ExpenditureListItem, error) {
	rows, err := uc.listRepo.List(baseID, equipmentTypeID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ExpenditureListItem, 0, len(rows))
	for _, r := range rows {
		items = append(items, dto.ExpenditureListItem{
			ExpenditureID:    r.ExpenditureID,
			ExpenditureDate:  r.ExpenditureDate.Format(dateLayout),
			TypeName:         r.TypeName,
			BaseName:         r.BaseName,
			QuantityExpended: r.QuantityExpended,
			Reason:           r.Reason,
			ReportedBy:       r.ReportedBy,
		})
	}
	return items, nil
}

func (uc *ExpenditureUseCase) checkReferences(baseID, equipmentTypeID string) error {
	ok, err := uc.baseRepo.Exists(baseID)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrUnknownReference
	}
	ok, err = uc.equipmentRepo.Exists(equipmentTypeID)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrUnknownReference
	}
	return nil
}

// loadPairEvents pulls the ledger events of one (base, equipment) pair from
// the transaction-bound repositories.
func loadPairEvents(tx ports.TxRepos, baseID, equipmentTypeID string) (ledger.EventSet, error) {
	purchases, err := tx.Purchases.ListForLedger(baseID, equipmentTypeID)
	if err != nil {
		return ledger.EventSet{}, err
	}
	transfers, err := tx.Transfers.ListForLedger(baseID, equipmentTypeID)
	if err != nil {
		return ledger.EventSet{}, err
	}
	expenditures, err := tx.Expenditures.ListForLedger(baseID, equipmentTypeID)
	if err != nil {
		return ledger.EventSet{}, err
	}
	return ledger.EventSet{
		Purchases:    purchases,
		Transfers:    transfers,
		Expenditures: expenditures,
	}, nil
}
