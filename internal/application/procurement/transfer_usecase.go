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
	"github.com/seshu362/kristalball-backend/internal/domain/ledger"
	"github.com/seshu362/kristalball-backend/internal/domain/repository"
)

// TransferUseCase creates transfers and drives their status lifecycle.
// Completing a transfer moves stock on both sides inside one transaction:
// either both base counters change or neither does.
type TransferUseCase struct {
	txRunner      ports.TxRunner
	policy        auth.Policy
	baseRepo      repository.BaseRepository
	equipmentRepo repository.EquipmentTypeRepository
	listRepo      repository.TransferRepository
}

// NewTransferUseCase builds the use case.
func NewTransferUseCase(
	txRunner ports.TxRunner,
	policy auth.Policy,
	baseRepo repository.BaseRepository,
	equipmentRepo repository.EquipmentTypeRepository,
	listRepo repository.TransferRepository,
) *TransferUseCase {
	return &TransferUseCase{
		txRunner:      txRunner,
		policy:        policy,
		baseRepo:      baseRepo,
		equipmentRepo: equipmentRepo,
		listRepo:      listRepo,
	}
}

// Create validates and records a transfer. The default initial status is
// Completed (the common creation flow); Pending transfers carry no stock
// effect until completed via UpdateStatus.
func (uc *TransferUseCase) Create(ctx context.Context, actorRole, actorID string, in dto.CreateTransferRequest) (*entity.Transfer, error) {
	if !uc.policy.Allow(actorRole, auth.ActionCreateTransfer) {
		return nil, domain.ErrPermissionDenied
	}
	if in.Quantity <= 0 || in.SourceBaseID == in.DestinationBaseID {
		return nil, domain.ErrTransferInvalid
	}
	date, err := time.Parse(dateLayout, in.TransferDate)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	status := in.Status
	if status == "" {
		status = entity.TransferStatusCompleted
	}
	if status != entity.TransferStatusPending && status != entity.TransferStatusCompleted {
		return nil, domain.ErrTransferInvalid
	}

	if err := uc.checkReferences(in.SourceBaseID, in.DestinationBaseID, in.EquipmentTypeID); err != nil {
		return nil, err
	}

	now := time.Now()
	transfer := &entity.Transfer{
		ID:                uuid.New().String(),
		EquipmentTypeID:   in.EquipmentTypeID,
		Quantity:          in.Quantity,
		SourceBaseID:      in.SourceBaseID,
		DestinationBaseID: in.DestinationBaseID,
		TransferDate:      date,
		Reason:            in.Reason,
		Status:            status,
		InitiatedBy:       actorID,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	err = uc.txRunner.Run(ctx, func(tx ports.TxRepos) error {
		if transfer.Status == entity.TransferStatusCompleted {
			if err := uc.applyStockMove(tx, transfer); err != nil {
				return err
			}
		}
		return tx.Transfers.Create(transfer)
	})
	if err != nil {
		return nil, err
	}
	return transfer, nil
}

// UpdateStatus finalizes a pending transfer: Pending -> Completed applies
// the stock movement, Pending -> Cancelled leaves stock untouched. Both
// target states are terminal; any other transition is TransferInvalid.
func (uc *TransferUseCase) UpdateStatus(ctx context.Context, actorRole, transferID, newStatus string) (*entity.Transfer, error) {
	if !uc.policy.Allow(actorRole, auth.ActionTransferStatus) {
		return nil, domain.ErrPermissionDenied
	}
	if !entity.ValidTransferStatus(newStatus) {
		return nil, domain.ErrTransferInvalid
	}

	var updated *entity.Transfer
	err := uc.txRunner.Run(ctx, func(tx ports.TxRepos) error {
		transfer, err := tx.Transfers.GetForUpdate(transferID)
		if err != nil {
			return err
		}
		if transfer == nil {
			return domain.ErrNotFound
		}
		if !transfer.CanTransitionTo(newStatus) {
			return domain.ErrTransferInvalid
		}
		if newStatus == entity.TransferStatusCompleted {
			if err := uc.applyStockMove(tx, transfer); err != nil {
				return err
			}
		}
		now := time.Now()
		if err := tx.Transfers.UpdateStatus(transferID, newStatus, now); err != nil {
			return err
		}
		transfer.Status = newStatus
		transfer.UpdatedAt = now
		updated = transfer
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// List returns transfer rows for display.
func (uc *TransferUseCase) List(baseID, equipmentTypeID string, limit, offset int) ([]dto.TransferListItem, error) {
	rows, err := uc.listRepo.List(baseID, equipmentTypeID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.TransferListItem, 0, len(rows))
	for _, r := range rows {
		items = append(items, dto.TransferListItem{
			TransferID:      r.TransferID,
			TransferDate:    r.TransferDate.Format(dateLayout),
			TypeName:        r.TypeName,
			SourceBase:      r.SourceBase,
			DestinationBase: r.DestinationBase,
			Quantity:        r.Quantity,
			Reason:          r.Reason,
			Status:          r.Status,
			InitiatedBy:     r.InitiatedBy,
		})
	}
	return items, nil
}

// applyStockMove locks both stock rows in base-id order (stable order avoids
// deadlock between opposing transfers), verifies the source can cover the
// quantity by replaying its ledger, and moves the quantity.
func (uc *TransferUseCase) applyStockMove(tx ports.TxRepos, transfer *entity.Transfer) error {
	first, second := transfer.SourceBaseID, transfer.DestinationBaseID
	if second < first {
		first, second = second, first
	}
	levels := make(map[string]*entity.StockLevel, 2)
	for _, baseID := range []string{first, second} {
		level, err := tx.Stock.GetForUpdate(baseID, transfer.EquipmentTypeID)
		if err != nil {
			return err
		}
		levels[baseID] = level
	}

	events, err := loadPairEvents(tx, transfer.SourceBaseID, transfer.EquipmentTypeID)
	if err != nil {
		return err
	}
	asOf := transfer.TransferDate.Add(24*time.Hour - time.Nanosecond)
	available := ledger.StockAsOf(transfer.SourceBaseID, transfer.EquipmentTypeID, asOf, events)
	if transfer.Quantity > available {
		return domain.ErrInsufficientStock
	}

	now := time.Now()
	source := levels[transfer.SourceBaseID]
	dest := levels[transfer.DestinationBaseID]
	source.Quantity -= transfer.Quantity
	dest.Quantity += transfer.Quantity
	source.UpdatedAt = now
	dest.UpdatedAt = now
	if err := tx.Stock.Upsert(source); err != nil {
		return err
	}
	return tx.Stock.Upsert(dest)
}

func (uc *TransferUseCase) checkReferences(sourceBaseID, destinationBaseID, equipmentTypeID string) error {
	for _, baseID := range []string{sourceBaseID, destinationBaseID} {
		ok, err := uc.baseRepo.Exists(baseID)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrUnknownReference
		}
	}
	ok, err := uc.equipmentRepo.Exists(equipmentTypeID)
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
