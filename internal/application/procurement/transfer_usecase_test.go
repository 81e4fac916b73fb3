package procurement_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seshu362/kristalball-backend/internal/application/auth"
	"github.com/seshu362/kristalball-backend/internal/application/dto"
	"github.com/seshu362/kristalball-backend/internal/application/memstore"
	"github.com/seshu362/kristalball-backend/internal/application/procurement"
	"github.com/seshu362/kristalball-backend/internal/domain"
	"github.com/seshu362/kristalball-backend/internal/domain/entity"
)

func newTransferFixture(sourceStock int64) (*memstore.Store, *procurement.TransferUseCase) {
	store := memstore.New()
	store.AddBase("base-a", "Fort North")
	store.AddBase("base-b", "Fort South")
	store.AddEquipmentType("rifle", "Rifle")

	if sourceStock > 0 {
		date, _ := time.Parse("2006-01-02", "2025-01-01")
		store.Purchases = append(store.Purchases, &entity.Purchase{
			ID: "seed", ReceivingBaseID: "base-a", EquipmentTypeID: "rifle",
			Quantity: sourceStock, PurchaseDate: date,
		})
		store.Repos().Stock.Upsert(&entity.StockLevel{
			BaseID: "base-a", EquipmentTypeID: "rifle", Quantity: sourceStock,
		})
	}

	uc := procurement.NewTransferUseCase(
		&memstore.TxRunner{Store: store},
		auth.NewRolePolicy(),
		store.BaseRepository(),
		store.EquipmentTypeRepository(),
		store.Repos().Transfers,
	)
	return store, uc
}

func transferRequest() dto.CreateTransferRequest {
	return dto.CreateTransferRequest{
		EquipmentTypeID:   "rifle",
		Quantity:          30,
		SourceBaseID:      "base-a",
		DestinationBaseID: "base-b",
		TransferDate:      "2025-03-01",
	}
}

func TestTransferCreate_CompletedMovesStockBothSides(t *testing.T) {
	store, uc := newTransferFixture(100)

	tr, err := uc.Create(context.Background(), entity.RoleLogisticsOfficer, "user-1", transferRequest())
	require.NoError(t, err)

	assert.Equal(t, entity.TransferStatusCompleted, tr.Status, "default status is Completed")
	assert.Equal(t, int64(70), store.StockQuantity("base-a", "rifle"))
	assert.Equal(t, int64(30), store.StockQuantity("base-b", "rifle"))
}

func TestTransferCreate_InsufficientStock_NothingChanges(t *testing.T) {
	store, uc := newTransferFixture(10)

	_, err := uc.Create(context.Background(), entity.RoleAdmin, "user-1", transferRequest())
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.Equal(t, int64(10), store.StockQuantity("base-a", "rifle"), "source untouched")
	assert.Equal(t, int64(0), store.StockQuantity("base-b", "rifle"), "destination untouched")
	assert.Len(t, store.Transfers, 0, "no transfer event recorded")
}

func TestTransferCreate_PendingLeavesStockUntouched(t *testing.T) {
	store, uc := newTransferFixture(100)

	in := transferRequest()
	in.Status = entity.TransferStatusPending
	tr, err := uc.Create(context.Background(), entity.RoleAdmin, "user-1", in)
	require.NoError(t, err)

	assert.Equal(t, entity.TransferStatusPending, tr.Status)
	assert.Equal(t, int64(100), store.StockQuantity("base-a", "rifle"))
	assert.Equal(t, int64(0), store.StockQuantity("base-b", "rifle"))
}

func TestTransferCreate_SameSourceAndDestination(t *testing.T) {
	_, uc := newTransferFixture(100)

	in := transferRequest()
	in.DestinationBaseID = in.SourceBaseID
	_, err := uc.Create(context.Background(), entity.RoleAdmin, "user-1", in)
	assert.ErrorIs(t, err, domain.ErrTransferInvalid)
}

func TestTransferCreate_UnknownBase(t *testing.T) {
	_, uc := newTransferFixture(100)

	in := transferRequest()
	in.DestinationBaseID = "base-x"
	_, err := uc.Create(context.Background(), entity.RoleAdmin, "user-1", in)
	assert.ErrorIs(t, err, domain.ErrUnknownReference)
}

func TestTransferUpdateStatus_PendingToCompleted(t *testing.T) {
	store, uc := newTransferFixture(100)

	in := transferRequest()
	in.Status = entity.TransferStatusPending
	tr, err := uc.Create(context.Background(), entity.RoleAdmin, "user-1", in)
	require.NoError(t, err)

	updated, err := uc.UpdateStatus(context.Background(), entity.RoleLogisticsOfficer, tr.ID, entity.TransferStatusCompleted)
	require.NoError(t, err)

	assert.Equal(t, entity.TransferStatusCompleted, updated.Status)
	assert.Equal(t, int64(70), store.StockQuantity("base-a", "rifle"), "completion applies the stock move")
	assert.Equal(t, int64(30), store.StockQuantity("base-b", "rifle"))
}

func TestTransferUpdateStatus_PendingToCancelled(t *testing.T) {
	store, uc := newTransferFixture(100)

	in := transferRequest()
	in.Status = entity.TransferStatusPending
	tr, err := uc.Create(context.Background(), entity.RoleAdmin, "user-1", in)
	require.NoError(t, err)

	updated, err := uc.UpdateStatus(context.Background(), entity.RoleAdmin, tr.ID, entity.TransferStatusCancelled)
	require.NoError(t, err)

	assert.Equal(t, entity.TransferStatusCancelled, updated.Status)
	assert.Equal(t, int64(100), store.StockQuantity("base-a", "rifle"), "cancellation never moves stock")
}

// Completed and Cancelled are terminal.
func TestTransferUpdateStatus_TerminalStatesRejectTransitions(t *testing.T) {
	_, uc := newTransferFixture(100)

	tr, err := uc.Create(context.Background(), entity.RoleAdmin, "user-1", transferRequest())
	require.NoError(t, err)

	_, err = uc.UpdateStatus(context.Background(), entity.RoleAdmin, tr.ID, entity.TransferStatusCancelled)
	assert.ErrorIs(t, err, domain.ErrTransferInvalid, "Completed -> Cancelled must fail")

	in := transferRequest()
	in.Status = entity.TransferStatusPending
	pending, err := uc.Create(context.Background(), entity.RoleAdmin, "user-1", in)
	require.NoError(t, err)
	_, err = uc.UpdateStatus(context.Background(), entity.RoleAdmin, pending.ID, entity.TransferStatusCancelled)
	require.NoError(t, err)
	_, err = uc.UpdateStatus(context.Background(), entity.RoleAdmin, pending.ID, entity.TransferStatusCompleted)
	assert.ErrorIs(t, err, domain.ErrTransferInvalid, "Cancelled -> Completed must fail")
}

func TestTransferUpdateStatus_NotFound(t *testing.T) {
	_, uc := newTransferFixture(100)

	_, err := uc.UpdateStatus(context.Background(), entity.RoleAdmin, "missing", entity.TransferStatusCompleted)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTransferCreate_RoleDenied(t *testing.T) {
	_, uc := newTransferFixture(100)

	_, err := uc.Create(context.Background(), entity.RoleBaseCommander, "user-1", transferRequest())
	assert.ErrorIs(t, err, domain.ErrPermissionDenied)
}
