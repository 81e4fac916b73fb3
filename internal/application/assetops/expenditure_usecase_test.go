package assetops_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seshu362/kristalball-backend/internal/application/assetops"
	"github.com/seshu362/kristalball-backend/internal/application/auth"
	"github.com/seshu362/kristalball-backend/internal/application/dto"
	"github.com/seshu362/kristalball-backend/internal/application/memstore"
	"github.com/seshu362/kristalball-backend/internal/domain"
	"github.com/seshu362/kristalball-backend/internal/domain/entity"
)

func newExpenditureFixture(stock int64) (*memstore.Store, *assetops.ExpenditureUseCase) {
	store := memstore.New()
	store.AddBase("base-a", "Fort North")
	store.AddEquipmentType("ammo", "5.56mm Ammunition")

	if stock > 0 {
		date, _ := time.Parse("2006-01-02", "2025-01-01")
		store.Purchases = append(store.Purchases, &entity.Purchase{
			ID: "seed", ReceivingBaseID: "base-a", EquipmentTypeID: "ammo",
			Quantity: stock, PurchaseDate: date,
		})
		store.Repos().Stock.Upsert(&entity.StockLevel{
			BaseID: "base-a", EquipmentTypeID: "ammo", Quantity: stock,
		})
	}

	uc := assetops.NewExpenditureUseCase(
		&memstore.TxRunner{Store: store},
		auth.NewRolePolicy(),
		store.BaseRepository(),
		store.EquipmentTypeRepository(),
		store.Repos().Expenditures,
	)
	return store, uc
}

func expenditureRequest(qty int64) dto.CreateExpenditureRequest {
	return dto.CreateExpenditureRequest{
		EquipmentTypeID:  "ammo",
		QuantityExpended: qty,
		ExpenditureDate:  "2025-03-01",
		BaseID:           "base-a",
		Reason:           entity.ExpenditureReasonTraining,
	}
}

func TestExpenditureRecord_AppendsEventAndDecrementsStock(t *testing.T) {
	store, uc := newExpenditureFixture(100)

	e, err := uc.Record(context.Background(), entity.RoleBaseCommander, "user-1", expenditureRequest(40))
	require.NoError(t, err)

	assert.Equal(t, int64(40), e.QuantityExpended)
	require.Len(t, store.Expenditures, 1)
	assert.Equal(t, int64(60), store.StockQuantity("base-a", "ammo"))
}

func TestExpenditureRecord_InsufficientStock_NothingChanges(t *testing.T) {
	store, uc := newExpenditureFixture(100)

	_, err := uc.Record(context.Background(), entity.RoleBaseCommander, "user-1", expenditureRequest(101))
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.Empty(t, store.Expenditures, "no event recorded on failure")
	assert.Equal(t, int64(100), store.StockQuantity("base-a", "ammo"), "stock untouched")
}

// Sufficiency is checked against the replayed balance as of the expenditure
// date, not against today's stock.
func TestExpenditureRecord_DatedBeforeStockExisted(t *testing.T) {
	_, uc := newExpenditureFixture(100)

	in := expenditureRequest(10)
	in.ExpenditureDate = "2024-12-01" // predates the seed purchase
	_, err := uc.Record(context.Background(), entity.RoleBaseCommander, "user-1", in)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

func TestExpenditureRecord_ExactBalanceAllowed(t *testing.T) {
	store, uc := newExpenditureFixture(100)

	_, err := uc.Record(context.Background(), entity.RoleBaseCommander, "user-1", expenditureRequest(100))
	require.NoError(t, err)
	assert.Equal(t, int64(0), store.StockQuantity("base-a", "ammo"))
}

func TestExpenditureRecord_InvalidQuantity(t *testing.T) {
	_, uc := newExpenditureFixture(100)

	_, err := uc.Record(context.Background(), entity.RoleBaseCommander, "user-1", expenditureRequest(0))
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	_, err = uc.Record(context.Background(), entity.RoleBaseCommander, "user-1", expenditureRequest(-3))
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
}

func TestExpenditureRecord_InvalidReason(t *testing.T) {
	_, uc := newExpenditureFixture(100)

	in := expenditureRequest(10)
	in.Reason = "Misplaced"
	_, err := uc.Record(context.Background(), entity.RoleBaseCommander, "user-1", in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestExpenditureRecord_UnknownEquipmentType(t *testing.T) {
	_, uc := newExpenditureFixture(100)

	in := expenditureRequest(10)
	in.EquipmentTypeID = "unknown"
	_, err := uc.Record(context.Background(), entity.RoleBaseCommander, "user-1", in)
	assert.ErrorIs(t, err, domain.ErrUnknownReference)
}

func TestExpenditureRecord_RoleDenied(t *testing.T) {
	_, uc := newExpenditureFixture(100)

	_, err := uc.Record(context.Background(), entity.RoleLogisticsOfficer, "user-1", expenditureRequest(10))
	assert.ErrorIs(t, err, domain.ErrPermissionDenied)
}
