package procurement_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seshu362/kristalball-backend/internal/application/auth"
	"github.com/seshu362/kristalball-backend/internal/application/dto"
	"github.com/seshu362/kristalball-backend/internal/application/memstore"
	"github.com/seshu362/kristalball-backend/internal/application/procurement"
	"github.com/seshu362/kristalball-backend/internal/domain"
	"github.com/seshu362/kristalball-backend/internal/domain/entity"
)

func newPurchaseFixture() (*memstore.Store, *procurement.PurchaseUseCase) {
	store := memstore.New()
	store.AddBase("base-a", "Fort North")
	store.AddBase("base-b", "Fort South")
	store.AddEquipmentType("rifle", "Rifle")

	uc := procurement.NewPurchaseUseCase(
		&memstore.TxRunner{Store: store},
		auth.NewRolePolicy(),
		store.BaseRepository(),
		store.EquipmentTypeRepository(),
		store.Repos().Purchases,
	)
	return store, uc
}

func purchaseRequest() dto.CreatePurchaseRequest {
	return dto.CreatePurchaseRequest{
		EquipmentTypeID: "rifle",
		Quantity:        10,
		UnitCost:        decimal.NewFromInt(250),
		PurchaseDate:    "2025-03-01",
		ReceivingBaseID: "base-a",
	}
}

func TestPurchaseRecord_AppendsEventAndIncrementsStock(t *testing.T) {
	store, uc := newPurchaseFixture()

	p, err := uc.Record(context.Background(), entity.RoleLogisticsOfficer, "user-1", purchaseRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(10), p.Quantity)
	assert.True(t, p.TotalCost.Equal(decimal.NewFromInt(2500)), "total cost derived as quantity x unitCost")
	require.Len(t, store.Purchases, 1)
	assert.Equal(t, int64(10), store.StockQuantity("base-a", "rifle"))
}

func TestPurchaseRecord_ClientTotalCostMismatchRejected(t *testing.T) {
	store, uc := newPurchaseFixture()

	in := purchaseRequest()
	wrong := decimal.NewFromInt(9999)
	in.TotalCost = &wrong

	_, err := uc.Record(context.Background(), entity.RoleAdmin, "user-1", in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, store.Purchases, "nothing recorded on rejection")
}

func TestPurchaseRecord_ClientTotalCostMatchingAccepted(t *testing.T) {
	_, uc := newPurchaseFixture()

	in := purchaseRequest()
	total := decimal.NewFromInt(2500)
	in.TotalCost = &total

	_, err := uc.Record(context.Background(), entity.RoleAdmin, "user-1", in)
	assert.NoError(t, err)
}

func TestPurchaseRecord_InvalidQuantity(t *testing.T) {
	_, uc := newPurchaseFixture()

	in := purchaseRequest()
	in.Quantity = 0
	_, err := uc.Record(context.Background(), entity.RoleAdmin, "user-1", in)
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	in.Quantity = -5
	_, err = uc.Record(context.Background(), entity.RoleAdmin, "user-1", in)
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
}

func TestPurchaseRecord_UnknownBase(t *testing.T) {
	_, uc := newPurchaseFixture()

	in := purchaseRequest()
	in.ReceivingBaseID = "base-x"
	_, err := uc.Record(context.Background(), entity.RoleAdmin, "user-1", in)
	assert.ErrorIs(t, err, domain.ErrUnknownReference)
}

func TestPurchaseRecord_RoleDenied(t *testing.T) {
	store, uc := newPurchaseFixture()

	_, err := uc.Record(context.Background(), entity.RoleBaseCommander, "user-1", purchaseRequest())
	assert.ErrorIs(t, err, domain.ErrPermissionDenied)
	assert.Empty(t, store.Purchases)
}
