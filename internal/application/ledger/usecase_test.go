package ledger_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seshu362/kristalball-backend/internal/application/dto"
	ledgeruc "github.com/seshu362/kristalball-backend/internal/application/ledger"
	"github.com/seshu362/kristalball-backend/internal/application/memstore"
	"github.com/seshu362/kristalball-backend/internal/domain"
	"github.com/seshu362/kristalball-backend/internal/domain/entity"
)

func seedStore() *memstore.Store {
	store := memstore.New()
	store.AddBase("base-a", "Fort North")
	store.AddBase("base-b", "Fort South")
	store.AddEquipmentType("rifle", "Rifle")

	day := func(s string) time.Time {
		t, _ := time.Parse("2006-01-02", s)
		return t
	}
	store.Purchases = append(store.Purchases, &entity.Purchase{
		ID: "p1", ReceivingBaseID: "base-a", EquipmentTypeID: "rifle",
		Quantity: 100, PurchaseDate: day("2025-01-01"),
	})
	store.Transfers = append(store.Transfers, &entity.Transfer{
		ID: "t1", SourceBaseID: "base-a", DestinationBaseID: "base-b",
		EquipmentTypeID: "rifle", Quantity: 30, TransferDate: day("2025-01-10"),
		Status: entity.TransferStatusCompleted,
	})
	store.Expenditures = append(store.Expenditures, &entity.Expenditure{
		ID: "e1", BaseID: "base-a", EquipmentTypeID: "rifle",
		QuantityExpended: 10, ExpenditureDate: day("2025-01-15"),
		Reason: entity.ExpenditureReasonTraining,
	})
	return store
}

func newLedgerUseCase(store *memstore.Store) *ledgeruc.UseCase {
	repos := store.Repos()
	return ledgeruc.NewUseCase(
		store.BaseRepository(),
		store.EquipmentTypeRepository(),
		repos.Purchases,
		repos.Transfers,
		repos.Expenditures,
		repos.Assignments,
		repos.Assets,
	)
}

func TestGetSummary_FromQueryToMetrics(t *testing.T) {
	uc := newLedgerUseCase(seedStore())

	scope, err := ledgeruc.ParseScope(dto.DashboardQuery{
		StartDate: "2025-01-01", EndDate: "2025-01-31", BaseID: "base-a",
	})
	require.NoError(t, err)

	sum, err := uc.GetSummary(context.Background(), scope)
	require.NoError(t, err)

	assert.Equal(t, int64(0), sum.OpeningBalance)
	assert.Equal(t, int64(70), sum.NetMovement)
	assert.Equal(t, int64(10), sum.ExpendedAssets)
	assert.Equal(t, int64(60), sum.ClosingBalance)
}

func TestGetSummary_UnknownBaseFilter(t *testing.T) {
	uc := newLedgerUseCase(seedStore())

	scope, err := ledgeruc.ParseScope(dto.DashboardQuery{BaseID: "base-x"})
	require.NoError(t, err)

	_, err = uc.GetSummary(context.Background(), scope)
	assert.ErrorIs(t, err, domain.ErrUnknownReference, "filtering on a nonexistent base is an error, not zeros")
}

func TestParseScope_StartAfterEnd(t *testing.T) {
	_, err := ledgeruc.ParseScope(dto.DashboardQuery{
		StartDate: "2025-02-01", EndDate: "2025-01-01",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidScope)
}

// The end date widens to the end of its day, so an event carrying a
// time-of-day component on the boundary date still counts.
func TestParseScope_EndDateInclusiveOfWholeDay(t *testing.T) {
	store := seedStore()
	noon, _ := time.Parse(time.RFC3339, "2025-01-20T12:00:00Z")
	store.Purchases = append(store.Purchases, &entity.Purchase{
		ID: "p2", ReceivingBaseID: "base-a", EquipmentTypeID: "rifle",
		Quantity: 5, PurchaseDate: noon,
	})
	uc := newLedgerUseCase(store)

	scope, err := ledgeruc.ParseScope(dto.DashboardQuery{
		StartDate: "2025-01-20", EndDate: "2025-01-20", BaseID: "base-a",
	})
	require.NoError(t, err)

	sum, err := uc.GetSummary(context.Background(), scope)
	require.NoError(t, err)
	assert.Equal(t, int64(5), sum.NetMovement)
}

func TestGetMovementDetails_ResolvesNames(t *testing.T) {
	uc := newLedgerUseCase(seedStore())

	scope, err := ledgeruc.ParseScope(dto.DashboardQuery{
		StartDate: "2025-01-01", EndDate: "2025-01-31", BaseID: "base-b",
	})
	require.NoError(t, err)

	details, err := uc.GetMovementDetails(context.Background(), scope)
	require.NoError(t, err)

	require.Len(t, details.TransfersIn, 1)
	in := details.TransfersIn[0]
	assert.Equal(t, "t1", in.TransferID)
	assert.Equal(t, "Rifle", in.TypeName)
	assert.Equal(t, "Fort North", in.SourceBase, "inbound lines name the sending base")
	assert.Empty(t, details.Purchases)
	assert.Empty(t, details.TransfersOut)
}

// Name resolution pages through the catalogs, so a base past the first page
// still renders with its display name.
func TestGetMovementDetails_NamesBeyondFirstPage(t *testing.T) {
	store := memstore.New()
	for i := 0; i < 1200; i++ {
		store.AddBase(fmt.Sprintf("base-%04d", i), fmt.Sprintf("Base %04d", i))
	}
	store.AddBase("zz-far", "Zulu Yard") // sorts after every generated name
	store.AddEquipmentType("rifle", "Rifle")

	date, _ := time.Parse("2006-01-02", "2025-01-05")
	store.Purchases = append(store.Purchases, &entity.Purchase{
		ID: "p1", ReceivingBaseID: "zz-far", EquipmentTypeID: "rifle",
		Quantity: 5, PurchaseDate: date,
	})
	uc := newLedgerUseCase(store)

	scope, err := ledgeruc.ParseScope(dto.DashboardQuery{BaseID: "zz-far"})
	require.NoError(t, err)

	details, err := uc.GetMovementDetails(context.Background(), scope)
	require.NoError(t, err)
	require.Len(t, details.Purchases, 1)
	assert.Equal(t, "Zulu Yard", details.Purchases[0].BaseName)
}

func TestGetMovementDetails_ReconcilesWithSummary(t *testing.T) {
	uc := newLedgerUseCase(seedStore())

	scope, err := ledgeruc.ParseScope(dto.DashboardQuery{
		StartDate: "2025-01-01", EndDate: "2025-01-31", BaseID: "base-a",
	})
	require.NoError(t, err)

	sum, err := uc.GetSummary(context.Background(), scope)
	require.NoError(t, err)
	details, err := uc.GetMovementDetails(context.Background(), scope)
	require.NoError(t, err)

	var net int64
	for _, p := range details.Purchases {
		net += p.Quantity
	}
	for _, tr := range details.TransfersIn {
		net += tr.Quantity
	}
	for _, tr := range details.TransfersOut {
		net -= tr.Quantity
	}
	assert.Equal(t, sum.NetMovement, net)
}
