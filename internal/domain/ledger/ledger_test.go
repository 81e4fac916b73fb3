package ledger_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seshu362/kristalball-backend/internal/domain"
	"github.com/seshu362/kristalball-backend/internal/domain/entity"
	"github.com/seshu362/kristalball-backend/internal/domain/ledger"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func datePtr(s string) *time.Time {
	t := day(s)
	return &t
}

func purchase(id, baseID, typeID string, qty int64, date string) *entity.Purchase {
	return &entity.Purchase{
		ID: id, ReceivingBaseID: baseID, EquipmentTypeID: typeID,
		Quantity: qty, PurchaseDate: day(date),
	}
}

func transfer(id, src, dst, typeID string, qty int64, date, status string) *entity.Transfer {
	return &entity.Transfer{
		ID: id, SourceBaseID: src, DestinationBaseID: dst, EquipmentTypeID: typeID,
		Quantity: qty, TransferDate: day(date), Status: status,
	}
}

func expenditure(id, baseID, typeID string, qty int64, date string) *entity.Expenditure {
	return &entity.Expenditure{
		ID: id, BaseID: baseID, EquipmentTypeID: typeID,
		QuantityExpended: qty, ExpenditureDate: day(date),
	}
}

// sampleEvents builds the worked example used across several tests:
//
//	Jan 01  purchase 100 at base-a
//	Jan 10  transfer  30 from base-a to base-b (Completed)
//	Jan 15  expenditure 10 at base-a
func sampleEvents() ledger.EventSet {
	return ledger.EventSet{
		Purchases: []*entity.Purchase{
			purchase("p1", "base-a", "rifle", 100, "2025-01-01"),
		},
		Transfers: []*entity.Transfer{
			transfer("t1", "base-a", "base-b", "rifle", 30, "2025-01-10", entity.TransferStatusCompleted),
		},
		Expenditures: []*entity.Expenditure{
			expenditure("e1", "base-a", "rifle", 10, "2025-01-15"),
		},
	}
}

func TestComputeSummary_WorkedExample_BaseA(t *testing.T) {
	scope := ledger.FilterScope{
		StartDate: datePtr("2025-01-01"),
		EndDate:   datePtr("2025-01-31"),
		BaseID:    "base-a",
	}
	sum, err := ledger.ComputeSummary(scope, sampleEvents())
	require.NoError(t, err)

	assert.Equal(t, int64(0), sum.OpeningBalance)
	assert.Equal(t, int64(70), sum.NetMovement, "100 purchased - 30 transferred out")
	assert.Equal(t, int64(10), sum.ExpendedAssets)
	assert.Equal(t, int64(60), sum.ClosingBalance)
}

func TestComputeSummary_WorkedExample_BaseB(t *testing.T) {
	scope := ledger.FilterScope{
		StartDate: datePtr("2025-01-01"),
		EndDate:   datePtr("2025-01-31"),
		BaseID:    "base-b",
	}
	sum, err := ledger.ComputeSummary(scope, sampleEvents())
	require.NoError(t, err)

	assert.Equal(t, int64(30), sum.NetMovement, "transfer arrives at base-b")
	assert.Equal(t, int64(30), sum.ClosingBalance)
}

// With no base filter each completed transfer counts on both sides and
// contributes nothing net.
func TestComputeSummary_NoBaseFilter_TransfersCancelOut(t *testing.T) {
	scope := ledger.FilterScope{
		StartDate: datePtr("2025-01-01"),
		EndDate:   datePtr("2025-01-31"),
	}
	sum, err := ledger.ComputeSummary(scope, sampleEvents())
	require.NoError(t, err)

	assert.Equal(t, int64(100), sum.NetMovement, "only the purchase moves the global balance")
	assert.Equal(t, int64(90), sum.ClosingBalance)
}

// Events before the start date land in the opening balance instead of the
// net movement.
func TestComputeSummary_OpeningBalance(t *testing.T) {
	scope := ledger.FilterScope{
		StartDate: datePtr("2025-01-05"),
		EndDate:   datePtr("2025-01-31"),
		BaseID:    "base-a",
	}
	sum, err := ledger.ComputeSummary(scope, sampleEvents())
	require.NoError(t, err)

	assert.Equal(t, int64(100), sum.OpeningBalance, "Jan 1 purchase predates the window")
	assert.Equal(t, int64(-30), sum.NetMovement, "only the outbound transfer is in range")
	assert.Equal(t, int64(10), sum.ExpendedAssets)
	assert.Equal(t, int64(60), sum.ClosingBalance)
}

// The closing balance of [start, d] always equals the opening balance of a
// window starting at d+1.
func TestComputeSummary_ClosingEqualsNextOpening(t *testing.T) {
	events := sampleEvents()

	first := ledger.FilterScope{
		StartDate: datePtr("2025-01-01"), EndDate: datePtr("2025-01-12"), BaseID: "base-a",
	}
	second := ledger.FilterScope{
		StartDate: datePtr("2025-01-13"), EndDate: datePtr("2025-01-31"), BaseID: "base-a",
	}

	sumFirst, err := ledger.ComputeSummary(first, events)
	require.NoError(t, err)
	sumSecond, err := ledger.ComputeSummary(second, events)
	require.NoError(t, err)

	assert.Equal(t, sumFirst.ClosingBalance, sumSecond.OpeningBalance)
}

// Boundary dates are inclusive on both ends.
func TestComputeSummary_BoundaryDatesInclusive(t *testing.T) {
	scope := ledger.FilterScope{
		StartDate: datePtr("2025-01-01"),
		EndDate:   datePtr("2025-01-01"),
		BaseID:    "base-a",
	}
	sum, err := ledger.ComputeSummary(scope, sampleEvents())
	require.NoError(t, err)

	assert.Equal(t, int64(100), sum.NetMovement, "purchase dated exactly on the boundary counts")
}

func TestComputeSummary_PendingAndCancelledIgnored(t *testing.T) {
	events := sampleEvents()
	events.Transfers = append(events.Transfers,
		transfer("t2", "base-a", "base-b", "rifle", 500, "2025-01-12", entity.TransferStatusPending),
		transfer("t3", "base-b", "base-a", "rifle", 400, "2025-01-13", entity.TransferStatusCancelled),
	)

	scope := ledger.FilterScope{
		StartDate: datePtr("2025-01-01"), EndDate: datePtr("2025-01-31"), BaseID: "base-a",
	}
	sum, err := ledger.ComputeSummary(scope, events)
	require.NoError(t, err)

	assert.Equal(t, int64(70), sum.NetMovement, "only completed transfers move balances")
}

func TestComputeSummary_EquipmentTypeFilter(t *testing.T) {
	events := sampleEvents()
	events.Purchases = append(events.Purchases,
		purchase("p2", "base-a", "radio", 7, "2025-01-03"),
	)

	scope := ledger.FilterScope{
		StartDate: datePtr("2025-01-01"), EndDate: datePtr("2025-01-31"),
		BaseID: "base-a", EquipmentTypeID: "radio",
	}
	sum, err := ledger.ComputeSummary(scope, events)
	require.NoError(t, err)

	assert.Equal(t, int64(7), sum.NetMovement)
	assert.Equal(t, int64(7), sum.ClosingBalance)
}

func TestComputeSummary_EmptySnapshot(t *testing.T) {
	sum, err := ledger.ComputeSummary(ledger.FilterScope{}, ledger.EventSet{})
	require.NoError(t, err)
	assert.Equal(t, ledger.Summary{}, sum)
}

func TestComputeSummary_InvalidScope(t *testing.T) {
	scope := ledger.FilterScope{
		StartDate: datePtr("2025-02-01"),
		EndDate:   datePtr("2025-01-01"),
	}
	_, err := ledger.ComputeSummary(scope, ledger.EventSet{})
	assert.ErrorIs(t, err, domain.ErrInvalidScope)

	_, err = ledger.ResolveMovementDetails(scope, ledger.EventSet{})
	assert.ErrorIs(t, err, domain.ErrInvalidScope)
}

func TestComputeSummary_Idempotent(t *testing.T) {
	scope := ledger.FilterScope{
		StartDate: datePtr("2025-01-01"), EndDate: datePtr("2025-01-31"), BaseID: "base-a",
	}
	events := sampleEvents()

	first, err := ledger.ComputeSummary(scope, events)
	require.NoError(t, err)
	second, err := ledger.ComputeSummary(scope, events)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestComputeSummary_AssignedAssets(t *testing.T) {
	events := sampleEvents()
	events.Assets = []*entity.Asset{
		{ID: "as1", EquipmentTypeID: "rifle", BaseID: "base-a"},
		{ID: "as2", EquipmentTypeID: "radio", BaseID: "base-a"},
	}
	events.Assignments = []*entity.Assignment{
		{ID: "g1", AssetID: "as1", BaseOfAssignmentID: "base-a", AssignmentDate: day("2025-01-05"), IsActive: true},
		{ID: "g2", AssetID: "as2", BaseOfAssignmentID: "base-a", AssignmentDate: day("2025-01-06"), IsActive: true},
		{ID: "g3", AssetID: "as1", BaseOfAssignmentID: "base-a", AssignmentDate: day("2025-01-02"), IsActive: false},
		{ID: "g4", AssetID: "as1", BaseOfAssignmentID: "base-a", AssignmentDate: day("2025-02-05"), IsActive: true},
	}

	scope := ledger.FilterScope{
		StartDate: datePtr("2025-01-01"), EndDate: datePtr("2025-01-31"), BaseID: "base-a",
	}
	sum, err := ledger.ComputeSummary(scope, events)
	require.NoError(t, err)
	assert.Equal(t, int64(2), sum.AssignedAssets, "returned and future assignments are excluded")

	scoped := scope
	scoped.EquipmentTypeID = "rifle"
	sum, err = ledger.ComputeSummary(scoped, events)
	require.NoError(t, err)
	assert.Equal(t, int64(1), sum.AssignedAssets, "equipment filter resolves through the asset")
}

// The drill-down line items must sum exactly to the summary's net movement
// for the same scope.
func TestResolveMovementDetails_ReconcilesWithSummary(t *testing.T) {
	events := sampleEvents()
	events.Purchases = append(events.Purchases,
		purchase("p2", "base-a", "rifle", 25, "2025-01-20"),
	)
	events.Transfers = append(events.Transfers,
		transfer("t2", "base-b", "base-a", "rifle", 5, "2025-01-22", entity.TransferStatusCompleted),
		transfer("t3", "base-a", "base-b", "rifle", 500, "2025-01-25", entity.TransferStatusPending),
	)

	for _, baseID := range []string{"base-a", "base-b", ""} {
		scope := ledger.FilterScope{
			StartDate: datePtr("2025-01-01"), EndDate: datePtr("2025-01-31"), BaseID: baseID,
		}
		sum, err := ledger.ComputeSummary(scope, events)
		require.NoError(t, err)
		details, err := ledger.ResolveMovementDetails(scope, events)
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
		assert.Equal(t, sum.NetMovement, net, "baseID=%q", baseID)
	}
}

func TestResolveMovementDetails_PendingListedSeparately(t *testing.T) {
	events := sampleEvents()
	events.Transfers = append(events.Transfers,
		transfer("t2", "base-a", "base-b", "rifle", 500, "2025-01-25", entity.TransferStatusPending),
		transfer("t3", "base-a", "base-b", "rifle", 400, "2025-01-26", entity.TransferStatusCancelled),
	)

	scope := ledger.FilterScope{
		StartDate: datePtr("2025-01-01"), EndDate: datePtr("2025-01-31"), BaseID: "base-a",
	}
	details, err := ledger.ResolveMovementDetails(scope, events)
	require.NoError(t, err)

	require.Len(t, details.Pending, 1)
	assert.Equal(t, "t2", details.Pending[0].ID)
	assert.Len(t, details.TransfersOut, 1, "only the completed transfer")
	for _, tr := range append(details.TransfersIn, details.TransfersOut...) {
		assert.NotEqual(t, "t3", tr.ID, "cancelled transfers are never listed")
	}
}

func TestResolveMovementDetails_DeterministicOrder(t *testing.T) {
	events := ledger.EventSet{
		Purchases: []*entity.Purchase{
			purchase("p2", "base-a", "rifle", 1, "2025-01-05"),
			purchase("p3", "base-a", "rifle", 2, "2025-01-02"),
			purchase("p1", "base-a", "rifle", 3, "2025-01-05"),
		},
	}
	scope := ledger.FilterScope{BaseID: "base-a"}

	details, err := ledger.ResolveMovementDetails(scope, events)
	require.NoError(t, err)

	require.Len(t, details.Purchases, 3)
	assert.Equal(t, "p3", details.Purchases[0].ID, "date ascending first")
	assert.Equal(t, "p1", details.Purchases[1].ID, "ties broken by id")
	assert.Equal(t, "p2", details.Purchases[2].ID)
}

func TestStockAsOf(t *testing.T) {
	events := sampleEvents()

	assert.Equal(t, int64(100), ledger.StockAsOf("base-a", "rifle", day("2025-01-09"), events))
	assert.Equal(t, int64(70), ledger.StockAsOf("base-a", "rifle", day("2025-01-10"), events), "transfer on asOf counts")
	assert.Equal(t, int64(60), ledger.StockAsOf("base-a", "rifle", day("2025-01-31"), events))
	assert.Equal(t, int64(30), ledger.StockAsOf("base-b", "rifle", day("2025-01-31"), events))
	assert.Equal(t, int64(0), ledger.StockAsOf("base-c", "rifle", day("2025-01-31"), events))
}
