// Package ledger is the pure aggregation core of the inventory ledger.
// It operates on in-memory event snapshots and computes reconciled metrics
// (opening/closing balance, net movement) plus the drill-down line items
// behind them. Everything here is side-effect free: the same scope and the
// same snapshot always produce the same result, so concurrent calls need no
// synchronization.
package ledger

import (
	"sort"
	"time"

	"github.com/seshu362/kristalball-backend/internal/domain/entity"
)

// EventSet is a read snapshot of every ledger event that may participate in
// a computation. Loading it (and any base/equipment filter push-down) is the
// caller's concern; the core only applies scope arithmetic.
type EventSet struct {
	Purchases    []*entity.Purchase
	Transfers    []*entity.Transfer
	Expenditures []*entity.Expenditure
	Assignments  []*entity.Assignment
	Assets       []*entity.Asset // referenced by Assignments for equipment matching
}

// Summary holds the reconciled metrics for one scope.
// Invariant: ClosingBalance == OpeningBalance + NetMovement - ExpendedAssets.
type Summary struct {
	OpeningBalance int64
	ClosingBalance int64
	NetMovement    int64
	AssignedAssets int64
	ExpendedAssets int64
}

// MovementDetails are the itemized transactions behind a scope's net
// movement. Purchases, TransfersIn and TransfersOut sum exactly to the
// Summary's NetMovement for the same scope. Pending lists not-yet-completed
// transfers for visibility; they contribute nothing to any balance.
// Cancelled transfers are never listed.
type MovementDetails struct {
	Purchases    []*entity.Purchase
	TransfersIn  []*entity.Transfer
	TransfersOut []*entity.Transfer
	Pending      []*entity.Transfer
}

// ComputeSummary computes the reconciled metrics for the scope over the
// snapshot. Empty snapshot yields all zeros. Events exactly on the start or
// end date are included.
func ComputeSummary(scope FilterScope, events EventSet) (Summary, error) {
	if err := scope.Validate(); err != nil {
		return Summary{}, err
	}

	var sum Summary

	for _, p := range events.Purchases {
		if !scope.MatchesBase(p.ReceivingBaseID) || !scope.MatchesEquipment(p.EquipmentTypeID) {
			continue
		}
		if scope.BeforeStart(p.PurchaseDate) {
			sum.OpeningBalance += p.Quantity
		} else if scope.InRange(p.PurchaseDate) {
			sum.NetMovement += p.Quantity
		}
	}

	for _, t := range events.Transfers {
		if t.Status != entity.TransferStatusCompleted || !scope.MatchesEquipment(t.EquipmentTypeID) {
			continue
		}
		// A completed transfer is an inbound event at its destination and an
		// outbound event at its source; with no base filter both sides count.
		if scope.MatchesBase(t.DestinationBaseID) {
			if scope.BeforeStart(t.TransferDate) {
				sum.OpeningBalance += t.Quantity
			} else if scope.InRange(t.TransferDate) {
				sum.NetMovement += t.Quantity
			}
		}
		if scope.MatchesBase(t.SourceBaseID) {
			if scope.BeforeStart(t.TransferDate) {
				sum.OpeningBalance -= t.Quantity
			} else if scope.InRange(t.TransferDate) {
				sum.NetMovement -= t.Quantity
			}
		}
	}

	for _, e := range events.Expenditures {
		if !scope.MatchesBase(e.BaseID) || !scope.MatchesEquipment(e.EquipmentTypeID) {
			continue
		}
		if scope.BeforeStart(e.ExpenditureDate) {
			sum.OpeningBalance -= e.QuantityExpended
		} else if scope.InRange(e.ExpenditureDate) {
			sum.ExpendedAssets += e.QuantityExpended
		}
	}

	sum.AssignedAssets = countAssigned(scope, events)
	sum.ClosingBalance = sum.OpeningBalance + sum.NetMovement - sum.ExpendedAssets
	return sum, nil
}

// countAssigned counts active assignments whose base and (via the asset)
// equipment type match the scope, as of the scope's end date ("now" when the
// scope has no end date).
func countAssigned(scope FilterScope, events EventSet) int64 {
	assetEquipment := make(map[string]string, len(events.Assets))
	for _, a := range events.Assets {
		assetEquipment[a.ID] = a.EquipmentTypeID
	}

	var n int64
	for _, a := range events.Assignments {
		if !a.IsActive || !scope.MatchesBase(a.BaseOfAssignmentID) {
			continue
		}
		if scope.EndDate != nil && a.AssignmentDate.After(*scope.EndDate) {
			continue
		}
		if scope.EquipmentTypeID != "" {
			eq, ok := assetEquipment[a.AssetID]
			if !ok || eq != scope.EquipmentTypeID {
				continue
			}
		}
		n++
	}
	return n
}

// ResolveMovementDetails returns the exact line items whose sums reproduce
// ComputeSummary's NetMovement for the same scope. Lists are sorted by date
// ascending, ties broken by event id ascending, so results are deterministic.
func ResolveMovementDetails(scope FilterScope, events EventSet) (MovementDetails, error) {
	if err := scope.Validate(); err != nil {
		return MovementDetails{}, err
	}

	var d MovementDetails

	for _, p := range events.Purchases {
		if scope.MatchesBase(p.ReceivingBaseID) && scope.MatchesEquipment(p.EquipmentTypeID) &&
			scope.InRange(p.PurchaseDate) {
			d.Purchases = append(d.Purchases, p)
		}
	}

	for _, t := range events.Transfers {
		if t.Status == entity.TransferStatusCancelled ||
			!scope.MatchesEquipment(t.EquipmentTypeID) || !scope.InRange(t.TransferDate) {
			continue
		}
		touchesScope := scope.MatchesBase(t.DestinationBaseID) || scope.MatchesBase(t.SourceBaseID)
		if t.Status == entity.TransferStatusPending {
			if touchesScope {
				d.Pending = append(d.Pending, t)
			}
			continue
		}
		if scope.MatchesBase(t.DestinationBaseID) {
			d.TransfersIn = append(d.TransfersIn, t)
		}
		if scope.MatchesBase(t.SourceBaseID) {
			d.TransfersOut = append(d.TransfersOut, t)
		}
	}

	sort.Slice(d.Purchases, func(i, j int) bool {
		return lessByDateID(d.Purchases[i].PurchaseDate, d.Purchases[i].ID, d.Purchases[j].PurchaseDate, d.Purchases[j].ID)
	})
	sortTransfers(d.TransfersIn)
	sortTransfers(d.TransfersOut)
	sortTransfers(d.Pending)

	return d, nil
}

// StockAsOf replays the ledger and returns the stock of an equipment type at
// a base at the end of the given day (events on asOf included). This is the
// balance the expenditure sufficiency check runs against.
func StockAsOf(baseID, equipmentTypeID string, asOf time.Time, events EventSet) int64 {
	scope := FilterScope{EndDate: &asOf, BaseID: baseID, EquipmentTypeID: equipmentTypeID}

	var stock int64
	for _, p := range events.Purchases {
		if scope.MatchesBase(p.ReceivingBaseID) && scope.MatchesEquipment(p.EquipmentTypeID) &&
			scope.InRange(p.PurchaseDate) {
			stock += p.Quantity
		}
	}
	for _, t := range events.Transfers {
		if t.Status != entity.TransferStatusCompleted || !scope.MatchesEquipment(t.EquipmentTypeID) ||
			!scope.InRange(t.TransferDate) {
			continue
		}
		if scope.MatchesBase(t.DestinationBaseID) {
			stock += t.Quantity
		}
		if scope.MatchesBase(t.SourceBaseID) {
			stock -= t.Quantity
		}
	}
	for _, e := range events.Expenditures {
		if scope.MatchesBase(e.BaseID) && scope.MatchesEquipment(e.EquipmentTypeID) &&
			scope.InRange(e.ExpenditureDate) {
			stock -= e.QuantityExpended
		}
	}
	return stock
}

func sortTransfers(ts []*entity.Transfer) {
	sort.Slice(ts, func(i, j int) bool {
		return lessByDateID(ts[i].TransferDate, ts[i].ID, ts[j].TransferDate, ts[j].ID)
	})
}

func lessByDateID(d1 time.Time, id1 string, d2 time.Time, id2 string) bool {
	if !d1.Equal(d2) {
		return d1.Before(d2)
	}
	return id1 < id2
}
