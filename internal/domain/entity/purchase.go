package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Purchase is an append-only ledger entry: quantity received at a base on a
// date. Immutable once created.
type Purchase struct {
	ID                  string
	EquipmentTypeID     string
	Quantity            int64
	UnitCost            decimal.Decimal
	TotalCost           decimal.Decimal
	PurchaseDate        time.Time
	ReceivingBaseID     string
	SupplierInfo        string
	PurchaseOrderNumber string
	RecordedBy          string // UserID
	CreatedAt           time.Time
}

// DeriveTotalCost returns quantity × unitCost. The server always recomputes
// this and rejects client-submitted totals that disagree.
func DeriveTotalCost(quantity int64, unitCost decimal.Decimal) decimal.Decimal {
	return unitCost.Mul(decimal.NewFromInt(quantity))
}
