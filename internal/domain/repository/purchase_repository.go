package repository

import (
	"time"

	"github.com/seshu362/kristalball-backend/internal/domain/entity"

	"github.com/shopspring/decimal"
)

// PurchaseRow is the raw joined row for purchase listings (display names
// resolved by the DB; the handler turns it into the wire shape).
type PurchaseRow struct {
	PurchaseID          string
	PurchaseDate        time.Time
	TypeName            string
	BaseName            string
	Quantity            int64
	UnitCost            decimal.Decimal
	TotalCost           decimal.Decimal
	SupplierInfo        string
	PurchaseOrderNumber string
	RecordedBy          string // full name of the recording user
}

// PurchaseRepository is the persistence port for purchase ledger entries.
// Purchases are append-only: no update or delete.
type PurchaseRepository interface {
	Create(p *entity.Purchase) error
	GetByID(id string) (*entity.Purchase, error)
	// ListForLedger returns the raw events the aggregation core replays.
	// Empty baseID / equipmentTypeID = unrestricted on that dimension.
	ListForLedger(baseID, equipmentTypeID string) ([]*entity.Purchase, error)
	List(baseID, equipmentTypeID string, limit, offset int) ([]PurchaseRow, error)
}
