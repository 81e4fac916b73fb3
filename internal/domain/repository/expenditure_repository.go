package repository

import (
	"time"

	"github.com/seshu362/kristalball-backend/internal/domain/entity"
)

// ExpenditureRow is the raw joined row for expenditure listings.
type ExpenditureRow struct {
	ExpenditureID    string
	ExpenditureDate  time.Time
	TypeName         string
	BaseName         string
	QuantityExpended int64
	Reason           string
	ReportedBy       string // full name of the reporting user
}

// ExpenditureRepository is the persistence port for expenditure events.
// Expenditures are append-only: no update or delete.
type ExpenditureRepository interface {
	Create(e *entity.Expenditure) error
	ListForLedger(baseID, equipmentTypeID string) ([]*entity.Expenditure, error)
	List(baseID, equipmentTypeID string, limit, offset int) ([]ExpenditureRow, error)
}
