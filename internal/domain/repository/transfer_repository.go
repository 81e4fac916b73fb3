package repository

import (
	"time"

	"github.com/seshu362/kristalball-backend/internal/domain/entity"
)

// TransferRow is the raw joined row for transfer listings.
type TransferRow struct {
	TransferID      string
	TransferDate    time.Time
	TypeName        string
	SourceBase      string
	DestinationBase string
	Quantity        int64
	Reason          string
	Status          string
	InitiatedBy     string // full name of the initiating user
}

// TransferRepository is the persistence port for transfer events.
type TransferRepository interface {
	Create(t *entity.Transfer) error
	GetByID(id string) (*entity.Transfer, error)
	// GetForUpdate locks the transfer row for the status transition.
	GetForUpdate(id string) (*entity.Transfer, error)
	UpdateStatus(id, status string, updatedAt time.Time) error
	// ListForLedger returns transfers touching the base (as source or
	// destination); empty baseID = all transfers.
	ListForLedger(baseID, equipmentTypeID string) ([]*entity.Transfer, error)
	List(baseID, equipmentTypeID string, limit, offset int) ([]TransferRow, error)
}
