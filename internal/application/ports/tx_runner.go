package ports

import (
	"context"

	"github.com/seshu362/kristalball-backend/internal/domain/repository"
)

// TxRepos bundles the repositories bound to one database transaction.
type TxRepos struct {
	Stock        repository.StockLevelRepository
	Purchases    repository.PurchaseRepository
	Transfers    repository.TransferRepository
	Assignments  repository.AssignmentRepository
	Expenditures repository.ExpenditureRepository
	Assets       repository.AssetRepository
}

// TxRunner executes fn inside a database transaction, passing repositories
// bound to that transaction. Commit on nil, rollback otherwise; partial
// writes are never visible. This is the atomicity guarantee behind every
// ledger mutation.
type TxRunner interface {
	Run(ctx context.Context, fn func(tx TxRepos) error) error
}
