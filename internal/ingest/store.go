package ingest

import (
	"context"
	"errors"
	"time"

	"github.com/maplebudget/statement-ingest/internal/models"
)

// ErrDuplicateTransaction is returned by a Store when an insert collides with
// a row already persisted for the same account, date, amount and description.
// The pipeline counts these as skipped duplicates, never as failures.
var ErrDuplicateTransaction = errors.New("duplicate transaction")

// Store is the persistence surface the pipeline needs. Implementations live
// in the store package.
type Store interface {
	// FindTransactions returns the account's transactions dated within
	// [from, to] inclusive.
	FindTransactions(ctx context.Context, accountID uint, from, to time.Time) ([]models.Transaction, error)

	// InsertTransaction persists one transaction, assigning its ID. It
	// returns ErrDuplicateTransaction when the row already exists.
	InsertTransaction(ctx context.Context, tx *models.Transaction) error
}
