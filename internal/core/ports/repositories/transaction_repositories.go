package repositories

import (
	"context"

	"github.com/bucketly/bucketly_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BucketDelta describes the net change a ledger operation applies to one
// bucket's aggregate fields. Deltas are applied with atomic column
// increments, never read-modify-write in application memory.
type BucketDelta struct {
	Balance   decimal.Decimal // change to current_balance
	Allocated decimal.Decimal // change to total_allocated
	Spent     decimal.Decimal // change to total_spent
}

// Add returns the field-wise sum of two deltas.
func (d BucketDelta) Add(other BucketDelta) BucketDelta {
	return BucketDelta{
		Balance:   d.Balance.Add(other.Balance),
		Allocated: d.Allocated.Add(other.Allocated),
		Spent:     d.Spent.Add(other.Spent),
	}
}

// Neg returns the field-wise negation of the delta.
func (d BucketDelta) Neg() BucketDelta {
	return BucketDelta{
		Balance:   d.Balance.Neg(),
		Allocated: d.Allocated.Neg(),
		Spent:     d.Spent.Neg(),
	}
}

// IsZero reports whether the delta changes nothing.
func (d BucketDelta) IsZero() bool {
	return d.Balance.IsZero() && d.Allocated.IsZero() && d.Spent.IsZero()
}

// TransactionReader defines read operations for transaction data
type TransactionReader interface {
	// FindTransactionByID retrieves a specific transaction by its ID.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// ListTransactionsByWorkspace retrieves a paginated list of transactions
	// for a workspace ordered by date desc, created_at desc, using
	// token-based pagination. It returns the transactions, a token for the
	// next page, and an error.
	ListTransactionsByWorkspace(ctx context.Context, workspaceID string, limit int, nextToken *string) ([]domain.Transaction, *string, error)
}

// LedgerWriter defines the two atomic units of work of the ledger.
// Each call locks the touched rows, applies the workspace and bucket deltas
// as atomic increments, and inserts or deletes the transaction row, all
// inside one database transaction. Any failure rolls everything back.
type LedgerWriter interface {
	// SaveTransaction inserts the transaction row and applies the balance
	// deltas atomically.
	SaveTransaction(ctx context.Context, txn domain.Transaction, workspaceDelta decimal.Decimal, bucketDeltas map[string]BucketDelta) error

	// DeleteTransaction applies the (already inverted) balance deltas and
	// removes the transaction row atomically. The row must not be deleted
	// unless every aggregate reversal succeeded.
	DeleteTransaction(ctx context.Context, txn domain.Transaction, workspaceDelta decimal.Decimal, bucketDeltas map[string]BucketDelta) error
}

// TransactionRepositoryFacade combines all transaction-related repository interfaces
type TransactionRepositoryFacade interface {
	TransactionReader
	LedgerWriter
}

// TransactionRepositoryWithTx extends TransactionRepositoryFacade with
// database transaction capabilities.
type TransactionRepositoryWithTx interface {
	TransactionRepositoryFacade
	TransactionManager
}
