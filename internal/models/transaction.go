package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType mirrors the transaction type enum stored in the transactions table.
type TransactionType string

const (
	Income  TransactionType = "INCOME"
	Expense TransactionType = "EXPENSE"
)

// Transaction represents a row of the transactions table.
// BucketID is nullable; an income may be workspace-level only.
type Transaction struct {
	TransactionID string          `db:"transaction_id"`
	WorkspaceID   string          `db:"workspace_id"`
	BucketID      *string         `db:"bucket_id"`
	Amount        decimal.Decimal `db:"amount"`
	Type          TransactionType `db:"type"`
	Description   string          `db:"description"`
	Date          time.Time       `db:"date"`
	IsAllocated   bool            `db:"is_allocated"`
	AuditFields
}
