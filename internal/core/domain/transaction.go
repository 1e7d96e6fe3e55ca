package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType indicates whether a transaction adds to or takes from the workspace.
type TransactionType string

const (
	Income  TransactionType = "INCOME"
	Expense TransactionType = "EXPENSE"
)

// Transaction is an immutable ledger fact. It is created once by the ledger
// writer together with the aggregate updates it implies, and only ever fully
// deleted after those updates have been reversed.
type Transaction struct {
	TransactionID string          `json:"transactionID"` // Primary Key (e.g., UUID)
	WorkspaceID   string          `json:"workspaceID"`   // FK -> workspaces.workspace_id (NON-NULL)
	BucketID      *string         `json:"bucketID"`      // Nullable FK -> buckets.bucket_id
	Amount        decimal.Decimal `json:"amount"`        // Positive value; precise decimal type
	Type          TransactionType `json:"type"`          // INCOME or EXPENSE (NON-NULL)
	Description   string          `json:"description"`
	Date          time.Time       `json:"date"` // Date the event occurred
	IsAllocated   bool            `json:"isAllocated"`
	AuditFields
}
