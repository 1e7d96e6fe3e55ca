package domain

import "github.com/shopspring/decimal"

// BucketType distinguishes spending buckets from investment/goal buckets.
// The ledger treats both identically; the type only affects presentation.
type BucketType string

const (
	Spending   BucketType = "SPENDING"
	Investment BucketType = "INVESTMENT"
)

// Bucket is a purpose-based sub-account within a workspace.
//
// Invariant for spending buckets: CurrentBalance = TotalAllocated - TotalSpent.
// At most one bucket per workspace carries IsDefault; the default bucket
// receives allocation remainders and uncategorized direct income.
type Bucket struct {
	BucketID             string          `json:"bucketID"`    // Primary Key (e.g., UUID)
	WorkspaceID          string          `json:"workspaceID"` // FK -> workspaces.workspace_id (NON-NULL)
	Name                 string          `json:"name"`
	Type                 BucketType      `json:"type"`
	AllocationPercentage decimal.Decimal `json:"allocationPercentage"` // 0-100
	IsDefault            bool            `json:"isDefault"`
	CurrentBalance       decimal.Decimal `json:"currentBalance"`
	TotalAllocated       decimal.Decimal `json:"totalAllocated"` // Cumulative income ever routed here
	TotalSpent           decimal.Decimal `json:"totalSpent"`     // Cumulative expense debited here
	AuditFields
}
