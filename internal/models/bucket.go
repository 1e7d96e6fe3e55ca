package models

import "github.com/shopspring/decimal"

// BucketType mirrors the bucket type enum stored in the buckets table.
type BucketType string

const (
	Spending   BucketType = "SPENDING"
	Investment BucketType = "INVESTMENT"
)

// Bucket represents a row of the buckets table.
type Bucket struct {
	BucketID             string          `db:"bucket_id"`
	WorkspaceID          string          `db:"workspace_id"`
	Name                 string          `db:"name"`
	Type                 BucketType      `db:"type"`
	AllocationPercentage decimal.Decimal `db:"allocation_percentage"`
	IsDefault            bool            `db:"is_default"`
	CurrentBalance       decimal.Decimal `db:"current_balance"`
	TotalAllocated       decimal.Decimal `db:"total_allocated"`
	TotalSpent           decimal.Decimal `db:"total_spent"`
	AuditFields
}
