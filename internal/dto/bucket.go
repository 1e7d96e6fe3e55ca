package dto

import (
	"time"

	"github.com/bucketly/bucketly_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateBucketRequest defines data for creating a new bucket.
type CreateBucketRequest struct {
	Name                 string          `json:"name" binding:"required"`
	Type                 string          `json:"type" binding:"required,oneof=SPENDING INVESTMENT"`
	AllocationPercentage decimal.Decimal `json:"allocationPercentage"`
	IsDefault            bool            `json:"isDefault"`
}

// UpdateBucketRequest defines data for updating bucket metadata.
// Using pointers to differentiate between omitted fields and zero-value fields.
type UpdateBucketRequest struct {
	Name                 *string          `json:"name"`
	Type                 *string          `json:"type" binding:"omitempty,oneof=SPENDING INVESTMENT"`
	AllocationPercentage *decimal.Decimal `json:"allocationPercentage"`
	IsDefault            *bool            `json:"isDefault"`
}

// BucketResponse defines data returned for a bucket, including the share of
// the workspace balance it currently holds.
type BucketResponse struct {
	BucketID             string          `json:"bucketID"`
	WorkspaceID          string          `json:"workspaceID"`
	Name                 string          `json:"name"`
	Type                 string          `json:"type"`
	AllocationPercentage decimal.Decimal `json:"allocationPercentage"`
	IsDefault            bool            `json:"isDefault"`
	CurrentBalance       decimal.Decimal `json:"currentBalance"`
	TotalAllocated       decimal.Decimal `json:"totalAllocated"`
	TotalSpent           decimal.Decimal `json:"totalSpent"`
	RealAllocationPct    decimal.Decimal `json:"realAllocationPercentage"`
	CreatedAt            time.Time       `json:"createdAt"`
}

// ToBucketResponse converts a domain.Bucket to DTO, deriving the real
// allocation percentage from the workspace's total balance.
func ToBucketResponse(b *domain.Bucket, workspaceBalance decimal.Decimal) BucketResponse {
	realPct := decimal.Zero
	if workspaceBalance.IsPositive() {
		realPct = b.CurrentBalance.Div(workspaceBalance).Mul(decimal.NewFromInt(100)).Round(2)
	}
	return BucketResponse{
		BucketID:             b.BucketID,
		WorkspaceID:          b.WorkspaceID,
		Name:                 b.Name,
		Type:                 string(b.Type),
		AllocationPercentage: b.AllocationPercentage,
		IsDefault:            b.IsDefault,
		CurrentBalance:       b.CurrentBalance,
		TotalAllocated:       b.TotalAllocated,
		TotalSpent:           b.TotalSpent,
		RealAllocationPct:    realPct,
		CreatedAt:            b.CreatedAt,
	}
}
