package services

import (
	"github.com/bucketly/bucketly_backend/internal/core/domain"
	portsrepo "github.com/bucketly/bucketly_backend/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
)

var oneHundred = decimal.NewFromInt(100)

// AllocationStrategy identifies how an income amount lands on buckets.
// The strategy is decided once, up front, instead of branching on the raw
// flags throughout the writer.
type AllocationStrategy string

const (
	// AllocationPercentageSplit distributes the amount across all buckets of
	// the workspace proportionally to their allocation percentage.
	AllocationPercentageSplit AllocationStrategy = "PERCENTAGE_SPLIT"
	// AllocationDirectCredit credits one explicitly chosen bucket in full.
	AllocationDirectCredit AllocationStrategy = "DIRECT_CREDIT"
	// AllocationDefaultFallback credits the workspace's default bucket in full.
	AllocationDefaultFallback AllocationStrategy = "DEFAULT_FALLBACK"
)

// DecideAllocation picks the income allocation strategy from the command
// flags. isAllocated wins over an explicit bucket; without either the income
// falls back to the default bucket (which may not exist, in which case the
// writer leaves the income unbucketed).
func DecideAllocation(isAllocated bool, bucketID *string) AllocationStrategy {
	switch {
	case isAllocated:
		return AllocationPercentageSplit
	case bucketID != nil:
		return AllocationDirectCredit
	default:
		return AllocationDefaultFallback
	}
}

// SplitByPercentage computes each bucket's share of amount as
// amount * percentage / 100, rounded to currency precision. It returns the
// per-bucket shares and the remainder (amount minus everything distributed).
// The remainder covers percentages summing below 100 and absorbs rounding
// residue; it is negative when percentages sum above 100.
func SplitByPercentage(amount decimal.Decimal, buckets []domain.Bucket) (map[string]decimal.Decimal, decimal.Decimal) {
	shares := make(map[string]decimal.Decimal, len(buckets))
	distributed := decimal.Zero
	for _, b := range buckets {
		if !b.AllocationPercentage.IsPositive() {
			continue
		}
		share := amount.Mul(b.AllocationPercentage).Div(oneHundred).Round(2)
		if share.IsZero() {
			continue
		}
		shares[b.BucketID] = share
		distributed = distributed.Add(share)
	}
	return shares, amount.Sub(distributed)
}

// AllocateIncome produces the final per-bucket credit map for a
// percentage-split income: percentage shares plus any positive remainder
// routed to the default bucket. The returned leftover is non-zero only when
// there is a positive remainder and the workspace has no default bucket; it
// stays on the workspace balance without a bucket attribution.
//
// The reverser calls this with the same inputs and negates the result, so
// create followed by delete cancels out exactly as long as percentages did
// not change in between.
func AllocateIncome(amount decimal.Decimal, buckets []domain.Bucket) (map[string]decimal.Decimal, decimal.Decimal) {
	shares, remainder := SplitByPercentage(amount, buckets)
	if remainder.IsPositive() {
		for _, b := range buckets {
			if b.IsDefault {
				shares[b.BucketID] = shares[b.BucketID].Add(remainder)
				return shares, decimal.Zero
			}
		}
	}
	return shares, remainder
}

// creditDeltas converts a per-bucket credit map into ledger bucket deltas,
// negating when reversing.
func creditDeltas(credits map[string]decimal.Decimal, reverse bool) map[string]portsrepo.BucketDelta {
	deltas := make(map[string]portsrepo.BucketDelta, len(credits))
	for bucketID, credit := range credits {
		delta := portsrepo.BucketDelta{Balance: credit, Allocated: credit}
		if reverse {
			delta = delta.Neg()
		}
		deltas[bucketID] = delta
	}
	return deltas
}
