package mapping

import (
	"github.com/bucketly/bucketly_backend/internal/core/domain"
	"github.com/bucketly/bucketly_backend/internal/models"
)

// ToModelBucket converts a domain Bucket to a model Bucket
func ToModelBucket(d domain.Bucket) models.Bucket {
	return models.Bucket{
		BucketID:             d.BucketID,
		WorkspaceID:          d.WorkspaceID,
		Name:                 d.Name,
		Type:                 models.BucketType(d.Type),
		AllocationPercentage: d.AllocationPercentage,
		IsDefault:            d.IsDefault,
		CurrentBalance:       d.CurrentBalance,
		TotalAllocated:       d.TotalAllocated,
		TotalSpent:           d.TotalSpent,
		AuditFields:          ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainBucket converts a model Bucket to a domain Bucket
func ToDomainBucket(m models.Bucket) domain.Bucket {
	return domain.Bucket{
		BucketID:             m.BucketID,
		WorkspaceID:          m.WorkspaceID,
		Name:                 m.Name,
		Type:                 domain.BucketType(m.Type),
		AllocationPercentage: m.AllocationPercentage,
		IsDefault:            m.IsDefault,
		CurrentBalance:       m.CurrentBalance,
		TotalAllocated:       m.TotalAllocated,
		TotalSpent:           m.TotalSpent,
		AuditFields:          ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainBucketSlice converts a slice of model Buckets to domain Buckets
func ToDomainBucketSlice(ms []models.Bucket) []domain.Bucket {
	ds := make([]domain.Bucket, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainBucket(m)
	}
	return ds
}
