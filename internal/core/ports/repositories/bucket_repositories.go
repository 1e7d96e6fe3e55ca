package repositories

import (
	"context"

	"github.com/bucketly/bucketly_backend/internal/core/domain"
)

// BucketReader defines read operations for bucket data
type BucketReader interface {
	// FindBucketByID retrieves a specific bucket by its ID.
	FindBucketByID(ctx context.Context, bucketID string) (*domain.Bucket, error)

	// FindBucketsByWorkspaceID retrieves all buckets of a workspace, oldest first.
	FindBucketsByWorkspaceID(ctx context.Context, workspaceID string) ([]domain.Bucket, error)

	// FindDefaultBucket retrieves the bucket flagged is_default for a workspace.
	// Returns apperrors.ErrNotFound when the workspace has no default bucket.
	FindDefaultBucket(ctx context.Context, workspaceID string) (*domain.Bucket, error)
}

// BucketWriter defines write operations for bucket data
type BucketWriter interface {
	// SaveBucket persists a new bucket. When the bucket is flagged default,
	// the previous default of the workspace is cleared in the same database
	// transaction.
	SaveBucket(ctx context.Context, bucket domain.Bucket) error

	// UpdateBucket updates a bucket's metadata (name, type, percentage,
	// default flag), with the same default-flag exclusivity guarantee as
	// SaveBucket. Balance fields are owned by the ledger and not touched.
	UpdateBucket(ctx context.Context, bucket domain.Bucket) error
}

// BucketRepositoryFacade combines all bucket-related repository interfaces
type BucketRepositoryFacade interface {
	BucketReader
	BucketWriter
}
