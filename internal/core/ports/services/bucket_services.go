package services

import (
	"context"

	"github.com/bucketly/bucketly_backend/internal/dto"
)

// BucketReaderSvc defines read operations for bucket data
type BucketReaderSvc interface {
	// GetBucket retrieves a bucket with its derived stats.
	GetBucket(ctx context.Context, workspaceID, bucketID string, requestingUserID string) (*dto.BucketResponse, error)

	// ListBuckets retrieves all buckets of a workspace with derived stats.
	ListBuckets(ctx context.Context, workspaceID string, requestingUserID string) ([]dto.BucketResponse, error)
}

// BucketWriterSvc defines write operations for bucket data
type BucketWriterSvc interface {
	// CreateBucket adds a bucket to an owned workspace.
	CreateBucket(ctx context.Context, workspaceID string, req dto.CreateBucketRequest, creatorUserID string) (*dto.BucketResponse, error)

	// UpdateBucket updates bucket metadata on an owned workspace.
	UpdateBucket(ctx context.Context, workspaceID, bucketID string, req dto.UpdateBucketRequest, requestingUserID string) (*dto.BucketResponse, error)
}

// BucketSvcFacade combines all bucket-related service interfaces
type BucketSvcFacade interface {
	BucketReaderSvc
	BucketWriterSvc
}
