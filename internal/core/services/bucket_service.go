package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bucketly/bucketly_backend/internal/apperrors"
	"github.com/bucketly/bucketly_backend/internal/core/domain"
	portsrepo "github.com/bucketly/bucketly_backend/internal/core/ports/repositories"
	portssvc "github.com/bucketly/bucketly_backend/internal/core/ports/services"
	"github.com/bucketly/bucketly_backend/internal/dto"
)

// bucketService implements the BucketSvcFacade interface
type bucketService struct {
	BaseService
	bucketRepo   portsrepo.BucketRepositoryFacade
	workspaceSvc portssvc.WorkspaceAuthorizerSvc
}

// NewBucketService creates a new bucket service with the provided dependencies
func NewBucketService(bucketRepo portsrepo.BucketRepositoryFacade, workspaceSvc portssvc.WorkspaceAuthorizerSvc) portssvc.BucketSvcFacade {
	return &bucketService{
		bucketRepo:   bucketRepo,
		workspaceSvc: workspaceSvc,
	}
}

var _ portssvc.BucketSvcFacade = (*bucketService)(nil)

// GetBucket retrieves a bucket with its derived stats
func (s *bucketService) GetBucket(ctx context.Context, workspaceID, bucketID string, requestingUserID string) (*dto.BucketResponse, error) {
	workspace, err := s.workspaceSvc.AuthorizeOwner(ctx, requestingUserID, workspaceID)
	if err != nil {
		return nil, err
	}

	bucket, err := s.findWorkspaceBucket(ctx, workspaceID, bucketID)
	if err != nil {
		return nil, err
	}

	resp := dto.ToBucketResponse(bucket, workspace.TotalBalance)
	return &resp, nil
}

// ListBuckets retrieves all buckets of a workspace with derived stats
func (s *bucketService) ListBuckets(ctx context.Context, workspaceID string, requestingUserID string) ([]dto.BucketResponse, error) {
	workspace, err := s.workspaceSvc.AuthorizeOwner(ctx, requestingUserID, workspaceID)
	if err != nil {
		return nil, err
	}

	buckets, err := s.bucketRepo.FindBucketsByWorkspaceID(ctx, workspaceID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list buckets",
			slog.String("workspace_id", workspaceID))
		return nil, err
	}

	responses := make([]dto.BucketResponse, len(buckets))
	for i := range buckets {
		responses[i] = dto.ToBucketResponse(&buckets[i], workspace.TotalBalance)
	}
	return responses, nil
}

// CreateBucket adds a bucket to an owned workspace
func (s *bucketService) CreateBucket(ctx context.Context, workspaceID string, req dto.CreateBucketRequest, creatorUserID string) (*dto.BucketResponse, error) {
	workspace, err := s.workspaceSvc.AuthorizeOwner(ctx, creatorUserID, workspaceID)
	if err != nil {
		return nil, err
	}

	if err := s.validatePercentage(ctx, workspaceID, req.AllocationPercentage, ""); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	bucket := domain.Bucket{
		BucketID:             uuid.NewString(),
		WorkspaceID:          workspaceID,
		Name:                 req.Name,
		Type:                 domain.BucketType(req.Type),
		AllocationPercentage: req.AllocationPercentage,
		IsDefault:            req.IsDefault,
		CurrentBalance:       decimal.Zero,
		TotalAllocated:       decimal.Zero,
		TotalSpent:           decimal.Zero,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.bucketRepo.SaveBucket(ctx, bucket); err != nil {
		s.LogError(ctx, err, "Failed to save bucket",
			slog.String("workspace_id", workspaceID),
			slog.String("bucket_id", bucket.BucketID))
		return nil, fmt.Errorf("failed to save bucket: %w", err)
	}

	s.LogInfo(ctx, "Bucket created successfully",
		slog.String("workspace_id", workspaceID),
		slog.String("bucket_id", bucket.BucketID))

	resp := dto.ToBucketResponse(&bucket, workspace.TotalBalance)
	return &resp, nil
}

// UpdateBucket updates bucket metadata on an owned workspace
func (s *bucketService) UpdateBucket(ctx context.Context, workspaceID, bucketID string, req dto.UpdateBucketRequest, requestingUserID string) (*dto.BucketResponse, error) {
	workspace, err := s.workspaceSvc.AuthorizeOwner(ctx, requestingUserID, workspaceID)
	if err != nil {
		return nil, err
	}

	bucket, err := s.findWorkspaceBucket(ctx, workspaceID, bucketID)
	if err != nil {
		return nil, err
	}

	if req.AllocationPercentage != nil {
		if err := s.validatePercentage(ctx, workspaceID, *req.AllocationPercentage, bucketID); err != nil {
			return nil, err
		}
		bucket.AllocationPercentage = *req.AllocationPercentage
	}
	if req.Name != nil {
		bucket.Name = *req.Name
	}
	if req.Type != nil {
		bucket.Type = domain.BucketType(*req.Type)
	}
	if req.IsDefault != nil {
		bucket.IsDefault = *req.IsDefault
	}

	bucket.LastUpdatedAt = time.Now().UTC()
	bucket.LastUpdatedBy = requestingUserID

	if err := s.bucketRepo.UpdateBucket(ctx, *bucket); err != nil {
		s.LogError(ctx, err, "Failed to update bucket",
			slog.String("bucket_id", bucketID))
		return nil, fmt.Errorf("failed to update bucket: %w", err)
	}

	s.LogInfo(ctx, "Bucket updated successfully", slog.String("bucket_id", bucketID))

	resp := dto.ToBucketResponse(bucket, workspace.TotalBalance)
	return &resp, nil
}

// findWorkspaceBucket loads a bucket and hides buckets of other workspaces
// behind a not-found error.
func (s *bucketService) findWorkspaceBucket(ctx context.Context, workspaceID, bucketID string) (*domain.Bucket, error) {
	bucket, err := s.bucketRepo.FindBucketByID(ctx, bucketID)
	if err != nil {
		return nil, err
	}
	if bucket.WorkspaceID != workspaceID {
		return nil, apperrors.ErrNotFound
	}
	return bucket, nil
}

// validatePercentage checks that a bucket's allocation percentage is within
// [0, 100] and that the workspace-wide sum stays at or below 100.
// excludeBucketID skips the bucket being updated so its old percentage does
// not count against the new one.
func (s *bucketService) validatePercentage(ctx context.Context, workspaceID string, pct decimal.Decimal, excludeBucketID string) error {
	if pct.IsNegative() || pct.GreaterThan(oneHundred) {
		return fmt.Errorf("%w: allocation percentage must be between 0 and 100", apperrors.ErrValidation)
	}

	buckets, err := s.bucketRepo.FindBucketsByWorkspaceID(ctx, workspaceID)
	if err != nil {
		return err
	}

	total := pct
	for _, b := range buckets {
		if b.BucketID == excludeBucketID {
			continue
		}
		total = total.Add(b.AllocationPercentage)
	}
	if total.GreaterThan(oneHundred) {
		return fmt.Errorf("%w: allocation percentages would sum to %s, above 100",
			apperrors.ErrValidation, total.String())
	}
	return nil
}
