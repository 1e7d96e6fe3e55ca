package services

import (
	"context"
	"errors"
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

// workspaceService implements the WorkspaceSvcFacade interface
type workspaceService struct {
	BaseService
	workspaceRepo portsrepo.WorkspaceRepositoryFacade
}

// NewWorkspaceService creates a new workspace service with the provided dependencies
func NewWorkspaceService(workspaceRepo portsrepo.WorkspaceRepositoryFacade) portssvc.WorkspaceSvcFacade {
	return &workspaceService{
		workspaceRepo: workspaceRepo,
	}
}

var _ portssvc.WorkspaceSvcFacade = (*workspaceService)(nil)

// AuthorizeOwner verifies the workspace exists and is owned by userID.
// A missing workspace yields ErrNotFound; a foreign owner yields ErrForbidden.
func (s *workspaceService) AuthorizeOwner(ctx context.Context, userID, workspaceID string) (*domain.Workspace, error) {
	workspace, err := s.workspaceRepo.FindWorkspaceByID(ctx, workspaceID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find workspace for authorization",
				slog.String("workspace_id", workspaceID))
		}
		return nil, err
	}

	if workspace.UserID != userID {
		s.LogWarn(ctx, "User is not the owner of the workspace",
			slog.String("user_id", userID),
			slog.String("workspace_id", workspaceID))
		return nil, apperrors.ErrForbidden
	}

	return workspace, nil
}

// GetWorkspace retrieves a workspace the user owns
func (s *workspaceService) GetWorkspace(ctx context.Context, workspaceID string, requestingUserID string) (*domain.Workspace, error) {
	return s.AuthorizeOwner(ctx, requestingUserID, workspaceID)
}

// ListWorkspaces retrieves all workspaces owned by the user
func (s *workspaceService) ListWorkspaces(ctx context.Context, userID string) ([]domain.Workspace, error) {
	workspaces, err := s.workspaceRepo.ListWorkspacesByUserID(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list workspaces for user",
			slog.String("user_id", userID))
		return nil, err
	}

	if workspaces == nil {
		return []domain.Workspace{}, nil
	}
	return workspaces, nil
}

// CreateWorkspace creates a new workspace owned by the creator
func (s *workspaceService) CreateWorkspace(ctx context.Context, req dto.CreateWorkspaceRequest, creatorUserID string) (*domain.Workspace, error) {
	now := time.Now().UTC()

	workspace := domain.Workspace{
		WorkspaceID:  uuid.NewString(),
		UserID:       creatorUserID,
		Name:         req.Name,
		Currency:     domain.CurrencyCode(req.Currency),
		TotalBalance: decimal.Zero,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.workspaceRepo.SaveWorkspace(ctx, workspace); err != nil {
		s.LogError(ctx, err, "Failed to save workspace",
			slog.String("workspace_id", workspace.WorkspaceID))
		return nil, fmt.Errorf("failed to save workspace: %w", err)
	}

	s.LogInfo(ctx, "Workspace created successfully",
		slog.String("workspace_id", workspace.WorkspaceID),
		slog.String("creator_id", creatorUserID))
	return &workspace, nil
}

// UpdateWorkspace updates name and currency of an owned workspace
func (s *workspaceService) UpdateWorkspace(ctx context.Context, workspaceID string, req dto.UpdateWorkspaceRequest, requestingUserID string) (*domain.Workspace, error) {
	workspace, err := s.AuthorizeOwner(ctx, requestingUserID, workspaceID)
	if err != nil {
		return nil, err
	}

	updated := false
	if req.Name != nil {
		workspace.Name = *req.Name
		updated = true
	}
	if req.Currency != nil {
		workspace.Currency = domain.CurrencyCode(*req.Currency)
		updated = true
	}

	if !updated {
		return workspace, nil
	}

	workspace.LastUpdatedAt = time.Now().UTC()
	workspace.LastUpdatedBy = requestingUserID

	if err := s.workspaceRepo.UpdateWorkspace(ctx, *workspace); err != nil {
		s.LogError(ctx, err, "Failed to update workspace",
			slog.String("workspace_id", workspaceID))
		return nil, fmt.Errorf("failed to update workspace: %w", err)
	}

	s.LogInfo(ctx, "Workspace updated successfully", slog.String("workspace_id", workspaceID))
	return workspace, nil
}

// DeleteWorkspace removes an owned workspace; buckets and transactions go with it
func (s *workspaceService) DeleteWorkspace(ctx context.Context, workspaceID string, requestingUserID string) error {
	if _, err := s.AuthorizeOwner(ctx, requestingUserID, workspaceID); err != nil {
		return err
	}

	if err := s.workspaceRepo.DeleteWorkspace(ctx, workspaceID); err != nil {
		s.LogError(ctx, err, "Failed to delete workspace",
			slog.String("workspace_id", workspaceID))
		return fmt.Errorf("failed to delete workspace: %w", err)
	}

	s.LogInfo(ctx, "Workspace deleted",
		slog.String("workspace_id", workspaceID),
		slog.String("user_id", requestingUserID))
	return nil
}
