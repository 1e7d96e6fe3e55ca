package services

import (
	"context"

	"github.com/bucketly/bucketly_backend/internal/core/domain"
	"github.com/bucketly/bucketly_backend/internal/dto"
)

// WorkspaceReaderSvc defines read operations for workspace data
type WorkspaceReaderSvc interface {
	// GetWorkspace retrieves a workspace the user owns.
	GetWorkspace(ctx context.Context, workspaceID string, requestingUserID string) (*domain.Workspace, error)

	// ListWorkspaces retrieves all workspaces owned by the user.
	ListWorkspaces(ctx context.Context, userID string) ([]domain.Workspace, error)
}

// WorkspaceWriterSvc defines write operations for workspace data
type WorkspaceWriterSvc interface {
	// CreateWorkspace persists a new workspace owned by the creator.
	CreateWorkspace(ctx context.Context, req dto.CreateWorkspaceRequest, creatorUserID string) (*domain.Workspace, error)

	// UpdateWorkspace updates name and currency of an owned workspace.
	UpdateWorkspace(ctx context.Context, workspaceID string, req dto.UpdateWorkspaceRequest, requestingUserID string) (*domain.Workspace, error)

	// DeleteWorkspace removes an owned workspace and everything in it.
	DeleteWorkspace(ctx context.Context, workspaceID string, requestingUserID string) error
}

// WorkspaceAuthorizerSvc defines the ownership check shared by all
// workspace-scoped operations.
type WorkspaceAuthorizerSvc interface {
	// AuthorizeOwner verifies the workspace exists and is owned by userID,
	// returning the workspace. A missing workspace yields
	// apperrors.ErrNotFound; a foreign owner yields apperrors.ErrForbidden.
	AuthorizeOwner(ctx context.Context, userID, workspaceID string) (*domain.Workspace, error)
}

// WorkspaceSvcFacade combines all workspace-related service interfaces
type WorkspaceSvcFacade interface {
	WorkspaceReaderSvc
	WorkspaceWriterSvc
	WorkspaceAuthorizerSvc
}
