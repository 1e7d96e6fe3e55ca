package dto

import (
	"time"

	"github.com/bucketly/bucketly_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateWorkspaceRequest defines data for creating a new workspace.
type CreateWorkspaceRequest struct {
	Name     string `json:"name" binding:"required"`
	Currency string `json:"currency" binding:"required,oneof=BRL USD EUR"`
}

// UpdateWorkspaceRequest defines data for updating a workspace.
// Using pointers to differentiate between omitted fields and zero-value fields.
type UpdateWorkspaceRequest struct {
	Name     *string `json:"name"`
	Currency *string `json:"currency" binding:"omitempty,oneof=BRL USD EUR"`
}

// WorkspaceResponse defines data returned for a workspace.
type WorkspaceResponse struct {
	WorkspaceID  string          `json:"workspaceID"`
	Name         string          `json:"name"`
	Currency     string          `json:"currency"`
	TotalBalance decimal.Decimal `json:"totalBalance"`
	CreatedAt    time.Time       `json:"createdAt"`
}

// ToWorkspaceResponse converts domain.Workspace to DTO.
func ToWorkspaceResponse(w *domain.Workspace) WorkspaceResponse {
	return WorkspaceResponse{
		WorkspaceID:  w.WorkspaceID,
		Name:         w.Name,
		Currency:     string(w.Currency),
		TotalBalance: w.TotalBalance,
		CreatedAt:    w.CreatedAt,
	}
}

// ListWorkspacesResponse wraps a list of workspaces.
type ListWorkspacesResponse struct {
	Workspaces []WorkspaceResponse `json:"workspaces"`
}

// ToListWorkspacesResponse converts a slice of domain.Workspace to DTO.
func ToListWorkspacesResponse(ws []domain.Workspace) ListWorkspacesResponse {
	list := make([]WorkspaceResponse, len(ws))
	for i, w := range ws {
		list[i] = ToWorkspaceResponse(&w)
	}
	return ListWorkspacesResponse{Workspaces: list}
}
