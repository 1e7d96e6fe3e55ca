package mapping

import (
	"github.com/bucketly/bucketly_backend/internal/core/domain"
	"github.com/bucketly/bucketly_backend/internal/models"
)

// ToModelWorkspace converts a domain Workspace to a model Workspace
func ToModelWorkspace(d domain.Workspace) models.Workspace {
	return models.Workspace{
		WorkspaceID:  d.WorkspaceID,
		UserID:       d.UserID,
		Name:         d.Name,
		Currency:     string(d.Currency),
		TotalBalance: d.TotalBalance,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainWorkspace converts a model Workspace to a domain Workspace
func ToDomainWorkspace(m models.Workspace) domain.Workspace {
	return domain.Workspace{
		WorkspaceID:  m.WorkspaceID,
		UserID:       m.UserID,
		Name:         m.Name,
		Currency:     domain.CurrencyCode(m.Currency),
		TotalBalance: m.TotalBalance,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainWorkspaceSlice converts a slice of model Workspaces to domain Workspaces
func ToDomainWorkspaceSlice(ms []models.Workspace) []domain.Workspace {
	ds := make([]domain.Workspace, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainWorkspace(m)
	}
	return ds
}
