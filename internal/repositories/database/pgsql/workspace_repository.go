package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bucketly/bucketly_backend/internal/apperrors"
	"github.com/bucketly/bucketly_backend/internal/core/domain"
	portsrepo "github.com/bucketly/bucketly_backend/internal/core/ports/repositories"
	"github.com/bucketly/bucketly_backend/internal/models"
	"github.com/bucketly/bucketly_backend/internal/utils/mapping"
)

type PgxWorkspaceRepository struct {
	BaseRepository
}

func newPgxWorkspaceRepository(pool *pgxpool.Pool) portsrepo.WorkspaceRepositoryFacade {
	return &PgxWorkspaceRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.WorkspaceRepositoryFacade = (*PgxWorkspaceRepository)(nil)

func (r *PgxWorkspaceRepository) FindWorkspaceByID(ctx context.Context, workspaceID string) (*domain.Workspace, error) {
	query := `
		SELECT workspace_id, user_id, name, currency, total_balance, created_at, created_by, last_updated_at, last_updated_by
		FROM workspaces
		WHERE workspace_id = $1;
	`
	var m models.Workspace
	err := r.Pool.QueryRow(ctx, query, workspaceID).Scan(
		&m.WorkspaceID,
		&m.UserID,
		&m.Name,
		&m.Currency,
		&m.TotalBalance,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find workspace by ID %s: %w", workspaceID, err)
	}

	workspace := mapping.ToDomainWorkspace(m)
	return &workspace, nil
}

func (r *PgxWorkspaceRepository) ListWorkspacesByUserID(ctx context.Context, userID string) ([]domain.Workspace, error) {
	query := `
		SELECT workspace_id, user_id, name, currency, total_balance, created_at, created_by, last_updated_at, last_updated_by
		FROM workspaces
		WHERE user_id = $1
		ORDER BY created_at ASC;
	`
	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query workspaces for user %s: %w", userID, err)
	}
	defer rows.Close()

	modelWorkspaces := []models.Workspace{}
	for rows.Next() {
		var m models.Workspace
		err := rows.Scan(
			&m.WorkspaceID,
			&m.UserID,
			&m.Name,
			&m.Currency,
			&m.TotalBalance,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan workspace row: %w", err)
		}
		modelWorkspaces = append(modelWorkspaces, m)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating workspace rows: %w", rows.Err())
	}

	return mapping.ToDomainWorkspaceSlice(modelWorkspaces), nil
}

func (r *PgxWorkspaceRepository) SaveWorkspace(ctx context.Context, workspace domain.Workspace) error {
	m := mapping.ToModelWorkspace(workspace)
	query := `
		INSERT INTO workspaces (workspace_id, user_id, name, currency, total_balance, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.WorkspaceID,
		m.UserID,
		m.Name,
		m.Currency,
		m.TotalBalance,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save workspace: %w", err)
	}
	return nil
}

func (r *PgxWorkspaceRepository) UpdateWorkspace(ctx context.Context, workspace domain.Workspace) error {
	m := mapping.ToModelWorkspace(workspace)
	query := `
		UPDATE workspaces
		SET name = $1, currency = $2, last_updated_at = $3, last_updated_by = $4
		WHERE workspace_id = $5;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.Name,
		m.Currency,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.WorkspaceID,
	)
	if err != nil {
		return fmt.Errorf("failed to update workspace: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("workspace not found: %w", apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxWorkspaceRepository) DeleteWorkspace(ctx context.Context, workspaceID string) error {
	// Buckets and transactions are removed by ON DELETE CASCADE.
	query := `DELETE FROM workspaces WHERE workspace_id = $1;`
	cmdTag, err := r.Pool.Exec(ctx, query, workspaceID)
	if err != nil {
		return fmt.Errorf("failed to delete workspace: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("workspace not found: %w", apperrors.ErrNotFound)
	}
	return nil
}
