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

const bucketColumns = `bucket_id, workspace_id, name, type, allocation_percentage, is_default, current_balance, total_allocated, total_spent, created_at, created_by, last_updated_at, last_updated_by`

type PgxBucketRepository struct {
	BaseRepository
}

func newPgxBucketRepository(pool *pgxpool.Pool) portsrepo.BucketRepositoryFacade {
	return &PgxBucketRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.BucketRepositoryFacade = (*PgxBucketRepository)(nil)

func (r *PgxBucketRepository) FindBucketByID(ctx context.Context, bucketID string) (*domain.Bucket, error) {
	query := `SELECT ` + bucketColumns + ` FROM buckets WHERE bucket_id = $1;`
	m, err := scanBucketRow(r.Pool.QueryRow(ctx, query, bucketID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find bucket by ID %s: %w", bucketID, err)
	}

	bucket := mapping.ToDomainBucket(*m)
	return &bucket, nil
}

func (r *PgxBucketRepository) FindBucketsByWorkspaceID(ctx context.Context, workspaceID string) ([]domain.Bucket, error) {
	query := `SELECT ` + bucketColumns + ` FROM buckets WHERE workspace_id = $1 ORDER BY created_at ASC;`
	rows, err := r.Pool.Query(ctx, query, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to query buckets for workspace %s: %w", workspaceID, err)
	}
	defer rows.Close()

	modelBuckets := []models.Bucket{}
	for rows.Next() {
		m, err := scanBucketRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bucket row: %w", err)
		}
		modelBuckets = append(modelBuckets, *m)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating bucket rows: %w", rows.Err())
	}

	return mapping.ToDomainBucketSlice(modelBuckets), nil
}

func (r *PgxBucketRepository) FindDefaultBucket(ctx context.Context, workspaceID string) (*domain.Bucket, error) {
	query := `SELECT ` + bucketColumns + ` FROM buckets WHERE workspace_id = $1 AND is_default;`
	m, err := scanBucketRow(r.Pool.QueryRow(ctx, query, workspaceID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find default bucket for workspace %s: %w", workspaceID, err)
	}

	bucket := mapping.ToDomainBucket(*m)
	return &bucket, nil
}

// SaveBucket inserts a bucket. When the bucket is flagged default, the
// previous default of the workspace is cleared in the same database
// transaction so at most one default exists per workspace.
func (r *PgxBucketRepository) SaveBucket(ctx context.Context, bucket domain.Bucket) error {
	m := mapping.ToModelBucket(bucket)

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if m.IsDefault {
		if err := clearDefaultBucket(ctx, tx, m.WorkspaceID, m.BucketID, m.LastUpdatedBy); err != nil {
			return err
		}
	}

	query := `
		INSERT INTO buckets (` + bucketColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err = tx.Exec(ctx, query,
		m.BucketID,
		m.WorkspaceID,
		m.Name,
		m.Type,
		m.AllocationPercentage,
		m.IsDefault,
		m.CurrentBalance,
		m.TotalAllocated,
		m.TotalSpent,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save bucket: %w", err)
	}

	return r.Commit(ctx, tx)
}

// UpdateBucket updates bucket metadata with the same default-flag
// exclusivity guarantee as SaveBucket. Balance columns are owned by the
// ledger and never touched here.
func (r *PgxBucketRepository) UpdateBucket(ctx context.Context, bucket domain.Bucket) error {
	m := mapping.ToModelBucket(bucket)

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if m.IsDefault {
		if err := clearDefaultBucket(ctx, tx, m.WorkspaceID, m.BucketID, m.LastUpdatedBy); err != nil {
			return err
		}
	}

	query := `
		UPDATE buckets
		SET name = $1, type = $2, allocation_percentage = $3, is_default = $4, last_updated_at = $5, last_updated_by = $6
		WHERE bucket_id = $7;
	`
	cmdTag, err := tx.Exec(ctx, query,
		m.Name,
		m.Type,
		m.AllocationPercentage,
		m.IsDefault,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.BucketID,
	)
	if err != nil {
		return fmt.Errorf("failed to update bucket: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("bucket not found: %w", apperrors.ErrNotFound)
	}

	return r.Commit(ctx, tx)
}

func clearDefaultBucket(ctx context.Context, tx pgx.Tx, workspaceID, keepBucketID, updatedBy string) error {
	query := `
		UPDATE buckets
		SET is_default = FALSE, last_updated_at = NOW(), last_updated_by = $3
		WHERE workspace_id = $1 AND is_default AND bucket_id <> $2;
	`
	if _, err := tx.Exec(ctx, query, workspaceID, keepBucketID, updatedBy); err != nil {
		return fmt.Errorf("failed to clear previous default bucket: %w", err)
	}
	return nil
}

func scanBucketRow(row pgx.Row) (*models.Bucket, error) {
	var m models.Bucket
	err := row.Scan(
		&m.BucketID,
		&m.WorkspaceID,
		&m.Name,
		&m.Type,
		&m.AllocationPercentage,
		&m.IsDefault,
		&m.CurrentBalance,
		&m.TotalAllocated,
		&m.TotalSpent,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}
