package pgsql

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/bucketly/bucketly_backend/internal/apperrors"
	"github.com/bucketly/bucketly_backend/internal/core/domain"
	portsrepo "github.com/bucketly/bucketly_backend/internal/core/ports/repositories"
	"github.com/bucketly/bucketly_backend/internal/models"
	"github.com/bucketly/bucketly_backend/internal/utils/mapping"
	"github.com/bucketly/bucketly_backend/internal/utils/pagination"
)

type PgxTransactionRepository struct {
	BaseRepository
}

// newPgxTransactionRepository creates a new repository for the transaction ledger.
func newPgxTransactionRepository(pool *pgxpool.Pool) portsrepo.TransactionRepositoryWithTx {
	return &PgxTransactionRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.TransactionRepositoryWithTx = (*PgxTransactionRepository)(nil)

// SaveTransaction inserts the transaction row and applies the workspace and
// bucket deltas inside one database transaction. Touched rows are locked
// first and aggregates are moved with atomic column increments, so two
// concurrent writers serialize at the row locks instead of clobbering each
// other's read-modify-write.
func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction, workspaceDelta decimal.Decimal, bucketDeltas map[string]portsrepo.BucketDelta) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := r.lockLedgerRows(ctx, tx, txn.WorkspaceID, bucketDeltas); err != nil {
		return err
	}

	m := mapping.ToModelTransaction(txn)
	insertQuery := `
		INSERT INTO transactions (transaction_id, workspace_id, bucket_id, amount, type, description, date, is_allocated, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err = tx.Exec(ctx, insertQuery,
		m.TransactionID,
		m.WorkspaceID,
		m.BucketID,
		m.Amount,
		m.Type,
		m.Description,
		m.Date,
		m.IsAllocated,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert transaction "+m.TransactionID, err)
	}

	if err := r.applyDeltas(ctx, tx, txn, workspaceDelta, bucketDeltas); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// DeleteTransaction applies the already inverted deltas and removes the
// transaction row inside one database transaction. The row only disappears
// when every aggregate reversal succeeded.
func (r *PgxTransactionRepository) DeleteTransaction(ctx context.Context, txn domain.Transaction, workspaceDelta decimal.Decimal, bucketDeltas map[string]portsrepo.BucketDelta) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := r.lockLedgerRows(ctx, tx, txn.WorkspaceID, bucketDeltas); err != nil {
		return err
	}

	if err := r.applyDeltas(ctx, tx, txn, workspaceDelta, bucketDeltas); err != nil {
		return err
	}

	cmdTag, err := tx.Exec(ctx, `DELETE FROM transactions WHERE transaction_id = $1;`, txn.TransactionID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete transaction "+txn.TransactionID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return r.Commit(ctx, tx)
}

// lockLedgerRows takes FOR UPDATE locks on the workspace row and every
// touched bucket row. Buckets are locked in sorted ID order so concurrent
// ledger operations on overlapping bucket sets cannot deadlock.
func (r *PgxTransactionRepository) lockLedgerRows(ctx context.Context, tx pgx.Tx, workspaceID string, bucketDeltas map[string]portsrepo.BucketDelta) error {
	var balance decimal.Decimal
	err := tx.QueryRow(ctx, `SELECT total_balance FROM workspaces WHERE workspace_id = $1 FOR UPDATE;`, workspaceID).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		return apperrors.NewAppError(500, "failed to lock workspace "+workspaceID, err)
	}

	if len(bucketDeltas) == 0 {
		return nil
	}

	bucketIDs := make([]string, 0, len(bucketDeltas))
	for bucketID := range bucketDeltas {
		bucketIDs = append(bucketIDs, bucketID)
	}
	sort.Strings(bucketIDs)

	rows, err := tx.Query(ctx, `SELECT bucket_id FROM buckets WHERE bucket_id = ANY($1) AND workspace_id = $2 ORDER BY bucket_id FOR UPDATE;`, bucketIDs, workspaceID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to lock buckets", err)
	}
	defer rows.Close()

	locked := 0
	for rows.Next() {
		var bucketID string
		if err := rows.Scan(&bucketID); err != nil {
			return apperrors.NewAppError(500, "failed to scan locked bucket row", err)
		}
		locked++
	}
	if rows.Err() != nil {
		return apperrors.NewAppError(500, "error iterating locked bucket rows", rows.Err())
	}
	if locked != len(bucketIDs) {
		return fmt.Errorf("bucket missing from workspace %s: %w", workspaceID, apperrors.ErrNotFound)
	}
	return nil
}

// applyDeltas moves the workspace and bucket aggregates with atomic column
// increments batched into one round trip.
func (r *PgxTransactionRepository) applyDeltas(ctx context.Context, tx pgx.Tx, txn domain.Transaction, workspaceDelta decimal.Decimal, bucketDeltas map[string]portsrepo.BucketDelta) error {
	now := txn.LastUpdatedAt
	userID := txn.LastUpdatedBy

	batch := &pgx.Batch{}
	if !workspaceDelta.IsZero() {
		batch.Queue(`
			UPDATE workspaces
			SET total_balance = total_balance + $1, last_updated_at = $2, last_updated_by = $3
			WHERE workspace_id = $4;
		`, workspaceDelta, now, userID, txn.WorkspaceID)
	}

	bucketQuery := `
		UPDATE buckets
		SET current_balance = current_balance + $1,
		    total_allocated = total_allocated + $2,
		    total_spent = total_spent + $3,
		    last_updated_at = $4,
		    last_updated_by = $5
		WHERE bucket_id = $6;
	`
	bucketIDs := make([]string, 0, len(bucketDeltas))
	for bucketID := range bucketDeltas {
		bucketIDs = append(bucketIDs, bucketID)
	}
	sort.Strings(bucketIDs)
	for _, bucketID := range bucketIDs {
		delta := bucketDeltas[bucketID]
		if delta.IsZero() {
			continue
		}
		batch.Queue(bucketQuery, delta.Balance, delta.Allocated, delta.Spent, now, userID, bucketID)
	}

	if batch.Len() == 0 {
		return nil
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to apply balance deltas for transaction "+txn.TransactionID, err)
	}
	return nil
}

func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	query := `
		SELECT transaction_id, workspace_id, bucket_id, amount, type, description, date, is_allocated, created_at, created_by, last_updated_at, last_updated_by
		FROM transactions
		WHERE transaction_id = $1;
	`
	m, err := scanTransactionRow(r.Pool.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transaction by ID %s: %w", transactionID, err)
	}

	txn := mapping.ToDomainTransaction(*m)
	return &txn, nil
}

// ListTransactionsByWorkspace retrieves a page of transactions ordered by
// date desc, created_at desc, using token-based pagination.
func (r *PgxTransactionRepository) ListTransactionsByWorkspace(ctx context.Context, workspaceID string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// Fetch one extra row to know whether there is a next page.
	fetchLimit := limit + 1

	baseQuery := `
		SELECT transaction_id, workspace_id, bucket_id, amount, type, description, date, is_allocated, created_at, created_by, last_updated_at, last_updated_by
		FROM transactions
		WHERE workspace_id = $1
	`
	orderByClause := `ORDER BY date DESC, created_at DESC`

	args := []interface{}{workspaceID}
	query := baseQuery

	if nextToken != nil && *nextToken != "" {
		lastDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		// Tuple comparison keeps the cursor stable across equal dates.
		query += ` AND (date, created_at) < ($2, $3)`
		args = append(args, lastDate, lastCreatedAt)
	}

	query += " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
	args = append(args, fetchLimit)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query transactions for workspace "+workspaceID, err)
	}
	defer rows.Close()

	modelTxns := make([]models.Transaction, 0, fetchLimit)
	for rows.Next() {
		m, err := scanTransactionRow(rows)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan transaction row", err)
		}
		modelTxns = append(modelTxns, *m)
	}
	if rows.Err() != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating transaction rows", rows.Err())
	}

	var nextTokenVal *string
	if len(modelTxns) > limit {
		lastTxn := modelTxns[limit-1]
		token := pagination.EncodeToken(lastTxn.Date, lastTxn.CreatedAt)
		nextTokenVal = &token
		modelTxns = modelTxns[:limit]
	}

	return mapping.ToDomainTransactionSlice(modelTxns), nextTokenVal, nil
}

func scanTransactionRow(row pgx.Row) (*models.Transaction, error) {
	var m models.Transaction
	err := row.Scan(
		&m.TransactionID,
		&m.WorkspaceID,
		&m.BucketID,
		&m.Amount,
		&m.Type,
		&m.Description,
		&m.Date,
		&m.IsAllocated,
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
