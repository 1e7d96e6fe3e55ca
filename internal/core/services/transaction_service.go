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
	"github.com/bucketly/bucketly_backend/internal/middleware"
)

var (
	ErrExpenseNeedsBucket   = errors.New("an expense must debit a specific bucket")
	ErrExpenseAllocated     = errors.New("only income can be auto-allocated")
	ErrAmountNotPositive    = errors.New("transaction amount must be positive")
	ErrBucketNotInWorkspace = errors.New("bucket does not belong to workspace")
)

// transactionService is the ledger writer and reverser. It computes workspace
// and bucket balance deltas for a transaction and hands them to the
// repository, which applies them together with the row insert/delete as one
// atomic database transaction.
type transactionService struct {
	txnRepo      portsrepo.TransactionRepositoryFacade
	bucketRepo   portsrepo.BucketReader
	workspaceSvc portssvc.WorkspaceAuthorizerSvc
}

// NewTransactionService creates a new TransactionService.
func NewTransactionService(txnRepo portsrepo.TransactionRepositoryFacade, bucketRepo portsrepo.BucketReader, workspaceSvc portssvc.WorkspaceAuthorizerSvc) portssvc.TransactionSvcFacade {
	return &transactionService{
		txnRepo:      txnRepo,
		bucketRepo:   bucketRepo,
		workspaceSvc: workspaceSvc,
	}
}

var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

// CreateTransaction applies a new income or expense to the ledger.
// Implements portssvc.LedgerWriterSvc.
func (s *transactionService) CreateTransaction(ctx context.Context, workspaceID string, req dto.CreateTransactionRequest, creatorUserID string) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	// --- Preconditions: nothing below may mutate state until these pass ---
	if _, err := s.workspaceSvc.AuthorizeOwner(ctx, creatorUserID, workspaceID); err != nil {
		logger.Warn("Authorization failed for CreateTransaction", slog.String("user_id", creatorUserID), slog.String("workspace_id", workspaceID), slog.String("error", err.Error()))
		return nil, err
	}

	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, ErrAmountNotPositive)
	}

	txnType := domain.TransactionType(req.Type)
	if txnType == domain.Expense {
		if req.BucketID == nil {
			return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, ErrExpenseNeedsBucket)
		}
		if req.IsAllocated {
			return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, ErrExpenseAllocated)
		}
	}

	if req.BucketID != nil {
		bucket, err := s.bucketRepo.FindBucketByID(ctx, *req.BucketID)
		if err != nil {
			if !errors.Is(err, apperrors.ErrNotFound) {
				logger.Error("Failed to fetch bucket for transaction", slog.String("error", err.Error()), slog.String("bucket_id", *req.BucketID))
			}
			return nil, fmt.Errorf("failed to fetch bucket %s: %w", *req.BucketID, err)
		}
		if bucket.WorkspaceID != workspaceID {
			logger.Warn("Bucket belongs to a different workspace", slog.String("bucket_id", bucket.BucketID), slog.String("bucket_workspace", bucket.WorkspaceID), slog.String("requested_workspace", workspaceID))
			return nil, fmt.Errorf("%w: %w", apperrors.ErrNotFound, ErrBucketNotInWorkspace)
		}
	}

	now := time.Now().UTC()
	date := now
	if req.Date != nil {
		date = *req.Date
	}

	txn := domain.Transaction{
		TransactionID: uuid.NewString(),
		WorkspaceID:   workspaceID,
		BucketID:      req.BucketID,
		Amount:        req.Amount,
		Type:          txnType,
		Description:   req.Description,
		Date:          date,
		IsAllocated:   txnType == domain.Income && req.IsAllocated,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	// --- Balance deltas ---
	workspaceDelta := req.Amount
	if txnType == domain.Expense {
		workspaceDelta = req.Amount.Neg()
	}

	bucketDeltas := make(map[string]portsrepo.BucketDelta)
	switch txnType {
	case domain.Expense:
		bucketDeltas[*req.BucketID] = portsrepo.BucketDelta{
			Balance: req.Amount.Neg(),
			Spent:   req.Amount,
		}

	case domain.Income:
		switch DecideAllocation(txn.IsAllocated, req.BucketID) {
		case AllocationPercentageSplit:
			buckets, err := s.bucketRepo.FindBucketsByWorkspaceID(ctx, workspaceID)
			if err != nil {
				logger.Error("Failed to fetch buckets for allocation", slog.String("error", err.Error()), slog.String("workspace_id", workspaceID))
				return nil, fmt.Errorf("failed to fetch buckets for allocation: %w", err)
			}
			credits, leftover := AllocateIncome(req.Amount, buckets)
			bucketDeltas = creditDeltas(credits, false)
			if leftover.IsPositive() {
				// Zero-based policy wants every unit in a bucket; without a
				// default bucket the leftover stays on the workspace balance.
				logger.Warn("Allocation remainder left unbucketed, workspace has no default bucket",
					slog.String("workspace_id", workspaceID),
					slog.String("remainder", leftover.String()))
			}

		case AllocationDirectCredit:
			bucketDeltas[*req.BucketID] = portsrepo.BucketDelta{
				Balance:   req.Amount,
				Allocated: req.Amount,
			}

		case AllocationDefaultFallback:
			defaultBucket, err := s.bucketRepo.FindDefaultBucket(ctx, workspaceID)
			if err != nil {
				if !errors.Is(err, apperrors.ErrNotFound) {
					logger.Error("Failed to fetch default bucket", slog.String("error", err.Error()), slog.String("workspace_id", workspaceID))
					return nil, fmt.Errorf("failed to fetch default bucket: %w", err)
				}
				logger.Warn("Uncategorized income left unbucketed, workspace has no default bucket",
					slog.String("workspace_id", workspaceID))
			} else {
				// Re-point the transaction at the default bucket so reversal
				// knows exactly where the money went.
				txn.BucketID = &defaultBucket.BucketID
				bucketDeltas[defaultBucket.BucketID] = portsrepo.BucketDelta{
					Balance:   req.Amount,
					Allocated: req.Amount,
				}
			}
		}
	}

	if err := s.txnRepo.SaveTransaction(ctx, txn, workspaceDelta, bucketDeltas); err != nil {
		logger.Error("Failed to save transaction", slog.String("error", err.Error()), slog.String("workspace_id", workspaceID))
		return nil, fmt.Errorf("failed to save transaction: %w", err)
	}

	logger.Info("Transaction created successfully",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("workspace_id", workspaceID),
		slog.String("type", string(txnType)))
	return &txn, nil
}

// DeleteTransaction reverses a transaction's effects and removes its record.
// Implements portssvc.LedgerReverserSvc.
func (s *transactionService) DeleteTransaction(ctx context.Context, workspaceID, transactionID string, requestingUserID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	txn, err := s.findOwnedTransaction(ctx, workspaceID, transactionID, requestingUserID)
	if err != nil {
		return err
	}

	workspaceDelta, bucketDeltas, err := s.reversalDeltas(ctx, txn)
	if err != nil {
		return err
	}

	if err := s.txnRepo.DeleteTransaction(ctx, *txn, workspaceDelta, bucketDeltas); err != nil {
		logger.Error("Failed to delete transaction", slog.String("error", err.Error()), slog.String("transaction_id", transactionID))
		return fmt.Errorf("failed to delete transaction: %w", err)
	}

	logger.Info("Transaction deleted successfully",
		slog.String("transaction_id", transactionID),
		slog.String("workspace_id", workspaceID))
	return nil
}

// reversalDeltas mirrors every branch of the writer with negated deltas,
// keyed off the stored transaction's type, allocation flag and bucket.
// Allocated income is recomputed from current percentages; no historical
// snapshot is persisted, so reversal is exact only while percentages are
// unchanged.
func (s *transactionService) reversalDeltas(ctx context.Context, txn *domain.Transaction) (decimal.Decimal, map[string]portsrepo.BucketDelta, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	workspaceDelta := txn.Amount.Neg()
	if txn.Type == domain.Expense {
		workspaceDelta = txn.Amount
	}

	bucketDeltas := make(map[string]portsrepo.BucketDelta)
	switch {
	case txn.Type == domain.Expense && txn.BucketID != nil:
		bucketDeltas[*txn.BucketID] = portsrepo.BucketDelta{
			Balance: txn.Amount,
			Spent:   txn.Amount.Neg(),
		}

	case txn.Type == domain.Income && txn.IsAllocated:
		buckets, err := s.bucketRepo.FindBucketsByWorkspaceID(ctx, txn.WorkspaceID)
		if err != nil {
			logger.Error("Failed to fetch buckets for reversal", slog.String("error", err.Error()), slog.String("workspace_id", txn.WorkspaceID))
			return decimal.Zero, nil, fmt.Errorf("failed to fetch buckets for reversal: %w", err)
		}
		credits, _ := AllocateIncome(txn.Amount, buckets)
		bucketDeltas = creditDeltas(credits, true)

	case txn.Type == domain.Income && txn.BucketID != nil:
		bucketDeltas[*txn.BucketID] = portsrepo.BucketDelta{
			Balance:   txn.Amount.Neg(),
			Allocated: txn.Amount.Neg(),
		}
	}

	return workspaceDelta, bucketDeltas, nil
}

// GetTransaction retrieves a single transaction from an owned workspace.
// Implements portssvc.TransactionReaderSvc.
func (s *transactionService) GetTransaction(ctx context.Context, workspaceID, transactionID string, requestingUserID string) (*domain.Transaction, error) {
	return s.findOwnedTransaction(ctx, workspaceID, transactionID, requestingUserID)
}

// ListTransactions retrieves a page of an owned workspace's transactions,
// newest first. Implements portssvc.TransactionReaderSvc.
func (s *transactionService) ListTransactions(ctx context.Context, workspaceID string, requestingUserID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.workspaceSvc.AuthorizeOwner(ctx, requestingUserID, workspaceID); err != nil {
		logger.Warn("Authorization failed for ListTransactions", slog.String("error", err.Error()))
		return nil, err
	}

	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}

	transactions, nextToken, err := s.txnRepo.ListTransactionsByWorkspace(ctx, workspaceID, limit, params.NextToken)
	if err != nil {
		logger.Error("Failed to list transactions from repository", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to retrieve transactions: %w", err)
	}

	resp := &dto.ListTransactionsResponse{
		Transactions: dto.ToTransactionResponses(transactions),
		NextToken:    nextToken,
	}

	logger.Debug("Transactions listed successfully", slog.Int("count", len(transactions)))
	return resp, nil
}

// findOwnedTransaction fetches a transaction and verifies both that it lives
// in the stated workspace and that the caller owns that workspace.
func (s *transactionService) findOwnedTransaction(ctx context.Context, workspaceID, transactionID string, requestingUserID string) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	txn, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find transaction by ID", slog.String("error", err.Error()), slog.String("transaction_id", transactionID))
		}
		return nil, fmt.Errorf("failed to find transaction %s: %w", transactionID, err)
	}

	if txn.WorkspaceID != workspaceID {
		logger.Warn("Transaction found but belongs to different workspace", slog.String("transaction_id", transactionID), slog.String("transaction_workspace", txn.WorkspaceID), slog.String("requested_workspace", workspaceID))
		return nil, apperrors.ErrNotFound // Obscure existence
	}

	if _, err := s.workspaceSvc.AuthorizeOwner(ctx, requestingUserID, workspaceID); err != nil {
		logger.Warn("Authorization failed for transaction access", slog.String("user_id", requestingUserID), slog.String("workspace_id", workspaceID), slog.String("error", err.Error()))
		return nil, err
	}

	return txn, nil
}
