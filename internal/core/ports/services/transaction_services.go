package services

import (
	"context"

	"github.com/bucketly/bucketly_backend/internal/core/domain"
	"github.com/bucketly/bucketly_backend/internal/dto"
)

// LedgerWriterSvc applies new transactions to the ledger.
type LedgerWriterSvc interface {
	// CreateTransaction validates the command, computes the balance deltas
	// and allocation, and persists everything as one atomic unit.
	CreateTransaction(ctx context.Context, workspaceID string, req dto.CreateTransactionRequest, creatorUserID string) (*domain.Transaction, error)
}

// LedgerReverserSvc undoes a transaction's effects before deleting it.
type LedgerReverserSvc interface {
	// DeleteTransaction reverses every aggregate change the transaction
	// caused and removes its record, atomically.
	DeleteTransaction(ctx context.Context, workspaceID, transactionID string, requestingUserID string) error
}

// TransactionReaderSvc defines read operations for transaction data
type TransactionReaderSvc interface {
	// GetTransaction retrieves a transaction from an owned workspace.
	GetTransaction(ctx context.Context, workspaceID, transactionID string, requestingUserID string) (*domain.Transaction, error)

	// ListTransactions retrieves a page of an owned workspace's transactions.
	ListTransactions(ctx context.Context, workspaceID string, requestingUserID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error)
}

// TransactionSvcFacade combines all transaction-related service interfaces
type TransactionSvcFacade interface {
	LedgerWriterSvc
	LedgerReverserSvc
	TransactionReaderSvc
}
