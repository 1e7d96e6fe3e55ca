package dto

import (
	"time"

	"github.com/bucketly/bucketly_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTransactionRequest defines the command for the ledger writer.
// BucketID is mandatory for expenses; IsAllocated only applies to income.
type CreateTransactionRequest struct {
	BucketID    *string         `json:"bucketID"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Type        string          `json:"type" binding:"required,oneof=INCOME EXPENSE"`
	Description string          `json:"description" binding:"required"`
	Date        *time.Time      `json:"date"`
	IsAllocated bool            `json:"isAllocated"`
}

// TransactionResponse defines the data returned for a transaction.
type TransactionResponse struct {
	TransactionID string          `json:"transactionID"`
	WorkspaceID   string          `json:"workspaceID"`
	BucketID      *string         `json:"bucketID,omitempty"`
	Amount        decimal.Decimal `json:"amount"`
	Type          string          `json:"type"`
	Description   string          `json:"description"`
	Date          time.Time       `json:"date"`
	IsAllocated   bool            `json:"isAllocated"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// ToTransactionResponse converts a domain.Transaction to TransactionResponse DTO.
func ToTransactionResponse(t *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID: t.TransactionID,
		WorkspaceID:   t.WorkspaceID,
		BucketID:      t.BucketID,
		Amount:        t.Amount,
		Type:          string(t.Type),
		Description:   t.Description,
		Date:          t.Date,
		IsAllocated:   t.IsAllocated,
		CreatedAt:     t.CreatedAt,
	}
}

// ToTransactionResponses converts a slice of domain.Transaction to DTOs.
func ToTransactionResponses(txns []domain.Transaction) []TransactionResponse {
	responses := make([]TransactionResponse, len(txns))
	for i, txn := range txns {
		responses[i] = ToTransactionResponse(&txn)
	}
	return responses
}

// ListTransactionsParams defines query parameters for listing transactions.
type ListTransactionsParams struct {
	Limit     int     `form:"limit,default=20"`
	NextToken *string `form:"nextToken"`
}

// ListTransactionsResponse wraps a page of transactions.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    *string               `json:"nextToken,omitempty"`
}
