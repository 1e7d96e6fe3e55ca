package domain

import "github.com/shopspring/decimal"

// CurrencyCode identifies the single currency a workspace is denominated in.
type CurrencyCode string

const (
	CurrencyBRL CurrencyCode = "BRL"
	CurrencyUSD CurrencyCode = "USD"
	CurrencyEUR CurrencyCode = "EUR"
)

// Workspace is an isolated financial ledger scope owned by exactly one user.
// TotalBalance is the signed sum of all existing transactions in the
// workspace and is mutated only by the ledger writer/reverser.
type Workspace struct {
	WorkspaceID  string          `json:"workspaceID"` // Primary Key (e.g., UUID)
	UserID       string          `json:"userID"`      // Owning user (FK -> users.user_id)
	Name         string          `json:"name"`
	Currency     CurrencyCode    `json:"currency"`
	TotalBalance decimal.Decimal `json:"totalBalance"`
	AuditFields
}
