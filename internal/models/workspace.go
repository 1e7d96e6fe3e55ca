package models

import "github.com/shopspring/decimal"

// Workspace represents a row of the workspaces table.
type Workspace struct {
	WorkspaceID  string          `db:"workspace_id"`
	UserID       string          `db:"user_id"`
	Name         string          `db:"name"`
	Currency     string          `db:"currency"`
	TotalBalance decimal.Decimal `db:"total_balance"`
	AuditFields
}
