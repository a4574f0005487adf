package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Asset represents money lent out (a receivable). OutstandingBalance starts
// equal to TotalAmount and decreases as collections are recorded; the
// invariant 0 <= outstanding <= total is enforced server-side in the same
// transaction as every collection write. A collection whose amount exceeds
// the outstanding balance is rejected, never clamped.
type Asset struct {
	ID                 string          `json:"id"`
	Name               string          `json:"name"`
	TotalAmount        decimal.Decimal `json:"total_amount"`
	OutstandingBalance decimal.Decimal `json:"outstanding_balance"`
	Currency           Currency        `json:"currency"`
	CreationDate       time.Time       `json:"creation_date"`
	Notes              string          `json:"notes,omitempty"`
	SourceWalletID     string          `json:"source_wallet_id"`
	PropertyID         string          `json:"property_id,omitempty"`
	// CreationExpenseID links the ActualExpense written when the asset was
	// created, so deletion can revert it.
	CreationExpenseID string    `json:"creation_expense_id,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`

	// Collections is populated on read; collections live in their own table
	// so outstanding-balance guards run server-side.
	Collections []AssetCollection `json:"collections,omitempty"`
}

// AssetCollection records one repayment against an asset, linked to the
// Income entry committed alongside it.
type AssetCollection struct {
	ID         string          `json:"id"`
	AssetID    string          `json:"asset_id"`
	Date       time.Time       `json:"date"`
	Amount     decimal.Decimal `json:"amount"`
	WalletID   string          `json:"wallet_id"`
	Currency   Currency        `json:"currency"`
	Notes      string          `json:"notes,omitempty"`
	IncomeID   string          `json:"income_id"`
	PropertyID string          `json:"property_id,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
}
