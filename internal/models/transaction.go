package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Income credits a wallet. The optional asset/liability back-references link
// the entry to the lifecycle that produced it (loan collection, credit
// obtained); those entries are owned by the asset/liability services and must
// not be deleted directly.
type Income struct {
	ID            string          `json:"id"`
	SubcategoryID string          `json:"subcategory_id,omitempty"`
	WalletID      string          `json:"wallet_id"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      Currency        `json:"currency"`
	Date          time.Time       `json:"date"`
	Notes         string          `json:"notes,omitempty"`
	PropertyID    string          `json:"property_id,omitempty"`
	AssetID       string          `json:"asset_id,omitempty"`
	LiabilityID   string          `json:"liability_id,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ActualExpense debits a wallet. Same shape as Income with the sign inverted
// at application time.
type ActualExpense struct {
	ID            string          `json:"id"`
	SubcategoryID string          `json:"subcategory_id,omitempty"`
	WalletID      string          `json:"wallet_id"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      Currency        `json:"currency"`
	Date          time.Time       `json:"date"`
	Notes         string          `json:"notes,omitempty"`
	PropertyID    string          `json:"property_id,omitempty"`
	AssetID       string          `json:"asset_id,omitempty"`
	LiabilityID   string          `json:"liability_id,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ExpectedExpense is a budget line for a month; it never touches a wallet.
type ExpectedExpense struct {
	ID            string          `json:"id"`
	SubcategoryID string          `json:"subcategory_id,omitempty"`
	PropertyID    string          `json:"property_id,omitempty"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      Currency        `json:"currency"`
	Month         int             `json:"month"` // 1-12
	Year          int             `json:"year"`
	Notes         string          `json:"notes,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}
