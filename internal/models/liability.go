package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Liability represents money owed (a payable); the structural mirror of
// Asset. Creation optionally credits a wallet with the amount received;
// payments debit a wallet and reduce the outstanding balance. An over-payment
// is rejected, never clamped.
type Liability struct {
	ID                 string          `json:"id"`
	Name               string          `json:"name"`
	TotalAmount        decimal.Decimal `json:"total_amount"`
	OutstandingBalance decimal.Decimal `json:"outstanding_balance"`
	Currency           Currency        `json:"currency"`
	CreationDate       time.Time       `json:"creation_date"`
	Notes              string          `json:"notes,omitempty"`
	// TargetWalletID and CreationIncomeID are set when the initial amount was
	// credited to a wallet at creation, so deletion can revert it.
	TargetWalletID   string    `json:"target_wallet_id,omitempty"`
	PropertyID       string    `json:"property_id,omitempty"`
	CreationIncomeID string    `json:"creation_income_id,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`

	// Payments is populated on read.
	Payments []LiabilityPayment `json:"payments,omitempty"`
}

// LiabilityPayment records one payment against a liability, linked to the
// ActualExpense entry committed alongside it.
type LiabilityPayment struct {
	ID              string          `json:"id"`
	LiabilityID     string          `json:"liability_id"`
	Date            time.Time       `json:"date"`
	Amount          decimal.Decimal `json:"amount"`
	WalletID        string          `json:"wallet_id"`
	Currency        Currency        `json:"currency"`
	Notes           string          `json:"notes,omitempty"`
	ActualExpenseID string          `json:"actual_expense_id"`
	PropertyID      string          `json:"property_id,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}
