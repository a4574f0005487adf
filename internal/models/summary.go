package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CategoryTotal is one line of a period breakdown.
type CategoryTotal struct {
	SubcategoryID string          `json:"subcategory_id"`
	Name          string          `json:"name"`
	Total         decimal.Decimal `json:"total"`
	Count         int             `json:"count"`
}

// WalletFlow aggregates the signed movement of one wallet over a period.
type WalletFlow struct {
	WalletID string          `json:"wallet_id"`
	Name     string          `json:"name"`
	Currency Currency        `json:"currency"`
	In       decimal.Decimal `json:"in"`
	Out      decimal.Decimal `json:"out"`
	Net      decimal.Decimal `json:"net"`
}

// PeriodSummary holds the aggregated totals for a period. These plain
// numbers are the entire contract with the AI collaborator: aggregates in,
// prose out.
type PeriodSummary struct {
	From          time.Time       `json:"from"`
	To            time.Time       `json:"to"`
	PropertyID    string          `json:"property_id,omitempty"`
	TotalIncome   decimal.Decimal `json:"total_income"`
	TotalExpense  decimal.Decimal `json:"total_expense"`
	Net           decimal.Decimal `json:"net"`
	IncomeCount   int             `json:"income_count"`
	ExpenseCount  int             `json:"expense_count"`
	ByIncomeCat   []CategoryTotal `json:"by_income_category"`
	ByExpenseCat  []CategoryTotal `json:"by_expense_category"`
	WalletFlows   []WalletFlow    `json:"wallet_flows"`
	GeneratedText string          `json:"generated_text,omitempty"`
}
