package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Wallet holds a named, currency-tagged running balance. The balance always
// equals the sum of signed effects of every committed ledger entry that
// references the wallet; it is never client-writable directly.
type Wallet struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Currency Currency        `json:"currency"`
	Balance  decimal.Decimal `json:"balance"`
	// InitialBalance is the balance the wallet was created with; the ledger
	// conservation check re-derives Balance from it.
	InitialBalance decimal.Decimal `json:"initial_balance"`
	Icon           string          `json:"icon,omitempty"`
	AllowNegative  bool            `json:"allow_negative"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// WalletUpdate carries the mutable wallet fields for an update (merge
// semantics; nil/empty fields are left unchanged). Balance is deliberately
// absent: it only moves through committed ledger batches.
type WalletUpdate struct {
	Name          string `json:"name,omitempty"`
	Icon          string `json:"icon,omitempty"`
	AllowNegative *bool  `json:"allow_negative,omitempty"`
}

// BalanceReport is the result of re-aggregating a wallet's ledger history
// against its stored balance.
type BalanceReport struct {
	WalletID      string          `json:"wallet_id"`
	StoredBalance decimal.Decimal `json:"stored_balance"`
	LedgerBalance decimal.Decimal `json:"ledger_balance"`
	Drift         decimal.Decimal `json:"drift"`
	EntryCount    int             `json:"entry_count"`
	Consistent    bool            `json:"consistent"`
}
