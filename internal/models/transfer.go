package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transfer moves funds between two wallets: the source is debited AmountSent,
// the destination credited AmountReceived, in the same atomic commit as this
// record. When the wallets share a currency the two amounts are equal; when
// they differ the caller supplies both amounts and the exchange rate used is
// recorded. The engine never derives one amount from the other.
type Transfer struct {
	ID             string          `json:"id"`
	FromWalletID   string          `json:"from_wallet_id"`
	ToWalletID     string          `json:"to_wallet_id"`
	AmountSent     decimal.Decimal `json:"amount_sent"`
	AmountReceived decimal.Decimal `json:"amount_received"`
	FromCurrency   Currency        `json:"from_currency"`
	ToCurrency     Currency        `json:"to_currency"`
	ExchangeRate   decimal.Decimal `json:"exchange_rate,omitempty"`
	Date           time.Time       `json:"date"`
	Notes          string          `json:"notes,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// TransferUpdate carries the editable transfer fields. Zero-valued fields are
// left unchanged (merge semantics); wallet ids may move the transfer between
// wallets, in which case the edit reverts the original deltas and reapplies
// the new ones in one commit. Notes is a pointer so an explicit empty string
// clears the stored notes.
type TransferUpdate struct {
	FromWalletID   string          `json:"from_wallet_id,omitempty"`
	ToWalletID     string          `json:"to_wallet_id,omitempty"`
	AmountSent     decimal.Decimal `json:"amount_sent,omitempty"`
	AmountReceived decimal.Decimal `json:"amount_received,omitempty"`
	ExchangeRate   decimal.Decimal `json:"exchange_rate,omitempty"`
	Date           time.Time       `json:"date,omitempty"`
	Notes          *string         `json:"notes,omitempty"`
}
