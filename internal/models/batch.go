package models

import "github.com/shopspring/decimal"

// Table names for all document collections.
const (
	TableWallet           = "wallet"
	TableProperty         = "property"
	TableCategory         = "category"
	TableIncome           = "income"
	TableActualExpense    = "actual_expense"
	TableExpectedExpense  = "expected_expense"
	TableTransfer         = "transfer"
	TableAsset            = "asset"
	TableAssetCollection  = "asset_collection"
	TableLiability        = "liability"
	TableLiabilityPayment = "liability_payment"
)

// WalletDelta applies a signed amount to a wallet balance. Negative deltas
// are guarded: the resulting balance must stay >= 0 unless the wallet allows
// negative balances. The guard runs server-side inside the same transaction
// as every other operation in the batch.
type WalletDelta struct {
	WalletID string
	Amount   decimal.Decimal
}

// OutstandingDelta applies a signed amount to the outstanding balance of an
// asset or liability. Guarded server-side: the result must stay within
// [0, total_amount].
type OutstandingDelta struct {
	Table  string // TableAsset or TableLiability
	ID     string
	Amount decimal.Decimal
}

// DocPut upserts a document.
type DocPut struct {
	Table string
	ID    string
	Doc   any
}

// DocDelete removes a document.
type DocDelete struct {
	Table string
	ID    string
}

// WriteBatch is one atomic multi-document commit. Application order is:
// wallet deltas (in insertion order), outstanding deltas, puts, deletes.
// If any guard fails, no document in the batch is written.
//
// Sequential delta application means overlapping wallets compose correctly:
// an edit that reverts old deltas before applying new ones sees the reverted
// balance when the new debit guard runs.
type WriteBatch struct {
	Deltas      []WalletDelta
	Outstanding []OutstandingDelta
	Puts        []DocPut
	Deletes     []DocDelete
}

// NewWriteBatch returns an empty batch.
func NewWriteBatch() *WriteBatch {
	return &WriteBatch{}
}

// Debit subtracts amount from the wallet balance (guarded).
func (b *WriteBatch) Debit(walletID string, amount decimal.Decimal) *WriteBatch {
	b.Deltas = append(b.Deltas, WalletDelta{WalletID: walletID, Amount: amount.Neg()})
	return b
}

// Credit adds amount to the wallet balance.
func (b *WriteBatch) Credit(walletID string, amount decimal.Decimal) *WriteBatch {
	b.Deltas = append(b.Deltas, WalletDelta{WalletID: walletID, Amount: amount})
	return b
}

// Delta appends a signed wallet delta as-is.
func (b *WriteBatch) Delta(walletID string, amount decimal.Decimal) *WriteBatch {
	b.Deltas = append(b.Deltas, WalletDelta{WalletID: walletID, Amount: amount})
	return b
}

// AdjustOutstanding applies a signed delta to an asset or liability
// outstanding balance.
func (b *WriteBatch) AdjustOutstanding(table, id string, amount decimal.Decimal) *WriteBatch {
	b.Outstanding = append(b.Outstanding, OutstandingDelta{Table: table, ID: id, Amount: amount})
	return b
}

// Put upserts a document as part of the batch.
func (b *WriteBatch) Put(table, id string, doc any) *WriteBatch {
	b.Puts = append(b.Puts, DocPut{Table: table, ID: id, Doc: doc})
	return b
}

// Delete removes a document as part of the batch.
func (b *WriteBatch) Delete(table, id string) *WriteBatch {
	b.Deletes = append(b.Deletes, DocDelete{Table: table, ID: id})
	return b
}

// Empty reports whether the batch contains no operations.
func (b *WriteBatch) Empty() bool {
	return len(b.Deltas) == 0 && len(b.Outstanding) == 0 && len(b.Puts) == 0 && len(b.Deletes) == 0
}
