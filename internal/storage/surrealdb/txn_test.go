package surrealdb

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/Gabaldaar/gestionomiscuentas/internal/models"
)

func mustDecimal(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("parse decimal %q: %v", s, err)
	}
	return d
}

func TestBuildTransactionDebitGuard(t *testing.T) {
	batch := models.NewWriteBatch().Debit("wal_aaaa1111", mustDecimal(t, "250.75"))

	sql, vars, err := buildTransaction(batch)
	if err != nil {
		t.Fatalf("buildTransaction: %v", err)
	}

	if !strings.HasPrefix(sql, "BEGIN TRANSACTION;") {
		t.Errorf("transaction not opened: %q", sql)
	}
	if !strings.Contains(sql, "COMMIT TRANSACTION;") {
		t.Errorf("transaction not committed: %q", sql)
	}
	// Negative delta carries the balance guard
	if !strings.Contains(sql, "allow_negative") {
		t.Errorf("debit missing negative-balance guard:\n%s", sql)
	}
	if !strings.Contains(sql, throwInsufficient) {
		t.Errorf("debit missing insufficient-funds throw:\n%s", sql)
	}
	if vars["wid0"] != "wal_aaaa1111" {
		t.Errorf("wallet id var = %v", vars["wid0"])
	}
	if vars["wamt0"] != "-250.75" {
		t.Errorf("amount var = %v, want -250.75", vars["wamt0"])
	}
}

func TestBuildTransactionCreditHasNoGuard(t *testing.T) {
	batch := models.NewWriteBatch().Credit("wal_aaaa1111", mustDecimal(t, "100"))

	sql, _, err := buildTransaction(batch)
	if err != nil {
		t.Fatalf("buildTransaction: %v", err)
	}
	if strings.Contains(sql, throwInsufficient) {
		t.Errorf("credit should not carry a balance guard:\n%s", sql)
	}
	// Missing wallets still throw
	if !strings.Contains(sql, throwNotFound) {
		t.Errorf("credit missing not-found guard:\n%s", sql)
	}
}

func TestBuildTransactionOutstandingRange(t *testing.T) {
	batch := models.NewWriteBatch().
		AdjustOutstanding(models.TableAsset, "ast_bbbb2222", mustDecimal(t, "-40"))

	sql, vars, err := buildTransaction(batch)
	if err != nil {
		t.Fatalf("buildTransaction: %v", err)
	}
	if !strings.Contains(sql, "outstanding_balance") {
		t.Errorf("missing outstanding update:\n%s", sql)
	}
	// Both range bounds guarded via one throw
	if !strings.Contains(sql, throwOverCollection) {
		t.Errorf("missing over-collection throw:\n%s", sql)
	}
	if !strings.Contains(sql, "total_amount") {
		t.Errorf("missing upper-bound check:\n%s", sql)
	}
	if vars["oamt0"] != "-40" {
		t.Errorf("outstanding amount var = %v", vars["oamt0"])
	}
}

func TestBuildTransactionOutstandingRejectsOtherTables(t *testing.T) {
	batch := models.NewWriteBatch().
		AdjustOutstanding(models.TableWallet, "wal_cccc3333", mustDecimal(t, "1"))

	if _, _, err := buildTransaction(batch); err == nil {
		t.Fatal("expected error for outstanding delta on wallet table")
	}
}

func TestBuildTransactionOrdering(t *testing.T) {
	batch := models.NewWriteBatch().
		Debit("wal_aaaa1111", mustDecimal(t, "10")).
		AdjustOutstanding(models.TableLiability, "lia_dddd4444", mustDecimal(t, "-10")).
		Put(models.TableIncome, "inc_eeee5555", map[string]any{"id": "inc_eeee5555"}).
		Delete(models.TableTransfer, "trf_ffff6666")

	sql, _, err := buildTransaction(batch)
	if err != nil {
		t.Fatalf("buildTransaction: %v", err)
	}

	balanceIdx := strings.Index(sql, "SET balance")
	outstandingIdx := strings.Index(sql, "SET outstanding_balance")
	putIdx := strings.Index(sql, "UPSERT")
	deleteIdx := strings.Index(sql, "DELETE")

	if balanceIdx < 0 || outstandingIdx < 0 || putIdx < 0 || deleteIdx < 0 {
		t.Fatalf("missing statements:\n%s", sql)
	}
	if !(balanceIdx < outstandingIdx && outstandingIdx < putIdx && putIdx < deleteIdx) {
		t.Errorf("statements out of order (deltas, outstanding, puts, deletes):\n%s", sql)
	}
}

func TestMapTxnErrorSentinels(t *testing.T) {
	tests := []struct {
		name string
		msg  string
		want error
	}{
		{"insufficient funds", `An error occurred: insufficient_funds:wallet:wal_x`, models.ErrInsufficientFunds},
		{"over-collection", `An error occurred: over_collection:asset:ast_x`, models.ErrOverCollection},
		{"not found", `An error occurred: not_found:wallet:wal_x`, models.ErrNotFound},
		{"transport failure", `connection refused`, models.ErrStoreUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mapTxnError(errors.New(tt.msg))
			if !errors.Is(got, tt.want) {
				t.Errorf("mapTxnError(%q) = %v, want %v", tt.msg, got, tt.want)
			}
		})
	}
}

func TestThrowDetail(t *testing.T) {
	msg := `There was a problem with the database: An error occurred: insufficient_funds:wallet:wal_abc123`
	if got := throwDetail(msg, throwInsufficient); got != "wallet:wal_abc123" {
		t.Errorf("throwDetail = %q, want wallet:wal_abc123", got)
	}
	if got := throwDetail("no prefix here", throwInsufficient); got != "" {
		t.Errorf("throwDetail on miss = %q, want empty", got)
	}
}

func TestCommitEmptyBatchIsNoop(t *testing.T) {
	m := &Manager{}
	if err := m.Commit(context.Background(), models.NewWriteBatch()); err != nil {
		t.Fatalf("empty batch commit: %v", err)
	}
	if err := m.Commit(context.Background(), nil); err != nil {
		t.Fatalf("nil batch commit: %v", err)
	}
}
