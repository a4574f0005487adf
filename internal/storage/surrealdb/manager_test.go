package surrealdb_test

// Integration tests against a real SurrealDB container. The Commit guard
// tests here are the ground truth for the transaction semantics the rest of
// the codebase relies on.

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Gabaldaar/gestionomiscuentas/internal/interfaces"
	"github.com/Gabaldaar/gestionomiscuentas/internal/models"
	sdbstore "github.com/Gabaldaar/gestionomiscuentas/internal/storage/surrealdb"
)

func saveTestWallet(t *testing.T, m *sdbstore.Manager, id, balance string, allowNegative bool) {
	t.Helper()
	w := &models.Wallet{
		ID:            id,
		Name:          id,
		Currency:      models.CurrencyARS,
		Balance:       mustDecimal(t, balance),
		AllowNegative: allowNegative,
	}
	if err := m.Wallets().Save(context.Background(), w); err != nil {
		t.Fatalf("save wallet: %v", err)
	}
}

func walletBalance(t *testing.T, m *sdbstore.Manager, id string) decimal.Decimal {
	t.Helper()
	w, err := m.Wallets().Get(context.Background(), id)
	if err != nil {
		t.Fatalf("get wallet: %v", err)
	}
	return w.Balance
}

func TestWalletStoreRoundTrip(t *testing.T) {
	m := testManager(t)
	ctx := context.Background()

	saveTestWallet(t, m, "wal_round1", "1234.56", false)

	w, err := m.Wallets().Get(ctx, "wal_round1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !w.Balance.Equal(mustDecimal(t, "1234.56")) {
		t.Errorf("balance = %s, want 1234.56", w.Balance)
	}
	if w.Currency != models.CurrencyARS {
		t.Errorf("currency = %s", w.Currency)
	}

	if _, err := m.Wallets().Get(ctx, "wal_nothere"); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("missing wallet err = %v, want not found", err)
	}
}

func TestCommitMovesBalancesAtomically(t *testing.T) {
	m := testManager(t)
	ctx := context.Background()

	saveTestWallet(t, m, "wal_src", "1000", false)
	saveTestWallet(t, m, "wal_dst", "0", false)

	transfer := &models.Transfer{
		ID:             models.NewID("trf"),
		FromWalletID:   "wal_src",
		ToWalletID:     "wal_dst",
		AmountSent:     mustDecimal(t, "400"),
		AmountReceived: mustDecimal(t, "400"),
		FromCurrency:   models.CurrencyARS,
		ToCurrency:     models.CurrencyARS,
		Date:           time.Now(),
	}
	batch := models.NewWriteBatch().
		Debit("wal_src", transfer.AmountSent).
		Credit("wal_dst", transfer.AmountReceived).
		Put(models.TableTransfer, transfer.ID, transfer)
	if err := m.Commit(ctx, batch); err != nil {
		t.Fatalf("Commit: %v", err)
	}

	if got := walletBalance(t, m, "wal_src"); !got.Equal(mustDecimal(t, "600")) {
		t.Errorf("source = %s, want 600", got)
	}
	if got := walletBalance(t, m, "wal_dst"); !got.Equal(mustDecimal(t, "400")) {
		t.Errorf("destination = %s, want 400", got)
	}
	if _, err := m.Transfers().Get(ctx, transfer.ID); err != nil {
		t.Errorf("transfer not persisted: %v", err)
	}
}

func TestCommitInsufficientFundsRollsBack(t *testing.T) {
	m := testManager(t)
	ctx := context.Background()

	saveTestWallet(t, m, "wal_a", "100", false)
	saveTestWallet(t, m, "wal_b", "50", false)

	income := &models.Income{
		ID:       models.NewID("inc"),
		WalletID: "wal_a",
		Amount:   mustDecimal(t, "70"),
		Currency: models.CurrencyARS,
		Date:     time.Now(),
	}
	batch := models.NewWriteBatch().
		Credit("wal_a", mustDecimal(t, "70")).
		Debit("wal_b", mustDecimal(t, "200")).
		Put(models.TableIncome, income.ID, income)

	err := m.Commit(ctx, batch)
	if !errors.Is(err, models.ErrInsufficientFunds) {
		t.Fatalf("err = %v, want insufficient funds", err)
	}

	// Nothing from the batch landed
	if got := walletBalance(t, m, "wal_a"); !got.Equal(mustDecimal(t, "100")) {
		t.Errorf("wal_a = %s, want 100 (rolled back)", got)
	}
	if got := walletBalance(t, m, "wal_b"); !got.Equal(mustDecimal(t, "50")) {
		t.Errorf("wal_b = %s, want 50", got)
	}
	if _, err := m.Transactions().GetIncome(ctx, income.ID); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("income landed despite rollback: %v", err)
	}
}

func TestCommitAllowNegativeWallet(t *testing.T) {
	m := testManager(t)

	saveTestWallet(t, m, "wal_neg", "10", true)

	batch := models.NewWriteBatch().Debit("wal_neg", mustDecimal(t, "60"))
	if err := m.Commit(context.Background(), batch); err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if got := walletBalance(t, m, "wal_neg"); !got.Equal(mustDecimal(t, "-50")) {
		t.Errorf("balance = %s, want -50", got)
	}
}

func TestCommitOutstandingGuard(t *testing.T) {
	m := testManager(t)
	ctx := context.Background()

	asset := &models.Asset{
		ID:                 models.NewID("ast"),
		Name:               "Préstamo",
		TotalAmount:        mustDecimal(t, "1000"),
		OutstandingBalance: mustDecimal(t, "300"),
		Currency:           models.CurrencyARS,
		CreationDate:       time.Now(),
	}
	seed := models.NewWriteBatch().Put(models.TableAsset, asset.ID, asset)
	if err := m.Commit(ctx, seed); err != nil {
		t.Fatalf("seed asset: %v", err)
	}

	// Over-collection rejected, never clamped
	over := models.NewWriteBatch().
		AdjustOutstanding(models.TableAsset, asset.ID, mustDecimal(t, "-400"))
	if err := m.Commit(ctx, over); !errors.Is(err, models.ErrOverCollection) {
		t.Fatalf("err = %v, want over-collection", err)
	}

	// Valid adjustment inside [0, total]
	ok := models.NewWriteBatch().
		AdjustOutstanding(models.TableAsset, asset.ID, mustDecimal(t, "-300"))
	if err := m.Commit(ctx, ok); err != nil {
		t.Fatalf("Commit: %v", err)
	}
	got, err := m.Assets().Get(ctx, asset.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !got.OutstandingBalance.IsZero() {
		t.Errorf("outstanding = %s, want 0", got.OutstandingBalance)
	}
}

func TestTransactionDateWindow(t *testing.T) {
	m := testManager(t)
	ctx := context.Background()

	saveTestWallet(t, m, "wal_w", "0", false)

	dates := []time.Time{
		time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
	}
	for _, d := range dates {
		income := &models.Income{
			ID:       models.NewID("inc"),
			WalletID: "wal_w",
			Amount:   mustDecimal(t, "10"),
			Currency: models.CurrencyARS,
			Date:     d,
		}
		batch := models.NewWriteBatch().
			Credit("wal_w", income.Amount).
			Put(models.TableIncome, income.ID, income)
		if err := m.Commit(ctx, batch); err != nil {
			t.Fatalf("Commit: %v", err)
		}
	}

	// From inclusive, to exclusive: March only
	incomes, err := m.Transactions().ListIncomes(ctx, interfaces.TransactionFilter{
		From: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("ListIncomes: %v", err)
	}
	if len(incomes) != 2 {
		t.Errorf("incomes in window = %d, want 2", len(incomes))
	}
}
