package transfer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Gabaldaar/gestionomiscuentas/internal/common"
	"github.com/Gabaldaar/gestionomiscuentas/internal/interfaces"
	"github.com/Gabaldaar/gestionomiscuentas/internal/models"
	"github.com/Gabaldaar/gestionomiscuentas/internal/storage/memory"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func newTestService(t *testing.T) (*Service, *memory.Manager, *models.Wallet, *models.Wallet) {
	t.Helper()
	storage := memory.NewManager()
	svc := NewService(storage, common.NewSilentLogger())
	ctx := context.Background()

	ars := &models.Wallet{ID: models.NewID("wal"), Name: "Caja ARS", Currency: models.CurrencyARS, Balance: dec("1000"), InitialBalance: dec("1000")}
	usd := &models.Wallet{ID: models.NewID("wal"), Name: "Banco USD", Currency: models.CurrencyUSD, Balance: dec("100"), InitialBalance: dec("100")}
	if err := storage.Wallets().Save(ctx, ars); err != nil {
		t.Fatalf("seed wallet: %v", err)
	}
	if err := storage.Wallets().Save(ctx, usd); err != nil {
		t.Fatalf("seed wallet: %v", err)
	}
	return svc, storage, ars, usd
}

func balance(t *testing.T, storage *memory.Manager, id string) decimal.Decimal {
	t.Helper()
	w, err := storage.Wallets().Get(context.Background(), id)
	if err != nil {
		t.Fatalf("get wallet %s: %v", id, err)
	}
	return w.Balance
}

func TestCreateTransferSameCurrency(t *testing.T) {
	storage := memory.NewManager()
	svc := NewService(storage, common.NewSilentLogger())
	ctx := context.Background()

	a := &models.Wallet{ID: models.NewID("wal"), Name: "A", Currency: models.CurrencyARS, Balance: dec("500")}
	b := &models.Wallet{ID: models.NewID("wal"), Name: "B", Currency: models.CurrencyARS}
	_ = storage.Wallets().Save(ctx, a)
	_ = storage.Wallets().Save(ctx, b)

	tr, err := svc.CreateTransfer(ctx, interfaces.TransferRequest{
		FromWalletID:   a.ID,
		ToWalletID:     b.ID,
		AmountSent:     dec("200"),
		AmountReceived: dec("200"),
	})
	if err != nil {
		t.Fatalf("CreateTransfer failed: %v", err)
	}
	if tr.FromCurrency != models.CurrencyARS || tr.ToCurrency != models.CurrencyARS {
		t.Errorf("currencies = %s/%s", tr.FromCurrency, tr.ToCurrency)
	}
	if got := balance(t, storage, a.ID); !got.Equal(dec("300")) {
		t.Errorf("source balance = %s, want 300", got)
	}
	if got := balance(t, storage, b.ID); !got.Equal(dec("200")) {
		t.Errorf("destination balance = %s, want 200", got)
	}
}

func TestCreateTransferCrossCurrency(t *testing.T) {
	svc, storage, ars, usd := newTestService(t)
	ctx := context.Background()

	tr, err := svc.CreateTransfer(ctx, interfaces.TransferRequest{
		FromWalletID:   ars.ID,
		ToWalletID:     usd.ID,
		AmountSent:     dec("900"),
		AmountReceived: dec("1"),
		ExchangeRate:   dec("900"),
	})
	if err != nil {
		t.Fatalf("CreateTransfer failed: %v", err)
	}
	if !tr.AmountReceived.Equal(dec("1")) {
		t.Errorf("received = %s, should never be derived from sent", tr.AmountReceived)
	}
	if got := balance(t, storage, ars.ID); !got.Equal(dec("100")) {
		t.Errorf("ARS balance = %s, want 100", got)
	}
	if got := balance(t, storage, usd.ID); !got.Equal(dec("101")) {
		t.Errorf("USD balance = %s, want 101", got)
	}
}

func TestCreateTransferValidation(t *testing.T) {
	svc, _, ars, usd := newTestService(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		req     interfaces.TransferRequest
		wantErr error
	}{
		{
			name:    "missing wallets",
			req:     interfaces.TransferRequest{AmountSent: dec("1"), AmountReceived: dec("1")},
			wantErr: models.ErrValidation,
		},
		{
			name:    "same wallet",
			req:     interfaces.TransferRequest{FromWalletID: ars.ID, ToWalletID: ars.ID, AmountSent: dec("1"), AmountReceived: dec("1")},
			wantErr: models.ErrValidation,
		},
		{
			name:    "zero amount sent",
			req:     interfaces.TransferRequest{FromWalletID: ars.ID, ToWalletID: usd.ID, AmountReceived: dec("1")},
			wantErr: models.ErrValidation,
		},
		{
			name:    "zero amount received",
			req:     interfaces.TransferRequest{FromWalletID: ars.ID, ToWalletID: usd.ID, AmountSent: dec("1")},
			wantErr: models.ErrValidation,
		},
		{
			name:    "unknown wallet",
			req:     interfaces.TransferRequest{FromWalletID: "wal_missing", ToWalletID: usd.ID, AmountSent: dec("1"), AmountReceived: dec("1")},
			wantErr: models.ErrNotFound,
		},
		{
			name:    "cross currency without rate",
			req:     interfaces.TransferRequest{FromWalletID: ars.ID, ToWalletID: usd.ID, AmountSent: dec("900"), AmountReceived: dec("1")},
			wantErr: models.ErrValidation,
		},
		{
			name:    "cross currency with negative rate",
			req:     interfaces.TransferRequest{FromWalletID: ars.ID, ToWalletID: usd.ID, AmountSent: dec("900"), AmountReceived: dec("1"), ExchangeRate: dec("-900")},
			wantErr: models.ErrValidation,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.CreateTransfer(ctx, tt.req); !errors.Is(err, tt.wantErr) {
				t.Errorf("want %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestCreateTransferSameCurrencyAmountMismatch(t *testing.T) {
	storage := memory.NewManager()
	svc := NewService(storage, common.NewSilentLogger())
	ctx := context.Background()

	a := &models.Wallet{ID: models.NewID("wal"), Name: "A", Currency: models.CurrencyARS, Balance: dec("500")}
	b := &models.Wallet{ID: models.NewID("wal"), Name: "B", Currency: models.CurrencyARS}
	_ = storage.Wallets().Save(ctx, a)
	_ = storage.Wallets().Save(ctx, b)

	_, err := svc.CreateTransfer(ctx, interfaces.TransferRequest{
		FromWalletID:   a.ID,
		ToWalletID:     b.ID,
		AmountSent:     dec("200"),
		AmountReceived: dec("150"),
	})
	if !errors.Is(err, models.ErrValidation) {
		t.Errorf("want ErrValidation, got %v", err)
	}
}

func TestCreateTransferInsufficientFunds(t *testing.T) {
	svc, storage, ars, usd := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateTransfer(ctx, interfaces.TransferRequest{
		FromWalletID:   ars.ID,
		ToWalletID:     usd.ID,
		AmountSent:     dec("5000"),
		AmountReceived: dec("5"),
		ExchangeRate:   dec("1000"),
	})
	if !errors.Is(err, models.ErrInsufficientFunds) {
		t.Fatalf("want ErrInsufficientFunds, got %v", err)
	}

	// Nothing moved and nothing was recorded.
	if got := balance(t, storage, ars.ID); !got.Equal(dec("1000")) {
		t.Errorf("source balance = %s, want 1000", got)
	}
	transfers, _ := svc.ListTransfers(ctx)
	if len(transfers) != 0 {
		t.Errorf("no transfer should be recorded, got %d", len(transfers))
	}
}

func TestEditTransferAmounts(t *testing.T) {
	svc, storage, ars, usd := newTestService(t)
	ctx := context.Background()

	tr, err := svc.CreateTransfer(ctx, interfaces.TransferRequest{
		FromWalletID:   ars.ID,
		ToWalletID:     usd.ID,
		AmountSent:     dec("400"),
		AmountReceived: dec("2"),
		ExchangeRate:   dec("200"),
	})
	if err != nil {
		t.Fatalf("CreateTransfer failed: %v", err)
	}

	edited, err := svc.EditTransfer(ctx, tr.ID, models.TransferUpdate{
		AmountSent:     dec("600"),
		AmountReceived: dec("3"),
		ExchangeRate:   dec("200"),
	})
	if err != nil {
		t.Fatalf("EditTransfer failed: %v", err)
	}
	if !edited.AmountSent.Equal(dec("600")) {
		t.Errorf("sent = %s, want 600", edited.AmountSent)
	}

	// Net effect: 1000 - 600 = 400, 100 + 3 = 103.
	if got := balance(t, storage, ars.ID); !got.Equal(dec("400")) {
		t.Errorf("ARS balance = %s, want 400", got)
	}
	if got := balance(t, storage, usd.ID); !got.Equal(dec("103")) {
		t.Errorf("USD balance = %s, want 103", got)
	}
}

func TestEditTransferMoveWallet(t *testing.T) {
	svc, storage, ars, usd := newTestService(t)
	ctx := context.Background()

	other := &models.Wallet{ID: models.NewID("wal"), Name: "Otra ARS", Currency: models.CurrencyARS, Balance: dec("500")}
	if err := storage.Wallets().Save(ctx, other); err != nil {
		t.Fatalf("seed wallet: %v", err)
	}

	tr, err := svc.CreateTransfer(ctx, interfaces.TransferRequest{
		FromWalletID:   ars.ID,
		ToWalletID:     usd.ID,
		AmountSent:     dec("300"),
		AmountReceived: dec("1.5"),
		ExchangeRate:   dec("200"),
	})
	if err != nil {
		t.Fatalf("CreateTransfer failed: %v", err)
	}

	edited, err := svc.EditTransfer(ctx, tr.ID, models.TransferUpdate{FromWalletID: other.ID, ExchangeRate: dec("200")})
	if err != nil {
		t.Fatalf("EditTransfer failed: %v", err)
	}
	if edited.FromCurrency != models.CurrencyARS {
		t.Errorf("from currency = %s", edited.FromCurrency)
	}

	// Original source refunded, new source debited.
	if got := balance(t, storage, ars.ID); !got.Equal(dec("1000")) {
		t.Errorf("old source balance = %s, want 1000", got)
	}
	if got := balance(t, storage, other.ID); !got.Equal(dec("200")) {
		t.Errorf("new source balance = %s, want 200", got)
	}
	if got := balance(t, storage, usd.ID); !got.Equal(dec("101.5")) {
		t.Errorf("destination balance = %s, want 101.5", got)
	}
}

func TestEditTransferGuardRollsBackEverything(t *testing.T) {
	svc, storage, ars, usd := newTestService(t)
	ctx := context.Background()

	tr, err := svc.CreateTransfer(ctx, interfaces.TransferRequest{
		FromWalletID:   ars.ID,
		ToWalletID:     usd.ID,
		AmountSent:     dec("400"),
		AmountReceived: dec("2"),
		ExchangeRate:   dec("200"),
	})
	if err != nil {
		t.Fatalf("CreateTransfer failed: %v", err)
	}

	// 1000 is fine after the revert (600 + 400), 2000 is not.
	_, err = svc.EditTransfer(ctx, tr.ID, models.TransferUpdate{AmountSent: dec("2000"), AmountReceived: dec("10"), ExchangeRate: dec("200")})
	if !errors.Is(err, models.ErrInsufficientFunds) {
		t.Fatalf("want ErrInsufficientFunds, got %v", err)
	}

	// Balances and record unchanged.
	if got := balance(t, storage, ars.ID); !got.Equal(dec("600")) {
		t.Errorf("ARS balance = %s, want 600", got)
	}
	got, err := svc.GetTransfer(ctx, tr.ID)
	if err != nil {
		t.Fatalf("GetTransfer failed: %v", err)
	}
	if !got.AmountSent.Equal(dec("400")) {
		t.Errorf("stored amount = %s, want 400", got.AmountSent)
	}
}

func TestDeleteTransfer(t *testing.T) {
	svc, storage, ars, usd := newTestService(t)
	ctx := context.Background()

	tr, err := svc.CreateTransfer(ctx, interfaces.TransferRequest{
		FromWalletID:   ars.ID,
		ToWalletID:     usd.ID,
		AmountSent:     dec("250"),
		AmountReceived: dec("1.25"),
	})
	if err != nil {
		t.Fatalf("CreateTransfer failed: %v", err)
	}

	if err := svc.DeleteTransfer(ctx, tr.ID); err != nil {
		t.Fatalf("DeleteTransfer failed: %v", err)
	}
	if got := balance(t, storage, ars.ID); !got.Equal(dec("1000")) {
		t.Errorf("ARS balance = %s, want 1000", got)
	}
	if got := balance(t, storage, usd.ID); !got.Equal(dec("100")) {
		t.Errorf("USD balance = %s, want 100", got)
	}
	if _, err := svc.GetTransfer(ctx, tr.ID); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("transfer should be gone, got %v", err)
	}
}

func TestDeleteTransferSpentFunds(t *testing.T) {
	svc, storage, ars, usd := newTestService(t)
	ctx := context.Background()

	tr, err := svc.CreateTransfer(ctx, interfaces.TransferRequest{
		FromWalletID:   ars.ID,
		ToWalletID:     usd.ID,
		AmountSent:     dec("900"),
		AmountReceived: dec("4.5"),
	})
	if err != nil {
		t.Fatalf("CreateTransfer failed: %v", err)
	}

	// Spend the received funds so the revert debit would go negative.
	expense := &models.ActualExpense{ID: models.NewID("exp"), WalletID: usd.ID, Amount: dec("104"), Currency: models.CurrencyUSD, Date: time.Now()}
	if err := storage.Commit(ctx, models.NewWriteBatch().
		Debit(usd.ID, expense.Amount).
		Put(models.TableActualExpense, expense.ID, expense)); err != nil {
		t.Fatalf("Commit failed: %v", err)
	}

	if err := svc.DeleteTransfer(ctx, tr.ID); !errors.Is(err, models.ErrInsufficientFunds) {
		t.Fatalf("want ErrInsufficientFunds, got %v", err)
	}
	// Transfer survives the failed delete.
	if _, err := svc.GetTransfer(ctx, tr.ID); err != nil {
		t.Errorf("transfer should survive, got %v", err)
	}
}

func TestCreateTransferCrossCurrencyWithoutRateCommitsNothing(t *testing.T) {
	svc, storage, ars, usd := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateTransfer(ctx, interfaces.TransferRequest{
		FromWalletID:   ars.ID,
		ToWalletID:     usd.ID,
		AmountSent:     dec("900"),
		AmountReceived: dec("1"),
	})
	if !errors.Is(err, models.ErrValidation) {
		t.Fatalf("want ErrValidation, got %v", err)
	}

	if got := balance(t, storage, ars.ID); !got.Equal(dec("1000")) {
		t.Errorf("source balance = %s, want 1000", got)
	}
	if got := balance(t, storage, usd.ID); !got.Equal(dec("100")) {
		t.Errorf("destination balance = %s, want 100", got)
	}
	transfers, _ := svc.ListTransfers(ctx)
	if len(transfers) != 0 {
		t.Errorf("no transfer should be recorded, got %d", len(transfers))
	}
}

func TestCreateTransferRateRecordedOnlyAcrossCurrencies(t *testing.T) {
	svc, storage, ars, usd := newTestService(t)
	ctx := context.Background()

	cross, err := svc.CreateTransfer(ctx, interfaces.TransferRequest{
		FromWalletID:   ars.ID,
		ToWalletID:     usd.ID,
		AmountSent:     dec("900"),
		AmountReceived: dec("1"),
		ExchangeRate:   dec("900"),
	})
	if err != nil {
		t.Fatalf("CreateTransfer failed: %v", err)
	}
	if !cross.ExchangeRate.Equal(dec("900")) {
		t.Errorf("rate = %s, want 900", cross.ExchangeRate)
	}

	other := &models.Wallet{ID: models.NewID("wal"), Name: "Otra ARS", Currency: models.CurrencyARS}
	if err := storage.Wallets().Save(ctx, other); err != nil {
		t.Fatalf("seed wallet: %v", err)
	}
	same, err := svc.CreateTransfer(ctx, interfaces.TransferRequest{
		FromWalletID:   ars.ID,
		ToWalletID:     other.ID,
		AmountSent:     dec("50"),
		AmountReceived: dec("50"),
		ExchangeRate:   dec("900"),
	})
	if err != nil {
		t.Fatalf("CreateTransfer failed: %v", err)
	}
	if !same.ExchangeRate.IsZero() {
		t.Errorf("same-currency transfer recorded rate %s", same.ExchangeRate)
	}
}

func TestEditTransferRequiresRestatedRate(t *testing.T) {
	svc, _, ars, usd := newTestService(t)
	ctx := context.Background()

	tr, err := svc.CreateTransfer(ctx, interfaces.TransferRequest{
		FromWalletID:   ars.ID,
		ToWalletID:     usd.ID,
		AmountSent:     dec("400"),
		AmountReceived: dec("2"),
		ExchangeRate:   dec("200"),
	})
	if err != nil {
		t.Fatalf("CreateTransfer failed: %v", err)
	}

	// Changing the amounts invalidates the recorded rate.
	_, err = svc.EditTransfer(ctx, tr.ID, models.TransferUpdate{AmountSent: dec("600"), AmountReceived: dec("3")})
	if !errors.Is(err, models.ErrValidation) {
		t.Fatalf("want ErrValidation, got %v", err)
	}

	// Touching only the notes keeps it.
	notes := "ajuste"
	edited, err := svc.EditTransfer(ctx, tr.ID, models.TransferUpdate{Notes: &notes})
	if err != nil {
		t.Fatalf("EditTransfer failed: %v", err)
	}
	if !edited.ExchangeRate.Equal(dec("200")) {
		t.Errorf("rate = %s, want 200", edited.ExchangeRate)
	}
	if edited.Notes != "ajuste" {
		t.Errorf("notes = %q", edited.Notes)
	}
}

func TestEditTransferToSameCurrencyDropsRate(t *testing.T) {
	svc, storage, ars, usd := newTestService(t)
	ctx := context.Background()

	other := &models.Wallet{ID: models.NewID("wal"), Name: "Otra ARS", Currency: models.CurrencyARS}
	if err := storage.Wallets().Save(ctx, other); err != nil {
		t.Fatalf("seed wallet: %v", err)
	}

	tr, err := svc.CreateTransfer(ctx, interfaces.TransferRequest{
		FromWalletID:   ars.ID,
		ToWalletID:     usd.ID,
		AmountSent:     dec("200"),
		AmountReceived: dec("1"),
		ExchangeRate:   dec("200"),
	})
	if err != nil {
		t.Fatalf("CreateTransfer failed: %v", err)
	}

	edited, err := svc.EditTransfer(ctx, tr.ID, models.TransferUpdate{
		ToWalletID:     other.ID,
		AmountReceived: dec("200"),
	})
	if err != nil {
		t.Fatalf("EditTransfer failed: %v", err)
	}
	if !edited.ExchangeRate.IsZero() {
		t.Errorf("rate = %s, want cleared", edited.ExchangeRate)
	}
	if edited.ToCurrency != models.CurrencyARS {
		t.Errorf("to currency = %s", edited.ToCurrency)
	}
}

func TestEditTransferClearsNotes(t *testing.T) {
	svc, storage, ars, _ := newTestService(t)
	ctx := context.Background()

	other := &models.Wallet{ID: models.NewID("wal"), Name: "Otra ARS", Currency: models.CurrencyARS}
	if err := storage.Wallets().Save(ctx, other); err != nil {
		t.Fatalf("seed wallet: %v", err)
	}

	tr, err := svc.CreateTransfer(ctx, interfaces.TransferRequest{
		FromWalletID:   ars.ID,
		ToWalletID:     other.ID,
		AmountSent:     dec("100"),
		AmountReceived: dec("100"),
		Notes:          "alquiler",
	})
	if err != nil {
		t.Fatalf("CreateTransfer failed: %v", err)
	}

	empty := ""
	edited, err := svc.EditTransfer(ctx, tr.ID, models.TransferUpdate{Notes: &empty})
	if err != nil {
		t.Fatalf("EditTransfer failed: %v", err)
	}
	if edited.Notes != "" {
		t.Errorf("notes = %q, want cleared", edited.Notes)
	}
}
