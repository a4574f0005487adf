package liability

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/Gabaldaar/gestionomiscuentas/internal/common"
	"github.com/Gabaldaar/gestionomiscuentas/internal/interfaces"
	"github.com/Gabaldaar/gestionomiscuentas/internal/models"
	"github.com/Gabaldaar/gestionomiscuentas/internal/services/category"
	"github.com/Gabaldaar/gestionomiscuentas/internal/storage/memory"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

type fixture struct {
	svc     *Service
	storage *memory.Manager
	wallet  *models.Wallet
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	storage := memory.NewManager()
	logger := common.NewSilentLogger()
	categories := category.NewService(storage, logger)
	ctx := context.Background()

	if _, err := categories.CreateCategory(ctx, &models.Category{
		Kind: models.CategoryIncome,
		Name: "Financiero",
		Subcategories: []models.Subcategory{
			{Name: "Créditos obtenidos", Role: models.RoleCreditObtained},
		},
	}); err != nil {
		t.Fatalf("seed income category: %v", err)
	}
	if _, err := categories.CreateCategory(ctx, &models.Category{
		Kind: models.CategoryExpense,
		Name: "Financiero",
		Subcategories: []models.Subcategory{
			{Name: "Pagos de créditos", Role: models.RoleCreditPayment},
		},
	}); err != nil {
		t.Fatalf("seed expense category: %v", err)
	}

	wallet := &models.Wallet{ID: models.NewID("wal"), Name: "Banco", Currency: models.CurrencyARS, Balance: dec("2000"), InitialBalance: dec("2000")}
	if err := storage.Wallets().Save(ctx, wallet); err != nil {
		t.Fatalf("seed wallet: %v", err)
	}

	return &fixture{
		svc:     NewService(storage, categories, logger),
		storage: storage,
		wallet:  wallet,
	}
}

func (f *fixture) balance(t *testing.T) decimal.Decimal {
	t.Helper()
	w, err := f.storage.Wallets().Get(context.Background(), f.wallet.ID)
	if err != nil {
		t.Fatalf("get wallet: %v", err)
	}
	return w.Balance
}

func TestCreateLiabilityFunded(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	lia, err := f.svc.CreateLiability(ctx, interfaces.LiabilityRequest{
		Name:           "Crédito hipotecario",
		TotalAmount:    dec("5000"),
		TargetWalletID: f.wallet.ID,
	})
	if err != nil {
		t.Fatalf("CreateLiability failed: %v", err)
	}
	if !lia.OutstandingBalance.Equal(dec("5000")) {
		t.Errorf("outstanding = %s, want 5000", lia.OutstandingBalance)
	}
	if bal := f.balance(t); !bal.Equal(dec("7000")) {
		t.Errorf("wallet balance = %s, want 7000", bal)
	}

	income, err := f.storage.Transactions().GetIncome(ctx, lia.CreationIncomeID)
	if err != nil {
		t.Fatalf("creation income missing: %v", err)
	}
	if income.LiabilityID != lia.ID {
		t.Errorf("income liability id = %q", income.LiabilityID)
	}
	if income.SubcategoryID == "" {
		t.Error("income should be classified under the credit-obtained subcategory")
	}
}

func TestCreateLiabilityUnfunded(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	lia, err := f.svc.CreateLiability(ctx, interfaces.LiabilityRequest{
		Name:        "Deuda con proveedor",
		TotalAmount: dec("800"),
		Currency:    models.CurrencyARS,
	})
	if err != nil {
		t.Fatalf("CreateLiability failed: %v", err)
	}
	if lia.TargetWalletID != "" || lia.CreationIncomeID != "" {
		t.Error("unfunded liability should not reference a wallet or income")
	}
	if bal := f.balance(t); !bal.Equal(dec("2000")) {
		t.Errorf("wallet balance = %s, want 2000 untouched", bal)
	}
}

func TestCreateLiabilityValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.svc.CreateLiability(ctx, interfaces.LiabilityRequest{TotalAmount: dec("1"), Currency: models.CurrencyARS}); !errors.Is(err, models.ErrValidation) {
		t.Errorf("empty name: want ErrValidation, got %v", err)
	}
	if _, err := f.svc.CreateLiability(ctx, interfaces.LiabilityRequest{Name: "X", Currency: models.CurrencyARS}); !errors.Is(err, models.ErrValidation) {
		t.Errorf("zero amount: want ErrValidation, got %v", err)
	}
	// Unfunded needs an explicit currency.
	if _, err := f.svc.CreateLiability(ctx, interfaces.LiabilityRequest{Name: "X", TotalAmount: dec("1")}); !errors.Is(err, models.ErrValidation) {
		t.Errorf("missing currency: want ErrValidation, got %v", err)
	}
	if _, err := f.svc.CreateLiability(ctx, interfaces.LiabilityRequest{Name: "X", TotalAmount: dec("1"), Currency: models.CurrencyUSD, TargetWalletID: f.wallet.ID}); !errors.Is(err, models.ErrValidation) {
		t.Errorf("currency mismatch: want ErrValidation, got %v", err)
	}
}

func TestRecordPayment(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	lia, _ := f.svc.CreateLiability(ctx, interfaces.LiabilityRequest{
		Name:        "Crédito",
		TotalAmount: dec("1500"),
		Currency:    models.CurrencyARS,
	})

	pay, err := f.svc.RecordPayment(ctx, lia.ID, interfaces.CollectionRequest{
		Amount:   dec("600"),
		WalletID: f.wallet.ID,
	})
	if err != nil {
		t.Fatalf("RecordPayment failed: %v", err)
	}

	got, _ := f.svc.GetLiability(ctx, lia.ID)
	if !got.OutstandingBalance.Equal(dec("900")) {
		t.Errorf("outstanding = %s, want 900", got.OutstandingBalance)
	}
	if len(got.Payments) != 1 {
		t.Fatalf("payments = %d, want 1", len(got.Payments))
	}
	if bal := f.balance(t); !bal.Equal(dec("1400")) {
		t.Errorf("wallet balance = %s, want 1400", bal)
	}

	expense, err := f.storage.Transactions().GetExpense(ctx, pay.ActualExpenseID)
	if err != nil {
		t.Fatalf("paired expense missing: %v", err)
	}
	if expense.LiabilityID != lia.ID {
		t.Errorf("expense liability id = %q", expense.LiabilityID)
	}
}

func TestRecordPaymentOverOutstanding(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	lia, _ := f.svc.CreateLiability(ctx, interfaces.LiabilityRequest{
		Name:        "Crédito",
		TotalAmount: dec("1000"),
		Currency:    models.CurrencyARS,
	})
	if _, err := f.svc.RecordPayment(ctx, lia.ID, interfaces.CollectionRequest{Amount: dec("900"), WalletID: f.wallet.ID}); err != nil {
		t.Fatalf("first payment failed: %v", err)
	}

	_, err := f.svc.RecordPayment(ctx, lia.ID, interfaces.CollectionRequest{Amount: dec("101"), WalletID: f.wallet.ID})
	if !errors.Is(err, models.ErrOverCollection) {
		t.Fatalf("want ErrOverCollection, got %v", err)
	}
	// Wallet untouched by the rejected payment: 2000 - 900.
	if bal := f.balance(t); !bal.Equal(dec("1100")) {
		t.Errorf("wallet balance = %s, want 1100", bal)
	}
}

func TestRecordPaymentInsufficientFunds(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	lia, _ := f.svc.CreateLiability(ctx, interfaces.LiabilityRequest{
		Name:        "Crédito grande",
		TotalAmount: dec("10000"),
		Currency:    models.CurrencyARS,
	})

	_, err := f.svc.RecordPayment(ctx, lia.ID, interfaces.CollectionRequest{Amount: dec("3000"), WalletID: f.wallet.ID})
	if !errors.Is(err, models.ErrInsufficientFunds) {
		t.Fatalf("want ErrInsufficientFunds, got %v", err)
	}
	got, _ := f.svc.GetLiability(ctx, lia.ID)
	if !got.OutstandingBalance.Equal(dec("10000")) {
		t.Errorf("outstanding = %s, want 10000 untouched", got.OutstandingBalance)
	}
}

func TestDeletePayment(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	lia, _ := f.svc.CreateLiability(ctx, interfaces.LiabilityRequest{
		Name:        "Crédito",
		TotalAmount: dec("1500"),
		Currency:    models.CurrencyARS,
	})
	pay, err := f.svc.RecordPayment(ctx, lia.ID, interfaces.CollectionRequest{Amount: dec("600"), WalletID: f.wallet.ID})
	if err != nil {
		t.Fatalf("RecordPayment failed: %v", err)
	}

	if err := f.svc.DeletePayment(ctx, pay.ID); err != nil {
		t.Fatalf("DeletePayment failed: %v", err)
	}
	got, _ := f.svc.GetLiability(ctx, lia.ID)
	if !got.OutstandingBalance.Equal(dec("1500")) {
		t.Errorf("outstanding = %s, want 1500 restored", got.OutstandingBalance)
	}
	if bal := f.balance(t); !bal.Equal(dec("2000")) {
		t.Errorf("wallet balance = %s, want 2000 restored", bal)
	}
	if _, err := f.storage.Transactions().GetExpense(ctx, pay.ActualExpenseID); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("paired expense should be gone, got %v", err)
	}
}

func TestDeleteLiabilityFunded(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	lia, err := f.svc.CreateLiability(ctx, interfaces.LiabilityRequest{
		Name:           "Crédito",
		TotalAmount:    dec("5000"),
		TargetWalletID: f.wallet.ID,
	})
	if err != nil {
		t.Fatalf("CreateLiability failed: %v", err)
	}

	if err := f.svc.DeleteLiability(ctx, lia.ID); err != nil {
		t.Fatalf("DeleteLiability failed: %v", err)
	}
	if bal := f.balance(t); !bal.Equal(dec("2000")) {
		t.Errorf("wallet balance = %s, want 2000 restored", bal)
	}
	if _, err := f.storage.Transactions().GetIncome(ctx, lia.CreationIncomeID); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("creation income should be gone, got %v", err)
	}
}

func TestDeleteLiabilityFundedButSpent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	lia, err := f.svc.CreateLiability(ctx, interfaces.LiabilityRequest{
		Name:           "Crédito",
		TotalAmount:    dec("5000"),
		TargetWalletID: f.wallet.ID,
	})
	if err != nil {
		t.Fatalf("CreateLiability failed: %v", err)
	}

	// Spend down below the credited amount: 7000 - 2500 = 4500 < 5000.
	drain := &models.ActualExpense{ID: models.NewID("exp"), WalletID: f.wallet.ID, Amount: dec("2500"), Currency: models.CurrencyARS}
	if err := f.storage.Commit(ctx, models.NewWriteBatch().
		Debit(f.wallet.ID, drain.Amount).
		Put(models.TableActualExpense, drain.ID, drain)); err != nil {
		t.Fatalf("drain failed: %v", err)
	}

	if err := f.svc.DeleteLiability(ctx, lia.ID); !errors.Is(err, models.ErrInsufficientFunds) {
		t.Fatalf("want ErrInsufficientFunds, got %v", err)
	}
	if _, err := f.svc.GetLiability(ctx, lia.ID); err != nil {
		t.Errorf("liability should survive, got %v", err)
	}
}

func TestDeleteLiabilityWithPayments(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	lia, _ := f.svc.CreateLiability(ctx, interfaces.LiabilityRequest{
		Name:        "Crédito",
		TotalAmount: dec("1000"),
		Currency:    models.CurrencyARS,
	})
	if _, err := f.svc.RecordPayment(ctx, lia.ID, interfaces.CollectionRequest{Amount: dec("100"), WalletID: f.wallet.ID}); err != nil {
		t.Fatalf("RecordPayment failed: %v", err)
	}

	if err := f.svc.DeleteLiability(ctx, lia.ID); !errors.Is(err, models.ErrHasDependents) {
		t.Errorf("want ErrHasDependents, got %v", err)
	}
}
