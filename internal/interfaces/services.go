package interfaces

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Gabaldaar/gestionomiscuentas/internal/models"
)

// WalletService manages wallets and the balance-consistency check.
type WalletService interface {
	CreateWallet(ctx context.Context, wallet *models.Wallet) (*models.Wallet, error)
	GetWallet(ctx context.Context, id string) (*models.Wallet, error)
	ListWallets(ctx context.Context) ([]*models.Wallet, error)
	UpdateWallet(ctx context.Context, id string, update models.WalletUpdate) (*models.Wallet, error)
	DeleteWallet(ctx context.Context, id string) error

	// VerifyBalance re-aggregates the wallet's ledger history and reports
	// drift between the stored balance and the computed one.
	VerifyBalance(ctx context.Context, id string) (*models.BalanceReport, error)
}

// TransferRequest carries the inputs for creating a transfer.
type TransferRequest struct {
	FromWalletID   string          `json:"from_wallet_id"`
	ToWalletID     string          `json:"to_wallet_id"`
	AmountSent     decimal.Decimal `json:"amount_sent"`
	AmountReceived decimal.Decimal `json:"amount_received"`
	ExchangeRate   decimal.Decimal `json:"exchange_rate"`
	Date           time.Time       `json:"date"`
	Notes          string          `json:"notes"`
}

// TransferService moves funds between wallets.
type TransferService interface {
	CreateTransfer(ctx context.Context, req TransferRequest) (*models.Transfer, error)
	GetTransfer(ctx context.Context, id string) (*models.Transfer, error)
	ListTransfers(ctx context.Context) ([]*models.Transfer, error)
	EditTransfer(ctx context.Context, id string, update models.TransferUpdate) (*models.Transfer, error)
	DeleteTransfer(ctx context.Context, id string) error
}

// AssetRequest carries the inputs for creating an asset (loan granted).
type AssetRequest struct {
	Name           string          `json:"name"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
	Currency       models.Currency `json:"currency"`
	SourceWalletID string          `json:"source_wallet_id"`
	PropertyID     string          `json:"property_id"`
	Date           time.Time       `json:"date"`
	Notes          string          `json:"notes"`
}

// CollectionRequest carries the inputs for recording a collection or payment.
type CollectionRequest struct {
	Amount     decimal.Decimal `json:"amount"`
	WalletID   string          `json:"wallet_id"`
	PropertyID string          `json:"property_id"`
	Date       time.Time       `json:"date"`
	Notes      string          `json:"notes"`
}

// AssetService manages the receivable lifecycle.
type AssetService interface {
	CreateAsset(ctx context.Context, req AssetRequest) (*models.Asset, error)
	GetAsset(ctx context.Context, id string) (*models.Asset, error)
	ListAssets(ctx context.Context) ([]*models.Asset, error)
	RecordCollection(ctx context.Context, assetID string, req CollectionRequest) (*models.AssetCollection, error)
	DeleteCollection(ctx context.Context, collectionID string) error
	DeleteAsset(ctx context.Context, id string) error
}

// LiabilityRequest carries the inputs for creating a liability (credit
// obtained). TargetWalletID is optional: when set, the initial amount is
// credited to that wallet and an Income is recorded alongside.
type LiabilityRequest struct {
	Name           string          `json:"name"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
	Currency       models.Currency `json:"currency"`
	TargetWalletID string          `json:"target_wallet_id"`
	PropertyID     string          `json:"property_id"`
	Date           time.Time       `json:"date"`
	Notes          string          `json:"notes"`
}

// LiabilityService manages the payable lifecycle.
type LiabilityService interface {
	CreateLiability(ctx context.Context, req LiabilityRequest) (*models.Liability, error)
	GetLiability(ctx context.Context, id string) (*models.Liability, error)
	ListLiabilities(ctx context.Context) ([]*models.Liability, error)
	RecordPayment(ctx context.Context, liabilityID string, req CollectionRequest) (*models.LiabilityPayment, error)
	DeletePayment(ctx context.Context, paymentID string) error
	DeleteLiability(ctx context.Context, id string) error
}

// IncomeRequest carries the inputs for a property-scoped income or expense.
type IncomeRequest struct {
	SubcategoryID string          `json:"subcategory_id"`
	WalletID      string          `json:"wallet_id"`
	Amount        decimal.Decimal `json:"amount"`
	Date          time.Time       `json:"date"`
	Notes         string          `json:"notes"`
}

// PropertyService manages properties and their transaction ledgers.
type PropertyService interface {
	CreateProperty(ctx context.Context, property *models.Property) (*models.Property, error)
	GetProperty(ctx context.Context, id string) (*models.Property, error)
	ListProperties(ctx context.Context) ([]*models.Property, error)
	UpdateProperty(ctx context.Context, property *models.Property) (*models.Property, error)
	DeleteProperty(ctx context.Context, id string) error

	AddIncome(ctx context.Context, propertyID string, req IncomeRequest) (*models.Income, error)
	AddExpense(ctx context.Context, propertyID string, req IncomeRequest) (*models.ActualExpense, error)
	UpdateIncome(ctx context.Context, incomeID string, req IncomeRequest) (*models.Income, error)
	UpdateExpense(ctx context.Context, expenseID string, req IncomeRequest) (*models.ActualExpense, error)
	DeleteIncome(ctx context.Context, incomeID string) error
	DeleteExpense(ctx context.Context, expenseID string) error
	ListIncomes(ctx context.Context, filter TransactionFilter) ([]*models.Income, error)
	ListExpenses(ctx context.Context, filter TransactionFilter) ([]*models.ActualExpense, error)

	SaveExpectedExpense(ctx context.Context, expected *models.ExpectedExpense) (*models.ExpectedExpense, error)
	ListExpectedExpenses(ctx context.Context, month, year int) ([]*models.ExpectedExpense, error)
	DeleteExpectedExpense(ctx context.Context, id string) error
}

// CategoryService manages categories and resolves role-tagged subcategories.
type CategoryService interface {
	CreateCategory(ctx context.Context, category *models.Category) (*models.Category, error)
	GetCategory(ctx context.Context, id string) (*models.Category, error)
	ListCategories(ctx context.Context, kind models.CategoryKind) ([]*models.Category, error)
	UpdateCategory(ctx context.Context, category *models.Category) (*models.Category, error)
	DeleteCategory(ctx context.Context, id string) error

	// ResolveRole returns the id of the first subcategory carrying the role,
	// falling back to the legacy name convention. A miss returns "" and no
	// error: classification degrades gracefully.
	ResolveRole(ctx context.Context, kind models.CategoryKind, role models.SubcategoryRole) (string, error)
}

// SummaryService aggregates period totals and optionally renders them to prose.
type SummaryService interface {
	PeriodSummary(ctx context.Context, from, to time.Time, propertyID string) (*models.PeriodSummary, error)
	GenerateSummary(ctx context.Context, from, to time.Time, propertyID string) (*models.PeriodSummary, error)
}
