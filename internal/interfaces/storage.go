// Package interfaces defines service contracts for Gestiono Mis Cuentas
package interfaces

import (
	"context"
	"time"

	"github.com/Gabaldaar/gestionomiscuentas/internal/models"
)

// StorageManager coordinates all document stores and the atomic batch commit.
type StorageManager interface {
	Wallets() WalletStore
	Properties() PropertyStore
	Categories() CategoryStore
	Transactions() TransactionStore
	Transfers() TransferStore
	Assets() AssetStore
	Liabilities() LiabilityStore

	// Commit applies a WriteBatch as one atomic transaction. Balance and
	// outstanding-balance guards run server-side against current stored
	// values; if any guard fails no document in the batch is written and the
	// returned error wraps the matching sentinel from models.
	Commit(ctx context.Context, batch *models.WriteBatch) error

	// Lifecycle
	Close() error
}

// WalletStore manages wallet documents. Save/Delete cover standalone CRUD;
// every balance movement goes through StorageManager.Commit.
type WalletStore interface {
	Get(ctx context.Context, id string) (*models.Wallet, error)
	List(ctx context.Context) ([]*models.Wallet, error)
	Save(ctx context.Context, wallet *models.Wallet) error
	Delete(ctx context.Context, id string) error
}

// PropertyStore manages property (cost center) documents.
type PropertyStore interface {
	Get(ctx context.Context, id string) (*models.Property, error)
	List(ctx context.Context) ([]*models.Property, error)
	Save(ctx context.Context, property *models.Property) error
	Delete(ctx context.Context, id string) error
}

// CategoryStore manages categories and their nested subcategories.
type CategoryStore interface {
	Get(ctx context.Context, id string) (*models.Category, error)
	List(ctx context.Context, kind models.CategoryKind) ([]*models.Category, error)
	Save(ctx context.Context, category *models.Category) error
	Delete(ctx context.Context, id string) error
}

// TransactionFilter narrows transaction listings.
type TransactionFilter struct {
	PropertyID string
	WalletID   string
	From       time.Time
	To         time.Time
}

// TransactionStore reads income/expense documents and manages budget-only
// expected expenses. All income/expense writes are paired with wallet deltas
// and go through StorageManager.Commit.
type TransactionStore interface {
	GetIncome(ctx context.Context, id string) (*models.Income, error)
	GetExpense(ctx context.Context, id string) (*models.ActualExpense, error)
	ListIncomes(ctx context.Context, filter TransactionFilter) ([]*models.Income, error)
	ListExpenses(ctx context.Context, filter TransactionFilter) ([]*models.ActualExpense, error)

	// Expected expenses never touch a wallet, so plain CRUD applies.
	GetExpected(ctx context.Context, id string) (*models.ExpectedExpense, error)
	ListExpected(ctx context.Context, month, year int) ([]*models.ExpectedExpense, error)
	SaveExpected(ctx context.Context, expected *models.ExpectedExpense) error
	DeleteExpected(ctx context.Context, id string) error
}

// TransferStore reads transfer documents; writes go through Commit.
type TransferStore interface {
	Get(ctx context.Context, id string) (*models.Transfer, error)
	List(ctx context.Context) ([]*models.Transfer, error)
	ListByWallet(ctx context.Context, walletID string) ([]*models.Transfer, error)
}

// AssetStore reads asset and collection documents; writes go through Commit.
type AssetStore interface {
	Get(ctx context.Context, id string) (*models.Asset, error)
	List(ctx context.Context) ([]*models.Asset, error)
	GetCollection(ctx context.Context, id string) (*models.AssetCollection, error)
	ListCollections(ctx context.Context, assetID string) ([]*models.AssetCollection, error)
	AnyCollectionForWallet(ctx context.Context, walletID string) (bool, error)
}

// LiabilityStore reads liability and payment documents; writes go through Commit.
type LiabilityStore interface {
	Get(ctx context.Context, id string) (*models.Liability, error)
	List(ctx context.Context) ([]*models.Liability, error)
	GetPayment(ctx context.Context, id string) (*models.LiabilityPayment, error)
	ListPayments(ctx context.Context, liabilityID string) ([]*models.LiabilityPayment, error)
	AnyPaymentForWallet(ctx context.Context, walletID string) (bool, error)
}
