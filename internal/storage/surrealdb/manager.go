// Package surrealdb implements the storage layer on SurrealDB. All
// multi-document mutations go through Manager.Commit (txn.go), which renders
// them to one SurrealQL transaction with server-side guards.
package surrealdb

import (
	"context"
	"fmt"

	"github.com/surrealdb/surrealdb.go"

	"github.com/Gabaldaar/gestionomiscuentas/internal/common"
	"github.com/Gabaldaar/gestionomiscuentas/internal/interfaces"
	"github.com/Gabaldaar/gestionomiscuentas/internal/models"
)

// Manager implements interfaces.StorageManager using SurrealDB.
type Manager struct {
	db     *surrealdb.DB
	logger *common.Logger

	walletStore      *WalletStore
	propertyStore    *PropertyStore
	categoryStore    *CategoryStore
	transactionStore *TransactionStore
	transferStore    *TransferStore
	assetStore       *AssetStore
	liabilityStore   *LiabilityStore
}

// NewManager creates a new StorageManager connected to SurrealDB.
func NewManager(logger *common.Logger, config *common.Config) (*Manager, error) {
	ctx := context.Background()

	// Connect to SurrealDB
	db, err := surrealdb.New(config.Storage.Address)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to SurrealDB: %w", err)
	}

	// Sign in
	if _, err := db.SignIn(ctx, map[string]interface{}{
		"user": config.Storage.Username,
		"pass": config.Storage.Password,
	}); err != nil {
		return nil, fmt.Errorf("failed to sign in to SurrealDB: %w", err)
	}

	// Select namespace and database
	if err := db.Use(ctx, config.Storage.Namespace, config.Storage.Database); err != nil {
		return nil, fmt.Errorf("failed to select namespace/database: %w", err)
	}

	m, err := newManagerWithDB(db, logger)
	if err != nil {
		return nil, err
	}

	logger.Info().
		Str("address", config.Storage.Address).
		Str("namespace", config.Storage.Namespace).
		Str("database", config.Storage.Database).
		Msg("SurrealDB storage manager initialized")

	return m, nil
}

// newManagerWithDB wires stores over an existing connection (used by tests).
func newManagerWithDB(db *surrealdb.DB, logger *common.Logger) (*Manager, error) {
	ctx := context.Background()

	// Define tables to ensure they exist (SurrealDB v3 errors on querying
	// non-existent tables)
	tables := []string{
		models.TableWallet, models.TableProperty, models.TableCategory,
		models.TableIncome, models.TableActualExpense, models.TableExpectedExpense,
		models.TableTransfer, models.TableAsset, models.TableAssetCollection,
		models.TableLiability, models.TableLiabilityPayment,
	}
	for _, table := range tables {
		sql := fmt.Sprintf("DEFINE TABLE IF NOT EXISTS %s SCHEMALESS", table)
		if _, err := surrealdb.Query[any](ctx, db, sql, nil); err != nil {
			return nil, fmt.Errorf("failed to define table %s: %w", table, err)
		}
	}

	m := &Manager{
		db:     db,
		logger: logger,
	}

	m.walletStore = NewWalletStore(db, logger)
	m.propertyStore = NewPropertyStore(db, logger)
	m.categoryStore = NewCategoryStore(db, logger)
	m.transactionStore = NewTransactionStore(db, logger)
	m.transferStore = NewTransferStore(db, logger)
	m.assetStore = NewAssetStore(db, logger)
	m.liabilityStore = NewLiabilityStore(db, logger)

	return m, nil
}

func (m *Manager) Wallets() interfaces.WalletStore {
	return m.walletStore
}

func (m *Manager) Properties() interfaces.PropertyStore {
	return m.propertyStore
}

func (m *Manager) Categories() interfaces.CategoryStore {
	return m.categoryStore
}

func (m *Manager) Transactions() interfaces.TransactionStore {
	return m.transactionStore
}

func (m *Manager) Transfers() interfaces.TransferStore {
	return m.transferStore
}

func (m *Manager) Assets() interfaces.AssetStore {
	return m.assetStore
}

func (m *Manager) Liabilities() interfaces.LiabilityStore {
	return m.liabilityStore
}

func (m *Manager) Close() error {
	m.db.Close(context.Background())
	return nil
}

// Compile-time check
var _ interfaces.StorageManager = (*Manager)(nil)
