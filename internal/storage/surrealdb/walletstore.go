package surrealdb

import (
	"context"
	"fmt"
	"time"

	"github.com/surrealdb/surrealdb.go"
	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"

	"github.com/Gabaldaar/gestionomiscuentas/internal/common"
	"github.com/Gabaldaar/gestionomiscuentas/internal/models"
)

type WalletStore struct {
	db     *surrealdb.DB
	logger *common.Logger
}

func NewWalletStore(db *surrealdb.DB, logger *common.Logger) *WalletStore {
	return &WalletStore{
		db:     db,
		logger: logger,
	}
}

func (s *WalletStore) Get(ctx context.Context, id string) (*models.Wallet, error) {
	doc, err := surrealdb.Select[walletDoc](ctx, s.db, surrealmodels.NewRecordID(models.TableWallet, id))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to select wallet: %v", models.ErrStoreUnavailable, err)
	}
	if doc == nil || doc.WalletID == "" {
		return nil, fmt.Errorf("%w: wallet %s", models.ErrNotFound, id)
	}
	return walletFromDoc(doc)
}

func (s *WalletStore) List(ctx context.Context) ([]*models.Wallet, error) {
	sql := fmt.Sprintf("SELECT * FROM %s ORDER BY name ASC", models.TableWallet)

	results, err := surrealdb.Query[[]walletDoc](ctx, s.db, sql, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list wallets: %v", models.ErrStoreUnavailable, err)
	}

	var wallets []*models.Wallet
	if results != nil && len(*results) > 0 {
		for i := range (*results)[0].Result {
			w, err := walletFromDoc(&(*results)[0].Result[i])
			if err != nil {
				return nil, err
			}
			wallets = append(wallets, w)
		}
	}
	return wallets, nil
}

func (s *WalletStore) Save(ctx context.Context, wallet *models.Wallet) error {
	wallet.UpdatedAt = time.Now()
	if wallet.CreatedAt.IsZero() {
		wallet.CreatedAt = wallet.UpdatedAt
	}

	sql := fmt.Sprintf("UPSERT type::record('%s', $id) CONTENT $doc", models.TableWallet)
	vars := map[string]any{"id": wallet.ID, "doc": walletToDoc(wallet)}

	if _, err := surrealdb.Query[[]walletDoc](ctx, s.db, sql, vars); err != nil {
		return fmt.Errorf("%w: failed to save wallet: %v", models.ErrStoreUnavailable, err)
	}
	return nil
}

func (s *WalletStore) Delete(ctx context.Context, id string) error {
	_, err := surrealdb.Delete[walletDoc](ctx, s.db, surrealmodels.NewRecordID(models.TableWallet, id))
	if err != nil {
		return fmt.Errorf("%w: failed to delete wallet: %v", models.ErrStoreUnavailable, err)
	}
	return nil
}
