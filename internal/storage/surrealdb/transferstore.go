package surrealdb

import (
	"context"
	"fmt"

	"github.com/surrealdb/surrealdb.go"
	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"

	"github.com/Gabaldaar/gestionomiscuentas/internal/common"
	"github.com/Gabaldaar/gestionomiscuentas/internal/models"
)

type TransferStore struct {
	db     *surrealdb.DB
	logger *common.Logger
}

func NewTransferStore(db *surrealdb.DB, logger *common.Logger) *TransferStore {
	return &TransferStore{
		db:     db,
		logger: logger,
	}
}

func (s *TransferStore) Get(ctx context.Context, id string) (*models.Transfer, error) {
	doc, err := surrealdb.Select[transferDoc](ctx, s.db, surrealmodels.NewRecordID(models.TableTransfer, id))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to select transfer: %v", models.ErrStoreUnavailable, err)
	}
	if doc == nil || doc.TransferID == "" {
		return nil, fmt.Errorf("%w: transfer %s", models.ErrNotFound, id)
	}
	return transferFromDoc(doc)
}

func (s *TransferStore) query(ctx context.Context, sql string, vars map[string]any) ([]*models.Transfer, error) {
	results, err := surrealdb.Query[[]transferDoc](ctx, s.db, sql, vars)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to query transfers: %v", models.ErrStoreUnavailable, err)
	}

	var transfers []*models.Transfer
	if results != nil && len(*results) > 0 {
		for i := range (*results)[0].Result {
			t, err := transferFromDoc(&(*results)[0].Result[i])
			if err != nil {
				return nil, err
			}
			transfers = append(transfers, t)
		}
	}
	return transfers, nil
}

func (s *TransferStore) List(ctx context.Context) ([]*models.Transfer, error) {
	sql := fmt.Sprintf("SELECT * FROM %s ORDER BY date DESC", models.TableTransfer)
	return s.query(ctx, sql, nil)
}

func (s *TransferStore) ListByWallet(ctx context.Context, walletID string) ([]*models.Transfer, error) {
	sql := fmt.Sprintf("SELECT * FROM %s WHERE from_wallet_id = $wallet_id OR to_wallet_id = $wallet_id ORDER BY date DESC", models.TableTransfer)
	return s.query(ctx, sql, map[string]any{"wallet_id": walletID})
}
