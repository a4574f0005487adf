package surrealdb

import (
	"context"
	"fmt"

	"github.com/surrealdb/surrealdb.go"
	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"

	"github.com/Gabaldaar/gestionomiscuentas/internal/common"
	"github.com/Gabaldaar/gestionomiscuentas/internal/models"
)

type LiabilityStore struct {
	db     *surrealdb.DB
	logger *common.Logger
}

func NewLiabilityStore(db *surrealdb.DB, logger *common.Logger) *LiabilityStore {
	return &LiabilityStore{
		db:     db,
		logger: logger,
	}
}

// Get returns the liability with its payments populated.
func (s *LiabilityStore) Get(ctx context.Context, id string) (*models.Liability, error) {
	doc, err := surrealdb.Select[liabilityDoc](ctx, s.db, surrealmodels.NewRecordID(models.TableLiability, id))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to select liability: %v", models.ErrStoreUnavailable, err)
	}
	if doc == nil || doc.LiabilityID == "" {
		return nil, fmt.Errorf("%w: liability %s", models.ErrNotFound, id)
	}

	liability, err := liabilityFromDoc(doc)
	if err != nil {
		return nil, err
	}

	payments, err := s.ListPayments(ctx, id)
	if err != nil {
		return nil, err
	}
	for _, p := range payments {
		liability.Payments = append(liability.Payments, *p)
	}
	return liability, nil
}

func (s *LiabilityStore) List(ctx context.Context) ([]*models.Liability, error) {
	sql := fmt.Sprintf("SELECT * FROM %s ORDER BY creation_date DESC", models.TableLiability)

	results, err := surrealdb.Query[[]liabilityDoc](ctx, s.db, sql, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list liabilities: %v", models.ErrStoreUnavailable, err)
	}

	var liabilities []*models.Liability
	if results != nil && len(*results) > 0 {
		for i := range (*results)[0].Result {
			l, err := liabilityFromDoc(&(*results)[0].Result[i])
			if err != nil {
				return nil, err
			}
			liabilities = append(liabilities, l)
		}
	}
	return liabilities, nil
}

func (s *LiabilityStore) GetPayment(ctx context.Context, id string) (*models.LiabilityPayment, error) {
	doc, err := surrealdb.Select[paymentDoc](ctx, s.db, surrealmodels.NewRecordID(models.TableLiabilityPayment, id))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to select payment: %v", models.ErrStoreUnavailable, err)
	}
	if doc == nil || doc.PaymentID == "" {
		return nil, fmt.Errorf("%w: payment %s", models.ErrNotFound, id)
	}
	return paymentFromDoc(doc)
}

func (s *LiabilityStore) ListPayments(ctx context.Context, liabilityID string) ([]*models.LiabilityPayment, error) {
	sql := fmt.Sprintf("SELECT * FROM %s WHERE liability_id = $liability_id ORDER BY date ASC", models.TableLiabilityPayment)
	vars := map[string]any{"liability_id": liabilityID}

	results, err := surrealdb.Query[[]paymentDoc](ctx, s.db, sql, vars)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list payments: %v", models.ErrStoreUnavailable, err)
	}

	var payments []*models.LiabilityPayment
	if results != nil && len(*results) > 0 {
		for i := range (*results)[0].Result {
			p, err := paymentFromDoc(&(*results)[0].Result[i])
			if err != nil {
				return nil, err
			}
			payments = append(payments, p)
		}
	}
	return payments, nil
}

func (s *LiabilityStore) AnyPaymentForWallet(ctx context.Context, walletID string) (bool, error) {
	sql := fmt.Sprintf("SELECT payment_id FROM %s WHERE wallet_id = $wallet_id LIMIT 1", models.TableLiabilityPayment)
	vars := map[string]any{"wallet_id": walletID}

	results, err := surrealdb.Query[[]paymentDoc](ctx, s.db, sql, vars)
	if err != nil {
		return false, fmt.Errorf("%w: failed to query payments: %v", models.ErrStoreUnavailable, err)
	}
	return results != nil && len(*results) > 0 && len((*results)[0].Result) > 0, nil
}
