// Package liability manages debts payable and their payment lifecycle. It is
// the structural mirror of the asset service with the wallet deltas inverted.
package liability

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Gabaldaar/gestionomiscuentas/internal/common"
	"github.com/Gabaldaar/gestionomiscuentas/internal/interfaces"
	"github.com/Gabaldaar/gestionomiscuentas/internal/models"
)

// Compile-time interface check
var _ interfaces.LiabilityService = (*Service)(nil)

// Service implements LiabilityService
type Service struct {
	storage    interfaces.StorageManager
	categories interfaces.CategoryService
	logger     *common.Logger
}

// NewService creates a new liability service
func NewService(storage interfaces.StorageManager, categories interfaces.CategoryService, logger *common.Logger) *Service {
	return &Service{
		storage:    storage,
		categories: categories,
		logger:     logger,
	}
}

// CreateLiability records a debt. With a target wallet the received amount is
// credited and the paired income entry written in the same commit; without
// one the debt is tracked off-wallet.
func (s *Service) CreateLiability(ctx context.Context, req interfaces.LiabilityRequest) (*models.Liability, error) {
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return nil, fmt.Errorf("%w: name is required", models.ErrValidation)
	}
	if !req.TotalAmount.IsPositive() {
		return nil, fmt.Errorf("%w: total amount must be positive", models.ErrValidation)
	}

	currency := req.Currency
	var wallet *models.Wallet
	if req.TargetWalletID != "" {
		var err error
		wallet, err = s.storage.Wallets().Get(ctx, req.TargetWalletID)
		if err != nil {
			return nil, err
		}
		if currency == "" {
			currency = wallet.Currency
		}
		if currency != wallet.Currency {
			return nil, fmt.Errorf("%w: currency %s does not match wallet currency %s", models.ErrValidation, currency, wallet.Currency)
		}
	}
	if !models.ValidCurrency(currency) {
		return nil, fmt.Errorf("%w: invalid currency %q", models.ErrValidation, currency)
	}

	now := time.Now()
	date := req.Date
	if date.IsZero() {
		date = now
	}
	liability := &models.Liability{
		ID:                 models.NewID("lia"),
		Name:               req.Name,
		TotalAmount:        req.TotalAmount,
		OutstandingBalance: req.TotalAmount,
		Currency:           currency,
		CreationDate:       date,
		Notes:              req.Notes,
		PropertyID:         req.PropertyID,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	batch := models.NewWriteBatch()
	if wallet != nil {
		subcategoryID, err := s.categories.ResolveRole(ctx, models.CategoryIncome, models.RoleCreditObtained)
		if err != nil {
			return nil, err
		}
		income := &models.Income{
			ID:            models.NewID("inc"),
			SubcategoryID: subcategoryID,
			WalletID:      wallet.ID,
			Amount:        req.TotalAmount,
			Currency:      currency,
			Date:          date,
			Notes:         fmt.Sprintf("Crédito obtenido: %s", req.Name),
			PropertyID:    req.PropertyID,
			LiabilityID:   liability.ID,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		liability.TargetWalletID = wallet.ID
		liability.CreationIncomeID = income.ID
		batch.Credit(wallet.ID, req.TotalAmount).
			Put(models.TableIncome, income.ID, income)
	}
	batch.Put(models.TableLiability, liability.ID, liability)
	if err := s.storage.Commit(ctx, batch); err != nil {
		return nil, err
	}

	s.logger.Info().Str("id", liability.ID).Str("name", liability.Name).
		Str("total", liability.TotalAmount.String()).
		Bool("funded", wallet != nil).
		Msg("Liability created")
	return liability, nil
}

func (s *Service) GetLiability(ctx context.Context, id string) (*models.Liability, error) {
	return s.storage.Liabilities().Get(ctx, id)
}

func (s *Service) ListLiabilities(ctx context.Context) ([]*models.Liability, error) {
	return s.storage.Liabilities().List(ctx)
}

// RecordPayment debits the paying wallet, reduces the outstanding balance and
// writes the paired expense entry. An over-payment is rejected, never clamped.
func (s *Service) RecordPayment(ctx context.Context, liabilityID string, req interfaces.CollectionRequest) (*models.LiabilityPayment, error) {
	liability, err := s.storage.Liabilities().Get(ctx, liabilityID)
	if err != nil {
		return nil, err
	}
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive", models.ErrValidation)
	}
	wallet, err := s.storage.Wallets().Get(ctx, req.WalletID)
	if err != nil {
		return nil, err
	}
	if wallet.Currency != liability.Currency {
		return nil, fmt.Errorf("%w: wallet currency %s does not match liability currency %s", models.ErrValidation, wallet.Currency, liability.Currency)
	}

	subcategoryID, err := s.categories.ResolveRole(ctx, models.CategoryExpense, models.RoleCreditPayment)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	date := req.Date
	if date.IsZero() {
		date = now
	}
	propertyID := req.PropertyID
	if propertyID == "" {
		propertyID = liability.PropertyID
	}
	expense := &models.ActualExpense{
		ID:            models.NewID("exp"),
		SubcategoryID: subcategoryID,
		WalletID:      wallet.ID,
		Amount:        req.Amount,
		Currency:      liability.Currency,
		Date:          date,
		Notes:         fmt.Sprintf("Pago de crédito: %s", liability.Name),
		PropertyID:    propertyID,
		LiabilityID:   liability.ID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	payment := &models.LiabilityPayment{
		ID:              models.NewID("pay"),
		LiabilityID:     liability.ID,
		Date:            date,
		Amount:          req.Amount,
		WalletID:        wallet.ID,
		Currency:        liability.Currency,
		Notes:           req.Notes,
		ActualExpenseID: expense.ID,
		PropertyID:      propertyID,
		CreatedAt:       now,
	}

	batch := models.NewWriteBatch().
		Debit(wallet.ID, req.Amount).
		AdjustOutstanding(models.TableLiability, liability.ID, req.Amount.Neg()).
		Put(models.TableActualExpense, expense.ID, expense).
		Put(models.TableLiabilityPayment, payment.ID, payment)
	if err := s.storage.Commit(ctx, batch); err != nil {
		return nil, err
	}

	s.logger.Info().Str("id", payment.ID).Str("liability", liability.ID).
		Str("amount", req.Amount.String()).
		Msg("Payment recorded")
	return payment, nil
}

// DeletePayment reverses a recorded payment: the wallet gets the amount back
// and the outstanding balance is restored.
func (s *Service) DeletePayment(ctx context.Context, paymentID string) error {
	payment, err := s.storage.Liabilities().GetPayment(ctx, paymentID)
	if err != nil {
		return err
	}

	batch := models.NewWriteBatch().
		Credit(payment.WalletID, payment.Amount).
		AdjustOutstanding(models.TableLiability, payment.LiabilityID, payment.Amount).
		Delete(models.TableActualExpense, payment.ActualExpenseID).
		Delete(models.TableLiabilityPayment, payment.ID)
	if err := s.storage.Commit(ctx, batch); err != nil {
		return err
	}

	s.logger.Info().Str("id", paymentID).Str("liability", payment.LiabilityID).Msg("Payment deleted")
	return nil
}

// DeleteLiability removes a liability with no payments. When creation funded
// a wallet, the amount is debited back (guarded) and the creation income
// deleted in the same commit.
func (s *Service) DeleteLiability(ctx context.Context, id string) error {
	liability, err := s.storage.Liabilities().Get(ctx, id)
	if err != nil {
		return err
	}
	if len(liability.Payments) > 0 {
		return fmt.Errorf("%w: liability %s has %d payments; delete them first", models.ErrHasDependents, id, len(liability.Payments))
	}

	batch := models.NewWriteBatch()
	if liability.TargetWalletID != "" {
		batch.Debit(liability.TargetWalletID, liability.TotalAmount)
	}
	if liability.CreationIncomeID != "" {
		batch.Delete(models.TableIncome, liability.CreationIncomeID)
	}
	batch.Delete(models.TableLiability, liability.ID)
	if err := s.storage.Commit(ctx, batch); err != nil {
		return err
	}

	s.logger.Info().Str("id", id).Msg("Liability deleted")
	return nil
}
