// Package property manages cost centers and their transaction ledgers.
package property

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
var _ interfaces.PropertyService = (*Service)(nil)

// Service implements PropertyService
type Service struct {
	storage interfaces.StorageManager
	logger  *common.Logger
}

// NewService creates a new property service
func NewService(storage interfaces.StorageManager, logger *common.Logger) *Service {
	return &Service{
		storage: storage,
		logger:  logger,
	}
}

func (s *Service) CreateProperty(ctx context.Context, property *models.Property) (*models.Property, error) {
	property.Name = strings.TrimSpace(property.Name)
	if property.Name == "" {
		return nil, fmt.Errorf("%w: name is required", models.ErrValidation)
	}

	property.ID = models.NewID("prp")
	if err := s.storage.Properties().Save(ctx, property); err != nil {
		return nil, err
	}

	s.logger.Info().Str("id", property.ID).Str("name", property.Name).Msg("Property created")
	return property, nil
}

func (s *Service) GetProperty(ctx context.Context, id string) (*models.Property, error) {
	return s.storage.Properties().Get(ctx, id)
}

func (s *Service) ListProperties(ctx context.Context) ([]*models.Property, error) {
	return s.storage.Properties().List(ctx)
}

func (s *Service) UpdateProperty(ctx context.Context, property *models.Property) (*models.Property, error) {
	existing, err := s.storage.Properties().Get(ctx, property.ID)
	if err != nil {
		return nil, err
	}

	property.Name = strings.TrimSpace(property.Name)
	if property.Name == "" {
		return nil, fmt.Errorf("%w: name is required", models.ErrValidation)
	}
	property.CreatedAt = existing.CreatedAt
	property.UpdatedAt = time.Now()

	if err := s.storage.Properties().Save(ctx, property); err != nil {
		return nil, err
	}

	s.logger.Info().Str("id", property.ID).Msg("Property updated")
	return property, nil
}

// DeleteProperty removes a property that no ledger entry references.
func (s *Service) DeleteProperty(ctx context.Context, id string) error {
	if _, err := s.storage.Properties().Get(ctx, id); err != nil {
		return err
	}

	referenced, err := s.propertyReferenced(ctx, id)
	if err != nil {
		return err
	}
	if referenced {
		return fmt.Errorf("%w: property %s has ledger entries; delete them first", models.ErrHasDependents, id)
	}

	if err := s.storage.Properties().Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Str("id", id).Msg("Property deleted")
	return nil
}

func (s *Service) propertyReferenced(ctx context.Context, id string) (bool, error) {
	filter := interfaces.TransactionFilter{PropertyID: id}
	incomes, err := s.storage.Transactions().ListIncomes(ctx, filter)
	if err != nil {
		return false, err
	}
	if len(incomes) > 0 {
		return true, nil
	}

	expenses, err := s.storage.Transactions().ListExpenses(ctx, filter)
	if err != nil {
		return false, err
	}
	if len(expenses) > 0 {
		return true, nil
	}

	expected, err := s.storage.Transactions().ListExpected(ctx, 0, 0)
	if err != nil {
		return false, err
	}
	for _, ee := range expected {
		if ee.PropertyID == id {
			return true, nil
		}
	}

	assets, err := s.storage.Assets().List(ctx)
	if err != nil {
		return false, err
	}
	for _, a := range assets {
		if a.PropertyID == id {
			return true, nil
		}
	}

	liabilities, err := s.storage.Liabilities().List(ctx)
	if err != nil {
		return false, err
	}
	for _, l := range liabilities {
		if l.PropertyID == id {
			return true, nil
		}
	}
	return false, nil
}

func (s *Service) validateEntryRequest(ctx context.Context, propertyID string, req interfaces.IncomeRequest) (*models.Wallet, error) {
	if propertyID != "" {
		if _, err := s.storage.Properties().Get(ctx, propertyID); err != nil {
			return nil, err
		}
	}
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive", models.ErrValidation)
	}
	wallet, err := s.storage.Wallets().Get(ctx, req.WalletID)
	if err != nil {
		return nil, err
	}
	return wallet, nil
}

// AddIncome writes an income entry and its wallet credit in one commit.
func (s *Service) AddIncome(ctx context.Context, propertyID string, req interfaces.IncomeRequest) (*models.Income, error) {
	wallet, err := s.validateEntryRequest(ctx, propertyID, req)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	date := req.Date
	if date.IsZero() {
		date = now
	}
	income := &models.Income{
		ID:            models.NewID("inc"),
		SubcategoryID: req.SubcategoryID,
		WalletID:      wallet.ID,
		Amount:        req.Amount,
		Currency:      wallet.Currency,
		Date:          date,
		Notes:         req.Notes,
		PropertyID:    propertyID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	batch := models.NewWriteBatch().
		Credit(wallet.ID, req.Amount).
		Put(models.TableIncome, income.ID, income)
	if err := s.storage.Commit(ctx, batch); err != nil {
		return nil, err
	}

	s.logger.Info().Str("id", income.ID).Str("property", propertyID).
		Str("amount", req.Amount.String()).Msg("Income added")
	return income, nil
}

// AddExpense writes an expense entry and its wallet debit in one commit.
func (s *Service) AddExpense(ctx context.Context, propertyID string, req interfaces.IncomeRequest) (*models.ActualExpense, error) {
	wallet, err := s.validateEntryRequest(ctx, propertyID, req)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	date := req.Date
	if date.IsZero() {
		date = now
	}
	expense := &models.ActualExpense{
		ID:            models.NewID("exp"),
		SubcategoryID: req.SubcategoryID,
		WalletID:      wallet.ID,
		Amount:        req.Amount,
		Currency:      wallet.Currency,
		Date:          date,
		Notes:         req.Notes,
		PropertyID:    propertyID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	batch := models.NewWriteBatch().
		Debit(wallet.ID, req.Amount).
		Put(models.TableActualExpense, expense.ID, expense)
	if err := s.storage.Commit(ctx, batch); err != nil {
		return nil, err
	}

	s.logger.Info().Str("id", expense.ID).Str("property", propertyID).
		Str("amount", req.Amount.String()).Msg("Expense added")
	return expense, nil
}

// UpdateIncome reverts the original credit and applies the edited one in the
// same commit. Lifecycle-owned entries cannot be edited here.
func (s *Service) UpdateIncome(ctx context.Context, incomeID string, req interfaces.IncomeRequest) (*models.Income, error) {
	old, err := s.storage.Transactions().GetIncome(ctx, incomeID)
	if err != nil {
		return nil, err
	}
	if old.AssetID != "" || old.LiabilityID != "" {
		return nil, fmt.Errorf("%w: income %s is managed by its asset or liability", models.ErrValidation, incomeID)
	}

	next := *old
	if req.SubcategoryID != "" {
		next.SubcategoryID = req.SubcategoryID
	}
	if req.WalletID != "" {
		next.WalletID = req.WalletID
	}
	if !req.Amount.IsZero() {
		if !req.Amount.IsPositive() {
			return nil, fmt.Errorf("%w: amount must be positive", models.ErrValidation)
		}
		next.Amount = req.Amount
	}
	if !req.Date.IsZero() {
		next.Date = req.Date
	}
	if req.Notes != "" {
		next.Notes = req.Notes
	}
	wallet, err := s.storage.Wallets().Get(ctx, next.WalletID)
	if err != nil {
		return nil, err
	}
	next.Currency = wallet.Currency
	next.UpdatedAt = time.Now()

	// Revert the old credit first so the debit guard sees the balance the
	// wallet would have without this entry.
	batch := models.NewWriteBatch().
		Debit(old.WalletID, old.Amount).
		Credit(next.WalletID, next.Amount).
		Put(models.TableIncome, next.ID, &next)
	if err := s.storage.Commit(ctx, batch); err != nil {
		return nil, err
	}

	s.logger.Info().Str("id", incomeID).Msg("Income updated")
	return &next, nil
}

// UpdateExpense reverts the original debit and applies the edited one in the
// same commit.
func (s *Service) UpdateExpense(ctx context.Context, expenseID string, req interfaces.IncomeRequest) (*models.ActualExpense, error) {
	old, err := s.storage.Transactions().GetExpense(ctx, expenseID)
	if err != nil {
		return nil, err
	}
	if old.AssetID != "" || old.LiabilityID != "" {
		return nil, fmt.Errorf("%w: expense %s is managed by its asset or liability", models.ErrValidation, expenseID)
	}

	next := *old
	if req.SubcategoryID != "" {
		next.SubcategoryID = req.SubcategoryID
	}
	if req.WalletID != "" {
		next.WalletID = req.WalletID
	}
	if !req.Amount.IsZero() {
		if !req.Amount.IsPositive() {
			return nil, fmt.Errorf("%w: amount must be positive", models.ErrValidation)
		}
		next.Amount = req.Amount
	}
	if !req.Date.IsZero() {
		next.Date = req.Date
	}
	if req.Notes != "" {
		next.Notes = req.Notes
	}
	wallet, err := s.storage.Wallets().Get(ctx, next.WalletID)
	if err != nil {
		return nil, err
	}
	next.Currency = wallet.Currency
	next.UpdatedAt = time.Now()

	batch := models.NewWriteBatch().
		Credit(old.WalletID, old.Amount).
		Debit(next.WalletID, next.Amount).
		Put(models.TableActualExpense, next.ID, &next)
	if err := s.storage.Commit(ctx, batch); err != nil {
		return nil, err
	}

	s.logger.Info().Str("id", expenseID).Msg("Expense updated")
	return &next, nil
}

// DeleteIncome reverts the wallet credit (guarded) and removes the entry.
func (s *Service) DeleteIncome(ctx context.Context, incomeID string) error {
	old, err := s.storage.Transactions().GetIncome(ctx, incomeID)
	if err != nil {
		return err
	}
	if old.AssetID != "" || old.LiabilityID != "" {
		return fmt.Errorf("%w: income %s is managed by its asset or liability", models.ErrValidation, incomeID)
	}

	batch := models.NewWriteBatch().
		Debit(old.WalletID, old.Amount).
		Delete(models.TableIncome, old.ID)
	if err := s.storage.Commit(ctx, batch); err != nil {
		return err
	}

	s.logger.Info().Str("id", incomeID).Msg("Income deleted")
	return nil
}

// DeleteExpense refunds the wallet and removes the entry.
func (s *Service) DeleteExpense(ctx context.Context, expenseID string) error {
	old, err := s.storage.Transactions().GetExpense(ctx, expenseID)
	if err != nil {
		return err
	}
	if old.AssetID != "" || old.LiabilityID != "" {
		return fmt.Errorf("%w: expense %s is managed by its asset or liability", models.ErrValidation, expenseID)
	}

	batch := models.NewWriteBatch().
		Credit(old.WalletID, old.Amount).
		Delete(models.TableActualExpense, old.ID)
	if err := s.storage.Commit(ctx, batch); err != nil {
		return err
	}

	s.logger.Info().Str("id", expenseID).Msg("Expense deleted")
	return nil
}

func (s *Service) ListIncomes(ctx context.Context, filter interfaces.TransactionFilter) ([]*models.Income, error) {
	return s.storage.Transactions().ListIncomes(ctx, filter)
}

func (s *Service) ListExpenses(ctx context.Context, filter interfaces.TransactionFilter) ([]*models.ActualExpense, error) {
	return s.storage.Transactions().ListExpenses(ctx, filter)
}

// SaveExpectedExpense creates or updates a budget line. Budget lines never
// touch a wallet.
func (s *Service) SaveExpectedExpense(ctx context.Context, expected *models.ExpectedExpense) (*models.ExpectedExpense, error) {
	if expected.Month < 1 || expected.Month > 12 {
		return nil, fmt.Errorf("%w: month must be 1-12, got %d", models.ErrValidation, expected.Month)
	}
	if expected.Year < 2000 || expected.Year > 2200 {
		return nil, fmt.Errorf("%w: year %d out of range", models.ErrValidation, expected.Year)
	}
	if !expected.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive", models.ErrValidation)
	}
	if !models.ValidCurrency(expected.Currency) {
		return nil, fmt.Errorf("%w: invalid currency %q", models.ErrValidation, expected.Currency)
	}
	if expected.PropertyID != "" {
		if _, err := s.storage.Properties().Get(ctx, expected.PropertyID); err != nil {
			return nil, err
		}
	}

	if expected.ID == "" {
		expected.ID = models.NewID("eep")
	} else if _, err := s.storage.Transactions().GetExpected(ctx, expected.ID); err != nil {
		return nil, err
	}

	if err := s.storage.Transactions().SaveExpected(ctx, expected); err != nil {
		return nil, err
	}

	s.logger.Info().Str("id", expected.ID).Int("month", expected.Month).
		Int("year", expected.Year).Msg("Expected expense saved")
	return expected, nil
}

func (s *Service) ListExpectedExpenses(ctx context.Context, month, year int) ([]*models.ExpectedExpense, error) {
	return s.storage.Transactions().ListExpected(ctx, month, year)
}

func (s *Service) DeleteExpectedExpense(ctx context.Context, id string) error {
	if err := s.storage.Transactions().DeleteExpected(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("id", id).Msg("Expected expense deleted")
	return nil
}
