// Package wallet manages wallets and the ledger conservation check.
package wallet

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Gabaldaar/gestionomiscuentas/internal/common"
	"github.com/Gabaldaar/gestionomiscuentas/internal/interfaces"
	"github.com/Gabaldaar/gestionomiscuentas/internal/models"
)

// Compile-time interface check
var _ interfaces.WalletService = (*Service)(nil)

// Service implements WalletService
type Service struct {
	storage interfaces.StorageManager
	logger  *common.Logger
}

// NewService creates a new wallet service
func NewService(storage interfaces.StorageManager, logger *common.Logger) *Service {
	return &Service{
		storage: storage,
		logger:  logger,
	}
}

func validateWallet(w *models.Wallet) error {
	if strings.TrimSpace(w.Name) == "" {
		return fmt.Errorf("%w: name is required", models.ErrValidation)
	}
	if len(w.Name) > 100 {
		return fmt.Errorf("%w: name exceeds 100 characters", models.ErrValidation)
	}
	if !models.ValidCurrency(w.Currency) {
		return fmt.Errorf("%w: invalid currency %q", models.ErrValidation, w.Currency)
	}
	if w.Balance.IsNegative() && !w.AllowNegative {
		return fmt.Errorf("%w: initial balance must not be negative", models.ErrValidation)
	}
	return nil
}

// CreateWallet creates a wallet with an initial balance.
func (s *Service) CreateWallet(ctx context.Context, wallet *models.Wallet) (*models.Wallet, error) {
	wallet.Name = strings.TrimSpace(wallet.Name)
	if err := validateWallet(wallet); err != nil {
		return nil, err
	}

	wallet.ID = models.NewID("wal")
	wallet.InitialBalance = wallet.Balance

	if err := s.storage.Wallets().Save(ctx, wallet); err != nil {
		return nil, err
	}

	s.logger.Info().Str("id", wallet.ID).Str("name", wallet.Name).
		Str("currency", string(wallet.Currency)).
		Str("balance", wallet.Balance.String()).
		Msg("Wallet created")
	return wallet, nil
}

func (s *Service) GetWallet(ctx context.Context, id string) (*models.Wallet, error) {
	return s.storage.Wallets().Get(ctx, id)
}

func (s *Service) ListWallets(ctx context.Context) ([]*models.Wallet, error) {
	return s.storage.Wallets().List(ctx)
}

// UpdateWallet updates wallet metadata (merge semantics). The balance is
// never client-writable; it only moves through committed batches.
func (s *Service) UpdateWallet(ctx context.Context, id string, update models.WalletUpdate) (*models.Wallet, error) {
	wallet, err := s.storage.Wallets().Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if update.Name != "" {
		name := strings.TrimSpace(update.Name)
		if len(name) > 100 {
			return nil, fmt.Errorf("%w: name exceeds 100 characters", models.ErrValidation)
		}
		wallet.Name = name
	}
	if update.Icon != "" {
		wallet.Icon = update.Icon
	}
	if update.AllowNegative != nil {
		wallet.AllowNegative = *update.AllowNegative
	}

	if err := s.storage.Wallets().Save(ctx, wallet); err != nil {
		return nil, err
	}

	s.logger.Info().Str("id", id).Msg("Wallet updated")
	return wallet, nil
}

// DeleteWallet removes a wallet that no ledger entry references.
func (s *Service) DeleteWallet(ctx context.Context, id string) error {
	if _, err := s.storage.Wallets().Get(ctx, id); err != nil {
		return err
	}

	referenced, err := s.walletReferenced(ctx, id)
	if err != nil {
		return err
	}
	if referenced {
		return fmt.Errorf("%w: wallet %s has ledger entries; delete them first", models.ErrHasDependents, id)
	}

	if err := s.storage.Wallets().Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Str("id", id).Msg("Wallet deleted")
	return nil
}

// walletReferenced reports whether any document references the wallet.
func (s *Service) walletReferenced(ctx context.Context, id string) (bool, error) {
	incomes, err := s.storage.Transactions().ListIncomes(ctx, interfaces.TransactionFilter{WalletID: id})
	if err != nil {
		return false, err
	}
	if len(incomes) > 0 {
		return true, nil
	}

	expenses, err := s.storage.Transactions().ListExpenses(ctx, interfaces.TransactionFilter{WalletID: id})
	if err != nil {
		return false, err
	}
	if len(expenses) > 0 {
		return true, nil
	}

	transfers, err := s.storage.Transfers().ListByWallet(ctx, id)
	if err != nil {
		return false, err
	}
	if len(transfers) > 0 {
		return true, nil
	}

	hasCollection, err := s.storage.Assets().AnyCollectionForWallet(ctx, id)
	if err != nil {
		return false, err
	}
	if hasCollection {
		return true, nil
	}

	hasPayment, err := s.storage.Liabilities().AnyPaymentForWallet(ctx, id)
	if err != nil {
		return false, err
	}
	return hasPayment, nil
}

// VerifyBalance re-aggregates the wallet's ledger history against the stored
// balance: initial + incomes - expenses - transfers out + transfers in.
func (s *Service) VerifyBalance(ctx context.Context, id string) (*models.BalanceReport, error) {
	wallet, err := s.storage.Wallets().Get(ctx, id)
	if err != nil {
		return nil, err
	}

	ledger := wallet.InitialBalance
	count := 0

	incomes, err := s.storage.Transactions().ListIncomes(ctx, interfaces.TransactionFilter{WalletID: id})
	if err != nil {
		return nil, err
	}
	for _, in := range incomes {
		ledger = ledger.Add(in.Amount)
		count++
	}

	expenses, err := s.storage.Transactions().ListExpenses(ctx, interfaces.TransactionFilter{WalletID: id})
	if err != nil {
		return nil, err
	}
	for _, ex := range expenses {
		ledger = ledger.Sub(ex.Amount)
		count++
	}

	transfers, err := s.storage.Transfers().ListByWallet(ctx, id)
	if err != nil {
		return nil, err
	}
	for _, t := range transfers {
		if t.FromWalletID == id {
			ledger = ledger.Sub(t.AmountSent)
			count++
		}
		if t.ToWalletID == id {
			ledger = ledger.Add(t.AmountReceived)
			count++
		}
	}

	drift := wallet.Balance.Sub(ledger)
	report := &models.BalanceReport{
		WalletID:      id,
		StoredBalance: wallet.Balance,
		LedgerBalance: ledger,
		Drift:         drift,
		EntryCount:    count,
		Consistent:    drift.Equal(decimal.Zero),
	}

	if !report.Consistent {
		s.logger.Warn().Str("id", id).
			Str("stored", wallet.Balance.String()).
			Str("ledger", ledger.String()).
			Str("drift", drift.String()).
			Msg("Wallet balance drift detected")
	}
	return report, nil
}
