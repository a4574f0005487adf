// Package transfer moves funds between wallets in single atomic commits.
package transfer

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Gabaldaar/gestionomiscuentas/internal/common"
	"github.com/Gabaldaar/gestionomiscuentas/internal/interfaces"
	"github.com/Gabaldaar/gestionomiscuentas/internal/models"
)

// Compile-time interface check
var _ interfaces.TransferService = (*Service)(nil)

// Service implements TransferService
type Service struct {
	storage interfaces.StorageManager
	logger  *common.Logger
}

// NewService creates a new transfer service
func NewService(storage interfaces.StorageManager, logger *common.Logger) *Service {
	return &Service{
		storage: storage,
		logger:  logger,
	}
}

// CreateTransfer debits the source, credits the destination and writes the
// transfer record, all in one commit.
func (s *Service) CreateTransfer(ctx context.Context, req interfaces.TransferRequest) (*models.Transfer, error) {
	from, to, err := s.resolveWallets(ctx, req.FromWalletID, req.ToWalletID)
	if err != nil {
		return nil, err
	}
	if err := validateAmounts(from, to, req.AmountSent, req.AmountReceived, req.ExchangeRate); err != nil {
		return nil, err
	}
	rate := req.ExchangeRate
	if from.Currency == to.Currency {
		// A rate is meaningless between equal currencies; never record one.
		rate = decimal.Decimal{}
	}

	now := time.Now()
	date := req.Date
	if date.IsZero() {
		date = now
	}
	transfer := &models.Transfer{
		ID:             models.NewID("trf"),
		FromWalletID:   from.ID,
		ToWalletID:     to.ID,
		AmountSent:     req.AmountSent,
		AmountReceived: req.AmountReceived,
		FromCurrency:   from.Currency,
		ToCurrency:     to.Currency,
		ExchangeRate:   rate,
		Date:           date,
		Notes:          req.Notes,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	batch := models.NewWriteBatch().
		Debit(transfer.FromWalletID, transfer.AmountSent).
		Credit(transfer.ToWalletID, transfer.AmountReceived).
		Put(models.TableTransfer, transfer.ID, transfer)
	if err := s.storage.Commit(ctx, batch); err != nil {
		return nil, err
	}

	s.logger.Info().Str("id", transfer.ID).
		Str("from", transfer.FromWalletID).Str("to", transfer.ToWalletID).
		Str("sent", transfer.AmountSent.String()).
		Str("received", transfer.AmountReceived.String()).
		Msg("Transfer created")
	return transfer, nil
}

func (s *Service) GetTransfer(ctx context.Context, id string) (*models.Transfer, error) {
	return s.storage.Transfers().Get(ctx, id)
}

func (s *Service) ListTransfers(ctx context.Context) ([]*models.Transfer, error) {
	return s.storage.Transfers().List(ctx)
}

// EditTransfer reverts the original wallet deltas and applies the edited ones
// in the same commit, so the guards see the reverted balances.
func (s *Service) EditTransfer(ctx context.Context, id string, update models.TransferUpdate) (*models.Transfer, error) {
	old, err := s.storage.Transfers().Get(ctx, id)
	if err != nil {
		return nil, err
	}

	next := *old
	if update.FromWalletID != "" {
		next.FromWalletID = update.FromWalletID
	}
	if update.ToWalletID != "" {
		next.ToWalletID = update.ToWalletID
	}
	if !update.AmountSent.IsZero() {
		next.AmountSent = update.AmountSent
	}
	if !update.AmountReceived.IsZero() {
		next.AmountReceived = update.AmountReceived
	}
	if !update.ExchangeRate.IsZero() {
		next.ExchangeRate = update.ExchangeRate
	}
	if !update.Date.IsZero() {
		next.Date = update.Date
	}
	if update.Notes != nil {
		next.Notes = *update.Notes
	}

	from, to, err := s.resolveWallets(ctx, next.FromWalletID, next.ToWalletID)
	if err != nil {
		return nil, err
	}
	next.FromCurrency = from.Currency
	next.ToCurrency = to.Currency

	// A rate recorded for the original wallets and amounts does not carry
	// over: moving the money requires the caller to restate it, and a
	// same-currency result drops it entirely.
	moved := next.FromWalletID != old.FromWalletID || next.ToWalletID != old.ToWalletID ||
		!next.AmountSent.Equal(old.AmountSent) || !next.AmountReceived.Equal(old.AmountReceived)
	if from.Currency == to.Currency {
		next.ExchangeRate = decimal.Decimal{}
	} else if moved && update.ExchangeRate.IsZero() {
		return nil, fmt.Errorf("%w: exchange rate must be restated when wallets or amounts change", models.ErrValidation)
	}
	if err := validateAmounts(from, to, next.AmountSent, next.AmountReceived, next.ExchangeRate); err != nil {
		return nil, err
	}
	next.UpdatedAt = time.Now()

	batch := models.NewWriteBatch()
	revertDeltas(batch, old)
	batch.Debit(next.FromWalletID, next.AmountSent).
		Credit(next.ToWalletID, next.AmountReceived).
		Put(models.TableTransfer, next.ID, &next)
	if err := s.storage.Commit(ctx, batch); err != nil {
		return nil, err
	}

	s.logger.Info().Str("id", id).Msg("Transfer edited")
	return &next, nil
}

// DeleteTransfer reverts the transfer's wallet deltas and removes the record.
func (s *Service) DeleteTransfer(ctx context.Context, id string) error {
	old, err := s.storage.Transfers().Get(ctx, id)
	if err != nil {
		return err
	}

	batch := models.NewWriteBatch()
	revertDeltas(batch, old)
	batch.Delete(models.TableTransfer, id)
	if err := s.storage.Commit(ctx, batch); err != nil {
		return err
	}

	s.logger.Info().Str("id", id).Msg("Transfer deleted")
	return nil
}

// revertDeltas appends the inverse of the transfer's original wallet effects:
// the source gets its debit back, the destination is debited what it received.
// The destination debit is guarded like any other, so deleting a transfer
// whose credited funds were already spent fails with ErrInsufficientFunds.
func revertDeltas(batch *models.WriteBatch, t *models.Transfer) {
	batch.Credit(t.FromWalletID, t.AmountSent)
	batch.Debit(t.ToWalletID, t.AmountReceived)
}

func (s *Service) resolveWallets(ctx context.Context, fromID, toID string) (*models.Wallet, *models.Wallet, error) {
	if fromID == "" || toID == "" {
		return nil, nil, fmt.Errorf("%w: both wallet ids are required", models.ErrValidation)
	}
	if fromID == toID {
		return nil, nil, fmt.Errorf("%w: source and destination wallets must differ", models.ErrValidation)
	}
	from, err := s.storage.Wallets().Get(ctx, fromID)
	if err != nil {
		return nil, nil, err
	}
	to, err := s.storage.Wallets().Get(ctx, toID)
	if err != nil {
		return nil, nil, err
	}
	return from, to, nil
}

// validateAmounts checks the pair of amounts against the wallet currencies.
// Both amounts are always explicit; neither is ever derived from the other.
// Between different currencies the rate used is a required part of the
// record even though it never drives the arithmetic.
func validateAmounts(from, to *models.Wallet, sent, received, rate decimal.Decimal) error {
	if !sent.IsPositive() {
		return fmt.Errorf("%w: amount sent must be positive", models.ErrValidation)
	}
	if !received.IsPositive() {
		return fmt.Errorf("%w: amount received must be positive", models.ErrValidation)
	}
	if from.Currency == to.Currency {
		if !sent.Equal(received) {
			return fmt.Errorf("%w: same-currency transfer amounts must match", models.ErrValidation)
		}
		return nil
	}
	if !rate.IsPositive() {
		return fmt.Errorf("%w: exchange rate is required when currencies differ", models.ErrValidation)
	}
	return nil
}
