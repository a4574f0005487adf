// Package asset manages loans receivable and their collection lifecycle.
package asset

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Gabaldaar/gestionomiscuentas/internal/common"
	"github.com/Gabaldaar/gestionomiscuentas/internal/interfaces"
	"github.com/Gabaldaar/gestionomiscuentas/internal/models"
)

// Compile-time interface check
var _ interfaces.AssetService = (*Service)(nil)

// Service implements AssetService
type Service struct {
	storage    interfaces.StorageManager
	categories interfaces.CategoryService
	logger     *common.Logger
}

// NewService creates a new asset service
func NewService(storage interfaces.StorageManager, categories interfaces.CategoryService, logger *common.Logger) *Service {
	return &Service{
		storage:    storage,
		categories: categories,
		logger:     logger,
	}
}

// CreateAsset records a loan granted: the source wallet is debited the full
// amount, the paired expense entry is written and the asset starts with
// outstanding == total, all in one commit.
func (s *Service) CreateAsset(ctx context.Context, req interfaces.AssetRequest) (*models.Asset, error) {
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return nil, fmt.Errorf("%w: name is required", models.ErrValidation)
	}
	if !req.TotalAmount.IsPositive() {
		return nil, fmt.Errorf("%w: total amount must be positive", models.ErrValidation)
	}
	wallet, err := s.storage.Wallets().Get(ctx, req.SourceWalletID)
	if err != nil {
		return nil, err
	}
	currency := req.Currency
	if currency == "" {
		currency = wallet.Currency
	}
	if currency != wallet.Currency {
		return nil, fmt.Errorf("%w: currency %s does not match wallet currency %s", models.ErrValidation, currency, wallet.Currency)
	}

	subcategoryID, err := s.categories.ResolveRole(ctx, models.CategoryExpense, models.RoleLoanGranted)
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
		SubcategoryID: subcategoryID,
		WalletID:      wallet.ID,
		Amount:        req.TotalAmount,
		Currency:      currency,
		Date:          date,
		Notes:         fmt.Sprintf("Préstamo otorgado: %s", req.Name),
		PropertyID:    req.PropertyID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	asset := &models.Asset{
		ID:                 models.NewID("ast"),
		Name:               req.Name,
		TotalAmount:        req.TotalAmount,
		OutstandingBalance: req.TotalAmount,
		Currency:           currency,
		CreationDate:       date,
		Notes:              req.Notes,
		SourceWalletID:     wallet.ID,
		PropertyID:         req.PropertyID,
		CreationExpenseID:  expense.ID,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	expense.AssetID = asset.ID

	batch := models.NewWriteBatch().
		Debit(wallet.ID, req.TotalAmount).
		Put(models.TableActualExpense, expense.ID, expense).
		Put(models.TableAsset, asset.ID, asset)
	if err := s.storage.Commit(ctx, batch); err != nil {
		return nil, err
	}

	s.logger.Info().Str("id", asset.ID).Str("name", asset.Name).
		Str("total", asset.TotalAmount.String()).
		Str("wallet", wallet.ID).
		Msg("Asset created")
	return asset, nil
}

func (s *Service) GetAsset(ctx context.Context, id string) (*models.Asset, error) {
	return s.storage.Assets().Get(ctx, id)
}

func (s *Service) ListAssets(ctx context.Context) ([]*models.Asset, error) {
	return s.storage.Assets().List(ctx)
}

// RecordCollection credits the receiving wallet, reduces the outstanding
// balance and writes the paired income entry. An amount exceeding the
// outstanding balance is rejected by the range guard, never clamped.
func (s *Service) RecordCollection(ctx context.Context, assetID string, req interfaces.CollectionRequest) (*models.AssetCollection, error) {
	asset, err := s.storage.Assets().Get(ctx, assetID)
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
	if wallet.Currency != asset.Currency {
		return nil, fmt.Errorf("%w: wallet currency %s does not match asset currency %s", models.ErrValidation, wallet.Currency, asset.Currency)
	}

	subcategoryID, err := s.categories.ResolveRole(ctx, models.CategoryIncome, models.RoleLoanCollection)
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
		propertyID = asset.PropertyID
	}
	income := &models.Income{
		ID:            models.NewID("inc"),
		SubcategoryID: subcategoryID,
		WalletID:      wallet.ID,
		Amount:        req.Amount,
		Currency:      asset.Currency,
		Date:          date,
		Notes:         fmt.Sprintf("Cobranza de préstamo: %s", asset.Name),
		PropertyID:    propertyID,
		AssetID:       asset.ID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	collection := &models.AssetCollection{
		ID:         models.NewID("col"),
		AssetID:    asset.ID,
		Date:       date,
		Amount:     req.Amount,
		WalletID:   wallet.ID,
		Currency:   asset.Currency,
		Notes:      req.Notes,
		IncomeID:   income.ID,
		PropertyID: propertyID,
		CreatedAt:  now,
	}

	batch := models.NewWriteBatch().
		Credit(wallet.ID, req.Amount).
		AdjustOutstanding(models.TableAsset, asset.ID, req.Amount.Neg()).
		Put(models.TableIncome, income.ID, income).
		Put(models.TableAssetCollection, collection.ID, collection)
	if err := s.storage.Commit(ctx, batch); err != nil {
		return nil, err
	}

	s.logger.Info().Str("id", collection.ID).Str("asset", asset.ID).
		Str("amount", req.Amount.String()).
		Msg("Collection recorded")
	return collection, nil
}

// DeleteCollection reverses a recorded collection: the wallet gives the
// amount back (guarded) and the outstanding balance is restored.
func (s *Service) DeleteCollection(ctx context.Context, collectionID string) error {
	collection, err := s.storage.Assets().GetCollection(ctx, collectionID)
	if err != nil {
		return err
	}

	batch := models.NewWriteBatch().
		Debit(collection.WalletID, collection.Amount).
		AdjustOutstanding(models.TableAsset, collection.AssetID, collection.Amount).
		Delete(models.TableIncome, collection.IncomeID).
		Delete(models.TableAssetCollection, collection.ID)
	if err := s.storage.Commit(ctx, batch); err != nil {
		return err
	}

	s.logger.Info().Str("id", collectionID).Str("asset", collection.AssetID).Msg("Collection deleted")
	return nil
}

// DeleteAsset removes an asset with no collections, crediting the granted
// amount back to the source wallet and deleting the creation expense.
func (s *Service) DeleteAsset(ctx context.Context, id string) error {
	asset, err := s.storage.Assets().Get(ctx, id)
	if err != nil {
		return err
	}
	if len(asset.Collections) > 0 {
		return fmt.Errorf("%w: asset %s has %d collections; delete them first", models.ErrHasDependents, id, len(asset.Collections))
	}

	batch := models.NewWriteBatch().
		Credit(asset.SourceWalletID, asset.TotalAmount).
		Delete(models.TableAsset, asset.ID)
	if asset.CreationExpenseID != "" {
		batch.Delete(models.TableActualExpense, asset.CreationExpenseID)
	}
	if err := s.storage.Commit(ctx, batch); err != nil {
		return err
	}

	s.logger.Info().Str("id", id).Str("refunded", asset.TotalAmount.String()).Msg("Asset deleted")
	return nil
}

// CollectedAmount sums the recorded collections; total - collected always
// equals the outstanding balance.
func CollectedAmount(a *models.Asset) decimal.Decimal {
	sum := decimal.Zero
	for _, c := range a.Collections {
		sum = sum.Add(c.Amount)
	}
	return sum
}
