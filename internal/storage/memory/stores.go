package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/Gabaldaar/gestionomiscuentas/internal/interfaces"
	"github.com/Gabaldaar/gestionomiscuentas/internal/models"
)

// --- Wallet store ---

type walletStore struct{ m *Manager }

func (s *walletStore) Get(_ context.Context, id string) (*models.Wallet, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	w, ok := s.m.wallets[id]
	if !ok {
		return nil, fmt.Errorf("%w: wallet %s", models.ErrNotFound, id)
	}
	return cloneWallet(w), nil
}

func (s *walletStore) List(_ context.Context) ([]*models.Wallet, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	wallets := make([]*models.Wallet, 0, len(s.m.wallets))
	for _, w := range s.m.wallets {
		wallets = append(wallets, cloneWallet(w))
	}
	sort.Slice(wallets, func(i, j int) bool { return wallets[i].Name < wallets[j].Name })
	return wallets, nil
}

func (s *walletStore) Save(_ context.Context, wallet *models.Wallet) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	now := time.Now()
	if wallet.CreatedAt.IsZero() {
		wallet.CreatedAt = now
	}
	wallet.UpdatedAt = now
	s.m.wallets[wallet.ID] = cloneWallet(wallet)
	return nil
}

func (s *walletStore) Delete(_ context.Context, id string) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if _, ok := s.m.wallets[id]; !ok {
		return fmt.Errorf("%w: wallet %s", models.ErrNotFound, id)
	}
	delete(s.m.wallets, id)
	return nil
}

// --- Property store ---

type propertyStore struct{ m *Manager }

func (s *propertyStore) Get(_ context.Context, id string) (*models.Property, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	p, ok := s.m.properties[id]
	if !ok {
		return nil, fmt.Errorf("%w: property %s", models.ErrNotFound, id)
	}
	return cloneProperty(p), nil
}

func (s *propertyStore) List(_ context.Context) ([]*models.Property, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	props := make([]*models.Property, 0, len(s.m.properties))
	for _, p := range s.m.properties {
		props = append(props, cloneProperty(p))
	}
	sort.Slice(props, func(i, j int) bool {
		if props[i].Order != props[j].Order {
			return props[i].Order < props[j].Order
		}
		return props[i].Name < props[j].Name
	})
	return props, nil
}

func (s *propertyStore) Save(_ context.Context, property *models.Property) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	now := time.Now()
	if property.CreatedAt.IsZero() {
		property.CreatedAt = now
	}
	property.UpdatedAt = now
	s.m.properties[property.ID] = cloneProperty(property)
	return nil
}

func (s *propertyStore) Delete(_ context.Context, id string) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if _, ok := s.m.properties[id]; !ok {
		return fmt.Errorf("%w: property %s", models.ErrNotFound, id)
	}
	delete(s.m.properties, id)
	return nil
}

// --- Category store ---

type categoryStore struct{ m *Manager }

func (s *categoryStore) Get(_ context.Context, id string) (*models.Category, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	c, ok := s.m.categories[id]
	if !ok {
		return nil, fmt.Errorf("%w: category %s", models.ErrNotFound, id)
	}
	return cloneCategory(c), nil
}

func (s *categoryStore) List(_ context.Context, kind models.CategoryKind) ([]*models.Category, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	var cats []*models.Category
	for _, c := range s.m.categories {
		if c.Kind == kind {
			cats = append(cats, cloneCategory(c))
		}
	}
	sort.Slice(cats, func(i, j int) bool { return cats[i].Name < cats[j].Name })
	return cats, nil
}

func (s *categoryStore) Save(_ context.Context, category *models.Category) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	now := time.Now()
	if category.CreatedAt.IsZero() {
		category.CreatedAt = now
	}
	category.UpdatedAt = now
	s.m.categories[category.ID] = cloneCategory(category)
	return nil
}

func (s *categoryStore) Delete(_ context.Context, id string) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if _, ok := s.m.categories[id]; !ok {
		return fmt.Errorf("%w: category %s", models.ErrNotFound, id)
	}
	delete(s.m.categories, id)
	return nil
}

// --- Transaction store ---

type transactionStore struct{ m *Manager }

func matchesFilter(walletID, propertyID string, date time.Time, filter interfaces.TransactionFilter) bool {
	if filter.PropertyID != "" && propertyID != filter.PropertyID {
		return false
	}
	if filter.WalletID != "" && walletID != filter.WalletID {
		return false
	}
	if !filter.From.IsZero() && date.Before(filter.From) {
		return false
	}
	if !filter.To.IsZero() && !date.Before(filter.To) {
		return false
	}
	return true
}

func (s *transactionStore) GetIncome(_ context.Context, id string) (*models.Income, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	in, ok := s.m.incomes[id]
	if !ok {
		return nil, fmt.Errorf("%w: income %s", models.ErrNotFound, id)
	}
	return cloneIncome(in), nil
}

func (s *transactionStore) GetExpense(_ context.Context, id string) (*models.ActualExpense, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	ex, ok := s.m.expenses[id]
	if !ok {
		return nil, fmt.Errorf("%w: expense %s", models.ErrNotFound, id)
	}
	return cloneExpense(ex), nil
}

func (s *transactionStore) ListIncomes(_ context.Context, filter interfaces.TransactionFilter) ([]*models.Income, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	var incomes []*models.Income
	for _, in := range s.m.incomes {
		if matchesFilter(in.WalletID, in.PropertyID, in.Date, filter) {
			incomes = append(incomes, cloneIncome(in))
		}
	}
	sort.Slice(incomes, func(i, j int) bool { return incomes[i].Date.After(incomes[j].Date) })
	return incomes, nil
}

func (s *transactionStore) ListExpenses(_ context.Context, filter interfaces.TransactionFilter) ([]*models.ActualExpense, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	var expenses []*models.ActualExpense
	for _, ex := range s.m.expenses {
		if matchesFilter(ex.WalletID, ex.PropertyID, ex.Date, filter) {
			expenses = append(expenses, cloneExpense(ex))
		}
	}
	sort.Slice(expenses, func(i, j int) bool { return expenses[i].Date.After(expenses[j].Date) })
	return expenses, nil
}

func (s *transactionStore) GetExpected(_ context.Context, id string) (*models.ExpectedExpense, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	ee, ok := s.m.expected[id]
	if !ok {
		return nil, fmt.Errorf("%w: expected expense %s", models.ErrNotFound, id)
	}
	return cloneExpected(ee), nil
}

func (s *transactionStore) ListExpected(_ context.Context, month, year int) ([]*models.ExpectedExpense, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	var out []*models.ExpectedExpense
	for _, ee := range s.m.expected {
		if month > 0 && ee.Month != month {
			continue
		}
		if year > 0 && ee.Year != year {
			continue
		}
		out = append(out, cloneExpected(ee))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year > out[j].Year
		}
		return out[i].Month > out[j].Month
	})
	return out, nil
}

func (s *transactionStore) SaveExpected(_ context.Context, expected *models.ExpectedExpense) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	now := time.Now()
	if expected.CreatedAt.IsZero() {
		expected.CreatedAt = now
	}
	expected.UpdatedAt = now
	s.m.expected[expected.ID] = cloneExpected(expected)
	return nil
}

func (s *transactionStore) DeleteExpected(_ context.Context, id string) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if _, ok := s.m.expected[id]; !ok {
		return fmt.Errorf("%w: expected expense %s", models.ErrNotFound, id)
	}
	delete(s.m.expected, id)
	return nil
}

// --- Transfer store ---

type transferStore struct{ m *Manager }

func (s *transferStore) Get(_ context.Context, id string) (*models.Transfer, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	t, ok := s.m.transfers[id]
	if !ok {
		return nil, fmt.Errorf("%w: transfer %s", models.ErrNotFound, id)
	}
	return cloneTransfer(t), nil
}

func (s *transferStore) List(_ context.Context) ([]*models.Transfer, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	transfers := make([]*models.Transfer, 0, len(s.m.transfers))
	for _, t := range s.m.transfers {
		transfers = append(transfers, cloneTransfer(t))
	}
	sort.Slice(transfers, func(i, j int) bool { return transfers[i].Date.After(transfers[j].Date) })
	return transfers, nil
}

func (s *transferStore) ListByWallet(_ context.Context, walletID string) ([]*models.Transfer, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	var transfers []*models.Transfer
	for _, t := range s.m.transfers {
		if t.FromWalletID == walletID || t.ToWalletID == walletID {
			transfers = append(transfers, cloneTransfer(t))
		}
	}
	sort.Slice(transfers, func(i, j int) bool { return transfers[i].Date.After(transfers[j].Date) })
	return transfers, nil
}

// --- Asset store ---

type assetStore struct{ m *Manager }

func (s *assetStore) Get(_ context.Context, id string) (*models.Asset, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	a, ok := s.m.assets[id]
	if !ok {
		return nil, fmt.Errorf("%w: asset %s", models.ErrNotFound, id)
	}
	out := cloneAsset(a)
	out.Collections = s.collectionsOf(id)
	return out, nil
}

func (s *assetStore) collectionsOf(assetID string) []models.AssetCollection {
	var cols []models.AssetCollection
	for _, c := range s.m.collections {
		if c.AssetID == assetID {
			cols = append(cols, *c)
		}
	}
	sort.Slice(cols, func(i, j int) bool { return cols[i].Date.Before(cols[j].Date) })
	return cols
}

func (s *assetStore) List(_ context.Context) ([]*models.Asset, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	assets := make([]*models.Asset, 0, len(s.m.assets))
	for _, a := range s.m.assets {
		assets = append(assets, cloneAsset(a))
	}
	sort.Slice(assets, func(i, j int) bool { return assets[i].CreationDate.After(assets[j].CreationDate) })
	return assets, nil
}

func (s *assetStore) GetCollection(_ context.Context, id string) (*models.AssetCollection, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	c, ok := s.m.collections[id]
	if !ok {
		return nil, fmt.Errorf("%w: collection %s", models.ErrNotFound, id)
	}
	return cloneCollection(c), nil
}

func (s *assetStore) ListCollections(_ context.Context, assetID string) ([]*models.AssetCollection, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	var cols []*models.AssetCollection
	for _, c := range s.m.collections {
		if c.AssetID == assetID {
			cols = append(cols, cloneCollection(c))
		}
	}
	sort.Slice(cols, func(i, j int) bool { return cols[i].Date.Before(cols[j].Date) })
	return cols, nil
}

func (s *assetStore) AnyCollectionForWallet(_ context.Context, walletID string) (bool, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	for _, c := range s.m.collections {
		if c.WalletID == walletID {
			return true, nil
		}
	}
	return false, nil
}

// --- Liability store ---

type liabilityStore struct{ m *Manager }

func (s *liabilityStore) Get(_ context.Context, id string) (*models.Liability, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	l, ok := s.m.liabilities[id]
	if !ok {
		return nil, fmt.Errorf("%w: liability %s", models.ErrNotFound, id)
	}
	out := cloneLiability(l)
	out.Payments = s.paymentsOf(id)
	return out, nil
}

func (s *liabilityStore) paymentsOf(liabilityID string) []models.LiabilityPayment {
	var pays []models.LiabilityPayment
	for _, p := range s.m.payments {
		if p.LiabilityID == liabilityID {
			pays = append(pays, *p)
		}
	}
	sort.Slice(pays, func(i, j int) bool { return pays[i].Date.Before(pays[j].Date) })
	return pays
}

func (s *liabilityStore) List(_ context.Context) ([]*models.Liability, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	liabilities := make([]*models.Liability, 0, len(s.m.liabilities))
	for _, l := range s.m.liabilities {
		liabilities = append(liabilities, cloneLiability(l))
	}
	sort.Slice(liabilities, func(i, j int) bool {
		return liabilities[i].CreationDate.After(liabilities[j].CreationDate)
	})
	return liabilities, nil
}

func (s *liabilityStore) GetPayment(_ context.Context, id string) (*models.LiabilityPayment, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	p, ok := s.m.payments[id]
	if !ok {
		return nil, fmt.Errorf("%w: payment %s", models.ErrNotFound, id)
	}
	return clonePayment(p), nil
}

func (s *liabilityStore) ListPayments(_ context.Context, liabilityID string) ([]*models.LiabilityPayment, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	var pays []*models.LiabilityPayment
	for _, p := range s.m.payments {
		if p.LiabilityID == liabilityID {
			pays = append(pays, clonePayment(p))
		}
	}
	sort.Slice(pays, func(i, j int) bool { return pays[i].Date.Before(pays[j].Date) })
	return pays, nil
}

func (s *liabilityStore) AnyPaymentForWallet(_ context.Context, walletID string) (bool, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	for _, p := range s.m.payments {
		if p.WalletID == walletID {
			return true, nil
		}
	}
	return false, nil
}
