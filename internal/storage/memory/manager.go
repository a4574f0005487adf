// Package memory provides an in-memory StorageManager. It backs unit tests
// and ephemeral deployments, and applies the same commit guards as the
// SurrealDB backend: wallet deltas in order with the negative-balance check,
// outstanding deltas with the [0, total] range check, all-or-nothing.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Gabaldaar/gestionomiscuentas/internal/interfaces"
	"github.com/Gabaldaar/gestionomiscuentas/internal/models"
)

// Compile-time interface check
var _ interfaces.StorageManager = (*Manager)(nil)

// Manager holds all documents in maps keyed by id, guarded by one lock so a
// Commit is atomic with respect to every read.
type Manager struct {
	mu sync.RWMutex

	wallets     map[string]*models.Wallet
	properties  map[string]*models.Property
	categories  map[string]*models.Category
	incomes     map[string]*models.Income
	expenses    map[string]*models.ActualExpense
	expected    map[string]*models.ExpectedExpense
	transfers   map[string]*models.Transfer
	assets      map[string]*models.Asset
	collections map[string]*models.AssetCollection
	liabilities map[string]*models.Liability
	payments    map[string]*models.LiabilityPayment
}

// NewManager creates an empty in-memory storage manager.
func NewManager() *Manager {
	return &Manager{
		wallets:     make(map[string]*models.Wallet),
		properties:  make(map[string]*models.Property),
		categories:  make(map[string]*models.Category),
		incomes:     make(map[string]*models.Income),
		expenses:    make(map[string]*models.ActualExpense),
		expected:    make(map[string]*models.ExpectedExpense),
		transfers:   make(map[string]*models.Transfer),
		assets:      make(map[string]*models.Asset),
		collections: make(map[string]*models.AssetCollection),
		liabilities: make(map[string]*models.Liability),
		payments:    make(map[string]*models.LiabilityPayment),
	}
}

func (m *Manager) Wallets() interfaces.WalletStore           { return &walletStore{m: m} }
func (m *Manager) Properties() interfaces.PropertyStore      { return &propertyStore{m: m} }
func (m *Manager) Categories() interfaces.CategoryStore      { return &categoryStore{m: m} }
func (m *Manager) Transactions() interfaces.TransactionStore { return &transactionStore{m: m} }
func (m *Manager) Transfers() interfaces.TransferStore       { return &transferStore{m: m} }
func (m *Manager) Assets() interfaces.AssetStore             { return &assetStore{m: m} }
func (m *Manager) Liabilities() interfaces.LiabilityStore    { return &liabilityStore{m: m} }

func (m *Manager) Close() error { return nil }

// Commit applies the batch under the write lock. Guards are evaluated against
// staged values first; nothing is written unless every guard passes.
func (m *Manager) Commit(_ context.Context, batch *models.WriteBatch) error {
	if batch == nil || batch.Empty() {
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	// Stage wallet balances in delta order.
	balances := make(map[string]decimal.Decimal)
	for _, d := range batch.Deltas {
		w, ok := m.wallets[d.WalletID]
		if !ok {
			return fmt.Errorf("%w: wallet %s", models.ErrNotFound, d.WalletID)
		}
		bal, staged := balances[d.WalletID]
		if !staged {
			bal = w.Balance
		}
		bal = bal.Add(d.Amount)
		if bal.IsNegative() && !w.AllowNegative {
			return fmt.Errorf("%w: wallet %s balance would become %s", models.ErrInsufficientFunds, d.WalletID, bal.String())
		}
		balances[d.WalletID] = bal
	}

	// Stage outstanding balances.
	outstanding := make(map[string]decimal.Decimal)
	for _, o := range batch.Outstanding {
		cur, total, err := m.outstandingOf(o.Table, o.ID, outstanding)
		if err != nil {
			return err
		}
		next := cur.Add(o.Amount)
		if next.IsNegative() || next.GreaterThan(total) {
			return fmt.Errorf("%w: %s %s outstanding would become %s of %s", models.ErrOverCollection, o.Table, o.ID, next.String(), total.String())
		}
		outstanding[o.Table+"/"+o.ID] = next
	}

	// Reject unknown document types before anything is written, so a bad
	// put cannot land after the staged balances were already applied.
	for _, p := range batch.Puts {
		if err := checkDocType(p); err != nil {
			return err
		}
	}

	// All guards passed; apply.
	now := time.Now()
	for id, bal := range balances {
		m.wallets[id].Balance = bal
		m.wallets[id].UpdatedAt = now
	}
	for key, next := range outstanding {
		for _, o := range batch.Outstanding {
			if o.Table+"/"+o.ID != key {
				continue
			}
			switch o.Table {
			case models.TableAsset:
				m.assets[o.ID].OutstandingBalance = next
				m.assets[o.ID].UpdatedAt = now
			case models.TableLiability:
				m.liabilities[o.ID].OutstandingBalance = next
				m.liabilities[o.ID].UpdatedAt = now
			}
		}
	}
	for _, p := range batch.Puts {
		m.put(p)
	}
	for _, d := range batch.Deletes {
		m.deleteDoc(d.Table, d.ID)
	}
	return nil
}

func checkDocType(p models.DocPut) error {
	switch p.Doc.(type) {
	case *models.Wallet, *models.Property, *models.Category,
		*models.Income, *models.ActualExpense, *models.ExpectedExpense,
		*models.Transfer, *models.Asset, *models.AssetCollection,
		*models.Liability, *models.LiabilityPayment:
		return nil
	default:
		return fmt.Errorf("%w: unsupported document type %T for table %s", models.ErrValidation, p.Doc, p.Table)
	}
}

func (m *Manager) outstandingOf(table, id string, staged map[string]decimal.Decimal) (decimal.Decimal, decimal.Decimal, error) {
	if cur, ok := staged[table+"/"+id]; ok {
		switch table {
		case models.TableAsset:
			return cur, m.assets[id].TotalAmount, nil
		case models.TableLiability:
			return cur, m.liabilities[id].TotalAmount, nil
		}
	}
	switch table {
	case models.TableAsset:
		a, ok := m.assets[id]
		if !ok {
			return decimal.Zero, decimal.Zero, fmt.Errorf("%w: asset %s", models.ErrNotFound, id)
		}
		return a.OutstandingBalance, a.TotalAmount, nil
	case models.TableLiability:
		l, ok := m.liabilities[id]
		if !ok {
			return decimal.Zero, decimal.Zero, fmt.Errorf("%w: liability %s", models.ErrNotFound, id)
		}
		return l.OutstandingBalance, l.TotalAmount, nil
	default:
		return decimal.Zero, decimal.Zero, fmt.Errorf("%w: unknown outstanding table %q", models.ErrValidation, table)
	}
}

func (m *Manager) put(p models.DocPut) {
	switch doc := p.Doc.(type) {
	case *models.Wallet:
		m.wallets[p.ID] = cloneWallet(doc)
	case *models.Property:
		m.properties[p.ID] = cloneProperty(doc)
	case *models.Category:
		m.categories[p.ID] = cloneCategory(doc)
	case *models.Income:
		m.incomes[p.ID] = cloneIncome(doc)
	case *models.ActualExpense:
		m.expenses[p.ID] = cloneExpense(doc)
	case *models.ExpectedExpense:
		m.expected[p.ID] = cloneExpected(doc)
	case *models.Transfer:
		m.transfers[p.ID] = cloneTransfer(doc)
	case *models.Asset:
		m.assets[p.ID] = cloneAsset(doc)
	case *models.AssetCollection:
		m.collections[p.ID] = cloneCollection(doc)
	case *models.Liability:
		m.liabilities[p.ID] = cloneLiability(doc)
	case *models.LiabilityPayment:
		m.payments[p.ID] = clonePayment(doc)
	}
}

func (m *Manager) deleteDoc(table, id string) {
	switch table {
	case models.TableWallet:
		delete(m.wallets, id)
	case models.TableProperty:
		delete(m.properties, id)
	case models.TableCategory:
		delete(m.categories, id)
	case models.TableIncome:
		delete(m.incomes, id)
	case models.TableActualExpense:
		delete(m.expenses, id)
	case models.TableExpectedExpense:
		delete(m.expected, id)
	case models.TableTransfer:
		delete(m.transfers, id)
	case models.TableAsset:
		delete(m.assets, id)
	case models.TableAssetCollection:
		delete(m.collections, id)
	case models.TableLiability:
		delete(m.liabilities, id)
	case models.TableLiabilityPayment:
		delete(m.payments, id)
	}
}

// --- clone helpers ---
//
// Stores hand out copies so callers never alias the maps.

func cloneWallet(w *models.Wallet) *models.Wallet {
	c := *w
	return &c
}

func cloneProperty(p *models.Property) *models.Property {
	c := *p
	return &c
}

func cloneCategory(cat *models.Category) *models.Category {
	c := *cat
	c.Subcategories = append([]models.Subcategory(nil), cat.Subcategories...)
	return &c
}

func cloneIncome(in *models.Income) *models.Income {
	c := *in
	return &c
}

func cloneExpense(ex *models.ActualExpense) *models.ActualExpense {
	c := *ex
	return &c
}

func cloneExpected(ee *models.ExpectedExpense) *models.ExpectedExpense {
	c := *ee
	return &c
}

func cloneTransfer(t *models.Transfer) *models.Transfer {
	c := *t
	return &c
}

func cloneAsset(a *models.Asset) *models.Asset {
	c := *a
	c.Collections = append([]models.AssetCollection(nil), a.Collections...)
	return &c
}

func cloneCollection(ac *models.AssetCollection) *models.AssetCollection {
	c := *ac
	return &c
}

func cloneLiability(l *models.Liability) *models.Liability {
	c := *l
	c.Payments = append([]models.LiabilityPayment(nil), l.Payments...)
	return &c
}

func clonePayment(lp *models.LiabilityPayment) *models.LiabilityPayment {
	c := *lp
	return &c
}
