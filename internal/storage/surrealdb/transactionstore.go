package surrealdb

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/surrealdb/surrealdb.go"
	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"

	"github.com/Gabaldaar/gestionomiscuentas/internal/common"
	"github.com/Gabaldaar/gestionomiscuentas/internal/interfaces"
	"github.com/Gabaldaar/gestionomiscuentas/internal/models"
)

type TransactionStore struct {
	db     *surrealdb.DB
	logger *common.Logger
}

func NewTransactionStore(db *surrealdb.DB, logger *common.Logger) *TransactionStore {
	return &TransactionStore{
		db:     db,
		logger: logger,
	}
}

func (s *TransactionStore) GetIncome(ctx context.Context, id string) (*models.Income, error) {
	doc, err := surrealdb.Select[incomeDoc](ctx, s.db, surrealmodels.NewRecordID(models.TableIncome, id))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to select income: %v", models.ErrStoreUnavailable, err)
	}
	if doc == nil || doc.IncomeID == "" {
		return nil, fmt.Errorf("%w: income %s", models.ErrNotFound, id)
	}
	return incomeFromDoc(doc)
}

func (s *TransactionStore) GetExpense(ctx context.Context, id string) (*models.ActualExpense, error) {
	doc, err := surrealdb.Select[expenseDoc](ctx, s.db, surrealmodels.NewRecordID(models.TableActualExpense, id))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to select expense: %v", models.ErrStoreUnavailable, err)
	}
	if doc == nil || doc.ExpenseID == "" {
		return nil, fmt.Errorf("%w: expense %s", models.ErrNotFound, id)
	}
	return expenseFromDoc(doc)
}

// filterClause builds the WHERE clause and vars for a transaction filter.
func filterClause(filter interfaces.TransactionFilter) (string, map[string]any) {
	var conds []string
	vars := make(map[string]any)

	if filter.PropertyID != "" {
		conds = append(conds, "property_id = $property_id")
		vars["property_id"] = filter.PropertyID
	}
	if filter.WalletID != "" {
		conds = append(conds, "wallet_id = $wallet_id")
		vars["wallet_id"] = filter.WalletID
	}
	if !filter.From.IsZero() {
		conds = append(conds, "date >= $from")
		vars["from"] = filter.From
	}
	if !filter.To.IsZero() {
		conds = append(conds, "date < $to")
		vars["to"] = filter.To
	}

	if len(conds) == 0 {
		return "", vars
	}
	return " WHERE " + strings.Join(conds, " AND "), vars
}

func (s *TransactionStore) ListIncomes(ctx context.Context, filter interfaces.TransactionFilter) ([]*models.Income, error) {
	where, vars := filterClause(filter)
	sql := fmt.Sprintf("SELECT * FROM %s%s ORDER BY date DESC", models.TableIncome, where)

	results, err := surrealdb.Query[[]incomeDoc](ctx, s.db, sql, vars)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list incomes: %v", models.ErrStoreUnavailable, err)
	}

	var incomes []*models.Income
	if results != nil && len(*results) > 0 {
		for i := range (*results)[0].Result {
			in, err := incomeFromDoc(&(*results)[0].Result[i])
			if err != nil {
				return nil, err
			}
			incomes = append(incomes, in)
		}
	}
	return incomes, nil
}

func (s *TransactionStore) ListExpenses(ctx context.Context, filter interfaces.TransactionFilter) ([]*models.ActualExpense, error) {
	where, vars := filterClause(filter)
	sql := fmt.Sprintf("SELECT * FROM %s%s ORDER BY date DESC", models.TableActualExpense, where)

	results, err := surrealdb.Query[[]expenseDoc](ctx, s.db, sql, vars)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list expenses: %v", models.ErrStoreUnavailable, err)
	}

	var expenses []*models.ActualExpense
	if results != nil && len(*results) > 0 {
		for i := range (*results)[0].Result {
			ex, err := expenseFromDoc(&(*results)[0].Result[i])
			if err != nil {
				return nil, err
			}
			expenses = append(expenses, ex)
		}
	}
	return expenses, nil
}

func (s *TransactionStore) GetExpected(ctx context.Context, id string) (*models.ExpectedExpense, error) {
	doc, err := surrealdb.Select[expectedDoc](ctx, s.db, surrealmodels.NewRecordID(models.TableExpectedExpense, id))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to select expected expense: %v", models.ErrStoreUnavailable, err)
	}
	if doc == nil || doc.ExpectedID == "" {
		return nil, fmt.Errorf("%w: expected expense %s", models.ErrNotFound, id)
	}
	return expectedFromDoc(doc)
}

func (s *TransactionStore) ListExpected(ctx context.Context, month, year int) ([]*models.ExpectedExpense, error) {
	var conds []string
	vars := make(map[string]any)
	if month > 0 {
		conds = append(conds, "month = $month")
		vars["month"] = month
	}
	if year > 0 {
		conds = append(conds, "year = $year")
		vars["year"] = year
	}
	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}
	sql := fmt.Sprintf("SELECT * FROM %s%s ORDER BY year DESC, month DESC", models.TableExpectedExpense, where)

	results, err := surrealdb.Query[[]expectedDoc](ctx, s.db, sql, vars)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list expected expenses: %v", models.ErrStoreUnavailable, err)
	}

	var expected []*models.ExpectedExpense
	if results != nil && len(*results) > 0 {
		for i := range (*results)[0].Result {
			ex, err := expectedFromDoc(&(*results)[0].Result[i])
			if err != nil {
				return nil, err
			}
			expected = append(expected, ex)
		}
	}
	return expected, nil
}

func (s *TransactionStore) SaveExpected(ctx context.Context, expected *models.ExpectedExpense) error {
	expected.UpdatedAt = time.Now()
	if expected.CreatedAt.IsZero() {
		expected.CreatedAt = expected.UpdatedAt
	}

	sql := fmt.Sprintf("UPSERT type::record('%s', $id) CONTENT $doc", models.TableExpectedExpense)
	vars := map[string]any{"id": expected.ID, "doc": expectedToDoc(expected)}

	if _, err := surrealdb.Query[[]expectedDoc](ctx, s.db, sql, vars); err != nil {
		return fmt.Errorf("%w: failed to save expected expense: %v", models.ErrStoreUnavailable, err)
	}
	return nil
}

func (s *TransactionStore) DeleteExpected(ctx context.Context, id string) error {
	_, err := surrealdb.Delete[expectedDoc](ctx, s.db, surrealmodels.NewRecordID(models.TableExpectedExpense, id))
	if err != nil {
		return fmt.Errorf("%w: failed to delete expected expense: %v", models.ErrStoreUnavailable, err)
	}
	return nil
}
