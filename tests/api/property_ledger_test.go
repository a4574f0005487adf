package api

// Property-scoped ledger over the REST API.
//
// Coverage:
//   - Property CRUD and the delete guard when entries reference it
//   - POST incomes/expenses move the wallet balance atomically
//   - Insufficient funds rejects the expense and leaves no entry behind
//   - PATCH incomes revert-then-reapply in one commit
//   - Expected expenses are budget-only and never touch a wallet
//   - Date-window GET filters (from inclusive, to exclusive)

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Gabaldaar/gestionomiscuentas/tests/common"
)

// createProperty is a test helper that POSTs a property and returns its id.
func createProperty(t *testing.T, env *common.Env, name string) string {
	t.Helper()
	result, status := env.DoJSON(t, http.MethodPost, "/api/properties", map[string]interface{}{
		"name": name,
	})
	require.Equal(t, http.StatusCreated, status, "create property: %v", result)
	id, _ := result["id"].(string)
	require.NotEmpty(t, id)
	return id
}

func walletBalance(t *testing.T, env *common.Env, walletID string) string {
	t.Helper()
	result, status := env.DoJSON(t, http.MethodGet, "/api/wallets/"+walletID, nil)
	require.Equal(t, http.StatusOK, status)
	balance, _ := result["balance"].(string)
	return balance
}

func TestPropertyCRUD(t *testing.T) {
	env := common.NewEnv(t)

	id := createProperty(t, env, "Depto Centro")

	result, status := env.DoJSON(t, http.MethodGet, "/api/properties/"+id, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Depto Centro", result["name"])

	result, status = env.DoJSON(t, http.MethodPut, "/api/properties/"+id, map[string]interface{}{
		"name":  "Depto Centro 2B",
		"notes": "renovado",
	})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Depto Centro 2B", result["name"])

	_, status = env.DoJSON(t, http.MethodDelete, "/api/properties/"+id, nil)
	assert.Equal(t, http.StatusOK, status)

	_, status = env.DoJSON(t, http.MethodGet, "/api/properties/"+id, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestAddIncomeMovesBalance(t *testing.T) {
	env := common.NewEnv(t)

	walletID := createWallet(t, env, "Caja", "ARS", "1000")
	propertyID := createProperty(t, env, "Depto")

	result, status := env.DoJSON(t, http.MethodPost, "/api/properties/"+propertyID+"/incomes", map[string]interface{}{
		"wallet_id": walletID,
		"amount":    "500",
		"date":      "2026-03-05T00:00:00Z",
		"notes":     "alquiler marzo",
	})
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "ARS", result["currency"])

	assert.Equal(t, "1500", walletBalance(t, env, walletID))
}

func TestAddExpenseInsufficientFunds(t *testing.T) {
	env := common.NewEnv(t)

	walletID := createWallet(t, env, "Caja", "ARS", "100")
	propertyID := createProperty(t, env, "Depto")

	result, status := env.DoJSON(t, http.MethodPost, "/api/properties/"+propertyID+"/expenses", map[string]interface{}{
		"wallet_id": walletID,
		"amount":    "250",
		"date":      "2026-03-05T00:00:00Z",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, "insufficient_funds", result["code"])

	// Nothing committed: balance intact, no expense recorded
	assert.Equal(t, "100", walletBalance(t, env, walletID))
	list, _ := env.DoJSONList(t, http.MethodGet, "/api/expenses")
	assert.Empty(t, list)
}

func TestUpdateIncomeRevertsAndReapplies(t *testing.T) {
	env := common.NewEnv(t)

	walletID := createWallet(t, env, "Caja", "ARS", "1000")
	propertyID := createProperty(t, env, "Depto")

	result, status := env.DoJSON(t, http.MethodPost, "/api/properties/"+propertyID+"/incomes", map[string]interface{}{
		"wallet_id": walletID,
		"amount":    "500",
		"date":      "2026-03-05T00:00:00Z",
	})
	require.Equal(t, http.StatusCreated, status)
	incomeID, _ := result["id"].(string)

	_, status = env.DoJSON(t, http.MethodPatch, "/api/incomes/"+incomeID, map[string]interface{}{
		"amount": "800",
	})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "1800", walletBalance(t, env, walletID))
}

func TestDeleteExpenseRefunds(t *testing.T) {
	env := common.NewEnv(t)

	walletID := createWallet(t, env, "Caja", "ARS", "1000")
	propertyID := createProperty(t, env, "Depto")

	result, status := env.DoJSON(t, http.MethodPost, "/api/properties/"+propertyID+"/expenses", map[string]interface{}{
		"wallet_id": walletID,
		"amount":    "300",
		"date":      "2026-03-05T00:00:00Z",
	})
	require.Equal(t, http.StatusCreated, status)
	expenseID, _ := result["id"].(string)
	assert.Equal(t, "700", walletBalance(t, env, walletID))

	_, status = env.DoJSON(t, http.MethodDelete, "/api/expenses/"+expenseID, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "1000", walletBalance(t, env, walletID))
}

func TestPropertyDeleteWithEntriesRefused(t *testing.T) {
	env := common.NewEnv(t)

	walletID := createWallet(t, env, "Caja", "ARS", "1000")
	propertyID := createProperty(t, env, "Depto")

	_, status := env.DoJSON(t, http.MethodPost, "/api/properties/"+propertyID+"/incomes", map[string]interface{}{
		"wallet_id": walletID,
		"amount":    "100",
		"date":      "2026-03-05T00:00:00Z",
	})
	require.Equal(t, http.StatusCreated, status)

	result, status := env.DoJSON(t, http.MethodDelete, "/api/properties/"+propertyID, nil)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "has_dependents", result["code"])
}

func TestIncomeDateWindowFilter(t *testing.T) {
	env := common.NewEnv(t)

	walletID := createWallet(t, env, "Caja", "ARS", "0")
	propertyID := createProperty(t, env, "Depto")

	for _, date := range []string{"2026-02-28T00:00:00Z", "2026-03-01T00:00:00Z", "2026-03-31T00:00:00Z", "2026-04-01T00:00:00Z"} {
		_, status := env.DoJSON(t, http.MethodPost, "/api/properties/"+propertyID+"/incomes", map[string]interface{}{
			"wallet_id": walletID,
			"amount":    "10",
			"date":      date,
		})
		require.Equal(t, http.StatusCreated, status)
	}

	// March window: from inclusive, to exclusive
	list, status := env.DoJSONList(t, http.MethodGet, "/api/incomes?from=2026-03-01&to=2026-04-01")
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, list, 2)
}

func TestExpectedExpensesBudgetOnly(t *testing.T) {
	env := common.NewEnv(t)

	walletID := createWallet(t, env, "Caja", "ARS", "1000")
	propertyID := createProperty(t, env, "Depto")

	result, status := env.DoJSON(t, http.MethodPost, "/api/expected-expenses", map[string]interface{}{
		"property_id": propertyID,
		"amount":      "250",
		"currency":    "ARS",
		"month":       3,
		"year":        2026,
	})
	require.Equal(t, http.StatusCreated, status)
	expectedID, _ := result["id"].(string)
	require.NotEmpty(t, expectedID)

	// Budget lines never move wallet balances
	assert.Equal(t, "1000", walletBalance(t, env, walletID))

	list, status := env.DoJSONList(t, http.MethodGet, "/api/expected-expenses?month=3&year=2026")
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, list, 1)

	_, status = env.DoJSON(t, http.MethodDelete, "/api/expected-expenses/"+expectedID, nil)
	assert.Equal(t, http.StatusOK, status)
}
