package server

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/Gabaldaar/gestionomiscuentas/internal/interfaces"
	"github.com/Gabaldaar/gestionomiscuentas/internal/models"
)

// handleProperties handles GET and POST /api/properties.
func (s *Server) handleProperties(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		properties, err := s.app.PropertyService.ListProperties(r.Context())
		if err != nil {
			WriteServiceError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, properties)

	case http.MethodPost:
		var property models.Property
		if !DecodeJSON(w, r, &property) {
			return
		}
		created, err := s.app.PropertyService.CreateProperty(r.Context(), &property)
		if err != nil {
			WriteServiceError(w, err)
			return
		}
		WriteJSON(w, http.StatusCreated, created)

	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPost)
	}
}

// routeProperties dispatches /api/properties/{id} and its ledger subroutes.
func (s *Server) routeProperties(w http.ResponseWriter, r *http.Request) {
	switch {
	case strings.HasSuffix(r.URL.Path, "/incomes"):
		s.handlePropertyIncomes(w, r)
	case strings.HasSuffix(r.URL.Path, "/expenses"):
		s.handlePropertyExpenses(w, r)
	default:
		s.handlePropertyByID(w, r)
	}
}

func (s *Server) handlePropertyByID(w http.ResponseWriter, r *http.Request) {
	id := PathParam(r, "/api/properties/", "")
	if id == "" {
		WriteError(w, http.StatusBadRequest, "Property id is required")
		return
	}

	switch r.Method {
	case http.MethodGet:
		property, err := s.app.PropertyService.GetProperty(r.Context(), id)
		if err != nil {
			WriteServiceError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, property)

	case http.MethodPut, http.MethodPatch:
		var property models.Property
		if !DecodeJSON(w, r, &property) {
			return
		}
		property.ID = id
		updated, err := s.app.PropertyService.UpdateProperty(r.Context(), &property)
		if err != nil {
			WriteServiceError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, updated)

	case http.MethodDelete:
		if err := s.app.PropertyService.DeleteProperty(r.Context(), id); err != nil {
			WriteServiceError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, map[string]string{"deleted": id})

	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPut, http.MethodPatch, http.MethodDelete)
	}
}

// handlePropertyIncomes handles POST /api/properties/{id}/incomes and
// GET /api/properties/{id}/incomes.
func (s *Server) handlePropertyIncomes(w http.ResponseWriter, r *http.Request) {
	propertyID := PathParam(r, "/api/properties/", "/incomes")

	switch r.Method {
	case http.MethodGet:
		filter, ok := transactionFilter(w, r)
		if !ok {
			return
		}
		filter.PropertyID = propertyID
		incomes, err := s.app.PropertyService.ListIncomes(r.Context(), filter)
		if err != nil {
			WriteServiceError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, incomes)

	case http.MethodPost:
		var req interfaces.IncomeRequest
		if !DecodeJSON(w, r, &req) {
			return
		}
		income, err := s.app.PropertyService.AddIncome(r.Context(), propertyID, req)
		if err != nil {
			WriteServiceError(w, err)
			return
		}
		WriteJSON(w, http.StatusCreated, income)

	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPost)
	}
}

// handlePropertyExpenses handles POST /api/properties/{id}/expenses and
// GET /api/properties/{id}/expenses.
func (s *Server) handlePropertyExpenses(w http.ResponseWriter, r *http.Request) {
	propertyID := PathParam(r, "/api/properties/", "/expenses")

	switch r.Method {
	case http.MethodGet:
		filter, ok := transactionFilter(w, r)
		if !ok {
			return
		}
		filter.PropertyID = propertyID
		expenses, err := s.app.PropertyService.ListExpenses(r.Context(), filter)
		if err != nil {
			WriteServiceError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, expenses)

	case http.MethodPost:
		var req interfaces.IncomeRequest
		if !DecodeJSON(w, r, &req) {
			return
		}
		expense, err := s.app.PropertyService.AddExpense(r.Context(), propertyID, req)
		if err != nil {
			WriteServiceError(w, err)
			return
		}
		WriteJSON(w, http.StatusCreated, expense)

	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPost)
	}
}

// transactionFilter builds a TransactionFilter from query parameters.
func transactionFilter(w http.ResponseWriter, r *http.Request) (interfaces.TransactionFilter, bool) {
	filter := interfaces.TransactionFilter{
		PropertyID: r.URL.Query().Get("property_id"),
		WalletID:   r.URL.Query().Get("wallet_id"),
	}
	from, err := QueryDate(r, "from")
	if err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid from date: "+err.Error())
		return filter, false
	}
	to, err := QueryDate(r, "to")
	if err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid to date: "+err.Error())
		return filter, false
	}
	filter.From = from
	filter.To = to
	return filter, true
}

// handleIncomes handles GET /api/incomes.
func (s *Server) handleIncomes(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	filter, ok := transactionFilter(w, r)
	if !ok {
		return
	}
	incomes, err := s.app.PropertyService.ListIncomes(r.Context(), filter)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, incomes)
}

// handleExpenses handles GET /api/expenses.
func (s *Server) handleExpenses(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	filter, ok := transactionFilter(w, r)
	if !ok {
		return
	}
	expenses, err := s.app.PropertyService.ListExpenses(r.Context(), filter)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, expenses)
}

// handleIncomeByID handles PATCH and DELETE /api/incomes/{id}.
func (s *Server) handleIncomeByID(w http.ResponseWriter, r *http.Request) {
	id := PathParam(r, "/api/incomes/", "")
	if id == "" {
		WriteError(w, http.StatusBadRequest, "Income id is required")
		return
	}

	switch r.Method {
	case http.MethodPatch, http.MethodPut:
		var req interfaces.IncomeRequest
		if !DecodeJSON(w, r, &req) {
			return
		}
		income, err := s.app.PropertyService.UpdateIncome(r.Context(), id, req)
		if err != nil {
			WriteServiceError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, income)

	case http.MethodDelete:
		if err := s.app.PropertyService.DeleteIncome(r.Context(), id); err != nil {
			WriteServiceError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, map[string]string{"deleted": id})

	default:
		RequireMethod(w, r, http.MethodPatch, http.MethodPut, http.MethodDelete)
	}
}

// handleExpenseByID handles PATCH and DELETE /api/expenses/{id}.
func (s *Server) handleExpenseByID(w http.ResponseWriter, r *http.Request) {
	id := PathParam(r, "/api/expenses/", "")
	if id == "" {
		WriteError(w, http.StatusBadRequest, "Expense id is required")
		return
	}

	switch r.Method {
	case http.MethodPatch, http.MethodPut:
		var req interfaces.IncomeRequest
		if !DecodeJSON(w, r, &req) {
			return
		}
		expense, err := s.app.PropertyService.UpdateExpense(r.Context(), id, req)
		if err != nil {
			WriteServiceError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, expense)

	case http.MethodDelete:
		if err := s.app.PropertyService.DeleteExpense(r.Context(), id); err != nil {
			WriteServiceError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, map[string]string{"deleted": id})

	default:
		RequireMethod(w, r, http.MethodPatch, http.MethodPut, http.MethodDelete)
	}
}

// handleExpected handles GET and POST /api/expected-expenses.
func (s *Server) handleExpected(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		month, err := queryInt(r, "month")
		if err != nil {
			WriteError(w, http.StatusBadRequest, "Invalid month: "+err.Error())
			return
		}
		year, err := queryInt(r, "year")
		if err != nil {
			WriteError(w, http.StatusBadRequest, "Invalid year: "+err.Error())
			return
		}
		expected, err := s.app.PropertyService.ListExpectedExpenses(r.Context(), month, year)
		if err != nil {
			WriteServiceError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, expected)

	case http.MethodPost:
		var expected models.ExpectedExpense
		if !DecodeJSON(w, r, &expected) {
			return
		}
		saved, err := s.app.PropertyService.SaveExpectedExpense(r.Context(), &expected)
		if err != nil {
			WriteServiceError(w, err)
			return
		}
		WriteJSON(w, http.StatusCreated, saved)

	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPost)
	}
}

// handleExpectedByID handles PUT and DELETE /api/expected-expenses/{id}.
func (s *Server) handleExpectedByID(w http.ResponseWriter, r *http.Request) {
	id := PathParam(r, "/api/expected-expenses/", "")
	if id == "" {
		WriteError(w, http.StatusBadRequest, "Expected expense id is required")
		return
	}

	switch r.Method {
	case http.MethodPut, http.MethodPatch:
		var expected models.ExpectedExpense
		if !DecodeJSON(w, r, &expected) {
			return
		}
		expected.ID = id
		saved, err := s.app.PropertyService.SaveExpectedExpense(r.Context(), &expected)
		if err != nil {
			WriteServiceError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, saved)

	case http.MethodDelete:
		if err := s.app.PropertyService.DeleteExpectedExpense(r.Context(), id); err != nil {
			WriteServiceError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, map[string]string{"deleted": id})

	default:
		RequireMethod(w, r, http.MethodPut, http.MethodPatch, http.MethodDelete)
	}
}

func queryInt(r *http.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}
