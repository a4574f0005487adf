package server

import (
	"net/http"
	"time"
)

// handleShutdown handles POST /api/shutdown (dev mode only).
func (s *Server) handleShutdown(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	if s.app.Config.IsProduction() {
		WriteError(w, http.StatusForbidden, "Shutdown endpoint disabled in production")
		return
	}

	s.logger.Info().Msg("Shutdown requested via HTTP endpoint")

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("Shutting down gracefully...\n"))

	if flusher, ok := w.(http.Flusher); ok {
		flusher.Flush()
	}

	if s.shutdownChan != nil {
		go func() {
			time.Sleep(100 * time.Millisecond)
			s.shutdownChan <- struct{}{}
		}()
	}
}

// registerRoutes sets up all REST API routes on the mux.
func (s *Server) registerRoutes(mux *http.ServeMux) {
	// System
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/version", s.handleVersion)
	mux.HandleFunc("/api/config", s.handleConfig)
	mux.HandleFunc("/api/shutdown", s.handleShutdown)

	// Wallets
	mux.HandleFunc("/api/wallets/", s.routeWallets)
	mux.HandleFunc("/api/wallets", s.handleWallets)

	// Transfers
	mux.HandleFunc("/api/transfers/", s.handleTransferByID)
	mux.HandleFunc("/api/transfers", s.handleTransfers)

	// Assets
	mux.HandleFunc("/api/assets/", s.routeAssets)
	mux.HandleFunc("/api/assets", s.handleAssets)
	mux.HandleFunc("/api/collections/", s.handleCollectionByID)

	// Liabilities
	mux.HandleFunc("/api/liabilities/", s.routeLiabilities)
	mux.HandleFunc("/api/liabilities", s.handleLiabilities)
	mux.HandleFunc("/api/payments/", s.handlePaymentByID)

	// Properties and their ledgers
	mux.HandleFunc("/api/properties/", s.routeProperties)
	mux.HandleFunc("/api/properties", s.handleProperties)
	mux.HandleFunc("/api/incomes/", s.handleIncomeByID)
	mux.HandleFunc("/api/incomes", s.handleIncomes)
	mux.HandleFunc("/api/expenses/", s.handleExpenseByID)
	mux.HandleFunc("/api/expenses", s.handleExpenses)
	mux.HandleFunc("/api/expected-expenses/", s.handleExpectedByID)
	mux.HandleFunc("/api/expected-expenses", s.handleExpected)

	// Categories
	mux.HandleFunc("/api/categories/", s.handleCategoryByID)
	mux.HandleFunc("/api/categories", s.handleCategories)

	// Summaries
	mux.HandleFunc("/api/summary/generate", s.handleSummaryGenerate)
	mux.HandleFunc("/api/summary", s.handleSummary)
}
