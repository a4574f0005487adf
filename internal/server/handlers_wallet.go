package server

import (
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Gabaldaar/gestionomiscuentas/internal/models"
)

// walletCreateRequest is the payload for POST /api/wallets.
type walletCreateRequest struct {
	Name          string          `json:"name"`
	Currency      string          `json:"currency"`
	Balance       decimal.Decimal `json:"balance"`
	Icon          string          `json:"icon"`
	AllowNegative bool            `json:"allow_negative"`
}

// handleWallets handles GET and POST /api/wallets.
func (s *Server) handleWallets(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		wallets, err := s.app.WalletService.ListWallets(r.Context())
		if err != nil {
			WriteServiceError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, wallets)

	case http.MethodPost:
		var req walletCreateRequest
		if !DecodeJSON(w, r, &req) {
			return
		}
		currency := models.ParseCurrency(req.Currency)
		if currency == "" && req.Currency == "" {
			currency = models.Currency(s.app.Config.DefaultCurrency)
		}
		wallet, err := s.app.WalletService.CreateWallet(r.Context(), &models.Wallet{
			Name:          req.Name,
			Currency:      currency,
			Balance:       req.Balance,
			Icon:          req.Icon,
			AllowNegative: req.AllowNegative,
		})
		if err != nil {
			WriteServiceError(w, err)
			return
		}
		WriteJSON(w, http.StatusCreated, wallet)

	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPost)
	}
}

// routeWallets dispatches /api/wallets/{id} and /api/wallets/{id}/verify.
func (s *Server) routeWallets(w http.ResponseWriter, r *http.Request) {
	if strings.HasSuffix(r.URL.Path, "/verify") {
		s.handleWalletVerify(w, r)
		return
	}
	s.handleWalletByID(w, r)
}

func (s *Server) handleWalletByID(w http.ResponseWriter, r *http.Request) {
	id := PathParam(r, "/api/wallets/", "")
	if id == "" {
		WriteError(w, http.StatusBadRequest, "Wallet id is required")
		return
	}

	switch r.Method {
	case http.MethodGet:
		wallet, err := s.app.WalletService.GetWallet(r.Context(), id)
		if err != nil {
			WriteServiceError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, wallet)

	case http.MethodPatch, http.MethodPut:
		var update models.WalletUpdate
		if !DecodeJSON(w, r, &update) {
			return
		}
		wallet, err := s.app.WalletService.UpdateWallet(r.Context(), id, update)
		if err != nil {
			WriteServiceError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, wallet)

	case http.MethodDelete:
		if err := s.app.WalletService.DeleteWallet(r.Context(), id); err != nil {
			WriteServiceError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, map[string]string{"deleted": id})

	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPatch, http.MethodPut, http.MethodDelete)
	}
}

// handleWalletVerify handles GET /api/wallets/{id}/verify.
func (s *Server) handleWalletVerify(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	id := PathParam(r, "/api/wallets/", "/verify")
	report, err := s.app.WalletService.VerifyBalance(r.Context(), id)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, report)
}
