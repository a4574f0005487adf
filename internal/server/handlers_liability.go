package server

import (
	"net/http"
	"strings"

	"github.com/Gabaldaar/gestionomiscuentas/internal/interfaces"
)

// handleLiabilities handles GET and POST /api/liabilities.
func (s *Server) handleLiabilities(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		liabilities, err := s.app.LiabilityService.ListLiabilities(r.Context())
		if err != nil {
			WriteServiceError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, liabilities)

	case http.MethodPost:
		var req interfaces.LiabilityRequest
		if !DecodeJSON(w, r, &req) {
			return
		}
		liability, err := s.app.LiabilityService.CreateLiability(r.Context(), req)
		if err != nil {
			WriteServiceError(w, err)
			return
		}
		WriteJSON(w, http.StatusCreated, liability)

	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPost)
	}
}

// routeLiabilities dispatches /api/liabilities/{id} and
// /api/liabilities/{id}/payments.
func (s *Server) routeLiabilities(w http.ResponseWriter, r *http.Request) {
	if strings.HasSuffix(r.URL.Path, "/payments") {
		s.handleLiabilityPayments(w, r)
		return
	}
	s.handleLiabilityByID(w, r)
}

func (s *Server) handleLiabilityByID(w http.ResponseWriter, r *http.Request) {
	id := PathParam(r, "/api/liabilities/", "")
	if id == "" {
		WriteError(w, http.StatusBadRequest, "Liability id is required")
		return
	}

	switch r.Method {
	case http.MethodGet:
		liability, err := s.app.LiabilityService.GetLiability(r.Context(), id)
		if err != nil {
			WriteServiceError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, liability)

	case http.MethodDelete:
		if err := s.app.LiabilityService.DeleteLiability(r.Context(), id); err != nil {
			WriteServiceError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, map[string]string{"deleted": id})

	default:
		RequireMethod(w, r, http.MethodGet, http.MethodDelete)
	}
}

// handleLiabilityPayments handles POST /api/liabilities/{id}/payments.
func (s *Server) handleLiabilityPayments(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	liabilityID := PathParam(r, "/api/liabilities/", "/payments")
	var req interfaces.CollectionRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	payment, err := s.app.LiabilityService.RecordPayment(r.Context(), liabilityID, req)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, payment)
}

// handlePaymentByID handles DELETE /api/payments/{id}.
func (s *Server) handlePaymentByID(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodDelete) {
		return
	}

	id := PathParam(r, "/api/payments/", "")
	if id == "" {
		WriteError(w, http.StatusBadRequest, "Payment id is required")
		return
	}
	if err := s.app.LiabilityService.DeletePayment(r.Context(), id); err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"deleted": id})
}
