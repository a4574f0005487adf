package server

import (
	"net/http"

	"github.com/Gabaldaar/gestionomiscuentas/internal/interfaces"
	"github.com/Gabaldaar/gestionomiscuentas/internal/models"
)

// handleTransfers handles GET and POST /api/transfers.
func (s *Server) handleTransfers(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		transfers, err := s.app.TransferService.ListTransfers(r.Context())
		if err != nil {
			WriteServiceError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, transfers)

	case http.MethodPost:
		var req interfaces.TransferRequest
		if !DecodeJSON(w, r, &req) {
			return
		}
		transfer, err := s.app.TransferService.CreateTransfer(r.Context(), req)
		if err != nil {
			WriteServiceError(w, err)
			return
		}
		WriteJSON(w, http.StatusCreated, transfer)

	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPost)
	}
}

// handleTransferByID handles GET, PATCH and DELETE /api/transfers/{id}.
func (s *Server) handleTransferByID(w http.ResponseWriter, r *http.Request) {
	id := PathParam(r, "/api/transfers/", "")
	if id == "" {
		WriteError(w, http.StatusBadRequest, "Transfer id is required")
		return
	}

	switch r.Method {
	case http.MethodGet:
		transfer, err := s.app.TransferService.GetTransfer(r.Context(), id)
		if err != nil {
			WriteServiceError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, transfer)

	case http.MethodPatch, http.MethodPut:
		var update models.TransferUpdate
		if !DecodeJSON(w, r, &update) {
			return
		}
		transfer, err := s.app.TransferService.EditTransfer(r.Context(), id, update)
		if err != nil {
			WriteServiceError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, transfer)

	case http.MethodDelete:
		if err := s.app.TransferService.DeleteTransfer(r.Context(), id); err != nil {
			WriteServiceError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, map[string]string{"deleted": id})

	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPatch, http.MethodPut, http.MethodDelete)
	}
}
