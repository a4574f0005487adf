package server

import (
	"net/http"

	"github.com/Gabaldaar/gestionomiscuentas/internal/models"
)

// handleCategories handles GET and POST /api/categories. GET accepts an
// optional ?kind=income|expense filter.
func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		kind := models.CategoryKind(r.URL.Query().Get("kind"))
		if kind != "" && !models.ValidCategoryKind(kind) {
			WriteError(w, http.StatusBadRequest, "Invalid category kind: "+string(kind))
			return
		}
		categories, err := s.app.CategoryService.ListCategories(r.Context(), kind)
		if err != nil {
			WriteServiceError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, categories)

	case http.MethodPost:
		var category models.Category
		if !DecodeJSON(w, r, &category) {
			return
		}
		created, err := s.app.CategoryService.CreateCategory(r.Context(), &category)
		if err != nil {
			WriteServiceError(w, err)
			return
		}
		WriteJSON(w, http.StatusCreated, created)

	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPost)
	}
}

// handleCategoryByID handles GET, PUT, and DELETE /api/categories/{id}.
func (s *Server) handleCategoryByID(w http.ResponseWriter, r *http.Request) {
	id := PathParam(r, "/api/categories/", "")
	if id == "" {
		WriteError(w, http.StatusBadRequest, "Category id is required")
		return
	}

	switch r.Method {
	case http.MethodGet:
		category, err := s.app.CategoryService.GetCategory(r.Context(), id)
		if err != nil {
			WriteServiceError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, category)

	case http.MethodPut, http.MethodPatch:
		var category models.Category
		if !DecodeJSON(w, r, &category) {
			return
		}
		category.ID = id
		updated, err := s.app.CategoryService.UpdateCategory(r.Context(), &category)
		if err != nil {
			WriteServiceError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, updated)

	case http.MethodDelete:
		if err := s.app.CategoryService.DeleteCategory(r.Context(), id); err != nil {
			WriteServiceError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, map[string]string{"deleted": id})

	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPut, http.MethodPatch, http.MethodDelete)
	}
}
