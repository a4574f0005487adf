package server

import (
	"net/http"
	"strings"

	"github.com/Gabaldaar/gestionomiscuentas/internal/interfaces"
)

// handleAssets handles GET and POST /api/assets.
func (s *Server) handleAssets(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		assets, err := s.app.AssetService.ListAssets(r.Context())
		if err != nil {
			WriteServiceError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, assets)

	case http.MethodPost:
		var req interfaces.AssetRequest
		if !DecodeJSON(w, r, &req) {
			return
		}
		asset, err := s.app.AssetService.CreateAsset(r.Context(), req)
		if err != nil {
			WriteServiceError(w, err)
			return
		}
		WriteJSON(w, http.StatusCreated, asset)

	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPost)
	}
}

// routeAssets dispatches /api/assets/{id} and /api/assets/{id}/collections.
func (s *Server) routeAssets(w http.ResponseWriter, r *http.Request) {
	if strings.HasSuffix(r.URL.Path, "/collections") {
		s.handleAssetCollections(w, r)
		return
	}
	s.handleAssetByID(w, r)
}

func (s *Server) handleAssetByID(w http.ResponseWriter, r *http.Request) {
	id := PathParam(r, "/api/assets/", "")
	if id == "" {
		WriteError(w, http.StatusBadRequest, "Asset id is required")
		return
	}

	switch r.Method {
	case http.MethodGet:
		asset, err := s.app.AssetService.GetAsset(r.Context(), id)
		if err != nil {
			WriteServiceError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, asset)

	case http.MethodDelete:
		if err := s.app.AssetService.DeleteAsset(r.Context(), id); err != nil {
			WriteServiceError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, map[string]string{"deleted": id})

	default:
		RequireMethod(w, r, http.MethodGet, http.MethodDelete)
	}
}

// handleAssetCollections handles POST /api/assets/{id}/collections.
func (s *Server) handleAssetCollections(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	assetID := PathParam(r, "/api/assets/", "/collections")
	var req interfaces.CollectionRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	collection, err := s.app.AssetService.RecordCollection(r.Context(), assetID, req)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, collection)
}

// handleCollectionByID handles DELETE /api/collections/{id}.
func (s *Server) handleCollectionByID(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodDelete) {
		return
	}

	id := PathParam(r, "/api/collections/", "")
	if id == "" {
		WriteError(w, http.StatusBadRequest, "Collection id is required")
		return
	}
	if err := s.app.AssetService.DeleteCollection(r.Context(), id); err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"deleted": id})
}
