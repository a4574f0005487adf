package server

import (
	"net/http"
	"time"

	"github.com/Gabaldaar/gestionomiscuentas/internal/common"
)

// handleHealth handles GET /api/health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "ok",
		"version": common.GetVersion(),
		"uptime":  time.Since(s.app.StartupTime).Round(time.Second).String(),
	})
}

// handleConfig handles GET /api/config. Secrets and credentials are never
// echoed back.
func (s *Server) handleConfig(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	cfg := s.app.Config
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"environment":      cfg.Environment,
		"default_currency": cfg.DefaultCurrency,
		"storage": map[string]string{
			"namespace": cfg.Storage.Namespace,
			"database":  cfg.Storage.Database,
		},
		"gemini": map[string]interface{}{
			"model":      cfg.Clients.Gemini.Model,
			"configured": cfg.Clients.Gemini.APIKey != "",
		},
	})
}

// handleVersion handles GET /api/version.
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{
		"version": common.Version,
		"build":   common.Build,
		"commit":  common.GitCommit,
	})
}
