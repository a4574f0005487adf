package server

import (
	"net/http"
)

// handleSummary handles GET /api/summary?from=&to=&property_id=.
func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	from, err := QueryDate(r, "from")
	if err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid from date: "+err.Error())
		return
	}
	to, err := QueryDate(r, "to")
	if err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid to date: "+err.Error())
		return
	}
	summary, err := s.app.SummaryService.PeriodSummary(r.Context(), from, to, r.URL.Query().Get("property_id"))
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, summary)
}

// summaryGenerateRequest carries the inputs for POST /api/summary/generate.
type summaryGenerateRequest struct {
	From       string `json:"from"`
	To         string `json:"to"`
	PropertyID string `json:"property_id"`
}

// handleSummaryGenerate handles POST /api/summary/generate. The period is
// aggregated and rendered to prose by the configured AI client.
func (s *Server) handleSummaryGenerate(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}
	var req summaryGenerateRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	from, err := parseDate(req.From)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid from date: "+err.Error())
		return
	}
	to, err := parseDate(req.To)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid to date: "+err.Error())
		return
	}
	summary, err := s.app.SummaryService.GenerateSummary(r.Context(), from, to, req.PropertyID)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, summary)
}
