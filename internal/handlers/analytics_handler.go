package handlers

import (
	"net/http"

	"onegoal/internal/services"
)

// AnalyticsHandler handles HTTP requests for the progress analytics.
type AnalyticsHandler struct {
	Service *services.AnalyticsService
}

// NewAnalyticsHandler creates a new instance of AnalyticsHandler.
func NewAnalyticsHandler(analyticsService *services.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{Service: analyticsService}
}

// GET /analytics/overview?from=YYYY-MM-DD&to=YYYY-MM-DD
func (h *AnalyticsHandler) GetOverviewHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	from := r.URL.Query().Get("from")
	to := r.URL.Query().Get("to")

	overview, err := h.Service.Overview(r.Context(), userID, from, to)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, overview)
}
