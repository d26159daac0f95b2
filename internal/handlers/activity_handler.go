package handlers

import (
	"net/http"
	"strconv"

	"github.com/sirupsen/logrus"

	"onegoal/internal/services"
)

// ActivityHandler handles HTTP requests for the recent-activity feed.
type ActivityHandler struct {
	Service *services.ActivityService
}

// NewActivityHandler creates a new instance of ActivityHandler.
func NewActivityHandler(activityService *services.ActivityService) *ActivityHandler {
	return &ActivityHandler{Service: activityService}
}

// GET /activities?limit=
func (h *ActivityHandler) GetRecentActivitiesHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid limit"})
			return
		}
		limit = parsed
	}

	activities, err := h.Service.GetRecentActivities(r.Context(), userID, limit)
	if err != nil {
		logrus.WithError(err).Error("Failed to get activities")
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, activities)
}
