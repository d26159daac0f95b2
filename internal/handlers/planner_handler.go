package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"onegoal/internal/services"
)

// PlannerHandler handles HTTP requests for the daily time blocks.
type PlannerHandler struct {
	Service *services.PlannerService
}

// NewPlannerHandler creates a new instance of PlannerHandler.
func NewPlannerHandler(plannerService *services.PlannerService) *PlannerHandler {
	return &PlannerHandler{Service: plannerService}
}

// GET /planner/blocks?date=YYYY-MM-DD
func (h *PlannerHandler) ListBlocksHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	date := r.URL.Query().Get("date")
	blocks, err := h.Service.ListBlocks(r.Context(), userID, date)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, blocks)
}

// POST /planner/blocks
func (h *PlannerHandler) AddBlockHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req services.TimeBlockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logrus.WithError(err).Warn("Invalid request payload during block add")
		respondBadPayload(w)
		return
	}
	defer r.Body.Close()

	block, err := h.Service.AddBlock(r.Context(), userID, req)
	if err != nil {
		logrus.WithError(err).Warn("Failed to add time block")
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, block)
}

// PUT /planner/blocks/{id}
func (h *PlannerHandler) UpdateBlockHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	blockID := mux.Vars(r)["id"]

	var req services.TimeBlockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadPayload(w)
		return
	}
	defer r.Body.Close()

	block, err := h.Service.UpdateBlock(r.Context(), userID, blockID, req)
	if err != nil {
		logrus.WithError(err).Warn("Failed to update time block")
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, block)
}

// POST /planner/blocks/{id}/toggle
func (h *PlannerHandler) ToggleBlockHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	blockID := mux.Vars(r)["id"]

	block, err := h.Service.ToggleBlock(r.Context(), userID, blockID)
	if err != nil {
		logrus.WithError(err).Warn("Failed to toggle time block")
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, block)
}

// DELETE /planner/blocks/{id}
func (h *PlannerHandler) DeleteBlockHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	blockID := mux.Vars(r)["id"]

	if err := h.Service.DeleteBlock(r.Context(), userID, blockID); err != nil {
		logrus.WithError(err).Warn("Failed to delete time block")
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "block deleted"})
}
