package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"onegoal/internal/services"
)

// GoalHandler handles HTTP requests related to the single active goal and its
// history.
type GoalHandler struct {
	Service  *services.GoalService
	Activity *services.ActivityService
}

// NewGoalHandler creates a new instance of GoalHandler.
func NewGoalHandler(goalService *services.GoalService, activityService *services.ActivityService) *GoalHandler {
	return &GoalHandler{
		Service:  goalService,
		Activity: activityService,
	}
}

// POST /goals
func (h *GoalHandler) CreateGoalHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req services.CreateGoalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logrus.WithError(err).Warn("Invalid request payload during goal creation")
		respondBadPayload(w)
		return
	}
	defer r.Body.Close()

	goal, err := h.Service.CreateGoal(r.Context(), userID, req)
	if err != nil {
		logrus.WithError(err).Warn("Failed to create goal")
		respondError(w, err)
		return
	}

	_ = h.Activity.LogActivity(r.Context(), userID, "goal_created", goal.ID, fmt.Sprintf("Created goal: %s", goal.Title))

	logrus.WithFields(logrus.Fields{
		"userID": userID.Hex(),
		"goalID": goal.ID.Hex(),
	}).Info("Goal successfully created")
	respondJSON(w, http.StatusCreated, goal)
}

// GET /goals/active
func (h *GoalHandler) GetActiveGoalHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	goal, err := h.Service.GetActiveGoal(r.Context(), userID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, goal)
}

// GET /goals?status=
func (h *GoalHandler) GetGoalHistoryHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	status := r.URL.Query().Get("status")
	goals, err := h.Service.GetGoalHistory(r.Context(), userID, status)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, goals)
}

// PUT /goals/{id}
func (h *GoalHandler) UpdateGoalHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	goalID := mux.Vars(r)["id"]

	var req services.UpdateGoalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logrus.WithError(err).Warn("Invalid request payload during goal update")
		respondBadPayload(w)
		return
	}
	defer r.Body.Close()

	goal, err := h.Service.UpdateGoal(r.Context(), userID, goalID, req)
	if err != nil {
		logrus.WithError(err).Warn("Failed to update goal")
		respondError(w, err)
		return
	}

	logrus.WithField("goalID", goalID).Info("Goal updated")
	respondJSON(w, http.StatusOK, goal)
}

// POST /goals/{id}/complete
func (h *GoalHandler) CompleteGoalHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	goalID := mux.Vars(r)["id"]

	goal, err := h.Service.CompleteGoal(r.Context(), userID, goalID)
	if err != nil {
		logrus.WithError(err).Warn("Failed to complete goal")
		respondError(w, err)
		return
	}

	_ = h.Activity.LogActivity(r.Context(), userID, "goal_completed", goal.ID, fmt.Sprintf("Completed goal: %s", goal.Title))

	logrus.WithField("goalID", goalID).Info("Goal completed")
	respondJSON(w, http.StatusOK, goal)
}

// POST /goals/{id}/abandon
func (h *GoalHandler) AbandonGoalHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	goalID := mux.Vars(r)["id"]

	goal, err := h.Service.AbandonGoal(r.Context(), userID, goalID)
	if err != nil {
		logrus.WithError(err).Warn("Failed to abandon goal")
		respondError(w, err)
		return
	}

	_ = h.Activity.LogActivity(r.Context(), userID, "goal_abandoned", goal.ID, fmt.Sprintf("Abandoned goal: %s", goal.Title))

	logrus.WithField("goalID", goalID).Info("Goal abandoned")
	respondJSON(w, http.StatusOK, goal)
}

// DELETE /goals/{id}
func (h *GoalHandler) DeleteGoalHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	goalID := mux.Vars(r)["id"]

	if err := h.Service.DeleteGoal(r.Context(), userID, goalID); err != nil {
		logrus.WithError(err).Warn("Failed to delete goal")
		respondError(w, err)
		return
	}

	logrus.WithField("goalID", goalID).Info("Goal deleted")
	respondJSON(w, http.StatusOK, map[string]string{"message": "goal deleted"})
}
