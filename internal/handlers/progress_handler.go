package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"onegoal/internal/services"
)

// ProgressHandler handles HTTP requests for the daily progress records:
// satisfaction, notes, stopwatch sessions and routine counts.
type ProgressHandler struct {
	Service  *services.ProgressService
	Activity *services.ActivityService
}

// NewProgressHandler creates a new instance of ProgressHandler.
func NewProgressHandler(progressService *services.ProgressService, activityService *services.ActivityService) *ProgressHandler {
	return &ProgressHandler{
		Service:  progressService,
		Activity: activityService,
	}
}

// GET /progress/{date}
func (h *ProgressHandler) GetDayHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	date := mux.Vars(r)["date"]

	progress, err := h.Service.GetByDate(r.Context(), userID, date)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, progress)
}

// GET /progress?from=YYYY-MM-DD&to=YYYY-MM-DD
func (h *ProgressHandler) GetRangeHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	from := r.URL.Query().Get("from")
	to := r.URL.Query().Get("to")

	records, err := h.Service.GetRange(r.Context(), userID, from, to)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, records)
}

// PUT /progress/{date}/satisfaction
func (h *ProgressHandler) SetSatisfactionHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	date := mux.Vars(r)["date"]

	var req struct {
		Satisfaction string `json:"satisfaction"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadPayload(w)
		return
	}
	defer r.Body.Close()

	progress, err := h.Service.SetSatisfaction(r.Context(), userID, date, req.Satisfaction)
	if err != nil {
		logrus.WithError(err).Warn("Failed to set satisfaction")
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, progress)
}

// PUT /progress/{date}/note
func (h *ProgressHandler) SetNoteHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	date := mux.Vars(r)["date"]

	var req struct {
		Note string `json:"note"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadPayload(w)
		return
	}
	defer r.Body.Close()

	progress, err := h.Service.SetNote(r.Context(), userID, date, req.Note)
	if err != nil {
		logrus.WithError(err).Warn("Failed to set note")
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, progress)
}

// POST /progress/{date}/sessions
func (h *ProgressHandler) AddSessionHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	date := mux.Vars(r)["date"]

	var req services.AddSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logrus.WithError(err).Warn("Invalid request payload during session add")
		respondBadPayload(w)
		return
	}
	defer r.Body.Close()

	progress, err := h.Service.AddSession(r.Context(), userID, date, req)
	if err != nil {
		logrus.WithError(err).Warn("Failed to add session")
		respondError(w, err)
		return
	}

	_ = h.Activity.LogActivity(r.Context(), userID, "session_added", progress.ID, fmt.Sprintf("Logged a focus session on %s", date))

	logrus.WithFields(logrus.Fields{
		"userID": userID.Hex(),
		"date":   date,
	}).Info("Session successfully added")
	respondJSON(w, http.StatusCreated, progress)
}

// PUT /progress/{date}/sessions/{sessionId}
func (h *ProgressHandler) UpdateSessionHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	vars := mux.Vars(r)

	var req services.UpdateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadPayload(w)
		return
	}
	defer r.Body.Close()

	progress, err := h.Service.UpdateSession(r.Context(), userID, vars["date"], vars["sessionId"], req)
	if err != nil {
		logrus.WithError(err).Warn("Failed to update session")
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, progress)
}

// DELETE /progress/{date}/sessions/{sessionId}
func (h *ProgressHandler) DeleteSessionHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	vars := mux.Vars(r)

	progress, err := h.Service.DeleteSession(r.Context(), userID, vars["date"], vars["sessionId"])
	if err != nil {
		logrus.WithError(err).Warn("Failed to delete session")
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, progress)
}

// PUT /progress/{date}/routines/{kind}
func (h *ProgressHandler) SetRoutineCountHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	vars := mux.Vars(r)

	var req struct {
		Count int `json:"count"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadPayload(w)
		return
	}
	defer r.Body.Close()

	progress, err := h.Service.SetRoutineCount(r.Context(), userID, vars["date"], vars["kind"], req.Count)
	if err != nil {
		logrus.WithError(err).Warn("Failed to set routine count")
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, progress)
}

// POST /progress/{date}/routines/{kind}/increment
func (h *ProgressHandler) IncrementRoutineHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	vars := mux.Vars(r)

	// Empty bodies are fine here; the delta then defaults to 1.
	var req struct {
		Delta int `json:"delta"`
	}
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&req)
		defer r.Body.Close()
	}

	progress, err := h.Service.IncrementRoutine(r.Context(), userID, vars["date"], vars["kind"], req.Delta)
	if err != nil {
		logrus.WithError(err).Warn("Failed to increment routine")
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, progress)
}
