package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"onegoal/internal/services"
)

// BoardHandler handles HTTP requests for the resources and sticky-notes board.
type BoardHandler struct {
	Service *services.BoardService
}

// NewBoardHandler creates a new instance of BoardHandler.
func NewBoardHandler(boardService *services.BoardService) *BoardHandler {
	return &BoardHandler{Service: boardService}
}

// GET /board
func (h *BoardHandler) GetBoardHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	board, err := h.Service.GetBoard(r.Context(), userID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, board)
}

// POST /board/resources
func (h *BoardHandler) AddResourceHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req services.ResourceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logrus.WithError(err).Warn("Invalid request payload during resource add")
		respondBadPayload(w)
		return
	}
	defer r.Body.Close()

	resource, err := h.Service.AddResource(r.Context(), userID, req)
	if err != nil {
		logrus.WithError(err).Warn("Failed to add resource")
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, resource)
}

// PUT /board/resources/{id}
func (h *BoardHandler) UpdateResourceHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	resourceID := mux.Vars(r)["id"]

	var req services.ResourceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadPayload(w)
		return
	}
	defer r.Body.Close()

	resource, err := h.Service.UpdateResource(r.Context(), userID, resourceID, req)
	if err != nil {
		logrus.WithError(err).Warn("Failed to update resource")
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, resource)
}

// DELETE /board/resources/{id}
func (h *BoardHandler) DeleteResourceHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	resourceID := mux.Vars(r)["id"]

	if err := h.Service.DeleteResource(r.Context(), userID, resourceID); err != nil {
		logrus.WithError(err).Warn("Failed to delete resource")
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "resource deleted"})
}

// POST /board/notes
func (h *BoardHandler) AddNoteHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req services.NoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logrus.WithError(err).Warn("Invalid request payload during note add")
		respondBadPayload(w)
		return
	}
	defer r.Body.Close()

	note, err := h.Service.AddNote(r.Context(), userID, req)
	if err != nil {
		logrus.WithError(err).Warn("Failed to add note")
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, note)
}

// PUT /board/notes/{id}
func (h *BoardHandler) UpdateNoteHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	noteID := mux.Vars(r)["id"]

	var req services.NoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadPayload(w)
		return
	}
	defer r.Body.Close()

	note, err := h.Service.UpdateNote(r.Context(), userID, noteID, req)
	if err != nil {
		logrus.WithError(err).Warn("Failed to update note")
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, note)
}

// DELETE /board/notes/{id}
func (h *BoardHandler) DeleteNoteHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	noteID := mux.Vars(r)["id"]

	if err := h.Service.DeleteNote(r.Context(), userID, noteID); err != nil {
		logrus.WithError(err).Warn("Failed to delete note")
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "note deleted"})
}
