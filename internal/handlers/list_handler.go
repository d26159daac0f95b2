package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"onegoal/internal/services"
)

// ListHandler handles HTTP requests for the to-do and not-to-do lists.
type ListHandler struct {
	Service *services.ListService
}

// NewListHandler creates a new instance of ListHandler.
func NewListHandler(listService *services.ListService) *ListHandler {
	return &ListHandler{Service: listService}
}

// GET /lists
func (h *ListHandler) GetListsHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	lists, err := h.Service.GetLists(r.Context(), userID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, lists)
}

// GET /lists/{kind}
func (h *ListHandler) GetListHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	kind := mux.Vars(r)["kind"]

	items, err := h.Service.GetList(r.Context(), userID, kind)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, items)
}

// POST /lists/{kind}/items
func (h *ListHandler) AddItemHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	kind := mux.Vars(r)["kind"]

	var req struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logrus.WithError(err).Warn("Invalid request payload during item add")
		respondBadPayload(w)
		return
	}
	defer r.Body.Close()

	item, err := h.Service.AddItem(r.Context(), userID, kind, req.Text)
	if err != nil {
		logrus.WithError(err).Warn("Failed to add list item")
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, item)
}

// PUT /lists/{kind}/items/{itemId}
func (h *ListHandler) UpdateItemHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	vars := mux.Vars(r)

	var req struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadPayload(w)
		return
	}
	defer r.Body.Close()

	item, err := h.Service.UpdateItemText(r.Context(), userID, vars["kind"], vars["itemId"], req.Text)
	if err != nil {
		logrus.WithError(err).Warn("Failed to update list item")
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, item)
}

// POST /lists/{kind}/items/{itemId}/toggle
func (h *ListHandler) ToggleItemHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	vars := mux.Vars(r)

	item, err := h.Service.ToggleItem(r.Context(), userID, vars["kind"], vars["itemId"])
	if err != nil {
		logrus.WithError(err).Warn("Failed to toggle list item")
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, item)
}

// DELETE /lists/{kind}/items/{itemId}
func (h *ListHandler) DeleteItemHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	vars := mux.Vars(r)

	if err := h.Service.DeleteItem(r.Context(), userID, vars["kind"], vars["itemId"]); err != nil {
		logrus.WithError(err).Warn("Failed to delete list item")
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "item deleted"})
}

// DELETE /lists/{kind}/completed
func (h *ListHandler) ClearCompletedHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	kind := mux.Vars(r)["kind"]

	items, err := h.Service.ClearCompleted(r.Context(), userID, kind)
	if err != nil {
		logrus.WithError(err).Warn("Failed to clear completed items")
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, items)
}
