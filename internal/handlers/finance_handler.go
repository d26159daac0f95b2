package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"onegoal/internal/services"
)

// FinanceHandler handles HTTP requests for the personal finance tracker.
type FinanceHandler struct {
	Service  *services.FinanceService
	Activity *services.ActivityService
}

// NewFinanceHandler creates a new instance of FinanceHandler.
func NewFinanceHandler(financeService *services.FinanceService, activityService *services.ActivityService) *FinanceHandler {
	return &FinanceHandler{
		Service:  financeService,
		Activity: activityService,
	}
}

func filterFromQuery(r *http.Request) services.TransactionFilter {
	q := r.URL.Query()
	return services.TransactionFilter{
		From:     q.Get("from"),
		To:       q.Get("to"),
		Category: q.Get("category"),
		Type:     q.Get("type"),
	}
}

// GET /finance/transactions?from=&to=&category=&type=
func (h *FinanceHandler) ListTransactionsHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	transactions, err := h.Service.ListTransactions(r.Context(), userID, filterFromQuery(r))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, transactions)
}

// POST /finance/transactions
func (h *FinanceHandler) AddTransactionHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req services.TransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logrus.WithError(err).Warn("Invalid request payload during transaction add")
		respondBadPayload(w)
		return
	}
	defer r.Body.Close()

	tx, err := h.Service.AddTransaction(r.Context(), userID, req)
	if err != nil {
		logrus.WithError(err).Warn("Failed to add transaction")
		respondError(w, err)
		return
	}

	_ = h.Activity.LogActivity(r.Context(), userID, "transaction_added", userID, fmt.Sprintf("Recorded %s of %.2f in %s", tx.Type, tx.Amount, tx.Category))

	respondJSON(w, http.StatusCreated, tx)
}

// PUT /finance/transactions/{id}
func (h *FinanceHandler) UpdateTransactionHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	txID := mux.Vars(r)["id"]

	var req services.TransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadPayload(w)
		return
	}
	defer r.Body.Close()

	tx, err := h.Service.UpdateTransaction(r.Context(), userID, txID, req)
	if err != nil {
		logrus.WithError(err).Warn("Failed to update transaction")
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, tx)
}

// DELETE /finance/transactions/{id}
func (h *FinanceHandler) DeleteTransactionHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	txID := mux.Vars(r)["id"]

	if err := h.Service.DeleteTransaction(r.Context(), userID, txID); err != nil {
		logrus.WithError(err).Warn("Failed to delete transaction")
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "transaction deleted"})
}

// GET /finance/summary?from=&to=&category=&type=
func (h *FinanceHandler) GetSummaryHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	summary, err := h.Service.GetSummary(r.Context(), userID, filterFromQuery(r))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, summary)
}
