package services

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"onegoal/internal/models"
	"onegoal/internal/validation"
	"onegoal/pkg/apperrors"
)

// FinanceStore is the slice of the finance repository the service needs.
type FinanceStore interface {
	Get(ctx context.Context, userID primitive.ObjectID) (*models.Finance, error)
	SetTransactions(ctx context.Context, userID primitive.ObjectID, transactions []models.Transaction) error
}

// FinanceService owns the user's income and expense log.
type FinanceService struct {
	repo FinanceStore
}

// NewFinanceService creates a new instance of FinanceService.
func NewFinanceService(repo FinanceStore) *FinanceService {
	return &FinanceService{repo: repo}
}

// TransactionRequest is the payload for adding or editing a transaction.
type TransactionRequest struct {
	Type     string  `json:"type" validate:"required,oneof=income expense"`
	Amount   float64 `json:"amount" validate:"required,gt=0"`
	Category string  `json:"category" validate:"required,max=100"`
	Note     string  `json:"note" validate:"max=500"`
	Date     string  `json:"date" validate:"required,dateymd"`
}

// TransactionFilter narrows List and GetSummary. Zero values mean no bound.
type TransactionFilter struct {
	From     string
	To       string
	Category string
	Type     string
}

// AddTransaction appends a money movement.
func (s *FinanceService) AddTransaction(ctx context.Context, userID primitive.ObjectID, req TransactionRequest) (*models.Transaction, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	finance, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	tx := models.Transaction{
		ID:        uuid.NewString(),
		Type:      req.Type,
		Amount:    req.Amount,
		Category:  req.Category,
		Note:      req.Note,
		Date:      req.Date,
		CreatedAt: time.Now(),
	}
	transactions := append(finance.Transactions, tx)

	if err := s.repo.SetTransactions(ctx, userID, transactions); err != nil {
		logrus.WithError(err).Error("Failed to add transaction")
		return nil, apperrors.Wrap(apperrors.CodeOperationFailed, err, "failed to add transaction")
	}

	logrus.WithFields(logrus.Fields{
		"user_id": userID.Hex(),
		"type":    tx.Type,
		"amount":  tx.Amount,
	}).Info("Transaction added")
	return &tx, nil
}

// UpdateTransaction rewrites a transaction in place, keeping its id and
// creation time.
func (s *FinanceService) UpdateTransaction(ctx context.Context, userID primitive.ObjectID, txID string, req TransactionRequest) (*models.Transaction, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	finance, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i := range finance.Transactions {
		if finance.Transactions[i].ID == txID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, apperrors.New(apperrors.CodeNotFound, "transaction %s not found", txID)
	}

	finance.Transactions[idx].Type = req.Type
	finance.Transactions[idx].Amount = req.Amount
	finance.Transactions[idx].Category = req.Category
	finance.Transactions[idx].Note = req.Note
	finance.Transactions[idx].Date = req.Date

	if err := s.repo.SetTransactions(ctx, userID, finance.Transactions); err != nil {
		logrus.WithError(err).Error("Failed to update transaction")
		return nil, apperrors.Wrap(apperrors.CodeOperationFailed, err, "failed to update transaction")
	}
	return &finance.Transactions[idx], nil
}

// DeleteTransaction removes a transaction.
func (s *FinanceService) DeleteTransaction(ctx context.Context, userID primitive.ObjectID, txID string) error {
	finance, err := s.load(ctx, userID)
	if err != nil {
		return err
	}

	kept := make([]models.Transaction, 0, len(finance.Transactions))
	found := false
	for _, tx := range finance.Transactions {
		if tx.ID == txID {
			found = true
			continue
		}
		kept = append(kept, tx)
	}
	if !found {
		return apperrors.New(apperrors.CodeNotFound, "transaction %s not found", txID)
	}

	if err := s.repo.SetTransactions(ctx, userID, kept); err != nil {
		logrus.WithError(err).Error("Failed to delete transaction")
		return apperrors.Wrap(apperrors.CodeOperationFailed, err, "failed to delete transaction")
	}
	return nil
}

// ListTransactions returns transactions matching the filter, newest date
// first.
func (s *FinanceService) ListTransactions(ctx context.Context, userID primitive.ObjectID, filter TransactionFilter) ([]models.Transaction, error) {
	matched, err := s.filtered(ctx, userID, filter)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(matched, func(i, j int) bool {
		if matched[i].Date != matched[j].Date {
			return matched[i].Date > matched[j].Date
		}
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	return matched, nil
}

// GetSummary derives totals, the per-category expense breakdown and the
// per-day spending trend over the filtered range.
func (s *FinanceService) GetSummary(ctx context.Context, userID primitive.ObjectID, filter TransactionFilter) (*models.FinanceSummary, error) {
	matched, err := s.filtered(ctx, userID, filter)
	if err != nil {
		return nil, err
	}

	summary := &models.FinanceSummary{Count: len(matched)}
	byCategory := map[string]float64{}
	byDay := map[string]float64{}

	for _, tx := range matched {
		switch tx.Type {
		case models.TransactionIncome:
			summary.Income += tx.Amount
		case models.TransactionExpense:
			summary.Expenses += tx.Amount
			byCategory[tx.Category] += tx.Amount
			byDay[tx.Date] += tx.Amount
		}
	}
	summary.Balance = summary.Income - summary.Expenses

	for category, total := range byCategory {
		summary.ByCategory = append(summary.ByCategory, models.CategoryTotal{Category: category, Total: total})
	}
	sort.Slice(summary.ByCategory, func(i, j int) bool {
		if summary.ByCategory[i].Total != summary.ByCategory[j].Total {
			return summary.ByCategory[i].Total > summary.ByCategory[j].Total
		}
		return summary.ByCategory[i].Category < summary.ByCategory[j].Category
	})

	for date, total := range byDay {
		summary.Trend = append(summary.Trend, models.DailyTotal{Date: date, Total: total})
	}
	sort.Slice(summary.Trend, func(i, j int) bool {
		return summary.Trend[i].Date < summary.Trend[j].Date
	})

	return summary, nil
}

// filtered loads the transaction log and applies the filter in memory.
func (s *FinanceService) filtered(ctx context.Context, userID primitive.ObjectID, filter TransactionFilter) ([]models.Transaction, error) {
	if filter.From != "" {
		if _, err := validation.Date(filter.From); err != nil {
			return nil, err
		}
	}
	if filter.To != "" {
		if _, err := validation.Date(filter.To); err != nil {
			return nil, err
		}
	}
	if filter.Type != "" && !models.AllowedTransactionTypes[filter.Type] {
		return nil, apperrors.New(apperrors.CodeValidationFailed, "unknown transaction type %q", filter.Type)
	}

	finance, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	matched := make([]models.Transaction, 0, len(finance.Transactions))
	for _, tx := range finance.Transactions {
		if filter.From != "" && tx.Date < filter.From {
			continue
		}
		if filter.To != "" && tx.Date > filter.To {
			continue
		}
		if filter.Category != "" && tx.Category != filter.Category {
			continue
		}
		if filter.Type != "" && tx.Type != filter.Type {
			continue
		}
		matched = append(matched, tx)
	}
	return matched, nil
}

func (s *FinanceService) load(ctx context.Context, userID primitive.ObjectID) (*models.Finance, error) {
	finance, err := s.repo.Get(ctx, userID)
	if err != nil {
		logrus.WithError(err).Error("Failed to get finance record")
		return nil, apperrors.Wrap(apperrors.CodeOperationFailed, err, "failed to get finance record")
	}
	if finance == nil {
		finance = &models.Finance{
			UserID:       userID,
			Transactions: []models.Transaction{},
		}
	}
	return finance, nil
}
