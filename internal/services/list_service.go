package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"onegoal/internal/models"
	"onegoal/internal/validation"
	"onegoal/pkg/apperrors"
)

// ListStore is the slice of the list repository the service needs.
type ListStore interface {
	Get(ctx context.Context, userID primitive.ObjectID) (*models.UserLists, error)
	SetItems(ctx context.Context, userID primitive.ObjectID, kind string, items []models.ListItem) error
}

// ListService owns the to-do and the not-to-do list. Both share one shape;
// the kind picks which one an operation touches.
type ListService struct {
	repo ListStore
}

// NewListService creates a new instance of ListService.
func NewListService(repo ListStore) *ListService {
	return &ListService{repo: repo}
}

// GetLists returns both lists, empty when the user never wrote any.
func (s *ListService) GetLists(ctx context.Context, userID primitive.ObjectID) (*models.UserLists, error) {
	lists, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	return lists, nil
}

// GetList returns one list by kind.
func (s *ListService) GetList(ctx context.Context, userID primitive.ObjectID, kind string) ([]models.ListItem, error) {
	if err := checkKind(kind); err != nil {
		return nil, err
	}

	lists, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	return lists.Items(kind), nil
}

// AddItem appends a new entry to a list.
func (s *ListService) AddItem(ctx context.Context, userID primitive.ObjectID, kind, text string) (*models.ListItem, error) {
	if err := checkKind(kind); err != nil {
		return nil, err
	}
	if err := validation.Var(text, "required,max=500"); err != nil {
		return nil, apperrors.New(apperrors.CodeValidationFailed, "item text is required and at most 500 characters")
	}

	lists, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	item := models.ListItem{
		ID:        uuid.NewString(),
		Text:      text,
		CreatedAt: time.Now(),
	}
	items := append(lists.Items(kind), item)

	if err := s.repo.SetItems(ctx, userID, kind, items); err != nil {
		logrus.WithError(err).Error("Failed to add list item")
		return nil, apperrors.Wrap(apperrors.CodeOperationFailed, err, "failed to add item")
	}
	return &item, nil
}

// UpdateItemText rewrites an entry's text.
func (s *ListService) UpdateItemText(ctx context.Context, userID primitive.ObjectID, kind, itemID, text string) (*models.ListItem, error) {
	if err := checkKind(kind); err != nil {
		return nil, err
	}
	if err := validation.Var(text, "required,max=500"); err != nil {
		return nil, apperrors.New(apperrors.CodeValidationFailed, "item text is required and at most 500 characters")
	}

	lists, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	items := lists.Items(kind)
	idx := indexOfItem(items, itemID)
	if idx < 0 {
		return nil, apperrors.New(apperrors.CodeNotFound, "item %s not found", itemID)
	}

	items[idx].Text = text
	if err := s.repo.SetItems(ctx, userID, kind, items); err != nil {
		logrus.WithError(err).Error("Failed to update list item")
		return nil, apperrors.Wrap(apperrors.CodeOperationFailed, err, "failed to update item")
	}
	return &items[idx], nil
}

// ToggleItem flips an entry's done flag, stamping or clearing completed_at.
func (s *ListService) ToggleItem(ctx context.Context, userID primitive.ObjectID, kind, itemID string) (*models.ListItem, error) {
	if err := checkKind(kind); err != nil {
		return nil, err
	}

	lists, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	items := lists.Items(kind)
	idx := indexOfItem(items, itemID)
	if idx < 0 {
		return nil, apperrors.New(apperrors.CodeNotFound, "item %s not found", itemID)
	}

	items[idx].Done = !items[idx].Done
	if items[idx].Done {
		now := time.Now()
		items[idx].CompletedAt = &now
	} else {
		items[idx].CompletedAt = nil
	}

	if err := s.repo.SetItems(ctx, userID, kind, items); err != nil {
		logrus.WithError(err).Error("Failed to toggle list item")
		return nil, apperrors.Wrap(apperrors.CodeOperationFailed, err, "failed to toggle item")
	}
	return &items[idx], nil
}

// DeleteItem removes an entry from a list.
func (s *ListService) DeleteItem(ctx context.Context, userID primitive.ObjectID, kind, itemID string) error {
	if err := checkKind(kind); err != nil {
		return err
	}

	lists, err := s.load(ctx, userID)
	if err != nil {
		return err
	}

	items := lists.Items(kind)
	idx := indexOfItem(items, itemID)
	if idx < 0 {
		return apperrors.New(apperrors.CodeNotFound, "item %s not found", itemID)
	}

	items = append(items[:idx], items[idx+1:]...)
	if err := s.repo.SetItems(ctx, userID, kind, items); err != nil {
		logrus.WithError(err).Error("Failed to delete list item")
		return apperrors.Wrap(apperrors.CodeOperationFailed, err, "failed to delete item")
	}
	return nil
}

// ClearCompleted drops every done entry from a list and returns what's left.
func (s *ListService) ClearCompleted(ctx context.Context, userID primitive.ObjectID, kind string) ([]models.ListItem, error) {
	if err := checkKind(kind); err != nil {
		return nil, err
	}

	lists, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	items := lists.Items(kind)
	kept := make([]models.ListItem, 0, len(items))
	for _, item := range items {
		if !item.Done {
			kept = append(kept, item)
		}
	}

	if err := s.repo.SetItems(ctx, userID, kind, kept); err != nil {
		logrus.WithError(err).Error("Failed to clear completed items")
		return nil, apperrors.Wrap(apperrors.CodeOperationFailed, err, "failed to clear completed items")
	}
	return kept, nil
}

func (s *ListService) load(ctx context.Context, userID primitive.ObjectID) (*models.UserLists, error) {
	lists, err := s.repo.Get(ctx, userID)
	if err != nil {
		logrus.WithError(err).Error("Failed to get lists")
		return nil, apperrors.Wrap(apperrors.CodeOperationFailed, err, "failed to get lists")
	}
	if lists == nil {
		lists = &models.UserLists{
			UserID:  userID,
			Todo:    []models.ListItem{},
			NotTodo: []models.ListItem{},
		}
	}
	return lists, nil
}

func checkKind(kind string) error {
	if !models.AllowedListKinds[kind] {
		return apperrors.New(apperrors.CodeValidationFailed, "unknown list kind %q", kind)
	}
	return nil
}

func indexOfItem(items []models.ListItem, id string) int {
	for i := range items {
		if items[i].ID == id {
			return i
		}
	}
	return -1
}
