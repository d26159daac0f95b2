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

// BoardStore is the slice of the board repository the service needs.
type BoardStore interface {
	Get(ctx context.Context, userID primitive.ObjectID) (*models.Board, error)
	SetResources(ctx context.Context, userID primitive.ObjectID, resources []models.Resource) error
	SetNotes(ctx context.Context, userID primitive.ObjectID, notes []models.StickyNote) error
}

// BoardService owns the user's saved resources and sticky notes.
type BoardService struct {
	repo BoardStore
}

// NewBoardService creates a new instance of BoardService.
func NewBoardService(repo BoardStore) *BoardService {
	return &BoardService{repo: repo}
}

// ResourceRequest is the payload for adding or editing a resource.
type ResourceRequest struct {
	Title    string `json:"title" validate:"required,max=200"`
	URL      string `json:"url" validate:"omitempty,url"`
	Category string `json:"category" validate:"max=100"`
	Note     string `json:"note" validate:"max=2000"`
}

// NoteRequest is the payload for adding or editing a sticky note.
type NoteRequest struct {
	Text   string `json:"text" validate:"required,max=1000"`
	Color  string `json:"color" validate:"omitempty,hexcolor"`
	Pinned bool   `json:"pinned"`
}

// GetBoard returns the whole board, empty when the user never wrote to it.
func (s *BoardService) GetBoard(ctx context.Context, userID primitive.ObjectID) (*models.Board, error) {
	return s.load(ctx, userID)
}

// AddResource appends a saved reference to the board.
func (s *BoardService) AddResource(ctx context.Context, userID primitive.ObjectID, req ResourceRequest) (*models.Resource, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	board, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	resource := models.Resource{
		ID:        uuid.NewString(),
		Title:     req.Title,
		URL:       req.URL,
		Category:  req.Category,
		Note:      req.Note,
		CreatedAt: time.Now(),
	}
	resources := append(board.Resources, resource)

	if err := s.repo.SetResources(ctx, userID, resources); err != nil {
		logrus.WithError(err).Error("Failed to add resource")
		return nil, apperrors.Wrap(apperrors.CodeOperationFailed, err, "failed to add resource")
	}
	return &resource, nil
}

// UpdateResource rewrites a resource in place, keeping its id and creation
// time.
func (s *BoardService) UpdateResource(ctx context.Context, userID primitive.ObjectID, resourceID string, req ResourceRequest) (*models.Resource, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	board, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i := range board.Resources {
		if board.Resources[i].ID == resourceID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, apperrors.New(apperrors.CodeNotFound, "resource %s not found", resourceID)
	}

	board.Resources[idx].Title = req.Title
	board.Resources[idx].URL = req.URL
	board.Resources[idx].Category = req.Category
	board.Resources[idx].Note = req.Note

	if err := s.repo.SetResources(ctx, userID, board.Resources); err != nil {
		logrus.WithError(err).Error("Failed to update resource")
		return nil, apperrors.Wrap(apperrors.CodeOperationFailed, err, "failed to update resource")
	}
	return &board.Resources[idx], nil
}

// DeleteResource removes a resource from the board.
func (s *BoardService) DeleteResource(ctx context.Context, userID primitive.ObjectID, resourceID string) error {
	board, err := s.load(ctx, userID)
	if err != nil {
		return err
	}

	kept := make([]models.Resource, 0, len(board.Resources))
	found := false
	for _, resource := range board.Resources {
		if resource.ID == resourceID {
			found = true
			continue
		}
		kept = append(kept, resource)
	}
	if !found {
		return apperrors.New(apperrors.CodeNotFound, "resource %s not found", resourceID)
	}

	if err := s.repo.SetResources(ctx, userID, kept); err != nil {
		logrus.WithError(err).Error("Failed to delete resource")
		return apperrors.Wrap(apperrors.CodeOperationFailed, err, "failed to delete resource")
	}
	return nil
}

// AddNote sticks a new note on the board.
func (s *BoardService) AddNote(ctx context.Context, userID primitive.ObjectID, req NoteRequest) (*models.StickyNote, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	board, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	note := models.StickyNote{
		ID:        uuid.NewString(),
		Text:      req.Text,
		Color:     req.Color,
		Pinned:    req.Pinned,
		CreatedAt: now,
		UpdatedAt: now,
	}
	notes := append(board.Notes, note)

	if err := s.repo.SetNotes(ctx, userID, notes); err != nil {
		logrus.WithError(err).Error("Failed to add note")
		return nil, apperrors.Wrap(apperrors.CodeOperationFailed, err, "failed to add note")
	}
	return &note, nil
}

// UpdateNote rewrites a sticky note in place.
func (s *BoardService) UpdateNote(ctx context.Context, userID primitive.ObjectID, noteID string, req NoteRequest) (*models.StickyNote, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	board, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i := range board.Notes {
		if board.Notes[i].ID == noteID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, apperrors.New(apperrors.CodeNotFound, "note %s not found", noteID)
	}

	board.Notes[idx].Text = req.Text
	board.Notes[idx].Color = req.Color
	board.Notes[idx].Pinned = req.Pinned
	board.Notes[idx].UpdatedAt = time.Now()

	if err := s.repo.SetNotes(ctx, userID, board.Notes); err != nil {
		logrus.WithError(err).Error("Failed to update note")
		return nil, apperrors.Wrap(apperrors.CodeOperationFailed, err, "failed to update note")
	}
	return &board.Notes[idx], nil
}

// DeleteNote removes a sticky note from the board.
func (s *BoardService) DeleteNote(ctx context.Context, userID primitive.ObjectID, noteID string) error {
	board, err := s.load(ctx, userID)
	if err != nil {
		return err
	}

	kept := make([]models.StickyNote, 0, len(board.Notes))
	found := false
	for _, note := range board.Notes {
		if note.ID == noteID {
			found = true
			continue
		}
		kept = append(kept, note)
	}
	if !found {
		return apperrors.New(apperrors.CodeNotFound, "note %s not found", noteID)
	}

	if err := s.repo.SetNotes(ctx, userID, kept); err != nil {
		logrus.WithError(err).Error("Failed to delete note")
		return apperrors.Wrap(apperrors.CodeOperationFailed, err, "failed to delete note")
	}
	return nil
}

func (s *BoardService) load(ctx context.Context, userID primitive.ObjectID) (*models.Board, error) {
	board, err := s.repo.Get(ctx, userID)
	if err != nil {
		logrus.WithError(err).Error("Failed to get board")
		return nil, apperrors.Wrap(apperrors.CodeOperationFailed, err, "failed to get board")
	}
	if board == nil {
		board = &models.Board{
			UserID:    userID,
			Resources: []models.Resource{},
			Notes:     []models.StickyNote{},
		}
	}
	return board, nil
}
