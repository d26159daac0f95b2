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

// PlannerStore is the slice of the planner repository the service needs.
type PlannerStore interface {
	Get(ctx context.Context, userID primitive.ObjectID) (*models.Planner, error)
	SetBlocks(ctx context.Context, userID primitive.ObjectID, blocks []models.TimeBlock) error
}

// PlannerService owns the user's planned time blocks.
type PlannerService struct {
	repo PlannerStore
}

// NewPlannerService creates a new instance of PlannerService.
func NewPlannerService(repo PlannerStore) *PlannerService {
	return &PlannerService{repo: repo}
}

// TimeBlockRequest is the payload for adding or editing a time block.
type TimeBlockRequest struct {
	Date     string `json:"date" validate:"required,dateymd"`
	Start    string `json:"start" validate:"required,clockhm"`
	End      string `json:"end" validate:"required,clockhm"`
	Title    string `json:"title" validate:"required,max=200"`
	Category string `json:"category" validate:"max=100"`
}

// AddBlock schedules a new time block.
func (s *PlannerService) AddBlock(ctx context.Context, userID primitive.ObjectID, req TimeBlockRequest) (*models.TimeBlock, error) {
	if err := s.checkRequest(req); err != nil {
		return nil, err
	}

	planner, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	block := models.TimeBlock{
		ID:        uuid.NewString(),
		Date:      req.Date,
		Start:     req.Start,
		End:       req.End,
		Title:     req.Title,
		Category:  req.Category,
		CreatedAt: time.Now(),
	}
	blocks := append(planner.Blocks, block)

	if err := s.repo.SetBlocks(ctx, userID, blocks); err != nil {
		logrus.WithError(err).Error("Failed to add time block")
		return nil, apperrors.Wrap(apperrors.CodeOperationFailed, err, "failed to add block")
	}
	return &block, nil
}

// UpdateBlock rewrites a block in place, keeping its id, done flag and
// creation time.
func (s *PlannerService) UpdateBlock(ctx context.Context, userID primitive.ObjectID, blockID string, req TimeBlockRequest) (*models.TimeBlock, error) {
	if err := s.checkRequest(req); err != nil {
		return nil, err
	}

	planner, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i := range planner.Blocks {
		if planner.Blocks[i].ID == blockID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, apperrors.New(apperrors.CodeNotFound, "time block %s not found", blockID)
	}

	planner.Blocks[idx].Date = req.Date
	planner.Blocks[idx].Start = req.Start
	planner.Blocks[idx].End = req.End
	planner.Blocks[idx].Title = req.Title
	planner.Blocks[idx].Category = req.Category

	if err := s.repo.SetBlocks(ctx, userID, planner.Blocks); err != nil {
		logrus.WithError(err).Error("Failed to update time block")
		return nil, apperrors.Wrap(apperrors.CodeOperationFailed, err, "failed to update block")
	}
	return &planner.Blocks[idx], nil
}

// ToggleBlock flips a block's done flag.
func (s *PlannerService) ToggleBlock(ctx context.Context, userID primitive.ObjectID, blockID string) (*models.TimeBlock, error) {
	planner, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i := range planner.Blocks {
		if planner.Blocks[i].ID == blockID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, apperrors.New(apperrors.CodeNotFound, "time block %s not found", blockID)
	}

	planner.Blocks[idx].Done = !planner.Blocks[idx].Done

	if err := s.repo.SetBlocks(ctx, userID, planner.Blocks); err != nil {
		logrus.WithError(err).Error("Failed to toggle time block")
		return nil, apperrors.Wrap(apperrors.CodeOperationFailed, err, "failed to toggle block")
	}
	return &planner.Blocks[idx], nil
}

// DeleteBlock removes a time block.
func (s *PlannerService) DeleteBlock(ctx context.Context, userID primitive.ObjectID, blockID string) error {
	planner, err := s.load(ctx, userID)
	if err != nil {
		return err
	}

	kept := make([]models.TimeBlock, 0, len(planner.Blocks))
	found := false
	for _, block := range planner.Blocks {
		if block.ID == blockID {
			found = true
			continue
		}
		kept = append(kept, block)
	}
	if !found {
		return apperrors.New(apperrors.CodeNotFound, "time block %s not found", blockID)
	}

	if err := s.repo.SetBlocks(ctx, userID, kept); err != nil {
		logrus.WithError(err).Error("Failed to delete time block")
		return apperrors.Wrap(apperrors.CodeOperationFailed, err, "failed to delete block")
	}
	return nil
}

// ListBlocks returns the user's blocks sorted by date and start time,
// narrowed to one day when date is set.
func (s *PlannerService) ListBlocks(ctx context.Context, userID primitive.ObjectID, date string) ([]models.TimeBlock, error) {
	if date != "" {
		if _, err := validation.Date(date); err != nil {
			return nil, err
		}
	}

	planner, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	blocks := make([]models.TimeBlock, 0, len(planner.Blocks))
	for _, block := range planner.Blocks {
		if date != "" && block.Date != date {
			continue
		}
		blocks = append(blocks, block)
	}

	sort.Slice(blocks, func(i, j int) bool {
		if blocks[i].Date != blocks[j].Date {
			return blocks[i].Date < blocks[j].Date
		}
		return blocks[i].Start < blocks[j].Start
	})
	return blocks, nil
}

// checkRequest validates the payload and the start/end ordering.
func (s *PlannerService) checkRequest(req TimeBlockRequest) error {
	if err := validation.Struct(req); err != nil {
		return err
	}

	start, err := validation.Clock(req.Start)
	if err != nil {
		return err
	}
	end, err := validation.Clock(req.End)
	if err != nil {
		return err
	}
	if !end.After(start) {
		return apperrors.New(apperrors.CodeValidationFailed, "block end must be after its start")
	}
	return nil
}

func (s *PlannerService) load(ctx context.Context, userID primitive.ObjectID) (*models.Planner, error) {
	planner, err := s.repo.Get(ctx, userID)
	if err != nil {
		logrus.WithError(err).Error("Failed to get planner")
		return nil, apperrors.Wrap(apperrors.CodeOperationFailed, err, "failed to get planner")
	}
	if planner == nil {
		planner = &models.Planner{
			UserID: userID,
			Blocks: []models.TimeBlock{},
		}
	}
	return planner, nil
}
