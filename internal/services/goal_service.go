package services

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"onegoal/internal/models"
	"onegoal/internal/validation"
	"onegoal/pkg/apperrors"
	"onegoal/pkg/logger"
)

// GoalStore is the slice of the goal repository the service needs.
type GoalStore interface {
	CreateGoal(ctx context.Context, goal *models.Goal) (*models.Goal, error)
	GetGoalByID(ctx context.Context, id primitive.ObjectID) (*models.Goal, error)
	GetActiveGoal(ctx context.Context, userID primitive.ObjectID) (*models.Goal, error)
	GetGoals(ctx context.Context, userID primitive.ObjectID, status string) ([]models.Goal, error)
	GetAllActiveGoals(ctx context.Context, limit int64) ([]models.Goal, error)
	UpdateGoalFields(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error
	DeleteGoal(ctx context.Context, id primitive.ObjectID) error
}

// Notifier lets the goal service raise notifications without owning their
// delivery.
type Notifier interface {
	CreateNotification(ctx context.Context, userID primitive.ObjectID, notifType, title, message string, targetID *primitive.ObjectID) error
}

// GoalService encapsulates the business logic for goals. A user works toward
// one goal at a time; everything else is history.
type GoalService struct {
	repo     GoalStore
	notifier Notifier
}

// NewGoalService creates a new instance of GoalService. notifier may be nil.
func NewGoalService(repo GoalStore, notifier Notifier) *GoalService {
	return &GoalService{
		repo:     repo,
		notifier: notifier,
	}
}

// CreateGoalRequest is the payload accepted by CreateGoal.
type CreateGoalRequest struct {
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description" validate:"max=2000"`
	Motivation  string `json:"motivation" validate:"max=2000"`
	StartDate   string `json:"start_date" validate:"required,dateymd"`
	EndDate     string `json:"end_date" validate:"required,dateymd"`
}

// UpdateGoalRequest carries the fields UpdateGoal may change. Nil means keep.
type UpdateGoalRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Motivation  *string `json:"motivation"`
	StartDate   *string `json:"start_date"`
	EndDate     *string `json:"end_date"`
}

// CreateGoal stores a new active goal, enforcing the one-active-goal rule.
func (s *GoalService) CreateGoal(ctx context.Context, userID primitive.ObjectID, req CreateGoalRequest) (*models.Goal, error) {
	if err := validation.Struct(req); err != nil {
		logger.Log.WithError(err).Warn("Invalid goal payload")
		return nil, err
	}

	start, err := validation.Date(req.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := validation.Date(req.EndDate)
	if err != nil {
		return nil, err
	}
	if !end.After(start) {
		return nil, apperrors.New(apperrors.CodeValidationFailed, "end date must be after start date")
	}

	existing, err := s.repo.GetActiveGoal(ctx, userID)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to check for active goal")
		return nil, apperrors.Wrap(apperrors.CodeOperationFailed, err, "failed to create goal")
	}
	if existing != nil {
		return nil, apperrors.New(apperrors.CodeValidationFailed, "an active goal already exists, finish or abandon it first")
	}

	goal := &models.Goal{
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		Motivation:  req.Motivation,
		StartDate:   start,
		EndDate:     end,
		Status:      models.GoalStatusActive,
	}

	createdGoal, err := s.repo.CreateGoal(ctx, goal)
	if err != nil {
		logger.Log.WithError(err).Error("Service failed to create goal")
		return nil, apperrors.Wrap(apperrors.CodeOperationFailed, err, "failed to create goal")
	}

	logger.Log.WithField("goal_id", createdGoal.ID.Hex()).Info("Goal created in service layer")
	return createdGoal, nil
}

// GetActiveGoal returns the goal the user is currently working toward.
func (s *GoalService) GetActiveGoal(ctx context.Context, userID primitive.ObjectID) (*models.Goal, error) {
	goal, err := s.repo.GetActiveGoal(ctx, userID)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to get active goal")
		return nil, apperrors.Wrap(apperrors.CodeOperationFailed, err, "failed to get active goal")
	}
	if goal == nil {
		return nil, apperrors.New(apperrors.CodeNotFound, "no active goal")
	}
	return goal, nil
}

// GetGoalHistory returns the user's goals newest first, optionally filtered
// by status.
func (s *GoalService) GetGoalHistory(ctx context.Context, userID primitive.ObjectID, status string) ([]models.Goal, error) {
	if status != "" && status != models.GoalStatusActive &&
		status != models.GoalStatusCompleted && status != models.GoalStatusAbandoned {
		return nil, apperrors.New(apperrors.CodeValidationFailed, "unknown status %q", status)
	}

	goals, err := s.repo.GetGoals(ctx, userID, status)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to get goal history")
		return nil, apperrors.Wrap(apperrors.CodeOperationFailed, err, "failed to get goals")
	}
	return goals, nil
}

// GetAllActiveGoals returns active goals across all users. The deadline scan
// walks these directly instead of going user by user.
func (s *GoalService) GetAllActiveGoals(ctx context.Context, limit int64) ([]models.Goal, error) {
	goals, err := s.repo.GetAllActiveGoals(ctx, limit)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to get active goals")
		return nil, apperrors.Wrap(apperrors.CodeOperationFailed, err, "failed to get active goals")
	}
	return goals, nil
}

// UpdateGoal merges the given fields into the user's goal. Only active goals
// can be edited.
func (s *GoalService) UpdateGoal(ctx context.Context, userID primitive.ObjectID, goalID string, req UpdateGoalRequest) (*models.Goal, error) {
	goal, err := s.ownedGoal(ctx, userID, goalID)
	if err != nil {
		return nil, err
	}
	if !goal.IsActive() {
		return nil, apperrors.New(apperrors.CodeValidationFailed, "only an active goal can be edited")
	}

	updates := map[string]interface{}{}

	if req.Title != nil {
		if err := validation.Var(*req.Title, "required,max=200"); err != nil {
			return nil, apperrors.New(apperrors.CodeValidationFailed, "invalid title")
		}
		updates["title"] = *req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Motivation != nil {
		updates["motivation"] = *req.Motivation
	}

	start, end := goal.StartDate, goal.EndDate
	if req.StartDate != nil {
		if start, err = validation.Date(*req.StartDate); err != nil {
			return nil, err
		}
		updates["start_date"] = start
	}
	if req.EndDate != nil {
		if end, err = validation.Date(*req.EndDate); err != nil {
			return nil, err
		}
		updates["end_date"] = end
	}
	if !end.After(start) {
		return nil, apperrors.New(apperrors.CodeValidationFailed, "end date must be after start date")
	}

	if len(updates) == 0 {
		return goal, nil
	}

	if err := s.repo.UpdateGoalFields(ctx, goal.ID, updates); err != nil {
		logger.Log.WithError(err).Error("Failed to update goal")
		return nil, apperrors.Wrap(apperrors.CodeOperationFailed, err, "failed to update goal")
	}

	return s.repo.GetGoalByID(ctx, goal.ID)
}

// CompleteGoal marks the goal completed and congratulates the user.
func (s *GoalService) CompleteGoal(ctx context.Context, userID primitive.ObjectID, goalID string) (*models.Goal, error) {
	goal, err := s.finishGoal(ctx, userID, goalID, models.GoalStatusCompleted)
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		err := s.notifier.CreateNotification(
			ctx,
			goal.UserID,
			models.NotificationGoalCompleted,
			"Goal Completed",
			fmt.Sprintf("You finished your goal %q. Time to pick the next one!", goal.Title),
			&goal.ID,
		)
		if err != nil {
			logger.Log.WithError(err).Warn("Failed to send goal completed notification")
		}
	}

	return goal, nil
}

// AbandonGoal marks the goal abandoned, freeing the active slot.
func (s *GoalService) AbandonGoal(ctx context.Context, userID primitive.ObjectID, goalID string) (*models.Goal, error) {
	return s.finishGoal(ctx, userID, goalID, models.GoalStatusAbandoned)
}

// DeleteGoal removes a goal and its history entry entirely.
func (s *GoalService) DeleteGoal(ctx context.Context, userID primitive.ObjectID, goalID string) error {
	goal, err := s.ownedGoal(ctx, userID, goalID)
	if err != nil {
		return err
	}

	if err := s.repo.DeleteGoal(ctx, goal.ID); err != nil {
		logger.Log.WithError(err).Error("Failed to delete goal")
		return apperrors.Wrap(apperrors.CodeOperationFailed, err, "failed to delete goal")
	}

	logger.Log.WithField("goal_id", goalID).Info("Goal deleted in service layer")
	return nil
}

// finishGoal moves an active goal into a terminal status.
func (s *GoalService) finishGoal(ctx context.Context, userID primitive.ObjectID, goalID, status string) (*models.Goal, error) {
	goal, err := s.ownedGoal(ctx, userID, goalID)
	if err != nil {
		return nil, err
	}
	if !goal.IsActive() {
		return nil, apperrors.New(apperrors.CodeValidationFailed, "goal is already %s", goal.Status)
	}

	now := time.Now()
	updates := map[string]interface{}{
		"status":      status,
		"finished_at": now,
	}
	if err := s.repo.UpdateGoalFields(ctx, goal.ID, updates); err != nil {
		logger.Log.WithError(err).Error("Failed to finish goal")
		return nil, apperrors.Wrap(apperrors.CodeOperationFailed, err, "failed to update goal")
	}

	goal.Status = status
	goal.FinishedAt = &now
	goal.UpdatedAt = now

	logger.Log.WithFields(map[string]interface{}{
		"goal_id": goal.ID.Hex(),
		"status":  status,
	}).Info("Goal finished")
	return goal, nil
}

// ownedGoal fetches a goal and checks it belongs to the user. Goals of other
// users look exactly like missing ones.
func (s *GoalService) ownedGoal(ctx context.Context, userID primitive.ObjectID, goalID string) (*models.Goal, error) {
	objID, err := primitive.ObjectIDFromHex(goalID)
	if err != nil {
		return nil, apperrors.New(apperrors.CodeValidationFailed, "invalid goal ID")
	}

	goal, err := s.repo.GetGoalByID(ctx, objID)
	if err != nil || goal == nil {
		return nil, apperrors.New(apperrors.CodeNotFound, "goal not found")
	}
	if goal.UserID != userID {
		return nil, apperrors.New(apperrors.CodeNotFound, "goal not found")
	}
	return goal, nil
}
