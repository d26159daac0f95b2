package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"onegoal/internal/models"
	"onegoal/pkg/apperrors"
)

func validGoalRequest() CreateGoalRequest {
	return CreateGoalRequest{
		Title:     "Run a marathon",
		StartDate: "2024-04-01",
		EndDate:   "2024-10-01",
	}
}

func TestCreateGoal(t *testing.T) {
	ctx := context.Background()
	userID := primitive.NewObjectID()
	svc := NewGoalService(newFakeGoalStore(), nil)

	goal, err := svc.CreateGoal(ctx, userID, validGoalRequest())
	require.NoError(t, err)

	assert.Equal(t, models.GoalStatusActive, goal.Status)
	assert.Equal(t, userID, goal.UserID)
	assert.False(t, goal.ID.IsZero())
}

func TestCreateGoalEnforcesSingleActive(t *testing.T) {
	ctx := context.Background()
	userID := primitive.NewObjectID()
	svc := NewGoalService(newFakeGoalStore(), nil)

	_, err := svc.CreateGoal(ctx, userID, validGoalRequest())
	require.NoError(t, err)

	_, err = svc.CreateGoal(ctx, userID, validGoalRequest())
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeValidationFailed))

	// Another user is unaffected.
	_, err = svc.CreateGoal(ctx, primitive.NewObjectID(), validGoalRequest())
	assert.NoError(t, err)
}

func TestCreateGoalValidation(t *testing.T) {
	ctx := context.Background()
	userID := primitive.NewObjectID()
	svc := NewGoalService(newFakeGoalStore(), nil)

	tests := []struct {
		name string
		req  CreateGoalRequest
	}{
		{"missing title", CreateGoalRequest{StartDate: "2024-04-01", EndDate: "2024-05-01"}},
		{"bad start date", CreateGoalRequest{Title: "x", StartDate: "April 1st", EndDate: "2024-05-01"}},
		{"end before start", CreateGoalRequest{Title: "x", StartDate: "2024-05-01", EndDate: "2024-04-01"}},
		{"end equals start", CreateGoalRequest{Title: "x", StartDate: "2024-05-01", EndDate: "2024-05-01"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateGoal(ctx, userID, tt.req)
			require.Error(t, err)
			assert.True(t, apperrors.IsCode(err, apperrors.CodeValidationFailed))
		})
	}
}

func TestGetActiveGoal(t *testing.T) {
	ctx := context.Background()
	userID := primitive.NewObjectID()
	svc := NewGoalService(newFakeGoalStore(), nil)

	_, err := svc.GetActiveGoal(ctx, userID)
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeNotFound))

	created, err := svc.CreateGoal(ctx, userID, validGoalRequest())
	require.NoError(t, err)

	active, err := svc.GetActiveGoal(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, active.ID)
}

func TestCompleteGoal(t *testing.T) {
	ctx := context.Background()
	userID := primitive.NewObjectID()
	notifier := &fakeNotifier{}
	svc := NewGoalService(newFakeGoalStore(), notifier)

	created, err := svc.CreateGoal(ctx, userID, validGoalRequest())
	require.NoError(t, err)

	completed, err := svc.CompleteGoal(ctx, userID, created.ID.Hex())
	require.NoError(t, err)

	assert.Equal(t, models.GoalStatusCompleted, completed.Status)
	require.NotNil(t, completed.FinishedAt)

	require.Len(t, notifier.calls, 1)
	assert.Equal(t, models.NotificationGoalCompleted, notifier.calls[0].notifType)
	assert.Equal(t, userID, notifier.calls[0].userID)

	// The active slot is free again.
	_, err = svc.CreateGoal(ctx, userID, validGoalRequest())
	assert.NoError(t, err)
}

func TestCompleteGoalTwice(t *testing.T) {
	ctx := context.Background()
	userID := primitive.NewObjectID()
	svc := NewGoalService(newFakeGoalStore(), nil)

	created, err := svc.CreateGoal(ctx, userID, validGoalRequest())
	require.NoError(t, err)

	_, err = svc.CompleteGoal(ctx, userID, created.ID.Hex())
	require.NoError(t, err)

	_, err = svc.CompleteGoal(ctx, userID, created.ID.Hex())
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeValidationFailed))
}

func TestAbandonGoal(t *testing.T) {
	ctx := context.Background()
	userID := primitive.NewObjectID()
	notifier := &fakeNotifier{}
	svc := NewGoalService(newFakeGoalStore(), notifier)

	created, err := svc.CreateGoal(ctx, userID, validGoalRequest())
	require.NoError(t, err)

	abandoned, err := svc.AbandonGoal(ctx, userID, created.ID.Hex())
	require.NoError(t, err)

	assert.Equal(t, models.GoalStatusAbandoned, abandoned.Status)
	assert.Empty(t, notifier.calls, "abandoning is nothing to celebrate")
}

func TestUpdateGoal(t *testing.T) {
	ctx := context.Background()
	userID := primitive.NewObjectID()
	svc := NewGoalService(newFakeGoalStore(), nil)

	created, err := svc.CreateGoal(ctx, userID, validGoalRequest())
	require.NoError(t, err)

	title := "Run two marathons"
	end := "2024-12-01"
	updated, err := svc.UpdateGoal(ctx, userID, created.ID.Hex(), UpdateGoalRequest{Title: &title, EndDate: &end})
	require.NoError(t, err)

	assert.Equal(t, "Run two marathons", updated.Title)
	assert.Equal(t, "2024-12-01", updated.EndDate.Format(models.DateLayout))
}

func TestUpdateGoalRejectsFinished(t *testing.T) {
	ctx := context.Background()
	userID := primitive.NewObjectID()
	svc := NewGoalService(newFakeGoalStore(), nil)

	created, err := svc.CreateGoal(ctx, userID, validGoalRequest())
	require.NoError(t, err)
	_, err = svc.CompleteGoal(ctx, userID, created.ID.Hex())
	require.NoError(t, err)

	title := "too late"
	_, err = svc.UpdateGoal(ctx, userID, created.ID.Hex(), UpdateGoalRequest{Title: &title})
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeValidationFailed))
}

func TestGoalOwnershipHidesForeignGoals(t *testing.T) {
	ctx := context.Background()
	owner := primitive.NewObjectID()
	intruder := primitive.NewObjectID()
	svc := NewGoalService(newFakeGoalStore(), nil)

	created, err := svc.CreateGoal(ctx, owner, validGoalRequest())
	require.NoError(t, err)

	_, err = svc.CompleteGoal(ctx, intruder, created.ID.Hex())
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeNotFound))

	err = svc.DeleteGoal(ctx, intruder, created.ID.Hex())
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeNotFound))
}

func TestGoalHistory(t *testing.T) {
	ctx := context.Background()
	userID := primitive.NewObjectID()
	svc := NewGoalService(newFakeGoalStore(), nil)

	first, err := svc.CreateGoal(ctx, userID, validGoalRequest())
	require.NoError(t, err)
	_, err = svc.AbandonGoal(ctx, userID, first.ID.Hex())
	require.NoError(t, err)

	_, err = svc.CreateGoal(ctx, userID, validGoalRequest())
	require.NoError(t, err)

	all, err := svc.GetGoalHistory(ctx, userID, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	abandoned, err := svc.GetGoalHistory(ctx, userID, models.GoalStatusAbandoned)
	require.NoError(t, err)
	require.Len(t, abandoned, 1)
	assert.Equal(t, first.ID, abandoned[0].ID)

	_, err = svc.GetGoalHistory(ctx, userID, "paused")
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeValidationFailed))
}

func TestDeleteGoal(t *testing.T) {
	ctx := context.Background()
	userID := primitive.NewObjectID()
	svc := NewGoalService(newFakeGoalStore(), nil)

	created, err := svc.CreateGoal(ctx, userID, validGoalRequest())
	require.NoError(t, err)

	require.NoError(t, svc.DeleteGoal(ctx, userID, created.ID.Hex()))

	_, err = svc.GetActiveGoal(ctx, userID)
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeNotFound))
}
