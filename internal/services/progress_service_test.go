package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"onegoal/internal/models"
	"onegoal/pkg/apperrors"
)

func TestAddSessionOnExistingDay(t *testing.T) {
	ctx := context.Background()
	userID := primitive.NewObjectID()
	store := newFakeProgressStore()
	svc := NewProgressService(store)

	_, err := svc.AddSession(ctx, userID, "2024-03-01", AddSessionRequest{Label: "reading", DurationSeconds: 600})
	require.NoError(t, err)

	before, err := svc.GetByDate(ctx, userID, "2024-03-01")
	require.NoError(t, err)
	require.Len(t, before.Sessions, 1)

	after, err := svc.AddSession(ctx, userID, "2024-03-01", AddSessionRequest{Label: "writing", DurationSeconds: 900})
	require.NoError(t, err)

	assert.Len(t, after.Sessions, 2)
	assert.Equal(t, before.TotalSeconds+900, after.TotalSeconds, "total must grow by exactly the new session's duration")
	assert.Equal(t, "writing", after.Sessions[1].Label)
	assert.NotEmpty(t, after.Sessions[1].ID)
}

func TestAddSessionOnEmptyDayCreatesNeutralRecord(t *testing.T) {
	ctx := context.Background()
	userID := primitive.NewObjectID()
	svc := NewProgressService(newFakeProgressStore())

	progress, err := svc.AddSession(ctx, userID, "2024-03-02", AddSessionRequest{DurationSeconds: 300})
	require.NoError(t, err)

	assert.Equal(t, models.SatisfactionNeutral, progress.Satisfaction)
	assert.Equal(t, "2024-03-02", progress.Date)
	assert.Len(t, progress.Sessions, 1)
	assert.Equal(t, int64(300), progress.TotalSeconds)

	// The record was persisted, not just returned.
	stored, err := svc.GetByDate(ctx, userID, "2024-03-02")
	require.NoError(t, err)
	assert.Len(t, stored.Sessions, 1)
}

func TestAddSessionDerivesDurationFromTimes(t *testing.T) {
	ctx := context.Background()
	userID := primitive.NewObjectID()
	svc := NewProgressService(newFakeProgressStore())

	started := time.Date(2024, 3, 3, 9, 0, 0, 0, time.UTC)
	progress, err := svc.AddSession(ctx, userID, "2024-03-03", AddSessionRequest{
		StartedAt: started,
		EndedAt:   started.Add(25 * time.Minute),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1500), progress.Sessions[0].DurationSeconds)
	assert.Equal(t, int64(1500), progress.TotalSeconds)
}

func TestAddSessionRejectsReversedTimes(t *testing.T) {
	ctx := context.Background()
	userID := primitive.NewObjectID()
	svc := NewProgressService(newFakeProgressStore())

	started := time.Date(2024, 3, 3, 9, 0, 0, 0, time.UTC)
	_, err := svc.AddSession(ctx, userID, "2024-03-03", AddSessionRequest{
		StartedAt: started,
		EndedAt:   started.Add(-time.Minute),
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeValidationFailed))
}

func TestUpdateSessionMissingDate(t *testing.T) {
	ctx := context.Background()
	userID := primitive.NewObjectID()
	svc := NewProgressService(newFakeProgressStore())

	_, err := svc.UpdateSession(ctx, userID, "2024-03-04", "some-session", UpdateSessionRequest{})
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeNotFound))
	assert.EqualError(t, err, "no progress found for date 2024-03-04")
}

func TestDeleteSessionMissingDate(t *testing.T) {
	ctx := context.Background()
	userID := primitive.NewObjectID()
	svc := NewProgressService(newFakeProgressStore())

	_, err := svc.DeleteSession(ctx, userID, "2024-03-05", "some-session")
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeNotFound))
	assert.EqualError(t, err, "no progress found for date 2024-03-05")
}

func TestUpdateSessionRelabelsAndRetimes(t *testing.T) {
	ctx := context.Background()
	userID := primitive.NewObjectID()
	svc := NewProgressService(newFakeProgressStore())

	created, err := svc.AddSession(ctx, userID, "2024-03-06", AddSessionRequest{Label: "draft", DurationSeconds: 100})
	require.NoError(t, err)
	sessionID := created.Sessions[0].ID

	label := "final"
	started := time.Date(2024, 3, 6, 8, 0, 0, 0, time.UTC)
	ended := started.Add(10 * time.Minute)
	updated, err := svc.UpdateSession(ctx, userID, "2024-03-06", sessionID, UpdateSessionRequest{
		Label:     &label,
		StartedAt: &started,
		EndedAt:   &ended,
	})
	require.NoError(t, err)

	assert.Equal(t, "final", updated.Sessions[0].Label)
	assert.Equal(t, int64(600), updated.Sessions[0].DurationSeconds)
	assert.Equal(t, int64(600), updated.TotalSeconds, "total must be recomputed from the edited session")
}

func TestUpdateSessionUnknownID(t *testing.T) {
	ctx := context.Background()
	userID := primitive.NewObjectID()
	svc := NewProgressService(newFakeProgressStore())

	_, err := svc.AddSession(ctx, userID, "2024-03-07", AddSessionRequest{DurationSeconds: 100})
	require.NoError(t, err)

	_, err = svc.UpdateSession(ctx, userID, "2024-03-07", "nope", UpdateSessionRequest{})
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeNotFound))
}

func TestDeleteLastSessionZeroesTotal(t *testing.T) {
	ctx := context.Background()
	userID := primitive.NewObjectID()
	svc := NewProgressService(newFakeProgressStore())

	created, err := svc.AddSession(ctx, userID, "2024-03-08", AddSessionRequest{DurationSeconds: 1200})
	require.NoError(t, err)
	require.Equal(t, int64(1200), created.TotalSeconds)

	after, err := svc.DeleteSession(ctx, userID, "2024-03-08", created.Sessions[0].ID)
	require.NoError(t, err)

	assert.Empty(t, after.Sessions)
	assert.Equal(t, int64(0), after.TotalSeconds)
}

func TestDeleteOneOfTwoSessions(t *testing.T) {
	ctx := context.Background()
	userID := primitive.NewObjectID()
	svc := NewProgressService(newFakeProgressStore())

	first, err := svc.AddSession(ctx, userID, "2024-03-09", AddSessionRequest{DurationSeconds: 500})
	require.NoError(t, err)
	_, err = svc.AddSession(ctx, userID, "2024-03-09", AddSessionRequest{DurationSeconds: 700})
	require.NoError(t, err)

	after, err := svc.DeleteSession(ctx, userID, "2024-03-09", first.Sessions[0].ID)
	require.NoError(t, err)

	assert.Len(t, after.Sessions, 1)
	assert.Equal(t, int64(700), after.TotalSeconds)
}

func TestGetByDateUnknownDayIsNeutralAndUnsaved(t *testing.T) {
	ctx := context.Background()
	userID := primitive.NewObjectID()
	store := newFakeProgressStore()
	svc := NewProgressService(store)

	progress, err := svc.GetByDate(ctx, userID, "2024-03-10")
	require.NoError(t, err)

	assert.Equal(t, models.SatisfactionNeutral, progress.Satisfaction)
	assert.Empty(t, progress.Sessions)
	assert.Zero(t, store.upserts, "a plain read must not create the record")
}

func TestGetByDateRejectsBadDate(t *testing.T) {
	ctx := context.Background()
	svc := NewProgressService(newFakeProgressStore())

	_, err := svc.GetByDate(ctx, primitive.NewObjectID(), "03/10/2024")
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeValidationFailed))
}

func TestSetSatisfaction(t *testing.T) {
	ctx := context.Background()
	userID := primitive.NewObjectID()
	svc := NewProgressService(newFakeProgressStore())

	progress, err := svc.SetSatisfaction(ctx, userID, "2024-03-11", models.SatisfactionGreat)
	require.NoError(t, err)
	assert.Equal(t, models.SatisfactionGreat, progress.Satisfaction)

	_, err = svc.SetSatisfaction(ctx, userID, "2024-03-11", "ecstatic")
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeValidationFailed))
}

func TestSetNotePersists(t *testing.T) {
	ctx := context.Background()
	userID := primitive.NewObjectID()
	svc := NewProgressService(newFakeProgressStore())

	_, err := svc.SetNote(ctx, userID, "2024-03-12", "slow day")
	require.NoError(t, err)

	stored, err := svc.GetByDate(ctx, userID, "2024-03-12")
	require.NoError(t, err)
	assert.Equal(t, "slow day", stored.Note)
}

func TestRoutineCounts(t *testing.T) {
	ctx := context.Background()
	userID := primitive.NewObjectID()
	svc := NewProgressService(newFakeProgressStore())

	progress, err := svc.SetRoutineCount(ctx, userID, "2024-03-13", models.RoutineWater, 5)
	require.NoError(t, err)
	assert.Equal(t, 5, progress.Routines[models.RoutineWater])

	progress, err = svc.IncrementRoutine(ctx, userID, "2024-03-13", models.RoutineWater, 0)
	require.NoError(t, err)
	assert.Equal(t, 6, progress.Routines[models.RoutineWater], "zero delta defaults to one")

	progress, err = svc.IncrementRoutine(ctx, userID, "2024-03-13", models.RoutineWater, -10)
	require.NoError(t, err)
	assert.Equal(t, 0, progress.Routines[models.RoutineWater], "counts never go below zero")

	_, err = svc.SetRoutineCount(ctx, userID, "2024-03-13", "smoking", 1)
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeValidationFailed))

	_, err = svc.SetRoutineCount(ctx, userID, "2024-03-13", models.RoutineWater, -1)
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeValidationFailed))
}

func TestGetRange(t *testing.T) {
	ctx := context.Background()
	userID := primitive.NewObjectID()
	svc := NewProgressService(newFakeProgressStore())

	for _, date := range []string{"2024-03-14", "2024-03-16", "2024-03-20"} {
		_, err := svc.AddSession(ctx, userID, date, AddSessionRequest{DurationSeconds: 60})
		require.NoError(t, err)
	}

	records, err := svc.GetRange(ctx, userID, "2024-03-14", "2024-03-17")
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "2024-03-14", records[0].Date)
	assert.Equal(t, "2024-03-16", records[1].Date)

	_, err = svc.GetRange(ctx, userID, "2024-03-17", "2024-03-14")
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeValidationFailed))
}
