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

func progressRecord(date string, totalSeconds int64, sessions int, satisfaction string, routines map[string]int) *models.DailyProgress {
	record := models.NewDailyProgress(primitive.NilObjectID, date)
	record.TotalSeconds = totalSeconds
	record.Satisfaction = satisfaction
	for i := 0; i < sessions; i++ {
		record.Sessions = append(record.Sessions, models.StopwatchSession{ID: date, DurationSeconds: totalSeconds / int64(sessions)})
	}
	for kind, count := range routines {
		record.Routines[kind] = count
	}
	return record
}

func TestFocusStats(t *testing.T) {
	assert.Equal(t, models.FocusStats{}, focusStats(nil))

	got := focusStats([]float64{600, 1800})
	assert.InDelta(t, 1200, got.MeanSeconds, 0.001)
	assert.InDelta(t, 1200, got.MedianSeconds, 0.001)
	assert.InDelta(t, 600, got.StdDevSeconds, 0.001)
	assert.InDelta(t, 1800, got.MaxSeconds, 0.001)
}

func TestRoutineRates(t *testing.T) {
	settings := models.RoutineSettings{
		models.RoutineWater:    {Enabled: true, DailyTarget: 8},
		models.RoutineExercise: {Enabled: true, DailyTarget: 1},
		models.RoutineSleep:    {Enabled: false, DailyTarget: 1},
	}
	records := []models.DailyProgress{
		*progressRecord("2024-06-01", 0, 0, "neutral", map[string]int{models.RoutineWater: 8, models.RoutineExercise: 1}),
		*progressRecord("2024-06-02", 0, 0, "neutral", map[string]int{models.RoutineWater: 5}),
		*progressRecord("2024-06-03", 0, 0, "neutral", map[string]int{models.RoutineWater: 9, models.RoutineExercise: 2}),
	}

	rates := routineRates(records, settings)
	require.Len(t, rates, 2, "disabled kinds are skipped")

	// Order follows the canonical kind order: water before exercise.
	assert.Equal(t, models.RoutineWater, rates[0].Kind)
	assert.Equal(t, 2, rates[0].DaysMet)
	assert.Equal(t, 3, rates[0].DaysTracked)
	assert.InDelta(t, 2.0/3.0, rates[0].Rate, 0.001)

	assert.Equal(t, models.RoutineExercise, rates[1].Kind)
	assert.Equal(t, 2, rates[1].DaysMet)
}

func TestSessionStreaks(t *testing.T) {
	day := func(date string) time.Time {
		parsed, err := time.Parse(models.DateLayout, date)
		require.NoError(t, err)
		return parsed
	}

	t.Run("gap resets the run", func(t *testing.T) {
		records := []models.DailyProgress{
			*progressRecord("2024-06-01", 600, 1, "neutral", nil),
			*progressRecord("2024-06-02", 600, 1, "neutral", nil),
			*progressRecord("2024-06-04", 600, 1, "neutral", nil),
		}
		current, longest := sessionStreaks(records, day("2024-06-04"))
		assert.Equal(t, 1, current)
		assert.Equal(t, 2, longest)
	})

	t.Run("run reaching yesterday still counts as current", func(t *testing.T) {
		records := []models.DailyProgress{
			*progressRecord("2024-06-03", 600, 1, "neutral", nil),
			*progressRecord("2024-06-04", 600, 1, "neutral", nil),
		}
		current, longest := sessionStreaks(records, day("2024-06-05"))
		assert.Equal(t, 2, current)
		assert.Equal(t, 2, longest)
	})

	t.Run("stale run is not current", func(t *testing.T) {
		records := []models.DailyProgress{
			*progressRecord("2024-06-01", 600, 1, "neutral", nil),
			*progressRecord("2024-06-02", 600, 1, "neutral", nil),
		}
		current, longest := sessionStreaks(records, day("2024-06-08"))
		assert.Equal(t, 0, current)
		assert.Equal(t, 2, longest)
	})

	t.Run("sessionless days do not extend the run", func(t *testing.T) {
		records := []models.DailyProgress{
			*progressRecord("2024-06-01", 600, 1, "neutral", nil),
			*progressRecord("2024-06-02", 0, 0, "neutral", nil),
			*progressRecord("2024-06-03", 600, 1, "neutral", nil),
		}
		current, longest := sessionStreaks(records, day("2024-06-03"))
		assert.Equal(t, 1, current)
		assert.Equal(t, 1, longest)
	})

	t.Run("no sessions at all", func(t *testing.T) {
		current, longest := sessionStreaks(nil, day("2024-06-03"))
		assert.Zero(t, current)
		assert.Zero(t, longest)
	})
}

func TestOverview(t *testing.T) {
	ctx := context.Background()
	users := newFakeUserStore()
	progress := newFakeProgressStore()
	svc := NewAnalyticsService(progress, users)

	user, err := users.CreateUser(ctx, &models.User{
		Username: "dina",
		Email:    "dina@example.com",
		RoutineSettings: models.RoutineSettings{
			models.RoutineExercise: {Enabled: true, DailyTarget: 1},
		},
	})
	require.NoError(t, err)

	seed := []*models.DailyProgress{
		progressRecord("2024-06-01", 600, 1, "good", map[string]int{models.RoutineExercise: 1}),
		progressRecord("2024-06-02", 1800, 2, "good", nil),
		progressRecord("2024-06-04", 900, 1, "bad", map[string]int{models.RoutineExercise: 1}),
	}
	for _, record := range seed {
		record.UserID = user.ID
		require.NoError(t, progress.Upsert(ctx, record))
	}

	overview, err := svc.Overview(ctx, user.ID, "2024-06-01", "2024-06-04")
	require.NoError(t, err)

	assert.Equal(t, "2024-06-01", overview.From)
	assert.Equal(t, "2024-06-04", overview.To)

	require.Len(t, overview.Points, 3)
	assert.Equal(t, "2024-06-01", overview.Points[0].Date)
	assert.Equal(t, int64(1800), overview.Points[1].TotalSeconds)
	assert.Equal(t, 2, overview.Points[1].SessionCount)

	assert.Equal(t, map[string]int{"good": 2, "bad": 1}, overview.Satisfaction)

	assert.InDelta(t, 1100, overview.Focus.MeanSeconds, 0.001)
	assert.InDelta(t, 1800, overview.Focus.MaxSeconds, 0.001)

	require.Len(t, overview.Routines, 1)
	assert.Equal(t, models.RoutineExercise, overview.Routines[0].Kind)
	assert.Equal(t, 2, overview.Routines[0].DaysMet)
	assert.Equal(t, 3, overview.Routines[0].DaysTracked)

	assert.Equal(t, 1, overview.CurrentStreak)
	assert.Equal(t, 2, overview.LongestStreak)
}

func TestOverviewEmptyRange(t *testing.T) {
	ctx := context.Background()
	users := newFakeUserStore()
	progress := newFakeProgressStore()
	svc := NewAnalyticsService(progress, users)

	user, err := users.CreateUser(ctx, &models.User{Username: "dina", Email: "dina@example.com"})
	require.NoError(t, err)

	overview, err := svc.Overview(ctx, user.ID, "2024-06-01", "2024-06-07")
	require.NoError(t, err)
	assert.Empty(t, overview.Points)
	assert.Equal(t, models.FocusStats{}, overview.Focus)
	assert.Zero(t, overview.CurrentStreak)
}

func TestOverviewRejectsBadRange(t *testing.T) {
	ctx := context.Background()
	users := newFakeUserStore()
	svc := NewAnalyticsService(newFakeProgressStore(), users)

	user, err := users.CreateUser(ctx, &models.User{Username: "dina", Email: "dina@example.com"})
	require.NoError(t, err)

	_, err = svc.Overview(ctx, user.ID, "2024-06-07", "2024-06-01")
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeValidationFailed))

	_, err = svc.Overview(ctx, user.ID, "June 1", "2024-06-07")
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeValidationFailed))
}
