package services

import (
	"context"
	"time"

	"github.com/montanaflynn/stats"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"onegoal/internal/models"
	"onegoal/internal/validation"
	"onegoal/pkg/apperrors"
)

// AnalyticsService derives the chart data from progress records. It never
// writes anything.
type AnalyticsService struct {
	progress ProgressStore
	users    UserStore
}

// NewAnalyticsService creates a new instance of AnalyticsService.
func NewAnalyticsService(progress ProgressStore, users UserStore) *AnalyticsService {
	return &AnalyticsService{
		progress: progress,
		users:    users,
	}
}

// Overview builds the whole analytics view for a date range: per-day points,
// the satisfaction distribution, focus-time aggregates, routine completion
// rates and session streaks.
func (s *AnalyticsService) Overview(ctx context.Context, userID primitive.ObjectID, from, to string) (*models.AnalyticsOverview, error) {
	fromDay, err := validation.Date(from)
	if err != nil {
		return nil, err
	}
	toDay, err := validation.Date(to)
	if err != nil {
		return nil, err
	}
	if toDay.Before(fromDay) {
		return nil, apperrors.New(apperrors.CodeValidationFailed, "range end %s precedes start %s", to, from)
	}

	records, err := s.progress.GetRange(ctx, userID, from, to)
	if err != nil {
		logrus.WithError(err).Error("Failed to load progress for analytics")
		return nil, apperrors.Wrap(apperrors.CodeOperationFailed, err, "failed to load progress")
	}

	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		logrus.WithError(err).Error("Failed to load user for analytics")
		return nil, apperrors.Wrap(apperrors.CodeOperationFailed, err, "failed to load user")
	}

	overview := &models.AnalyticsOverview{
		From:         from,
		To:           to,
		Points:       make([]models.DayPoint, 0, len(records)),
		Satisfaction: map[string]int{},
	}

	focusSeconds := make([]float64, 0, len(records))
	for _, record := range records {
		overview.Points = append(overview.Points, models.DayPoint{
			Date:         record.Date,
			TotalSeconds: record.TotalSeconds,
			SessionCount: len(record.Sessions),
			Satisfaction: record.Satisfaction,
		})
		overview.Satisfaction[record.Satisfaction]++
		focusSeconds = append(focusSeconds, float64(record.TotalSeconds))
	}

	overview.Focus = focusStats(focusSeconds)
	overview.Routines = routineRates(records, user.RoutineSettings)
	overview.CurrentStreak, overview.LongestStreak = sessionStreaks(records, toDay)

	return overview, nil
}

// focusStats runs the aggregate battery over per-day focus seconds. An empty
// range yields all zeros.
func focusStats(seconds []float64) models.FocusStats {
	if len(seconds) == 0 {
		return models.FocusStats{}
	}

	data := stats.Float64Data(seconds)
	mean, _ := stats.Mean(data)
	median, _ := stats.Median(data)
	stddev, _ := stats.StandardDeviation(data)
	max, _ := stats.Max(data)

	return models.FocusStats{
		MeanSeconds:   mean,
		MedianSeconds: median,
		StdDevSeconds: stddev,
		MaxSeconds:    max,
	}
}

// routineRates computes, per enabled kind, on how many recorded days the
// count met the user's target.
func routineRates(records []models.DailyProgress, settings models.RoutineSettings) []models.RoutineRate {
	rates := make([]models.RoutineRate, 0, len(models.RoutineKinds))

	for _, kind := range models.RoutineKinds {
		plan, ok := settings[kind]
		if !ok || !plan.Enabled {
			continue
		}

		rate := models.RoutineRate{Kind: kind, DaysTracked: len(records)}
		for _, record := range records {
			if plan.Done(record.Routines[kind]) {
				rate.DaysMet++
			}
		}
		if rate.DaysTracked > 0 {
			rate.Rate = float64(rate.DaysMet) / float64(rate.DaysTracked)
		}
		rates = append(rates, rate)
	}
	return rates
}

// sessionStreaks finds the longest run of consecutive days with at least one
// session, and the run still alive at the end of the range. Records arrive
// sorted oldest first.
func sessionStreaks(records []models.DailyProgress, rangeEnd time.Time) (current, longest int) {
	var prev time.Time
	var run int

	for _, record := range records {
		if len(record.Sessions) == 0 {
			continue
		}
		day, err := time.Parse(models.DateLayout, record.Date)
		if err != nil {
			continue
		}

		if run > 0 && day.Sub(prev) == 24*time.Hour {
			run++
		} else {
			run = 1
		}
		prev = day

		if run > longest {
			longest = run
		}
	}

	// The run counts as current while it reaches the range end or the day
	// before it, so a streak is not "broken" by a day still in progress.
	if run > 0 && !prev.IsZero() && rangeEnd.Sub(prev) <= 24*time.Hour {
		current = run
	}
	return current, longest
}
