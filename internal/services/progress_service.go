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

// ProgressStore is the slice of the progress repository the service needs.
type ProgressStore interface {
	GetByDate(ctx context.Context, userID primitive.ObjectID, date string) (*models.DailyProgress, error)
	GetRange(ctx context.Context, userID primitive.ObjectID, from, to string) ([]models.DailyProgress, error)
	Upsert(ctx context.Context, progress *models.DailyProgress) error
}

// ProgressService owns the per-day records: satisfaction, notes, stopwatch
// sessions and routine counts.
type ProgressService struct {
	repo ProgressStore
}

// NewProgressService creates a new instance of ProgressService.
func NewProgressService(repo ProgressStore) *ProgressService {
	return &ProgressService{repo: repo}
}

// AddSessionRequest is the payload accepted by AddSession.
type AddSessionRequest struct {
	Label           string    `json:"label" validate:"max=200"`
	StartedAt       time.Time `json:"started_at"`
	EndedAt         time.Time `json:"ended_at"`
	DurationSeconds int64     `json:"duration_seconds" validate:"gte=0"`
}

// UpdateSessionRequest carries the fields UpdateSession may change. Nil means
// keep.
type UpdateSessionRequest struct {
	Label     *string    `json:"label"`
	StartedAt *time.Time `json:"started_at"`
	EndedAt   *time.Time `json:"ended_at"`
}

// GetByDate returns the day's record. Days never written yet come back as a
// fresh neutral record without being persisted.
func (s *ProgressService) GetByDate(ctx context.Context, userID primitive.ObjectID, date string) (*models.DailyProgress, error) {
	if _, err := validation.Date(date); err != nil {
		return nil, err
	}

	progress, err := s.repo.GetByDate(ctx, userID, date)
	if err != nil {
		logrus.WithError(err).Error("Failed to get progress")
		return nil, apperrors.Wrap(apperrors.CodeOperationFailed, err, "failed to get progress")
	}
	if progress == nil {
		return models.NewDailyProgress(userID, date), nil
	}
	return progress, nil
}

// GetRange returns the recorded days between two dates inclusive, oldest
// first. Unrecorded days are simply absent.
func (s *ProgressService) GetRange(ctx context.Context, userID primitive.ObjectID, from, to string) ([]models.DailyProgress, error) {
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

	records, err := s.repo.GetRange(ctx, userID, from, to)
	if err != nil {
		logrus.WithError(err).Error("Failed to get progress range")
		return nil, apperrors.Wrap(apperrors.CodeOperationFailed, err, "failed to get progress range")
	}
	return records, nil
}

// SetSatisfaction records how the day felt, creating the day record when
// needed.
func (s *ProgressService) SetSatisfaction(ctx context.Context, userID primitive.ObjectID, date, satisfaction string) (*models.DailyProgress, error) {
	if !models.AllowedSatisfactions[satisfaction] {
		return nil, apperrors.New(apperrors.CodeValidationFailed, "unknown satisfaction %q", satisfaction)
	}

	progress, err := s.loadOrNew(ctx, userID, date)
	if err != nil {
		return nil, err
	}

	progress.Satisfaction = satisfaction
	return s.save(ctx, progress)
}

// SetNote replaces the day's free-form note, creating the day record when
// needed.
func (s *ProgressService) SetNote(ctx context.Context, userID primitive.ObjectID, date, note string) (*models.DailyProgress, error) {
	if err := validation.Var(note, "max=4000"); err != nil {
		return nil, err
	}

	progress, err := s.loadOrNew(ctx, userID, date)
	if err != nil {
		return nil, err
	}

	progress.Note = note
	return s.save(ctx, progress)
}

// AddSession appends a stopwatch session to the day and grows the total by
// exactly the session's duration. A day with no record yet gets one with
// neutral satisfaction.
func (s *ProgressService) AddSession(ctx context.Context, userID primitive.ObjectID, date string, req AddSessionRequest) (*models.DailyProgress, error) {
	session, err := buildSession(req)
	if err != nil {
		return nil, err
	}

	progress, err := s.loadOrNew(ctx, userID, date)
	if err != nil {
		return nil, err
	}

	progress.Sessions = append(progress.Sessions, session)
	progress.TotalSeconds += session.DurationSeconds

	logrus.WithFields(logrus.Fields{
		"user_id": userID.Hex(),
		"date":    date,
		"seconds": session.DurationSeconds,
	}).Info("Stopwatch session added")
	return s.save(ctx, progress)
}

// UpdateSession edits a session's label or times and recomputes the day
// total. Days without a record are rejected.
func (s *ProgressService) UpdateSession(ctx context.Context, userID primitive.ObjectID, date, sessionID string, req UpdateSessionRequest) (*models.DailyProgress, error) {
	progress, err := s.loadExisting(ctx, userID, date)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i := range progress.Sessions {
		if progress.Sessions[i].ID == sessionID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, apperrors.New(apperrors.CodeNotFound, "session %s not found", sessionID)
	}

	session := progress.Sessions[idx]
	if req.Label != nil {
		if err := validation.Var(*req.Label, "max=200"); err != nil {
			return nil, err
		}
		session.Label = *req.Label
	}

	timesChanged := false
	if req.StartedAt != nil {
		session.StartedAt = *req.StartedAt
		timesChanged = true
	}
	if req.EndedAt != nil {
		session.EndedAt = *req.EndedAt
		timesChanged = true
	}
	if timesChanged {
		if session.EndedAt.Before(session.StartedAt) {
			return nil, apperrors.New(apperrors.CodeValidationFailed, "session end precedes its start")
		}
		session.DurationSeconds = int64(session.EndedAt.Sub(session.StartedAt).Seconds())
	}

	progress.Sessions[idx] = session
	progress.RecalcTotal()
	return s.save(ctx, progress)
}

// DeleteSession removes a session and recomputes the day total; deleting the
// last one brings the total back to zero.
func (s *ProgressService) DeleteSession(ctx context.Context, userID primitive.ObjectID, date, sessionID string) (*models.DailyProgress, error) {
	progress, err := s.loadExisting(ctx, userID, date)
	if err != nil {
		return nil, err
	}

	kept := progress.Sessions[:0]
	found := false
	for _, session := range progress.Sessions {
		if session.ID == sessionID {
			found = true
			continue
		}
		kept = append(kept, session)
	}
	if !found {
		return nil, apperrors.New(apperrors.CodeNotFound, "session %s not found", sessionID)
	}

	progress.Sessions = kept
	progress.RecalcTotal()
	return s.save(ctx, progress)
}

// SetRoutineCount pins a routine's count for the day, creating the day record
// when needed.
func (s *ProgressService) SetRoutineCount(ctx context.Context, userID primitive.ObjectID, date, kind string, count int) (*models.DailyProgress, error) {
	if !models.AllowedRoutineKinds[kind] {
		return nil, apperrors.New(apperrors.CodeValidationFailed, "unknown routine kind %q", kind)
	}
	if count < 0 {
		return nil, apperrors.New(apperrors.CodeValidationFailed, "routine count must not be negative")
	}

	progress, err := s.loadOrNew(ctx, userID, date)
	if err != nil {
		return nil, err
	}

	progress.Routines[kind] = count
	return s.save(ctx, progress)
}

// IncrementRoutine bumps a routine's count by delta (1 when zero). Counts
// never go below zero.
func (s *ProgressService) IncrementRoutine(ctx context.Context, userID primitive.ObjectID, date, kind string, delta int) (*models.DailyProgress, error) {
	if !models.AllowedRoutineKinds[kind] {
		return nil, apperrors.New(apperrors.CodeValidationFailed, "unknown routine kind %q", kind)
	}
	if delta == 0 {
		delta = 1
	}

	progress, err := s.loadOrNew(ctx, userID, date)
	if err != nil {
		return nil, err
	}

	next := progress.Routines[kind] + delta
	if next < 0 {
		next = 0
	}
	progress.Routines[kind] = next
	return s.save(ctx, progress)
}

// loadOrNew fetches the day's record or starts a fresh neutral one.
func (s *ProgressService) loadOrNew(ctx context.Context, userID primitive.ObjectID, date string) (*models.DailyProgress, error) {
	if _, err := validation.Date(date); err != nil {
		return nil, err
	}

	progress, err := s.repo.GetByDate(ctx, userID, date)
	if err != nil {
		logrus.WithError(err).Error("Failed to get progress")
		return nil, apperrors.Wrap(apperrors.CodeOperationFailed, err, "failed to get progress")
	}
	if progress == nil {
		progress = models.NewDailyProgress(userID, date)
	}
	if progress.Routines == nil {
		progress.Routines = map[string]int{}
	}
	return progress, nil
}

// loadExisting fetches the day's record and rejects dates never written.
func (s *ProgressService) loadExisting(ctx context.Context, userID primitive.ObjectID, date string) (*models.DailyProgress, error) {
	if _, err := validation.Date(date); err != nil {
		return nil, err
	}

	progress, err := s.repo.GetByDate(ctx, userID, date)
	if err != nil {
		logrus.WithError(err).Error("Failed to get progress")
		return nil, apperrors.Wrap(apperrors.CodeOperationFailed, err, "failed to get progress")
	}
	if progress == nil {
		return nil, apperrors.New(apperrors.CodeNotFound, "no progress found for date %s", date)
	}
	return progress, nil
}

func (s *ProgressService) save(ctx context.Context, progress *models.DailyProgress) (*models.DailyProgress, error) {
	if err := s.repo.Upsert(ctx, progress); err != nil {
		logrus.WithError(err).Error("Failed to save progress")
		return nil, apperrors.Wrap(apperrors.CodeOperationFailed, err, "failed to save progress")
	}
	return progress, nil
}

// buildSession validates the payload and derives the duration from the time
// pair when it was not supplied.
func buildSession(req AddSessionRequest) (models.StopwatchSession, error) {
	if err := validation.Var(req.Label, "max=200"); err != nil {
		return models.StopwatchSession{}, err
	}

	session := models.StopwatchSession{
		ID:              uuid.NewString(),
		Label:           req.Label,
		StartedAt:       req.StartedAt,
		EndedAt:         req.EndedAt,
		DurationSeconds: req.DurationSeconds,
	}

	if !session.StartedAt.IsZero() || !session.EndedAt.IsZero() {
		if session.EndedAt.Before(session.StartedAt) {
			return models.StopwatchSession{}, apperrors.New(apperrors.CodeValidationFailed, "session end precedes its start")
		}
		if session.DurationSeconds == 0 {
			session.DurationSeconds = int64(session.EndedAt.Sub(session.StartedAt).Seconds())
		}
	}
	if session.DurationSeconds < 0 {
		return models.StopwatchSession{}, apperrors.New(apperrors.CodeValidationFailed, "session duration must not be negative")
	}

	return session, nil
}
