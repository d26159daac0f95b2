package services

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"onegoal/internal/models"
	"onegoal/pkg/apperrors"
)

// The snapshot file never carries a raw time.Time: every timestamp crosses
// the boundary as an RFC3339 string and every day key as YYYY-MM-DD. These
// converters own that translation in both directions.

func timeToString(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}

func timeFromString(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, apperrors.New(apperrors.CodeValidationFailed, "invalid timestamp %q", value)
	}
	return t, nil
}

func dayToString(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(models.DateLayout)
}

func goalToSnapshot(goal models.Goal) models.GoalSnapshot {
	snap := models.GoalSnapshot{
		Title:       goal.Title,
		Description: goal.Description,
		Motivation:  goal.Motivation,
		StartDate:   dayToString(goal.StartDate),
		EndDate:     dayToString(goal.EndDate),
		Status:      goal.Status,
		CreatedAt:   timeToString(goal.CreatedAt),
	}
	if goal.FinishedAt != nil {
		snap.FinishedAt = timeToString(*goal.FinishedAt)
	}
	return snap
}

func goalFromSnapshot(snap models.GoalSnapshot) (models.Goal, error) {
	start, err := time.Parse(models.DateLayout, snap.StartDate)
	if err != nil {
		return models.Goal{}, apperrors.New(apperrors.CodeValidationFailed, "invalid goal start date %q", snap.StartDate)
	}
	end, err := time.Parse(models.DateLayout, snap.EndDate)
	if err != nil {
		return models.Goal{}, apperrors.New(apperrors.CodeValidationFailed, "invalid goal end date %q", snap.EndDate)
	}
	createdAt, err := timeFromString(snap.CreatedAt)
	if err != nil {
		return models.Goal{}, err
	}

	goal := models.Goal{
		Title:       snap.Title,
		Description: snap.Description,
		Motivation:  snap.Motivation,
		StartDate:   start,
		EndDate:     end,
		Status:      snap.Status,
		CreatedAt:   createdAt,
		UpdatedAt:   createdAt,
	}
	if snap.FinishedAt != "" {
		finishedAt, err := timeFromString(snap.FinishedAt)
		if err != nil {
			return models.Goal{}, err
		}
		goal.FinishedAt = &finishedAt
	}
	return goal, nil
}

func progressToSnapshot(progress models.DailyProgress) models.ProgressSnapshot {
	snap := models.ProgressSnapshot{
		Date:         progress.Date,
		Satisfaction: progress.Satisfaction,
		Note:         progress.Note,
		Sessions:     make([]models.SessionSnapshot, 0, len(progress.Sessions)),
		Routines:     progress.Routines,
	}
	for _, session := range progress.Sessions {
		snap.Sessions = append(snap.Sessions, models.SessionSnapshot{
			Label:           session.Label,
			StartedAt:       timeToString(session.StartedAt),
			EndedAt:         timeToString(session.EndedAt),
			DurationSeconds: session.DurationSeconds,
		})
	}
	return snap
}

func progressFromSnapshot(userID primitive.ObjectID, snap models.ProgressSnapshot) (models.DailyProgress, error) {
	progress := models.DailyProgress{
		UserID:       userID,
		Date:         snap.Date,
		Satisfaction: snap.Satisfaction,
		Note:         snap.Note,
		Sessions:     make([]models.StopwatchSession, 0, len(snap.Sessions)),
		Routines:     snap.Routines,
	}
	if progress.Routines == nil {
		progress.Routines = map[string]int{}
	}

	for _, session := range snap.Sessions {
		startedAt, err := timeFromString(session.StartedAt)
		if err != nil {
			return models.DailyProgress{}, err
		}
		endedAt, err := timeFromString(session.EndedAt)
		if err != nil {
			return models.DailyProgress{}, err
		}
		progress.Sessions = append(progress.Sessions, models.StopwatchSession{
			ID:              newEmbeddedID(),
			Label:           session.Label,
			StartedAt:       startedAt,
			EndedAt:         endedAt,
			DurationSeconds: session.DurationSeconds,
		})
	}
	progress.RecalcTotal()
	return progress, nil
}

func listItemToSnapshot(item models.ListItem) models.ListItemSnapshot {
	snap := models.ListItemSnapshot{
		Text:      item.Text,
		Done:      item.Done,
		CreatedAt: timeToString(item.CreatedAt),
	}
	if item.CompletedAt != nil {
		snap.CompletedAt = timeToString(*item.CompletedAt)
	}
	return snap
}

func listItemFromSnapshot(snap models.ListItemSnapshot) (models.ListItem, error) {
	createdAt, err := timeFromString(snap.CreatedAt)
	if err != nil {
		return models.ListItem{}, err
	}

	item := models.ListItem{
		ID:        newEmbeddedID(),
		Text:      snap.Text,
		Done:      snap.Done,
		CreatedAt: createdAt,
	}
	if snap.CompletedAt != "" {
		completedAt, err := timeFromString(snap.CompletedAt)
		if err != nil {
			return models.ListItem{}, err
		}
		item.CompletedAt = &completedAt
	}
	return item, nil
}

func resourceToSnapshot(resource models.Resource) models.ResourceSnapshot {
	return models.ResourceSnapshot{
		Title:     resource.Title,
		URL:       resource.URL,
		Category:  resource.Category,
		Note:      resource.Note,
		CreatedAt: timeToString(resource.CreatedAt),
	}
}

func resourceFromSnapshot(snap models.ResourceSnapshot) (models.Resource, error) {
	createdAt, err := timeFromString(snap.CreatedAt)
	if err != nil {
		return models.Resource{}, err
	}
	return models.Resource{
		ID:        newEmbeddedID(),
		Title:     snap.Title,
		URL:       snap.URL,
		Category:  snap.Category,
		Note:      snap.Note,
		CreatedAt: createdAt,
	}, nil
}

func noteToSnapshot(note models.StickyNote) models.StickyNoteSnapshot {
	return models.StickyNoteSnapshot{
		Text:      note.Text,
		Color:     note.Color,
		Pinned:    note.Pinned,
		CreatedAt: timeToString(note.CreatedAt),
	}
}

func noteFromSnapshot(snap models.StickyNoteSnapshot) (models.StickyNote, error) {
	createdAt, err := timeFromString(snap.CreatedAt)
	if err != nil {
		return models.StickyNote{}, err
	}
	return models.StickyNote{
		ID:        newEmbeddedID(),
		Text:      snap.Text,
		Color:     snap.Color,
		Pinned:    snap.Pinned,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}, nil
}

func transactionToSnapshot(tx models.Transaction) models.TransactionSnapshot {
	return models.TransactionSnapshot{
		Type:      tx.Type,
		Amount:    tx.Amount,
		Category:  tx.Category,
		Note:      tx.Note,
		Date:      tx.Date,
		CreatedAt: timeToString(tx.CreatedAt),
	}
}

func transactionFromSnapshot(snap models.TransactionSnapshot) (models.Transaction, error) {
	createdAt, err := timeFromString(snap.CreatedAt)
	if err != nil {
		return models.Transaction{}, err
	}
	return models.Transaction{
		ID:        newEmbeddedID(),
		Type:      snap.Type,
		Amount:    snap.Amount,
		Category:  snap.Category,
		Note:      snap.Note,
		Date:      snap.Date,
		CreatedAt: createdAt,
	}, nil
}

func blockToSnapshot(block models.TimeBlock) models.TimeBlockSnapshot {
	return models.TimeBlockSnapshot{
		Date:     block.Date,
		Start:    block.Start,
		End:      block.End,
		Title:    block.Title,
		Category: block.Category,
		Done:     block.Done,
	}
}

func blockFromSnapshot(snap models.TimeBlockSnapshot) models.TimeBlock {
	return models.TimeBlock{
		ID:        newEmbeddedID(),
		Date:      snap.Date,
		Start:     snap.Start,
		End:       snap.End,
		Title:     snap.Title,
		Category:  snap.Category,
		Done:      snap.Done,
		CreatedAt: time.Now(),
	}
}
