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

// SnapshotGoalStore is the goal access the snapshot service needs.
type SnapshotGoalStore interface {
	GetGoals(ctx context.Context, userID primitive.ObjectID, status string) ([]models.Goal, error)
	ReplaceUserGoals(ctx context.Context, userID primitive.ObjectID, goals []models.Goal) error
}

// SnapshotProgressStore is the progress access the snapshot service needs.
type SnapshotProgressStore interface {
	GetAllForUser(ctx context.Context, userID primitive.ObjectID) ([]models.DailyProgress, error)
	ReplaceUserProgress(ctx context.Context, userID primitive.ObjectID, records []models.DailyProgress) error
}

// SnapshotService exports a user's whole dataset to one JSON document and
// restores it from one. Import replaces; it never merges.
type SnapshotService struct {
	users    UserStore
	goals    SnapshotGoalStore
	progress SnapshotProgressStore
	lists    ListStore
	boards   BoardStore
	finance  FinanceStore
	planner  PlannerStore
}

// NewSnapshotService creates a new instance of SnapshotService.
func NewSnapshotService(
	users UserStore,
	goals SnapshotGoalStore,
	progress SnapshotProgressStore,
	lists ListStore,
	boards BoardStore,
	finance FinanceStore,
	planner PlannerStore,
) *SnapshotService {
	return &SnapshotService{
		users:    users,
		goals:    goals,
		progress: progress,
		lists:    lists,
		boards:   boards,
		finance:  finance,
		planner:  planner,
	}
}

// newEmbeddedID mints ids for embedded records rebuilt on import. The
// snapshot format deliberately carries no ids.
func newEmbeddedID() string {
	return uuid.NewString()
}

// Export collects everything the user owns into one snapshot.
func (s *SnapshotService) Export(ctx context.Context, userID primitive.ObjectID) (*models.Snapshot, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		logrus.WithError(err).Error("Failed to load user for export")
		return nil, apperrors.Wrap(apperrors.CodeOperationFailed, err, "failed to export")
	}

	snap := &models.Snapshot{
		Version:         1,
		ExportedAt:      time.Now().Format(time.RFC3339),
		Username:        user.Username,
		Email:           user.Email,
		Settings:        user.Settings,
		RoutineSettings: user.RoutineSettings,
		Goals:           []models.GoalSnapshot{},
		Progress:        []models.ProgressSnapshot{},
		Todo:            []models.ListItemSnapshot{},
		NotTodo:         []models.ListItemSnapshot{},
		Resources:       []models.ResourceSnapshot{},
		Notes:           []models.StickyNoteSnapshot{},
		Transactions:    []models.TransactionSnapshot{},
		Blocks:          []models.TimeBlockSnapshot{},
	}

	goals, err := s.goals.GetGoals(ctx, userID, "")
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeOperationFailed, err, "failed to export goals")
	}
	for _, goal := range goals {
		snap.Goals = append(snap.Goals, goalToSnapshot(goal))
	}

	records, err := s.progress.GetAllForUser(ctx, userID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeOperationFailed, err, "failed to export progress")
	}
	for _, record := range records {
		snap.Progress = append(snap.Progress, progressToSnapshot(record))
	}

	lists, err := s.lists.Get(ctx, userID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeOperationFailed, err, "failed to export lists")
	}
	if lists != nil {
		for _, item := range lists.Todo {
			snap.Todo = append(snap.Todo, listItemToSnapshot(item))
		}
		for _, item := range lists.NotTodo {
			snap.NotTodo = append(snap.NotTodo, listItemToSnapshot(item))
		}
	}

	board, err := s.boards.Get(ctx, userID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeOperationFailed, err, "failed to export board")
	}
	if board != nil {
		for _, resource := range board.Resources {
			snap.Resources = append(snap.Resources, resourceToSnapshot(resource))
		}
		for _, note := range board.Notes {
			snap.Notes = append(snap.Notes, noteToSnapshot(note))
		}
	}

	finance, err := s.finance.Get(ctx, userID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeOperationFailed, err, "failed to export finance")
	}
	if finance != nil {
		for _, tx := range finance.Transactions {
			snap.Transactions = append(snap.Transactions, transactionToSnapshot(tx))
		}
	}

	planner, err := s.planner.Get(ctx, userID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeOperationFailed, err, "failed to export planner")
	}
	if planner != nil {
		for _, block := range planner.Blocks {
			snap.Blocks = append(snap.Blocks, blockToSnapshot(block))
		}
	}

	logrus.WithField("user_id", userID.Hex()).Info("Snapshot exported")
	return snap, nil
}

// Import validates the snapshot and replaces the user's goal, progress,
// list, board, finance and planner data wholesale. Account identity
// (username, email, password) is never touched.
func (s *SnapshotService) Import(ctx context.Context, userID primitive.ObjectID, snap *models.Snapshot) error {
	if snap == nil {
		return apperrors.New(apperrors.CodeValidationFailed, "empty snapshot")
	}
	if err := validation.Struct(snap); err != nil {
		return err
	}

	goals := make([]models.Goal, 0, len(snap.Goals))
	activeCount := 0
	for _, goalSnap := range snap.Goals {
		goal, err := goalFromSnapshot(goalSnap)
		if err != nil {
			return err
		}
		if goal.Status == models.GoalStatusActive {
			activeCount++
		}
		goals = append(goals, goal)
	}
	if activeCount > 1 {
		return apperrors.New(apperrors.CodeValidationFailed, "snapshot holds %d active goals, at most one is allowed", activeCount)
	}

	records := make([]models.DailyProgress, 0, len(snap.Progress))
	seenDates := map[string]bool{}
	for _, progressSnap := range snap.Progress {
		if seenDates[progressSnap.Date] {
			return apperrors.New(apperrors.CodeValidationFailed, "snapshot holds date %s twice", progressSnap.Date)
		}
		seenDates[progressSnap.Date] = true

		record, err := progressFromSnapshot(userID, progressSnap)
		if err != nil {
			return err
		}
		records = append(records, record)
	}

	todo := make([]models.ListItem, 0, len(snap.Todo))
	for _, itemSnap := range snap.Todo {
		item, err := listItemFromSnapshot(itemSnap)
		if err != nil {
			return err
		}
		todo = append(todo, item)
	}
	notTodo := make([]models.ListItem, 0, len(snap.NotTodo))
	for _, itemSnap := range snap.NotTodo {
		item, err := listItemFromSnapshot(itemSnap)
		if err != nil {
			return err
		}
		notTodo = append(notTodo, item)
	}

	resources := make([]models.Resource, 0, len(snap.Resources))
	for _, resourceSnap := range snap.Resources {
		resource, err := resourceFromSnapshot(resourceSnap)
		if err != nil {
			return err
		}
		resources = append(resources, resource)
	}
	notes := make([]models.StickyNote, 0, len(snap.Notes))
	for _, noteSnap := range snap.Notes {
		note, err := noteFromSnapshot(noteSnap)
		if err != nil {
			return err
		}
		notes = append(notes, note)
	}

	transactions := make([]models.Transaction, 0, len(snap.Transactions))
	for _, txSnap := range snap.Transactions {
		tx, err := transactionFromSnapshot(txSnap)
		if err != nil {
			return err
		}
		transactions = append(transactions, tx)
	}

	blocks := make([]models.TimeBlock, 0, len(snap.Blocks))
	for _, blockSnap := range snap.Blocks {
		blocks = append(blocks, blockFromSnapshot(blockSnap))
	}

	routineSettings := models.RoutineSettings{}
	for kind, plan := range snap.RoutineSettings {
		if models.AllowedRoutineKinds[kind] {
			routineSettings[kind] = plan
		}
	}

	// Everything parsed; write the replacement documents.
	if err := s.users.UpdateSettings(ctx, userID, snap.Settings); err != nil {
		return apperrors.Wrap(apperrors.CodeOperationFailed, err, "failed to import settings")
	}
	if len(routineSettings) > 0 {
		if err := s.users.UpdateRoutineSettings(ctx, userID, routineSettings); err != nil {
			return apperrors.Wrap(apperrors.CodeOperationFailed, err, "failed to import routine settings")
		}
	}
	if err := s.goals.ReplaceUserGoals(ctx, userID, goals); err != nil {
		return apperrors.Wrap(apperrors.CodeOperationFailed, err, "failed to import goals")
	}
	if err := s.progress.ReplaceUserProgress(ctx, userID, records); err != nil {
		return apperrors.Wrap(apperrors.CodeOperationFailed, err, "failed to import progress")
	}
	if err := s.lists.SetItems(ctx, userID, models.ListKindTodo, todo); err != nil {
		return apperrors.Wrap(apperrors.CodeOperationFailed, err, "failed to import to-do list")
	}
	if err := s.lists.SetItems(ctx, userID, models.ListKindNotTodo, notTodo); err != nil {
		return apperrors.Wrap(apperrors.CodeOperationFailed, err, "failed to import not-to-do list")
	}
	if err := s.boards.SetResources(ctx, userID, resources); err != nil {
		return apperrors.Wrap(apperrors.CodeOperationFailed, err, "failed to import resources")
	}
	if err := s.boards.SetNotes(ctx, userID, notes); err != nil {
		return apperrors.Wrap(apperrors.CodeOperationFailed, err, "failed to import notes")
	}
	if err := s.finance.SetTransactions(ctx, userID, transactions); err != nil {
		return apperrors.Wrap(apperrors.CodeOperationFailed, err, "failed to import transactions")
	}
	if err := s.planner.SetBlocks(ctx, userID, blocks); err != nil {
		return apperrors.Wrap(apperrors.CodeOperationFailed, err, "failed to import planner")
	}

	logrus.WithFields(logrus.Fields{
		"user_id":  userID.Hex(),
		"goals":    len(goals),
		"progress": len(records),
	}).Info("Snapshot imported")
	return nil
}
