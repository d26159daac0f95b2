package services

import (
	"context"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"onegoal/internal/models"
)

// In-memory stores for exercising the services without a database. They copy
// on the way in and out so a service only changes state through an explicit
// write, the way the real repositories behave.

type fakeProgressStore struct {
	records map[string]*models.DailyProgress
	upserts int
}

func newFakeProgressStore() *fakeProgressStore {
	return &fakeProgressStore{records: map[string]*models.DailyProgress{}}
}

func cloneProgress(p *models.DailyProgress) *models.DailyProgress {
	clone := *p
	clone.Sessions = append([]models.StopwatchSession{}, p.Sessions...)
	clone.Routines = map[string]int{}
	for k, v := range p.Routines {
		clone.Routines[k] = v
	}
	return &clone
}

func (f *fakeProgressStore) GetByDate(_ context.Context, _ primitive.ObjectID, date string) (*models.DailyProgress, error) {
	record, ok := f.records[date]
	if !ok {
		return nil, nil
	}
	return cloneProgress(record), nil
}

func (f *fakeProgressStore) GetRange(_ context.Context, _ primitive.ObjectID, from, to string) ([]models.DailyProgress, error) {
	dates := make([]string, 0, len(f.records))
	for date := range f.records {
		if date >= from && date <= to {
			dates = append(dates, date)
		}
	}
	sort.Strings(dates)

	records := make([]models.DailyProgress, 0, len(dates))
	for _, date := range dates {
		records = append(records, *cloneProgress(f.records[date]))
	}
	return records, nil
}

func (f *fakeProgressStore) GetAllForUser(ctx context.Context, userID primitive.ObjectID) ([]models.DailyProgress, error) {
	return f.GetRange(ctx, userID, "0000-00-00", "9999-99-99")
}

func (f *fakeProgressStore) Upsert(_ context.Context, progress *models.DailyProgress) error {
	f.upserts++
	f.records[progress.Date] = cloneProgress(progress)
	return nil
}

func (f *fakeProgressStore) ReplaceUserProgress(_ context.Context, userID primitive.ObjectID, records []models.DailyProgress) error {
	f.records = map[string]*models.DailyProgress{}
	for i := range records {
		records[i].UserID = userID
		f.records[records[i].Date] = cloneProgress(&records[i])
	}
	return nil
}

type fakeGoalStore struct {
	goals map[primitive.ObjectID]*models.Goal
	order []primitive.ObjectID
}

func newFakeGoalStore() *fakeGoalStore {
	return &fakeGoalStore{goals: map[primitive.ObjectID]*models.Goal{}}
}

func (f *fakeGoalStore) CreateGoal(_ context.Context, goal *models.Goal) (*models.Goal, error) {
	goal.ID = primitive.NewObjectID()
	goal.CreatedAt = time.Now()
	goal.UpdatedAt = goal.CreatedAt
	clone := *goal
	f.goals[goal.ID] = &clone
	f.order = append(f.order, goal.ID)
	return goal, nil
}

func (f *fakeGoalStore) GetGoalByID(_ context.Context, id primitive.ObjectID) (*models.Goal, error) {
	goal, ok := f.goals[id]
	if !ok {
		return nil, nil
	}
	clone := *goal
	return &clone, nil
}

func (f *fakeGoalStore) GetActiveGoal(_ context.Context, userID primitive.ObjectID) (*models.Goal, error) {
	for _, goal := range f.goals {
		if goal.UserID == userID && goal.Status == models.GoalStatusActive {
			clone := *goal
			return &clone, nil
		}
	}
	return nil, nil
}

func (f *fakeGoalStore) GetGoals(_ context.Context, userID primitive.ObjectID, status string) ([]models.Goal, error) {
	goals := []models.Goal{}
	for i := len(f.order) - 1; i >= 0; i-- {
		goal, ok := f.goals[f.order[i]]
		if !ok || goal.UserID != userID {
			continue
		}
		if status != "" && goal.Status != status {
			continue
		}
		goals = append(goals, *goal)
	}
	return goals, nil
}

func (f *fakeGoalStore) GetAllActiveGoals(_ context.Context, limit int64) ([]models.Goal, error) {
	goals := []models.Goal{}
	for _, id := range f.order {
		goal, ok := f.goals[id]
		if !ok || goal.Status != models.GoalStatusActive {
			continue
		}
		goals = append(goals, *goal)
		if limit > 0 && int64(len(goals)) == limit {
			break
		}
	}
	return goals, nil
}

func (f *fakeGoalStore) UpdateGoalFields(_ context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	goal, ok := f.goals[id]
	if !ok {
		return nil
	}
	for key, value := range updates {
		switch key {
		case "title":
			goal.Title = value.(string)
		case "description":
			goal.Description = value.(string)
		case "motivation":
			goal.Motivation = value.(string)
		case "start_date":
			goal.StartDate = value.(time.Time)
		case "end_date":
			goal.EndDate = value.(time.Time)
		case "status":
			goal.Status = value.(string)
		case "finished_at":
			t := value.(time.Time)
			goal.FinishedAt = &t
		case "updated_at":
			goal.UpdatedAt = value.(time.Time)
		}
	}
	return nil
}

func (f *fakeGoalStore) DeleteGoal(_ context.Context, id primitive.ObjectID) error {
	delete(f.goals, id)
	return nil
}

func (f *fakeGoalStore) ReplaceUserGoals(_ context.Context, userID primitive.ObjectID, goals []models.Goal) error {
	for id, goal := range f.goals {
		if goal.UserID == userID {
			delete(f.goals, id)
		}
	}
	f.order = nil
	for i := range goals {
		goals[i].ID = primitive.NewObjectID()
		goals[i].UserID = userID
		clone := goals[i]
		f.goals[clone.ID] = &clone
		f.order = append(f.order, clone.ID)
	}
	return nil
}

type fakeUserStore struct {
	users map[primitive.ObjectID]*models.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[primitive.ObjectID]*models.User{}}
}

func (f *fakeUserStore) CreateUser(_ context.Context, user *models.User) (*models.User, error) {
	user.ID = primitive.NewObjectID()
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	clone := *user
	f.users[user.ID] = &clone
	return user, nil
}

func (f *fakeUserStore) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, errNotFound
}

func (f *fakeUserStore) GetUserByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, errNotFound
	}
	clone := *user
	return &clone, nil
}

func (f *fakeUserStore) UpdateSettings(_ context.Context, id primitive.ObjectID, settings models.UserSettings) error {
	if user, ok := f.users[id]; ok {
		user.Settings = settings
	}
	return nil
}

func (f *fakeUserStore) UpdateRoutineSettings(_ context.Context, id primitive.ObjectID, settings models.RoutineSettings) error {
	if user, ok := f.users[id]; ok {
		user.RoutineSettings = settings
	}
	return nil
}

func (f *fakeUserStore) UpdateLastActive(_ context.Context, id primitive.ObjectID) error {
	if user, ok := f.users[id]; ok {
		user.LastActiveAt = time.Now()
	}
	return nil
}

func (f *fakeUserStore) GetAllUsers(_ context.Context) ([]*models.User, error) {
	users := make([]*models.User, 0, len(f.users))
	for _, user := range f.users {
		clone := *user
		users = append(users, &clone)
	}
	return users, nil
}

type fakeListStore struct {
	lists *models.UserLists
}

func (f *fakeListStore) Get(_ context.Context, _ primitive.ObjectID) (*models.UserLists, error) {
	if f.lists == nil {
		return nil, nil
	}
	clone := *f.lists
	clone.Todo = append([]models.ListItem{}, f.lists.Todo...)
	clone.NotTodo = append([]models.ListItem{}, f.lists.NotTodo...)
	return &clone, nil
}

func (f *fakeListStore) SetItems(_ context.Context, userID primitive.ObjectID, kind string, items []models.ListItem) error {
	if f.lists == nil {
		f.lists = &models.UserLists{UserID: userID}
	}
	f.lists.SetItems(kind, append([]models.ListItem{}, items...))
	return nil
}

type fakeBoardStore struct {
	board *models.Board
}

func (f *fakeBoardStore) Get(_ context.Context, _ primitive.ObjectID) (*models.Board, error) {
	if f.board == nil {
		return nil, nil
	}
	clone := *f.board
	clone.Resources = append([]models.Resource{}, f.board.Resources...)
	clone.Notes = append([]models.StickyNote{}, f.board.Notes...)
	return &clone, nil
}

func (f *fakeBoardStore) SetResources(_ context.Context, userID primitive.ObjectID, resources []models.Resource) error {
	if f.board == nil {
		f.board = &models.Board{UserID: userID}
	}
	f.board.Resources = append([]models.Resource{}, resources...)
	return nil
}

func (f *fakeBoardStore) SetNotes(_ context.Context, userID primitive.ObjectID, notes []models.StickyNote) error {
	if f.board == nil {
		f.board = &models.Board{UserID: userID}
	}
	f.board.Notes = append([]models.StickyNote{}, notes...)
	return nil
}

type fakeFinanceStore struct {
	finance *models.Finance
}

func (f *fakeFinanceStore) Get(_ context.Context, _ primitive.ObjectID) (*models.Finance, error) {
	if f.finance == nil {
		return nil, nil
	}
	clone := *f.finance
	clone.Transactions = append([]models.Transaction{}, f.finance.Transactions...)
	return &clone, nil
}

func (f *fakeFinanceStore) SetTransactions(_ context.Context, userID primitive.ObjectID, transactions []models.Transaction) error {
	if f.finance == nil {
		f.finance = &models.Finance{UserID: userID}
	}
	f.finance.Transactions = append([]models.Transaction{}, transactions...)
	return nil
}

type fakePlannerStore struct {
	planner *models.Planner
}

func (f *fakePlannerStore) Get(_ context.Context, _ primitive.ObjectID) (*models.Planner, error) {
	if f.planner == nil {
		return nil, nil
	}
	clone := *f.planner
	clone.Blocks = append([]models.TimeBlock{}, f.planner.Blocks...)
	return &clone, nil
}

func (f *fakePlannerStore) SetBlocks(_ context.Context, userID primitive.ObjectID, blocks []models.TimeBlock) error {
	if f.planner == nil {
		f.planner = &models.Planner{UserID: userID}
	}
	f.planner.Blocks = append([]models.TimeBlock{}, blocks...)
	return nil
}

type notifierCall struct {
	userID    primitive.ObjectID
	notifType string
	title     string
}

type fakeNotifier struct {
	calls []notifierCall
}

func (f *fakeNotifier) CreateNotification(_ context.Context, userID primitive.ObjectID, notifType, title, _ string, _ *primitive.ObjectID) error {
	f.calls = append(f.calls, notifierCall{userID: userID, notifType: notifType, title: title})
	return nil
}

var errNotFound = &notFoundError{}

type notFoundError struct{}

func (*notFoundError) Error() string { return "not found" }
