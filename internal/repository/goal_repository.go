package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"onegoal/internal/models"
	"onegoal/pkg/logger"
)

// GoalRepository struct handles database operations related to goals
type GoalRepository struct {
	collection *mongo.Collection
}

// NewGoalRepository creates a new instance of GoalRepository
func NewGoalRepository(db *mongo.Database) *GoalRepository {
	return &GoalRepository{
		collection: db.Collection("goals"),
	}
}

// CreateGoal creates a new goal in the database
func (r *GoalRepository) CreateGoal(ctx context.Context, goal *models.Goal) (*models.Goal, error) {
	goal.CreatedAt = time.Now()
	goal.UpdatedAt = time.Now()

	result, err := r.collection.InsertOne(ctx, goal)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to insert goal")
		return nil, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		logger.Log.Error("Failed to cast inserted ID")
		return nil, err
	}
	goal.ID = insertedID

	logger.Log.WithField("goal_id", goal.ID.Hex()).Info("Goal created successfully")
	return goal, nil
}

// GetGoalByID fetches a goal by its ID
func (r *GoalRepository) GetGoalByID(ctx context.Context, id primitive.ObjectID) (*models.Goal, error) {
	var goal models.Goal

	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&goal)
	if err != nil {
		logger.Log.WithError(err).WithField("goal_id", id.Hex()).Error("Failed to find goal by ID")
		return nil, err
	}

	return &goal, nil
}

// GetActiveGoal fetches the user's single active goal. Returns nil without an
// error when the user has no active goal.
func (r *GoalRepository) GetActiveGoal(ctx context.Context, userID primitive.ObjectID) (*models.Goal, error) {
	var goal models.Goal

	filter := bson.M{"user_id": userID, "status": models.GoalStatusActive}
	err := r.collection.FindOne(ctx, filter).Decode(&goal)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		logger.Log.WithError(err).WithField("user_id", userID.Hex()).Error("Failed to find active goal")
		return nil, err
	}

	return &goal, nil
}

// GetGoals fetches goals for a specific user with an optional status filter,
// newest first
func (r *GoalRepository) GetGoals(ctx context.Context, userID primitive.ObjectID, status string) ([]models.Goal, error) {
	var goals []models.Goal

	filter := bson.M{"user_id": userID}
	if status != "" {
		filter["status"] = status
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		logger.Log.WithError(err).WithField("user_id", userID.Hex()).Error("Failed to fetch goals")
		return nil, err
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var goal models.Goal
		if err := cursor.Decode(&goal); err != nil {
			logger.Log.WithError(err).Error("Failed to decode goal")
			return nil, err
		}
		goals = append(goals, goal)
	}

	return goals, nil
}

// UpdateGoalFields merges the named fields into an existing goal
func (r *GoalRepository) UpdateGoalFields(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()

	_, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": updates},
	)
	if err != nil {
		logger.Log.WithError(err).WithField("goal_id", id.Hex()).Error("Failed to update goal")
		return err
	}

	logger.Log.WithField("goal_id", id.Hex()).Info("Goal updated successfully")
	return nil
}

// DeleteGoal deletes a goal from the database by its ID
func (r *GoalRepository) DeleteGoal(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		logger.Log.WithError(err).WithField("goal_id", id.Hex()).Error("Failed to delete goal")
		return err
	}

	logger.Log.WithField("goal_id", id.Hex()).Info("Goal deleted successfully")
	return nil
}

// GetAllActiveGoals fetches active goals across all users for the deadline scan
func (r *GoalRepository) GetAllActiveGoals(ctx context.Context, limit int64) ([]models.Goal, error) {
	var goals []models.Goal

	findOptions := options.Find().SetLimit(limit)
	cursor, err := r.collection.Find(ctx, bson.M{"status": models.GoalStatusActive}, findOptions)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to fetch active goals")
		return nil, err
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var goal models.Goal
		if err := cursor.Decode(&goal); err != nil {
			logger.Log.WithError(err).Error("Failed to decode goal")
			return nil, err
		}
		goals = append(goals, goal)
	}

	return goals, nil
}

// ReplaceUserGoals swaps out every goal the user has. Used by snapshot import.
func (r *GoalRepository) ReplaceUserGoals(ctx context.Context, userID primitive.ObjectID, goals []models.Goal) error {
	if _, err := r.collection.DeleteMany(ctx, bson.M{"user_id": userID}); err != nil {
		logger.Log.WithError(err).WithField("user_id", userID.Hex()).Error("Failed to clear goals")
		return err
	}

	if len(goals) == 0 {
		return nil
	}

	docs := make([]interface{}, 0, len(goals))
	for i := range goals {
		goals[i].UserID = userID
		docs = append(docs, goals[i])
	}

	if _, err := r.collection.InsertMany(ctx, docs); err != nil {
		logger.Log.WithError(err).WithField("user_id", userID.Hex()).Error("Failed to insert goals")
		return err
	}

	logger.Log.WithFields(map[string]interface{}{
		"user_id": userID.Hex(),
		"count":   len(goals),
	}).Info("User goals replaced")
	return nil
}
