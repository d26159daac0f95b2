package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"onegoal/internal/models"
)

// PlannerRepository stores a user's time blocks in a single document.
type PlannerRepository struct {
	collection *mongo.Collection
}

func NewPlannerRepository(db *mongo.Database) *PlannerRepository {
	return &PlannerRepository{collection: db.Collection("planner")}
}

// Get returns the user's planner document, or nil when none exists yet.
func (r *PlannerRepository) Get(ctx context.Context, userID primitive.ObjectID) (*models.Planner, error) {
	var planner models.Planner
	err := r.collection.FindOne(ctx, bson.M{"user_id": userID}).Decode(&planner)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get planner: %v", err)
	}
	return &planner, nil
}

func (r *PlannerRepository) SetBlocks(ctx context.Context, userID primitive.ObjectID, blocks []models.TimeBlock) error {
	update := bson.M{"$set": bson.M{
		"blocks":     blocks,
		"updated_at": time.Now(),
	}}

	_, err := r.collection.UpdateOne(ctx, bson.M{"user_id": userID}, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to set time blocks: %v", err)
	}
	return nil
}
