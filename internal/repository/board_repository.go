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

// BoardRepository stores a user's resources and sticky notes in a single
// document.
type BoardRepository struct {
	collection *mongo.Collection
}

func NewBoardRepository(db *mongo.Database) *BoardRepository {
	return &BoardRepository{collection: db.Collection("boards")}
}

// Get returns the user's board document, or nil when none exists yet.
func (r *BoardRepository) Get(ctx context.Context, userID primitive.ObjectID) (*models.Board, error) {
	var board models.Board
	err := r.collection.FindOne(ctx, bson.M{"user_id": userID}).Decode(&board)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get board: %v", err)
	}
	return &board, nil
}

func (r *BoardRepository) SetResources(ctx context.Context, userID primitive.ObjectID, resources []models.Resource) error {
	update := bson.M{"$set": bson.M{
		"resources":  resources,
		"updated_at": time.Now(),
	}}

	_, err := r.collection.UpdateOne(ctx, bson.M{"user_id": userID}, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to set resources: %v", err)
	}
	return nil
}

func (r *BoardRepository) SetNotes(ctx context.Context, userID primitive.ObjectID, notes []models.StickyNote) error {
	update := bson.M{"$set": bson.M{
		"notes":      notes,
		"updated_at": time.Now(),
	}}

	_, err := r.collection.UpdateOne(ctx, bson.M{"user_id": userID}, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to set notes: %v", err)
	}
	return nil
}
