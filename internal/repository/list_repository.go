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

// ListRepository stores both of a user's lists in a single document.
type ListRepository struct {
	collection *mongo.Collection
}

func NewListRepository(db *mongo.Database) *ListRepository {
	return &ListRepository{collection: db.Collection("lists")}
}

// Get returns the user's lists document, or nil when none exists yet.
func (r *ListRepository) Get(ctx context.Context, userID primitive.ObjectID) (*models.UserLists, error) {
	var lists models.UserLists
	err := r.collection.FindOne(ctx, bson.M{"user_id": userID}).Decode(&lists)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get lists: %v", err)
	}
	return &lists, nil
}

// SetItems writes one list's items back into the user's document, creating
// the document on first write.
func (r *ListRepository) SetItems(ctx context.Context, userID primitive.ObjectID, kind string, items []models.ListItem) error {
	update := bson.M{"$set": bson.M{
		models.ListFieldName(kind): items,
		"updated_at":               time.Now(),
	}}

	_, err := r.collection.UpdateOne(ctx, bson.M{"user_id": userID}, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to set %s list: %v", kind, err)
	}
	return nil
}
