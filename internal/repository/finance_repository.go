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

// FinanceRepository stores a user's transactions in a single document.
type FinanceRepository struct {
	collection *mongo.Collection
}

func NewFinanceRepository(db *mongo.Database) *FinanceRepository {
	return &FinanceRepository{collection: db.Collection("finance")}
}

// Get returns the user's finance document, or nil when none exists yet.
func (r *FinanceRepository) Get(ctx context.Context, userID primitive.ObjectID) (*models.Finance, error) {
	var finance models.Finance
	err := r.collection.FindOne(ctx, bson.M{"user_id": userID}).Decode(&finance)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get finance record: %v", err)
	}
	return &finance, nil
}

func (r *FinanceRepository) SetTransactions(ctx context.Context, userID primitive.ObjectID, transactions []models.Transaction) error {
	update := bson.M{"$set": bson.M{
		"transactions": transactions,
		"updated_at":   time.Now(),
	}}

	_, err := r.collection.UpdateOne(ctx, bson.M{"user_id": userID}, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to set transactions: %v", err)
	}
	return nil
}
