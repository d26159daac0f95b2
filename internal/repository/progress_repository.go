package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"onegoal/internal/models"
)

// ProgressRepository handles database operations for daily progress records.
// One document per (user, date).
type ProgressRepository struct {
	collection *mongo.Collection
}

// NewProgressRepository creates a new instance of ProgressRepository.
func NewProgressRepository(db *mongo.Database) *ProgressRepository {
	return &ProgressRepository{
		collection: db.Collection("progress"),
	}
}

// GetByDate fetches the progress record for one day. Returns nil without an
// error when the day has no record yet.
func (r *ProgressRepository) GetByDate(ctx context.Context, userID primitive.ObjectID, date string) (*models.DailyProgress, error) {
	var progress models.DailyProgress

	filter := bson.M{"user_id": userID, "date": date}
	err := r.collection.FindOne(ctx, filter).Decode(&progress)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		logrus.WithFields(logrus.Fields{
			"user_id": userID.Hex(),
			"date":    date,
			"error":   err,
		}).Error("Failed to fetch progress")
		return nil, fmt.Errorf("failed to fetch progress: %v", err)
	}

	return &progress, nil
}

// GetRange fetches progress records between two dates inclusive, oldest
// first. Date strings sort lexicographically, so the comparison works on the
// raw YYYY-MM-DD keys.
func (r *ProgressRepository) GetRange(ctx context.Context, userID primitive.ObjectID, from, to string) ([]models.DailyProgress, error) {
	filter := bson.M{
		"user_id": userID,
		"date":    bson.M{"$gte": from, "$lte": to},
	}
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch progress range: %v", err)
	}
	defer cursor.Close(ctx)

	var records []models.DailyProgress
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("failed to decode progress records: %v", err)
	}
	return records, nil
}

// GetAllForUser fetches every progress record the user has, oldest first.
// Used by snapshot export.
func (r *ProgressRepository) GetAllForUser(ctx context.Context, userID primitive.ObjectID) ([]models.DailyProgress, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch progress records: %v", err)
	}
	defer cursor.Close(ctx)

	var records []models.DailyProgress
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("failed to decode progress records: %v", err)
	}
	return records, nil
}

// Upsert writes the record's named fields back to its (user, date) document,
// creating the document when the day is new.
func (r *ProgressRepository) Upsert(ctx context.Context, progress *models.DailyProgress) error {
	now := time.Now()
	progress.UpdatedAt = now

	filter := bson.M{"user_id": progress.UserID, "date": progress.Date}
	update := bson.M{
		"$set": bson.M{
			"satisfaction":  progress.Satisfaction,
			"note":          progress.Note,
			"sessions":      progress.Sessions,
			"routines":      progress.Routines,
			"total_seconds": progress.TotalSeconds,
			"updated_at":    now,
		},
		"$setOnInsert": bson.M{"created_at": now},
	}

	_, err := r.collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"user_id": progress.UserID.Hex(),
			"date":    progress.Date,
			"error":   err,
		}).Error("Failed to upsert progress")
		return fmt.Errorf("failed to upsert progress: %v", err)
	}

	return nil
}

// ReplaceUserProgress swaps out every progress record the user has. Used by
// snapshot import.
func (r *ProgressRepository) ReplaceUserProgress(ctx context.Context, userID primitive.ObjectID, records []models.DailyProgress) error {
	if _, err := r.collection.DeleteMany(ctx, bson.M{"user_id": userID}); err != nil {
		return fmt.Errorf("failed to clear progress: %v", err)
	}

	if len(records) == 0 {
		return nil
	}

	docs := make([]interface{}, 0, len(records))
	for i := range records {
		records[i].UserID = userID
		docs = append(docs, records[i])
	}

	if _, err := r.collection.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("failed to insert progress records: %v", err)
	}

	logrus.WithFields(logrus.Fields{
		"user_id": userID.Hex(),
		"count":   len(records),
	}).Info("User progress replaced")
	return nil
}
