package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	GoalStatusActive    = "active"
	GoalStatusCompleted = "completed"
	GoalStatusAbandoned = "abandoned"
)

// Goal is the single objective a user works toward. Only one goal per user
// may be active at a time; finished goals stay around as history.
type Goal struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID      primitive.ObjectID `bson:"user_id" json:"user_id"`
	Title       string             `bson:"title" json:"title" validate:"required,max=200"`
	Description string             `bson:"description" json:"description" validate:"max=2000"`
	Motivation  string             `bson:"motivation,omitempty" json:"motivation,omitempty" validate:"max=2000"`
	StartDate   time.Time          `bson:"start_date" json:"start_date"`
	EndDate     time.Time          `bson:"end_date" json:"end_date"`
	Status      string             `bson:"status" json:"status"`
	FinishedAt  *time.Time         `bson:"finished_at,omitempty" json:"finished_at,omitempty"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`
}

func (g *Goal) IsActive() bool {
	return g.Status == GoalStatusActive
}
