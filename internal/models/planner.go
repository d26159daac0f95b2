package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TimeBlock is a planned stretch of a day.
type TimeBlock struct {
	ID        string    `bson:"id" json:"id"`
	Date      string    `bson:"date" json:"date" validate:"required,dateymd"`
	Start     string    `bson:"start" json:"start" validate:"required,clockhm"`
	End       string    `bson:"end" json:"end" validate:"required,clockhm"`
	Title     string    `bson:"title" json:"title" validate:"required,max=200"`
	Category  string    `bson:"category,omitempty" json:"category,omitempty" validate:"max=100"`
	Done      bool      `bson:"done" json:"done"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// Planner is the per-user document holding all time blocks.
type Planner struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"user_id" json:"user_id"`
	Blocks    []TimeBlock        `bson:"blocks" json:"blocks" validate:"dive"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
}
