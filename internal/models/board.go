package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Resource is a saved reference: an article, a video, a book.
type Resource struct {
	ID        string    `bson:"id" json:"id"`
	Title     string    `bson:"title" json:"title" validate:"required,max=200"`
	URL       string    `bson:"url,omitempty" json:"url,omitempty" validate:"omitempty,url"`
	Category  string    `bson:"category,omitempty" json:"category,omitempty" validate:"max=100"`
	Note      string    `bson:"note,omitempty" json:"note,omitempty" validate:"max=2000"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// StickyNote is a short pinboard note.
type StickyNote struct {
	ID        string    `bson:"id" json:"id"`
	Text      string    `bson:"text" json:"text" validate:"required,max=1000"`
	Color     string    `bson:"color,omitempty" json:"color,omitempty" validate:"omitempty,hexcolor"`
	Pinned    bool      `bson:"pinned" json:"pinned"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// Board is the per-user document holding resources and sticky notes.
type Board struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"user_id" json:"user_id"`
	Resources []Resource         `bson:"resources" json:"resources" validate:"dive"`
	Notes     []StickyNote       `bson:"notes" json:"notes" validate:"dive"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
}
