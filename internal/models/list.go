package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// List kinds: things to do and things to stay away from.
const (
	ListKindTodo    = "todo"
	ListKindNotTodo = "not-todo"
)

var AllowedListKinds = map[string]bool{
	ListKindTodo:    true,
	ListKindNotTodo: true,
}

// ListItem is one entry on either list.
type ListItem struct {
	ID          string     `bson:"id" json:"id"`
	Text        string     `bson:"text" json:"text" validate:"required,max=500"`
	Done        bool       `bson:"done" json:"done"`
	CreatedAt   time.Time  `bson:"created_at" json:"created_at"`
	CompletedAt *time.Time `bson:"completed_at,omitempty" json:"completed_at,omitempty"`
}

// UserLists is the per-user document holding both lists.
type UserLists struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"user_id" json:"user_id"`
	Todo      []ListItem         `bson:"todo" json:"todo" validate:"dive"`
	NotTodo   []ListItem         `bson:"not_todo" json:"not_todo" validate:"dive"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
}

// Items returns the slice for a kind.
func (l *UserLists) Items(kind string) []ListItem {
	if kind == ListKindNotTodo {
		return l.NotTodo
	}
	return l.Todo
}

// SetItems replaces the slice for a kind.
func (l *UserLists) SetItems(kind string, items []ListItem) {
	if kind == ListKindNotTodo {
		l.NotTodo = items
		return
	}
	l.Todo = items
}

// ListFieldName maps a kind to its document field for targeted updates.
func ListFieldName(kind string) string {
	if kind == ListKindNotTodo {
		return "not_todo"
	}
	return "todo"
}
