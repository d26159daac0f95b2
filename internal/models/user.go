package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents an account in the tracker.
type User struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Username        string             `bson:"username" json:"username" validate:"required,min=2,max=64"`
	Email           string             `bson:"email" json:"email" validate:"required,email"`
	HashedPassword  string             `bson:"hashed_password" json:"-"`
	Settings        UserSettings       `bson:"settings" json:"settings"`
	RoutineSettings RoutineSettings    `bson:"routine_settings" json:"routine_settings"`
	LastActiveAt    time.Time          `bson:"last_active_at" json:"last_active_at"`
	CreatedAt       time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt       time.Time          `bson:"updated_at" json:"updated_at"`
}

// UserSettings are the per-account preferences.
type UserSettings struct {
	Timezone    string `bson:"timezone" json:"timezone"`
	DigestEmail bool   `bson:"digest_email" json:"digest_email"`
}

// PublicUser is the profile shape returned to clients.
type PublicUser struct {
	ID       primitive.ObjectID `json:"id"`
	Username string             `json:"username"`
	Email    string             `json:"email"`
}

func (u *User) Public() PublicUser {
	return PublicUser{ID: u.ID, Username: u.Username, Email: u.Email}
}
