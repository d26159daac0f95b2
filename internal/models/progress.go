package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Satisfaction levels a user can assign to a day.
const (
	SatisfactionAwful   = "awful"
	SatisfactionBad     = "bad"
	SatisfactionNeutral = "neutral"
	SatisfactionGood    = "good"
	SatisfactionGreat   = "great"
)

// AllowedSatisfactions guards the satisfaction enum at the boundary.
var AllowedSatisfactions = map[string]bool{
	SatisfactionAwful:   true,
	SatisfactionBad:     true,
	SatisfactionNeutral: true,
	SatisfactionGood:    true,
	SatisfactionGreat:   true,
}

// DateLayout is the wire format of all day keys.
const DateLayout = "2006-01-02"

// DailyProgress is the per-date record: how the day felt, what was logged on
// the stopwatch and which routines got done. One document per (user, date).
type DailyProgress struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID       primitive.ObjectID `bson:"user_id" json:"user_id"`
	Date         string             `bson:"date" json:"date" validate:"required,dateymd"`
	Satisfaction string             `bson:"satisfaction" json:"satisfaction" validate:"required,oneof=awful bad neutral good great"`
	Note         string             `bson:"note" json:"note" validate:"max=4000"`
	Sessions     []StopwatchSession `bson:"sessions" json:"sessions" validate:"dive"`
	Routines     map[string]int     `bson:"routines" json:"routines"`
	TotalSeconds int64              `bson:"total_seconds" json:"total_seconds"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at" json:"updated_at"`
}

// StopwatchSession is a single timed stretch of work inside a day.
type StopwatchSession struct {
	ID              string    `bson:"id" json:"id"`
	Label           string    `bson:"label" json:"label" validate:"max=200"`
	StartedAt       time.Time `bson:"started_at" json:"started_at"`
	EndedAt         time.Time `bson:"ended_at" json:"ended_at"`
	DurationSeconds int64     `bson:"duration_seconds" json:"duration_seconds" validate:"gte=0"`
}

// NewDailyProgress returns an empty record for a date. Satisfaction starts
// neutral until the user says otherwise.
func NewDailyProgress(userID primitive.ObjectID, date string) *DailyProgress {
	return &DailyProgress{
		UserID:       userID,
		Date:         date,
		Satisfaction: SatisfactionNeutral,
		Sessions:     []StopwatchSession{},
		Routines:     map[string]int{},
	}
}

// RecalcTotal recomputes the derived total duration from the session list.
func (d *DailyProgress) RecalcTotal() {
	var total int64
	for _, s := range d.Sessions {
		total += s.DurationSeconds
	}
	d.TotalSeconds = total
}
