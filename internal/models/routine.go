package models

// Routine kinds tracked per day.
const (
	RoutineSleep    = "sleep"
	RoutineWater    = "water"
	RoutineExercise = "exercise"
	RoutineMeal     = "meal"
	RoutineTeeth    = "teeth"
	RoutineBath     = "bath"
)

// RoutineKinds lists every kind in display order.
var RoutineKinds = []string{
	RoutineSleep,
	RoutineWater,
	RoutineExercise,
	RoutineMeal,
	RoutineTeeth,
	RoutineBath,
}

// AllowedRoutineKinds guards the kind enum at the boundary.
var AllowedRoutineKinds = map[string]bool{
	RoutineSleep:    true,
	RoutineWater:    true,
	RoutineExercise: true,
	RoutineMeal:     true,
	RoutineTeeth:    true,
	RoutineBath:     true,
}

// RoutinePlan configures one routine kind for a user.
type RoutinePlan struct {
	Enabled     bool   `bson:"enabled" json:"enabled"`
	DailyTarget int    `bson:"daily_target" json:"daily_target" validate:"gte=1,lte=24"`
	RemindAt    string `bson:"remind_at,omitempty" json:"remind_at,omitempty" validate:"omitempty,clockhm"`
}

// RoutineSettings maps each kind to its plan.
type RoutineSettings map[string]RoutinePlan

// DefaultRoutineSettings enables every kind once a day, except water which
// defaults to eight.
func DefaultRoutineSettings() RoutineSettings {
	settings := RoutineSettings{}
	for _, kind := range RoutineKinds {
		plan := RoutinePlan{Enabled: true, DailyTarget: 1}
		if kind == RoutineWater {
			plan.DailyTarget = 8
		}
		settings[kind] = plan
	}
	return settings
}

// Done reports whether a day's count meets the plan's target.
func (p RoutinePlan) Done(count int) bool {
	return p.Enabled && count >= p.DailyTarget
}
