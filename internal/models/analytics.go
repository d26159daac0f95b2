package models

// DayPoint is one day on the analytics charts.
type DayPoint struct {
	Date         string `json:"date"`
	TotalSeconds int64  `json:"total_seconds"`
	SessionCount int    `json:"session_count"`
	Satisfaction string `json:"satisfaction"`
}

// FocusStats aggregates daily focus time over the recorded days of a range.
type FocusStats struct {
	MeanSeconds   float64 `json:"mean_seconds"`
	MedianSeconds float64 `json:"median_seconds"`
	StdDevSeconds float64 `json:"stddev_seconds"`
	MaxSeconds    float64 `json:"max_seconds"`
}

// RoutineRate is one routine kind's completion rate over a range.
type RoutineRate struct {
	Kind        string  `json:"kind"`
	DaysMet     int     `json:"days_met"`
	DaysTracked int     `json:"days_tracked"`
	Rate        float64 `json:"rate"`
}

// AnalyticsOverview is the derived read-only view the charts are built from.
type AnalyticsOverview struct {
	From          string         `json:"from"`
	To            string         `json:"to"`
	Points        []DayPoint     `json:"points"`
	Satisfaction  map[string]int `json:"satisfaction"`
	Focus         FocusStats     `json:"focus"`
	Routines      []RoutineRate  `json:"routines"`
	CurrentStreak int            `json:"current_streak"`
	LongestStreak int            `json:"longest_streak"`
}
