package models

// Snapshot is the full JSON export of one user's data. Every timestamp is an
// RFC3339 string and every day key a YYYY-MM-DD string; the snapshot service
// owns the conversion in both directions so the file format stays stable no
// matter how the documents are stored.
type Snapshot struct {
	Version         int                   `json:"version" validate:"required,eq=1"`
	ExportedAt      string                `json:"exported_at"`
	Username        string                `json:"username"`
	Email           string                `json:"email"`
	Settings        UserSettings          `json:"settings"`
	RoutineSettings RoutineSettings       `json:"routine_settings" validate:"dive"`
	Goals           []GoalSnapshot        `json:"goals" validate:"dive"`
	Progress        []ProgressSnapshot    `json:"progress" validate:"dive"`
	Todo            []ListItemSnapshot    `json:"todo" validate:"dive"`
	NotTodo         []ListItemSnapshot    `json:"not_todo" validate:"dive"`
	Resources       []ResourceSnapshot    `json:"resources" validate:"dive"`
	Notes           []StickyNoteSnapshot  `json:"notes" validate:"dive"`
	Transactions    []TransactionSnapshot `json:"transactions" validate:"dive"`
	Blocks          []TimeBlockSnapshot   `json:"blocks" validate:"dive"`
}

type GoalSnapshot struct {
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description" validate:"max=2000"`
	Motivation  string `json:"motivation,omitempty" validate:"max=2000"`
	StartDate   string `json:"start_date" validate:"required,dateymd"`
	EndDate     string `json:"end_date" validate:"required,dateymd"`
	Status      string `json:"status" validate:"required,oneof=active completed abandoned"`
	FinishedAt  string `json:"finished_at,omitempty"`
	CreatedAt   string `json:"created_at"`
}

type ProgressSnapshot struct {
	Date         string            `json:"date" validate:"required,dateymd"`
	Satisfaction string            `json:"satisfaction" validate:"required,oneof=awful bad neutral good great"`
	Note         string            `json:"note" validate:"max=4000"`
	Sessions     []SessionSnapshot `json:"sessions" validate:"dive"`
	Routines     map[string]int    `json:"routines"`
}

type SessionSnapshot struct {
	Label           string `json:"label" validate:"max=200"`
	StartedAt       string `json:"started_at"`
	EndedAt         string `json:"ended_at"`
	DurationSeconds int64  `json:"duration_seconds" validate:"gte=0"`
}

type ListItemSnapshot struct {
	Text        string `json:"text" validate:"required,max=500"`
	Done        bool   `json:"done"`
	CreatedAt   string `json:"created_at"`
	CompletedAt string `json:"completed_at,omitempty"`
}

type ResourceSnapshot struct {
	Title     string `json:"title" validate:"required,max=200"`
	URL       string `json:"url,omitempty" validate:"omitempty,url"`
	Category  string `json:"category,omitempty" validate:"max=100"`
	Note      string `json:"note,omitempty" validate:"max=2000"`
	CreatedAt string `json:"created_at"`
}

type StickyNoteSnapshot struct {
	Text      string `json:"text" validate:"required,max=1000"`
	Color     string `json:"color,omitempty" validate:"omitempty,hexcolor"`
	Pinned    bool   `json:"pinned"`
	CreatedAt string `json:"created_at"`
}

type TransactionSnapshot struct {
	Type      string  `json:"type" validate:"required,oneof=income expense"`
	Amount    float64 `json:"amount" validate:"required,gt=0"`
	Category  string  `json:"category" validate:"required,max=100"`
	Note      string  `json:"note,omitempty" validate:"max=500"`
	Date      string  `json:"date" validate:"required,dateymd"`
	CreatedAt string  `json:"created_at"`
}

type TimeBlockSnapshot struct {
	Date     string `json:"date" validate:"required,dateymd"`
	Start    string `json:"start" validate:"required,clockhm"`
	End      string `json:"end" validate:"required,clockhm"`
	Title    string `json:"title" validate:"required,max=200"`
	Category string `json:"category,omitempty" validate:"max=100"`
	Done     bool   `json:"done"`
}
