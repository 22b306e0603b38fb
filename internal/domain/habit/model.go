package habit

import "time"

// Habit represents a recurring routine tracked by a user. Completions
// hold the UTC days (YYYY-MM-DD) the habit was marked done.
type Habit struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Frequency   string    `json:"frequency"`
	Streak      int       `json:"streak"`
	BestStreak  int       `json:"best_streak"`
	Completions []string  `json:"completions"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Habit frequencies
const (
	FrequencyDaily  = "daily"
	FrequencyWeekly = "weekly"
)
