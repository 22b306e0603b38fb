package note

import "time"

// Note represents a free-form note owned by a user
type Note struct {
	ID             string    `json:"id"`
	UserID         string    `json:"user_id"`
	Title          string    `json:"title"`
	Content        string    `json:"content"`
	Category       string    `json:"category,omitempty"`
	Tags           []string  `json:"tags"`
	AISummary      string    `json:"ai_summary,omitempty"`
	ExtractedTasks []string  `json:"extracted_tasks,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Filter narrows note listings
type Filter struct {
	Category string
	Search   string
	Limit    int
	Offset   int
}
