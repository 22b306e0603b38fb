package task

import "time"

// Task statuses
const (
	StatusPending    = "pending"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
)

// Task priorities
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// CategoryAssistant marks tasks created by the assistant rather than
// by the user directly
const CategoryAssistant = "ai-super"

// Task represents a to-do item owned by a user
type Task struct {
	ID            string     `json:"id"`
	UserID        string     `json:"user_id"`
	Title         string     `json:"title"`
	Description   string     `json:"description,omitempty"`
	Status        string     `json:"status"`
	Priority      string     `json:"priority"`
	Category      string     `json:"category,omitempty"`
	DueDate       *time.Time `json:"due_date,omitempty"`
	AutoScheduled bool       `json:"auto_scheduled"`
	CompletedAt   *time.Time `json:"completed_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// Filter narrows task listings
type Filter struct {
	Status   string
	Category string
	Priority string
	Limit    int
	Offset   int
}
