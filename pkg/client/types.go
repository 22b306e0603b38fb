package client

import "time"

// User represents an account
type User struct {
	ID               string                 `json:"id"`
	Email            string                 `json:"email"`
	Name             string                 `json:"name"`
	Plan             string                 `json:"plan"`
	PremiumExpiresAt *time.Time             `json:"premium_expires_at,omitempty"`
	Preferences      map[string]interface{} `json:"preferences,omitempty"`
	CreatedAt        time.Time              `json:"created_at"`
}

// Note represents a note
type Note struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Content        string    `json:"content"`
	Category       string    `json:"category,omitempty"`
	Tags           []string  `json:"tags,omitempty"`
	AISummary      string    `json:"ai_summary,omitempty"`
	ExtractedTasks []string  `json:"extracted_tasks,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Task represents a task
type Task struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Description   string     `json:"description,omitempty"`
	Status        string     `json:"status"`
	Priority      string     `json:"priority,omitempty"`
	Category      string     `json:"category,omitempty"`
	DueDate       *time.Time `json:"due_date,omitempty"`
	AutoScheduled bool       `json:"auto_scheduled"`
	CompletedAt   *time.Time `json:"completed_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// Habit represents a habit with its streaks
type Habit struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Frequency   string    `json:"frequency"`
	Streak      int       `json:"streak"`
	BestStreak  int       `json:"best_streak"`
	Completions []string  `json:"completions,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Plan describes a subscription plan
type Plan struct {
	Name   string     `json:"name"`
	Price  int64      `json:"price"`
	Limits PlanLimits `json:"limits"`
}

// PlanLimits holds the caps of a plan; -1 means unlimited
type PlanLimits struct {
	MaxProjects       int  `json:"max_projects"`
	MaxNotes          int  `json:"max_notes"`
	MaxTasks          int  `json:"max_tasks"`
	MaxHabits         int  `json:"max_habits"`
	AIAnalysisPerDay  int  `json:"ai_analysis_per_day"`
	ChatUploadsPerDay int  `json:"chat_uploads_per_day"`
	VoiceCommands     bool `json:"voice_commands"`
	AdvancedAI        bool `json:"advanced_ai"`
	PrioritySupport   bool `json:"priority_support"`
	CustomCategories  bool `json:"custom_categories"`
}

// Payment represents a reported transfer
type Payment struct {
	ID         string     `json:"id"`
	UserID     string     `json:"user_id"`
	Reference  string     `json:"reference"`
	Amount     int64      `json:"amount"`
	Status     string     `json:"status"`
	ReviewedBy string     `json:"reviewed_by,omitempty"`
	ReviewedAt *time.Time `json:"reviewed_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

// PaymentInfo describes how to pay for the premium plan
type PaymentInfo struct {
	Method       string `json:"method"`
	NequiNumber  string `json:"nequi_number"`
	Amount       int64  `json:"amount"`
	Currency     string `json:"currency"`
	Instructions string `json:"instructions"`
}

// ChatAction is a side effect the assistant performed
type ChatAction struct {
	Type     string `json:"type"`
	Category string `json:"category,omitempty"`
	Task     *Task  `json:"task,omitempty"`
}

// ChatResult is the assistant's reply
type ChatResult struct {
	Response           string       `json:"response"`
	Suggestions        []string     `json:"suggestions"`
	Actions            []ChatAction `json:"actions"`
	DetectedCategories []string     `json:"detected_categories"`
	SessionID          string       `json:"session_id"`
}

// Page wraps a paginated listing
type Page[T any] struct {
	Data       []T   `json:"data"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalItems int64 `json:"total_items"`
	TotalPages int   `json:"total_pages"`
}
