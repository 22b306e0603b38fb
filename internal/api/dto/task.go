package dto

// CreateTaskRequest represents a task creation request
type CreateTaskRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description,omitempty"`
	Priority    string `json:"priority,omitempty" validate:"omitempty,oneof=low medium high"`
	Category    string `json:"category,omitempty"`
	DueDate     string `json:"due_date,omitempty" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
}

// UpdateTaskRequest represents a partial task update
type UpdateTaskRequest struct {
	Title         *string `json:"title,omitempty"`
	Description   *string `json:"description,omitempty"`
	Status        *string `json:"status,omitempty" validate:"omitempty,oneof=pending in_progress completed"`
	Priority      *string `json:"priority,omitempty" validate:"omitempty,oneof=low medium high"`
	Category      *string `json:"category,omitempty"`
	DueDate       *string `json:"due_date,omitempty" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	AutoScheduled *bool   `json:"auto_scheduled,omitempty"`
}
