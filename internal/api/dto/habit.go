package dto

// CreateHabitRequest represents a habit creation request
type CreateHabitRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description,omitempty"`
	Frequency   string `json:"frequency,omitempty" validate:"omitempty,oneof=daily weekly"`
}

// UpdateHabitRequest represents a partial habit update
type UpdateHabitRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Frequency   *string `json:"frequency,omitempty" validate:"omitempty,oneof=daily weekly"`
}
