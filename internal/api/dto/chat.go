package dto

// ChatRequest represents one user message to the assistant
type ChatRequest struct {
	Message string `json:"message" validate:"required"`
}

// AssistantConfigRequest merges keys into the assistant configuration
type AssistantConfigRequest struct {
	Name *string `json:"name,omitempty"`
	Tone *string `json:"tone,omitempty" validate:"omitempty,oneof=amable formal energetico conciso"`
}
