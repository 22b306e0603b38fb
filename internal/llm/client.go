package llm

import "context"

// Message roles
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one turn of a model conversation
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Client talks to a chat completion model
type Client interface {
	// Complete sends the conversation and returns the model's reply
	Complete(ctx context.Context, messages []Message) (string, error)
}
