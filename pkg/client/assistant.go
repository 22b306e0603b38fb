package client

import "context"

// AssistantService handles assistant chat API calls
type AssistantService struct {
	client *Client
}

// ChatRequest represents one message to the assistant
type ChatRequest struct {
	Message string `json:"message"`
}

// Chat sends a message to the assistant
func (s *AssistantService) Chat(ctx context.Context, message string) (*ChatResult, error) {
	var result ChatResult
	if err := s.client.doRequest(ctx, "POST", "/api/ai/chat", ChatRequest{Message: message}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ClearContext forgets the conversation history
func (s *AssistantService) ClearContext(ctx context.Context) error {
	return s.client.doRequest(ctx, "DELETE", "/api/ai/chat", nil, nil)
}
