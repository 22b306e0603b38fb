package dto

// ConnectIntegrationRequest represents a request to link a provider
type ConnectIntegrationRequest struct {
	Provider string                 `json:"provider" validate:"required,oneof=google_calendar whatsapp spotify"`
	Settings map[string]interface{} `json:"settings,omitempty"`
}
