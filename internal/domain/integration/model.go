package integration

import "time"

// Integration providers
const (
	ProviderGoogleCalendar = "google_calendar"
	ProviderWhatsApp       = "whatsapp"
	ProviderSpotify        = "spotify"
)

// Integration statuses
const (
	StatusConnected    = "connected"
	StatusDisconnected = "disconnected"
	StatusError        = "error"
)

// Integration represents a link between a user and an external service
type Integration struct {
	ID        string                 `json:"id"`
	UserID    string                 `json:"user_id"`
	Provider  string                 `json:"provider"`
	Status    string                 `json:"status"`
	Settings  map[string]interface{} `json:"settings"`
	CreatedAt time.Time              `json:"created_at"`
	UpdatedAt time.Time              `json:"updated_at"`
}
