package device

import "time"

// MaxPerUser caps how many smart devices an account may register
const MaxPerUser = 4

// Device types
const (
	TypeLight      = "light"
	TypeSwitch     = "switch"
	TypeThermostat = "thermostat"
	TypeSpeaker    = "speaker"
	TypeOther      = "other"
)

// Device represents a smart home device registered by a user
type Device struct {
	ID        string                 `json:"id"`
	UserID    string                 `json:"user_id"`
	Name      string                 `json:"name"`
	Type      string                 `json:"type"`
	Room      string                 `json:"room,omitempty"`
	On        bool                   `json:"on"`
	State     map[string]interface{} `json:"state"`
	CreatedAt time.Time              `json:"created_at"`
	UpdatedAt time.Time              `json:"updated_at"`
}
