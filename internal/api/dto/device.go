package dto

// CreateDeviceRequest represents a device registration request
type CreateDeviceRequest struct {
	Name  string                 `json:"name" validate:"required"`
	Type  string                 `json:"type,omitempty" validate:"omitempty,oneof=light switch thermostat speaker other"`
	Room  string                 `json:"room,omitempty"`
	State map[string]interface{} `json:"state,omitempty"`
}

// UpdateDeviceRequest represents a partial device update
type UpdateDeviceRequest struct {
	Name  *string                 `json:"name,omitempty"`
	Type  *string                 `json:"type,omitempty" validate:"omitempty,oneof=light switch thermostat speaker other"`
	Room  *string                 `json:"room,omitempty"`
	On    *bool                   `json:"on,omitempty"`
	State *map[string]interface{} `json:"state,omitempty"`
}
