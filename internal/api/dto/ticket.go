package dto

// CreateTicketRequest represents a support ticket submission
type CreateTicketRequest struct {
	Subject string `json:"subject" validate:"required"`
	Message string `json:"message" validate:"required"`
}

// UpdateTicketRequest represents a ticket status change
type UpdateTicketRequest struct {
	Status string `json:"status" validate:"required,oneof=open in_progress resolved closed"`
}
