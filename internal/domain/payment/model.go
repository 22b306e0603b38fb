package payment

import "time"

// Payment statuses
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// Payment represents a reported manual transfer awaiting review.
// Transfers arrive out of band (Nequi); users notify the backend with
// a reference number and an operator reviews them.
type Payment struct {
	ID         string     `json:"id"`
	UserID     string     `json:"user_id"`
	Reference  string     `json:"reference"`
	Amount     int64      `json:"amount"`
	Status     string     `json:"status"`
	ReviewedBy string     `json:"reviewed_by,omitempty"`
	ReviewedAt *time.Time `json:"reviewed_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}
