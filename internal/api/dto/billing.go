package dto

import "github.com/aurybot/aury-backend/internal/domain/plan"

// PlanDTO represents a subscription plan and its limits
type PlanDTO struct {
	Name   string      `json:"name"`
	Price  int64       `json:"price"`
	Limits plan.Limits `json:"limits"`
}

// PaymentInfoDTO describes how to pay for the premium plan
type PaymentInfoDTO struct {
	Method       string `json:"method"`
	NequiNumber  string `json:"nequi_number"`
	Amount       int64  `json:"amount"`
	Currency     string `json:"currency"`
	Instructions string `json:"instructions"`
}

// PaymentNotifyRequest reports an out-of-band transfer
type PaymentNotifyRequest struct {
	Reference string `json:"reference" validate:"required"`
	Amount    int64  `json:"amount,omitempty"`
}

// ReviewPaymentRequest approves or rejects a pending payment
type ReviewPaymentRequest struct {
	Approve bool `json:"approve"`
}
