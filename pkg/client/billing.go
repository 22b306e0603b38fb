package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// BillingService handles plan and payment API calls
type BillingService struct {
	client *Client
}

// PaymentNotifyRequest reports an out-of-band transfer
type PaymentNotifyRequest struct {
	Reference string `json:"reference"`
	Amount    int64  `json:"amount,omitempty"`
}

// ReviewPaymentRequest approves or rejects a pending payment
type ReviewPaymentRequest struct {
	Approve bool `json:"approve"`
}

// Plans retrieves the available plans
func (s *BillingService) Plans(ctx context.Context) ([]Plan, error) {
	var plans []Plan
	if err := s.client.doRequest(ctx, "GET", "/api/plans", nil, &plans); err != nil {
		return nil, err
	}
	return plans, nil
}

// PaymentInfo retrieves the manual transfer instructions
func (s *BillingService) PaymentInfo(ctx context.Context) (*PaymentInfo, error) {
	var info PaymentInfo
	if err := s.client.doRequest(ctx, "GET", "/api/billing/info", nil, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// Notify reports a completed transfer
func (s *BillingService) Notify(ctx context.Context, req PaymentNotifyRequest) (*Payment, error) {
	var p Payment
	if err := s.client.doRequest(ctx, "POST", "/api/billing/notify", req, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Payments retrieves the user's reported payments
func (s *BillingService) Payments(ctx context.Context) ([]Payment, error) {
	var payments []Payment
	if err := s.client.doRequest(ctx, "GET", "/api/billing/payments", nil, &payments); err != nil {
		return nil, err
	}
	return payments, nil
}

// PendingPayments retrieves payments awaiting review
func (s *BillingService) PendingPayments(ctx context.Context, page, pageSize int) (*Page[Payment], error) {
	query := url.Values{}
	if page > 0 {
		query.Set("page", strconv.Itoa(page))
	}
	if pageSize > 0 {
		query.Set("page_size", strconv.Itoa(pageSize))
	}

	path := "/api/admin/payments"
	if len(query) > 0 {
		path += "?" + query.Encode()
	}

	var result Page[Payment]
	if err := s.client.doRequest(ctx, "GET", path, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Review approves or rejects a pending payment
func (s *BillingService) Review(ctx context.Context, paymentID string, approve bool) (*Payment, error) {
	var p Payment
	path := fmt.Sprintf("/api/admin/payments/%s/review", paymentID)
	if err := s.client.doRequest(ctx, "POST", path, ReviewPaymentRequest{Approve: approve}, &p); err != nil {
		return nil, err
	}
	return &p, nil
}
