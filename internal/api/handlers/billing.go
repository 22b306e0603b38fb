package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/aurybot/aury-backend/internal/api/dto"
	"github.com/aurybot/aury-backend/internal/api/middleware"
	"github.com/aurybot/aury-backend/internal/config"
	"github.com/aurybot/aury-backend/internal/domain/payment"
	"github.com/aurybot/aury-backend/internal/domain/plan"
	"github.com/aurybot/aury-backend/internal/pkg/errors"
	"github.com/aurybot/aury-backend/internal/pkg/logger"
	"github.com/aurybot/aury-backend/internal/pkg/utils"
	"github.com/aurybot/aury-backend/internal/pkg/validator"
)

// BillingHandler handles plan and payment requests
type BillingHandler struct {
	payments  payment.Service
	billing   config.BillingConfig
	logger    *logger.Logger
	validator *validator.Validator
}

// NewBillingHandler creates a new billing handler
func NewBillingHandler(payments payment.Service, billing config.BillingConfig, log *logger.Logger, val *validator.Validator) *BillingHandler {
	return &BillingHandler{
		payments:  payments,
		billing:   billing,
		logger:    log,
		validator: val,
	}
}

// ListPlans returns the available plans
// @Summary List plans
// @Description Get the available subscription plans and their limits
// @Tags Billing
// @Produce json
// @Success 200 {array} dto.PlanDTO "Available plans"
// @Router /plans [get]
func (h *BillingHandler) ListPlans(w http.ResponseWriter, r *http.Request) {
	plans := make([]dto.PlanDTO, 0, 2)
	for _, name := range []string{plan.Free, plan.Premium} {
		p := dto.PlanDTO{Name: name, Limits: plan.ForPlan(name)}
		if name == plan.Premium {
			p.Price = h.billing.PremiumPriceCO
		}
		plans = append(plans, p)
	}

	utils.WriteSuccess(w, http.StatusOK, plans)
}

// PaymentInfo returns how to pay for the premium plan
// @Summary Get payment info
// @Description Get the manual transfer instructions for upgrading to premium
// @Tags Billing
// @Produce json
// @Success 200 {object} dto.PaymentInfoDTO "Payment instructions"
// @Router /billing/info [get]
func (h *BillingHandler) PaymentInfo(w http.ResponseWriter, r *http.Request) {
	utils.WriteSuccess(w, http.StatusOK, dto.PaymentInfoDTO{
		Method:       "nequi",
		NequiNumber:  h.billing.NequiNumber,
		Amount:       h.billing.PremiumPriceCO,
		Currency:     "COP",
		Instructions: "Envía el pago por Nequi al número indicado y reporta la referencia de la transferencia.",
	})
}

// NotifyPayment records a reported transfer
// @Summary Notify payment
// @Description Report a completed transfer so it can be reviewed
// @Tags Billing
// @Accept json
// @Produce json
// @Param request body dto.PaymentNotifyRequest true "Transfer reference"
// @Success 201 {object} payment.Payment "Recorded payment"
// @Failure 400 {object} utils.ErrorResponse "Missing reference"
// @Security BearerAuth
// @Router /billing/notify [post]
func (h *BillingHandler) NotifyPayment(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r)

	var req dto.PaymentNotifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid request body"))
		return
	}

	if validationErrs := h.validator.Validate(req); len(validationErrs) > 0 {
		utils.WriteError(w, errors.ValidationError("Validation failed", validationErrs))
		return
	}

	p, err := h.payments.Notify(r.Context(), userID, req.Reference, req.Amount)
	if err != nil {
		h.logger.ErrorWithErr(err, "Failed to record payment")
		writeServiceError(w, err, "Failed to record payment")
		return
	}

	utils.WriteSuccess(w, http.StatusCreated, p)
}

// ListPayments returns the user's reported payments
// @Summary List payments
// @Description Get the payments the user has reported
// @Tags Billing
// @Produce json
// @Success 200 {array} payment.Payment "Reported payments"
// @Security BearerAuth
// @Router /billing/payments [get]
func (h *BillingHandler) ListPayments(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r)

	payments, err := h.payments.ListByUser(r.Context(), userID)
	if err != nil {
		h.logger.ErrorWithErr(err, "Failed to list payments")
		writeServiceError(w, err, "Failed to list payments")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, payments)
}

// ListPendingPayments returns payments awaiting review
// @Summary List pending payments
// @Description Get payments awaiting review, with pagination
// @Tags Billing
// @Produce json
// @Param page query int false "Page number (default: 1)"
// @Param page_size query int false "Page size (default: 50, max: 200)"
// @Success 200 {object} utils.PaginatedResponse{data=[]payment.Payment} "Pending payments"
// @Security BearerAuth
// @Router /admin/payments [get]
func (h *BillingHandler) ListPendingPayments(w http.ResponseWriter, r *http.Request) {
	params := utils.ParsePaginationParams(r)

	payments, total, err := h.payments.ListPending(r.Context(), params.PageSize, params.Offset)
	if err != nil {
		h.logger.ErrorWithErr(err, "Failed to list pending payments")
		writeServiceError(w, err, "Failed to list pending payments")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, utils.NewPaginatedResponse(payments, params.Page, params.PageSize, total))
}

// ReviewPayment approves or rejects a pending payment
// @Summary Review payment
// @Description Approve or reject a pending payment. Approval upgrades the payer to premium.
// @Tags Billing
// @Accept json
// @Produce json
// @Param id path string true "Payment ID"
// @Param request body dto.ReviewPaymentRequest true "Review decision"
// @Success 200 {object} payment.Payment "Reviewed payment"
// @Failure 404 {object} utils.ErrorResponse "Payment not found"
// @Failure 409 {object} utils.ErrorResponse "Payment already reviewed"
// @Security BearerAuth
// @Router /admin/payments/{id}/review [post]
func (h *BillingHandler) ReviewPayment(w http.ResponseWriter, r *http.Request) {
	reviewerID, _ := middleware.GetUserID(r)
	paymentID := chi.URLParam(r, "id")

	var req dto.ReviewPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid request body"))
		return
	}

	p, err := h.payments.Review(r.Context(), reviewerID, paymentID, req.Approve)
	if err != nil {
		h.logger.ErrorWithErr(err, "Failed to review payment")
		writeServiceError(w, err, "Failed to review payment")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, p)
}
