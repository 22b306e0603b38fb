package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/aurybot/aury-backend/internal/api/dto"
	"github.com/aurybot/aury-backend/internal/api/middleware"
	"github.com/aurybot/aury-backend/internal/domain/ticket"
	"github.com/aurybot/aury-backend/internal/pkg/errors"
	"github.com/aurybot/aury-backend/internal/pkg/logger"
	"github.com/aurybot/aury-backend/internal/pkg/utils"
	"github.com/aurybot/aury-backend/internal/pkg/validator"
)

// TicketHandler handles support ticket requests
type TicketHandler struct {
	service   ticket.Service
	logger    *logger.Logger
	validator *validator.Validator
}

// NewTicketHandler creates a new ticket handler
func NewTicketHandler(service ticket.Service, log *logger.Logger, val *validator.Validator) *TicketHandler {
	return &TicketHandler{
		service:   service,
		logger:    log,
		validator: val,
	}
}

// List returns the user's tickets with pagination
// @Summary List tickets
// @Description Get a paginated list of the user's support tickets
// @Tags Tickets
// @Produce json
// @Param page query int false "Page number (default: 1)"
// @Param page_size query int false "Page size (default: 50, max: 200)"
// @Success 200 {object} utils.PaginatedResponse{data=[]ticket.Ticket} "List of tickets"
// @Security BearerAuth
// @Router /tickets [get]
func (h *TicketHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r)
	params := utils.ParsePaginationParams(r)

	tickets, total, err := h.service.List(r.Context(), userID, params.PageSize, params.Offset)
	if err != nil {
		h.logger.ErrorWithErr(err, "Failed to list tickets")
		writeServiceError(w, err, "Failed to list tickets")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, utils.NewPaginatedResponse(tickets, params.Page, params.PageSize, total))
}

// Get returns a single ticket
// @Summary Get ticket by ID
// @Description Get one of the user's support tickets
// @Tags Tickets
// @Produce json
// @Param id path string true "Ticket ID"
// @Success 200 {object} ticket.Ticket "Ticket details"
// @Failure 404 {object} utils.ErrorResponse "Ticket not found"
// @Security BearerAuth
// @Router /tickets/{id} [get]
func (h *TicketHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r)
	ticketID := chi.URLParam(r, "id")

	t, err := h.service.GetByID(r.Context(), userID, ticketID)
	if err != nil {
		writeServiceError(w, err, "Failed to get ticket")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, t)
}

// Create opens a ticket
// @Summary Open ticket
// @Description File a new support ticket
// @Tags Tickets
// @Accept json
// @Produce json
// @Param request body dto.CreateTicketRequest true "Ticket to open"
// @Success 201 {object} ticket.Ticket "Opened ticket"
// @Failure 400 {object} utils.ErrorResponse "Invalid request"
// @Security BearerAuth
// @Router /tickets [post]
func (h *TicketHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r)

	var req dto.CreateTicketRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid request body"))
		return
	}

	if validationErrs := h.validator.Validate(req); len(validationErrs) > 0 {
		utils.WriteError(w, errors.ValidationError("Validation failed", validationErrs))
		return
	}

	t, err := h.service.Open(r.Context(), userID, req.Subject, req.Message)
	if err != nil {
		h.logger.ErrorWithErr(err, "Failed to open ticket")
		writeServiceError(w, err, "Failed to open ticket")
		return
	}

	utils.WriteSuccess(w, http.StatusCreated, t)
}

// UpdateStatus moves a ticket to a new status
// @Summary Update ticket status
// @Description Change the status of one of the user's tickets
// @Tags Tickets
// @Accept json
// @Produce json
// @Param id path string true "Ticket ID"
// @Param request body dto.UpdateTicketRequest true "New status"
// @Success 200 {object} ticket.Ticket "Updated ticket"
// @Failure 400 {object} utils.ErrorResponse "Unknown status"
// @Failure 404 {object} utils.ErrorResponse "Ticket not found"
// @Security BearerAuth
// @Router /tickets/{id} [put]
func (h *TicketHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r)
	ticketID := chi.URLParam(r, "id")

	var req dto.UpdateTicketRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid request body"))
		return
	}

	if validationErrs := h.validator.Validate(req); len(validationErrs) > 0 {
		utils.WriteError(w, errors.ValidationError("Validation failed", validationErrs))
		return
	}

	t, err := h.service.UpdateStatus(r.Context(), userID, ticketID, req.Status)
	if err != nil {
		writeServiceError(w, err, "Failed to update ticket")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, t)
}
