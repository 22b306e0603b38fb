package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/aurybot/aury-backend/internal/api/dto"
	"github.com/aurybot/aury-backend/internal/api/middleware"
	"github.com/aurybot/aury-backend/internal/domain/event"
	"github.com/aurybot/aury-backend/internal/pkg/errors"
	"github.com/aurybot/aury-backend/internal/pkg/logger"
	"github.com/aurybot/aury-backend/internal/pkg/utils"
	"github.com/aurybot/aury-backend/internal/pkg/validator"
)

// EventHandler handles calendar event requests
type EventHandler struct {
	service   event.Service
	logger    *logger.Logger
	validator *validator.Validator
}

// NewEventHandler creates a new event handler
func NewEventHandler(service event.Service, log *logger.Logger, val *validator.Validator) *EventHandler {
	return &EventHandler{
		service:   service,
		logger:    log,
		validator: val,
	}
}

// List returns the user's events with pagination
// @Summary List events
// @Description Get a paginated list of the user's calendar events, ordered by start time
// @Tags Events
// @Produce json
// @Param from query string false "Only events starting at or after this time (RFC 3339)"
// @Param to query string false "Only events starting before this time (RFC 3339)"
// @Param page query int false "Page number (default: 1)"
// @Param page_size query int false "Page size (default: 50, max: 200)"
// @Success 200 {object} utils.PaginatedResponse{data=[]event.Event} "List of events"
// @Security BearerAuth
// @Router /events [get]
func (h *EventHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r)
	params := utils.ParsePaginationParams(r)

	filter := event.Filter{
		Limit:  params.PageSize,
		Offset: params.Offset,
	}
	if raw := r.URL.Query().Get("from"); raw != "" {
		from, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			utils.WriteError(w, errors.BadRequest("Invalid from time"))
			return
		}
		filter.From = &from
	}
	if raw := r.URL.Query().Get("to"); raw != "" {
		to, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			utils.WriteError(w, errors.BadRequest("Invalid to time"))
			return
		}
		filter.To = &to
	}

	events, total, err := h.service.List(r.Context(), userID, filter)
	if err != nil {
		h.logger.ErrorWithErr(err, "Failed to list events")
		writeServiceError(w, err, "Failed to list events")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, utils.NewPaginatedResponse(events, params.Page, params.PageSize, total))
}

// Get returns a single event
// @Summary Get event by ID
// @Description Get one of the user's calendar events
// @Tags Events
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {object} event.Event "Event details"
// @Failure 404 {object} utils.ErrorResponse "Event not found"
// @Security BearerAuth
// @Router /events/{id} [get]
func (h *EventHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r)
	eventID := chi.URLParam(r, "id")

	e, err := h.service.GetByID(r.Context(), userID, eventID)
	if err != nil {
		writeServiceError(w, err, "Failed to get event")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, e)
}

// Create creates an event
// @Summary Create event
// @Description Create a new calendar event
// @Tags Events
// @Accept json
// @Produce json
// @Param request body dto.CreateEventRequest true "Event to create"
// @Success 201 {object} event.Event "Created event"
// @Failure 400 {object} utils.ErrorResponse "Invalid request"
// @Security BearerAuth
// @Router /events [post]
func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r)

	var req dto.CreateEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid request body"))
		return
	}

	if validationErrs := h.validator.Validate(req); len(validationErrs) > 0 {
		utils.WriteError(w, errors.ValidationError("Validation failed", validationErrs))
		return
	}

	start, err := time.Parse(time.RFC3339, req.StartTime)
	if err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid start time"))
		return
	}

	e := &event.Event{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		StartTime:   start,
		AllDay:      req.AllDay,
		Reminder:    req.Reminder,
	}
	if req.EndTime != "" {
		end, err := time.Parse(time.RFC3339, req.EndTime)
		if err != nil {
			utils.WriteError(w, errors.BadRequest("Invalid end time"))
			return
		}
		e.EndTime = &end
	}

	created, err := h.service.Create(r.Context(), userID, e)
	if err != nil {
		h.logger.ErrorWithErr(err, "Failed to create event")
		writeServiceError(w, err, "Failed to create event")
		return
	}

	utils.WriteSuccess(w, http.StatusCreated, created)
}

// Update applies a partial update to an event
// @Summary Update event
// @Description Update fields of one of the user's calendar events
// @Tags Events
// @Accept json
// @Produce json
// @Param id path string true "Event ID"
// @Param request body dto.UpdateEventRequest true "Fields to update"
// @Success 200 {object} event.Event "Updated event"
// @Failure 404 {object} utils.ErrorResponse "Event not found"
// @Security BearerAuth
// @Router /events/{id} [put]
func (h *EventHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r)
	eventID := chi.URLParam(r, "id")

	var req dto.UpdateEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid request body"))
		return
	}

	if validationErrs := h.validator.Validate(req); len(validationErrs) > 0 {
		utils.WriteError(w, errors.ValidationError("Validation failed", validationErrs))
		return
	}

	updates := make(map[string]interface{})
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Location != nil {
		updates["location"] = *req.Location
	}
	if req.StartTime != nil {
		updates["start_time"] = *req.StartTime
	}
	if req.EndTime != nil {
		updates["end_time"] = *req.EndTime
	}
	if req.AllDay != nil {
		updates["all_day"] = *req.AllDay
	}
	if req.Reminder != nil {
		updates["reminder"] = *req.Reminder
	}

	e, err := h.service.Update(r.Context(), userID, eventID, updates)
	if err != nil {
		writeServiceError(w, err, "Failed to update event")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, e)
}

// Delete deletes an event
// @Summary Delete event
// @Description Delete one of the user's calendar events
// @Tags Events
// @Param id path string true "Event ID"
// @Success 200 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse "Event not found"
// @Security BearerAuth
// @Router /events/{id} [delete]
func (h *EventHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r)
	eventID := chi.URLParam(r, "id")

	if err := h.service.Delete(r.Context(), userID, eventID); err != nil {
		writeServiceError(w, err, "Failed to delete event")
		return
	}

	utils.WriteSuccessWithMessage(w, http.StatusOK, "Event deleted", nil)
}
