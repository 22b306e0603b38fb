package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/aurybot/aury-backend/internal/api/dto"
	"github.com/aurybot/aury-backend/internal/api/middleware"
	"github.com/aurybot/aury-backend/internal/domain/habit"
	"github.com/aurybot/aury-backend/internal/pkg/errors"
	"github.com/aurybot/aury-backend/internal/pkg/logger"
	"github.com/aurybot/aury-backend/internal/pkg/utils"
	"github.com/aurybot/aury-backend/internal/pkg/validator"
)

// HabitHandler handles habit requests
type HabitHandler struct {
	service   habit.Service
	logger    *logger.Logger
	validator *validator.Validator
}

// NewHabitHandler creates a new habit handler
func NewHabitHandler(service habit.Service, log *logger.Logger, val *validator.Validator) *HabitHandler {
	return &HabitHandler{
		service:   service,
		logger:    log,
		validator: val,
	}
}

// List returns the user's habits with pagination
// @Summary List habits
// @Description Get a paginated list of the user's habits
// @Tags Habits
// @Produce json
// @Param page query int false "Page number (default: 1)"
// @Param page_size query int false "Page size (default: 50, max: 200)"
// @Success 200 {object} utils.PaginatedResponse{data=[]habit.Habit} "List of habits"
// @Security BearerAuth
// @Router /habits [get]
func (h *HabitHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r)
	params := utils.ParsePaginationParams(r)

	habits, total, err := h.service.List(r.Context(), userID, params.PageSize, params.Offset)
	if err != nil {
		h.logger.ErrorWithErr(err, "Failed to list habits")
		writeServiceError(w, err, "Failed to list habits")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, utils.NewPaginatedResponse(habits, params.Page, params.PageSize, total))
}

// Get returns a single habit
// @Summary Get habit by ID
// @Description Get one of the user's habits
// @Tags Habits
// @Produce json
// @Param id path string true "Habit ID"
// @Success 200 {object} habit.Habit "Habit details"
// @Failure 404 {object} utils.ErrorResponse "Habit not found"
// @Security BearerAuth
// @Router /habits/{id} [get]
func (h *HabitHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r)
	habitID := chi.URLParam(r, "id")

	hb, err := h.service.GetByID(r.Context(), userID, habitID)
	if err != nil {
		writeServiceError(w, err, "Failed to get habit")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, hb)
}

// Create creates a habit
// @Summary Create habit
// @Description Create a new habit, subject to the plan's habit limit
// @Tags Habits
// @Accept json
// @Produce json
// @Param request body dto.CreateHabitRequest true "Habit to create"
// @Success 201 {object} habit.Habit "Created habit"
// @Failure 400 {object} utils.ErrorResponse "Invalid request"
// @Failure 403 {object} utils.ErrorResponse "Plan limit reached"
// @Security BearerAuth
// @Router /habits [post]
func (h *HabitHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r)

	var req dto.CreateHabitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid request body"))
		return
	}

	if validationErrs := h.validator.Validate(req); len(validationErrs) > 0 {
		utils.WriteError(w, errors.ValidationError("Validation failed", validationErrs))
		return
	}

	hb, err := h.service.Create(r.Context(), userID, &habit.Habit{
		Name:        req.Name,
		Description: req.Description,
		Frequency:   req.Frequency,
	})
	if err != nil {
		h.logger.ErrorWithErr(err, "Failed to create habit")
		writeServiceError(w, err, "Failed to create habit")
		return
	}

	utils.WriteSuccess(w, http.StatusCreated, hb)
}

// Update applies a partial update to a habit
// @Summary Update habit
// @Description Update fields of one of the user's habits
// @Tags Habits
// @Accept json
// @Produce json
// @Param id path string true "Habit ID"
// @Param request body dto.UpdateHabitRequest true "Fields to update"
// @Success 200 {object} habit.Habit "Updated habit"
// @Failure 404 {object} utils.ErrorResponse "Habit not found"
// @Security BearerAuth
// @Router /habits/{id} [put]
func (h *HabitHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r)
	habitID := chi.URLParam(r, "id")

	var req dto.UpdateHabitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid request body"))
		return
	}

	if validationErrs := h.validator.Validate(req); len(validationErrs) > 0 {
		utils.WriteError(w, errors.ValidationError("Validation failed", validationErrs))
		return
	}

	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Frequency != nil {
		updates["frequency"] = *req.Frequency
	}

	hb, err := h.service.Update(r.Context(), userID, habitID, updates)
	if err != nil {
		writeServiceError(w, err, "Failed to update habit")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, hb)
}

// Delete deletes a habit
// @Summary Delete habit
// @Description Delete one of the user's habits
// @Tags Habits
// @Param id path string true "Habit ID"
// @Success 200 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse "Habit not found"
// @Security BearerAuth
// @Router /habits/{id} [delete]
func (h *HabitHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r)
	habitID := chi.URLParam(r, "id")

	if err := h.service.Delete(r.Context(), userID, habitID); err != nil {
		writeServiceError(w, err, "Failed to delete habit")
		return
	}

	utils.WriteSuccessWithMessage(w, http.StatusOK, "Habit deleted", nil)
}

// Complete marks a habit done for today
// @Summary Complete habit
// @Description Mark a habit completed for today. Completing it twice on the same day is a no-op.
// @Tags Habits
// @Produce json
// @Param id path string true "Habit ID"
// @Success 200 {object} habit.Habit "Habit with updated streak"
// @Failure 404 {object} utils.ErrorResponse "Habit not found"
// @Security BearerAuth
// @Router /habits/{id}/complete [post]
func (h *HabitHandler) Complete(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r)
	habitID := chi.URLParam(r, "id")

	hb, err := h.service.Complete(r.Context(), userID, habitID, time.Now().UTC())
	if err != nil {
		writeServiceError(w, err, "Failed to complete habit")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, hb)
}
