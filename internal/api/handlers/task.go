package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/aurybot/aury-backend/internal/api/dto"
	"github.com/aurybot/aury-backend/internal/api/middleware"
	"github.com/aurybot/aury-backend/internal/domain/task"
	"github.com/aurybot/aury-backend/internal/pkg/errors"
	"github.com/aurybot/aury-backend/internal/pkg/logger"
	"github.com/aurybot/aury-backend/internal/pkg/utils"
	"github.com/aurybot/aury-backend/internal/pkg/validator"
)

// TaskHandler handles task requests
type TaskHandler struct {
	service   task.Service
	logger    *logger.Logger
	validator *validator.Validator
}

// NewTaskHandler creates a new task handler
func NewTaskHandler(service task.Service, log *logger.Logger, val *validator.Validator) *TaskHandler {
	return &TaskHandler{
		service:   service,
		logger:    log,
		validator: val,
	}
}

// List returns the user's tasks with pagination
// @Summary List tasks
// @Description Get a paginated list of the user's tasks
// @Tags Tasks
// @Produce json
// @Param status query string false "Filter by status (pending, in_progress, completed)"
// @Param category query string false "Filter by category"
// @Param priority query string false "Filter by priority (low, medium, high)"
// @Param page query int false "Page number (default: 1)"
// @Param page_size query int false "Page size (default: 50, max: 200)"
// @Success 200 {object} utils.PaginatedResponse{data=[]task.Task} "List of tasks"
// @Security BearerAuth
// @Router /tasks [get]
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r)
	params := utils.ParsePaginationParams(r)

	filter := task.Filter{
		Status:   r.URL.Query().Get("status"),
		Category: r.URL.Query().Get("category"),
		Priority: r.URL.Query().Get("priority"),
		Limit:    params.PageSize,
		Offset:   params.Offset,
	}

	tasks, total, err := h.service.List(r.Context(), userID, filter)
	if err != nil {
		h.logger.ErrorWithErr(err, "Failed to list tasks")
		writeServiceError(w, err, "Failed to list tasks")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, utils.NewPaginatedResponse(tasks, params.Page, params.PageSize, total))
}

// Get returns a single task
// @Summary Get task by ID
// @Description Get one of the user's tasks
// @Tags Tasks
// @Produce json
// @Param id path string true "Task ID"
// @Success 200 {object} task.Task "Task details"
// @Failure 404 {object} utils.ErrorResponse "Task not found"
// @Security BearerAuth
// @Router /tasks/{id} [get]
func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r)
	taskID := chi.URLParam(r, "id")

	t, err := h.service.GetByID(r.Context(), userID, taskID)
	if err != nil {
		writeServiceError(w, err, "Failed to get task")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, t)
}

// Create creates a task
// @Summary Create task
// @Description Create a new task, subject to the plan's task limit
// @Tags Tasks
// @Accept json
// @Produce json
// @Param request body dto.CreateTaskRequest true "Task to create"
// @Success 201 {object} task.Task "Created task"
// @Failure 400 {object} utils.ErrorResponse "Invalid request"
// @Failure 403 {object} utils.ErrorResponse "Plan limit reached"
// @Security BearerAuth
// @Router /tasks [post]
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r)

	var req dto.CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid request body"))
		return
	}

	if validationErrs := h.validator.Validate(req); len(validationErrs) > 0 {
		utils.WriteError(w, errors.ValidationError("Validation failed", validationErrs))
		return
	}

	t := &task.Task{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		Category:    req.Category,
	}
	if req.DueDate != "" {
		due, err := time.Parse(time.RFC3339, req.DueDate)
		if err != nil {
			utils.WriteError(w, errors.BadRequest("Invalid due date"))
			return
		}
		t.DueDate = &due
	}

	created, err := h.service.Create(r.Context(), userID, t)
	if err != nil {
		h.logger.ErrorWithErr(err, "Failed to create task")
		writeServiceError(w, err, "Failed to create task")
		return
	}

	utils.WriteSuccess(w, http.StatusCreated, created)
}

// Update applies a partial update to a task
// @Summary Update task
// @Description Update fields of one of the user's tasks. Completing a task stamps its completion time.
// @Tags Tasks
// @Accept json
// @Produce json
// @Param id path string true "Task ID"
// @Param request body dto.UpdateTaskRequest true "Fields to update"
// @Success 200 {object} task.Task "Updated task"
// @Failure 404 {object} utils.ErrorResponse "Task not found"
// @Security BearerAuth
// @Router /tasks/{id} [put]
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r)
	taskID := chi.URLParam(r, "id")

	var req dto.UpdateTaskRequest
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
	if req.Status != nil {
		updates["status"] = *req.Status
	}
	if req.Priority != nil {
		updates["priority"] = *req.Priority
	}
	if req.Category != nil {
		updates["category"] = *req.Category
	}
	if req.DueDate != nil {
		updates["due_date"] = *req.DueDate
	}
	if req.AutoScheduled != nil {
		updates["auto_scheduled"] = *req.AutoScheduled
	}

	t, err := h.service.Update(r.Context(), userID, taskID, updates)
	if err != nil {
		writeServiceError(w, err, "Failed to update task")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, t)
}

// Delete deletes a task
// @Summary Delete task
// @Description Delete one of the user's tasks
// @Tags Tasks
// @Param id path string true "Task ID"
// @Success 200 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse "Task not found"
// @Security BearerAuth
// @Router /tasks/{id} [delete]
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r)
	taskID := chi.URLParam(r, "id")

	if err := h.service.Delete(r.Context(), userID, taskID); err != nil {
		writeServiceError(w, err, "Failed to delete task")
		return
	}

	utils.WriteSuccessWithMessage(w, http.StatusOK, "Task deleted", nil)
}
