package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/aurybot/aury-backend/internal/api/dto"
	"github.com/aurybot/aury-backend/internal/api/middleware"
	"github.com/aurybot/aury-backend/internal/domain/note"
	"github.com/aurybot/aury-backend/internal/pkg/errors"
	"github.com/aurybot/aury-backend/internal/pkg/logger"
	"github.com/aurybot/aury-backend/internal/pkg/utils"
	"github.com/aurybot/aury-backend/internal/pkg/validator"
)

// NoteHandler handles note requests
type NoteHandler struct {
	service   note.Service
	logger    *logger.Logger
	validator *validator.Validator
}

// NewNoteHandler creates a new note handler
func NewNoteHandler(service note.Service, log *logger.Logger, val *validator.Validator) *NoteHandler {
	return &NoteHandler{
		service:   service,
		logger:    log,
		validator: val,
	}
}

// List returns the user's notes with pagination
// @Summary List notes
// @Description Get a paginated list of the user's notes
// @Tags Notes
// @Produce json
// @Param category query string false "Filter by category"
// @Param search query string false "Search in title and content"
// @Param page query int false "Page number (default: 1)"
// @Param page_size query int false "Page size (default: 50, max: 200)"
// @Success 200 {object} utils.PaginatedResponse{data=[]note.Note} "List of notes"
// @Failure 500 {object} utils.ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /notes [get]
func (h *NoteHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r)
	params := utils.ParsePaginationParams(r)

	filter := note.Filter{
		Category: r.URL.Query().Get("category"),
		Search:   r.URL.Query().Get("search"),
		Limit:    params.PageSize,
		Offset:   params.Offset,
	}

	notes, total, err := h.service.List(r.Context(), userID, filter)
	if err != nil {
		h.logger.ErrorWithErr(err, "Failed to list notes")
		writeServiceError(w, err, "Failed to list notes")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, utils.NewPaginatedResponse(notes, params.Page, params.PageSize, total))
}

// Get returns a single note
// @Summary Get note by ID
// @Description Get one of the user's notes
// @Tags Notes
// @Produce json
// @Param id path string true "Note ID"
// @Success 200 {object} note.Note "Note details"
// @Failure 404 {object} utils.ErrorResponse "Note not found"
// @Security BearerAuth
// @Router /notes/{id} [get]
func (h *NoteHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r)
	noteID := chi.URLParam(r, "id")

	n, err := h.service.GetByID(r.Context(), userID, noteID)
	if err != nil {
		writeServiceError(w, err, "Failed to get note")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, n)
}

// Create creates a note
// @Summary Create note
// @Description Create a new note, subject to the plan's note limit
// @Tags Notes
// @Accept json
// @Produce json
// @Param request body dto.CreateNoteRequest true "Note to create"
// @Success 201 {object} note.Note "Created note"
// @Failure 400 {object} utils.ErrorResponse "Invalid request"
// @Failure 403 {object} utils.ErrorResponse "Plan limit reached"
// @Security BearerAuth
// @Router /notes [post]
func (h *NoteHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r)

	var req dto.CreateNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid request body"))
		return
	}

	if validationErrs := h.validator.Validate(req); len(validationErrs) > 0 {
		utils.WriteError(w, errors.ValidationError("Validation failed", validationErrs))
		return
	}

	n, err := h.service.Create(r.Context(), userID, &note.Note{
		Title:    req.Title,
		Content:  req.Content,
		Category: req.Category,
		Tags:     req.Tags,
	})
	if err != nil {
		h.logger.ErrorWithErr(err, "Failed to create note")
		writeServiceError(w, err, "Failed to create note")
		return
	}

	utils.WriteSuccess(w, http.StatusCreated, n)
}

// Update applies a partial update to a note
// @Summary Update note
// @Description Update fields of one of the user's notes
// @Tags Notes
// @Accept json
// @Produce json
// @Param id path string true "Note ID"
// @Param request body dto.UpdateNoteRequest true "Fields to update"
// @Success 200 {object} note.Note "Updated note"
// @Failure 404 {object} utils.ErrorResponse "Note not found"
// @Security BearerAuth
// @Router /notes/{id} [put]
func (h *NoteHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r)
	noteID := chi.URLParam(r, "id")

	var req dto.UpdateNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid request body"))
		return
	}

	updates := make(map[string]interface{})
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Content != nil {
		updates["content"] = *req.Content
	}
	if req.Category != nil {
		updates["category"] = *req.Category
	}
	if req.Tags != nil {
		updates["tags"] = *req.Tags
	}

	n, err := h.service.Update(r.Context(), userID, noteID, updates)
	if err != nil {
		writeServiceError(w, err, "Failed to update note")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, n)
}

// Delete deletes a note
// @Summary Delete note
// @Description Delete one of the user's notes
// @Tags Notes
// @Param id path string true "Note ID"
// @Success 200 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse "Note not found"
// @Security BearerAuth
// @Router /notes/{id} [delete]
func (h *NoteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r)
	noteID := chi.URLParam(r, "id")

	if err := h.service.Delete(r.Context(), userID, noteID); err != nil {
		writeServiceError(w, err, "Failed to delete note")
		return
	}

	utils.WriteSuccessWithMessage(w, http.StatusOK, "Note deleted", nil)
}

// Analyze summarizes a note with the assistant
// @Summary Analyze note
// @Description Generate a summary and extract action items from a note. Consumes one daily analysis credit.
// @Tags Notes
// @Produce json
// @Param id path string true "Note ID"
// @Success 200 {object} note.Note "Note with analysis"
// @Failure 403 {object} utils.ErrorResponse "Daily analysis limit reached"
// @Failure 503 {object} utils.ErrorResponse "Analysis temporarily unavailable"
// @Security BearerAuth
// @Router /notes/{id}/analyze [post]
func (h *NoteHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r)
	noteID := chi.URLParam(r, "id")

	n, err := h.service.Analyze(r.Context(), userID, noteID)
	if err != nil {
		h.logger.ErrorWithErr(err, "Failed to analyze note")
		writeServiceError(w, err, "Failed to analyze note")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, n)
}
