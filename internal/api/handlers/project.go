package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/aurybot/aury-backend/internal/api/dto"
	"github.com/aurybot/aury-backend/internal/api/middleware"
	"github.com/aurybot/aury-backend/internal/domain/project"
	"github.com/aurybot/aury-backend/internal/pkg/errors"
	"github.com/aurybot/aury-backend/internal/pkg/logger"
	"github.com/aurybot/aury-backend/internal/pkg/utils"
	"github.com/aurybot/aury-backend/internal/pkg/validator"
)

// maxMultipartMemory bounds how much of an upload is buffered in memory
// before spilling to a temp file.
const maxMultipartMemory = 8 << 20

// ProjectHandler handles project requests
type ProjectHandler struct {
	service   project.Service
	logger    *logger.Logger
	validator *validator.Validator
}

// NewProjectHandler creates a new project handler
func NewProjectHandler(service project.Service, log *logger.Logger, val *validator.Validator) *ProjectHandler {
	return &ProjectHandler{
		service:   service,
		logger:    log,
		validator: val,
	}
}

// List returns the user's projects with pagination
// @Summary List projects
// @Description Get a paginated list of the user's projects
// @Tags Projects
// @Produce json
// @Param page query int false "Page number (default: 1)"
// @Param page_size query int false "Page size (default: 50, max: 200)"
// @Success 200 {object} utils.PaginatedResponse{data=[]project.Project} "List of projects"
// @Security BearerAuth
// @Router /projects [get]
func (h *ProjectHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r)
	params := utils.ParsePaginationParams(r)

	projects, total, err := h.service.List(r.Context(), userID, params.PageSize, params.Offset)
	if err != nil {
		h.logger.ErrorWithErr(err, "Failed to list projects")
		writeServiceError(w, err, "Failed to list projects")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, utils.NewPaginatedResponse(projects, params.Page, params.PageSize, total))
}

// Get returns a single project
// @Summary Get project by ID
// @Description Get one of the user's projects, including its file list
// @Tags Projects
// @Produce json
// @Param id path string true "Project ID"
// @Success 200 {object} project.Project "Project details"
// @Failure 404 {object} utils.ErrorResponse "Project not found"
// @Security BearerAuth
// @Router /projects/{id} [get]
func (h *ProjectHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r)
	projectID := chi.URLParam(r, "id")

	p, err := h.service.GetByID(r.Context(), userID, projectID)
	if err != nil {
		writeServiceError(w, err, "Failed to get project")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, p)
}

// Create creates a project
// @Summary Create project
// @Description Create a new project, subject to the plan's project limit
// @Tags Projects
// @Accept json
// @Produce json
// @Param request body dto.CreateProjectRequest true "Project to create"
// @Success 201 {object} project.Project "Created project"
// @Failure 400 {object} utils.ErrorResponse "Invalid request"
// @Failure 403 {object} utils.ErrorResponse "Plan limit reached"
// @Security BearerAuth
// @Router /projects [post]
func (h *ProjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r)

	var req dto.CreateProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid request body"))
		return
	}

	if validationErrs := h.validator.Validate(req); len(validationErrs) > 0 {
		utils.WriteError(w, errors.ValidationError("Validation failed", validationErrs))
		return
	}

	p, err := h.service.Create(r.Context(), userID, &project.Project{
		Name:        req.Name,
		Description: req.Description,
		Status:      req.Status,
	})
	if err != nil {
		h.logger.ErrorWithErr(err, "Failed to create project")
		writeServiceError(w, err, "Failed to create project")
		return
	}

	utils.WriteSuccess(w, http.StatusCreated, p)
}

// Update applies a partial update to a project
// @Summary Update project
// @Description Update fields of one of the user's projects
// @Tags Projects
// @Accept json
// @Produce json
// @Param id path string true "Project ID"
// @Param request body dto.UpdateProjectRequest true "Fields to update"
// @Success 200 {object} project.Project "Updated project"
// @Failure 404 {object} utils.ErrorResponse "Project not found"
// @Security BearerAuth
// @Router /projects/{id} [put]
func (h *ProjectHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r)
	projectID := chi.URLParam(r, "id")

	var req dto.UpdateProjectRequest
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
	if req.Status != nil {
		updates["status"] = *req.Status
	}

	p, err := h.service.Update(r.Context(), userID, projectID, updates)
	if err != nil {
		writeServiceError(w, err, "Failed to update project")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, p)
}

// Delete deletes a project
// @Summary Delete project
// @Description Delete one of the user's projects and its stored files
// @Tags Projects
// @Param id path string true "Project ID"
// @Success 200 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse "Project not found"
// @Security BearerAuth
// @Router /projects/{id} [delete]
func (h *ProjectHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r)
	projectID := chi.URLParam(r, "id")

	if err := h.service.Delete(r.Context(), userID, projectID); err != nil {
		writeServiceError(w, err, "Failed to delete project")
		return
	}

	utils.WriteSuccessWithMessage(w, http.StatusOK, "Project deleted", nil)
}

// UploadFile attaches a file to a project
// @Summary Upload project file
// @Description Attach a file to a project via multipart form field "file"
// @Tags Projects
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Project ID"
// @Param file formData file true "File to attach"
// @Success 201 {object} project.File "Stored file"
// @Failure 400 {object} utils.ErrorResponse "Missing or oversized file"
// @Failure 404 {object} utils.ErrorResponse "Project not found"
// @Security BearerAuth
// @Router /projects/{id}/files [post]
func (h *ProjectHandler) UploadFile(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r)
	projectID := chi.URLParam(r, "id")

	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid multipart form"))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		utils.WriteError(w, errors.BadRequest("Missing file field"))
		return
	}
	defer file.Close()

	f, err := h.service.AttachFile(r.Context(), userID, projectID, project.Upload{
		Reader:      file,
		Filename:    header.Filename,
		Size:        header.Size,
		ContentType: header.Header.Get("Content-Type"),
	})
	if err != nil {
		h.logger.ErrorWithErr(err, "Failed to attach file")
		writeServiceError(w, err, "Failed to attach file")
		return
	}

	utils.WriteSuccess(w, http.StatusCreated, f)
}

// DownloadFile streams a stored project file
// @Summary Download project file
// @Description Download a file attached to a project under its original name
// @Tags Projects
// @Produce octet-stream
// @Param id path string true "Project ID"
// @Param fileID path string true "File ID"
// @Success 200 {file} file "File contents"
// @Failure 404 {object} utils.ErrorResponse "File not found"
// @Security BearerAuth
// @Router /projects/{id}/files/{fileID} [get]
func (h *ProjectHandler) DownloadFile(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r)
	projectID := chi.URLParam(r, "id")
	fileID := chi.URLParam(r, "fileID")

	rc, f, err := h.service.OpenFile(r.Context(), userID, projectID, fileID)
	if err != nil {
		writeServiceError(w, err, "Failed to open file")
		return
	}
	defer rc.Close()

	contentType := f.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.FormatInt(f.Size, 10))
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", f.OriginalName))

	if _, err := io.Copy(w, rc); err != nil {
		h.logger.ErrorWithErr(err, "Failed to stream file")
	}
}

// DeleteFile removes a file from a project
// @Summary Delete project file
// @Description Remove a file attached to a project
// @Tags Projects
// @Param id path string true "Project ID"
// @Param fileID path string true "File ID"
// @Success 200 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse "File not found"
// @Security BearerAuth
// @Router /projects/{id}/files/{fileID} [delete]
func (h *ProjectHandler) DeleteFile(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r)
	projectID := chi.URLParam(r, "id")
	fileID := chi.URLParam(r, "fileID")

	if err := h.service.RemoveFile(r.Context(), userID, projectID, fileID); err != nil {
		writeServiceError(w, err, "Failed to remove file")
		return
	}

	utils.WriteSuccessWithMessage(w, http.StatusOK, "File removed", nil)
}
