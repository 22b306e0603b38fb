package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/aurybot/aury-backend/internal/api/dto"
	"github.com/aurybot/aury-backend/internal/api/middleware"
	"github.com/aurybot/aury-backend/internal/domain/integration"
	"github.com/aurybot/aury-backend/internal/pkg/errors"
	"github.com/aurybot/aury-backend/internal/pkg/logger"
	"github.com/aurybot/aury-backend/internal/pkg/utils"
	"github.com/aurybot/aury-backend/internal/pkg/validator"
)

// IntegrationHandler handles external integration requests
type IntegrationHandler struct {
	service   integration.Service
	logger    *logger.Logger
	validator *validator.Validator
}

// NewIntegrationHandler creates a new integration handler
func NewIntegrationHandler(service integration.Service, log *logger.Logger, val *validator.Validator) *IntegrationHandler {
	return &IntegrationHandler{
		service:   service,
		logger:    log,
		validator: val,
	}
}

// List returns the user's integrations
// @Summary List integrations
// @Description Get the user's connected providers
// @Tags Integrations
// @Produce json
// @Success 200 {array} integration.Integration "List of integrations"
// @Security BearerAuth
// @Router /integrations [get]
func (h *IntegrationHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r)

	integrations, err := h.service.List(r.Context(), userID)
	if err != nil {
		h.logger.ErrorWithErr(err, "Failed to list integrations")
		writeServiceError(w, err, "Failed to list integrations")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, integrations)
}

// Connect links the user to a provider
// @Summary Connect integration
// @Description Link a provider. Connecting an already linked provider updates its settings.
// @Tags Integrations
// @Accept json
// @Produce json
// @Param request body dto.ConnectIntegrationRequest true "Provider to connect"
// @Success 201 {object} integration.Integration "Connected integration"
// @Failure 400 {object} utils.ErrorResponse "Unknown provider"
// @Security BearerAuth
// @Router /integrations [post]
func (h *IntegrationHandler) Connect(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r)

	var req dto.ConnectIntegrationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid request body"))
		return
	}

	if validationErrs := h.validator.Validate(req); len(validationErrs) > 0 {
		utils.WriteError(w, errors.ValidationError("Validation failed", validationErrs))
		return
	}

	i, err := h.service.Connect(r.Context(), userID, req.Provider, req.Settings)
	if err != nil {
		h.logger.ErrorWithErr(err, "Failed to connect integration")
		writeServiceError(w, err, "Failed to connect integration")
		return
	}

	utils.WriteSuccess(w, http.StatusCreated, i)
}

// Disconnect marks an integration disconnected
// @Summary Disconnect integration
// @Description Mark one of the user's integrations as disconnected
// @Tags Integrations
// @Param id path string true "Integration ID"
// @Success 200 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse "Integration not found"
// @Security BearerAuth
// @Router /integrations/{id} [delete]
func (h *IntegrationHandler) Disconnect(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r)
	integrationID := chi.URLParam(r, "id")

	if err := h.service.Disconnect(r.Context(), userID, integrationID); err != nil {
		writeServiceError(w, err, "Failed to disconnect integration")
		return
	}

	utils.WriteSuccessWithMessage(w, http.StatusOK, "Integration disconnected", nil)
}
