package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/aurybot/aury-backend/internal/api/dto"
	"github.com/aurybot/aury-backend/internal/api/middleware"
	"github.com/aurybot/aury-backend/internal/domain/user"
	"github.com/aurybot/aury-backend/internal/pkg/errors"
	"github.com/aurybot/aury-backend/internal/pkg/logger"
	"github.com/aurybot/aury-backend/internal/pkg/utils"
	"github.com/aurybot/aury-backend/internal/pkg/validator"
)

// AssistantHandler handles assistant configuration requests
type AssistantHandler struct {
	userService user.Service
	logger      *logger.Logger
	validator   *validator.Validator
}

// NewAssistantHandler creates a new assistant configuration handler
func NewAssistantHandler(userService user.Service, log *logger.Logger, val *validator.Validator) *AssistantHandler {
	return &AssistantHandler{
		userService: userService,
		logger:      log,
		validator:   val,
	}
}

// GetConfig returns the user's assistant configuration
// @Summary Get assistant configuration
// @Description Get the user's assistant name and tone settings
// @Tags Assistant
// @Produce json
// @Success 200 {object} map[string]interface{} "Assistant configuration"
// @Security BearerAuth
// @Router /assistant/config [get]
func (h *AssistantHandler) GetConfig(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r)

	cfg, err := h.userService.GetAssistantConfig(r.Context(), userID)
	if err != nil {
		h.logger.ErrorWithErr(err, "Failed to get assistant config")
		writeServiceError(w, err, "Failed to get assistant config")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, cfg)
}

// UpdateConfig merges changes into the assistant configuration
// @Summary Update assistant configuration
// @Description Change the assistant's name or tone
// @Tags Assistant
// @Accept json
// @Produce json
// @Param request body dto.AssistantConfigRequest true "Settings to change"
// @Success 200 {object} map[string]interface{} "Updated configuration"
// @Failure 400 {object} utils.ErrorResponse "Invalid request"
// @Security BearerAuth
// @Router /assistant/config [put]
func (h *AssistantHandler) UpdateConfig(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r)

	var req dto.AssistantConfigRequest
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
	if req.Tone != nil {
		updates["tone"] = *req.Tone
	}

	cfg, err := h.userService.UpdateAssistantConfig(r.Context(), userID, updates)
	if err != nil {
		h.logger.ErrorWithErr(err, "Failed to update assistant config")
		writeServiceError(w, err, "Failed to update assistant config")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, cfg)
}
