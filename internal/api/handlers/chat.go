package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/aurybot/aury-backend/internal/api/dto"
	"github.com/aurybot/aury-backend/internal/api/middleware"
	"github.com/aurybot/aury-backend/internal/assistant"
	"github.com/aurybot/aury-backend/internal/pkg/errors"
	"github.com/aurybot/aury-backend/internal/pkg/logger"
	"github.com/aurybot/aury-backend/internal/pkg/utils"
	"github.com/aurybot/aury-backend/internal/pkg/validator"
)

// ChatHandler handles assistant chat requests
type ChatHandler struct {
	service   *assistant.Service
	logger    *logger.Logger
	validator *validator.Validator
}

// NewChatHandler creates a new chat handler
func NewChatHandler(service *assistant.Service, log *logger.Logger, val *validator.Validator) *ChatHandler {
	return &ChatHandler{
		service:   service,
		logger:    log,
		validator: val,
	}
}

// Chat sends a message to the assistant
// @Summary Chat with the assistant
// @Description Send a message to the assistant. Detected categories may trigger actions such as automatic task creation. Consumes one daily chat credit.
// @Tags Assistant
// @Accept json
// @Produce json
// @Param request body dto.ChatRequest true "Message"
// @Success 200 {object} assistant.ChatResult "Assistant reply"
// @Failure 400 {object} utils.ErrorResponse "Invalid request"
// @Failure 403 {object} utils.ErrorResponse "Daily chat limit reached"
// @Security BearerAuth
// @Router /ai/chat [post]
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r)

	var req dto.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid request body"))
		return
	}

	if validationErrs := h.validator.Validate(req); len(validationErrs) > 0 {
		utils.WriteError(w, errors.ValidationError("Validation failed", validationErrs))
		return
	}

	result, err := h.service.Chat(r.Context(), userID, req.Message)
	if err != nil {
		h.logger.ErrorWithErr(err, "Chat failed")
		writeServiceError(w, err, "Chat failed")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, result)
}

// ClearContext drops the user's conversation history
// @Summary Clear chat context
// @Description Forget the assistant's conversation history for this user
// @Tags Assistant
// @Success 200 {object} utils.SuccessResponse
// @Security BearerAuth
// @Router /ai/chat [delete]
func (h *ChatHandler) ClearContext(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r)

	h.service.ClearContext(userID)

	utils.WriteSuccessWithMessage(w, http.StatusOK, "Context cleared", nil)
}
