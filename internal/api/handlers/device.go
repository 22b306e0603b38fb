package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/aurybot/aury-backend/internal/api/dto"
	"github.com/aurybot/aury-backend/internal/api/middleware"
	"github.com/aurybot/aury-backend/internal/domain/device"
	"github.com/aurybot/aury-backend/internal/pkg/errors"
	"github.com/aurybot/aury-backend/internal/pkg/logger"
	"github.com/aurybot/aury-backend/internal/pkg/utils"
	"github.com/aurybot/aury-backend/internal/pkg/validator"
)

// DeviceHandler handles smart device requests
type DeviceHandler struct {
	service   device.Service
	logger    *logger.Logger
	validator *validator.Validator
}

// NewDeviceHandler creates a new device handler
func NewDeviceHandler(service device.Service, log *logger.Logger, val *validator.Validator) *DeviceHandler {
	return &DeviceHandler{
		service:   service,
		logger:    log,
		validator: val,
	}
}

// List returns the user's devices
// @Summary List devices
// @Description Get the user's registered smart devices
// @Tags Devices
// @Produce json
// @Success 200 {array} device.Device "List of devices"
// @Security BearerAuth
// @Router /devices [get]
func (h *DeviceHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r)

	devices, err := h.service.List(r.Context(), userID)
	if err != nil {
		h.logger.ErrorWithErr(err, "Failed to list devices")
		writeServiceError(w, err, "Failed to list devices")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, devices)
}

// Get returns a single device
// @Summary Get device by ID
// @Description Get one of the user's smart devices
// @Tags Devices
// @Produce json
// @Param id path string true "Device ID"
// @Success 200 {object} device.Device "Device details"
// @Failure 404 {object} utils.ErrorResponse "Device not found"
// @Security BearerAuth
// @Router /devices/{id} [get]
func (h *DeviceHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r)
	deviceID := chi.URLParam(r, "id")

	d, err := h.service.GetByID(r.Context(), userID, deviceID)
	if err != nil {
		writeServiceError(w, err, "Failed to get device")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, d)
}

// Register registers a device
// @Summary Register device
// @Description Register a new smart device, up to the per-user cap
// @Tags Devices
// @Accept json
// @Produce json
// @Param request body dto.CreateDeviceRequest true "Device to register"
// @Success 201 {object} device.Device "Registered device"
// @Failure 400 {object} utils.ErrorResponse "Invalid request"
// @Failure 403 {object} utils.ErrorResponse "Device limit reached"
// @Security BearerAuth
// @Router /devices [post]
func (h *DeviceHandler) Register(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r)

	var req dto.CreateDeviceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid request body"))
		return
	}

	if validationErrs := h.validator.Validate(req); len(validationErrs) > 0 {
		utils.WriteError(w, errors.ValidationError("Validation failed", validationErrs))
		return
	}

	d, err := h.service.Register(r.Context(), userID, &device.Device{
		Name:  req.Name,
		Type:  req.Type,
		Room:  req.Room,
		State: req.State,
	})
	if err != nil {
		h.logger.ErrorWithErr(err, "Failed to register device")
		writeServiceError(w, err, "Failed to register device")
		return
	}

	utils.WriteSuccess(w, http.StatusCreated, d)
}

// Update applies a partial update to a device
// @Summary Update device
// @Description Update fields or toggle the on state of one of the user's devices
// @Tags Devices
// @Accept json
// @Produce json
// @Param id path string true "Device ID"
// @Param request body dto.UpdateDeviceRequest true "Fields to update"
// @Success 200 {object} device.Device "Updated device"
// @Failure 404 {object} utils.ErrorResponse "Device not found"
// @Security BearerAuth
// @Router /devices/{id} [put]
func (h *DeviceHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r)
	deviceID := chi.URLParam(r, "id")

	var req dto.UpdateDeviceRequest
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
	if req.Type != nil {
		updates["type"] = *req.Type
	}
	if req.Room != nil {
		updates["room"] = *req.Room
	}
	if req.On != nil {
		updates["on"] = *req.On
	}
	if req.State != nil {
		updates["state"] = *req.State
	}

	d, err := h.service.Update(r.Context(), userID, deviceID, updates)
	if err != nil {
		writeServiceError(w, err, "Failed to update device")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, d)
}

// Delete removes a device
// @Summary Delete device
// @Description Remove one of the user's smart devices
// @Tags Devices
// @Param id path string true "Device ID"
// @Success 200 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse "Device not found"
// @Security BearerAuth
// @Router /devices/{id} [delete]
func (h *DeviceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r)
	deviceID := chi.URLParam(r, "id")

	if err := h.service.Delete(r.Context(), userID, deviceID); err != nil {
		writeServiceError(w, err, "Failed to delete device")
		return
	}

	utils.WriteSuccessWithMessage(w, http.StatusOK, "Device deleted", nil)
}
