package handlers

import (
	"net/http"

	"github.com/aurybot/aury-backend/internal/api/middleware"
	"github.com/aurybot/aury-backend/internal/pkg/logger"
	"github.com/aurybot/aury-backend/internal/pkg/utils"
	"github.com/aurybot/aury-backend/internal/services"
)

// DashboardHandler handles dashboard requests
type DashboardHandler struct {
	service *services.DashboardService
	logger  *logger.Logger
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(service *services.DashboardService, log *logger.Logger) *DashboardHandler {
	return &DashboardHandler{
		service: service,
		logger:  log,
	}
}

// Overview returns the user's dashboard
// @Summary Dashboard overview
// @Description Get the user's plan, usage, and per-resource counts
// @Tags Dashboard
// @Produce json
// @Success 200 {object} services.Dashboard "Dashboard overview"
// @Security BearerAuth
// @Router /dashboard [get]
func (h *DashboardHandler) Overview(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r)

	d, err := h.service.Overview(r.Context(), userID)
	if err != nil {
		h.logger.ErrorWithErr(err, "Failed to build dashboard")
		writeServiceError(w, err, "Failed to build dashboard")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, d)
}
