package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/madaris/school-app-backend/internal/response"
	"github.com/madaris/school-app-backend/internal/service"
)

// DashboardHandler serves the role-specific dashboards.
type DashboardHandler struct {
	dashboardService *service.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// Admin godoc
// GET /api/v1/admin/dashboard
// Summary counts, status breakdown and per-major distribution.
func (h *DashboardHandler) Admin(c *gin.Context) {
	data, err := h.dashboardService.GetAdminDashboard(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, data)
}

// Agent godoc
// GET /api/v1/agent/dashboard
// Registration counts by review status.
func (h *DashboardHandler) Agent(c *gin.Context) {
	data, err := h.dashboardService.GetAgentDashboard(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, data)
}
