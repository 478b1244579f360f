package handlers

import (
	"staffhub/internal/adapters/http/middleware"
	"staffhub/internal/core/services"
	"staffhub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// DashboardHandler handles dashboard endpoints
type DashboardHandler struct {
	dashboardService *services.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// Company returns the company overview (admin/hr)
// @Summary Company dashboard
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /dashboard/company [get]
func (h *DashboardHandler) Company(c *fiber.Ctx) error {
	session := middleware.CurrentSession(c)
	if session == nil {
		return response.Unauthorized(c, "Unauthorized")
	}

	data, err := h.dashboardService.GetCompanyDashboard(c.Context(), session.CompanyID, session.UserID)
	if err != nil {
		return response.InternalServerError(c, "Failed to build dashboard")
	}

	return response.Success(c, "Dashboard retrieved successfully", data)
}

// Me returns the personal overview
// @Summary Personal dashboard
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /dashboard/me [get]
func (h *DashboardHandler) Me(c *fiber.Ctx) error {
	session := middleware.CurrentSession(c)
	if session == nil {
		return response.Unauthorized(c, "Unauthorized")
	}

	data, err := h.dashboardService.GetEmployeeDashboard(c.Context(), session.CompanyID, session.UserID)
	if err != nil {
		return response.InternalServerError(c, "Failed to build dashboard")
	}

	return response.Success(c, "Dashboard retrieved successfully", data)
}
