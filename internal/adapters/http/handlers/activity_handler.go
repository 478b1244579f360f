package handlers

import (
	"staffhub/internal/adapters/http/middleware"
	"staffhub/internal/core/services"
	"staffhub/internal/pkg/pagination"
	"staffhub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// ActivityHandler handles activity log endpoints
type ActivityHandler struct {
	activityService *services.ActivityService
}

// NewActivityHandler creates a new activity handler
func NewActivityHandler(activityService *services.ActivityService) *ActivityHandler {
	return &ActivityHandler{activityService: activityService}
}

// CompanyActivity lists the company's activity log (admin/hr)
// @Summary Company activity log
// @Tags Activity
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /activity [get]
func (h *ActivityHandler) CompanyActivity(c *fiber.Ctx) error {
	session := middleware.CurrentSession(c)
	if session == nil {
		return response.Unauthorized(c, "Unauthorized")
	}

	params := pagination.GetParams(c)
	rows, total, err := h.activityService.ListCompany(c.Context(), session.CompanyID, params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list activity")
	}

	return response.Success(c, "Activity retrieved successfully", pagination.NewResponse(rows, params, total))
}

// MyActivity lists the caller's own activity log
// @Summary My activity log
// @Tags Activity
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /activity/my [get]
func (h *ActivityHandler) MyActivity(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	params := pagination.GetParams(c)
	rows, total, err := h.activityService.ListMine(c.Context(), userID, params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list activity")
	}

	return response.Success(c, "Activity retrieved successfully", pagination.NewResponse(rows, params, total))
}
