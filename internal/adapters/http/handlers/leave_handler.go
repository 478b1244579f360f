package handlers

import (
	"errors"

	"staffhub/internal/adapters/http/middleware"
	"staffhub/internal/core/services"
	"staffhub/internal/pkg/pagination"
	"staffhub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// LeaveHandler handles leave endpoints
type LeaveHandler struct {
	leaveService *services.LeaveService
}

// NewLeaveHandler creates a new leave handler
func NewLeaveHandler(leaveService *services.LeaveService) *LeaveHandler {
	return &LeaveHandler{leaveService: leaveService}
}

// Apply handles a leave application
// @Summary Apply for leave
// @Tags Leaves
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /leaves [post]
func (h *LeaveHandler) Apply(c *fiber.Ctx) error {
	session := middleware.CurrentSession(c)
	if session == nil {
		return response.Unauthorized(c, "Unauthorized")
	}

	var req services.ApplyLeaveInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	leave, err := h.leaveService.Apply(c.Context(), session, &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidLeaveType):
			return response.BadRequest(c, "Invalid leave type")
		case errors.Is(err, services.ErrInvalidDateRange):
			return response.BadRequest(c, "Invalid date range")
		default:
			return response.InternalServerError(c, "Failed to apply for leave")
		}
	}

	return response.Created(c, "Leave applied successfully", leave)
}

// Cancel handles cancelling the caller's own pending leave
// @Summary Cancel leave
// @Tags Leaves
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /leaves/{id}/cancel [post]
func (h *LeaveHandler) Cancel(c *fiber.Ctx) error {
	session := middleware.CurrentSession(c)
	if session == nil {
		return response.Unauthorized(c, "Unauthorized")
	}

	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid leave ID")
	}

	leave, err := h.leaveService.Cancel(c.Context(), session, id)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrLeaveNotFound):
			return response.NotFound(c, "Leave not found")
		case errors.Is(err, services.ErrNotLeaveOwner):
			return response.NotFound(c, "Leave not found")
		case errors.Is(err, services.ErrLeaveNotPending):
			return response.Conflict(c, "Leave is not pending")
		default:
			return response.InternalServerError(c, "Failed to cancel leave")
		}
	}

	return response.Success(c, "Leave cancelled successfully", leave)
}

// Decide handles approving or rejecting a pending leave (manager/hr/admin)
// @Summary Decide leave
// @Tags Leaves
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /leaves/{id}/decide [post]
func (h *LeaveHandler) Decide(c *fiber.Ctx) error {
	session := middleware.CurrentSession(c)
	if session == nil {
		return response.Unauthorized(c, "Unauthorized")
	}

	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid leave ID")
	}

	var req services.DecideLeaveInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	leave, err := h.leaveService.Decide(c.Context(), session, id, &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrLeaveNotFound):
			return response.NotFound(c, "Leave not found")
		case errors.Is(err, services.ErrLeaveNotPending):
			return response.Conflict(c, "Leave is not pending")
		default:
			return response.InternalServerError(c, "Failed to decide leave")
		}
	}

	return response.Success(c, "Leave decided successfully", leave)
}

// MyLeaves lists the caller's leave history
// @Summary My leaves
// @Tags Leaves
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /leaves/my [get]
func (h *LeaveHandler) MyLeaves(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	params := pagination.GetParams(c)
	rows, total, err := h.leaveService.ListForUser(c.Context(), userID, params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list leaves")
	}

	return response.Success(c, "Leaves retrieved successfully", pagination.NewResponse(rows, params, total))
}

// CompanyLeaves lists company leaves with optional status filter (manager/hr/admin)
// @Summary Company leaves
// @Tags Leaves
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status"
// @Success 200 {object} response.Response
// @Router /leaves [get]
func (h *LeaveHandler) CompanyLeaves(c *fiber.Ctx) error {
	session := middleware.CurrentSession(c)
	if session == nil {
		return response.Unauthorized(c, "Unauthorized")
	}

	params := pagination.GetParams(c)
	status := c.Query("status")

	rows, total, err := h.leaveService.ListCompany(c.Context(), session.CompanyID, status, params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list leaves")
	}

	return response.Success(c, "Leaves retrieved successfully", pagination.NewResponse(rows, params, total))
}

// Balance returns the caller's approved leave days per type this year
// @Summary My leave balance
// @Tags Leaves
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /leaves/balance [get]
func (h *LeaveHandler) Balance(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	balance, err := h.leaveService.Balance(c.Context(), userID)
	if err != nil {
		return response.InternalServerError(c, "Failed to get leave balance")
	}

	return response.Success(c, "Leave balance retrieved successfully", balance)
}
