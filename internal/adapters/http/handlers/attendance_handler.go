package handlers

import (
	"errors"

	"staffhub/internal/adapters/http/middleware"
	"staffhub/internal/core/services"
	"staffhub/internal/pkg/pagination"
	"staffhub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AttendanceHandler handles attendance endpoints
type AttendanceHandler struct {
	attendanceService *services.AttendanceService
	employeeService   *services.EmployeeService
}

// NewAttendanceHandler creates a new attendance handler
func NewAttendanceHandler(
	attendanceService *services.AttendanceService,
	employeeService *services.EmployeeService,
) *AttendanceHandler {
	return &AttendanceHandler{
		attendanceService: attendanceService,
		employeeService:   employeeService,
	}
}

// CheckIn handles employee check-in
// @Summary Check in
// @Description Open today's attendance entry for the caller
// @Tags Attendance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /attendance/checkin [post]
func (h *AttendanceHandler) CheckIn(c *fiber.Ctx) error {
	session := middleware.CurrentSession(c)
	if session == nil {
		return response.Unauthorized(c, "Unauthorized")
	}

	var req services.CheckInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	attendance, err := h.attendanceService.CheckIn(c.Context(), session, &req)
	if err != nil {
		if errors.Is(err, services.ErrAlreadyCheckedIn) {
			return response.Conflict(c, "Already checked in today")
		}
		return response.InternalServerError(c, "Failed to check in")
	}

	return response.Success(c, "Checked in successfully", attendance)
}

// CheckOut handles employee check-out
// @Summary Check out
// @Description Close today's attendance entry for the caller
// @Tags Attendance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /attendance/checkout [post]
func (h *AttendanceHandler) CheckOut(c *fiber.Ctx) error {
	session := middleware.CurrentSession(c)
	if session == nil {
		return response.Unauthorized(c, "Unauthorized")
	}

	var req services.CheckInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	attendance, err := h.attendanceService.CheckOut(c.Context(), session, &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotCheckedIn):
			return response.Conflict(c, "Not checked in today")
		case errors.Is(err, services.ErrAlreadyCheckedOut):
			return response.Conflict(c, "Already checked out today")
		default:
			return response.InternalServerError(c, "Failed to check out")
		}
	}

	return response.Success(c, "Checked out successfully", attendance)
}

// MyAttendance lists the caller's attendance history
// @Summary My attendance history
// @Tags Attendance
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /attendance/my [get]
func (h *AttendanceHandler) MyAttendance(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	params := pagination.GetParams(c)
	rows, total, err := h.attendanceService.ListForUser(c.Context(), userID, params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list attendance")
	}

	return response.Success(c, "Attendance retrieved successfully", pagination.NewResponse(rows, params, total))
}

// EmployeeAttendance lists one employee's attendance history (admin/hr)
// @Summary Employee attendance history
// @Tags Attendance
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /attendance/employee/{id} [get]
func (h *AttendanceHandler) EmployeeAttendance(c *fiber.Ctx) error {
	session := middleware.CurrentSession(c)
	if session == nil {
		return response.Unauthorized(c, "Unauthorized")
	}

	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid employee ID")
	}

	// The ownership check masks employees of other companies
	if _, err := h.employeeService.GetEmployee(c.Context(), session.CompanyID, id); err != nil {
		if errors.Is(err, services.ErrEmployeeNotFound) {
			return response.NotFound(c, "Employee not found")
		}
		return response.InternalServerError(c, "Failed to get employee")
	}

	params := pagination.GetParams(c)
	rows, total, err := h.attendanceService.ListForUser(c.Context(), id, params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list attendance")
	}

	return response.Success(c, "Attendance retrieved successfully", pagination.NewResponse(rows, params, total))
}

// Today lists today's attendance of the whole company (admin/hr)
// @Summary Today's attendance
// @Tags Attendance
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /attendance/today [get]
func (h *AttendanceHandler) Today(c *fiber.Ctx) error {
	session := middleware.CurrentSession(c)
	if session == nil {
		return response.Unauthorized(c, "Unauthorized")
	}

	rows, err := h.attendanceService.ListToday(c.Context(), session.CompanyID)
	if err != nil {
		return response.InternalServerError(c, "Failed to list today's attendance")
	}

	return response.Success(c, "Today's attendance retrieved successfully", rows)
}
