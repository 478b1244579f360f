package handlers

import (
	"errors"

	"staffhub/internal/adapters/http/middleware"
	"staffhub/internal/core/services"
	"staffhub/internal/pkg/pagination"
	"staffhub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// SalaryHandler handles payroll endpoints
type SalaryHandler struct {
	salaryService   *services.SalaryService
	employeeService *services.EmployeeService
}

// NewSalaryHandler creates a new salary handler
func NewSalaryHandler(
	salaryService *services.SalaryService,
	employeeService *services.EmployeeService,
) *SalaryHandler {
	return &SalaryHandler{
		salaryService:   salaryService,
		employeeService: employeeService,
	}
}

// Upsert creates or updates a salary record (admin/hr)
// @Summary Upsert salary record
// @Tags Salaries
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /salaries [put]
func (h *SalaryHandler) Upsert(c *fiber.Ctx) error {
	session := middleware.CurrentSession(c)
	if session == nil {
		return response.Unauthorized(c, "Unauthorized")
	}

	var req services.UpsertSalaryInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	salary, err := h.salaryService.Upsert(c.Context(), session, &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidMonth):
			return response.BadRequest(c, "Month must be in YYYY-MM format")
		case errors.Is(err, services.ErrInvalidAmounts):
			return response.BadRequest(c, "Salary amounts must not be negative")
		case errors.Is(err, services.ErrUserNotFound):
			return response.NotFound(c, "Employee not found")
		default:
			return response.InternalServerError(c, "Failed to save salary record")
		}
	}

	return response.Success(c, "Salary record saved successfully", salary)
}

// MySalaries lists the caller's salary records
// @Summary My salary records
// @Tags Salaries
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /salaries/my [get]
func (h *SalaryHandler) MySalaries(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	params := pagination.GetParams(c)
	rows, total, err := h.salaryService.ListForUser(c.Context(), userID, params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list salary records")
	}

	return response.Success(c, "Salary records retrieved successfully", pagination.NewResponse(rows, params, total))
}

// EmployeeSalaries lists one employee's salary records (admin/hr)
// @Summary Employee salary records
// @Tags Salaries
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /salaries/employee/{id} [get]
func (h *SalaryHandler) EmployeeSalaries(c *fiber.Ctx) error {
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
	rows, total, err := h.salaryService.ListForUser(c.Context(), id, params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list salary records")
	}

	return response.Success(c, "Salary records retrieved successfully", pagination.NewResponse(rows, params, total))
}

// CompanyMonth lists company salary records for one month (admin/hr)
// @Summary Company salary records for a month
// @Tags Salaries
// @Produce json
// @Security BearerAuth
// @Param month query string true "Month in YYYY-MM format"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /salaries [get]
func (h *SalaryHandler) CompanyMonth(c *fiber.Ctx) error {
	session := middleware.CurrentSession(c)
	if session == nil {
		return response.Unauthorized(c, "Unauthorized")
	}

	month := c.Query("month")
	rows, err := h.salaryService.ListCompanyMonth(c.Context(), session.CompanyID, month)
	if err != nil {
		if errors.Is(err, services.ErrInvalidMonth) {
			return response.BadRequest(c, "Month must be in YYYY-MM format")
		}
		return response.InternalServerError(c, "Failed to list salary records")
	}

	return response.Success(c, "Salary records retrieved successfully", rows)
}
