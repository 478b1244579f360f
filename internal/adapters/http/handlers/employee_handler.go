package handlers

import (
	"errors"
	"strconv"

	"staffhub/internal/adapters/http/middleware"
	"staffhub/internal/core/services"
	"staffhub/internal/pkg/pagination"
	"staffhub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// EmployeeHandler handles employee management endpoints
type EmployeeHandler struct {
	employeeService *services.EmployeeService
}

// NewEmployeeHandler creates a new employee handler
func NewEmployeeHandler(employeeService *services.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{employeeService: employeeService}
}

// Create handles employee creation (admin/hr)
// @Summary Create employee
// @Tags Employees
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /employees [post]
func (h *EmployeeHandler) Create(c *fiber.Ctx) error {
	session := middleware.CurrentSession(c)
	if session == nil {
		return response.Unauthorized(c, "Unauthorized")
	}

	var req services.CreateEmployeeInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.FullName == "" {
		return response.BadRequest(c, "Full name is required")
	}
	if req.Email == "" {
		return response.BadRequest(c, "Email is required")
	}
	if len(req.Password) < 8 {
		return response.BadRequest(c, "Password must be at least 8 characters")
	}

	employee, err := h.employeeService.CreateEmployee(c.Context(), session, &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmailAlreadyExists):
			return response.Conflict(c, "Email already exists")
		case errors.Is(err, services.ErrInvalidRole):
			return response.BadRequest(c, "Invalid role")
		default:
			return response.InternalServerError(c, "Failed to create employee")
		}
	}

	return response.Created(c, "Employee created successfully", employee)
}

// List handles employee listing (admin/hr)
// @Summary List employees
// @Tags Employees
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /employees [get]
func (h *EmployeeHandler) List(c *fiber.Ctx) error {
	session := middleware.CurrentSession(c)
	if session == nil {
		return response.Unauthorized(c, "Unauthorized")
	}

	params := pagination.GetParams(c)
	employees, total, err := h.employeeService.ListEmployees(c.Context(), session.CompanyID, params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list employees")
	}

	return response.Success(c, "Employees retrieved successfully", pagination.NewResponse(employees, params, total))
}

// Get handles fetching a single employee (admin/hr)
// @Summary Get employee
// @Tags Employees
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /employees/{id} [get]
func (h *EmployeeHandler) Get(c *fiber.Ctx) error {
	session := middleware.CurrentSession(c)
	if session == nil {
		return response.Unauthorized(c, "Unauthorized")
	}

	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid employee ID")
	}

	employee, err := h.employeeService.GetEmployee(c.Context(), session.CompanyID, id)
	if err != nil {
		if errors.Is(err, services.ErrEmployeeNotFound) {
			return response.NotFound(c, "Employee not found")
		}
		return response.InternalServerError(c, "Failed to get employee")
	}

	return response.Success(c, "Employee retrieved successfully", employee)
}

// Update handles employee updates (admin/hr)
// @Summary Update employee
// @Tags Employees
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /employees/{id} [put]
func (h *EmployeeHandler) Update(c *fiber.Ctx) error {
	session := middleware.CurrentSession(c)
	if session == nil {
		return response.Unauthorized(c, "Unauthorized")
	}

	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid employee ID")
	}

	var req services.UpdateEmployeeInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	employee, err := h.employeeService.UpdateEmployee(c.Context(), session, id, &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmployeeNotFound):
			return response.NotFound(c, "Employee not found")
		case errors.Is(err, services.ErrCannotChangeOwnRole):
			return response.BadRequest(c, "Cannot change your own role")
		case errors.Is(err, services.ErrInvalidRole):
			return response.BadRequest(c, "Invalid role")
		default:
			return response.InternalServerError(c, "Failed to update employee")
		}
	}

	return response.Success(c, "Employee updated successfully", employee)
}

// UpdateGeofence handles employee geofence updates (admin/hr)
// @Summary Update employee geofence
// @Tags Employees
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /employees/{id}/geofence [put]
func (h *EmployeeHandler) UpdateGeofence(c *fiber.Ctx) error {
	session := middleware.CurrentSession(c)
	if session == nil {
		return response.Unauthorized(c, "Unauthorized")
	}

	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid employee ID")
	}

	var req services.UpdateGeofenceInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	employee, err := h.employeeService.UpdateGeofence(c.Context(), session, id, &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmployeeNotFound):
			return response.NotFound(c, "Employee not found")
		case errors.Is(err, services.ErrGeofenceIncomplete):
			return response.BadRequest(c, "Geofence requires both latitude and longitude")
		default:
			return response.InternalServerError(c, "Failed to update geofence")
		}
	}

	return response.Success(c, "Geofence updated successfully", employee)
}

// Delete handles employee deletion (admin)
// @Summary Delete employee
// @Tags Employees
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /employees/{id} [delete]
func (h *EmployeeHandler) Delete(c *fiber.Ctx) error {
	session := middleware.CurrentSession(c)
	if session == nil {
		return response.Unauthorized(c, "Unauthorized")
	}

	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid employee ID")
	}

	if err := h.employeeService.DeleteEmployee(c.Context(), session, id); err != nil {
		switch {
		case errors.Is(err, services.ErrEmployeeNotFound):
			return response.NotFound(c, "Employee not found")
		case errors.Is(err, services.ErrCannotDeleteSelf):
			return response.BadRequest(c, "Cannot delete your own account")
		default:
			return response.InternalServerError(c, "Failed to delete employee")
		}
	}

	return response.Success(c, "Employee deleted successfully", nil)
}

// GetProfile returns the caller's own profile
// @Summary Get own profile
// @Tags Profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /profile [get]
func (h *EmployeeHandler) GetProfile(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	profile, err := h.employeeService.GetProfile(c.Context(), userID)
	if err != nil {
		return response.NotFound(c, "Profile not found")
	}

	return response.Success(c, "Profile retrieved successfully", profile)
}

// UpdateProfile updates the caller's own profile
// @Summary Update own profile
// @Tags Profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /profile [put]
func (h *EmployeeHandler) UpdateProfile(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var req services.UpdateProfileInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	profile, err := h.employeeService.UpdateProfile(c.Context(), userID, &req)
	if err != nil {
		return response.InternalServerError(c, "Failed to update profile")
	}

	return response.Success(c, "Profile updated successfully", profile)
}

// ChangePassword changes the caller's password
// @Summary Change own password
// @Tags Profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /profile/password [put]
func (h *EmployeeHandler) ChangePassword(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var req services.ChangePasswordInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.employeeService.ChangePassword(c.Context(), userID, &req); err != nil {
		if errors.Is(err, services.ErrOldPasswordWrong) {
			return response.BadRequest(c, "Old password is incorrect")
		}
		return response.BadRequest(c, err.Error())
	}

	return response.Success(c, "Password changed successfully", nil)
}

// parseID parses a numeric path parameter
func parseID(c *fiber.Ctx, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(name), 10, 32)
	if err != nil || id == 0 {
		return 0, errors.New("invalid id")
	}
	return uint(id), nil
}
