package handlers

import (
	"errors"

	"staffhub/internal/adapters/http/middleware"
	"staffhub/internal/core/services"
	"staffhub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// CompanyHandler handles company settings endpoints
type CompanyHandler struct {
	companyService *services.CompanyService
}

// NewCompanyHandler creates a new company handler
func NewCompanyHandler(companyService *services.CompanyService) *CompanyHandler {
	return &CompanyHandler{companyService: companyService}
}

// Get returns the caller's company
// @Summary Get company
// @Tags Company
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /company [get]
func (h *CompanyHandler) Get(c *fiber.Ctx) error {
	session := middleware.CurrentSession(c)
	if session == nil {
		return response.Unauthorized(c, "Unauthorized")
	}

	company, err := h.companyService.Get(c.Context(), session.CompanyID)
	if err != nil {
		if errors.Is(err, services.ErrCompanyNotFound) {
			return response.NotFound(c, "Company not found")
		}
		return response.InternalServerError(c, "Failed to get company")
	}

	return response.Success(c, "Company retrieved successfully", company)
}

// Update updates the caller's company settings (admin)
// @Summary Update company settings
// @Tags Company
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /company [put]
func (h *CompanyHandler) Update(c *fiber.Ctx) error {
	session := middleware.CurrentSession(c)
	if session == nil {
		return response.Unauthorized(c, "Unauthorized")
	}

	var req services.UpdateCompanyInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	company, err := h.companyService.Update(c.Context(), session, &req)
	if err != nil {
		if errors.Is(err, services.ErrCompanyNotFound) {
			return response.NotFound(c, "Company not found")
		}
		return response.InternalServerError(c, "Failed to update company")
	}

	return response.Success(c, "Company updated successfully", company)
}
