package handlers

import (
	"errors"

	"staffhub/internal/adapters/http/middleware"
	"staffhub/internal/core/services"
	"staffhub/internal/pkg/pagination"
	"staffhub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// TravelClaimHandler handles travel claim endpoints
type TravelClaimHandler struct {
	claimService *services.TravelClaimService
}

// NewTravelClaimHandler creates a new travel claim handler
func NewTravelClaimHandler(claimService *services.TravelClaimService) *TravelClaimHandler {
	return &TravelClaimHandler{claimService: claimService}
}

// Submit handles a travel claim submission
// @Summary Submit travel claim
// @Tags TravelClaims
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /claims [post]
func (h *TravelClaimHandler) Submit(c *fiber.Ctx) error {
	session := middleware.CurrentSession(c)
	if session == nil {
		return response.Unauthorized(c, "Unauthorized")
	}

	var req services.SubmitClaimInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	claim, err := h.claimService.Submit(c.Context(), session, &req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidClaim) {
			return response.BadRequest(c, "Invalid travel claim")
		}
		return response.InternalServerError(c, "Failed to submit claim")
	}

	return response.Created(c, "Claim submitted successfully", claim)
}

// Decide handles approving or rejecting a pending claim (admin/hr)
// @Summary Decide travel claim
// @Tags TravelClaims
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /claims/{id}/decide [post]
func (h *TravelClaimHandler) Decide(c *fiber.Ctx) error {
	session := middleware.CurrentSession(c)
	if session == nil {
		return response.Unauthorized(c, "Unauthorized")
	}

	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid claim ID")
	}

	var req services.DecideClaimInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	claim, err := h.claimService.Decide(c.Context(), session, id, &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrClaimNotFound):
			return response.NotFound(c, "Claim not found")
		case errors.Is(err, services.ErrClaimNotPending):
			return response.Conflict(c, "Claim is not pending")
		default:
			return response.InternalServerError(c, "Failed to decide claim")
		}
	}

	return response.Success(c, "Claim decided successfully", claim)
}

// Reimburse marks an approved claim as reimbursed (admin/hr)
// @Summary Reimburse travel claim
// @Tags TravelClaims
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /claims/{id}/reimburse [post]
func (h *TravelClaimHandler) Reimburse(c *fiber.Ctx) error {
	session := middleware.CurrentSession(c)
	if session == nil {
		return response.Unauthorized(c, "Unauthorized")
	}

	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid claim ID")
	}

	claim, err := h.claimService.MarkReimbursed(c.Context(), session, id)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrClaimNotFound):
			return response.NotFound(c, "Claim not found")
		case errors.Is(err, services.ErrClaimNotApproved):
			return response.Conflict(c, "Claim is not approved")
		default:
			return response.InternalServerError(c, "Failed to reimburse claim")
		}
	}

	return response.Success(c, "Claim reimbursed successfully", claim)
}

// MyClaims lists the caller's claims
// @Summary My travel claims
// @Tags TravelClaims
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /claims/my [get]
func (h *TravelClaimHandler) MyClaims(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	params := pagination.GetParams(c)
	rows, total, err := h.claimService.ListForUser(c.Context(), userID, params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list claims")
	}

	return response.Success(c, "Claims retrieved successfully", pagination.NewResponse(rows, params, total))
}

// CompanyClaims lists company claims with optional status filter (admin/hr)
// @Summary Company travel claims
// @Tags TravelClaims
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status"
// @Success 200 {object} response.Response
// @Router /claims [get]
func (h *TravelClaimHandler) CompanyClaims(c *fiber.Ctx) error {
	session := middleware.CurrentSession(c)
	if session == nil {
		return response.Unauthorized(c, "Unauthorized")
	}

	params := pagination.GetParams(c)
	status := c.Query("status")

	rows, total, err := h.claimService.ListCompany(c.Context(), session.CompanyID, status, params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list claims")
	}

	return response.Success(c, "Claims retrieved successfully", pagination.NewResponse(rows, params, total))
}
