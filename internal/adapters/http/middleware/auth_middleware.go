package middleware

import (
	"errors"
	"strings"

	"staffhub/internal/adapters/persistence/models"
	"staffhub/internal/core/services"
	"staffhub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// SessionCookieName is the cookie that carries the opaque session token
const SessionCookieName = "session_token"

// AuthMiddleware creates authentication middleware backed by the
// server-side session store
func AuthMiddleware(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := extractToken(c)
		if token == "" {
			return response.Unauthorized(c, "Session token required")
		}

		session, err := authService.GetSession(c.Context(), token)
		if err != nil {
			if errors.Is(err, services.ErrSessionExpired) {
				return response.Unauthorized(c, "Session expired")
			}
			if errors.Is(err, services.ErrSessionNotFound) {
				return response.Unauthorized(c, "Invalid session token")
			}
			return response.InternalServerError(c, "Failed to validate session")
		}

		c.Locals("session", session)
		c.Locals("userID", session.UserID)
		c.Locals("companyID", session.CompanyID)
		c.Locals("role", session.Role)

		return c.Next()
	}
}

// RoleMiddleware creates role-based authorization middleware
func RoleMiddleware(allowedRoles ...models.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals("role").(models.Role)
		if !ok {
			return response.Unauthorized(c, "Unauthorized")
		}

		for _, allowedRole := range allowedRoles {
			if role == allowedRole {
				return c.Next()
			}
		}

		return response.Forbidden(c, "You don't have permission to access this resource")
	}
}

// AdminOnly middleware allows only the admin role
func AdminOnly() fiber.Handler {
	return RoleMiddleware(models.RoleAdmin)
}

// AdminOrHR middleware allows the administrative roles
func AdminOrHR() fiber.Handler {
	return RoleMiddleware(models.RoleAdmin, models.RoleHR)
}

// ManagerOrAbove middleware allows manager, hr and admin roles
func ManagerOrAbove() fiber.Handler {
	return RoleMiddleware(models.RoleManager, models.RoleHR, models.RoleAdmin)
}

// CurrentSession returns the session principal stored by AuthMiddleware
func CurrentSession(c *fiber.Ctx) *models.Session {
	session, _ := c.Locals("session").(*models.Session)
	return session
}

func extractToken(c *fiber.Ctx) string {
	// 1. Try to get token from cookie first
	token := c.Cookies(SessionCookieName)
	if token != "" {
		return token
	}

	// 2. If not in cookie, try Authorization header
	authHeader := c.Get("Authorization")
	if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}

	return ""
}
