package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ada-support/helpdesk/internal/domain"
	apperrors "github.com/ada-support/helpdesk/pkg/util"
)

// RequireAdmin ensures the resolved user carries the admin role.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, ok := CurrentUser(c)
		if !ok || user.Role != domain.RoleAdmin {
			return apperrors.NewForbidden("Forbidden: You are not authorized to access this page")
		}
		return c.Next()
	}
}
