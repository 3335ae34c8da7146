package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/scholarhub/scholarhub-backend/internal/dto"
	"github.com/scholarhub/scholarhub-backend/internal/models"
	"gorm.io/gorm"
)

// DefaultRoute returns the dashboard route a role lands on when denied a
// view belonging to another role. Clients use it as the redirect target.
func DefaultRoute(role string) string {
	switch role {
	case models.RoleAdmin:
		return "/dashboard/admin/profile"
	case models.RoleModerator:
		return "/dashboard/moderator/profile"
	default:
		return "/dashboard/user/my-profile"
	}
}

// RoleRequired gates a route to callers whose role is in allowed. The role
// claim on the access token is checked first; the user row is the fallback
// so a role change takes effect without waiting for token expiry. Denials
// carry the caller's own default route so the client can redirect there.
func RoleRequired(db *gorm.DB, allowed ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := GetUserID(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}

		role := GetUserRole(c)
		if role != "" && contains(allowed, role) {
			return c.Next()
		}

		if db != nil {
			var user models.User
			if err := db.First(&user, "id = ?", userID).Error; err == nil {
				role = user.EffectiveRole()
				if contains(allowed, role) {
					return c.Next()
				}
			}
		}

		return c.Status(fiber.StatusForbidden).JSON(dto.ForbiddenResponse{
			Error:    true,
			Message:  strings.Join(allowed, " or ") + " access required",
			Redirect: DefaultRoute(role),
		})
	}
}

func contains(list []string, val string) bool {
	for _, item := range list {
		if item == val {
			return true
		}
	}
	return false
}
