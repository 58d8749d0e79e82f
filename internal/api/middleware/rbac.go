package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/geobooks/library-system/internal/core/domain"
	"github.com/geobooks/library-system/internal/core/ports"
)

// WithRole resolves the session's library role from its profile record and
// injects it into context. An identity without a profile record yet is a
// plain user. Must run after Auth.
func WithRole(users ports.UserService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			email, _ := c.Get("email").(string)
			if email == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
			}

			role := domain.RoleUser
			profile, err := users.GetByEmail(c.Request().Context(), email)
			switch {
			case err == nil:
				role = profile.Role
			case errors.Is(err, domain.ErrUserNotFound):
				// no profile yet, keep the default role
			default:
				return err
			}

			c.Set("role", role)
			return next(c)
		}
	}
}

// RBAC enforces role-based access control. Must run after WithRole.
func RBAC(allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get("role").(string)
			if _, ok := allowed[role]; !ok {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}
			return next(c)
		}
	}
}
