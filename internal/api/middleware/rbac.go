package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/agencyops/crm-system/internal/core/domain"
	"github.com/agencyops/crm-system/internal/core/rbac"
)

// RequirePermission gates a route on a single permission. The identity must
// already be in context, so this always runs after Auth.
func RequirePermission(permission rbac.Permission) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, ok := c.Get("role").(string)
			if !ok || role == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing identity")
			}
			id, _ := c.Get("user_id").(int)
			actor := &domain.User{ID: id, Role: role}
			if !rbac.IsAllowed(actor, permission) {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}
			return next(c)
		}
	}
}
