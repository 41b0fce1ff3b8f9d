package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/studiozeta/agency-api/internal/core/domain"
)

// RequirePermission gates a route group on one flag of the acting admin's
// permission matrix. Superadmin passes every check. Services re-check the
// specific permission they need; this is the coarse route-level gate.
func RequirePermission(p domain.Permission) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			admin, _ := c.Get("admin").(*domain.Admin)
			if admin == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
			}
			if !admin.HasPermission(p) {
				return echo.NewHTTPError(http.StatusForbidden, "insufficient permissions")
			}
			return next(c)
		}
	}
}
