package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/factora/auth-service/internal/auth"
)

// RequirePermission returns a middleware that rejects the request with 403
// unless the authenticated caller holds the given permission. It assumes
// Authenticate ran earlier in the chain; without it the guard fails closed
// and every request is rejected. Route-level permission gates replace the
// per-handler role branching this service used to need.
func RequirePermission(p auth.Permission) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if err := GuardFrom(c).RequirePermission(p); err != nil {
				return c.JSON(http.StatusForbidden, echo.Map{
					"error": "forbidden", "code": auth.ErrForbidden.Code,
				})
			}
			return next(c)
		}
	}
}
