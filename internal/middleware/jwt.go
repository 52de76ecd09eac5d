package middleware // middleware provides shared request processing for handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/factora/auth-service/internal/auth"
)

// guardKey is the context key under which the per-request authorization
// guard is stored.
const guardKey = "auth_guard"

// Authenticate returns an Echo middleware that validates a Bearer access
// token and builds the request's authorization guard from its claim set.
// The claim set is an explicit immutable value constructed exactly once
// here; handlers never read claims out of ambient request state. The
// provided secret must match the one used when issuing tokens.
func Authenticate(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{
					"error": "missing bearer token", "code": auth.ErrUnauthorized.Code,
				})
			}
			raw := strings.TrimPrefix(header, "Bearer ")

			claims, err := auth.ParseAccessToken(raw, secret)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{
					"error": "invalid token", "code": auth.ErrUnauthorized.Code,
				})
			}

			c.Set(guardKey, auth.NewGuard(claims))
			return next(c)
		}
	}
}

// GuardFrom returns the request's authorization guard. When no verified
// identity is attached — a route outside the Authenticate middleware — the
// returned guard fails closed on every check.
func GuardFrom(c echo.Context) *auth.Guard {
	if g, ok := c.Get(guardKey).(*auth.Guard); ok {
		return g
	}
	return auth.NewGuard(nil)
}
