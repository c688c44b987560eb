package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/nutrition5k/nutrition-api/internal/core/ports"
)

// Context keys under which the verified identity is stored.
const (
	CtxUserID = "user_id"
	CtxEmail  = "email"
)

// Auth requires a valid bearer token. A missing token is a 401, a
// present but invalid or expired token is a 403. On success the decoded
// identity is attached to the request context.
func Auth(tokens ports.TokenService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := bearerToken(c)
			if token == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Access token required")
			}

			identity, err := tokens.Verify(token)
			if err != nil {
				return echo.NewHTTPError(http.StatusForbidden, "Invalid or expired token")
			}

			c.Set(CtxUserID, identity.UserID)
			c.Set(CtxEmail, identity.Email)
			return next(c)
		}
	}
}

// OptionalAuth attaches the identity when a valid bearer token is
// present and continues unauthenticated otherwise. Invalid tokens are
// swallowed, never rejected.
func OptionalAuth(tokens ports.TokenService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if token := bearerToken(c); token != "" {
				if identity, err := tokens.Verify(token); err == nil {
					c.Set(CtxUserID, identity.UserID)
					c.Set(CtxEmail, identity.Email)
				}
			}
			return next(c)
		}
	}
}

// bearerToken extracts the token from an `Authorization: Bearer <token>`
// header, returning "" when the header is absent or malformed.
func bearerToken(c echo.Context) string {
	header := c.Request().Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}
