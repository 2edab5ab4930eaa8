package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	apperrors "github.com/johnquangdev/team-assistant/errors"
	"github.com/johnquangdev/team-assistant/pkg/jwt"
)

// EchoAuth returns an Echo middleware that validates the bearer token and
// sets "subject" into the Echo context. A nil manager disables auth, which
// is how local development runs.
func EchoAuth(manager *jwt.Manager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if manager == nil {
				return next(c)
			}

			token := extractToken(c)
			if token == "" {
				return unauthorized(c, "Missing authorization token")
			}

			claims, err := manager.Verify(token)
			if err != nil {
				return unauthorized(c, "Invalid or expired token")
			}

			c.Set("subject", claims.Subject)
			return next(c)
		}
	}
}

func unauthorized(c echo.Context, info string) error {
	appErr := apperrors.ErrUnauthenticated()
	return c.JSON(appErr.HTTPCode, map[string]string{
		"code":    appErr.Code.String(),
		"message": appErr.Message,
		"info":    info,
	})
}

func extractToken(c echo.Context) string {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader != "" {
		// Expected format: "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && strings.ToLower(parts[0]) == "bearer" {
			return parts[1]
		}
	}

	// Try cookie as fallback
	if cookie, err := c.Cookie("access_token"); err == nil {
		return cookie.Value
	}

	return ""
}
