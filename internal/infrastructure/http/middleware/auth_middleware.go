package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-capture/errors"
	"github.com/johnquangdev/meeting-capture/pkg/jwt"
)

// TokenVerifier validates bearer tokens
type TokenVerifier interface {
	ValidateAccessToken(token string) (*jwt.Claims, error)
}

// EchoAuth returns an Echo middleware that validates the bearer token and sets
// "user_id" (uuid.UUID) and "claims" (*jwt.Claims) into Echo context
func EchoAuth(verifier TokenVerifier, logger *zap.Logger) echo.MiddlewareFunc {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := extractToken(c)
			if token == "" {
				return respondError(c, errors.ErrUnauthenticated())
			}

			claims, err := verifier.ValidateAccessToken(token)
			if err != nil {
				logger.Debug("auth.token.rejected", zap.String("path", c.Path()), zap.Error(err))
				return respondError(c, errors.ErrInvalidToken())
			}

			c.Set("claims", claims)
			c.Set("user_id", claims.UserID)

			return next(c)
		}
	}
}

// Helper functions

func extractToken(c echo.Context) string {
	// Try Authorization header first
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader != "" {
		// Expected format: "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.ToLower(parts[0]) == "bearer" {
			return strings.TrimSpace(parts[1])
		}
	}

	// Try cookie as fallback
	if cookie, err := c.Cookie("access_token"); err == nil {
		return cookie.Value
	}

	return ""
}

func respondError(c echo.Context, appErr errors.AppError) error {
	return c.JSON(appErr.HTTPCode, map[string]interface{}{
		"code":    appErr.Code,
		"message": appErr.Message,
	})
}
