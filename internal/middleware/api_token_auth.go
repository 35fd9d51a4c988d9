package middleware

import (
	"crypto/subtle"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// TokenQueryParam carries the API token for clients that cannot set headers (WebSocket)
const TokenQueryParam = "token"

// APITokenAuthMiddleware checks requests against a single shared API token
type APITokenAuthMiddleware struct {
	token []byte
}

// NewAPITokenAuthMiddleware creates a new APITokenAuthMiddleware.
// An empty token disables authentication.
func NewAPITokenAuthMiddleware(token string) *APITokenAuthMiddleware {
	return &APITokenAuthMiddleware{token: []byte(token)}
}

// Enabled reports whether a token is configured
func (m *APITokenAuthMiddleware) Enabled() bool {
	return len(m.token) > 0
}

// Valid reports whether candidate matches the configured token
func (m *APITokenAuthMiddleware) Valid(candidate string) bool {
	if !m.Enabled() {
		return true
	}
	return subtle.ConstantTimeCompare([]byte(candidate), m.token) == 1
}

// Authenticate returns an Echo middleware that requires "Authorization: Bearer <token>".
// The token query parameter is accepted as a fallback.
func (m *APITokenAuthMiddleware) Authenticate() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !m.Enabled() {
				return next(c)
			}

			token := c.QueryParam(TokenQueryParam)
			if authHeader := c.Request().Header.Get(echo.HeaderAuthorization); authHeader != "" {
				// Check Bearer prefix
				parts := strings.SplitN(authHeader, " ", 2)
				if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
					return unauthorizedError(c, "Invalid authorization header format")
				}
				token = strings.TrimSpace(parts[1])
			}

			if token == "" {
				return unauthorizedError(c, "Missing authorization header")
			}
			if !m.Valid(token) {
				log.Debug().Str("path", c.Request().URL.Path).Msg("API token rejected")
				return unauthorizedError(c, "Invalid API token")
			}

			return next(c)
		}
	}
}
