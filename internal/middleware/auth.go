// ================== internal/middleware/auth.go ==================
package middleware

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/xyz-asif/taskmanager/internal/pkg/response"
	"github.com/xyz-asif/taskmanager/internal/pkg/token"
)

// Context keys set by Auth.
const (
	UserIDKey   = "userID"
	ProviderKey = "provider"
)

const bearerPrefix = "Bearer "

// Auth accepts "Authorization: Bearer <access token>" (scheme is case
// insensitive) and stores the subject and provider in the context.
func Auth(tokens *token.Issuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if len(header) < len(bearerPrefix) || !strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix) {
			response.Unauthorized(c, "Authorization header missing.")
			c.Abort()
			return
		}

		claims, err := tokens.Verify(strings.TrimSpace(header[len(bearerPrefix):]), token.Access)
		if err != nil {
			if errors.Is(err, token.ErrNotConfigured) {
				slog.ErrorContext(c.Request.Context(), "bearer check without signing secret")
			}
			if errors.Is(err, token.ErrWrongType) {
				response.Unauthorized(c, "Invalid access token.")
			} else {
				response.Unauthorized(c, "Unauthorized.")
			}
			c.Abort()
			return
		}

		c.Set(UserIDKey, claims.Subject)
		c.Set(ProviderKey, claims.Provider)
		c.Next()
	}
}
