// README: Firebase ID-token middleware; unauthenticated callers continue anonymously.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"rentalpromo/internal/infra"
)

const (
	ctxKeyUID  = "caller_uid"
	ctxKeyRole = "caller_role"
)

// OptionalAuth verifies a "Bearer <id token>" header when present. A missing,
// malformed or rejected token leaves the caller anonymous; catalog reads
// never fail on authentication. verifier may be nil.
func OptionalAuth(verifier infra.TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		if verifier == nil {
			c.Next()
			return
		}
		header := c.GetHeader("Authorization")
		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(raw) == "" {
			c.Next()
			return
		}
		token, err := verifier.VerifyIDToken(c.Request.Context(), strings.TrimSpace(raw))
		if err != nil {
			zap.L().Debug("id token rejected; continuing anonymously", zap.Error(err))
			c.Next()
			return
		}
		c.Set(ctxKeyUID, token.UID)
		if role, ok := token.Claims["role"].(string); ok {
			c.Set(ctxKeyRole, role)
		}
		c.Next()
	}
}

// RequireCaller rejects anonymous requests with 401.
func RequireCaller() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CallerUID(c) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		c.Next()
	}
}

// CallerUID returns the verified uid, or "" for anonymous callers.
func CallerUID(c *gin.Context) string {
	return c.GetString(ctxKeyUID)
}

func CallerRole(c *gin.Context) string {
	return c.GetString(ctxKeyRole)
}
