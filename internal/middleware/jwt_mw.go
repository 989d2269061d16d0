package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"community_board/internal/model"
	"community_board/internal/utils"

	"github.com/gin-gonic/gin"
)

// IdentityKey is the gin context key holding the caller's model.Identity
const IdentityKey = "authIdentity"

// TokenVerifier checks a bearer token and returns its claims
type TokenVerifier interface {
	ValidateToken(tokenString string) (*utils.JWTClaims, error)
}

// JWTAuthMiddleware creates a middleware for JWT authentication.
// Every rejection uses the same 401 body so clients cannot tell the failure apart.
func JWTAuthMiddleware(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}

		claims, err := verifier.ValidateToken(tokenString)
		if err != nil {
			slog.DebugContext(c.Request.Context(), "token rejected", "error", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}

		c.Set(IdentityKey, claims.Identity())
		c.Next()
	}
}

// CurrentIdentity returns the identity attached by JWTAuthMiddleware
func CurrentIdentity(c *gin.Context) (model.Identity, bool) {
	val, exists := c.Get(IdentityKey)
	if !exists {
		return model.Identity{}, false
	}
	id, ok := val.(model.Identity)
	return id, ok
}

func bearerToken(header string) (string, bool) {
	parts := strings.Split(header, " ")
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}
