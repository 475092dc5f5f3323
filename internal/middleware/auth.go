package middleware

import (
	"errors"
	"net/http"
	"strings"

	"youngchai/internal/services"

	"github.com/gin-gonic/gin"
)

// AdminUserKey is the context key holding the verified admin username.
const AdminUserKey = "admin_user"

// AdminRequired gates moderation routes behind a verified, allow-listed
// identity. The bearer credential is verified on every request; nothing is
// carried between requests besides the verifier's own short token cache.
func AdminRequired(verifier *services.IdentityVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		username, err := verifier.Verify(bearerToken(c))
		if err != nil {
			var notAuthorized *services.NotAuthorizedError
			switch {
			case errors.Is(err, services.ErrMissingCredential):
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing authorization credential"})
			case errors.Is(err, services.ErrInvalidCredential):
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization credential"})
			case errors.As(err, &notAuthorized):
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "You are not authorized to manage comments"})
			default:
				c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "Identity provider unavailable"})
			}
			return
		}

		c.Set(AdminUserKey, username)
		c.Next()
	}
}

// bearerToken extracts the credential from "Authorization: Bearer <token>".
func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
