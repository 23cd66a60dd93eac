package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// OwnerHeader carries the authenticated caller id set by the upstream
// identity layer. Session establishment happens there, not here.
const OwnerHeader = "X-Owner-ID"

// RequireOwner rejects requests without an owner identity and places the
// id on the context for handlers.
func RequireOwner() gin.HandlerFunc {
	return func(c *gin.Context) {
		owner := c.GetHeader(OwnerHeader)
		if owner == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing " + OwnerHeader + " header"})
			return
		}
		c.Set("ownerID", owner)
		c.Next()
	}
}
