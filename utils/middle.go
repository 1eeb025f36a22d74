package utils

import (
	"net/http"
	"strings"

	"ClassVault/internal/perm"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware verifies the bearer token and attaches the requester.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
			c.Abort()
			return
		}
		tokenParts := strings.Split(authHeader, " ")
		if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
			c.Abort()
			return
		}
		claims, err := VerifyToken(tokenParts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
			c.Abort()
			return
		}
		c.Set("requester", perm.Requester{
			TeamNumber: claims.TeamNumber,
			IsAdmin:    claims.IsAdmin,
		})
		c.Next()
	}
}

// RequesterFrom returns the requester attached by AuthMiddleware.
func RequesterFrom(c *gin.Context) perm.Requester {
	return c.MustGet("requester").(perm.Requester)
}

// AdminOnly rejects non-instructor sessions. Destructive handlers still
// re-check the step-up admin secret on top of this.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		requester, ok := c.Get("requester")
		if !ok || !requester.(perm.Requester).IsAdmin {
			c.JSON(http.StatusForbidden, gin.H{"error": "admin only"})
			c.Abort()
			return
		}
		c.Next()
	}
}
