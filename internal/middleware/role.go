package middleware

import (
	"net/http"

	"mentorhub/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// RequireRole ensures that the authenticated user has the specified role
func RequireRole(requiredRole string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("role")
		if !exists {
			response.CustomError(c, http.StatusUnauthorized, "UNAUTHORIZED", "Role not found in token")
			return
		}

		if r, _ := role.(string); r != requiredRole {
			response.CustomError(c, http.StatusForbidden, response.CodeForbidden, response.Message(response.CodeForbidden))
			return
		}

		c.Next()
	}
}

// MentorOnly middleware requires mentor role
func MentorOnly() gin.HandlerFunc {
	return RequireRole("mentor")
}
