// Package middleware holds the gin middleware for the HTTP server: the bearer
// token gate, request logging, and telemetry.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"lead-crm/backend/internal/security"
)

const bearerPrefix = "bearer "

// Auth returns a gin middleware that validates the Bearer token from the
// Authorization header and sets the verified employee email in the request
// context for protected routes. A missing token aborts with 401; a malformed,
// expired, or badly signed token aborts with 400. The gate is a pure filter:
// it keeps no state and has no side effects.
func Auth(tokens *security.TokenProvider) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractBearer(c.GetHeader("Authorization"))
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Access denied. No token provided."})
			return
		}
		email, err := tokens.Verify(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "Invalid token"})
			return
		}
		c.Request = c.Request.WithContext(WithEmployeeEmail(c.Request.Context(), email))
		c.Next()
	}
}

// extractBearer returns the Bearer token from the header value, or "" if
// missing or malformed.
func extractBearer(header string) string {
	v := strings.TrimSpace(header)
	if len(v) < len(bearerPrefix) {
		return ""
	}
	if !strings.EqualFold(v[:len(bearerPrefix)], bearerPrefix) {
		return ""
	}
	return strings.TrimSpace(v[len(bearerPrefix):])
}
