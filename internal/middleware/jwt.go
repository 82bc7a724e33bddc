package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// ContextKeyStateToken is the Gin context key for a bearer state token.
const ContextKeyStateToken = "state_token"

// StateToken lifts a simulation state token from "Authorization: Bearer"
// into the context. Requests without the header pass through untouched;
// handlers decide what a missing token means.
func StateToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if token, ok := strings.CutPrefix(header, "Bearer "); ok {
			if token = strings.TrimSpace(token); token != "" {
				c.Set(ContextKeyStateToken, token)
			}
		}
		c.Next()
	}
}

// GetStateToken returns the bearer state token, or "" if none was sent.
func GetStateToken(c *gin.Context) string {
	return c.GetString(ContextKeyStateToken)
}
