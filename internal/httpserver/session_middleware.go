package httpserver

import (
	"github.com/gin-gonic/gin"

	"projectboard/internal/service/auth"
)

// SessionFromCookie surfaces the role carried by the jwt cookie so it
// shows up in request logs. It never rejects a request: the token is a
// mock and its validity is not checked anywhere. Capability gating
// happens in the presentation layer only.
func SessionFromCookie() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie("jwt")
		if err == nil && token != "" {
			if role, ok := auth.RoleFromToken(token); ok {
				c.Set("role", role)
			}
		}
		c.Next()
	}
}
