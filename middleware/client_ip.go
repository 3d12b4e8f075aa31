package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// GetClientIP returns the originating client address. The first hop of
// X-Forwarded-For wins, then X-Real-IP, then gin's view of the remote address.
func GetClientIP(c *gin.Context) string {
	if xff := c.GetHeader("X-Forwarded-For"); xff != "" {
		if first, _, _ := strings.Cut(xff, ","); strings.TrimSpace(first) != "" {
			return strings.TrimSpace(first)
		}
	}
	if xri := strings.TrimSpace(c.GetHeader("X-Real-IP")); xri != "" {
		return xri
	}
	return c.ClientIP()
}
