package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	// userIDKey is the Gin context key holding the caller identity.
	userIDKey = "userID"
	// userIDHeader carries the caller identity on requests. There is no real
	// authentication layer; the header stands in for one.
	userIDHeader = "X-User-ID"
)

// Identity resolves the caller from the X-User-ID header and stores it in
// the Gin context so handlers and the access log can scope by user. Requests
// without the header fall back to defaultUser.
func Identity(defaultUser string) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := strings.TrimSpace(c.GetHeader(userIDHeader))
		if uid == "" {
			uid = defaultUser
		}
		c.Set(userIDKey, uid)
		c.Next()
	}
}
