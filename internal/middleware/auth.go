package middleware

import (
	"crypto/subtle"
	"net/http"

	"giftcard-backend/internal/config"

	"github.com/gin-gonic/gin"
)

// AdminAuth guards the admin endpoints with the shared admin token, passed
// as the "key" query parameter. The comparison is exact: case-sensitive, no
// trimming. With no token configured every request is rejected.
func AdminAuth(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		supplied := c.Query("key")
		if cfg.AdminToken == "" ||
			subtle.ConstantTimeCompare([]byte(supplied), []byte(cfg.AdminToken)) != 1 {
			c.String(http.StatusUnauthorized, "Unauthorized")
			c.Abort()
			return
		}
		c.Next()
	}
}
