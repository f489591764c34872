// README: WeChat mini-program request gate (signature headers).
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// WxSignature checks for the Signature/Timestamp/Nonce headers the WeChat
// mini-program client sends. Verification against the session key happens on
// the WeChat side of the integration; here absent headers are rejected
// outright. In debug mode the gate is skipped entirely.
func WxSignature(debug bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if debug {
			c.Next()
			return
		}
		signature := c.GetHeader("Signature")
		timestamp := c.GetHeader("Timestamp")
		nonce := c.GetHeader("Nonce")
		if signature == "" || timestamp == "" || nonce == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		c.Next()
	}
}
