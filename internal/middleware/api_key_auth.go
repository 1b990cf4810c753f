package middleware

import (
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// APIKeyHeader is the header service-to-service callers put their key in.
const APIKeyHeader = "x-api-key"

// APIKeyAuth accepts requests whose x-api-key matches the configured bcrypt hash and records
// callerID as the acting user. A missing or wrong key is not rejected here; the bearer check
// that follows decides.
func APIKeyAuth(keyHash string, callerID string) gin.HandlerFunc {
	hash := []byte(keyHash)
	return func(c *gin.Context) {
		key := c.GetHeader(APIKeyHeader)
		if key == "" || len(hash) == 0 {
			c.Next()
			return
		}

		if err := bcrypt.CompareHashAndPassword(hash, []byte(key)); err != nil {
			GetLoggerFromCtx(c.Request.Context()).Warn("API key rejected")
			c.Next()
			return
		}

		markAuthenticated(c, "api_key", callerID)
		c.Next()
	}
}

// RequireAuthenticated rejects requests no earlier middleware accepted.
// It closes the chain when an API key is configured without a JWT secret.
func RequireAuthenticated() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !isAuthenticated(c) {
			abortUnauthorized(c, "Valid x-api-key header required")
			return
		}
		c.Next()
	}
}

// AnonymousAs marks every request as coming from userID. Used when auth is disabled.
func AnonymousAs(userID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		markAuthenticated(c, "none", userID)
		c.Next()
	}
}
