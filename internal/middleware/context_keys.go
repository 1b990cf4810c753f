package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
)

// contextKey is a private type for values this package stores in a context.
type contextKey string

const (
	loggerCtxKey  = contextKey("logger")
	userIDKey     = contextKey("userID")
	authMethodKey = contextKey("authMethod")
	requestIDKey  = contextKey("requestID")
)

// WithRequestID returns a copy of ctx carrying the request id.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// GetRequestIDFromCtx returns the request id, or "" outside a request.
func GetRequestIDFromCtx(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// WithUserID returns a copy of ctx carrying the authenticated subject.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// GetUserIDFromContext retrieves the authenticated user ID from the request context.
// It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	userID, ok := c.Request.Context().Value(userIDKey).(string)
	if !ok || userID == "" {
		return "", false
	}
	return userID, true
}

// isAuthenticated reports whether an earlier middleware already accepted the request.
func isAuthenticated(c *gin.Context) bool {
	_, done := c.Get(string(authMethodKey))
	return done
}

func markAuthenticated(c *gin.Context, method string, userID string) {
	c.Set(string(authMethodKey), method)
	ctx := WithUserID(c.Request.Context(), userID)
	ctx = WithLogger(ctx, GetLoggerFromCtx(ctx).With("user_id", userID, "auth_method", method))
	c.Request = c.Request.WithContext(ctx)
}
