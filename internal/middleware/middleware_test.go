package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "test-secret-key-that-is-long-enough"

func signToken(t *testing.T, secret, subject string, expiresIn time.Duration) string {
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

// whoAmI echoes the user the auth chain settled on.
func whoAmI(c *gin.Context) {
	userID, ok := GetUserIDFromContext(c)
	if !ok {
		c.String(http.StatusOK, "<none>")
		return
	}
	c.String(http.StatusOK, userID)
}

func newRouter(chain ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	r.Use(StructuredLoggingMiddleware(logger))
	r.GET("/whoami", append(chain, whoAmI)...)
	return r
}

func get(r *gin.Engine, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	r := newRouter(AuthMiddleware(testSecret))

	cases := []struct {
		name   string
		header string
		status int
		body   string
	}{
		{"valid token", "Bearer " + signToken(t, testSecret, "cashier-1", time.Hour), http.StatusOK, "cashier-1"},
		{"missing header", "", http.StatusUnauthorized, "Authorization header required"},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized, "Bearer {token}"},
		{"expired", "Bearer " + signToken(t, testSecret, "cashier-1", -time.Hour), http.StatusUnauthorized, "Token has expired"},
		{"wrong secret", "Bearer " + signToken(t, "another-secret", "cashier-1", time.Hour), http.StatusUnauthorized, "Invalid token"},
		{"no subject", "Bearer " + signToken(t, testSecret, "", time.Hour), http.StatusUnauthorized, "Invalid token claims"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			headers := map[string]string{}
			if tc.header != "" {
				headers["Authorization"] = tc.header
			}
			w := get(r, headers)
			assert.Equal(t, tc.status, w.Code)
			assert.Contains(t, w.Body.String(), tc.body)
		})
	}
}

func TestAPIKeyAuth(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret-key"), bcrypt.MinCost)
	require.NoError(t, err)

	t.Run("key alone with require", func(t *testing.T) {
		r := newRouter(APIKeyAuth(string(hash), "billing-gateway"), RequireAuthenticated())

		w := get(r, map[string]string{APIKeyHeader: "s3cret-key"})
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "billing-gateway", w.Body.String())

		w = get(r, map[string]string{APIKeyHeader: "wrong"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)

		w = get(r, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("key falls through to bearer", func(t *testing.T) {
		r := newRouter(APIKeyAuth(string(hash), "billing-gateway"), AuthMiddleware(testSecret))

		w := get(r, map[string]string{APIKeyHeader: "s3cret-key"})
		assert.Equal(t, "billing-gateway", w.Body.String())

		w = get(r, map[string]string{
			APIKeyHeader:    "wrong",
			"Authorization": "Bearer " + signToken(t, testSecret, "cashier-2", time.Hour),
		})
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "cashier-2", w.Body.String())
	})
}

func TestAnonymousAs(t *testing.T) {
	r := newRouter(AnonymousAs("system"))

	w := get(r, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "system", w.Body.String())
}

func TestRequestIDPropagation(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(StructuredLoggingMiddleware(slog.New(slog.NewTextHandler(io.Discard, nil))))
	r.GET("/id", func(c *gin.Context) {
		c.String(http.StatusOK, GetRequestIDFromCtx(c.Request.Context()))
	})

	req := httptest.NewRequest(http.MethodGet, "/id", nil)
	req.Header.Set(RequestIDHeader, "gw-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "gw-123", w.Body.String())
	assert.Equal(t, "gw-123", w.Header().Get(RequestIDHeader))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/id", nil))
	assert.NotEmpty(t, w.Body.String())
	assert.Equal(t, w.Body.String(), w.Header().Get(RequestIDHeader))
}

func TestRateLimit(t *testing.T) {
	lim, err := NewRateLimiter("2-M", nil)
	require.NoError(t, err)
	r := newRouter(RateLimit(lim))

	assert.Equal(t, http.StatusOK, get(r, nil).Code)
	assert.Equal(t, http.StatusOK, get(r, nil).Code)
	assert.Equal(t, http.StatusTooManyRequests, get(r, nil).Code)
}

func TestNewRateLimiter_BadFormat(t *testing.T) {
	_, err := NewRateLimiter("lots", nil)
	assert.ErrorContains(t, err, "invalid rate limit")
}
