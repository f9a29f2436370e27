package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/boxoffice/boxoffice/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signToken(t *testing.T, method jwt.SigningMethod, claims jwt.MapClaims, secret string) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func authRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", middleware.JWTAuthMiddleware(testSecret), func(c *gin.Context) {
		id, _ := middleware.GetUserID(c)
		c.String(http.StatusOK, id.String())
	})
	return r
}

func TestJWTAuthMiddleware(t *testing.T) {
	userID := uuid.New()
	exp := time.Now().Add(time.Hour).Unix()

	testCases := []struct {
		name   string
		header string
		status int
		body   string
	}{
		{
			name:   "sub claim",
			header: "Bearer " + signToken(t, jwt.SigningMethodHS256, jwt.MapClaims{"sub": userID.String(), "exp": exp}, testSecret),
			status: http.StatusOK,
			body:   userID.String(),
		},
		{
			name:   "legacy user_id claim",
			header: "Bearer " + signToken(t, jwt.SigningMethodHS256, jwt.MapClaims{"user_id": userID.String(), "exp": exp}, testSecret),
			status: http.StatusOK,
			body:   userID.String(),
		},
		{name: "missing header", status: http.StatusUnauthorized},
		{name: "not bearer", header: "Basic abc", status: http.StatusUnauthorized},
		{
			name:   "wrong secret",
			header: "Bearer " + signToken(t, jwt.SigningMethodHS256, jwt.MapClaims{"sub": userID.String()}, "other"),
			status: http.StatusUnauthorized,
		},
		{
			name:   "expired",
			header: "Bearer " + signToken(t, jwt.SigningMethodHS256, jwt.MapClaims{"sub": userID.String(), "exp": time.Now().Add(-time.Hour).Unix()}, testSecret),
			status: http.StatusUnauthorized,
		},
		{
			name:   "other algorithm",
			header: "Bearer " + signToken(t, jwt.SigningMethodHS512, jwt.MapClaims{"sub": userID.String()}, testSecret),
			status: http.StatusUnauthorized,
		},
		{
			name:   "subject not a uuid",
			header: "Bearer " + signToken(t, jwt.SigningMethodHS256, jwt.MapClaims{"sub": "alice"}, testSecret),
			status: http.StatusUnauthorized,
		},
	}

	r := authRouter()
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tc.status, w.Code)
			if tc.body != "" {
				assert.Equal(t, tc.body, w.Body.String())
			}
		})
	}
}
