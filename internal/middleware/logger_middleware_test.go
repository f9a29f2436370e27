package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/boxoffice/boxoffice/internal/log"
	"github.com/boxoffice/boxoffice/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func loggerRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.LoggerMiddleware())
	r.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, log.CorrelationIDFromContext(c.Request.Context()))
	})
	return r
}

func TestLoggerMiddleware_PropagatesCorrelationID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(middleware.HeaderCorrelationID, "abc-123")
	w := httptest.NewRecorder()

	loggerRouter().ServeHTTP(w, req)

	assert.Equal(t, "abc-123", w.Header().Get(middleware.HeaderCorrelationID))
	assert.Equal(t, "abc-123", w.Body.String())
}

func TestLoggerMiddleware_GeneratesCorrelationID(t *testing.T) {
	w := httptest.NewRecorder()

	loggerRouter().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	id := w.Header().Get(middleware.HeaderCorrelationID)
	assert.True(t, strings.HasPrefix(id, "gen_"), id)
	assert.Equal(t, id, w.Body.String())
}
