package middleware

import (
	"time"

	"github.com/boxoffice/boxoffice/internal/log"
	"github.com/gin-gonic/gin"
	"github.com/lithammer/shortuuid/v3"
	"github.com/sirupsen/logrus"
)

const HeaderCorrelationID = "Correlation-ID"

// LoggerMiddleware attaches a correlation id and a request-scoped logrus
// entry to the request context, then logs the outcome of the request.
func LoggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		correlationID := c.GetHeader(HeaderCorrelationID)
		if correlationID == "" {
			correlationID = "gen_" + shortuuid.New()
		}
		c.Header(HeaderCorrelationID, correlationID)

		entry := logrus.WithFields(logrus.Fields{
			"correlation_id": correlationID,
			"method":         c.Request.Method,
			"path":           c.FullPath(),
		})
		ctx := log.ContextWithCorrelationID(c.Request.Context(), correlationID)
		ctx = log.ToContext(ctx, entry)
		c.Request = c.Request.WithContext(ctx)

		c.Next()

		entry.WithFields(logrus.Fields{
			"status":   c.Writer.Status(),
			"duration": time.Since(start).String(),
		}).Info("Request handled")
	}
}
