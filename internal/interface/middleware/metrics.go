package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/date-app-backend/internal/metrics"
)

// Metrics records request latency per route template.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		metrics.RecordAPIRequest(c.Request.Method, normalizePath(c), c.Writer.Status(), time.Since(start))
	}
}

// RequestLogger writes one structured line per request.
func RequestLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		entry := logger.WithFields(logrus.Fields{
			"request_id": c.GetString("request_id"),
			"method":     c.Request.Method,
			"path":       normalizePath(c),
			"status":     c.Writer.Status(),
			"ip":         ipFromCtx(c),
			"duration":   time.Since(start),
		})
		if uid := UserID(c); uid != "" {
			entry = entry.WithField("user_id", uid)
		}
		switch {
		case c.Writer.Status() >= 500:
			entry.Error("request failed")
		case c.Writer.Status() >= 400:
			entry.Warn("request rejected")
		default:
			entry.Info("request")
		}
	}
}
