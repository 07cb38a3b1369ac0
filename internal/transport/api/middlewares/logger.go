package middlewares

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Logger логирует каждый запрос. Приватные ошибки из c.Errors попадают в лог, но не в ответ.
func Logger(l *logrus.Logger) gin.HandlerFunc {
	entry := l.WithField("component", "http")
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		if raw := c.Request.URL.RawQuery; raw != "" {
			path = path + "?" + raw
		}

		c.Next()

		fields := logrus.Fields{
			"method":     c.Request.Method,
			"path":       path,
			"status":     c.Writer.Status(),
			"latency_ms": time.Since(start).Milliseconds(),
			"client_ip":  c.ClientIP(),
		}
		if userID, ok := c.Get(CurrentUserIDKey); ok {
			fields["user_id"] = userID
		}
		e := entry.WithFields(fields)

		switch {
		case len(c.Errors) > 0 && c.Writer.Status() >= 500:
			e.WithError(c.Errors.Last()).Error("HTTP request")
		case len(c.Errors) > 0:
			e.WithField("errors", c.Errors.String()).Warn("HTTP request")
		default:
			e.Info("HTTP request")
		}
	}
}
