package interceptor

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/go-atrium/atrium/pkg/id"
)

/**
 * @file: access_log_interceptor.go
 * @description: structured access log with request id
 */

const RequestIdHeader = "X-Request-Id"

func AccessLogInterceptor(logger *zap.SugaredLogger) gin.HandlerFunc {
	// paths that would only produce noise
	excludedPaths := map[string]bool{
		"/health": true,
	}

	return func(c *gin.Context) {
		if excludedPaths[c.Request.URL.Path] {
			c.Next()
			return
		}

		requestId := c.GetHeader(RequestIdHeader)
		if requestId == "" {
			requestId = id.GetXID()
		}
		c.Header(RequestIdHeader, requestId)

		start := time.Now()
		c.Next()
		latency := time.Since(start)

		logger.Infow("HTTP request",
			"request_id", requestId,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"query", c.Request.URL.RawQuery,
			"status", c.Writer.Status(),
			"ip", c.ClientIP(),
			"user_agent", c.Request.UserAgent(),
			"latency", latency.String(),
		)
	}
}
