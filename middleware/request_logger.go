package middleware

import (
	"time"

	"homeserve/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const RequestIDHeader = "X-Request-ID"

// RequestContext tags each request with an id and a scoped logger, and logs
// the outcome once the handlers have run.
func RequestContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Header(RequestIDHeader, requestID)

		logger := zap.L().With(zap.String("request_id", requestID))
		c.Set(utils.CtxRequestID, requestID)
		c.Set(utils.CtxLogger, logger)

		c.Next()

		logger.Info("Request served",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("ip", getClientIP(c)),
		)
	}
}

// RequestLogger returns the request-scoped logger, or the global one.
func RequestLogger(c *gin.Context) *zap.Logger {
	if v, ok := c.Get(utils.CtxLogger); ok {
		if logger, ok := v.(*zap.Logger); ok {
			return logger
		}
	}
	return zap.L()
}
