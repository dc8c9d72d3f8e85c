package middleware

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// LoggerMiddleware tags every request with an ID and writes a one-line
// summary after the handler runs. The ID is echoed back in X-Request-ID
// so a bill creation gone wrong can be matched to its log lines.
func LoggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Honor a client-supplied request ID, otherwise mint one
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set("request_id", requestID)
		c.Header("X-Request-ID", requestID)

		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		c.Next()

		// Health probes are frequent and never interesting
		if path == "/health" {
			return
		}

		if raw != "" {
			path = path + "?" + raw
		}

		log.Printf("[%s] %s | %d | %v | %s | %s",
			shortID(requestID),
			c.Request.Method,
			c.Writer.Status(),
			time.Since(start),
			c.ClientIP(),
			path,
		)

		for _, e := range c.Errors {
			log.Printf("[%s] Error: %v", shortID(requestID), e.Err)
		}
	}
}

// shortID trims a request ID to a log-friendly prefix. Client-supplied
// IDs may be shorter than a UUID.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
