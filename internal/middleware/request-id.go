package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDHeader is echoed back on every response so clients can
// correlate log lines with their calls.
const RequestIDHeader = "X-Request-ID"

// RequestID trusts an inbound request id when present and mints one
// otherwise. The id is stored in the gin context for the logging
// middleware.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}
