package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/turtacn/KeyIP-PatentClient/internal/infrastructure/monitoring/logging"
)

const (
	HeaderRequestID  = "X-Request-ID"
	ContextRequestID = "request_id"
)

// RequestID echoes the caller's X-Request-ID or assigns a fresh one.  With a
// logger, a copy carrying request_id is placed in the request context for
// logging.FromContext.
func RequestID(logger ...logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(ContextRequestID, id)
		c.Header(HeaderRequestID, id)
		if len(logger) > 0 && logger[0] != nil {
			scoped := logger[0].With(logging.String(ContextRequestID, id))
			c.Request = c.Request.WithContext(logging.WithContext(c.Request.Context(), scoped))
		}
		c.Next()
	}
}

// GetRequestID returns the id assigned by RequestID, or "".
func GetRequestID(c *gin.Context) string {
	return c.GetString(ContextRequestID)
}

//Personal.AI order the ending
