package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// HeaderXRequestID carries the request correlation id.
const HeaderXRequestID = "X-Request-ID"

// RequestID tags every request with a correlation id, reusing the
// client's when present so logs line up across services.
func (mw Middleware) RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderXRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(HeaderXRequestID, id)
		c.Header(HeaderXRequestID, id)
		c.Next()
	}
}
