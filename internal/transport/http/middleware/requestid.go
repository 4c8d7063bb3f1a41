package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/wpdmadhuranga/auth-service/internal/requestid"
)

// RequestIDHeader is the header the ID is read from and echoed back on.
const RequestIDHeader = "X-Request-ID"

// RequestID makes sure every request carries a correlation ID: one
// supplied by the caller is kept, otherwise a fresh one is generated.
// The ID lands in the request context for logging and in the response
// header for the client.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = requestid.New()
		}

		c.Request = c.Request.WithContext(requestid.WithRequestID(c.Request.Context(), id))
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}
