package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	// RequestIDKey is the gin context key holding the server-assigned ID.
	RequestIDKey = "request_id"

	// RequestIDHeader carries the ID back to the storefront caller.
	RequestIDHeader = "X-Request-ID"
)

// RequestID assigns every request a fresh server-side UUID. A client-supplied
// X-Request-ID is recorded under "client_request_id" for cross-service log
// correlation, never adopted as the canonical ID.
func RequestID(log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := uuid.New().String()

		if clientID := c.GetHeader(RequestIDHeader); clientID != "" {
			log.WithFields(logrus.Fields{
				"request_id":        id,
				"client_request_id": clientID,
			}).Debug("mapped client request id")
			c.Set("client_request_id", clientID)
		}

		c.Set(RequestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}
