// Package httputil holds the error envelope shared by handlers and
// middleware.
package httputil

import "github.com/gin-gonic/gin"

// RespondError writes a {code, message, request_id} JSON body and aborts the
// request. The key literal matches middleware.RequestIDKey; importing the
// constant here would cycle.
func RespondError(c *gin.Context, status int, code, message string) {
	var requestID string
	if rid, exists := c.Get("request_id"); exists {
		if s, ok := rid.(string); ok {
			requestID = s
		}
	}

	resp := map[string]string{
		"code":    code,
		"message": message,
	}

	if requestID != "" {
		resp["request_id"] = requestID
	}

	c.AbortWithStatusJSON(status, resp)
}
