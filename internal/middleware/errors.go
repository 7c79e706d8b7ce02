package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/matjarly/matjar/internal/httputil"
)

// respondError writes the standard error envelope from inside middleware,
// keeping the wire shape identical to handler-level errors.
func respondError(c *gin.Context, code int, errCode, message string) {
	httputil.RespondError(c, code, errCode, message)
}
