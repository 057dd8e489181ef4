package middleware

import (
	"fmt"
	"io"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"github.com/stwalsh4118/icyapa/internal/logger"
)

// Recovery turns a handler panic into a 500 response carrying the request
// id. The panic goes to the request logger; gin's own stderr dump is
// discarded.
func Recovery(log *logger.Logger) gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(io.Discard, func(c *gin.Context, recovered any) {
		reqLog := GetLogger(c)
		if reqLog == nil {
			reqLog = log
		}

		err, ok := recovered.(error)
		if !ok {
			err = fmt.Errorf("%v", recovered)
		}
		reqLog.Error("Handler panicked", fmt.Errorf("panic: %w", err), map[string]interface{}{
			"request_id": GetRequestID(c),
			"method":     c.Request.Method,
			"route":      c.FullPath(),
			"path":       c.Request.URL.Path,
			"stack":      string(debug.Stack()),
		})

		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": gin.H{
			"code":       "INTERNAL_SERVER_ERROR",
			"message":    "An unexpected error occurred",
			"request_id": GetRequestID(c),
		}})
	})
}
