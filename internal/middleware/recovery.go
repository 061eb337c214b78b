package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/shelfshare/notesum/internal/pkg/response"
	"go.uber.org/zap"
)

// Recovery turns a panic into the same JSON 500 body handlers send for
// unexpected errors.
func Recovery(log *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(nil, func(c *gin.Context, recovered any) {
		log.Error("panic recovered",
			zap.Any("panic", recovered),
			zap.String("path", c.Request.URL.Path),
			zap.String("request_id", RequestIDFrom(c)),
			zap.Stack("stack"),
		)
		response.InternalError(c)
	})
}
