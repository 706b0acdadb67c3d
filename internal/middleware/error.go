package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pageza/recipebox/backend/internal/view"
	"go.uber.org/zap"
)

const internalErrorMessage = "Internal Server Error"

// ErrorHandler logs errors attached with c.Error and recovered panics, then
// renders the error view with a 500 unless the handler already responded.
func ErrorHandler(log *zap.Logger, renderer view.Renderer) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Error("Recovered from panic",
					zap.Any("panic", rec),
					zap.String("method", c.Request.Method),
					zap.String("path", c.Request.URL.Path),
					zap.Stack("stack"),
				)
				if !c.Writer.Written() {
					renderer.Render(c, http.StatusInternalServerError, view.Error, gin.H{"error": internalErrorMessage})
				}
				c.Abort()
			}
		}()

		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		for _, e := range c.Errors {
			log.Error("Request failed",
				zap.Error(e.Err),
				zap.String("method", c.Request.Method),
				zap.String("path", c.Request.URL.Path),
			)
		}
		if !c.Writer.Written() {
			renderer.Render(c, http.StatusInternalServerError, view.Error, gin.H{"error": internalErrorMessage})
		}
	}
}
