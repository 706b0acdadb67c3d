package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pageza/recipebox/backend/internal/view"
	"go.uber.org/zap"
)

// Home renders the landing page
func Home(renderer view.Renderer) gin.HandlerFunc {
	return func(c *gin.Context) {
		renderer.Render(c, http.StatusOK, view.Home, gin.H{"title": "Recipe App"})
	}
}

// CheckFunc reports whether a dependency is reachable
type CheckFunc func(ctx context.Context) error

// HealthHandler reports the health of the service and its dependencies
type HealthHandler struct {
	checks map[string]CheckFunc
	log    *zap.Logger
}

func NewHealthHandler(checks map[string]CheckFunc, log *zap.Logger) *HealthHandler {
	return &HealthHandler{checks: checks, log: log}
}

// HealthCheck returns 200 when every dependency answers, 503 otherwise
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status := http.StatusOK
	results := gin.H{}
	for name, check := range h.checks {
		if err := check(ctx); err != nil {
			h.log.Warn("Health check failed", zap.String("dependency", name), zap.Error(err))
			results[name] = err.Error()
			status = http.StatusServiceUnavailable
			continue
		}
		results[name] = "ok"
	}

	overall := "healthy"
	if status != http.StatusOK {
		overall = "unhealthy"
	}
	c.JSON(status, gin.H{
		"status": overall,
		"checks": results,
	})
}
