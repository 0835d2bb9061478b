package handler

import (
	"context"
	"net/http"
	"sync"
	"time"

	"blindbuy-escrow/internal/core/ports"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

const healthCheckTimeout = 2 * time.Second

type dependencyStatus struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// HealthCheck handles GET /health. Dependencies are pinged in parallel and
// any failure reports the service as degraded with a 503.
func HealthCheck(checkers ...ports.HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
		defer cancel()

		var (
			mu      sync.Mutex
			deps    = make(map[string]dependencyStatus, len(checkers))
			healthy = true
		)
		var g errgroup.Group
		for _, checker := range checkers {
			g.Go(func() error {
				st := dependencyStatus{Status: "healthy"}
				if err := checker.Ping(ctx); err != nil {
					st = dependencyStatus{Status: "unhealthy", Error: err.Error()}
				}
				mu.Lock()
				deps[checker.Name()] = st
				healthy = healthy && st.Error == ""
				mu.Unlock()
				return nil
			})
		}
		_ = g.Wait()

		status, code := "healthy", http.StatusOK
		if !healthy {
			status, code = "degraded", http.StatusServiceUnavailable
		}
		c.JSON(code, gin.H{
			"status":       status,
			"dependencies": deps,
		})
	}
}
