package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"pelada/internal/api"
	"pelada/internal/bootstrap"
)

// Health reports liveness plus whether the backend is configured.
// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200 {object} api.HealthResponse
// @Router       /health [get]
func Health(app *bootstrap.App) gin.HandlerFunc {
	return func(c *gin.Context) {
		backendState := "unconfigured"
		if app.BackendConfigured() {
			backendState = "configured"
		}
		c.JSON(http.StatusOK, api.HealthResponse{
			Status:  "ok",
			Backend: backendState,
			Mode:    app.Config.Mode,
		})
	}
}

// @Summary      Prometheus metrics
// @Description  Exposes Prometheus metrics in text format
// @Tags         system
// @Produce      text/plain
// @Success      200 {string} string
// @Router       /metrics [get]
func Metrics() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
