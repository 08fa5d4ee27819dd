package api

import (
	"github.com/fadelsew02/maxime-app-sub000/internal/metrics"
	"github.com/gin-gonic/gin"
)

// MetricsHandler serves the prometheus scrape endpoint.
func MetricsHandler(c *gin.Context) {
	metrics.Handler().ServeHTTP(c.Writer, c.Request)
}
