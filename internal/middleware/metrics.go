package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/citizen-portal/internal/service"
)

const unmatchedRoute = "unmatched"

// Metrics times every request against its route template. Requests that match
// no route share one label so arbitrary paths cannot grow the series count.
func Metrics(metricsSvc *service.MetricsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		done := metricsSvc.TrackInFlight()
		start := time.Now()
		c.Next()
		done()

		route := c.FullPath()
		if route == "" {
			route = unmatchedRoute
		}
		metricsSvc.ObserveHTTPRequest(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}
