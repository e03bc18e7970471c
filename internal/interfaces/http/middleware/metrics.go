package middleware

import (
	"time"

	"github.com/boilerparts/backend/internal/infrastructure/telemetry"
	"github.com/gin-gonic/gin"
)

// unmatchedRoute labels requests that hit no route, keeping label
// cardinality bounded
const unmatchedRoute = "unmatched"

// Metrics records request count, latency and in-flight requests. The route
// label is the gin route pattern, never the raw path.
func Metrics(m *telemetry.HTTPMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		inFlight := m.InFlight()
		inFlight.Inc()
		defer inFlight.Dec()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = unmatchedRoute
		}
		m.Observe(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}
