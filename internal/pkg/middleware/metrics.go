package middleware

import (
	"runtime"
	"strconv"
	"time"

	"blog_crud_jwt/pkg/metrics"

	"github.com/gin-gonic/gin"
)

// MetricsMiddleware records prometheus counters and latencies per route.
func MetricsMiddleware() gin.HandlerFunc {
	collector := metrics.GetGlobalCollector()
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unmatched"
		}

		collector.RecordHTTPRequest(
			c.Request.Method,
			endpoint,
			strconv.Itoa(c.Writer.Status()),
			time.Since(start),
			c.Writer.Size(),
		)
	}
}

// SystemMetricsMiddleware refreshes goroutine and heap gauges.
func SystemMetricsMiddleware() gin.HandlerFunc {
	collector := metrics.GetGlobalCollector()
	return func(c *gin.Context) {
		collector.UpdateActiveGoroutines(runtime.NumGoroutine())

		var m runtime.MemStats
		runtime.ReadMemStats(&m)
		collector.UpdateMemoryUsage(int(m.Alloc))

		c.Next()
	}
}
