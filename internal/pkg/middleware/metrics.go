package middleware

import (
	"strconv"
	"time"

	"inspyre/pkg/metrics"

	"github.com/gin-gonic/gin"
)

// MetricsMiddleware Prometheus HTTP 指标中间件
func MetricsMiddleware() gin.HandlerFunc {
	collector := metrics.GetGlobalCollector()
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		// 使用路由模板而不是原始路径，避免指标基数爆炸
		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unmatched"
		}

		collector.ObserveRequest(
			c.Request.Method,
			endpoint,
			strconv.Itoa(c.Writer.Status()),
			time.Since(start).Seconds(),
		)
	}
}
