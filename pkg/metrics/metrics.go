package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collector HTTP 指标收集器
type Collector struct {
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

var (
	globalCollector *Collector
	once            sync.Once
)

// GetGlobalCollector 获取全局指标收集器（懒初始化）
func GetGlobalCollector() *Collector {
	once.Do(func() {
		globalCollector = &Collector{
			httpRequestsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "http_requests_total",
					Help: "Total number of HTTP requests",
				},
				[]string{"method", "endpoint", "status"},
			),
			httpRequestDuration: promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Name:    "http_request_duration_seconds",
					Help:    "HTTP request duration in seconds",
					Buckets: prometheus.DefBuckets,
				},
				[]string{"method", "endpoint"},
			),
		}
	})
	return globalCollector
}

// ObserveRequest 记录一次 HTTP 请求
func (c *Collector) ObserveRequest(method, endpoint, status string, seconds float64) {
	c.httpRequestsTotal.WithLabelValues(method, endpoint, status).Inc()
	c.httpRequestDuration.WithLabelValues(method, endpoint).Observe(seconds)
}
