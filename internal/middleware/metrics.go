package middleware

import (
	"sync"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts failed Redis commands by command name.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "medialane_redis_errors_total",
		Help: "Total number of Redis command errors",
	}, []string{"command"})

	// ResponsesByCode counts responses by HTTP status class.
	ResponsesByCode = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "medialane_http_responses_total",
		Help: "Total number of HTTP responses by status class",
	}, []string{"class"})

	promOnce sync.Once
	prom     *fiberprometheus.FiberPrometheus
)

// InitMetrics builds the Prometheus middleware for serviceName. The
// collectors live in the default registry, so only the first call creates
// them; later calls return the same instance.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	promOnce.Do(func() {
		prom = fiberprometheus.New(serviceName)
		prom.SetSkipPaths([]string{"/metrics", "/health/live", "/health/ready"})
	})
	return prom
}

// MetricsMiddleware records request metrics and response status classes.
func MetricsMiddleware(p *fiberprometheus.FiberPrometheus) fiber.Handler {
	handler := p.Middleware
	return func(c *fiber.Ctx) error {
		err := handler(c)
		ResponsesByCode.WithLabelValues(statusClass(c.Response().StatusCode())).Inc()
		return err
	}
}

func statusClass(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}
