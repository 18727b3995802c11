package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds the application-specific Prometheus collectors.
	Registry = prometheus.NewRegistry()

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "apphub",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "route", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "apphub",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 12), // 5ms to ~10s
		},
		[]string{"method", "route"},
	)

	probeTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "apphub",
			Subsystem: "probe",
			Name:      "total",
			Help:      "Link probes by mode (single, batch) and outcome.",
		},
		[]string{"mode", "outcome"},
	)

	probeDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "apphub",
			Subsystem: "probe",
			Name:      "duration_seconds",
			Help:      "Duration of link probes.",
			Buckets:   prometheus.ExponentialBuckets(0.01, 2, 11), // 10ms to ~10s
		},
		[]string{"mode"},
	)

	identities = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "apphub",
			Subsystem: "identity",
			Name:      "resolutions_total",
			Help:      "Fingerprint resolutions by result (new, existing, conflict).",
		},
		[]string{"result"},
	)
)

func init() {
	Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		httpRequests,
		httpDuration,
		probeTotal,
		probeDuration,
		identities,
	)
}

// Middleware records request count and latency per matched route.
func Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if fe, ok := err.(*fiber.Error); ok {
			status = fe.Code
		}
		route := c.Route().Path
		method := c.Method()

		httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
		httpDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
		return err
	}
}

// Handler exposes Registry in the Prometheus text format.
func Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(Registry, promhttp.HandlerOpts{}))
}

func RecordProbe(mode string, healthy bool, duration time.Duration) {
	outcome := "unhealthy"
	if healthy {
		outcome = "healthy"
	}
	probeTotal.WithLabelValues(mode, outcome).Inc()
	probeDuration.WithLabelValues(mode).Observe(duration.Seconds())
}

func RecordIdentity(result string) {
	identities.WithLabelValues(result).Inc()
}
