package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Upstream call outcomes.
const (
	OutcomeSuccess     = "success"
	OutcomeError       = "error"
	OutcomeCircuitOpen = "circuit_open"
)

var (
	upstreamRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "issfinder_upstream_requests_total",
			Help: "Total number of upstream provider calls by outcome.",
		},
		[]string{"provider", "outcome"},
	)

	upstreamDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "issfinder_upstream_duration_seconds",
			Help:    "Upstream provider call duration in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"provider"},
	)

	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "issfinder_http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"path", "method", "code"},
	)

	locationUpdatesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "issfinder_location_updates_total",
			Help: "Total number of accepted viewer location updates.",
		},
	)
)

func init() {
	prometheus.MustRegister(upstreamRequestsTotal)
	prometheus.MustRegister(upstreamDurationSeconds)
	prometheus.MustRegister(httpRequestsTotal)
	prometheus.MustRegister(locationUpdatesTotal)
}

// ObserveUpstream records one upstream call.
func ObserveUpstream(provider, outcome string, d time.Duration) {
	upstreamRequestsTotal.WithLabelValues(provider, outcome).Inc()
	upstreamDurationSeconds.WithLabelValues(provider).Observe(d.Seconds())
}

// IncLocationUpdates counts an accepted location update.
func IncLocationUpdates() {
	locationUpdatesTotal.Inc()
}

// Handler exposes the default registry in the Prometheus text format.
func Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}

// Middleware records request count per route. Errors returned further down
// the chain are handed to the app error handler first so the final status
// code is the one counted.
func Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := c.Next(); err != nil {
			if herr := c.App().Config().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		code := strconv.Itoa(c.Response().StatusCode())
		httpRequestsTotal.WithLabelValues(c.Route().Path, c.Method(), code).Inc()
		return nil
	}
}
