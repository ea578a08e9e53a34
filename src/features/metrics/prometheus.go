package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// httpRequests counts requests by route pattern and status code
	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "songstats_http_requests_total",
		Help: "Total HTTP requests by route and status",
	}, []string{"method", "route", "status"})

	// httpDuration tracks request latency per route pattern
	httpDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "songstats_http_request_duration_seconds",
		Help:    "HTTP request duration in seconds",
		Buckets: prometheus.ExponentialBuckets(0.0001, 2, 14), // 0.1ms to ~800ms
	}, []string{"route"})

	// queryTotal counts query engine calls by family
	queryTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "songstats_query_total",
		Help: "Total catalogue queries by family",
	}, []string{"family"})

	// queryDuration tracks query engine latency by family
	queryDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "songstats_query_duration_seconds",
		Help:    "Catalogue query duration in seconds",
		Buckets: prometheus.ExponentialBuckets(0.00001, 2, 14),
	}, []string{"family"})

	// queryRejected counts queries refused because of malformed input
	queryRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "songstats_query_rejected_total",
		Help: "Total queries rejected for invalid parameters",
	}, []string{"family"})

	datasetTracks = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "songstats_dataset_tracks",
		Help: "Number of tracks in the loaded dataset",
	})

	datasetAvailable = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "songstats_dataset_available",
		Help: "1 when a dataset is loaded, 0 when it is absent",
	})

	// datasetLoads counts load attempts by outcome: ok, unavailable, malformed
	datasetLoads = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "songstats_dataset_loads_total",
		Help: "Total dataset load attempts by result",
	}, []string{"result"})

	chartsRendered = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "songstats_charts_rendered_total",
		Help: "Total chart renders by chart and result",
	}, []string{"chart", "result"})
)

// ObserveQuery records one query of the given family and returns a func that stops its timer.
func ObserveQuery(family string) func() {
	queryTotal.WithLabelValues(family).Inc()
	timer := prometheus.NewTimer(queryDuration.WithLabelValues(family))
	return func() { timer.ObserveDuration() }
}

// RejectQuery records a query refused because of invalid input.
func RejectQuery(family string) {
	queryRejected.WithLabelValues(family).Inc()
}

// RecordDatasetLoad publishes the outcome of a dataset load.
func RecordDatasetLoad(result string, tracks int, available bool) {
	datasetLoads.WithLabelValues(result).Inc()
	datasetTracks.Set(float64(tracks))
	if available {
		datasetAvailable.Set(1)
	} else {
		datasetAvailable.Set(0)
	}
}

// RecordChart records a chart render.
func RecordChart(chart string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	chartsRendered.WithLabelValues(chart, result).Inc()
}

// Middleware counts and times every request by its matched route.
func Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		route := c.Route().Path
		httpRequests.WithLabelValues(c.Method(), route, strconv.Itoa(status)).Inc()
		httpDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
		return err
	}
}

// Exposition serves the default Prometheus registry.
func Exposition() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}
