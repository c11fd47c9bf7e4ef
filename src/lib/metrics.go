package lib

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics collects request counts and notification fan-out outcomes.
type Metrics struct {
	requests        *prometheus.CounterVec
	fanOutDelivered prometheus.Counter
	fanOutFailed    prometheus.Counter
}

// NewMetrics creates the collector and registers it on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "teamlink_http_requests_total",
			Help: "Handled HTTP requests by route and status code",
		}, []string{"route", "status"}),
		fanOutDelivered: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "teamlink_notification_fanout_delivered_total",
			Help: "Notification documents written by fan-out",
		}),
		fanOutFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "teamlink_notification_fanout_failed_total",
			Help: "Notification writes that failed during fan-out",
		}),
	}

	reg.MustRegister(m.requests, m.fanOutDelivered, m.fanOutFailed)
	return m
}

// Middleware records every handled request. The route label is the
// matched route pattern, not the raw path, so unmatched requests
// cannot mint unbounded label values.
func (m *Metrics) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			status = StatusOf(err)
		}
		m.requests.WithLabelValues(c.Route().Path, strconv.Itoa(status)).Inc()

		return err
	}
}

func (m *Metrics) RecordFanOutDelivery() {
	m.fanOutDelivered.Inc()
}

func (m *Metrics) RecordFanOutFailure() {
	m.fanOutFailed.Inc()
}

// ServeMetrics exposes /metrics on its own plain HTTP listener so the
// scrape endpoint stays off the public API surface.
func ServeMetrics(addr string, gatherer prometheus.Gatherer) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Printf("metrics listener stopped: %v", err)
	}
}
