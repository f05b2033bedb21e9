package routes

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gitlab.com/ranfdev/updoot/internal/models"
)

type Metrics struct {
	VotesTotal      *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	FeedPageSize    prometheus.Histogram

	registry *prometheus.Registry
}

// NewMetrics registers the collectors on reg, or on a fresh registry
// when reg is nil.
func NewMetrics(reg *prometheus.Registry) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	m := &Metrics{
		VotesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "updoot_votes_total",
				Help: "Votes cast, by direction and result.",
			},
			[]string{"direction", "result"},
		),
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "updoot_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds, by route, method and status.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"route", "method", "status"},
		),
		FeedPageSize: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "updoot_feed_page_size",
				Help:    "Number of posts returned per feed page.",
				Buckets: []float64{0, 1, 5, 10, 20, 30, 40, 50},
			},
		),
		registry: reg,
	}
	reg.MustRegister(m.VotesTotal, m.RequestDuration, m.FeedPageSize)
	return m
}

// RegisterPool exposes live pool stats.
func (m *Metrics) RegisterPool(stat func() *pgxpool.Stat) {
	m.registry.MustRegister(
		prometheus.NewGaugeFunc(
			prometheus.GaugeOpts{
				Name: "updoot_db_connection_pool_acquired",
				Help: "Number of database connections in use.",
			},
			func() float64 { return float64(stat().AcquiredConns()) },
		),
		prometheus.NewGaugeFunc(
			prometheus.GaugeOpts{
				Name: "updoot_db_connection_pool_idle",
				Help: "Number of idle database connections.",
			},
			func() float64 { return float64(stat().IdleConns()) },
		),
	)
}
func (m *Metrics) ObserveVote(dir models.VoteDirection, err error) {
	m.VotesTotal.WithLabelValues(string(dir), resultLabel(err)).Inc()
}
func resultLabel(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, models.ErrValidation):
		return "invalid"
	case errors.Is(err, models.ErrNotFound):
		return "not_found"
	case errors.Is(err, models.ErrConflict):
		return "conflict"
	}
	return "error"
}

func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/metrics" {
			next.ServeHTTP(w, r)
			return
		}
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)

		// The route pattern is only known once chi has routed the request,
		// and keeps ids out of the labels.
		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		m.RequestDuration.
			WithLabelValues(route, r.Method, strconv.Itoa(status)).
			Observe(time.Since(start).Seconds())
	})
}
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
