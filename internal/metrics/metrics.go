// Package metrics exposes Prometheus collectors for the RPC layer and the balance engine.
package metrics

import (
	"context"
	"net/http"
	"sync"
	"time"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/splitease/splitease/internal/calculator"
)

const namespace = "splitease"

// Metrics owns a registry and the collectors registered on it.
type Metrics struct {
	registry *prometheus.Registry

	requests       *prometheus.CounterVec
	duration       *prometheus.HistogramVec
	skipped        *prometheus.CounterVec
	recomputations prometheus.Counter
	open           prometheus.Gauge

	mu      sync.Mutex
	perUser map[string]int
}

var _ calculator.Observer = (*Metrics)(nil)

// New registers the collectors on a fresh registry, together with the Go runtime and
// process collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rpc_requests_total",
			Help:      "RPCs handled, by procedure and result code.",
		}, []string{"procedure", "code"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "rpc_duration_seconds",
			Help:      "RPC latency, by procedure.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"procedure"}),
		skipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "balance_skipped_records_total",
			Help:      "Expense records or shares left out of a balance calculation, by reason.",
		}, []string{"reason"}),
		recomputations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "balance_recomputations_total",
			Help:      "Balance recomputations triggered by record changes.",
		}),
		open: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "open_settlements",
			Help:      "Outstanding settlements across all watched users.",
		}),
		perUser: make(map[string]int),
	}

	m.registry.MustRegister(
		m.requests, m.duration, m.skipped, m.recomputations, m.open,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Registry returns the registry backing the collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// RecordSkipped counts a record the balance engine could not apply.
func (m *Metrics) RecordSkipped(_, _ string, reason calculator.SkipReason) {
	m.skipped.WithLabelValues(string(reason)).Inc()
}

// SetOpenSettlements records the latest settlement count for userID and updates the
// aggregate gauge.
func (m *Metrics) SetOpenSettlements(userID string, n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.perUser[userID] = n
	m.recomputations.Inc()
	m.open.Set(float64(m.total()))
}

// ForgetUser drops userID from the aggregate gauge when its watcher stops.
func (m *Metrics) ForgetUser(userID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.perUser, userID)
	m.open.Set(float64(m.total()))
}

func (m *Metrics) total() int {
	sum := 0
	for _, n := range m.perUser {
		sum += n
	}
	return sum
}

// Interceptor counts and times every unary RPC.
func (m *Metrics) Interceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			start := time.Now()
			resp, err := next(ctx, req)

			procedure := req.Spec().Procedure
			code := "ok"
			if err != nil {
				code = connect.CodeOf(err).String()
			}
			m.requests.WithLabelValues(procedure, code).Inc()
			m.duration.WithLabelValues(procedure).Observe(time.Since(start).Seconds())
			return resp, err
		}
	}
}
