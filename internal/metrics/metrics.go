// Package metrics defines the Prometheus collectors exported on /metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "apartmanager"

// Metrics groups the collectors used across the service.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	rpcRequests *prometheus.CounterVec
	rpcDuration *prometheus.HistogramVec
	storeOps    *prometheus.CounterVec
	reseeds     prometheus.Counter
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		rpcRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rpc_requests_total",
			Help:      "RPC calls by procedure and result code.",
		}, []string{"procedure", "code"}),
		rpcDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "rpc_duration_seconds",
			Help:      "RPC latency by procedure.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"procedure"}),
		storeOps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "store_operations_total",
			Help:      "Record store reads and writes by collection key.",
		}, []string{"key", "op"}),
		reseeds: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "store_reseeds_total",
			Help:      "Times fee and resident collections were reset to seed data.",
		}),
	}
	reg.MustRegister(m.rpcRequests, m.rpcDuration, m.storeOps, m.reseeds)
	return m
}

// ObserveRPC records one finished RPC.
func (m *Metrics) ObserveRPC(procedure, code string, d time.Duration) {
	if m == nil {
		return
	}
	m.rpcRequests.WithLabelValues(procedure, code).Inc()
	m.rpcDuration.WithLabelValues(procedure).Observe(d.Seconds())
}

// ObserveStore records one store operation ("get", "set", "delete") on key.
func (m *Metrics) ObserveStore(key, op string) {
	if m == nil {
		return
	}
	m.storeOps.WithLabelValues(key, op).Inc()
}

// IncReseed records a seed reset.
func (m *Metrics) IncReseed() {
	if m == nil {
		return
	}
	m.reseeds.Inc()
}
