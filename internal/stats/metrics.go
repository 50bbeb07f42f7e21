package stats

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	OutcomeSuccess   = "success"
	OutcomeProtocol  = "protocol_error"
	OutcomeTransport = "transport_error"
)

// Metrics mirrors the aggregator's counts into a private Prometheus registry
// that can be dumped in textfile-collector format after the run.
type Metrics struct {
	registry *prometheus.Registry
	probes   *prometheus.CounterVec
	latency  prometheus.Histogram
}

func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		probes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "httplatencies_probes_total",
			Help: "Number of probe outcomes by kind.",
		}, []string{"outcome"}),
		latency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "httplatencies_probe_latency_seconds",
			Help:    "Latency of successful probes.",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 16),
		}),
	}

	m.registry.MustRegister(m.probes, m.latency)

	for _, outcome := range []string{OutcomeSuccess, OutcomeProtocol, OutcomeTransport} {
		m.probes.WithLabelValues(outcome)
	}

	return m
}

func (m *Metrics) ObserveSuccess(d time.Duration) {
	if m == nil {
		return
	}

	m.probes.WithLabelValues(OutcomeSuccess).Inc()
	m.latency.Observe(d.Seconds())
}

func (m *Metrics) ObserveFailure(outcome string) {
	if m == nil {
		return
	}

	m.probes.WithLabelValues(outcome).Inc()
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// WriteTextfile writes all metrics to path atomically.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}

// Counter returns the probe counter for outcome.
func (m *Metrics) Counter(outcome string) prometheus.Counter {
	return m.probes.WithLabelValues(outcome)
}
