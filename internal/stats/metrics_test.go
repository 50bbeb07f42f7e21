package stats

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsCountsOutcomes(t *testing.T) {
	m := NewMetrics()

	m.ObserveSuccess(20 * time.Millisecond)
	m.ObserveSuccess(30 * time.Millisecond)
	m.ObserveFailure(OutcomeTransport)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.probes.WithLabelValues(OutcomeSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.probes.WithLabelValues(OutcomeTransport)))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.probes.WithLabelValues(OutcomeProtocol)))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics

	m.ObserveSuccess(time.Millisecond)
	m.ObserveFailure(OutcomeProtocol)
}

func TestWriteTextfile(t *testing.T) {
	m := NewMetrics()
	m.ObserveSuccess(5 * time.Millisecond)

	path := filepath.Join(t.TempDir(), "probes.prom")
	require.NoError(t, m.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `httplatencies_probes_total{outcome="success"} 1`)
	assert.Contains(t, string(data), "httplatencies_probe_latency_seconds_count 1")
}
