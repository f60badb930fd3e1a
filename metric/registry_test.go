package metric

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360/domainequations/errors"
)

func TestCoreMetricsRecording(t *testing.T) {
	m := NewMetrics()

	m.RecordTermEvaluated()
	m.RecordTermEvaluated()
	assert.Equal(t, 2.0, testutil.ToFloat64(m.TermsEvaluated))

	m.RecordPropertiesRegistered(5)
	assert.Equal(t, 5.0, testutil.ToFloat64(m.PropertiesRegistered))

	m.RecordNamingCollision()
	assert.Equal(t, 1.0, testutil.ToFloat64(m.NamingCollisions))

	m.RecordNormalizeDuration(10 * time.Millisecond)
	assert.Equal(t, 1, testutil.CollectAndCount(m.NormalizeDuration))
}

func TestNewMetricsRegistry(t *testing.T) {
	registry := NewMetricsRegistry()

	require.NotNil(t, registry.PrometheusRegistry())
	require.NotNil(t, registry.CoreMetrics())

	// Core metrics are pre-registered; a second registration conflicts.
	err := registry.PrometheusRegistry().Register(registry.Metrics.TermsEvaluated)
	assert.Error(t, err)
}

func TestRegisterAndUnregister(t *testing.T) {
	registry := NewMetricsRegistry()

	counter := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "render_runs_total",
		Help: "Total render runs",
	})
	require.NoError(t, registry.Register("renderer", "runs", counter))

	t.Run("duplicate name rejected", func(t *testing.T) {
		err := registry.Register("renderer", "runs", counter)
		require.Error(t, err)
		assert.True(t, errors.IsInvalid(err))
	})

	t.Run("unregister", func(t *testing.T) {
		assert.True(t, registry.Unregister("renderer", "runs"))
		assert.False(t, registry.Unregister("renderer", "runs"))
	})
}
