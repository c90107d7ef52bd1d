package observability

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"sodiumbridge/internal/domain"
)

func TestParseLevel(t *testing.T) {
	require.Equal(t, zerolog.DebugLevel, ParseLevel("DEBUG"))
	require.Equal(t, zerolog.WarnLevel, ParseLevel(" warning "))
	require.Equal(t, zerolog.Disabled, ParseLevel("off"))
	require.Equal(t, zerolog.InfoLevel, ParseLevel(""))
	require.Equal(t, zerolog.InfoLevel, ParseLevel("loud"))
}

func TestInitLogger_AppFieldAndLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := initLogger(&buf, "sodiumctl", "warn")

	logger.Info().Msg("hidden")
	logger.Warn().Msg("shown")

	out := buf.String()
	require.NotContains(t, out, "hidden")
	require.Contains(t, out, "shown")
	require.Contains(t, out, "sodiumctl")
}

// sample returns the value of the counter or gauge named name whose labels
// include want.
func sample(t *testing.T, reg prometheus.Gatherer, name string, want map[string]string) float64 {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.GetMetric() {
			if !hasLabels(m, want) {
				continue
			}
			if m.GetCounter() != nil {
				return m.GetCounter().GetValue()
			}
			return m.GetGauge().GetValue()
		}
	}
	return 0
}

func hasLabels(m *dto.Metric, want map[string]string) bool {
	matched := 0
	for _, lp := range m.GetLabel() {
		if v, ok := want[lp.GetName()]; ok && v == lp.GetValue() {
			matched++
		}
	}
	return matched == len(want)
}

func TestMetrics_Recording(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetricsWithRegistry(reg)

	m.DispatchStarted()
	require.Equal(t, 1.0, sample(t, reg, "sodiumbridge_inflight", nil))
	m.DispatchFinished("crypto_sign", OutcomeOK, 3*time.Millisecond)
	require.Equal(t, 0.0, sample(t, reg, "sodiumbridge_inflight", nil))
	require.Equal(t, 1.0, sample(t, reg, "sodiumbridge_dispatch_total",
		map[string]string{"op": "crypto_sign", "outcome": OutcomeOK}))

	m.ValidationFailed("crypto_sign", domain.NewError(domain.KindType, "secretKey", "bad"))
	m.ValidationFailed("crypto_sign", errors.New("plain"))
	require.Equal(t, 1.0, sample(t, reg, "sodiumbridge_validation_failures_total",
		map[string]string{"op": "crypto_sign", "kind": "Type"}))
	require.Equal(t, 1.0, sample(t, reg, "sodiumbridge_validation_failures_total",
		map[string]string{"op": "crypto_sign", "kind": "other"}))

	m.BackendExecuted("crypto_sign", nil)
	m.BackendExecuted("crypto_sign", errors.New("boom"))
	require.Equal(t, 1.0, sample(t, reg, "sodiumbridge_backend_exec_total",
		map[string]string{"op": "crypto_sign", "outcome": OutcomeError}))
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	m.DispatchStarted()
	m.DispatchFinished("x", OutcomeOK, time.Second)
	m.ValidationFailed("x", nil)
	m.BackendExecuted("x", nil)
}
