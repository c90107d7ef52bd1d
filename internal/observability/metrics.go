package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"sodiumbridge/internal/domain"
)

// Dispatch outcomes.
const (
	OutcomeOK        = "ok"
	OutcomeError     = "error"
	OutcomeMalformed = "malformed"
)

// Metrics contains the Prometheus collectors of the bridge. A nil *Metrics
// is valid and records nothing.
type Metrics struct {
	DispatchTotal      *prometheus.CounterVec
	DispatchSeconds    *prometheus.HistogramVec
	ValidationFailures *prometheus.CounterVec
	Inflight           prometheus.Gauge
	BackendExecTotal   *prometheus.CounterVec
}

// NewMetrics registers the collectors on the default registerer.
func NewMetrics() *Metrics {
	return NewMetricsWithRegistry(nil)
}

// NewMetricsWithRegistry registers the collectors on registry.
func NewMetricsWithRegistry(registry prometheus.Registerer) *Metrics {
	if registry == nil {
		registry = prometheus.DefaultRegisterer
	}
	factory := promauto.With(registry)

	return &Metrics{
		DispatchTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "sodiumbridge_dispatch_total",
			Help: "Operations dispatched to a backend, by outcome",
		}, []string{"op", "outcome"}),
		DispatchSeconds: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "sodiumbridge_dispatch_seconds",
			Help:    "Time from dispatch to completion",
			Buckets: prometheus.DefBuckets,
		}, []string{"op"}),
		ValidationFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "sodiumbridge_validation_failures_total",
			Help: "Calls rejected before dispatch, by error kind",
		}, []string{"op", "kind"}),
		Inflight: factory.NewGauge(prometheus.GaugeOpts{
			Name: "sodiumbridge_inflight",
			Help: "Dispatched operations awaiting a reply",
		}),
		BackendExecTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "sodiumbridge_backend_exec_total",
			Help: "Operations executed by a serving backend, by outcome",
		}, []string{"op", "outcome"}),
	}
}

// DispatchStarted marks an operation as in flight.
func (m *Metrics) DispatchStarted() {
	if m == nil {
		return
	}
	m.Inflight.Inc()
}

// DispatchFinished records the outcome of an in-flight operation.
func (m *Metrics) DispatchFinished(op, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.Inflight.Dec()
	m.DispatchTotal.WithLabelValues(op, outcome).Inc()
	m.DispatchSeconds.WithLabelValues(op).Observe(elapsed.Seconds())
}

// ValidationFailed counts a call rejected before dispatch.
func (m *Metrics) ValidationFailed(op string, err error) {
	if m == nil {
		return
	}
	m.ValidationFailures.WithLabelValues(op, kindLabel(err)).Inc()
}

// BackendExecuted counts an operation served by a backend.
func (m *Metrics) BackendExecuted(op string, err error) {
	if m == nil {
		return
	}
	outcome := OutcomeOK
	if err != nil {
		outcome = OutcomeError
	}
	m.BackendExecTotal.WithLabelValues(op, outcome).Inc()
}

func kindLabel(err error) string {
	for _, k := range []domain.Kind{
		domain.KindType, domain.KindValue, domain.KindFormat, domain.KindDecode, domain.KindNotImplemented,
	} {
		if domain.IsKind(err, k) {
			return string(k)
		}
	}
	return "other"
}
