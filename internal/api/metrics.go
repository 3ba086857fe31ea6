package api

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Validation kinds used as the "kind" label.
const (
	KindINN        = "inn"
	KindKPP        = "kpp"
	KindINNWithKPP = "inn_kpp"
	KindRequisites = "requisites"
)

// Metrics counts validations and their latency.
type Metrics struct {
	Validations *prometheus.CounterVec
	Duration    *prometheus.HistogramVec
}

// NewMetrics registers the collectors on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Validations: f.NewCounterVec(prometheus.CounterOpts{
			Name: "taxid_validations_total",
			Help: "Validated identifiers by kind and result",
		}, []string{"kind", "result"}), // result: "valid", "invalid"

		Duration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "taxid_validation_duration_seconds",
			Help:    "Time spent validating one request by kind",
			Buckets: []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05},
		}, []string{"kind"}),
	}
}

// ObserveResult counts one validated identifier.
func (m *Metrics) ObserveResult(kind string, valid bool) {
	if m == nil {
		return
	}
	result := "invalid"
	if valid {
		result = "valid"
	}
	m.Validations.WithLabelValues(kind, result).Inc()
}

// ObserveDuration records the time since start.
func (m *Metrics) ObserveDuration(kind string, start time.Time) {
	if m != nil {
		m.Duration.WithLabelValues(kind).Observe(time.Since(start).Seconds())
	}
}
