// Package metrics holds the Prometheus collectors for conversions and storage.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome label values.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// Metrics holds all Prometheus collectors for the application.
type Metrics struct {
	Conversions       *prometheus.CounterVec
	StorageOperations *prometheus.CounterVec
}

// New creates the collectors and registers them on reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Conversions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "addrconv_conversions_total",
			Help: "Address conversions by operation and outcome",
		}, []string{"operation", "outcome"}),
		StorageOperations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "addrconv_storage_operations_total",
			Help: "Address repository operations by operation and outcome",
		}, []string{"operation", "outcome"}),
	}
}

// ObserveConversion counts one conversion. A nil receiver is a no-op.
func (m *Metrics) ObserveConversion(operation string, err error) {
	if m == nil {
		return
	}
	m.Conversions.WithLabelValues(operation, outcome(err)).Inc()
}

// ObserveStorage counts one repository call. A nil receiver is a no-op.
func (m *Metrics) ObserveStorage(operation string, err error) {
	if m == nil {
		return
	}
	m.StorageOperations.WithLabelValues(operation, outcome(err)).Inc()
}

func outcome(err error) string {
	if err != nil {
		return OutcomeFailure
	}
	return OutcomeSuccess
}
