package metrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveConversion(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveConversion("to_french", nil)
	m.ObserveConversion("to_french", nil)
	m.ObserveConversion("to_french", errors.New("boom"))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Conversions.WithLabelValues("to_french", OutcomeSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Conversions.WithLabelValues("to_french", OutcomeFailure)))
}

func TestObserveStorage(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveStorage("save", nil)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.StorageOperations.WithLabelValues("save", OutcomeSuccess)))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveConversion("to_french", nil)
		m.ObserveStorage("save", errors.New("boom"))
	})
}
