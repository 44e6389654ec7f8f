package resolver

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	resultHit   = "hit"
	resultMiss  = "miss"
	resultError = "error"

	sourceNone = "none"
)

// Metrics counts client resolutions by answering source and result.
type Metrics struct {
	resolutions *prometheus.CounterVec
}

// NewMetrics registers the resolver metrics with reg. Registering twice with
// the same registry shares the counters.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	resolutions := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "client_resolutions_total",
			Help: "Number of client lookups, differentiated by answering source and result.",
		},
		[]string{"source", "result"},
	)

	if err := reg.Register(resolutions); err != nil {
		var are prometheus.AlreadyRegisteredError
		if !errors.As(err, &are) {
			panic(err)
		}
		resolutions = are.ExistingCollector.(*prometheus.CounterVec) //nolint:forcetypeassert
	}

	return &Metrics{resolutions: resolutions}
}

func (m *Metrics) observe(source, result string) {
	if m == nil {
		return
	}
	m.resolutions.WithLabelValues(source, result).Inc()
}
