package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/davicafu/sortlab/internal/sorting/application"
)

// SortMetrics cuenta los resultados del orquestador por estado.
type SortMetrics struct {
	operations *prometheus.CounterVec
}

var _ application.Recorder = (*SortMetrics)(nil)

// NewSortMetrics registra los contadores en reg. Con reg nil se usa el
// registro por defecto de prometheus.
func NewSortMetrics(reg prometheus.Registerer) *SortMetrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	operations := promauto.With(reg).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "sortlab",
			Name:      "sort_operations_total",
			Help:      "Sort operations by resulting state",
		},
		[]string{"state"},
	)

	// Series a cero para que aparezcan antes del primer orden.
	for _, s := range []application.SortState{
		application.StateUnsorted,
		application.StateNativeOrdered,
		application.StateFallbackOrdered,
		application.StateRejected,
	} {
		operations.WithLabelValues(string(s))
	}

	return &SortMetrics{operations: operations}
}

func (m *SortMetrics) Observe(state application.SortState) {
	m.operations.WithLabelValues(string(state)).Inc()
}
