package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	storeRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "rentadmin",
			Name:      "store_requests_total",
			Help:      "Record store round trips by operation and outcome.",
		},
		[]string{"operation", "outcome"},
	)

	pageRenders = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "rentadmin",
			Name:      "page_renders_total",
			Help:      "Admin pages rendered.",
		},
		[]string{"page"},
	)

	exports = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "rentadmin",
			Name:      "exports_total",
			Help:      "Table exports by format.",
		},
		[]string{"format"},
	)

	rowActions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "rentadmin",
			Name:      "row_actions_total",
			Help:      "Dispatched row actions by name.",
		},
		[]string{"action"},
	)
)

// Register registers Prometheus metrics. Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(storeRequests, pageRenders, exports, rowActions)
	})
}

// IncStore counts one record store round trip.
func IncStore(operation, outcome string) {
	storeRequests.WithLabelValues(operation, outcome).Inc()
}

// IncPage counts one rendered page.
func IncPage(page string) {
	pageRenders.WithLabelValues(page).Inc()
}

// IncExport counts one export by format (csv, xlsx, print).
func IncExport(format string) {
	exports.WithLabelValues(format).Inc()
}

// IncAction counts one dispatched row action.
func IncAction(action string) {
	rowActions.WithLabelValues(action).Inc()
}
