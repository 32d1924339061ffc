package telemetry

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// APIRequests counts dashboard API calls issued, per operation.
	APIRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "meraki",
			Name:      "api_requests_total",
			Help:      "Total number of dashboard API requests issued",
		},
		[]string{"operation"},
	)

	// APIErrors counts dashboard API calls that failed after retries.
	APIErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "meraki",
			Name:      "api_request_errors_total",
			Help:      "Total number of dashboard API requests that failed after retries",
		},
		[]string{"operation", "class"},
	)

	// APIRetries counts retry attempts made by the call envelope.
	APIRetries = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "meraki",
			Name:      "api_retries_total",
			Help:      "Total number of retry attempts made by the call envelope",
		},
		[]string{"operation"},
	)

	// PagesFetched counts pages retrieved by the cursor paginator.
	PagesFetched = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "meraki",
			Name:      "pages_fetched_total",
			Help:      "Total number of pages retrieved by the cursor paginator",
		},
		[]string{"operation"},
	)

	// CursorExhausted counts paginations halted because no cursor field
	// could be derived from the last item of a page.
	CursorExhausted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "meraki",
			Name:      "pagination_cursor_exhausted_total",
			Help:      "Total number of paginations halted early for lack of a cursor field",
		},
		[]string{"operation"},
	)

	// FanoutFailures counts per-parent failures tolerated by the aggregator.
	FanoutFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "meraki",
			Name:      "fanout_parent_failures_total",
			Help:      "Total number of per-parent failures isolated by the fan-out aggregator",
		},
	)

	// ReportsGenerated counts report runs by type and outcome.
	ReportsGenerated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "meraki",
			Name:      "reports_generated_total",
			Help:      "Total number of report runs",
		},
		[]string{"type", "outcome"},
	)

	once sync.Once
)

// InitMetrics registers all metrics with the global Prometheus registry.
// Idempotent; safe to call from multiple entrypoints.
func InitMetrics() {
	once.Do(func() {
		prometheus.DefaultRegisterer.Register(APIRequests)
		prometheus.DefaultRegisterer.Register(APIErrors)
		prometheus.DefaultRegisterer.Register(APIRetries)
		prometheus.DefaultRegisterer.Register(PagesFetched)
		prometheus.DefaultRegisterer.Register(CursorExhausted)
		prometheus.DefaultRegisterer.Register(FanoutFailures)
		prometheus.DefaultRegisterer.Register(ReportsGenerated)
	})
}
