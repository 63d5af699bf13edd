// Package metrics defines Prometheus metrics for shop-catalog-exporter.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "shopcat"

// Transport metrics.
var (
	MCPCallsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "mcp_calls_total",
		Help:      "Total number of JSON-RPC calls issued to MCP endpoints.",
	})

	MCPCallFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "mcp_call_failures_total",
		Help:      "Total number of JSON-RPC calls that yielded no result.",
	})
)

// Catalog fetch metrics.
var (
	PagesFetchedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "pages_fetched_total",
		Help:      "Total number of catalog pages fetched.",
	})

	ProductsFetchedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "products_fetched_total",
		Help:      "Total number of products accumulated across all runs.",
	})
)

// Export run metrics.
var (
	ExportsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "exports_total",
		Help:      "Total number of completed catalog exports.",
	})

	ExportErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "export_errors_total",
		Help:      "Total number of export runs that failed fatally.",
	})

	ExportDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "export_duration_seconds",
		Help:      "Duration of catalog export runs in seconds.",
		Buckets:   prometheus.DefBuckets,
	})

	NotificationFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notification_failures_total",
		Help:      "Total number of failed run-completion notifications.",
	})
)
