// Package metrics holds the Prometheus collectors exposed on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	EntriesAdded = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "billmaker_entries_added_total",
		Help: "Bill entries added, by bill type.",
	}, []string{"bill_type"})

	EntriesRejected = promauto.NewCounter(prometheus.CounterOpts{
		Name: "billmaker_entries_rejected_total",
		Help: "Bill entries rejected for a missing name or card number.",
	})

	DocumentsRendered = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "billmaker_documents_rendered_total",
		Help: "Bill documents rendered, by format.",
	}, []string{"format"})

	DirectoryImports = promauto.NewCounter(prometheus.CounterOpts{
		Name: "billmaker_directory_imports_total",
		Help: "Employee directory merge imports.",
	})

	TypefaceFallbacks = promauto.NewCounter(prometheus.CounterOpts{
		Name: "billmaker_typeface_fallbacks_total",
		Help: "Renders that fell back to the built-in typeface.",
	})
)
