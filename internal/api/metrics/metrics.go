// Package metrics defines and registers all custom Prometheus metrics for the
// CRM API. It is the single source of truth for metric names, labels, and
// help strings.
//
// Metrics are registered with the default registry via promauto at package
// load; the router only needs to expose the /metrics endpoint.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "crm"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// ── Record metrics ────────────────────────────────────────────────────────────

// RecordsCreatedTotal counts created records.
// Label:
//   - kind: "client", "order", "invoice", or "user"
var RecordsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "records_created_total",
		Help:      "Total number of records created, by kind.",
	},
	[]string{"kind"},
)

// RecordsDeletedTotal counts deleted records.
// Label:
//   - kind: "client", "order", "invoice", or "user"
var RecordsDeletedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "records_deleted_total",
		Help:      "Total number of records deleted, by kind.",
	},
	[]string{"kind"},
)

// InvoicePDFUploadsTotal counts invoice documents stored via the upload
// endpoint.
var InvoicePDFUploadsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "invoice_pdf_uploads_total",
		Help:      "Total number of invoice PDF documents uploaded.",
	},
)
