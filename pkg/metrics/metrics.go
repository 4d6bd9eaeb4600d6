// Package metrics documents the Prometheus metrics exported by the CRM
// client. Metrics are defined next to the code that records them (pkg/client)
// and registered automatically via promauto; this package keeps the registry
// reference and the metric inventory in one place.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Registry is the default Prometheus registry used by the CRM client.
var Registry = prometheus.DefaultRegisterer

// Metrics Documentation
//
// Request Metrics (pkg/client):
//   - crm_requests_total{endpoint, status} (Counter): Requests by endpoint
//     and HTTP status ("network_error" for transport failures)
//   - crm_request_duration_seconds{endpoint} (Histogram): Request duration
//   - crm_errors_total{class} (Counter): Errors by class
//     (client, server, network)
//
// Example Prometheus Queries:
//
//   # Request Error Rate
//   rate(crm_errors_total[5m])
//
//   # P95 Request Latency
//   histogram_quantile(0.95, rate(crm_request_duration_seconds_bucket[5m]))
