// Package exporters provides HTTP and SSE exporters for metrics.
package exporters

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// HTTPHandler returns the Prometheus exposition handler for every promauto metric.
func HTTPHandler() http.Handler {
	return promhttp.Handler()
}
