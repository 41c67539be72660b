// Package metrics exposes the Prometheus registry shared by the CMS packages.
// Collectors are defined next to the code they measure (strapi, cache,
// datamanager) and registered through promauto.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry is the registerer promauto collectors land in.
var Registry = prometheus.DefaultRegisterer

// Gatherer is the gatherer Handler reads from.
var Gatherer = prometheus.DefaultGatherer

// Handler serves the registry in the Prometheus exposition format.
func Handler() http.Handler {
	return promhttp.HandlerFor(Gatherer, promhttp.HandlerOpts{})
}

// Metrics Documentation
//
// Request Metrics (pkg/strapi):
//   - strapi_requests_total{endpoint, status} (Counter): Requests by endpoint and HTTP status
//   - strapi_request_duration_seconds{endpoint} (Histogram): Request duration by endpoint
//   - strapi_errors_total{class} (Counter): Errors by class (client, server, network, decode)
//
// Cache Metrics (pkg/cache):
//   - cms_cache_hits_total{layer} (Counter): Hits by layer (memory, redis)
//   - cms_cache_misses_total{layer} (Counter): Misses by layer, expired entries included
//   - cms_cache_errors_total{layer, operation} (Counter): Backend errors
//
// Shared Data Metrics (pkg/datamanager):
//   - cms_shared_data_fetch_seconds (Histogram): Header and hero fetch time on a miss
//
// Example Prometheus Queries:
//
//   # Cache Hit Rate
//   sum(rate(cms_cache_hits_total[5m])) /
//   (sum(rate(cms_cache_hits_total[5m])) + sum(rate(cms_cache_misses_total[5m])))
//
//   # CMS Error Rate
//   sum(rate(strapi_errors_total[5m])) by (class)
//
//   # P95 Request Latency
//   histogram_quantile(0.95, rate(strapi_request_duration_seconds_bucket[5m]))
