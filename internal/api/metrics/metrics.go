// Package metrics defines and registers the Prometheus metrics for the
// Ladle API. It is the single source of truth for metric names, labels, and
// help strings; registration with the default registry happens at import.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "ladle"

// RequestsTotal counts handled HTTP requests.
// Labels:
//   - method: HTTP verb
//   - path: the registered route pattern (e.g. "/recipe/recipes/:id/")
//   - status: numeric response status
var RequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests handled, by route and status.",
	},
	[]string{"method", "path", "status"},
)

// RequestDuration measures wall time per request.
var RequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP request handling, by route.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method", "path"},
)

// TokensIssuedTotal counts successful token exchanges (both first issuance
// and get-or-create reuse).
var TokensIssuedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tokens_issued_total",
		Help:      "Total number of successful credential-to-token exchanges.",
	},
)

// RecipesCreatedTotal counts newly created recipes.
var RecipesCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "recipes_created_total",
		Help:      "Total number of recipes created.",
	},
)

// ImageUploadsTotal counts image upload attempts.
// Label:
//   - result: "ok" or "invalid"
var ImageUploadsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "image_uploads_total",
		Help:      "Total number of recipe image uploads, by result.",
	},
	[]string{"result"},
)
