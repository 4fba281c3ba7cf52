// Package api implements the godswood HTTP API.
//
// The API exposes the same build → layout → render pipeline as the CLI,
// sharing its defaults, validation and caching through [pipeline.Runner].
//
// # Endpoints
//
//	GET  /healthz               liveness; pings the cache when it supports it
//	GET  /metrics               Prometheus metrics, when enabled with [WithMetrics]
//	GET  /v1/sample             the built-in sample application tree
//	POST /v1/layout             trees → scene JSON
//	POST /v1/render/{format}    trees → one artifact (json, dot, svg, png, pdf)
//
// Layout and render take the same request body:
//
//	{
//	  "trees":   [{"name": "app", "children": {"a": {}, "b": {}}}],
//	  "options": {"base_scale": 4, "base_gap": 20, "projection": "top"}
//	}
//
// # Errors
//
// Failures are reported as {"error": {"code": ..., "message": ...}} with the
// HTTP status derived from the error code (see [errors.HTTPStatus]).
package api
