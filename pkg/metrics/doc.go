// Package metrics exposes Prometheus counters for renders, exports and image
// uploads.
package metrics
