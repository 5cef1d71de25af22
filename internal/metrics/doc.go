// SPDX-License-Identifier: EPL-2.0

// Package metrics defines the Prometheus collectors of the bridge and the
// HTTP server. Every Record method is safe on a nil *Metrics, so callers
// that run without metrics pass nil.
package metrics
