// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package metrics registers Prometheus collectors for inference runs,
// store operations, exports and HTTP latency, and exposes them on /metrics.
package metrics
