// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package report builds the joined scenario/metrics view and summary
// statistics over it.
//
// Every scenario appears in the view whether or not inference has run for
// it. Metric columns of scenarios without a metrics row are nil, and
// Summarize skips them.
package report
