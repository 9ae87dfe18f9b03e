// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package inference holds the deterministic scenario model and the runner
// that stores its output.
//
// Infer is pure: the same scenario always yields the same estimates, each
// rounded to 2 decimal places. Risk is classified on the unrounded case
// estimate. Runner.RunInference loads a scenario, calls Infer and upserts
// the single metrics row for that scenario.
package inference
