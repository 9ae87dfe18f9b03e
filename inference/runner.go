// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package inference

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/danielhkuo/health-inference/metrics"
	"github.com/danielhkuo/health-inference/models"
)

// ScenarioGetter reads scenario snapshots.
type ScenarioGetter interface {
	Get(ctx context.Context, id int64) (models.Scenario, bool, error)
}

// MetricsUpserter writes one metrics row per scenario.
type MetricsUpserter interface {
	Upsert(ctx context.Context, scenarioID int64, m models.MetricsResult) (int64, error)
}

// Runner reads a scenario, infers its metrics and stores the result.
type Runner struct {
	scenarios ScenarioGetter
	results   MetricsUpserter
	log       *slog.Logger
}

// NewRunner wires a runner. A nil logger uses slog.Default().
func NewRunner(scenarios ScenarioGetter, results MetricsUpserter, log *slog.Logger) *Runner {
	if log == nil {
		log = slog.Default()
	}
	return &Runner{scenarios: scenarios, results: results, log: log.With("component", "inference")}
}

// RunInference computes and stores metrics for a scenario and returns the
// metrics row id. An unknown scenario yields *models.NotFoundError and
// nothing is written.
func (r *Runner) RunInference(ctx context.Context, scenarioID int64) (int64, error) {
	sc, found, err := r.scenarios.Get(ctx, scenarioID)
	if err != nil {
		metrics.InferenceRuns.WithLabelValues(metrics.ResultError).Inc()
		return 0, fmt.Errorf("failed to load scenario: %w", err)
	}
	if !found {
		metrics.InferenceRuns.WithLabelValues(metrics.ResultNotFound).Inc()
		return 0, &models.NotFoundError{ID: scenarioID}
	}

	result, err := Infer(sc)
	if err != nil {
		label := metrics.ResultError
		if errors.Is(err, models.ErrValidation) {
			label = metrics.ResultInvalid
		}
		metrics.InferenceRuns.WithLabelValues(label).Inc()
		return 0, err
	}

	metricsID, err := r.results.Upsert(ctx, scenarioID, result)
	if err != nil {
		metrics.InferenceRuns.WithLabelValues(metrics.ResultError).Inc()
		return 0, err
	}

	metrics.InferenceRuns.WithLabelValues(metrics.ResultOK).Inc()
	r.log.Info("inference stored",
		"scenario_id", scenarioID,
		"metrics_id", metricsID,
		"risk_level", result.RiskLevel,
	)
	return metricsID, nil
}
