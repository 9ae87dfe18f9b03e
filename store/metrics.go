// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/danielhkuo/health-inference/db"
	"github.com/danielhkuo/health-inference/metrics"
	"github.com/danielhkuo/health-inference/models"
)

// MetricsStore persists one inferred metrics row per scenario.
type MetricsStore struct {
	conn *db.Conn
}

// NewMetricsStore returns a store over conn.
func NewMetricsStore(conn *db.Conn) *MetricsStore {
	return &MetricsStore{conn: conn}
}

// Upsert inserts or overwrites the metrics row for a scenario and returns
// the row id. The id is stable across overwrites.
func (s *MetricsStore) Upsert(ctx context.Context, scenarioID int64, m models.MetricsResult) (id int64, err error) {
	defer func() { metrics.ObserveStore("metrics_upsert", err) }()

	err = s.conn.DB.QueryRowContext(ctx, s.conn.Dialect.Rebind(`
		INSERT INTO inferred_metrics (scenario_id, covid_cases_est, hospital_admissions_est, mental_health_reports_est, risk_level)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (scenario_id) DO UPDATE SET
			covid_cases_est = excluded.covid_cases_est,
			hospital_admissions_est = excluded.hospital_admissions_est,
			mental_health_reports_est = excluded.mental_health_reports_est,
			risk_level = excluded.risk_level
		RETURNING id
	`), scenarioID, m.CovidCasesEst, m.HospitalAdmissionsEst, m.MentalHealthReportsEst, string(m.RiskLevel)).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to upsert metrics: %w", err)
	}
	return id, nil
}

// GetByScenario returns the metrics row for a scenario, if any.
func (s *MetricsStore) GetByScenario(ctx context.Context, scenarioID int64) (m models.InferredMetrics, found bool, err error) {
	defer func() { metrics.ObserveStore("metrics_get", err) }()

	var risk string
	err = s.conn.DB.QueryRowContext(ctx, s.conn.Dialect.Rebind(`
		SELECT id, scenario_id, covid_cases_est, hospital_admissions_est, mental_health_reports_est, risk_level
		FROM inferred_metrics
		WHERE scenario_id = ?
	`), scenarioID).Scan(
		&m.ID, &m.ScenarioID, &m.CovidCasesEst, &m.HospitalAdmissionsEst,
		&m.MentalHealthReportsEst, &risk,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.InferredMetrics{}, false, nil
	}
	if err != nil {
		return models.InferredMetrics{}, false, fmt.Errorf("failed to query metrics: %w", err)
	}
	m.RiskLevel = models.RiskLevel(risk)
	return m, true, nil
}

// Count returns the number of metrics rows for a scenario. It is always 0
// or 1 given the UNIQUE constraint.
func (s *MetricsStore) Count(ctx context.Context, scenarioID int64) (n int, err error) {
	defer func() { metrics.ObserveStore("metrics_count", err) }()

	err = s.conn.DB.QueryRowContext(ctx, s.conn.Dialect.Rebind(
		`SELECT COUNT(*) FROM inferred_metrics WHERE scenario_id = ?`), scenarioID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count metrics: %w", err)
	}
	return n, nil
}
