// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB, dialect Dialect) error {
	stmts := sqliteSchema
	if dialect == Postgres {
		stmts = postgresSchema
	}

	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}

	return nil
}

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS scenarios (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    country TEXT NOT NULL,
    date TEXT NOT NULL,
    population INTEGER NOT NULL,
    vaccination_rate REAL NOT NULL,
    lockdown_level INTEGER NOT NULL,
    mental_support_level INTEGER NOT NULL,
    baseline_cases INTEGER NOT NULL
)`,
	`CREATE INDEX IF NOT EXISTS idx_scenarios_country ON scenarios(country)`,
	`CREATE INDEX IF NOT EXISTS idx_scenarios_date ON scenarios(date)`,
	// At most one metrics row per scenario
	`CREATE TABLE IF NOT EXISTS inferred_metrics (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    scenario_id INTEGER NOT NULL UNIQUE,
    covid_cases_est REAL NOT NULL,
    hospital_admissions_est REAL NOT NULL,
    mental_health_reports_est REAL NOT NULL,
    risk_level TEXT NOT NULL CHECK (risk_level IN ('LOW', 'MEDIUM', 'HIGH')),
    FOREIGN KEY (scenario_id) REFERENCES scenarios(id) ON DELETE CASCADE
)`,
}

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS scenarios (
    id BIGSERIAL PRIMARY KEY,
    country TEXT NOT NULL,
    date TEXT NOT NULL,
    population BIGINT NOT NULL,
    vaccination_rate DOUBLE PRECISION NOT NULL,
    lockdown_level INTEGER NOT NULL,
    mental_support_level INTEGER NOT NULL,
    baseline_cases BIGINT NOT NULL
)`,
	`CREATE INDEX IF NOT EXISTS idx_scenarios_country ON scenarios(country)`,
	`CREATE INDEX IF NOT EXISTS idx_scenarios_date ON scenarios(date)`,
	`CREATE TABLE IF NOT EXISTS inferred_metrics (
    id BIGSERIAL PRIMARY KEY,
    scenario_id BIGINT NOT NULL UNIQUE REFERENCES scenarios(id) ON DELETE CASCADE,
    covid_cases_est DOUBLE PRECISION NOT NULL,
    hospital_admissions_est DOUBLE PRECISION NOT NULL,
    mental_health_reports_est DOUBLE PRECISION NOT NULL,
    risk_level TEXT NOT NULL CHECK (risk_level IN ('LOW', 'MEDIUM', 'HIGH'))
)`,
}
