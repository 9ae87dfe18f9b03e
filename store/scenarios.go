// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/danielhkuo/health-inference/db"
	"github.com/danielhkuo/health-inference/metrics"
	"github.com/danielhkuo/health-inference/models"
)

const scenarioColumns = `id, country, date, population, vaccination_rate, lockdown_level, mental_support_level, baseline_cases`

// ScenarioStore persists scenario inputs.
type ScenarioStore struct {
	conn *db.Conn
}

// NewScenarioStore returns a store over conn.
func NewScenarioStore(conn *db.Conn) *ScenarioStore {
	return &ScenarioStore{conn: conn}
}

// Insert stores a new scenario and returns its id.
func (s *ScenarioStore) Insert(ctx context.Context, in models.NewScenario) (id int64, err error) {
	defer func() { metrics.ObserveStore("scenario_insert", err) }()

	if err := in.Validate(); err != nil {
		return 0, err
	}

	err = s.conn.DB.QueryRowContext(ctx, s.conn.Dialect.Rebind(`
		INSERT INTO scenarios (country, date, population, vaccination_rate, lockdown_level, mental_support_level, baseline_cases)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		RETURNING id
	`), in.Country, in.Date, in.Population, in.VaccinationRate, in.LockdownLevel, in.MentalSupportLevel, in.BaselineCases).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert scenario: %w", err)
	}

	slog.Info("scenario created", "scenario_id", id, "country", in.Country, "date", in.Date)
	return id, nil
}

// Get returns the scenario with the given id. found is false when no such
// scenario exists; that is not an error.
func (s *ScenarioStore) Get(ctx context.Context, id int64) (sc models.Scenario, found bool, err error) {
	defer func() { metrics.ObserveStore("scenario_get", err) }()

	row := s.conn.DB.QueryRowContext(ctx, s.conn.Dialect.Rebind(
		`SELECT `+scenarioColumns+` FROM scenarios WHERE id = ?`), id)
	sc, err = scanScenario(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Scenario{}, false, nil
	}
	if err != nil {
		return models.Scenario{}, false, fmt.Errorf("failed to query scenario: %w", err)
	}
	return sc, true, nil
}

// List returns all scenarios ordered by id.
func (s *ScenarioStore) List(ctx context.Context) (out []models.Scenario, err error) {
	defer func() { metrics.ObserveStore("scenario_list", err) }()

	rows, err := s.conn.DB.QueryContext(ctx, `SELECT `+scenarioColumns+` FROM scenarios ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query scenarios: %w", err)
	}
	defer rows.Close()

	out = []models.Scenario{}
	for rows.Next() {
		sc, err := scanScenario(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan scenario: %w", err)
		}
		out = append(out, sc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate scenarios: %w", err)
	}
	return out, nil
}

// Update writes only the fields set in the patch. An empty patch and an
// unknown id are both no-ops.
func (s *ScenarioStore) Update(ctx context.Context, id int64, patch models.ScenarioPatch) (err error) {
	defer func() { metrics.ObserveStore("scenario_update", err) }()

	if err := patch.Validate(); err != nil {
		return err
	}

	var (
		sets []string
		args []any
	)
	add := func(column string, value any) {
		sets = append(sets, column+" = ?")
		args = append(args, value)
	}
	if patch.Country.Set {
		add("country", patch.Country.Value)
	}
	if patch.Date.Set {
		add("date", patch.Date.Value)
	}
	if patch.Population.Set {
		add("population", patch.Population.Value)
	}
	if patch.VaccinationRate.Set {
		add("vaccination_rate", patch.VaccinationRate.Value)
	}
	if patch.LockdownLevel.Set {
		add("lockdown_level", patch.LockdownLevel.Value)
	}
	if patch.MentalSupportLevel.Set {
		add("mental_support_level", patch.MentalSupportLevel.Value)
	}
	if patch.BaselineCases.Set {
		add("baseline_cases", patch.BaselineCases.Value)
	}
	if len(sets) == 0 {
		return nil
	}

	args = append(args, id)
	query := `UPDATE scenarios SET ` + strings.Join(sets, ", ") + ` WHERE id = ?`
	res, err := s.conn.DB.ExecContext(ctx, s.conn.Dialect.Rebind(query), args...)
	if err != nil {
		return fmt.Errorf("failed to update scenario: %w", err)
	}

	if n, _ := res.RowsAffected(); n > 0 {
		slog.Info("scenario updated", "scenario_id", id, "fields", len(sets))
	}
	return nil
}

// Delete removes a scenario and its metrics row in one transaction.
// Deleting an unknown id is a no-op.
func (s *ScenarioStore) Delete(ctx context.Context, id int64) (err error) {
	defer func() { metrics.ObserveStore("scenario_delete", err) }()

	tx, err := s.conn.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	// Explicit so the cascade holds even with foreign keys disabled
	if _, err = tx.ExecContext(ctx, s.conn.Dialect.Rebind(`DELETE FROM inferred_metrics WHERE scenario_id = ?`), id); err != nil {
		return fmt.Errorf("failed to delete metrics: %w", err)
	}
	res, err := tx.ExecContext(ctx, s.conn.Dialect.Rebind(`DELETE FROM scenarios WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("failed to delete scenario: %w", err)
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit delete: %w", err)
	}

	if n, _ := res.RowsAffected(); n > 0 {
		slog.Info("scenario deleted", "scenario_id", id)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanScenario(r rowScanner) (models.Scenario, error) {
	var sc models.Scenario
	err := r.Scan(
		&sc.ID, &sc.Country, &sc.Date, &sc.Population,
		&sc.VaccinationRate, &sc.LockdownLevel, &sc.MentalSupportLevel, &sc.BaselineCases,
	)
	return sc, err
}
