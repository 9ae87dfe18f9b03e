// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package report

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/danielhkuo/health-inference/db"
	"github.com/danielhkuo/health-inference/metrics"
	"github.com/danielhkuo/health-inference/models"
)

// View reads the scenarios table left-joined with inferred metrics.
type View struct {
	conn *db.Conn
}

// NewView returns a view over conn.
func NewView(conn *db.Conn) *View {
	return &View{conn: conn}
}

// Joined returns one row per matching scenario ordered by date, then id.
// Filters are combined with AND; zero-valued filter fields are ignored.
// Date bounds are inclusive and compared as text.
func (v *View) Joined(ctx context.Context, f models.ViewFilter) (rows []models.JoinedRow, err error) {
	defer func() { metrics.ObserveStore("view_joined", err) }()

	var (
		where []string
		args  []any
	)
	if f.ScenarioID != 0 {
		where = append(where, "s.id = ?")
		args = append(args, f.ScenarioID)
	}
	if f.Country != "" {
		where = append(where, "s.country = ?")
		args = append(args, f.Country)
	}
	if f.StartDate != "" {
		where = append(where, "s.date >= ?")
		args = append(args, f.StartDate)
	}
	if f.EndDate != "" {
		where = append(where, "s.date <= ?")
		args = append(args, f.EndDate)
	}

	query := `
		SELECT s.id, s.country, s.date, s.population, s.vaccination_rate,
			s.lockdown_level, s.mental_support_level, s.baseline_cases,
			m.covid_cases_est, m.hospital_admissions_est, m.mental_health_reports_est, m.risk_level
		FROM scenarios s
		LEFT JOIN inferred_metrics m ON m.scenario_id = s.id`
	if len(where) > 0 {
		query += "\n\t\tWHERE " + strings.Join(where, " AND ")
	}
	query += "\n\t\tORDER BY s.date ASC, s.id ASC"

	result, err := v.conn.DB.QueryContext(ctx, v.conn.Dialect.Rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query view: %w", err)
	}
	defer result.Close()

	rows = []models.JoinedRow{}
	for result.Next() {
		var (
			r                         models.JoinedRow
			cases, admissions, mental sql.NullFloat64
			risk                      sql.NullString
		)
		if err := result.Scan(
			&r.ScenarioID, &r.Country, &r.Date, &r.Population, &r.VaccinationRate,
			&r.LockdownLevel, &r.MentalSupportLevel, &r.BaselineCases,
			&cases, &admissions, &mental, &risk,
		); err != nil {
			return nil, fmt.Errorf("failed to scan view row: %w", err)
		}
		r.CovidCasesEst = nullFloat(cases)
		r.HospitalAdmissionsEst = nullFloat(admissions)
		r.MentalHealthReportsEst = nullFloat(mental)
		if risk.Valid {
			level := models.RiskLevel(risk.String)
			r.RiskLevel = &level
		}
		rows = append(rows, r)
	}
	if err := result.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate view: %w", err)
	}

	return rows, nil
}

func nullFloat(n sql.NullFloat64) *float64 {
	if !n.Valid {
		return nil
	}
	v := n.Float64
	return &v
}
