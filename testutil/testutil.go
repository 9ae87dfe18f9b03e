// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/danielhkuo/health-inference/cliparse"
	"github.com/danielhkuo/health-inference/db"
	"github.com/danielhkuo/health-inference/models"
)

// SetupTestDB creates a fresh SQLite database with the full schema in a
// temporary directory. It is closed when the test ends.
func SetupTestDB(t *testing.T) *db.Conn {
	t.Helper()

	cfg := GetTestConfig(t)
	conn, err := db.Open(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	return conn
}

// GetTestConfig returns a standard test configuration rooted in t.TempDir()
func GetTestConfig(t *testing.T) cliparse.Config {
	t.Helper()

	dir := t.TempDir()
	return cliparse.Config{
		Port:         3318,
		DatabaseURL:  filepath.Join(dir, "test.db"),
		DatabaseType: cliparse.DatabaseSQLite,
		ExportDir:    filepath.Join(dir, "exports"),
		LogLevel:     "info",
		LogFormat:    "text",
	}
}

// CreateTestScenario inserts a scenario row directly and returns its id
func CreateTestScenario(t *testing.T, conn *db.Conn, in models.NewScenario) int64 {
	t.Helper()

	var id int64
	err := conn.DB.QueryRow(conn.Dialect.Rebind(`
		INSERT INTO scenarios (country, date, population, vaccination_rate, lockdown_level, mental_support_level, baseline_cases)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		RETURNING id
	`), in.Country, in.Date, in.Population, in.VaccinationRate, in.LockdownLevel, in.MentalSupportLevel, in.BaselineCases).Scan(&id)
	if err != nil {
		t.Fatalf("Failed to create test scenario: %v", err)
	}

	return id
}

// CreateTestMetrics inserts a metrics row directly and returns its id
func CreateTestMetrics(t *testing.T, conn *db.Conn, scenarioID int64, m models.MetricsResult) int64 {
	t.Helper()

	var id int64
	err := conn.DB.QueryRow(conn.Dialect.Rebind(`
		INSERT INTO inferred_metrics (scenario_id, covid_cases_est, hospital_admissions_est, mental_health_reports_est, risk_level)
		VALUES (?, ?, ?, ?, ?)
		RETURNING id
	`), scenarioID, m.CovidCasesEst, m.HospitalAdmissionsEst, m.MentalHealthReportsEst, string(m.RiskLevel)).Scan(&id)
	if err != nil {
		t.Fatalf("Failed to create test metrics: %v", err)
	}

	return id
}

// CountRows returns the number of rows in a table
func CountRows(t *testing.T, conn *db.Conn, table string) int {
	t.Helper()

	var n int
	if err := conn.DB.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n); err != nil {
		t.Fatalf("Failed to count %s: %v", table, err)
	}
	return n
}

// SampleScenario returns the reference scenario used across tests:
// 1,000,000 people, 20% vaccinated, no lockdown, 3000 baseline cases.
func SampleScenario() models.NewScenario {
	return models.NewScenario{
		Country:            "US",
		Date:               "2024-01-01",
		Population:         1_000_000,
		VaccinationRate:    20.0,
		LockdownLevel:      0,
		MentalSupportLevel: 0,
		BaselineCases:      3000,
	}
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
