// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package inference

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/danielhkuo/health-inference/models"
	"github.com/danielhkuo/health-inference/store"
	"github.com/danielhkuo/health-inference/testutil"
)

func TestRunInferenceStoresMetrics(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	results := store.NewMetricsStore(conn)
	runner := NewRunner(store.NewScenarioStore(conn), results, nil)
	ctx := context.Background()

	id := testutil.CreateTestScenario(t, conn, testutil.SampleScenario())

	metricsID, err := runner.RunInference(ctx, id)
	if err != nil {
		t.Fatalf("RunInference failed: %v", err)
	}
	if metricsID <= 0 {
		t.Fatalf("Expected positive metrics id, got %d", metricsID)
	}

	m, found, err := results.GetByScenario(ctx, id)
	if err != nil || !found {
		t.Fatalf("Expected metrics row, found=%v err=%v", found, err)
	}
	if m.ID != metricsID {
		t.Errorf("Expected metrics id %d, got %d", metricsID, m.ID)
	}
	if m.CovidCasesEst != 3000 || m.HospitalAdmissionsEst != 156 || m.MentalHealthReportsEst != 200 {
		t.Errorf("Unexpected estimates %+v", m.MetricsResult)
	}
	if m.RiskLevel != models.RiskMedium {
		t.Errorf("Expected MEDIUM, got %s", m.RiskLevel)
	}
}

func TestRunInferenceIsIdempotent(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	runner := NewRunner(store.NewScenarioStore(conn), store.NewMetricsStore(conn), nil)
	ctx := context.Background()

	id := testutil.CreateTestScenario(t, conn, testutil.SampleScenario())

	first, err := runner.RunInference(ctx, id)
	if err != nil {
		t.Fatalf("First run failed: %v", err)
	}
	second, err := runner.RunInference(ctx, id)
	if err != nil {
		t.Fatalf("Second run failed: %v", err)
	}

	if first != second {
		t.Errorf("Expected same metrics id, got %d then %d", first, second)
	}
	if n := testutil.CountRows(t, conn, "inferred_metrics"); n != 1 {
		t.Errorf("Expected 1 metrics row, got %d", n)
	}
}

func TestRunInferenceAfterUpdate(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	scenarios := store.NewScenarioStore(conn)
	results := store.NewMetricsStore(conn)
	runner := NewRunner(scenarios, results, nil)
	ctx := context.Background()

	id := testutil.CreateTestScenario(t, conn, testutil.SampleScenario())
	first, err := runner.RunInference(ctx, id)
	if err != nil {
		t.Fatalf("RunInference failed: %v", err)
	}

	// 60% vaccination with full lockdown drops cases to 3000 * 0.5 * 0.65
	patch := models.ScenarioPatch{
		VaccinationRate: models.Some(60.0),
		LockdownLevel:   models.Some(3),
	}
	if err := scenarios.Update(ctx, id, patch); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	second, err := runner.RunInference(ctx, id)
	if err != nil {
		t.Fatalf("RunInference failed: %v", err)
	}
	if first != second {
		t.Errorf("Expected metrics id to stay %d, got %d", first, second)
	}

	m, _, err := results.GetByScenario(ctx, id)
	if err != nil {
		t.Fatalf("GetByScenario failed: %v", err)
	}
	if m.CovidCasesEst != 975 {
		t.Errorf("Expected 975 cases after update, got %v", m.CovidCasesEst)
	}
	if m.RiskLevel != models.RiskLow {
		t.Errorf("Expected LOW after update, got %s", m.RiskLevel)
	}
}

func TestRunInferenceUnknownScenario(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	runner := NewRunner(store.NewScenarioStore(conn), store.NewMetricsStore(conn), nil)

	_, err := runner.RunInference(context.Background(), 9999)
	if !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}

	var nf *models.NotFoundError
	if !errors.As(err, &nf) || nf.ID != 9999 {
		t.Errorf("Expected NotFoundError for 9999, got %v", err)
	}
	if n := testutil.CountRows(t, conn, "inferred_metrics"); n != 0 {
		t.Errorf("Expected no metrics rows, got %d", n)
	}
}

func TestRunInferenceThenDeleteCascades(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	scenarios := store.NewScenarioStore(conn)
	runner := NewRunner(scenarios, store.NewMetricsStore(conn), nil)
	ctx := context.Background()

	id := testutil.CreateTestScenario(t, conn, testutil.SampleScenario())
	if _, err := runner.RunInference(ctx, id); err != nil {
		t.Fatalf("RunInference failed: %v", err)
	}
	if err := scenarios.Delete(ctx, id); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	if n := testutil.CountRows(t, conn, "inferred_metrics"); n != 0 {
		t.Errorf("Expected metrics to be deleted with scenario, got %d rows", n)
	}
	if _, err := runner.RunInference(ctx, id); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("Expected ErrNotFound after delete, got %v", err)
	}
}

type stubScenarios struct {
	sc    models.Scenario
	found bool
	err   error
}

func (s stubScenarios) Get(context.Context, int64) (models.Scenario, bool, error) {
	return s.sc, s.found, s.err
}

type recordingUpserter struct {
	calls int
	err   error
}

func (r *recordingUpserter) Upsert(context.Context, int64, models.MetricsResult) (int64, error) {
	r.calls++
	if r.err != nil {
		return 0, r.err
	}
	return 42, nil
}

func TestRunInferenceErrors(t *testing.T) {
	boom := errors.New("boom")

	tests := []struct {
		name      string
		scenarios stubScenarios
		upsertErr error
		wantErr   error
		wantCalls int
	}{
		{
			name:      "load failure",
			scenarios: stubScenarios{err: boom},
			wantErr:   boom,
		},
		{
			name:      "not found",
			scenarios: stubScenarios{},
			wantErr:   models.ErrNotFound,
		},
		{
			name: "invalid snapshot",
			scenarios: stubScenarios{
				sc:    models.Scenario{ID: 1, VaccinationRate: math.NaN()},
				found: true,
			},
			wantErr: models.ErrValidation,
		},
		{
			name:      "write failure",
			scenarios: stubScenarios{sc: models.Scenario{ID: 1, Population: 1000, BaselineCases: 10}, found: true},
			upsertErr: boom,
			wantErr:   boom,
			wantCalls: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			up := &recordingUpserter{err: tt.upsertErr}
			runner := NewRunner(tt.scenarios, up, nil)

			_, err := runner.RunInference(context.Background(), 1)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Expected %v, got %v", tt.wantErr, err)
			}
			if up.calls != tt.wantCalls {
				t.Errorf("Expected %d upsert calls, got %d", tt.wantCalls, up.calls)
			}
		})
	}
}
