// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/danielhkuo/health-inference/models"
	"github.com/danielhkuo/health-inference/store"
	"github.com/danielhkuo/health-inference/testutil"
)

func createBody() map[string]any {
	return map[string]any{
		"country":              "US",
		"date":                 "2024-01-01",
		"population":           1000000,
		"vaccination_rate":     20.0,
		"lockdown_level":       0,
		"mental_support_level": 0,
		"baseline_cases":       3000,
	}
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}

func withID(req *http.Request, id int64) *http.Request {
	req.SetPathValue("id", itoa(id))
	return req
}

func TestCreateScenario(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	handler := NewScenarioHandler(conn)

	req := testutil.MakeRequest("POST", "/scenarios", createBody(), nil)
	w := httptest.NewRecorder()
	handler.Create(w, req)

	testutil.AssertStatus(t, w, http.StatusCreated)

	var resp models.CreateScenarioResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.ScenarioID <= 0 {
		t.Fatalf("Expected positive scenario id, got %d", resp.ScenarioID)
	}

	sc, found, err := store.NewScenarioStore(conn).Get(req.Context(), resp.ScenarioID)
	if err != nil || !found {
		t.Fatalf("Expected stored scenario, found=%v err=%v", found, err)
	}
	if sc.Country != "US" || sc.BaselineCases != 3000 || sc.VaccinationRate != 20 {
		t.Errorf("Unexpected stored scenario %+v", sc)
	}
}

func TestCreateScenarioValidation(t *testing.T) {
	testCases := []struct {
		name    string
		edit    func(map[string]any)
		message string
	}{
		{"missing population", func(b map[string]any) { delete(b, "population") }, "population"},
		{"missing baseline", func(b map[string]any) { delete(b, "baseline_cases") }, "baseline_cases"},
		{"blank country", func(b map[string]any) { b["country"] = "  " }, "country"},
		{"wrong type", func(b map[string]any) { b["lockdown_level"] = "high" }, ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			conn := testutil.SetupTestDB(t)
			handler := NewScenarioHandler(conn)

			body := createBody()
			tc.edit(body)
			w := httptest.NewRecorder()
			handler.Create(w, testutil.MakeRequest("POST", "/scenarios", body, nil))

			testutil.AssertStatus(t, w, http.StatusBadRequest)
			if tc.message != "" && !strings.Contains(w.Body.String(), tc.message) {
				t.Errorf("Expected message to mention %q, got %s", tc.message, w.Body.String())
			}
			if n := testutil.CountRows(t, conn, "scenarios"); n != 0 {
				t.Errorf("Expected no scenarios, got %d", n)
			}
		})
	}
}

func TestCreateScenarioInvalidJSON(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	handler := NewScenarioHandler(conn)

	req := httptest.NewRequest("POST", "/scenarios", strings.NewReader("{not json"))
	w := httptest.NewRecorder()
	handler.Create(w, req)

	testutil.AssertStatus(t, w, http.StatusBadRequest)
}

func TestListScenarios(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	handler := NewScenarioHandler(conn)

	w := httptest.NewRecorder()
	handler.List(w, testutil.MakeRequest("GET", "/scenarios", nil, nil))
	testutil.AssertStatus(t, w, http.StatusOK)
	if body := strings.TrimSpace(w.Body.String()); body != "[]" {
		t.Errorf("Expected empty JSON array, got %s", body)
	}

	first := testutil.CreateTestScenario(t, conn, testutil.SampleScenario())
	second := testutil.CreateTestScenario(t, conn, testutil.SampleScenario())

	w = httptest.NewRecorder()
	handler.List(w, testutil.MakeRequest("GET", "/scenarios", nil, nil))
	testutil.AssertStatus(t, w, http.StatusOK)

	var scenarios []models.Scenario
	testutil.AssertJSON(t, w, &scenarios)
	if len(scenarios) != 2 || scenarios[0].ID != first || scenarios[1].ID != second {
		t.Errorf("Unexpected list %+v", scenarios)
	}
}

func TestGetScenario(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	handler := NewScenarioHandler(conn)
	id := testutil.CreateTestScenario(t, conn, testutil.SampleScenario())

	t.Run("found", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.Get(w, withID(testutil.MakeRequest("GET", "/scenarios/x", nil, nil), id))

		testutil.AssertStatus(t, w, http.StatusOK)
		var sc models.Scenario
		testutil.AssertJSON(t, w, &sc)
		if sc.ID != id || sc.Country != "US" {
			t.Errorf("Unexpected scenario %+v", sc)
		}
	})

	t.Run("not found", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.Get(w, withID(testutil.MakeRequest("GET", "/scenarios/x", nil, nil), 9999))
		testutil.AssertStatus(t, w, http.StatusNotFound)
	})

	t.Run("bad id", func(t *testing.T) {
		req := testutil.MakeRequest("GET", "/scenarios/abc", nil, nil)
		req.SetPathValue("id", "abc")
		w := httptest.NewRecorder()
		handler.Get(w, req)
		testutil.AssertStatus(t, w, http.StatusBadRequest)
	})
}

func TestUpdateScenario(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	handler := NewScenarioHandler(conn)
	scenarios := store.NewScenarioStore(conn)
	id := testutil.CreateTestScenario(t, conn, testutil.SampleScenario())

	body := map[string]any{"lockdown_level": 2, "country": "UK", "not_a_column": 1}
	w := httptest.NewRecorder()
	req := withID(testutil.MakeRequest("PATCH", "/scenarios/x", body, nil), id)
	handler.Update(w, req)
	testutil.AssertStatus(t, w, http.StatusNoContent)

	sc, _, err := scenarios.Get(req.Context(), id)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if sc.LockdownLevel != 2 || sc.Country != "UK" {
		t.Errorf("Expected patched fields, got %+v", sc)
	}
	if sc.BaselineCases != 3000 || sc.Date != "2024-01-01" {
		t.Errorf("Expected untouched fields to keep their values, got %+v", sc)
	}

	w = httptest.NewRecorder()
	handler.Update(w, withID(testutil.MakeRequest("PATCH", "/scenarios/x", map[string]any{"date": ""}, nil), id))
	testutil.AssertStatus(t, w, http.StatusBadRequest)
}

func TestDeleteScenario(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	handler := NewScenarioHandler(conn)
	id := testutil.CreateTestScenario(t, conn, testutil.SampleScenario())
	testutil.CreateTestMetrics(t, conn, id, models.MetricsResult{RiskLevel: models.RiskLow})

	w := httptest.NewRecorder()
	handler.Delete(w, withID(testutil.MakeRequest("DELETE", "/scenarios/x", nil, nil), id))
	testutil.AssertStatus(t, w, http.StatusNoContent)

	if n := testutil.CountRows(t, conn, "scenarios"); n != 0 {
		t.Errorf("Expected scenario to be deleted, %d left", n)
	}
	if n := testutil.CountRows(t, conn, "inferred_metrics"); n != 0 {
		t.Errorf("Expected metrics to be deleted, %d left", n)
	}

	// Deleting again is a no-op
	w = httptest.NewRecorder()
	handler.Delete(w, withID(testutil.MakeRequest("DELETE", "/scenarios/x", nil, nil), id))
	testutil.AssertStatus(t, w, http.StatusNoContent)
}
