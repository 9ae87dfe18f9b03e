// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package report

import (
	"testing"

	"github.com/danielhkuo/health-inference/models"
)

func row(cases, admissions, mental float64) models.JoinedRow {
	risk := models.RiskLow
	return models.JoinedRow{
		CovidCasesEst:          &cases,
		HospitalAdmissionsEst:  &admissions,
		MentalHealthReportsEst: &mental,
		RiskLevel:              &risk,
	}
}

func TestSummarize(t *testing.T) {
	rows := []models.JoinedRow{
		row(1000, 60, 200),
		{ScenarioID: 2},
		row(3000, 156, 100),
		row(2000, 30, -50),
	}

	tests := []struct {
		metric         string
		mean, min, max float64
	}{
		{models.MetricCovidCases, 2000, 1000, 3000},
		{models.MetricHospitalAdmissions, 82, 30, 156},
		{models.MetricMentalHealth, 250.0 / 3.0, -50, 200},
	}

	for _, tt := range tests {
		t.Run(tt.metric, func(t *testing.T) {
			s := Summarize(rows, tt.metric)
			if s.Metric != tt.metric {
				t.Errorf("Expected metric %q, got %q", tt.metric, s.Metric)
			}
			if s.Count != 3 {
				t.Errorf("Expected count 3, got %d", s.Count)
			}
			if s.Mean == nil || s.Min == nil || s.Max == nil {
				t.Fatalf("Expected statistics, got %+v", s)
			}
			if *s.Mean != tt.mean {
				t.Errorf("Expected mean %v, got %v", tt.mean, *s.Mean)
			}
			if *s.Min != tt.min {
				t.Errorf("Expected min %v, got %v", tt.min, *s.Min)
			}
			if *s.Max != tt.max {
				t.Errorf("Expected max %v, got %v", tt.max, *s.Max)
			}
		})
	}
}

func TestSummarizeEmpty(t *testing.T) {
	tests := []struct {
		name   string
		rows   []models.JoinedRow
		metric string
	}{
		{"no rows", nil, models.MetricCovidCases},
		{"rows without metrics", []models.JoinedRow{{ScenarioID: 1}, {ScenarioID: 2}}, models.MetricCovidCases},
		{"unknown metric", []models.JoinedRow{row(1, 2, 3)}, "population"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Summarize(tt.rows, tt.metric)
			if s.Count != 0 || s.Mean != nil || s.Min != nil || s.Max != nil {
				t.Errorf("Expected empty summary, got %+v", s)
			}
		})
	}
}

func TestMetricNames(t *testing.T) {
	names := MetricNames()
	if len(names) != 3 {
		t.Fatalf("Expected 3 metric names, got %v", names)
	}
	for _, name := range names {
		if s := Summarize([]models.JoinedRow{row(1, 2, 3)}, name); s.Count != 1 {
			t.Errorf("Metric %q not accepted by Summarize", name)
		}
	}
}
