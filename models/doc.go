// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines domain, request, and response types shared by the
stores, the inference engine, and the HTTP layer.

# Domain Types

  - Scenario: recorded input parameters for a country and date
  - NewScenario: insert input (all fields required)
  - ScenarioPatch: partial update, one Optional per attribute
  - MetricsResult: inference engine output
  - InferredMetrics: persisted metrics row (one per scenario)
  - JoinedRow: scenario left-joined with its metrics
  - ViewFilter: optional joined-view filters
  - Summary: count/mean/min/max over a metric column

# Partial Updates

ScenarioPatch fields are Optional values. Only fields with Set=true are
written by the store:

	patch := models.ScenarioPatch{
		VaccinationRate: models.Some(80.0),
		LockdownLevel:   models.Some(3),
	}

When decoded from JSON, a key that is present sets the field. Unknown keys
are dropped by the decoder, so a body with no recognized keys is a no-op.

# Errors

	ErrNotFound   → *NotFoundError{ID}
	ErrValidation → *ValidationError{Field, Reason}

Match with errors.Is / errors.As.

# Constants

Risk levels:

	RiskLow    = "LOW"
	RiskMedium = "MEDIUM"
	RiskHigh   = "HIGH"

Metric columns:

	MetricCovidCases         = "covid_cases_est"
	MetricHospitalAdmissions = "hospital_admissions_est"
	MetricMentalHealth       = "mental_health_reports_est"
*/
package models
