// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

// RiskLevel is the coarse classification attached to a metrics row.
type RiskLevel string

// Risk level constants
const (
	RiskLow    RiskLevel = "LOW"
	RiskMedium RiskLevel = "MEDIUM"
	RiskHigh   RiskLevel = "HIGH"
)

// Metric column names accepted by summaries
const (
	MetricCovidCases         = "covid_cases_est"
	MetricHospitalAdmissions = "hospital_admissions_est"
	MetricMentalHealth       = "mental_health_reports_est"
)

// Domain types

type Scenario struct {
	ID                 int64   `json:"scenario_id"`
	Country            string  `json:"country"`
	Date               string  `json:"date"`
	Population         int64   `json:"population"`
	VaccinationRate    float64 `json:"vaccination_rate"`
	LockdownLevel      int     `json:"lockdown_level"`
	MentalSupportLevel int     `json:"mental_support_level"`
	BaselineCases      int64   `json:"baseline_cases"`
}

// NewScenario holds the fields required to insert a scenario.
type NewScenario struct {
	Country            string
	Date               string
	Population         int64
	VaccinationRate    float64
	LockdownLevel      int
	MentalSupportLevel int
	BaselineCases      int64
}

// ScenarioPatch is a partial update. Only fields with Set=true are written.
type ScenarioPatch struct {
	Country            Optional[string]  `json:"country"`
	Date               Optional[string]  `json:"date"`
	Population         Optional[int64]   `json:"population"`
	VaccinationRate    Optional[float64] `json:"vaccination_rate"`
	LockdownLevel      Optional[int]     `json:"lockdown_level"`
	MentalSupportLevel Optional[int]     `json:"mental_support_level"`
	BaselineCases      Optional[int64]   `json:"baseline_cases"`
}

// Empty reports whether the patch carries no fields.
func (p ScenarioPatch) Empty() bool {
	return !p.Country.Set && !p.Date.Set && !p.Population.Set &&
		!p.VaccinationRate.Set && !p.LockdownLevel.Set &&
		!p.MentalSupportLevel.Set && !p.BaselineCases.Set
}

// MetricsResult is the output of the inference engine.
type MetricsResult struct {
	CovidCasesEst          float64   `json:"covid_cases_est"`
	HospitalAdmissionsEst  float64   `json:"hospital_admissions_est"`
	MentalHealthReportsEst float64   `json:"mental_health_reports_est"`
	RiskLevel              RiskLevel `json:"risk_level"`
}

type InferredMetrics struct {
	ID         int64 `json:"id"`
	ScenarioID int64 `json:"scenario_id"`
	MetricsResult
}

// JoinedRow is one scenario with its metrics, if inference has run.
// Metrics fields are nil when no metrics row exists.
type JoinedRow struct {
	ScenarioID             int64      `json:"scenario_id"`
	Country                string     `json:"country"`
	Date                   string     `json:"date"`
	Population             int64      `json:"population"`
	VaccinationRate        float64    `json:"vaccination_rate"`
	LockdownLevel          int        `json:"lockdown_level"`
	MentalSupportLevel     int        `json:"mental_support_level"`
	BaselineCases          int64      `json:"baseline_cases"`
	CovidCasesEst          *float64   `json:"covid_cases_est"`
	HospitalAdmissionsEst  *float64   `json:"hospital_admissions_est"`
	MentalHealthReportsEst *float64   `json:"mental_health_reports_est"`
	RiskLevel              *RiskLevel `json:"risk_level"`
}

// ViewFilter narrows the joined view. Zero values mean "no filter".
type ViewFilter struct {
	ScenarioID int64  `json:"scenario_id,omitempty"`
	Country    string `json:"country,omitempty"`
	StartDate  string `json:"start_date,omitempty"`
	EndDate    string `json:"end_date,omitempty"`
}

// Summary holds aggregate statistics over one metric column.
// Mean, Min and Max are nil when Count is 0.
type Summary struct {
	Metric string   `json:"metric"`
	Count  int      `json:"count"`
	Mean   *float64 `json:"mean"`
	Min    *float64 `json:"min"`
	Max    *float64 `json:"max"`
}

// Request types

// CreateScenarioRequest uses pointers so that missing fields can be told
// apart from zero values.
type CreateScenarioRequest struct {
	Country            *string  `json:"country"`
	Date               *string  `json:"date"`
	Population         *int64   `json:"population"`
	VaccinationRate    *float64 `json:"vaccination_rate"`
	LockdownLevel      *int     `json:"lockdown_level"`
	MentalSupportLevel *int     `json:"mental_support_level"`
	BaselineCases      *int64   `json:"baseline_cases"`
}

type ExportRequest struct {
	Path    string     `json:"path"`
	Filters ViewFilter `json:"filters"`
}

// Response types

type CreateScenarioResponse struct {
	ScenarioID int64 `json:"scenario_id"`
}

type RunInferenceResponse struct {
	ScenarioID int64 `json:"scenario_id"`
	MetricsID  int64 `json:"metrics_id"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
