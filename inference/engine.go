// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package inference

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/danielhkuo/health-inference/models"
)

// Model constants
const (
	referencePopulation = 1_000_000.0
	minPopFactor        = 0.5
	maxPopFactor        = 2.0

	vaccinationDivisor = 120.0
	minVaccFactor      = 0.2

	baseAdmissionRate    = 0.06
	admissionVaccDivisor = 2500.0
	minAdmissionRate     = 0.01

	mentalHealthBase     = 200.0
	mentalHealthLockdown = 0.35
	mentalHealthSupport  = 0.20

	highRiskThreshold   = 5000.0
	mediumRiskThreshold = 2000.0
)

// lockdownFactors is indexed by lockdown level clamped to [0, 3]
var lockdownFactors = [4]float64{1.20, 1.00, 0.80, 0.65}

// Infer maps a scenario to estimated metrics. It is deterministic and does
// no I/O.
func Infer(s models.Scenario) (models.MetricsResult, error) {
	if math.IsNaN(s.VaccinationRate) || math.IsInf(s.VaccinationRate, 0) {
		return models.MetricsResult{}, &models.ValidationError{Field: "vaccination_rate", Reason: "must be a finite number"}
	}

	popFactor := clamp(float64(s.Population)/referencePopulation, minPopFactor, maxPopFactor)
	vFactor := math.Max(minVaccFactor, 1.0-s.VaccinationRate/vaccinationDivisor)
	lFactor := lockdownFactors[clampInt(s.LockdownLevel, 0, len(lockdownFactors)-1)]

	cases := float64(s.BaselineCases) * vFactor * lFactor * popFactor

	admissionRate := math.Max(minAdmissionRate, baseAdmissionRate-s.VaccinationRate/admissionVaccDivisor)
	admissions := cases * admissionRate

	// The raw lockdown level is used here, and the result is not floored
	// at zero.
	mhBase := mentalHealthBase * popFactor
	mhBoost := float64(s.LockdownLevel) * mentalHealthLockdown
	mhReduction := float64(s.MentalSupportLevel) * mentalHealthSupport
	mentalHealth := mhBase * (1.0 + mhBoost - mhReduction)

	return models.MetricsResult{
		CovidCasesEst:          round2(cases),
		HospitalAdmissionsEst:  round2(admissions),
		MentalHealthReportsEst: round2(mentalHealth),
		RiskLevel:              ClassifyRisk(cases),
	}, nil
}

// ClassifyRisk buckets a case estimate. Both thresholds are strict.
func ClassifyRisk(cases float64) models.RiskLevel {
	switch {
	case cases > highRiskThreshold:
		return models.RiskHigh
	case cases > mediumRiskThreshold:
		return models.RiskMedium
	default:
		return models.RiskLow
	}
}

// ParseSnapshot converts a loosely typed snapshot, such as a decoded JSON
// object, into a Scenario. Missing or non-numeric fields are validation
// failures; nothing is defaulted.
func ParseSnapshot(raw map[string]any) (models.Scenario, error) {
	var (
		s   models.Scenario
		err error
	)

	if s.Population, err = intField(raw, "population"); err != nil {
		return models.Scenario{}, err
	}
	if s.VaccinationRate, err = floatField(raw, "vaccination_rate"); err != nil {
		return models.Scenario{}, err
	}
	lockdown, err := intField(raw, "lockdown_level")
	if err != nil {
		return models.Scenario{}, err
	}
	support, err := intField(raw, "mental_support_level")
	if err != nil {
		return models.Scenario{}, err
	}
	if s.BaselineCases, err = intField(raw, "baseline_cases"); err != nil {
		return models.Scenario{}, err
	}
	s.LockdownLevel = int(lockdown)
	s.MentalSupportLevel = int(support)

	// Descriptive fields are optional for the engine
	if v, ok := raw["country"].(string); ok {
		s.Country = v
	}
	if v, ok := raw["date"].(string); ok {
		s.Date = v
	}
	if _, ok := raw["scenario_id"]; ok {
		if s.ID, err = intField(raw, "scenario_id"); err != nil {
			return models.Scenario{}, err
		}
	}

	return s, nil
}

func floatField(raw map[string]any, field string) (float64, error) {
	v, ok := raw[field]
	if !ok || v == nil {
		return 0, &models.ValidationError{Field: field, Reason: "is required"}
	}

	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0, &models.ValidationError{Field: field, Reason: "must be numeric"}
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, &models.ValidationError{Field: field, Reason: "must be numeric"}
		}
		f = parsed
	default:
		return 0, &models.ValidationError{Field: field, Reason: fmt.Sprintf("must be numeric, got %T", v)}
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, &models.ValidationError{Field: field, Reason: "must be a finite number"}
	}
	return f, nil
}

func intField(raw map[string]any, field string) (int64, error) {
	f, err := floatField(raw, field)
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) {
		return 0, &models.ValidationError{Field: field, Reason: "must be a whole number"}
	}
	if f > math.MaxInt64 || f < math.MinInt64 {
		return 0, &models.ValidationError{Field: field, Reason: "out of range"}
	}
	return int64(f), nil
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func clampInt(v, lo, hi int) int {
	return max(lo, min(hi, v))
}

// round2 rounds the exact binary value to 2 decimal places, sending exact
// ties to the even digit.
func round2(v float64) float64 {
	r, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', 2, 64), 64)
	if err != nil {
		return v
	}
	return r
}
