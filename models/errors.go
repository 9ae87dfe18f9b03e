// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation failed")
)

// NotFoundError reports a scenario id that does not exist.
type NotFoundError struct {
	ID int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("scenario %d not found", e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// ValidationError reports a missing or malformed field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// Validate checks that every field is present and returns the insert input.
func (r CreateScenarioRequest) Validate() (NewScenario, error) {
	missing := func(field string) error {
		return &ValidationError{Field: field, Reason: "is required"}
	}
	switch {
	case r.Country == nil:
		return NewScenario{}, missing("country")
	case r.Date == nil:
		return NewScenario{}, missing("date")
	case r.Population == nil:
		return NewScenario{}, missing("population")
	case r.VaccinationRate == nil:
		return NewScenario{}, missing("vaccination_rate")
	case r.LockdownLevel == nil:
		return NewScenario{}, missing("lockdown_level")
	case r.MentalSupportLevel == nil:
		return NewScenario{}, missing("mental_support_level")
	case r.BaselineCases == nil:
		return NewScenario{}, missing("baseline_cases")
	}

	ns := NewScenario{
		Country:            *r.Country,
		Date:               *r.Date,
		Population:         *r.Population,
		VaccinationRate:    *r.VaccinationRate,
		LockdownLevel:      *r.LockdownLevel,
		MentalSupportLevel: *r.MentalSupportLevel,
		BaselineCases:      *r.BaselineCases,
	}
	return ns, ns.Validate()
}

// Validate checks presence of the text fields. Numeric ranges are left to
// the clamps in the inference formulas.
func (n NewScenario) Validate() error {
	if strings.TrimSpace(n.Country) == "" {
		return &ValidationError{Field: "country", Reason: "must not be blank"}
	}
	if strings.TrimSpace(n.Date) == "" {
		return &ValidationError{Field: "date", Reason: "must not be blank"}
	}
	return nil
}

// Validate rejects blank text fields that are explicitly set.
func (p ScenarioPatch) Validate() error {
	if p.Country.Set && strings.TrimSpace(p.Country.Value) == "" {
		return &ValidationError{Field: "country", Reason: "must not be blank"}
	}
	if p.Date.Set && strings.TrimSpace(p.Date.Value) == "" {
		return &ValidationError{Field: "date", Reason: "must not be blank"}
	}
	return nil
}
