// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/danielhkuo/health-inference/models"
)

// Header is the column order of every export. It matches the joined view.
var Header = []string{
	"scenario_id",
	"country",
	"date",
	"population",
	"vaccination_rate",
	"lockdown_level",
	"mental_support_level",
	"baseline_cases",
	models.MetricCovidCases,
	models.MetricHospitalAdmissions,
	models.MetricMentalHealth,
	"risk_level",
}

// WriteCSV writes the header followed by one record per row. Metrics
// that have not been inferred are written as empty cells.
func WriteCSV(w io.Writer, rows []models.JoinedRow) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, r := range rows {
		if err := cw.Write(record(r)); err != nil {
			return fmt.Errorf("failed to write scenario %d: %w", r.ScenarioID, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func record(r models.JoinedRow) []string {
	risk := ""
	if r.RiskLevel != nil {
		risk = string(*r.RiskLevel)
	}
	return []string{
		strconv.FormatInt(r.ScenarioID, 10),
		r.Country,
		r.Date,
		strconv.FormatInt(r.Population, 10),
		formatFloat(r.VaccinationRate),
		strconv.Itoa(r.LockdownLevel),
		strconv.Itoa(r.MentalSupportLevel),
		strconv.FormatInt(r.BaselineCases, 10),
		optionalFloat(r.CovidCasesEst),
		optionalFloat(r.HospitalAdmissionsEst),
		optionalFloat(r.MentalHealthReportsEst),
		risk,
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func optionalFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return formatFloat(*v)
}
