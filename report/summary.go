// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package report

import "github.com/danielhkuo/health-inference/models"

// MetricNames lists the columns Summarize accepts.
func MetricNames() []string {
	return []string{
		models.MetricCovidCases,
		models.MetricHospitalAdmissions,
		models.MetricMentalHealth,
	}
}

// Summarize computes count, mean, min and max of one metric column over
// rows, skipping rows without metrics. An unknown metric or a column with
// no values yields a zero count and nil statistics.
func Summarize(rows []models.JoinedRow, metric string) models.Summary {
	out := models.Summary{Metric: metric}

	pick := column(metric)
	if pick == nil {
		return out
	}

	var sum, lo, hi float64
	for _, r := range rows {
		v := pick(r)
		if v == nil {
			continue
		}
		if out.Count == 0 || *v < lo {
			lo = *v
		}
		if out.Count == 0 || *v > hi {
			hi = *v
		}
		sum += *v
		out.Count++
	}

	if out.Count == 0 {
		return out
	}

	mean := sum / float64(out.Count)
	out.Mean = &mean
	out.Min = &lo
	out.Max = &hi
	return out
}

func column(metric string) func(models.JoinedRow) *float64 {
	switch metric {
	case models.MetricCovidCases:
		return func(r models.JoinedRow) *float64 { return r.CovidCasesEst }
	case models.MetricHospitalAdmissions:
		return func(r models.JoinedRow) *float64 { return r.HospitalAdmissionsEst }
	case models.MetricMentalHealth:
		return func(r models.JoinedRow) *float64 { return r.MentalHealthReportsEst }
	default:
		return nil
	}
}
