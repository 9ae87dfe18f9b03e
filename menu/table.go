// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package menu

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/health-inference/models"
)

const missing = "-"

// writeTable prints the joined view as aligned columns.
func writeTable(w io.Writer, rows []models.JoinedRow) error {
	if len(rows) == 0 {
		_, err := fmt.Fprintln(w, "No scenarios.")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "id\tcountry\tdate\tpopulation\tvacc %\tlockdown\tsupport\tbaseline\tcases\tadmissions\tmental health\trisk\t")
	for _, r := range rows {
		risk := missing
		if r.RiskLevel != nil {
			risk = string(*r.RiskLevel)
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%d\t%d\t%s\t%s\t%s\t%s\t%s\t\n",
			r.ScenarioID,
			r.Country,
			r.Date,
			humanize.Comma(r.Population),
			strconv.FormatFloat(r.VaccinationRate, 'f', -1, 64),
			r.LockdownLevel,
			r.MentalSupportLevel,
			humanize.Comma(r.BaselineCases),
			estimate(r.CovidCasesEst),
			estimate(r.HospitalAdmissionsEst),
			estimate(r.MentalHealthReportsEst),
			risk,
		)
	}
	return tw.Flush()
}

func writeSummary(w io.Writer, s models.Summary) {
	fmt.Fprintf(w, "%s over %s\n", s.Metric, plural(s.Count, "scenario"))
	fmt.Fprintf(w, "  mean: %s\n", estimate(s.Mean))
	fmt.Fprintf(w, "  min:  %s\n", estimate(s.Min))
	fmt.Fprintf(w, "  max:  %s\n", estimate(s.Max))
}

func estimate(v *float64) string {
	if v == nil {
		return missing
	}
	return humanize.CommafWithDigits(*v, 2)
}

func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return humanize.Comma(int64(n)) + " " + noun + "s"
}

func formatBytes(n int64) string {
	if n < 0 {
		n = 0
	}
	return humanize.Bytes(uint64(n))
}
