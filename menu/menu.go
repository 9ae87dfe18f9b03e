// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package menu

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/danielhkuo/health-inference/cliparse"
	"github.com/danielhkuo/health-inference/db"
	"github.com/danielhkuo/health-inference/export"
	"github.com/danielhkuo/health-inference/inference"
	"github.com/danielhkuo/health-inference/models"
	"github.com/danielhkuo/health-inference/report"
	"github.com/danielhkuo/health-inference/store"
)

const banner = `
=== Public Health Inference Tool ===
1) Create scenario
2) Update scenario
3) Delete scenario
4) Run inference
5) View data
6) Export CSV
7) Summary statistics
0) Exit`

// errInvalid marks bad user input; the menu reports it and carries on.
var errInvalid = errors.New("invalid input")

type Menu struct {
	scenarios *store.ScenarioStore
	runner    *inference.Runner
	view      *report.View
	exporter  *export.Exporter
}

func New(conn *db.Conn, cfg cliparse.Config, opts ...export.Option) *Menu {
	scenarios := store.NewScenarioStore(conn)
	return &Menu{
		scenarios: scenarios,
		runner:    inference.NewRunner(scenarios, store.NewMetricsStore(conn), nil),
		view:      report.NewView(conn),
		exporter:  export.NewExporter(cfg, opts...),
	}
}

// session holds the streams of one Run call
type session struct {
	in  *bufio.Scanner
	out io.Writer
}

// Run loops over the menu until "0", end of input or ctx is cancelled.
func (m *Menu) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	s := &session{in: bufio.NewScanner(in), out: out}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		fmt.Fprintln(out, banner)
		choice, err := s.ask("Choice")
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		switch choice {
		case "1":
			err = m.create(ctx, s)
		case "2":
			err = m.update(ctx, s)
		case "3":
			err = m.delete(ctx, s)
		case "4":
			err = m.infer(ctx, s)
		case "5":
			err = m.show(ctx, s)
		case "6":
			err = m.export(ctx, s)
		case "7":
			err = m.summary(ctx, s)
		case "0":
			return nil
		default:
			fmt.Fprintln(out, "Invalid.")
			continue
		}

		switch {
		case err == nil:
		case errors.Is(err, io.EOF):
			return nil
		case errors.Is(err, context.Canceled):
			return err
		default:
			fmt.Fprintf(out, "Error: %v\n", err)
		}
	}
}

func (m *Menu) create(ctx context.Context, s *session) error {
	var (
		in  models.NewScenario
		err error
	)
	if in.Country, err = s.ask("Country"); err != nil {
		return err
	}
	if in.Date, err = s.ask("Date (YYYY-MM-DD)"); err != nil {
		return err
	}
	if in.Population, err = s.askInt("Population"); err != nil {
		return err
	}
	if in.VaccinationRate, err = s.askFloat("Vaccination rate (0-100)"); err != nil {
		return err
	}
	lockdown, err := s.askInt("Lockdown level (0-3)")
	if err != nil {
		return err
	}
	support, err := s.askInt("Mental support level (0-3)")
	if err != nil {
		return err
	}
	if in.BaselineCases, err = s.askInt("Baseline cases"); err != nil {
		return err
	}
	in.LockdownLevel = int(lockdown)
	in.MentalSupportLevel = int(support)

	id, err := m.scenarios.Insert(ctx, in)
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "Created scenario id=%d\n", id)
	return nil
}

func (m *Menu) update(ctx context.Context, s *session) error {
	id, err := s.askInt("Scenario ID to update")
	if err != nil {
		return err
	}

	var patch models.ScenarioPatch
	if patch.VaccinationRate, err = optional(s, "New vaccination rate (blank to keep)", parseFloat); err != nil {
		return err
	}
	if patch.LockdownLevel, err = optional(s, "New lockdown level (blank to keep)", strconv.Atoi); err != nil {
		return err
	}
	if patch.MentalSupportLevel, err = optional(s, "New mental support level (blank to keep)", strconv.Atoi); err != nil {
		return err
	}
	if patch.BaselineCases, err = optional(s, "New baseline cases (blank to keep)", parseInt64); err != nil {
		return err
	}

	if _, found, err := m.scenarios.Get(ctx, id); err != nil {
		return err
	} else if !found {
		return &models.NotFoundError{ID: id}
	}

	if err := m.scenarios.Update(ctx, id, patch); err != nil {
		return err
	}
	fmt.Fprintln(s.out, "Updated. (Run inference again to refresh metrics.)")
	return nil
}

func (m *Menu) delete(ctx context.Context, s *session) error {
	id, err := s.askInt("Scenario ID to delete")
	if err != nil {
		return err
	}
	if err := m.scenarios.Delete(ctx, id); err != nil {
		return err
	}
	fmt.Fprintln(s.out, "Deleted.")
	return nil
}

func (m *Menu) infer(ctx context.Context, s *session) error {
	id, err := s.askInt("Scenario ID to infer")
	if err != nil {
		return err
	}
	metricsID, err := m.runner.RunInference(ctx, id)
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "Inference updated metrics id=%d\n", metricsID)
	return nil
}

func (m *Menu) show(ctx context.Context, s *session) error {
	rows, err := m.view.Joined(ctx, models.ViewFilter{})
	if err != nil {
		return err
	}
	return writeTable(s.out, rows)
}

func (m *Menu) export(ctx context.Context, s *session) error {
	dest, err := s.ask(fmt.Sprintf("Export path (blank for %s)", m.exporter.DefaultDestination()))
	if err != nil {
		return err
	}
	rows, err := m.view.Joined(ctx, models.ViewFilter{})
	if err != nil {
		return err
	}
	res, err := m.exporter.Export(ctx, rows, dest)
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "Exported %s to %s (%s).\n", plural(res.Rows, "row"), res.Destination, formatBytes(res.Bytes))
	return nil
}

func (m *Menu) summary(ctx context.Context, s *session) error {
	metric, err := s.ask(fmt.Sprintf("Metric (%s; blank for %s)",
		strings.Join(report.MetricNames(), ", "), models.MetricCovidCases))
	if err != nil {
		return err
	}
	if metric == "" {
		metric = models.MetricCovidCases
	}

	rows, err := m.view.Joined(ctx, models.ViewFilter{})
	if err != nil {
		return err
	}
	writeSummary(s.out, report.Summarize(rows, metric))
	return nil
}

// ask prints a prompt and returns the trimmed answer. It returns io.EOF
// when input ends.
func (s *session) ask(label string) (string, error) {
	fmt.Fprintf(s.out, "%s: ", label)
	if !s.in.Scan() {
		if err := s.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(s.in.Text()), nil
}

func (s *session) askInt(label string) (int64, error) {
	raw, err := s.ask(label)
	if err != nil {
		return 0, err
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a whole number", errInvalid, raw)
	}
	return n, nil
}

func (s *session) askFloat(label string) (float64, error) {
	raw, err := s.ask(label)
	if err != nil {
		return 0, err
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", errInvalid, raw)
	}
	return f, nil
}

// optional asks for a value that may be left blank
func optional[T any](s *session, label string, parse func(string) (T, error)) (models.Optional[T], error) {
	raw, err := s.ask(label)
	if err != nil || raw == "" {
		return models.Optional[T]{}, err
	}
	v, err := parse(raw)
	if err != nil {
		return models.Optional[T]{}, fmt.Errorf("%w: %q is not a number", errInvalid, raw)
	}
	return models.Some(v), nil
}

func parseFloat(raw string) (float64, error) { return strconv.ParseFloat(raw, 64) }
func parseInt64(raw string) (int64, error)   { return strconv.ParseInt(raw, 10, 64) }
