package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"digital.vasic.checks/pkg/config"
	"digital.vasic.checks/pkg/logging"
	"digital.vasic.checks/pkg/metrics"
	"digital.vasic.checks/pkg/monitor"
	"digital.vasic.checks/pkg/report"
	"digital.vasic.checks/pkg/runner"
	"digital.vasic.checks/pkg/suite"
)

// errSuitesFailed is returned when at least one suite did not pass.
var errSuitesFailed = errors.New("one or more suites did not pass")

func newRunCmd(a *app) *cobra.Command {
	var (
		categories []string
		reportDir  string
		withMon    bool
	)

	cmd := &cobra.Command{
		Use:   "run [suite-id...]",
		Short: "Run suites and write reports",
		Long: `Runs the given suites in order, or every selected suite when no IDs are
given. Exits non-zero when any suite fails, errors or is skipped. With
monitor.enabled (or --monitor) the live monitor serves the run and
stops when it ends.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			defer a.close()

			if cmd.Flags().Changed("category") {
				a.cfg.Suites.Categories = categories
			}
			if cmd.Flags().Changed("report-dir") {
				a.cfg.Report.Dir = reportDir
			}
			if cmd.Flags().Changed("monitor") {
				a.cfg.Monitor.Enabled = withMon
			}

			summary, err := a.run(cmd.Context(), args)
			if err != nil {
				return err
			}
			printSummary(cmd.OutOrStdout(), summary)
			if !summary.AllPassed() {
				return errSuitesFailed
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&categories, "category", nil, "Only run suites in these categories")
	cmd.Flags().StringVar(&reportDir, "report-dir", "", "Report output directory (empty disables reports)")
	cmd.Flags().BoolVar(&withMon, "monitor", false, "Serve the live monitor while suites run")
	return cmd
}

// run executes one run, served by the live monitor when it is
// enabled in the configuration.
func (a *app) run(ctx context.Context, args []string) (*report.MasterSummary, error) {
	runID := monitor.NewRunID()
	if !a.cfg.Monitor.Enabled {
		return a.runOnce(ctx, runID, args, nil, nil)
	}

	mon, err := a.startMonitor(ctx, runID)
	if err != nil {
		return nil, err
	}
	summary, err := a.runOnce(ctx, runID, args, mon.collector, mon.metrics)
	if err == nil {
		mon.finish(summary)
	}
	if stopErr := mon.stop(); stopErr != nil && err == nil {
		return nil, stopErr
	}
	return summary, err
}

// runOnce runs one selection of suites under runID and writes the
// configured reports. A non-nil collector receives lifecycle events.
func (a *app) runOnce(
	ctx context.Context,
	runID string,
	args []string,
	collector *monitor.EventCollector,
	m *metrics.MemoryMetrics,
) (*report.MasterSummary, error) {
	diagSink, closer, err := a.cfg.BuildSink(a.logger)
	if err != nil {
		return nil, err
	}
	defer func() { _ = closer.Close() }()

	if m == nil {
		m = metrics.NewMemoryMetrics()
	}
	log := a.logger.WithFields(logging.StringField("run_id", runID))

	r := runner.NewRunner(
		runner.WithRegistry(a.registry),
		runner.WithLogger(log),
		runner.WithSink(diagSink),
		runner.WithMetrics(m),
		runner.WithCollector(collector),
	)

	ids := make([]suite.ID, 0, len(args))
	for _, arg := range args {
		ids = append(ids, suite.ID(arg))
	}
	if len(ids) == 0 {
		for _, id := range a.cfg.Suites.Include {
			ids = append(ids, suite.ID(id))
		}
	}

	results, err := r.RunSelected(ctx, ids, a.cfg.Suites.Categories)
	if err != nil {
		return nil, err
	}

	summary := report.BuildMasterSummary(results)
	summary.RunID = runID
	if err := writeReports(a.cfg.Report, summary, results); err != nil {
		return nil, err
	}

	log.Info("run finished",
		logging.IntField("suites", summary.TotalSuites),
		logging.IntField("passed", summary.PassedSuites),
		logging.IntField("checks", summary.TotalChecks),
		logging.IntField("failed_checks", summary.FailedChecks),
	)
	return summary, nil
}

// writeReports writes per-suite reports under <dir>/<run-id>, the
// master summary under dir, and appends to the history file.
func writeReports(
	cfg config.ReportConfig,
	summary *report.MasterSummary,
	results []*suite.Result,
) error {
	if cfg.Dir != "" {
		reporters := make(map[string]report.Reporter, len(cfg.Formats))
		for _, f := range cfg.Formats {
			switch f {
			case config.ReportJSON:
				reporters["json"] = report.NewJSONReporter(cfg.Pretty)
			case config.ReportMarkdown:
				reporters["md"] = report.NewMarkdownReporter()
			}
		}
		runDir := filepath.Join(cfg.Dir, summary.RunID)
		if err := report.SaveSuiteReports(results, runDir, reporters); err != nil {
			return err
		}
		if err := report.SaveMasterSummary(summary, cfg.Dir); err != nil {
			return err
		}
	}

	if cfg.History != "" {
		for _, res := range results {
			if err := report.AppendToHistory(cfg.History, res); err != nil {
				return err
			}
		}
	}
	return nil
}

func printSummary(w io.Writer, summary *report.MasterSummary) {
	for _, s := range summary.Suites {
		fmt.Fprintf(w, "%-8s %s (%d/%d checks, %v)\n",
			strings.ToUpper(s.Status), s.SuiteID,
			s.ChecksPassed, s.ChecksTotal, s.Duration)
	}
	fmt.Fprintf(w, "%d/%d suites passed\n", summary.PassedSuites, summary.TotalSuites)
}
