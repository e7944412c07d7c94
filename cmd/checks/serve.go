package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"digital.vasic.checks/pkg/logging"
	"digital.vasic.checks/pkg/metrics"
	"digital.vasic.checks/pkg/monitor"
	"digital.vasic.checks/pkg/report"
)

const shutdownTimeout = 5 * time.Second

func newServeCmd(a *app) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve [suite-id...]",
		Short: "Start the live monitor, run suites and keep serving",
		Long: `Starts the monitor server (WebSocket /ws, SSE /events, /dashboard,
/metrics, /health), runs the selected suites once and keeps serving the
results until interrupted.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			defer a.close()

			if cmd.Flags().Changed("addr") {
				a.cfg.Monitor.Addr = addr
			}
			return a.serve(cmd.Context(), args)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Monitor listen address")
	return cmd
}

func (a *app) serve(ctx context.Context, args []string) error {
	runID := monitor.NewRunID()
	mon, err := a.startMonitor(ctx, runID)
	if err != nil {
		return err
	}

	summary, err := a.runOnce(ctx, runID, args, mon.collector, mon.metrics)
	if err != nil {
		_ = mon.stop()
		return err
	}
	mon.finish(summary)
	a.logger.Info("suites finished, serving until interrupted",
		logging.IntField("passed", summary.PassedSuites),
		logging.IntField("total", summary.TotalSuites),
	)

	select {
	case <-mon.done:
		mon.cancel()
		return mon.err
	case <-ctx.Done():
	}
	return mon.stop()
}

// liveMonitor is a monitor server serving one run.
type liveMonitor struct {
	srv       *monitor.Server
	collector *monitor.EventCollector
	dashboard *monitor.DashboardData
	metrics   *metrics.MemoryMetrics
	logger    logging.Logger

	cancel context.CancelFunc
	done   chan struct{}
	err    error
}

// startMonitor binds the configured address and serves in the
// background until ctx is done or stop is called.
func (a *app) startMonitor(ctx context.Context, runID string) (*liveMonitor, error) {
	m := &liveMonitor{
		collector: monitor.NewEventCollector(),
		dashboard: monitor.NewDashboardData(runID),
		metrics:   metrics.NewMemoryMetrics(),
		logger:    a.logger,
		done:      make(chan struct{}),
	}
	m.srv = monitor.NewServer(a.cfg.Monitor.Addr, m.collector, m.dashboard, m.metrics)
	if err := m.srv.Listen(); err != nil {
		return nil, err
	}

	ctx, m.cancel = context.WithCancel(ctx)
	go func() {
		m.err = m.srv.Start(ctx)
		close(m.done)
	}()

	a.logger.Info("monitor started",
		logging.StringField("addr", m.srv.Addr()),
		logging.StringField("run_id", runID),
	)
	return m, nil
}

// finish records the run outcome on the dashboard.
func (m *liveMonitor) finish(summary *report.MasterSummary) {
	if summary.AllPassed() {
		m.dashboard.SetStatus(monitor.RunCompleted)
	} else {
		m.dashboard.SetStatus(monitor.RunFailed)
	}
}

// stop shuts the server down and waits for it to return.
func (m *liveMonitor) stop() error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	err := m.srv.Stop(shutdownCtx)
	m.cancel()
	<-m.done
	if err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("failed to stop monitor: %w", err)
	}
	m.logger.Info("monitor stopped")
	return m.err
}
