package runner

import (
	"time"

	"digital.vasic.checks/pkg/assertion"
	"digital.vasic.checks/pkg/logging"
	"digital.vasic.checks/pkg/metrics"
	"digital.vasic.checks/pkg/monitor"
	"digital.vasic.checks/pkg/registry"
)

// RunnerOption configures a DefaultRunner.
type RunnerOption func(*DefaultRunner)

// WithRegistry sets the suite registry used by the runner.
func WithRegistry(reg registry.Registry) RunnerOption {
	return func(r *DefaultRunner) {
		r.registry = reg
	}
}

// WithLogger sets the logger used by the runner.
func WithLogger(logger logging.Logger) RunnerOption {
	return func(r *DefaultRunner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithSink sets where diagnostics are reported besides the suite
// result.
func WithSink(s assertion.Sink) RunnerOption {
	return func(r *DefaultRunner) {
		if s != nil {
			r.sink = s
		}
	}
}

// WithMetrics sets the metrics recorder.
func WithMetrics(m metrics.CheckMetrics) RunnerOption {
	return func(r *DefaultRunner) {
		if m != nil {
			r.metrics = m
		}
	}
}

// WithCollector routes lifecycle and diagnostic events to c.
func WithCollector(c *monitor.EventCollector) RunnerOption {
	return func(r *DefaultRunner) {
		r.collector = c
	}
}

// WithPreHook adds a pre-execution hook to the runner.
func WithPreHook(h Hook) RunnerOption {
	return func(r *DefaultRunner) {
		r.preHooks = append(r.preHooks, h)
	}
}

// WithPostHook adds a post-execution hook to the runner.
func WithPostHook(h Hook) RunnerOption {
	return func(r *DefaultRunner) {
		r.postHooks = append(r.postHooks, h)
	}
}

// WithClock overrides the time source for result timestamps.
func WithClock(now func() time.Time) RunnerOption {
	return func(r *DefaultRunner) {
		r.now = now
	}
}
