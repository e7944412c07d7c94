// Package runner executes suites sequentially, wiring each one to a
// reporter whose diagnostics reach the configured sink, the suite
// result, metrics and monitor events.
package runner

import (
	"context"
	"fmt"
	"time"

	"digital.vasic.checks/pkg/assertion"
	"digital.vasic.checks/pkg/logging"
	"digital.vasic.checks/pkg/metrics"
	"digital.vasic.checks/pkg/monitor"
	"digital.vasic.checks/pkg/registry"
	"digital.vasic.checks/pkg/sink"
	"digital.vasic.checks/pkg/suite"
)

// Runner defines the interface for suite execution.
type Runner interface {
	// Run executes a single suite by ID.
	Run(ctx context.Context, id suite.ID) (*suite.Result, error)

	// RunAll executes every registered suite in ID order.
	RunAll(ctx context.Context) ([]*suite.Result, error)

	// RunSequence executes the given suites in order.
	RunSequence(ctx context.Context, ids []suite.ID) ([]*suite.Result, error)
}

// Hook is a function invoked before or after a suite runs.
type Hook func(ctx context.Context, s suite.Suite) error

// DefaultRunner is the standard Runner implementation. Suites run
// one after another on the caller's goroutine.
type DefaultRunner struct {
	registry  registry.Registry
	logger    logging.Logger
	sink      assertion.Sink
	metrics   metrics.CheckMetrics
	collector *monitor.EventCollector
	preHooks  []Hook
	postHooks []Hook
	now       func() time.Time
}

// NewRunner creates a DefaultRunner with the supplied options.
func NewRunner(opts ...RunnerOption) *DefaultRunner {
	r := &DefaultRunner{
		registry: registry.Default,
		logger:   logging.NullLogger{},
		sink:     assertion.NullSink{},
		metrics:  metrics.NoopMetrics{},
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes a single suite by ID.
func (r *DefaultRunner) Run(
	ctx context.Context,
	id suite.ID,
) (*suite.Result, error) {
	s, err := r.registry.Get(id)
	if err != nil {
		return nil, fmt.Errorf("failed to get suite: %w", err)
	}
	r.metrics.IncrementRunTotal()
	return r.executeSuite(ctx, s), nil
}

// RunAll executes all registered suites in ID order.
func (r *DefaultRunner) RunAll(
	ctx context.Context,
) ([]*suite.Result, error) {
	return r.RunSuites(ctx, r.registry.List()), nil
}

// RunSequence executes suites in the given order. All IDs are
// resolved before any suite runs.
func (r *DefaultRunner) RunSequence(
	ctx context.Context,
	ids []suite.ID,
) ([]*suite.Result, error) {
	suites := make([]suite.Suite, 0, len(ids))
	for _, id := range ids {
		s, err := r.registry.Get(id)
		if err != nil {
			return nil, fmt.Errorf("failed to get suite %s: %w", id, err)
		}
		suites = append(suites, s)
	}
	return r.RunSuites(ctx, suites), nil
}

// RunSelected resolves ids and categories through the registry and
// runs the selection.
func (r *DefaultRunner) RunSelected(
	ctx context.Context,
	ids []suite.ID,
	categories []string,
) ([]*suite.Result, error) {
	suites, err := r.registry.Select(ids, categories)
	if err != nil {
		return nil, fmt.Errorf("failed to select suites: %w", err)
	}
	return r.RunSuites(ctx, suites), nil
}

// RunSuites executes suites in order as a single run. Suites not yet
// started when ctx is done are reported as skipped.
func (r *DefaultRunner) RunSuites(
	ctx context.Context,
	suites []suite.Suite,
) []*suite.Result {
	r.metrics.IncrementRunTotal()
	results := make([]*suite.Result, 0, len(suites))
	for _, s := range suites {
		results = append(results, r.executeSuite(ctx, s))
	}
	return results
}

// executeSuite runs one suite through its lifecycle: pre-hooks,
// body, post-hooks. It always returns a final result.
func (r *DefaultRunner) executeSuite(
	ctx context.Context,
	s suite.Suite,
) *suite.Result {
	result := &suite.Result{
		SuiteID:     s.ID(),
		SuiteName:   s.Name(),
		Category:    s.Category(),
		Status:      suite.StatusRunning,
		StartTime:   r.now(),
		Diagnostics: []assertion.Diagnostic{},
	}
	log := r.logger.WithFields(logging.StringField("suite_id", string(s.ID())))

	if err := ctx.Err(); err != nil {
		result.Status = suite.StatusSkipped
		result.Error = fmt.Sprintf("not started: %v", err)
		r.finish(result)
		log.Info("suite skipped", logging.StringField("reason", result.Error))
		return result
	}

	if r.collector != nil {
		r.collector.EmitStarted(s)
	}
	r.metrics.SetActiveSuites(1)
	defer r.metrics.SetActiveSuites(0)
	log.Info("suite started", logging.StringField("name", s.Name()))

	for _, hook := range r.preHooks {
		if err := hook(ctx, s); err != nil {
			result.Status = suite.StatusError
			result.Error = fmt.Sprintf("pre-hook failed: %v", err)
			r.finish(result)
			log.Error("suite error", logging.StringField("error", result.Error))
			return result
		}
	}

	recorder := assertion.NewRecorder()
	reporter := assertion.New(
		r.suiteSink(recorder),
		assertion.WithSuite(string(s.ID())),
		assertion.WithOutcomeHook(func(o assertion.Outcome) {
			result.Checks++
			if !o.Passed {
				result.Failures++
			}
			r.metrics.RecordCheck(string(s.ID()), string(o.Op), o.Passed)
		}),
	)

	if msg, crashed := runBody(s, reporter); crashed {
		result.Status = suite.StatusError
		result.Error = msg
	} else if result.Failures > 0 {
		result.Status = suite.StatusFailed
	} else {
		result.Status = suite.StatusPassed
	}
	result.Diagnostics = recorder.Diagnostics()

	for _, hook := range r.postHooks {
		if err := hook(ctx, s); err != nil {
			log.Warn("post-hook failed", logging.ErrorField(err))
		}
	}

	r.finish(result)
	log.Info("suite finished",
		logging.StringField("status", result.Status),
		logging.IntField("checks", result.Checks),
		logging.IntField("failures", result.Failures),
		logging.Float64Field("duration_seconds", result.Duration.Seconds()),
	)
	return result
}

// suiteSink fans diagnostics out to the configured sink, the
// per-suite recorder and the monitor.
func (r *DefaultRunner) suiteSink(recorder *assertion.Recorder) assertion.Sink {
	sinks := []assertion.Sink{r.sink, recorder}
	if r.collector != nil {
		sinks = append(sinks, monitor.NewSink(r.collector))
	}
	return sink.NewMultiSink(sinks...)
}

func (r *DefaultRunner) finish(result *suite.Result) {
	result.EndTime = r.now()
	result.Duration = result.EndTime.Sub(result.StartTime)
	r.metrics.RecordSuite(string(result.SuiteID), result.Status, result.Duration)
	if r.collector != nil {
		r.collector.EmitResult(result)
	}
}

// runBody runs the suite and recovers a panic raised outside of a
// CheckFails operation.
func runBody(s suite.Suite, reporter *assertion.Reporter) (msg string, crashed bool) {
	defer func() {
		if v := recover(); v != nil {
			msg = fmt.Sprintf("suite panicked: %v", v)
			crashed = true
		}
	}()
	s.Run(reporter)
	return "", false
}
