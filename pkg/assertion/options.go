package assertion

import "time"

// Option configures a Reporter.
type Option func(*Reporter)

// WithSuite stamps every diagnostic with the given suite ID.
func WithSuite(id string) Option {
	return func(r *Reporter) {
		r.suite = id
	}
}

// WithOutcomeHook registers a function observing every check,
// passed or failed. The runner uses it for counting and metrics.
func WithOutcomeHook(h func(Outcome)) Option {
	return func(r *Reporter) {
		r.hooks = append(r.hooks, h)
	}
}

// WithCallerSkip adds extra stack frames to skip when resolving the
// call site, for helpers that wrap Check or CheckFails.
func WithCallerSkip(n int) Option {
	return func(r *Reporter) {
		r.callerSkip += n
	}
}

// WithClock overrides the time source used for Diagnostic.Time.
func WithClock(now func() time.Time) Option {
	return func(r *Reporter) {
		r.now = now
	}
}
