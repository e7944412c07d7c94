package assertion

import "sync"

// Sink receives diagnostics for failed checks.
type Sink interface {
	// Report accepts one diagnostic. Implementations must not
	// panic; the reporter has no way to surface sink failures.
	Report(d Diagnostic)
}

// SinkFunc adapts an ordinary function to a Sink.
type SinkFunc func(d Diagnostic)

// Report calls f(d).
func (f SinkFunc) Report(d Diagnostic) { f(d) }

// NullSink discards every diagnostic.
type NullSink struct{}

// Report is a no-op.
func (NullSink) Report(_ Diagnostic) {}

// Recorder captures diagnostics in memory. It is safe for concurrent
// use and is the sink tests and the runner use to inspect failures.
type Recorder struct {
	mu          sync.Mutex
	diagnostics []Diagnostic
}

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Report appends d.
func (r *Recorder) Report(d Diagnostic) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.diagnostics = append(r.diagnostics, d)
}

// Diagnostics returns a copy of everything recorded so far.
func (r *Recorder) Diagnostics() []Diagnostic {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Diagnostic, len(r.diagnostics))
	copy(out, r.diagnostics)
	return out
}

// Len returns the number of recorded diagnostics.
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.diagnostics)
}

// Reset discards all recorded diagnostics.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.diagnostics = nil
}
