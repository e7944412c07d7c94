package report

import (
	"encoding/json"
	"io"
	"time"

	"digital.vasic.checks/pkg/suite"
)

// Replaced in tests to exercise marshal failures.
var (
	jsonMarshal       = json.Marshal
	jsonMarshalIndent = json.MarshalIndent
)

// JSONReporter generates JSON reports from suite results.
type JSONReporter struct {
	pretty bool
}

// NewJSONReporter creates a new JSON reporter. When pretty is
// true, output is indented for readability.
func NewJSONReporter(pretty bool) *JSONReporter {
	return &JSONReporter{pretty: pretty}
}

// GenerateReport creates a JSON report for a single suite result.
func (r *JSONReporter) GenerateReport(
	result *suite.Result,
) ([]byte, error) {
	return r.marshal(result)
}

// jsonMasterSummary is the JSON structure for a master summary.
type jsonMasterSummary struct {
	GeneratedAt   time.Time       `json:"generated_at"`
	TotalSuites   int             `json:"total_suites"`
	Passed        int             `json:"passed"`
	Failed        int             `json:"failed"`
	TotalChecks   int             `json:"total_checks"`
	TotalFailures int             `json:"total_failures"`
	TotalDuration time.Duration   `json:"total_duration"`
	Results       []*suite.Result `json:"results"`
}

// GenerateMasterSummary creates a JSON summary of all suite
// results. Any status other than passed counts as failed.
func (r *JSONReporter) GenerateMasterSummary(
	results []*suite.Result,
) ([]byte, error) {
	summary := jsonMasterSummary{
		GeneratedAt: time.Now(),
		TotalSuites: len(results),
		Results:     results,
	}

	for _, res := range results {
		if res.Passed() {
			summary.Passed++
		} else {
			summary.Failed++
		}
		summary.TotalChecks += res.Checks
		summary.TotalFailures += res.Failures
		summary.TotalDuration += res.Duration
	}

	return r.marshal(summary)
}

// WriteReport writes a JSON report to the specified writer.
func (r *JSONReporter) WriteReport(
	w io.Writer,
	result *suite.Result,
) error {
	data, err := r.GenerateReport(result)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

func (r *JSONReporter) marshal(v any) ([]byte, error) {
	if r.pretty {
		return jsonMarshalIndent(v, "", "  ")
	}
	return jsonMarshal(v)
}
