// Package report renders suite results as JSON and Markdown, writes
// master summaries and keeps a JSON Lines run history.
package report

import (
	"io"

	"digital.vasic.checks/pkg/suite"
)

// Reporter defines the interface for generating suite reports.
type Reporter interface {
	// GenerateReport creates a report for a single suite result.
	GenerateReport(result *suite.Result) ([]byte, error)

	// GenerateMasterSummary creates a summary of all suite
	// results.
	GenerateMasterSummary(results []*suite.Result) ([]byte, error)

	// WriteReport writes a report to the specified writer.
	WriteReport(w io.Writer, result *suite.Result) error
}
