package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"digital.vasic.checks/pkg/assertion"
	"digital.vasic.checks/pkg/suite"
)

// MarkdownReporter generates Markdown reports from suite results.
type MarkdownReporter struct{}

// NewMarkdownReporter creates a new Markdown reporter.
func NewMarkdownReporter() *MarkdownReporter {
	return &MarkdownReporter{}
}

// GenerateReport creates a Markdown report for a single suite
// result.
func (r *MarkdownReporter) GenerateReport(
	result *suite.Result,
) ([]byte, error) {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# %s\n\n", displayName(result))
	fmt.Fprintf(&sb, "**Suite ID:** %s\n\n", result.SuiteID)
	if result.Category != "" {
		fmt.Fprintf(&sb, "**Category:** %s\n\n", result.Category)
	}
	fmt.Fprintf(&sb, "**Status:** %s\n\n", strings.ToUpper(result.Status))
	fmt.Fprintf(&sb, "**Started:** %s\n\n", result.StartTime.Format(time.RFC3339))
	fmt.Fprintf(&sb, "**Duration:** %v\n\n", result.Duration)
	fmt.Fprintf(&sb, "**Checks:** %d/%d passed\n\n",
		result.PassedChecks(), result.Checks)

	if result.Error != "" {
		sb.WriteString("## Error\n\n")
		fmt.Fprintf(&sb, "```\n%s\n```\n\n", result.Error)
	}

	if len(result.Diagnostics) > 0 {
		sb.WriteString("## Diagnostics\n\n")
		sb.WriteString("| # | Op | Message | Location |\n")
		sb.WriteString("|---|----|---------|----------|\n")
		for i, d := range result.Diagnostics {
			fmt.Fprintf(&sb, "| %d | %s | %s | %s |\n",
				i+1, d.Op, escapeCell(d.Message), locationCell(d))
		}
		sb.WriteString("\n")
	}

	return []byte(sb.String()), nil
}

// GenerateMasterSummary creates a Markdown summary of all suite
// results.
func (r *MarkdownReporter) GenerateMasterSummary(
	results []*suite.Result,
) ([]byte, error) {
	return []byte(generateSummaryMarkdown(BuildMasterSummary(results))), nil
}

// WriteReport writes a Markdown report to the specified writer.
func (r *MarkdownReporter) WriteReport(
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

func displayName(result *suite.Result) string {
	if result.SuiteName != "" {
		return result.SuiteName
	}
	return string(result.SuiteID)
}

func locationCell(d assertion.Diagnostic) string {
	if d.Location == "" {
		return "-"
	}
	return "`" + d.Location + "`"
}

// escapeCell keeps a value inside a single Markdown table cell.
func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}
