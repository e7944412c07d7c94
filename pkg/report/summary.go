package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"digital.vasic.checks/pkg/suite"
)

// MasterSummary represents an aggregated summary of a run.
type MasterSummary struct {
	ID            string         `json:"id"`
	RunID         string         `json:"run_id,omitempty"`
	GeneratedAt   time.Time      `json:"generated_at"`
	Suites        []SuiteSummary `json:"suites"`
	TotalSuites   int            `json:"total_suites"`
	PassedSuites  int            `json:"passed_suites"`
	FailedSuites  int            `json:"failed_suites"`
	ErroredSuites int            `json:"errored_suites"`
	SkippedSuites int            `json:"skipped_suites"`
	TotalChecks   int            `json:"total_checks"`
	FailedChecks  int            `json:"failed_checks"`
	TotalDuration time.Duration  `json:"total_duration"`
	PassRate      float64        `json:"pass_rate"`
}

// SuiteSummary represents a summary of a single suite.
type SuiteSummary struct {
	SuiteID      suite.ID      `json:"suite_id"`
	SuiteName    string        `json:"suite_name"`
	Category     string        `json:"category,omitempty"`
	Status       string        `json:"status"`
	Duration     time.Duration `json:"duration"`
	ChecksPassed int           `json:"checks_passed"`
	ChecksTotal  int           `json:"checks_total"`
	Error        string        `json:"error,omitempty"`
}

// BuildMasterSummary creates a master summary from suite results.
func BuildMasterSummary(results []*suite.Result) *MasterSummary {
	now := time.Now()
	summary := &MasterSummary{
		ID:          fmt.Sprintf("summary_%s", now.Format("20060102_150405")),
		GeneratedAt: now,
		Suites:      make([]SuiteSummary, 0, len(results)),
	}

	for _, r := range results {
		summary.Suites = append(summary.Suites, SuiteSummary{
			SuiteID:      r.SuiteID,
			SuiteName:    r.SuiteName,
			Category:     r.Category,
			Status:       r.Status,
			Duration:     r.Duration,
			ChecksPassed: r.PassedChecks(),
			ChecksTotal:  r.Checks,
			Error:        r.Error,
		})
		summary.TotalSuites++
		summary.TotalChecks += r.Checks
		summary.FailedChecks += r.Failures
		summary.TotalDuration += r.Duration

		switch r.Status {
		case suite.StatusPassed:
			summary.PassedSuites++
		case suite.StatusSkipped:
			summary.SkippedSuites++
		case suite.StatusError:
			summary.ErroredSuites++
		default:
			summary.FailedSuites++
		}
	}

	if summary.TotalSuites > 0 {
		summary.PassRate =
			float64(summary.PassedSuites) / float64(summary.TotalSuites)
	}

	return summary
}

// AllPassed reports whether every suite in the summary passed.
func (s *MasterSummary) AllPassed() bool {
	return s.PassedSuites == s.TotalSuites
}

// SaveMasterSummary saves the master summary to both JSON and
// Markdown files in the given output directory and points the
// latest_summary.* symlinks at them.
func SaveMasterSummary(summary *MasterSummary, outputDir string) error {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	ts := summary.GeneratedAt.Format("20060102_150405")

	jsonPath := filepath.Join(outputDir, fmt.Sprintf("master_summary_%s.json", ts))
	jsonData, err := jsonMarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal summary: %w", err)
	}
	if err := os.WriteFile(jsonPath, jsonData, 0644); err != nil {
		return fmt.Errorf("failed to write JSON summary: %w", err)
	}

	mdPath := filepath.Join(outputDir, fmt.Sprintf("master_summary_%s.md", ts))
	mdContent := generateSummaryMarkdown(summary)
	if err := os.WriteFile(mdPath, []byte(mdContent), 0644); err != nil {
		return fmt.Errorf("failed to write Markdown summary: %w", err)
	}

	latestJSON := filepath.Join(outputDir, "latest_summary.json")
	latestMD := filepath.Join(outputDir, "latest_summary.md")

	_ = os.Remove(latestJSON)
	_ = os.Remove(latestMD)
	_ = os.Symlink(filepath.Base(jsonPath), latestJSON)
	_ = os.Symlink(filepath.Base(mdPath), latestMD)

	return nil
}

// SaveSuiteReports writes one file per result and reporter into
// outputDir, named <suite-id>.<ext>.
func SaveSuiteReports(
	results []*suite.Result,
	outputDir string,
	reporters map[string]Reporter,
) error {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	for ext, rpt := range reporters {
		for _, res := range results {
			data, err := rpt.GenerateReport(res)
			if err != nil {
				return fmt.Errorf(
					"failed to generate %s report for %s: %w",
					ext, res.SuiteID, err,
				)
			}
			path := filepath.Join(outputDir, string(res.SuiteID)+"."+ext)
			if err := os.WriteFile(path, data, 0644); err != nil {
				return fmt.Errorf("failed to write %s: %w", path, err)
			}
		}
	}
	return nil
}

// generateSummaryMarkdown creates markdown from a master summary.
func generateSummaryMarkdown(summary *MasterSummary) string {
	var sb strings.Builder

	sb.WriteString("# Checks - Master Summary\n\n")
	fmt.Fprintf(&sb, "**Summary ID:** %s\n\n", summary.ID)
	if summary.RunID != "" {
		fmt.Fprintf(&sb, "**Run ID:** %s\n\n", summary.RunID)
	}
	fmt.Fprintf(&sb, "**Generated:** %s\n\n",
		summary.GeneratedAt.Format(time.RFC3339))

	sb.WriteString("## Overview\n\n")
	sb.WriteString("| Suite | Status | Duration | Checks |\n")
	sb.WriteString("|-------|--------|----------|--------|\n")

	for _, s := range summary.Suites {
		name := s.SuiteName
		if name == "" {
			name = string(s.SuiteID)
		}
		fmt.Fprintf(&sb, "| %s | %s | %v | %d/%d |\n",
			escapeCell(name), strings.ToUpper(s.Status),
			s.Duration, s.ChecksPassed, s.ChecksTotal)
	}

	sb.WriteString("\n## Statistics\n\n")
	sb.WriteString("| Metric | Value |\n")
	sb.WriteString("|--------|-------|\n")
	fmt.Fprintf(&sb, "| Total Suites | %d |\n", summary.TotalSuites)
	fmt.Fprintf(&sb, "| Passed | %d |\n", summary.PassedSuites)
	fmt.Fprintf(&sb, "| Failed | %d |\n", summary.FailedSuites)
	fmt.Fprintf(&sb, "| Errored | %d |\n", summary.ErroredSuites)
	fmt.Fprintf(&sb, "| Skipped | %d |\n", summary.SkippedSuites)
	fmt.Fprintf(&sb, "| Checks | %d/%d |\n",
		summary.TotalChecks-summary.FailedChecks, summary.TotalChecks)
	fmt.Fprintf(&sb, "| Pass Rate | %.0f%% |\n", summary.PassRate*100)
	fmt.Fprintf(&sb, "| Total Duration | %v |\n", summary.TotalDuration)

	sb.WriteString("\n---\n\n")
	sb.WriteString("*Generated by checks*\n")

	return sb.String()
}
