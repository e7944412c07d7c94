package report

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"digital.vasic.checks/pkg/suite"
)

// HistoricalEntry represents a single suite run in the historical
// log.
type HistoricalEntry struct {
	Timestamp   time.Time `json:"timestamp"`
	SuiteID     string    `json:"suite_id"`
	Status      string    `json:"status"`
	Duration    string    `json:"duration"`
	ChecksTotal int       `json:"checks_total"`
	Failures    int       `json:"failures"`
	Error       string    `json:"error,omitempty"`
}

// AppendToHistory adds an entry to the historical log stored at
// historyPath. Each entry is a single JSON line.
func AppendToHistory(historyPath string, result *suite.Result) error {
	entry := HistoricalEntry{
		Timestamp:   result.EndTime,
		SuiteID:     string(result.SuiteID),
		Status:      result.Status,
		Duration:    result.Duration.String(),
		ChecksTotal: result.Checks,
		Failures:    result.Failures,
		Error:       result.Error,
	}

	data, err := jsonMarshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal history entry: %w", err)
	}

	if dir := filepath.Dir(historyPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create history directory: %w", err)
		}
	}

	file, err := os.OpenFile(
		historyPath,
		os.O_CREATE|os.O_APPEND|os.O_WRONLY,
		0644,
	)
	if err != nil {
		return fmt.Errorf("failed to open history file: %w", err)
	}
	defer func() { _ = file.Close() }()

	_, err = fmt.Fprintln(file, string(data))
	return err
}
