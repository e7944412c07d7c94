package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"digital.vasic.checks/pkg/suite"
)

func TestBuildMasterSummary_Basic(t *testing.T) {
	summary := BuildMasterSummary(makeTestResults())

	assert.True(t, strings.HasPrefix(summary.ID, "summary_"))
	assert.Equal(t, 4, summary.TotalSuites)
	assert.Equal(t, 1, summary.PassedSuites)
	assert.Equal(t, 1, summary.FailedSuites)
	assert.Equal(t, 1, summary.ErroredSuites)
	assert.Equal(t, 1, summary.SkippedSuites)
	assert.Equal(t, 7, summary.TotalChecks)
	assert.Equal(t, 2, summary.FailedChecks)
	assert.InDelta(t, 0.25, summary.PassRate, 1e-9)
	assert.False(t, summary.AllPassed())

	require.Len(t, summary.Suites, 4)
	assert.Equal(t, 1, summary.Suites[1].ChecksPassed)
	assert.Equal(t, 3, summary.Suites[1].ChecksTotal)
	assert.Equal(t, "suite panicked: boom", summary.Suites[2].Error)
}

func TestBuildMasterSummary_Empty(t *testing.T) {
	summary := BuildMasterSummary(nil)
	assert.Equal(t, 0, summary.TotalSuites)
	assert.Equal(t, float64(0), summary.PassRate)
	assert.True(t, summary.AllPassed())
	assert.NotNil(t, summary.Suites)
}

func TestSaveMasterSummary(t *testing.T) {
	dir := t.TempDir()
	summary := BuildMasterSummary(makeTestResults())
	summary.RunID = "run-1"

	require.NoError(t, SaveMasterSummary(summary, dir))

	data, err := os.ReadFile(filepath.Join(dir, "latest_summary.json"))
	require.NoError(t, err)
	var decoded MasterSummary
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "run-1", decoded.RunID)
	assert.Equal(t, 4, decoded.TotalSuites)

	md, err := os.ReadFile(filepath.Join(dir, "latest_summary.md"))
	require.NoError(t, err)
	assert.Contains(t, string(md), "**Run ID:** run-1")

	// Saving again replaces the symlinks.
	require.NoError(t, SaveMasterSummary(summary, dir))
}

func TestSaveMasterSummary_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	require.NoError(t, SaveMasterSummary(BuildMasterSummary(nil), dir))
	_, err := os.Stat(dir)
	assert.NoError(t, err)
}

func TestSaveMasterSummary_MarshalError(t *testing.T) {
	original := jsonMarshalIndent
	t.Cleanup(func() { jsonMarshalIndent = original })
	jsonMarshalIndent = func(any, string, string) ([]byte, error) {
		return nil, assert.AnError
	}

	err := SaveMasterSummary(BuildMasterSummary(nil), t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "marshal summary")
}

func TestSaveMasterSummary_DirIsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(path, nil, 0644))

	err := SaveMasterSummary(BuildMasterSummary(nil), path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "create output directory")
}

func TestSaveSuiteReports(t *testing.T) {
	dir := t.TempDir()
	err := SaveSuiteReports(makeTestResults()[:2], dir, map[string]Reporter{
		"json": NewJSONReporter(true),
		"md":   NewMarkdownReporter(),
	})
	require.NoError(t, err)

	for _, name := range []string{"reporter.json", "reporter.md", "kinds.json", "kinds.md"} {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, err, name)
	}

	data, err := os.ReadFile(filepath.Join(dir, "kinds.json"))
	require.NoError(t, err)
	var decoded suite.Result
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, suite.StatusFailed, decoded.Status)
}
