package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkdownReporter_GenerateReport_Passed(t *testing.T) {
	data, err := NewMarkdownReporter().GenerateReport(makeTestResult())
	require.NoError(t, err)

	md := string(data)
	assert.Contains(t, md, "# Reporter self-check")
	assert.Contains(t, md, "**Status:** PASSED")
	assert.Contains(t, md, "**Checks:** 4/4 passed")
	assert.NotContains(t, md, "## Diagnostics")
	assert.NotContains(t, md, "## Error")
}

func TestMarkdownReporter_GenerateReport_Diagnostics(t *testing.T) {
	data, err := NewMarkdownReporter().GenerateReport(makeFailedResult())
	require.NoError(t, err)

	md := string(data)
	assert.Contains(t, md, "**Status:** FAILED")
	assert.Contains(t, md, "**Checks:** 1/3 passed")
	assert.Contains(t, md, "## Diagnostics")
	assert.Contains(t, md, "| 1 | check | value \\| pipe | `kinds.go:12` |")
	assert.Contains(t, md,
		"| 2 | check_fails | expected error was RangeError, but got no error | - |")
}

func TestMarkdownReporter_GenerateReport_Error(t *testing.T) {
	res := makeTestResults()[2]
	data, err := NewMarkdownReporter().GenerateReport(res)
	require.NoError(t, err)

	md := string(data)
	assert.Contains(t, md, "# crash")
	assert.Contains(t, md, "## Error")
	assert.Contains(t, md, "suite panicked: boom")
}

func TestMarkdownReporter_GenerateMasterSummary(t *testing.T) {
	data, err := NewMarkdownReporter().GenerateMasterSummary(makeTestResults())
	require.NoError(t, err)

	md := string(data)
	assert.Contains(t, md, "# Checks - Master Summary")
	assert.Contains(t, md, "| Reporter self-check | PASSED | 5s | 4/4 |")
	assert.Contains(t, md, "| Kind classification | FAILED | 2s | 1/3 |")
	assert.Contains(t, md, "| Total Suites | 4 |")
	assert.Contains(t, md, "| Pass Rate | 25% |")
}
