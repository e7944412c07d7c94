package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"digital.vasic.checks/pkg/errkind"
	"digital.vasic.checks/pkg/suite"
)

func TestJSONReporter_GenerateReport_Pretty(t *testing.T) {
	data, err := NewJSONReporter(true).GenerateReport(makeTestResult())
	require.NoError(t, err)
	assert.Contains(t, string(data), "\n  ")
	assert.Contains(t, string(data), `"suite_id": "reporter"`)
}

func TestJSONReporter_GenerateReport_Compact(t *testing.T) {
	data, err := NewJSONReporter(false).GenerateReport(makeTestResult())
	require.NoError(t, err)
	assert.NotContains(t, string(data), "\n")
}

func TestJSONReporter_GenerateReport_Diagnostics(t *testing.T) {
	data, err := NewJSONReporter(false).GenerateReport(makeFailedResult())
	require.NoError(t, err)

	var decoded suite.Result
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Len(t, decoded.Diagnostics, 2)
	assert.Equal(t, errkind.Range, decoded.Diagnostics[1].Expected)
	assert.Equal(t, errkind.None, decoded.Diagnostics[1].Observed)
	assert.Contains(t, string(data), `"expected":"RangeError"`)
	assert.Contains(t, string(data), `"observed":"none"`)
}

func TestJSONReporter_GenerateMasterSummary(t *testing.T) {
	data, err := NewJSONReporter(false).GenerateMasterSummary(makeTestResults())
	require.NoError(t, err)

	var summary jsonMasterSummary
	require.NoError(t, json.Unmarshal(data, &summary))
	assert.Equal(t, 4, summary.TotalSuites)
	assert.Equal(t, 1, summary.Passed)
	assert.Equal(t, 3, summary.Failed)
	assert.Equal(t, 7, summary.TotalChecks)
	assert.Equal(t, 2, summary.TotalFailures)
	assert.Len(t, summary.Results, 4)
}

func TestJSONReporter_GenerateMasterSummary_Empty(t *testing.T) {
	data, err := NewJSONReporter(true).GenerateMasterSummary(nil)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"total_suites": 0`)
}

func TestJSONReporter_WriteReport(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewJSONReporter(false).WriteReport(&buf, makeTestResult()))
	assert.True(t, strings.HasPrefix(buf.String(), "{"))
}

func TestJSONReporter_MarshalErrors(t *testing.T) {
	originalMarshal := jsonMarshal
	originalIndent := jsonMarshalIndent
	t.Cleanup(func() {
		jsonMarshal = originalMarshal
		jsonMarshalIndent = originalIndent
	})
	jsonMarshal = func(any) ([]byte, error) { return nil, assert.AnError }
	jsonMarshalIndent = func(any, string, string) ([]byte, error) {
		return nil, assert.AnError
	}

	for _, pretty := range []bool{true, false} {
		rpt := NewJSONReporter(pretty)
		_, err := rpt.GenerateReport(makeTestResult())
		assert.ErrorIs(t, err, assert.AnError)
		_, err = rpt.GenerateMasterSummary(makeTestResults())
		assert.ErrorIs(t, err, assert.AnError)
		assert.ErrorIs(t, rpt.WriteReport(&bytes.Buffer{}, makeTestResult()), assert.AnError)
	}
}
