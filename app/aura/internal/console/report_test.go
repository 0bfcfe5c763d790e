package console

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iWorld-y/aura/app/aura/pkg/llm/llmtest"
	"github.com/iWorld-y/aura/app/aura/pkg/model"
)

func capture(t *testing.T) *bytes.Buffer {
	t.Helper()
	buf := &bytes.Buffer{}
	prevOut, prevNoColor := Out, color.NoColor
	Out, color.NoColor = buf, true
	t.Cleanup(func() { Out, color.NoColor = prevOut, prevNoColor })
	return buf
}

func TestPrintAnalysis(t *testing.T) {
	buf := capture(t)

	var r model.AnalysisResult
	require.NoError(t, json.Unmarshal([]byte(llmtest.AnalysisJSON), &r))
	r.Citations = []model.Citation{{Title: "OCHA", URI: "https://ocha.org/1"}}
	PrintAnalysis(&r)

	out := buf.String()
	assert.Contains(t, out, "Darfur Displacement Surge")
	assert.Contains(t, out, "Risk level: CRITICAL")
	assert.Contains(t, out, "Route 4 south of El Fasher: High Risk.")
	assert.Contains(t, out, "[1] OCHA https://ocha.org/1")
}

func TestPrintReportList(t *testing.T) {
	buf := capture(t)

	PrintReportList(nil)
	assert.Contains(t, buf.String(), "No reports found")

	buf.Reset()
	PrintReportList([]model.SavedReport{{
		AnalysisResult: model.AnalysisResult{Title: "Darfur", RiskLevel: model.RiskHigh},
		ReportID:       "r-1",
		Timestamp:      "2025-01-15T08:00:00.000Z",
	}})
	assert.Contains(t, buf.String(), "r-1")
	assert.Contains(t, buf.String(), "2025-01-15 08:00")
	assert.Contains(t, buf.String(), "Darfur")
}
