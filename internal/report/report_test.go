package report_test

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/signalnine/glancebench/internal/analysis"
	"github.com/signalnine/glancebench/internal/report"
)

func fixtureSummaries() []analysis.ConditionSummary {
	return []analysis.ConditionSummary{
		{Condition: "C0", N: 30, SuccessRate: 0.50, TestsPassRate: 0.55, AvgPRReadiness: 0.62, MedianRuntime: 2400, MedianTokens: 14500, MedianCost: 0.061, AvgMaintainability: 0.60, AvgTestQuality: 0.58},
		{Condition: "C2", N: 30, SuccessRate: 0.70, TestsPassRate: 0.72, AvgPRReadiness: 0.68, MedianRuntime: 2350, MedianTokens: 13900, MedianCost: 0.066, ContextUtilizationRate: 0.63, AvgMaintainability: 0.61, AvgTestQuality: 0.59},
	}
}

func fixtureDecision() *analysis.AdoptionDecision {
	winner := analysis.GateEvaluation{
		Condition:      "C2",
		T23SuccessRate: 0.70,
		SuccessLiftT23: 0.40,
		GateSuccess:    true,
		GateRuntime:    true,
		GateQuality:    true,
		GateCost:       true,
		GateCount:      4,
		FrontierScore:  0.13,
	}
	return &analysis.AdoptionDecision{
		RecommendedCondition: "C2",
		Adopt:                true,
		Recommended:          winner,
		Candidates:           []analysis.GateEvaluation{winner, {Condition: "C3", GateCount: 2}},
	}
}

func TestGenerateTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report.Generate(&buf, "table", fixtureSummaries(), fixtureDecision()))

	out := buf.String()
	assert.Contains(t, out, "CONDITION")
	assert.Contains(t, out, "C0")
	assert.Contains(t, out, "C2")
	assert.Contains(t, out, "Recommended: C2")
	assert.Contains(t, out, "Adopt: true")
	assert.Contains(t, out, "4/4")
}

func TestGenerateMarkdown(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report.Generate(&buf, "markdown", fixtureSummaries(), fixtureDecision()))

	out := buf.String()
	assert.Contains(t, out, "| Condition | N | Success |")
	assert.Contains(t, out, "| C2 | 30 |")
	assert.Contains(t, out, "Relative Lift vs C0")
	assert.Contains(t, out, "| 2/4 |")
}

func TestGenerateJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report.Generate(&buf, "json", fixtureSummaries(), fixtureDecision()))

	var payload struct {
		Summaries []analysis.ConditionSummary `json:"summaries"`
		Decision  *analysis.AdoptionDecision  `json:"decision"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &payload))
	require.Len(t, payload.Summaries, 2)
	assert.Equal(t, "C0", payload.Summaries[0].Condition)
	require.NotNil(t, payload.Decision)
	assert.True(t, payload.Decision.Adopt)
	assert.Equal(t, "C2", payload.Decision.RecommendedCondition)
}

func TestGenerateWithoutDecision(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report.Generate(&buf, "table", fixtureSummaries(), nil))
	assert.NotContains(t, buf.String(), "CANDIDATE")
}

func TestWriteSummaryCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "charts", "condition_summary_latest.csv")
	require.NoError(t, report.WriteSummaryCSV(path, fixtureSummaries()))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "condition", records[0][0])
	assert.Equal(t, "avg_test_quality", records[0][len(records[0])-1])
	assert.Equal(t, "C0", records[1][0])
	assert.Equal(t, "0.5", records[1][2])
}

func TestWriteArtifacts(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, report.WriteArtifacts(dir, "data/runs_latest.csv", 60, fixtureSummaries(), fixtureDecision()))

	findings, err := os.ReadFile(filepath.Join(dir, "findings.md"))
	require.NoError(t, err)
	assert.Contains(t, string(findings), "# Findings")
	assert.Contains(t, string(findings), "Total rows: 60")
	assert.Contains(t, string(findings), "Recommended condition: `C2`")
	assert.Contains(t, string(findings), "**Adopt**")

	executive, err := os.ReadFile(filepath.Join(dir, "executive_summary.md"))
	require.NoError(t, err)
	assert.Contains(t, string(executive), "Recommended default glance condition: `C2`")
	assert.True(t, strings.Contains(string(executive), "40.0%"), "lift should render as a percentage")

	dataCard, err := os.ReadFile(filepath.Join(dir, "data_card.md"))
	require.NoError(t, err)
	assert.Contains(t, string(dataCard), "glance_context_run_v1")
	assert.Contains(t, string(dataCard), "Rows: 60")
}

func TestWriteArtifactsNotAdopted(t *testing.T) {
	dir := t.TempDir()
	decision := fixtureDecision()
	decision.Adopt = false
	require.NoError(t, report.WriteArtifacts(dir, "in.csv", 10, fixtureSummaries(), decision))

	executive, err := os.ReadFile(filepath.Join(dir, "executive_summary.md"))
	require.NoError(t, err)
	assert.Contains(t, string(executive), "Do not adopt yet")
}
