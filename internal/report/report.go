// Package report renders condition summaries and the adoption decision as
// tables, markdown, json, and the run's report artifacts.
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/signalnine/glancebench/internal/analysis"
)

// Generate writes the condition summary and candidate gate tables in the
// requested format.
func Generate(w io.Writer, format string, summaries []analysis.ConditionSummary, decision *analysis.AdoptionDecision) error {
	switch format {
	case "markdown":
		return writeMarkdown(w, summaries, decision)
	case "json":
		return writeJSON(w, summaries, decision)
	default:
		return writeTable(w, summaries, decision)
	}
}

func writeTable(w io.Writer, summaries []analysis.ConditionSummary, decision *analysis.AdoptionDecision) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CONDITION\tN\tSUCCESS\tTESTS PASS\tREADINESS\tMED RUNTIME\tMED TOKENS\tMED COST\tCTX UTIL")
	fmt.Fprintln(tw, strings.Repeat("-", 96))
	for _, s := range summaries {
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%.3f\t%.1fs\t%.0f\t%s\t%s\n",
			s.Condition, s.N,
			formatPercent(s.SuccessRate), formatPercent(s.TestsPassRate),
			s.AvgPRReadiness, s.MedianRuntime, s.MedianTokens,
			formatCurrency(s.MedianCost), formatPercent(s.ContextUtilizationRate))
	}
	if decision != nil {
		fmt.Fprintln(tw)
		fmt.Fprintln(tw, "CANDIDATE\tT2+T3 SUCCESS\tLIFT\tT1 RUNTIME REG\tMAINT Δ\tTEST-Q Δ\tCOST REG\tGATES\tFRONTIER")
		fmt.Fprintln(tw, strings.Repeat("-", 96))
		for _, c := range decision.Candidates {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%+.3f\t%+.3f\t%s\t%d/4\t%.4f\n",
				c.Condition, formatPercent(c.T23SuccessRate), formatPercent(c.SuccessLiftT23),
				formatPercent(c.T1RuntimeRegression), c.MaintainabilityDelta, c.TestQualityDelta,
				formatPercent(c.CostRegression), c.GateCount, c.FrontierScore)
		}
		fmt.Fprintln(tw)
		fmt.Fprintf(tw, "Recommended: %s\tAdopt: %v\n", decision.RecommendedCondition, decision.Adopt)
	}
	return tw.Flush()
}

func writeMarkdown(w io.Writer, summaries []analysis.ConditionSummary, decision *analysis.AdoptionDecision) error {
	summaryMarkdown(w, summaries)
	if decision != nil {
		fmt.Fprintln(w)
		candidateMarkdown(w, decision.Candidates)
	}
	return nil
}

func summaryMarkdown(w io.Writer, summaries []analysis.ConditionSummary) {
	fmt.Fprintln(w, "| Condition | N | Success | Tests Pass | PR Readiness | Median Runtime (s) | Median Tokens | Median Cost | Context Utilization |")
	fmt.Fprintln(w, "|---|---:|---:|---:|---:|---:|---:|---:|---:|")
	for _, s := range summaries {
		fmt.Fprintf(w, "| %s | %d | %s | %s | %.3f | %.1f | %.0f | %s | %s |\n",
			s.Condition, s.N,
			formatPercent(s.SuccessRate), formatPercent(s.TestsPassRate),
			s.AvgPRReadiness, s.MedianRuntime, s.MedianTokens,
			formatCurrency(s.MedianCost), formatPercent(s.ContextUtilizationRate))
	}
}

func candidateMarkdown(w io.Writer, candidates []analysis.GateEvaluation) {
	fmt.Fprintln(w, "| Condition | T2+T3 Success | Relative Lift vs C0 | T1 Runtime Regression | Maintainability Delta | Test Quality Delta | Cost Regression | Gates Passed |")
	fmt.Fprintln(w, "|---|---:|---:|---:|---:|---:|---:|---:|")
	for _, c := range candidates {
		fmt.Fprintf(w, "| %s | %s | %s | %s | %+.3f | %+.3f | %s | %d/4 |\n",
			c.Condition, formatPercent(c.T23SuccessRate), formatPercent(c.SuccessLiftT23),
			formatPercent(c.T1RuntimeRegression), c.MaintainabilityDelta, c.TestQualityDelta,
			formatPercent(c.CostRegression), c.GateCount)
	}
}

func writeJSON(w io.Writer, summaries []analysis.ConditionSummary, decision *analysis.AdoptionDecision) error {
	payload := struct {
		Summaries []analysis.ConditionSummary `json:"summaries"`
		Decision  *analysis.AdoptionDecision  `json:"decision,omitempty"`
	}{Summaries: summaries, Decision: decision}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}

// WriteSummaryCSV writes the per-condition aggregate table with the fixed
// column set.
func WriteSummaryCSV(path string, summaries []analysis.ConditionSummary) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating summary dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := []string{
		"condition", "n", "success_rate", "tests_pass_rate", "avg_pr_readiness",
		"median_runtime", "median_tokens", "median_cost",
		"context_utilization_rate", "avg_maintainability", "avg_test_quality",
	}
	if err := w.Write(header); err != nil {
		return fmt.Errorf("writing summary header: %w", err)
	}
	for _, s := range summaries {
		rec := []string{
			s.Condition,
			strconv.Itoa(s.N),
			formatFloat(s.SuccessRate),
			formatFloat(s.TestsPassRate),
			formatFloat(s.AvgPRReadiness),
			formatFloat(s.MedianRuntime),
			formatFloat(s.MedianTokens),
			formatFloat(s.MedianCost),
			formatFloat(s.ContextUtilizationRate),
			formatFloat(s.AvgMaintainability),
			formatFloat(s.AvgTestQuality),
		}
		if err := w.Write(rec); err != nil {
			return fmt.Errorf("writing summary row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flushing %s: %w", path, err)
	}
	return nil
}

// WriteArtifacts emits the decision artifacts for one analysis run:
// findings.md, executive_summary.md, and data_card.md under reportDir.
func WriteArtifacts(reportDir, inputPath string, rowCount int, summaries []analysis.ConditionSummary, decision *analysis.AdoptionDecision) error {
	if err := os.MkdirAll(reportDir, 0o755); err != nil {
		return fmt.Errorf("creating report dir: %w", err)
	}

	generatedAt := time.Now().UTC().Format("2006-01-02 15:04:05 UTC")
	recommended := decision.Recommended
	adoptionText := "Do not adopt yet"
	if decision.Adopt {
		adoptionText = "Adopt"
	}

	var findings strings.Builder
	fmt.Fprintf(&findings, "# Findings\n\n")
	fmt.Fprintf(&findings, "Generated: %s\n\n", generatedAt)
	fmt.Fprintf(&findings, "Input run file: `%s`\n\n", inputPath)
	fmt.Fprintf(&findings, "Total rows: %d\n\n", rowCount)
	fmt.Fprintf(&findings, "## Condition Summary\n\n")
	summaryMarkdown(&findings, summaries)
	fmt.Fprintf(&findings, "\n## Gate Evaluation (candidates vs `C0`)\n\n")
	candidateMarkdown(&findings, decision.Candidates)
	fmt.Fprintf(&findings, "\n## Decision\n\n")
	fmt.Fprintf(&findings, "- Recommended condition: `%s`\n", decision.RecommendedCondition)
	fmt.Fprintf(&findings, "- Adoption status: **%s**\n", adoptionText)
	fmt.Fprintf(&findings, "- Gate results for `%s`:\n", decision.RecommendedCondition)
	fmt.Fprintf(&findings, "  - success lift on `T2+T3` >= 10%%: `%v`\n", recommended.GateSuccess)
	fmt.Fprintf(&findings, "  - `T1` runtime regression <= 15%%: `%v`\n", recommended.GateRuntime)
	fmt.Fprintf(&findings, "  - maintainability/test-quality non-regression: `%v`\n", recommended.GateQuality)
	fmt.Fprintf(&findings, "  - cost increase justified by quality lift: `%v`\n", recommended.GateCost)

	var executive strings.Builder
	fmt.Fprintf(&executive, "# Executive Summary\n\n")
	fmt.Fprintf(&executive, "Recommended default glance condition: `%s`.\n\n", decision.RecommendedCondition)
	fmt.Fprintf(&executive, "Adoption decision: **%s**.\n\n", adoptionText)
	fmt.Fprintf(&executive, "- Relative `T2+T3` success lift: %s\n", formatPercent(recommended.SuccessLiftT23))
	fmt.Fprintf(&executive, "- `T1` runtime regression: %s\n", formatPercent(recommended.T1RuntimeRegression))
	fmt.Fprintf(&executive, "- Cost regression: %s\n", formatPercent(recommended.CostRegression))
	fmt.Fprintf(&executive, "- Maintainability delta: %+.3f\n", recommended.MaintainabilityDelta)
	fmt.Fprintf(&executive, "- Test quality delta: %+.3f\n", recommended.TestQualityDelta)

	var dataCard strings.Builder
	fmt.Fprintf(&dataCard, "# Data Card\n\n")
	fmt.Fprintf(&dataCard, "- Dataset: `glance_context_run_v1`\n")
	fmt.Fprintf(&dataCard, "- Source: `%s`\n", inputPath)
	fmt.Fprintf(&dataCard, "- Rows: %d\n", rowCount)
	fmt.Fprintf(&dataCard, "- Unit: one row per (task, condition, model, repeat)\n")
	fmt.Fprintf(&dataCard, "- Core fields: `condition`, `task_tier`, `repo_type`, `model`, `task_success`, `pr_readiness_score`, `runtime_seconds`, `total_tokens`, `estimated_cost_usd`\n")
	fmt.Fprintf(&dataCard, "- Limitations: simulation-first harness; live agent execution is out of scope.\n")

	files := map[string]string{
		"findings.md":          findings.String(),
		"executive_summary.md": executive.String(),
		"data_card.md":         dataCard.String(),
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(reportDir, name), []byte(content), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", name, err)
		}
	}
	return nil
}

func formatPercent(v float64) string {
	return fmt.Sprintf("%.1f%%", v*100)
}

func formatCurrency(v float64) string {
	return fmt.Sprintf("$%.4f", v)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
