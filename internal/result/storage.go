package result

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// Columns is the fixed run-file schema. Order is stable; downstream tooling
// keys on these names.
var Columns = []string{
	"schema_version",
	"experiment_id",
	"run_id",
	"timestamp_utc",
	"mode",
	"seed",
	"trial_id",
	"task_id",
	"task_title",
	"task_tier",
	"repo_type",
	"repo_slug",
	"repo_locator",
	"model",
	"condition",
	"condition_label",
	"repeat_index",
	"has_glance_files",
	"discovery_instruction",
	"inline_strategy",
	"inline_budget_tokens",
	"context_utilized",
	"task_success",
	"tests_passed",
	"status",
	"runtime_seconds",
	"input_tokens",
	"output_tokens",
	"total_tokens",
	"estimated_cost_usd",
	"judge_correctness",
	"judge_maintainability",
	"judge_architectural_fit",
	"judge_test_quality",
	"judge_minimality",
	"pr_readiness_score",
}

// WriteCSV writes rows to path, creating parent directories as needed.
func WriteCSV(path string, rows []Trial) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(Columns); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i := range rows {
		if err := w.Write(record(&rows[i])); err != nil {
			return fmt.Errorf("writing row %d: %w", i+1, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flushing %s: %w", path, err)
	}
	return nil
}

func record(t *Trial) []string {
	return []string{
		t.SchemaVersion,
		t.ExperimentID,
		t.RunID,
		t.TimestampUTC,
		t.Mode,
		strconv.FormatInt(t.Seed, 10),
		strconv.Itoa(t.TrialID),
		t.TaskID,
		t.TaskTitle,
		t.TaskTier,
		t.RepoType,
		t.RepoSlug,
		t.RepoLocator,
		t.Model,
		t.Condition,
		t.ConditionLabel,
		strconv.Itoa(t.RepeatIndex),
		strconv.Itoa(t.HasGlanceFiles),
		strconv.Itoa(t.DiscoveryInstruction),
		t.InlineStrategy,
		strconv.Itoa(t.InlineBudgetTokens),
		strconv.Itoa(t.ContextUtilized),
		strconv.Itoa(t.TaskSuccess),
		strconv.Itoa(t.TestsPassed),
		t.Status,
		formatFloat(t.RuntimeSeconds),
		strconv.Itoa(t.InputTokens),
		strconv.Itoa(t.OutputTokens),
		strconv.Itoa(t.TotalTokens),
		formatFloat(t.EstimatedCostUSD),
		formatFloat(t.JudgeCorrectness),
		formatFloat(t.JudgeMaintainability),
		formatFloat(t.JudgeArchitecturalFit),
		formatFloat(t.JudgeTestQuality),
		formatFloat(t.JudgeMinimality),
		formatFloat(t.PRReadinessScore),
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// ReadCSV loads a run file. Numeric fields coerce leniently: absent columns
// and empty cells become zero rather than errors.
func ReadCSV(path string) ([]Trial, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	idx := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		idx[name] = i
	}

	rows := make([]Trial, 0, len(records)-1)
	for _, rec := range records[1:] {
		cell := func(name string) string {
			i, ok := idx[name]
			if !ok || i >= len(rec) {
				return ""
			}
			return rec[i]
		}
		rows = append(rows, Trial{
			SchemaVersion:        cell("schema_version"),
			ExperimentID:         cell("experiment_id"),
			RunID:                cell("run_id"),
			TimestampUTC:         cell("timestamp_utc"),
			Mode:                 cell("mode"),
			Seed:                 parseInt64(cell("seed")),
			TrialID:              parseInt(cell("trial_id")),
			TaskID:               cell("task_id"),
			TaskTitle:            cell("task_title"),
			TaskTier:             cell("task_tier"),
			RepoType:             cell("repo_type"),
			RepoSlug:             cell("repo_slug"),
			RepoLocator:          cell("repo_locator"),
			Model:                cell("model"),
			Condition:            cell("condition"),
			ConditionLabel:       cell("condition_label"),
			RepeatIndex:          parseInt(cell("repeat_index")),
			HasGlanceFiles:       parseInt(cell("has_glance_files")),
			DiscoveryInstruction: parseInt(cell("discovery_instruction")),
			InlineStrategy:       cell("inline_strategy"),
			InlineBudgetTokens:   parseInt(cell("inline_budget_tokens")),
			Outcome: Outcome{
				ContextUtilized:       parseInt(cell("context_utilized")),
				TaskSuccess:           parseInt(cell("task_success")),
				TestsPassed:           parseInt(cell("tests_passed")),
				Status:                cell("status"),
				RuntimeSeconds:        parseFloat(cell("runtime_seconds")),
				InputTokens:           parseInt(cell("input_tokens")),
				OutputTokens:          parseInt(cell("output_tokens")),
				TotalTokens:           parseInt(cell("total_tokens")),
				EstimatedCostUSD:      parseFloat(cell("estimated_cost_usd")),
				JudgeCorrectness:      parseFloat(cell("judge_correctness")),
				JudgeMaintainability:  parseFloat(cell("judge_maintainability")),
				JudgeArchitecturalFit: parseFloat(cell("judge_architectural_fit")),
				JudgeTestQuality:      parseFloat(cell("judge_test_quality")),
				JudgeMinimality:       parseFloat(cell("judge_minimality")),
				PRReadinessScore:      parseFloat(cell("pr_readiness_score")),
			},
		})
	}
	return rows, nil
}

func parseInt(s string) int {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return v
}

func parseInt64(s string) int64 {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return v
}

func parseFloat(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

// UpdateLatest copies the run file to the stable latest pointer so analysis
// picks up the newest run by default.
func UpdateLatest(outputPath, latestPath string) error {
	outAbs, err := filepath.Abs(outputPath)
	if err != nil {
		return fmt.Errorf("resolving output path: %w", err)
	}
	latestAbs, err := filepath.Abs(latestPath)
	if err != nil {
		return fmt.Errorf("resolving latest path: %w", err)
	}
	if outAbs == latestAbs {
		return nil
	}
	data, err := os.ReadFile(outputPath)
	if err != nil {
		return fmt.Errorf("reading %s: %w", outputPath, err)
	}
	if err := os.MkdirAll(filepath.Dir(latestAbs), 0o755); err != nil {
		return fmt.Errorf("creating latest dir: %w", err)
	}
	return os.WriteFile(latestAbs, data, 0o644)
}
