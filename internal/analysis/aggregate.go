// Package analysis reduces trial rows into condition summaries and applies
// the adoption gate criteria against the baseline condition.
package analysis

import (
	"sort"

	"github.com/signalnine/glancebench/internal/params"
	"github.com/signalnine/glancebench/internal/result"
)

// ConditionSummary is a per-condition aggregate over a row subset. Recomputed
// from scratch on every call; never updated incrementally.
type ConditionSummary struct {
	Condition              string  `json:"condition"`
	N                      int     `json:"n"`
	SuccessRate            float64 `json:"success_rate"`
	TestsPassRate          float64 `json:"tests_pass_rate"`
	AvgPRReadiness         float64 `json:"avg_pr_readiness"`
	MedianRuntime          float64 `json:"median_runtime"`
	MedianTokens           float64 `json:"median_tokens"`
	MedianCost             float64 `json:"median_cost"`
	ContextUtilizationRate float64 `json:"context_utilization_rate"`
	AvgMaintainability     float64 `json:"avg_maintainability"`
	AvgTestQuality         float64 `json:"avg_test_quality"`
}

// Filter returns the rows matching condition (empty string matches all) and
// tier set (nil matches all). Both predicates are pure, so filter order never
// affects the result.
func Filter(rows []result.Trial, condition string, tiers []string) []result.Trial {
	var tierSet map[string]bool
	if tiers != nil {
		tierSet = make(map[string]bool, len(tiers))
		for _, t := range tiers {
			tierSet[t] = true
		}
	}
	var filtered []result.Trial
	for _, row := range rows {
		if condition != "" && row.Condition != condition {
			continue
		}
		if tierSet != nil && !tierSet[row.TaskTier] {
			continue
		}
		filtered = append(filtered, row)
	}
	return filtered
}

// Summarize aggregates rows into a ConditionSummary. An empty input yields
// all-zero fields so downstream gate math stays total.
func Summarize(rows []result.Trial) ConditionSummary {
	s := ConditionSummary{N: len(rows)}
	if len(rows) == 0 {
		return s
	}
	success := make([]float64, len(rows))
	tests := make([]float64, len(rows))
	readiness := make([]float64, len(rows))
	runtime := make([]float64, len(rows))
	tokens := make([]float64, len(rows))
	cost := make([]float64, len(rows))
	utilized := make([]float64, len(rows))
	maintainability := make([]float64, len(rows))
	testQuality := make([]float64, len(rows))
	for i, row := range rows {
		success[i] = float64(row.TaskSuccess)
		tests[i] = float64(row.TestsPassed)
		readiness[i] = row.PRReadinessScore
		runtime[i] = row.RuntimeSeconds
		tokens[i] = float64(row.TotalTokens)
		cost[i] = row.EstimatedCostUSD
		utilized[i] = float64(row.ContextUtilized)
		maintainability[i] = row.JudgeMaintainability
		testQuality[i] = row.JudgeTestQuality
	}
	s.SuccessRate = mean(success)
	s.TestsPassRate = mean(tests)
	s.AvgPRReadiness = mean(readiness)
	s.MedianRuntime = median(runtime)
	s.MedianTokens = median(tokens)
	s.MedianCost = median(cost)
	s.ContextUtilizationRate = mean(utilized)
	s.AvgMaintainability = mean(maintainability)
	s.AvgTestQuality = mean(testQuality)
	return s
}

// SummarizeByCondition produces one summary per condition present in rows,
// in canonical condition order.
func SummarizeByCondition(rows []result.Trial) []ConditionSummary {
	var summaries []ConditionSummary
	for _, condition := range params.ConditionOrder {
		subset := Filter(rows, condition, nil)
		if len(subset) == 0 {
			continue
		}
		s := Summarize(subset)
		s.Condition = condition
		summaries = append(summaries, s)
	}
	return summaries
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}
