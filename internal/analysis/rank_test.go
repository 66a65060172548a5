package analysis_test

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/signalnine/glancebench/internal/analysis"
	"github.com/signalnine/glancebench/internal/result"
)

// conditionShape describes one condition's rows for a gate scenario: 10 T1
// rows plus 20 harder-tier rows, of which t23Successes succeed.
type conditionShape struct {
	t23Successes    int
	t1Runtime       float64
	cost            float64
	maintainability float64
	testQuality     float64
}

func scenarioRows(t *testing.T, shapes map[string]conditionShape) []result.Trial {
	t.Helper()
	conditions := make([]string, 0, len(shapes))
	for c := range shapes {
		conditions = append(conditions, c)
	}
	sort.Strings(conditions)

	var rows []result.Trial
	for _, condition := range conditions {
		shape := shapes[condition]
		require.LessOrEqual(t, shape.t23Successes, 20, "shape for %s exceeds harder-tier row count", condition)
		for i := 0; i < 10; i++ {
			rows = append(rows, shapedTrial(condition, "T1", 0, shape))
		}
		remaining := shape.t23Successes
		for _, tier := range []string{"T2", "T3"} {
			for i := 0; i < 10; i++ {
				success := 0
				if remaining > 0 {
					success = 1
					remaining--
				}
				rows = append(rows, shapedTrial(condition, tier, success, shape))
			}
		}
	}
	return rows
}

func shapedTrial(condition, tier string, success int, shape conditionShape) result.Trial {
	return result.Trial{
		Condition: condition,
		TaskTier:  tier,
		Outcome: result.Outcome{
			TaskSuccess:          success,
			RuntimeSeconds:       shape.t1Runtime,
			EstimatedCostUSD:     shape.cost,
			JudgeMaintainability: shape.maintainability,
			JudgeTestQuality:     shape.testQuality,
		},
	}
}

func TestEvaluateAdoptionAccepted(t *testing.T) {
	rows := scenarioRows(t, map[string]conditionShape{
		"C0": {t23Successes: 10, t1Runtime: 100, cost: 1.0, maintainability: 0.60, testQuality: 0.60},
		"C2": {t23Successes: 14, t1Runtime: 105, cost: 1.2, maintainability: 0.60, testQuality: 0.60},
		"C3": {t23Successes: 11, t1Runtime: 130, cost: 1.6, maintainability: 0.60, testQuality: 0.60},
		"C4": {t23Successes: 10, t1Runtime: 100, cost: 1.0, maintainability: 0.55, testQuality: 0.60},
	})

	decision := analysis.EvaluateAdoption(rows)
	assert.True(t, decision.Adopt)
	assert.Equal(t, "C2", decision.RecommendedCondition)
	assert.Equal(t, 4, decision.Recommended.GateCount)
	require.Len(t, decision.Candidates, 3)
	assert.Equal(t, "C2", decision.Candidates[0].Condition)

	// The runners-up each fail two gates.
	for _, candidate := range decision.Candidates[1:] {
		assert.Equal(t, 2, candidate.GateCount, "condition %s", candidate.Condition)
	}
}

func TestEvaluateAdoptionRejected(t *testing.T) {
	slow := conditionShape{t23Successes: 10, t1Runtime: 130, cost: 1.5, maintainability: 0.60, testQuality: 0.60}
	rows := scenarioRows(t, map[string]conditionShape{
		"C0": {t23Successes: 10, t1Runtime: 100, cost: 1.0, maintainability: 0.60, testQuality: 0.60},
		"C2": slow,
		"C3": slow,
		"C4": slow,
	})

	decision := analysis.EvaluateAdoption(rows)
	assert.False(t, decision.Adopt)
	assert.Equal(t, 1, decision.Recommended.GateCount, "only the quality gate should pass")
	assert.False(t, decision.Recommended.GateSuccess)
	assert.False(t, decision.Recommended.GateRuntime)
	assert.False(t, decision.Recommended.GateCost)
	// All candidates tie, so the canonical condition order decides.
	assert.Equal(t, "C2", decision.RecommendedCondition)
}

func TestRankTieBreaks(t *testing.T) {
	evals := []analysis.GateEvaluation{
		{Condition: "C3", GateCount: 4, FrontierScore: 0.1, T23SuccessRate: 0.60},
		{Condition: "C2", GateCount: 4, FrontierScore: 0.1, T23SuccessRate: 0.66},
		{Condition: "C4", GateCount: 3, FrontierScore: 0.9, T23SuccessRate: 0.90},
	}

	ranked := analysis.Rank(evals)
	require.Len(t, ranked, 3)
	assert.Equal(t, "C2", ranked[0].Condition, "higher harder-tier success rate wins the tie")
	assert.Equal(t, "C3", ranked[1].Condition)
	assert.Equal(t, "C4", ranked[2].Condition, "gate count dominates frontier score")

	// Rank must leave its input untouched.
	assert.Equal(t, "C3", evals[0].Condition)
}
