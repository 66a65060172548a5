package analysis

import (
	"math"

	"github.com/signalnine/glancebench/internal/params"
	"github.com/signalnine/glancebench/internal/result"
)

// Gate thresholds. Tuned against the zero-baseline relative-change convention
// below; do not retune one without the other.
const (
	successLiftMin       = 0.10
	runtimeRegressionMax = 0.15
	qualityDeltaMin      = -0.02
	costRegressionMax    = 0.25
	qualityCostRatioMin  = 0.25

	costPenaltyWeight    = 0.30
	runtimePenaltyWeight = 0.20
)

var (
	easyTiers   = []string{"T1"}
	harderTiers = []string{"T2", "T3"}
)

// GateEvaluation compares one candidate condition against the baseline.
type GateEvaluation struct {
	Condition              string  `json:"condition"`
	BaselineT23SuccessRate float64 `json:"baseline_t23_success_rate"`
	T23SuccessRate         float64 `json:"t23_success_rate"`
	SuccessLiftT23         float64 `json:"success_lift_t23"`
	QualityGainT23         float64 `json:"quality_gain_t23"`
	T1RuntimeRegression    float64 `json:"t1_runtime_regression"`
	MaintainabilityDelta   float64 `json:"maintainability_delta"`
	TestQualityDelta       float64 `json:"test_quality_delta"`
	CostRegression         float64 `json:"cost_regression"`
	QualityCostRatio       float64 `json:"quality_cost_ratio"`
	GateSuccess            bool    `json:"gate_success"`
	GateRuntime            bool    `json:"gate_runtime"`
	GateQuality            bool    `json:"gate_quality"`
	GateCost               bool    `json:"gate_cost"`
	GateCount              int     `json:"gate_count"`
	FrontierScore          float64 `json:"frontier_score"`
}

// RelativeChange is (candidate-baseline)/baseline with the zero-baseline
// convention: no change when both are zero, a full-magnitude swing (1.0)
// when only the baseline is zero. The convention has no principled
// derivation but the gate thresholds were tuned against it, so it is kept
// exactly.
func RelativeChange(candidate, baseline float64) float64 {
	if baseline == 0 {
		if candidate == 0 {
			return 0
		}
		return 1
	}
	return (candidate - baseline) / baseline
}

// QualityCostRatio expresses quality gain per unit of cost regression. When
// cost did not regress, any non-negative gain is free (+Inf) and a quality
// loss is never worth it (0).
func QualityCostRatio(qualityGain, costRegression float64) float64 {
	if costRegression <= 0 {
		if qualityGain >= 0 {
			return math.Inf(1)
		}
		return 0
	}
	return qualityGain / costRegression
}

// EvaluateCondition computes the gate metrics for one candidate condition
// against the baseline over the same row collection.
func EvaluateCondition(rows []result.Trial, condition string) GateEvaluation {
	baselineRows := Filter(rows, params.BaselineCondition, nil)
	candidateRows := Filter(rows, condition, nil)

	baselineEasy := Summarize(Filter(baselineRows, "", easyTiers))
	baselineHard := Summarize(Filter(baselineRows, "", harderTiers))
	candidateEasy := Summarize(Filter(candidateRows, "", easyTiers))
	candidateHard := Summarize(Filter(candidateRows, "", harderTiers))
	baselineAll := Summarize(baselineRows)
	candidateAll := Summarize(candidateRows)

	eval := GateEvaluation{
		Condition:              condition,
		BaselineT23SuccessRate: baselineHard.SuccessRate,
		T23SuccessRate:         candidateHard.SuccessRate,
		SuccessLiftT23:         RelativeChange(candidateHard.SuccessRate, baselineHard.SuccessRate),
		QualityGainT23:         candidateHard.SuccessRate - baselineHard.SuccessRate,
		T1RuntimeRegression:    RelativeChange(candidateEasy.MedianRuntime, baselineEasy.MedianRuntime),
		MaintainabilityDelta:   candidateAll.AvgMaintainability - baselineAll.AvgMaintainability,
		TestQualityDelta:       candidateAll.AvgTestQuality - baselineAll.AvgTestQuality,
		CostRegression:         RelativeChange(candidateAll.MedianCost, baselineAll.MedianCost),
	}
	eval.QualityCostRatio = QualityCostRatio(eval.QualityGainT23, eval.CostRegression)

	eval.GateSuccess = eval.SuccessLiftT23 >= successLiftMin
	eval.GateRuntime = eval.T1RuntimeRegression <= runtimeRegressionMax
	eval.GateQuality = eval.MaintainabilityDelta >= qualityDeltaMin && eval.TestQualityDelta >= qualityDeltaMin
	eval.GateCost = eval.CostRegression <= costRegressionMax || eval.QualityCostRatio >= qualityCostRatioMin
	for _, pass := range []bool{eval.GateSuccess, eval.GateRuntime, eval.GateQuality, eval.GateCost} {
		if pass {
			eval.GateCount++
		}
	}

	// Only positive regressions penalize; improvements are already captured
	// by the gain term.
	eval.FrontierScore = eval.QualityGainT23 -
		costPenaltyWeight*math.Max(eval.CostRegression, 0) -
		runtimePenaltyWeight*math.Max(eval.T1RuntimeRegression, 0)

	return eval
}
