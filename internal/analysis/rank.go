package analysis

import (
	"sort"

	"github.com/signalnine/glancebench/internal/params"
	"github.com/signalnine/glancebench/internal/result"
)

// AdoptionDecision is the final output of an analysis run. Constructed once
// from a complete row collection; read-only afterward.
type AdoptionDecision struct {
	RecommendedCondition string           `json:"recommended_condition"`
	Adopt                bool             `json:"adopt"`
	Recommended          GateEvaluation   `json:"recommended"`
	Candidates           []GateEvaluation `json:"candidates"`
}

// Rank orders evaluations descending by (gate count, frontier score, harder
// tier success rate), each field breaking ties in the previous. The input is
// not modified.
func Rank(evals []GateEvaluation) []GateEvaluation {
	ranked := make([]GateEvaluation, len(evals))
	copy(ranked, evals)
	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.GateCount != b.GateCount {
			return a.GateCount > b.GateCount
		}
		if a.FrontierScore != b.FrontierScore {
			return a.FrontierScore > b.FrontierScore
		}
		return a.T23SuccessRate > b.T23SuccessRate
	})
	return ranked
}

// EvaluateAdoption evaluates every candidate condition, ranks them, and
// decides adoption. The ranking tolerates partial gate passage so a "best
// available" recommendation always exists, but adoption itself requires all
// four gates on the top entry.
func EvaluateAdoption(rows []result.Trial) AdoptionDecision {
	evals := make([]GateEvaluation, 0, len(params.CandidateConditions))
	for _, condition := range params.CandidateConditions {
		evals = append(evals, EvaluateCondition(rows, condition))
	}
	ranked := Rank(evals)
	recommended := ranked[0]
	return AdoptionDecision{
		RecommendedCondition: recommended.Condition,
		Adopt: recommended.GateSuccess &&
			recommended.GateRuntime &&
			recommended.GateQuality &&
			recommended.GateCost,
		Recommended: recommended,
		Candidates:  ranked,
	}
}
