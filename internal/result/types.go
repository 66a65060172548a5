package result

const (
	SchemaVersion = "glance_context_run_v1"
	ExperimentID  = "glance-context-ablations"
)

// Outcome is the simulator's measurement set for one trial. Binary flags are
// stored as 0/1 so they round-trip through the CSV schema unchanged.
type Outcome struct {
	ContextUtilized       int
	TaskSuccess           int
	TestsPassed           int
	Status                string
	RuntimeSeconds        float64
	InputTokens           int
	OutputTokens          int
	TotalTokens           int
	EstimatedCostUSD      float64
	JudgeCorrectness      float64
	JudgeMaintainability  float64
	JudgeArchitecturalFit float64
	JudgeTestQuality      float64
	JudgeMinimality       float64
	PRReadinessScore      float64
}

// Trial is one row of a run: run metadata, the (task, condition, model,
// repeat) coordinates, and the simulated outcome. Trials are append-only
// facts; nothing mutates them after the simulator produces them.
type Trial struct {
	SchemaVersion string
	ExperimentID  string
	RunID         string
	TimestampUTC  string
	Mode          string
	Seed          int64
	TrialID       int

	TaskID      string
	TaskTitle   string
	TaskTier    string
	RepoType    string
	RepoSlug    string
	RepoLocator string

	Model          string
	Condition      string
	ConditionLabel string
	RepeatIndex    int

	HasGlanceFiles       int
	DiscoveryInstruction int
	InlineStrategy       string
	InlineBudgetTokens   int

	Outcome
}
