// Package runner expands the trial matrix and drives the simulator over it.
package runner

import (
	"fmt"
	"math/rand"

	"github.com/signalnine/glancebench/internal/params"
	"github.com/signalnine/glancebench/internal/result"
	"github.com/signalnine/glancebench/internal/sim"
	"github.com/signalnine/glancebench/internal/tasks"
)

// Spec is one cell of the trial matrix. Trial IDs are assigned in matrix
// order (task-major, then condition, model, repeat) starting at 1.
type Spec struct {
	TrialID   int
	Task      tasks.Task
	Condition params.ConditionConfig
	Model     params.ModelProfile
	Repeat    int
}

// RunInfo is the metadata stamped onto every row of a run.
type RunInfo struct {
	RunID        string
	TimestampUTC string
	Mode         string
	Seed         int64
}

// Expand builds the full trial matrix for the selected conditions and models.
// Selections are validated upstream; an unknown identifier here is a bug in
// the caller and is reported as a configuration error.
func Expand(reg *params.Registry, ts []tasks.Task, conditionIDs, modelIDs []string, repeats int) ([]Spec, error) {
	if repeats < 1 {
		return nil, fmt.Errorf("repeats must be >= 1, got %d", repeats)
	}
	specs := make([]Spec, 0, len(ts)*len(conditionIDs)*len(modelIDs)*repeats)
	trialID := 1
	for _, task := range ts {
		for _, condID := range conditionIDs {
			cond, ok := reg.Conditions[condID]
			if !ok {
				return nil, fmt.Errorf("unknown condition %q", condID)
			}
			for _, modelID := range modelIDs {
				model, ok := reg.Models[modelID]
				if !ok {
					return nil, fmt.Errorf("unknown model %q", modelID)
				}
				for repeat := 1; repeat <= repeats; repeat++ {
					specs = append(specs, Spec{
						TrialID:   trialID,
						Task:      task,
						Condition: cond,
						Model:     model,
						Repeat:    repeat,
					})
					trialID++
				}
			}
		}
	}
	return specs, nil
}

// Run simulates every spec sequentially against a single stream seeded with
// info.Seed. This is the reproducibility baseline: same seed, same specs,
// same rows.
func Run(reg *params.Registry, specs []Spec, info RunInfo) []result.Trial {
	rng := rand.New(rand.NewSource(info.Seed))
	rows := make([]result.Trial, len(specs))
	for i := range specs {
		rows[i] = runOne(reg, &specs[i], info, rng)
	}
	return rows
}

// RunParallel simulates specs on a bounded worker pool. Each trial gets an
// independently derived stream, so output is deterministic for a given seed
// and independent of worker count, but the draw sequence differs from the
// sequential mode.
func RunParallel(reg *params.Registry, specs []Spec, info RunInfo, workers int) []result.Trial {
	if workers < 1 {
		workers = 1
	}
	rows := make([]result.Trial, len(specs))
	specCh := make(chan int)
	done := make(chan struct{})
	for w := 0; w < workers; w++ {
		go func() {
			for i := range specCh {
				rng := rand.New(rand.NewSource(trialSeed(info.Seed, specs[i].TrialID)))
				rows[i] = runOne(reg, &specs[i], info, rng)
			}
			done <- struct{}{}
		}()
	}
	for i := range specs {
		specCh <- i
	}
	close(specCh)
	for w := 0; w < workers; w++ {
		<-done
	}
	return rows
}

func runOne(reg *params.Registry, spec *Spec, info RunInfo, rng *rand.Rand) result.Trial {
	outcome := sim.Simulate(reg, &spec.Task, spec.Condition, spec.Model, rng)
	return result.Trial{
		SchemaVersion: result.SchemaVersion,
		ExperimentID:  result.ExperimentID,
		RunID:         info.RunID,
		TimestampUTC:  info.TimestampUTC,
		Mode:          info.Mode,
		Seed:          info.Seed,
		TrialID:       spec.TrialID,

		TaskID:      spec.Task.ID,
		TaskTitle:   spec.Task.Title,
		TaskTier:    spec.Task.Tier,
		RepoType:    spec.Task.RepoType,
		RepoSlug:    spec.Task.RepoSlug,
		RepoLocator: spec.Task.RepoLocator,

		Model:          spec.Model.ID,
		Condition:      spec.Condition.ID,
		ConditionLabel: spec.Condition.Label,
		RepeatIndex:    spec.Repeat,

		HasGlanceFiles:       boolToInt(spec.Condition.HasGlanceFiles),
		DiscoveryInstruction: boolToInt(spec.Condition.DiscoveryInstruction),
		InlineStrategy:       spec.Condition.InlineStrategy,
		InlineBudgetTokens:   spec.Condition.InlineBudgetTokens,

		Outcome: outcome,
	}
}

// trialSeed mixes the run seed with the trial ID (splitmix64 finalizer) so
// parallel trials get well-separated streams.
func trialSeed(seed int64, trialID int) int64 {
	z := uint64(seed) + uint64(trialID)*0x9e3779b97f4a7c15
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return int64(z ^ (z >> 31))
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
