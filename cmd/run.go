package cmd

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/signalnine/glancebench/internal/config"
	"github.com/signalnine/glancebench/internal/params"
	"github.com/signalnine/glancebench/internal/pricing"
	"github.com/signalnine/glancebench/internal/result"
	"github.com/signalnine/glancebench/internal/runner"
	"github.com/signalnine/glancebench/internal/tasks"
)

var (
	flagTaskSuite  string
	flagConditions string
	flagModels     string
	flagTiers      string
	flagRepoTypes  string
	flagRepeats    int
	flagSeed       int64
	flagMaxTasks   int
	flagParallel   int
	flagOutput     string
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Simulate a trial matrix and write a run CSV",
		Long: "Simulate the full (task × condition × model × repeat) matrix. " +
			"The default sequential mode advances one seeded stream in matrix order, " +
			"so equal seeds reproduce runs byte for byte. With --parallel > 1 each " +
			"trial gets an independently derived stream: still deterministic per seed, " +
			"but a different fixed sequence than sequential mode.",
		RunE: runSimulation,
	}
	cmd.Flags().StringVar(&flagTaskSuite, "task-suite", "", "override task suite path")
	cmd.Flags().StringVar(&flagConditions, "conditions", "", "comma-separated condition filter")
	cmd.Flags().StringVar(&flagModels, "models", "", "comma-separated model filter")
	cmd.Flags().StringVar(&flagTiers, "tiers", "", "comma-separated tier filter")
	cmd.Flags().StringVar(&flagRepoTypes, "repo-types", "", "comma-separated repo type filter")
	cmd.Flags().IntVar(&flagRepeats, "repeats", 0, "override repeat count")
	cmd.Flags().Int64Var(&flagSeed, "seed", 0, "override random seed")
	cmd.Flags().IntVar(&flagMaxTasks, "max-tasks", -1, "cap tasks after filtering (0 = no cap)")
	cmd.Flags().IntVar(&flagParallel, "parallel", 1, "max concurrent trial workers")
	cmd.Flags().StringVar(&flagOutput, "output", "", "output CSV path")
	return cmd
}

func runSimulation(cmd *cobra.Command, args []string) error {
	reg := params.Default()
	cfg, err := config.Load(cfgFile, reg)
	if err != nil {
		return err
	}
	if err := applyRunFlags(cfg, reg); err != nil {
		return err
	}

	if cfg.Pricing != "" {
		table, err := pricing.Load(cfg.Pricing)
		if err != nil {
			return err
		}
		if err := pricing.Apply(table, reg); err != nil {
			return err
		}
	}

	suite, err := tasks.Load(cfg.TaskSuite, reg)
	if err != nil {
		return err
	}
	selected := tasks.Filter(suite, cfg.Tiers, cfg.RepoTypes, cfg.MaxTasks)
	if len(selected) == 0 {
		return fmt.Errorf("no tasks selected after filters; adjust tiers/repo_types/max_tasks")
	}

	specs, err := runner.Expand(reg, selected, cfg.Conditions, cfg.Models, cfg.Repeats)
	if err != nil {
		return err
	}

	stamp := time.Now().UTC().Format("20060102_150405")
	info := runner.RunInfo{
		RunID:        fmt.Sprintf("%s-%s-%s", result.ExperimentID, stamp, uuid.New().String()[:8]),
		TimestampUTC: stamp,
		Mode:         "simulate",
		Seed:         cfg.Seed,
	}
	logger.Debug("expanded trial matrix",
		zap.Int("tasks", len(selected)),
		zap.Int("trials", len(specs)),
		zap.Int64("seed", cfg.Seed),
		zap.Int("parallel", flagParallel))

	var rows []result.Trial
	if flagParallel > 1 {
		rows = runner.RunParallel(reg, specs, info, flagParallel)
	} else {
		rows = runner.Run(reg, specs, info)
	}

	outputPath := flagOutput
	if outputPath == "" {
		outputPath = filepath.Join(cfg.Results.Dir, fmt.Sprintf("runs_%s.csv", stamp))
	}
	latestPath := filepath.Join(cfg.Results.Dir, "runs_latest.csv")
	if err := result.WriteCSV(outputPath, rows); err != nil {
		return err
	}
	if err := result.UpdateLatest(outputPath, latestPath); err != nil {
		return err
	}

	var successes int
	for _, row := range rows {
		successes += row.TaskSuccess
	}
	overall := float64(successes) / float64(len(rows))

	logger.Info("run complete",
		zap.String("run_id", info.RunID),
		zap.Int("rows", len(rows)),
		zap.Float64("overall_success", overall))
	fmt.Printf("Wrote %d rows: %s\n", len(rows), outputPath)
	fmt.Printf("Updated latest pointer: %s\n", latestPath)
	fmt.Printf("Overall success rate: %.3f\n", overall)
	return nil
}

// applyRunFlags layers CLI overrides onto the manifest and re-validates them
// against the registry allow-lists.
func applyRunFlags(cfg *config.Config, reg *params.Registry) error {
	if flagTaskSuite != "" {
		cfg.TaskSuite = flagTaskSuite
	}
	if flagConditions != "" {
		values, err := config.ParseList(flagConditions, params.ConditionOrder, "--conditions")
		if err != nil {
			return err
		}
		cfg.Conditions = values
	}
	if flagModels != "" {
		values, err := config.ParseList(flagModels, config.ModelAllowList(reg), "--models")
		if err != nil {
			return err
		}
		cfg.Models = values
	}
	if flagTiers != "" {
		values, err := config.ParseList(flagTiers, params.TierOrder, "--tiers")
		if err != nil {
			return err
		}
		cfg.Tiers = values
	}
	if flagRepoTypes != "" {
		values, err := config.ParseList(flagRepoTypes, params.RepoTypeOrder, "--repo-types")
		if err != nil {
			return err
		}
		cfg.RepoTypes = values
	}
	if flagRepeats > 0 {
		cfg.Repeats = flagRepeats
	}
	if flagSeed != 0 {
		cfg.Seed = flagSeed
	}
	if flagMaxTasks >= 0 {
		cfg.MaxTasks = flagMaxTasks
	}
	return cfg.Validate(reg)
}
