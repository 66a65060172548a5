package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/signalnine/glancebench/internal/config"
	"github.com/signalnine/glancebench/internal/params"
	"github.com/signalnine/glancebench/internal/pricing"
	"github.com/signalnine/glancebench/internal/tasks"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate the manifest, pricing table, and task suite",
		RunE: func(cmd *cobra.Command, args []string) error {
			reg := params.Default()
			cfg, err := config.Load(cfgFile, reg)
			if err != nil {
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

			fmt.Printf("Config OK: %s\n", cfgFile)
			fmt.Printf("Task suite OK: %s (%d tasks, %d selected)\n", cfg.TaskSuite, len(suite), len(selected))
			fmt.Printf("Matrix: %d tasks × %d conditions × %d models × %d repeats = %d trials\n",
				len(selected), len(cfg.Conditions), len(cfg.Models), cfg.Repeats,
				len(selected)*len(cfg.Conditions)*len(cfg.Models)*cfg.Repeats)
			return nil
		},
	}
}
