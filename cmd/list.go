package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/signalnine/glancebench/internal/config"
	"github.com/signalnine/glancebench/internal/params"
	"github.com/signalnine/glancebench/internal/tasks"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List conditions, models, tiers, and tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			reg := params.Default()
			cfg, err := config.Load(cfgFile, reg)
			if err != nil {
				return err
			}

			fmt.Println("Conditions:")
			for _, id := range params.ConditionOrder {
				c := reg.Conditions[id]
				fmt.Printf("  - %s (%s, inline: %s)\n", c.ID, c.Label, c.InlineStrategy)
			}
			fmt.Println("\nModels:")
			for _, id := range params.ModelOrder {
				m := reg.Models[id]
				fmt.Printf("  - %s (input $%.4f/1k, output $%.4f/1k)\n", m.ID, m.InputCostPer1K, m.OutputCostPer1K)
			}
			fmt.Printf("\nTiers: %s\n", strings.Join(params.TierOrder, ", "))
			fmt.Printf("Repo types: %s\n", strings.Join(params.RepoTypeOrder, ", "))

			suite, err := tasks.Load(cfg.TaskSuite, reg)
			if err != nil {
				return err
			}
			fmt.Println("\nTasks:")
			for _, t := range suite {
				fmt.Printf("  - %s [%s/%s] %s\n", t.ID, t.Tier, t.RepoType, t.Title)
			}
			return nil
		},
	}
}
