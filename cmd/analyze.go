package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/signalnine/glancebench/internal/analysis"
	"github.com/signalnine/glancebench/internal/config"
	"github.com/signalnine/glancebench/internal/params"
	"github.com/signalnine/glancebench/internal/report"
	"github.com/signalnine/glancebench/internal/result"
)

var (
	flagInput     string
	flagFormat    string
	flagReportDir string
)

func newAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze [run-csv]",
		Short: "Aggregate a run, evaluate adoption gates, and write reports",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg := params.Default()
			cfg, err := config.Load(cfgFile, reg)
			if err != nil {
				return err
			}

			inputPath := flagInput
			if len(args) > 0 {
				inputPath = args[0]
			}
			if inputPath == "" {
				inputPath = filepath.Join(cfg.Results.Dir, "runs_latest.csv")
			}
			reportDir := flagReportDir
			if reportDir == "" {
				reportDir = filepath.Join(cfg.Results.Dir, "report")
			}

			rows, err := result.ReadCSV(inputPath)
			if err != nil {
				return err
			}
			if len(rows) == 0 {
				return fmt.Errorf("no rows loaded from %s", inputPath)
			}

			summaries := analysis.SummarizeByCondition(rows)
			decision := analysis.EvaluateAdoption(rows)

			summaryCSV := filepath.Join(reportDir, "charts", "condition_summary_latest.csv")
			if err := report.WriteSummaryCSV(summaryCSV, summaries); err != nil {
				return err
			}
			if err := report.WriteArtifacts(reportDir, inputPath, len(rows), summaries, &decision); err != nil {
				return err
			}

			logger.Info("analysis complete",
				zap.Int("rows", len(rows)),
				zap.String("recommended", decision.RecommendedCondition),
				zap.Bool("adopt", decision.Adopt))

			if err := report.Generate(os.Stdout, flagFormat, summaries, &decision); err != nil {
				return err
			}
			fmt.Printf("\nWrote summary CSV: %s\n", summaryCSV)
			fmt.Printf("Wrote reports to: %s\n", reportDir)
			return nil
		},
	}
	cmd.Flags().StringVar(&flagInput, "input", "", "run CSV path (default <results.dir>/runs_latest.csv)")
	cmd.Flags().StringVar(&flagFormat, "format", "table", "output format (table, markdown, json)")
	cmd.Flags().StringVar(&flagReportDir, "report-dir", "", "report output directory (default <results.dir>/report)")
	return cmd
}
