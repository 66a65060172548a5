package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	cfgFile string
	verbose bool
	logger  *zap.Logger
)

func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "glancebench",
		Short: "Simulation harness for glance context-injection adoption decisions",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			config := zap.NewProductionConfig()
			if verbose {
				config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}
			var err error
			logger, err = config.Build()
			return err
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logger != nil {
				_ = logger.Sync()
			}
		},
	}
	root.PersistentFlags().StringVar(&cfgFile, "config", "glancebench.yaml", "config file path")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	root.AddCommand(newRunCmd())
	root.AddCommand(newAnalyzeCmd())
	root.AddCommand(newListCmd())
	root.AddCommand(newValidateCmd())
	return root
}
