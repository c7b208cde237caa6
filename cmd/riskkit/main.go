// Package main provides the riskkit command line: spreadsheet insertion,
// workbook inspection, charts, report mails, preprocessing and correlation
// filtering for credit-risk analysts.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/PANDASANG1231/risk-model-tool/pkg/logger"
	"github.com/PANDASANG1231/risk-model-tool/pkg/riskkit/config"
)

var (
	configPath string
	logLevel   string

	// cfg is loaded before any subcommand runs.
	cfg *config.Config
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "riskkit",
		Short: "Helpers for credit-risk reporting and model data preparation",
		Long: `riskkit writes data frames, images and charts into workbooks, inspects the
result, renders charts, mails reports and prepares modelling data.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			if cfg, err = config.Load(configPath); err != nil {
				return err
			}
			level := cfg.Log.Level
			if logLevel != "" {
				level = logLevel
			}
			if err := logger.Setup(cfg.Environment, level); err != nil {
				return err
			}
			cmd.SetContext(logger.WithFields(cmd.Context(), zap.String("command", cmd.Name())))
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML config file (default: environment only)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(
		newInspectCmd(),
		newSheetCmd(),
		newChartCmd(),
		newMailCmd(),
		newPreprocessCmd(),
		newCorrCmd(),
	)
	return rootCmd
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)

	err := newRootCmd().ExecuteContext(ctx)
	stop()
	logger.Sync()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
