package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/PANDASANG1231/risk-model-tool/pkg/logger"
	"github.com/PANDASANG1231/risk-model-tool/pkg/riskkit/corr"
)

type corrFlags struct {
	thresh float64
	out    string
	full   bool
}

func newCorrCmd() *cobra.Command {
	flags := &corrFlags{}

	cmd := &cobra.Command{
		Use:   "corr <data.csv>",
		Short: "Drop variables that correlate above a threshold",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCorr(cmd, args[0], flags)
		},
	}

	cmd.Flags().Float64Var(&flags.thresh, "thresh", 0.8, "Absolute correlation above which a variable is dropped")
	cmd.Flags().StringVarP(&flags.out, "out", "o", "", "Output CSV (default: stdout)")
	cmd.Flags().BoolVar(&flags.full, "full", false, "Write the full matrix without filtering")

	return cmd
}

func runCorr(cmd *cobra.Command, dataPath string, flags *corrFlags) error {
	fr, err := readFrame(dataPath)
	if err != nil {
		return err
	}

	m, err := corr.Generate(fr)
	if err != nil {
		return err
	}
	if !flags.full {
		before := len(m.Names)
		if m, err = corr.Filter(m, flags.thresh); err != nil {
			return err
		}
		logger.Info(cmd.Context(), "correlation filter applied",
			zap.Int("variables", before), zap.Int("kept", len(m.Names)), zap.Float64("thresh", flags.thresh))
	}

	out, err := m.Frame()
	if err != nil {
		return err
	}
	return writeOut(cmd, flags.out, out.WriteCSV)
}
