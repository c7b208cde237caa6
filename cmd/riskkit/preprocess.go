package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/PANDASANG1231/risk-model-tool/pkg/logger"
	"github.com/PANDASANG1231/risk-model-tool/pkg/riskkit/frame"
	"github.com/PANDASANG1231/risk-model-tool/pkg/riskkit/preprocess"
)

type preprocessFlags struct {
	config       string
	categorical  []string
	numerical    []string
	target       string
	steps        []string
	out          string
	reference    string
	woeReference string
	woeDir       string
}

func newPreprocessCmd() *cobra.Command {
	flags := &preprocessFlags{}

	cmd := &cobra.Command{
		Use:   "preprocess",
		Short: "Cap, floor, impute, WOE-encode, normalize and scale modelling data",
	}
	cmd.PersistentFlags().StringSliceVar(&flags.steps, "steps",
		[]string{string(preprocess.StepCap), string(preprocess.StepFloor), string(preprocess.StepMissingImpute)},
		"Steps in order: Cap, Floor, MissingImpute, Woe, Normalize, Scale")
	cmd.PersistentFlags().StringVarP(&flags.out, "out", "o", "", "Output CSV (default: stdout)")

	configCmd := &cobra.Command{
		Use:   "config <data.csv>",
		Short: "Write a default config table for a data set",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPreprocessConfig(cmd, args[0], flags)
		},
	}
	configCmd.Flags().StringSliceVar(&flags.categorical, "categorical", nil, "Columns to treat as categorical")
	configCmd.Flags().StringSliceVar(&flags.numerical, "numerical", nil, "Columns to treat as numerical")

	fitCmd := &cobra.Command{
		Use:   "fit <data.csv>",
		Short: "Fit the steps on a data set and write the transformed data and reference tables",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPreprocessFit(cmd, args[0], flags)
		},
	}
	fitCmd.Flags().StringVar(&flags.config, "config-table", "", "Config table CSV")
	fitCmd.Flags().StringVar(&flags.target, "target", "", "Binary target column, required by Woe")
	fitCmd.Flags().StringVar(&flags.reference, "reference", "reference.csv", "Where to write the reference table")
	fitCmd.Flags().StringVar(&flags.woeReference, "woe-reference", "", "Where to write the WOE table")
	fitCmd.Flags().StringVar(&flags.woeDir, "woe-dir", "", "Directory for the WOE table and per-variable charts")
	_ = fitCmd.MarkFlagRequired("config-table")

	applyCmd := &cobra.Command{
		Use:   "apply <data.csv>",
		Short: "Apply fitted steps to a data set",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPreprocessApply(cmd, args[0], flags)
		},
	}
	applyCmd.Flags().StringVar(&flags.reference, "reference", "reference.csv", "Reference table written by fit")
	applyCmd.Flags().StringVar(&flags.woeReference, "woe-reference", "", "WOE table written by fit")

	cmd.AddCommand(configCmd, fitCmd, applyCmd)
	return cmd
}

func runPreprocessConfig(cmd *cobra.Command, dataPath string, flags *preprocessFlags) error {
	fr, err := readFrame(dataPath)
	if err != nil {
		return err
	}
	known := make(map[string]frame.Kind)
	for _, c := range flags.categorical {
		known[c] = frame.Categorical
	}
	for _, c := range flags.numerical {
		known[c] = frame.Numerical
	}

	tableCfg, err := preprocess.CreateConfig(fr, known)
	if err != nil {
		return err
	}
	return writeOut(cmd, flags.out, tableCfg.WriteCSV)
}

func newTactic(cmd *cobra.Command, table *preprocess.Config, flags *preprocessFlags) (*preprocess.Tactic, error) {
	t := preprocess.NewTactic(table, flags.target)
	for _, s := range flags.steps {
		kind, err := preprocess.ParseStepKind(s)
		if err != nil {
			return nil, err
		}
		t.AddProcess(cmd.Context(), kind)
	}
	logger.Info(cmd.Context(), "pipeline", zap.String("steps", t.Summary()))
	return t, nil
}

func runPreprocessFit(cmd *cobra.Command, dataPath string, flags *preprocessFlags) error {
	fr, err := readFrame(dataPath)
	if err != nil {
		return err
	}
	table, err := readTable(flags.config, preprocess.ReadConfig)
	if err != nil {
		return err
	}

	t, err := newTactic(cmd, table, flags)
	if err != nil {
		return err
	}
	t.WOEOutputDir = flags.woeDir

	out, err := t.Fit(cmd.Context(), fr)
	if err != nil {
		return err
	}

	if err := t.SaveReference(flags.reference); err != nil {
		return err
	}
	if flags.woeReference != "" && t.WOEReference != nil {
		if err := writeOut(cmd, flags.woeReference, t.WOEReference.WriteCSV); err != nil {
			return err
		}
	}
	return writeOut(cmd, flags.out, out.WriteCSV)
}

func runPreprocessApply(cmd *cobra.Command, dataPath string, flags *preprocessFlags) error {
	fr, err := readFrame(dataPath)
	if err != nil {
		return err
	}
	table, err := readTable(flags.reference, preprocess.ReadConfig)
	if err != nil {
		return err
	}

	t, err := newTactic(cmd, table, flags)
	if err != nil {
		return err
	}
	if flags.woeReference != "" {
		if t.WOEReference, err = readTable(flags.woeReference, preprocess.ReadWOETable); err != nil {
			return err
		}
	}

	out, err := t.Apply(cmd.Context(), fr)
	if err != nil {
		return err
	}
	return writeOut(cmd, flags.out, out.WriteCSV)
}

func readTable[T any](path string, read func(io.Reader) (T, error)) (T, error) {
	var zero T
	in, err := os.Open(path)
	if err != nil {
		return zero, err
	}
	defer in.Close()

	v, err := read(in)
	if err != nil {
		return zero, fmt.Errorf("%s: %w", path, err)
	}
	return v, nil
}

// writeOut writes through write to path, or to the command output when path is empty.
func writeOut(cmd *cobra.Command, path string, write func(io.Writer) error) error {
	if path == "" {
		return write(cmd.OutOrStdout())
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
