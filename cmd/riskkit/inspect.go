package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/PANDASANG1231/risk-model-tool/pkg/riskkit"
)

type inspectFlags struct {
	outputPath    string
	pretty        bool
	mode          string
	sheets        []string
	sheetsDir     string
	printAreasDir string
}

func newInspectCmd() *cobra.Command {
	flags := &inspectFlags{}

	cmd := &cobra.Command{
		Use:   "inspect <book.xlsx>",
		Short: "Report cells, data blocks, charts, pictures and print areas of a workbook as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(cmd, args[0], flags)
		},
	}

	cmd.Flags().StringVarP(&flags.outputPath, "output", "o", "", "Output file path (default: stdout)")
	cmd.Flags().BoolVar(&flags.pretty, "pretty", false, "Pretty-print JSON output")
	cmd.Flags().StringVar(&flags.mode, "mode", "standard", "Inspection mode: light, standard, verbose")
	cmd.Flags().StringSliceVar(&flags.sheets, "sheet", nil, "Only inspect these sheets")
	cmd.Flags().StringVar(&flags.sheetsDir, "sheets-dir", "", "Directory for per-sheet output files")
	cmd.Flags().StringVar(&flags.printAreasDir, "print-areas-dir", "", "Directory for per-print-area output files")

	return cmd
}

func runInspect(cmd *cobra.Command, inputPath string, flags *inspectFlags) error {
	mode, err := riskkit.ParseMode(flags.mode)
	if err != nil {
		return err
	}

	wb, err := riskkit.Inspect(cmd.Context(), inputPath, riskkit.Options{Mode: mode, Sheets: flags.sheets})
	if err != nil {
		return fmt.Errorf("inspection failed: %w", err)
	}

	if flags.outputPath != "" || (flags.sheetsDir == "" && flags.printAreasDir == "") {
		if err := writeJSON(cmd, flags.outputPath, wb, flags.pretty); err != nil {
			return err
		}
	}

	if flags.sheetsDir != "" {
		if err := os.MkdirAll(flags.sheetsDir, 0o755); err != nil {
			return err
		}
		for _, name := range wb.SheetOrder {
			sheet := wb.Sheets[name]
			if err := writeJSON(cmd, filepath.Join(flags.sheetsDir, name+".json"), &sheet, flags.pretty); err != nil {
				return fmt.Errorf("failed to write sheet files: %w", err)
			}
		}
	}

	if flags.printAreasDir != "" {
		if err := os.MkdirAll(flags.printAreasDir, 0o755); err != nil {
			return err
		}
		counts := make(map[string]int)
		for _, view := range riskkit.PrintAreaViews(wb) {
			counts[view.SheetName]++
			name := fmt.Sprintf("%s_area%d.json", view.SheetName, counts[view.SheetName])
			if err := writeJSON(cmd, filepath.Join(flags.printAreasDir, name), &view, flags.pretty); err != nil {
				return fmt.Errorf("failed to write print area files: %w", err)
			}
		}
	}

	return nil
}

// writeJSON writes v to path, or to the command output when path is empty.
func writeJSON(cmd *cobra.Command, path string, v any, pretty bool) error {
	var data []byte
	var err error
	if pretty {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}

	if path == "" {
		_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
