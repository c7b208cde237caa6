package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/PANDASANG1231/risk-model-tool/pkg/riskkit/chart"
)

type chartFlags struct {
	title     string
	chartType string
	x         string
	y         []string
	width     int
	height    int
	out       string
	inline    bool
	pretty    bool
}

func newChartCmd() *cobra.Command {
	flags := &chartFlags{}

	cmd := &cobra.Command{
		Use:   "chart <data.csv>",
		Short: "Render a CSV data set as a chart",
		Long: `Render a CSV data set as a chart. The output format follows the --out
extension: .html (interactive), .png, .svg or .json. Without --out the chart
configuration is printed as JSON.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChart(cmd, args[0], flags)
		},
	}

	cmd.Flags().StringVar(&flags.title, "title", "", "Chart title")
	cmd.Flags().StringVar(&flags.chartType, "type", string(chart.Line), "Chart type: line, bar, scatter, pie")
	cmd.Flags().StringVar(&flags.x, "x", "", "Category column (default: row positions)")
	cmd.Flags().StringSliceVar(&flags.y, "y", nil, "Value columns (default: every numerical column)")
	cmd.Flags().IntVar(&flags.width, "width", 0, "Width in pixels (default from config)")
	cmd.Flags().IntVar(&flags.height, "height", 0, "Height in pixels (default from config)")
	cmd.Flags().StringVarP(&flags.out, "out", "o", "", "Output file: .html, .png, .svg or .json")
	cmd.Flags().BoolVar(&flags.inline, "inline", false, "Print a PNG data URI instead")
	cmd.Flags().BoolVar(&flags.pretty, "pretty", false, "Pretty-print JSON output")

	return cmd
}

func runChart(cmd *cobra.Command, dataPath string, flags *chartFlags) error {
	fr, err := readFrame(dataPath)
	if err != nil {
		return err
	}

	opts := chart.Options{
		Type:   chart.Type(flags.chartType),
		X:      flags.x,
		Y:      flags.y,
		Width:  flags.width,
		Height: flags.height,
	}
	if opts.Width == 0 {
		opts.Width = cfg.Chart.Width
	}
	if opts.Height == 0 {
		opts.Height = cfg.Chart.Height
	}

	c, err := chart.FromFrame(fr, flags.title, opts)
	if err != nil {
		return err
	}

	switch {
	case flags.inline:
		uri, err := c.Inline()
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), uri)
		return err
	case flags.out != "":
		return c.WriteFile(flags.out)
	default:
		return writeJSON(cmd, "", c, flags.pretty)
	}
}
