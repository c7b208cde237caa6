package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/PANDASANG1231/risk-model-tool/pkg/logger"
	"github.com/PANDASANG1231/risk-model-tool/pkg/riskkit/chart"
	"github.com/PANDASANG1231/risk-model-tool/pkg/riskkit/frame"
	"github.com/PANDASANG1231/risk-model-tool/pkg/riskkit/sheet"
)

type bookFlags struct {
	book   string
	sheet  string
	anchor string
}

func (b *bookFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&b.book, "book", "", "Workbook to modify; created when missing")
	cmd.Flags().StringVar(&b.sheet, "sheet", "Sheet1", "Target sheet; created when missing")
	cmd.Flags().StringVar(&b.anchor, "anchor", "A1", "Top-left cell, e.g. G1")
	_ = cmd.MarkFlagRequired("book")
}

type writeFlags struct {
	bookFlags
	index       bool
	skipHeader  bool
	headerStyle bool
	colWidth    float64
	autoFilter  bool
	printArea   bool
	chartType   string
	chartAnchor string
	chartTitle  string
	chartX      string
	chartY      []string
}

type imageFlags struct {
	bookFlags
	scale   float64
	offsetX int
	offsetY int
	alt     string
}

func newSheetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sheet",
		Short: "Insert data and images into a workbook",
	}
	cmd.AddCommand(newSheetWriteCmd(), newSheetImageCmd())
	return cmd
}

func newSheetWriteCmd() *cobra.Command {
	flags := &writeFlags{}

	cmd := &cobra.Command{
		Use:   "write <data.csv>",
		Short: "Write a CSV data set into a sheet at an anchor cell",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSheetWrite(cmd, args[0], flags)
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&flags.index, "index", false, "Write the row position as the first column")
	cmd.Flags().BoolVar(&flags.skipHeader, "skip-header", false, "Do not write the header row")
	cmd.Flags().BoolVar(&flags.headerStyle, "header-style", false, "Bold, filled header row")
	cmd.Flags().Float64Var(&flags.colWidth, "col-width", 0, "Width of the written columns")
	cmd.Flags().BoolVar(&flags.autoFilter, "autofilter", false, "Add an auto filter over the block")
	cmd.Flags().BoolVar(&flags.printArea, "print-area", false, "Set the print area to the block")
	cmd.Flags().StringVar(&flags.chartType, "chart", "", "Add a native chart of the block: line, bar, scatter, pie")
	cmd.Flags().StringVar(&flags.chartAnchor, "chart-anchor", "", "Chart anchor (default: two columns right of the block)")
	cmd.Flags().StringVar(&flags.chartTitle, "chart-title", "", "Chart title")
	cmd.Flags().StringVar(&flags.chartX, "x", "", "Category column of the chart")
	cmd.Flags().StringSliceVar(&flags.chartY, "y", nil, "Value columns of the chart")

	return cmd
}

func runSheetWrite(cmd *cobra.Command, dataPath string, flags *writeFlags) error {
	anchor, err := sheet.ParseAnchor(flags.anchor)
	if err != nil {
		return err
	}
	fr, err := readFrame(dataPath)
	if err != nil {
		return err
	}

	f, err := openBook(flags.book)
	if err != nil {
		return err
	}
	defer f.Close()

	rng, err := sheet.WriteFrame(f, flags.sheet, anchor, fr, sheet.FrameOptions{
		SkipHeader:  flags.skipHeader,
		Index:       flags.index,
		HeaderStyle: flags.headerStyle,
		ColWidth:    flags.colWidth,
		AutoFilter:  flags.autoFilter,
		PrintArea:   flags.printArea,
	})
	if err != nil {
		return err
	}
	logger.Info(cmd.Context(), "frame written", zap.String("range", sheet.FormatRange(rng)))

	if flags.chartType != "" {
		chartCfg, err := chart.FromFrame(fr, flags.chartTitle, chart.Options{
			Type:   chart.Type(flags.chartType),
			X:      flags.chartX,
			Y:      flags.chartY,
			Width:  cfg.Chart.Width,
			Height: cfg.Chart.Height,
		})
		if err != nil {
			return err
		}
		at := rng.To.Offset(2, 0)
		at.Row = rng.From.Row
		if flags.chartAnchor != "" {
			if at, err = sheet.ParseAnchor(flags.chartAnchor); err != nil {
				return err
			}
		}
		if err := sheet.InsertChart(f, flags.sheet, at, chartCfg, rng); err != nil {
			return err
		}
	}

	return f.SaveAs(flags.book)
}

func newSheetImageCmd() *cobra.Command {
	flags := &imageFlags{}

	cmd := &cobra.Command{
		Use:   "image <image>",
		Short: "Anchor an image file to a cell",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runSheetImage(args[0], flags)
		},
	}

	flags.register(cmd)
	cmd.Flags().Float64Var(&flags.scale, "scale", 1, "Scale factor")
	cmd.Flags().IntVar(&flags.offsetX, "offset-x", 0, "Horizontal offset from the anchor, in pixels")
	cmd.Flags().IntVar(&flags.offsetY, "offset-y", 0, "Vertical offset from the anchor, in pixels")
	cmd.Flags().StringVar(&flags.alt, "alt", "", "Alternative text")

	return cmd
}

func runSheetImage(imagePath string, flags *imageFlags) error {
	anchor, err := sheet.ParseAnchor(flags.anchor)
	if err != nil {
		return err
	}
	f, err := openBook(flags.book)
	if err != nil {
		return err
	}
	defer f.Close()

	opts := sheet.ImageOptions{
		ScaleX:  flags.scale,
		ScaleY:  flags.scale,
		OffsetX: flags.offsetX,
		OffsetY: flags.offsetY,
		AltText: flags.alt,
	}
	if opts.AltText == "" {
		opts.AltText = strings.TrimSuffix(filepath.Base(imagePath), filepath.Ext(imagePath))
	}
	if err := sheet.InsertImage(f, flags.sheet, anchor, imagePath, opts); err != nil {
		return err
	}
	return f.SaveAs(flags.book)
}

// openBook opens the workbook at path, or returns a new one when it does not exist.
func openBook(path string) (*excelize.File, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return excelize.NewFile(), nil
	}
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return f, nil
}

func readFrame(path string) (*frame.Frame, error) {
	in, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer in.Close()

	fr, err := frame.ReadCSV(in)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return fr, nil
}
