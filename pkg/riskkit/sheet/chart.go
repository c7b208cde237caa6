package sheet

import (
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/PANDASANG1231/risk-model-tool/pkg/riskkit/chart"
)

// ErrSeriesNotInRange indicates a chart series whose column was not written in the source block.
var ErrSeriesNotInRange = errors.New("series column not in source range")

var nativeTypes = map[chart.Type]excelize.ChartType{ //nolint: gochecknoglobals
	chart.Line:    excelize.Line,
	chart.Bar:     excelize.Col,
	chart.Scatter: excelize.Scatter,
	chart.Pie:     excelize.Pie,
}

// InsertChart adds a native workbook chart at anchor whose series reference
// the cells of source, a block previously written by WriteFrame.
func InsertChart(f *excelize.File, sheet string, anchor Anchor, cfg *chart.Config, source Range) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := anchor.fits(1, 1); err != nil {
		return err
	}
	typ, ok := nativeTypes[cfg.Type]
	if !ok {
		return fmt.Errorf("%w: unknown type %q", chart.ErrInvalidConfig, cfg.Type)
	}

	categories := ""
	switch {
	case cfg.XName != "":
		ref, ok := source.ColumnRef(cfg.XName)
		if !ok {
			return fmt.Errorf("%w: %q", ErrSeriesNotInRange, cfg.XName)
		}
		categories = ref
	case source.IndexColumn != "":
		categories, _ = source.ColumnRef(source.IndexColumn)
	}

	series := cfg.Series
	if cfg.Type == chart.Pie {
		series = series[:1]
	}
	native := &excelize.Chart{
		Type:  typ,
		Title: []excelize.RichTextRun{{Text: cfg.Title}},
	}
	for _, s := range series {
		values, ok := source.ColumnRef(s.Name)
		if !ok {
			return fmt.Errorf("%w: %q", ErrSeriesNotInRange, s.Name)
		}
		name, ok := source.HeaderRef(s.Name)
		if !ok {
			name = s.Name
		}
		native.Series = append(native.Series, excelize.ChartSeries{
			Name:       name,
			Categories: categories,
			Values:     values,
		})
	}
	if cfg.Width > 0 && cfg.Height > 0 {
		native.Dimension = excelize.ChartDimension{Width: uint(cfg.Width), Height: uint(cfg.Height)}
	}

	if err := ensureSheet(f, sheet); err != nil {
		return err
	}
	if err := f.AddChart(sheet, anchor.String(), native); err != nil {
		return fmt.Errorf("insert chart at %s: %w", anchor, err)
	}
	return nil
}
