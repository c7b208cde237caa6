package sheet

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/PANDASANG1231/risk-model-tool/pkg/riskkit/frame"
)

// ErrEmptyBlock indicates a write with nothing to put in the sheet.
var ErrEmptyBlock = errors.New("nothing to write")

const printAreaName = "_xlnm.Print_Area"

// FrameOptions controls how WriteFrame lays out a frame.
type FrameOptions struct {
	// SkipHeader omits the row of column names.
	SkipHeader bool
	// Index writes the 0-based row position as the first column.
	Index bool
	// IndexName labels the index column; defaults to "index".
	IndexName string
	// HeaderStyle makes the header bold with a light fill.
	HeaderStyle bool
	// ColWidth sets the width of every written column when positive.
	ColWidth float64
	// AutoFilter adds a filter over the block; requires a header.
	AutoFilter bool
	// PrintArea sets the sheet print area to the block.
	PrintArea bool
}

// ensureSheet creates sheet when the workbook does not have it.
func ensureSheet(f *excelize.File, sheet string) error {
	idx, err := f.GetSheetIndex(sheet)
	if err != nil {
		return err
	}
	if idx == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return fmt.Errorf("create sheet %q: %w", sheet, err)
		}
	}
	return nil
}

// cellValue converts a frame cell to a value excelize writes; missing and
// non-finite numbers become empty cells.
func cellValue(v any) any {
	v = frame.Normalize(v)
	if frame.IsMissing(v) {
		return nil
	}
	if f, ok := v.(float64); ok && math.IsInf(f, 0) {
		return nil
	}
	return v
}

func cellValues(values []any) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = cellValue(v)
	}
	return out
}

// WriteCell writes one value at anchor.
func WriteCell(f *excelize.File, sheet string, anchor Anchor, value any) error {
	if err := anchor.fits(1, 1); err != nil {
		return err
	}
	if err := ensureSheet(f, sheet); err != nil {
		return err
	}
	return f.SetCellValue(sheet, anchor.String(), cellValue(value))
}

// WriteRow writes values left to right starting at anchor.
func WriteRow(f *excelize.File, sheet string, anchor Anchor, values []any) error {
	if len(values) == 0 {
		return ErrEmptyBlock
	}
	if err := anchor.fits(len(values), 1); err != nil {
		return err
	}
	if err := ensureSheet(f, sheet); err != nil {
		return err
	}
	row := cellValues(values)
	return f.SetSheetRow(sheet, anchor.String(), &row)
}

// WriteColumn writes values top to bottom starting at anchor.
func WriteColumn(f *excelize.File, sheet string, anchor Anchor, values []any) error {
	if len(values) == 0 {
		return ErrEmptyBlock
	}
	if err := anchor.fits(1, len(values)); err != nil {
		return err
	}
	if err := ensureSheet(f, sheet); err != nil {
		return err
	}
	col := cellValues(values)
	return f.SetSheetCol(sheet, anchor.String(), &col)
}

// WriteFrame writes fr with its top-left corner at anchor and returns the
// block it occupies.
func WriteFrame(f *excelize.File, sheet string, anchor Anchor, fr *frame.Frame, opts FrameOptions) (Range, error) {
	columns := fr.Columns()
	indexName := ""
	if opts.Index {
		indexName = opts.IndexName
		if indexName == "" {
			indexName = "index"
		}
		columns = append([]string{indexName}, columns...)
	}

	height := fr.Len()
	if !opts.SkipHeader {
		height++
	}
	if len(columns) == 0 || height == 0 {
		return Range{}, ErrEmptyBlock
	}
	if err := anchor.fits(len(columns), height); err != nil {
		return Range{}, err
	}
	if err := ensureSheet(f, sheet); err != nil {
		return Range{}, err
	}

	rng := Range{
		Sheet:       sheet,
		From:        anchor,
		To:          anchor.Offset(len(columns)-1, height-1),
		Header:      !opts.SkipHeader,
		Columns:     columns,
		IndexColumn: indexName,
	}

	cursor := anchor
	if rng.Header {
		header := make([]any, len(columns))
		for i, c := range columns {
			header[i] = c
		}
		if err := f.SetSheetRow(sheet, cursor.String(), &header); err != nil {
			return Range{}, err
		}
		cursor = cursor.Offset(0, 1)
	}

	for r := 0; r < fr.Len(); r++ {
		row := cellValues(fr.Row(r))
		if opts.Index {
			row = append([]any{int64(r)}, row...)
		}
		if err := f.SetSheetRow(sheet, cursor.String(), &row); err != nil {
			return Range{}, fmt.Errorf("write row %d: %w", r, err)
		}
		cursor = cursor.Offset(0, 1)
	}

	if err := decorate(f, rng, opts); err != nil {
		return Range{}, err
	}
	return rng, nil
}

func decorate(f *excelize.File, rng Range, opts FrameOptions) error {
	if opts.HeaderStyle && rng.Header {
		style, err := headerStyle(f)
		if err != nil {
			return err
		}
		last := Anchor{Col: rng.To.Col, Row: rng.From.Row}
		if err := f.SetCellStyle(rng.Sheet, rng.From.String(), last.String(), style); err != nil {
			return err
		}
	}

	if opts.ColWidth > 0 {
		first, _ := excelize.ColumnNumberToName(rng.From.Col)
		last, _ := excelize.ColumnNumberToName(rng.To.Col)
		if err := f.SetColWidth(rng.Sheet, first, last, opts.ColWidth); err != nil {
			return err
		}
	}

	if opts.AutoFilter && rng.Header {
		if err := f.AutoFilter(rng.Sheet, rng.String(), nil); err != nil {
			return fmt.Errorf("auto filter %s: %w", rng, err)
		}
	}

	if opts.PrintArea {
		if err := setPrintArea(f, rng); err != nil {
			return err
		}
	}
	return nil
}

// setPrintArea replaces the print area of the block's sheet.
func setPrintArea(f *excelize.File, rng Range) error {
	for _, dn := range f.GetDefinedName() {
		if dn.Name != printAreaName || dn.Scope != rng.Sheet {
			continue
		}
		if err := f.DeleteDefinedName(&excelize.DefinedName{Name: printAreaName, Scope: rng.Sheet}); err != nil {
			return fmt.Errorf("print area %s: %w", rng, err)
		}
	}
	err := f.SetDefinedName(&excelize.DefinedName{
		Name:     printAreaName,
		RefersTo: rng.Ref(),
		Scope:    rng.Sheet,
	})
	if err != nil {
		return fmt.Errorf("print area %s: %w", rng, err)
	}
	return nil
}

// FormatRange renders a block for logs and CLI output.
func FormatRange(rng Range) string {
	return rng.Sheet + "!" + rng.String() + " (" + strconv.Itoa(len(rng.Columns)) + " columns)"
}
