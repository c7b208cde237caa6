// Package sheet writes cells, rows, data frames, images and native charts
// into an open workbook at a cell anchor. The caller owns the *excelize.File
// and persists it with Save or SaveAs.
package sheet

import (
	"errors"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ErrInvalidAnchor indicates a cell reference that does not name a worksheet cell.
var ErrInvalidAnchor = errors.New("invalid anchor")

// ErrOutOfBounds indicates a block that would extend past the last row or column.
var ErrOutOfBounds = errors.New("block exceeds worksheet bounds")

// Anchor is the 1-based top-left cell of a written block.
type Anchor struct {
	Col int
	Row int
}

// ParseAnchor parses a cell reference such as "G1" or "$G$1".
func ParseAnchor(s string) (Anchor, error) {
	ref := strings.ReplaceAll(strings.TrimSpace(s), "$", "")
	col, row, err := excelize.CellNameToCoordinates(ref)
	if err != nil {
		return Anchor{}, fmt.Errorf("%w %q: %v", ErrInvalidAnchor, s, err)
	}
	a := Anchor{Col: col, Row: row}
	if !a.valid() {
		return Anchor{}, fmt.Errorf("%w %q", ErrInvalidAnchor, s)
	}
	return a, nil
}

// MustAnchor is ParseAnchor for literals; it panics on an invalid reference.
func MustAnchor(s string) Anchor {
	a, err := ParseAnchor(s)
	if err != nil {
		panic(err)
	}
	return a
}

func (a Anchor) valid() bool {
	return a.Col >= 1 && a.Col <= excelize.MaxColumns && a.Row >= 1 && a.Row <= excelize.TotalRows
}

// Offset returns the anchor moved dc columns right and dr rows down.
func (a Anchor) Offset(dc, dr int) Anchor {
	return Anchor{Col: a.Col + dc, Row: a.Row + dr}
}

// String returns the cell name, e.g. "G1".
func (a Anchor) String() string {
	cell, err := excelize.CoordinatesToCellName(a.Col, a.Row)
	if err != nil {
		return fmt.Sprintf("R%dC%d", a.Row, a.Col)
	}
	return cell
}

// absolute returns the cell name with $ markers, e.g. "$G$1".
func (a Anchor) absolute() string {
	cell, err := excelize.CoordinatesToCellName(a.Col, a.Row, true)
	if err != nil {
		return a.String()
	}
	return cell
}

// fits checks that a block of cols x rows starting at a stays inside the sheet.
func (a Anchor) fits(cols, rows int) error {
	if !a.valid() {
		return fmt.Errorf("%w %s", ErrInvalidAnchor, a)
	}
	if cols < 1 || rows < 1 {
		return nil
	}
	if a.Col+cols-1 > excelize.MaxColumns || a.Row+rows-1 > excelize.TotalRows {
		return fmt.Errorf("%w: %d x %d block at %s", ErrOutOfBounds, cols, rows, a)
	}
	return nil
}

// Range is the block written by WriteFrame.
type Range struct {
	Sheet string
	From  Anchor
	To    Anchor
	// Header reports whether the first row holds column names.
	Header bool
	// Columns are the names of the written columns, left to right,
	// including the index column when one was written.
	Columns []string
	// IndexColumn is the name of the row index column, or empty.
	IndexColumn string
}

// String returns the block as "G1:J5".
func (r Range) String() string {
	return r.From.String() + ":" + r.To.String()
}

// Ref returns the absolute, sheet-qualified reference, e.g. 'Risk'!$G$1:$J$5.
func (r Range) Ref() string {
	return quoteSheet(r.Sheet) + "!" + r.From.absolute() + ":" + r.To.absolute()
}

// DataFrom returns the first data (non-header) row of the block.
func (r Range) DataFrom() int {
	if r.Header {
		return r.From.Row + 1
	}
	return r.From.Row
}

// ColumnRef returns the sheet-qualified reference to the data cells of column name.
func (r Range) ColumnRef(name string) (string, bool) {
	for i, c := range r.Columns {
		if c != name {
			continue
		}
		top := Anchor{Col: r.From.Col + i, Row: r.DataFrom()}
		bottom := Anchor{Col: r.From.Col + i, Row: r.To.Row}
		return quoteSheet(r.Sheet) + "!" + top.absolute() + ":" + bottom.absolute(), true
	}
	return "", false
}

// HeaderRef returns the reference to the header cell of column name.
func (r Range) HeaderRef(name string) (string, bool) {
	if !r.Header {
		return "", false
	}
	for i, c := range r.Columns {
		if c == name {
			return quoteSheet(r.Sheet) + "!" + Anchor{Col: r.From.Col + i, Row: r.From.Row}.absolute(), true
		}
	}
	return "", false
}

// quoteSheet quotes a sheet name for use in a formula when needed.
func quoteSheet(name string) string {
	if name == "" || (name[0] >= '0' && name[0] <= '9') {
		return "'" + name + "'"
	}
	for _, r := range name {
		if !(r == '_' || r == '.' || (r >= '0' && r <= '9') || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')) {
			return "'" + strings.ReplaceAll(name, "'", "''") + "'"
		}
	}
	return name
}
