// Package frame provides a small column-oriented table used as the tabular
// dataset passed between the spreadsheet, chart and preprocessing helpers.
//
// Cell values are nil (missing), int64, float64, string, bool or time.Time.
package frame

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// ErrUnknownColumn indicates a column name that is not part of the frame.
var ErrUnknownColumn = errors.New("unknown column")

// ErrDuplicateColumn indicates a column name that appears twice.
var ErrDuplicateColumn = errors.New("duplicate column")

// ErrLengthMismatch indicates a column or row whose length does not match the frame.
var ErrLengthMismatch = errors.New("length mismatch")

// Frame is an ordered set of equally long named columns.
type Frame struct {
	columns []string
	index   map[string]int
	data    [][]any
	rows    int
}

// New returns an empty frame with the given columns.
func New(columns ...string) (*Frame, error) {
	f := &Frame{index: make(map[string]int, len(columns))}
	for _, c := range columns {
		if _, ok := f.index[c]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateColumn, c)
		}
		f.index[c] = len(f.columns)
		f.columns = append(f.columns, c)
		f.data = append(f.data, nil)
	}
	return f, nil
}

// FromRecords builds a frame from row-major records.
func FromRecords(columns []string, records [][]any) (*Frame, error) {
	f, err := New(columns...)
	if err != nil {
		return nil, err
	}
	for i, rec := range records {
		if err := f.AppendRow(rec); err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
	}
	return f, nil
}

// AppendRow appends one row. Values are normalized (int becomes int64, NaN becomes nil).
func (f *Frame) AppendRow(values []any) error {
	if len(values) != len(f.columns) {
		return fmt.Errorf("%w: row has %d values, frame has %d columns", ErrLengthMismatch, len(values), len(f.columns))
	}
	for i, v := range values {
		f.data[i] = append(f.data[i], Normalize(v))
	}
	f.rows++
	return nil
}

// Columns returns a copy of the column names in order.
func (f *Frame) Columns() []string {
	out := make([]string, len(f.columns))
	copy(out, f.columns)
	return out
}

// Len returns the number of rows.
func (f *Frame) Len() int { return f.rows }

// Width returns the number of columns.
func (f *Frame) Width() int { return len(f.columns) }

// Has reports whether the frame has a column named name.
func (f *Frame) Has(name string) bool {
	_, ok := f.index[name]
	return ok
}

// Column returns the values of column name. The slice is shared with the frame.
func (f *Frame) Column(name string) ([]any, error) {
	i, ok := f.index[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownColumn, name)
	}
	return f.data[i], nil
}

// Value returns the cell at row r of column c (both 0-based).
func (f *Frame) Value(r, c int) any {
	return f.data[c][r]
}

// Row returns a copy of row r.
func (f *Frame) Row(r int) []any {
	out := make([]any, len(f.columns))
	for c := range f.columns {
		out[c] = f.data[c][r]
	}
	return out
}

// Records returns all rows in row-major order.
func (f *Frame) Records() [][]any {
	out := make([][]any, f.rows)
	for r := 0; r < f.rows; r++ {
		out[r] = f.Row(r)
	}
	return out
}

// SetColumn replaces column name, or appends it when it does not exist.
// On an empty frame without columns the first column sets the row count.
func (f *Frame) SetColumn(name string, values []any) error {
	if len(f.columns) > 0 && len(values) != f.rows {
		return fmt.Errorf("%w: column %q has %d values, frame has %d rows", ErrLengthMismatch, name, len(values), f.rows)
	}
	col := make([]any, len(values))
	for i, v := range values {
		col[i] = Normalize(v)
	}
	if i, ok := f.index[name]; ok {
		f.data[i] = col
		return nil
	}
	if len(f.columns) == 0 {
		f.rows = len(values)
	}
	f.index[name] = len(f.columns)
	f.columns = append(f.columns, name)
	f.data = append(f.data, col)
	return nil
}

// SetFloats replaces or appends a numeric column; NaN values become missing.
func (f *Frame) SetFloats(name string, values []float64) error {
	col := make([]any, len(values))
	for i, v := range values {
		col[i] = v
	}
	return f.SetColumn(name, col)
}

// Drop removes the named columns. Unknown names are ignored.
func (f *Frame) Drop(names ...string) {
	drop := make(map[string]bool, len(names))
	for _, n := range names {
		drop[n] = true
	}
	var columns []string
	var data [][]any
	index := make(map[string]int, len(f.columns))
	for i, c := range f.columns {
		if drop[c] {
			continue
		}
		index[c] = len(columns)
		columns = append(columns, c)
		data = append(data, f.data[i])
	}
	f.columns, f.data, f.index = columns, data, index
}

// Select returns a new frame holding copies of the named columns in the given order.
func (f *Frame) Select(names ...string) (*Frame, error) {
	out, err := New(names...)
	if err != nil {
		return nil, err
	}
	out.rows = f.rows
	for i, n := range names {
		src, err := f.Column(n)
		if err != nil {
			return nil, err
		}
		out.data[i] = append([]any(nil), src...)
	}
	return out, nil
}

// Copy returns a deep copy of the frame.
func (f *Frame) Copy() *Frame {
	out, _ := f.Select(f.columns...)
	return out
}

// Floats returns column name as float64 values. Missing and non-numeric
// cells are NaN; booleans map to 0/1 and timestamps to Unix seconds.
func (f *Frame) Floats(name string) ([]float64, error) {
	col, err := f.Column(name)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(col))
	for i, v := range col {
		out[i] = ToFloat(v)
	}
	return out, nil
}

// MissingCount returns the number of missing cells in column name.
func (f *Frame) MissingCount(name string) (int, error) {
	col, err := f.Column(name)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, v := range col {
		if IsMissing(v) {
			n++
		}
	}
	return n, nil
}

// Normalize converts a Go value to one of the frame cell types.
func Normalize(v any) any {
	switch t := v.(type) {
	case nil:
		return nil
	case int:
		return int64(t)
	case int8:
		return int64(t)
	case int16:
		return int64(t)
	case int32:
		return int64(t)
	case int64:
		return t
	case uint:
		return int64(t)
	case uint8:
		return int64(t)
	case uint16:
		return int64(t)
	case uint32:
		return int64(t)
	case uint64:
		return int64(t)
	case float32:
		return Normalize(float64(t))
	case float64:
		if math.IsNaN(t) {
			return nil
		}
		return t
	case string, bool, time.Time:
		return t
	case *float64:
		if t == nil {
			return nil
		}
		return Normalize(*t)
	default:
		return fmt.Sprint(t)
	}
}

// ToFloat converts a cell to float64, returning NaN for missing and text cells.
func ToFloat(v any) float64 {
	switch t := v.(type) {
	case int64:
		return float64(t)
	case float64:
		return t
	case bool:
		if t {
			return 1
		}
		return 0
	case time.Time:
		return float64(t.Unix())
	default:
		return math.NaN()
	}
}

// IsMissing reports whether v is a missing cell.
func IsMissing(v any) bool {
	if v == nil {
		return true
	}
	if f, ok := v.(float64); ok && math.IsNaN(f) {
		return true
	}
	return false
}
