package frame

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

// ParseValue converts a text cell to int64, float64 or string.
// Empty text is missing and returns nil.
func ParseValue(s string) any {
	if s == "" {
		return nil
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return Normalize(f)
	}
	return s
}

// FormatValue renders a cell as CSV text. Missing cells are empty.
func FormatValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	case time.Time:
		return t.Format(time.RFC3339)
	case string:
		return t
	default:
		return fmt.Sprint(t)
	}
}

// ReadCSV reads a frame from CSV with a header row.
func ReadCSV(r io.Reader) (*Frame, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("read csv header: %w", io.ErrUnexpectedEOF)
		}
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	f, err := New(header...)
	if err != nil {
		return nil, err
	}

	var rows [][]string
	line := 1
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}
		line++
		if len(rec) != len(header) {
			return nil, fmt.Errorf("%w: line %d has %d fields, header has %d", ErrLengthMismatch, line, len(rec), len(header))
		}
		rows = append(rows, rec)
	}

	for c := range header {
		text := make([]string, len(rows))
		for r, rec := range rows {
			text[r] = rec[c]
		}
		f.data[c] = parseColumn(text)
	}
	f.rows = len(rows)
	return f, nil
}

// parseColumn types a CSV column as a whole: numbers only when every
// non-empty cell is numeric, otherwise text. Empty cells are missing.
func parseColumn(text []string) []any {
	values := make([]any, len(text))
	numeric := true
	for i, s := range text {
		v := ParseValue(s)
		if _, ok := v.(string); ok {
			numeric = false
			break
		}
		values[i] = v
	}
	if numeric {
		return values
	}
	for i, s := range text {
		if s == "" {
			values[i] = nil
			continue
		}
		values[i] = s
	}
	return values
}

// WriteCSV writes the frame as CSV with a header row.
func (f *Frame) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(f.columns); err != nil {
		return err
	}
	rec := make([]string, len(f.columns))
	for r := 0; r < f.rows; r++ {
		for c := range f.columns {
			rec[c] = FormatValue(f.data[c][r])
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
