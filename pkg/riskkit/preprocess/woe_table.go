package preprocess

import (
	"fmt"
	"io"
	"math"

	"github.com/PANDASANG1231/risk-model-tool/pkg/riskkit/frame"
)

// WOE reference table headers.
const (
	ColVarValue = "Var_Value"
	ColLower    = "Lower"
	ColUpper    = "Upper"
	ColCount    = "Count"
	ColBad      = "Bad"
	ColRefValue = "Ref_Value"
	ColIV       = "IV"
)

var woeHeader = []string{ //nolint: gochecknoglobals
	ColVarName, ColVarType, ColVarValue, ColLower, ColUpper, ColCount, ColBad, ColRefValue, ColIV,
}

// Labels of the special bins.
const (
	MissingBin = "missing"
	OthersBin  = "_others"
)

// Bin is one row of the WOE reference table.
type Bin struct {
	Var  string
	Type frame.Kind
	// Label is the interval "(lo, hi]", a category, or a special bin label.
	Label string
	// Lower and Upper bound numerical bins; nil is unbounded.
	Lower *float64
	Upper *float64
	Count int
	Bad   int
	WOE   float64
	IV    float64
}

// contains reports whether x falls in the numerical bin (Lower, Upper].
func (b Bin) contains(x float64) bool {
	if b.Label == MissingBin {
		return false
	}
	if b.Lower != nil && x <= *b.Lower {
		return false
	}
	if b.Upper != nil && x > *b.Upper {
		return false
	}
	return true
}

// WOETable is the fitted WOE reference table.
type WOETable struct {
	Bins []Bin
}

// For returns the bins of variable name in order.
func (t *WOETable) For(name string) []Bin {
	var out []Bin
	for _, b := range t.Bins {
		if b.Var == name {
			out = append(out, b)
		}
	}
	return out
}

// IV returns the information value of variable name.
func (t *WOETable) IV(name string) float64 {
	iv := 0.0
	for _, b := range t.For(name) {
		iv += b.IV
	}
	return iv
}

// Variables returns the variables in the table in first-seen order.
func (t *WOETable) Variables() []string {
	seen := make(map[string]bool)
	var out []string
	for _, b := range t.Bins {
		if !seen[b.Var] {
			seen[b.Var] = true
			out = append(out, b.Var)
		}
	}
	return out
}

// Frame returns the table as a frame with the WOE reference headers.
func (t *WOETable) Frame() *frame.Frame {
	fr, _ := frame.New(woeHeader...)
	bound := func(p *float64) any {
		if p == nil {
			return nil
		}
		return *p
	}
	for _, b := range t.Bins {
		_ = fr.AppendRow([]any{
			b.Var, string(b.Type), b.Label, bound(b.Lower), bound(b.Upper), b.Count, b.Bad, b.WOE, b.IV,
		})
	}
	return fr
}

// WriteCSV writes the table as CSV.
func (t *WOETable) WriteCSV(w io.Writer) error {
	return t.Frame().WriteCSV(w)
}

// ReadWOETable reads a WOE reference table from CSV.
func ReadWOETable(r io.Reader) (*WOETable, error) {
	fr, err := frame.ReadCSV(r)
	if err != nil {
		return nil, fmt.Errorf("read woe table: %w", err)
	}
	for _, col := range woeHeader {
		if !fr.Has(col) {
			return nil, fmt.Errorf("read woe table: missing column %s", col)
		}
	}

	t := &WOETable{}
	for i := 0; i < fr.Len(); i++ {
		cell := func(col string) any {
			values, _ := fr.Column(col)
			return values[i]
		}
		bound := func(col string) *float64 {
			f := frame.ToFloat(cell(col))
			if math.IsNaN(f) {
				return nil
			}
			return &f
		}
		t.Bins = append(t.Bins, Bin{
			Var:   frame.FormatValue(cell(ColVarName)),
			Type:  frame.Kind(frame.FormatValue(cell(ColVarType))),
			Label: frame.FormatValue(cell(ColVarValue)),
			Lower: bound(ColLower),
			Upper: bound(ColUpper),
			Count: int(frame.ToFloat(cell(ColCount))),
			Bad:   int(frame.ToFloat(cell(ColBad))),
			WOE:   frame.ToFloat(cell(ColRefValue)),
			IV:    frame.ToFloat(cell(ColIV)),
		})
	}
	return t, nil
}
