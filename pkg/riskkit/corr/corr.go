// Package corr screens features by pairwise Pearson correlation.
package corr

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/PANDASANG1231/risk-model-tool/pkg/riskkit/frame"
)

// ErrNoNumeric indicates a frame without numerical columns.
var ErrNoNumeric = errors.New("no numerical columns")

// blank marks a filtered variable.
const blank = -1.0

// Matrix is a square matrix indexed by variable names on both axes.
type Matrix struct {
	Names []string
	data  *mat.Dense
}

// At returns the value at row i, column j.
func (m *Matrix) At(i, j int) float64 {
	return m.data.At(i, j)
}

// Get returns the value for the variable pair, or NaN when either is unknown.
func (m *Matrix) Get(row, col string) float64 {
	i, j := m.index(row), m.index(col)
	if i < 0 || j < 0 {
		return math.NaN()
	}
	return m.At(i, j)
}

func (m *Matrix) index(name string) int {
	for i, n := range m.Names {
		if n == name {
			return i
		}
	}
	return -1
}

// Generate computes the absolute Pearson correlation of the numerical
// columns of fr. Rows whose every cell is -1 are ignored, each pair uses the
// rows where both values are present, and exact 1 (a variable with itself
// or a duplicate) is reported as 0.
func Generate(fr *frame.Frame) (*Matrix, error) {
	keep := keptRows(fr)

	names := fr.NumericColumns()
	if len(names) == 0 {
		return nil, ErrNoNumeric
	}
	cols := make([][]float64, len(names))
	for i, name := range names {
		vals, err := fr.Floats(name)
		if err != nil {
			return nil, err
		}
		for r, ok := range keep {
			if ok {
				cols[i] = append(cols[i], vals[r])
			}
		}
	}

	n := len(names)
	data := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			c := pairwise(cols[i], cols[j])
			if i == j && !math.IsNaN(c) {
				c = 1
			}
			c = transform(c)
			data.Set(i, j, c)
			data.Set(j, i, c)
		}
	}
	return &Matrix{Names: names, data: data}, nil
}

func keptRows(fr *frame.Frame) []bool {
	keep := make([]bool, fr.Len())
	for r := range keep {
		for _, v := range fr.Row(r) {
			if frame.ToFloat(v) != blank {
				keep[r] = true
				break
			}
		}
	}
	return keep
}

// pairwise returns the Pearson correlation over the rows where x and y are
// both present, or NaN with fewer than two such rows.
func pairwise(x, y []float64) float64 {
	var xs, ys []float64
	for i := range x {
		if math.IsNaN(x[i]) || math.IsNaN(y[i]) {
			continue
		}
		xs = append(xs, x[i])
		ys = append(ys, y[i])
	}
	if len(xs) < 2 {
		return math.NaN()
	}
	return stat.Correlation(xs, ys, nil)
}

func transform(c float64) float64 {
	switch {
	case c == 1:
		return 0
	case c < 0:
		return -c
	default:
		return c
	}
}

// Filter drops correlated variables. Scanning column by column and then row
// by row, each value above thresh blanks its row variable (row and column
// set to -1). The result holds the variables with any value other than -1.
// m is not modified.
func Filter(m *Matrix, thresh float64) (*Matrix, error) {
	if m == nil || len(m.Names) == 0 {
		return nil, ErrNoNumeric
	}
	if math.IsNaN(thresh) {
		return nil, fmt.Errorf("invalid threshold %v", thresh)
	}

	n := len(m.Names)
	work := mat.DenseCopyOf(m.data)
	for col := 0; col < n; col++ {
		for row := 0; row < n; row++ {
			if work.At(row, col) > thresh {
				for k := 0; k < n; k++ {
					work.Set(row, k, blank)
					work.Set(k, row, blank)
				}
			}
		}
	}

	var picked []int
	for j := 0; j < n; j++ {
		for i := 0; i < n; i++ {
			if work.At(i, j) != blank {
				picked = append(picked, j)
				break
			}
		}
	}
	if len(picked) == 0 {
		return &Matrix{}, nil
	}

	out := &Matrix{data: mat.NewDense(len(picked), len(picked), nil)}
	for a, i := range picked {
		out.Names = append(out.Names, m.Names[i])
		for b, j := range picked {
			out.data.Set(a, b, work.At(i, j))
		}
	}
	return out, nil
}

// Frame returns the matrix as a frame whose first column "variable" holds the
// row names.
func (m *Matrix) Frame() (*frame.Frame, error) {
	fr, err := frame.New(append([]string{"variable"}, m.Names...)...)
	if err != nil {
		return nil, err
	}
	for i, name := range m.Names {
		row := []any{name}
		for j := range m.Names {
			row = append(row, m.At(i, j))
		}
		if err := fr.AppendRow(row); err != nil {
			return nil, err
		}
	}
	return fr, nil
}
