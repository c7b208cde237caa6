package preprocess

import (
	"math"
	"sort"

	"github.com/PANDASANG1231/risk-model-tool/pkg/riskkit/frame"
)

// quantile returns the q-th quantile of sorted values by linear interpolation
// between closest ranks, the default of most dataframe libraries.
func quantile(sorted []float64, q float64) float64 {
	n := len(sorted)
	if n == 0 {
		return math.NaN()
	}
	if n == 1 {
		return sorted[0]
	}
	h := float64(n-1) * q
	lo := math.Floor(h)
	i := int(lo)
	if i >= n-1 {
		return sorted[n-1]
	}
	return sorted[i] + (h-lo)*(sorted[i+1]-sorted[i])
}

// present returns the non-missing numeric values of column name.
func present(fr *frame.Frame, name string) ([]float64, error) {
	vals, err := fr.Floats(name)
	if err != nil {
		return nil, err
	}
	out := vals[:0:0]
	for _, v := range vals {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out, nil
}

// sortedPresent is present sorted ascending.
func sortedPresent(fr *frame.Frame, name string) ([]float64, error) {
	out, err := present(fr, name)
	if err != nil {
		return nil, err
	}
	sort.Float64s(out)
	return out, nil
}
