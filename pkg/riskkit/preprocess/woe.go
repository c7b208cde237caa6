package preprocess

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strconv"

	"go.uber.org/zap"

	"github.com/PANDASANG1231/risk-model-tool/pkg/logger"
	"github.com/PANDASANG1231/risk-model-tool/pkg/riskkit/chart"
	"github.com/PANDASANG1231/risk-model-tool/pkg/riskkit/frame"
)

const (
	// WOETableFile is the reference table written to the output directory.
	WOETableFile = "woe_ref_table.csv"

	autoBins      = 6
	maxCategories = 6
	keptTop       = 5
)

// WOE replaces variables by the weight of evidence of their bin against a
// binary target, where 1 is bad. Numerical variables are cut at WOE_Bin
// edges or, when empty, at sextiles; categorical variables keep their five
// most frequent values and merge the rest into "_others" when they have more
// than six. Missing values form their own bin. The encoded column is
// nwoe_<name> or cwoe_<name> and the original column is dropped.
type WOE struct {
	base
	// Target is the binary target column.
	Target string
	// Table is the fitted reference table; set it to apply a saved table.
	Table *WOETable
	// OutputDir, when set, receives the reference table and a bar chart per
	// variable.
	OutputDir string
}

// NewWOE returns a WOE step for vars, or for the model variables with
// Ind_WOE set when vars is nil.
func NewWOE(cfg *Config, target string, vars ...string) *WOE {
	return &WOE{
		base:   newBase(cfg, nilIfEmpty(vars), func(v Var) bool { return v.WOE }),
		Target: target,
	}
}

func (*WOE) Name() string { return "Woe" }

func (s *WOE) Fit(ctx context.Context, fr *frame.Frame) error {
	if s.Target == "" || !fr.Has(s.Target) {
		return ErrTargetRequired
	}
	target, good, bad, err := binaryTarget(fr, s.Target)
	if err != nil {
		return err
	}

	table := &WOETable{}
	for _, name := range s.vars {
		v, err := s.variable(name)
		if err != nil {
			return stepError(s.Name(), name, err)
		}
		col, err := fr.Column(name)
		if err != nil {
			return stepError(s.Name(), name, err)
		}

		var bins []Bin
		switch v.Type {
		case frame.Numerical:
			bins, err = numericBins(*v, fr)
		case frame.Categorical:
			bins = categoricalBins(*v, col, target)
		default:
			err = fmt.Errorf("cannot encode variable of type %q", v.Type)
		}
		if err != nil {
			return stepError(s.Name(), name, err)
		}

		for r, value := range col {
			if target[r] < 0 {
				continue
			}
			i := binIndex(bins, value)
			if i < 0 {
				continue
			}
			bins[i].Count++
			bins[i].Bad += target[r]
		}
		score(bins, good, bad)
		table.Bins = append(table.Bins, bins...)

		logger.Debug(ctx, "woe fitted", zap.String("variable", name),
			zap.Int("bins", len(bins)), zap.Float64("iv", table.IV(name)))
	}
	s.Table = table

	if s.OutputDir != "" {
		if err := s.writeOutput(); err != nil {
			return fmt.Errorf("write woe output: %w", err)
		}
	}
	return nil
}

// binaryTarget returns the target as 0/1 per row, -1 where missing, and
// the number of good and bad rows.
func binaryTarget(fr *frame.Frame, name string) ([]int, int, int, error) {
	vals, err := fr.Floats(name)
	if err != nil {
		return nil, 0, 0, err
	}
	col, _ := fr.Column(name)
	out := make([]int, len(vals))
	good, bad := 0, 0
	for i, x := range vals {
		switch {
		case frame.IsMissing(col[i]):
			out[i] = -1
		case x == 1:
			out[i] = 1
			bad++
		case x == 0:
			good++
		default:
			return nil, 0, 0, fmt.Errorf("%w: value %v", ErrTargetNotBinary, col[i])
		}
	}
	if good == 0 || bad == 0 {
		return nil, 0, 0, ErrTargetNotBinary
	}
	return out, good, bad, nil
}

func numericBins(v Var, fr *frame.Frame) ([]Bin, error) {
	sorted, err := sortedPresent(fr, v.Name)
	if err != nil {
		return nil, err
	}
	missing, _ := fr.MissingCount(v.Name)

	var cuts []float64
	if len(v.WOEBins) > 0 {
		cuts = append(cuts, v.WOEBins...)
		sort.Float64s(cuts)
	} else if len(sorted) > 0 {
		for k := 1; k < autoBins; k++ {
			cuts = append(cuts, quantile(sorted, float64(k)/autoBins))
		}
	}
	cuts = dedupe(cuts)

	var bins []Bin
	if len(sorted) > 0 || len(v.WOEBins) > 0 {
		var lower *float64
		for i := 0; i <= len(cuts); i++ {
			var upper *float64
			if i < len(cuts) {
				upper = floatPtr(cuts[i])
			}
			bins = append(bins, Bin{
				Var: v.Name, Type: v.Type, Label: intervalLabel(lower, upper),
				Lower: lower, Upper: upper,
			})
			lower = upper
		}
	}
	if missing > 0 {
		bins = append(bins, Bin{Var: v.Name, Type: v.Type, Label: MissingBin})
	}
	return bins, nil
}

func dedupe(sorted []float64) []float64 {
	out := sorted[:0]
	for i, x := range sorted {
		if i == 0 || x != sorted[i-1] {
			out = append(out, x)
		}
	}
	return out
}

func intervalLabel(lower, upper *float64) string {
	lo, hi := "-inf", "inf"
	if lower != nil {
		lo = strconv.FormatFloat(*lower, 'f', -1, 64)
	}
	if upper != nil {
		hi = strconv.FormatFloat(*upper, 'f', -1, 64)
	}
	return "(" + lo + ", " + hi + "]"
}

func categoricalBins(v Var, col []any, target []int) []Bin {
	counts := make(map[string]int)
	hasMissing := false
	for r, value := range col {
		if target[r] < 0 {
			continue
		}
		if frame.IsMissing(value) {
			hasMissing = true
			continue
		}
		counts[frame.FormatValue(value)]++
	}

	labels := make([]string, 0, len(counts))
	for k := range counts {
		labels = append(labels, k)
	}
	sort.Slice(labels, func(i, j int) bool {
		if counts[labels[i]] != counts[labels[j]] {
			return counts[labels[i]] > counts[labels[j]]
		}
		return labels[i] < labels[j]
	})
	others := false
	if len(labels) > maxCategories {
		labels = labels[:keptTop]
		others = true
	}

	bins := make([]Bin, 0, len(labels)+2)
	for _, l := range labels {
		bins = append(bins, Bin{Var: v.Name, Type: v.Type, Label: l})
	}
	if others {
		bins = append(bins, Bin{Var: v.Name, Type: v.Type, Label: OthersBin})
	}
	// Missing cells share the bin of an imputed "missing" category.
	if hasMissing && !slices.Contains(labels, MissingBin) {
		bins = append(bins, Bin{Var: v.Name, Type: v.Type, Label: MissingBin})
	}
	return bins
}

// binIndex returns the bin value falls in, or -1.
func binIndex(bins []Bin, value any) int {
	if len(bins) == 0 {
		return -1
	}
	find := func(label string) int {
		for i, b := range bins {
			if b.Label == label {
				return i
			}
		}
		return -1
	}
	if frame.IsMissing(value) {
		return find(MissingBin)
	}

	if bins[0].Type == frame.Categorical {
		if i := find(frame.FormatValue(value)); i >= 0 {
			return i
		}
		return find(OthersBin)
	}

	x := frame.ToFloat(value)
	if math.IsNaN(x) {
		return find(MissingBin)
	}
	for i, b := range bins {
		if b.contains(x) {
			return i
		}
	}
	return -1
}

// score sets WOE = ln(%good / %bad) and IV = (%good - %bad) * WOE per bin.
// A bin lacking goods or bads gets 0.5 added to both counts; an empty bin
// scores 0.
func score(bins []Bin, good, bad int) {
	for i := range bins {
		b := &bins[i]
		if b.Count == 0 {
			continue
		}
		g, d := float64(b.Count-b.Bad), float64(b.Bad)
		if g == 0 || d == 0 {
			g += 0.5
			d += 0.5
		}
		pg, pb := g/float64(good), d/float64(bad)
		b.WOE = math.Log(pg / pb)
		b.IV = (pg - pb) * b.WOE
	}
}

func (s *WOE) Apply(_ context.Context, fr *frame.Frame) (*frame.Frame, error) {
	if s.Table == nil {
		return nil, ErrNotFitted
	}
	for _, name := range s.vars {
		v, err := s.variable(name)
		if err != nil {
			return nil, stepError(s.Name(), name, err)
		}
		bins := s.Table.For(name)
		if len(bins) == 0 {
			return nil, stepError(s.Name(), name, ErrNotFitted)
		}
		col, err := fr.Column(name)
		if err != nil {
			return nil, stepError(s.Name(), name, err)
		}

		out := make([]float64, len(col))
		for r, value := range col {
			if i := binIndex(bins, value); i >= 0 {
				out[r] = bins[i].WOE
			}
		}
		if err := fr.SetFloats(v.WOEColumn(), out); err != nil {
			return nil, stepError(s.Name(), name, err)
		}
		fr.Drop(name)
	}
	return fr, nil
}

func (s *WOE) writeOutput() (err error) {
	if err := os.MkdirAll(s.OutputDir, 0o755); err != nil {
		return err
	}
	out, err := os.Create(filepath.Join(s.OutputDir, WOETableFile))
	if err != nil {
		return err
	}
	defer func() {
		if cerr := out.Close(); err == nil {
			err = cerr
		}
	}()
	if err := s.Table.WriteCSV(out); err != nil {
		return err
	}

	for _, name := range s.Table.Variables() {
		sub := (&WOETable{Bins: s.Table.For(name)}).Frame()
		title := fmt.Sprintf("%s (IV %.4f)", name, s.Table.IV(name))
		cfg, err := chart.FromFrame(sub, title, chart.Options{
			Type: chart.Bar,
			X:    ColVarValue,
			Y:    []string{ColRefValue},
		})
		if err != nil {
			return err
		}
		if err := cfg.WriteFile(filepath.Join(s.OutputDir, "woe_"+name+".html")); err != nil {
			return err
		}
	}
	return nil
}
