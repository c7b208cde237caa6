package preprocess

import (
	"context"
	"math"

	"github.com/PANDASANG1231/risk-model-tool/pkg/riskkit/frame"
)

// Step is one preprocessing component. Fit computes reference values from a
// frame; Apply transforms a frame using them, modifying it in place.
type Step interface {
	Name() string
	Fit(ctx context.Context, fr *frame.Frame) error
	Apply(ctx context.Context, fr *frame.Frame) (*frame.Frame, error)
}

// base carries the reference table and the variables a step works on.
type base struct {
	ref  *Config
	vars []string
}

func newBase(cfg *Config, vars []string, keep func(Var) bool) base {
	ref := cfg.Copy()
	if vars == nil {
		vars = ref.Select(keep)
	}
	return base{ref: ref, vars: vars}
}

// Reference returns the step's reference table.
func (b *base) Reference() *Config {
	return b.ref
}

// Variables returns the variables the step applies to.
func (b *base) Variables() []string {
	return append([]string(nil), b.vars...)
}

func (b *base) variable(name string) (*Var, error) {
	v, ok := b.ref.Var(name)
	if !ok {
		return nil, ErrUnknownVariable
	}
	return v, nil
}

// mapNumeric replaces column name with f applied to its non-missing numeric cells.
func mapNumeric(fr *frame.Frame, name string, f func(float64) float64) error {
	col, err := fr.Column(name)
	if err != nil {
		return err
	}
	out := make([]any, len(col))
	for i, v := range col {
		x := frame.ToFloat(v)
		if math.IsNaN(x) {
			out[i] = v
			continue
		}
		out[i] = f(x)
	}
	return fr.SetColumn(name, out)
}
