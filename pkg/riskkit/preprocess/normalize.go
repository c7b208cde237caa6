package preprocess

import (
	"context"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/PANDASANG1231/risk-model-tool/pkg/riskkit/frame"
)

// Normalize standardizes variables to zero mean and unit sample standard
// deviation. Variables that went through WOE are normalized on their
// encoded column.
type Normalize struct {
	base
}

// NewNormalize returns a Normalize step for vars, or for the model variables
// with Ind_Norm set when vars is nil.
func NewNormalize(cfg *Config, vars ...string) *Normalize {
	return &Normalize{base: newBase(cfg, nilIfEmpty(vars), func(v Var) bool { return v.Norm })}
}

func (*Normalize) Name() string { return "Normalize" }

func (s *Normalize) Fit(_ context.Context, fr *frame.Frame) error {
	for _, name := range s.vars {
		v, err := s.variable(name)
		if err != nil {
			return stepError(s.Name(), name, err)
		}
		vals, err := present(fr, columnIn(fr, v))
		if err != nil {
			return stepError(s.Name(), name, err)
		}
		if len(vals) < 2 {
			return stepError(s.Name(), name, ErrZeroSpread)
		}
		mean, std := stat.MeanStdDev(vals, nil)
		if std == 0 || math.IsNaN(std) {
			return stepError(s.Name(), name, ErrZeroSpread)
		}
		v.Mean, v.Std = floatPtr(mean), floatPtr(std)
	}
	return nil
}

func (s *Normalize) Apply(_ context.Context, fr *frame.Frame) (*frame.Frame, error) {
	for _, name := range s.vars {
		v, err := s.variable(name)
		if err != nil {
			return nil, stepError(s.Name(), name, err)
		}
		if v.Mean == nil || v.Std == nil {
			return nil, stepError(s.Name(), name, ErrNotFitted)
		}
		if *v.Std == 0 {
			return nil, stepError(s.Name(), name, ErrZeroSpread)
		}
		mean, std := *v.Mean, *v.Std
		if err := mapNumeric(fr, columnIn(fr, v), func(x float64) float64 { return (x - mean) / std }); err != nil {
			return nil, stepError(s.Name(), name, err)
		}
	}
	return fr, nil
}

// Scale maps variables onto [0, 1] by the fitted minimum and maximum.
// Values outside the fitted range are clipped.
type Scale struct {
	base
}

// NewScale returns a Scale step for vars, or for the model variables with
// Ind_Scale set when vars is nil.
func NewScale(cfg *Config, vars ...string) *Scale {
	return &Scale{base: newBase(cfg, nilIfEmpty(vars), func(v Var) bool { return v.Scale })}
}

func (*Scale) Name() string { return "Scale" }

func (s *Scale) Fit(_ context.Context, fr *frame.Frame) error {
	for _, name := range s.vars {
		v, err := s.variable(name)
		if err != nil {
			return stepError(s.Name(), name, err)
		}
		sorted, err := sortedPresent(fr, columnIn(fr, v))
		if err != nil {
			return stepError(s.Name(), name, err)
		}
		if len(sorted) == 0 || sorted[0] == sorted[len(sorted)-1] {
			return stepError(s.Name(), name, ErrZeroSpread)
		}
		v.Min, v.Max = floatPtr(sorted[0]), floatPtr(sorted[len(sorted)-1])
	}
	return nil
}

func (s *Scale) Apply(_ context.Context, fr *frame.Frame) (*frame.Frame, error) {
	for _, name := range s.vars {
		v, err := s.variable(name)
		if err != nil {
			return nil, stepError(s.Name(), name, err)
		}
		if v.Min == nil || v.Max == nil {
			return nil, stepError(s.Name(), name, ErrNotFitted)
		}
		lo, hi := *v.Min, *v.Max
		if hi == lo {
			return nil, stepError(s.Name(), name, ErrZeroSpread)
		}
		scale := func(x float64) float64 { return math.Min(math.Max((x-lo)/(hi-lo), 0), 1) }
		if err := mapNumeric(fr, columnIn(fr, v), scale); err != nil {
			return nil, stepError(s.Name(), name, err)
		}
	}
	return fr, nil
}

// columnIn returns the WOE column of v when fr has it, else the raw column.
func columnIn(fr *frame.Frame, v *Var) string {
	if col := v.column(); fr.Has(col) {
		return col
	}
	return v.Name
}
