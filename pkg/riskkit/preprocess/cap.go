package preprocess

import (
	"context"
	"math"

	"github.com/PANDASANG1231/risk-model-tool/pkg/riskkit/frame"
)

// Cap limits numerical variables from above. The cap is the configured
// Cap_Value or, when empty, the 99th percentile of the non-missing values.
// Missing values are left alone.
type Cap struct {
	base
}

// NewCap returns a Cap step for vars, or for the model variables with
// Ind_Cap set when vars is nil.
func NewCap(cfg *Config, vars ...string) *Cap {
	return &Cap{base: newBase(cfg, nilIfEmpty(vars), func(v Var) bool { return v.Cap })}
}

func (*Cap) Name() string { return "Cap" }

func (s *Cap) Fit(_ context.Context, fr *frame.Frame) error {
	for _, name := range s.vars {
		v, err := s.variable(name)
		if err != nil {
			return stepError(s.Name(), name, err)
		}
		if v.CapValue != nil {
			continue
		}
		sorted, err := sortedPresent(fr, name)
		if err != nil {
			return stepError(s.Name(), name, err)
		}
		if len(sorted) == 0 {
			continue
		}
		v.CapValue = floatPtr(quantile(sorted, 0.99))
	}
	return nil
}

func (s *Cap) Apply(_ context.Context, fr *frame.Frame) (*frame.Frame, error) {
	for _, name := range s.vars {
		v, err := s.variable(name)
		if err != nil {
			return nil, stepError(s.Name(), name, err)
		}
		if v.CapValue == nil {
			return nil, stepError(s.Name(), name, ErrNotFitted)
		}
		limit := *v.CapValue
		if err := mapNumeric(fr, name, func(x float64) float64 { return math.Min(x, limit) }); err != nil {
			return nil, stepError(s.Name(), name, err)
		}
	}
	return fr, nil
}

// Floor limits numerical variables from below. The floor is the configured
// Floor_Value or, when empty, min(5 * 1st percentile, 0), so only negative
// values are ever raised. Missing values are left alone.
type Floor struct {
	base
}

// NewFloor returns a Floor step for vars, or for the model variables with
// Ind_Floor set when vars is nil.
func NewFloor(cfg *Config, vars ...string) *Floor {
	return &Floor{base: newBase(cfg, nilIfEmpty(vars), func(v Var) bool { return v.Floor })}
}

func (*Floor) Name() string { return "Floor" }

func (s *Floor) Fit(_ context.Context, fr *frame.Frame) error {
	for _, name := range s.vars {
		v, err := s.variable(name)
		if err != nil {
			return stepError(s.Name(), name, err)
		}
		if v.FloorValue != nil {
			continue
		}
		sorted, err := sortedPresent(fr, name)
		if err != nil {
			return stepError(s.Name(), name, err)
		}
		if len(sorted) == 0 {
			continue
		}
		v.FloorValue = floatPtr(math.Min(5*quantile(sorted, 0.01), 0))
	}
	return nil
}

func (s *Floor) Apply(_ context.Context, fr *frame.Frame) (*frame.Frame, error) {
	for _, name := range s.vars {
		v, err := s.variable(name)
		if err != nil {
			return nil, stepError(s.Name(), name, err)
		}
		if v.FloorValue == nil {
			return nil, stepError(s.Name(), name, ErrNotFitted)
		}
		limit := *v.FloorValue
		if err := mapNumeric(fr, name, func(x float64) float64 { return math.Max(x, limit) }); err != nil {
			return nil, stepError(s.Name(), name, err)
		}
	}
	return fr, nil
}

func nilIfEmpty(vars []string) []string {
	if len(vars) == 0 {
		return nil
	}
	return vars
}
