// Package preprocess prepares credit-risk modelling data from a per-variable
// config table: capping, flooring, missing value imputation, weight of
// evidence encoding, normalization and min-max scaling, alone or chained in
// a Tactic.
package preprocess

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/PANDASANG1231/risk-model-tool/pkg/riskkit/frame"
)

// Config table headers.
const (
	ColVarName       = "Var_Name"
	ColVarType       = "Var_Type"
	ColIndModel      = "Ind_Model"
	ColIndCap        = "Ind_Cap"
	ColCapValue      = "Cap_Value"
	ColIndFloor      = "Ind_Floor"
	ColFloorValue    = "Floor_Value"
	ColMissingImpute = "Missing_Impute"
	ColIndWOE        = "Ind_WOE"
	ColWOEBin        = "WOE_Bin"
	ColIndNorm       = "Ind_Norm"
	ColIndScale      = "Ind_Scale"
	ColMean          = "Mean"
	ColStd           = "Std"
	ColMin           = "Min"
	ColMax           = "Max"
	ColPrecision     = "Precision"
)

var configHeader = []string{ //nolint: gochecknoglobals
	ColVarName, ColVarType, ColIndModel, ColIndCap, ColCapValue, ColIndFloor, ColFloorValue,
	ColMissingImpute, ColIndWOE, ColWOEBin, ColIndNorm, ColIndScale,
}

var referenceHeader = []string{ColMean, ColStd, ColMin, ColMax} //nolint: gochecknoglobals

// Indicator names a 0/1 column of the config table.
type Indicator string

const (
	IndModel Indicator = ColIndModel
	IndCap   Indicator = ColIndCap
	IndFloor Indicator = ColIndFloor
	IndWOE   Indicator = ColIndWOE
	IndNorm  Indicator = ColIndNorm
	IndScale Indicator = ColIndScale
)

// Impute rules besides a literal value.
const (
	ImputeMean   = "mean"
	ImputeMedian = "median"
	ImputeMode   = "mode"
)

// Var is one row of the config table.
type Var struct {
	Name  string
	Type  frame.Kind
	Model bool

	Cap      bool
	CapValue *float64

	Floor      bool
	FloorValue *float64

	// Impute is empty (no imputation), a rule (mean, median, mode) or a
	// literal value. After fitting it holds the resolved value.
	Impute string

	WOE     bool
	WOEBins []float64

	Norm  bool
	Scale bool

	Mean *float64
	Std  *float64
	Min  *float64
	Max  *float64
}

// WOEColumn returns the column name the variable has after WOE encoding.
func (v Var) WOEColumn() string {
	if v.Type == frame.Categorical {
		return "cwoe_" + v.Name
	}
	return "nwoe_" + v.Name
}

// column returns the frame column Normalize and Scale operate on.
func (v Var) column() string {
	if v.WOE {
		return v.WOEColumn()
	}
	return v.Name
}

func (v *Var) indicator(ind Indicator) (*bool, error) {
	switch ind {
	case IndModel:
		return &v.Model, nil
	case IndCap:
		return &v.Cap, nil
	case IndFloor:
		return &v.Floor, nil
	case IndWOE:
		return &v.WOE, nil
	case IndNorm:
		return &v.Norm, nil
	case IndScale:
		return &v.Scale, nil
	default:
		return nil, fmt.Errorf("unknown indicator column %q", ind)
	}
}

// Config is the per-variable preprocessing table. A fitted Config is called
// the reference table.
type Config struct {
	Vars []Var
	// Unknown holds headers read from a file that are not config columns.
	Unknown []string
}

// Var returns the row of variable name.
func (c *Config) Var(name string) (*Var, bool) {
	for i := range c.Vars {
		if c.Vars[i].Name == name {
			return &c.Vars[i], true
		}
	}
	return nil, false
}

// Select returns the names of the model variables for which keep is true.
func (c *Config) Select(keep func(Var) bool) []string {
	var out []string
	for _, v := range c.Vars {
		if v.Model && keep(v) {
			out = append(out, v.Name)
		}
	}
	return out
}

// Copy returns a deep copy.
func (c *Config) Copy() *Config {
	out := &Config{
		Vars:    make([]Var, len(c.Vars)),
		Unknown: append([]string(nil), c.Unknown...),
	}
	for i, v := range c.Vars {
		v.CapValue = copyFloat(v.CapValue)
		v.FloorValue = copyFloat(v.FloorValue)
		v.Mean = copyFloat(v.Mean)
		v.Std = copyFloat(v.Std)
		v.Min = copyFloat(v.Min)
		v.Max = copyFloat(v.Max)
		v.WOEBins = append([]float64(nil), v.WOEBins...)
		out.Vars[i] = v
	}
	return out
}

// SetIndicator sets column ind to on for the named variables.
func (c *Config) SetIndicator(ind Indicator, on bool, names ...string) error {
	for _, name := range names {
		v, ok := c.Var(name)
		if !ok {
			return fmt.Errorf("%w: %q", ErrUnknownVariable, name)
		}
		field, err := v.indicator(ind)
		if err != nil {
			return err
		}
		*field = on
	}
	return nil
}

func copyFloat(p *float64) *float64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func floatPtr(v float64) *float64 {
	return &v
}

// CreateConfig builds a default config table for fr. known overrides the
// inferred kind of some columns. Numerical variables whose maximum exceeds
// five times their 99th percentile are flagged for capping.
func CreateConfig(fr *frame.Frame, known map[string]frame.Kind) (*Config, error) {
	cfg := &Config{}
	for _, name := range fr.Columns() {
		kind, ok := known[name]
		if !ok {
			var err error
			if kind, err = fr.ColumnKind(name); err != nil {
				return nil, err
			}
		}

		v := Var{Name: name, Type: kind, Model: true}
		switch kind {
		case frame.Numerical:
			v.Impute = "-1"
			sorted, err := sortedPresent(fr, name)
			if err != nil {
				return nil, err
			}
			if len(sorted) > 0 && sorted[len(sorted)-1] > 5*quantile(sorted, 0.99) {
				v.Cap = true
			}
		case frame.Categorical:
			v.Impute = "missing"
			v.WOE = true
		}
		cfg.Vars = append(cfg.Vars, v)
	}
	return cfg, nil
}

// parseBins reads a WOE_Bin cell such as "[0, 10.5, 30]".
func parseBins(s string) ([]float64, error) {
	s = strings.Trim(strings.TrimSpace(s), "[]")
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	var out []float64
	for _, part := range strings.Split(s, ",") {
		f, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid WOE bin edge %q: %w", part, err)
		}
		out = append(out, f)
	}
	return out, nil
}

func formatBins(bins []float64) string {
	if len(bins) == 0 {
		return ""
	}
	parts := make([]string, len(bins))
	for i, b := range bins {
		parts[i] = strconv.FormatFloat(b, 'f', -1, 64)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
