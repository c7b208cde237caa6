package preprocess

import (
	"fmt"
	"io"
	"math"
	"slices"

	"github.com/PANDASANG1231/risk-model-tool/pkg/riskkit/frame"
)

// ReadConfig reads a config or reference table from CSV.
func ReadConfig(r io.Reader) (*Config, error) {
	fr, err := frame.ReadCSV(r)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if !fr.Has(ColVarName) || !fr.Has(ColVarType) {
		return nil, fmt.Errorf("read config: %s and %s columns are required", ColVarName, ColVarType)
	}

	cfg := &Config{}
	for _, col := range fr.Columns() {
		if !slices.Contains(configHeader, col) && !slices.Contains(referenceHeader, col) && col != ColPrecision {
			cfg.Unknown = append(cfg.Unknown, col)
		}
	}

	for i := 0; i < fr.Len(); i++ {
		row := func(col string) any {
			values, err := fr.Column(col)
			if err != nil {
				return nil
			}
			return values[i]
		}
		text := func(col string) string {
			return frame.FormatValue(row(col))
		}
		flag := func(col string) bool {
			return frame.ToFloat(row(col)) == 1
		}
		number := func(col string) *float64 {
			f := frame.ToFloat(row(col))
			if math.IsNaN(f) {
				return nil
			}
			return &f
		}

		bins, err := parseBins(text(ColWOEBin))
		if err != nil {
			return nil, fmt.Errorf("read config row %d: %w", i+2, err)
		}
		cfg.Vars = append(cfg.Vars, Var{
			Name:       text(ColVarName),
			Type:       frame.Kind(text(ColVarType)),
			Model:      flag(ColIndModel),
			Cap:        flag(ColIndCap),
			CapValue:   number(ColCapValue),
			Floor:      flag(ColIndFloor),
			FloorValue: number(ColFloorValue),
			Impute:     text(ColMissingImpute),
			WOE:        flag(ColIndWOE),
			WOEBins:    bins,
			Norm:       flag(ColIndNorm),
			Scale:      flag(ColIndScale),
			Mean:       number(ColMean),
			Std:        number(ColStd),
			Min:        number(ColMin),
			Max:        number(ColMax),
		})
	}
	return cfg, nil
}

func (c *Config) hasReference() bool {
	for _, v := range c.Vars {
		if v.Mean != nil || v.Std != nil || v.Min != nil || v.Max != nil {
			return true
		}
	}
	return false
}

// Frame returns the table as a frame with the config headers.
func (c *Config) Frame() *frame.Frame {
	header := append([]string(nil), configHeader...)
	withRef := c.hasReference()
	if withRef {
		header = append(header, referenceHeader...)
	}
	fr, _ := frame.New(header...)

	flag := func(b bool) any {
		if b {
			return int64(1)
		}
		return int64(0)
	}
	number := func(p *float64) any {
		if p == nil {
			return nil
		}
		return *p
	}
	for _, v := range c.Vars {
		var impute any
		if v.Impute != "" {
			impute = v.Impute
		}
		var bins any
		if len(v.WOEBins) > 0 {
			bins = formatBins(v.WOEBins)
		}
		row := []any{
			v.Name, string(v.Type), flag(v.Model), flag(v.Cap), number(v.CapValue), flag(v.Floor),
			number(v.FloorValue), impute, flag(v.WOE), bins, flag(v.Norm), flag(v.Scale),
		}
		if withRef {
			row = append(row, number(v.Mean), number(v.Std), number(v.Min), number(v.Max))
		}
		_ = fr.AppendRow(row)
	}
	return fr
}

// WriteCSV writes the table as CSV.
func (c *Config) WriteCSV(w io.Writer) error {
	return c.Frame().WriteCSV(w)
}
