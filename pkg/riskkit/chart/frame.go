package chart

import (
	"fmt"
	"math"
	"strconv"

	"github.com/PANDASANG1231/risk-model-tool/pkg/riskkit/frame"
)

// Options selects what FromFrame plots.
type Options struct {
	Type Type
	// X names the category column; empty uses row positions.
	X string
	// Y names the value columns; empty uses every numerical column except X.
	Y      []string
	Width  int
	Height int
}

// FromFrame converts fr into a chart configuration titled title.
func FromFrame(fr *frame.Frame, title string, opts Options) (*Config, error) {
	cfg := &Config{
		Title:  title,
		Type:   opts.Type,
		XName:  opts.X,
		Width:  opts.Width,
		Height: opts.Height,
	}
	if cfg.Type == "" {
		cfg.Type = Line
	}

	if opts.X != "" {
		col, err := fr.Column(opts.X)
		if err != nil {
			return nil, err
		}
		cfg.Categories = make([]string, len(col))
		for i, v := range col {
			cfg.Categories[i] = frame.FormatValue(v)
		}
	} else {
		cfg.Categories = make([]string, fr.Len())
		for i := range cfg.Categories {
			cfg.Categories[i] = strconv.Itoa(i)
		}
	}

	ys := opts.Y
	if len(ys) == 0 {
		for _, name := range fr.NumericColumns() {
			if name != opts.X {
				ys = append(ys, name)
			}
		}
	}
	if len(ys) == 0 {
		return nil, ErrNoSeries
	}

	for _, name := range ys {
		kind, err := fr.ColumnKind(name)
		if err != nil {
			return nil, err
		}
		if kind != frame.Numerical {
			return nil, fmt.Errorf("%w: column %q is %s", ErrNoSeries, name, kind)
		}
		values, err := fr.Floats(name)
		if err != nil {
			return nil, err
		}
		s := Series{Name: name, Points: make([]*float64, len(values))}
		for i, v := range values {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				continue
			}
			v := v
			s.Points[i] = &v
		}
		cfg.Series = append(cfg.Series, s)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
