package preprocess

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/stat"

	"github.com/PANDASANG1231/risk-model-tool/pkg/logger"
	"github.com/PANDASANG1231/risk-model-tool/pkg/riskkit/frame"
)

// MissingImpute fills missing values. Numerical variables take the mean,
// the median or a literal number; categorical variables take the mode or a
// literal value.
type MissingImpute struct {
	base
}

// NewMissingImpute returns an imputation step for vars, or for the model
// variables with a Missing_Impute rule when vars is nil.
func NewMissingImpute(cfg *Config, vars ...string) *MissingImpute {
	return &MissingImpute{base: newBase(cfg, nilIfEmpty(vars), func(v Var) bool { return v.Impute != "" })}
}

func (*MissingImpute) Name() string { return "MissingImpute" }

// Fit resolves the impute rule of every model variable and warns about
// variables that have missing values but no rule.
func (s *MissingImpute) Fit(ctx context.Context, fr *frame.Frame) error {
	for i := range s.ref.Vars {
		v := &s.ref.Vars[i]
		if !v.Model || !fr.Has(v.Name) {
			continue
		}
		value, err := resolveImpute(fr, *v)
		if err != nil {
			return stepError(s.Name(), v.Name, err)
		}
		v.Impute = value

		missing, _ := fr.MissingCount(v.Name)
		if missing > 0 && value == "" {
			logger.Warn(ctx, "variable has missing values but no impute rule",
				zap.String("variable", v.Name), zap.Int("missing", missing))
		}
	}
	return nil
}

func resolveImpute(fr *frame.Frame, v Var) (string, error) {
	switch v.Type {
	case frame.Numerical:
		switch v.Impute {
		case ImputeMean:
			vals, err := present(fr, v.Name)
			if err != nil || len(vals) == 0 {
				return "", err
			}
			return formatFloat(stat.Mean(vals, nil)), nil
		case ImputeMedian:
			sorted, err := sortedPresent(fr, v.Name)
			if err != nil || len(sorted) == 0 {
				return "", err
			}
			return formatFloat(quantile(sorted, 0.5)), nil
		case "":
			return "", nil
		default:
			if _, err := strconv.ParseFloat(v.Impute, 64); err != nil {
				return "", fmt.Errorf("numerical impute must be mean, median or a number, got %q", v.Impute)
			}
			return v.Impute, nil
		}
	case frame.Categorical:
		if v.Impute == ImputeMode {
			return mode(fr, v.Name)
		}
		return v.Impute, nil
	default:
		return "", fmt.Errorf("cannot impute variable of type %q", v.Type)
	}
}

// mode returns the most frequent non-missing value; ties go to the smallest.
func mode(fr *frame.Frame, name string) (string, error) {
	col, err := fr.Column(name)
	if err != nil {
		return "", err
	}
	counts := make(map[string]int)
	for _, v := range col {
		if v != nil {
			counts[frame.FormatValue(v)]++
		}
	}
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	best := ""
	for _, k := range keys {
		if best == "" || counts[k] > counts[best] {
			best = k
		}
	}
	return best, nil
}

func (s *MissingImpute) Apply(_ context.Context, fr *frame.Frame) (*frame.Frame, error) {
	for _, name := range s.vars {
		missing, err := fr.MissingCount(name)
		if err != nil {
			return nil, stepError(s.Name(), name, err)
		}
		if missing == 0 {
			continue
		}
		v, err := s.variable(name)
		if err != nil {
			return nil, stepError(s.Name(), name, err)
		}

		var fill any = v.Impute
		if v.Type == frame.Numerical {
			f, err := strconv.ParseFloat(v.Impute, 64)
			if err != nil {
				return nil, stepError(s.Name(), name, fmt.Errorf("%w: impute value %q", ErrNotFitted, v.Impute))
			}
			fill = f
		} else if v.Impute == "" || v.Impute == ImputeMode {
			return nil, stepError(s.Name(), name, ErrNotFitted)
		}

		col, _ := fr.Column(name)
		out := make([]any, len(col))
		for i, c := range col {
			if frame.IsMissing(c) {
				c = fill
			}
			out[i] = c
		}
		if err := fr.SetColumn(name, out); err != nil {
			return nil, stepError(s.Name(), name, err)
		}
	}
	return fr, nil
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
