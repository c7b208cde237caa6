package preprocess

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/PANDASANG1231/risk-model-tool/pkg/logger"
	"github.com/PANDASANG1231/risk-model-tool/pkg/riskkit/frame"
)

// StepKind names a step of a Tactic.
type StepKind string

const (
	StepCap           StepKind = "Cap"
	StepFloor         StepKind = "Floor"
	StepMissingImpute StepKind = "MissingImpute"
	StepWOE           StepKind = "Woe"
	StepNormalize     StepKind = "Normalize"
	StepScale         StepKind = "Scale"
)

// ErrUnknownStep indicates a step name ParseStepKind does not know.
var ErrUnknownStep = errors.New("unknown step")

var stepKinds = []StepKind{ //nolint: gochecknoglobals
	StepCap, StepFloor, StepMissingImpute, StepWOE, StepNormalize, StepScale,
}

// ParseStepKind parses a step name case-insensitively.
func ParseStepKind(s string) (StepKind, error) {
	for _, k := range stepKinds {
		if strings.EqualFold(s, string(k)) {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStep, s)
}

// Tactic runs an ordered list of steps over a frame and collects their fitted
// values into one reference table.
type Tactic struct {
	// Reference starts as the config table and holds fitted values after Fit.
	Reference *Config
	// Target is the binary target column, required by the WOE step.
	Target string
	// WOEReference is the fitted WOE table.
	WOEReference *WOETable
	// WOEOutputDir is passed to the WOE step.
	WOEOutputDir string

	steps []StepKind
}

// NewTactic returns a Tactic over a copy of cfg running steps in order.
func NewTactic(cfg *Config, target string, steps ...StepKind) *Tactic {
	t := &Tactic{Reference: cfg.Copy(), Target: target}
	for _, s := range steps {
		t.addProcess(context.Background(), s)
	}
	return t
}

// Steps returns the steps in order.
func (t *Tactic) Steps() []StepKind {
	return append([]StepKind(nil), t.steps...)
}

// AddProcess appends steps. A step already in the pipeline is skipped with a warning.
func (t *Tactic) AddProcess(ctx context.Context, steps ...StepKind) {
	for _, s := range steps {
		t.addProcess(ctx, s)
	}
}

func (t *Tactic) addProcess(ctx context.Context, s StepKind) {
	if slices.Contains(t.steps, s) {
		logger.Warn(ctx, "step already in pipeline", zap.String("step", string(s)))
		return
	}
	t.steps = append(t.steps, s)
}

// ClearProcess removes every step.
func (t *Tactic) ClearProcess() {
	t.steps = nil
}

// AddVariables sets indicator ind for the named variables.
func (t *Tactic) AddVariables(ind Indicator, names ...string) error {
	return t.Reference.SetIndicator(ind, true, names...)
}

// DropVariables clears indicator ind for the named variables.
func (t *Tactic) DropVariables(ind Indicator, names ...string) error {
	return t.Reference.SetIndicator(ind, false, names...)
}

// Summary renders the pipeline as "Cap -----> Floor -----> ...".
func (t *Tactic) Summary() string {
	names := make([]string, len(t.steps))
	for i, s := range t.steps {
		names[i] = string(s)
	}
	return strings.Join(names, " -----> ")
}

// CheckConfig reports every problem of the config table against fr: unknown
// headers, variables missing from fr, types that are not numerical or
// categorical or that disagree with the data, cap or floor on categorical
// variables and numerical impute rules that are not mean, median or a number.
func (t *Tactic) CheckConfig(fr *frame.Frame) []error {
	var errs []error
	for _, h := range t.Reference.Unknown {
		errs = append(errs, fmt.Errorf("unknown config column %q", h))
	}
	for _, v := range t.Reference.Vars {
		if !fr.Has(v.Name) {
			errs = append(errs, fmt.Errorf("variable %q is not in the data", v.Name))
			continue
		}
		if v.Type != frame.Numerical && v.Type != frame.Categorical {
			errs = append(errs, fmt.Errorf("variable %q has unsupported type %q", v.Name, v.Type))
			continue
		}
		kind, err := fr.ColumnKind(v.Name)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if kind != v.Type {
			errs = append(errs, fmt.Errorf("variable %q is %s in the config but %s in the data", v.Name, v.Type, kind))
		}
		if v.Type == frame.Categorical && (v.Cap || v.Floor) {
			errs = append(errs, fmt.Errorf("variable %q is categorical and cannot be capped or floored", v.Name))
		}
		if v.Type == frame.Numerical && v.Impute != "" && v.Impute != ImputeMean && v.Impute != ImputeMedian {
			if _, err := strconv.ParseFloat(v.Impute, 64); err != nil {
				errs = append(errs, fmt.Errorf("variable %q has invalid numerical impute %q", v.Name, v.Impute))
			}
		}
	}
	return errs
}

func (t *Tactic) newStep(kind StepKind) (Step, error) {
	switch kind {
	case StepCap:
		return NewCap(t.Reference), nil
	case StepFloor:
		return NewFloor(t.Reference), nil
	case StepMissingImpute:
		return NewMissingImpute(t.Reference), nil
	case StepWOE:
		w := NewWOE(t.Reference, t.Target)
		w.Table = t.WOEReference
		w.OutputDir = t.WOEOutputDir
		return w, nil
	case StepNormalize:
		return NewNormalize(t.Reference), nil
	case StepScale:
		return NewScale(t.Reference), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStep, kind)
	}
}

// Fit checks the config, then fits and applies every step in order on a copy
// of fr. It returns the transformed copy and keeps the fitted values in
// Reference and WOEReference.
func (t *Tactic) Fit(ctx context.Context, fr *frame.Frame) (*frame.Frame, error) {
	if errs := t.CheckConfig(fr); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %w", ErrConfigCheck, errors.Join(errs...))
	}
	if slices.Contains(t.steps, StepWOE) && (t.Target == "" || !fr.Has(t.Target)) {
		return nil, ErrTargetRequired
	}

	out := fr.Copy()
	for _, kind := range t.steps {
		start := time.Now()
		step, err := t.newStep(kind)
		if err != nil {
			return nil, err
		}
		if err := step.Fit(ctx, out); err != nil {
			return nil, err
		}
		if out, err = step.Apply(ctx, out); err != nil {
			return nil, err
		}

		if w, ok := step.(*WOE); ok {
			t.WOEReference = w.Table
		} else if r, ok := step.(interface{ Reference() *Config }); ok {
			t.Reference = r.Reference()
		}
		logger.Info(ctx, "step fitted", zap.String("step", step.Name()), zap.Duration("elapsed", time.Since(start)))
	}
	return out, nil
}

// Apply runs every step with the fitted reference on a copy of fr.
func (t *Tactic) Apply(ctx context.Context, fr *frame.Frame) (*frame.Frame, error) {
	out := fr.Copy()
	for _, kind := range t.steps {
		step, err := t.newStep(kind)
		if err != nil {
			return nil, err
		}
		if out, err = step.Apply(ctx, out); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// WriteReference writes the reference table as CSV.
func (t *Tactic) WriteReference(w io.Writer) error {
	return t.Reference.WriteCSV(w)
}

// SaveReference writes the reference table to path.
func (t *Tactic) SaveReference(path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return t.WriteReference(f)
}
