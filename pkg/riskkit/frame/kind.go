package frame

import (
	"errors"
	"fmt"
	"time"
)

// Kind is the feature type of a column.
type Kind string

const (
	// Numerical columns hold numbers or booleans.
	Numerical Kind = "numerical"
	// Categorical columns hold text.
	Categorical Kind = "categorical"
	// Timestamp columns hold time values.
	Timestamp Kind = "timestamp"
)

// ErrMixedKinds indicates a column whose non-missing values have different kinds.
var ErrMixedKinds = errors.New("mixed column kinds")

// KindOf returns the kind of a single non-missing value.
func KindOf(v any) (Kind, bool) {
	switch v.(type) {
	case int64, float64, bool:
		return Numerical, true
	case string:
		return Categorical, true
	case time.Time:
		return Timestamp, true
	default:
		return "", false
	}
}

// ColumnKind infers the kind of column name from its non-missing values.
// An all-missing column is reported as Numerical.
func (f *Frame) ColumnKind(name string) (Kind, error) {
	col, err := f.Column(name)
	if err != nil {
		return "", err
	}
	var kind Kind
	for _, v := range col {
		if IsMissing(v) {
			continue
		}
		k, ok := KindOf(v)
		if !ok {
			return "", fmt.Errorf("%w: column %q has value of type %T", ErrMixedKinds, name, v)
		}
		if kind == "" {
			kind = k
			continue
		}
		if k != kind {
			return "", fmt.Errorf("%w: column %q has %s and %s values", ErrMixedKinds, name, kind, k)
		}
	}
	if kind == "" {
		kind = Numerical
	}
	return kind, nil
}

// NumericColumns returns the names of all numerical columns in order.
func (f *Frame) NumericColumns() []string {
	var out []string
	for _, c := range f.columns {
		if k, err := f.ColumnKind(c); err == nil && k == Numerical {
			out = append(out, c)
		}
	}
	return out
}
