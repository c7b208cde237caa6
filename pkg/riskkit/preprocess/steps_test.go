package preprocess

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PANDASANG1231/risk-model-tool/pkg/riskkit/frame"
)

func numVar(name string) Var {
	return Var{Name: name, Type: frame.Numerical, Model: true}
}

func TestCap(t *testing.T) {
	ctx := context.Background()
	fr, _ := frame.New()
	column(t, fr, "x", append(seq(1, 100), nil)...)

	v := numVar("x")
	v.Cap = true
	s := NewCap(&Config{Vars: []Var{v}})
	assert.Equal(t, []string{"x"}, s.Variables())

	require.NoError(t, s.Fit(ctx, fr))
	got, _ := s.Reference().Var("x")
	require.NotNil(t, got.CapValue)
	assert.InDelta(t, 99.01, *got.CapValue, 1e-9)

	out, err := s.Apply(ctx, fr)
	require.NoError(t, err)
	vals := floats(t, out, "x")
	assert.Equal(t, 50.0, vals[49])
	assert.InDelta(t, 99.01, vals[99], 1e-9)
	assert.True(t, math.IsNaN(vals[100]))
}

func TestCapGivenValue(t *testing.T) {
	ctx := context.Background()
	fr, _ := frame.New()
	column(t, fr, "x", 10, 60, 70)

	v := numVar("x")
	v.Cap = true
	v.CapValue = floatPtr(50)
	s := NewCap(&Config{Vars: []Var{v}})
	require.NoError(t, s.Fit(ctx, fr))
	out, err := s.Apply(ctx, fr)
	require.NoError(t, err)
	assert.Equal(t, []float64{10, 50, 50}, floats(t, out, "x"))
}

func TestCapNotFitted(t *testing.T) {
	fr, _ := frame.New()
	column(t, fr, "x", 1, 2)

	_, err := NewCap(&Config{Vars: []Var{numVar("x")}}, "x").Apply(context.Background(), fr)
	assert.ErrorIs(t, err, ErrNotFitted)

	var stepErr *StepError
	require.ErrorAs(t, err, &stepErr)
	assert.Equal(t, "Cap", stepErr.Step)
	assert.Equal(t, "x", stepErr.Variable)

	_, err = NewCap(&Config{}, "y").Apply(context.Background(), fr)
	assert.ErrorIs(t, err, ErrUnknownVariable)
}

func TestFloor(t *testing.T) {
	ctx := context.Background()
	fr, _ := frame.New()
	column(t, fr, "x", append([]any{-50}, seq(1, 99)...)...)

	v := numVar("x")
	v.Floor = true
	s := NewFloor(&Config{Vars: []Var{v}})
	require.NoError(t, s.Fit(ctx, fr))

	got, _ := s.Reference().Var("x")
	require.NotNil(t, got.FloorValue)
	assert.Equal(t, 0.0, *got.FloorValue)

	out, err := s.Apply(ctx, fr)
	require.NoError(t, err)
	vals := floats(t, out, "x")
	assert.Equal(t, 0.0, vals[0])
	assert.Equal(t, 1.0, vals[1])
}

func TestMissingImpute(t *testing.T) {
	ctx := context.Background()
	fr, _ := frame.New()
	column(t, fr, "a", 1, 2, nil, 3)
	column(t, fr, "b", 1, nil, 10, 4)
	column(t, fr, "c", "x", "y", "x", nil)
	column(t, fr, "d", nil, 5, 6, 7)
	column(t, fr, "e", nil, 1, 1, 1)

	a, b, d, e := numVar("a"), numVar("b"), numVar("d"), numVar("e")
	a.Impute, b.Impute, d.Impute = ImputeMean, ImputeMedian, "-1"
	c := Var{Name: "c", Type: frame.Categorical, Model: true, Impute: ImputeMode}

	s := NewMissingImpute(&Config{Vars: []Var{a, b, c, d, e}})
	assert.Equal(t, []string{"a", "b", "c", "d"}, s.Variables())
	require.NoError(t, s.Fit(ctx, fr))

	ref := s.Reference()
	want := map[string]string{"a": "2", "b": "4", "c": "x", "d": "-1", "e": ""}
	for name, impute := range want {
		v, _ := ref.Var(name)
		assert.Equal(t, impute, v.Impute, name)
	}

	out, err := s.Apply(ctx, fr)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 2, 3}, floats(t, out, "a"))
	assert.Equal(t, []float64{1, 4, 10, 4}, floats(t, out, "b"))
	col, _ := out.Column("c")
	assert.Equal(t, []any{"x", "y", "x", "x"}, col)
	assert.Equal(t, []float64{-1, 5, 6, 7}, floats(t, out, "d"))
	missing, _ := out.MissingCount("e")
	assert.Equal(t, 1, missing)
}

func TestMissingImputeErrors(t *testing.T) {
	ctx := context.Background()
	fr, _ := frame.New()
	column(t, fr, "a", 1, nil)

	a := numVar("a")
	a.Impute = ImputeMean
	_, err := NewMissingImpute(&Config{Vars: []Var{a}}).Apply(ctx, fr)
	assert.ErrorIs(t, err, ErrNotFitted)

	a.Impute = "abc"
	assert.Error(t, NewMissingImpute(&Config{Vars: []Var{a}}).Fit(ctx, fr))
}

func TestNormalize(t *testing.T) {
	ctx := context.Background()
	fr, _ := frame.New()
	column(t, fr, "x", 1, 2, 3, 4, 5, nil)

	v := numVar("x")
	v.Norm = true
	s := NewNormalize(&Config{Vars: []Var{v}})
	require.NoError(t, s.Fit(ctx, fr))

	got, _ := s.Reference().Var("x")
	assert.InDelta(t, 3, *got.Mean, 1e-12)
	assert.InDelta(t, math.Sqrt(2.5), *got.Std, 1e-12)

	out, err := s.Apply(ctx, fr)
	require.NoError(t, err)
	vals := floats(t, out, "x")
	assert.InDelta(t, 0, vals[2], 1e-12)
	assert.InDelta(t, 2/math.Sqrt(2.5), vals[4], 1e-12)
	assert.True(t, math.IsNaN(vals[5]))
}

func TestNormalizeWOEColumn(t *testing.T) {
	ctx := context.Background()
	fr, _ := frame.New()
	column(t, fr, "nwoe_x", -1.0, 1.0)

	v := numVar("x")
	v.WOE, v.Norm = true, true
	s := NewNormalize(&Config{Vars: []Var{v}})
	require.NoError(t, s.Fit(ctx, fr))
	out, err := s.Apply(ctx, fr)
	require.NoError(t, err)
	vals := floats(t, out, "nwoe_x")
	assert.InDelta(t, -1/math.Sqrt2, vals[0], 1e-12)
}

func TestNormalizeZeroSpread(t *testing.T) {
	fr, _ := frame.New()
	column(t, fr, "x", 2, 2, 2)

	v := numVar("x")
	v.Norm = true
	err := NewNormalize(&Config{Vars: []Var{v}}).Fit(context.Background(), fr)
	assert.ErrorIs(t, err, ErrZeroSpread)

	v.Mean, v.Std = floatPtr(2), floatPtr(0)
	_, err = NewNormalize(&Config{Vars: []Var{v}}).Apply(context.Background(), fr)
	assert.ErrorIs(t, err, ErrZeroSpread)
}

func TestScale(t *testing.T) {
	ctx := context.Background()
	train, _ := frame.New()
	column(t, train, "x", 0, 5, 10)

	v := numVar("x")
	v.Scale = true
	s := NewScale(&Config{Vars: []Var{v}})
	require.NoError(t, s.Fit(ctx, train))

	test, _ := frame.New()
	column(t, test, "x", -5, 5, 20, nil)
	out, err := s.Apply(ctx, test)
	require.NoError(t, err)
	vals := floats(t, out, "x")
	assert.Equal(t, []float64{0, 0.5, 1}, vals[:3])
	assert.True(t, math.IsNaN(vals[3]))

	flat, _ := frame.New()
	column(t, flat, "x", 3, 3)
	assert.ErrorIs(t, NewScale(&Config{Vars: []Var{v}}).Fit(ctx, flat), ErrZeroSpread)
}
