package frame

import (
	"bytes"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample(t *testing.T) *Frame {
	t.Helper()
	f, err := FromRecords(
		[]string{"id", "age", "city"},
		[][]any{
			{1, 31.5, "Beijing"},
			{2, nil, "Shanghai"},
			{3, 45.0, nil},
		},
	)
	require.NoError(t, err)
	return f
}

func TestFromRecords(t *testing.T) {
	f := sample(t)

	assert.Equal(t, 3, f.Len())
	assert.Equal(t, 3, f.Width())
	assert.Equal(t, []string{"id", "age", "city"}, f.Columns())
	assert.Equal(t, int64(1), f.Value(0, 0))
	assert.Nil(t, f.Value(1, 1))
	assert.Equal(t, []any{int64(2), nil, "Shanghai"}, f.Row(1))
}

func TestFromRecordsRejectsBadShape(t *testing.T) {
	_, err := FromRecords([]string{"a", "b"}, [][]any{{1}})
	require.ErrorIs(t, err, ErrLengthMismatch)

	_, err = New("a", "a")
	require.ErrorIs(t, err, ErrDuplicateColumn)
}

func TestSetColumnAndDrop(t *testing.T) {
	f := sample(t)

	require.NoError(t, f.SetColumn("flag", []any{true, false, true}))
	assert.True(t, f.Has("flag"))
	assert.Equal(t, 4, f.Width())

	err := f.SetColumn("short", []any{1})
	require.ErrorIs(t, err, ErrLengthMismatch)

	require.NoError(t, f.SetFloats("age", []float64{1, math.NaN(), 3}))
	col, err := f.Column("age")
	require.NoError(t, err)
	assert.Equal(t, []any{1.0, nil, 3.0}, col)

	f.Drop("id", "nope")
	assert.Equal(t, []string{"age", "city", "flag"}, f.Columns())
	_, err = f.Column("id")
	require.ErrorIs(t, err, ErrUnknownColumn)
}

func TestSelectAndCopyAreIndependent(t *testing.T) {
	f := sample(t)

	sel, err := f.Select("city", "id")
	require.NoError(t, err)
	assert.Equal(t, []string{"city", "id"}, sel.Columns())
	assert.Equal(t, 3, sel.Len())

	cp := f.Copy()
	require.NoError(t, cp.SetColumn("id", []any{9, 9, 9}))
	assert.Equal(t, int64(1), f.Value(0, 0))

	_, err = f.Select("missing")
	require.ErrorIs(t, err, ErrUnknownColumn)
}

func TestFloatsAndMissing(t *testing.T) {
	f := sample(t)

	vals, err := f.Floats("age")
	require.NoError(t, err)
	assert.Equal(t, 31.5, vals[0])
	assert.True(t, math.IsNaN(vals[1]))

	n, err := f.MissingCount("city")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	assert.True(t, IsMissing(nil))
	assert.True(t, IsMissing(math.NaN()))
	assert.False(t, IsMissing(""))
	assert.False(t, IsMissing(0.0))
}

func TestColumnKind(t *testing.T) {
	f, err := FromRecords(
		[]string{"n", "s", "ts", "mixed", "empty"},
		[][]any{
			{1, "a", time.Unix(0, 0), 1, nil},
			{2.5, "b", time.Unix(10, 0), "x", nil},
		},
	)
	require.NoError(t, err)

	tests := []struct {
		column  string
		want    Kind
		wantErr bool
	}{
		{"n", Numerical, false},
		{"s", Categorical, false},
		{"ts", Timestamp, false},
		{"mixed", "", true},
		{"empty", Numerical, false},
	}
	for _, tt := range tests {
		got, err := f.ColumnKind(tt.column)
		if tt.wantErr {
			assert.ErrorIs(t, err, ErrMixedKinds, tt.column)
			continue
		}
		require.NoError(t, err, tt.column)
		assert.Equal(t, tt.want, got, tt.column)
	}

	assert.Equal(t, []string{"n", "empty"}, f.NumericColumns())
}

func TestReadCSV(t *testing.T) {
	in := "\ufeffid,score,grade\n1,0.5,A\n2,,B\n3,7,\n"

	f, err := ReadCSV(strings.NewReader(in))
	require.NoError(t, err)

	assert.Equal(t, []string{"id", "score", "grade"}, f.Columns())
	assert.Equal(t, 3, f.Len())
	assert.Equal(t, 0.5, f.Value(0, 1))
	assert.Nil(t, f.Value(1, 1))
	assert.Equal(t, int64(7), f.Value(2, 1))
	assert.Nil(t, f.Value(2, 2))
}

func TestReadCSVTypesWholeColumns(t *testing.T) {
	in := "grade,x,zip\n1,1.5,100\nA,2,\n2,3,200\nB,4,300\n"

	f, err := ReadCSV(strings.NewReader(in))
	require.NoError(t, err)

	assert.Equal(t, "1", f.Value(0, 0))
	assert.Equal(t, "A", f.Value(1, 0))
	kind, err := f.ColumnKind("grade")
	require.NoError(t, err)
	assert.Equal(t, Categorical, kind)

	assert.Equal(t, int64(2), f.Value(1, 1))
	assert.Equal(t, 1.5, f.Value(0, 1))
	assert.Nil(t, f.Value(1, 2))
	assert.Equal(t, []string{"x", "zip"}, f.NumericColumns())

	empty, err := ReadCSV(strings.NewReader("a,b\n"))
	require.NoError(t, err)
	assert.Equal(t, 0, empty.Len())
	assert.Equal(t, 2, empty.Width())
}

func TestReadCSVErrors(t *testing.T) {
	_, err := ReadCSV(strings.NewReader(""))
	require.Error(t, err)

	_, err = ReadCSV(strings.NewReader("a,b\n1\n"))
	require.ErrorIs(t, err, ErrLengthMismatch)
}

func TestWriteCSV(t *testing.T) {
	f := sample(t)

	var buf bytes.Buffer
	require.NoError(t, f.WriteCSV(&buf))
	assert.Equal(t, "id,age,city\n1,31.5,Beijing\n2,,Shanghai\n3,45,\n", buf.String())

	back, err := ReadCSV(&buf)
	require.NoError(t, err)
	assert.Equal(t, f.Len(), back.Len())
	assert.Equal(t, int64(45), back.Value(2, 1))
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		input    string
		expected any
	}{
		{"123", int64(123)},
		{"123.45", 123.45},
		{"-100", int64(-100)},
		{"hello", "hello"},
		{"", nil},
		{"NaN", nil},
	}

	for _, tt := range tests {
		result := ParseValue(tt.input)
		if result != tt.expected {
			t.Errorf("ParseValue(%q) = %v (type: %T), expected %v (type: %T)",
				tt.input, result, result, tt.expected, tt.expected)
		}
	}
}
