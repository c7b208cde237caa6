package sheet

import (
	"bytes"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/PANDASANG1231/risk-model-tool/pkg/riskkit/chart"
	"github.com/PANDASANG1231/risk-model-tool/pkg/riskkit/frame"
	"github.com/PANDASANG1231/risk-model-tool/pkg/riskkit/parser"
)

func readCell(t *testing.T, f *excelize.File, sheet, cell string) string {
	t.Helper()
	v, err := f.GetCellValue(sheet, cell)
	require.NoError(t, err)
	return v
}

func sampleFrame(t *testing.T) *frame.Frame {
	t.Helper()
	fr, err := frame.FromRecords(
		[]string{"grade", "count", "bad_rate"},
		[][]any{
			{"A", 120, 0.01},
			{"B", 80, nil},
			{"C", 40, 0.12},
		},
	)
	require.NoError(t, err)
	return fr
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewGray(image.Rect(0, 0, 2, 2))))
	return buf.Bytes()
}

func TestParseAnchor(t *testing.T) {
	tests := []struct {
		input   string
		want    Anchor
		wantErr bool
	}{
		{"G1", Anchor{Col: 7, Row: 1}, false},
		{"$B$3", Anchor{Col: 2, Row: 3}, false},
		{" XFD1048576 ", Anchor{Col: excelize.MaxColumns, Row: excelize.TotalRows}, false},
		{"A0", Anchor{}, true},
		{"XFE1", Anchor{}, true},
		{"A1048577", Anchor{}, true},
		{"hello", Anchor{}, true},
		{"", Anchor{}, true},
	}
	for _, tt := range tests {
		got, err := ParseAnchor(tt.input)
		if tt.wantErr {
			assert.ErrorIs(t, err, ErrInvalidAnchor, tt.input)
			continue
		}
		require.NoError(t, err, tt.input)
		assert.Equal(t, tt.want, got, tt.input)
	}

	assert.Equal(t, "H3", MustAnchor("G1").Offset(1, 2).String())
}

func TestWriteCellRowColumn(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	require.NoError(t, WriteCell(f, "Sheet1", MustAnchor("B2"), 3.5))
	require.NoError(t, WriteRow(f, "Sheet1", MustAnchor("C1"), []any{"x", 2, nil, "z"}))
	require.NoError(t, WriteColumn(f, "Report", MustAnchor("A1"), []any{1, 2, 3}))

	assert.Equal(t, "3.5", readCell(t, f, "Sheet1", "B2"))
	assert.Equal(t, "x", readCell(t, f, "Sheet1", "C1"))
	assert.Equal(t, "2", readCell(t, f, "Sheet1", "D1"))
	assert.Equal(t, "", readCell(t, f, "Sheet1", "E1"))
	assert.Equal(t, "z", readCell(t, f, "Sheet1", "F1"))
	assert.Equal(t, "3", readCell(t, f, "Report", "A3"))
	assert.Contains(t, f.GetSheetList(), "Report")

	assert.ErrorIs(t, WriteRow(f, "Sheet1", MustAnchor("XFD1"), []any{1, 2}), ErrOutOfBounds)
	assert.ErrorIs(t, WriteColumn(f, "Sheet1", MustAnchor("A1048576"), []any{1, 2}), ErrOutOfBounds)
	assert.ErrorIs(t, WriteRow(f, "Sheet1", MustAnchor("A1"), nil), ErrEmptyBlock)
}

func TestWriteFrame(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	rng, err := WriteFrame(f, "Sheet1", MustAnchor("G1"), sampleFrame(t), FrameOptions{
		Index:       true,
		HeaderStyle: true,
		ColWidth:    14,
		AutoFilter:  true,
		PrintArea:   true,
	})
	require.NoError(t, err)

	assert.Equal(t, "G1:J4", rng.String())
	assert.Equal(t, "Sheet1!$G$1:$J$4", rng.Ref())
	assert.Equal(t, []string{"index", "grade", "count", "bad_rate"}, rng.Columns)

	assert.Equal(t, "index", readCell(t, f, "Sheet1", "G1"))
	assert.Equal(t, "bad_rate", readCell(t, f, "Sheet1", "J1"))
	assert.Equal(t, "0", readCell(t, f, "Sheet1", "G2"))
	assert.Equal(t, "A", readCell(t, f, "Sheet1", "H2"))
	assert.Equal(t, "120", readCell(t, f, "Sheet1", "I2"))
	assert.Equal(t, "0.01", readCell(t, f, "Sheet1", "J2"))
	assert.Equal(t, "", readCell(t, f, "Sheet1", "J3"))
	assert.Equal(t, "C", readCell(t, f, "Sheet1", "H4"))

	ref, ok := rng.ColumnRef("count")
	require.True(t, ok)
	assert.Equal(t, "Sheet1!$I$2:$I$4", ref)

	areas := parser.ExtractPrintAreas(f)
	require.Len(t, areas["Sheet1"], 1)
	assert.Equal(t, 7, areas["Sheet1"][0].C1)
	assert.Equal(t, 4, areas["Sheet1"][0].R2)

	back, err := parser.ExtractFrame(f, "Sheet1", rng.String(), true)
	require.NoError(t, err)
	assert.Equal(t, 3, back.Len())
	assert.Nil(t, back.Value(1, 3))
}

func TestWriteFrameReplacesPrintArea(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	_, err := WriteFrame(f, "Sheet1", MustAnchor("A1"), sampleFrame(t), FrameOptions{PrintArea: true})
	require.NoError(t, err)
	_, err = WriteFrame(f, "Other", MustAnchor("B2"), sampleFrame(t), FrameOptions{PrintArea: true})
	require.NoError(t, err)
	_, err = WriteFrame(f, "Sheet1", MustAnchor("G10"), sampleFrame(t), FrameOptions{PrintArea: true})
	require.NoError(t, err)

	areas := parser.ExtractPrintAreas(f)
	require.Len(t, areas["Sheet1"], 1)
	assert.Equal(t, "G10:I13", areas["Sheet1"][0].String())
	require.Len(t, areas["Other"], 1)
	assert.Equal(t, "B2:D5", areas["Other"][0].String())
}

func TestWriteFrameSkipHeader(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	rng, err := WriteFrame(f, "New Sheet", MustAnchor("A5"), sampleFrame(t), FrameOptions{SkipHeader: true})
	require.NoError(t, err)
	assert.Equal(t, "A5:C7", rng.String())
	assert.Equal(t, "'New Sheet'!$A$5:$C$7", rng.Ref())
	assert.Equal(t, "A", readCell(t, f, "New Sheet", "A5"))

	_, ok := rng.HeaderRef("grade")
	assert.False(t, ok)

	_, err = WriteFrame(f, "Sheet1", MustAnchor("A1048575"), sampleFrame(t), FrameOptions{})
	assert.ErrorIs(t, err, ErrOutOfBounds)

	empty, err := frame.New()
	require.NoError(t, err)
	_, err = WriteFrame(f, "Sheet1", MustAnchor("A1"), empty, FrameOptions{})
	assert.ErrorIs(t, err, ErrEmptyBlock)
}

func TestInsertImage(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	path := filepath.Join(t.TempDir(), "logo.png")
	require.NoError(t, os.WriteFile(path, pngBytes(t), 0o644))

	require.NoError(t, InsertImage(f, "Sheet1", MustAnchor("G1"), path, ImageOptions{AltText: "logo"}))
	require.NoError(t, InsertImageBytes(f, "Charts", MustAnchor("B2"), "png", pngBytes(t), ImageOptions{ScaleX: 2}))

	pics, err := f.GetPictures("Sheet1", "G1")
	require.NoError(t, err)
	require.Len(t, pics, 1)
	assert.Equal(t, "logo", pics[0].Format.AltText)

	pics, err = f.GetPictures("Charts", "B2")
	require.NoError(t, err)
	assert.Len(t, pics, 1)

	err = InsertImage(f, "Sheet1", MustAnchor("A1"), filepath.Join(t.TempDir(), "missing.png"), ImageOptions{})
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.ErrorIs(t, InsertImageBytes(f, "Sheet1", MustAnchor("A1"), ".png", nil, ImageOptions{}), ErrEmptyBlock)
}

func TestInsertChart(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	fr := sampleFrame(t)
	rng, err := WriteFrame(f, "Sheet1", MustAnchor("A1"), fr, FrameOptions{})
	require.NoError(t, err)

	cfg, err := chart.FromFrame(fr, "Bad rate by grade", chart.Options{Type: chart.Bar, X: "grade", Y: []string{"bad_rate"}})
	require.NoError(t, err)
	require.NoError(t, InsertChart(f, "Sheet1", MustAnchor("F2"), cfg, rng))

	path := filepath.Join(t.TempDir(), "book.xlsx")
	require.NoError(t, f.SaveAs(path))

	charts, _, err := parser.ExtractDrawings(path, "standard")
	require.NoError(t, err)
	require.Len(t, charts["Sheet1"], 1)
	got := charts["Sheet1"][0]
	assert.Equal(t, "F2", got.Anchor)
	assert.Equal(t, "Bad rate by grade", got.Title)
	require.Len(t, got.Series, 1)
	assert.Equal(t, "Sheet1!$C$2:$C$4", got.Series[0].ValueRange)
	assert.Equal(t, "Sheet1!$A$2:$A$4", got.Series[0].CategoryRange)

	other, err := frame.FromRecords([]string{"score"}, [][]any{{1}, {2}, {3}})
	require.NoError(t, err)
	cfg, err = chart.FromFrame(other, "x", chart.Options{})
	require.NoError(t, err)
	assert.ErrorIs(t, InsertChart(f, "Sheet1", MustAnchor("F20"), cfg, rng), ErrSeriesNotInRange)
}
