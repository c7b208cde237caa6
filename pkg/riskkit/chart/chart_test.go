package chart

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PANDASANG1231/risk-model-tool/pkg/riskkit/frame"
)

func scores(t *testing.T) *frame.Frame {
	t.Helper()
	fr, err := frame.FromRecords(
		[]string{"month", "good", "bad"},
		[][]any{
			{"Jan", 10, 1.5},
			{"Feb", 12, nil},
			{"Mar", 9, 2.5},
		},
	)
	require.NoError(t, err)
	return fr
}

func TestFromFrame(t *testing.T) {
	cfg, err := FromFrame(scores(t), "Monthly score", Options{X: "month"})
	require.NoError(t, err)

	assert.Equal(t, Line, cfg.Type)
	assert.Equal(t, []string{"Jan", "Feb", "Mar"}, cfg.Categories)
	require.Len(t, cfg.Series, 2)
	assert.Equal(t, "good", cfg.Series[0].Name)
	assert.Equal(t, "bad", cfg.Series[1].Name)
	assert.Nil(t, cfg.Series[1].Points[1])
	assert.Equal(t, 5, cfg.PointCount())
}

func TestFromFrameRowPositions(t *testing.T) {
	cfg, err := FromFrame(scores(t), "t", Options{Type: Bar, Y: []string{"bad"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"0", "1", "2"}, cfg.Categories)
	require.Len(t, cfg.Series, 1)
	assert.Equal(t, 2, cfg.Series[0].Count())
}

func TestFromFrameErrors(t *testing.T) {
	text, err := frame.FromRecords([]string{"name"}, [][]any{{"a"}, {"b"}})
	require.NoError(t, err)

	_, err = FromFrame(text, "t", Options{})
	assert.ErrorIs(t, err, ErrNoSeries)

	_, err = FromFrame(scores(t), "t", Options{Y: []string{"month"}})
	assert.ErrorIs(t, err, ErrNoSeries)

	_, err = FromFrame(scores(t), "t", Options{X: "nope"})
	assert.ErrorIs(t, err, frame.ErrUnknownColumn)

	_, err = FromFrame(scores(t), "t", Options{Type: "radar"})
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestJSONMarksMissingPoints(t *testing.T) {
	cfg, err := FromFrame(scores(t), "Monthly score", Options{X: "month", Y: []string{"bad"}})
	require.NoError(t, err)

	data, err := json.Marshal(cfg)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"data":[1.5,null,2.5]`)

	var back Config
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, 2, back.PointCount())
}

func TestRender(t *testing.T) {
	for _, typ := range []Type{Line, Bar, Scatter, Pie} {
		t.Run(string(typ), func(t *testing.T) {
			cfg, err := FromFrame(scores(t), "Monthly score", Options{Type: typ, X: "month", Width: 400, Height: 300})
			require.NoError(t, err)

			var html bytes.Buffer
			require.NoError(t, cfg.RenderHTML(&html))
			assert.Contains(t, html.String(), "Monthly score")

			var png bytes.Buffer
			require.NoError(t, cfg.RenderPNG(&png))
			assert.True(t, bytes.HasPrefix(png.Bytes(), []byte("\x89PNG")))

			var svg bytes.Buffer
			require.NoError(t, cfg.RenderSVG(&svg))
			assert.Contains(t, svg.String(), "<svg")
		})
	}
}

func TestInline(t *testing.T) {
	cfg, err := FromFrame(scores(t), "Monthly score", Options{X: "month"})
	require.NoError(t, err)

	uri, err := cfg.Inline()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(uri, "data:image/png;base64,"))
}

func TestWriteFile(t *testing.T) {
	cfg, err := FromFrame(scores(t), "Monthly score", Options{X: "month"})
	require.NoError(t, err)

	dir := t.TempDir()
	for _, name := range []string{"out/chart.html", "chart.png", "chart.svg", "chart.json"} {
		path := filepath.Join(dir, name)
		require.NoError(t, cfg.WriteFile(path), name)
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Positive(t, info.Size(), name)
	}

	err = cfg.WriteFile(filepath.Join(dir, "chart.txt"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}
