package chart

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
	"math"

	gochart "github.com/wcharczuk/go-chart/v2"
)

// RenderPNG writes a static PNG image of the chart.
func (c *Config) RenderPNG(w io.Writer) error {
	return c.renderStatic(gochart.PNG, w)
}

// RenderSVG writes a static SVG image of the chart.
func (c *Config) RenderSVG(w io.Writer) error {
	return c.renderStatic(gochart.SVG, w)
}

// Inline returns the chart as a base64 PNG data URI for embedding in HTML
// reports and mail bodies.
func (c *Config) Inline() (string, error) {
	var buf bytes.Buffer
	if err := c.RenderPNG(&buf); err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

type staticRenderer interface {
	Render(rp gochart.RendererProvider, w io.Writer) error
}

func (c *Config) renderStatic(rp gochart.RendererProvider, w io.Writer) error {
	if err := c.Validate(); err != nil {
		return err
	}

	var r staticRenderer
	var err error
	switch c.Type {
	case Line, Scatter:
		r, err = c.xyChart()
	case Bar:
		r, err = c.barChart()
	case Pie:
		r, err = c.pieChart()
	default:
		err = fmt.Errorf("%w: unknown type %q", ErrInvalidConfig, c.Type)
	}
	if err != nil {
		return err
	}
	return r.Render(rp, w)
}

// bounds returns the min and max over all non-missing points.
func (c *Config) bounds() (float64, float64, bool) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, s := range c.Series {
		for _, p := range s.Points {
			if p == nil {
				continue
			}
			lo = math.Min(lo, *p)
			hi = math.Max(hi, *p)
		}
	}
	return lo, hi, !math.IsInf(lo, 1)
}

// valueRange pads a degenerate range so the axis has a non-zero span.
func valueRange(lo, hi float64) *gochart.ContinuousRange {
	if lo == hi {
		return &gochart.ContinuousRange{Min: lo - 1, Max: hi + 1}
	}
	return &gochart.ContinuousRange{Min: lo, Max: hi}
}

func (c *Config) xyChart() (*gochart.Chart, error) {
	lo, hi, ok := c.bounds()
	if !ok {
		return nil, ErrNoSeries
	}
	width, height := c.size()

	ticks := make([]gochart.Tick, len(c.Categories))
	for i, label := range c.Categories {
		ticks[i] = gochart.Tick{Value: float64(i), Label: label}
	}

	ch := &gochart.Chart{
		Title:  c.Title,
		Width:  width,
		Height: height,
		Background: gochart.Style{
			Padding: gochart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16},
		},
		XAxis: gochart.XAxis{
			Ticks: ticks,
			Range: &gochart.ContinuousRange{Min: 0, Max: math.Max(float64(len(c.Categories)-1), 1)},
		},
		YAxis: gochart.YAxis{Range: valueRange(lo, hi)},
	}
	if c.XName != "" {
		ch.XAxis.Name = c.XName
	}

	for _, s := range c.Series {
		cs := gochart.ContinuousSeries{Name: s.Name}
		for i, p := range s.Points {
			if p == nil {
				continue
			}
			cs.XValues = append(cs.XValues, float64(i))
			cs.YValues = append(cs.YValues, *p)
		}
		if len(cs.XValues) == 0 {
			continue
		}
		if c.Type == Scatter || len(cs.XValues) == 1 {
			cs.Style = gochart.Style{StrokeColor: gochart.ColorTransparent, DotWidth: 4}
		}
		ch.Series = append(ch.Series, cs)
	}
	ch.Elements = []gochart.Renderable{gochart.Legend(ch)}
	return ch, nil
}

// barChart draws the first series; go-chart bar charts hold a single series.
func (c *Config) barChart() (*gochart.BarChart, error) {
	s := c.Series[0]
	var bars []gochart.Value
	for i, p := range s.Points {
		if p == nil {
			continue
		}
		bars = append(bars, gochart.Value{Label: c.Categories[i], Value: *p})
	}
	if len(bars) == 0 {
		return nil, ErrNoSeries
	}
	lo, hi, _ := c.bounds()
	lo = math.Min(lo, 0)
	width, height := c.size()

	barWidth := (width - 100) / (2 * len(bars))
	if barWidth < 4 {
		barWidth = 4
	}
	return &gochart.BarChart{
		Title:  c.Title,
		Width:  width,
		Height: height,
		Background: gochart.Style{
			Padding: gochart.Box{Top: 40},
		},
		BarWidth:   barWidth,
		BarSpacing: barWidth,
		YAxis:      gochart.YAxis{Range: valueRange(lo, hi)},
		Bars:       bars,
	}, nil
}

// pieChart draws the positive points of the first series.
func (c *Config) pieChart() (*gochart.PieChart, error) {
	s := c.Series[0]
	var values []gochart.Value
	for i, p := range s.Points {
		if p == nil || *p <= 0 {
			continue
		}
		values = append(values, gochart.Value{Label: c.Categories[i], Value: *p})
	}
	if len(values) == 0 {
		return nil, ErrNoSeries
	}
	width, height := c.size()
	return &gochart.PieChart{
		Title:  c.Title,
		Width:  width,
		Height: height,
		Values: values,
	}, nil
}
