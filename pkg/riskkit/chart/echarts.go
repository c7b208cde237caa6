package chart

import (
	"fmt"
	"io"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// missingPoint is how ECharts marks a gap in a series.
const missingPoint = "-"

type renderer interface {
	Render(w io.Writer) error
}

// RenderHTML writes an interactive ECharts page for the config.
func (c *Config) RenderHTML(w io.Writer) error {
	if err := c.Validate(); err != nil {
		return err
	}

	width, height := c.size()
	global := []charts.GlobalOpts{
		charts.WithTitleOpts(opts.Title{Title: c.Title}),
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: c.Title,
			Width:     strconv.Itoa(width) + "px",
			Height:    strconv.Itoa(height) + "px",
		}),
		charts.WithTooltipOpts(opts.Tooltip{Trigger: "axis"}),
	}

	var r renderer
	switch c.Type {
	case Line:
		line := charts.NewLine()
		line.SetGlobalOptions(global...)
		line.SetXAxis(c.Categories)
		for _, s := range c.Series {
			data := make([]opts.LineData, len(s.Points))
			for i, p := range s.Points {
				data[i] = opts.LineData{Value: pointValue(p)}
			}
			line.AddSeries(s.Name, data)
		}
		r = line
	case Bar:
		bar := charts.NewBar()
		bar.SetGlobalOptions(global...)
		bar.SetXAxis(c.Categories)
		for _, s := range c.Series {
			data := make([]opts.BarData, len(s.Points))
			for i, p := range s.Points {
				data[i] = opts.BarData{Value: pointValue(p)}
			}
			bar.AddSeries(s.Name, data)
		}
		r = bar
	case Scatter:
		scatter := charts.NewScatter()
		scatter.SetGlobalOptions(global...)
		scatter.SetXAxis(c.Categories)
		for _, s := range c.Series {
			data := make([]opts.ScatterData, len(s.Points))
			for i, p := range s.Points {
				data[i] = opts.ScatterData{Value: pointValue(p)}
			}
			scatter.AddSeries(s.Name, data)
		}
		r = scatter
	case Pie:
		pie := charts.NewPie()
		pie.SetGlobalOptions(global...)
		s := c.Series[0]
		data := make([]opts.PieData, 0, len(s.Points))
		for i, p := range s.Points {
			if p == nil {
				continue
			}
			data = append(data, opts.PieData{Name: c.Categories[i], Value: *p})
		}
		pie.AddSeries(s.Name, data)
		r = pie
	default:
		return fmt.Errorf("%w: unknown type %q", ErrInvalidConfig, c.Type)
	}

	return r.Render(w)
}

func pointValue(p *float64) any {
	if p == nil {
		return missingPoint
	}
	return *p
}
