// Package chart turns a frame into a chart configuration and renders it as
// an interactive ECharts page, a static PNG/SVG image, an inline data URI
// or JSON.
package chart

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// ErrNoSeries indicates a frame without any numerical column to plot.
var ErrNoSeries = errors.New("no numerical series to plot")

// ErrInvalidConfig indicates a chart configuration that cannot be rendered.
var ErrInvalidConfig = errors.New("invalid chart config")

// Type is the plot type of a chart.
type Type string

const (
	Line    Type = "line"
	Bar     Type = "bar"
	Scatter Type = "scatter"
	Pie     Type = "pie"
)

const (
	DefaultWidth  = 900
	DefaultHeight = 500
)

// Series is one named sequence of points aligned with the categories.
// A nil point is missing and serializes as null.
type Series struct {
	Name   string     `json:"name" validate:"required"`
	Points []*float64 `json:"data"`
}

// Count returns the number of non-missing points.
func (s Series) Count() int {
	n := 0
	for _, p := range s.Points {
		if p != nil {
			n++
		}
	}
	return n
}

// Config is a serializable chart description.
type Config struct {
	Title string `json:"title"`
	Type  Type   `json:"type" validate:"required,oneof=line bar scatter pie"`
	// XName is the frame column used for categories, empty for row positions.
	XName      string   `json:"x_name,omitempty"`
	Categories []string `json:"categories"`
	Series     []Series `json:"series" validate:"min=1,dive"`
	Width      int      `json:"width" validate:"gte=0"`
	Height     int      `json:"height" validate:"gte=0"`
}

var validate = validator.New() //nolint: gochecknoglobals

// Validate checks the config tags and that every series has one point per category.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	for _, s := range c.Series {
		if len(s.Points) != len(c.Categories) {
			return fmt.Errorf("%w: series %q has %d points for %d categories",
				ErrInvalidConfig, s.Name, len(s.Points), len(c.Categories))
		}
	}
	return nil
}

// PointCount returns the number of non-missing points over all series.
func (c *Config) PointCount() int {
	n := 0
	for _, s := range c.Series {
		n += s.Count()
	}
	return n
}

func (c *Config) size() (int, int) {
	w, h := c.Width, c.Height
	if w == 0 {
		w = DefaultWidth
	}
	if h == 0 {
		h = DefaultHeight
	}
	return w, h
}
