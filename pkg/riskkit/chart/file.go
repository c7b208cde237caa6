package chart

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ErrUnsupportedFormat indicates an output file extension WriteFile cannot produce.
var ErrUnsupportedFormat = errors.New("unsupported chart format")

// WriteJSON writes the config as indented JSON.
func (c *Config) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(c)
}

// Render writes the chart in the format named by ext (".html", ".png", ".svg", ".json").
func (c *Config) Render(ext string, w io.Writer) error {
	switch strings.ToLower(ext) {
	case ".html", ".htm":
		return c.RenderHTML(w)
	case ".png":
		return c.RenderPNG(w)
	case ".svg":
		return c.RenderSVG(w)
	case ".json":
		if err := c.Validate(); err != nil {
			return err
		}
		return c.WriteJSON(w)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

// WriteFile renders the chart to path, choosing the format from its extension.
// Missing parent directories are created.
func (c *Config) WriteFile(path string) (err error) {
	ext := filepath.Ext(path)
	switch strings.ToLower(ext) {
	case ".html", ".htm", ".png", ".svg", ".json":
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := out.Close(); err == nil {
			err = cerr
		}
	}()

	return c.Render(ext, out)
}
