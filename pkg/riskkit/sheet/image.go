package sheet

import (
	"fmt"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ImageOptions controls the placement of an inserted image.
type ImageOptions struct {
	// ScaleX and ScaleY scale the image; zero means 1.
	ScaleX float64
	ScaleY float64
	// OffsetX and OffsetY shift the image from the anchor cell, in pixels.
	OffsetX int
	OffsetY int
	AltText string
	// Positioning is "", "oneCell" or "absolute".
	Positioning     string
	LockAspectRatio bool
}

func (o ImageOptions) graphic() *excelize.GraphicOptions {
	g := &excelize.GraphicOptions{
		ScaleX:          o.ScaleX,
		ScaleY:          o.ScaleY,
		OffsetX:         o.OffsetX,
		OffsetY:         o.OffsetY,
		AltText:         o.AltText,
		Positioning:     o.Positioning,
		LockAspectRatio: o.LockAspectRatio,
	}
	if g.ScaleX == 0 {
		g.ScaleX = 1
	}
	if g.ScaleY == 0 {
		g.ScaleY = 1
	}
	return g
}

// InsertImage anchors the image file at path to the anchor cell.
func InsertImage(f *excelize.File, sheet string, anchor Anchor, path string, opts ImageOptions) error {
	if err := anchor.fits(1, 1); err != nil {
		return err
	}
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("insert image: %w", err)
	}
	if err := ensureSheet(f, sheet); err != nil {
		return err
	}
	if err := f.AddPicture(sheet, anchor.String(), path, opts.graphic()); err != nil {
		return fmt.Errorf("insert image %s at %s: %w", path, anchor, err)
	}
	return nil
}

// InsertImageBytes anchors an in-memory image to the anchor cell.
// ext is the file extension, e.g. ".png".
func InsertImageBytes(f *excelize.File, sheet string, anchor Anchor, ext string, data []byte, opts ImageOptions) error {
	if err := anchor.fits(1, 1); err != nil {
		return err
	}
	if len(data) == 0 {
		return ErrEmptyBlock
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	if err := ensureSheet(f, sheet); err != nil {
		return err
	}
	err := f.AddPictureFromBytes(sheet, anchor.String(), &excelize.Picture{
		Extension: strings.ToLower(ext),
		File:      data,
		Format:    opts.graphic(),
	})
	if err != nil {
		return fmt.Errorf("insert image at %s: %w", anchor, err)
	}
	return nil
}
