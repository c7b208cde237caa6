package riskkit

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/PANDASANG1231/risk-model-tool/pkg/riskkit/frame"
	"github.com/PANDASANG1231/risk-model-tool/pkg/riskkit/sheet"
)

func buildBook(t *testing.T) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	fr, err := frame.FromRecords(
		[]string{"grade", "count", "bad_rate"},
		[][]any{{"A", 120, 0.01}, {"B", 80, 0.05}, {"C", 40, 0.12}},
	)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := sheet.WriteFrame(f, "Summary", sheet.MustAnchor("G1"), fr, sheet.FrameOptions{
		Index:     true,
		PrintArea: true,
	}); err != nil {
		t.Fatalf("WriteFrame failed: %v", err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewGray(image.Rect(0, 0, 2, 2))); err != nil {
		t.Fatal(err)
	}
	if err := sheet.InsertImageBytes(f, "Summary", sheet.MustAnchor("B8"), "png", buf.Bytes(),
		sheet.ImageOptions{AltText: "roc curve"}); err != nil {
		t.Fatalf("InsertImageBytes failed: %v", err)
	}

	path := filepath.Join(t.TempDir(), "report.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("SaveAs failed: %v", err)
	}
	return path
}

func TestInspect(t *testing.T) {
	path := buildBook(t)

	wb, err := Inspect(context.Background(), path, DefaultOptions())
	if err != nil {
		t.Fatalf("Inspect failed: %v", err)
	}
	if wb.BookName != "report.xlsx" {
		t.Errorf("BookName = %q", wb.BookName)
	}
	if len(wb.SheetOrder) != 2 || wb.SheetOrder[1] != "Summary" {
		t.Fatalf("SheetOrder = %v", wb.SheetOrder)
	}

	s := wb.Sheets["Summary"]
	if len(s.TableCandidates) != 1 || s.TableCandidates[0] != "G1:J4" {
		t.Errorf("TableCandidates = %v", s.TableCandidates)
	}
	if len(s.Rows) != 4 || s.Rows[1].C["9"] != int64(120) {
		t.Errorf("unexpected rows %+v", s.Rows)
	}
	if len(s.Pictures) != 1 || s.Pictures[0].Anchor != "B8" {
		t.Errorf("Pictures = %+v", s.Pictures)
	}
	if len(s.PrintAreas) != 1 || s.PrintAreas[0].C1 != 7 || s.PrintAreas[0].R2 != 4 {
		t.Errorf("PrintAreas = %+v", s.PrintAreas)
	}
}

func TestInspectLightAndSheets(t *testing.T) {
	path := buildBook(t)

	wb, err := Inspect(context.Background(), path, Options{Mode: ModeLight, Sheets: []string{"Summary"}})
	if err != nil {
		t.Fatalf("Inspect failed: %v", err)
	}
	if len(wb.SheetOrder) != 1 {
		t.Errorf("SheetOrder = %v", wb.SheetOrder)
	}
	s := wb.Sheets["Summary"]
	if len(s.Pictures) != 0 || len(s.PrintAreas) != 0 {
		t.Errorf("light mode reported drawings or print areas: %+v", s)
	}
	if len(s.TableCandidates) != 1 {
		t.Errorf("TableCandidates = %v", s.TableCandidates)
	}
}

func TestInspectErrors(t *testing.T) {
	ctx := context.Background()

	_, err := Inspect(ctx, filepath.Join(t.TempDir(), "missing.xlsx"), DefaultOptions())
	if !errors.Is(err, ErrFileNotFound) {
		t.Errorf("expected ErrFileNotFound, got %v", err)
	}

	bad := filepath.Join(t.TempDir(), "bad.xlsx")
	if err := os.WriteFile(bad, []byte("not a workbook"), 0o600); err != nil {
		t.Fatal(err)
	}
	_, err = Inspect(ctx, bad, DefaultOptions())
	if !errors.Is(err, ErrInvalidFormat) {
		t.Errorf("expected ErrInvalidFormat, got %v", err)
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		input   string
		want    Mode
		wantErr bool
	}{
		{"light", ModeLight, false},
		{"standard", ModeStandard, false},
		{"verbose", ModeVerbose, false},
		{"full", "", true},
	}
	for _, tt := range tests {
		got, err := ParseMode(tt.input)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseMode(%q) = %q, %v", tt.input, got, err)
		}
	}
}

func TestInspectionError(t *testing.T) {
	err := NewInspectionError("Summary", "cells", ErrInvalidFormat)
	if !errors.Is(err, ErrInvalidFormat) {
		t.Error("InspectionError does not unwrap")
	}
	if got := err.Error(); got != `inspection error in sheet "Summary" (cells): invalid xlsx format` {
		t.Errorf("Error() = %q", got)
	}
	if got := NewInspectionError("", "drawings", ErrInvalidFormat).Error(); got != "inspection error (drawings): invalid xlsx format" {
		t.Errorf("Error() = %q", got)
	}
}
