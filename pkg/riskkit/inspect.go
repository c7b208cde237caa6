package riskkit

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/PANDASANG1231/risk-model-tool/pkg/logger"
	"github.com/PANDASANG1231/risk-model-tool/pkg/riskkit/models"
	"github.com/PANDASANG1231/risk-model-tool/pkg/riskkit/parser"
)

// Inspect reads back the structure of a workbook: cells, data blocks and,
// depending on the mode, native charts, pictures and print areas.
// Failures in a single component are logged and leave that component empty.
func Inspect(ctx context.Context, path string, opts Options) (*models.WorkbookData, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
	}
	if opts.Mode == "" {
		opts.Mode = ModeStandard
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	defer f.Close()

	log := logger.Get(ctx).With(zap.String("book", filepath.Base(path)))
	warn := func(e *InspectionError) {
		log.Warn("inspection component skipped", zap.Error(e))
	}

	sheets := make(map[string]models.SheetData)
	var order []string

	for _, sheetName := range f.GetSheetList() {
		if !opts.wants(sheetName) {
			continue
		}
		order = append(order, sheetName)

		rows, err := parser.ExtractCells(f, sheetName, opts.ShouldIncludeLinks())
		if err != nil {
			warn(NewInspectionError(sheetName, "cells", err))
			rows = nil
		}

		tables, err := parser.DetectTables(f, sheetName, parser.DefaultTableParams())
		if err != nil {
			warn(NewInspectionError(sheetName, "tables", err))
			tables = nil
		}

		sheets[sheetName] = models.SheetData{
			Rows:            rows,
			TableCandidates: tables,
		}
	}

	if opts.Mode != ModeLight {
		charts, pictures, err := parser.ExtractDrawings(path, string(opts.Mode))
		if err != nil {
			warn(NewInspectionError("", "drawings", err))
		}
		for sheetName, sheet := range sheets {
			sheet.Charts = charts[sheetName]
			sheet.Pictures = pictures[sheetName]
			sheets[sheetName] = sheet
		}
	}

	if opts.ShouldIncludePrintAreas() {
		for sheetName, areas := range parser.ExtractPrintAreas(f) {
			if sheet, ok := sheets[sheetName]; ok {
				sheet.PrintAreas = areas
				sheets[sheetName] = sheet
			}
		}
	}

	return &models.WorkbookData{
		BookName:   filepath.Base(path),
		SheetOrder: order,
		Sheets:     sheets,
	}, nil
}
