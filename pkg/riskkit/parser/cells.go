package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/PANDASANG1231/risk-model-tool/pkg/riskkit/frame"
	"github.com/PANDASANG1231/risk-model-tool/pkg/riskkit/models"
)

// ExtractCells extracts cell data from a sheet.
// It returns a slice of CellRow containing non-empty rows.
func ExtractCells(f *excelize.File, sheetName string, includeLinks bool) ([]models.CellRow, error) {
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, err
	}

	var result []models.CellRow
	for rowIdx, row := range rows {
		rowNum := rowIdx + 1
		cellMap := make(map[string]any)
		linkMap := make(map[string]string)

		for colIdx, cellValue := range row {
			if cellValue == "" {
				continue
			}
			colStr := strconv.Itoa(colIdx + 1)
			cellMap[colStr] = frame.ParseValue(cellValue)

			if includeLinks {
				cellName, _ := excelize.CoordinatesToCellName(colIdx+1, rowNum)
				hasLink, target, err := f.GetCellHyperLink(sheetName, cellName)
				if err == nil && hasLink && target != "" {
					linkMap[colStr] = target
				}
			}
		}

		if len(cellMap) == 0 {
			continue
		}
		cellRow := models.CellRow{R: rowNum, C: cellMap}
		if len(linkMap) > 0 {
			cellRow.Links = linkMap
		}
		result = append(result, cellRow)
	}

	return result, nil
}

// ExtractFrame reads the block rangeRef (e.g. "B2:E10") of a sheet back into a frame.
// With header set, the first row of the block supplies the column names;
// otherwise columns are named by their letters.
func ExtractFrame(f *excelize.File, sheetName, rangeRef string, header bool) (*frame.Frame, error) {
	c1, r1, c2, r2, err := splitRange(rangeRef)
	if err != nil {
		return nil, err
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, err
	}
	cell := func(r, c int) string {
		if r-1 >= len(rows) || c-1 >= len(rows[r-1]) {
			return ""
		}
		return rows[r-1][c-1]
	}

	names := make([]string, 0, c2-c1+1)
	for c := c1; c <= c2; c++ {
		if header {
			names = append(names, cell(r1, c))
			continue
		}
		name, err := excelize.ColumnNumberToName(c)
		if err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	if header {
		r1++
	}

	out, err := frame.New(names...)
	if err != nil {
		return nil, err
	}
	for r := r1; r <= r2; r++ {
		rec := make([]any, 0, len(names))
		for c := c1; c <= c2; c++ {
			rec = append(rec, frame.ParseValue(cell(r, c)))
		}
		if err := out.AppendRow(rec); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// splitRange parses "A1:D10" (with or without $) into 1-based bounds.
func splitRange(ref string) (c1, r1, c2, r2 int, err error) {
	parts := strings.Split(strings.ReplaceAll(ref, "$", ""), ":")
	if len(parts) != 2 {
		return 0, 0, 0, 0, fmt.Errorf("invalid range %q", ref)
	}
	if c1, r1, err = excelize.CellNameToCoordinates(parts[0]); err != nil {
		return 0, 0, 0, 0, err
	}
	if c2, r2, err = excelize.CellNameToCoordinates(parts[1]); err != nil {
		return 0, 0, 0, 0, err
	}
	if c2 < c1 || r2 < r1 {
		return 0, 0, 0, 0, fmt.Errorf("invalid range %q", ref)
	}
	return c1, r1, c2, r2, nil
}
