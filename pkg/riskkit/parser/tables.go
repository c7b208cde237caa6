package parser

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// TableDetectionParams holds parameters for table detection.
type TableDetectionParams struct {
	DensityMin       float64
	MinNonemptyCells int
}

// DefaultTableParams returns default table detection parameters.
func DefaultTableParams() TableDetectionParams {
	return TableDetectionParams{
		DensityMin:       0.5,
		MinNonemptyCells: 3,
	}
}

// DetectTables reports the data blocks of a sheet as ranges such as "B2:E10".
// Blocks are runs of non-empty rows separated by at least one empty row;
// each must be dense enough to look like a written frame.
func DetectTables(f *excelize.File, sheetName string, params TableDetectionParams) ([]string, error) {
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, err
	}

	var ranges []string
	start := -1
	flush := func(end int) {
		if start < 0 {
			return
		}
		if ref, ok := blockRange(rows, start, end, params); ok {
			ranges = append(ranges, ref)
		}
		start = -1
	}

	for i, row := range rows {
		if rowEmpty(row) {
			flush(i - 1)
			continue
		}
		if start < 0 {
			start = i
		}
	}
	flush(len(rows) - 1)

	return ranges, nil
}

func rowEmpty(row []string) bool {
	for _, c := range row {
		if c != "" {
			return false
		}
	}
	return true
}

// blockRange computes the bounding box of rows[first..last] and checks density.
func blockRange(rows [][]string, first, last int, params TableDetectionParams) (string, bool) {
	minCol, maxCol := -1, -1
	count := 0
	for r := first; r <= last; r++ {
		for c, v := range rows[r] {
			if v == "" {
				continue
			}
			count++
			if minCol < 0 || c < minCol {
				minCol = c
			}
			if c > maxCol {
				maxCol = c
			}
		}
	}
	if count < params.MinNonemptyCells {
		return "", false
	}
	total := (last - first + 1) * (maxCol - minCol + 1)
	if float64(count)/float64(total) < params.DensityMin {
		return "", false
	}

	startCell, _ := excelize.CoordinatesToCellName(minCol+1, first+1)
	endCell, _ := excelize.CoordinatesToCellName(maxCol+1, last+1)
	return fmt.Sprintf("%s:%s", startCell, endCell), true
}
