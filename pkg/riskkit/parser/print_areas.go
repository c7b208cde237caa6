package parser

import (
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/PANDASANG1231/risk-model-tool/pkg/riskkit/models"
)

const printAreaName = "_xlnm.Print_Area"

// ExtractPrintAreas returns the print areas of a workbook keyed by sheet name.
func ExtractPrintAreas(f *excelize.File) map[string][]models.PrintArea {
	result := make(map[string][]models.PrintArea)
	sheets := f.GetSheetList()

	for _, dn := range f.GetDefinedName() {
		if !strings.EqualFold(dn.Name, printAreaName) {
			continue
		}
		sheetName, areas := parsePrintAreaReference(dn.RefersTo)
		if sheetName == "" && dn.Scope != "" && dn.Scope != "Workbook" {
			sheetName = dn.Scope
		}
		if sheetName == "" && len(sheets) > 0 {
			sheetName = sheets[0]
		}
		if len(areas) > 0 {
			result[sheetName] = append(result[sheetName], areas...)
		}
	}

	return result
}

// parsePrintAreaReference splits 'Sheet Name'!$A$1:$D$10[,...] into the sheet
// name and its areas.
func parsePrintAreaReference(ref string) (string, []models.PrintArea) {
	var areas []models.PrintArea
	var sheetName string

	for _, part := range strings.Split(ref, ",") {
		part = strings.TrimSpace(part)
		rangeStr := part
		if idx := strings.LastIndex(part, "!"); idx >= 0 {
			if sheetName == "" {
				sheetName = strings.ReplaceAll(strings.Trim(part[:idx], "'"), "''", "'")
			}
			rangeStr = part[idx+1:]
		}
		c1, r1, c2, r2, err := splitRange(rangeStr)
		if err != nil {
			continue
		}
		areas = append(areas, models.PrintArea{R1: r1, C1: c1, R2: r2, C2: c2})
	}

	return sheetName, areas
}
