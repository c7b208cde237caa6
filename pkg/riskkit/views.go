package riskkit

import (
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/PANDASANG1231/risk-model-tool/pkg/riskkit/models"
)

// PrintAreaViews returns one view per print area of every inspected sheet,
// in sheet order.
func PrintAreaViews(wb *models.WorkbookData) []models.PrintAreaView {
	var views []models.PrintAreaView
	for _, name := range wb.SheetOrder {
		sheet := wb.Sheets[name]
		for _, area := range sheet.PrintAreas {
			views = append(views, ViewPrintArea(wb.BookName, name, sheet, area))
		}
	}
	return views
}

// ViewPrintArea keeps the cells, table candidates, charts and pictures of
// sheet that lie inside area. Charts and pictures are placed by their anchor
// cell; table candidates are kept when they intersect the area.
func ViewPrintArea(bookName, sheetName string, sheet models.SheetData, area models.PrintArea) models.PrintAreaView {
	view := models.PrintAreaView{
		BookName:  bookName,
		SheetName: sheetName,
		Area:      area,
	}

	for _, row := range sheet.Rows {
		if row.R < area.R1 || row.R > area.R2 {
			continue
		}
		cells := make(map[string]any)
		for col, v := range row.C {
			if c, err := strconv.Atoi(col); err == nil && area.Contains(c, row.R) {
				cells[col] = v
			}
		}
		if len(cells) == 0 {
			continue
		}
		kept := models.CellRow{R: row.R, C: cells}
		for col, target := range row.Links {
			if _, ok := cells[col]; ok {
				if kept.Links == nil {
					kept.Links = make(map[string]string)
				}
				kept.Links[col] = target
			}
		}
		view.Rows = append(view.Rows, kept)
	}

	for _, ref := range sheet.TableCandidates {
		if intersects(ref, area) {
			view.TableCandidates = append(view.TableCandidates, ref)
		}
	}
	for _, c := range sheet.Charts {
		if inArea(c.Anchor, area) {
			view.Charts = append(view.Charts, c)
		}
	}
	for _, p := range sheet.Pictures {
		if inArea(p.Anchor, area) {
			view.Pictures = append(view.Pictures, p)
		}
	}
	return view
}

func inArea(cell string, area models.PrintArea) bool {
	c, r, err := excelize.CellNameToCoordinates(cell)
	if err != nil {
		return false
	}
	return area.Contains(c, r)
}

func intersects(ref string, area models.PrintArea) bool {
	from, to, ok := strings.Cut(ref, ":")
	if !ok {
		return inArea(ref, area)
	}
	c1, r1, err := excelize.CellNameToCoordinates(from)
	if err != nil {
		return false
	}
	c2, r2, err := excelize.CellNameToCoordinates(to)
	if err != nil {
		return false
	}
	return area.Overlaps(c1, r1, c2, r2)
}
