package models

// WorkbookData is the inspection result for one workbook file.
type WorkbookData struct {
	// BookName is the file name without directory.
	BookName string `json:"book_name"`
	// SheetOrder lists sheet names in workbook order.
	SheetOrder []string             `json:"sheet_order"`
	Sheets     map[string]SheetData `json:"sheets"`
}
