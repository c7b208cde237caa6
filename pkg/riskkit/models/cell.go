// Package models defines the JSON-serializable structures reported when a
// workbook produced by the riskkit helpers is inspected.
package models

// CellRow holds the non-empty cells of one worksheet row.
type CellRow struct {
	// R is the 1-based row number.
	R int `json:"r"`
	// C maps the 1-based column number (as text) to the parsed cell value.
	C map[string]any `json:"c"`
	// Links maps column number to hyperlink target, verbose mode only.
	Links map[string]string `json:"links,omitempty"`
}
