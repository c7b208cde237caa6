package models

// SheetData is everything reported for one worksheet.
type SheetData struct {
	Rows []CellRow `json:"rows,omitempty"`
	// TableCandidates are ranges that look like a written data block, e.g. G1:J5.
	TableCandidates []string    `json:"table_candidates,omitempty"`
	Charts          []Chart     `json:"charts,omitempty"`
	Pictures        []Picture   `json:"pictures,omitempty"`
	PrintAreas      []PrintArea `json:"print_areas,omitempty"`
}
