package models

import "github.com/xuri/excelize/v2"

// PrintArea is the 1-based, inclusive cell block of a sheet's print area.
type PrintArea struct {
	R1 int `json:"r1"`
	C1 int `json:"c1"`
	R2 int `json:"r2"`
	C2 int `json:"c2"`
}

// Contains reports whether the cell at column c, row r lies in the area.
func (p PrintArea) Contains(c, r int) bool {
	return c >= p.C1 && c <= p.C2 && r >= p.R1 && r <= p.R2
}

// Overlaps reports whether the block from (c1, r1) to (c2, r2) shares a cell with the area.
func (p PrintArea) Overlaps(c1, r1, c2, r2 int) bool {
	return c1 <= p.C2 && c2 >= p.C1 && r1 <= p.R2 && r2 >= p.R1
}

// String renders the area as a range such as "G1:J4".
func (p PrintArea) String() string {
	from, err := excelize.CoordinatesToCellName(p.C1, p.R1)
	if err != nil {
		return ""
	}
	to, err := excelize.CoordinatesToCellName(p.C2, p.R2)
	if err != nil {
		return ""
	}
	return from + ":" + to
}
