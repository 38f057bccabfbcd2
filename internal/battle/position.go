package battle

import "fmt"

// GridRows is the fixed depth of the enemy grid. Row 0 is the row closest to
// the player; row 1 sits behind it, in front of the gates.
const GridRows = 2

// GridPosition addresses a single cell on the enemy grid. Equality is
// structural, so positions are usable as map keys.
type GridPosition struct {
	Column int `json:"column"`
	Row    int `json:"row"`
}

// NoPosition is the sentinel returned when no cell is available or assigned.
var NoPosition = GridPosition{Column: -1, Row: -1}

// Valid reports whether the position addresses a cell inside a grid with the
// given column count.
func (p GridPosition) Valid(columns int) bool {
	return p.Column >= 0 && p.Column < columns && p.Row >= 0 && p.Row < GridRows
}

// IsNone reports whether the position is the sentinel.
func (p GridPosition) IsNone() bool {
	return p == NoPosition
}

func (p GridPosition) String() string {
	if p.IsNone() {
		return "(none)"
	}
	return fmt.Sprintf("(%d,%d)", p.Column, p.Row)
}
