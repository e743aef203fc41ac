package othello

import (
	"fmt"
	"strconv"
	"strings"
)

// Othello notation:
// - Columns: a-h (left to right)
// - Rows: 1-8 (top to bottom)
// - Example: d3 is column 3, row 2, cell 19

// Notation converts a cell index to a coordinate like "d3".
func Notation(cell int) string {
	if cell < 0 || cell >= Cells {
		return "--"
	}
	return fmt.Sprintf("%c%d", 'a'+rune(cell%Size), cell/Size+1)
}

// ParseNotation converts "d3" (case-insensitive) or a raw index "19" to a cell index.
func ParseNotation(s string) (int, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return 0, fmt.Errorf("empty coordinate")
	}
	if s[0] >= '0' && s[0] <= '9' {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 || n >= Cells {
			return 0, fmt.Errorf("invalid cell index: %s", s)
		}
		return n, nil
	}
	if len(s) != 2 {
		return 0, fmt.Errorf("invalid coordinate: %s", s)
	}
	col := int(s[0] - 'a')
	row := int(s[1] - '1')
	if !inBounds(col, row) {
		return 0, fmt.Errorf("coordinate out of bounds: %s", s)
	}
	return row*Size + col, nil
}
