// Package othello implements the board and rules of Othello (Reversi) on an 8x8 grid.
//
// Cells are indexed row-major: index = row*8 + col, with a1 = 0 in the top-left corner
// and h8 = 63 in the bottom-right corner.
package othello

import "strings"

// Size is the number of rows and columns on the board.
const Size = 8

// Cells is the total number of cells on the board.
const Cells = Size * Size

// Color is the state of a single cell, or the color of a player's disks.
type Color uint8

const (
	Empty Color = iota
	Black
	White
)

// Opponent returns the color of the other side.
// Empty has no opponent; asking for one is a programming error and panics.
func (c Color) Opponent() Color {
	switch c {
	case Black:
		return White
	case White:
		return Black
	}
	panic("othello: opponent of " + c.String())
}

// IsDisk reports whether c is Black or White.
func (c Color) IsDisk() bool {
	return c == Black || c == White
}

func (c Color) String() string {
	switch c {
	case Empty:
		return "Empty"
	case Black:
		return "Black"
	case White:
		return "White"
	}
	return "Color(" + string(rune('0'+c)) + ")"
}

// Player identifies a side: its disk color and whether the bot controls it.
type Player struct {
	Color     Color
	Automated bool
}

// NewPlayer returns a player for a disk color. It panics on Empty.
func NewPlayer(c Color, automated bool) Player {
	if !c.IsDisk() {
		panic("othello: player with color " + c.String())
	}
	return Player{Color: c, Automated: automated}
}

// Board is the full 64-cell grid. It is a value type: assigning or passing
// a Board copies every cell.
type Board [Cells]Color

// Start returns the standard opening position.
func Start() Board {
	var b Board
	b[27] = White
	b[28] = Black
	b[35] = Black
	b[36] = White
	return b
}

// Clone returns an independent copy of the board.
func (b *Board) Clone() Board {
	return *b
}

// At returns the color at (x, y), x being the column and y the row.
func (b *Board) At(x, y int) Color {
	return b[y*Size+x]
}

// Tally counts the disks of each color.
func Tally(b *Board) (black, white int) {
	for _, c := range b {
		switch c {
		case Black:
			black++
		case White:
			white++
		}
	}
	return black, white
}

// Count returns the number of disks of color c.
func Count(b *Board, c Color) int {
	black, white := Tally(b)
	if c == Black {
		return black
	}
	if c == White {
		return white
	}
	return Cells - black - white
}

// Grid returns the board as rows of ints (0=empty, 1=black, 2=white).
func (b *Board) Grid() [][]int {
	grid := make([][]int, Size)
	for y := range grid {
		grid[y] = make([]int, Size)
		for x := range grid[y] {
			grid[y][x] = int(b.At(x, y))
		}
	}
	return grid
}

// String renders the board with column letters and row numbers.
func (b *Board) String() string {
	var sb strings.Builder
	sb.WriteString("  a b c d e f g h\n")
	for y := 0; y < Size; y++ {
		sb.WriteByte(byte('1' + y))
		for x := 0; x < Size; x++ {
			sb.WriteByte(' ')
			switch b.At(x, y) {
			case Black:
				sb.WriteByte('X')
			case White:
				sb.WriteByte('O')
			default:
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// IsCorner reports whether cell is one of the four corners.
func IsCorner(cell int) bool {
	return cell == 0 || cell == Size-1 || cell == Cells-Size || cell == Cells-1
}
