package othello

// Move is a legal placement: the target cell and one flip line per direction
// in which a run of opponent disks is closed by one of the mover's disks.
type Move struct {
	Cell  int
	Lines [][]int
}

// Flips returns the number of disks the move turns over.
func (m Move) Flips() int {
	n := 0
	for _, line := range m.Lines {
		n += len(line)
	}
	return n
}

// X returns the column of the target cell.
func (m Move) X() int { return m.Cell % Size }

// Y returns the row of the target cell.
func (m Move) Y() int { return m.Cell / Size }

// directions are the 8 compass steps as (dx, dy).
var directions = [8][2]int{
	{0, -1}, {1, -1}, {1, 0}, {1, 1},
	{0, 1}, {-1, 1}, {-1, 0}, {-1, -1},
}

func inBounds(x, y int) bool {
	return x >= 0 && x < Size && y >= 0 && y < Size
}

// LegalMoves returns every legal move for color c in increasing cell order.
// It returns nil when c has no legal move.
func LegalMoves(b *Board, c Color) []Move {
	opp := c.Opponent()
	var moves []Move
	for cell := 0; cell < Cells; cell++ {
		if b[cell] != Empty {
			continue
		}
		lines := flipLines(b, cell, c, opp)
		if len(lines) == 0 {
			continue
		}
		moves = append(moves, Move{Cell: cell, Lines: lines})
	}
	return moves
}

// MoveAt returns the legal move for c at cell, if there is one.
func MoveAt(b *Board, c Color, cell int) (Move, bool) {
	if cell < 0 || cell >= Cells || b[cell] != Empty {
		return Move{}, false
	}
	lines := flipLines(b, cell, c, c.Opponent())
	if len(lines) == 0 {
		return Move{}, false
	}
	return Move{Cell: cell, Lines: lines}, true
}

// flipLines walks outward from cell in each direction that starts with an
// opponent disk, keeping the runs that end on an own disk.
func flipLines(b *Board, cell int, own, opp Color) [][]int {
	x0, y0 := cell%Size, cell/Size
	var lines [][]int
	for _, d := range directions {
		x, y := x0+d[0], y0+d[1]
		if !inBounds(x, y) || b[y*Size+x] != opp {
			continue
		}
		var run []int
		for inBounds(x, y) {
			c := b[y*Size+x]
			if c == opp {
				run = append(run, y*Size+x)
				x += d[0]
				y += d[1]
				continue
			}
			if c == own {
				lines = append(lines, run)
			}
			break
		}
	}
	return lines
}

// HasMoves reports whether c has at least one legal move.
func HasMoves(b *Board, c Color) bool {
	opp := c.Opponent()
	for cell := 0; cell < Cells; cell++ {
		if b[cell] == Empty && len(flipLines(b, cell, c, opp)) > 0 {
			return true
		}
	}
	return false
}

// Apply places a disk for c at the move's cell and flips every disk in its lines.
// The move must have been produced by LegalMoves on an equal board.
func Apply(b *Board, m Move, c Color) {
	if !c.IsDisk() {
		panic("othello: apply move for " + c.String())
	}
	b[m.Cell] = c
	for _, line := range m.Lines {
		for _, cell := range line {
			b[cell] = c
		}
	}
}

// Finished reports whether neither side can move.
func Finished(b *Board) bool {
	return !HasMoves(b, Black) && !HasMoves(b, White)
}

// Winner returns the color with more disks, or Empty on a draw.
func Winner(b *Board) Color {
	black, white := Tally(b)
	switch {
	case black > white:
		return Black
	case white > black:
		return White
	}
	return Empty
}
