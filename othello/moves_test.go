package othello

import (
	"testing"
)

// boardFromRows builds a board from 8 strings of 'X' (black), 'O' (white) and '.'.
func boardFromRows(t *testing.T, rows ...string) Board {
	t.Helper()
	if len(rows) != Size {
		t.Fatalf("need %d rows, got %d", Size, len(rows))
	}
	var b Board
	for y, row := range rows {
		if len(row) != Size {
			t.Fatalf("row %d has length %d", y, len(row))
		}
		for x, ch := range row {
			switch ch {
			case 'X':
				b[y*Size+x] = Black
			case 'O':
				b[y*Size+x] = White
			}
		}
	}
	return b
}

func cellsOf(moves []Move) []int {
	cells := make([]int, len(moves))
	for i, m := range moves {
		cells[i] = m.Cell
	}
	return cells
}

func TestStartPosition(t *testing.T) {
	b := Start()
	black, white := Tally(&b)
	if black != 2 || white != 2 {
		t.Fatalf("Tally(start) = (%d, %d), want (2, 2)", black, white)
	}
	checks := []struct {
		cell  int
		color Color
	}{
		{27, White},
		{28, Black},
		{35, Black},
		{36, White},
	}
	for _, c := range checks {
		if b[c.cell] != c.color {
			t.Errorf("cell %d = %v, want %v", c.cell, b[c.cell], c.color)
		}
	}
}

func TestLegalMovesFromStart(t *testing.T) {
	b := Start()
	moves := LegalMoves(&b, Black)
	want := []int{19, 26, 37, 44}
	got := cellsOf(moves)
	if len(got) != len(want) {
		t.Fatalf("LegalMoves(start, Black) = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("LegalMoves(start, Black) = %v, want %v", got, want)
		}
		if moves[i].Flips() != 1 {
			t.Errorf("move %d flips %d disks, want 1", moves[i].Cell, moves[i].Flips())
		}
	}

	white := cellsOf(LegalMoves(&b, White))
	wantWhite := []int{20, 29, 34, 43}
	for i := range wantWhite {
		if i >= len(white) || white[i] != wantWhite[i] {
			t.Fatalf("LegalMoves(start, White) = %v, want %v", white, wantWhite)
		}
	}
}

func TestLegalMovesOnlyEmptyCellsWithLines(t *testing.T) {
	boards := []Board{
		Start(),
		boardFromRows(t,
			"XOOOOOO.",
			"O.......",
			"O.X.....",
			"O..O....",
			"O...O...",
			"O....O..",
			"O.....O.",
			"........",
		),
		boardFromRows(t,
			"........",
			"..OXO...",
			"..XXXO..",
			"..OXOX..",
			"...OXO..",
			"........",
			"........",
			"........",
		),
	}
	for bi, b := range boards {
		for _, c := range []Color{Black, White} {
			for _, m := range LegalMoves(&b, c) {
				if b[m.Cell] != Empty {
					t.Errorf("board %d %v: move on occupied cell %d", bi, c, m.Cell)
				}
				if len(m.Lines) == 0 {
					t.Errorf("board %d %v: move %d has no flip lines", bi, c, m.Cell)
				}
				for _, line := range m.Lines {
					if len(line) == 0 {
						t.Errorf("board %d %v: move %d has an empty flip line", bi, c, m.Cell)
					}
					for _, cell := range line {
						if b[cell] != c.Opponent() {
							t.Errorf("board %d %v: move %d flips non-opponent cell %d", bi, c, m.Cell, cell)
						}
					}
				}
			}
		}
	}
}

func TestLegalMovesIncludeLastCell(t *testing.T) {
	b := boardFromRows(t,
		"........",
		"........",
		"........",
		"........",
		"........",
		".....X..",
		"......O.",
		"........",
	)
	moves := LegalMoves(&b, Black)
	found := false
	for _, m := range moves {
		if m.Cell == 63 {
			found = true
			if m.Flips() != 1 || m.Lines[0][0] != 54 {
				t.Errorf("move h8 lines = %v, want [[54]]", m.Lines)
			}
		}
	}
	if !found {
		t.Fatalf("expected h8 (63) among %v", cellsOf(moves))
	}
}

func TestLegalMovesNoWrapAround(t *testing.T) {
	// White on h1 and black on a2 are adjacent in index order (7, 8) but not on the board.
	b := boardFromRows(t,
		".......O",
		"X.......",
		"........",
		"........",
		"........",
		"........",
		"........",
		"........",
	)
	for _, m := range LegalMoves(&b, Black) {
		if m.Cell == 6 {
			t.Fatalf("move %d flips across the board edge: %v", m.Cell, m.Lines)
		}
	}
	if HasMoves(&b, Black) {
		t.Fatalf("black should have no move, got %v", cellsOf(LegalMoves(&b, Black)))
	}
}

func TestLegalMovesEdgeAndEmptyTerminate(t *testing.T) {
	tests := []struct {
		name string
		rows []string
		cell int
		want bool
	}{
		{
			name: "run reaches edge",
			rows: []string{"OOO.....", "........", "........", "........", "........", "........", "........", "........"},
			cell: 3,
			want: false,
		},
		{
			name: "run reaches empty",
			rows: []string{"..OO.X..", "........", "........", "........", "........", "........", "........", "........"},
			cell: 1,
			want: false,
		},
		{
			name: "run closed by own disk",
			rows: []string{".OOX....", "........", "........", "........", "........", "........", "........", "........"},
			cell: 0,
			want: true,
		},
		{
			name: "own disk adjacent",
			rows: []string{".X......", "........", "........", "........", "........", "........", "........", "........"},
			cell: 0,
			want: false,
		},
	}
	for _, tt := range tests {
		b := boardFromRows(t, tt.rows...)
		_, got := MoveAt(&b, Black, tt.cell)
		if got != tt.want {
			t.Errorf("%s: MoveAt(%d) legal = %v, want %v", tt.name, tt.cell, got, tt.want)
		}
	}
}

func TestMultipleFlipLines(t *testing.T) {
	b := boardFromRows(t,
		"X.X.X...",
		".OOO....",
		"XO.OX...",
		".OOO....",
		"X.X.X...",
		"........",
		"........",
		"........",
	)
	m, ok := MoveAt(&b, Black, 18)
	if !ok {
		t.Fatal("c3 should be legal for black")
	}
	if len(m.Lines) != 8 {
		t.Fatalf("c3 has %d lines, want 8", len(m.Lines))
	}
	if m.Flips() != 8 {
		t.Fatalf("c3 flips %d, want 8", m.Flips())
	}
}

func TestApplyTally(t *testing.T) {
	b := Start()
	for ply := 0; ply < 20; ply++ {
		c := Black
		if ply%2 == 1 {
			c = White
		}
		moves := LegalMoves(&b, c)
		if len(moves) == 0 {
			continue
		}
		m := moves[len(moves)/2]
		oldOwn, oldOpp := Count(&b, c), Count(&b, c.Opponent())
		Apply(&b, m, c)
		newOwn, newOpp := Count(&b, c), Count(&b, c.Opponent())
		if newOwn != oldOwn+1+m.Flips() {
			t.Fatalf("ply %d: own count %d, want %d", ply, newOwn, oldOwn+1+m.Flips())
		}
		if newOpp != oldOpp-m.Flips() {
			t.Fatalf("ply %d: opponent count %d, want %d", ply, newOpp, oldOpp-m.Flips())
		}
	}
}

func TestApplyDeterministic(t *testing.T) {
	a := Start()
	b := Start()
	m := LegalMoves(&a, Black)[2]
	Apply(&a, m, Black)
	Apply(&b, m, Black)
	if a != b {
		t.Fatalf("applying the same move to equal boards diverged:\n%s\n%s", a.String(), b.String())
	}
}

func TestCloneIsIndependent(t *testing.T) {
	b := Start()
	c := b.Clone()
	Apply(&c, LegalMoves(&c, Black)[0], Black)
	if b != Start() {
		t.Fatal("mutating a clone changed the original")
	}
}

func TestOpponentOfEmptyPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for Empty.Opponent()")
		}
	}()
	Empty.Opponent()
}

func TestNewPlayerRejectsEmpty(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for NewPlayer(Empty)")
		}
	}()
	NewPlayer(Empty, true)
}

func TestOpponent(t *testing.T) {
	if Black.Opponent() != White || White.Opponent() != Black {
		t.Fatal("Black and White must be each other's opponent")
	}
}

func TestFinishedAndWinner(t *testing.T) {
	b := boardFromRows(t,
		"XXXXXXXX",
		"XXXXXXXX",
		"XXXXXXXX",
		"XXXXXXXX",
		"XXXXXXXX",
		"OOOOOOOO",
		"OOOOOOOO",
		"OOOOOOOO",
	)
	if !Finished(&b) {
		t.Fatalf("board should be finished, black moves %v white moves %v",
			cellsOf(LegalMoves(&b, Black)), cellsOf(LegalMoves(&b, White)))
	}
	if Winner(&b) != Black {
		t.Fatalf("Winner = %v, want Black", Winner(&b))
	}
	start := Start()
	if Finished(&start) {
		t.Fatal("start position should not be finished")
	}
}
