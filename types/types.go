// Package types contains shared data structures for rothello.
package types

// BoardState is a snapshot of an Othello game handed to the UI.
// Board is indexed as Board[y][x] where 0=empty, 1=black, 2=white.
type BoardState struct {
	MoveNumber   int         `json:"move_number"`
	PlayerToMove int         `json:"player_to_move"` // 1=black, 2=white
	Phase        string      `json:"phase"`          // "playing", "finished"
	Board        [][]int     `json:"board"`
	Outcome      string      `json:"outcome"`
	BlackCount   int         `json:"black_count"`
	WhiteCount   int         `json:"white_count"`
	LegalMoves   []int       `json:"legal_moves"` // cells playable by PlayerToMove
	Analysis     []Candidate `json:"analysis"`    // root scores of the last bot search
	LastMove     struct {
		X int `json:"x"`
		Y int `json:"y"`
	} `json:"last_move"`
}

// Candidate is one root move considered by the bot and its aggregated score.
type Candidate struct {
	Cell  int `json:"cell"`
	Score int `json:"score"`
}

// Finished returns true if the game is over.
func (b *BoardState) Finished() bool {
	return b.Phase == "finished"
}

// Height returns the board height.
func (b *BoardState) Height() int {
	return len(b.Board)
}

// Width returns the board width.
func (b *BoardState) Width() int {
	if b.Height() == 0 {
		return 0
	}
	return len(b.Board[0])
}

// IsLegal reports whether (x, y) is a legal move for the side to move.
func (b *BoardState) IsLegal(x, y int) bool {
	cell := y*b.Width() + x
	for _, c := range b.LegalMoves {
		if c == cell {
			return true
		}
	}
	return false
}

// BoardPos represents a position on the board.
type BoardPos struct {
	X int
	Y int
}

// NewBoardState creates an empty snapshot of the given size.
func NewBoardState(size int) *BoardState {
	board := make([][]int, size)
	for i := range board {
		board[i] = make([]int, size)
	}
	return &BoardState{
		MoveNumber:   0,
		PlayerToMove: 1, // Black plays first
		Phase:        "playing",
		Board:        board,
		LastMove: struct {
			X int `json:"x"`
			Y int `json:"y"`
		}{X: -1, Y: -1},
	}
}
