package local

import (
	"errors"
	"fmt"

	"github.com/Hopman/rothello/othello"
)

var (
	ErrGameOver      = errors.New("game is over")
	ErrNotYourTurn   = errors.New("not your turn")
	ErrIllegalMove   = errors.New("illegal move")
	ErrMustPlay      = errors.New("legal moves available")
	ErrNothingToUndo = errors.New("nothing to undo")
)

// Ply is one entry of the game history. Cell is -1 for a pass.
type Ply struct {
	Color  othello.Color
	Cell   int
	Flips  int
	before othello.Board
}

// Pass reports whether the ply was a pass.
func (p Ply) Pass() bool {
	return p.Cell < 0
}

// X returns the column of the ply, -1 for a pass.
func (p Ply) X() int {
	if p.Pass() {
		return -1
	}
	return p.Cell % othello.Size
}

// Y returns the row of the ply, -1 for a pass.
func (p Ply) Y() int {
	if p.Pass() {
		return -1
	}
	return p.Cell / othello.Size
}

func (p Ply) String() string {
	if p.Pass() {
		return p.Color.String() + " passes"
	}
	return fmt.Sprintf("%s %s (+%d)", p.Color, othello.Notation(p.Cell), p.Flips)
}

// Game is the authoritative state of one game: board, side to move and history.
// It sequences turns, records forced passes and detects the end of the game.
// Game is not safe for concurrent use.
type Game struct {
	board   othello.Board
	toMove  othello.Color
	history []Ply
	over    bool
}

// NewGame returns a game at the standard opening with Black to move.
func NewGame() *Game {
	return &Game{board: othello.Start(), toMove: othello.Black}
}

// NewGameFrom returns a game starting at an arbitrary position. If toMove cannot
// move the turn goes to the opponent, and the game starts finished when neither can.
func NewGameFrom(b othello.Board, toMove othello.Color) *Game {
	g := &Game{board: b, toMove: toMove}
	switch {
	case othello.HasMoves(&b, toMove):
	case othello.HasMoves(&b, toMove.Opponent()):
		g.toMove = toMove.Opponent()
	default:
		g.over = true
	}
	return g
}

// Board returns a copy of the current position.
func (g *Game) Board() othello.Board { return g.board }

// ToMove returns the side to move. It is meaningless once the game is over.
func (g *Game) ToMove() othello.Color { return g.toMove }

// Over reports whether neither side can move.
func (g *Game) Over() bool { return g.over }

// History returns the plies played so far, passes included.
func (g *Game) History() []Ply {
	out := make([]Ply, len(g.history))
	copy(out, g.history)
	return out
}

// LegalMoves returns the moves of the side to move.
func (g *Game) LegalMoves() []othello.Move {
	if g.over {
		return nil
	}
	return othello.LegalMoves(&g.board, g.toMove)
}

// Play puts a disk for the side to move on cell. It returns the plies that were
// recorded: the move itself, followed by a pass when the opponent is left without
// a reply.
func (g *Game) Play(cell int) ([]Ply, error) {
	if g.over {
		return nil, ErrGameOver
	}
	m, ok := othello.MoveAt(&g.board, g.toMove, cell)
	if !ok {
		return nil, fmt.Errorf("%w: %s for %s", ErrIllegalMove, othello.Notation(cell), g.toMove)
	}
	ply := Ply{Color: g.toMove, Cell: cell, Flips: m.Flips(), before: g.board}
	othello.Apply(&g.board, m, g.toMove)
	g.history = append(g.history, ply)
	return append([]Ply{ply}, g.advance()...), nil
}

// Pass gives up the turn. It is only allowed when the side to move has no legal move.
func (g *Game) Pass() ([]Ply, error) {
	if g.over {
		return nil, ErrGameOver
	}
	if othello.HasMoves(&g.board, g.toMove) {
		return nil, fmt.Errorf("%w: %s cannot pass", ErrMustPlay, g.toMove)
	}
	ply := Ply{Color: g.toMove, Cell: -1, before: g.board}
	g.history = append(g.history, ply)
	return append([]Ply{ply}, g.advance()...), nil
}

// advance hands the turn to the opponent, recording a pass for them when they
// cannot move and ending the game when neither side can.
func (g *Game) advance() []Ply {
	next := g.toMove.Opponent()
	if othello.HasMoves(&g.board, next) {
		g.toMove = next
		return nil
	}
	if othello.HasMoves(&g.board, g.toMove) {
		pass := Ply{Color: next, Cell: -1, before: g.board}
		g.history = append(g.history, pass)
		return []Ply{pass}
	}
	g.toMove = next
	g.over = true
	return nil
}

// Undo takes back the last ply.
func (g *Game) Undo() (Ply, error) {
	if len(g.history) == 0 {
		return Ply{}, ErrNothingToUndo
	}
	last := g.history[len(g.history)-1]
	g.history = g.history[:len(g.history)-1]
	g.board = last.before
	g.toMove = last.Color
	g.over = false
	return last, nil
}

// Winner returns the color with more disks, or Empty on a draw.
func (g *Game) Winner() othello.Color {
	return othello.Winner(&g.board)
}

// Outcome describes the result, winner's disk count first: "Black wins 40-24" or "Draw 32-32".
// It is empty while the game is running.
func (g *Game) Outcome() string {
	if !g.over {
		return ""
	}
	black, white := othello.Tally(&g.board)
	switch g.Winner() {
	case othello.Black:
		return fmt.Sprintf("Black wins %d-%d", black, white)
	case othello.White:
		return fmt.Sprintf("White wins %d-%d", white, black)
	}
	return fmt.Sprintf("Draw %d-%d", black, white)
}
