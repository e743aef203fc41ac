// Package console plays Othello over plain text streams: it prints the board,
// reads moves like "d3" or "19" and lets the bot answer.
package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/Hopman/rothello/engine"
	"github.com/Hopman/rothello/othello"
	"github.com/Hopman/rothello/search"
	"github.com/Hopman/rothello/types"
)

// Engine is the game engine the console drives.
type Engine interface {
	engine.GameEngine
	// Wait blocks until no bot move is in flight.
	Wait()
	// Position returns the board and the side to move.
	Position() (othello.Board, othello.Color)
}

// ErrStalled is returned when the bot stops moving before the game is over.
var ErrStalled = errors.New("game stalled: no side can act")

// Console runs one game over text streams.
type Console struct {
	eng     Engine
	advisor *search.Searcher
	in      *bufio.Scanner
	out     io.Writer
	log     *zap.SugaredLogger
}

// New returns a console for eng. advisor answers the "hint" command; it may be nil.
func New(eng Engine, advisor *search.Searcher, in io.Reader, out io.Writer, log *zap.SugaredLogger) *Console {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Console{
		eng:     eng,
		advisor: advisor,
		in:      bufio.NewScanner(in),
		out:     out,
		log:     log.Named("console"),
	}
}

// Run plays until the game ends, the input is exhausted or the player quits.
func (c *Console) Run() error {
	c.eng.OnMove(c.printPly)
	if err := c.eng.Connect(); err != nil {
		return err
	}
	defer c.eng.Close()

	fmt.Fprintln(c.out, "Start:")
	for {
		c.eng.Wait()
		state := c.eng.GetBoardState()
		c.printBoard(state)

		if state.Finished() {
			fmt.Fprintln(c.out, state.Outcome)
			return nil
		}
		if !c.eng.IsMyTurn() {
			return ErrStalled
		}

		quit, err := c.turn(state)
		if err != nil || quit {
			return err
		}
	}
}

// turn reads commands until one of them changes the game. It returns true when
// the player quits or the input ends.
func (c *Console) turn(state *types.BoardState) (quit bool, err error) {
	c.printLegal(state)
	for {
		fmt.Fprintf(c.out, "%s to move: ", othello.Color(state.PlayerToMove))
		if !c.in.Scan() {
			fmt.Fprintln(c.out)
			return true, c.in.Err()
		}
		cmd := strings.ToLower(strings.TrimSpace(c.in.Text()))

		switch cmd {
		case "":
			continue
		case "q", "quit", "exit":
			return true, nil
		case "?", "help":
			fmt.Fprintln(c.out, "Enter a move (d3 or a cell index 0-63), or: pass, undo, hint, moves, quit")
			continue
		case "moves":
			c.printLegal(state)
			continue
		case "hint":
			c.hint()
			continue
		case "pass":
			err = c.eng.Pass()
		case "undo":
			err = c.eng.Undo()
			if err == nil {
				fmt.Fprintln(c.out, "Took back your last move.")
			}
		default:
			var cell int
			cell, err = othello.ParseNotation(cmd)
			if err == nil {
				err = c.eng.PlayMove(cell%othello.Size, cell/othello.Size)
			}
		}

		if err != nil {
			fmt.Fprintf(c.out, "Error: %v\n", err)
			c.log.Debugw("rejected input", "input", cmd, "error", err)
			continue
		}
		return false, nil
	}
}

func (c *Console) printPly(x, y, color int, state *types.BoardState) {
	if x < 0 || y < 0 {
		fmt.Fprintf(c.out, "%s passes\n", othello.Color(color))
		return
	}
	human := c.eng.GetPlayerColor()
	who := "You play"
	if color != human {
		who = othello.Color(color).String() + " plays"
	}
	fmt.Fprintf(c.out, "%s %s\n", who, othello.Notation(y*othello.Size+x))
	// Nobody is prompted in watch mode, so show every position.
	if human == 0 && !state.Finished() {
		c.printBoard(state)
	}
}

func (c *Console) printBoard(state *types.BoardState) {
	var sb strings.Builder
	if state.MoveNumber > 0 {
		fmt.Fprintf(&sb, "Turn: %d\n", state.MoveNumber)
	}
	sb.WriteString("  a b c d e f g h\n")
	for y, row := range state.Board {
		sb.WriteByte(byte('1' + y))
		for x, disk := range row {
			sb.WriteByte(' ')
			switch {
			case disk == 1:
				sb.WriteByte('X')
			case disk == 2:
				sb.WriteByte('O')
			case c.eng.IsMyTurn() && state.IsLegal(x, y):
				sb.WriteByte('*')
			default:
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	fmt.Fprintf(&sb, "X %d  O %d\n", state.BlackCount, state.WhiteCount)
	fmt.Fprint(c.out, sb.String())
}

func (c *Console) printLegal(state *types.BoardState) {
	if len(state.LegalMoves) == 0 {
		fmt.Fprintln(c.out, "No legal moves: type pass.")
		return
	}
	moves := make([]string, len(state.LegalMoves))
	for i, cell := range state.LegalMoves {
		moves[i] = fmt.Sprintf("%s (%d)", othello.Notation(cell), cell)
	}
	fmt.Fprintf(c.out, "Valid moves: %s\n", strings.Join(moves, ", "))
}

// hint runs the advisor on the current position and prints its root scores.
func (c *Console) hint() {
	if c.advisor == nil {
		fmt.Fprintln(c.out, "No hints in this game.")
		return
	}
	board, toMove := c.eng.Position()
	move, ok, root, err := c.advisor.Analyze(board, othello.NewPlayer(toMove, false))
	switch {
	case err != nil:
		fmt.Fprintf(c.out, "Error: %v\n", err)
		return
	case !ok:
		fmt.Fprintln(c.out, "No legal moves: type pass.")
		return
	}

	if root != nil {
		children := append([]*search.Node(nil), root.Children...)
		sort.SliceStable(children, func(i, j int) bool { return children[i].Score > children[j].Score })
		for _, n := range children {
			fmt.Fprintf(c.out, "  %s %d\n", othello.Notation(n.Move.Cell), n.Score)
		}
	}
	fmt.Fprintf(c.out, "Suggested: %s\n", othello.Notation(move.Cell))
}
