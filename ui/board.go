// Package ui specifies custom controls for tview to play Othello in the terminal.
package ui

import (
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/Hopman/rothello/config"
	"github.com/Hopman/rothello/engine"
	"github.com/Hopman/rothello/othello"
	"github.com/Hopman/rothello/types"
)

// MoveEntry is one ply shown in the info panel. X and Y are -1 for a pass.
type MoveEntry struct {
	Color int
	X, Y  int
}

type BoardUI struct {
	Box         *tview.Box
	BoardState  *types.BoardState
	hint        *tview.TextView
	cfg         *config.Config
	finished    bool
	selX        int
	selY        int
	lastPass    int // color that passed last, 0 if the last ply was a move
	lastError   string
	app         *tview.Application
	eng         engine.GameEngine
	styles      []tcell.Color
	infoPanel   *GameInfoPanel
	focusMode   bool
	moveHistory []MoveEntry
	mu          sync.Mutex // guards BoardState and moveHistory written from engine callbacks
}

// ToggleFocusMode toggles focus mode and returns the new state.
func (g *BoardUI) ToggleFocusMode() bool {
	g.focusMode = !g.focusMode
	g.refreshHint()
	return g.focusMode
}

// SetFocusMode sets focus mode to the given state.
func (g *BoardUI) SetFocusMode(enabled bool) {
	g.focusMode = enabled
	g.refreshHint()
}

// IsFocusMode returns true if focus mode is enabled.
func (g *BoardUI) IsFocusMode() bool {
	return g.focusMode
}

func (g *BoardUI) SelectedTile() *types.BoardPos {
	if g.selX == -1 && g.selY == -1 {
		return nil
	}
	return &types.BoardPos{X: g.selX, Y: g.selY}
}

func (g *BoardUI) MoveSelection(h, v int) {
	state := g.state()
	if state.Finished() {
		g.ResetSelection()
		return
	}
	if g.SelectedTile() == nil {
		g.selX = state.LastMove.X
		g.selY = state.LastMove.Y
		if g.SelectedTile() == nil {
			// No move yet: start on the first legal move, or the center
			if len(state.LegalMoves) > 0 {
				g.selX = state.LegalMoves[0] % othello.Size
				g.selY = state.LegalMoves[0] / othello.Size
			} else {
				g.selX = othello.Size / 2
				g.selY = othello.Size / 2
			}
		}
		return
	}
	if g.selX+h < 0 || g.selX+h >= othello.Size {
		return
	}
	if g.selY+v < 0 || g.selY+v >= othello.Size {
		return
	}
	g.selX += h
	g.selY += v
}

// JumpToLegal moves the cursor to the next legal move after the current one.
func (g *BoardUI) JumpToLegal() {
	state := g.state()
	if len(state.LegalMoves) == 0 {
		return
	}
	cur := -1
	if g.SelectedTile() != nil {
		cur = g.selY*othello.Size + g.selX
	}
	next := state.LegalMoves[0]
	for _, c := range state.LegalMoves {
		if c > cur {
			next = c
			break
		}
	}
	g.selX = next % othello.Size
	g.selY = next / othello.Size
}

func (g *BoardUI) ResetSelection() {
	g.selX = -1
	g.selY = -1
}

func NewBoard(app *tview.Application, c *config.Config, hint *tview.TextView) *BoardUI {
	board := &BoardUI{
		Box:        tview.NewBox(),
		BoardState: types.NewBoardState(othello.Size),
		hint:       hint,
		app:        app,
		selX:       -1,
		selY:       -1,
	}
	board.SetConfig(c)
	board.Box.SetDrawFunc(board.draw)
	return board
}

// state returns the latest snapshot from the engine.
func (g *BoardUI) state() *types.BoardState {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.BoardState
}

func (g *BoardUI) draw(screen tcell.Screen, x int, y int, width int, height int) (int, int, int, int) {
	state := g.state()
	if state == nil || state.Width() == 0 {
		return x, y, 1, 1
	}
	theme := g.cfg.Theme
	// 2 characters per cell for square appearance
	boardW, boardH := state.Width()*2, state.Height()

	legal := make(map[int]bool, len(state.LegalMoves))
	if theme.ShowLegalMoves && g.eng != nil && g.eng.IsMyTurn() {
		for _, c := range state.LegalMoves {
			legal[c] = true
		}
	}

	for boardY := 0; boardY < state.Height(); boardY++ {
		for boardX := 0; boardX < state.Width(); boardX++ {
			disk := state.Board[boardY][boardX]

			bg := 0
			if (boardX%2 + boardY%2) == 1 {
				bg = 3
			}
			fg := g.styles[9]
			drawRune := theme.Symbols.BoardSquare

			switch {
			case disk == 1:
				drawRune = theme.Symbols.BlackDisk
				fg = g.styles[1]
			case disk == 2:
				drawRune = theme.Symbols.WhiteDisk
				fg = g.styles[2]
			case legal[boardY*othello.Size+boardX]:
				drawRune = theme.Symbols.LegalHint
				fg = g.styles[4]
			}

			if boardX == g.selX && boardY == g.selY {
				if theme.DrawCursorBackground {
					bg = 8
				} else if disk == 0 {
					fg = g.styles[6]
				}
			} else if boardX == state.LastMove.X && boardY == state.LastMove.Y && theme.DrawLastPlayedBackground {
				bg = 7
			}

			drawCell(screen, tcell.StyleDefault.Background(g.styles[bg]).Foreground(fg), drawRune, boardX, boardY, x+4, y)
		}
	}
	drawCoordinates(screen, x, y, g, state)
	// Add offset for coordinate display
	return x, y, boardW + 4, boardH + 2
}

// ConnectEngine connects the board to a game engine.
func (g *BoardUI) ConnectEngine(e engine.GameEngine) error {
	g.finished = false
	g.eng = e
	g.lastPass = 0
	g.lastError = ""
	g.ResetSelection()
	g.mu.Lock()
	g.moveHistory = nil
	g.mu.Unlock()

	e.OnMove(func(x, y, color int, boardState *types.BoardState) {
		g.mu.Lock()
		g.moveHistory = append(g.moveHistory, MoveEntry{Color: color, X: x, Y: y})
		g.BoardState = boardState
		g.mu.Unlock()
		pass := 0
		if x == -1 && y == -1 {
			pass = color
		}
		// Spawn goroutine to avoid deadlock when called from main thread
		go g.app.QueueUpdateDraw(func() {
			g.lastPass = pass
			g.refreshHint()
		})
	})

	e.OnGameEnd(func(outcome string) {
		g.mu.Lock()
		g.BoardState = e.GetBoardState()
		g.mu.Unlock()
		go g.app.QueueUpdateDraw(func() {
			g.finished = true
			g.ResetSelection()
			g.refreshHint()
		})
	})

	if err := e.Connect(); err != nil {
		return err
	}

	g.mu.Lock()
	g.BoardState = e.GetBoardState()
	g.mu.Unlock()
	g.refreshHint()
	return nil
}

// PlayMove plays a move at the given coordinates.
func (g *BoardUI) PlayMove(x, y int) {
	if g.finished || g.eng == nil {
		return
	}
	if !g.eng.IsMyTurn() {
		return
	}
	if err := g.eng.PlayMove(x, y); err != nil {
		g.lastError = err.Error()
		g.refreshHint()
		return
	}
	g.lastError = ""
}

// Pass passes the current turn.
func (g *BoardUI) Pass() {
	if g.finished || g.eng == nil {
		return
	}
	if !g.eng.IsMyTurn() {
		return
	}
	if err := g.eng.Pass(); err != nil {
		g.lastError = err.Error()
		g.refreshHint()
	}
}

// Undo takes back the last human move and the bot replies.
func (g *BoardUI) Undo() {
	if g.eng == nil {
		return
	}
	if err := g.eng.Undo(); err != nil {
		g.lastError = err.Error()
		g.refreshHint()
		return
	}
	state := g.eng.GetBoardState()
	g.mu.Lock()
	g.BoardState = state
	// The panel lists every ply; drop the ones the engine took back.
	if n := state.MoveNumber; n < len(g.moveHistory) {
		g.moveHistory = g.moveHistory[:n]
	}
	g.mu.Unlock()
	g.finished = false
	g.lastPass = 0
	g.lastError = ""
	g.refreshHint()
}

// Close disconnects the engine.
func (g *BoardUI) Close() {
	if g.eng == nil {
		return
	}
	g.eng.Close()
}

func (g *BoardUI) SetConfig(c *config.Config) {
	g.styles = []tcell.Color{
		tcell.PaletteColor(c.Theme.Colors.BoardColor),        // 0
		tcell.PaletteColor(c.Theme.Colors.BlackColor),        // 1
		tcell.PaletteColor(c.Theme.Colors.WhiteColor),        // 2
		tcell.PaletteColor(c.Theme.Colors.BoardColorAlt),     // 3
		tcell.PaletteColor(c.Theme.Colors.HintColor),         // 4
		tcell.PaletteColor(c.Theme.Colors.BoardColor),        // 5
		tcell.PaletteColor(c.Theme.Colors.CursorColorFG),     // 6
		tcell.PaletteColor(c.Theme.Colors.LastPlayedColorBG), // 7
		tcell.PaletteColor(c.Theme.Colors.CursorColorBG),     // 8
		tcell.PaletteColor(c.Theme.Colors.LineColor),         // 9
	}
	g.cfg = c
}

func (g *BoardUI) refreshHint() {
	state := g.state()
	if g.infoPanel != nil {
		g.mu.Lock()
		history := append([]MoveEntry(nil), g.moveHistory...)
		g.mu.Unlock()
		g.infoPanel.SetMoveHistory(history)
		g.infoPanel.SetBoardState(state)
	}

	// Focus mode shows minimal hint
	if g.focusMode {
		g.hint.SetText("  f to toggle")
		return
	}

	var statusLine, turnLine, controlsLine string

	if g.finished || state.Finished() {
		statusLine = "───────── Game Complete ─────────\n\n"
		turnLine = fmt.Sprintf("  Result: %s\n", state.Outcome)
		controlsLine = "\n  u · undo   q · return to menu"
	} else {
		switch {
		case g.lastError != "":
			statusLine = fmt.Sprintf("  ✗ %s\n\n", g.lastError)
		case g.lastPass != 0:
			statusLine = fmt.Sprintf("  ○ %s has no move and passes\n\n", othello.Color(g.lastPass))
		}

		switch {
		case g.eng != nil && g.eng.GetPlayerColor() == 0:
			turnLine = fmt.Sprintf("  ◌ Watching (%s to move)\n", othello.Color(state.PlayerToMove))
		case g.eng != nil && g.eng.IsMyTurn():
			turnLine = fmt.Sprintf("  ● Your move (%s)\n", othello.Color(g.eng.GetPlayerColor()))
		default:
			turnLine = "  ◌ Thinking...\n"
		}

		controlsLine = `
  hjkl/↑↓←→ move   tab next legal   ⏎ play
         u undo   p pass   f focus   q quit`
	}

	g.hint.SetText(fmt.Sprintf("%s%s%s", statusLine, turnLine, controlsLine))
}

// IsFinished returns true if the game is over.
func (g *BoardUI) IsFinished() bool {
	return g.finished
}

// drawCell draws a board cell (2 characters wide).
func drawCell(s tcell.Screen, c tcell.Style, r rune, x, y, l, t int) {
	s.SetContent(l+x*2, t+y, r, nil, c)
	s.SetContent(l+x*2+1, t+y, ' ', nil, c)
}

func drawCoordinates(s tcell.Screen, x, y int, ui *BoardUI, state *types.BoardState) {
	hCoord := int('a')
	w, h := state.Width(), state.Height()
	if ui.cfg.Theme.FullWidthLetters {
		hCoord = int('ａ')
	}

	style := tcell.StyleDefault
	highlight := tcell.StyleDefault.Background(ui.styles[8])
	lpHighlight := tcell.StyleDefault.Background(ui.styles[7])

	for ix := 0; ix < w; ix++ {
		_style := style
		if ix == ui.selX {
			_style = highlight
		} else if ix == state.LastMove.X {
			_style = lpHighlight
		}
		s.SetContent(x+4+(ix*2), y+h+1, rune(hCoord+ix), nil, _style)
		s.SetContent(x+4+(ix*2)+1, y+h+1, ' ', nil, _style)
	}

	// Othello rows count from the top
	for iy := 0; iy < h; iy++ {
		_style := style
		if iy == ui.selY {
			_style = highlight
		} else if iy == state.LastMove.Y {
			_style = lpHighlight
		}
		s.SetContent(x+2, y+iy, rune('1'+iy), nil, _style)
	}
}
