package ui

import (
	"fmt"
	"sort"

	"github.com/rivo/tview"

	"github.com/Hopman/rothello/othello"
	"github.com/Hopman/rothello/search"
	"github.com/Hopman/rothello/types"
)

// GameInfoPanel displays the score, the bot's last analysis and the move list alongside the board.
type GameInfoPanel struct {
	box         *tview.TextView
	boardState  *types.BoardState
	params      search.Params
	moveHistory []MoveEntry
}

// NewGameInfoPanel creates a new game info panel.
func NewGameInfoPanel() *GameInfoPanel {
	panel := &GameInfoPanel{
		box:    tview.NewTextView(),
		params: search.DefaultParams(),
	}

	panel.box.SetDynamicColors(true)
	panel.box.SetBorder(false)
	panel.box.SetTextAlign(tview.AlignLeft)

	return panel
}

// Box returns the underlying tview component.
func (p *GameInfoPanel) Box() *tview.TextView {
	return p.box
}

// SetBoardState updates the panel with current board state.
func (p *GameInfoPanel) SetBoardState(state *types.BoardState) {
	p.boardState = state
	p.refresh()
}

// SetSearchParams sets the bot settings shown in the header.
func (p *GameInfoPanel) SetSearchParams(params search.Params) {
	p.params = params
	p.refresh()
}

// SetMoveHistory replaces the move list.
func (p *GameInfoPanel) SetMoveHistory(history []MoveEntry) {
	p.moveHistory = history
}

// refresh updates the panel text.
func (p *GameInfoPanel) refresh() {
	p.box.SetText(p.render())
}

func (p *GameInfoPanel) render() string {
	if p.boardState == nil {
		return ""
	}

	var text string

	text += "[white::b]Game Info[-:-:-]\n"
	text += "[dimgray]──────────────────────[-:-:-]\n"
	text += fmt.Sprintf("[white]Black:[-:-:-] %2d  [white]White:[-:-:-] %2d\n", p.boardState.BlackCount, p.boardState.WhiteCount)
	text += fmt.Sprintf("[white]Move:[-:-:-] %d\n", p.boardState.MoveNumber)
	text += fmt.Sprintf("[white]Bot:[-:-:-] depth %d, %s\n", p.params.Depth, p.params.TieBreak)

	if len(p.boardState.Analysis) > 0 {
		text += "\n[white::b]Analysis[-:-:-]\n"
		text += "[dimgray]──────────────────────[-:-:-]\n"

		cands := append([]types.Candidate(nil), p.boardState.Analysis...)
		sort.SliceStable(cands, func(i, j int) bool { return cands[i].Score > cands[j].Score })
		maxVisible := 5
		if len(cands) < maxVisible {
			maxVisible = len(cands)
		}
		for _, c := range cands[:maxVisible] {
			text += fmt.Sprintf("  %s [dimgray]%d[-]\n", othello.Notation(c.Cell), c.Score)
		}
		if len(cands) > maxVisible {
			text += fmt.Sprintf("[dimgray]  ··· %d more[-]\n", len(cands)-maxVisible)
		}
	}

	if len(p.moveHistory) > 0 {
		text += "\n[white::b]Moves[-:-:-]\n"
		text += "[dimgray]──────────────────────[-:-:-]\n"

		moves := p.moveHistory
		// Show last N moves that fit, with scroll
		maxVisible := 12
		start := 0
		if len(moves) > maxVisible {
			start = len(moves) - maxVisible
		}

		for i := start; i < len(moves); i++ {
			m := moves[i]

			colorStr := "[white]B[-]"
			if m.Color == 2 {
				colorStr = "[dimgray]W[-]"
			}

			coord := "pass"
			if m.X >= 0 && m.Y >= 0 {
				coord = othello.Notation(m.Y*othello.Size + m.X)
			}

			marker := " "
			if i == len(moves)-1 {
				marker = "[white]>[-]"
			}

			text += fmt.Sprintf("%s[dimgray]%3d.[-] %s %s\n", marker, i+1, colorStr, coord)
		}

		if start > 0 {
			text += fmt.Sprintf("[dimgray]  ··· %d earlier[-]\n", start)
		}
	}

	return text
}

// CreateGameLayout creates the main game layout with board and side panel.
func CreateGameLayout(board *BoardUI, hint *tview.TextView) *tview.Flex {
	gameFrame := tview.NewFlex()
	RebuildNormalLayout(gameFrame, board, hint)
	return gameFrame
}

// CreateCenteredForm centers a form of the given size on the screen.
func CreateCenteredForm(form tview.Primitive, maxWidth, height int) *tview.Flex {
	row := tview.NewFlex().SetDirection(tview.FlexColumn)
	row.AddItem(nil, 0, 1, false)        // Left spacer
	row.AddItem(form, maxWidth, 0, true) // Form with max width
	row.AddItem(nil, 0, 1, false)        // Right spacer

	centered := tview.NewFlex().SetDirection(tview.FlexRow)
	centered.AddItem(nil, 0, 1, false)
	centered.AddItem(row, height, 0, true)
	centered.AddItem(nil, 0, 1, false)
	return centered
}

// RebuildNormalLayout restores the normal game layout with board, info panel, and hint.
func RebuildNormalLayout(gameFrame *tview.Flex, board *BoardUI, hint *tview.TextView) {
	gameFrame.Clear()

	if board.infoPanel == nil {
		board.infoPanel = NewGameInfoPanel()
	}
	board.refreshHint()

	// Create horizontal flex: board | info panel
	boardRow := tview.NewFlex().SetDirection(tview.FlexColumn)
	boardRow.AddItem(board.Box, 0, 1, true)               // Board (flexible, takes remaining space)
	boardRow.AddItem(board.infoPanel.Box(), 26, 0, false) // Info panel (fixed width)

	// Main vertical flex: board area on top, status bar at bottom
	gameFrame.SetDirection(tview.FlexRow)
	gameFrame.AddItem(boardRow, 0, 1, true)
	gameFrame.AddItem(hint, 6, 0, false)
}

// BuildFocusLayout builds the focus mode layout with just the centered board.
func BuildFocusLayout(gameFrame *tview.Flex, board *BoardUI) {
	gameFrame.Clear()

	boardWidth := othello.Size*2 + 4 // 2 chars per cell + coordinates
	boardHeight := othello.Size + 2  // + coordinates

	// Center board with flex spacers
	gameFrame.SetDirection(tview.FlexRow)
	gameFrame.AddItem(nil, 0, 1, false) // top spacer

	centerRow := tview.NewFlex().SetDirection(tview.FlexColumn)
	centerRow.AddItem(nil, 0, 1, false)               // left spacer
	centerRow.AddItem(board.Box, boardWidth, 0, true) // board (fixed width)
	centerRow.AddItem(nil, 0, 1, false)               // right spacer

	gameFrame.AddItem(centerRow, boardHeight, 0, true) // center row (fixed height)
	gameFrame.AddItem(nil, 0, 1, false)                // bottom spacer
}

// SetSearchParams forwards the bot settings to the info panel.
func (g *BoardUI) SetSearchParams(params search.Params) {
	if g.infoPanel != nil {
		g.infoPanel.SetSearchParams(params)
	}
}
