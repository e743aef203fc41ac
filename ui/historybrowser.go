package ui

import (
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/Hopman/rothello/othello"
	"github.com/Hopman/rothello/sgf"
)

// HistoryBrowserUI lists saved games and replays the selected one ply by ply.
type HistoryBrowserUI struct {
	flex     *tview.Flex
	gameList *tview.List
	preview  *tview.Box
	hint     *tview.TextView
	dir      string
	games    []sgf.GameInfo
	selected int
	onDone   func()

	// Replay of the selected game
	ply      int // plies shown, -1 for the final position
	board    othello.Board
	shown    int
	loaded   bool
	loadedAt [2]int // selected, ply of the cached board
	err      error
}

// NewHistoryBrowser creates a history browser over the records in dir.
func NewHistoryBrowser(dir string, onDone func()) *HistoryBrowserUI {
	hb := &HistoryBrowserUI{
		dir:    dir,
		onDone: onDone,
		ply:    -1,
	}

	hb.gameList = tview.NewList()
	hb.gameList.SetBorder(true)
	hb.gameList.SetTitle(" Game History ")
	hb.gameList.ShowSecondaryText(false)
	hb.gameList.SetHighlightFullLine(true)
	hb.gameList.SetMainTextStyle(tcell.StyleDefault.Foreground(MenuColors.Label))
	hb.gameList.SetSelectedStyle(tcell.StyleDefault.
		Foreground(MenuColors.ButtonText).
		Background(MenuColors.ButtonFocus))

	hb.preview = tview.NewBox()
	hb.preview.SetBorder(true)
	hb.preview.SetTitle(" Preview ")
	hb.preview.SetDrawFunc(hb.drawPreview)

	hb.hint = tview.NewTextView()
	hb.hint.SetDynamicColors(true)
	hb.hint.SetBorder(false)
	hb.hint.SetText("  [dimgray]←→[-] step  [dimgray]home/end[-] first/last  [dimgray]d[-] delete  [dimgray]q[-] back")

	hb.gameList.SetChangedFunc(func(index int, mainText, secondaryText string, shortcut rune) {
		hb.selected = index
		hb.ply = -1
	})
	hb.gameList.SetInputCapture(hb.handleInput)

	topRow := tview.NewFlex().SetDirection(tview.FlexColumn).
		AddItem(hb.gameList, 40, 0, true).
		AddItem(hb.preview, 0, 1, false)

	hb.flex = tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(topRow, 0, 1, true).
		AddItem(hb.hint, 1, 0, false)

	hb.loadGames()
	return hb
}

// Flex returns the flex container for this UI.
func (hb *HistoryBrowserUI) Flex() *tview.Flex {
	return hb.flex
}

// Refresh reloads the game list from disk.
func (hb *HistoryBrowserUI) Refresh() {
	hb.loadGames()
}

// loadGames scans the history directory for SGF files.
func (hb *HistoryBrowserUI) loadGames() {
	hb.gameList.Clear()
	hb.games = nil
	hb.selected = 0
	hb.ply = -1
	hb.loaded = false

	var games []sgf.GameInfo
	var err error
	if hb.dir != "" {
		games, err = sgf.ListGames(hb.dir)
	}
	if err != nil || len(games) == 0 {
		hb.gameList.AddItem("[dimgray]No games found[-]", "", 0, nil)
		return
	}

	hb.games = games
	for _, g := range games {
		hb.gameList.AddItem(gameLabel(g), "", 0, nil)
	}
}

// gameLabel formats one row of the game list.
func gameLabel(g sgf.GameInfo) string {
	result := g.Result
	if result == "" || result == "?" {
		result = "..."
	}
	return fmt.Sprintf("%s  %2d plies  %s", g.Date, g.MoveCount, result)
}

func (hb *HistoryBrowserUI) handleInput(event *tcell.EventKey) *tcell.EventKey {
	switch event.Key() {
	case tcell.KeyEscape:
		hb.done()
		return nil
	case tcell.KeyLeft:
		hb.step(-1)
		return nil
	case tcell.KeyRight:
		hb.step(1)
		return nil
	case tcell.KeyHome:
		hb.ply = 0
		return nil
	case tcell.KeyEnd:
		hb.ply = -1
		return nil
	case tcell.KeyRune:
		switch event.Rune() {
		case 'q':
			hb.done()
			return nil
		case 'h':
			hb.step(-1)
			return nil
		case 'l':
			hb.step(1)
			return nil
		case 'd':
			hb.deleteSelected()
			return nil
		}
	}
	return event
}

func (hb *HistoryBrowserUI) done() {
	if hb.onDone != nil {
		hb.onDone()
	}
}

// step moves the replay of the selected game by delta plies.
func (hb *HistoryBrowserUI) step(delta int) {
	if hb.selected < 0 || hb.selected >= len(hb.games) {
		return
	}
	total := hb.games[hb.selected].MoveCount
	ply := hb.ply
	if ply < 0 {
		ply = total
	}
	ply += delta
	if ply < 0 {
		ply = 0
	}
	if ply >= total {
		ply = -1
	}
	hb.ply = ply
}

// position returns the board of the selected game at the current ply.
func (hb *HistoryBrowserUI) position() (othello.Board, int, error) {
	key := [2]int{hb.selected, hb.ply}
	if !hb.loaded || hb.loadedAt != key {
		game := hb.games[hb.selected]
		hb.board, hb.shown, hb.err = sgf.Replay(game.FilePath, hb.ply)
		hb.loaded = true
		hb.loadedAt = key
	}
	return hb.board, hb.shown, hb.err
}

// deleteSelected removes the currently selected game file.
func (hb *HistoryBrowserUI) deleteSelected() {
	if hb.selected < 0 || hb.selected >= len(hb.games) {
		return
	}
	if err := os.Remove(hb.games[hb.selected].FilePath); err != nil {
		hb.hint.SetText(fmt.Sprintf("  [red]delete failed: %s[-]", err))
		return
	}
	hb.loadGames()
}

// drawPreview renders the replayed position and the game metadata.
func (hb *HistoryBrowserUI) drawPreview(screen tcell.Screen, x, y, width, height int) (int, int, int, int) {
	if hb.selected < 0 || hb.selected >= len(hb.games) {
		return x, y, width, height
	}
	if width < othello.Size*2+6 || height < othello.Size+8 {
		return x, y, width, height
	}

	game := hb.games[hb.selected]
	board, shown, err := hb.position()

	startX := x + 2
	startY := y + 1
	maxX := x + width - 1

	emptyStyle := tcell.StyleDefault.Foreground(tcell.PaletteColor(240))
	blackStyle := tcell.StyleDefault.Foreground(tcell.PaletteColor(232)).Background(tcell.PaletteColor(28))
	whiteStyle := tcell.StyleDefault.Foreground(tcell.PaletteColor(255)).Background(tcell.PaletteColor(28))
	feltStyle := tcell.StyleDefault.Foreground(tcell.PaletteColor(22)).Background(tcell.PaletteColor(28))

	for by := 0; by < othello.Size; by++ {
		screen.SetContent(startX, startY+by, rune('1'+by), nil, emptyStyle)
		for bx := 0; bx < othello.Size; bx++ {
			ch, style := '·', feltStyle
			switch board.At(bx, by) {
			case othello.Black:
				ch, style = '●', blackStyle
			case othello.White:
				ch, style = '●', whiteStyle
			}
			drawCell(screen, style, ch, bx, by, startX+2, startY)
		}
	}
	for bx := 0; bx < othello.Size; bx++ {
		screen.SetContent(startX+2+bx*2, startY+othello.Size, rune('a'+bx), nil, emptyStyle)
	}

	infoY := startY + othello.Size + 2
	infoStyle := tcell.StyleDefault.Foreground(tcell.PaletteColor(250))
	dimStyle := tcell.StyleDefault.Foreground(tcell.PaletteColor(245))

	black, white := othello.Tally(&board)
	drawString(screen, startX, infoY, maxX, fmt.Sprintf("Ply %d/%d  ● %d  ○ %d", shown, game.MoveCount, black, white), infoStyle)
	infoY++
	drawString(screen, startX, infoY, maxX, fmt.Sprintf("B: %s", game.PlayerBlack), dimStyle)
	infoY++
	drawString(screen, startX, infoY, maxX, fmt.Sprintf("W: %s", game.PlayerWhite), dimStyle)
	infoY++

	if err != nil {
		errStyle := tcell.StyleDefault.Foreground(tcell.ColorRed)
		drawString(screen, startX, infoY, maxX, fmt.Sprintf("Corrupt record: %s", err), errStyle)
		return x, y, width, height
	}

	result := game.Result
	if result == "" || result == "?" {
		result = "Unfinished"
	}
	resultStyle := tcell.StyleDefault.Foreground(tcell.PaletteColor(109))
	drawString(screen, startX, infoY, maxX, fmt.Sprintf("Result: %s", result), resultStyle)

	return x, y, width, height
}
