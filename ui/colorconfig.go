package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/Hopman/rothello/config"
	"github.com/Hopman/rothello/othello"
)

// ColorConfigUI lets the player pick the board felt and square marker colors with a live preview.
type ColorConfigUI struct {
	flex      *tview.Flex
	colorList *tview.List
	preview   *tview.Box
	cfg       *config.Config
	onDone    func()

	boardColor  int
	lineColor   int
	editingLine bool // true = editing the empty square marker, false = editing the felt
	saveErr     error
}

type paletteEntry struct {
	code int
	name string
}

// Felt colors for the board.
var boardColors = []paletteEntry{
	{28, "Green"},
	{22, "Dark Green"},
	{29, "Sea Green"},
	{23, "Teal"},
	{24, "Deep Teal"},
	{30, "Dark Cyan"},
	{64, "Olive"},
	{58, "Dark Olive"},
	{94, "Saddle Brown"},
	{130, "Dark Orange"},
	{17, "Navy Blue"},
	{54, "Purple"},
	{236, "Charcoal"},
	{240, "Gray"},
}

// Marker colors for empty squares.
var lineColors = []paletteEntry{
	{22, "Dark Green"},
	{34, "Bright Green"},
	{65, "Moss"},
	{108, "Sage"},
	{94, "Saddle Brown"},
	{136, "Dark Brown"},
	{232, "Black"},
	{236, "Dark Gray"},
	{240, "Gray"},
	{244, "Medium Gray"},
	{250, "Light Gray"},
}

// NewColorConfig creates a new color configuration screen.
func NewColorConfig(cfg *config.Config, onDone func()) *ColorConfigUI {
	cc := &ColorConfigUI{
		cfg:        cfg,
		onDone:     onDone,
		boardColor: cfg.Theme.Colors.BoardColor,
		lineColor:  cfg.Theme.Colors.LineColor,
	}

	cc.colorList = tview.NewList()
	cc.colorList.SetBorder(true)
	cc.colorList.ShowSecondaryText(false)
	cc.populateColorList()

	// Moving through the list previews the color
	cc.colorList.SetChangedFunc(func(index int, mainText, secondaryText string, shortcut rune) {
		palette := cc.palette()
		if index < 0 || index >= len(palette) {
			return
		}
		if cc.editingLine {
			cc.lineColor = palette[index].code
		} else {
			cc.boardColor = palette[index].code
		}
	})

	// Enter applies and saves
	cc.colorList.SetSelectedFunc(func(index int, mainText, secondaryText string, shortcut rune) {
		if cc.editingLine {
			cc.cfg.Theme.Colors.LineColor = cc.lineColor
			cc.saveErr = cc.cfg.Save()
			cc.editingLine = false
			cc.populateColorList()
			return
		}
		cc.cfg.Theme.Colors.BoardColor = cc.boardColor
		cc.cfg.Theme.Colors.BoardColorAlt = altShade(cc.boardColor)
		cc.saveErr = cc.cfg.Save()
		if cc.saveErr == nil {
			onDone()
		}
	})

	cc.preview = tview.NewBox()
	cc.preview.SetBorder(true)
	cc.preview.SetTitle(" Board Preview ")
	cc.preview.SetDrawFunc(cc.drawPreview)

	cc.flex = tview.NewFlex().
		AddItem(cc.colorList, 32, 0, true).
		AddItem(cc.preview, 0, 1, false)

	return cc
}

// altShade picks the checker shade that goes with a felt color: the next
// darker entry of the same hue family when known, else the color itself.
func altShade(code int) int {
	switch code {
	case 28:
		return 22
	case 29:
		return 23
	case 30:
		return 24
	case 64:
		return 58
	}
	return code
}

func (cc *ColorConfigUI) palette() []paletteEntry {
	if cc.editingLine {
		return lineColors
	}
	return boardColors
}

// populateColorList fills the list for the current editing mode.
func (cc *ColorConfigUI) populateColorList() {
	cc.colorList.Clear()

	current := cc.boardColor
	cc.colorList.SetTitle(" Board Color (Tab: squares) ")
	if cc.editingLine {
		current = cc.lineColor
		cc.colorList.SetTitle(" Square Color (Tab: board) ")
	}

	for i, c := range cc.palette() {
		cc.colorList.AddItem(fmt.Sprintf("[#%06x]████[-] %s (%d)",
			tcell.PaletteColor(c.code).Hex(), c.name, c.code),
			"", rune('a'+i), nil)
		if c.code == current {
			cc.colorList.SetCurrentItem(i)
		}
	}
}

func (cc *ColorConfigUI) drawPreview(screen tcell.Screen, x, y, width, height int) (int, int, int, int) {
	if width < 24 || height < othello.Size+4 {
		return x, y, width, height
	}

	theme := cc.cfg.Theme
	felt := tcell.PaletteColor(cc.boardColor)
	feltAlt := tcell.PaletteColor(altShade(cc.boardColor))
	marker := tcell.PaletteColor(cc.lineColor)

	board := othello.Start()
	hints := make(map[int]bool)
	for _, m := range othello.LegalMoves(&board, othello.Black) {
		hints[m.Cell] = true
	}

	startX, startY := x+3, y+1
	for row := 0; row < othello.Size; row++ {
		for col := 0; col < othello.Size; col++ {
			bg := felt
			if (row+col)%2 == 1 {
				bg = feltAlt
			}
			style := tcell.StyleDefault.Background(bg).Foreground(marker)
			ch := theme.Symbols.BoardSquare

			cell := row*othello.Size + col
			switch board[cell] {
			case othello.Black:
				ch = theme.Symbols.BlackDisk
				style = style.Foreground(tcell.PaletteColor(theme.Colors.BlackColor))
			case othello.White:
				ch = theme.Symbols.WhiteDisk
				style = style.Foreground(tcell.PaletteColor(theme.Colors.WhiteColor))
			default:
				if hints[cell] {
					ch = theme.Symbols.LegalHint
					style = style.Foreground(tcell.PaletteColor(theme.Colors.HintColor))
				}
			}
			drawCell(screen, style, ch, col, row, startX, startY)
		}
	}

	info := fmt.Sprintf("Board: %d  Squares: %d", cc.boardColor, cc.lineColor)
	infoStyle := tcell.StyleDefault
	if cc.saveErr != nil {
		info = "Save failed: " + cc.saveErr.Error()
		infoStyle = infoStyle.Foreground(tcell.ColorRed)
	}
	drawString(screen, startX, startY+othello.Size+1, x+width-1, info, infoStyle)

	return x, y, width, height
}

// Flex returns the flex container for this UI.
func (cc *ColorConfigUI) Flex() *tview.Flex {
	return cc.flex
}

// SetInputCapture sets the input capture for the color list.
func (cc *ColorConfigUI) SetInputCapture(capture func(event *tcell.EventKey) *tcell.EventKey) {
	cc.colorList.SetInputCapture(capture)
}

// ToggleMode switches between board color and square color editing.
func (cc *ColorConfigUI) ToggleMode() {
	cc.editingLine = !cc.editingLine
	cc.populateColorList()
}
