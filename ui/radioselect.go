package ui

import (
	"github.com/gdamore/tcell/v2"
)

// RadioOption represents a single choice of a RadioSelect.
type RadioOption struct {
	Label       string
	Description string
}

// RadioSelect is a one-line group of mutually exclusive options,
// changed with the left and right arrow keys.
type RadioSelect struct {
	label    string
	options  []RadioOption
	selected int
	focused  bool
	onChange func(int)
}

// NewRadioSelect creates a new radio select component.
func NewRadioSelect(label string, options []RadioOption, initial int, onChange func(int)) *RadioSelect {
	if initial < 0 || initial >= len(options) {
		initial = 0
	}
	return &RadioSelect{
		label:    label,
		options:  options,
		selected: initial,
		onChange: onChange,
	}
}

// SetFocused sets the focus state.
func (r *RadioSelect) SetFocused(focused bool) {
	r.focused = focused
}

// HandleKey processes keyboard input. Returns true if handled.
func (r *RadioSelect) HandleKey(event *tcell.EventKey) bool {
	switch event.Key() {
	case tcell.KeyLeft:
		r.SetSelected(r.selected - 1)
		return true
	case tcell.KeyRight:
		r.SetSelected(r.selected + 1)
		return true
	case tcell.KeyRune:
		switch event.Rune() {
		case 'h':
			r.SetSelected(r.selected - 1)
			return true
		case 'l':
			r.SetSelected(r.selected + 1)
			return true
		}
	}
	return false
}

// Draw renders the label and the options on one row, with the description
// of the selected option underneath. Returns the number of rows used.
func (r *RadioSelect) Draw(screen tcell.Screen, x, y, width int) int {
	labelStyle := tcell.StyleDefault.Foreground(MenuColors.Label).Background(MenuColors.CardBG)
	accentStyle := tcell.StyleDefault.Foreground(MenuColors.TitleAccent).Background(MenuColors.CardBG)
	selectedStyle := tcell.StyleDefault.Foreground(MenuColors.Selected).Background(MenuColors.CardBG)
	unselectedStyle := tcell.StyleDefault.Foreground(MenuColors.Unselected).Background(MenuColors.CardBG)
	hintStyle := tcell.StyleDefault.Foreground(MenuColors.Hint).Background(MenuColors.CardBG)

	col := drawFocusMarker(screen, x, y, r.focused)
	screen.SetContent(col, y, '◈', nil, accentStyle)
	col += 2
	col = drawString(screen, col, y, x+width, r.label, labelStyle)
	col = x + 16

	for i, opt := range r.options {
		style := unselectedStyle
		bullet := '○'
		if i == r.selected {
			bullet = '●'
			style = selectedStyle
		}
		screen.SetContent(col, y, bullet, nil, style)
		col = drawString(screen, col+2, y, x+width, opt.Label, style) + 2
	}

	if desc := r.options[r.selected].Description; desc != "" {
		drawString(screen, x+16, y+1, x+width, desc, hintStyle)
		return 2
	}
	return 1
}

// Selected returns the currently selected index.
func (r *RadioSelect) Selected() int {
	return r.selected
}

// SetSelected sets the selected index. Out of range values are ignored.
func (r *RadioSelect) SetSelected(index int) {
	if index < 0 || index >= len(r.options) || index == r.selected {
		return
	}
	r.selected = index
	if r.onChange != nil {
		r.onChange(r.selected)
	}
}

// drawFocusMarker draws the ▸ cursor for focused rows and returns the next column.
func drawFocusMarker(screen tcell.Screen, x, y int, focused bool) int {
	if focused {
		screen.SetContent(x, y, '▸', nil, tcell.StyleDefault.Foreground(MenuColors.Selected).Background(MenuColors.CardBG))
	} else {
		screen.SetContent(x, y, ' ', nil, tcell.StyleDefault.Background(MenuColors.CardBG))
	}
	return x + 2
}

// drawString writes text starting at x, clipped at maxX. Returns the column after the text.
func drawString(screen tcell.Screen, x, y, maxX int, text string, style tcell.Style) int {
	for _, ch := range text {
		if x >= maxX {
			break
		}
		screen.SetContent(x, y, ch, nil, style)
		x++
	}
	return x
}
