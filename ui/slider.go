package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
)

// Slider is a horizontal bar for picking an integer in [min, max].
type Slider struct {
	label    string
	min      int
	max      int
	value    int
	caption  func(int) string
	focused  bool
	onChange func(int)
}

// NewSlider creates a new slider. caption, if set, describes the current value.
func NewSlider(label string, min, max, initial int, caption func(int) string, onChange func(int)) *Slider {
	if initial < min {
		initial = min
	}
	if initial > max {
		initial = max
	}
	return &Slider{
		label:    label,
		min:      min,
		max:      max,
		value:    initial,
		caption:  caption,
		onChange: onChange,
	}
}

// SetFocused sets the focus state.
func (s *Slider) SetFocused(focused bool) {
	s.focused = focused
}

// HandleKey processes keyboard input. Returns true if handled.
func (s *Slider) HandleKey(event *tcell.EventKey) bool {
	switch event.Key() {
	case tcell.KeyLeft:
		s.SetValue(s.value - 1)
		return true
	case tcell.KeyRight:
		s.SetValue(s.value + 1)
		return true
	case tcell.KeyRune:
		switch r := event.Rune(); {
		case r == 'h':
			s.SetValue(s.value - 1)
			return true
		case r == 'l':
			s.SetValue(s.value + 1)
			return true
		case r >= '0' && r <= '9':
			s.SetValue(int(r - '0'))
			return true
		}
	}
	return false
}

// Draw renders the slider. Returns the number of rows used.
func (s *Slider) Draw(screen tcell.Screen, x, y, width int) int {
	labelStyle := tcell.StyleDefault.Foreground(MenuColors.Label).Background(MenuColors.CardBG)
	accentStyle := tcell.StyleDefault.Foreground(MenuColors.TitleAccent).Background(MenuColors.CardBG)
	selectedStyle := tcell.StyleDefault.Foreground(MenuColors.Selected).Background(MenuColors.CardBG)
	unselectedStyle := tcell.StyleDefault.Foreground(MenuColors.Unselected).Background(MenuColors.CardBG)
	hintStyle := tcell.StyleDefault.Foreground(MenuColors.Hint).Background(MenuColors.CardBG)

	maxX := x + width
	col := drawFocusMarker(screen, x, y, s.focused)
	screen.SetContent(col, y, '◈', nil, accentStyle)
	col += 2
	drawString(screen, col, y, maxX, s.label, labelStyle)
	col = x + 16

	arrowStyle := unselectedStyle
	if s.focused {
		arrowStyle = selectedStyle
	}
	screen.SetContent(col, y, '◀', nil, arrowStyle)
	col += 2

	for i := s.min; i <= s.max; i++ {
		char, style := '░', unselectedStyle
		if i <= s.value {
			char, style = '█', selectedStyle
		}
		screen.SetContent(col, y, char, nil, style)
		col++
	}
	col++
	col = drawString(screen, col, y, maxX, fmt.Sprintf("%d", s.value), labelStyle) + 1
	screen.SetContent(col, y, '▶', nil, arrowStyle)

	if s.caption != nil {
		drawString(screen, x+16, y+1, maxX, s.caption(s.value), hintStyle)
		return 2
	}
	return 1
}

// Value returns the current slider value.
func (s *Slider) Value() int {
	return s.value
}

// SetValue sets the slider value. Out of range values are ignored.
func (s *Slider) SetValue(v int) {
	if v < s.min || v > s.max || v == s.value {
		return
	}
	s.value = v
	if s.onChange != nil {
		s.onChange(s.value)
	}
}
