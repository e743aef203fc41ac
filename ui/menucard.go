package ui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// MenuCard is a rounded card with a centered title and a divider below it.
type MenuCard struct {
	*tview.Box
	title   string
	focused bool
}

// NewMenuCard creates a new menu card with the given title.
func NewMenuCard(title string) *MenuCard {
	return &MenuCard{
		Box:   tview.NewBox(),
		title: title,
	}
}

// cardHeaderRows is the number of rows used by the border, the title and the divider.
const cardHeaderRows = 5

// DrawCard renders the card frame and returns the content area inside it.
func (c *MenuCard) DrawCard(screen tcell.Screen) (x, y, width, height int) {
	c.Box.DrawForSubclass(screen, c)

	x, y, width, height = c.GetInnerRect()
	if width < 10 || height < cardHeaderRows+2 {
		return x, y, 0, 0
	}

	borderStyle := c.borderStyle()
	bgStyle := tcell.StyleDefault.Background(MenuColors.CardBG)

	for row := y; row < y+height; row++ {
		for col := x; col < x+width; col++ {
			screen.SetContent(col, row, ' ', nil, bgStyle)
		}
	}

	c.hline(screen, y, '╭', '─', '╮')
	for row := y + 1; row < y+height-1; row++ {
		screen.SetContent(x, row, '│', nil, borderStyle)
		screen.SetContent(x+width-1, row, '│', nil, borderStyle)
	}
	c.hline(screen, y+height-1, '╰', '─', '╯')

	if c.title != "" {
		titleStyle := tcell.StyleDefault.Foreground(MenuColors.Title).Background(MenuColors.CardBG).Bold(true)
		blackStyle := tcell.StyleDefault.Foreground(MenuColors.TitleAccent).Background(MenuColors.CardBG)
		whiteStyle := tcell.StyleDefault.Foreground(MenuColors.Title).Background(MenuColors.CardBG)

		// ●○  TITLE
		titleLen := len([]rune(c.title)) + 4
		titleX := x + (width-titleLen)/2
		screen.SetContent(titleX, y+2, '●', nil, blackStyle)
		screen.SetContent(titleX+1, y+2, '○', nil, whiteStyle)
		drawString(screen, titleX+4, y+2, x+width-1, c.title, titleStyle)

		c.hline(screen, y+4, '├', '─', '┤')
	}

	return x + 2, y + cardHeaderRows + 1, width - 4, height - cardHeaderRows - 2
}

// DrawDivider draws a horizontal divider at the given row.
func (c *MenuCard) DrawDivider(screen tcell.Screen, divY int) {
	c.hline(screen, divY, '├', '─', '┤')
}

func (c *MenuCard) hline(screen tcell.Screen, row int, left, mid, right rune) {
	x, _, width, _ := c.GetInnerRect()
	style := c.borderStyle()
	screen.SetContent(x, row, left, nil, style)
	for col := x + 1; col < x+width-1; col++ {
		screen.SetContent(col, row, mid, nil, style)
	}
	screen.SetContent(x+width-1, row, right, nil, style)
}

func (c *MenuCard) borderStyle() tcell.Style {
	color := MenuColors.Border
	if c.focused {
		color = MenuColors.BorderFocus
	}
	return tcell.StyleDefault.Foreground(color).Background(MenuColors.CardBG)
}

// SetFocused sets the focus state of the card.
func (c *MenuCard) SetFocused(focused bool) {
	c.focused = focused
}
