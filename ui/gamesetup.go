package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/Hopman/rothello/config"
	"github.com/Hopman/rothello/engine"
	"github.com/Hopman/rothello/search"
)

// MaxSetupDepth is the deepest search offered on the setup screen.
const MaxSetupDepth = 6

// Setup card dimensions, used to center it.
const (
	SetupWidth  = 60
	SetupHeight = 20
)

// sideColors maps the side options to engine player colors.
var sideColors = []int{1, 2, 0}

// GameSetupUI is the new game card: side, bot depth, tie-break and the menu buttons.
// Choices are written back to the config's engine section as they change.
type GameSetupUI struct {
	*MenuCard
	cfg     *config.Config
	side    *RadioSelect
	depth   *Slider
	ties    *RadioSelect
	buttons []*MenuButton
	focus   int
	onStart func(engine.GameConfig)
	err     string
}

type setupControl interface {
	SetFocused(bool)
	HandleKey(*tcell.EventKey) bool
}

// NewGameSetup creates the setup card from the engine section of cfg.
func NewGameSetup(cfg *config.Config, onStart func(engine.GameConfig), onHistory, onColors, onQuit func()) *GameSetupUI {
	s := &GameSetupUI{
		MenuCard: NewMenuCard("R O T H E L L O"),
		cfg:      cfg,
		onStart:  onStart,
	}

	side := 0
	for i, c := range sideColors {
		if c == cfg.Engine.PlayerColor {
			side = i
		}
	}
	s.side = NewRadioSelect("You play", []RadioOption{
		{Label: "Black", Description: "Black moves first"},
		{Label: "White", Description: "The bot opens"},
		{Label: "Watch", Description: "The bot plays both sides"},
	}, side, func(i int) {
		cfg.Engine.PlayerColor = sideColors[i]
	})

	maxDepth := MaxSetupDepth
	if cfg.Engine.Depth > maxDepth {
		maxDepth = cfg.Engine.Depth
	}
	s.depth = NewSlider("Bot depth", 0, maxDepth, cfg.Engine.Depth, depthCaption, func(v int) {
		cfg.Engine.Depth = v
	})

	tie := 0
	if tb, err := search.ParseTieBreak(cfg.Engine.TieBreak); err == nil && tb == search.TieBreakRandom {
		tie = 1
	}
	s.ties = NewRadioSelect("Equal moves", []RadioOption{
		{Label: "First", Description: "Same game every time"},
		{Label: "Random", Description: "Coin flip between equal scores"},
	}, tie, func(i int) {
		cfg.Engine.TieBreak = []string{"first", "random"}[i]
	})

	s.buttons = []*MenuButton{
		NewMenuButton("Start", 's', true, s.start),
		NewMenuButton("History", 'y', false, onHistory),
		NewMenuButton("Colors", 'c', false, onColors),
		NewMenuButton("Quit", 'q', false, onQuit),
	}

	s.setFocus(0)
	return s
}

func depthCaption(d int) string {
	switch {
	case d == 0:
		return "Greedy, looks at its own move only"
	case d <= 2:
		return "Quick replies"
	case d <= 4:
		return fmt.Sprintf("Looks %d plies past its move", d)
	}
	return "Slow: the tree grows about tenfold per ply"
}

// controls returns every focusable element in tab order.
func (s *GameSetupUI) controls() []setupControl {
	out := []setupControl{s.side, s.depth, s.ties}
	for _, b := range s.buttons {
		out = append(out, b)
	}
	return out
}

func (s *GameSetupUI) setFocus(i int) {
	ctrls := s.controls()
	i = (i%len(ctrls) + len(ctrls)) % len(ctrls)
	for j, c := range ctrls {
		c.SetFocused(j == i)
	}
	s.focus = i
}

// GameConfig builds the settings of a new game from the current choices.
func (s *GameSetupUI) GameConfig() (engine.GameConfig, error) {
	return s.cfg.GameConfig()
}

func (s *GameSetupUI) start() {
	gameCfg, err := s.GameConfig()
	if err != nil {
		s.err = err.Error()
		return
	}
	s.err = ""
	if s.onStart != nil {
		s.onStart(gameCfg)
	}
}

// HandleKey routes a key to the focused control, then to navigation and hotkeys.
// Returns true if the key was consumed.
func (s *GameSetupUI) HandleKey(event *tcell.EventKey) bool {
	ctrls := s.controls()
	firstButton := len(ctrls) - len(s.buttons)

	switch event.Key() {
	case tcell.KeyTab, tcell.KeyDown:
		if s.focus >= firstButton && event.Key() == tcell.KeyDown {
			return true
		}
		s.setFocus(s.focus + 1)
		return true
	case tcell.KeyBacktab, tcell.KeyUp:
		if s.focus >= firstButton && event.Key() == tcell.KeyUp {
			s.setFocus(firstButton - 1)
			return true
		}
		s.setFocus(s.focus - 1)
		return true
	}

	if s.focus >= firstButton {
		switch event.Key() {
		case tcell.KeyLeft:
			if s.focus > firstButton {
				s.setFocus(s.focus - 1)
			}
			return true
		case tcell.KeyRight:
			if s.focus < len(ctrls)-1 {
				s.setFocus(s.focus + 1)
			}
			return true
		}
	}

	if ctrls[s.focus].HandleKey(event) {
		return true
	}

	if event.Key() == tcell.KeyEnter {
		s.start()
		return true
	}
	if event.Key() == tcell.KeyRune {
		for _, b := range s.buttons {
			if b.Hotkey() == event.Rune() {
				b.Select()
				return true
			}
		}
	}
	return false
}

// InputHandler returns the tview handler for this primitive.
func (s *GameSetupUI) InputHandler() func(event *tcell.EventKey, setFocus func(p tview.Primitive)) {
	return s.WrapInputHandler(func(event *tcell.EventKey, setFocus func(p tview.Primitive)) {
		s.HandleKey(event)
	})
}

// Draw renders the card.
func (s *GameSetupUI) Draw(screen tcell.Screen) {
	x, y, width, height := s.DrawCard(screen)
	if width == 0 {
		return
	}
	bottom := y + height

	row := y
	row += s.side.Draw(screen, x, row, width) + 1
	row += s.depth.Draw(screen, x, row, width) + 1
	row += s.ties.Draw(screen, x, row, width) + 1

	if row < bottom {
		col := x + 2
		for _, b := range s.buttons {
			col += b.Draw(screen, col, row) + 2
		}
		row += 2
	}

	if s.err != "" && row < bottom {
		errStyle := tcell.StyleDefault.Foreground(tcell.ColorRed).Background(MenuColors.CardBG)
		drawString(screen, x+2, row, x+width, "✗ "+s.err, errStyle)
	}

	hintStyle := tcell.StyleDefault.Foreground(MenuColors.Hint).Background(MenuColors.CardBG)
	drawString(screen, x+2, bottom-1, x+width, "tab/↑↓ move  ←→ change  ⏎ select", hintStyle)
}

// Error returns the last message shown on the card, if any.
func (s *GameSetupUI) Error() string {
	return s.err
}

// SetError shows a message on the card, e.g. when a game could not start.
func (s *GameSetupUI) SetError(msg string) {
	s.err = msg
}
