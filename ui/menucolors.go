package ui

import "github.com/gdamore/tcell/v2"

// MenuColors is the palette of the setup card and the history list: charcoal with felt-green accents.
var MenuColors = struct {
	Border      tcell.Color
	BorderFocus tcell.Color
	CardBG      tcell.Color
	Title       tcell.Color
	TitleAccent tcell.Color // also the black disk of the title mark
	Label       tcell.Color
	Hint        tcell.Color
	Selected    tcell.Color
	Unselected  tcell.Color
	ButtonBG    tcell.Color
	ButtonFocus tcell.Color
	ButtonText  tcell.Color
}{
	Border:      tcell.PaletteColor(22),  // Dark green
	BorderFocus: tcell.PaletteColor(71),  // Felt green
	CardBG:      tcell.PaletteColor(235), // Charcoal
	Title:       tcell.PaletteColor(255), // White
	TitleAccent: tcell.PaletteColor(232), // Black
	Label:       tcell.PaletteColor(250), // Light gray
	Hint:        tcell.PaletteColor(245), // Dim gray
	Selected:    tcell.PaletteColor(114), // Light green
	Unselected:  tcell.PaletteColor(243), // Gray
	ButtonBG:    tcell.PaletteColor(22),
	ButtonFocus: tcell.PaletteColor(28),
	ButtonText:  tcell.PaletteColor(255),
}
