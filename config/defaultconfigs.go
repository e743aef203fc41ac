package config

var DefaultConfig Config
var DefaultTheme Theme

func init() {
	DefaultTheme = Theme{
		DrawCursorBackground:     true,
		DrawLastPlayedBackground: true,
		ShowLegalMoves:           true,
		FullWidthLetters:         false,
		Colors: ConfigColors{
			BoardColor:        28,
			BoardColorAlt:     22,
			BlackColor:        232,
			WhiteColor:        255,
			LineColor:         22,
			HintColor:         148,
			CursorColorFG:     226,
			CursorColorBG:     4,
			LastPlayedColorBG: 94,
		},
		Symbols: ConfigSymbols{
			BlackDisk:   '●',
			WhiteDisk:   '●',
			BoardSquare: '·',
			LegalHint:   '∘',
		},
	}

	DefaultConfig = Config{
		Theme: DefaultTheme,
		Engine: EngineConfig{
			Depth:       3,
			CornerBonus: 2500,
			TieBreak:    "first",
			PlayerColor: 1,
			BotDelay:    500,
		},
		History: HistoryConfig{
			Enabled: true,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}
