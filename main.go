// rothello is a terminal application to play Othello against a brute-force search bot.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"go.uber.org/zap"

	"github.com/Hopman/rothello/config"
	"github.com/Hopman/rothello/console"
	"github.com/Hopman/rothello/engine"
	"github.com/Hopman/rothello/engine/local"
	"github.com/Hopman/rothello/logging"
	"github.com/Hopman/rothello/search"
	"github.com/Hopman/rothello/ui"
)

// Version is set at build time via ldflags
var Version = "dev"

// Command-line flags
var (
	flagConfig     = flag.String("config", "", "Config file (default: XDG config dir)")
	flagDepth      = flag.Int("depth", -1, "Bot search depth")
	flagColor      = flag.String("color", "", "Your color: black, white or watch")
	flagTieBreak   = flag.String("tiebreak", "", "Bot choice between equal moves: first or random")
	flagText       = flag.Bool("text", false, "Play in plain text mode on stdin/stdout")
	flagQuickStart = flag.Bool("play", false, "Start game immediately with defaults")
	flagFocus      = flag.Bool("focus", false, "Start in focus mode (fullscreen board)")
	flagVersion    = flag.Bool("version", false, "Print version and exit")
)

var app *tview.Application
var rootPage *tview.Pages
var gameBoard *ui.BoardUI
var gameFrame *tview.Flex
var gameHint *tview.TextView
var setupUI *ui.GameSetupUI
var cfg *config.Config
var log *zap.SugaredLogger

func main() {
	flag.Parse()

	if *flagVersion {
		fmt.Printf("rothello %s\n", Version)
		return
	}

	var err error
	if *flagConfig != "" {
		cfg, err = config.Load(*flagConfig)
	} else {
		cfg, err = config.InitConfig()
	}
	if err == nil {
		err = applyFlags(cfg)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log, err = logging.New(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logging disabled: %v\n", err)
		log = zap.NewNop().Sugar()
	}
	defer log.Sync()
	log.Infow("rothello starting", "version", Version, "depth", cfg.Engine.Depth, "tie_break", cfg.Engine.TieBreak)

	if *flagText {
		if err := runText(); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	runUI()
}

// applyFlags overrides the engine section of the config with command-line flags.
func applyFlags(c *config.Config) error {
	if *flagDepth >= 0 {
		c.Engine.Depth = *flagDepth
	}
	switch strings.ToLower(*flagColor) {
	case "":
	case "black", "b":
		c.Engine.PlayerColor = 1
	case "white", "w":
		c.Engine.PlayerColor = 2
	case "watch", "none", "bot":
		c.Engine.PlayerColor = 0
	default:
		return fmt.Errorf("unknown color %q: use black, white or watch", *flagColor)
	}
	if *flagTieBreak != "" {
		c.Engine.TieBreak = *flagTieBreak
	}
	return c.Validate()
}

// runText plays one game on stdin/stdout.
func runText() error {
	gameCfg, err := cfg.GameConfig()
	if err != nil {
		return err
	}
	gameCfg.Logger = log
	eng := local.NewLocalEngine(gameCfg)
	advisor := search.New(gameCfg.Search, log.Named("hint"))
	err = console.New(eng, advisor, os.Stdin, os.Stdout, log).Run()
	if path := eng.RecordPath(); path != "" {
		fmt.Printf("Game saved to %s\n", path)
	}
	return err
}

func runUI() {
	// Any engine flag skips the setup card
	quickStart := *flagQuickStart || *flagDepth >= 0 || *flagColor != "" || *flagTieBreak != "" || *flagFocus

	app = tview.NewApplication()
	rootPage = tview.NewPages()
	rootPage.SetBorder(true).SetTitle(" ● rothello ")

	// Game view setup
	gameHint = tview.NewTextView()
	gameHint.SetBorder(true)
	gameHint.SetBorderPadding(0, 0, 1, 1)
	gameHint.SetTitle(" Status ")
	gameHint.SetTitleAlign(tview.AlignLeft)
	gameBoard = ui.NewBoard(app, cfg, gameHint)

	// Create game layout with centered board and side panel
	gameFrame = ui.CreateGameLayout(gameBoard, gameHint)
	gameBoard.Box.SetInputCapture(boardInput)

	// History browser
	historyUI := ui.NewHistoryBrowser(cfg.HistoryDir(), func() {
		rootPage.SwitchToPage("setup")
	})

	// Game setup screen
	setupUI = ui.NewGameSetup(cfg,
		func(gameCfg engine.GameConfig) {
			gameCfg.Logger = log
			startGame(gameCfg)
		},
		func() {
			historyUI.Refresh()
			rootPage.SwitchToPage("history")
		},
		func() {
			rootPage.SwitchToPage("colors")
		},
		func() {
			app.Stop()
		},
	)

	// Color configuration screen
	colorConfig := ui.NewColorConfig(cfg, func() {
		// Refresh the game board with new colors
		gameBoard.SetConfig(cfg)
		rootPage.SwitchToPage("setup")
	})
	colorConfig.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyEsc || (event.Key() == tcell.KeyRune && event.Rune() == 'q') {
			rootPage.SwitchToPage("setup")
			return nil
		}
		if event.Key() == tcell.KeyTab {
			colorConfig.ToggleMode()
			return nil
		}
		return event
	})

	// Add pages - start on setup by default, or gameview if quick start
	rootPage.AddPage("setup", ui.CreateCenteredForm(setupUI, ui.SetupWidth, ui.SetupHeight), true, !quickStart)
	rootPage.AddPage("gameview", gameFrame, true, quickStart)
	rootPage.AddPage("colors", colorConfig.Flex(), true, false)
	rootPage.AddPage("history", historyUI.Flex(), true, false)

	if quickStart {
		gameCfg, err := cfg.GameConfig()
		if err != nil {
			setupUI.SetError(err.Error())
			rootPage.SwitchToPage("setup")
		} else {
			gameCfg.Logger = log
			startGame(gameCfg)
		}
		if *flagFocus {
			gameBoard.SetFocusMode(true)
			ui.BuildFocusLayout(gameFrame, gameBoard)
		}
	}

	if err := app.SetRoot(rootPage, true).Run(); err != nil {
		panic(err)
	}
	gameBoard.Close()
}

// boardInput handles keys on the game view.
func boardInput(event *tcell.EventKey) *tcell.EventKey {
	if event.Key() == tcell.KeyRune && event.Rune() == 'q' {
		if gameBoard.SelectedTile() != nil {
			gameBoard.ResetSelection()
		} else {
			gameBoard.Close()
			rootPage.SwitchToPage("setup")
		}
		return nil
	}
	switch event.Key() {
	case tcell.KeyUp:
		gameBoard.MoveSelection(0, -1)
	case tcell.KeyDown:
		gameBoard.MoveSelection(0, 1)
	case tcell.KeyLeft:
		gameBoard.MoveSelection(-1, 0)
	case tcell.KeyRight:
		gameBoard.MoveSelection(1, 0)
	case tcell.KeyTab:
		gameBoard.JumpToLegal()
		return nil
	case tcell.KeyEnter:
		selTile := gameBoard.SelectedTile()
		if selTile == nil {
			return nil
		}
		gameBoard.PlayMove(selTile.X, selTile.Y)
	case tcell.KeyRune:
		switch event.Rune() {
		case 'h':
			gameBoard.MoveSelection(-1, 0)
		case 'j':
			gameBoard.MoveSelection(0, 1)
		case 'k':
			gameBoard.MoveSelection(0, -1)
		case 'l':
			gameBoard.MoveSelection(1, 0)
		case 'p':
			gameBoard.Pass()
		case 'u':
			gameBoard.Undo()
		case 'f':
			if gameBoard.ToggleFocusMode() {
				ui.BuildFocusLayout(gameFrame, gameBoard)
			} else {
				ui.RebuildNormalLayout(gameFrame, gameBoard, gameHint)
			}
		}
	}
	return event
}

// startGame starts a game with the given configuration.
func startGame(gameCfg engine.GameConfig) {
	gameBoard.SetSearchParams(gameCfg.Search)

	eng := local.NewLocalEngine(gameCfg)
	if err := gameBoard.ConnectEngine(eng); err != nil {
		log.Errorw("start game", "error", err)
		modal := tview.NewModal().
			SetText(fmt.Sprintf("Failed to start game:\n%s", err.Error())).
			AddButtons([]string{"OK"}).
			SetDoneFunc(func(buttonIndex int, buttonLabel string) {
				rootPage.RemovePage("error")
				rootPage.SwitchToPage("setup")
			})
		rootPage.AddPage("error", modal, true, true)
		return
	}
	rootPage.SwitchToPage("gameview")
}
