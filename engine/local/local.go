// Package local plays Othello against the in-process search bot.
package local

import (
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Hopman/rothello/engine"
	"github.com/Hopman/rothello/othello"
	"github.com/Hopman/rothello/search"
	"github.com/Hopman/rothello/sgf"
	"github.com/Hopman/rothello/types"
)

var _ engine.GameEngine = (*LocalEngine)(nil)

// LocalEngine implements the GameEngine interface with a Game and a search.Searcher.
type LocalEngine struct {
	config   engine.GameConfig
	game     *Game
	searcher *search.Searcher
	record   *sgf.GameRecord
	log      *zap.SugaredLogger

	human      othello.Color // Empty when the bot plays both sides
	myTurn     bool
	closed     bool
	generation int    // bumped by Undo so a bot move computed before it is dropped
	failure    string // set when the bot could not produce a move
	analysis   []types.Candidate

	moveCallback func(x, y, color int, boardState *types.BoardState)
	endCallback  func(outcome string)

	mu sync.Mutex
	wg sync.WaitGroup
}

// NewLocalEngine creates a new engine with the given configuration.
func NewLocalEngine(cfg engine.GameConfig) *LocalEngine {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &LocalEngine{
		config:   cfg,
		game:     NewGame(),
		searcher: search.New(cfg.Search, log.Named("search")),
		log:      log.Named("engine"),
		human:    othello.Color(cfg.PlayerColor),
	}
}

// Connect validates the settings, opens the game record and starts the bot if it moves first.
func (e *LocalEngine) Connect() error {
	if e.config.PlayerColor < 0 || e.config.PlayerColor > 2 {
		return fmt.Errorf("invalid player color %d", e.config.PlayerColor)
	}
	if err := e.config.Search.Validate(); err != nil {
		return fmt.Errorf("invalid search params: %w", err)
	}

	if e.config.HistoryDir != "" {
		rec, err := sgf.NewGameRecord(e.config.HistoryDir, e.config.PlayerColor, e.config.Search.Depth)
		if err != nil {
			// A missing record does not stop the game.
			e.log.Warnw("game record disabled", "error", err)
		} else {
			e.record = rec
			e.log.Infow("recording game", "file", rec.FilePath, "id", rec.GameID)
		}
	}

	e.log.Infow("game started",
		"human", e.human,
		"depth", e.config.Search.Depth,
		"tie_break", e.config.Search.TieBreak,
	)

	e.mu.Lock()
	bot, generation := e.settle()
	e.mu.Unlock()
	if bot {
		go e.triggerEngineMove(generation)
	}
	return nil
}

// settle decides who acts next after the game state changed. When it returns true
// the caller must start triggerEngineMove with the returned generation.
// Must be called while holding the lock.
func (e *LocalEngine) settle() (bot bool, generation int) {
	e.myTurn = false
	if e.game.Over() || e.closed || e.failure != "" {
		return false, e.generation
	}
	if e.game.ToMove() == e.human {
		e.myTurn = true
		return false, e.generation
	}
	e.wg.Add(1)
	return true, e.generation
}

// GetBoardState returns the current board state.
func (e *LocalEngine) GetBoardState() *types.BoardState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.copyBoardState()
}

// PlayMove plays a move for the human at the given coordinates.
func (e *LocalEngine) PlayMove(x, y int) error {
	e.mu.Lock()

	if e.game.Over() || e.failure != "" {
		e.mu.Unlock()
		return ErrGameOver
	}
	if !e.myTurn {
		e.mu.Unlock()
		return ErrNotYourTurn
	}
	if x < 0 || x >= othello.Size || y < 0 || y >= othello.Size {
		e.mu.Unlock()
		return fmt.Errorf("%w: (%d, %d) is off the board", ErrIllegalMove, x, y)
	}

	plies, err := e.game.Play(y*othello.Size + x)
	if err != nil {
		e.mu.Unlock()
		return err
	}
	e.log.Debugw("human move", "plies", plies)
	e.finishTurn(plies)
	return nil
}

// Pass passes the human's turn. Only allowed when no legal move exists.
func (e *LocalEngine) Pass() error {
	e.mu.Lock()

	if e.game.Over() {
		e.mu.Unlock()
		return ErrGameOver
	}
	if !e.myTurn {
		e.mu.Unlock()
		return ErrNotYourTurn
	}

	plies, err := e.game.Pass()
	if err != nil {
		e.mu.Unlock()
		return err
	}
	e.finishTurn(plies)
	return nil
}

// finishTurn records plies, releases the lock and notifies the callbacks.
// Must be called while holding the lock.
func (e *LocalEngine) finishTurn(plies []Ply) {
	e.recordPlies(plies)
	bot, generation := e.settle()
	over := e.game.Over()
	outcome := e.game.Outcome()
	if over && e.record != nil {
		if err := e.record.SetResult(outcome); err != nil {
			e.log.Warnw("write result", "error", err)
		}
	}
	boardStateCopy := e.copyBoardState()
	moveCallback, endCallback := e.moveCallback, e.endCallback
	e.mu.Unlock()

	// Notify callbacks (outside lock to prevent deadlock)
	if moveCallback != nil {
		for _, p := range plies {
			moveCallback(p.X(), p.Y(), int(p.Color), boardStateCopy)
		}
	}
	if over {
		e.log.Infow("game over", "outcome", outcome)
		if endCallback != nil {
			endCallback(outcome)
		}
	}

	if bot {
		go e.triggerEngineMove(generation)
	}
}

// recordPlies appends plies to the SGF record. Must be called while holding the lock.
func (e *LocalEngine) recordPlies(plies []Ply) {
	if e.record == nil {
		return
	}
	for _, p := range plies {
		if err := e.record.AddMove(p.X(), p.Y(), int(p.Color)); err != nil {
			e.log.Warnw("record move", "ply", p, "error", err)
		}
	}
}

// triggerEngineMove searches for and plays the bot's move.
func (e *LocalEngine) triggerEngineMove(generation int) {
	defer e.wg.Done()

	if e.human == othello.Empty && e.config.BotDelay > 0 {
		time.Sleep(time.Duration(e.config.BotDelay) * time.Millisecond)
	}

	e.mu.Lock()
	if e.closed || e.game.Over() || generation != e.generation {
		e.mu.Unlock()
		return
	}
	board := e.game.Board()
	player := othello.NewPlayer(e.game.ToMove(), true)
	e.mu.Unlock()

	// The search runs without the lock so the UI stays responsive.
	start := time.Now()
	move, ok, root, err := e.searcher.Analyze(board, player)

	e.mu.Lock()
	if e.closed || generation != e.generation {
		e.mu.Unlock()
		return
	}
	if err != nil {
		e.log.Errorw("bot failed to move", "player", player.Color, "error", err)
		e.failure = fmt.Sprintf("Game aborted: %v", err)
		e.myTurn = false
		outcome := e.failure
		endCallback := e.endCallback
		e.mu.Unlock()
		if endCallback != nil {
			endCallback(outcome)
		}
		return
	}
	e.analysis = candidates(root)

	var plies []Ply
	if ok {
		plies, err = e.game.Play(move.Cell)
	} else {
		plies, err = e.game.Pass()
	}
	if err != nil {
		e.log.Errorw("bot move rejected", "player", player.Color, "move", othello.Notation(move.Cell), "error", err)
		e.mu.Unlock()
		return
	}
	e.log.Debugw("bot move",
		"player", player.Color,
		"move", othello.Notation(move.Cell),
		"elapsed", time.Since(start),
	)
	e.finishTurn(plies)
}

// candidates flattens the root of a search tree for the analysis panel.
func candidates(root *search.Node) []types.Candidate {
	if root == nil {
		return nil
	}
	out := make([]types.Candidate, len(root.Children))
	for i, c := range root.Children {
		out[i] = types.Candidate{Cell: c.Move.Cell, Score: c.Score}
	}
	return out
}

// IsMyTurn returns true if it's the human player's turn.
func (e *LocalEngine) IsMyTurn() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.myTurn && !e.game.Over() && e.failure == ""
}

// GetPlayerColor returns the human player's color (1=black, 2=white, 0=watching).
func (e *LocalEngine) GetPlayerColor() int {
	return int(e.human)
}

// OnMove registers a callback for when a move is played.
func (e *LocalEngine) OnMove(callback func(x, y, color int, boardState *types.BoardState)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.moveCallback = callback
}

// OnGameEnd registers a callback for when the game ends.
func (e *LocalEngine) OnGameEnd(callback func(outcome string)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.endCallback = callback
}

// Undo takes back the human's last move and every bot reply or pass after it.
// It is only allowed on the human's turn, or after the game ended.
func (e *LocalEngine) Undo() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.human == othello.Empty {
		return ErrNotYourTurn
	}
	if e.failure != "" {
		return ErrGameOver
	}
	if !e.myTurn && !e.game.Over() {
		return ErrNotYourTurn
	}

	history := e.game.History()
	target := -1
	for i := len(history) - 1; i >= 0; i-- {
		if history[i].Color == e.human && !history[i].Pass() {
			target = i
			break
		}
	}
	if target < 0 {
		return ErrNothingToUndo
	}

	n := len(history) - target
	for i := 0; i < n; i++ {
		if _, err := e.game.Undo(); err != nil {
			return err
		}
	}
	if e.record != nil {
		if err := e.record.UndoMoves(n); err != nil {
			e.log.Warnw("undo record", "error", err)
		}
		if err := e.record.SetResult("?"); err != nil {
			e.log.Warnw("reset result", "error", err)
		}
	}
	e.generation++
	e.analysis = nil
	e.log.Debugw("undo", "plies", n)
	if bot, generation := e.settle(); bot {
		go e.triggerEngineMove(generation)
	}
	return nil
}

// History returns the plies played so far.
func (e *LocalEngine) History() []Ply {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.game.History()
}

// Position returns a copy of the board and the side to move.
func (e *LocalEngine) Position() (othello.Board, othello.Color) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.game.Board(), e.game.ToMove()
}

// RecordPath returns the SGF file of this game, or "" when not recording.
func (e *LocalEngine) RecordPath() string {
	if e.record == nil {
		return ""
	}
	return e.record.FilePath
}

// Wait blocks until no bot move is in flight.
func (e *LocalEngine) Wait() {
	e.wg.Wait()
}

// Close stops the bot and closes the game record.
func (e *LocalEngine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	e.closed = true
	e.myTurn = false
	if e.record != nil {
		e.record.Close()
	}
	e.log.Debugw("engine closed", "plies", len(e.game.History()))
}

// copyBoardState creates a snapshot of the current game.
// Must be called while holding the lock.
func (e *LocalEngine) copyBoardState() *types.BoardState {
	board := e.game.Board()
	black, white := othello.Tally(&board)

	state := types.NewBoardState(othello.Size)
	state.Board = board.Grid()
	state.MoveNumber = len(e.game.History())
	state.PlayerToMove = int(e.game.ToMove())
	state.BlackCount = black
	state.WhiteCount = white
	switch {
	case e.game.Over():
		state.Phase = "finished"
		state.Outcome = e.game.Outcome()
	case e.failure != "":
		state.Phase = "finished"
		state.Outcome = e.failure
	}
	for _, m := range e.game.LegalMoves() {
		state.LegalMoves = append(state.LegalMoves, m.Cell)
	}
	if len(e.analysis) > 0 {
		state.Analysis = append([]types.Candidate(nil), e.analysis...)
	}
	if h := e.game.History(); len(h) > 0 {
		last := h[len(h)-1]
		state.LastMove.X = last.X()
		state.LastMove.Y = last.Y()
	}
	return state
}
