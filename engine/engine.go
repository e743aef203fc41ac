// Package engine defines the interface for game engines.
package engine

import (
	"go.uber.org/zap"

	"github.com/Hopman/rothello/search"
	"github.com/Hopman/rothello/types"
)

// GameEngine defines the interface for playing Othello against the bot.
type GameEngine interface {
	// Connect initializes the game and starts the bot if it moves first.
	Connect() error

	// GetBoardState returns the current board state.
	GetBoardState() *types.BoardState

	// PlayMove plays a move at the given coordinates.
	// Returns an error if the move is illegal.
	PlayMove(x, y int) error

	// Pass passes the current turn. Only allowed when the human has no legal move.
	Pass() error

	// IsMyTurn returns true if it's the human player's turn.
	IsMyTurn() bool

	// GetPlayerColor returns the human player's color (1=black, 2=white, 0=watching).
	GetPlayerColor() int

	// OnMove registers a callback for when a move is played (by either player).
	// x, y are -1, -1 for a pass. boardState is passed directly to avoid lock contention.
	OnMove(func(x, y, color int, boardState *types.BoardState))

	// Undo takes back the last human move together with the bot replies that followed it.
	Undo() error

	// OnGameEnd registers a callback for when the game ends.
	OnGameEnd(func(outcome string))

	// Close stops the bot and flushes the game record.
	Close()
}

// GameConfig holds configuration for starting a new game.
type GameConfig struct {
	PlayerColor int           // 1=black, 2=white, 0=bot plays both sides
	Search      search.Params // bot settings
	HistoryDir  string        // directory for SGF records, empty disables recording
	BotDelay    int           // milliseconds to pause before each bot move in watch mode
	Logger      *zap.SugaredLogger
}

// DefaultConfig returns a reasonable default configuration.
func DefaultConfig() GameConfig {
	return GameConfig{
		PlayerColor: 1, // Human plays black
		Search:      search.DefaultParams(),
		BotDelay:    500,
	}
}
