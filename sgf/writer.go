// Package sgf implements SGF FF[4] writing and reading for Othello game records (GM[2]).
package sgf

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Hopman/rothello/othello"
)

// GameRecord tracks a game in progress and writes it as SGF.
type GameRecord struct {
	FilePath    string
	GameID      string
	PlayerBlack string
	PlayerWhite string
	Date        string
	Result      string
	moves       []string // ";B[dc]", ";W[]", ...
	file        *os.File
}

// NewGameRecord creates a new SGF file in dir and writes the initial header.
// playerColor is 1=black, 2=white (the human player's color) or 0 when the bot plays both sides.
func NewGameRecord(dir string, playerColor, depth int) (*GameRecord, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create history dir: %w", err)
	}

	now := time.Now()
	id := uuid.New().String()
	filename := fmt.Sprintf("%s_%s.sgf", now.Format("2006-01-02_150405"), id[:8])
	path := filepath.Join(dir, filename)

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create sgf file: %w", err)
	}

	human := "Player"
	bot := fmt.Sprintf("rothello depth %d", depth)

	var pb, pw string
	switch playerColor {
	case 1:
		pb, pw = human, bot
	case 2:
		pb, pw = bot, human
	default:
		pb, pw = bot, bot
	}

	rec := &GameRecord{
		FilePath:    path,
		GameID:      id,
		PlayerBlack: pb,
		PlayerWhite: pw,
		Date:        now.Format("2006-01-02"),
		Result:      "?",
		file:        f,
	}

	if err := rec.flush(); err != nil {
		f.Close()
		return nil, err
	}

	return rec, nil
}

// sgfCoord converts 0-indexed board coordinates to SGF letter pair.
// (0,0) -> "aa", (3,4) -> "de", (7,7) -> "hh".
func sgfCoord(x, y int) string {
	return string(rune('a'+x)) + string(rune('a'+y))
}

// AddMove appends a move to the record. Pass is indicated by x==-1 && y==-1.
func (r *GameRecord) AddMove(x, y, color int) error {
	colorChar := "B"
	if color == 2 {
		colorChar = "W"
	}

	var node string
	if x == -1 && y == -1 {
		node = fmt.Sprintf(";%s[]", colorChar)
	} else {
		node = fmt.Sprintf(";%s[%s]", colorChar, sgfCoord(x, y))
	}

	r.moves = append(r.moves, node)
	return r.flush()
}

// UndoMoves removes the last n moves from the record.
func (r *GameRecord) UndoMoves(n int) error {
	if n > len(r.moves) {
		n = len(r.moves)
	}
	r.moves = r.moves[:len(r.moves)-n]
	return r.flush()
}

// MoveCount returns the number of recorded plies, passes included.
func (r *GameRecord) MoveCount() int {
	return len(r.moves)
}

// SetResult parses a game outcome string and sets the SGF RE property.
// Accepts outcomes like "Black wins 40-24" or "Draw 32-32"
// as well as already-formatted SGF like "W+8", "0".
func (r *GameRecord) SetResult(outcome string) error {
	r.Result = parseResult(outcome)
	return r.flush()
}

// Close performs a final flush and closes the file handle.
func (r *GameRecord) Close() {
	if r.file == nil {
		return
	}
	r.flush()
	r.file.Close()
	r.file = nil
}

// flush rewrites the complete SGF file from scratch.
func (r *GameRecord) flush() error {
	if r.file == nil {
		return fmt.Errorf("file already closed")
	}

	var b strings.Builder

	// Root node
	b.WriteString("(;GM[2]FF[4]CA[UTF-8]")
	b.WriteString("AP[rothello:1.0]")
	b.WriteString(fmt.Sprintf("SZ[%d]", othello.Size))
	b.WriteString(fmt.Sprintf("GN[%s]", r.GameID))
	b.WriteString(fmt.Sprintf("PB[%s]", r.PlayerBlack))
	b.WriteString(fmt.Sprintf("PW[%s]", r.PlayerWhite))
	b.WriteString(fmt.Sprintf("DT[%s]", r.Date))
	b.WriteString(fmt.Sprintf("RE[%s]", r.Result))
	b.WriteString("\n")

	for _, m := range r.moves {
		b.WriteString(m)
	}

	b.WriteString(")\n")

	// Rewrite file from start
	if _, err := r.file.Seek(0, 0); err != nil {
		return err
	}
	if err := r.file.Truncate(0); err != nil {
		return err
	}
	if _, err := r.file.WriteString(b.String()); err != nil {
		return err
	}
	return r.file.Sync()
}

// parseResult converts an outcome string to an SGF RE[] value.
func parseResult(outcome string) string {
	o := strings.TrimSpace(outcome)

	if isValidSGFResult(o) {
		return o
	}

	low := strings.ToLower(o)

	var winner string
	switch {
	case strings.HasPrefix(low, "draw"):
		return "0"
	case strings.HasPrefix(low, "white wins"):
		winner = "W"
	case strings.HasPrefix(low, "black wins"):
		winner = "B"
	default:
		return "?"
	}

	// "Black wins 40-24": margin is the disk difference.
	fields := strings.Fields(low)
	score := fields[len(fields)-1]
	a, b, found := strings.Cut(score, "-")
	if !found {
		return winner + "+?"
	}
	na, errA := strconv.Atoi(a)
	nb, errB := strconv.Atoi(b)
	if errA != nil || errB != nil {
		return winner + "+?"
	}
	margin := na - nb
	if margin < 0 {
		margin = -margin
	}
	return winner + "+" + strconv.Itoa(margin)
}

// isValidSGFResult checks if a string is already a valid SGF result.
func isValidSGFResult(s string) bool {
	if s == "?" || s == "Draw" || s == "Void" || s == "0" {
		return true
	}
	if len(s) < 3 {
		return false
	}
	if (s[0] != 'B' && s[0] != 'W') || s[1] != '+' {
		return false
	}
	rest := s[2:]
	if rest == "R" || rest == "T" || rest == "F" || rest == "?" {
		return true
	}
	_, err := strconv.Atoi(rest)
	return err == nil
}
