package sgf

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Hopman/rothello/othello"
)

// d3, c3, c4 from the opening.
const testSGF = `(;GM[2]FF[4]CA[UTF-8]AP[rothello:1.0]SZ[8]GN[0b6f]PB[Player]PW[rothello depth 3]DT[2026-01-15]RE[B+3]
;B[dc];W[cc];B[cd])`

func writeTempSGF(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write temp sgf: %v", err)
	}
	return path
}

func TestParseHeader(t *testing.T) {
	dir := t.TempDir()
	path := writeTempSGF(t, dir, "test.sgf", testSGF)

	info, err := ParseHeader(path)
	if err != nil {
		t.Fatalf("ParseHeader: %v", err)
	}

	if info.GameID != "0b6f" {
		t.Errorf("GameID = %q, want %q", info.GameID, "0b6f")
	}
	if info.PlayerBlack != "Player" {
		t.Errorf("PlayerBlack = %q, want %q", info.PlayerBlack, "Player")
	}
	if info.PlayerWhite != "rothello depth 3" {
		t.Errorf("PlayerWhite = %q, want %q", info.PlayerWhite, "rothello depth 3")
	}
	if info.Date != "2026-01-15" {
		t.Errorf("Date = %q, want %q", info.Date, "2026-01-15")
	}
	if info.Result != "B+3" {
		t.Errorf("Result = %q, want %q", info.Result, "B+3")
	}
	if info.MoveCount != 3 {
		t.Errorf("MoveCount = %d, want 3", info.MoveCount)
	}
}

func TestParseHeaderMissingFile(t *testing.T) {
	_, err := ParseHeader("/nonexistent/file.sgf")
	if err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestParseHeaderRejectsOtherGames(t *testing.T) {
	dir := t.TempDir()
	path := writeTempSGF(t, dir, "go.sgf", `(;GM[1]FF[4]SZ[19]KM[6.5];B[pd])`)
	if _, err := ParseHeader(path); err == nil {
		t.Error("Expected error for a Go record")
	}
}

func TestParseMoveNode(t *testing.T) {
	tests := []struct {
		node        string
		color, x, y int
		ok          bool
	}{
		{";B[dc]", 1, 3, 2, true},
		{";W[hh]", 2, 7, 7, true},
		{";W[]", 2, -1, -1, true},
		{";B[tt]", 1, -1, -1, true},
		{";C[comment]", 0, 0, 0, false},
		{";B[abc]", 0, 0, 0, false},
		{"B[dc]", 0, 0, 0, false},
	}
	for _, tt := range tests {
		color, x, y, ok := parseMoveNode(tt.node)
		if color != tt.color || x != tt.x || y != tt.y || ok != tt.ok {
			t.Errorf("parseMoveNode(%q) = (%d, %d, %d, %v), want (%d, %d, %d, %v)",
				tt.node, color, x, y, ok, tt.color, tt.x, tt.y, tt.ok)
		}
	}
}

func TestReplayToEnd(t *testing.T) {
	dir := t.TempDir()
	path := writeTempSGF(t, dir, "test.sgf", testSGF)

	board, moveCount, err := ReplayToEnd(path)
	if err != nil {
		t.Fatalf("ReplayToEnd: %v", err)
	}

	if moveCount != 3 {
		t.Errorf("moveCount = %d, want 3", moveCount)
	}

	checks := []struct {
		cell  int
		color othello.Color
	}{
		{19, othello.Black}, // d3
		{18, othello.White}, // c3
		{26, othello.Black}, // c4
		{27, othello.Black}, // d4, flipped twice
		{36, othello.White}, // e5, untouched
	}
	for _, c := range checks {
		if board[c.cell] != c.color {
			t.Errorf("board[%s] = %v, want %v", othello.Notation(c.cell), board[c.cell], c.color)
		}
	}
	if black, white := othello.Tally(&board); black != 5 || white != 2 {
		t.Errorf("Tally = (%d, %d), want (5, 2)", black, white)
	}
}

func TestReplayPartial(t *testing.T) {
	dir := t.TempDir()
	path := writeTempSGF(t, dir, "test.sgf", testSGF)

	board, n, err := Replay(path, 1)
	if err != nil {
		t.Fatalf("Replay: %v", err)
	}
	if n != 1 {
		t.Errorf("n = %d, want 1", n)
	}
	if board[19] != othello.Black || board[27] != othello.Black || board[18] != othello.Empty {
		t.Errorf("unexpected position after one ply:\n%s", board.String())
	}

	start, n, err := Replay(path, 0)
	if err != nil {
		t.Fatalf("Replay: %v", err)
	}
	if n != 0 || start != othello.Start() {
		t.Errorf("Replay(0) should return the opening")
	}

	_, n, err = Replay(path, 99)
	if err != nil || n != 3 {
		t.Errorf("Replay(99) = (%d, %v), want (3, nil)", n, err)
	}
}

func TestReplayIllegalMove(t *testing.T) {
	sgf := `(;GM[2]FF[4]SZ[8]RE[?]
;B[dc];W[aa])`
	dir := t.TempDir()
	path := writeTempSGF(t, dir, "bad.sgf", sgf)

	board, n, err := ReplayToEnd(path)
	if err == nil {
		t.Fatal("Expected error for illegal move")
	}
	if !strings.Contains(err.Error(), "a1") {
		t.Errorf("error should name the move: %v", err)
	}
	if n != 1 {
		t.Errorf("replayed %d plies before the error, want 1", n)
	}
	if board[19] != othello.Black {
		t.Error("board should hold the position before the illegal ply")
	}
}

func TestReplayIllegalPass(t *testing.T) {
	sgf := `(;GM[2]FF[4]SZ[8]RE[?]
;B[])`
	dir := t.TempDir()
	path := writeTempSGF(t, dir, "pass.sgf", sgf)

	if _, _, err := ReplayToEnd(path); err == nil {
		t.Fatal("Expected error for a pass with legal moves available")
	}
}

func TestListGames(t *testing.T) {
	dir := t.TempDir()

	writeTempSGF(t, dir, "2026-01-10_100000_aaaa.sgf", `(;GM[2]FF[4]SZ[8]PB[P]PW[E]DT[2026-01-10]RE[?])`)
	writeTempSGF(t, dir, "2026-01-11_100000_bbbb.sgf", `(;GM[2]FF[4]SZ[8]PB[P]PW[E]DT[2026-01-11]RE[B+6])`)
	writeTempSGF(t, dir, "2026-01-12_100000_cccc.sgf", `(;GM[2]FF[4]SZ[8]PB[P]PW[E]DT[2026-01-12]RE[W+2])`)

	// Skipped: not an sgf, and a Go record
	os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("not an sgf"), 0644)
	writeTempSGF(t, dir, "2026-01-13_100000_go.sgf", `(;GM[1]FF[4]SZ[19]DT[2026-01-13])`)

	games, err := ListGames(dir)
	if err != nil {
		t.Fatalf("ListGames: %v", err)
	}

	if len(games) != 3 {
		t.Fatalf("len(games) = %d, want 3", len(games))
	}

	// Should be newest-first
	for i, want := range []string{"2026-01-12", "2026-01-11", "2026-01-10"} {
		if games[i].Date != want {
			t.Errorf("games[%d].Date = %q, want %s", i, games[i].Date, want)
		}
	}
	if games[0].Result != "W+2" {
		t.Errorf("games[0].Result = %q, want W+2", games[0].Result)
	}
}

func TestListGamesEmptyDir(t *testing.T) {
	dir := t.TempDir()
	games, err := ListGames(dir)
	if err != nil {
		t.Fatalf("ListGames: %v", err)
	}
	if len(games) != 0 {
		t.Errorf("len(games) = %d, want 0", len(games))
	}
}

func TestListGamesNonexistentDir(t *testing.T) {
	games, err := ListGames("/nonexistent/dir")
	if err != nil {
		t.Fatalf("ListGames should not error for nonexistent dir: %v", err)
	}
	if games != nil {
		t.Errorf("games should be nil for nonexistent dir")
	}
}

func TestWriterThenReader(t *testing.T) {
	dir := t.TempDir()

	rec, err := NewGameRecord(dir, 1, 3)
	if err != nil {
		t.Fatalf("NewGameRecord: %v", err)
	}

	rec.AddMove(3, 2, 1) // d3
	rec.AddMove(2, 2, 2) // c3
	rec.AddMove(2, 3, 1) // c4
	rec.SetResult("Black wins 5-2")
	rec.Close()

	info, err := ParseHeader(rec.FilePath)
	if err != nil {
		t.Fatalf("ParseHeader: %v", err)
	}
	if info.Result != "B+3" {
		t.Errorf("Result = %q, want B+3", info.Result)
	}
	if info.MoveCount != 3 {
		t.Errorf("MoveCount = %d, want 3", info.MoveCount)
	}
	if info.GameID != rec.GameID {
		t.Errorf("GameID = %q, want %q", info.GameID, rec.GameID)
	}

	board, moveCount, err := ReplayToEnd(rec.FilePath)
	if err != nil {
		t.Fatalf("ReplayToEnd: %v", err)
	}
	if moveCount != 3 {
		t.Errorf("moveCount = %d, want 3", moveCount)
	}
	if black, white := othello.Tally(&board); black != 5 || white != 2 {
		t.Errorf("Tally = (%d, %d), want (5, 2)", black, white)
	}
}
