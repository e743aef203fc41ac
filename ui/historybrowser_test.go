package ui

import (
	"testing"

	"github.com/Hopman/rothello/othello"
	"github.com/Hopman/rothello/sgf"
)

func writeRecord(t *testing.T, dir string) {
	t.Helper()
	rec, err := sgf.NewGameRecord(dir, 1, 2)
	if err != nil {
		t.Fatalf("NewGameRecord: %v", err)
	}
	defer rec.Close()
	for _, m := range [][3]int{{3, 2, 1}, {2, 2, 2}, {2, 3, 1}} { // d3 c3 c4
		if err := rec.AddMove(m[0], m[1], m[2]); err != nil {
			t.Fatalf("AddMove: %v", err)
		}
	}
}

func TestGameLabel(t *testing.T) {
	tests := []struct {
		info sgf.GameInfo
		want string
	}{
		{sgf.GameInfo{Date: "2024-05-01", MoveCount: 60, Result: "B+16"}, "2024-05-01  60 plies  B+16"},
		{sgf.GameInfo{Date: "2024-05-01", MoveCount: 3, Result: "?"}, "2024-05-01   3 plies  ..."},
		{sgf.GameInfo{Date: "2024-05-01", MoveCount: 0}, "2024-05-01   0 plies  ..."},
	}
	for _, tt := range tests {
		if got := gameLabel(tt.info); got != tt.want {
			t.Errorf("gameLabel(%+v) = %q, want %q", tt.info, got, tt.want)
		}
	}
}

func TestHistoryStepping(t *testing.T) {
	dir := t.TempDir()
	writeRecord(t, dir)

	hb := NewHistoryBrowser(dir, nil)
	if len(hb.games) != 1 {
		t.Fatalf("games = %d, want 1", len(hb.games))
	}

	board, shown, err := hb.position()
	if err != nil {
		t.Fatalf("position: %v", err)
	}
	if shown != 3 {
		t.Errorf("final position shows %d plies, want 3", shown)
	}
	if b, w := othello.Tally(&board); b != 5 || w != 2 {
		t.Errorf("final tally = %d-%d, want 5-2", b, w)
	}

	hb.step(-1)
	if _, shown, _ = hb.position(); shown != 2 {
		t.Errorf("after one step back shown = %d, want 2", shown)
	}
	for i := 0; i < 5; i++ {
		hb.step(-1)
	}
	board, shown, _ = hb.position()
	if shown != 0 || board != othello.Start() {
		t.Errorf("stepping past the start shows %d plies, want the start position", shown)
	}

	hb.step(3)
	if hb.ply != -1 {
		t.Errorf("ply = %d, want -1 (final position)", hb.ply)
	}
}

func TestHistoryEmptyDir(t *testing.T) {
	hb := NewHistoryBrowser(t.TempDir(), nil)
	if len(hb.games) != 0 {
		t.Errorf("games = %d, want 0", len(hb.games))
	}
	hb.step(1) // no panic on an empty list

	hb = NewHistoryBrowser("", nil)
	if len(hb.games) != 0 {
		t.Errorf("games = %d with recording disabled, want 0", len(hb.games))
	}
}

func TestHistoryDelete(t *testing.T) {
	dir := t.TempDir()
	writeRecord(t, dir)

	hb := NewHistoryBrowser(dir, nil)
	hb.deleteSelected()
	if len(hb.games) != 0 {
		t.Errorf("games = %d after delete, want 0", len(hb.games))
	}
	games, err := sgf.ListGames(dir)
	if err != nil || len(games) != 0 {
		t.Errorf("ListGames after delete = %v, %v", games, err)
	}
}
