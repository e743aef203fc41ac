package sgf

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Hopman/rothello/othello"
)

// GameInfo holds metadata parsed from an SGF file header.
type GameInfo struct {
	FilePath    string
	FileName    string
	GameID      string
	PlayerBlack string
	PlayerWhite string
	Date        string
	Result      string
	MoveCount   int
}

// Entry is one recorded ply: color 1=black, 2=white, and X, Y = -1 for a pass.
type Entry struct {
	Color int
	X, Y  int
}

// Pass reports whether the entry is a pass.
func (e Entry) Pass() bool {
	return e.X == -1 && e.Y == -1
}

// ParseHeader reads an SGF file and extracts metadata from the root node.
func ParseHeader(filePath string) (*GameInfo, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	content := string(data)
	props := parseProperties(content)
	if gm, ok := props["GM"]; ok && gm != "2" {
		return nil, fmt.Errorf("%s: not an Othello record (GM[%s])", filepath.Base(filePath), gm)
	}

	info := &GameInfo{
		FilePath:    filePath,
		FileName:    filepath.Base(filePath),
		GameID:      props["GN"],
		PlayerBlack: props["PB"],
		PlayerWhite: props["PW"],
		Date:        props["DT"],
		Result:      props["RE"],
		MoveCount:   countMoves(content),
	}

	return info, nil
}

// ReplayToEnd parses an SGF file and replays every move to produce the final position.
func ReplayToEnd(filePath string) (othello.Board, int, error) {
	return Replay(filePath, -1)
}

// Replay replays the first n plies of an SGF file through the rules engine, or all of
// them when n < 0. Each move must be legal for the recorded color and each pass must
// be forced; otherwise an error naming the offending ply is returned.
func Replay(filePath string, n int) (othello.Board, int, error) {
	board := othello.Start()

	entries, err := ParseMovesAsEntries(filePath)
	if err != nil {
		return board, 0, err
	}
	if n < 0 || n > len(entries) {
		n = len(entries)
	}

	for i, e := range entries[:n] {
		color := othello.Color(e.Color)
		if e.Pass() {
			if othello.HasMoves(&board, color) {
				return board, i, fmt.Errorf("ply %d: %s passed with legal moves available", i+1, color)
			}
			continue
		}
		if e.X < 0 || e.X >= othello.Size || e.Y < 0 || e.Y >= othello.Size {
			return board, i, fmt.Errorf("ply %d: coordinate (%d, %d) off the board", i+1, e.X, e.Y)
		}
		cell := e.Y*othello.Size + e.X
		m, ok := othello.MoveAt(&board, color, cell)
		if !ok {
			return board, i, fmt.Errorf("ply %d: illegal move %s for %s", i+1, othello.Notation(cell), color)
		}
		othello.Apply(&board, m, color)
	}

	return board, n, nil
}

// ParseMovesAsEntries returns all recorded plies in order.
func ParseMovesAsEntries(filePath string) ([]Entry, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}
	nodes := parseNodes(string(data))
	var result []Entry
	for _, node := range nodes {
		color, x, y, ok := parseMoveNode(node)
		if !ok {
			continue
		}
		result = append(result, Entry{Color: color, X: x, Y: y})
	}
	return result, nil
}

// parseProperties extracts KEY[value] pairs from the root node of an SGF string.
func parseProperties(content string) map[string]string {
	props := make(map[string]string)

	// Find the root node: starts after "(;"
	start := strings.Index(content, "(;")
	if start == -1 {
		return props
	}
	start += 2 // skip "(;"

	// Root node ends at the next ";" or ")"
	end := len(content)
	for i := start; i < len(content); i++ {
		if content[i] == ';' || content[i] == ')' {
			end = i
			break
		}
	}

	extractProps(content[start:end], props)
	return props
}

// extractProps parses KEY[value] pairs from a node string into the map.
func extractProps(node string, props map[string]string) {
	i := 0
	for i < len(node) {
		for i < len(node) && (node[i] == ' ' || node[i] == '\n' || node[i] == '\r' || node[i] == '\t') {
			i++
		}
		if i >= len(node) {
			break
		}

		// Read property identifier (uppercase letters)
		keyStart := i
		for i < len(node) && node[i] >= 'A' && node[i] <= 'Z' {
			i++
		}
		if i == keyStart {
			i++
			continue
		}
		key := node[keyStart:i]

		for i < len(node) && node[i] == '[' {
			i++ // skip '['
			valStart := i
			for i < len(node) && node[i] != ']' {
				if node[i] == '\\' && i+1 < len(node) {
					i++ // skip escaped char
				}
				i++
			}
			val := node[valStart:i]
			if i < len(node) {
				i++ // skip ']'
			}
			props[key] = val // last value wins
		}
	}
}

// countMoves counts the number of move nodes (;B[...] or ;W[...]) in the SGF.
func countMoves(content string) int {
	count := 0
	for i := 0; i+2 < len(content); i++ {
		if content[i] == ';' && (content[i+1] == 'B' || content[i+1] == 'W') && content[i+2] == '[' {
			count++
		}
	}
	return count
}

// skipValue advances past a bracketed value starting at content[i] == '['.
func skipValue(content string, i int) int {
	i++
	for i < len(content) && content[i] != ']' {
		if content[i] == '\\' && i+1 < len(content) {
			i++
		}
		i++
	}
	return i
}

// parseNodes returns all node strings after the root node.
func parseNodes(content string) []string {
	var nodes []string

	start := strings.Index(content, "(;")
	if start == -1 {
		return nodes
	}

	// Skip the root node
	i := start + 2
	for i < len(content) && content[i] != ';' {
		if content[i] == '[' {
			i = skipValue(content, i)
		}
		i++
	}

	for i < len(content) {
		if content[i] != ';' {
			i++
			continue
		}
		nodeStart := i
		i++
		for i < len(content) && content[i] != ';' && content[i] != ')' {
			if content[i] == '[' {
				i = skipValue(content, i)
			}
			i++
		}
		nodes = append(nodes, content[nodeStart:i])
	}

	return nodes
}

// parseMoveNode extracts color and coordinates from a move node like ";B[dc]".
// Returns color (1=black, 2=white), x, y, and whether it's a valid move node.
// Pass moves return x=-1, y=-1.
func parseMoveNode(node string) (color, x, y int, ok bool) {
	node = strings.TrimSpace(node)
	if len(node) < 2 || node[0] != ';' {
		return 0, 0, 0, false
	}

	switch node[1] {
	case 'B':
		color = 1
	case 'W':
		color = 2
	default:
		return 0, 0, 0, false
	}

	bracketStart := strings.Index(node, "[")
	bracketEnd := strings.Index(node, "]")
	if bracketStart == -1 || bracketEnd == -1 || bracketEnd <= bracketStart {
		return 0, 0, 0, false
	}

	coord := node[bracketStart+1 : bracketEnd]
	if coord == "" || coord == "tt" {
		return color, -1, -1, true
	}

	if len(coord) != 2 {
		return 0, 0, 0, false
	}

	x = int(coord[0] - 'a')
	y = int(coord[1] - 'a')
	return color, x, y, true
}

// ListGames scans a directory for .sgf files and returns their parsed headers,
// sorted newest-first (by filename, which contains timestamps).
func ListGames(dir string) ([]GameInfo, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read history dir: %w", err)
	}

	var games []GameInfo
	for i := len(entries) - 1; i >= 0; i-- {
		e := entries[i]
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".sgf") {
			continue
		}
		info, err := ParseHeader(filepath.Join(dir, e.Name()))
		if err != nil {
			continue
		}
		games = append(games, *info)
	}

	return games, nil
}
