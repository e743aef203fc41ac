// Package search picks moves for the bot with a full-width, depth-bounded tree search.
//
// Every root move is explored on its own goroutine with a private copy of the board.
// Below the root the search is sequential and materialises the whole tree: there is no
// pruning and nothing is cached between calls.
package search

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"lukechampine.com/frand"

	"github.com/Hopman/rothello/othello"
)

// ErrTaskFailed is returned when a root task dies before producing its subtree.
var ErrTaskFailed = errors.New("search task failed")

// Node is one explored position. Score aggregates the node's own ply score and
// the scores of all its children.
type Node struct {
	Move     othello.Move
	Score    int
	Children []*Node
}

// Size returns the number of nodes in the subtree rooted at n.
func (n *Node) Size() int {
	size := 1
	for _, c := range n.Children {
		size += c.Size()
	}
	return size
}

// Searcher holds the search configuration. The zero value is not usable;
// set Params at least.
type Searcher struct {
	Params Params
	Log    *zap.SugaredLogger
	Eval   EvalFunc    // nil uses Evaluate with Params
	Coin   func() bool // nil uses a cryptographically seeded coin
}

// New returns a searcher using the built-in heuristic.
func New(p Params, log *zap.SugaredLogger) *Searcher {
	return &Searcher{Params: p, Log: log}
}

// SelectMove returns the best move for player on b. ok is false when the player
// has no legal move and must pass.
func (s *Searcher) SelectMove(b othello.Board, player othello.Player) (move othello.Move, ok bool, err error) {
	move, ok, _, err = s.Analyze(b, player)
	return move, ok, err
}

// Analyze is SelectMove that also hands back the scored tree it chose from.
// root is nil when the corner shortcut decided the move without searching.
func (s *Searcher) Analyze(b othello.Board, player othello.Player) (move othello.Move, ok bool, root *Node, err error) {
	if s.Params.CornerShortcut {
		for _, m := range othello.LegalMoves(&b, player.Color) {
			if othello.IsCorner(m.Cell) {
				s.logger().Debugw("corner shortcut", "player", player.Color, "move", othello.Notation(m.Cell))
				return m, true, nil, nil
			}
		}
	}

	root, err = s.Search(b, player)
	if err != nil {
		return othello.Move{}, false, nil, err
	}
	best := s.pick(root.Children)
	if best == nil {
		return othello.Move{}, false, root, nil
	}
	return best.Move, true, root, nil
}

// Search builds and scores the full tree for player on b. The root's children
// are the legal moves in enumeration order.
func (s *Searcher) Search(b othello.Board, player othello.Player) (*Node, error) {
	if err := s.Params.Validate(); err != nil {
		return nil, fmt.Errorf("invalid search params: %w", err)
	}
	me := player.Color
	start := time.Now()
	root := &Node{Move: othello.Move{Cell: -1}}

	moves := othello.LegalMoves(&b, me)
	if len(moves) == 0 {
		s.logger().Debugw("no legal move", "player", me)
		return root, nil
	}

	results := make([]*Node, len(moves))
	var g errgroup.Group
	if s.Params.Workers > 0 {
		g.SetLimit(s.Params.Workers)
	}
	for i, m := range moves {
		i, m := i, m
		board := b.Clone()
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("%w: root move %s: %v", ErrTaskFailed, othello.Notation(m.Cell), r)
				}
			}()
			othello.Apply(&board, m, me)
			node := &Node{Move: m, Score: s.evaluate(Position{Board: &board, Move: m, Mover: me, Searcher: me, Ply: 1})}
			results[i] = s.recurse(&board, me.Opponent(), me, 1, node)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.logger().Errorw("search failed", "player", me, "error", err)
		return nil, err
	}

	root.Children = results
	for _, c := range results {
		root.Score += c.Score
	}

	if log := s.logger(); log.Desugar().Core().Enabled(zap.DebugLevel) {
		scores := make([]string, len(results))
		for i, c := range results {
			scores[i] = fmt.Sprintf("%s=%d", othello.Notation(c.Move.Cell), c.Score)
		}
		log.Debugw("search complete",
			"player", me,
			"depth", s.Params.Depth,
			"candidates", scores,
			"nodes", root.Size(),
			"elapsed", time.Since(start),
		)
	}
	return root, nil
}

// recurse expands node, whose move left toMove to play on b at the given depth.
func (s *Searcher) recurse(b *othello.Board, toMove, me othello.Color, depth int, node *Node) *Node {
	if depth > s.Params.Depth {
		return node
	}
	moves := othello.LegalMoves(b, toMove)
	if len(moves) == 0 {
		return node
	}

	node.Children = make([]*Node, 0, len(moves))
	for _, m := range moves {
		next := b.Clone()
		othello.Apply(&next, m, toMove)
		child := &Node{
			Move:  m,
			Score: s.evaluate(Position{Board: &next, Move: m, Mover: toMove, Searcher: me, Ply: depth + 1}),
		}
		node.Children = append(node.Children, s.recurse(&next, toMove.Opponent(), me, depth+1, child))
	}

	for _, c := range node.Children {
		node.Score += c.Score
	}
	return node
}

// pick returns the child with the greatest score, applying the tie-break policy.
func (s *Searcher) pick(children []*Node) *Node {
	var best *Node
	for _, c := range children {
		switch {
		case best == nil || c.Score > best.Score:
			best = c
		case c.Score == best.Score && s.Params.TieBreak == TieBreakRandom && s.flip():
			best = c
		}
	}
	return best
}

func (s *Searcher) evaluate(pos Position) int {
	if s.Eval != nil {
		return s.Eval(pos)
	}
	return Evaluate(s.Params, pos)
}

func (s *Searcher) flip() bool {
	if s.Coin != nil {
		return s.Coin()
	}
	return frand.Intn(2) == 0
}

func (s *Searcher) logger() *zap.SugaredLogger {
	if s.Log == nil {
		return zap.NewNop().Sugar()
	}
	return s.Log
}
