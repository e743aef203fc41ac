package search

import "github.com/Hopman/rothello/othello"

// Position describes one explored ply for the heuristic.
type Position struct {
	Board    *othello.Board // board after the move
	Move     othello.Move   // move that produced the board
	Mover    othello.Color  // side that played Move
	Searcher othello.Color  // side the search is choosing a move for
	Ply      int            // 1 for root moves, 2 for their replies, ...
}

// EvalFunc scores a position; positive favors the searching side.
type EvalFunc func(pos Position) int

// Evaluate is the heuristic driven by p: disk difference for the searching side,
// a corner adjustment signed by who took the corner, an optional wipe-out bonus
// and an optional polynomial discount on deeper plies.
func Evaluate(p Params, pos Position) int {
	own := othello.Count(pos.Board, pos.Searcher)
	opp := othello.Count(pos.Board, pos.Searcher.Opponent())
	score := own - opp

	sign := 1
	if pos.Mover != pos.Searcher {
		sign = -1
	}
	if othello.IsCorner(pos.Move.Cell) {
		score += sign * p.CornerBonus
	}

	if p.ZeroDiskBonus != 0 {
		switch {
		case opp == 0:
			score += p.ZeroDiskBonus
		case own == 0:
			score -= p.ZeroDiskBonus
		}
	}

	if p.DepthExponent > 0 && pos.Ply > 1 {
		score /= pow(pos.Ply, p.DepthExponent)
	}
	return score
}

func pow(base, exp int) int {
	r := 1
	for i := 0; i < exp; i++ {
		r *= base
	}
	return r
}
