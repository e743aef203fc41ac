package search

import (
	"fmt"
	"strings"
)

// TieBreak decides between root moves with exactly equal scores.
type TieBreak int

const (
	// TieBreakFirst keeps the first best move in enumeration order.
	TieBreakFirst TieBreak = iota
	// TieBreakRandom flips a coin each time a later move equals the current best.
	TieBreakRandom
)

func (t TieBreak) String() string {
	switch t {
	case TieBreakFirst:
		return "first"
	case TieBreakRandom:
		return "random"
	}
	return fmt.Sprintf("TieBreak(%d)", int(t))
}

// ParseTieBreak converts "first" or "random" to a TieBreak.
func ParseTieBreak(s string) (TieBreak, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "first":
		return TieBreakFirst, nil
	case "random", "coin":
		return TieBreakRandom, nil
	}
	return TieBreakFirst, fmt.Errorf("unknown tie-break policy %q", s)
}

// MaxDepthExponent bounds the depth discount polynomial.
const MaxDepthExponent = 4

// Params holds the tunable constants of the search.
type Params struct {
	Depth          int      // plies explored below each root move
	CornerBonus    int      // added when the bot takes a corner, subtracted for the opponent
	DepthExponent  int      // ply scores are divided by ply^DepthExponent; 0 disables
	ZeroDiskBonus  int      // added when the opponent is wiped out, subtracted when the bot is
	TieBreak       TieBreak // policy for equal root scores
	CornerShortcut bool     // play a legal root corner without searching
	Workers        int      // concurrent root tasks; 0 runs one task per root move
}

// DefaultParams returns the parameters the bot plays with out of the box.
func DefaultParams() Params {
	return Params{
		Depth:       3,
		CornerBonus: 2500,
		TieBreak:    TieBreakFirst,
	}
}

// Validate checks that the parameters describe a runnable search.
func (p Params) Validate() error {
	if p.Depth < 0 {
		return fmt.Errorf("depth must not be negative, got %d", p.Depth)
	}
	if p.DepthExponent < 0 || p.DepthExponent > MaxDepthExponent {
		return fmt.Errorf("depth exponent must be within 0..%d, got %d", MaxDepthExponent, p.DepthExponent)
	}
	if p.TieBreak != TieBreakFirst && p.TieBreak != TieBreakRandom {
		return fmt.Errorf("unknown tie-break policy %v", p.TieBreak)
	}
	if p.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", p.Workers)
	}
	return nil
}
