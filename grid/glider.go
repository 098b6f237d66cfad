// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package grid

// PatternID selects one of the closed set of hard-coded glider shapes
// (§3). The set is closed: no custom patterns, no registration.
type PatternID uint8

const (
	Standard PatternID = iota
	Lightweight
	Middleweight
	Heavyweight
)

// Ordinal returns the pattern's position in its canonical ordering, used by
// the tournament's tie-break rule (§4.2, §9): the side whose glider has the
// lower ordinal advances a tied pairing.
func (p PatternID) Ordinal() int {
	return int(p)
}

func (p PatternID) String() string {
	switch p {
	case Standard:
		return "Standard"
	case Lightweight:
		return "Lightweight"
	case Middleweight:
		return "Middleweight"
	case Heavyweight:
		return "Heavyweight"
	default:
		return "Unknown"
	}
}

// shapes maps each PatternID to the (x, y) offsets of its live cells,
// relative to the pattern's top-left origin.
var shapes = map[PatternID][][2]int{
	Standard: {
		{1, 0},
		{2, 1},
		{0, 2}, {1, 2}, {2, 2},
	},
	Lightweight: {
		{1, 0}, {4, 0},
		{0, 1},
		{0, 2}, {4, 2},
		{0, 3}, {1, 3}, {2, 3}, {3, 3},
	},
	Middleweight: {
		{2, 0},
		{0, 1}, {4, 1},
		{5, 2},
		{0, 3}, {5, 3},
		{1, 4}, {2, 4}, {3, 4}, {4, 4}, {5, 4},
	},
	Heavyweight: {
		{2, 0}, {3, 0},
		{0, 1}, {5, 1},
		{6, 2},
		{0, 3}, {6, 3},
		{1, 4}, {2, 4}, {3, 4}, {4, 4}, {5, 4}, {6, 4},
	},
}

// Glider is a (pattern, origin, energy) triple: a spatial shape stamped
// onto a grid with every live cell carrying the same per-cell energy.
type Glider struct {
	Pattern PatternID
	Origin  Position
	Energy  Cell
}

// Stamp writes g's live cells onto the grid at g.Origin, each set to
// g.Energy (an Energy of 0 is stamped as 1, since 0 marks a dead cell).
// Stamping does not clear the grid first; callers stamp onto a fresh Grid.
func (g Glider) Stamp(dst *Grid) {
	energy := g.Energy
	if energy == 0 {
		energy = 1
	}
	for _, off := range shapes[g.Pattern] {
		dst.Set(Position{X: g.Origin.X + off[0], Y: g.Origin.Y + off[1]}, energy)
	}
}
