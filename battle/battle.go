// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package battle is BitCell's CA battle engine (§4.2): it places two
// gliders on a fresh toroidal grid, evolves them for a fixed step budget,
// and decides a winner from the regional energy left around each spawn.
package battle

import (
	"sort"

	"github.com/luxfi/bitcell/config"
	"github.com/luxfi/bitcell/grid"
)

// Outcome is the result of one Battle.Simulate call. The three outcomes
// partition every possible result; there is no "draw" distinct from Tie.
type Outcome int

const (
	AWins Outcome = iota
	BWins
	Tie
)

func (o Outcome) String() string {
	switch o {
	case AWins:
		return "AWins"
	case BWins:
		return "BWins"
	case Tie:
		return "Tie"
	default:
		return "Unknown"
	}
}

// Battle is a single pairing: two gliders, a step budget, and the grid
// geometry they play out on.
type Battle struct {
	GridSize int
	Window   int
	Steps    int
	GliderA  grid.Glider
	GliderB  grid.Glider
}

// New builds a Battle at the canonical spawn positions (§3): A at
// (S/4, S/2), B at (3S/4, S/2), chosen so the initial patterns cannot
// overlap and have room to propagate before interacting.
func New(cfg *config.Config, gliderA, gliderB grid.Glider) Battle {
	s := cfg.GridSize
	gliderA.Origin = grid.Position{X: s / 4, Y: s / 2}
	gliderB.Origin = grid.Position{X: 3 * s / 4, Y: s / 2}
	return Battle{
		GridSize: s,
		Window:   cfg.RegionalWindow,
		Steps:    cfg.BattleSteps,
		GliderA:  gliderA,
		GliderB:  gliderB,
	}
}

// WithSteps returns a copy of b with a different step budget, letting
// callers override the configured default (e.g. steps = 0 to probe
// placement, per §8's boundary-behavior scenario).
func (b Battle) WithSteps(steps int) Battle {
	b.Steps = steps
	return b
}

// Simulate runs the battle to completion and returns the Outcome together
// with the final grid, for callers (e.g. the tournament orchestrator) that
// want to inspect or snapshot it. Simulate is pure and deterministic: the
// same Battle value always produces the same Outcome.
func (b Battle) Simulate() (Outcome, *grid.Grid) {
	g := grid.New(b.GridSize)
	b.GliderA.Stamp(g)
	b.GliderB.Stamp(g)

	evolved := grid.EvolveN(g, b.Steps)

	energyA := evolved.TotalEnergy(b.GliderA.Origin, b.Window)
	energyB := evolved.TotalEnergy(b.GliderB.Origin, b.Window)

	switch {
	case energyA > energyB:
		return AWins, evolved
	case energyB > energyA:
		return BWins, evolved
	default:
		return Tie, evolved
	}
}

// GridStates returns the grid at each requested step, computed
// incrementally (steps are sorted once, then the gap between consecutive
// samples is evolved) so that sampling many steps never re-runs the
// simulation from zero. The return order matches the input order; any
// requested step exceeding b.Steps is skipped rather than erroring.
func (b Battle) GridStates(sampleSteps []int) []*grid.Grid {
	type sample struct {
		index int
		step  int
	}

	ordered := make([]sample, 0, len(sampleSteps))
	for i, s := range sampleSteps {
		if s >= 0 && s <= b.Steps {
			ordered = append(ordered, sample{index: i, step: s})
		}
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].step < ordered[j].step })

	g := grid.New(b.GridSize)
	b.GliderA.Stamp(g)
	b.GliderB.Stamp(g)

	byIndex := make(map[int]*grid.Grid, len(ordered))
	current := 0
	for _, s := range ordered {
		if s.step > current {
			g = grid.EvolveN(g, s.step-current)
			current = s.step
		}
		byIndex[s.index] = g.Clone()
	}

	out := make([]*grid.Grid, 0, len(ordered))
	for i := range sampleSteps {
		if gg, ok := byIndex[i]; ok {
			out = append(out, gg)
		}
	}
	return out
}
