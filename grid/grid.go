// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package grid implements BitCell's toroidal cellular-automaton field: a
// square NxN array of 8-bit energy cells and the deterministic
// Conway-with-energy transition rule the battle engine evolves it under.
package grid

// Cell is one grid cell. 0 is dead; 1..255 is alive with that energy level.
type Cell = uint8

// Position is a grid coordinate. Positions are always wrapped into [0, Size)
// before use — the grid is toroidal, so there is no invalid Position.
type Position struct {
	X, Y int
}

// Grid is a square, toroidal field of Size*Size cells stored row-major.
// A Grid is exclusively owned by whatever Battle creates it; it is never
// shared across battles and never resized after construction.
type Grid struct {
	Size  int
	cells []Cell
}

// New returns a Size x Size grid with every cell dead.
func New(size int) *Grid {
	return &Grid{
		Size:  size,
		cells: make([]Cell, size*size),
	}
}

// Clone returns a deep copy of g.
func (g *Grid) Clone() *Grid {
	out := &Grid{Size: g.Size, cells: make([]Cell, len(g.cells))}
	copy(out.cells, g.cells)
	return out
}

func (g *Grid) wrap(v int) int {
	m := v % g.Size
	if m < 0 {
		m += g.Size
	}
	return m
}

func (g *Grid) index(pos Position) int {
	return g.wrap(pos.Y)*g.Size + g.wrap(pos.X)
}

// Get returns the cell at pos, wrapping pos modulo Size.
func (g *Grid) Get(pos Position) Cell {
	return g.cells[g.index(pos)]
}

// Set writes a cell at pos, wrapping pos modulo Size.
func (g *Grid) Set(pos Position, c Cell) {
	g.cells[g.index(pos)] = c
}

// mooreOffsets is the eight Moore-neighbourhood offsets around a cell.
var mooreOffsets = [8][2]int{
	{-1, -1}, {0, -1}, {1, -1},
	{-1, 0}, {1, 0},
	{-1, 1}, {0, 1}, {1, 1},
}

// neighbours returns the eight wrapped Moore-neighbour cells of pos.
func (g *Grid) neighbours(pos Position) [8]Cell {
	var out [8]Cell
	for i, off := range mooreOffsets {
		out[i] = g.Get(Position{X: pos.X + off[0], Y: pos.Y + off[1]})
	}
	return out
}

// TotalEnergy sums the energy of every cell in a wrap-aware window of side
// `window`, centered on center. Used by the battle engine's regional-energy
// verdict (§4.2).
func (g *Grid) TotalEnergy(center Position, window int) uint64 {
	half := window / 2
	var sum uint64
	for dy := -half; dy < window-half; dy++ {
		for dx := -half; dx < window-half; dx++ {
			sum += uint64(g.Get(Position{X: center.X + dx, Y: center.Y + dy}))
		}
	}
	return sum
}
