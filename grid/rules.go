// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package grid

import (
	"runtime"
	"sync"
)

// Evolve computes one Conway-with-energy transition step from src into a
// freshly allocated Grid. Evolve is total and side-effect-free: it never
// fails and never mutates src. Row ranges are partitioned across
// runtime.GOMAXPROCS(0) goroutines (§5, §9's row-level data-parallelism
// note); the result is bit-identical to a single-threaded reference
// regardless of how many goroutines ran it, because each row's output
// depends only on src.
func Evolve(src *Grid) *Grid {
	dst := New(src.Size)

	workers := runtime.GOMAXPROCS(0)
	if workers > src.Size {
		workers = src.Size
	}
	if workers < 1 {
		workers = 1
	}

	rowsPerWorker := (src.Size + workers - 1) / workers
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		startY := w * rowsPerWorker
		endY := startY + rowsPerWorker
		if endY > src.Size {
			endY = src.Size
		}
		if startY >= endY {
			continue
		}
		wg.Add(1)
		go func(startY, endY int) {
			defer wg.Done()
			evolveRows(src, dst, startY, endY)
		}(startY, endY)
	}
	wg.Wait()
	return dst
}

func evolveRows(src, dst *Grid, startY, endY int) {
	for y := startY; y < endY; y++ {
		for x := 0; x < src.Size; x++ {
			pos := Position{X: x, Y: y}
			dst.Set(pos, stepCell(src, pos))
		}
	}
}

// stepCell applies the transition rule (§4.1) to a single cell.
func stepCell(src *Grid, pos Position) Cell {
	current := src.Get(pos)
	neighbours := src.neighbours(pos)

	var liveCount int
	var energySum int
	for _, n := range neighbours {
		if n > 0 {
			liveCount++
			energySum += int(n)
		}
	}

	if current > 0 {
		if liveCount == 2 || liveCount == 3 {
			return current
		}
		return 0
	}

	if liveCount == 3 {
		energy := energySum / liveCount
		if energy < 1 {
			energy = 1
		}
		return Cell(energy)
	}
	return 0
}

// EvolveN applies Evolve n times, returning the final grid. n == 0 returns
// a clone of src (the degenerate "measure the initial placement" case used
// by Battle.Simulate with steps = 0).
func EvolveN(src *Grid, n int) *Grid {
	g := src
	cloned := false
	for i := 0; i < n; i++ {
		g = Evolve(g)
		cloned = true
	}
	if !cloned {
		return src.Clone()
	}
	return g
}

// Downsample returns a target x target grid where each cell holds the
// maximum energy found in the corresponding block of the source grid
// (max-pool). This is a visualization helper, not on the consensus path:
// it is never used by Battle.Simulate.
func Downsample(src *Grid, target int) *Grid {
	if target <= 0 || target > src.Size {
		target = src.Size
	}
	out := New(target)
	block := src.Size / target
	if block < 1 {
		block = 1
	}
	for ty := 0; ty < target; ty++ {
		for tx := 0; tx < target; tx++ {
			var max Cell
			for dy := 0; dy < block; dy++ {
				for dx := 0; dx < block; dx++ {
					c := src.Get(Position{X: tx*block + dx, Y: ty*block + dy})
					if c > max {
						max = c
					}
				}
			}
			out.Set(Position{X: tx, Y: ty}, max)
		}
	}
	return out
}
