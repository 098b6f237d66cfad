// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package sampler

import (
	"math/rand"

	"gonum.org/v1/gonum/mathext/prng"
)

// mt19937Source wraps gonum's MT19937 so it can back a math/rand.Rand,
// giving the deterministic sampler a named, version-stable algorithm
// instead of the unspecified default math/rand source: the bracket
// shuffle's seed must reproduce identically for every observer forever,
// not just across one Go toolchain release.
type mt19937Source struct {
	mt *prng.MT19937
}

func newMT19937Source(seed int64) rand.Source64 {
	mt := prng.NewMT19937()
	mt.Seed(uint64(seed))
	return &mt19937Source{mt: mt}
}

// Uint64 returns the next raw 64-bit output.
func (m *mt19937Source) Uint64() uint64 {
	return m.mt.Uint64()
}

// Int63 narrows Uint64 to the 63 bits math/rand.Source expects.
func (m *mt19937Source) Int63() int64 {
	return int64(m.mt.Uint64() >> 1)
}

// Seed reseeds the underlying generator.
func (m *mt19937Source) Seed(seed int64) {
	m.mt.Seed(uint64(seed))
}
