// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package bracket tracks one tournament bracket round (§4.6): pairing
// revealed miners with a VRF-seeded deterministic shuffle so every
// observer derives the same bracket from the same seed, and resolving
// CA-pattern ties with a fixed tiebreak order.
package bracket

import (
	"encoding/binary"
	"errors"

	"github.com/luxfi/bitcell/grid"
	"github.com/luxfi/bitcell/ringsig"
	"github.com/luxfi/bitcell/utils/sampler"
)

// ErrEmptyRound is returned when Pair is asked to bracket zero miners.
var ErrEmptyRound = errors.New("bracket: no participants to pair")

// Round is the result of pairing one set of revealed miners. Gliders are
// whatever each miner revealed; bracket only decides who plays whom.
type Round struct {
	Pairings []Matchup
	// Bye is the miner who advances automatically this round because the
	// participant count was odd.
	Bye *ringsig.PublicKey
}

// Matchup is one bracket pairing.
type Matchup struct {
	A, B ringsig.PublicKey
}

// Shuffle deterministically permutes miners using seed, via a uniform
// sampler seeded from the first 8 bytes of seed. The same seed and miner
// set always produce the same order.
func Shuffle(miners []ringsig.PublicKey, seed [32]byte) []ringsig.PublicKey {
	n := len(miners)
	if n == 0 {
		return nil
	}

	s := int64(binary.LittleEndian.Uint64(seed[:8]))
	u := sampler.NewDeterministicUniform(s)
	if err := u.Initialize(n); err != nil {
		// Initialize only fails on misuse; n is always >= 1 here.
		panic(err)
	}
	idx, ok := u.Sample(n)
	if !ok {
		panic("bracket: sampler could not produce a full permutation")
	}

	out := make([]ringsig.PublicKey, n)
	for i, j := range idx {
		out[i] = miners[j]
	}
	return out
}

// Pair shuffles miners deterministically from seed and pairs them off
// sequentially; an odd participant count leaves the last shuffled miner
// with a bye.
func Pair(miners []ringsig.PublicKey, seed [32]byte) (Round, error) {
	if len(miners) == 0 {
		return Round{}, ErrEmptyRound
	}

	shuffled := Shuffle(miners, seed)

	var round Round
	i := 0
	for ; i+1 < len(shuffled); i += 2 {
		round.Pairings = append(round.Pairings, Matchup{A: shuffled[i], B: shuffled[i+1]})
	}
	if i < len(shuffled) {
		bye := shuffled[i]
		round.Bye = &bye
	}
	return round, nil
}

// ResolveTie breaks a Tie outcome between two CA patterns using the
// fixed ordinal order (§8): the lower-ordinal pattern is defined to win
// ties, giving the bracket a total order even when regional energy comes
// out exactly equal.
func ResolveTie(a, b grid.PatternID) grid.PatternID {
	if a.Ordinal() <= b.Ordinal() {
		return a
	}
	return b
}
