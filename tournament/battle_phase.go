// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package tournament

import (
	"bytes"
	"sort"

	"github.com/luxfi/bitcell/battle"
	"github.com/luxfi/bitcell/bracket"
	"github.com/luxfi/bitcell/config"
	"github.com/luxfi/bitcell/ringsig"
)

// RunBattles runs bracket rounds to elimination (§4.6 Battle phase) and
// returns the sole winner, or ErrNoParticipants if nobody revealed.
// Losers are credited ParticipatedHonestly (already emitted at
// AdvanceToBattle) and charged a small LostBattle penalty; the final
// winner is credited WonRound.
func (t *Tournament) RunBattles() (ringsig.PublicKey, error) {
	var zero ringsig.PublicKey
	if t.phase != BattlePhase {
		return zero, ErrPhaseMismatch
	}

	remaining := t.canonicalRevealedOrder()
	if len(remaining) == 0 {
		t.phase = Finished
		return zero, ErrNoParticipants
	}

	roundNum := 0
	for len(remaining) > 1 {
		round, err := bracket.Pair(remaining, t.seed)
		if err != nil {
			return zero, err
		}

		next := make([]ringsig.PublicKey, 0, len(remaining)/2+1)
		for _, m := range round.Pairings {
			winner := t.playMatchup(roundNum, m)
			next = append(next, winner)
		}
		if round.Bye != nil {
			next = append(next, *round.Bye)
		}

		remaining = next
		roundNum++
	}

	winner := remaining[0]
	t.winner = &winner
	t.emit(winner, config.WonRound)
	t.phase = Finished
	if t.metrics != nil {
		t.metrics.BracketDepth.Set(float64(roundNum))
	}
	return winner, nil
}

func (t *Tournament) playMatchup(roundNum int, m bracket.Matchup) ringsig.PublicKey {
	gliderA := t.reveals[m.A].Glider
	gliderB := t.reveals[m.B].Glider

	b := battle.New(t.cfg, gliderA, gliderB)
	outcome, _ := b.Simulate()
	if t.metrics != nil {
		t.metrics.BattlesRun.Inc()
	}

	winner, loser := m.A, m.B
	switch outcome {
	case battle.AWins:
		winner, loser = m.A, m.B
	case battle.BWins:
		winner, loser = m.B, m.A
	case battle.Tie:
		winningPattern := bracket.ResolveTie(gliderA.Pattern, gliderB.Pattern)
		if winningPattern == gliderB.Pattern && gliderA.Pattern != gliderB.Pattern {
			winner, loser = m.B, m.A
		} else {
			winner, loser = m.A, m.B
		}
	}

	t.results = append(t.results, BattleResult{Round: roundNum, A: m.A, B: m.B, Outcome: outcome, Winner: winner})
	t.emit(loser, config.LostBattle)
	return winner
}

// Results returns every BattleResult produced so far this round.
func (t *Tournament) Results() []BattleResult { return t.results }

// Winner returns the round's elected winner, if the round has finished
// and was not empty.
func (t *Tournament) Winner() *ringsig.PublicKey { return t.winner }

// canonicalRevealedOrder returns every revealed miner in ascending
// byte order of their public key, the canonical ordering §4.7 requires
// for seed combination and pairing to be observer-independent.
func (t *Tournament) canonicalRevealedOrder() []ringsig.PublicKey {
	out := make([]ringsig.PublicKey, 0, len(t.reveals))
	for miner := range t.reveals {
		out = append(out, miner)
	}
	sort.Slice(out, func(i, j int) bool {
		return bytes.Compare(out[i][:], out[j][:]) < 0
	})
	return out
}
