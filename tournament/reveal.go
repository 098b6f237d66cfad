// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package tournament

import "github.com/luxfi/bitcell/config"

// SubmitReveal opens a prior commitment (§4.6 Reveal phase). A reveal
// that cannot be matched to any stored commitment is dropped and its
// claimed signer is charged NoMatchingCommit evidence directly, since an
// unmatched reveal is itself a self-identifying claim.
func (t *Tournament) SubmitReveal(r Reveal) error {
	if t.phase != RevealPhase {
		return ErrPhaseMismatch
	}
	if !t.ring.Contains(r.MinerPubKey) {
		return ErrUnknownRingMember
	}

	h := CommitmentHash(r.Glider, r.Nonce)
	sc, ok := t.commitmentsByHash[h]
	if !ok {
		t.emit(r.MinerPubKey, config.NoMatchingCommit)
		if t.metrics != nil {
			t.metrics.RevealsDropped.Inc()
		}
		return ErrUnmatchedReveal
	}

	if t.doubleCommitImages[sc.keyImage] {
		t.emit(r.MinerPubKey, config.DoubleCommit)
	}

	sc.revealed = true
	t.reveals[r.MinerPubKey] = r
	if t.metrics != nil {
		t.metrics.RevealsMatched.Inc()
	}
	return nil
}

// AdvanceToBattle closes the Reveal phase: every commitment with no
// matching reveal charges NoReveal evidence against the whole eligible
// ring (collective punishment is deliberate, §4.6), and every miner who
// did reveal is credited ParticipatedHonestly.
func (t *Tournament) AdvanceToBattle() error {
	if t.phase != RevealPhase {
		return ErrPhaseMismatch
	}

	for _, sc := range t.commitmentsByImage {
		if sc.revealed {
			continue
		}
		for _, member := range t.ring.Members() {
			t.emit(member, config.NoReveal)
		}
	}

	for miner := range t.reveals {
		t.emit(miner, config.ParticipatedHonestly)
	}

	t.phase = BattlePhase
	return nil
}
