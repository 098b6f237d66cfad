// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package tournament

import (
	"errors"

	"github.com/luxfi/bitcell/keyimage"
	"github.com/luxfi/bitcell/ringsig"
)

// SubmitCommitment ingests one miner's anonymous commitment (§4.6 Commit
// phase). A double-commit (the same key image used twice in one round)
// is rejected and its key image is flagged; no evidence is emitted yet.
// DoubleCommit evidence is charged to a specific public key later, if
// that signer reveals the commitment stored under the flagged image.
func (t *Tournament) SubmitCommitment(c Commitment) error {
	if t.phase != CommitPhase {
		return ErrPhaseMismatch
	}
	if c.Sig.RingHash != t.ring.Hash() {
		if t.metrics != nil {
			t.metrics.CommitsRejected.Inc()
		}
		return ErrUnknownRing
	}
	if err := ringsig.Verify(c.Sig, t.ring, c.Hash[:]); err != nil {
		if t.metrics != nil {
			t.metrics.CommitsRejected.Inc()
		}
		return ErrInvalidSignature
	}

	img := c.Sig.KeyImage
	if err := t.keyImages.CheckAndMark(img); err != nil {
		if errors.Is(err, keyimage.ErrAlreadyUsed) {
			t.doubleCommitImages[img] = true
			if t.metrics != nil {
				t.metrics.CommitsRejected.Inc()
				t.metrics.DoubleCommits.Inc()
			}
			t.log.Warn("double commit detected", "height", t.height)
			return ErrDuplicateKeyImage
		}
		return err
	}

	sc := &storedCommitment{hash: c.Hash, keyImage: img}
	t.commitmentsByImage[img] = sc
	t.commitmentsByHash[c.Hash] = sc

	if t.metrics != nil {
		t.metrics.CommitsAccepted.Inc()
	}
	return nil
}

// AdvanceToReveal closes the Commit phase; no further commitments are
// accepted after this call.
func (t *Tournament) AdvanceToReveal() error {
	if t.phase != CommitPhase {
		return ErrPhaseMismatch
	}
	t.phase = RevealPhase
	return nil
}
