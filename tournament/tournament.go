// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package tournament is BitCell's central orchestrator (§4.6): the
// commit -> reveal -> battle -> elect state machine that turns one
// round's eligible miner set and VRF outputs into a single winner,
// while emitting the evidence that feeds back into next round's
// eligibility filter.
package tournament

import (
	"bytes"
	"errors"
	"sort"

	luxlog "github.com/luxfi/log"

	"github.com/luxfi/bitcell/battle"
	"github.com/luxfi/bitcell/config"
	"github.com/luxfi/bitcell/grid"
	"github.com/luxfi/bitcell/keyimage"
	bitlog "github.com/luxfi/bitcell/log"
	"github.com/luxfi/bitcell/metrics"
	"github.com/luxfi/bitcell/ringsig"
	"github.com/luxfi/bitcell/vrf"
)

// Phase is the orchestrator's current position in its one-way state
// machine. Every round passes through these phases in order; there is
// no going back.
type Phase int

const (
	Idle Phase = iota
	CommitPhase
	RevealPhase
	BattlePhase
	Finished
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "Idle"
	case CommitPhase:
		return "Commit"
	case RevealPhase:
		return "Reveal"
	case BattlePhase:
		return "Battle"
	case Finished:
		return "Finished"
	default:
		return "Unknown"
	}
}

var (
	ErrPhaseMismatch     = errors.New("tournament: operation not valid in current phase")
	ErrUnknownRing       = errors.New("tournament: ring does not match this round's eligible set")
	ErrInvalidSignature  = errors.New("tournament: ring signature failed verification")
	ErrDuplicateKeyImage = errors.New("tournament: key image already used this round")
	ErrUnmatchedReveal   = errors.New("tournament: no commitment matches this reveal")
	ErrUnknownRingMember = errors.New("tournament: public key is not a member of this round's eligible set")
	ErrNoParticipants    = errors.New("tournament: no miners revealed; round is empty")
)

// Commitment is a single miner's anonymous commitment to a glider, bound
// to the round's eligible ring through its ring signature.
type Commitment struct {
	Hash [32]byte
	Sig  ringsig.Signature
}

// Reveal opens one miner's prior commitment, naming the glider and
// nonce that hash to it.
type Reveal struct {
	Glider      grid.Glider
	Nonce       []byte
	MinerPubKey ringsig.PublicKey
}

// BattleResult is one bracket pairing's outcome, kept for the caller to
// build ZK-battle-proof obligations from.
type BattleResult struct {
	Round   int
	A, B    ringsig.PublicKey
	Outcome battle.Outcome
	Winner  ringsig.PublicKey
}

// EvidenceUpdate is one (miner, evidence kind) pair the orchestrator
// attributes during a round. The caller applies these against its own
// reputation.Engine; the orchestrator never mutates trust state itself.
type EvidenceUpdate struct {
	Miner ringsig.PublicKey
	Type  config.EvidenceType
}

type storedCommitment struct {
	hash     [32]byte
	keyImage ringsig.KeyImage
	revealed bool
}

// Tournament is one round's live state: a handle returned by BeginRound
// and threaded through every subsequent call.
type Tournament struct {
	cfg    *config.Config
	height uint64
	ring   ringsig.Ring
	seed   [32]byte

	phase Phase

	keyImages *keyimage.Registry

	commitmentsByImage map[ringsig.KeyImage]*storedCommitment
	commitmentsByHash  map[[32]byte]*storedCommitment
	doubleCommitImages map[ringsig.KeyImage]bool

	reveals map[ringsig.PublicKey]Reveal

	evidence []EvidenceUpdate
	results  []BattleResult
	winner   *ringsig.PublicKey

	log     luxlog.Logger
	metrics *metrics.Tournament
}

// BeginRound starts a new round at height for the given eligible set,
// deriving the round's VRF seed from vrfOutputs and entering the Commit
// phase immediately (§4.6: Idle --begin--> Commit is not separately
// observable).
func BeginRound(cfg *config.Config, height uint64, eligible []ringsig.PublicKey, vrfOutputs []vrf.Output, logger luxlog.Logger, m *metrics.Tournament) (*Tournament, error) {
	ring, err := ringsig.NewRing(eligible, cfg.MinRingSize, cfg.MaxRingSize)
	if err != nil {
		return nil, err
	}
	seed, err := vrf.CombineSeed(cfg.SeedDomain, orderSeedOutputs(eligible, vrfOutputs))
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = bitlog.NoLog{}
	}

	t := &Tournament{
		cfg:                cfg,
		height:             height,
		ring:               ring,
		seed:               seed,
		phase:              CommitPhase,
		keyImages:          keyimage.New(nil),
		commitmentsByImage: make(map[ringsig.KeyImage]*storedCommitment),
		commitmentsByHash:  make(map[[32]byte]*storedCommitment),
		doubleCommitImages: make(map[ringsig.KeyImage]bool),
		reveals:            make(map[ringsig.PublicKey]Reveal),
		log:                logger,
		metrics:            m,
	}
	return t, nil
}

// orderSeedOutputs reorders vrfOutputs (indexed the same as eligible) into
// the canonical public-key ordering ringsig.NewRing itself sorts the
// eligible set into, since vrf.CombineSeed hashes strictly in call order
// (§4.7) and the seed must not depend on the arbitrary order the caller
// happened to collect eligible/vrfOutputs in.
func orderSeedOutputs(eligible []ringsig.PublicKey, vrfOutputs []vrf.Output) []vrf.Output {
	if len(eligible) != len(vrfOutputs) {
		return vrfOutputs
	}
	idx := make([]int, len(eligible))
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(a, b int) bool {
		return bytes.Compare(eligible[idx[a]][:], eligible[idx[b]][:]) < 0
	})
	ordered := make([]vrf.Output, len(vrfOutputs))
	for i, j := range idx {
		ordered[i] = vrfOutputs[j]
	}
	return ordered
}

// Phase reports the round's current phase.
func (t *Tournament) Phase() Phase { return t.phase }

// Ring returns the round's canonicalized eligible set.
func (t *Tournament) Ring() ringsig.Ring { return t.ring }

// EmitEvidence drains and returns every evidence update accumulated so
// far. Callers typically call this once, after RunBattles, and apply
// the result transactionally against their reputation.Engine.
func (t *Tournament) EmitEvidence() []EvidenceUpdate {
	out := t.evidence
	t.evidence = nil
	return out
}

func (t *Tournament) emit(miner ringsig.PublicKey, ev config.EvidenceType) {
	t.evidence = append(t.evidence, EvidenceUpdate{Miner: miner, Type: ev})
}
