// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package reputation tracks each miner's subjective-logic trust opinion
// (§4.5) and the temporary-ban window equivocation evidence opens up: a
// belief/disbelief/uncertainty triple derived from accumulated evidence
// weights, projected into a single trust scalar that gates tournament
// eligibility.
package reputation

import (
	"sync"

	"github.com/montanaflynn/stats"

	"github.com/luxfi/bitcell/config"
	"github.com/luxfi/bitcell/metrics"
	"github.com/luxfi/bitcell/ringsig"
	safemath "github.com/luxfi/bitcell/utils/math"
)

// Opinion is a subjective-logic opinion: belief, disbelief and
// uncertainty always sum to 1.
type Opinion struct {
	Belief      float64
	Disbelief   float64
	Uncertainty float64
}

// Project returns the opinion's single-scalar trust projection,
// b + a*u, the quantity eligibility and kill thresholds are compared
// against.
func (o Opinion) Project(baseRate float64) float64 {
	return o.Belief + baseRate*o.Uncertainty
}

type minerState struct {
	positive    float64
	negative    float64
	bannedUntil uint64
	killed      bool
}

// triggersBan reports whether an evidence kind opens a temporary-ban
// window on its own, independent of the miner's accumulated trust —
// grounded on the idea that equivocation is punished immediately rather
// than waiting for the running trust average to cross a threshold.
func triggersBan(ev config.EvidenceType) bool {
	switch ev {
	case config.DoubleCommit, config.EquivocatingVote:
		return true
	default:
		return false
	}
}

// Engine is the tournament-wide reputation ledger, one state machine per
// miner, guarded by a single lock since evidence is emitted serially by
// the orchestrator at block boundaries.
type Engine struct {
	cfg *config.Config

	lock   sync.RWMutex
	miners map[ringsig.PublicKey]*minerState
	// history is a stack of per-block snapshots, enabling Rollback to
	// undo evidence applied by blocks that get reorged out.
	history []map[ringsig.PublicKey]minerState
}

// NewEngine returns an Engine configured with cfg's evidence rules and
// thresholds.
func NewEngine(cfg *config.Config) *Engine {
	return &Engine{cfg: cfg, miners: make(map[ringsig.PublicKey]*minerState)}
}

func (e *Engine) stateFor(miner ringsig.PublicKey) *minerState {
	s, ok := e.miners[miner]
	if !ok {
		s = &minerState{}
		e.miners[miner] = s
	}
	return s
}

// RecordEvidence applies one evidence event to miner at the given block
// height, updating its belief/disbelief accumulators and, for evidence
// kinds that trigger one, its temporary-ban window.
func (e *Engine) RecordEvidence(miner ringsig.PublicKey, ev config.EvidenceType, height uint64) error {
	rule, ok := e.cfg.EvidenceRules[ev]
	if !ok {
		return ErrUnknownEvidenceType
	}

	e.lock.Lock()
	defer e.lock.Unlock()

	s := e.stateFor(miner)
	switch rule.Polarity {
	case config.Positive:
		s.positive += rule.Weight
	case config.Negative:
		s.negative += rule.Weight
	}

	if triggersBan(ev) {
		until, err := safemath.Add64(height, e.cfg.BanWindow)
		if err != nil {
			until = height
		}
		if until > s.bannedUntil {
			s.bannedUntil = until
		}
	}

	if e.projectLocked(s) < e.cfg.TrustKill {
		s.killed = true
	}
	return nil
}

func (e *Engine) projectLocked(s *minerState) float64 {
	total := s.positive + s.negative + e.cfg.PriorWeight
	op := Opinion{
		Belief:      s.positive / total,
		Disbelief:   s.negative / total,
		Uncertainty: e.cfg.PriorWeight / total,
	}
	return op.Project(e.cfg.BaseRate)
}

// Opinion returns miner's current subjective-logic opinion. An
// unobserved miner gets the uninformative prior: belief 0, disbelief 0,
// uncertainty 1.
func (e *Engine) Opinion(miner ringsig.PublicKey) Opinion {
	e.lock.RLock()
	defer e.lock.RUnlock()

	s, ok := e.miners[miner]
	if !ok {
		return Opinion{Uncertainty: 1}
	}
	total := s.positive + s.negative + e.cfg.PriorWeight
	return Opinion{
		Belief:      s.positive / total,
		Disbelief:   s.negative / total,
		Uncertainty: e.cfg.PriorWeight / total,
	}
}

// Trust returns miner's projected trust scalar.
func (e *Engine) Trust(miner ringsig.PublicKey) float64 {
	return e.Opinion(miner).Project(e.cfg.BaseRate)
}

// IsKilled reports whether miner has ever crossed the permanent-ban
// threshold. Once killed, a miner never becomes eligible again even if
// later evidence would raise its trust back above TrustKill.
func (e *Engine) IsKilled(miner ringsig.PublicKey) bool {
	e.lock.RLock()
	defer e.lock.RUnlock()
	s, ok := e.miners[miner]
	return ok && s.killed
}

// IsWarning reports whether miner's trust sits at or above the
// permanent-kill threshold but below the eligibility threshold: not
// killed, but not eligible on trust alone either.
func (e *Engine) IsWarning(miner ringsig.PublicKey) bool {
	trust := e.Trust(miner)
	return trust >= e.cfg.TrustKill && trust < e.cfg.TrustMin
}

// IsEligible reports whether miner may participate in the round starting
// at height: not killed, its ban window (if any) has elapsed, and its
// trust meets the eligibility threshold.
func (e *Engine) IsEligible(miner ringsig.PublicKey, height uint64) bool {
	e.lock.RLock()
	s, ok := e.miners[miner]
	banned := ok && height < s.bannedUntil
	killed := ok && s.killed
	e.lock.RUnlock()

	if killed || banned {
		return false
	}
	return e.Trust(miner) >= e.cfg.TrustMin
}

// PublishTrustMean computes the mean projected trust across every miner
// the engine has ever observed and sets m's TrustMean gauge. Call this
// once per round after evidence has been applied, since it is otherwise
// unobservable from outside the engine.
func (e *Engine) PublishTrustMean(m *metrics.Tournament) {
	if m == nil {
		return
	}
	e.lock.RLock()
	defer e.lock.RUnlock()

	if len(e.miners) == 0 {
		m.TrustMean.Set(0)
		return
	}
	trusts := make(stats.Float64Data, 0, len(e.miners))
	for _, s := range e.miners {
		trusts = append(trusts, e.projectLocked(s))
	}
	mean, err := trusts.Mean()
	if err != nil {
		return
	}
	m.TrustMean.Set(mean)
}

// Snapshot records the engine's current state so a later Rollback can
// undo every RecordEvidence call made since, used when a block carrying
// evidence is reorged out.
func (e *Engine) Snapshot() {
	e.lock.Lock()
	defer e.lock.Unlock()

	snap := make(map[ringsig.PublicKey]minerState, len(e.miners))
	for k, v := range e.miners {
		snap[k] = *v
	}
	e.history = append(e.history, snap)
}

// Rollback restores the engine to its state at the most recent Snapshot,
// discarding that snapshot. Rollback on an empty history is a no-op.
func (e *Engine) Rollback() {
	e.lock.Lock()
	defer e.lock.Unlock()

	if len(e.history) == 0 {
		return
	}
	snap := e.history[len(e.history)-1]
	e.history = e.history[:len(e.history)-1]

	e.miners = make(map[ringsig.PublicKey]*minerState, len(snap))
	for k, v := range snap {
		cp := v
		e.miners[k] = &cp
	}
}
