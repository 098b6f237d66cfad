// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import (
	"fmt"

	safemath "github.com/luxfi/bitcell/utils/math"
)

// Builder provides a fluent interface for constructing a Config, following
// the same accumulate-errors-then-Build() shape the rest of this lineage
// uses for its consensus parameter builders.
type Builder struct {
	config *Config
	err    error
}

// NewBuilder returns a Builder seeded with sensible production defaults.
func NewBuilder() *Builder {
	return &Builder{
		config: &Config{
			GridSize:       1024,
			BattleSteps:    1000,
			RegionalWindow: 128,
			MinRingSize:    11,
			MaxRingSize:    32,
			PriorWeight:    2,
			BaseRate:       0.4,
			TrustKill:      0.2,
			TrustMin:       0.75,
			BanWindow:      64,
			EvidenceRules:  DefaultEvidenceRules(),
			SeedDomain:     "TOURNAMENT_SEED",
		},
	}
}

// FromPreset loads one of the named presets, cloned so later mutation never
// touches the package-level preset value.
func (b *Builder) FromPreset(preset NetworkType) *Builder {
	if b.err != nil {
		return b
	}
	var preset_ Config
	switch preset {
	case MainnetNetwork:
		preset_ = MainnetConfig
	case TestnetNetwork:
		preset_ = TestnetConfig
	case LocalNetwork:
		preset_ = LocalConfig
	default:
		b.err = fmt.Errorf("unknown preset: %s", preset)
		return b
	}
	clone := preset_
	rules := make(map[EvidenceType]EvidenceRule, len(preset_.EvidenceRules))
	for k, v := range preset_.EvidenceRules {
		rules[k] = v
	}
	clone.EvidenceRules = rules
	b.config = &clone
	return b
}

// WithGridSize sets the toroidal grid side.
func (b *Builder) WithGridSize(s int) *Builder {
	if b.err != nil {
		return b
	}
	if s < 64 || s&(s-1) != 0 {
		b.err = fmt.Errorf("grid size must be a power of two >= 64, got %d", s)
		return b
	}
	b.config.GridSize = s
	b.config.RegionalWindow = safemath.Min(b.config.RegionalWindow, s)
	return b
}

// WithBattleSteps sets the default per-pairing step budget.
func (b *Builder) WithBattleSteps(n int) *Builder {
	if b.err != nil {
		return b
	}
	if n < 0 {
		b.err = fmt.Errorf("battle steps must be >= 0, got %d", n)
		return b
	}
	b.config.BattleSteps = n
	return b
}

// WithRingBounds sets the anonymity-set size bounds.
func (b *Builder) WithRingBounds(min, max int) *Builder {
	if b.err != nil {
		return b
	}
	if min < 11 {
		b.err = fmt.Errorf("MinRingSize must be >= 11, got %d", min)
		return b
	}
	if max < min {
		b.err = fmt.Errorf("MaxRingSize must be >= MinRingSize, got %d < %d", max, min)
		return b
	}
	b.config.MinRingSize = min
	b.config.MaxRingSize = max
	return b
}

// WithTrustThresholds sets t_kill and t_min (§4.5).
func (b *Builder) WithTrustThresholds(tKill, tMin float64) *Builder {
	if b.err != nil {
		return b
	}
	if tKill < 0 || tKill >= tMin || tMin > 1 {
		b.err = fmt.Errorf("thresholds must satisfy 0 <= t_kill < t_min <= 1, got t_kill=%v t_min=%v", tKill, tMin)
		return b
	}
	b.config.TrustKill = tKill
	b.config.TrustMin = tMin
	return b
}

// WithOpinionPrior sets the subjective-logic prior strength k and base rate alpha.
func (b *Builder) WithOpinionPrior(k, alpha float64) *Builder {
	if b.err != nil {
		return b
	}
	if k <= 0 {
		b.err = fmt.Errorf("prior strength k must be > 0, got %v", k)
		return b
	}
	if alpha < 0 || alpha > 1 {
		b.err = fmt.Errorf("alpha must be in [0, 1], got %v", alpha)
		return b
	}
	b.config.PriorWeight = k
	b.config.BaseRate = alpha
	return b
}

// WithEvidenceRule overrides the weight/polarity for one evidence type.
func (b *Builder) WithEvidenceRule(t EvidenceType, rule EvidenceRule) *Builder {
	if b.err != nil {
		return b
	}
	if rule.Weight <= 0 {
		b.err = fmt.Errorf("evidence weight for %s must be > 0, got %v", t, rule.Weight)
		return b
	}
	b.config.EvidenceRules[t] = rule
	return b
}

// Build validates and returns the final Config.
func (b *Builder) Build() (*Config, error) {
	if b.err != nil {
		return nil, b.err
	}
	if err := b.config.Valid(); err != nil {
		return nil, err
	}
	return b.config, nil
}
