// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

// NetworkType selects one of the named presets.
type NetworkType string

const (
	MainnetNetwork NetworkType = "mainnet"
	TestnetNetwork NetworkType = "testnet"
	LocalNetwork   NetworkType = "local"
)

// Preset configurations. Mainnet runs the production grid size and step
// budget named in spec §2; Testnet shrinks the grid, and Local shrinks
// both grid and step budget, for fast iteration while keeping every
// invariant (ring bounds, thresholds) intact.
var (
	MainnetConfig = Config{
		GridSize:       4096,
		BattleSteps:    1000,
		RegionalWindow: 128,
		MinRingSize:    16,
		MaxRingSize:    64,
		PriorWeight:    2,
		BaseRate:       0.4,
		TrustKill:      0.2,
		TrustMin:       0.75,
		BanWindow:      256,
		EvidenceRules:  DefaultEvidenceRules(),
		SeedDomain:     "TOURNAMENT_SEED",
	}

	TestnetConfig = Config{
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
	}

	LocalConfig = Config{
		GridSize:       64,
		BattleSteps:    100,
		RegionalWindow: 32,
		MinRingSize:    11,
		MaxRingSize:    16,
		PriorWeight:    2,
		BaseRate:       0.4,
		TrustKill:      0.2,
		TrustMin:       0.75,
		BanWindow:      8,
		EvidenceRules:  DefaultEvidenceRules(),
		SeedDomain:     "TOURNAMENT_SEED",
	}
)
