// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuilderDefaults(t *testing.T) {
	require := require.New(t)

	cfg, err := NewBuilder().Build()
	require.NoError(err)
	require.Equal(1024, cfg.GridSize)
	require.Equal(1000, cfg.BattleSteps)
	require.Equal(11, cfg.MinRingSize)
}

func TestBuilderValidation(t *testing.T) {
	tests := []struct {
		name    string
		build   func() (*Config, error)
		wantErr bool
	}{
		{
			name:    "grid size not power of two",
			build:   func() (*Config, error) { return NewBuilder().WithGridSize(100).Build() },
			wantErr: true,
		},
		{
			name:    "ring too small",
			build:   func() (*Config, error) { return NewBuilder().WithRingBounds(5, 20).Build() },
			wantErr: true,
		},
		{
			name:    "max below min",
			build:   func() (*Config, error) { return NewBuilder().WithRingBounds(16, 12).Build() },
			wantErr: true,
		},
		{
			name:    "thresholds out of order",
			build:   func() (*Config, error) { return NewBuilder().WithTrustThresholds(0.8, 0.5).Build() },
			wantErr: true,
		},
		{
			name:    "valid overrides",
			build:   func() (*Config, error) { return NewBuilder().WithGridSize(4096).WithRingBounds(16, 64).Build() },
			wantErr: false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require := require.New(t)
			_, err := tc.build()
			if tc.wantErr {
				require.Error(err)
			} else {
				require.NoError(err)
			}
		})
	}
}

func TestPresetsAreValid(t *testing.T) {
	require := require.New(t)
	for _, preset := range []Config{MainnetConfig, TestnetConfig, LocalConfig} {
		p := preset
		require.NoError(p.Valid())
	}
}

func TestFromPresetClones(t *testing.T) {
	require := require.New(t)

	cfg, err := NewBuilder().FromPreset(LocalNetwork).WithBattleSteps(5).Build()
	require.NoError(err)
	require.Equal(5, cfg.BattleSteps)
	require.Equal(100, LocalConfig.BattleSteps)
}
