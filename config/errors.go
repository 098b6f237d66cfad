// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import "errors"

var (
	ErrInvalidGridSize     = errors.New("grid side must be a power of two >= 64")
	ErrInvalidSteps        = errors.New("battle step budget must be >= 0")
	ErrInvalidWindow       = errors.New("regional energy window must be > 0 and <= grid side")
	ErrInvalidRingBounds   = errors.New("ring size bounds must satisfy MIN_RING_SIZE >= 11 and MIN <= MAX")
	ErrInvalidThresholds   = errors.New("thresholds must satisfy 0 <= t_kill < t_min <= 1")
	ErrInvalidAlpha        = errors.New("alpha must be in [0, 1]")
	ErrInvalidPriorWeight  = errors.New("prior strength k must be > 0")
	ErrInvalidEvidenceWeight = errors.New("evidence weight must be > 0")
	ErrInvalidBanWindow    = errors.New("ban window duration must be >= 0")
)
