// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ringsig

import "github.com/luxfi/bitcell/curve"

// Verify checks that sig closes the ring equation for ring and msg: every
// link's recomputed challenge matches the next stored challenge, all the
// way around the cycle. Verify never learns which member signed.
func Verify(sig Signature, ring Ring, msg []byte) error {
	n := len(ring.members)
	if n == 0 {
		return ErrEmptyRing
	}
	if len(sig.C) != n || len(sig.S) != n {
		return ErrArityMismatch
	}
	if sig.RingHash != ring.Hash() {
		return ErrVerificationFailed
	}

	points := make([]*curve.Point, n)
	hp := make([]*curve.Point, n)
	for i, m := range ring.members {
		p, err := curve.DecodePoint(m[:])
		if err != nil {
			return ErrMalformedPoint
		}
		points[i] = p
		hp[i] = hashPointFor(m)
	}

	I, err := curve.DecodePoint(sig.KeyImage[:])
	if err != nil {
		return ErrMalformedPoint
	}

	c := make([]*curve.Scalar, n)
	s := make([]*curve.Scalar, n)
	for i := 0; i < n; i++ {
		cs, err := curve.DecodeScalar(sig.C[i][:])
		if err != nil {
			return ErrMalformedPoint
		}
		ss, err := curve.DecodeScalar(sig.S[i][:])
		if err != nil {
			return ErrMalformedPoint
		}
		c[i] = cs
		s[i] = ss
	}

	ringHash := ring.Hash()
	for i := 0; i < n; i++ {
		L := curve.NewPoint().ScalarBaseMult(s[i])
		L.Add(L, curve.NewPoint().ScalarMult(c[i], points[i]))

		R := curve.NewPoint().ScalarMult(s[i], hp[i])
		R.Add(R, curve.NewPoint().ScalarMult(c[i], I))

		next := (i + 1) % n
		expected := challenge(ringHash, msg, i, L, R)
		if expected.Equal(c[next]) != 1 {
			return ErrVerificationFailed
		}
	}
	return nil
}
