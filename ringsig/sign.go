// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ringsig

import (
	"encoding/binary"

	"github.com/luxfi/bitcell/curve"
)

// challenge binds a ring-equation link to the ring's identity, the signed
// message, and the index of the link being closed, through a Merlin
// transcript rather than a flat hash concatenation.
func challenge(ringHash [32]byte, msg []byte, idx int, L, R *curve.Point) *curve.Scalar {
	t := curve.NewTranscript("BITCELL_RINGSIG_V1")
	t.AppendMessage([]byte("ring"), ringHash[:])
	t.AppendMessage([]byte("msg"), msg)

	var idxBytes [8]byte
	binary.LittleEndian.PutUint64(idxBytes[:], uint64(idx))
	t.AppendMessage([]byte("idx"), idxBytes[:])

	t.AppendMessage([]byte("L"), L.Encode(nil))
	t.AppendMessage([]byte("R"), R.Encode(nil))
	return curve.ChallengeScalar(t, "c")
}

func hashPointFor(pk PublicKey) *curve.Point {
	return curve.HashToPoint(hPointDomain, pk[:])
}

// Sign produces a linkable ring signature over msg binding sk's holder to
// ring, without revealing which member signed (§4.3). Sign returns
// ErrSignerNotInRing if sk's public key is not a member of ring.
func Sign(sk SecretKey, ring Ring, msg []byte) (Signature, error) {
	x, err := curve.DecodeScalar(sk[:])
	if err != nil {
		return Signature{}, ErrMalformedPoint
	}

	var pk PublicKey
	copy(pk[:], curve.ScalarBaseMult(x).Encode(nil))

	pi, ok := ring.indexOf(pk)
	if !ok {
		return Signature{}, ErrSignerNotInRing
	}

	n := len(ring.members)
	hp := make([]*curve.Point, n)
	points := make([]*curve.Point, n)
	for i, m := range ring.members {
		p, err := curve.DecodePoint(m[:])
		if err != nil {
			return Signature{}, ErrMalformedPoint
		}
		points[i] = p
		hp[i] = hashPointFor(m)
	}

	Hp := hp[pi]
	I := curve.NewPoint().ScalarMult(x, Hp)

	c := make([]*curve.Scalar, n)
	s := make([]*curve.Scalar, n)

	for j := range s {
		if j == pi {
			continue
		}
		rs, err := curve.RandomScalar(nil)
		if err != nil {
			return Signature{}, err
		}
		s[j] = rs
	}

	u, err := curve.RandomScalar(nil)
	if err != nil {
		return Signature{}, err
	}

	ringHash := ring.Hash()
	L0 := curve.ScalarBaseMult(u)
	R0 := curve.NewPoint().ScalarMult(u, Hp)
	c[(pi+1)%n] = challenge(ringHash, msg, pi, L0, R0)

	j := (pi + 1) % n
	for k := 0; k < n-1; k++ {
		L := curve.NewPoint().ScalarBaseMult(s[j])
		L.Add(L, curve.NewPoint().ScalarMult(c[j], points[j]))

		R := curve.NewPoint().ScalarMult(s[j], hp[j])
		R.Add(R, curve.NewPoint().ScalarMult(c[j], I))

		next := (j + 1) % n
		c[next] = challenge(ringHash, msg, j, L, R)
		j = next
	}

	// s[pi] closes the ring: u - c[pi]*x.
	cx := curve.NewScalar().Multiply(c[pi], x)
	s[pi] = curve.NewScalar().Subtract(u, cx)

	sig := Signature{RingHash: ringHash, C: make([][32]byte, n), S: make([][32]byte, n)}
	var img KeyImage
	copy(img[:], I.Encode(nil))
	sig.KeyImage = img
	for i := 0; i < n; i++ {
		copy(sig.C[i][:], c[i].Encode(nil))
		copy(sig.S[i][:], s[i].Encode(nil))
	}
	return sig, nil
}
