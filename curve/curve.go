// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package curve is the small shared Ristretto255 helper both the ring
// signature (ringsig) and VRF (vrf) packages build on: scalar/point
// generation, canonical encoding, and the hash-to-scalar and
// hash-to-point constructions the spec leaves as an open implementation
// choice (§9) while pinning the group to Ristretto255 (§3, §9).
//
// Ristretto255 and the Merlin transcript it is bound through are both
// already present in this lineage's dependency graph; the spec's design
// notes recommend exactly this combination ("a well-reviewed CLSAG/MLSAG
// scheme on Ristretto255").
package curve

import (
	"crypto/rand"
	"crypto/sha512"
	"errors"
	"io"

	"github.com/gtank/merlin"
	"github.com/gtank/ristretto255"
	"github.com/zeebo/blake3"
)

// ErrMalformedPoint is returned when a byte string does not decode to a
// valid Ristretto255 element.
var ErrMalformedPoint = errors.New("curve: malformed point encoding")

// ErrMalformedScalar is returned when a byte string does not decode to a
// canonical Ristretto255 scalar.
var ErrMalformedScalar = errors.New("curve: malformed scalar encoding")

// Scalar and Point are the two Ristretto255 primitives every component in
// this package family operates on.
type Scalar = ristretto255.Scalar
type Point = ristretto255.Element

// NewScalar and NewPoint forward to the underlying library's constructors
// so callers never import gtank/ristretto255 directly.
func NewScalar() *Scalar { return ristretto255.NewScalar() }
func NewPoint() *Point   { return ristretto255.NewElement() }

// RandomScalar returns a uniformly random scalar, read from rand.Reader by
// default — callers needing determinism (tests) pass their own io.Reader.
func RandomScalar(rnd io.Reader) (*Scalar, error) {
	if rnd == nil {
		rnd = rand.Reader
	}
	var wide [64]byte
	if _, err := io.ReadFull(rnd, wide[:]); err != nil {
		return nil, err
	}
	return NewScalar().SetUniformBytes(wide[:]), nil
}

// ScalarBaseMult returns s*G, the public key corresponding to secret
// scalar s.
func ScalarBaseMult(s *Scalar) *Point {
	return NewPoint().ScalarBaseMult(s)
}

// DecodePoint decodes a 32-byte compressed Ristretto255 point.
func DecodePoint(b []byte) (*Point, error) {
	p := NewPoint()
	if err := p.Decode(b); err != nil {
		return nil, ErrMalformedPoint
	}
	return p, nil
}

// DecodeScalar decodes a 32-byte canonical Ristretto255 scalar.
func DecodeScalar(b []byte) (*Scalar, error) {
	s := NewScalar()
	if _, err := s.SetCanonicalBytes(b); err != nil {
		return nil, ErrMalformedScalar
	}
	return s, nil
}

// HashToScalar reduces an arbitrary message into a scalar via wide SHA-512
// reduction — the standard Ristretto255 hash-to-scalar construction,
// matching the canonical-serialization hash family named in spec §6.
func HashToScalar(parts ...[]byte) *Scalar {
	h := sha512.New()
	for _, p := range parts {
		h.Write(p)
	}
	return NewScalar().SetUniformBytes(h.Sum(nil))
}

// HashToPoint is BitCell's H_p: the key-image hash-to-curve function
// (§3, §4.3). The spec's design notes (§9) leave this construction's exact
// hardness an open question; this implementation personalizes a blake3
// XOF (already in this lineage's dependency graph) with a domain string
// and widens its output to the 64 bytes Ristretto255's Elligator map
// needs for uniform-looking output.
func HashToPoint(domain string, data []byte) *Point {
	h := blake3.New()
	h.Write([]byte(domain))
	h.Write(data)
	wide := make([]byte, 64)
	xof := h.Digest()
	_, _ = io.ReadFull(xof, wide)
	return NewPoint().SetUniformBytes(wide)
}

// NewTranscript returns a fresh Merlin transcript under the given label,
// used by both ringsig and vrf to bind their Fiat-Shamir challenges to
// every public input instead of hashing a flat byte concatenation.
func NewTranscript(label string) *merlin.Transcript {
	return merlin.NewTranscript(label)
}

// ChallengeScalar draws a challenge scalar from a transcript, following
// the merlin convention of widening the transcript's output to the 64
// bytes a uniform scalar reduction needs.
func ChallengeScalar(t *merlin.Transcript, label string) *Scalar {
	wide := t.ExtractBytes([]byte(label), 64)
	return NewScalar().SetUniformBytes(wide)
}
