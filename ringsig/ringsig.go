// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package ringsig implements BitCell's linkable ring signature (§4.3): an
// AOS-style ring signature over Ristretto255, with a key image that is
// the same for every signature produced by one secret key regardless of
// message or ring, giving the tournament orchestrator a one-to-one
// identity fingerprint without ever naming the signer.
package ringsig

import (
	"bytes"
	"crypto/sha256"
	"errors"
	"sort"

	"github.com/luxfi/bitcell/curve"
	"github.com/luxfi/bitcell/set"
)

var (
	ErrEmptyRing         = errors.New("ringsig: empty ring")
	ErrRingTooSmall      = errors.New("ringsig: ring smaller than minimum anonymity set")
	ErrRingTooLarge      = errors.New("ringsig: ring larger than maximum anonymity set")
	ErrSignerNotInRing   = errors.New("ringsig: signer's public key not in ring")
	ErrMalformedPoint    = errors.New("ringsig: malformed point in ring or signature")
	ErrVerificationFailed = errors.New("ringsig: signature does not close the ring equation")
	ErrArityMismatch     = errors.New("ringsig: |c| and |s| must both equal |ring|")
)

const hPointDomain = "BITCELL_KEY_IMAGE_HP"

// PublicKey is a compressed Ristretto255 point.
type PublicKey [32]byte

// SecretKey is a Ristretto255 scalar.
type SecretKey [32]byte

// KeyImage is the 32-byte one-to-one fingerprint of a signer's secret key
// (§3, §4.3): I = x * H_p(P). Two signatures from the same secret key
// always carry the same KeyImage; it is infeasible to link a KeyImage
// back to its public key without the secret scalar.
type KeyImage [32]byte

// KeyPair derives a Ristretto255 public key and key image from a secret
// scalar.
func KeyPair(sk SecretKey) (PublicKey, KeyImage, error) {
	x, err := curve.DecodeScalar(sk[:])
	if err != nil {
		return PublicKey{}, KeyImage{}, ErrMalformedPoint
	}
	P := curve.ScalarBaseMult(x)
	var pk PublicKey
	copy(pk[:], P.Encode(nil))

	Hp := curve.HashToPoint(hPointDomain, pk[:])
	I := curve.NewPoint().ScalarMult(x, Hp)
	var img KeyImage
	copy(img[:], I.Encode(nil))
	return pk, img, nil
}

// Ring is an immutable, canonically ordered anonymity set. Canonical order
// is ascending by compressed public-key bytes, matching the canonical
// serialization rule in spec §6 ("ring members in ascending byte order
// when hashing the ring").
type Ring struct {
	members    []PublicKey
	membership set.Set[PublicKey]
	hash       [32]byte
}

// NewRing validates and canonicalizes a set of public keys into a Ring.
// Rings are immutable after construction — signing never mutates them.
func NewRing(members []PublicKey, minSize, maxSize int) (Ring, error) {
	if len(members) == 0 {
		return Ring{}, ErrEmptyRing
	}
	if len(members) < minSize {
		return Ring{}, ErrRingTooSmall
	}
	if len(members) > maxSize {
		return Ring{}, ErrRingTooLarge
	}

	sorted := make([]PublicKey, len(members))
	copy(sorted, members)
	sort.Slice(sorted, func(i, j int) bool {
		return bytes.Compare(sorted[i][:], sorted[j][:]) < 0
	})

	h := sha256.New()
	for _, m := range sorted {
		h.Write(m[:])
	}
	var hash [32]byte
	copy(hash[:], h.Sum(nil))

	return Ring{members: sorted, membership: set.Of(sorted...), hash: hash}, nil
}

// Members returns the ring's canonically sorted public keys.
func (r Ring) Members() []PublicKey { return r.members }

// Hash returns the ring's binding hash, over its canonical member order.
func (r Ring) Hash() [32]byte { return r.hash }

// Contains reports whether pk is a member of the ring.
func (r Ring) Contains(pk PublicKey) bool {
	return r.membership.Contains(pk)
}

func (r Ring) indexOf(pk PublicKey) (int, bool) {
	for i, m := range r.members {
		if m == pk {
			return i, true
		}
	}
	return 0, false
}

// Signature is a linkable ring signature: any holder of msg and ring can
// verify ring membership, but cannot identify which member signed.
type Signature struct {
	RingHash [32]byte
	KeyImage KeyImage
	C        [][32]byte
	S        [][32]byte
}
