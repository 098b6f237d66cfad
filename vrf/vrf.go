// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package vrf implements BitCell's tournament-seed VRF (§4.7): a
// Schnorr-style verifiable random function on Ristretto255, proven via a
// discrete-log-equality proof between the signer's public key and the
// VRF output point, sharing its group and transcript machinery with
// ringsig through the curve package.
package vrf

import (
	"crypto/sha256"
	"crypto/sha512"
	"errors"

	"github.com/luxfi/bitcell/curve"
)

var (
	ErrMalformedInput      = errors.New("vrf: malformed key or proof encoding")
	ErrVerificationFailed  = errors.New("vrf: proof does not verify")
	ErrNoOutputsToCombine  = errors.New("vrf: no outputs to combine")
)

const hPointDomain = "BITCELL_VRF_HP"

// SecretKey and PublicKey mirror ringsig's encodings so a participant's
// ring-signature identity and VRF identity can share one key pair.
type SecretKey [32]byte
type PublicKey [32]byte

// Output is the 32-byte pseudorandom value a Proof attests to.
type Output [32]byte

// Proof is a non-interactive discrete-log-equality proof binding a VRF
// Output to a PublicKey and message without revealing the secret scalar.
type Proof struct {
	Gamma [32]byte
	C     [32]byte
	S     [32]byte
}

func hashToInputPoint(msg []byte) *curve.Point {
	return curve.HashToPoint(hPointDomain, msg)
}

func dleqChallenge(P, H, Gamma, U, V *curve.Point) *curve.Scalar {
	t := curve.NewTranscript("BITCELL_VRF_V1")
	t.AppendMessage([]byte("P"), P.Encode(nil))
	t.AppendMessage([]byte("H"), H.Encode(nil))
	t.AppendMessage([]byte("Gamma"), Gamma.Encode(nil))
	t.AppendMessage([]byte("U"), U.Encode(nil))
	t.AppendMessage([]byte("V"), V.Encode(nil))
	return curve.ChallengeScalar(t, "c")
}

// Prove derives the VRF output for msg under sk, together with a proof
// that Output was honestly derived from sk's public key.
func Prove(sk SecretKey, msg []byte) (Output, Proof, error) {
	x, err := curve.DecodeScalar(sk[:])
	if err != nil {
		return Output{}, Proof{}, ErrMalformedInput
	}
	P := curve.ScalarBaseMult(x)
	H := hashToInputPoint(msg)
	Gamma := curve.NewPoint().ScalarMult(x, H)

	k, err := curve.RandomScalar(nil)
	if err != nil {
		return Output{}, Proof{}, err
	}
	U := curve.ScalarBaseMult(k)
	V := curve.NewPoint().ScalarMult(k, H)

	c := dleqChallenge(P, H, Gamma, U, V)
	cx := curve.NewScalar().Multiply(c, x)
	s := curve.NewScalar().Subtract(k, cx)

	var proof Proof
	copy(proof.Gamma[:], Gamma.Encode(nil))
	copy(proof.C[:], c.Encode(nil))
	copy(proof.S[:], s.Encode(nil))

	return gammaToOutput(Gamma), proof, nil
}

func gammaToOutput(Gamma *curve.Point) Output {
	h := sha512.Sum512(Gamma.Encode(nil))
	var out Output
	copy(out[:], h[:32])
	return out
}

// Verify checks that proof attests output for msg under pk, returning the
// recovered Output on success so callers never need a second, separate
// recomputation of it.
func Verify(pk PublicKey, msg []byte, proof Proof) (Output, error) {
	P, err := curve.DecodePoint(pk[:])
	if err != nil {
		return Output{}, ErrMalformedInput
	}
	Gamma, err := curve.DecodePoint(proof.Gamma[:])
	if err != nil {
		return Output{}, ErrMalformedInput
	}
	c, err := curve.DecodeScalar(proof.C[:])
	if err != nil {
		return Output{}, ErrMalformedInput
	}
	s, err := curve.DecodeScalar(proof.S[:])
	if err != nil {
		return Output{}, ErrMalformedInput
	}

	H := hashToInputPoint(msg)

	U := curve.ScalarBaseMult(s)
	U.Add(U, curve.NewPoint().ScalarMult(c, P))

	V := curve.NewPoint().ScalarMult(s, H)
	V.Add(V, curve.NewPoint().ScalarMult(c, Gamma))

	expected := dleqChallenge(P, H, Gamma, U, V)
	if expected.Equal(c) != 1 {
		return Output{}, ErrVerificationFailed
	}
	return gammaToOutput(Gamma), nil
}

// CombineSeed folds a set of VRF outputs (one per eligible miner) into a
// single 32-byte SHA-256 tournament seed, domain-separated by domain (the
// network's configured `SeedDomain`). Combination is order-*dependent*
// by design (§4.7): outputs are hashed in exactly the order given, so it
// is the caller's responsibility to order them by the canonical key
// ordering of the eligible set before calling CombineSeed.
func CombineSeed(domain string, outputs []Output) ([32]byte, error) {
	if len(outputs) == 0 {
		return [32]byte{}, ErrNoOutputsToCombine
	}

	h := sha256.New()
	h.Write([]byte(domain))
	for _, o := range outputs {
		h.Write(o[:])
	}
	sum := h.Sum(nil)
	var seed [32]byte
	copy(seed[:], sum[:32])
	return seed, nil
}
