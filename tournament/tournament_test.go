// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package tournament

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/bitcell/config"
	"github.com/luxfi/bitcell/curve"
	"github.com/luxfi/bitcell/grid"
	"github.com/luxfi/bitcell/ringsig"
	"github.com/luxfi/bitcell/vrf"
)

// ringFloor is the smallest eligible-set size every test fixture must
// meet: config.LocalConfig requires at least 11 anonymity-set members.
const ringFloor = 11

type minerFixture struct {
	sk    ringsig.SecretKey
	pk    ringsig.PublicKey
	vrfSK vrf.SecretKey
	vrfPK vrf.PublicKey
}

func newMiner(t *testing.T) minerFixture {
	t.Helper()
	x, err := curve.RandomScalar(nil)
	require.NoError(t, err)

	var sk ringsig.SecretKey
	copy(sk[:], x.Encode(nil))
	pk, _, err := ringsig.KeyPair(sk)
	require.NoError(t, err)

	var vsk vrf.SecretKey
	copy(vsk[:], sk[:])
	var vpk vrf.PublicKey
	copy(vpk[:], pk[:])

	return minerFixture{sk: sk, pk: pk, vrfSK: vsk, vrfPK: vpk}
}

func newMinerSet(t *testing.T, n int) ([]minerFixture, []ringsig.PublicKey, []vrf.Output) {
	t.Helper()
	miners := make([]minerFixture, n)
	eligible := make([]ringsig.PublicKey, n)
	outputs := make([]vrf.Output, n)
	for i := range miners {
		miners[i] = newMiner(t)
		eligible[i] = miners[i].pk
		out, _, err := vrf.Prove(miners[i].vrfSK, []byte("round seed"))
		require.NoError(t, err)
		outputs[i] = out
	}
	return miners, eligible, outputs
}

func testCfg(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.NewBuilder().FromPreset(config.LocalNetwork).Build()
	require.NoError(t, err)
	return cfg
}

func buildCommitment(t *testing.T, m minerFixture, ring ringsig.Ring, glider grid.Glider, nonce []byte) Commitment {
	t.Helper()
	h := CommitmentHash(glider, nonce)
	sig, err := ringsig.Sign(m.sk, ring, h[:])
	require.NoError(t, err)
	return Commitment{Hash: h, Sig: sig}
}

func TestFullRoundHappyPath(t *testing.T) {
	require := require.New(t)
	cfg := testCfg(t)

	miners, eligible, outputs := newMinerSet(t, ringFloor)

	tour, err := BeginRound(cfg, 1, eligible, outputs, nil, nil)
	require.NoError(err)
	require.Equal(CommitPhase, tour.Phase())

	patterns := []grid.PatternID{grid.Standard, grid.Lightweight, grid.Middleweight, grid.Heavyweight}
	gliders := make([]grid.Glider, len(miners))
	nonces := make([][]byte, len(miners))
	for i := range miners {
		gliders[i] = grid.Glider{Pattern: patterns[i%len(patterns)], Energy: uint8(10 - i%5)}
		nonces[i] = []byte{byte(i), byte(i + 1)}
		c := buildCommitment(t, miners[i], tour.Ring(), gliders[i], nonces[i])
		require.NoError(tour.SubmitCommitment(c))
	}

	require.NoError(tour.AdvanceToReveal())
	require.Equal(RevealPhase, tour.Phase())

	for i := range miners {
		err := tour.SubmitReveal(Reveal{Glider: gliders[i], Nonce: nonces[i], MinerPubKey: miners[i].pk})
		require.NoError(err)
	}

	require.NoError(tour.AdvanceToBattle())
	require.Equal(BattlePhase, tour.Phase())

	winner, err := tour.RunBattles()
	require.NoError(err)
	require.Equal(Finished, tour.Phase())
	require.NotEqual(ringsig.PublicKey{}, winner)
	require.NotEmpty(tour.Results())

	evidence := tour.EmitEvidence()
	wonRounds := 0
	for _, e := range evidence {
		if e.Type == config.WonRound {
			wonRounds++
			require.Equal(winner, e.Miner)
		}
	}
	require.Equal(1, wonRounds)
}

func TestDoubleCommitDetectedAndAttributedOnReveal(t *testing.T) {
	require := require.New(t)
	cfg := testCfg(t)

	miners, eligible, outputs := newMinerSet(t, ringFloor)

	tour, err := BeginRound(cfg, 5, eligible, outputs, nil, nil)
	require.NoError(err)

	glider := grid.Glider{Pattern: grid.Standard, Energy: 5}
	nonce1 := []byte("nonce-one")
	nonce2 := []byte("nonce-two")

	c1 := buildCommitment(t, miners[0], tour.Ring(), glider, nonce1)
	require.NoError(tour.SubmitCommitment(c1))

	c2 := buildCommitment(t, miners[0], tour.Ring(), glider, nonce2)
	err = tour.SubmitCommitment(c2)
	require.ErrorIs(err, ErrDuplicateKeyImage)

	for i := 1; i < len(miners); i++ {
		c := buildCommitment(t, miners[i], tour.Ring(), glider, []byte{byte(i)})
		require.NoError(tour.SubmitCommitment(c))
	}

	require.NoError(tour.AdvanceToReveal())

	// miners[0] reveals its FIRST commitment — the one that was
	// successfully marked, not the rejected duplicate.
	require.NoError(tour.SubmitReveal(Reveal{Glider: glider, Nonce: nonce1, MinerPubKey: miners[0].pk}))
	for i := 1; i < len(miners); i++ {
		require.NoError(tour.SubmitReveal(Reveal{Glider: glider, Nonce: []byte{byte(i)}, MinerPubKey: miners[i].pk}))
	}

	evidence := tour.EmitEvidence()
	doubleCommits := 0
	for _, e := range evidence {
		if e.Type == config.DoubleCommit {
			doubleCommits++
			require.Equal(miners[0].pk, e.Miner)
		}
	}
	require.Equal(1, doubleCommits)

	require.NoError(tour.AdvanceToBattle())
	_, err = tour.RunBattles()
	require.NoError(err)
}

func TestUnmatchedRevealEmitsNoMatchingCommitEvidence(t *testing.T) {
	require := require.New(t)
	cfg := testCfg(t)

	miners, eligible, outputs := newMinerSet(t, ringFloor)

	tour, err := BeginRound(cfg, 9, eligible, outputs, nil, nil)
	require.NoError(err)
	require.NoError(tour.AdvanceToReveal())

	err = tour.SubmitReveal(Reveal{
		Glider:      grid.Glider{Pattern: grid.Standard, Energy: 1},
		Nonce:       []byte("never committed"),
		MinerPubKey: miners[0].pk,
	})
	require.ErrorIs(err, ErrUnmatchedReveal)

	evidence := tour.EmitEvidence()
	require.Len(evidence, 1)
	require.Equal(config.NoMatchingCommit, evidence[0].Type)
	require.Equal(miners[0].pk, evidence[0].Miner)
}

func TestNoRevealPunishesWholeRing(t *testing.T) {
	require := require.New(t)
	cfg := testCfg(t)

	miners, eligible, outputs := newMinerSet(t, ringFloor)

	tour, err := BeginRound(cfg, 20, eligible, outputs, nil, nil)
	require.NoError(err)

	glider := grid.Glider{Pattern: grid.Standard, Energy: 3}
	nonce := []byte("solo commit")
	c := buildCommitment(t, miners[0], tour.Ring(), glider, nonce)
	require.NoError(tour.SubmitCommitment(c))

	require.NoError(tour.AdvanceToReveal())
	// Nobody reveals.
	require.NoError(tour.AdvanceToBattle())

	evidence := tour.EmitEvidence()
	noReveals := 0
	for _, e := range evidence {
		if e.Type == config.NoReveal {
			noReveals++
		}
	}
	require.Equal(len(miners), noReveals)

	_, err = tour.RunBattles()
	require.ErrorIs(err, ErrNoParticipants)
}

func TestPhaseMismatchRejectsOutOfOrderCalls(t *testing.T) {
	require := require.New(t)
	cfg := testCfg(t)

	miners, eligible, outputs := newMinerSet(t, ringFloor)
	m := miners[0]

	tour, err := BeginRound(cfg, 1, eligible, outputs, nil, nil)
	require.NoError(err)

	require.ErrorIs(tour.SubmitReveal(Reveal{MinerPubKey: m.pk}), ErrPhaseMismatch)
	_, err = tour.RunBattles()
	require.ErrorIs(err, ErrPhaseMismatch)
}
