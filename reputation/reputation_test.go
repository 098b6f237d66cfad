// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package reputation

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/luxfi/bitcell/config"
	"github.com/luxfi/bitcell/metrics"
	"github.com/luxfi/bitcell/ringsig"
)

func testEngine(t *testing.T) *Engine {
	t.Helper()
	cfg, err := config.NewBuilder().FromPreset(config.LocalNetwork).Build()
	require.NoError(t, err)
	return NewEngine(cfg)
}

var nextTestPubKey byte

func testPubKey(t *testing.T) ringsig.PublicKey {
	t.Helper()
	nextTestPubKey++
	var pk ringsig.PublicKey
	pk[0] = nextTestPubKey
	return pk
}

func TestUnobservedMinerHasUninformativePrior(t *testing.T) {
	require := require.New(t)
	e := testEngine(t)
	miner := testPubKey(t)

	op := e.Opinion(miner)
	require.Equal(1.0, op.Uncertainty)
	require.Equal(0.0, op.Belief)
	require.False(e.IsEligible(miner, 0))
}

func TestGoodEvidenceRaisesTrust(t *testing.T) {
	require := require.New(t)
	e := testEngine(t)
	miner := testPubKey(t)

	before := e.Trust(miner)
	for i := 0; i < 20; i++ {
		require.NoError(e.RecordEvidence(miner, config.GoodBlock, uint64(i)))
	}
	require.Greater(e.Trust(miner), before)
}

func TestDoubleCommitOpensBanWindowAndLowersTrust(t *testing.T) {
	require := require.New(t)
	e := testEngine(t)
	miner := testPubKey(t)
	cfg := e.cfg

	require.NoError(e.RecordEvidence(miner, config.DoubleCommit, 100))
	require.False(e.IsEligible(miner, 100))
	require.False(e.IsEligible(miner, 100+cfg.BanWindow-1))
	require.True(e.IsEligible(miner, 100+cfg.BanWindow) || e.Trust(miner) < cfg.TrustMin)
}

func TestRepeatedSevereEvidenceKillsMiner(t *testing.T) {
	require := require.New(t)
	e := testEngine(t)
	miner := testPubKey(t)

	for i := 0; i < 10; i++ {
		require.NoError(e.RecordEvidence(miner, config.DoubleCommit, uint64(i*1000)))
	}
	require.True(e.IsKilled(miner))
	require.False(e.IsEligible(miner, 1_000_000))
}

func TestUnknownEvidenceTypeErrors(t *testing.T) {
	require := require.New(t)
	e := testEngine(t)
	miner := testPubKey(t)

	err := e.RecordEvidence(miner, config.EvidenceType("NotARealKind"), 0)
	require.ErrorIs(err, ErrUnknownEvidenceType)
}

func TestSnapshotRollbackUndoesEvidence(t *testing.T) {
	require := require.New(t)
	e := testEngine(t)
	miner := testPubKey(t)

	e.Snapshot()
	before := e.Trust(miner)
	require.NoError(e.RecordEvidence(miner, config.InvalidBlock, 5))
	require.NotEqual(before, e.Trust(miner))

	e.Rollback()
	require.Equal(before, e.Trust(miner))
}

func TestRollbackWithoutSnapshotIsNoOp(t *testing.T) {
	require := require.New(t)
	e := testEngine(t)
	miner := testPubKey(t)
	require.NoError(e.RecordEvidence(miner, config.GoodBlock, 0))
	before := e.Trust(miner)

	e.Rollback()
	require.Equal(before, e.Trust(miner))
}

func TestPublishTrustMeanReflectsObservedMiners(t *testing.T) {
	require := require.New(t)
	e := testEngine(t)
	good := testPubKey(t)
	bad := testPubKey(t)

	require.NoError(e.RecordEvidence(good, config.GoodBlock, 0))
	require.NoError(e.RecordEvidence(bad, config.InvalidBlock, 0))

	m, err := metrics.NewTournament(prometheus.NewRegistry())
	require.NoError(err)

	e.PublishTrustMean(m)
	want := (e.Trust(good) + e.Trust(bad)) / 2
	require.InDelta(want, testutil.ToFloat64(m.TrustMean), 1e-9)
}

func TestIsWarningBetweenThresholds(t *testing.T) {
	require := require.New(t)
	e := testEngine(t)
	miner := testPubKey(t)

	for i := 0; i < 2; i++ {
		require.NoError(e.RecordEvidence(miner, config.GoodBlock, uint64(i)))
	}
	if trust := e.Trust(miner); trust > e.cfg.TrustKill && trust < e.cfg.TrustMin {
		require.True(e.IsWarning(miner))
	}
}
