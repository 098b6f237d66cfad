// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/luxfi/bitcell/utils/wrappers"
)

// Tournament holds the per-round counters and gauges exposed by the
// tournament orchestrator. Construction follows the teacher's pattern of
// accepting a prometheus.Registerer rather than reaching for a global
// registry, so the core never owns process-wide metrics state.
type Tournament struct {
	CommitsAccepted prometheus.Counter
	CommitsRejected prometheus.Counter
	RevealsMatched  prometheus.Counter
	RevealsDropped  prometheus.Counter
	DoubleCommits   prometheus.Counter
	BattlesRun      prometheus.Counter
	BracketDepth    prometheus.Gauge
	TrustMean       prometheus.Gauge
}

// NewTournament registers and returns the tournament metric set.
func NewTournament(reg prometheus.Registerer) (*Tournament, error) {
	t := &Tournament{
		CommitsAccepted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bitcell_commits_accepted_total",
			Help: "Commitments accepted during the commit phase.",
		}),
		CommitsRejected: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bitcell_commits_rejected_total",
			Help: "Commitments rejected (bad signature, wrong ring, or double-commit).",
		}),
		RevealsMatched: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bitcell_reveals_matched_total",
			Help: "Reveals matched to a stored commitment.",
		}),
		RevealsDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bitcell_reveals_dropped_total",
			Help: "Reveals dropped for lacking a matching commitment.",
		}),
		DoubleCommits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bitcell_double_commits_total",
			Help: "Commitments rejected because their key image was already marked used.",
		}),
		BattlesRun: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bitcell_battles_run_total",
			Help: "Battle-engine simulations executed across all bracket rounds.",
		}),
		BracketDepth: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "bitcell_bracket_depth",
			Help: "Number of elimination rounds in the most recently completed bracket.",
		}),
		TrustMean: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "bitcell_trust_mean",
			Help: "Mean projected trust across every miner the reputation engine has observed, at the last publish.",
		}),
	}

	collectors := []prometheus.Collector{
		t.CommitsAccepted, t.CommitsRejected, t.RevealsMatched, t.RevealsDropped,
		t.DoubleCommits, t.BattlesRun, t.BracketDepth, t.TrustMean,
	}
	var errs wrappers.Errs
	for _, c := range collectors {
		errs.Add(reg.Register(c))
	}
	if errs.Errored() {
		return nil, errs.Err()
	}
	return t, nil
}
