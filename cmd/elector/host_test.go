// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/infrablockchain/elector/election"
	"github.com/infrablockchain/elector/election/votes"
	"github.com/infrablockchain/elector/eventdb"
	"github.com/infrablockchain/elector/genesis"
	"github.com/infrablockchain/elector/infra"
	"github.com/infrablockchain/elector/lvldb"
)

var (
	s1    = infra.BytesToAddress([]byte("s1"))
	s2    = infra.BytesToAddress([]byte("s2"))
	s3    = infra.BytesToAddress([]byte("s3"))
	candA = infra.BytesToAddress([]byte("A"))
	candB = infra.BytesToAddress([]byte("B"))
)

func testGenesis(t *testing.T, total uint32) *genesis.Genesis {
	gene, err := genesis.NewCustomNet("test", &election.GenesisConfig{
		SeedTrustValidators:         []infra.Address{s1, s2, s3},
		TotalNumberOfValidators:     total,
		NumberOfSeedTrustValidators: 2,
		SessionsPerEra:              2,
	})
	require.NoError(t, err)
	return gene
}

func newTestDBs(t *testing.T) (*lvldb.LevelDB, *eventdb.EventDB) {
	mainDB, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { mainDB.Close() })
	eventDB, err := eventdb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { eventDB.Close() })
	return mainDB, eventDB
}

func runScenario(t *testing.T, h *host, scenario *genesis.Scenario) {
	progress := make(chan election.SessionIndex, scenario.Sessions)
	require.NoError(t, h.run(context.Background(), scenario, progress))
	close(progress)
	assert.Len(t, progress, int(scenario.Sessions))
}

func u64(v uint64) *uint64 { return &v }

func TestHostRun(t *testing.T) {
	mainDB, eventDB := newTestDBs(t)
	h, err := openHost(mainDB, eventDB, testGenesis(t, 2), 16, true)
	require.NoError(t, err)
	assert.Equal(t, []infra.Address{s1, s2}, h.rotator.Validators())

	all := election.PoolAll
	force := election.ForceAlways
	stranger := infra.BytesToAddress([]byte("stranger"))
	runScenario(t, h, &genesis.Scenario{
		Sessions: 6,
		Steps: []genesis.Step{
			{
				Session:               1,
				SetNumberOfValidators: &genesis.ValidatorCounts{Total: 3, SeedTrust: 2},
				SetPoolStatus:         &all,
				Votes:                 []votes.Entry{{Who: candA, Points: 10}, {Who: candB, Points: 30}},
				Transactions: []genesis.Transaction{
					{Candidate: &candA, Weight: 100, ActualWeight: u64(40)},
					{Weight: 5},
				},
			},
			{Session: 1, Origin: &stranger, SetForceEra: &force},
		},
	})

	assert.Equal(t, election.SessionIndex(6), h.rotator.Index())
	assert.Equal(t, []infra.Address{s1, s2, candB}, h.rotator.Validators())

	era, _, err := h.election.CurrentEra()
	require.NoError(t, err)
	assert.Equal(t, election.EraIndex(3), era)

	mode, err := h.election.ForceEra()
	require.NoError(t, err)
	assert.Equal(t, election.NotForcing, mode)

	w, ok, err := h.collector.VoteInfo(candA)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, uint64(40), w)

	assert.Equal(t, 2, h.members.updates)
	assert.Equal(t, []infra.Address{s1, s2, candB}, h.members.members)
	assert.Equal(t, []election.SessionIndex{0, 1, 2, 3, 4, 5}, h.rewards.distributed)
	assert.Empty(t, h.rewards.aggregated)

	ctx := context.Background()
	collected, err := eventDB.Filter(ctx, &eventdb.EventFilter{Kind: "VoteCollected"})
	require.NoError(t, err)
	require.Len(t, collected, 1)
	assert.Equal(t, uint32(1), collected[0].Session)

	elected, err := eventDB.Filter(ctx, &eventdb.EventFilter{Kind: "ValidatorsElected"})
	require.NoError(t, err)
	require.Len(t, elected, 2)
	assert.Equal(t, uint32(0), elected[0].Era)

	var buf bytes.Buffer
	require.NoError(t, listEvents(ctx, &buf, eventDB, &eventdb.EventFilter{Kind: "PotValidatorsElected"}))
	assert.Contains(t, buf.String(), "PotValidatorsElected")
	assert.Contains(t, buf.String(), candB.String())
}

func TestHostResume(t *testing.T) {
	mainDB, eventDB := newTestDBs(t)
	gene := testGenesis(t, 2)

	h, err := openHost(mainDB, eventDB, gene, 16, true)
	require.NoError(t, err)
	runScenario(t, h, &genesis.Scenario{Sessions: 3})

	// a new host picks up where the previous one stopped
	h, err = openHost(mainDB, eventDB, gene, 16, false)
	require.NoError(t, err)
	assert.Equal(t, election.SessionIndex(3), h.rotator.Index())
	assert.Equal(t, []infra.Address{s1, s2}, h.rotator.Validators())

	runScenario(t, h, &genesis.Scenario{Sessions: 2})
	assert.Equal(t, election.SessionIndex(5), h.rotator.Index())

	start, ok, err := h.election.StartSessionIndex(2)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, election.SessionIndex(4), start)
}

func TestHostResumeOnDisk(t *testing.T) {
	dir := t.TempDir()
	gene := testGenesis(t, 2)

	mainDB, eventDB := openMainDB(dir), openEventDB(dir)
	h, err := openHost(mainDB, eventDB, gene, 16, true)
	require.NoError(t, err)
	runScenario(t, h, &genesis.Scenario{Sessions: 3})
	require.NoError(t, mainDB.Close())
	require.NoError(t, eventDB.Close())

	mainDB, eventDB = openMainDB(dir), openEventDB(dir)
	defer mainDB.Close()
	defer eventDB.Close()

	h, err = openHost(mainDB, eventDB, gene, 16, false)
	require.NoError(t, err)
	assert.Equal(t, election.SessionIndex(3), h.rotator.Index())
	assert.Equal(t, []infra.Address{s1, s2}, h.rotator.Validators())

	runScenario(t, h, &genesis.Scenario{Sessions: 1})
	assert.Equal(t, election.SessionIndex(4), h.rotator.Index())
}

func TestOpenHostErrors(t *testing.T) {
	mainDB, eventDB := newTestDBs(t)

	_, err := openHost(mainDB, eventDB, testGenesis(t, 2), 16, false)
	assert.ErrorIs(t, err, errNotInitialized)

	_, err = openHost(mainDB, eventDB, testGenesis(t, 2), 16, true)
	require.NoError(t, err)

	_, err = openHost(mainDB, eventDB, testGenesis(t, 3), 16, true)
	assert.ErrorContains(t, err, "genesis mismatch")
}

func TestHostRunCanceled(t *testing.T) {
	mainDB, eventDB := newTestDBs(t)
	h, err := openHost(mainDB, eventDB, testGenesis(t, 2), 16, true)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err = h.run(ctx, &genesis.Scenario{Sessions: 3}, make(chan election.SessionIndex, 3))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, election.SessionIndex(0), h.rotator.Index())
}

func TestPrintStatus(t *testing.T) {
	mainDB, eventDB := newTestDBs(t)
	h, err := openHost(mainDB, eventDB, testGenesis(t, 2), 16, true)
	require.NoError(t, err)
	require.NoError(t, h.election.UpdateVoteStatus(candA, 12))

	var buf bytes.Buffer
	require.NoError(t, printStatus(&buf, h))
	out := buf.String()
	assert.Contains(t, out, "0 (from session 0)")
	assert.Contains(t, out, "2 total, 2 seed trust, 2 per era")
	assert.Contains(t, out, "force NotForcing, pool SeedTrust")
	assert.Contains(t, out, "1 candidates, 12 points")
	assert.Contains(t, out, s3.String())
	assert.Contains(t, out, "0 pot keys")

	n, err := h.countKeys(electionBucket)
	require.NoError(t, err)
	assert.NotZero(t, n)
}
