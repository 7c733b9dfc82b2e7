// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package election

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/infrablockchain/elector/election/votes"
	"github.com/infrablockchain/elector/infra"
	"github.com/infrablockchain/elector/kv"
	"github.com/infrablockchain/elector/lvldb"
	"github.com/infrablockchain/elector/storage"
)

var (
	seed1 = infra.BytesToAddress([]byte("seed1"))
	seed2 = infra.BytesToAddress([]byte("seed2"))
	seed3 = infra.BytesToAddress([]byte("seed3"))
	candA = infra.BytesToAddress([]byte("A"))
	candB = infra.BytesToAddress([]byte("B"))
	candC = infra.BytesToAddress([]byte("C"))
	root  = infra.Executor
)

// fakeSession reports a fixed validator set.
type fakeSession struct {
	validators []infra.Address
	disabled   map[uint32]bool
	prunedTo   SessionIndex
}

func (s *fakeSession) Validators() []infra.Address { return s.validators }
func (s *fakeSession) DisableValidator(index uint32) bool {
	if int(index) >= len(s.validators) || s.disabled[index] {
		return false
	}
	if s.disabled == nil {
		s.disabled = make(map[uint32]bool)
	}
	s.disabled[index] = true
	return true
}
func (s *fakeSession) PruneHistoricalUpTo(upTo SessionIndex) { s.prunedTo = upTo }

type recordingCollective struct {
	calls [][]infra.Address
}

func (c *recordingCollective) SetNewMembers(members []infra.Address) {
	c.calls = append(c.calls, members)
}

type recordingReward struct {
	distributed []SessionIndex
}

func (r *recordingReward) AggregateReward(SessionIndex, ParaID, SystemTokenID, uint64) {}
func (r *recordingReward) DistributeReward(session SessionIndex) {
	r.distributed = append(r.distributed, session)
}

type recordingEmitter struct {
	events []Event
}

func (r *recordingEmitter) Emit(ev Event) { r.events = append(r.events, ev) }

func (r *recordingEmitter) kinds() []string {
	kinds := make([]string, 0, len(r.events))
	for _, ev := range r.events {
		kinds = append(kinds, ev.Kind())
	}
	return kinds
}

func (r *recordingEmitter) reset() { r.events = nil }

type testEnv struct {
	election   *Election
	sctx       *storage.Context
	session    *fakeSession
	collective *recordingCollective
	reward     *recordingReward
	events     *recordingEmitter
}

func defaultGenesis() *GenesisConfig {
	return &GenesisConfig{
		SeedTrustValidators:         []infra.Address{seed1, seed2, seed3},
		TotalNumberOfValidators:     2,
		NumberOfSeedTrustValidators: 2,
		PoolStatus:                  PoolSeedTrust,
		SessionsPerEra:              3,
	}
}

func newTestEnvWithStore(t *testing.T, store kv.Store, gen *GenesisConfig) *testEnv {
	sctx := storage.NewContext(store, 32)
	require.NoError(t, gen.Build(sctx))

	env := &testEnv{
		sctx:       sctx,
		session:    &fakeSession{},
		collective: &recordingCollective{},
		reward:     &recordingReward{},
		events:     &recordingEmitter{},
	}
	env.election = New(sctx, Config{
		Session:    env.session,
		Collective: env.collective,
		Reward:     env.reward,
		Emitter:    env.events,
	})
	return env
}

func newTestEnv(t *testing.T, gen *GenesisConfig) *testEnv {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return newTestEnvWithStore(t, kv.Bucket("election").NewStore(db), gen)
}

// rotate mimics the host queuing the returned set.
func (env *testEnv) newSession(t *testing.T, index SessionIndex) ([]infra.Address, bool) {
	validators, ok, err := env.election.NewSession(index)
	require.NoError(t, err)
	if ok {
		env.session.validators = validators
	}
	return validators, ok
}

func (env *testEnv) era(t *testing.T) EraIndex {
	era, ok, err := env.election.CurrentEra()
	require.NoError(t, err)
	require.True(t, ok)
	return era
}

var errWrite = errors.New("disk full")

// failingStore fails every bulk write once armed.
type failingStore struct {
	kv.Store
	armed bool
}

func (s *failingStore) Bulk() kv.Bulk {
	bulk := s.Store.Bulk()
	return &struct {
		kv.Putter
		kv.LenFunc
		kv.WriteFunc
	}{
		bulk,
		bulk.Len,
		func() error {
			if s.armed {
				return errWrite
			}
			return bulk.Write()
		},
	}
}

func ledgerEntries() []votes.Entry {
	return []votes.Entry{{Who: candA, Points: 10}, {Who: candB, Points: 30}, {Who: candC, Points: 20}}
}

func newMemStore(t *testing.T) kv.Store {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}
