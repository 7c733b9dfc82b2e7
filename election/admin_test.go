// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package election

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/infrablockchain/elector/election/reverts"
	"github.com/infrablockchain/elector/infra"
)

func TestBadOrigin(t *testing.T) {
	env := newTestEnv(t, defaultGenesis())
	stranger := infra.BytesToAddress([]byte("stranger"))

	for name, op := range map[string]func() error{
		"SetNumberOfValidators":     func() error { return env.election.SetNumberOfValidators(stranger, 10, 1) },
		"AddSeedTrustValidator":     func() error { return env.election.AddSeedTrustValidator(stranger, candA) },
		"SetMinVotePointsThreshold": func() error { return env.election.SetMinVotePointsThreshold(stranger, 1) },
		"SetPoolStatus":             func() error { return env.election.SetPoolStatus(stranger, PoolAll) },
		"SetForceEra":               func() error { return env.election.SetForceEra(stranger, ForceNone) },
	} {
		t.Run(name, func(t *testing.T) {
			err := op()
			assert.ErrorIs(t, err, reverts.ErrBadOrigin)
			assert.True(t, reverts.IsRevertErr(err))
		})
	}
	assert.Empty(t, env.events.events)
}

func TestCustomExecutor(t *testing.T) {
	admin := infra.BytesToAddress([]byte("admin"))
	gen := defaultGenesis()
	gen.Executor = admin
	env := newTestEnv(t, gen)

	executor, err := env.election.Executor()
	require.NoError(t, err)
	assert.Equal(t, admin, executor)

	assert.ErrorIs(t, env.election.SetPoolStatus(root, PoolAll), reverts.ErrBadOrigin)
	assert.NoError(t, env.election.SetPoolStatus(admin, PoolAll))
}

func TestSetNumberOfValidators(t *testing.T) {
	env := newTestEnv(t, defaultGenesis())

	err := env.election.SetNumberOfValidators(root, 5, 10)
	assert.ErrorIs(t, err, reverts.ErrSeedTrustExceedMaxValidators)

	total, seedTrust, err := env.election.NumberOfValidators()
	require.NoError(t, err)
	assert.Equal(t, uint32(2), total)
	assert.Equal(t, uint32(2), seedTrust)

	env.session.validators = []infra.Address{seed1, seed2, seed3}
	err = env.election.SetNumberOfValidators(root, 2, 1)
	assert.ErrorIs(t, err, reverts.ErrLessThanCurrentValidatorsNum)
	assert.Empty(t, env.events.events)

	// events only for the changed field
	require.NoError(t, env.election.SetNumberOfValidators(root, 3, 2))
	require.NoError(t, env.election.SetNumberOfValidators(root, 3, 1))
	assert.Equal(t, []Event{
		TotalValidatorsNumChanged{Old: 2, New: 3},
		SeedTrustNumChanged{Old: 2, New: 1},
	}, env.events.events)

	env.events.reset()
	require.NoError(t, env.election.SetNumberOfValidators(root, 5, 3))
	assert.Equal(t, []string{"SeedTrustNumChanged", "TotalValidatorsNumChanged"}, env.events.kinds())

	env.events.reset()
	require.NoError(t, env.election.SetNumberOfValidators(root, 5, 3))
	assert.Empty(t, env.events.events)

	total, seedTrust, err = env.election.NumberOfValidators()
	require.NoError(t, err)
	assert.Equal(t, uint32(5), total)
	assert.Equal(t, uint32(3), seedTrust)
}

func TestAddSeedTrustValidator(t *testing.T) {
	env := newTestEnv(t, defaultGenesis())

	require.NoError(t, env.election.AddSeedTrustValidator(root, candA))
	require.NoError(t, env.election.AddSeedTrustValidator(root, candA))

	pool, err := env.election.SeedTrustPool()
	require.NoError(t, err)
	assert.Equal(t, []infra.Address{seed1, seed2, seed3, candA, candA}, pool)
	assert.Equal(t, []Event{SeedTrustAdded{Who: candA}, SeedTrustAdded{Who: candA}}, env.events.events)
}

func TestSetMinVotePointsThreshold(t *testing.T) {
	env := newTestEnv(t, defaultGenesis())

	require.NoError(t, env.election.SetMinVotePointsThreshold(root, 25))
	require.NoError(t, env.election.SetMinVotePointsThreshold(root, 40))
	assert.Equal(t, []Event{
		MinVotePointsChanged{Old: 0, New: 25},
		MinVotePointsChanged{Old: 25, New: 40},
	}, env.events.events)

	threshold, err := env.election.MinVotePointsThreshold()
	require.NoError(t, err)
	assert.Equal(t, uint64(40), threshold)
}

func TestSetPoolStatus(t *testing.T) {
	env := newTestEnv(t, defaultGenesis())

	require.NoError(t, env.election.SetPoolStatus(root, PoolAll))
	assert.Equal(t, []Event{PoolStatusSet{Old: PoolSeedTrust, New: PoolAll}}, env.events.events)

	pool, err := env.election.PoolStatus()
	require.NoError(t, err)
	assert.Equal(t, PoolAll, pool)

	assert.ErrorIs(t, env.election.SetPoolStatus(root, Pool(9)), reverts.ErrBadTransactionParams)
}

func TestSetForceEra(t *testing.T) {
	env := newTestEnv(t, defaultGenesis())

	require.NoError(t, env.election.SetForceEra(root, ForceAlways))
	assert.Equal(t, []Event{ForceEra{Old: NotForcing, New: ForceAlways}}, env.events.events)
	assert.ErrorIs(t, env.election.SetForceEra(root, Forcing(7)), reverts.ErrBadTransactionParams)
}
