// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package session

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/infrablockchain/elector/election"
	"github.com/infrablockchain/elector/infra"
	"github.com/infrablockchain/elector/lvldb"
	"github.com/infrablockchain/elector/storage"
)

var (
	v1 = infra.BytesToAddress([]byte("v1"))
	v2 = infra.BytesToAddress([]byte("v2"))
	v3 = infra.BytesToAddress([]byte("v3"))
)

// scriptedManager records calls and answers planning with preset sets.
type scriptedManager struct {
	calls []string
	plans map[election.SessionIndex][]infra.Address
	err   error
}

func (m *scriptedManager) plan(prefix string, index election.SessionIndex) ([]infra.Address, bool, error) {
	m.calls = append(m.calls, fmt.Sprintf("%s(%d)", prefix, index))
	if m.err != nil {
		return nil, false, m.err
	}
	v, ok := m.plans[index]
	return v, ok, nil
}

func (m *scriptedManager) NewSession(index election.SessionIndex) ([]infra.Address, bool, error) {
	return m.plan("new", index)
}
func (m *scriptedManager) NewSessionGenesis(index election.SessionIndex) ([]infra.Address, bool, error) {
	return m.plan("genesis", index)
}
func (m *scriptedManager) StartSession(index election.SessionIndex) {
	m.calls = append(m.calls, fmt.Sprintf("start(%d)", index))
}
func (m *scriptedManager) EndSession(index election.SessionIndex) {
	m.calls = append(m.calls, fmt.Sprintf("end(%d)", index))
}

func TestRotatorOrdering(t *testing.T) {
	m := &scriptedManager{plans: map[election.SessionIndex][]infra.Address{
		0: {v1},
		3: {v1, v2},
	}}
	r := NewRotator(nil)

	require.NoError(t, r.Genesis(m))
	assert.Equal(t, []infra.Address{v1}, r.Validators())
	assert.Equal(t, []infra.Address{v1}, r.Queued())

	for range 3 {
		_, err := r.Rotate(m)
		require.NoError(t, err)
	}
	assert.Equal(t, []string{
		"genesis(0)", "genesis(1)",
		"end(0)", "start(1)", "new(2)",
		"end(1)", "start(2)", "new(3)",
		"end(2)", "start(3)", "new(4)",
	}, m.calls)

	// planned at session 2 for session 3
	assert.Equal(t, election.SessionIndex(3), r.Index())
	assert.Equal(t, []infra.Address{v1, v2}, r.Validators())
	assert.Equal(t, []infra.Address{v1, v2}, r.Queued())
}

func TestRotatorKeepsQueuedWhenUnchanged(t *testing.T) {
	m := &scriptedManager{plans: map[election.SessionIndex][]infra.Address{2: {v3}}}
	r := NewRotator([]infra.Address{v1, v2})
	require.NoError(t, r.Genesis(m))
	assert.Equal(t, []infra.Address{v1, v2}, r.Validators())

	idx, err := r.Rotate(m)
	require.NoError(t, err)
	assert.Equal(t, election.SessionIndex(1), idx)
	assert.Equal(t, []infra.Address{v1, v2}, r.Validators())
	assert.Equal(t, []infra.Address{v3}, r.Queued())

	_, err = r.Rotate(m)
	require.NoError(t, err)
	assert.Equal(t, []infra.Address{v3}, r.Validators())
	assert.Equal(t, []infra.Address{v3}, r.Queued())
}

func TestRotatorError(t *testing.T) {
	m := &scriptedManager{err: errors.New("boom")}
	r := NewRotator(nil)
	assert.ErrorContains(t, r.Genesis(m), "plan session 0")

	_, err := r.Rotate(m)
	assert.ErrorContains(t, err, "plan session 2")
}

func TestNewRotatorAt(t *testing.T) {
	m := &scriptedManager{}
	r := NewRotatorAt(7, []infra.Address{v1}, []infra.Address{v2})
	assert.Equal(t, election.SessionIndex(7), r.Index())

	idx, err := r.Rotate(m)
	require.NoError(t, err)
	assert.Equal(t, election.SessionIndex(8), idx)
	assert.Equal(t, []infra.Address{v2}, r.Validators())
	assert.Equal(t, []string{"end(7)", "start(8)", "new(9)"}, m.calls)
}

func TestDisableValidator(t *testing.T) {
	m := &scriptedManager{}
	r := NewRotator([]infra.Address{v1, v2})

	assert.True(t, r.DisableValidator(1))
	assert.False(t, r.DisableValidator(1))
	assert.False(t, r.DisableValidator(2))
	assert.True(t, r.IsDisabled(1))

	_, err := r.Rotate(m)
	require.NoError(t, err)
	assert.False(t, r.IsDisabled(1))
}

func TestPruneHistoricalUpTo(t *testing.T) {
	r := NewRotator(nil)
	r.PruneHistoricalUpTo(5)
	r.PruneHistoricalUpTo(3)
	assert.Equal(t, election.SessionIndex(5), r.PrunedTo())
}

func TestRotatorWithElection(t *testing.T) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	defer db.Close()

	sctx := storage.NewContext(db, 32)
	gen := &election.GenesisConfig{
		SeedTrustValidators:         []infra.Address{v1, v2, v3},
		TotalNumberOfValidators:     2,
		NumberOfSeedTrustValidators: 2,
		SessionsPerEra:              3,
	}
	require.NoError(t, gen.Build(sctx))

	r := NewRotator(nil)
	e := election.New(sctx, election.Config{Session: r})

	require.NoError(t, r.Genesis(e))
	assert.Equal(t, []infra.Address{v1, v2}, r.Validators())

	for range 3 {
		_, err := r.Rotate(e)
		require.NoError(t, err)
	}
	era, _, err := e.CurrentEra()
	require.NoError(t, err)
	assert.Equal(t, election.EraIndex(1), era)
	start, _, err := e.StartSessionIndex(1)
	require.NoError(t, err)
	assert.Equal(t, election.SessionIndex(3), start)

	require.NoError(t, e.SetNumberOfValidators(infra.Executor, 3, 3))
	require.NoError(t, e.SetForceEra(infra.Executor, election.ForceNew))

	// planned for the next session, applied one rotation later
	_, err = r.Rotate(e)
	require.NoError(t, err)
	assert.Equal(t, []infra.Address{v1, v2}, r.Validators())
	assert.Equal(t, []infra.Address{v1, v2, v3}, r.Queued())

	_, err = r.Rotate(e)
	require.NoError(t, err)
	assert.Equal(t, []infra.Address{v1, v2, v3}, r.Validators())

	mode, err := e.ForceEra()
	require.NoError(t, err)
	assert.Equal(t, election.NotForcing, mode)
}
