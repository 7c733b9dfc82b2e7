// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package storage

import (
	"testing"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/infrablockchain/elector/infra"
	"github.com/infrablockchain/elector/kv"
	"github.com/infrablockchain/elector/lvldb"
)

type testStruct struct {
	Who    infra.Address
	Points uint64
}

func newTestContext(t *testing.T, cacheSize int) (*Context, kv.Store) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	store := kv.Bucket("test").NewStore(db)
	return NewContext(store, cacheSize), store
}

func TestValue(t *testing.T) {
	for _, size := range []int{0, 16} {
		ctx, _ := newTestContext(t, size)
		v := NewValue[uint32](ctx, "current-era")

		got, ok, err := v.Get()
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Equal(t, uint32(0), got)

		require.NoError(t, v.Set(0))
		got, ok, err = v.Get()
		require.NoError(t, err)
		assert.True(t, ok, "zero is a stored value")
		assert.Equal(t, uint32(0), got)

		require.NoError(t, v.Set(7))
		got, _, err = v.Get()
		require.NoError(t, err)
		assert.Equal(t, uint32(7), got)
	}
}

func TestValueSlice(t *testing.T) {
	ctx, _ := newTestContext(t, 8)
	v := NewValue[[]testStruct](ctx, "pool")

	entries := []testStruct{
		{infra.BytesToAddress([]byte("a")), 10},
		{infra.BytesToAddress([]byte("b")), 30},
	}
	require.NoError(t, v.Set(entries))

	got, ok, err := v.Get()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, entries, got)

	// an empty list is still present
	require.NoError(t, v.Set([]testStruct{}))
	got, ok, err = v.Get()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, got)
}

func TestMapping(t *testing.T) {
	ctx, _ := newTestContext(t, 0)
	m := NewMapping[infra.Address, uint64](ctx, "vote-info")
	other := NewMapping[infra.Address, uint64](ctx, "other")

	a := infra.BytesToAddress([]byte("a"))
	b := infra.BytesToAddress([]byte("b"))

	require.NoError(t, m.Set(a, 100))

	got, ok, err := m.Get(a)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, uint64(100), got)

	_, ok, err = m.Get(b)
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = other.Get(a)
	require.NoError(t, err)
	assert.False(t, ok, "mappings with different names do not overlap")

	require.NoError(t, m.Delete(a))
	_, ok, err = m.Get(a)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDecodeError(t *testing.T) {
	ctx, _ := newTestContext(t, 0)
	v := NewValue[uint32](ctx, "bad")
	require.NoError(t, ctx.SetRaw(v.slot, []byte{0xc1, 0x01}))

	_, _, err := v.Get()
	assert.Error(t, err)
}

func TestAtomicCommit(t *testing.T) {
	ctx, store := newTestContext(t, 16)
	v := NewValue[uint32](ctx, "era")
	m := NewMapping[infra.Address, uint64](ctx, "votes")
	a := infra.BytesToAddress([]byte("a"))

	err := ctx.Atomic(func() error {
		if err := v.Set(1); err != nil {
			return err
		}
		if err := m.Set(a, 5); err != nil {
			return err
		}
		// reads see pending writes
		got, ok, err := v.Get()
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, uint32(1), got)

		// nothing reached the store yet
		has, err := store.Has(v.slot[:])
		require.NoError(t, err)
		assert.False(t, has)
		return nil
	})
	require.NoError(t, err)

	has, err := store.Has(v.slot[:])
	require.NoError(t, err)
	assert.True(t, has)

	got, _, err := m.Get(a)
	require.NoError(t, err)
	assert.Equal(t, uint64(5), got)
}

func TestAtomicRollback(t *testing.T) {
	ctx, _ := newTestContext(t, 16)
	v := NewValue[uint32](ctx, "era")
	require.NoError(t, v.Set(1))

	boom := errors.New("boom")
	err := ctx.Atomic(func() error {
		require.NoError(t, v.Set(2))
		return ctx.Atomic(func() error {
			require.NoError(t, v.Set(3))
			return boom
		})
	})
	assert.ErrorIs(t, err, boom)

	got, _, err := v.Get()
	require.NoError(t, err)
	assert.Equal(t, uint32(1), got)
}

func TestAtomicNested(t *testing.T) {
	ctx, store := newTestContext(t, 0)
	v := NewValue[uint32](ctx, "era")

	require.NoError(t, ctx.Atomic(func() error {
		require.NoError(t, ctx.Atomic(func() error {
			return v.Set(9)
		}))
		// inner commit joins the outer journal
		has, err := store.Has(v.slot[:])
		require.NoError(t, err)
		assert.False(t, has)
		return nil
	}))

	got, _, err := v.Get()
	require.NoError(t, err)
	assert.Equal(t, uint32(9), got)
}

func TestCacheSeesDirectWrites(t *testing.T) {
	ctx, store := newTestContext(t, 16)
	v := NewValue[uint32](ctx, "era")

	_, ok, err := v.Get()
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, v.Set(4))
	got, ok, err := v.Get()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, uint32(4), got)

	raw, err := store.Get(v.slot[:])
	require.NoError(t, err)
	var stored uint32
	require.NoError(t, rlp.DecodeBytes(raw, &stored))
	assert.Equal(t, uint32(4), stored)
}

func TestConfigVariable(t *testing.T) {
	config := NewConfigVariable("sessions-per-era", 6)
	assert.Equal(t, uint32(6), config.Get())
	assert.Equal(t, "sessions-per-era", config.Name())
	assert.Equal(t, infra.BytesToBytes32([]byte("sessions-per-era")), config.Slot())

	ctx, _ := newTestContext(t, 0)

	// nothing stored keeps the default
	config.Override(ctx)
	assert.Equal(t, uint32(6), config.Get())

	config = NewConfigVariable("sessions-per-era", 6)
	raw, err := rlp.EncodeToBytes(uint32(3))
	require.NoError(t, err)
	require.NoError(t, ctx.SetRaw(config.Slot(), raw))
	config.Override(ctx)
	assert.Equal(t, uint32(3), config.Get())

	// loaded once
	require.NoError(t, ctx.SetRaw(config.Slot(), []byte{0x05}))
	config.Override(ctx)
	assert.Equal(t, uint32(3), config.Get())

	// malformed values keep the default
	config = NewConfigVariable("sessions-per-era", 6)
	require.NoError(t, ctx.SetRaw(config.Slot(), []byte{0xc0}))
	config.Override(ctx)
	assert.Equal(t, uint32(6), config.Get())

	require.NoError(t, config.Store(ctx, 12))
	assert.Equal(t, uint32(12), config.Get())
	fresh := NewConfigVariable("sessions-per-era", 6)
	fresh.Override(ctx)
	assert.Equal(t, uint32(12), fresh.Get())
}
