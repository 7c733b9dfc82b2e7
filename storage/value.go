// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package storage

import (
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"

	"github.com/infrablockchain/elector/infra"
)

// Key is a mapping key.
type Key interface {
	Bytes() []byte
}

// Value is a single rlp encoded cell.
type Value[T any] struct {
	context *Context
	slot    infra.Bytes32
}

// NewValue creates a value cell stored at the slot derived from name.
func NewValue[T any](context *Context, name string) *Value[T] {
	return &Value[T]{context: context, slot: infra.Blake2b([]byte(name))}
}

// Get returns the stored value. ok is false and value is zero if never set.
func (v *Value[T]) Get() (value T, ok bool, err error) {
	ok, err = decode(v.context, v.slot, &value)
	return
}

// Set stores the value.
func (v *Value[T]) Set(value T) error {
	return encode(v.context, v.slot, value)
}

// Mapping is a key/value cell family, each entry at Blake2b(key, base).
type Mapping[K Key, V any] struct {
	context *Context
	basePos infra.Bytes32
}

// NewMapping creates a mapping whose base slot is derived from name.
func NewMapping[K Key, V any](context *Context, name string) *Mapping[K, V] {
	return &Mapping[K, V]{context: context, basePos: infra.Blake2b([]byte(name))}
}

func (m *Mapping[K, V]) position(key K) infra.Bytes32 {
	return infra.Blake2b(key.Bytes(), m.basePos.Bytes())
}

// Get returns the value for key. ok is false if the entry is absent.
func (m *Mapping[K, V]) Get(key K) (value V, ok bool, err error) {
	ok, err = decode(m.context, m.position(key), &value)
	return
}

// Set stores the value for key.
func (m *Mapping[K, V]) Set(key K, value V) error {
	return encode(m.context, m.position(key), value)
}

// Delete removes the entry for key.
func (m *Mapping[K, V]) Delete(key K) error {
	return m.context.SetRaw(m.position(key), nil)
}

func decode(ctx *Context, slot infra.Bytes32, out any) (bool, error) {
	raw, err := ctx.GetRaw(slot)
	if err != nil {
		return false, err
	}
	if len(raw) == 0 {
		return false, nil
	}
	if err := rlp.DecodeBytes(raw, out); err != nil {
		return false, errors.Wrapf(err, "decode slot %v", slot.AbbrevString())
	}
	return true, nil
}

func encode(ctx *Context, slot infra.Bytes32, value any) error {
	raw, err := rlp.EncodeToBytes(value)
	if err != nil {
		return errors.Wrapf(err, "encode slot %v", slot.AbbrevString())
	}
	return ctx.SetRaw(slot, raw)
}
