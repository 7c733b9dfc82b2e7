// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package storage

import (
	"sort"

	"github.com/pkg/errors"

	"github.com/infrablockchain/elector/cache"
	"github.com/infrablockchain/elector/infra"
	"github.com/infrablockchain/elector/kv"
	"github.com/infrablockchain/elector/log"
)

var logger = log.WithContext("pkg", "storage")

// Context gives typed cells access to slots of a kv store.
// Writes made inside Atomic are journaled and committed in one bulk.
type Context struct {
	store   kv.Store
	cache   *cache.LRU
	journal map[infra.Bytes32][]byte
	depth   int
}

// NewContext creates a storage context over the store.
// A read cache of cacheSize slots is attached when cacheSize > 0.
func NewContext(store kv.Store, cacheSize int) *Context {
	ctx := &Context{store: store}
	if cacheSize > 0 {
		// only errors on non-positive size
		ctx.cache, _ = cache.NewLRU(cacheSize)
	}
	return ctx
}

// GetRaw returns the raw content of the slot, nil if absent.
func (c *Context) GetRaw(slot infra.Bytes32) ([]byte, error) {
	if c.journal != nil {
		if raw, ok := c.journal[slot]; ok {
			return raw, nil
		}
	}
	if c.cache == nil {
		return c.load(slot)
	}
	return c.cache.GetOrLoad(string(slot[:]), func(string) ([]byte, error) {
		return c.load(slot)
	})
}

func (c *Context) load(slot infra.Bytes32) ([]byte, error) {
	raw, err := c.store.Get(slot[:])
	if err != nil {
		if c.store.IsNotFound(err) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "read slot %v", slot.AbbrevString())
	}
	return raw, nil
}

// SetRaw writes the raw content of the slot. An empty raw deletes the slot.
func (c *Context) SetRaw(slot infra.Bytes32, raw []byte) error {
	if c.journal != nil {
		c.journal[slot] = raw
		return nil
	}
	if len(raw) == 0 {
		if err := c.store.Delete(slot[:]); err != nil {
			return errors.Wrapf(err, "delete slot %v", slot.AbbrevString())
		}
	} else if err := c.store.Put(slot[:], raw); err != nil {
		return errors.Wrapf(err, "write slot %v", slot.AbbrevString())
	}
	c.cacheRaw(slot, raw)
	return nil
}

func (c *Context) cacheRaw(slot infra.Bytes32, raw []byte) {
	if c.cache == nil {
		return
	}
	if len(raw) == 0 {
		raw = nil
	}
	c.cache.Add(string(slot[:]), raw)
}

// Atomic runs fn with all writes journaled. The journal is committed
// when fn returns nil and dropped otherwise. Nested calls join the outermost one.
func (c *Context) Atomic(fn func() error) error {
	if c.depth == 0 {
		c.journal = make(map[infra.Bytes32][]byte)
	}
	c.depth++

	err := fn()

	c.depth--
	if c.depth > 0 {
		return err
	}

	journal := c.journal
	c.journal = nil
	if err != nil {
		return err
	}
	return c.commit(journal)
}

func (c *Context) commit(journal map[infra.Bytes32][]byte) error {
	if len(journal) == 0 {
		return nil
	}
	// stable write order
	slots := make([]infra.Bytes32, 0, len(journal))
	for slot := range journal {
		slots = append(slots, slot)
	}
	sort.Slice(slots, func(i, j int) bool {
		return string(slots[i][:]) < string(slots[j][:])
	})

	bulk := c.store.Bulk()
	for _, slot := range slots {
		raw := journal[slot]
		var err error
		if len(raw) == 0 {
			err = bulk.Delete(slot[:])
		} else {
			err = bulk.Put(slot[:], raw)
		}
		if err != nil {
			return errors.Wrap(err, "journal slot")
		}
	}
	if err := bulk.Write(); err != nil {
		return errors.Wrap(err, "commit journal")
	}

	for _, slot := range slots {
		c.cacheRaw(slot, journal[slot])
	}
	if c.cache != nil {
		if changed, hit, miss := c.cache.Stats().Stats(); changed {
			logger.Debug("slot cache stats", "hit", hit, "miss", miss, "slots", len(slots))
		}
	}
	return nil
}
