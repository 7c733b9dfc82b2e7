// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package storage

import (
	"github.com/ethereum/go-ethereum/rlp"

	"github.com/infrablockchain/elector/infra"
)

// ConfigVariable is a uint32 setting with a built-in default that
// can be overridden by a non-zero value stored under its name.
type ConfigVariable struct {
	slot        infra.Bytes32
	name        string
	value       uint32
	initialised bool
}

func NewConfigVariable(name string, defaultValue uint32) *ConfigVariable {
	return &ConfigVariable{
		slot:  infra.BytesToBytes32([]byte(name)),
		name:  name,
		value: defaultValue,
	}
}

func (c *ConfigVariable) Get() uint32 {
	return c.value
}

func (c *ConfigVariable) Name() string {
	return c.name
}

func (c *ConfigVariable) Slot() infra.Bytes32 {
	return c.slot
}

// Override loads the stored value once. Later calls are no-ops.
func (c *ConfigVariable) Override(ctx *Context) {
	if c.initialised {
		return
	}
	raw, err := ctx.GetRaw(c.slot)
	if err != nil {
		logger.Warn("failed to read config value", "slot", c.Name(), "error", err)
		return
	}
	c.initialised = true

	var num uint32
	if len(raw) > 0 {
		if err := rlp.DecodeBytes(raw, &num); err != nil {
			logger.Warn("malformed config value", "slot", c.Name(), "error", err)
			return
		}
	}
	if num != 0 {
		c.value = num
		logger.Debug("override found new config value", "slot", c.Name(), "value", c.Get())
	} else {
		logger.Debug("using default config value", "slot", c.Name(), "value", c.Get())
	}
}

// Store persists value as the override of the variable.
func (c *ConfigVariable) Store(ctx *Context, value uint32) error {
	raw, err := rlp.EncodeToBytes(value)
	if err != nil {
		return err
	}
	if err := ctx.SetRaw(c.slot, raw); err != nil {
		return err
	}
	c.value = value
	c.initialised = true
	return nil
}
