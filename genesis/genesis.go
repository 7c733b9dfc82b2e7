// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package genesis provides genesis and scenario definitions of the election engine.
package genesis

import (
	"fmt"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"

	"github.com/infrablockchain/elector/election"
	"github.com/infrablockchain/elector/infra"
	"github.com/infrablockchain/elector/storage"
)

// Genesis is a named, validated election genesis.
type Genesis struct {
	name   string
	id     infra.Bytes32
	config election.GenesisConfig
}

func newGenesis(name string, config *election.GenesisConfig) (*Genesis, error) {
	if err := validate(config); err != nil {
		return nil, err
	}
	data, err := rlp.EncodeToBytes(config)
	if err != nil {
		return nil, errors.Wrap(err, "encode genesis")
	}
	return &Genesis{
		name:   name,
		id:     infra.Blake2b(data),
		config: *config,
	}, nil
}

func validate(config *election.GenesisConfig) error {
	if n := len(config.SeedTrustValidators); n > int(infra.MaxSeedTrustValidators) {
		return fmt.Errorf("too many seed trust validators: %d, max %d", n, infra.MaxSeedTrustValidators)
	}
	return config.Validate()
}

// Name returns the network name.
func (g *Genesis) Name() string { return g.name }

// ID identifies the genesis by the hash of its content.
func (g *Genesis) ID() infra.Bytes32 { return g.id }

// Config returns a copy of the genesis config.
func (g *Genesis) Config() election.GenesisConfig {
	c := g.config
	c.SeedTrustValidators = append([]infra.Address(nil), g.config.SeedTrustValidators...)
	c.VoteStatusAtGenesis = append(c.VoteStatusAtGenesis[:0:0], g.config.VoteStatusAtGenesis...)
	return c
}

// Executor returns the privileged origin of the network.
func (g *Genesis) Executor() infra.Address {
	if g.config.Executor.IsZero() {
		return infra.Executor
	}
	return g.config.Executor
}

// Build writes the genesis state.
func (g *Genesis) Build(sctx *storage.Context) error {
	config := g.Config()
	return config.Build(sctx)
}
