// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package election

import (
	"github.com/pkg/errors"

	"github.com/infrablockchain/elector/election/reverts"
	"github.com/infrablockchain/elector/election/seedtrust"
	"github.com/infrablockchain/elector/election/votes"
	"github.com/infrablockchain/elector/infra"
	"github.com/infrablockchain/elector/storage"
)

// GenesisConfig is the initial election state.
type GenesisConfig struct {
	SeedTrustValidators         []infra.Address `json:"seedTrustValidators" yaml:"seedTrustValidators"`
	TotalNumberOfValidators     uint32          `json:"totalNumberOfValidators" yaml:"totalNumberOfValidators"`
	NumberOfSeedTrustValidators uint32          `json:"numberOfSeedTrustValidators" yaml:"numberOfSeedTrustValidators"`
	ForceEra                    Forcing         `json:"forceEra" yaml:"forceEra"`
	PoolStatus                  Pool            `json:"poolStatus" yaml:"poolStatus"`
	IsPotEnableAtGenesis        bool            `json:"isPotEnableAtGenesis" yaml:"isPotEnableAtGenesis"`
	VoteStatusAtGenesis         []votes.Entry   `json:"voteStatusAtGenesis" yaml:"voteStatusAtGenesis"`
	MinVotePointsThreshold      uint64          `json:"minVotePointsThreshold" yaml:"minVotePointsThreshold"`
	// SessionsPerEra overrides the configured era length when non-zero.
	SessionsPerEra uint32 `json:"sessionsPerEra" yaml:"sessionsPerEra"`
	// Executor is the privileged origin, infra.Executor when zero.
	Executor infra.Address `json:"executor" yaml:"executor"`
}

// Validate checks the genesis invariants.
func (g *GenesisConfig) Validate() error {
	if g.NumberOfSeedTrustValidators > g.TotalNumberOfValidators {
		return errors.Wrapf(reverts.ErrSeedTrustExceedMaxValidators,
			"genesis: seed trust %d, total %d", g.NumberOfSeedTrustValidators, g.TotalNumberOfValidators)
	}
	if g.IsPotEnableAtGenesis && len(g.VoteStatusAtGenesis) == 0 {
		return errors.Wrap(reverts.ErrBadTransactionParams, "genesis: vote status should not be empty")
	}
	if g.ForceEra > ForceAlways || g.PoolStatus > PoolAll {
		return errors.Wrap(reverts.ErrBadTransactionParams, "genesis: bad mode")
	}
	return nil
}

// Build validates and writes the genesis state in one commit.
func (g *GenesisConfig) Build(sctx *storage.Context) error {
	if err := g.Validate(); err != nil {
		return err
	}

	return sctx.Atomic(func() error {
		if err := seedtrust.New(sctx).SetPool(g.SeedTrustValidators); err != nil {
			return err
		}
		if err := storage.NewValue[uint32](sctx, slotTotalValidators).Set(g.TotalNumberOfValidators); err != nil {
			return err
		}
		if err := storage.NewValue[uint32](sctx, slotSeedTrustNum).Set(g.NumberOfSeedTrustValidators); err != nil {
			return err
		}
		if err := storage.NewValue[Forcing](sctx, slotForceEra).Set(g.ForceEra); err != nil {
			return err
		}
		if err := storage.NewValue[Pool](sctx, slotPoolStatus).Set(g.PoolStatus); err != nil {
			return err
		}

		voteService := votes.New(sctx)
		if g.IsPotEnableAtGenesis {
			if err := voteService.Reset(g.VoteStatusAtGenesis); err != nil {
				return err
			}
		}
		if _, err := voteService.SetThreshold(g.MinVotePointsThreshold); err != nil {
			return err
		}

		if g.SessionsPerEra != 0 {
			if err := storage.NewConfigVariable(SessionsPerEraName, g.SessionsPerEra).Store(sctx, g.SessionsPerEra); err != nil {
				return err
			}
		}
		executor := g.Executor
		if executor.IsZero() {
			executor = infra.Executor
		}
		if err := storage.NewValue[infra.Address](sctx, slotExecutor).Set(executor); err != nil {
			return err
		}

		logger.Info("🌱 election genesis built",
			"seedTrust", len(g.SeedTrustValidators),
			"total", g.TotalNumberOfValidators,
			"seedTrustNum", g.NumberOfSeedTrustValidators,
			"pool", g.PoolStatus,
			"force", g.ForceEra,
		)
		return nil
	})
}
