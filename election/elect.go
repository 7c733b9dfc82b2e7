// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package election

import (
	"github.com/pkg/errors"

	"github.com/infrablockchain/elector/election/votes"
	"github.com/infrablockchain/elector/infra"
)

// ElectValidators elects the validators of era: seed trust validators first,
// followed by proof-of-transaction validators when the pool allows them.
func (e *Election) ElectValidators(era EraIndex) (validators []infra.Address, err error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	err = e.atomic(func() error {
		validators, err = e.electValidators(era)
		return err
	})
	if err != nil {
		return nil, err
	}
	return validators, nil
}

func (e *Election) electValidators(era EraIndex) ([]infra.Address, error) {
	total, seedTrustNum, err := e.counts()
	if err != nil {
		return nil, err
	}
	potNum := potCount(total, seedTrustNum)

	seedTrustValidators, changed, err := e.seedTrust.Elect(seedTrustNum)
	if err != nil {
		return nil, errors.Wrap(err, "elect seed trust validators")
	}
	if changed {
		e.emit(SeedTrustValidatorsElected{Validators: seedTrustValidators})
	} else {
		e.emit(ValidatorsNotChanged{})
	}

	newValidators := make([]infra.Address, 0, len(seedTrustValidators)+int(potNum))
	newValidators = append(newValidators, seedTrustValidators...)

	pool, _, err := e.poolStatus.Get()
	if err != nil {
		return nil, errors.Wrap(err, "load pool status")
	}
	potEnabled := false
	if potNum != 0 && pool == PoolAll {
		logger.Trace("elect pot validators", "era", era, "num", potNum)
		potValidators, outcome, err := e.votes.Elect(potNum)
		if err != nil {
			return nil, errors.Wrap(err, "elect pot validators")
		}
		switch outcome {
		case votes.Empty:
			e.emit(EmptyPotValidatorPool{})
		case votes.Unchanged:
			e.emit(ValidatorsNotChanged{})
		default:
			e.emit(PotValidatorsElected{Validators: potValidators})
		}
		potEnabled = true
		newValidators = append(newValidators, potValidators...)
	}

	old := e.session.Validators()
	if infra.Addresses(old).Equal(newValidators) {
		e.emit(ValidatorsNotChanged{})
		return old, nil
	}

	e.emit(ValidatorsElected{Validators: newValidators, PotEnabled: potEnabled})
	members := append([]infra.Address(nil), newValidators...)
	e.afterCommit(func() {
		metricValidatorsSize().Observe(int64(len(members)))
		e.collective.SetNewMembers(members)
	})
	return newValidators, nil
}

// potCount is the number of proof-of-transaction seats.
func potCount(total, seedTrust uint32) uint32 {
	if seedTrust > total {
		logger.Error("seed trust validators exceed total validators", "total", total, "seedTrust", seedTrust)
		return 0
	}
	return total - seedTrust
}
