// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package election

import (
	"github.com/pkg/errors"

	"github.com/infrablockchain/elector/election/reverts"
	"github.com/infrablockchain/elector/infra"
)

//
// Privileged operations, accepted from the executor only
//

func (e *Election) ensureExecutor(op string, origin infra.Address) error {
	executor, err := e.loadExecutor()
	if err != nil {
		return errors.Wrap(err, "load executor")
	}
	if origin != executor {
		return e.reject(op, reverts.ErrBadOrigin)
	}
	return nil
}

// SetNumberOfValidators sets the total number of validators and how many of them are seed trust.
func (e *Election) SetNumberOfValidators(origin infra.Address, newTotal, newSeedTrust uint32) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	const op = "set-number-of-validators"
	if err := e.ensureExecutor(op, origin); err != nil {
		return err
	}
	if newSeedTrust > newTotal {
		return e.reject(op, reverts.ErrSeedTrustExceedMaxValidators)
	}
	if int(newTotal) < len(e.session.Validators()) {
		return e.reject(op, reverts.ErrLessThanCurrentValidatorsNum)
	}

	return e.atomic(func() error {
		oldTotal, oldSeedTrust, err := e.counts()
		if err != nil {
			return err
		}
		if newSeedTrust != oldSeedTrust {
			if err := e.seedTrustNum.Set(newSeedTrust); err != nil {
				return err
			}
			e.emit(SeedTrustNumChanged{Old: oldSeedTrust, New: newSeedTrust})
		}
		if newTotal != oldTotal {
			if err := e.total.Set(newTotal); err != nil {
				return err
			}
			e.emit(TotalValidatorsNumChanged{Old: oldTotal, New: newTotal})
		}
		return nil
	})
}

// AddSeedTrustValidator appends who to the seed trust pool. Duplicates are not checked.
func (e *Election) AddSeedTrustValidator(origin infra.Address, who infra.Address) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.ensureExecutor("add-seed-trust-validator", origin); err != nil {
		return err
	}
	return e.atomic(func() error {
		if err := e.seedTrust.Add(who); err != nil {
			return err
		}
		e.emit(SeedTrustAdded{Who: who})

		pool, err := e.seedTrust.Pool()
		if err != nil {
			return err
		}
		e.afterCommit(func() {
			metricPoolSize().SetWithLabel(int64(len(pool)), map[string]string{"pool": "seed-trust"})
		})
		return nil
	})
}

// SetMinVotePointsThreshold sets the points a candidate needs to be elected by proof-of-transaction.
func (e *Election) SetMinVotePointsThreshold(origin infra.Address, threshold uint64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.ensureExecutor("set-min-vote-points-threshold", origin); err != nil {
		return err
	}
	return e.atomic(func() error {
		old, err := e.votes.SetThreshold(threshold)
		if err != nil {
			return err
		}
		e.emit(MinVotePointsChanged{Old: old, New: threshold})
		return nil
	})
}

// SetPoolStatus sets whether proof-of-transaction validators are elected.
func (e *Election) SetPoolStatus(origin infra.Address, status Pool) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	const op = "set-pool-status"
	if err := e.ensureExecutor(op, origin); err != nil {
		return err
	}
	if status != PoolAll && status != PoolSeedTrust {
		return e.reject(op, reverts.ErrBadTransactionParams)
	}
	return e.atomic(func() error {
		old, _, err := e.poolStatus.Get()
		if err != nil {
			return err
		}
		if err := e.poolStatus.Set(status); err != nil {
			return err
		}
		e.emit(PoolStatusSet{Old: old, New: status})
		return nil
	})
}

// SetForceEra sets the era forcing mode.
func (e *Election) SetForceEra(origin infra.Address, mode Forcing) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	const op = "set-force-era"
	if err := e.ensureExecutor(op, origin); err != nil {
		return err
	}
	if mode > ForceAlways {
		return e.reject(op, reverts.ErrBadTransactionParams)
	}
	return e.atomic(func() error {
		return e.setForceEra(mode)
	})
}

func (e *Election) setForceEra(mode Forcing) error {
	old, _, err := e.forceEra.Get()
	if err != nil {
		return err
	}
	logger.Debug("setting force era mode", "mode", mode)
	if err := e.forceEra.Set(mode); err != nil {
		return err
	}
	e.emit(ForceEra{Old: old, New: mode})
	return nil
}
