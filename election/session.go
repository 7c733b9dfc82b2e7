// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package election

import (
	"github.com/pkg/errors"

	"github.com/infrablockchain/elector/infra"
)

// NewSession plans the session index. It returns the validators of a new era
// when one is triggered, otherwise ok is false and the host keeps the queued set.
func (e *Election) NewSession(index SessionIndex) ([]infra.Address, bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.handleNewSession(index, false)
}

// NewSessionGenesis is NewSession called once at genesis.
func (e *Election) NewSessionGenesis(index SessionIndex) ([]infra.Address, bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.handleNewSession(index, true)
}

// StartSession only records the start of a session.
func (e *Election) StartSession(index SessionIndex) {
	logger.Info("⏰ starting session", "session", index)
}

// EndSession triggers reward distribution for the session, whether or not an era ends with it.
func (e *Election) EndSession(index SessionIndex) {
	logger.Info("⏰ ending session", "session", index)
	e.reward.DistributeReward(index)
}

func (e *Election) handleNewSession(index SessionIndex, isGenesis bool) (validators []infra.Address, ok bool, err error) {
	err = e.atomic(func() error {
		era, exists, err := e.currentEra.Get()
		if err != nil {
			return errors.Wrap(err, "load current era")
		}
		if !exists {
			logger.Debug("starting the first era", "session", index, "genesis", isGenesis)
			validators, err = e.triggerNewEra(index, 0)
			ok = err == nil
			return err
		}

		start, found, err := e.startSessions.Get(era)
		if err != nil {
			return errors.Wrap(err, "load start session index")
		}
		if !found {
			logger.Error("start session index must be set for current era", "era", era)
		}
		elapsed := index.sub(start)

		mode, _, err := e.forceEra.Get()
		if err != nil {
			return errors.Wrap(err, "load force era")
		}
		switch mode {
		case ForceNew, ForceAlways:
		case NotForcing:
			if elapsed < e.sessionsPerEra.Get() {
				return nil
			}
		default:
			return nil
		}

		validators, err = e.triggerNewEra(index, era.next())
		if err != nil {
			return err
		}
		ok = true

		// one-shot
		if mode == ForceNew {
			return e.setForceEra(NotForcing)
		}
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return validators, ok, nil
}

// triggerNewEra plans era starting at session index and elects its validators.
func (e *Election) triggerNewEra(index SessionIndex, era EraIndex) ([]infra.Address, error) {
	_, exists, err := e.startSessions.Get(era)
	if err != nil {
		return nil, errors.Wrap(err, "load start session index")
	}
	if exists {
		// the era counter saturated, an era start is never rewritten
		logger.Error("era index exhausted", "era", era)
		return e.electValidators(era)
	}

	if err := e.currentEra.Set(era); err != nil {
		return nil, errors.Wrap(err, "store current era")
	}
	if err := e.startSessions.Set(era, index); err != nil {
		return nil, errors.Wrap(err, "store start session index")
	}
	e.emit(NewEraTriggered{EraIndex: era})
	e.afterCommit(func() {
		metricCurrentEra().Set(int64(era))
		logger.Info("🗓 new era triggered", "era", era, "session", index)
	})

	return e.electValidators(era)
}
