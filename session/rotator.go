// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package session simulates the host side of session rotation.
package session

import (
	"slices"
	"sync"

	"github.com/pkg/errors"

	"github.com/infrablockchain/elector/election"
	"github.com/infrablockchain/elector/infra"
	"github.com/infrablockchain/elector/log"
)

var logger = log.WithContext("pkg", "session")

// Rotator keeps the validators of the current session and the set queued
// for the next one. It drives a session manager in host order:
// end(i), start(i+1), plan(i+2).
type Rotator struct {
	mu         sync.Mutex
	index      election.SessionIndex
	validators []infra.Address
	queued     []infra.Address
	disabled   map[uint32]bool
	prunedTo   election.SessionIndex
}

var _ election.SessionInterface = (*Rotator)(nil)

// NewRotator creates a rotator at session 0 with the initial validators.
func NewRotator(initial []infra.Address) *Rotator {
	return &Rotator{
		validators: slices.Clone(initial),
		queued:     slices.Clone(initial),
		disabled:   make(map[uint32]bool),
	}
}

// NewRotatorAt resumes a rotator at the given session.
func NewRotatorAt(index election.SessionIndex, validators, queued []infra.Address) *Rotator {
	r := NewRotator(validators)
	r.index = index
	r.queued = slices.Clone(queued)
	return r
}

// Index returns the current session index.
func (r *Rotator) Index() election.SessionIndex {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.index
}

// Validators implements election.SessionInterface.
func (r *Rotator) Validators() []infra.Address {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.validators)
}

// Queued returns the validators of the next session.
func (r *Rotator) Queued() []infra.Address {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.queued)
}

// DisableValidator implements election.SessionInterface.
func (r *Rotator) DisableValidator(index uint32) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if int(index) >= len(r.validators) || r.disabled[index] {
		return false
	}
	r.disabled[index] = true
	logger.Debug("validator disabled", "index", index, "validator", r.validators[index])
	return true
}

// IsDisabled reports whether the validator at index is disabled in the current session.
func (r *Rotator) IsDisabled(index uint32) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.disabled[index]
}

// PruneHistoricalUpTo implements election.SessionInterface.
func (r *Rotator) PruneHistoricalUpTo(upTo election.SessionIndex) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if upTo > r.prunedTo {
		r.prunedTo = upTo
	}
}

// PrunedTo returns the first session index whose history is kept.
func (r *Rotator) PrunedTo() election.SessionIndex {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.prunedTo
}

// Genesis plans sessions 0 and 1. The set returned for session 0 becomes
// current, the one for session 1 is queued.
func (r *Rotator) Genesis(m election.SessionManager) error {
	validators, ok, err := m.NewSessionGenesis(0)
	if err != nil {
		return errors.Wrap(err, "plan session 0")
	}
	r.mu.Lock()
	if ok {
		r.validators = slices.Clone(validators)
	}
	r.queued = slices.Clone(r.validators)
	r.mu.Unlock()

	queued, ok, err := m.NewSessionGenesis(1)
	if err != nil {
		return errors.Wrap(err, "plan session 1")
	}
	if ok {
		r.mu.Lock()
		r.queued = slices.Clone(queued)
		r.mu.Unlock()
	}
	logger.Debug("genesis sessions planned", "validators", len(r.Validators()))
	return nil
}

// Rotate ends the current session, makes the queued validators current,
// starts the next session and plans the one after it.
// It returns the new session index.
func (r *Rotator) Rotate(m election.SessionManager) (election.SessionIndex, error) {
	r.mu.Lock()
	ending := r.index
	r.mu.Unlock()

	m.EndSession(ending)

	r.mu.Lock()
	r.index++
	started := r.index
	r.validators = r.queued
	r.disabled = make(map[uint32]bool)
	r.mu.Unlock()

	m.StartSession(started)

	next, ok, err := m.NewSession(started + 1)
	if err != nil {
		return started, errors.Wrapf(err, "plan session %d", started+1)
	}

	r.mu.Lock()
	if ok {
		r.queued = slices.Clone(next)
	} else {
		r.queued = slices.Clone(r.validators)
	}
	r.mu.Unlock()

	logger.Debug("session rotated", "session", started, "changed", ok)
	return started, nil
}
