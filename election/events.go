// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package election

import (
	"github.com/infrablockchain/elector/infra"
)

// Event is a notification emitted by the election engine.
type Event interface {
	Kind() string
}

// Emitter receives events. Emit must not fail.
type Emitter interface {
	Emit(ev Event)
}

// EmitterFunc adapts a function to Emitter.
type EmitterFunc func(ev Event)

func (f EmitterFunc) Emit(ev Event) { f(ev) }

// LogEmitter writes every event to the package logger.
type LogEmitter struct{}

func (LogEmitter) Emit(ev Event) {
	logger.Info("📣 "+ev.Kind(), "event", ev)
}

// MultiEmitter forwards events to all emitters in order.
func MultiEmitter(emitters ...Emitter) Emitter {
	return EmitterFunc(func(ev Event) {
		for _, e := range emitters {
			e.Emit(ev)
		}
	})
}

type (
	// VotePointsAdded points have been added for a candidate validator.
	VotePointsAdded struct {
		Who    infra.Address `json:"who"`
		Points uint64        `json:"points"`
	}
	// TotalValidatorsNumChanged the total number of validators has been changed.
	TotalValidatorsNumChanged struct {
		Old uint32 `json:"old"`
		New uint32 `json:"new"`
	}
	// SeedTrustNumChanged the number of seed trust validators has been changed.
	SeedTrustNumChanged struct {
		Old uint32 `json:"old"`
		New uint32 `json:"new"`
	}
	// SeedTrustAdded a seed trust validator has been added to the pool.
	SeedTrustAdded struct {
		Who infra.Address `json:"who"`
	}
	// ValidatorsElected a new validator set has been elected.
	ValidatorsElected struct {
		Validators []infra.Address `json:"validators"`
		PotEnabled bool            `json:"potEnabled"`
	}
	// SeedTrustValidatorsElected seed trust validators have been elected.
	SeedTrustValidatorsElected struct {
		Validators []infra.Address `json:"validators"`
	}
	// PotValidatorsElected validators have been elected by proof-of-transaction.
	PotValidatorsElected struct {
		Validators []infra.Address `json:"validators"`
	}
	// MinVotePointsChanged the minimum vote points threshold has been set.
	MinVotePointsChanged struct {
		Old uint64 `json:"old"`
		New uint64 `json:"new"`
	}
	// ValidatorsNotChanged an election produced the set already in place.
	ValidatorsNotChanged struct{}
	// EmptyPotValidatorPool no proof-of-transaction candidate qualified.
	EmptyPotValidatorPool struct{}
	// ForceEra a new force era mode was set.
	ForceEra struct {
		Old Forcing `json:"old"`
		New Forcing `json:"new"`
	}
	// NewEraTriggered a new era has been planned.
	NewEraTriggered struct {
		EraIndex EraIndex `json:"eraIndex"`
	}
	// PoolStatusSet a new pool status has been set.
	PoolStatusSet struct {
		Old Pool `json:"old"`
		New Pool `json:"new"`
	}
)

func (VotePointsAdded) Kind() string            { return "VotePointsAdded" }
func (TotalValidatorsNumChanged) Kind() string  { return "TotalValidatorsNumChanged" }
func (SeedTrustNumChanged) Kind() string        { return "SeedTrustNumChanged" }
func (SeedTrustAdded) Kind() string             { return "SeedTrustAdded" }
func (ValidatorsElected) Kind() string          { return "ValidatorsElected" }
func (SeedTrustValidatorsElected) Kind() string { return "SeedTrustValidatorsElected" }
func (PotValidatorsElected) Kind() string       { return "PotValidatorsElected" }
func (MinVotePointsChanged) Kind() string       { return "MinVotePointsChanged" }
func (ValidatorsNotChanged) Kind() string       { return "ValidatorsNotChanged" }
func (EmptyPotValidatorPool) Kind() string      { return "EmptyPotValidatorPool" }
func (ForceEra) Kind() string                   { return "ForceEra" }
func (NewEraTriggered) Kind() string            { return "NewEraTriggered" }
func (PoolStatusSet) Kind() string              { return "PoolStatusSet" }
