// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package election

import "github.com/infrablockchain/elector/infra"

// SessionInterface is the session membership provider.
type SessionInterface interface {
	// DisableValidator disables the validator at the given index, returns false if the validator was already
	// disabled or the index is out of bounds.
	DisableValidator(index uint32) bool
	// Validators returns the validators of the current session.
	Validators() []infra.Address
	// PruneHistoricalUpTo prunes historical session data up to but not including the given index.
	PruneHistoricalUpTo(upTo SessionIndex)
}

// CollectiveInterface receives the new member list after each election that changed it.
type CollectiveInterface interface {
	SetNewMembers(members []infra.Address)
}

// RewardInterface handles fee reward.
type RewardInterface interface {
	// AggregateReward aggregates a fee for the given session.
	AggregateReward(session SessionIndex, paraID ParaID, token SystemTokenID, amount uint64)
	// DistributeReward distributes the fees of the session to its validators.
	DistributeReward(session SessionIndex)
}

// VotingInterface feeds the proof-of-transaction ledger.
type VotingInterface interface {
	UpdateVoteStatus(who infra.Address, weight uint64) error
}

// SessionManager is driven by the host at session boundaries.
// The host calls EndSession(i), StartSession(i+1) and NewSession(i+2) in this order.
type SessionManager interface {
	// NewSession plans session index, optionally returning the validators to queue.
	NewSession(index SessionIndex) ([]infra.Address, bool, error)
	// NewSessionGenesis is NewSession called at genesis.
	NewSessionGenesis(index SessionIndex) ([]infra.Address, bool, error)
	StartSession(index SessionIndex)
	EndSession(index SessionIndex)
}

// NoopSession reports no validators and accepts every disable request.
type NoopSession struct{}

func (NoopSession) DisableValidator(uint32) bool     { return true }
func (NoopSession) Validators() []infra.Address      { return nil }
func (NoopSession) PruneHistoricalUpTo(SessionIndex) {}

type NoopCollective struct{}

func (NoopCollective) SetNewMembers([]infra.Address) {}

type NoopReward struct{}

func (NoopReward) AggregateReward(SessionIndex, ParaID, SystemTokenID, uint64) {}
func (NoopReward) DistributeReward(SessionIndex)                               {}

type NoopVoting struct{}

func (NoopVoting) UpdateVoteStatus(infra.Address, uint64) error { return nil }
