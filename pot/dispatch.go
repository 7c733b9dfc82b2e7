// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pot

import "github.com/infrablockchain/elector/infra"

// DispatchInfo is the cost declared for a transaction before execution.
type DispatchInfo struct {
	Weight uint64
}

// PostDispatchInfo is the cost reported after execution.
type PostDispatchInfo struct {
	// ActualWeight is nil if the call did not report its consumption.
	ActualWeight *uint64
}

// CalcActualWeight returns the consumed weight, never more than declared.
func (p PostDispatchInfo) CalcActualWeight(info DispatchInfo) uint64 {
	if p.ActualWeight == nil {
		return info.Weight
	}
	return min(*p.ActualWeight, info.Weight)
}

// CollectVote is attached to a transaction and names the candidate
// that receives the transaction's weight.
type CollectVote struct {
	Candidate *infra.Address
}

// NewCollectVote creates a CollectVote for the candidate. Nil means no vote.
func NewCollectVote(candidate *infra.Address) CollectVote {
	if candidate == nil {
		return CollectVote{}
	}
	c := *candidate
	return CollectVote{Candidate: &c}
}

// Validate always passes. Voting never makes a transaction invalid.
func (CollectVote) Validate() error { return nil }

// PreDispatch captures the candidate before execution.
func (v CollectVote) PreDispatch() *Pre {
	if v.Candidate == nil {
		return &Pre{}
	}
	return &Pre{candidate: *v.Candidate, hasCandidate: true}
}

// Pre is the state carried from pre to post dispatch.
type Pre struct {
	candidate    infra.Address
	hasCandidate bool
}

// Candidate returns the captured candidate.
func (p *Pre) Candidate() (infra.Address, bool) {
	if p == nil {
		return infra.Address{}, false
	}
	return p.candidate, p.hasCandidate
}
