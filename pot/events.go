// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pot

import "github.com/infrablockchain/elector/infra"

// VoteCollected is emitted after a transaction's weight was added.
// Weight is the candidate's new cumulative tally.
type VoteCollected struct {
	Candidate infra.Address `json:"candidate"`
	Weight    uint64        `json:"weight"`
}

func (VoteCollected) Kind() string { return "VoteCollected" }
