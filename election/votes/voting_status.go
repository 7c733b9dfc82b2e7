// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package votes

import (
	"math"
	"sort"

	"github.com/holiman/uint256"

	"github.com/infrablockchain/elector/infra"
)

// Entry is the accumulated points of one candidate.
type Entry struct {
	Who    infra.Address `json:"who" yaml:"who"`
	Points uint64        `json:"points" yaml:"points"`
}

// VotingStatus is the ledger ranking proof-of-transaction candidates.
// A candidate appears at most once.
type VotingStatus struct {
	Status []Entry
}

// SaturatingAdd returns a+b, or MaxUint64 on overflow.
func SaturatingAdd(a, b uint64) uint64 {
	if a > math.MaxUint64-b {
		return math.MaxUint64
	}
	return a + b
}

// AddPoints adds points to who, appending a new entry if absent.
func (v *VotingStatus) AddPoints(who infra.Address, points uint64) {
	for i := range v.Status {
		if v.Status[i].Who == who {
			v.Status[i].Points = SaturatingAdd(v.Status[i].Points, points)
			return
		}
	}
	v.Status = append(v.Status, Entry{Who: who, Points: points})
}

// Counts returns the number of candidates.
func (v *VotingStatus) Counts() int {
	return len(v.Status)
}

// SortByVotePoints sorts in decreasing order of points.
// Candidates with equal points keep their ledger order.
func (v *VotingStatus) SortByVotePoints() {
	sort.SliceStable(v.Status, func(i, j int) bool {
		return v.Status[i].Points > v.Status[j].Points
	})
}

// TopValidators returns up to n candidates from the head of the ledger
// having at least threshold points.
//
// SortByVotePoints must be called first.
func (v *VotingStatus) TopValidators(n uint32, threshold uint64) []infra.Address {
	top := make([]infra.Address, 0, min(int(n), len(v.Status)))
	for i := 0; i < len(v.Status) && i < int(n); i++ {
		if v.Status[i].Points >= threshold {
			top = append(top, v.Status[i].Who)
		}
	}
	return top
}

// TotalPoints returns the exact sum of all points.
func (v *VotingStatus) TotalPoints() *uint256.Int {
	total := new(uint256.Int)
	for _, e := range v.Status {
		total.Add(total, uint256.NewInt(e.Points))
	}
	return total
}
