// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"sort"

	"github.com/pkg/errors"

	"github.com/infrablockchain/elector/election"
	"github.com/infrablockchain/elector/election/votes"
	"github.com/infrablockchain/elector/infra"
)

// Scenario scripts what happens during a simulation, session by session.
type Scenario struct {
	// Sessions is the number of rotations to run.
	Sessions uint32 `json:"sessions" yaml:"sessions"`
	Steps    []Step `json:"steps" yaml:"steps"`
}

// ValidatorCounts are the arguments of SetNumberOfValidators.
type ValidatorCounts struct {
	Total     uint32 `json:"total" yaml:"total"`
	SeedTrust uint32 `json:"seedTrust" yaml:"seedTrust"`
}

// Transaction is a dispatched transaction voting for Candidate.
type Transaction struct {
	Candidate    *infra.Address `json:"candidate,omitempty" yaml:"candidate,omitempty"`
	Weight       uint64         `json:"weight" yaml:"weight"`
	ActualWeight *uint64        `json:"actualWeight,omitempty" yaml:"actualWeight,omitempty"`
}

// Step is applied during session Session, before the rotation that ends it.
// Actions run in field order.
type Step struct {
	Session uint32 `json:"session" yaml:"session"`
	// Origin issues the privileged actions, the genesis executor when nil.
	Origin *infra.Address `json:"origin,omitempty" yaml:"origin,omitempty"`

	SetNumberOfValidators  *ValidatorCounts  `json:"setNumberOfValidators,omitempty" yaml:"setNumberOfValidators,omitempty"`
	AddSeedTrustValidators []infra.Address   `json:"addSeedTrustValidators,omitempty" yaml:"addSeedTrustValidators,omitempty"`
	SetMinVotePoints       *uint64           `json:"setMinVotePoints,omitempty" yaml:"setMinVotePoints,omitempty"`
	SetPoolStatus          *election.Pool    `json:"setPoolStatus,omitempty" yaml:"setPoolStatus,omitempty"`
	SetForceEra            *election.Forcing `json:"setForceEra,omitempty" yaml:"setForceEra,omitempty"`
	Votes                  []votes.Entry     `json:"votes,omitempty" yaml:"votes,omitempty"`
	Transactions           []Transaction     `json:"transactions,omitempty" yaml:"transactions,omitempty"`
}

// LoadScenario reads a scenario from a JSON or YAML file.
func LoadScenario(path string) (*Scenario, error) {
	var s Scenario
	if err := decodeFile(path, &s); err != nil {
		return nil, errors.Wrap(err, "load scenario")
	}
	s.normalize()
	return &s, nil
}

// normalize orders steps by session and extends Sessions to cover every step.
func (s *Scenario) normalize() {
	sort.SliceStable(s.Steps, func(i, j int) bool {
		return s.Steps[i].Session < s.Steps[j].Session
	})
	for _, step := range s.Steps {
		if step.Session >= s.Sessions {
			s.Sessions = step.Session + 1
		}
	}
}

// StepsAt returns the steps of the given session.
func (s *Scenario) StepsAt(session uint32) []Step {
	i := sort.Search(len(s.Steps), func(i int) bool { return s.Steps[i].Session >= session })
	j := i
	for j < len(s.Steps) && s.Steps[j].Session == session {
		j++
	}
	return s.Steps[i:j]
}
