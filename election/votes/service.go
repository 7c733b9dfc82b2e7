// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package votes

import (
	"github.com/pkg/errors"

	"github.com/infrablockchain/elector/infra"
	"github.com/infrablockchain/elector/storage"
)

const (
	slotPotValidatorPool = "pot-validator-pool"
	slotPotValidators    = "pot-validators"
	slotMinPoints        = "min-vote-points-threshold"
)

// Outcome is the result of a proof-of-transaction election.
type Outcome uint8

const (
	// Elected a new set was stored.
	Elected Outcome = iota
	// Unchanged the set equals the stored one.
	Unchanged
	// Empty no candidate qualified.
	Empty
)

func (o Outcome) String() string {
	switch o {
	case Elected:
		return "elected"
	case Unchanged:
		return "unchanged"
	default:
		return "empty"
	}
}

// Service persists the voting status, the elected proof-of-transaction
// validators and the minimum points threshold.
type Service struct {
	pool      *storage.Value[VotingStatus]
	elected   *storage.Value[[]infra.Address]
	threshold *storage.Value[uint64]
}

func New(sctx *storage.Context) *Service {
	return &Service{
		pool:      storage.NewValue[VotingStatus](sctx, slotPotValidatorPool),
		elected:   storage.NewValue[[]infra.Address](sctx, slotPotValidators),
		threshold: storage.NewValue[uint64](sctx, slotMinPoints),
	}
}

// Pool returns the stored voting status. An empty status is returned if never written.
func (s *Service) Pool() (*VotingStatus, error) {
	status, _, err := s.pool.Get()
	if err != nil {
		return nil, errors.Wrap(err, "load voting status")
	}
	return &status, nil
}

// AddPoints adds points to who in the stored voting status.
func (s *Service) AddPoints(who infra.Address, points uint64) error {
	status, err := s.Pool()
	if err != nil {
		return err
	}
	status.AddPoints(who, points)
	return s.pool.Set(*status)
}

// Reset replaces the voting status by the given entries, merging duplicates.
func (s *Service) Reset(entries []Entry) error {
	var status VotingStatus
	for _, e := range entries {
		status.AddPoints(e.Who, e.Points)
	}
	return s.pool.Set(status)
}

func (s *Service) Threshold() (uint64, error) {
	v, _, err := s.threshold.Get()
	return v, err
}

// SetThreshold stores the threshold and returns the previous one.
func (s *Service) SetThreshold(v uint64) (uint64, error) {
	old, err := s.Threshold()
	if err != nil {
		return 0, err
	}
	return old, s.threshold.Set(v)
}

// Elected returns the currently elected proof-of-transaction validators.
func (s *Service) Elected() ([]infra.Address, error) {
	v, _, err := s.elected.Get()
	return v, err
}

func (s *Service) SetElected(validators []infra.Address) error {
	return s.elected.Set(validators)
}

// Elect selects up to n validators by points. An empty selection is not stored.
func (s *Service) Elect(n uint32) ([]infra.Address, Outcome, error) {
	status, err := s.Pool()
	if err != nil {
		return nil, Empty, err
	}
	threshold, err := s.Threshold()
	if err != nil {
		return nil, Empty, err
	}

	status.SortByVotePoints()
	elected := status.TopValidators(n, threshold)
	if len(elected) == 0 {
		return elected, Empty, nil
	}

	old, err := s.Elected()
	if err != nil {
		return nil, Empty, err
	}
	if infra.Addresses(old).Equal(elected) {
		return old, Unchanged, nil
	}
	if err := s.SetElected(elected); err != nil {
		return nil, Empty, err
	}
	return elected, Elected, nil
}
