// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package seedtrust

import (
	"github.com/pkg/errors"

	"github.com/infrablockchain/elector/infra"
	"github.com/infrablockchain/elector/storage"
)

const (
	slotPool       = "seed-trust-pool"
	slotValidators = "seed-trust-validators"
)

// Service manages the seed trust allowlist and its elected subset.
type Service struct {
	pool    *storage.Value[[]infra.Address]
	elected *storage.Value[[]infra.Address]
}

func New(sctx *storage.Context) *Service {
	return &Service{
		pool:    storage.NewValue[[]infra.Address](sctx, slotPool),
		elected: storage.NewValue[[]infra.Address](sctx, slotValidators),
	}
}

// Select returns the first count entries of pool, in pool order.
func Select(pool []infra.Address, count uint32) []infra.Address {
	n := min(int(count), len(pool))
	selected := make([]infra.Address, n)
	copy(selected, pool[:n])
	return selected
}

// Pool returns the whole allowlist.
func (s *Service) Pool() ([]infra.Address, error) {
	pool, _, err := s.pool.Get()
	if err != nil {
		return nil, errors.Wrap(err, "load seed trust pool")
	}
	return pool, nil
}

// SetPool replaces the allowlist.
func (s *Service) SetPool(pool []infra.Address) error {
	return s.pool.Set(pool)
}

// Add appends who to the allowlist. Duplicates are kept.
func (s *Service) Add(who infra.Address) error {
	pool, err := s.Pool()
	if err != nil {
		return err
	}
	return s.pool.Set(append(pool, who))
}

// Elected returns the current seed trust validators.
func (s *Service) Elected() ([]infra.Address, error) {
	elected, _, err := s.elected.Get()
	if err != nil {
		return nil, errors.Wrap(err, "load seed trust validators")
	}
	return elected, nil
}

// Elect selects the first count candidates of the allowlist.
// It reports false, returning the stored set, when the selection did not change.
func (s *Service) Elect(count uint32) ([]infra.Address, bool, error) {
	pool, err := s.Pool()
	if err != nil {
		return nil, false, err
	}
	selected := Select(pool, count)

	old, err := s.Elected()
	if err != nil {
		return nil, false, err
	}
	if infra.Addresses(old).Equal(selected) {
		return old, false, nil
	}
	if err := s.elected.Set(selected); err != nil {
		return nil, false, err
	}
	return selected, true, nil
}
