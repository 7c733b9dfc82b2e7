// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package reverts

import (
	"errors"
)

// ErrRevert is a rejection of an operation, raised before any state is written.
type ErrRevert struct {
	message string
}

func New(message string) *ErrRevert {
	return &ErrRevert{
		message: message,
	}
}

func (e *ErrRevert) Error() string {
	return e.message
}

func IsRevertErr(err any) bool {
	if err == nil {
		return false
	}
	e, ok := err.(error)
	if !ok {
		return false
	}
	var ve *ErrRevert
	return errors.As(e, &ve)
}

var (
	// ErrBadOrigin the caller is not the privileged origin.
	ErrBadOrigin = New("bad origin")
	// ErrSeedTrustExceedMaxValidators number of seed trust validators should be less or equal to total number of validators.
	ErrSeedTrustExceedMaxValidators = New("seed trust validators exceed max validators")
	// ErrLessThanCurrentValidatorsNum total validators num should be greater or equal to number of current validators.
	ErrLessThanCurrentValidatorsNum = New("less than current validators num")
	// ErrBadTransactionParams some parameters are bad.
	ErrBadTransactionParams = New("bad transaction params")
)
