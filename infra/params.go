// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package infra

// Constants of the election engine.
const (
	DefaultSessionsPerEra uint32 = 6 // sessions composing one era unless overridden.

	MaxSeedTrustValidators uint32 = 100 // upper bound accepted in genesis files.
)

// Executor is the default privileged origin. Configuration mutations are only
// accepted when issued by this account, unless genesis names another one.
var Executor = BytesToAddress([]byte("Executor"))
