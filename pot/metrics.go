// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pot

import "github.com/infrablockchain/elector/metrics"

var (
	metricVotesCount = metrics.LazyLoadCounterVec("pot_votes_count", []string{"result"})
	metricWeightSum  = metrics.LazyLoadCounter("pot_weight_sum")
)
