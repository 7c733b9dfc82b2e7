// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package election

import "github.com/infrablockchain/elector/metrics"

var (
	metricEventsCount    = metrics.LazyLoadCounterVec("election_events_count", []string{"kind"})
	metricRejectedCount  = metrics.LazyLoadCounterVec("election_rejected_count", []string{"op"})
	metricCurrentEra     = metrics.LazyLoadGauge("election_current_era")
	metricValidatorsSize = metrics.LazyLoadHistogram("election_validators_size", metrics.BucketSetSize)
	metricPoolSize       = metrics.LazyLoadGaugeVec("election_pool_size", []string{"pool"})
)
