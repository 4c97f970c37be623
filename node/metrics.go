// Copyright (c) 2026 The StakeVault developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package node

import (
	"github.com/rewardnet/stakevault/metrics"
)

var (
	metricOpCount    = metrics.LazyLoadCounterVec("operation_count", []string{"op", "status"})
	metricOpDuration = metrics.LazyLoadHistogramVec("operation_duration_ms", []string{"op"}, metrics.Bucket10s)

	metricTotalStaked = metrics.LazyLoadGauge("total_staked_tokens")
	metricTotalLocked = metrics.LazyLoadGauge("total_locked_tokens")
	metricTotalSupply = metrics.LazyLoadGauge("total_supply_tokens")
)
