// Copyright (c) 2026 The StakeVault developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package rnt

import "math/big"

// Constants of the staking engine.
const (
	SecondsPerDay uint64 = 86400 // accrual granularity of the rate strategy.

	TokenDecimals = 18

	// DefaultLockPeriod is the duration over which a reward grant linearly unlocks.
	DefaultLockPeriod uint64 = 30 * SecondsPerDay
)

// Keys of governance params.
var (
	KeyPaused          = BytesToBytes32([]byte("paused"))
	KeyRewardRate      = BytesToBytes32([]byte("reward-rate"))
	KeyRewardPerSec    = BytesToBytes32([]byte("reward-per-sec"))
	KeyAccrualStrategy = BytesToBytes32([]byte("accrual-strategy"))

	// KeyGenesisID records the ID of the genesis that initialized the state,
	// to reject reuse of a data directory with a different genesis.
	KeyGenesisID = BytesToBytes32([]byte("genesis-id"))

	// RatePrecision scales the per-day reward rate. A rate equal to RatePrecision
	// accrues one reward unit per staked unit per day.
	RatePrecision = big.NewInt(1e18)

	// PoolPrecision scales the pool strategy's cumulative reward-per-share
	// accumulator. Applied once on accumulation, divided out once on payout.
	PoolPrecision = big.NewInt(1e18)

	InitialRewardRate   = big.NewInt(1e18) // 1 reward unit per staked unit per day.
	InitialRewardPerSec = big.NewInt(1e16)

	// MaxRewardRate upper bound accepted by rate updates.
	MaxRewardRate = new(big.Int).Mul(big.NewInt(1000), RatePrecision)

	// InitialTokenCap hard cap of the token supply, 1 billion whole tokens.
	InitialTokenCap = new(big.Int).Mul(big.NewInt(1e9), big.NewInt(1e18))
)
