// Copyright (c) 2026 The StakeVault developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"math/big"
)

// Accrual strategies selectable via the accrual-strategy param.
const (
	// StrategyRate accrues per-day rate rewards into vesting grants.
	StrategyRate = uint64(iota)
	// StrategyPool accrues share-based rewards, paid by direct mint on claim.
	StrategyPool
)

// StakeInfo is the per-user staking record. RewardDebt and Unclaimed belong
// to the pool strategy and stay zero under the rate strategy. RewardDebt is
// the accumulator value already attributed to the user, in the same scale as
// the accumulator itself.
type StakeInfo struct {
	Amount         *big.Int
	LastRewardTime uint64
	RewardDebt     *big.Int
	Unclaimed      *big.Int
}

func newStakeInfo() *StakeInfo {
	return &StakeInfo{
		Amount:     new(big.Int),
		RewardDebt: new(big.Int),
		Unclaimed:  new(big.Int),
	}
}

// IsEmpty reports whether the record carries no information, in which case
// its storage slot is released.
func (i *StakeInfo) IsEmpty() bool {
	return i.Amount.Sign() == 0 &&
		i.LastRewardTime == 0 &&
		i.RewardDebt.Sign() == 0 &&
		i.Unclaimed.Sign() == 0
}

// Staked reports whether the user currently holds a stake.
func (i *StakeInfo) Staked() bool {
	return i.Amount.Sign() > 0
}
