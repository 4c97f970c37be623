// Copyright (c) 2026 The StakeVault developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"math/big"

	"github.com/holiman/uint256"

	"github.com/rewardnet/stakevault/builtin/reverts"
	"github.com/rewardnet/stakevault/rnt"
)

var (
	poolPrecision = uint256.MustFromBig(rnt.PoolPrecision)
	secondsPerDay = new(big.Int).SetUint64(rnt.SecondsPerDay)
)

func toU256(x *big.Int) (*uint256.Int, error) {
	v, overflow := uint256.FromBig(x)
	if overflow {
		return nil, &reverts.Overflow{}
	}
	return v, nil
}

// rateReward computes the rate strategy reward for pendingTime seconds.
// The per-day amount truncates before scaling by time; the order matters for
// rounding and must not be swapped.
func rateReward(amount, rate *big.Int, pendingTime uint64) *big.Int {
	reward := new(big.Int).Mul(amount, rate)
	reward.Div(reward, rnt.RatePrecision)
	reward.Mul(reward, new(big.Int).SetUint64(pendingTime))
	return reward.Div(reward, secondsPerDay)
}

// settleRate finalizes pending rate accrual into a vault grant. The clock
// advances even when the reward truncates to zero, so a later balance change
// never accrues retroactively over the settled interval.
func (s *Staking) settleRate(user rnt.Address, info *StakeInfo) error {
	now := s.env.Now()
	if now <= info.LastRewardTime {
		return nil
	}
	rate, err := s.params.Get(rnt.KeyRewardRate)
	if err != nil {
		return err
	}
	reward := rateReward(info.Amount, rate, now-info.LastRewardTime)
	if reward.Sign() > 0 {
		if _, err := s.vault.MintGrant(s.addr, user, reward); err != nil {
			return err
		}
	}
	info.LastRewardTime = now
	return nil
}

// accrueDelta computes elapsed * rewardPerSec * PoolPrecision / totalStaked
// on 256-bit words, failing on overflow instead of wrapping.
func accrueDelta(elapsed uint64, rewardPerSec, totalStaked *big.Int) (*uint256.Int, error) {
	rps, err := toU256(rewardPerSec)
	if err != nil {
		return nil, err
	}
	total, err := toU256(totalStaked)
	if err != nil {
		return nil, err
	}
	var delta uint256.Int
	if _, overflow := delta.MulOverflow(uint256.NewInt(elapsed), rps); overflow {
		return nil, &reverts.Overflow{}
	}
	if _, overflow := delta.MulOverflow(&delta, poolPrecision); overflow {
		return nil, &reverts.Overflow{}
	}
	return delta.Div(&delta, total), nil
}

// projectedAcc computes the pool accumulator as if refreshed now, without
// touching state.
func (s *Staking) projectedAcc() (*big.Int, error) {
	acc, err := s.accPerShare.Get()
	if err != nil {
		return nil, err
	}
	last, err := s.lastUpdate.Get()
	if err != nil {
		return nil, err
	}
	now := s.env.Now()
	if now <= last.Uint64() {
		return acc, nil
	}
	total, err := s.totalStaked.Get()
	if err != nil {
		return nil, err
	}
	if total.Sign() == 0 {
		return acc, nil
	}
	rps, err := s.params.Get(rnt.KeyRewardPerSec)
	if err != nil {
		return nil, err
	}
	delta, err := accrueDelta(now-last.Uint64(), rps, total)
	if err != nil {
		return nil, err
	}
	a, err := toU256(acc)
	if err != nil {
		return nil, err
	}
	var sum uint256.Int
	if _, overflow := sum.AddOverflow(a, delta); overflow {
		return nil, &reverts.Overflow{}
	}
	return sum.ToBig(), nil
}

// refreshPool persists the projected accumulator and advances the global
// checkpoint. The checkpoint advances even while nothing is staked, so an
// empty interval never mints to anyone.
func (s *Staking) refreshPool() (*big.Int, error) {
	acc, err := s.projectedAcc()
	if err != nil {
		return nil, err
	}
	if err := s.accPerShare.Set(acc); err != nil {
		return nil, err
	}
	if err := s.lastUpdate.Set(new(big.Int).SetUint64(s.env.Now())); err != nil {
		return nil, err
	}
	return acc, nil
}

// pendingOf computes amount * (acc - debt) / PoolPrecision.
func pendingOf(info *StakeInfo, acc *big.Int) (*big.Int, error) {
	if !info.Staked() {
		return new(big.Int), nil
	}
	a, err := toU256(acc)
	if err != nil {
		return nil, err
	}
	debt, err := toU256(info.RewardDebt)
	if err != nil {
		return nil, err
	}
	amount, err := toU256(info.Amount)
	if err != nil {
		return nil, err
	}
	var diff uint256.Int
	if _, underflow := diff.SubOverflow(a, debt); underflow {
		return nil, &reverts.Overflow{}
	}
	var pending uint256.Int
	if _, overflow := pending.MulOverflow(amount, &diff); overflow {
		return nil, &reverts.Overflow{}
	}
	pending.Div(&pending, poolPrecision)
	return pending.ToBig(), nil
}

// settlePool refreshes the accumulator, folds the user's pending share into
// Unclaimed and snapshots the accumulator as the new RewardDebt. The debt is
// amount-independent, so callers may change the balance afterwards.
func (s *Staking) settlePool(info *StakeInfo) error {
	acc, err := s.refreshPool()
	if err != nil {
		return err
	}
	pending, err := pendingOf(info, acc)
	if err != nil {
		return err
	}
	if pending.Sign() > 0 {
		info.Unclaimed = new(big.Int).Add(info.Unclaimed, pending)
	}
	info.RewardDebt = new(big.Int).Set(acc)
	return nil
}

// PendingReward projects the reward the user would settle right now, without
// state change.
func (s *Staking) PendingReward(user rnt.Address) (*big.Int, error) {
	info, err := s.GetStakeInfo(user)
	if err != nil {
		return nil, err
	}
	switch s.strategy {
	case StrategyPool:
		acc, err := s.projectedAcc()
		if err != nil {
			return nil, err
		}
		pending, err := pendingOf(info, acc)
		if err != nil {
			return nil, err
		}
		return pending.Add(pending, info.Unclaimed), nil
	default:
		if !info.Staked() {
			return new(big.Int), nil
		}
		now := s.env.Now()
		if now <= info.LastRewardTime {
			return new(big.Int), nil
		}
		rate, err := s.params.Get(rnt.KeyRewardRate)
		if err != nil {
			return nil, err
		}
		return rateReward(info.Amount, rate, now-info.LastRewardTime), nil
	}
}
