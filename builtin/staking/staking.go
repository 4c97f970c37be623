// Copyright (c) 2026 The StakeVault developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package staking implements the accrual engine. Users stake RNT into the
// contract's custody and accrue rewards for staked time, under one of two
// strategies: per-day rate rewards vesting through the vault, or share-based
// pool rewards minted directly on claim.
package staking

import (
	"math/big"

	"github.com/rewardnet/stakevault/builtin/params"
	"github.com/rewardnet/stakevault/builtin/reverts"
	"github.com/rewardnet/stakevault/builtin/solidity"
	"github.com/rewardnet/stakevault/builtin/token"
	"github.com/rewardnet/stakevault/builtin/vault"
	"github.com/rewardnet/stakevault/rnt"
	"github.com/rewardnet/stakevault/xenv"
)

// Authorizer gates the administrative entry points.
type Authorizer interface {
	RequireOwner(caller rnt.Address) error
}

var (
	slotStakes      = rnt.BytesToBytes32([]byte("stakes"))
	slotTotalStaked = rnt.BytesToBytes32([]byte("total-staked"))
	slotAccPerShare = rnt.BytesToBytes32([]byte("acc-reward-per-share"))
	slotLastUpdate  = rnt.BytesToBytes32([]byte("last-update-time"))
	slotGuard       = rnt.BytesToBytes32([]byte("guard"))
)

// Staking implements native methods of the `Staking` contract.
type Staking struct {
	addr        rnt.Address
	env         *xenv.Environment
	sctx        *solidity.Context
	token       *token.Token
	vault       *vault.Vault
	params      *params.Params
	auth        Authorizer
	stakes      *solidity.Mapping[rnt.Address, *StakeInfo]
	totalStaked *solidity.Uint256
	accPerShare *solidity.Uint256
	lastUpdate  *solidity.Uint256
	guard       *solidity.Bool
	strategy    uint64
}

// New create a new instance bound to the given environment. The strategy is
// read from the accrual-strategy param once per binding.
func New(addr rnt.Address, env *xenv.Environment, tok *token.Token, vlt *vault.Vault, par *params.Params, auth Authorizer) (*Staking, error) {
	sctx := solidity.NewContext(addr, env.State())
	strategy, err := par.GetUint64(rnt.KeyAccrualStrategy)
	if err != nil {
		return nil, err
	}
	return &Staking{
		addr:        addr,
		env:         env,
		sctx:        sctx,
		token:       tok,
		vault:       vlt,
		params:      par,
		auth:        auth,
		stakes:      solidity.NewMapping[rnt.Address, *StakeInfo](sctx, slotStakes),
		totalStaked: solidity.NewUint256(sctx, slotTotalStaked),
		accPerShare: solidity.NewUint256(sctx, slotAccPerShare),
		lastUpdate:  solidity.NewUint256(sctx, slotLastUpdate),
		guard:       solidity.NewBool(sctx, slotGuard),
		strategy:    strategy,
	}, nil
}

// Address returns the contract address.
func (s *Staking) Address() rnt.Address {
	return s.addr
}

// Strategy returns the active accrual strategy.
func (s *Staking) Strategy() uint64 {
	return s.strategy
}

func (s *Staking) enter() error {
	locked, err := s.guard.Get()
	if err != nil {
		return err
	}
	if locked {
		return &reverts.Reentrancy{}
	}
	s.guard.Set(true)
	return nil
}

func (s *Staking) leave() {
	s.guard.Set(false)
}

func (s *Staking) paused() (bool, error) {
	return s.params.GetBool(rnt.KeyPaused)
}

func (s *Staking) requireNotPaused() error {
	paused, err := s.paused()
	if err != nil {
		return err
	}
	if paused {
		return &reverts.Paused{}
	}
	return nil
}

func checkAmount(amount *big.Int) error {
	if amount.Sign() < 0 || amount.BitLen() > 256 {
		return &reverts.Overflow{}
	}
	return nil
}

//
// Getters - no state change
//

// GetStakeInfo returns the staking record of user, zero-valued when the user
// never staked.
func (s *Staking) GetStakeInfo(user rnt.Address) (*StakeInfo, error) {
	info, err := s.stakes.Get(user)
	if err != nil {
		return nil, err
	}
	if info == nil {
		return newStakeInfo(), nil
	}
	return info, nil
}

// TotalStaked returns the total amount currently held in custody.
func (s *Staking) TotalStaked() (*big.Int, error) {
	return s.totalStaked.Get()
}

//
// Mutations
//

// Stake pulls amount from the user into custody and starts accruing on it.
// A user entering from the unstaked state starts a fresh accrual clock with
// no settlement, as there is nothing to accrue yet.
func (s *Staking) Stake(user rnt.Address, amount *big.Int) error {
	if err := s.enter(); err != nil {
		return err
	}
	defer s.leave()
	if err := s.requireNotPaused(); err != nil {
		return err
	}
	return s.stake(user, amount)
}

// StakeWithPermit runs a permit for the staking contract over amount before
// the stake, so a single call both authorizes and deposits.
func (s *Staking) StakeWithPermit(user rnt.Address, amount *big.Int, deadline uint64, sig []byte) error {
	if err := s.enter(); err != nil {
		return err
	}
	defer s.leave()
	if err := s.requireNotPaused(); err != nil {
		return err
	}
	if err := s.token.Permit(user, s.addr, amount, deadline, sig); err != nil {
		return err
	}
	return s.stake(user, amount)
}

func (s *Staking) stake(user rnt.Address, amount *big.Int) error {
	if amount.Sign() == 0 {
		return &reverts.CannotStakeZero{}
	}
	if err := checkAmount(amount); err != nil {
		return err
	}
	info, err := s.GetStakeInfo(user)
	if err != nil {
		return err
	}

	switch s.strategy {
	case StrategyPool:
		if err := s.settlePool(info); err != nil {
			return err
		}
	default:
		if !info.Staked() {
			info.LastRewardTime = s.env.Now()
		} else if err := s.settleRate(user, info); err != nil {
			return err
		}
	}

	if err := s.token.TransferFrom(s.addr, user, s.addr, amount); err != nil {
		return err
	}
	info.Amount = new(big.Int).Add(info.Amount, amount)
	if err := s.totalStaked.Add(amount); err != nil {
		return err
	}
	if err := s.stakes.Set(user, info); err != nil {
		return err
	}
	s.logStaked(user, amount, info.Amount)
	return nil
}

// Unstake settles pending accrual, pushes amount back to the user and
// shrinks the stake. Unstaking the full amount returns the user to the
// unstaked state.
func (s *Staking) Unstake(user rnt.Address, amount *big.Int) error {
	if err := s.enter(); err != nil {
		return err
	}
	defer s.leave()
	if err := s.requireNotPaused(); err != nil {
		return err
	}
	if err := checkAmount(amount); err != nil {
		return err
	}
	info, err := s.GetStakeInfo(user)
	if err != nil {
		return err
	}
	if amount.Sign() == 0 || amount.Cmp(info.Amount) > 0 {
		return &reverts.InvalidAmount{Requested: amount, Staked: info.Amount}
	}

	switch s.strategy {
	case StrategyPool:
		if err := s.settlePool(info); err != nil {
			return err
		}
	default:
		if err := s.settleRate(user, info); err != nil {
			return err
		}
	}

	if err := s.token.Transfer(s.addr, user, amount); err != nil {
		return err
	}
	info.Amount = new(big.Int).Sub(info.Amount, amount)
	if err := s.totalStaked.Sub(amount); err != nil {
		return err
	}
	if err := s.stakes.Set(user, info); err != nil {
		return err
	}
	s.logUnstaked(user, amount, info.Amount)
	return nil
}

// ClaimReward settles pending accrual. Under the rate strategy the reward
// lands in the vault as a fresh grant; under the pool strategy the unclaimed
// balance is minted to the user directly.
func (s *Staking) ClaimReward(user rnt.Address) error {
	if err := s.enter(); err != nil {
		return err
	}
	defer s.leave()
	if err := s.requireNotPaused(); err != nil {
		return err
	}
	info, err := s.GetStakeInfo(user)
	if err != nil {
		return err
	}

	switch s.strategy {
	case StrategyPool:
		if err := s.settlePool(info); err != nil {
			return err
		}
		payout := info.Unclaimed
		info.Unclaimed = new(big.Int)
		if err := s.stakes.Set(user, info); err != nil {
			return err
		}
		if payout.Sign() > 0 {
			if err := s.token.Mint(s.addr, user, payout); err != nil {
				return err
			}
			s.logRewardClaimed(user, payout)
		}
		return nil
	default:
		if !info.Staked() {
			return nil
		}
		if err := s.settleRate(user, info); err != nil {
			return err
		}
		return s.stakes.Set(user, info)
	}
}

// EmergencyWithdraw returns the full stake with no settlement. Only
// available while paused; any pending accrual is forfeited.
func (s *Staking) EmergencyWithdraw(user rnt.Address) error {
	if err := s.enter(); err != nil {
		return err
	}
	defer s.leave()
	paused, err := s.paused()
	if err != nil {
		return err
	}
	if !paused {
		return &reverts.NotPaused{}
	}
	info, err := s.GetStakeInfo(user)
	if err != nil {
		return err
	}

	amount := info.Amount
	if err := s.stakes.Set(user, newStakeInfo()); err != nil {
		return err
	}
	if amount.Sign() > 0 {
		if err := s.totalStaked.Sub(amount); err != nil {
			return err
		}
		if err := s.token.Transfer(s.addr, user, amount); err != nil {
			return err
		}
	}
	s.logEmergencyWithdrawn(user, amount)
	return nil
}

//
// Admin - owner gated
//

// SetRewardRate updates the per-day reward rate of the rate strategy. The
// new rate applies to any interval not yet settled.
func (s *Staking) SetRewardRate(caller rnt.Address, rate *big.Int) error {
	if err := s.auth.RequireOwner(caller); err != nil {
		return err
	}
	if rate.Sign() <= 0 || rate.Cmp(rnt.MaxRewardRate) > 0 {
		return &reverts.InvalidRewardRate{Rate: rate}
	}
	prev, err := s.params.Get(rnt.KeyRewardRate)
	if err != nil {
		return err
	}
	if err := s.params.Set(rnt.KeyRewardRate, rate); err != nil {
		return err
	}
	s.logRewardRateUpdated(caller, "reward-rate", prev, rate)
	return nil
}

// SetRewardPerSec updates the pool strategy emission. The accumulator is
// refreshed first so the elapsed interval still accrues at the old emission.
func (s *Staking) SetRewardPerSec(caller rnt.Address, rate *big.Int) error {
	if err := s.auth.RequireOwner(caller); err != nil {
		return err
	}
	if rate.Sign() <= 0 || rate.Cmp(rnt.MaxRewardRate) > 0 {
		return &reverts.InvalidRewardRate{Rate: rate}
	}
	if _, err := s.refreshPool(); err != nil {
		return err
	}
	prev, err := s.params.Get(rnt.KeyRewardPerSec)
	if err != nil {
		return err
	}
	if err := s.params.Set(rnt.KeyRewardPerSec, rate); err != nil {
		return err
	}
	s.logRewardRateUpdated(caller, "reward-per-sec", prev, rate)
	return nil
}

// Pause halts stake, unstake, claim and convert entry points.
func (s *Staking) Pause(caller rnt.Address) error {
	if err := s.auth.RequireOwner(caller); err != nil {
		return err
	}
	paused, err := s.paused()
	if err != nil {
		return err
	}
	if paused {
		return &reverts.Paused{}
	}
	return s.params.SetBool(rnt.KeyPaused, true)
}

// Unpause resumes normal operation.
func (s *Staking) Unpause(caller rnt.Address) error {
	if err := s.auth.RequireOwner(caller); err != nil {
		return err
	}
	paused, err := s.paused()
	if err != nil {
		return err
	}
	if !paused {
		return &reverts.NotPaused{}
	}
	return s.params.SetBool(rnt.KeyPaused, false)
}
