// Copyright (c) 2026 The StakeVault developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package token implements the RNT asset ledger: balances, allowances,
// capped minting and signature-based approvals.
package token

import (
	"math/big"

	"github.com/rewardnet/stakevault/builtin/authority"
	"github.com/rewardnet/stakevault/builtin/reverts"
	"github.com/rewardnet/stakevault/builtin/solidity"
	"github.com/rewardnet/stakevault/rnt"
	"github.com/rewardnet/stakevault/xenv"
)

const (
	Name     = "RewardNet Token"
	Symbol   = "RNT"
	Decimals = rnt.TokenDecimals
)

var (
	slotBalances   = rnt.BytesToBytes32([]byte("balances"))
	slotAllowances = rnt.BytesToBytes32([]byte("allowances"))
	slotNonces     = rnt.BytesToBytes32([]byte("nonces"))
	slotMinters    = rnt.BytesToBytes32([]byte("minters"))
	slotSupply     = rnt.BytesToBytes32([]byte("total-supply"))
	slotCap        = rnt.BytesToBytes32([]byte("supply-cap"))

	// maxAllowance approvals are treated as unlimited.
	maxAllowance = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))
)

// Token implements native methods of the `Token` contract.
type Token struct {
	addr   rnt.Address
	env    *xenv.Environment
	sctx   *solidity.Context
	auth   *authority.Authority
	supply *solidity.Uint256
	cap    *solidity.Uint256
}

// New create a new instance bound to the given environment.
func New(addr rnt.Address, env *xenv.Environment, auth *authority.Authority) *Token {
	sctx := solidity.NewContext(addr, env.State())
	return &Token{
		addr:   addr,
		env:    env,
		sctx:   sctx,
		auth:   auth,
		supply: solidity.NewUint256(sctx, slotSupply),
		cap:    solidity.NewUint256(sctx, slotCap),
	}
}

// Address returns the contract address.
func (t *Token) Address() rnt.Address {
	return t.addr
}

func (t *Token) balance(addr rnt.Address) *solidity.Uint256 {
	return solidity.NewUint256(t.sctx, rnt.Blake2b(addr.Bytes(), slotBalances.Bytes()))
}

func (t *Token) allowance(owner, spender rnt.Address) *solidity.Uint256 {
	return solidity.NewUint256(t.sctx, rnt.Blake2b(owner.Bytes(), spender.Bytes(), slotAllowances.Bytes()))
}

func (t *Token) nonce(addr rnt.Address) *solidity.Uint256 {
	return solidity.NewUint256(t.sctx, rnt.Blake2b(addr.Bytes(), slotNonces.Bytes()))
}

func (t *Token) minter(addr rnt.Address) *solidity.Bool {
	return solidity.NewBool(t.sctx, rnt.Blake2b(addr.Bytes(), slotMinters.Bytes()))
}

// checkAmount guards user-supplied amounts against the uint256 range.
func checkAmount(amount *big.Int) error {
	if amount.Sign() < 0 || amount.BitLen() > 256 {
		return &reverts.Overflow{}
	}
	return nil
}

//
// Getters - no state change
//

// BalanceOf returns the balance of an account.
func (t *Token) BalanceOf(addr rnt.Address) (*big.Int, error) {
	return t.balance(addr).Get()
}

// TotalSupply returns the amount of tokens in existence.
func (t *Token) TotalSupply() (*big.Int, error) {
	return t.supply.Get()
}

// Cap returns the hard supply cap. Minting beyond it is impossible.
func (t *Token) Cap() (*big.Int, error) {
	return t.cap.Get()
}

// Allowance returns the amount spender may transfer out of owner's balance.
func (t *Token) Allowance(owner, spender rnt.Address) (*big.Int, error) {
	return t.allowance(owner, spender).Get()
}

// Nonces returns the permit nonce of an account.
func (t *Token) Nonces(addr rnt.Address) (uint64, error) {
	n, err := t.nonce(addr).Get()
	if err != nil {
		return 0, err
	}
	return n.Uint64(), nil
}

// IsMinter checks whether addr holds the minter role.
func (t *Token) IsMinter(addr rnt.Address) (bool, error) {
	return t.minter(addr).Get()
}

//
// Mutations
//

// Transfer moves amount from one account to another.
func (t *Token) Transfer(from, to rnt.Address, amount *big.Int) error {
	if to.IsZero() {
		return &reverts.InvalidAddress{}
	}
	if err := checkAmount(amount); err != nil {
		return err
	}
	if err := t.debit(from, amount); err != nil {
		return err
	}
	if err := t.balance(to).Add(amount); err != nil {
		return err
	}
	t.logTransfer(from, to, amount)
	return nil
}

// TransferFrom moves amount from one account to another on behalf of spender,
// consuming allowance. The max uint256 allowance is treated as unlimited and
// is not consumed.
func (t *Token) TransferFrom(spender, from, to rnt.Address, amount *big.Int) error {
	if err := checkAmount(amount); err != nil {
		return err
	}
	allowance := t.allowance(from, spender)
	remaining, err := allowance.Get()
	if err != nil {
		return err
	}
	if remaining.Cmp(maxAllowance) < 0 {
		if remaining.Cmp(amount) < 0 {
			return &reverts.InsufficientAllowance{Allowance: remaining, Needed: amount}
		}
		if err := allowance.Set(new(big.Int).Sub(remaining, amount)); err != nil {
			return err
		}
	}
	return t.Transfer(from, to, amount)
}

// Approve lets spender transfer up to amount out of owner's balance.
func (t *Token) Approve(owner, spender rnt.Address, amount *big.Int) error {
	if spender.IsZero() {
		return &reverts.InvalidAddress{}
	}
	if err := checkAmount(amount); err != nil {
		return err
	}
	return t.allowance(owner, spender).Set(amount)
}

// Mint creates amount tokens for `to`. The caller must hold the minter role
// and the new supply must not exceed the cap.
func (t *Token) Mint(caller, to rnt.Address, amount *big.Int) error {
	ok, err := t.IsMinter(caller)
	if err != nil {
		return err
	}
	if !ok {
		return &reverts.Unauthorized{Caller: caller}
	}
	return t.mint(to, amount)
}

func (t *Token) mint(to rnt.Address, amount *big.Int) error {
	if to.IsZero() {
		return &reverts.InvalidAddress{}
	}
	if err := checkAmount(amount); err != nil {
		return err
	}
	supply, err := t.supply.Get()
	if err != nil {
		return err
	}
	cap, err := t.cap.Get()
	if err != nil {
		return err
	}
	attempted := new(big.Int).Add(supply, amount)
	if cap.Sign() != 0 && attempted.Cmp(cap) > 0 {
		return &reverts.ExceedsMaxSupply{Max: cap, Supply: supply, Attempted: amount}
	}
	if err := t.supply.Set(attempted); err != nil {
		return err
	}
	if err := t.balance(to).Add(amount); err != nil {
		return err
	}
	t.logTransfer(rnt.Address{}, to, amount)
	return nil
}

// Burn destroys amount tokens of the caller.
func (t *Token) Burn(caller rnt.Address, amount *big.Int) error {
	if err := checkAmount(amount); err != nil {
		return err
	}
	if err := t.debit(caller, amount); err != nil {
		return err
	}
	if err := t.supply.Sub(amount); err != nil {
		return err
	}
	t.logTransfer(caller, rnt.Address{}, amount)
	return nil
}

// AddMinter grants the minter role. Restricted to the owner.
func (t *Token) AddMinter(caller, minter rnt.Address) error {
	if err := t.auth.RequireOwner(caller); err != nil {
		return err
	}
	if minter.IsZero() {
		return &reverts.InvalidAddress{}
	}
	t.minter(minter).Set(true)
	return nil
}

// RemoveMinter revokes the minter role. Restricted to the owner.
func (t *Token) RemoveMinter(caller, minter rnt.Address) error {
	if err := t.auth.RequireOwner(caller); err != nil {
		return err
	}
	t.minter(minter).Set(false)
	return nil
}

// debit subtracts amount from the balance of addr, reverting when the
// balance is too low.
func (t *Token) debit(addr rnt.Address, amount *big.Int) error {
	balance := t.balance(addr)
	have, err := balance.Get()
	if err != nil {
		return err
	}
	if have.Cmp(amount) < 0 {
		return &reverts.InsufficientBalance{Balance: have, Needed: amount}
	}
	return balance.Set(new(big.Int).Sub(have, amount))
}

//
// Genesis-only initializers, no authorization checks
//

// InitCap sets the hard supply cap.
func (t *Token) InitCap(cap *big.Int) error {
	if err := checkAmount(cap); err != nil {
		return err
	}
	return t.cap.Set(cap)
}

// InitMinter grants the minter role.
func (t *Token) InitMinter(minter rnt.Address) error {
	if minter.IsZero() {
		return &reverts.InvalidAddress{}
	}
	t.minter(minter).Set(true)
	return nil
}

// InitMint creates the initial balance of an account, subject to the cap.
func (t *Token) InitMint(to rnt.Address, amount *big.Int) error {
	return t.mint(to, amount)
}
