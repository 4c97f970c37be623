// Copyright (c) 2026 The StakeVault developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package vault implements the vesting ledger: an append-only sequence of
// reward grants per user, each unlocking linearly over the lock period and
// converting into RNT at most once.
package vault

import (
	"math/big"

	"github.com/rewardnet/stakevault/builtin/params"
	"github.com/rewardnet/stakevault/builtin/reverts"
	"github.com/rewardnet/stakevault/builtin/solidity"
	"github.com/rewardnet/stakevault/builtin/token"
	"github.com/rewardnet/stakevault/rnt"
	"github.com/rewardnet/stakevault/state"
	"github.com/rewardnet/stakevault/xenv"
)

const lockPeriodName = "lock-period"

var (
	slotLocks        = rnt.BytesToBytes32([]byte("locks"))
	slotGlobalLocked = rnt.BytesToBytes32([]byte("global-locked"))
	slotGuard        = rnt.BytesToBytes32([]byte("guard"))
)

// Vault implements native methods of the `Vault` contract.
type Vault struct {
	addr         rnt.Address
	env          *xenv.Environment
	sctx         *solidity.Context
	token        *token.Token
	params       *params.Params
	engine       rnt.Address // only account allowed to mint grants
	globalLocked *solidity.Uint256
	guard        *solidity.Bool
	lockPeriod   uint64
}

// New create a new instance bound to the given environment. Only the engine
// address may mint grants.
func New(addr rnt.Address, env *xenv.Environment, tok *token.Token, par *params.Params, engine rnt.Address) *Vault {
	sctx := solidity.NewContext(addr, env.State())
	period := solidity.NewConfigVariable(lockPeriodName, rnt.DefaultLockPeriod)
	period.Override(sctx)
	return &Vault{
		addr:         addr,
		env:          env,
		sctx:         sctx,
		token:        tok,
		params:       par,
		engine:       engine,
		globalLocked: solidity.NewUint256(sctx, slotGlobalLocked),
		guard:        solidity.NewBool(sctx, slotGuard),
		lockPeriod:   period.Get(),
	}
}

// InitLockPeriod stores a lock-period override, read once when the vault
// binds. Genesis use only.
func InitLockPeriod(st *state.State, addr rnt.Address, period uint64) {
	st.SetStorage(addr, rnt.BytesToBytes32([]byte(lockPeriodName)),
		rnt.BytesToBytes32(new(big.Int).SetUint64(period).Bytes()))
}

// Address returns the contract address.
func (v *Vault) Address() rnt.Address {
	return v.addr
}

func (v *Vault) locks(user rnt.Address) *solidity.Array[*LockGrant] {
	return solidity.NewArray[*LockGrant](v.sctx, rnt.Blake2b(user.Bytes(), slotLocks.Bytes()))
}

func (v *Vault) enter() error {
	locked, err := v.guard.Get()
	if err != nil {
		return err
	}
	if locked {
		return &reverts.Reentrancy{}
	}
	v.guard.Set(true)
	return nil
}

func (v *Vault) leave() {
	v.guard.Set(false)
}

//
// Getters - no state change
//

// LockPeriod returns the vesting window in seconds.
func (v *Vault) LockPeriod() uint64 {
	return v.lockPeriod
}

// GlobalLocked returns the sum of all unconverted grant amounts.
func (v *Vault) GlobalLocked() (*big.Int, error) {
	return v.globalLocked.Get()
}

// LockCount returns the number of grants ever created for user, converted
// ones included.
func (v *Vault) LockCount(user rnt.Address) (uint64, error) {
	return v.locks(user).Len()
}

// GetLock returns the grant at index, or ErrInvalidLockIndex when index is
// out of range.
func (v *Vault) GetLock(user rnt.Address, index uint64) (*LockGrant, error) {
	locks := v.locks(user)
	n, err := locks.Len()
	if err != nil {
		return nil, err
	}
	if index >= n {
		return nil, &reverts.InvalidLockIndex{Index: index, Count: n}
	}
	return locks.Get(index)
}

// GetLockInfo returns the full grant sequence of user. Converted grants keep
// their position with a zero amount, so indices stay stable.
func (v *Vault) GetLockInfo(user rnt.Address) ([]*LockGrant, error) {
	locks := v.locks(user)
	n, err := locks.Len()
	if err != nil {
		return nil, err
	}
	grants := make([]*LockGrant, 0, n)
	for i := range n {
		grant, err := locks.Get(i)
		if err != nil {
			return nil, err
		}
		grants = append(grants, grant)
	}
	return grants, nil
}

// TotalLocked sums the unconverted grant amounts of user.
func (v *Vault) TotalLocked(user rnt.Address) (*big.Int, error) {
	grants, err := v.GetLockInfo(user)
	if err != nil {
		return nil, err
	}
	total := new(big.Int)
	for _, grant := range grants {
		total.Add(total, grant.Amount)
	}
	return total, nil
}

//
// Mutations
//

// MintGrant appends a grant of amount locking at the current time and returns
// its index. Restricted to the engine address.
func (v *Vault) MintGrant(caller, user rnt.Address, amount *big.Int) (uint64, error) {
	if caller != v.engine {
		return 0, &reverts.Unauthorized{Caller: caller}
	}
	if user.IsZero() {
		return 0, &reverts.InvalidAddress{}
	}
	if amount.Sign() <= 0 {
		return 0, reverts.New("grant amount must be positive")
	}
	index, err := v.locks(user).Append(&LockGrant{
		Amount:   new(big.Int).Set(amount),
		LockTime: v.env.Now(),
	})
	if err != nil {
		return 0, err
	}
	if err := v.globalLocked.Add(amount); err != nil {
		return 0, err
	}
	v.logLocked(user, index, amount)
	return index, nil
}

// Convert retires the grant at index and releases its unlocked portion to
// user as freshly minted RNT. Anything still locked at conversion time is
// permanently forfeited. The grant amount is zeroed before the mint.
func (v *Vault) Convert(user rnt.Address, index uint64) (*big.Int, error) {
	if err := v.enter(); err != nil {
		return nil, err
	}
	defer v.leave()

	paused, err := v.params.GetBool(rnt.KeyPaused)
	if err != nil {
		return nil, err
	}
	if paused {
		return nil, &reverts.Paused{}
	}

	locks := v.locks(user)
	n, err := locks.Len()
	if err != nil {
		return nil, err
	}
	if index >= n {
		return nil, &reverts.InvalidLockIndex{Index: index, Count: n}
	}
	grant, err := locks.Get(index)
	if err != nil {
		return nil, err
	}
	if grant.Converted() {
		return nil, &reverts.NoLockedTokens{Index: index}
	}

	requested := grant.Amount
	unlocked := grant.UnlockedAt(v.env.Now(), v.lockPeriod)

	// The grant reaches its terminal state before any token movement.
	if err := locks.Set(index, &LockGrant{Amount: new(big.Int), LockTime: grant.LockTime}); err != nil {
		return nil, err
	}
	if err := v.globalLocked.Sub(requested); err != nil {
		return nil, err
	}
	if unlocked.Sign() > 0 {
		if err := v.token.Mint(v.addr, user, unlocked); err != nil {
			return nil, err
		}
	}
	v.logConverted(user, index, requested, unlocked)
	return unlocked, nil
}
