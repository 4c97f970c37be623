// Copyright (c) 2026 The StakeVault developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package reverts

import (
	"fmt"
	"math/big"

	"github.com/rewardnet/stakevault/rnt"
)

// CannotStakeZero is returned when staking zero tokens.
type CannotStakeZero struct{}

func (e *CannotStakeZero) Error() string { return "cannot stake zero amount" }
func (e *CannotStakeZero) revert()       {}

// InvalidAmount is returned when an unstake amount is zero or
// exceeds the staked balance.
type InvalidAmount struct {
	Requested *big.Int
	Staked    *big.Int
}

func (e *InvalidAmount) Error() string {
	return fmt.Sprintf("invalid amount: requested %v, staked %v", e.Requested, e.Staked)
}
func (e *InvalidAmount) revert() {}

// InvalidLockIndex is returned when a grant index is out of range.
type InvalidLockIndex struct {
	Index uint64
	Count uint64
}

func (e *InvalidLockIndex) Error() string {
	return fmt.Sprintf("invalid lock index: %d, count %d", e.Index, e.Count)
}
func (e *InvalidLockIndex) revert() {}

// NoLockedTokens is returned when the grant at the index has already been
// fully converted.
type NoLockedTokens struct {
	Index uint64
}

func (e *NoLockedTokens) Error() string {
	return fmt.Sprintf("no locked tokens at index %d", e.Index)
}
func (e *NoLockedTokens) revert() {}

// InvalidRewardRate is returned when an administrative rate update is out of
// the permitted range.
type InvalidRewardRate struct {
	Rate *big.Int
}

func (e *InvalidRewardRate) Error() string {
	return fmt.Sprintf("invalid reward rate: %v", e.Rate)
}
func (e *InvalidRewardRate) revert() {}

// InvalidToken is returned when a token binding is misconfigured.
type InvalidToken struct {
	Token rnt.Address
}

func (e *InvalidToken) Error() string {
	return fmt.Sprintf("invalid token: %v", e.Token)
}
func (e *InvalidToken) revert() {}

// InvalidAddress is returned when the zero address is passed where a real
// account is required.
type InvalidAddress struct{}

func (e *InvalidAddress) Error() string { return "invalid address" }
func (e *InvalidAddress) revert()       {}

// ExceedsMaxSupply is returned when a mint would break the token cap.
type ExceedsMaxSupply struct {
	Max       *big.Int
	Supply    *big.Int
	Attempted *big.Int
}

func (e *ExceedsMaxSupply) Error() string {
	return fmt.Sprintf("exceeds max supply: max %v, supply %v, attempted %v", e.Max, e.Supply, e.Attempted)
}
func (e *ExceedsMaxSupply) revert() {}

// Unauthorized is returned when the caller lacks the required role.
type Unauthorized struct {
	Caller rnt.Address
}

func (e *Unauthorized) Error() string {
	return fmt.Sprintf("unauthorized: %v", e.Caller)
}
func (e *Unauthorized) revert() {}

// Paused is returned when an operation requires the engine to be live.
type Paused struct{}

func (e *Paused) Error() string { return "paused" }
func (e *Paused) revert()       {}

// NotPaused is returned when an operation requires the engine to be paused.
type NotPaused struct{}

func (e *NotPaused) Error() string { return "not paused" }
func (e *NotPaused) revert()       {}

// Reentrancy is returned when an operation reenters a guarded section.
type Reentrancy struct{}

func (e *Reentrancy) Error() string { return "reentrant call" }
func (e *Reentrancy) revert()       {}

// InsufficientBalance is returned when a transfer or burn exceeds the
// account balance.
type InsufficientBalance struct {
	Balance *big.Int
	Needed  *big.Int
}

func (e *InsufficientBalance) Error() string {
	return fmt.Sprintf("insufficient balance: have %v, need %v", e.Balance, e.Needed)
}
func (e *InsufficientBalance) revert() {}

// InsufficientAllowance is returned when a transferFrom exceeds the
// spender's allowance.
type InsufficientAllowance struct {
	Allowance *big.Int
	Needed    *big.Int
}

func (e *InsufficientAllowance) Error() string {
	return fmt.Sprintf("insufficient allowance: have %v, need %v", e.Allowance, e.Needed)
}
func (e *InsufficientAllowance) revert() {}

// PermitExpired is returned when a permit deadline has passed.
type PermitExpired struct {
	Deadline uint64
	Now      uint64
}

func (e *PermitExpired) Error() string {
	return fmt.Sprintf("permit expired: deadline %d, now %d", e.Deadline, e.Now)
}
func (e *PermitExpired) revert() {}

// InvalidSignature is returned when permit signature recovery fails or
// recovers the wrong signer.
type InvalidSignature struct{}

func (e *InvalidSignature) Error() string { return "invalid signature" }
func (e *InvalidSignature) revert()       {}

// Overflow is returned when balance or accumulator arithmetic would exceed
// 256 bits.
type Overflow struct{}

func (e *Overflow) Error() string { return "arithmetic overflow" }
func (e *Overflow) revert()       {}
