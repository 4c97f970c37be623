// Copyright (c) 2026 The StakeVault developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package vault

import (
	"math/big"
)

// LockGrant is one reward grant subject to linear vesting. Once appended,
// Amount and LockTime are immutable except for the single terminal mutation
// that zeroes Amount upon conversion.
type LockGrant struct {
	Amount   *big.Int
	LockTime uint64
}

// Converted reports whether the grant has reached its terminal state.
func (g *LockGrant) Converted() bool {
	return g.Amount.Sign() == 0
}

// UnlockedAt computes the linearly unlocked portion at time now. The full
// amount unlocks once the lock period has elapsed; before that the unlocked
// share truncates toward zero.
func (g *LockGrant) UnlockedAt(now, lockPeriod uint64) *big.Int {
	if now <= g.LockTime {
		return new(big.Int)
	}
	elapsed := now - g.LockTime
	if elapsed >= lockPeriod {
		return new(big.Int).Set(g.Amount)
	}
	unlocked := new(big.Int).Mul(g.Amount, new(big.Int).SetUint64(elapsed))
	return unlocked.Div(unlocked, new(big.Int).SetUint64(lockPeriod))
}
