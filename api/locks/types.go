// Copyright (c) 2026 The StakeVault developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package locks

import (
	"github.com/ethereum/go-ethereum/common/math"

	"github.com/rewardnet/stakevault/builtin/vault"
)

// Lock is a vesting grant with the portion unlocked at the engine clock.
// Converted grants stay listed with a zero amount, so indexes remain stable.
type Lock struct {
	Index      uint64               `json:"index"`
	Amount     math.HexOrDecimal256 `json:"amount,string"`
	LockTime   uint64               `json:"lockTime"`
	UnlockTime uint64               `json:"unlockTime"`
	Unlocked   math.HexOrDecimal256 `json:"unlocked,string"`
}

func convertLocks(grants []*vault.LockGrant, now, lockPeriod uint64) []*Lock {
	locks := make([]*Lock, len(grants))
	for i, g := range grants {
		locks[i] = &Lock{
			Index:      uint64(i),
			Amount:     math.HexOrDecimal256(*g.Amount),
			LockTime:   g.LockTime,
			UnlockTime: g.LockTime + lockPeriod,
			Unlocked:   math.HexOrDecimal256(*g.UnlockedAt(now, lockPeriod)),
		}
	}
	return locks
}
