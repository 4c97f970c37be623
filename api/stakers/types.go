// Copyright (c) 2026 The StakeVault developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package stakers

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common/math"

	"github.com/rewardnet/stakevault/builtin/staking"
)

// Staker for marshal staking record
type Staker struct {
	Amount         math.HexOrDecimal256 `json:"amount,string"`
	LastRewardTime uint64               `json:"lastRewardTime"`
	RewardDebt     math.HexOrDecimal256 `json:"rewardDebt,string"`
	Unclaimed      math.HexOrDecimal256 `json:"unclaimed,string"`
	Pending        math.HexOrDecimal256 `json:"pending,string"`
}

func convertStaker(info *staking.StakeInfo, pending *big.Int) *Staker {
	return &Staker{
		Amount:         math.HexOrDecimal256(*info.Amount),
		LastRewardTime: info.LastRewardTime,
		RewardDebt:     math.HexOrDecimal256(*info.RewardDebt),
		Unclaimed:      math.HexOrDecimal256(*info.Unclaimed),
		Pending:        math.HexOrDecimal256(*pending),
	}
}

// AmountRequest carries the amount of a dev mode stake, unstake or approve.
type AmountRequest struct {
	Amount *math.HexOrDecimal256 `json:"amount"`
}
