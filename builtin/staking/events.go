// Copyright (c) 2026 The StakeVault developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"encoding/json"
	"math/big"

	"github.com/ethereum/go-ethereum/common/math"

	"github.com/rewardnet/stakevault/rnt"
	"github.com/rewardnet/stakevault/xenv"
)

const (
	EventStaked             = "Staked"
	EventUnstaked           = "Unstaked"
	EventRewardClaimed      = "RewardClaimed"
	EventRewardRateUpdated  = "RewardRateUpdated"
	EventEmergencyWithdrawn = "EmergencyWithdrawn"
)

type stakeData struct {
	// Remaining is the user's staked amount after the operation.
	Remaining *math.HexOrDecimal256 `json:"remaining"`
}

type rateData struct {
	Param    string                `json:"param"`
	Previous *math.HexOrDecimal256 `json:"previous"`
}

func (s *Staking) logStaked(user rnt.Address, amount, remaining *big.Int) {
	data, _ := json.Marshal(&stakeData{Remaining: (*math.HexOrDecimal256)(remaining)})
	s.env.Log(&xenv.Event{
		Name:    EventStaked,
		Address: s.addr,
		User:    user,
		Amount:  amount,
		Data:    data,
	})
}

func (s *Staking) logUnstaked(user rnt.Address, amount, remaining *big.Int) {
	data, _ := json.Marshal(&stakeData{Remaining: (*math.HexOrDecimal256)(remaining)})
	s.env.Log(&xenv.Event{
		Name:    EventUnstaked,
		Address: s.addr,
		User:    user,
		Amount:  amount,
		Data:    data,
	})
}

func (s *Staking) logRewardClaimed(user rnt.Address, amount *big.Int) {
	s.env.Log(&xenv.Event{
		Name:    EventRewardClaimed,
		Address: s.addr,
		User:    user,
		Amount:  amount,
	})
}

func (s *Staking) logRewardRateUpdated(caller rnt.Address, param string, previous, next *big.Int) {
	data, _ := json.Marshal(&rateData{
		Param:    param,
		Previous: (*math.HexOrDecimal256)(previous),
	})
	s.env.Log(&xenv.Event{
		Name:    EventRewardRateUpdated,
		Address: s.addr,
		User:    caller,
		Amount:  next,
		Data:    data,
	})
}

func (s *Staking) logEmergencyWithdrawn(user rnt.Address, amount *big.Int) {
	s.env.Log(&xenv.Event{
		Name:    EventEmergencyWithdrawn,
		Address: s.addr,
		User:    user,
		Amount:  amount,
	})
}
