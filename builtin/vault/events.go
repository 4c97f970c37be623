// Copyright (c) 2026 The StakeVault developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package vault

import (
	"encoding/json"
	"math/big"

	"github.com/ethereum/go-ethereum/common/math"

	"github.com/rewardnet/stakevault/rnt"
	"github.com/rewardnet/stakevault/xenv"
)

const (
	// EventRewardLocked is emitted when a grant is created.
	EventRewardLocked = "RewardLocked"
	// EventConverted is emitted when a grant is retired. The event amount is
	// the released portion; the data carries the full grant amount.
	EventConverted = "Converted"
)

type lockedData struct {
	Index uint64 `json:"index"`
}

type convertedData struct {
	Index     uint64                `json:"index"`
	Requested *math.HexOrDecimal256 `json:"requested"`
	Received  *math.HexOrDecimal256 `json:"received"`
}

func (v *Vault) logLocked(user rnt.Address, index uint64, amount *big.Int) {
	data, _ := json.Marshal(&lockedData{Index: index})
	v.env.Log(&xenv.Event{
		Name:    EventRewardLocked,
		Address: v.addr,
		User:    user,
		Amount:  amount,
		Data:    data,
	})
}

func (v *Vault) logConverted(user rnt.Address, index uint64, requested, received *big.Int) {
	data, _ := json.Marshal(&convertedData{
		Index:     index,
		Requested: (*math.HexOrDecimal256)(requested),
		Received:  (*math.HexOrDecimal256)(received),
	})
	v.env.Log(&xenv.Event{
		Name:    EventConverted,
		Address: v.addr,
		User:    user,
		Amount:  received,
		Data:    data,
	})
}
