// Copyright (c) 2026 The StakeVault developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package subscriptions

import (
	"encoding/json"
	"math/big"

	"github.com/ethereum/go-ethereum/common/math"

	"github.com/rewardnet/stakevault/rnt"
	"github.com/rewardnet/stakevault/xenv"
)

// EventMessage is the wire form of a streamed event.
type EventMessage struct {
	Name    string               `json:"name"`
	Address rnt.Address          `json:"address"`
	User    rnt.Address          `json:"user"`
	Amount  math.HexOrDecimal256 `json:"amount,string"`
	Data    json.RawMessage      `json:"data,omitempty"`
	Time    uint64               `json:"time"`
}

func convertEvent(ev *xenv.Event) *EventMessage {
	amount := ev.Amount
	if amount == nil {
		amount = new(big.Int)
	}
	return &EventMessage{
		Name:    ev.Name,
		Address: ev.Address,
		User:    ev.User,
		Amount:  math.HexOrDecimal256(*amount),
		Data:    ev.Data,
		Time:    ev.Time,
	}
}

// eventFilter narrows a subscription to a user and/or an event name. Zero
// values match everything.
type eventFilter struct {
	user *rnt.Address
	name string
}

func (f *eventFilter) match(ev *xenv.Event) bool {
	if f.name != "" && ev.Name != f.name {
		return false
	}
	if f.user != nil && ev.User != *f.user {
		return false
	}
	return true
}
