// Copyright (c) 2026 The StakeVault developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package events

import (
	"encoding/json"

	"github.com/ethereum/go-ethereum/common/math"

	"github.com/rewardnet/stakevault/eventdb"
	"github.com/rewardnet/stakevault/rnt"
)

// FilteredEvent is a stored event record in json form. Data carries the
// event specific payload as emitted, already json.
type FilteredEvent struct {
	Seq     uint64               `json:"seq"`
	Name    string               `json:"name"`
	Address rnt.Address          `json:"address"`
	User    rnt.Address          `json:"user"`
	Amount  math.HexOrDecimal256 `json:"amount,string"`
	Data    json.RawMessage      `json:"data,omitempty"`
	Time    uint64               `json:"time"`
}

func convertRecord(r *eventdb.Record) *FilteredEvent {
	return &FilteredEvent{
		Seq:     r.Seq,
		Name:    r.Name,
		Address: r.Address,
		User:    r.User,
		Amount:  math.HexOrDecimal256(*r.Amount),
		Data:    r.Data,
		Time:    r.Time,
	}
}
