// Copyright (c) 2026 The StakeVault developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package token

import (
	"encoding/json"
	"math/big"

	"github.com/rewardnet/stakevault/rnt"
	"github.com/rewardnet/stakevault/xenv"
)

// EventTransfer is emitted on transfers, mints (from the zero address) and
// burns (to the zero address).
const EventTransfer = "Transfer"

type transferData struct {
	From rnt.Address `json:"from"`
	To   rnt.Address `json:"to"`
}

// logTransfer records a transfer event. User carries the debited account,
// or the credited one for mints.
func (t *Token) logTransfer(from, to rnt.Address, amount *big.Int) {
	user := from
	if user.IsZero() {
		user = to
	}
	data, _ := json.Marshal(&transferData{From: from, To: to})
	t.env.Log(&xenv.Event{
		Name:    EventTransfer,
		Address: t.addr,
		User:    user,
		Amount:  amount,
		Data:    data,
	})
}
