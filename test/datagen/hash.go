// Copyright (c) 2026 The StakeVault developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package datagen

import (
	"crypto/rand"

	"github.com/rewardnet/stakevault/rnt"
)

func RandomHash() rnt.Bytes32 {
	var b32 rnt.Bytes32

	rand.Read(b32[:])
	return b32
}

func RandomAddress() rnt.Address {
	var addr rnt.Address

	rand.Read(addr[:])
	return addr
}
