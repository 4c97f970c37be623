// Copyright (c) 2026 The StakeVault developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package solidity

import (
	"github.com/rewardnet/stakevault/rnt"
)

// Bool is a wrapper for storage and retrieval of a flag,
// similar to storing a bool in a smart contract.
// False clears the underlying slot.
type Bool struct {
	context *Context
	pos     rnt.Bytes32
}

func NewBool(context *Context, pos rnt.Bytes32) *Bool {
	return &Bool{context: context, pos: pos}
}

func (b *Bool) Get() (bool, error) {
	storage, err := b.context.state.GetStorage(b.context.address, b.pos)
	if err != nil {
		return false, err
	}
	return !storage.IsZero(), nil
}

func (b *Bool) Set(value bool) {
	var storage rnt.Bytes32
	if value {
		storage = rnt.BytesToBytes32([]byte{1})
	}
	b.context.state.SetStorage(b.context.address, b.pos, storage)
}
