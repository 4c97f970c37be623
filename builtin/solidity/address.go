// Copyright (c) 2026 The StakeVault developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package solidity

import (
	"github.com/rewardnet/stakevault/rnt"
)

// Address is a wrapper for storage and retrieval of an address,
// similar to storing an address in a smart contract.
type Address struct {
	context *Context
	pos     rnt.Bytes32
}

func NewAddress(context *Context, pos rnt.Bytes32) *Address {
	return &Address{context: context, pos: pos}
}

func (a *Address) Get() (rnt.Address, error) {
	storage, err := a.context.state.GetStorage(a.context.address, a.pos)
	if err != nil {
		return rnt.Address{}, err
	}
	return rnt.BytesToAddress(storage.Bytes()), nil
}

func (a *Address) Set(addr rnt.Address) {
	var storage rnt.Bytes32
	if !addr.IsZero() {
		storage = rnt.BytesToBytes32(addr.Bytes())
	}
	a.context.state.SetStorage(a.context.address, a.pos, storage)
}
