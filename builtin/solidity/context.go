// Copyright (c) 2026 The StakeVault developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package solidity provides storage primitives for built-in contracts,
// modeled after the storage layout of Solidity contracts: named base slots,
// hashed mapping/array positions and RLP encoded values.
package solidity

import (
	"github.com/rewardnet/stakevault/rnt"
	"github.com/rewardnet/stakevault/state"
)

// Context binds storage primitives to a contract address and a state view.
type Context struct {
	address rnt.Address
	state   *state.State
}

func NewContext(address rnt.Address, state *state.State) *Context {
	return &Context{
		address: address,
		state:   state,
	}
}

func (c *Context) Address() rnt.Address {
	return c.address
}

func (c *Context) State() *state.State {
	return c.state
}
