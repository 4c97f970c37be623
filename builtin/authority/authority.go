// Copyright (c) 2026 The StakeVault developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package authority implements the access control registry: a single owner
// account that administrative operations are restricted to.
package authority

import (
	"github.com/rewardnet/stakevault/builtin/reverts"
	"github.com/rewardnet/stakevault/builtin/solidity"
	"github.com/rewardnet/stakevault/rnt"
	"github.com/rewardnet/stakevault/state"
)

var slotOwner = rnt.BytesToBytes32([]byte("owner"))

// Authority implements native methods of the `Authority` contract.
type Authority struct {
	owner *solidity.Address
}

// New create a new instance.
func New(addr rnt.Address, state *state.State) *Authority {
	ctx := solidity.NewContext(addr, state)
	return &Authority{
		owner: solidity.NewAddress(ctx, slotOwner),
	}
}

// Owner returns the current owner account.
func (a *Authority) Owner() (rnt.Address, error) {
	return a.owner.Get()
}

// IsOwner checks whether addr is the current owner.
func (a *Authority) IsOwner(addr rnt.Address) (bool, error) {
	owner, err := a.owner.Get()
	if err != nil {
		return false, err
	}
	return !owner.IsZero() && owner == addr, nil
}

// InitOwner sets the owner without authorization checks.
// Only for genesis state building.
func (a *Authority) InitOwner(owner rnt.Address) error {
	if owner.IsZero() {
		return &reverts.InvalidAddress{}
	}
	a.owner.Set(owner)
	return nil
}

// RequireOwner reverts with Unauthorized unless caller is the owner.
func (a *Authority) RequireOwner(caller rnt.Address) error {
	ok, err := a.IsOwner(caller)
	if err != nil {
		return err
	}
	if !ok {
		return &reverts.Unauthorized{Caller: caller}
	}
	return nil
}

// TransferOwnership hands the owner role to newOwner.
func (a *Authority) TransferOwnership(caller, newOwner rnt.Address) error {
	if err := a.RequireOwner(caller); err != nil {
		return err
	}
	if newOwner.IsZero() {
		return &reverts.InvalidAddress{}
	}
	a.owner.Set(newOwner)
	return nil
}
