// Copyright (c) 2026 The StakeVault developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package authority

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rewardnet/stakevault/builtin/reverts"
	"github.com/rewardnet/stakevault/kv"
	"github.com/rewardnet/stakevault/rnt"
	"github.com/rewardnet/stakevault/state"
)

func newTestAuthority() *Authority {
	st := state.NewStater(kv.NewMem()).NewState()
	return New(rnt.BytesToAddress([]byte("Authority")), st)
}

func TestAuthority(t *testing.T) {
	a := newTestAuthority()

	alice := rnt.BytesToAddress([]byte("alice"))
	bob := rnt.BytesToAddress([]byte("bob"))

	owner, err := a.Owner()
	require.NoError(t, err)
	assert.True(t, owner.IsZero())

	// zero owner authorizes nobody
	ok, err := a.IsOwner(rnt.Address{})
	require.NoError(t, err)
	assert.False(t, ok)

	assert.IsType(t, &reverts.InvalidAddress{}, a.InitOwner(rnt.Address{}))
	require.NoError(t, a.InitOwner(alice))

	ok, err = a.IsOwner(alice)
	require.NoError(t, err)
	assert.True(t, ok)

	assert.NoError(t, a.RequireOwner(alice))
	assert.IsType(t, &reverts.Unauthorized{}, a.RequireOwner(bob))
}

func TestTransferOwnership(t *testing.T) {
	a := newTestAuthority()

	alice := rnt.BytesToAddress([]byte("alice"))
	bob := rnt.BytesToAddress([]byte("bob"))

	require.NoError(t, a.InitOwner(alice))

	assert.IsType(t, &reverts.Unauthorized{}, a.TransferOwnership(bob, bob))
	assert.IsType(t, &reverts.InvalidAddress{}, a.TransferOwnership(alice, rnt.Address{}))

	require.NoError(t, a.TransferOwnership(alice, bob))

	owner, err := a.Owner()
	require.NoError(t, err)
	assert.Equal(t, bob, owner)

	ok, err := a.IsOwner(alice)
	require.NoError(t, err)
	assert.False(t, ok)
}
