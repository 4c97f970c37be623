// Copyright (c) 2026 The StakeVault developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package solidity

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rewardnet/stakevault/rnt"
)

func TestBool(t *testing.T) {
	ctx := newTestContext()
	flag := NewBool(ctx, rnt.Bytes32{01})

	got, err := flag.Get()
	assert.NoError(t, err)
	assert.False(t, got)

	flag.Set(true)
	got, err = flag.Get()
	assert.NoError(t, err)
	assert.True(t, got)

	// false clears the slot
	flag.Set(false)
	got, err = flag.Get()
	assert.NoError(t, err)
	assert.False(t, got)

	raw, err := ctx.State().GetRawStorage(ctx.Address(), rnt.Bytes32{01})
	assert.NoError(t, err)
	assert.Empty(t, raw)
}
