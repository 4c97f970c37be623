// Copyright (c) 2026 The StakeVault developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package solidity

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rewardnet/stakevault/rnt"
)

func TestUint256(t *testing.T) {
	ctx := newTestContext()
	uint := NewUint256(ctx, rnt.Bytes32{01})

	// test `Set`
	assert.NoError(t, uint.Set(big.NewInt(1000)))

	// test `Get`
	value, err := uint.Get()
	assert.NoError(t, err)
	assert.Equal(t, big.NewInt(1000), value)

	// test `Add`
	err = uint.Add(big.NewInt(500))
	assert.NoError(t, err)

	value, err = uint.Get()
	assert.NoError(t, err)
	assert.Equal(t, big.NewInt(1500), value)

	// test `Sub`
	err = uint.Sub(big.NewInt(200))
	assert.NoError(t, err)

	value, err = uint.Get()
	assert.NoError(t, err)
	assert.Equal(t, big.NewInt(1300), value)
}

func TestUint256_SetZeroClearsSlot(t *testing.T) {
	ctx := newTestContext()
	uint := NewUint256(ctx, rnt.Bytes32{02})

	assert.NoError(t, uint.Set(big.NewInt(7)))
	assert.NoError(t, uint.Set(new(big.Int)))

	raw, err := ctx.State().GetRawStorage(ctx.Address(), rnt.Bytes32{02})
	assert.NoError(t, err)
	assert.Empty(t, raw)
}

func TestUint256_RangeAndUnderflow(t *testing.T) {
	ctx := newTestContext()
	uint := NewUint256(ctx, rnt.Bytes32{03})

	assert.ErrorIs(t, uint.Set(big.NewInt(-1)), errUint256Range)

	over := new(big.Int).Add(maxUint256, big.NewInt(1))
	assert.ErrorIs(t, uint.Set(over), errUint256Range)

	assert.NoError(t, uint.Set(big.NewInt(100)))
	assert.ErrorIs(t, uint.Sub(big.NewInt(101)), errUint256Underflow)

	// failed Sub leaves the slot untouched
	value, err := uint.Get()
	assert.NoError(t, err)
	assert.Equal(t, big.NewInt(100), value)
}
