// Copyright (c) 2026 The StakeVault developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package solidity

import (
	"encoding/binary"
	"testing"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/stretchr/testify/assert"

	"github.com/rewardnet/stakevault/rnt"
)

func TestConfigVariable(t *testing.T) {
	config := NewConfigVariable("name", 10)

	value := config.Get()
	assert.Equal(t, uint64(10), value)

	name := config.Name()
	assert.Equal(t, "name", name)

	slot := config.Slot()
	assert.Equal(t, rnt.BytesToBytes32([]byte("name")), slot)

	ctx := newTestContext()
	config.Override(ctx)
	assert.Equal(t, uint64(10), config.Get())

	config.initialised = true
	config.Override(ctx)
	assert.Equal(t, uint64(10), config.Get())
}

func TestConfigVariable_Override(t *testing.T) {
	ctx := newTestContext()

	config := NewConfigVariable("test", 10)

	var be8 [8]byte
	binary.BigEndian.PutUint64(be8[:], 604800)
	ctx.State().SetStorage(ctx.Address(), config.Slot(), rnt.BytesToBytes32(be8[:]))

	config.Override(ctx)
	assert.Equal(t, uint64(604800), config.Get())

	// subsequent overrides are no-ops
	ctx.State().SetStorage(ctx.Address(), config.Slot(), rnt.Bytes32{})
	config.Override(ctx)
	assert.Equal(t, uint64(604800), config.Get())
}

func TestConfigVariable_OverrideBadStorage(t *testing.T) {
	ctx := newTestContext()

	config := NewConfigVariable("test", 10)
	ctx.State().SetRawStorage(ctx.Address(), config.Slot(), rlp.RawValue{0xFF})

	config.Override(ctx)
	assert.Equal(t, uint64(10), config.Get())
	assert.False(t, config.initialised)
}
