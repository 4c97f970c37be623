// Copyright (c) 2026 The StakeVault developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package solidity

import (
	"testing"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rewardnet/stakevault/kv"
	"github.com/rewardnet/stakevault/rnt"
	"github.com/rewardnet/stakevault/state"
)

type TestStruct struct {
	Field1 uint64
	Field2 uint64
	Addr1  rnt.Address
	Bytes1 rnt.Bytes32
}

type emptyAware struct {
	Amount uint64
}

func (e *emptyAware) IsEmpty() bool { return e.Amount == 0 }

// newTestContext returns a fresh Context over an in-memory state.
func newTestContext() *Context {
	st := state.NewStater(kv.NewMem()).NewState()
	return NewContext(rnt.BytesToAddress([]byte("test")), st)
}

func newTestStruct() *TestStruct {
	return &TestStruct{
		Field1: 100,
		Field2: 200,
		Addr1:  rnt.BytesToAddress([]byte("addr1")),
		Bytes1: rnt.BytesToBytes32([]byte("bytes1")),
	}
}

func TestMapping_SetGet_StructPointer(t *testing.T) {
	ctx := newTestContext()
	mapping := NewMapping[rnt.Bytes32, *TestStruct](ctx, rnt.Bytes32{1})
	key := rnt.BytesToBytes32([]byte("key"))
	value := newTestStruct()

	t.Run("get before set returns nil", func(t *testing.T) {
		got, err := mapping.Get(key)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("set then get returns value", func(t *testing.T) {
		require.NoError(t, mapping.Set(key, value))
		got, err := mapping.Get(key)
		require.NoError(t, err)
		assert.Equal(t, value, got)
	})

	t.Run("set nil pointer clears storage", func(t *testing.T) {
		require.NoError(t, mapping.Set(key, nil))
		got, err := mapping.Get(key)
		require.NoError(t, err)
		assert.Nil(t, got)

		raw, err := ctx.State().GetRawStorage(ctx.Address(), rnt.Blake2b(key.Bytes(), rnt.Bytes32{1}.Bytes()))
		require.NoError(t, err)
		assert.Empty(t, raw)
	})

	t.Run("distinct keys land on distinct slots", func(t *testing.T) {
		other := rnt.BytesToBytes32([]byte("other"))
		require.NoError(t, mapping.Set(key, value))
		require.NoError(t, mapping.Set(other, &TestStruct{Field1: 1}))

		got, err := mapping.Get(key)
		require.NoError(t, err)
		assert.Equal(t, value, got)
	})
}

func TestMapping_SetGet_AddressValue(t *testing.T) {
	ctx := newTestContext()
	mapping := NewMapping[rnt.Address, rnt.Address](ctx, rnt.Bytes32{2})
	key := rnt.BytesToAddress([]byte("holder"))
	addr := rnt.BytesToAddress([]byte("value"))

	t.Run("get unset key returns zero value", func(t *testing.T) {
		got, err := mapping.Get(key)
		require.NoError(t, err)
		assert.Equal(t, rnt.Address{}, got)
	})

	t.Run("set then get round trips", func(t *testing.T) {
		require.NoError(t, mapping.Set(key, addr))
		got, err := mapping.Get(key)
		require.NoError(t, err)
		assert.Equal(t, addr, got)
	})
}

func TestMapping_SetGet_Uint64Value(t *testing.T) {
	ctx := newTestContext()
	mapping := NewMapping[rnt.Bytes32, uint64](ctx, rnt.Bytes32{3})
	key := rnt.BytesToBytes32([]byte("key"))

	require.NoError(t, mapping.Set(key, 42))
	got, err := mapping.Get(key)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), got)

	got, err = mapping.Get(rnt.BytesToBytes32([]byte("unset")))
	require.NoError(t, err)
	assert.Equal(t, uint64(0), got)
}

func TestMapping_EmptyValueClearsSlot(t *testing.T) {
	ctx := newTestContext()
	basePos := rnt.Bytes32{4}
	mapping := NewMapping[rnt.Address, *emptyAware](ctx, basePos)
	key := rnt.BytesToAddress([]byte("k"))

	require.NoError(t, mapping.Set(key, &emptyAware{Amount: 7}))
	require.NoError(t, mapping.Set(key, &emptyAware{Amount: 0}))

	raw, err := ctx.State().GetRawStorage(ctx.Address(), rnt.Blake2b(key.Bytes(), basePos.Bytes()))
	require.NoError(t, err)
	assert.Empty(t, raw)
}

func TestMappingGetSet_ErrorReturnsZeroAndErr(t *testing.T) {
	ctx := newTestContext()
	basePos := rnt.BytesToBytes32([]byte("base"))
	m := NewMapping[rnt.Address, rnt.Address](ctx, basePos)

	key := rnt.BytesToAddress([]byte("k"))
	slot := rnt.Blake2b(key.Bytes(), basePos.Bytes())

	ctx.State().SetRawStorage(ctx.Address(), slot, rlp.RawValue{0xFF})

	val, err := m.Get(key)
	if err == nil {
		t.Fatalf("expected error, got nil")
	}
	if val != (rnt.Address{}) {
		t.Fatalf("expected zero value, got %v", val)
	}

	m2 := NewMapping[rnt.Address, chan int](ctx, basePos)
	value := make(chan int)

	err = m2.Set(key, value)
	if err == nil {
		t.Fatalf("expected encode error, got nil")
	}
}
