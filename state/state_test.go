// Copyright (c) 2026 The StakeVault developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/stretchr/testify/assert"

	"github.com/rewardnet/stakevault/kv"
	"github.com/rewardnet/stakevault/rnt"
	"github.com/rewardnet/stakevault/test/datagen"
)

func TestStorage(t *testing.T) {
	st := NewStater(kv.NewMem()).NewState()

	addr := rnt.BytesToAddress([]byte("addr"))
	key := rnt.BytesToBytes32([]byte("key"))

	// absent slot reads zero
	v, err := st.GetStorage(addr, key)
	assert.Nil(t, err)
	assert.True(t, v.IsZero())

	value := rnt.BytesToBytes32([]byte("value"))
	st.SetStorage(addr, key, value)
	v, err = st.GetStorage(addr, key)
	assert.Nil(t, err)
	assert.Equal(t, value, v)

	// zero value deletes the slot
	st.SetStorage(addr, key, rnt.Bytes32{})
	raw, err := st.GetRawStorage(addr, key)
	assert.Nil(t, err)
	assert.Zero(t, len(raw))
}

func TestEncodeDecodeStorage(t *testing.T) {
	st := NewStater(kv.NewMem()).NewState()

	addr := rnt.BytesToAddress([]byte("addr"))
	key := rnt.BytesToBytes32([]byte("key"))

	type payload struct {
		Amount *big.Int
		Time   uint64
	}

	saved := payload{big.NewInt(100), 86400}
	err := st.EncodeStorage(addr, key, func() ([]byte, error) {
		return rlp.EncodeToBytes(&saved)
	})
	assert.Nil(t, err)

	var loaded payload
	err = st.DecodeStorage(addr, key, func(raw []byte) error {
		return rlp.DecodeBytes(raw, &loaded)
	})
	assert.Nil(t, err)
	assert.Equal(t, saved, loaded)
}

func TestCheckpointRevert(t *testing.T) {
	st := NewStater(kv.NewMem()).NewState()

	addr := rnt.BytesToAddress([]byte("addr"))
	key := rnt.BytesToBytes32([]byte("key"))

	st.SetStorage(addr, key, rnt.BytesToBytes32([]byte{1}))

	cp := st.NewCheckpoint()
	st.SetStorage(addr, key, rnt.BytesToBytes32([]byte{2}))
	v, _ := st.GetStorage(addr, key)
	assert.Equal(t, rnt.BytesToBytes32([]byte{2}), v)

	st.RevertTo(cp)
	v, _ = st.GetStorage(addr, key)
	assert.Equal(t, rnt.BytesToBytes32([]byte{1}), v)
}

func TestCommit(t *testing.T) {
	store := kv.NewMem()
	stater := NewStater(store)

	addr := rnt.BytesToAddress([]byte("addr"))
	key := rnt.BytesToBytes32([]byte("key"))
	val := rnt.BytesToBytes32([]byte("value"))

	st := stater.NewState()
	st.SetStorage(addr, key, val)
	assert.Nil(t, st.Commit())

	// a fresh state over the same store sees the committed value
	st2 := stater.NewState()
	v, err := st2.GetStorage(addr, key)
	assert.Nil(t, err)
	assert.Equal(t, val, v)

	// deletion commits too
	st2.SetStorage(addr, key, rnt.Bytes32{})
	assert.Nil(t, st2.Commit())

	// bypass the shared cache to prove the store was updated
	v, err = NewStater(store).NewState().GetStorage(addr, key)
	assert.Nil(t, err)
	assert.True(t, v.IsZero())
}

func TestStorageRandomRoundtrip(t *testing.T) {
	store := kv.NewMem()
	stater := NewStater(store)
	st := stater.NewState()

	type slot struct {
		addr rnt.Address
		key  rnt.Bytes32
		val  rnt.Bytes32
	}

	slots := make([]slot, 0, 100)
	for range 100 {
		s := slot{datagen.RandomAddress(), datagen.RandomHash(), datagen.RandomHash()}
		st.SetStorage(s.addr, s.key, s.val)
		slots = append(slots, s)
	}
	assert.Nil(t, st.Commit())

	st2 := NewStater(store).NewState()
	for _, s := range slots {
		v, err := st2.GetStorage(s.addr, s.key)
		assert.Nil(t, err)
		assert.Equal(t, s.val, v)
	}
}

func TestRevertedChangesNotCommitted(t *testing.T) {
	store := kv.NewMem()
	stater := NewStater(store)

	addr := rnt.BytesToAddress([]byte("addr"))
	keep := rnt.BytesToBytes32([]byte("keep"))
	drop := rnt.BytesToBytes32([]byte("drop"))

	st := stater.NewState()
	st.SetStorage(addr, keep, rnt.BytesToBytes32([]byte{1}))

	cp := st.NewCheckpoint()
	st.SetStorage(addr, drop, rnt.BytesToBytes32([]byte{2}))
	st.RevertTo(cp)

	assert.Nil(t, st.Commit())

	st2 := NewStater(store).NewState()
	v, _ := st2.GetStorage(addr, keep)
	assert.Equal(t, rnt.BytesToBytes32([]byte{1}), v)
	v, _ = st2.GetStorage(addr, drop)
	assert.True(t, v.IsZero())
}
