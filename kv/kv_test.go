// Copyright (c) 2026 The StakeVault developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package kv

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevelDB(t *testing.T) {
	store := NewMem()
	defer store.Close()

	_, err := store.Get([]byte("k"))
	assert.True(t, store.IsNotFound(err))

	assert.Nil(t, store.Put([]byte("k"), []byte("v")))

	val, err := store.Get([]byte("k"))
	assert.Nil(t, err)
	assert.Equal(t, []byte("v"), val)

	has, err := store.Has([]byte("k"))
	assert.Nil(t, err)
	assert.True(t, has)

	assert.Nil(t, store.Delete([]byte("k")))
	has, err = store.Has([]byte("k"))
	assert.Nil(t, err)
	assert.False(t, has)
}

func TestLevelDBBatch(t *testing.T) {
	store := NewMem()
	defer store.Close()

	batch := store.NewBatch()
	assert.Nil(t, batch.Put([]byte("a"), []byte("1")))
	assert.Nil(t, batch.Put([]byte("b"), []byte("2")))
	assert.Nil(t, batch.Delete([]byte("a")))
	assert.Equal(t, 3, batch.Len())

	// nothing visible before write
	has, err := store.Has([]byte("b"))
	assert.Nil(t, err)
	assert.False(t, has)

	assert.Nil(t, batch.Write())

	_, err = store.Get([]byte("a"))
	assert.True(t, store.IsNotFound(err))
	val, err := store.Get([]byte("b"))
	assert.Nil(t, err)
	assert.Equal(t, []byte("2"), val)
}

func TestBucket(t *testing.T) {
	store := NewMem()
	defer store.Close()

	bkt := Bucket("prefix-")
	getter := bkt.NewGetter(store)
	putter := bkt.NewPutter(store)

	assert.Nil(t, putter.Put([]byte("key"), []byte("val")))

	// visible with prefix in the raw store
	raw, err := store.Get([]byte("prefix-key"))
	assert.Nil(t, err)
	assert.Equal(t, []byte("val"), raw)

	val, err := getter.Get([]byte("key"))
	assert.Nil(t, err)
	assert.Equal(t, []byte("val"), val)

	has, err := getter.Has([]byte("key"))
	assert.Nil(t, err)
	assert.True(t, has)

	assert.Nil(t, putter.Delete([]byte("key")))
	_, err = getter.Get([]byte("key"))
	assert.True(t, getter.IsNotFound(err))
}
