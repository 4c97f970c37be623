// Copyright (c) 2026 The StakeVault developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package solidity

import (
	"reflect"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/rewardnet/stakevault/rnt"
)

// Key constrains mapping key types to byte-representable values.
type Key interface {
	Bytes() []byte
}

// Mapping is a key/value storage abstraction for built-in contracts,
// similar to the mapping in Solidity. The entry for a key lives at
// blake2b(key, basePos); an entry encoding to empty clears its slot.
type Mapping[K Key, V any] struct {
	context *Context
	basePos rnt.Bytes32
}

func NewMapping[K Key, V any](context *Context, pos rnt.Bytes32) *Mapping[K, V] {
	return &Mapping[K, V]{context: context, basePos: pos}
}

func (m *Mapping[K, V]) Get(key K) (value V, err error) {
	position := rnt.Blake2b(key.Bytes(), m.basePos.Bytes())
	err = m.context.state.DecodeStorage(m.context.address, position, func(raw []byte) error {
		if len(raw) == 0 {
			return nil
		}
		if reflect.ValueOf(value).Kind() == reflect.Ptr {
			value = reflect.New(reflect.TypeOf(value).Elem()).Interface().(V)
		}
		return rlp.DecodeBytes(raw, &value)
	})
	return
}

// emptier is implemented by value types whose empty value should
// clear the storage slot instead of being persisted.
type emptier interface {
	IsEmpty() bool
}

func (m *Mapping[K, V]) Set(key K, value V) error {
	position := rnt.Blake2b(key.Bytes(), m.basePos.Bytes())
	return m.context.state.EncodeStorage(m.context.address, position, func() ([]byte, error) {
		if e, ok := any(value).(emptier); ok && e.IsEmpty() {
			return nil, nil
		}
		return rlp.EncodeToBytes(value)
	})
}
