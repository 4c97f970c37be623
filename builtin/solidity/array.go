// Copyright (c) 2026 The StakeVault developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package solidity

import (
	"encoding/binary"
	"math/big"
	"reflect"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/rewardnet/stakevault/rnt"
)

// Array is an append-only dynamic array for built-in contracts, similar to a
// dynamic array in Solidity. The length lives at basePos, element i at
// blake2b(be64(i), basePos). Elements are never removed; indices are stable.
type Array[V any] struct {
	context *Context
	basePos rnt.Bytes32
	length  *Uint256
}

func NewArray[V any](context *Context, pos rnt.Bytes32) *Array[V] {
	return &Array[V]{
		context: context,
		basePos: pos,
		length:  NewUint256(context, pos),
	}
}

// Len returns the number of elements.
func (a *Array[V]) Len() (uint64, error) {
	n, err := a.length.Get()
	if err != nil {
		return 0, err
	}
	return n.Uint64(), nil
}

func (a *Array[V]) elemPos(index uint64) rnt.Bytes32 {
	var be [8]byte
	binary.BigEndian.PutUint64(be[:], index)
	return rnt.Blake2b(be[:], a.basePos.Bytes())
}

// Get returns the element at index. Reads beyond the length
// yield the zero value; callers range-check against Len.
func (a *Array[V]) Get(index uint64) (value V, err error) {
	err = a.context.state.DecodeStorage(a.context.address, a.elemPos(index), func(raw []byte) error {
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

// Append adds an element at the tail and returns its index.
func (a *Array[V]) Append(value V) (uint64, error) {
	index, err := a.Len()
	if err != nil {
		return 0, err
	}
	if err := a.Set(index, value); err != nil {
		return 0, err
	}
	if err := a.length.Set(new(big.Int).SetUint64(index + 1)); err != nil {
		return 0, err
	}
	return index, nil
}

// Set overwrites the element at index.
func (a *Array[V]) Set(index uint64, value V) error {
	return a.context.state.EncodeStorage(a.context.address, a.elemPos(index), func() ([]byte, error) {
		if e, ok := any(value).(emptier); ok && e.IsEmpty() {
			return nil, nil
		}
		return rlp.EncodeToBytes(value)
	})
}
