// Copyright (c) 2026 The StakeVault developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"bytes"
	"fmt"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/rewardnet/stakevault/cache"
	"github.com/rewardnet/stakevault/kv"
	"github.com/rewardnet/stakevault/rnt"
	"github.com/rewardnet/stakevault/stackedmap"
)

// storageBucket namespaces contract storage inside the backing store.
const storageBucket = kv.Bucket("s/")

// Error is the error caused by state access failure.
type Error struct {
	cause error
}

func (e *Error) Error() string {
	return fmt.Sprintf("state: %v", e.cause)
}

// storageKey identifies one storage slot of one contract.
type storageKey struct {
	addr rnt.Address
	key  rnt.Bytes32
}

func (k storageKey) persistKey() []byte {
	pk := make([]byte, 0, rnt.AddressLength+32)
	return append(append(pk, k.addr.Bytes()...), k.key.Bytes()...)
}

// State manages the world state: a flat keyed storage with
// checkpoint/revert journaling on top of a kv store.
type State struct {
	store  kv.Store
	getter kv.Getter
	cache  *cache.LRU // committed raw values, shared via Stater
	sm     *stackedmap.StackedMap
}

func newState(store kv.Store, cache *cache.LRU) *State {
	state := State{
		store:  store,
		getter: storageBucket.NewGetter(store),
		cache:  cache,
	}
	state.sm = stackedmap.New(func(key any) (any, bool, error) {
		return state.cacheGetter(key)
	})
	return &state
}

// cacheGetter implements stackedmap.MapGetter.
func (s *State) cacheGetter(key any) (value any, exist bool, err error) {
	switch k := key.(type) {
	case storageKey:
		if v, ok := s.cache.Get(k); ok {
			metricStorageCounter().AddWithLabel(1, map[string]string{"type": "read", "target": "cache"})
			return v.(rlp.RawValue), true, nil
		}
		raw, err := s.getter.Get(k.persistKey())
		if err != nil {
			if !s.getter.IsNotFound(err) {
				return nil, false, err
			}
			raw = nil
		}
		metricStorageCounter().AddWithLabel(1, map[string]string{"type": "read", "target": "store"})
		s.cache.Add(k, rlp.RawValue(raw))
		return rlp.RawValue(raw), true, nil
	}
	panic(fmt.Errorf("unexpected key type %+v", key))
}

// GetStorage returns storage value for the given address and key.
func (s *State) GetStorage(addr rnt.Address, key rnt.Bytes32) (rnt.Bytes32, error) {
	raw, err := s.GetRawStorage(addr, key)
	if err != nil {
		return rnt.Bytes32{}, err
	}
	if len(raw) == 0 {
		return rnt.Bytes32{}, nil
	}
	kind, content, _, err := rlp.Split(raw)
	if err != nil {
		return rnt.Bytes32{}, &Error{err}
	}
	if kind == rlp.List {
		// special case for rlp list, it should be customized storage value
		// return hash of raw data
		return rnt.Blake2b(raw), nil
	}
	return rnt.BytesToBytes32(content), nil
}

// SetStorage sets storage value for the given address and key.
// Zero value deletes the slot.
func (s *State) SetStorage(addr rnt.Address, key, value rnt.Bytes32) {
	if value.IsZero() {
		s.SetRawStorage(addr, key, nil)
		return
	}
	v, _ := rlp.EncodeToBytes(bytes.TrimLeft(value[:], "\x00"))
	s.SetRawStorage(addr, key, v)
}

// GetRawStorage returns storage value in rlp raw for the given address and key.
func (s *State) GetRawStorage(addr rnt.Address, key rnt.Bytes32) (rlp.RawValue, error) {
	data, _, err := s.sm.Get(storageKey{addr, key})
	if err != nil {
		return nil, &Error{err}
	}
	return data.(rlp.RawValue), nil
}

// SetRawStorage sets storage value in rlp raw. Empty raw deletes the slot.
func (s *State) SetRawStorage(addr rnt.Address, key rnt.Bytes32, raw rlp.RawValue) {
	s.sm.Put(storageKey{addr, key}, raw)
}

// EncodeStorage sets storage value encoded by the given enc method.
func (s *State) EncodeStorage(addr rnt.Address, key rnt.Bytes32, enc func() ([]byte, error)) error {
	raw, err := enc()
	if err != nil {
		return &Error{err}
	}
	s.SetRawStorage(addr, key, raw)
	return nil
}

// DecodeStorage gets and decodes storage value with the given dec method.
func (s *State) DecodeStorage(addr rnt.Address, key rnt.Bytes32, dec func([]byte) error) error {
	raw, err := s.GetRawStorage(addr, key)
	if err != nil {
		return err
	}
	if err := dec(raw); err != nil {
		return &Error{err}
	}
	return nil
}

// NewCheckpoint makes a checkpoint of current state.
// It returns revision of the checkpoint.
func (s *State) NewCheckpoint() int {
	return s.sm.Push()
}

// RevertTo reverts to checkpoint specified by revision.
func (s *State) RevertTo(revision int) {
	s.sm.PopTo(revision)
}

// Commit atomically persists all journaled changes into the backing store.
// The state remains usable afterwards and reflects the committed values.
func (s *State) Commit() error {
	changes := make(map[storageKey]rlp.RawValue)
	s.sm.Journal(func(k, v any) bool {
		switch key := k.(type) {
		case storageKey:
			changes[key] = v.(rlp.RawValue)
		}
		return true
	})
	if len(changes) == 0 {
		return nil
	}

	batch := s.store.NewBatch()
	putter := storageBucket.NewPutter(batch)
	for key, raw := range changes {
		if len(raw) == 0 {
			if err := putter.Delete(key.persistKey()); err != nil {
				return &Error{err}
			}
		} else {
			if err := putter.Put(key.persistKey(), raw); err != nil {
				return &Error{err}
			}
		}
	}
	if err := batch.Write(); err != nil {
		return &Error{err}
	}
	metricStorageCounter().AddWithLabel(int64(len(changes)), map[string]string{"type": "write", "target": "store"})

	// refresh the committed-value cache
	for key, raw := range changes {
		s.cache.Add(key, raw)
	}
	return nil
}
