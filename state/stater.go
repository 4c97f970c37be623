// Copyright (c) 2026 The StakeVault developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"github.com/rewardnet/stakevault/cache"
	"github.com/rewardnet/stakevault/kv"
)

const committedCacheSize = 8192

// Stater is the state creator. States created by the same stater
// share one committed-value cache.
type Stater struct {
	store kv.Store
	cache *cache.LRU
}

// NewStater creates a new stater backed by the given store.
func NewStater(store kv.Store) *Stater {
	c, err := cache.NewLRU(committedCacheSize)
	if err != nil {
		panic(err)
	}
	return &Stater{store, c}
}

// NewState creates a fresh state view over the committed store.
func (s *Stater) NewState() *State {
	return newState(s.store, s.cache)
}
