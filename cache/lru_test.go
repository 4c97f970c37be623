// Copyright (c) 2026 The StakeVault developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package cache

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLRUGetOrLoad(t *testing.T) {
	cache, err := NewLRU(8)
	assert.Nil(t, err)

	loads := 0
	loader := func(key any) (any, error) {
		loads++
		return key.(int) * 10, nil
	}

	v, err := cache.GetOrLoad(1, loader)
	assert.Nil(t, err)
	assert.Equal(t, 10, v)
	assert.Equal(t, 1, loads)

	// second get is served from cache
	v, err = cache.GetOrLoad(1, loader)
	assert.Nil(t, err)
	assert.Equal(t, 10, v)
	assert.Equal(t, 1, loads)

	_, err = cache.GetOrLoad(2, func(any) (any, error) {
		return nil, errors.New("load failed")
	})
	assert.Error(t, err)
	_, ok := cache.Get(2)
	assert.False(t, ok)
}
