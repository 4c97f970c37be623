// Copyright (c) 2026 The StakeVault developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package params

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rewardnet/stakevault/kv"
	"github.com/rewardnet/stakevault/rnt"
	"github.com/rewardnet/stakevault/state"
)

func TestParamsGetSet(t *testing.T) {
	st := state.NewStater(kv.NewMem()).NewState()
	setv := big.NewInt(10)
	key := rnt.BytesToBytes32([]byte("key"))
	p := New(rnt.BytesToAddress([]byte("par")), st)
	require.NoError(t, p.Set(key, setv))

	getv, err := p.Get(key)
	require.NoError(t, err)
	assert.Equal(t, setv, getv)

	getv, err = p.Get(rnt.BytesToBytes32([]byte("unset")))
	require.NoError(t, err)
	assert.Equal(t, 0, getv.Sign())
}

func TestParamsZeroDeletes(t *testing.T) {
	st := state.NewStater(kv.NewMem()).NewState()
	key := rnt.BytesToBytes32([]byte("key"))
	p := New(rnt.BytesToAddress([]byte("par")), st)

	require.NoError(t, p.Set(key, big.NewInt(7)))
	require.NoError(t, p.Set(key, new(big.Int)))

	raw, err := st.GetRawStorage(rnt.BytesToAddress([]byte("par")), key)
	require.NoError(t, err)
	assert.Empty(t, raw)
}

func TestParamsTypedHelpers(t *testing.T) {
	st := state.NewStater(kv.NewMem()).NewState()
	p := New(rnt.BytesToAddress([]byte("par")), st)

	key := rnt.BytesToBytes32([]byte("flag"))

	v, err := p.GetBool(key)
	require.NoError(t, err)
	assert.False(t, v)

	require.NoError(t, p.SetBool(key, true))
	v, err = p.GetBool(key)
	require.NoError(t, err)
	assert.True(t, v)

	require.NoError(t, p.SetBool(key, false))
	v, err = p.GetBool(key)
	require.NoError(t, err)
	assert.False(t, v)

	require.NoError(t, p.Set(rnt.KeyRewardPerSec, big.NewInt(1234)))
	u, err := p.GetUint64(rnt.KeyRewardPerSec)
	require.NoError(t, err)
	assert.Equal(t, uint64(1234), u)
}
