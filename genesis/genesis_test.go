// Copyright (c) 2026 The StakeVault developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rewardnet/stakevault/builtin"
	"github.com/rewardnet/stakevault/genesis"
	"github.com/rewardnet/stakevault/kv"
	"github.com/rewardnet/stakevault/rnt"
	"github.com/rewardnet/stakevault/state"
	"github.com/rewardnet/stakevault/xenv"
)

func TestNewDevnet(t *testing.T) {
	gene := genesis.NewDevnet()
	assert.Equal(t, "devnet", gene.Name())
	assert.False(t, gene.ID().IsZero())

	store := kv.NewMem()
	defer store.Close()

	st, events, err := gene.Build(state.NewStater(store))
	require.NoError(t, err)

	owner, err := builtin.Authority.WithState(st).Owner()
	require.NoError(t, err)
	assert.Equal(t, genesis.DevAccounts()[0].Address, owner)

	env := xenv.New(st, rnt.Address{}, gene.LaunchTime())
	tok := builtin.Token.Bind(env)

	cap, err := tok.Cap()
	require.NoError(t, err)
	assert.Equal(t, rnt.InitialTokenCap, cap)

	for _, a := range genesis.DevAccounts() {
		bal, err := tok.BalanceOf(a.Address)
		require.NoError(t, err)
		assert.Equal(t, new(big.Int).Mul(big.NewInt(1_000_000), big.NewInt(1e18)), bal)
	}

	minter, err := tok.IsMinter(builtin.Staking.Address)
	require.NoError(t, err)
	assert.True(t, minter)
	minter, err = tok.IsMinter(builtin.Vault.Address)
	require.NoError(t, err)
	assert.True(t, minter)

	// one mint record per dev account
	require.Len(t, events, len(genesis.DevAccounts()))
	for _, ev := range events {
		assert.Equal(t, "Transfer", ev.Name)
		assert.Equal(t, gene.LaunchTime(), ev.Time)
	}

	rate, err := builtin.Params.WithState(st).Get(rnt.KeyRewardRate)
	require.NoError(t, err)
	assert.Equal(t, rnt.InitialRewardRate, rate)
}

func TestDevAccountsDeterministic(t *testing.T) {
	accs := genesis.DevAccounts()
	require.Len(t, accs, 10)
	again := genesis.DevAccounts()
	for i := range accs {
		assert.Equal(t, accs[i].Address, again[i].Address)
		assert.False(t, accs[i].Address.IsZero())
	}
}

func TestGenesisBuildCommits(t *testing.T) {
	store := kv.NewMem()
	defer store.Close()
	stater := state.NewStater(store)

	_, _, err := genesis.NewDevnet().Build(stater)
	require.NoError(t, err)

	// a fresh state over the same store sees the committed genesis
	owner, err := builtin.Authority.WithState(stater.NewState()).Owner()
	require.NoError(t, err)
	assert.Equal(t, genesis.DevAccounts()[0].Address, owner)
}
