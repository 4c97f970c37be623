// Copyright (c) 2026 The StakeVault developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package supply_test

import (
	"encoding/json"
	"io"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rewardnet/stakevault/api/supply"
	"github.com/rewardnet/stakevault/builtin"
	"github.com/rewardnet/stakevault/eventdb"
	"github.com/rewardnet/stakevault/genesis"
	"github.com/rewardnet/stakevault/kv"
	"github.com/rewardnet/stakevault/node"
	"github.com/rewardnet/stakevault/state"
)

func tokens(n int64) *big.Int {
	return new(big.Int).Mul(big.NewInt(n), big.NewInt(1e18))
}

func getSupply(t *testing.T, ts *httptest.Server) *supply.Supply {
	res, err := http.Get(ts.URL + "/supply")
	require.NoError(t, err)
	body, err := io.ReadAll(res.Body)
	res.Body.Close()
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, res.StatusCode)

	var sup supply.Supply
	require.NoError(t, json.Unmarshal(body, &sup))
	return &sup
}

func TestSupply(t *testing.T) {
	db, err := eventdb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	engine, err := node.New(genesis.NewDevnet(), state.NewStater(kv.NewMem()), db, node.Options{})
	require.NoError(t, err)

	router := mux.NewRouter()
	supply.New(engine).Mount(router, "/supply")
	ts := httptest.NewServer(router)
	t.Cleanup(ts.Close)

	sup := getSupply(t, ts)
	assert.Equal(t, tokens(10_000_000), (*big.Int)(&sup.Total))
	assert.Equal(t, tokens(1_000_000_000), (*big.Int)(&sup.Cap))
	assert.Zero(t, (*big.Int)(&sup.Staked).Sign())
	assert.Zero(t, (*big.Int)(&sup.Locked).Sign())

	// staking moves tokens into custody without changing the supply
	user := genesis.DevAccounts()[1].Address
	require.NoError(t, engine.Approve(user, builtin.Staking.Address, tokens(1500)))
	require.NoError(t, engine.Stake(user, tokens(1500)))

	sup = getSupply(t, ts)
	assert.Equal(t, tokens(10_000_000), (*big.Int)(&sup.Total))
	assert.Equal(t, tokens(1500), (*big.Int)(&sup.Staked))
}
