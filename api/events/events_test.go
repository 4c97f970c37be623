// Copyright (c) 2026 The StakeVault developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package events_test

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

	"github.com/rewardnet/stakevault/api/events"
	"github.com/rewardnet/stakevault/builtin"
	"github.com/rewardnet/stakevault/eventdb"
	"github.com/rewardnet/stakevault/genesis"
	"github.com/rewardnet/stakevault/kv"
	"github.com/rewardnet/stakevault/node"
	"github.com/rewardnet/stakevault/state"
)

const testLogsLimit = 10

func tokens(n int64) *big.Int {
	return new(big.Int).Mul(big.NewInt(n), big.NewInt(1e18))
}

func initEventsServer(t *testing.T) (*httptest.Server, *node.Engine) {
	db, err := eventdb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	engine, err := node.New(genesis.NewDevnet(), state.NewStater(kv.NewMem()), db, node.Options{})
	require.NoError(t, err)

	router := mux.NewRouter()
	events.New(db, testLogsLimit).Mount(router, "/events")
	ts := httptest.NewServer(router)
	t.Cleanup(ts.Close)
	return ts, engine
}

func TestEvents(t *testing.T) {
	ts, engine := initEventsServer(t)
	user := genesis.DevAccounts()[1].Address

	require.NoError(t, engine.Approve(user, builtin.Staking.Address, tokens(5)))
	require.NoError(t, engine.Stake(user, tokens(5)))

	// ten genesis mints, then the stake pull and the stake itself
	res, statusCode := httpGet(t, ts.URL+"/events?name=Staked")
	require.Equal(t, http.StatusOK, statusCode)
	var fes []*events.FilteredEvent
	require.NoError(t, json.Unmarshal(res, &fes))
	require.Len(t, fes, 1)
	assert.Equal(t, user, fes[0].User)
	assert.Equal(t, builtin.Staking.Address, fes[0].Address)
	assert.Equal(t, tokens(5), (*big.Int)(&fes[0].Amount))

	res, statusCode = httpGet(t, ts.URL+"/events?user="+user.String())
	require.Equal(t, http.StatusOK, statusCode)
	require.NoError(t, json.Unmarshal(res, &fes))
	require.Len(t, fes, 3)

	// newest first, capped at the configured page limit
	res, statusCode = httpGet(t, ts.URL+"/events?order=desc")
	require.Equal(t, http.StatusOK, statusCode)
	require.NoError(t, json.Unmarshal(res, &fes))
	require.Len(t, fes, testLogsLimit)
	assert.Equal(t, "Staked", fes[0].Name)
	assert.Greater(t, fes[0].Seq, fes[1].Seq)

	// offset pages past the genesis mints
	res, statusCode = httpGet(t, ts.URL+"/events?limit=2&offset=10")
	require.Equal(t, http.StatusOK, statusCode)
	require.NoError(t, json.Unmarshal(res, &fes))
	require.Len(t, fes, 2)
	assert.Equal(t, "Transfer", fes[0].Name)
	assert.Equal(t, "Staked", fes[1].Name)

	_, statusCode = httpGet(t, ts.URL+"/events?limit=100")
	assert.Equal(t, http.StatusForbidden, statusCode)

	res, statusCode = httpGet(t, ts.URL+"/events?from=10&to=5")
	assert.Equal(t, http.StatusBadRequest, statusCode)
	assert.Contains(t, string(res), "to must be greater")

	_, statusCode = httpGet(t, ts.URL+"/events?user=xyz")
	assert.Equal(t, http.StatusBadRequest, statusCode)

	_, statusCode = httpGet(t, ts.URL+"/events?offset=nope")
	assert.Equal(t, http.StatusBadRequest, statusCode)
}

func httpGet(t *testing.T, url string) ([]byte, int) {
	res, err := http.Get(url)
	if err != nil {
		t.Fatal(err)
	}
	r, err := io.ReadAll(res.Body)
	res.Body.Close()
	if err != nil {
		t.Fatal(err)
	}
	return r, res.StatusCode
}
