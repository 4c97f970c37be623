// Copyright (c) 2026 The StakeVault developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package locks_test

import (
	"bytes"
	"encoding/json"
	"io"
	"math/big"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rewardnet/stakevault/api/locks"
	"github.com/rewardnet/stakevault/builtin"
	"github.com/rewardnet/stakevault/eventdb"
	"github.com/rewardnet/stakevault/genesis"
	"github.com/rewardnet/stakevault/kv"
	"github.com/rewardnet/stakevault/node"
	"github.com/rewardnet/stakevault/rnt"
	"github.com/rewardnet/stakevault/state"
)

func tokens(n int64) *big.Int {
	return new(big.Int).Mul(big.NewInt(n), big.NewInt(1e18))
}

// testServer keeps the engine clock in an atomic, the handlers read it from
// their own goroutines.
type testServer struct {
	ts     *httptest.Server
	engine *node.Engine
	now    atomic.Uint64
}

func initLocksServer(t *testing.T) *testServer {
	db, err := eventdb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gene := genesis.NewDevnet()
	srv := &testServer{}
	srv.now.Store(gene.LaunchTime())
	srv.engine, err = node.New(gene, state.NewStater(kv.NewMem()), db, node.Options{
		Now: func() uint64 { return srv.now.Load() },
	})
	require.NoError(t, err)

	router := mux.NewRouter()
	locks.New(srv.engine, true).Mount(router, "/locks")
	srv.ts = httptest.NewServer(router)
	t.Cleanup(srv.ts.Close)
	return srv
}

func getLocks(t *testing.T, srv *testServer, user rnt.Address) []*locks.Lock {
	res, statusCode := httpGet(t, srv.ts.URL+"/locks/"+user.String())
	require.Equal(t, http.StatusOK, statusCode)
	var grants []*locks.Lock
	require.NoError(t, json.Unmarshal(res, &grants))
	return grants
}

func getTotal(t *testing.T, srv *testServer, user rnt.Address) *big.Int {
	res, statusCode := httpGet(t, srv.ts.URL+"/locks/"+user.String()+"/total")
	require.Equal(t, http.StatusOK, statusCode)
	var response struct {
		Total *math.HexOrDecimal256 `json:"total"`
	}
	require.NoError(t, json.Unmarshal(res, &response))
	return (*big.Int)(response.Total)
}

func TestLocks(t *testing.T) {
	srv := initLocksServer(t)
	user := genesis.DevAccounts()[1].Address

	assert.Empty(t, getLocks(t, srv, user))

	require.NoError(t, srv.engine.Approve(user, builtin.Staking.Address, tokens(100)))
	require.NoError(t, srv.engine.Stake(user, tokens(100)))
	srv.now.Add(rnt.SecondsPerDay)
	require.NoError(t, srv.engine.ClaimReward(user))

	// the day of accrual became one grant locked from the claim instant
	grants := getLocks(t, srv, user)
	require.Len(t, grants, 1)
	assert.Equal(t, uint64(0), grants[0].Index)
	assert.Equal(t, tokens(100), (*big.Int)(&grants[0].Amount))
	assert.Equal(t, srv.now.Load(), grants[0].LockTime)
	assert.Equal(t, srv.now.Load()+rnt.DefaultLockPeriod, grants[0].UnlockTime)
	assert.Zero(t, (*big.Int)(&grants[0].Unlocked).Sign())
	assert.Equal(t, tokens(100), getTotal(t, srv, user))

	// half the lock period in, half the grant is unlocked
	srv.now.Add(15 * rnt.SecondsPerDay)
	grants = getLocks(t, srv, user)
	require.Len(t, grants, 1)
	assert.Equal(t, tokens(50), (*big.Int)(&grants[0].Unlocked))

	res, statusCode := httpPost(t, srv.ts.URL+"/locks/"+user.String()+"/0/convert", nil)
	require.Equal(t, http.StatusOK, statusCode)
	var converted struct {
		Received *math.HexOrDecimal256 `json:"received"`
	}
	require.NoError(t, json.Unmarshal(res, &converted))
	assert.Equal(t, tokens(50), (*big.Int)(converted.Received))

	// conversion is terminal, the grant stays listed with a zero amount
	grants = getLocks(t, srv, user)
	require.Len(t, grants, 1)
	assert.Zero(t, (*big.Int)(&grants[0].Amount).Sign())
	assert.Zero(t, getTotal(t, srv, user).Sign())

	res, statusCode = httpPost(t, srv.ts.URL+"/locks/"+user.String()+"/0/convert", nil)
	assert.Equal(t, http.StatusBadRequest, statusCode)
	assert.Contains(t, string(res), "no locked tokens")

	res, statusCode = httpPost(t, srv.ts.URL+"/locks/"+user.String()+"/5/convert", nil)
	assert.Equal(t, http.StatusBadRequest, statusCode)
	assert.Contains(t, string(res), "invalid lock index")

	res, statusCode = httpPost(t, srv.ts.URL+"/locks/"+user.String()+"/abc/convert", nil)
	assert.Equal(t, http.StatusBadRequest, statusCode)
	assert.Contains(t, string(res), "index")
}

func httpPost(t *testing.T, url string, data []byte) ([]byte, int) {
	res, err := http.Post(url, "application/json", bytes.NewReader(data))
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
