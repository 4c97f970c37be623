// Copyright (c) 2026 The StakeVault developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package vault

import (
	"encoding/binary"
	"encoding/json"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rewardnet/stakevault/builtin/authority"
	"github.com/rewardnet/stakevault/builtin/params"
	"github.com/rewardnet/stakevault/builtin/reverts"
	"github.com/rewardnet/stakevault/builtin/token"
	"github.com/rewardnet/stakevault/kv"
	"github.com/rewardnet/stakevault/rnt"
	"github.com/rewardnet/stakevault/state"
	"github.com/rewardnet/stakevault/test/datagen"
	"github.com/rewardnet/stakevault/xenv"
)

var (
	owner  = rnt.BytesToAddress([]byte("owner"))
	alice  = rnt.BytesToAddress([]byte("alice"))
	bob    = rnt.BytesToAddress([]byte("bob"))
	engine = rnt.BytesToAddress([]byte("Staking"))

	authorityAddr = rnt.BytesToAddress([]byte("Authority"))
	tokenAddr     = rnt.BytesToAddress([]byte("Token"))
	paramsAddr    = rnt.BytesToAddress([]byte("Params"))
	vaultAddr     = rnt.BytesToAddress([]byte("Vault"))
)

func newTestState(t *testing.T) *state.State {
	st := state.NewStater(kv.NewMem()).NewState()

	auth := authority.New(authorityAddr, st)
	require.NoError(t, auth.InitOwner(owner))

	tok := token.New(tokenAddr, xenv.New(st, alice, 0), auth)
	require.NoError(t, tok.InitCap(rnt.InitialTokenCap))
	require.NoError(t, tok.InitMinter(vaultAddr))
	return st
}

// vaultAt binds a fresh vault to the state at the given time, with alice as
// the caller.
func vaultAt(st *state.State, now uint64) (*Vault, *xenv.Environment) {
	env := xenv.New(st, alice, now)
	auth := authority.New(authorityAddr, st)
	tok := token.New(tokenAddr, env, auth)
	par := params.New(paramsAddr, st)
	return New(vaultAddr, env, tok, par, engine), env
}

func balanceOf(t *testing.T, st *state.State, addr rnt.Address) *big.Int {
	tok := token.New(tokenAddr, xenv.New(st, alice, 0), authority.New(authorityAddr, st))
	bal, err := tok.BalanceOf(addr)
	require.NoError(t, err)
	return bal
}

func TestMintGrant(t *testing.T) {
	st := newTestState(t)
	v, _ := vaultAt(st, 1000)

	// only the engine may mint grants
	_, err := v.MintGrant(alice, alice, big.NewInt(100))
	var ua *reverts.Unauthorized
	require.ErrorAs(t, err, &ua)
	assert.Equal(t, alice, ua.Caller)

	_, err = v.MintGrant(engine, rnt.Address{}, big.NewInt(100))
	assert.IsType(t, &reverts.InvalidAddress{}, err)

	_, err = v.MintGrant(engine, alice, new(big.Int))
	assert.True(t, reverts.IsRevertErr(err))

	index, err := v.MintGrant(engine, alice, big.NewInt(100))
	require.NoError(t, err)
	assert.Equal(t, uint64(0), index)

	index, err = v.MintGrant(engine, alice, big.NewInt(50))
	require.NoError(t, err)
	assert.Equal(t, uint64(1), index)

	count, err := v.LockCount(alice)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), count)

	grant, err := v.GetLock(alice, 0)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(100), grant.Amount)
	assert.Equal(t, uint64(1000), grant.LockTime)

	total, err := v.TotalLocked(alice)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(150), total)

	global, err := v.GlobalLocked()
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(150), global)
}

func TestLockLedgerTotals(t *testing.T) {
	st := newTestState(t)
	v, _ := vaultAt(st, 1000)

	users := make([]rnt.Address, 3)
	totals := make(map[rnt.Address]*big.Int)
	for i := range users {
		users[i] = datagen.RandomAddress()
		totals[users[i]] = new(big.Int)
	}

	global := new(big.Int)
	for range 30 {
		user := users[datagen.RandIntN(len(users))]
		amount := datagen.RandAmount()
		_, err := v.MintGrant(engine, user, amount)
		require.NoError(t, err)

		totals[user].Add(totals[user], amount)
		global.Add(global, amount)
	}

	for _, user := range users {
		total, err := v.TotalLocked(user)
		require.NoError(t, err)
		assert.Equal(t, totals[user], total)
	}

	g, err := v.GlobalLocked()
	require.NoError(t, err)
	assert.Equal(t, global, g)
}

func TestConvertLinearUnlock(t *testing.T) {
	st := newTestState(t)
	period := rnt.DefaultLockPeriod

	v, _ := vaultAt(st, 1000)
	for range 4 {
		_, err := v.MintGrant(engine, alice, big.NewInt(1000))
		require.NoError(t, err)
	}

	// converting immediately releases nothing but still retires the grant
	unlocked, err := v.Convert(alice, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, unlocked.Sign())

	grant, err := v.GetLock(alice, 0)
	require.NoError(t, err)
	assert.True(t, grant.Converted())
	assert.Equal(t, uint64(1000), grant.LockTime)

	// halfway through the lock period half unlocks
	v, _ = vaultAt(st, 1000+period/2)
	unlocked, err = v.Convert(alice, 1)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(500), unlocked)
	assert.Equal(t, big.NewInt(500), balanceOf(t, st, alice))

	// exactly at the end of the lock period everything unlocks
	v, _ = vaultAt(st, 1000+period)
	unlocked, err = v.Convert(alice, 2)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(1000), unlocked)

	// and long after as well
	v, _ = vaultAt(st, 1000+10*period)
	unlocked, err = v.Convert(alice, 3)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(1000), unlocked)

	assert.Equal(t, big.NewInt(2500), balanceOf(t, st, alice))

	// the forfeited remainder was never minted
	tok := token.New(tokenAddr, xenv.New(st, alice, 0), authority.New(authorityAddr, st))
	supply, err := tok.TotalSupply()
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(2500), supply)

	global, err := v.GlobalLocked()
	require.NoError(t, err)
	assert.Equal(t, 0, global.Sign())
}

func TestConvertTruncates(t *testing.T) {
	st := newTestState(t)
	period := rnt.DefaultLockPeriod

	v, _ := vaultAt(st, 0)
	_, err := v.MintGrant(engine, alice, big.NewInt(100))
	require.NoError(t, err)

	// 100 * (period/3) / period truncates to 33
	v, _ = vaultAt(st, period/3)
	unlocked, err := v.Convert(alice, 0)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(33), unlocked)
}

func TestConvertReverts(t *testing.T) {
	st := newTestState(t)
	v, _ := vaultAt(st, 1000)
	_, err := v.MintGrant(engine, alice, big.NewInt(100))
	require.NoError(t, err)

	// out of range index
	_, err = v.Convert(alice, 5)
	var ili *reverts.InvalidLockIndex
	require.ErrorAs(t, err, &ili)
	assert.Equal(t, uint64(5), ili.Index)
	assert.Equal(t, uint64(1), ili.Count)

	// double conversion
	_, err = v.Convert(alice, 0)
	require.NoError(t, err)
	_, err = v.Convert(alice, 0)
	var nlt *reverts.NoLockedTokens
	require.ErrorAs(t, err, &nlt)
	assert.Equal(t, uint64(0), nlt.Index)
}

func TestConvertWhilePaused(t *testing.T) {
	st := newTestState(t)
	v, _ := vaultAt(st, 1000)
	_, err := v.MintGrant(engine, alice, big.NewInt(100))
	require.NoError(t, err)

	par := params.New(paramsAddr, st)
	require.NoError(t, par.SetBool(rnt.KeyPaused, true))

	_, err = v.Convert(alice, 0)
	assert.IsType(t, &reverts.Paused{}, err)

	require.NoError(t, par.SetBool(rnt.KeyPaused, false))
	_, err = v.Convert(alice, 0)
	require.NoError(t, err)
}

func TestConvertReentrancy(t *testing.T) {
	st := newTestState(t)
	v, _ := vaultAt(st, 1000)
	_, err := v.MintGrant(engine, alice, big.NewInt(100))
	require.NoError(t, err)

	v.guard.Set(true)
	_, err = v.Convert(alice, 0)
	assert.IsType(t, &reverts.Reentrancy{}, err)

	v.guard.Set(false)
	_, err = v.Convert(alice, 0)
	require.NoError(t, err)
}

func TestGetLockInfo(t *testing.T) {
	st := newTestState(t)
	v, _ := vaultAt(st, 1000)

	grants, err := v.GetLockInfo(alice)
	require.NoError(t, err)
	assert.Len(t, grants, 0)

	_, err = v.MintGrant(engine, alice, big.NewInt(100))
	require.NoError(t, err)
	_, err = v.MintGrant(engine, alice, big.NewInt(200))
	require.NoError(t, err)

	_, err = v.Convert(alice, 0)
	require.NoError(t, err)

	// converted grants keep their slot so indices stay stable
	grants, err = v.GetLockInfo(alice)
	require.NoError(t, err)
	require.Len(t, grants, 2)
	assert.True(t, grants[0].Converted())
	assert.Equal(t, uint64(1000), grants[0].LockTime)
	assert.Equal(t, big.NewInt(200), grants[1].Amount)

	total, err := v.TotalLocked(alice)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(200), total)

	// grants of different users do not interleave
	grants, err = v.GetLockInfo(bob)
	require.NoError(t, err)
	assert.Len(t, grants, 0)
}

func TestLockPeriodOverride(t *testing.T) {
	st := newTestState(t)

	var b8 [8]byte
	binary.BigEndian.PutUint64(b8[:], 1000)
	st.SetStorage(vaultAddr, rnt.BytesToBytes32([]byte("lock-period")), rnt.BytesToBytes32(b8[:]))

	v, _ := vaultAt(st, 0)
	assert.Equal(t, uint64(1000), v.LockPeriod())

	_, err := v.MintGrant(engine, alice, big.NewInt(100))
	require.NoError(t, err)

	v, _ = vaultAt(st, 1000)
	unlocked, err := v.Convert(alice, 0)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(100), unlocked)
}

func TestVaultEvents(t *testing.T) {
	st := newTestState(t)
	v, env := vaultAt(st, 1000)
	_, err := v.MintGrant(engine, alice, big.NewInt(100))
	require.NoError(t, err)

	events := env.Events()
	require.Len(t, events, 1)
	assert.Equal(t, EventRewardLocked, events[0].Name)
	assert.Equal(t, vaultAddr, events[0].Address)
	assert.Equal(t, alice, events[0].User)
	assert.Equal(t, big.NewInt(100), events[0].Amount)
	assert.Equal(t, uint64(1000), events[0].Time)

	v, env = vaultAt(st, 1000+rnt.DefaultLockPeriod/2)
	_, err = v.Convert(alice, 0)
	require.NoError(t, err)

	// convert mints through the token, so a Transfer event precedes Converted
	events = env.Events()
	require.Len(t, events, 2)
	assert.Equal(t, token.EventTransfer, events[0].Name)
	last := events[1]
	assert.Equal(t, EventConverted, last.Name)
	assert.Equal(t, big.NewInt(50), last.Amount)

	var data convertedData
	require.NoError(t, json.Unmarshal(last.Data, &data))
	assert.Equal(t, uint64(0), data.Index)
	assert.Equal(t, big.NewInt(100), (*big.Int)(data.Requested))
	assert.Equal(t, big.NewInt(50), (*big.Int)(data.Received))
}
