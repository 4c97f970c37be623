// Copyright (c) 2026 The StakeVault developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package node_test

import (
	"context"
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rewardnet/stakevault/builtin"
	"github.com/rewardnet/stakevault/builtin/reverts"
	"github.com/rewardnet/stakevault/eventdb"
	"github.com/rewardnet/stakevault/genesis"
	"github.com/rewardnet/stakevault/kv"
	"github.com/rewardnet/stakevault/node"
	"github.com/rewardnet/stakevault/rnt"
	"github.com/rewardnet/stakevault/state"
	"github.com/rewardnet/stakevault/xenv"
)

func tokens(n int64) *big.Int {
	return new(big.Int).Mul(big.NewInt(n), big.NewInt(1e18))
}

type testEnv struct {
	engine *node.Engine
	stater *state.Stater
	db     *eventdb.EventDB
	gene   *genesis.Genesis
	now    uint64
}

func newTestEnv(t *testing.T) *testEnv {
	db, err := eventdb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gene := genesis.NewDevnet()
	env := &testEnv{
		stater: state.NewStater(kv.NewMem()),
		db:     db,
		gene:   gene,
		now:    gene.LaunchTime(),
	}
	env.engine, err = node.New(gene, env.stater, db, node.Options{
		Now: func() uint64 { return env.now },
	})
	require.NoError(t, err)
	return env
}

func TestEngineGenesisInit(t *testing.T) {
	env := newTestEnv(t)

	// the ten devnet mints were persisted
	seq, err := env.db.NewestSeq()
	require.NoError(t, err)
	assert.Equal(t, uint64(10), seq)

	status, err := env.engine.Status()
	require.NoError(t, err)
	assert.Equal(t, env.gene.ID(), status.ID)
	assert.Equal(t, "devnet", status.Network)
	assert.False(t, status.Paused)
	assert.Equal(t, rnt.InitialRewardRate, status.RewardRate)
	assert.Equal(t, rnt.DefaultLockPeriod, status.LockPeriod)
	assert.Equal(t, rnt.InitialTokenCap, status.Cap)
	assert.Equal(t, tokens(10_000_000), status.TotalSupply)
	assert.Zero(t, status.TotalStaked.Sign())
	assert.Zero(t, status.TotalLocked.Sign())
}

func TestEngineReopen(t *testing.T) {
	env := newTestEnv(t)

	// a second engine over the same stores must not rebuild genesis
	again, err := node.New(env.gene, env.stater, env.db, node.Options{})
	require.NoError(t, err)
	seq, err := env.db.NewestSeq()
	require.NoError(t, err)
	assert.Equal(t, uint64(10), seq)

	status, err := again.Status()
	require.NoError(t, err)
	assert.Equal(t, tokens(10_000_000), status.TotalSupply)

	// a different genesis must be rejected
	owner := genesis.Address(genesis.DevAccounts()[0].Address)
	other, err := genesis.NewCustomNet(&genesis.CustomGenesis{
		Name:       "other",
		LaunchTime: 1,
		Owner:      owner,
	})
	require.NoError(t, err)
	_, err = node.New(other, env.stater, env.db, node.Options{})
	assert.ErrorContains(t, err, "belongs to another network")
}

func TestEngineStakeFlow(t *testing.T) {
	env := newTestEnv(t)
	user := genesis.DevAccounts()[1].Address

	require.NoError(t, env.engine.Approve(user, builtin.Staking.Address, tokens(1000)))
	require.NoError(t, env.engine.Stake(user, tokens(1000)))

	balance, err := env.engine.BalanceOf(user)
	require.NoError(t, err)
	assert.Equal(t, tokens(999_000), balance)

	info, pending, err := env.engine.GetStaker(user)
	require.NoError(t, err)
	assert.Equal(t, tokens(1000), info.Amount)
	assert.Zero(t, pending.Sign())

	// one day at the initial 1:1 rate accrues the full staked amount
	env.now += rnt.SecondsPerDay
	_, pending, err = env.engine.GetStaker(user)
	require.NoError(t, err)
	assert.Equal(t, tokens(1000), pending)

	require.NoError(t, env.engine.ClaimReward(user))

	grants, lockPeriod, err := env.engine.GetLocks(user)
	require.NoError(t, err)
	require.Len(t, grants, 1)
	assert.Equal(t, tokens(1000), grants[0].Amount)
	assert.Equal(t, env.now, grants[0].LockTime)
	assert.Equal(t, rnt.DefaultLockPeriod, lockPeriod)

	total, err := env.engine.TotalLocked(user)
	require.NoError(t, err)
	assert.Equal(t, tokens(1000), total)

	// half the lock period unlocks exactly half of the grant
	env.now += 15 * rnt.SecondsPerDay
	received, err := env.engine.Convert(user, 0)
	require.NoError(t, err)
	assert.Equal(t, tokens(500), received)

	balance, err = env.engine.BalanceOf(user)
	require.NoError(t, err)
	assert.Equal(t, tokens(999_500), balance)

	// conversion is terminal, the remainder is forfeited
	total, err = env.engine.TotalLocked(user)
	require.NoError(t, err)
	assert.Zero(t, total.Sign())

	records, err := env.db.Filter(context.Background(), &eventdb.Filter{
		CriteriaSet: []*eventdb.Criteria{{Name: ptr("Staked")}},
	})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, user, records[0].User)
	assert.Equal(t, tokens(1000), records[0].Amount)
}

func TestEngineRevertLeavesNoTrace(t *testing.T) {
	env := newTestEnv(t)
	user := genesis.DevAccounts()[1].Address

	require.NoError(t, env.engine.Approve(user, builtin.Staking.Address, tokens(10)))
	require.NoError(t, env.engine.Stake(user, tokens(10)))
	seqBefore, err := env.db.NewestSeq()
	require.NoError(t, err)

	err = env.engine.Unstake(user, tokens(20))
	require.Error(t, err)
	assert.True(t, reverts.IsRevertErr(err))

	info, _, err := env.engine.GetStaker(user)
	require.NoError(t, err)
	assert.Equal(t, tokens(10), info.Amount)

	seqAfter, err := env.db.NewestSeq()
	require.NoError(t, err)
	assert.Equal(t, seqBefore, seqAfter)
}

func TestEngineOwnerOps(t *testing.T) {
	env := newTestEnv(t)
	owner := genesis.DevAccounts()[0].Address
	stranger := genesis.DevAccounts()[2].Address

	err := env.engine.Pause(stranger)
	require.Error(t, err)
	assert.True(t, reverts.IsRevertErr(err))

	require.NoError(t, env.engine.Approve(stranger, builtin.Staking.Address, tokens(2)))
	require.NoError(t, env.engine.Pause(owner))
	status, err := env.engine.Status()
	require.NoError(t, err)
	assert.True(t, status.Paused)

	err = env.engine.Stake(stranger, tokens(1))
	require.Error(t, err)

	require.NoError(t, env.engine.Unpause(owner))
	require.NoError(t, env.engine.Stake(stranger, tokens(1)))

	require.NoError(t, env.engine.SetRewardRate(owner, tokens(2)))
	status, err = env.engine.Status()
	require.NoError(t, err)
	assert.Equal(t, tokens(2), status.RewardRate)
}

func TestEngineSubscribeEvents(t *testing.T) {
	env := newTestEnv(t)
	user := genesis.DevAccounts()[1].Address

	require.NoError(t, env.engine.Approve(user, builtin.Staking.Address, tokens(5)))

	ch := make(chan *xenv.Event, 8)
	sub := env.engine.SubscribeEvents(ch)
	defer sub.Unsubscribe()

	require.NoError(t, env.engine.Stake(user, tokens(5)))

	// staking moves tokens first, then records the stake
	first := <-ch
	second := <-ch
	assert.Equal(t, "Transfer", first.Name)
	assert.Equal(t, "Staked", second.Name)
	assert.Equal(t, user, second.User)
	assert.Equal(t, tokens(5), second.Amount)
}

func TestEngineRunStops(t *testing.T) {
	env := newTestEnv(t)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- env.engine.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("engine did not stop")
	}
}

func ptr[T any](v T) *T {
	return &v
}
