// Copyright (c) 2026 The StakeVault developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package node runs the staking engine on top of a data directory: it owns
// the world state, serializes operations, persists emitted events and feeds
// live subscribers.
package node

import (
	"context"
	"math/big"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common/mclock"
	"github.com/ethereum/go-ethereum/event"
	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"

	"github.com/rewardnet/stakevault/builtin"
	"github.com/rewardnet/stakevault/builtin/reverts"
	"github.com/rewardnet/stakevault/builtin/staking"
	"github.com/rewardnet/stakevault/builtin/vault"
	"github.com/rewardnet/stakevault/co"
	"github.com/rewardnet/stakevault/eventdb"
	"github.com/rewardnet/stakevault/genesis"
	"github.com/rewardnet/stakevault/log"
	"github.com/rewardnet/stakevault/rnt"
	"github.com/rewardnet/stakevault/state"
	"github.com/rewardnet/stakevault/xenv"
)

var logger = log.WithContext("pkg", "node")

// Options for Engine.
type Options struct {
	// Now overrides the engine clock. Defaults to wall clock unix seconds.
	Now func() uint64
}

// Engine is the local staking node. Every operation runs on a fresh state
// view and either commits whole or leaves no trace; events are persisted
// only after the state change is durable.
type Engine struct {
	stater  *state.Stater
	eventDB *eventdb.EventDB
	gene    *genesis.Genesis
	now     func() uint64

	mu    sync.Mutex // serializes operations
	feed  event.Feed
	scope event.SubscriptionScope
	goes  co.Goes

	opSignal co.Signal
	statsMu  sync.Mutex
	stats    opStats
}

// New creates the engine over the given data stores, building the genesis
// state on first use. Reusing a data directory initialized by a different
// genesis is rejected.
func New(gene *genesis.Genesis, stater *state.Stater, eventDB *eventdb.EventDB, options Options) (*Engine, error) {
	now := options.Now
	if now == nil {
		now = func() uint64 { return uint64(time.Now().Unix()) }
	}
	engine := &Engine{
		stater:  stater,
		eventDB: eventDB,
		gene:    gene,
		now:     now,
	}
	if err := engine.initGenesis(); err != nil {
		return nil, err
	}
	return engine, nil
}

func (e *Engine) initGenesis() error {
	st := e.stater.NewState()
	stored, err := builtin.Params.WithState(st).Get(rnt.KeyGenesisID)
	if err != nil {
		return errors.Wrap(err, "read genesis marker")
	}
	if stored.Sign() != 0 {
		if id := rnt.BytesToBytes32(stored.Bytes()); id != e.gene.ID() {
			return errors.Errorf("data directory belongs to another network (genesis %v)", id)
		}
		return nil
	}

	_, events, err := e.gene.Build(e.stater)
	if err != nil {
		return errors.Wrap(err, "build genesis state")
	}
	st = e.stater.NewState()
	if err := builtin.Params.WithState(st).Set(rnt.KeyGenesisID, new(big.Int).SetBytes(e.gene.ID().Bytes())); err != nil {
		return errors.Wrap(err, "write genesis marker")
	}
	if err := st.Commit(); err != nil {
		return errors.Wrap(err, "commit genesis marker")
	}
	if err := e.eventDB.Append(events); err != nil {
		return errors.Wrap(err, "write genesis events")
	}
	logger.Info("genesis state initialized", "id", e.gene.ID(), "network", e.gene.Name())
	return nil
}

// GenesisID returns the ID of the network the engine runs.
func (e *Engine) GenesisID() rnt.Bytes32 {
	return e.gene.ID()
}

// Now returns the engine clock reading.
func (e *Engine) Now() uint64 {
	return e.now()
}

// Run starts the background services and blocks until the context is
// canceled.
func (e *Engine) Run(ctx context.Context) error {
	c := cron.New()
	if _, err := c.AddFunc("@every 1m", e.sampleTotals); err != nil {
		return errors.Wrap(err, "schedule totals sampling")
	}
	c.Start()

	defer func() {
		<-c.Stop().Done()
		e.scope.Close()
	}()
	defer e.goes.Wait()

	e.goes.Go(func() { e.houseKeeping(ctx) })
	return nil
}

// SubscribeEvents subscribes to the events of committed operations.
func (e *Engine) SubscribeEvents(ch chan *xenv.Event) event.Subscription {
	return e.scope.Track(e.feed.Subscribe(ch))
}

// execute runs one mutating operation: a fresh state view, the operation
// proc, then commit, event persistence and fan-out. A failing proc leaves
// the committed state untouched since the uncommitted view is discarded.
func (e *Engine) execute(op string, caller rnt.Address, proc func(env *xenv.Environment) error) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	startTime := mclock.Now()
	st := e.stater.NewState()
	env := xenv.New(st, caller, e.now())

	logger.Debug("executing operation", "op", op, "caller", caller)
	if err := proc(env); err != nil {
		if reverts.IsRevertErr(err) {
			metricOpCount().AddWithLabel(1, map[string]string{"op": op, "status": "reverted"})
			logger.Debug("operation reverted", "op", op, "err", err)
		} else {
			metricOpCount().AddWithLabel(1, map[string]string{"op": op, "status": "failed"})
			logger.Error("operation failed", "op", op, "err", err)
		}
		return err
	}
	if err := st.Commit(); err != nil {
		metricOpCount().AddWithLabel(1, map[string]string{"op": op, "status": "failed"})
		return errors.Wrap(err, "commit state")
	}
	events := env.Events()
	if err := e.eventDB.Append(events); err != nil {
		metricOpCount().AddWithLabel(1, map[string]string{"op": op, "status": "failed"})
		return errors.Wrap(err, "write events")
	}
	for _, ev := range events {
		e.feed.Send(ev)
	}

	elapsed := mclock.Now() - startTime
	metricOpCount().AddWithLabel(1, map[string]string{"op": op, "status": "done"})
	metricOpDuration().ObserveWithLabels(time.Duration(elapsed).Milliseconds(), map[string]string{"op": op})

	e.statsMu.Lock()
	e.stats.Update(op, len(events), elapsed)
	e.statsMu.Unlock()
	e.opSignal.Signal()
	return nil
}

// view runs a read-only proc on a fresh state view.
func (e *Engine) view(proc func(env *xenv.Environment) error) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	return proc(xenv.New(e.stater.NewState(), rnt.Address{}, e.now()))
}

// Approve lets spender pull up to amount out of the owner's token balance.
// Staking via Stake requires a prior approval for the staking contract.
func (e *Engine) Approve(owner, spender rnt.Address, amount *big.Int) error {
	return e.execute("approve", owner, func(env *xenv.Environment) error {
		return builtin.Token.Bind(env).Approve(owner, spender, amount)
	})
}

// Transfer moves amount between token balances.
func (e *Engine) Transfer(from, to rnt.Address, amount *big.Int) error {
	return e.execute("transfer", from, func(env *xenv.Environment) error {
		return builtin.Token.Bind(env).Transfer(from, to, amount)
	})
}

// Stake moves amount from the user's token balance into their stake.
func (e *Engine) Stake(user rnt.Address, amount *big.Int) error {
	return e.execute("stake", user, func(env *xenv.Environment) error {
		stk, err := builtin.Staking.Bind(env)
		if err != nil {
			return err
		}
		return stk.Stake(user, amount)
	})
}

// StakeWithPermit stakes on behalf of the signer of the permit.
func (e *Engine) StakeWithPermit(user rnt.Address, amount *big.Int, deadline uint64, sig []byte) error {
	return e.execute("stake-with-permit", user, func(env *xenv.Environment) error {
		stk, err := builtin.Staking.Bind(env)
		if err != nil {
			return err
		}
		return stk.StakeWithPermit(user, amount, deadline, sig)
	})
}

// Unstake settles rewards and returns amount to the user's token balance.
func (e *Engine) Unstake(user rnt.Address, amount *big.Int) error {
	return e.execute("unstake", user, func(env *xenv.Environment) error {
		stk, err := builtin.Staking.Bind(env)
		if err != nil {
			return err
		}
		return stk.Unstake(user, amount)
	})
}

// ClaimReward pays out the user's settled rewards per the accrual strategy.
func (e *Engine) ClaimReward(user rnt.Address) error {
	return e.execute("claim-reward", user, func(env *xenv.Environment) error {
		stk, err := builtin.Staking.Bind(env)
		if err != nil {
			return err
		}
		return stk.ClaimReward(user)
	})
}

// EmergencyWithdraw returns the user's stake forfeiting unsettled rewards.
func (e *Engine) EmergencyWithdraw(user rnt.Address) error {
	return e.execute("emergency-withdraw", user, func(env *xenv.Environment) error {
		stk, err := builtin.Staking.Bind(env)
		if err != nil {
			return err
		}
		return stk.EmergencyWithdraw(user)
	})
}

// Convert converts the unlocked portion of the user's grant at index and
// returns the amount received.
func (e *Engine) Convert(user rnt.Address, index uint64) (*big.Int, error) {
	var received *big.Int
	err := e.execute("convert", user, func(env *xenv.Environment) error {
		var err error
		received, err = builtin.Vault.Bind(env).Convert(user, index)
		return err
	})
	if err != nil {
		return nil, err
	}
	return received, nil
}

// SetRewardRate updates the per-day reward rate. Owner only.
func (e *Engine) SetRewardRate(caller rnt.Address, rate *big.Int) error {
	return e.execute("set-reward-rate", caller, func(env *xenv.Environment) error {
		stk, err := builtin.Staking.Bind(env)
		if err != nil {
			return err
		}
		return stk.SetRewardRate(caller, rate)
	})
}

// SetRewardPerSec updates the pool emission rate. Owner only.
func (e *Engine) SetRewardPerSec(caller rnt.Address, rate *big.Int) error {
	return e.execute("set-reward-per-sec", caller, func(env *xenv.Environment) error {
		stk, err := builtin.Staking.Bind(env)
		if err != nil {
			return err
		}
		return stk.SetRewardPerSec(caller, rate)
	})
}

// Pause suspends mutating staking operations. Owner only.
func (e *Engine) Pause(caller rnt.Address) error {
	return e.execute("pause", caller, func(env *xenv.Environment) error {
		stk, err := builtin.Staking.Bind(env)
		if err != nil {
			return err
		}
		return stk.Pause(caller)
	})
}

// Unpause lifts the pause. Owner only.
func (e *Engine) Unpause(caller rnt.Address) error {
	return e.execute("unpause", caller, func(env *xenv.Environment) error {
		stk, err := builtin.Staking.Bind(env)
		if err != nil {
			return err
		}
		return stk.Unpause(caller)
	})
}

// TransferOwnership hands contract ownership to newOwner. Owner only.
func (e *Engine) TransferOwnership(caller, newOwner rnt.Address) error {
	return e.execute("transfer-ownership", caller, func(env *xenv.Environment) error {
		return builtin.Authority.WithState(env.State()).TransferOwnership(caller, newOwner)
	})
}

// GetStaker returns the user's staking record along with the reward pending
// right now.
func (e *Engine) GetStaker(user rnt.Address) (info *staking.StakeInfo, pending *big.Int, err error) {
	err = e.view(func(env *xenv.Environment) error {
		stk, err := builtin.Staking.Bind(env)
		if err != nil {
			return err
		}
		if info, err = stk.GetStakeInfo(user); err != nil {
			return err
		}
		pending, err = stk.PendingReward(user)
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	return
}

// GetLocks returns the user's vesting grants and the lock period in force.
func (e *Engine) GetLocks(user rnt.Address) (grants []*vault.LockGrant, lockPeriod uint64, err error) {
	err = e.view(func(env *xenv.Environment) error {
		vlt := builtin.Vault.Bind(env)
		lockPeriod = vlt.LockPeriod()
		grants, err = vlt.GetLockInfo(user)
		return err
	})
	if err != nil {
		return nil, 0, err
	}
	return
}

// TotalLocked returns the user's not yet converted grant total.
func (e *Engine) TotalLocked(user rnt.Address) (total *big.Int, err error) {
	err = e.view(func(env *xenv.Environment) error {
		total, err = builtin.Vault.Bind(env).TotalLocked(user)
		return err
	})
	if err != nil {
		return nil, err
	}
	return
}

// Status is a snapshot of the engine state.
type Status struct {
	ID           rnt.Bytes32
	Network      string
	Strategy     uint64
	Paused       bool
	RewardRate   *big.Int
	RewardPerSec *big.Int
	LockPeriod   uint64
	TotalStaked  *big.Int
	TotalLocked  *big.Int
	TotalSupply  *big.Int
	Cap          *big.Int
	Now          uint64
}

// Status reports the engine-wide totals and settings.
func (e *Engine) Status() (*Status, error) {
	status := Status{
		ID:      e.gene.ID(),
		Network: e.gene.Name(),
	}
	err := e.view(func(env *xenv.Environment) error {
		stk, err := builtin.Staking.Bind(env)
		if err != nil {
			return err
		}
		status.Strategy = stk.Strategy()

		par := builtin.Params.WithState(env.State())
		if status.Paused, err = par.GetBool(rnt.KeyPaused); err != nil {
			return err
		}
		if status.RewardRate, err = par.Get(rnt.KeyRewardRate); err != nil {
			return err
		}
		if status.RewardPerSec, err = par.Get(rnt.KeyRewardPerSec); err != nil {
			return err
		}
		if status.TotalStaked, err = stk.TotalStaked(); err != nil {
			return err
		}

		vlt := builtin.Vault.Bind(env)
		status.LockPeriod = vlt.LockPeriod()
		if status.TotalLocked, err = vlt.GlobalLocked(); err != nil {
			return err
		}

		tok := builtin.Token.Bind(env)
		if status.TotalSupply, err = tok.TotalSupply(); err != nil {
			return err
		}
		if status.Cap, err = tok.Cap(); err != nil {
			return err
		}
		status.Now = env.Now()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &status, nil
}

// BalanceOf returns the user's liquid token balance.
func (e *Engine) BalanceOf(user rnt.Address) (balance *big.Int, err error) {
	err = e.view(func(env *xenv.Environment) error {
		balance, err = builtin.Token.Bind(env).BalanceOf(user)
		return err
	})
	if err != nil {
		return nil, err
	}
	return
}
