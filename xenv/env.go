// Copyright (c) 2026 The StakeVault developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package xenv provides the execution environment of built-in contract
// operations: the state view, the calling account, the engine clock and the
// event records emitted along the way.
package xenv

import (
	"math/big"

	"github.com/rewardnet/stakevault/rnt"
	"github.com/rewardnet/stakevault/state"
)

// Event is a record emitted by a built-in contract during an operation.
// Records are collected per operation and persisted only if the operation
// succeeds.
type Event struct {
	Name    string      // event name, e.g. "Staked"
	Address rnt.Address // emitting contract
	User    rnt.Address // primary account, zero when not applicable
	Amount  *big.Int    // primary amount, nil when not applicable
	Data    []byte      // JSON-encoded secondary fields, nil when none
	Time    uint64      // engine time the event was emitted at
}

// Environment is the context a built-in operation executes in.
type Environment struct {
	state  *state.State
	caller rnt.Address
	now    uint64
	events []*Event
}

// New creates a new environment.
func New(state *state.State, caller rnt.Address, now uint64) *Environment {
	return &Environment{
		state:  state,
		caller: caller,
		now:    now,
	}
}

func (env *Environment) State() *state.State { return env.state }
func (env *Environment) Caller() rnt.Address { return env.caller }

// Now returns the engine time of the operation, in unix seconds.
func (env *Environment) Now() uint64 { return env.now }

// Log records an event. The environment stamps the engine time.
func (env *Environment) Log(ev *Event) {
	ev.Time = env.now
	env.events = append(env.events, ev)
}

// Events returns the records emitted so far, in emission order.
func (env *Environment) Events() []*Event {
	return env.events
}
