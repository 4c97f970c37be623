// Copyright (c) 2026 The StakeVault developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"github.com/pkg/errors"

	"github.com/rewardnet/stakevault/rnt"
	"github.com/rewardnet/stakevault/state"
	"github.com/rewardnet/stakevault/xenv"
)

// Builder helper to build genesis state.
type Builder struct {
	launchTime uint64

	stateProcs []func(state *state.State) error
	callProcs  []func(env *xenv.Environment) error
}

// LaunchTime set launch time.
func (b *Builder) LaunchTime(t uint64) *Builder {
	b.launchTime = t
	return b
}

// State add a state process, run against the raw state before any call.
func (b *Builder) State(proc func(state *state.State) error) *Builder {
	b.stateProcs = append(b.stateProcs, proc)
	return b
}

// Call add a contract call, run in the genesis environment. Events emitted
// by calls are collected and returned by Build.
func (b *Builder) Call(proc func(env *xenv.Environment) error) *Builder {
	b.callProcs = append(b.callProcs, proc)
	return b
}

// Build build genesis state according to presets.
func (b *Builder) Build(stater *state.Stater) (*state.State, []*xenv.Event, error) {
	state := stater.NewState()

	for _, proc := range b.stateProcs {
		if err := proc(state); err != nil {
			return nil, nil, errors.Wrap(err, "state process")
		}
	}

	env := xenv.New(state, rnt.Address{}, b.launchTime)
	for _, proc := range b.callProcs {
		if err := proc(env); err != nil {
			return nil, nil, errors.Wrap(err, "call process")
		}
	}

	if err := state.Commit(); err != nil {
		return nil, nil, errors.Wrap(err, "commit state")
	}
	return state, env.Events(), nil
}
