// Copyright (c) 2026 The StakeVault developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package genesis builds the initial world state of a network: the builtin
// contracts set up with owner, supply cap, initial balances and engine
// params.
package genesis

import (
	"encoding/binary"

	"github.com/rewardnet/stakevault/rnt"
	"github.com/rewardnet/stakevault/state"
	"github.com/rewardnet/stakevault/xenv"
)

// Genesis to build genesis state.
type Genesis struct {
	builder *Builder
	id      rnt.Bytes32
	name    string
}

// Build builds genesis state on the given stater and commits it. The
// returned events are the records emitted while initializing, e.g. the
// initial-balance mints.
func (g *Genesis) Build(stater *state.Stater) (*state.State, []*xenv.Event, error) {
	return g.builder.Build(stater)
}

// ID returns genesis ID, which identifies the network.
func (g *Genesis) ID() rnt.Bytes32 {
	return g.id
}

// Name returns network name.
func (g *Genesis) Name() string {
	return g.name
}

// LaunchTime returns the time the initial state is stamped with.
func (g *Genesis) LaunchTime() uint64 {
	return g.builder.launchTime
}

// computeID derives a network ID from everything that shapes the initial
// state, so differently configured networks never share an instance dir.
func computeID(name string, launchTime uint64, config ...[]byte) rnt.Bytes32 {
	var ts [8]byte
	binary.BigEndian.PutUint64(ts[:], launchTime)
	data := append([][]byte{[]byte(name), ts[:]}, config...)
	return rnt.Blake2b(data...)
}
