// Copyright (c) 2026 The StakeVault developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package params implements the `Params` contract: the key/value registry of
// engine-wide settings such as the reward rate and the pause flag.
package params

import (
	"math/big"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/rewardnet/stakevault/rnt"
	"github.com/rewardnet/stakevault/state"
)

// Params implements native methods of the `Params` contract.
type Params struct {
	addr  rnt.Address
	state *state.State
}

// New create a new instance.
func New(addr rnt.Address, state *state.State) *Params {
	return &Params{addr, state}
}

// Get native way to get param. Missing keys yield zero.
func (p *Params) Get(key rnt.Bytes32) (value *big.Int, err error) {
	err = p.state.DecodeStorage(p.addr, key, func(raw []byte) error {
		if len(raw) == 0 {
			value = &big.Int{}
			return nil
		}
		return rlp.DecodeBytes(raw, &value)
	})
	return
}

// Set native way to set param. Zero value deletes the entry.
func (p *Params) Set(key rnt.Bytes32, value *big.Int) error {
	return p.state.EncodeStorage(p.addr, key, func() ([]byte, error) {
		if value.Sign() == 0 {
			return nil, nil
		}
		return rlp.EncodeToBytes(value)
	})
}

// GetUint64 reads a param as uint64.
func (p *Params) GetUint64(key rnt.Bytes32) (uint64, error) {
	v, err := p.Get(key)
	if err != nil {
		return 0, err
	}
	return v.Uint64(), nil
}

// GetBool reads a param as a flag. Any non-zero value is true.
func (p *Params) GetBool(key rnt.Bytes32) (bool, error) {
	v, err := p.Get(key)
	if err != nil {
		return false, err
	}
	return v.Sign() != 0, nil
}

// SetBool writes a flag param.
func (p *Params) SetBool(key rnt.Bytes32, value bool) error {
	v := new(big.Int)
	if value {
		v.SetInt64(1)
	}
	return p.Set(key, v)
}
