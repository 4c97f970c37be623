// Copyright (c) 2026 The StakeVault developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package solidity

import (
	"errors"
	"math/big"

	"github.com/rewardnet/stakevault/rnt"
)

var (
	errUint256Range     = errors.New("value out of uint256 range")
	errUint256Underflow = errors.New("uint256 underflow")

	maxUint256 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))
)

// Uint256 is a wrapper for storage and retrieval of an uint256,
// similar to storing an uint256 in a smart contract.
// A zero value clears the underlying slot.
type Uint256 struct {
	context *Context
	pos     rnt.Bytes32
}

func NewUint256(context *Context, pos rnt.Bytes32) *Uint256 {
	return &Uint256{context: context, pos: pos}
}

func (u *Uint256) Get() (*big.Int, error) {
	storage, err := u.context.state.GetStorage(u.context.address, u.pos)
	if err != nil {
		return nil, err
	}
	return new(big.Int).SetBytes(storage.Bytes()), nil
}

func (u *Uint256) Set(value *big.Int) error {
	if value.Sign() < 0 || value.Cmp(maxUint256) > 0 {
		return errUint256Range
	}
	u.context.state.SetStorage(u.context.address, u.pos, rnt.BytesToBytes32(value.Bytes()))
	return nil
}

func (u *Uint256) Add(value *big.Int) error {
	storage, err := u.Get()
	if err != nil {
		return err
	}
	return u.Set(storage.Add(storage, value))
}

// Sub subtracts value from the stored one. Underflow is an error
// and leaves the slot untouched.
func (u *Uint256) Sub(value *big.Int) error {
	storage, err := u.Get()
	if err != nil {
		return err
	}
	if storage.Cmp(value) < 0 {
		return errUint256Underflow
	}
	return u.Set(storage.Sub(storage, value))
}
