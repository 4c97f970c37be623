// Copyright (c) 2026 The StakeVault developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"crypto/ecdsa"
	"math/big"
	"sync/atomic"

	"github.com/ethereum/go-ethereum/crypto"

	"github.com/rewardnet/stakevault/builtin"
	"github.com/rewardnet/stakevault/builtin/vault"
	"github.com/rewardnet/stakevault/cry"
	"github.com/rewardnet/stakevault/rnt"
	"github.com/rewardnet/stakevault/state"
	"github.com/rewardnet/stakevault/xenv"
)

// DevAccount account for development.
type DevAccount struct {
	Address    rnt.Address
	PrivateKey *ecdsa.PrivateKey
}

var devAccounts atomic.Value

// DevAccounts returns pre-alloced accounts for dev mode.
func DevAccounts() []DevAccount {
	if accs := devAccounts.Load(); accs != nil {
		return accs.([]DevAccount)
	}

	var accs []DevAccount
	privKeys := []string{
		"006714b022aa937dfbe258df467e0aa48e7fe19ea975d052c5d5b9fbd8d50dcf",
		"5abd63f780d049e69c433fc6891f2bdf39736af37d97a3c9d57dbf62bd41643e",
		"7aeeaa845c70920ce48d316624a764934bd48a5a7c9991a45cf67dc49a985078",
		"b32da4c053bdf9eca7f8f8616eddbf374c64a89cab4e27c8cf4965fc13587ea0",
		"b6f79e66c4b32283a29057b93cbcb8fe41a6ec1145c98eb6ffc60505bb403611",
		"c129e1f31c4121c511ae04f84c498c3caf869742eea47ece1be227108cc0cde1",
		"6d275fe63b835f9edc4db8896d4f1377d8a6b5b03a0bbf9120b4929504720981",
		"f859396c4da9d55452916aa5968faa3b69193db7856d01e9c551b758e7d9da25",
		"d76c6d263394bab28ecf104ba59f07c08dd36a319acca87c2c31d2ba8935fac1",
		"0c1742473444b71d83623dd70931b103c041d6e5a790c5c12e0d1d161ddac6ac",
	}
	for _, str := range privKeys {
		pk, err := crypto.HexToECDSA(str)
		if err != nil {
			panic(err)
		}
		accs = append(accs, DevAccount{cry.DeriveAddress(&pk.PublicKey), pk})
	}
	devAccounts.Store(accs)
	return accs
}

// NewDevnet create genesis for dev mode. Every dev account starts with one
// million RNT, the first one owns the contracts.
func NewDevnet() *Genesis {
	launchTime := uint64(1735689600) // '2025-01-01T00:00:00Z'

	owner := DevAccounts()[0].Address
	devBalance := new(big.Int).Mul(big.NewInt(1_000_000), big.NewInt(1e18))

	builder := new(Builder).
		LaunchTime(launchTime).
		State(func(state *state.State) error {
			if err := builtin.Authority.WithState(state).InitOwner(owner); err != nil {
				return err
			}
			params := builtin.Params.WithState(state)
			if err := params.Set(rnt.KeyRewardRate, rnt.InitialRewardRate); err != nil {
				return err
			}
			if err := params.Set(rnt.KeyRewardPerSec, rnt.InitialRewardPerSec); err != nil {
				return err
			}
			vault.InitLockPeriod(state, builtin.Vault.Address, rnt.DefaultLockPeriod)
			return nil
		}).
		Call(func(env *xenv.Environment) error {
			token := builtin.Token.Bind(env)
			if err := token.InitCap(rnt.InitialTokenCap); err != nil {
				return err
			}
			if err := token.InitMinter(builtin.Staking.Address); err != nil {
				return err
			}
			if err := token.InitMinter(builtin.Vault.Address); err != nil {
				return err
			}
			for _, a := range DevAccounts() {
				if err := token.InitMint(a.Address, devBalance); err != nil {
					return err
				}
			}
			return nil
		})

	return &Genesis{builder, computeID("devnet", launchTime, owner.Bytes()), "devnet"}
}
