// Copyright (c) 2026 The StakeVault developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package builtin binds the native contracts to their well-known addresses.
package builtin

import (
	"github.com/rewardnet/stakevault/builtin/authority"
	"github.com/rewardnet/stakevault/builtin/params"
	"github.com/rewardnet/stakevault/builtin/staking"
	"github.com/rewardnet/stakevault/builtin/token"
	"github.com/rewardnet/stakevault/builtin/vault"
	"github.com/rewardnet/stakevault/rnt"
	"github.com/rewardnet/stakevault/state"
	"github.com/rewardnet/stakevault/xenv"
)

// Builtin contracts binding.
var (
	Authority = &authorityContract{newContract("Authority")}
	Params    = &paramsContract{newContract("Params")}
	Token     = &tokenContract{newContract("Token")}
	Vault     = &vaultContract{newContract("Vault")}
	Staking   = &stakingContract{newContract("Staking")}
)

type contract struct {
	name    string
	Address rnt.Address
}

// newContract derives the contract address from its name, so addresses are
// stable across networks.
func newContract(name string) *contract {
	return &contract{name, rnt.BytesToAddress([]byte(name))}
}

type (
	authorityContract struct{ *contract }
	paramsContract    struct{ *contract }
	tokenContract     struct{ *contract }
	vaultContract     struct{ *contract }
	stakingContract   struct{ *contract }
)

func (a *authorityContract) WithState(state *state.State) *authority.Authority {
	return authority.New(a.Address, state)
}

func (p *paramsContract) WithState(state *state.State) *params.Params {
	return params.New(p.Address, state)
}

// Bind constructs the token facade in the given environment.
func (t *tokenContract) Bind(env *xenv.Environment) *token.Token {
	return token.New(t.Address, env, Authority.WithState(env.State()))
}

// Bind constructs the vault facade in the given environment. Grant minting
// is reserved to the staking contract.
func (v *vaultContract) Bind(env *xenv.Environment) *vault.Vault {
	return vault.New(v.Address, env, Token.Bind(env), Params.WithState(env.State()), Staking.Address)
}

// Bind constructs the staking engine with its collaborators in the given
// environment.
func (s *stakingContract) Bind(env *xenv.Environment) (*staking.Staking, error) {
	return staking.New(
		s.Address,
		env,
		Token.Bind(env),
		Vault.Bind(env),
		Params.WithState(env.State()),
		Authority.WithState(env.State()),
	)
}
