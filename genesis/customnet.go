// Copyright (c) 2026 The StakeVault developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"encoding/json"
	"fmt"
	"io"
	"math/big"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/rewardnet/stakevault/builtin"
	"github.com/rewardnet/stakevault/builtin/staking"
	"github.com/rewardnet/stakevault/builtin/vault"
	"github.com/rewardnet/stakevault/rnt"
	"github.com/rewardnet/stakevault/state"
	"github.com/rewardnet/stakevault/xenv"
)

// CustomGenesis is user customized genesis
type CustomGenesis struct {
	Name       string    `yaml:"name" json:"name"`
	LaunchTime uint64    `yaml:"launchTime" json:"launchTime"`
	Owner      Address   `yaml:"owner" json:"owner"`
	Token      Token     `yaml:"token" json:"token"`
	Accounts   []Account `yaml:"accounts" json:"accounts"`
	Params     Params    `yaml:"params" json:"params"`
}

// Token is the token ledger setup
type Token struct {
	Cap *HexOrDecimal256 `yaml:"cap" json:"cap"`
}

// Account is an account given an initial balance in the genesis state
type Account struct {
	Address Address          `yaml:"address" json:"address"`
	Balance *HexOrDecimal256 `yaml:"balance" json:"balance"`
}

// Params means the engine params for params contract
type Params struct {
	RewardRate      *HexOrDecimal256 `yaml:"rewardRate" json:"rewardRate"`
	RewardPerSec    *HexOrDecimal256 `yaml:"rewardPerSec" json:"rewardPerSec"`
	AccrualStrategy *uint64          `yaml:"accrualStrategy" json:"accrualStrategy"`
	LockPeriod      *uint64          `yaml:"lockPeriod" json:"lockPeriod"`
}

// LoadCustomGenesis decodes a yaml custom genesis config.
func LoadCustomGenesis(r io.Reader) (*CustomGenesis, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	gen := new(CustomGenesis)
	if err := dec.Decode(gen); err != nil {
		return nil, errors.Wrap(err, "decode genesis")
	}
	return gen, nil
}

// NewCustomNet create custom network genesis.
func NewCustomNet(gen *CustomGenesis) (*Genesis, error) {
	name := gen.Name
	if name == "" {
		name = "customnet"
	}
	if gen.LaunchTime == 0 {
		return nil, errors.New("launchTime must be set")
	}
	owner := rnt.Address(gen.Owner)
	if owner.IsZero() {
		return nil, errors.New("owner must be set")
	}

	cap := rnt.InitialTokenCap
	if gen.Token.Cap != nil {
		if (*big.Int)(gen.Token.Cap).Sign() < 1 {
			return nil, errors.New("cap must be a non-zero integer")
		}
		cap = (*big.Int)(gen.Token.Cap)
	}
	rewardRate := rnt.InitialRewardRate
	if gen.Params.RewardRate != nil {
		if (*big.Int)(gen.Params.RewardRate).Sign() < 1 {
			return nil, errors.New("rewardRate must be a non-zero integer")
		}
		rewardRate = (*big.Int)(gen.Params.RewardRate)
	}
	rewardPerSec := rnt.InitialRewardPerSec
	if gen.Params.RewardPerSec != nil {
		if (*big.Int)(gen.Params.RewardPerSec).Sign() < 1 {
			return nil, errors.New("rewardPerSec must be a non-zero integer")
		}
		rewardPerSec = (*big.Int)(gen.Params.RewardPerSec)
	}
	var strategy uint64
	if gen.Params.AccrualStrategy != nil {
		strategy = *gen.Params.AccrualStrategy
		if strategy != staking.StrategyRate && strategy != staking.StrategyPool {
			return nil, errors.New("accrualStrategy must be 0 (rate) or 1 (pool)")
		}
	}
	if gen.Params.LockPeriod != nil && *gen.Params.LockPeriod == 0 {
		return nil, errors.New("lockPeriod must be a non-zero integer")
	}
	for _, a := range gen.Accounts {
		addr := rnt.Address(a.Address)
		if addr.IsZero() {
			return nil, errors.New("account address must be set")
		}
		if a.Balance == nil {
			return nil, fmt.Errorf("%s: balance must be set", addr)
		}
		if (*big.Int)(a.Balance).Sign() < 1 {
			return nil, fmt.Errorf("%s: balance must be a non-zero integer", addr)
		}
	}

	builder := new(Builder).
		LaunchTime(gen.LaunchTime).
		State(func(state *state.State) error {
			if err := builtin.Authority.WithState(state).InitOwner(owner); err != nil {
				return err
			}
			params := builtin.Params.WithState(state)
			if err := params.Set(rnt.KeyRewardRate, rewardRate); err != nil {
				return err
			}
			if err := params.Set(rnt.KeyRewardPerSec, rewardPerSec); err != nil {
				return err
			}
			if err := params.Set(rnt.KeyAccrualStrategy, new(big.Int).SetUint64(strategy)); err != nil {
				return err
			}
			if gen.Params.LockPeriod != nil {
				vault.InitLockPeriod(state, builtin.Vault.Address, *gen.Params.LockPeriod)
			}
			return nil
		}).
		Call(func(env *xenv.Environment) error {
			token := builtin.Token.Bind(env)
			if err := token.InitCap(cap); err != nil {
				return err
			}
			if err := token.InitMinter(builtin.Staking.Address); err != nil {
				return err
			}
			if err := token.InitMinter(builtin.Vault.Address); err != nil {
				return err
			}
			for _, a := range gen.Accounts {
				if err := token.InitMint(rnt.Address(a.Address), (*big.Int)(a.Balance)); err != nil {
					return err
				}
			}
			return nil
		})

	config, err := json.Marshal(gen)
	if err != nil {
		return nil, errors.Wrap(err, "marshal genesis")
	}
	return &Genesis{builder, computeID(name, gen.LaunchTime, config), name}, nil
}

// Address accepts 0x-prefixed or bare hex in config files.
type Address rnt.Address

// UnmarshalYAML implements yaml.Unmarshaler.
func (a *Address) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := rnt.ParseAddress(s)
	if err != nil {
		return errors.Wrapf(err, "invalid address %q", s)
	}
	*a = Address(*parsed)
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (a Address) MarshalText() ([]byte, error) {
	return rnt.Address(a).MarshalText()
}

// HexOrDecimal256 is a big.Int accepting hex or decimal form in config
// files.
type HexOrDecimal256 math.HexOrDecimal256

// UnmarshalYAML implements yaml.Unmarshaler.
func (i *HexOrDecimal256) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	return (*math.HexOrDecimal256)(i).UnmarshalText([]byte(s))
}

// MarshalText implements encoding.TextMarshaler.
func (i HexOrDecimal256) MarshalText() ([]byte, error) {
	return math.HexOrDecimal256(i).MarshalText()
}
