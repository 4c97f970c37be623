// Copyright (c) 2026 The StakeVault developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package stakers

import (
	"math/big"
	"net/http"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/rewardnet/stakevault/api/restutil"
	"github.com/rewardnet/stakevault/builtin"
	"github.com/rewardnet/stakevault/builtin/reverts"
	"github.com/rewardnet/stakevault/node"
	"github.com/rewardnet/stakevault/rnt"
)

type Stakers struct {
	engine  *node.Engine
	devMode bool
}

// New creates the stakers endpoint. Mutating routes are mounted only in dev
// mode, where the caller is taken from the request path unauthenticated.
func New(engine *node.Engine, devMode bool) *Stakers {
	return &Stakers{
		engine,
		devMode,
	}
}

func (s *Stakers) handleGetStaker(w http.ResponseWriter, req *http.Request) error {
	addr, err := rnt.ParseAddress(mux.Vars(req)["address"])
	if err != nil {
		return restutil.BadRequest(errors.WithMessage(err, "address"))
	}
	info, pending, err := s.engine.GetStaker(*addr)
	if err != nil {
		return err
	}
	return restutil.WriteJSON(w, convertStaker(info, pending))
}

func (s *Stakers) parseAmountRequest(req *http.Request) (rnt.Address, *big.Int, error) {
	addr, err := rnt.ParseAddress(mux.Vars(req)["address"])
	if err != nil {
		return rnt.Address{}, nil, restutil.BadRequest(errors.WithMessage(err, "address"))
	}
	var body AmountRequest
	if err := restutil.ParseJSON(req.Body, &body); err != nil {
		return rnt.Address{}, nil, restutil.BadRequest(errors.WithMessage(err, "body"))
	}
	if body.Amount == nil {
		return rnt.Address{}, nil, restutil.BadRequest(errors.New("amount required"))
	}
	return *addr, (*big.Int)(body.Amount), nil
}

// writeStaker responds with the staking record as it stands after the
// operation.
func (s *Stakers) writeStaker(w http.ResponseWriter, addr rnt.Address) error {
	info, pending, err := s.engine.GetStaker(addr)
	if err != nil {
		return err
	}
	return restutil.WriteJSON(w, convertStaker(info, pending))
}

func (s *Stakers) handleApprove(w http.ResponseWriter, req *http.Request) error {
	addr, amount, err := s.parseAmountRequest(req)
	if err != nil {
		return err
	}
	if err := s.engine.Approve(addr, builtin.Staking.Address, amount); err != nil {
		return convertEngineError(err)
	}
	return restutil.WriteJSON(w, restutil.M{"approved": (*math.HexOrDecimal256)(amount)})
}

func (s *Stakers) handleStake(w http.ResponseWriter, req *http.Request) error {
	addr, amount, err := s.parseAmountRequest(req)
	if err != nil {
		return err
	}
	if err := s.engine.Stake(addr, amount); err != nil {
		return convertEngineError(err)
	}
	return s.writeStaker(w, addr)
}

func (s *Stakers) handleUnstake(w http.ResponseWriter, req *http.Request) error {
	addr, amount, err := s.parseAmountRequest(req)
	if err != nil {
		return err
	}
	if err := s.engine.Unstake(addr, amount); err != nil {
		return convertEngineError(err)
	}
	return s.writeStaker(w, addr)
}

func (s *Stakers) handleClaim(w http.ResponseWriter, req *http.Request) error {
	addr, err := rnt.ParseAddress(mux.Vars(req)["address"])
	if err != nil {
		return restutil.BadRequest(errors.WithMessage(err, "address"))
	}
	if err := s.engine.ClaimReward(*addr); err != nil {
		return convertEngineError(err)
	}
	return s.writeStaker(w, *addr)
}

func (s *Stakers) handleEmergency(w http.ResponseWriter, req *http.Request) error {
	addr, err := rnt.ParseAddress(mux.Vars(req)["address"])
	if err != nil {
		return restutil.BadRequest(errors.WithMessage(err, "address"))
	}
	if err := s.engine.EmergencyWithdraw(*addr); err != nil {
		return convertEngineError(err)
	}
	return s.writeStaker(w, *addr)
}

// convertEngineError maps reverted operations to bad requests, anything else
// bubbles up as internal error.
func convertEngineError(err error) error {
	if reverts.IsRevertErr(err) {
		return restutil.BadRequest(err)
	}
	return err
}

func (s *Stakers) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/{address}").
		Methods(http.MethodGet).
		Name("GET /stakers/{address}").
		HandlerFunc(restutil.WrapHandlerFunc(s.handleGetStaker))

	if !s.devMode {
		return
	}
	sub.Path("/{address}/approve").
		Methods(http.MethodPost).
		Name("POST /stakers/{address}/approve").
		HandlerFunc(restutil.WrapHandlerFunc(s.handleApprove))
	sub.Path("/{address}/stake").
		Methods(http.MethodPost).
		Name("POST /stakers/{address}/stake").
		HandlerFunc(restutil.WrapHandlerFunc(s.handleStake))
	sub.Path("/{address}/unstake").
		Methods(http.MethodPost).
		Name("POST /stakers/{address}/unstake").
		HandlerFunc(restutil.WrapHandlerFunc(s.handleUnstake))
	sub.Path("/{address}/claim").
		Methods(http.MethodPost).
		Name("POST /stakers/{address}/claim").
		HandlerFunc(restutil.WrapHandlerFunc(s.handleClaim))
	sub.Path("/{address}/emergency").
		Methods(http.MethodPost).
		Name("POST /stakers/{address}/emergency").
		HandlerFunc(restutil.WrapHandlerFunc(s.handleEmergency))
}
