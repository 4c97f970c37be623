// Copyright (c) 2026 The StakeVault developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package adminops exposes the owner operations in dev mode. The caller is
// taken from the request body unauthenticated, ownership is still checked by
// the engine.
package adminops

import (
	"math/big"
	"net/http"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/rewardnet/stakevault/api/restutil"
	"github.com/rewardnet/stakevault/builtin/reverts"
	"github.com/rewardnet/stakevault/node"
	"github.com/rewardnet/stakevault/rnt"
)

type AdminOps struct {
	engine *node.Engine
}

func New(engine *node.Engine) *AdminOps {
	return &AdminOps{engine}
}

// CallerRequest identifies the account an owner operation runs as.
type CallerRequest struct {
	Caller *rnt.Address `json:"caller"`
}

// RateRequest carries a reward rate update.
type RateRequest struct {
	Caller *rnt.Address          `json:"caller"`
	Rate   *math.HexOrDecimal256 `json:"rate"`
}

func parseCaller(req *http.Request) (rnt.Address, error) {
	var body CallerRequest
	if err := restutil.ParseJSON(req.Body, &body); err != nil {
		return rnt.Address{}, restutil.BadRequest(errors.WithMessage(err, "body"))
	}
	if body.Caller == nil {
		return rnt.Address{}, restutil.BadRequest(errors.New("caller required"))
	}
	return *body.Caller, nil
}

func parseRate(req *http.Request) (rnt.Address, *big.Int, error) {
	var body RateRequest
	if err := restutil.ParseJSON(req.Body, &body); err != nil {
		return rnt.Address{}, nil, restutil.BadRequest(errors.WithMessage(err, "body"))
	}
	if body.Caller == nil {
		return rnt.Address{}, nil, restutil.BadRequest(errors.New("caller required"))
	}
	if body.Rate == nil {
		return rnt.Address{}, nil, restutil.BadRequest(errors.New("rate required"))
	}
	return *body.Caller, (*big.Int)(body.Rate), nil
}

func convertEngineError(err error) error {
	if reverts.IsRevertErr(err) {
		return restutil.BadRequest(err)
	}
	return err
}

func (a *AdminOps) handleSetRewardRate(w http.ResponseWriter, req *http.Request) error {
	caller, rate, err := parseRate(req)
	if err != nil {
		return err
	}
	if err := a.engine.SetRewardRate(caller, rate); err != nil {
		return convertEngineError(err)
	}
	return restutil.WriteJSON(w, restutil.M{"rewardRate": (*math.HexOrDecimal256)(rate)})
}

func (a *AdminOps) handleSetRewardPerSec(w http.ResponseWriter, req *http.Request) error {
	caller, rate, err := parseRate(req)
	if err != nil {
		return err
	}
	if err := a.engine.SetRewardPerSec(caller, rate); err != nil {
		return convertEngineError(err)
	}
	return restutil.WriteJSON(w, restutil.M{"rewardPerSec": (*math.HexOrDecimal256)(rate)})
}

func (a *AdminOps) handlePause(w http.ResponseWriter, req *http.Request) error {
	caller, err := parseCaller(req)
	if err != nil {
		return err
	}
	if err := a.engine.Pause(caller); err != nil {
		return convertEngineError(err)
	}
	return restutil.WriteJSON(w, restutil.M{"paused": true})
}

func (a *AdminOps) handleUnpause(w http.ResponseWriter, req *http.Request) error {
	caller, err := parseCaller(req)
	if err != nil {
		return err
	}
	if err := a.engine.Unpause(caller); err != nil {
		return convertEngineError(err)
	}
	return restutil.WriteJSON(w, restutil.M{"paused": false})
}

func (a *AdminOps) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/reward-rate").
		Methods(http.MethodPost).
		Name("POST /admin-ops/reward-rate").
		HandlerFunc(restutil.WrapHandlerFunc(a.handleSetRewardRate))
	sub.Path("/reward-per-sec").
		Methods(http.MethodPost).
		Name("POST /admin-ops/reward-per-sec").
		HandlerFunc(restutil.WrapHandlerFunc(a.handleSetRewardPerSec))
	sub.Path("/pause").
		Methods(http.MethodPost).
		Name("POST /admin-ops/pause").
		HandlerFunc(restutil.WrapHandlerFunc(a.handlePause))
	sub.Path("/unpause").
		Methods(http.MethodPost).
		Name("POST /admin-ops/unpause").
		HandlerFunc(restutil.WrapHandlerFunc(a.handleUnpause))
}
