// Copyright (c) 2026 The StakeVault developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package locks

import (
	"net/http"
	"strconv"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/rewardnet/stakevault/api/restutil"
	"github.com/rewardnet/stakevault/builtin/reverts"
	"github.com/rewardnet/stakevault/node"
	"github.com/rewardnet/stakevault/rnt"
)

type Locks struct {
	engine  *node.Engine
	devMode bool
}

func New(engine *node.Engine, devMode bool) *Locks {
	return &Locks{
		engine,
		devMode,
	}
}

func (l *Locks) handleGetLocks(w http.ResponseWriter, req *http.Request) error {
	addr, err := rnt.ParseAddress(mux.Vars(req)["address"])
	if err != nil {
		return restutil.BadRequest(errors.WithMessage(err, "address"))
	}
	grants, lockPeriod, err := l.engine.GetLocks(*addr)
	if err != nil {
		return err
	}
	return restutil.WriteJSON(w, convertLocks(grants, l.engine.Now(), lockPeriod))
}

func (l *Locks) handleGetTotal(w http.ResponseWriter, req *http.Request) error {
	addr, err := rnt.ParseAddress(mux.Vars(req)["address"])
	if err != nil {
		return restutil.BadRequest(errors.WithMessage(err, "address"))
	}
	total, err := l.engine.TotalLocked(*addr)
	if err != nil {
		return err
	}
	return restutil.WriteJSON(w, restutil.M{"total": (*math.HexOrDecimal256)(total)})
}

func (l *Locks) handleConvert(w http.ResponseWriter, req *http.Request) error {
	addr, err := rnt.ParseAddress(mux.Vars(req)["address"])
	if err != nil {
		return restutil.BadRequest(errors.WithMessage(err, "address"))
	}
	index, err := strconv.ParseUint(mux.Vars(req)["index"], 10, 64)
	if err != nil {
		return restutil.BadRequest(errors.WithMessage(err, "index"))
	}
	received, err := l.engine.Convert(*addr, index)
	if err != nil {
		if reverts.IsRevertErr(err) {
			return restutil.BadRequest(err)
		}
		return err
	}
	return restutil.WriteJSON(w, restutil.M{"received": (*math.HexOrDecimal256)(received)})
}

func (l *Locks) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/{address}").
		Methods(http.MethodGet).
		Name("GET /locks/{address}").
		HandlerFunc(restutil.WrapHandlerFunc(l.handleGetLocks))
	sub.Path("/{address}/total").
		Methods(http.MethodGet).
		Name("GET /locks/{address}/total").
		HandlerFunc(restutil.WrapHandlerFunc(l.handleGetTotal))

	if !l.devMode {
		return
	}
	sub.Path("/{address}/{index}/convert").
		Methods(http.MethodPost).
		Name("POST /locks/{address}/{index}/convert").
		HandlerFunc(restutil.WrapHandlerFunc(l.handleConvert))
}
