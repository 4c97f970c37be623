// Copyright (c) 2026 The StakeVault developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package supply

import (
	"net/http"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/gorilla/mux"

	"github.com/rewardnet/stakevault/api/restutil"
	"github.com/rewardnet/stakevault/node"
)

// Supply breaks the token supply down. Staked and locked tokens are held in
// custody by the contracts, locked counts grants not yet converted.
type Supply struct {
	Total  math.HexOrDecimal256 `json:"total,string"`
	Cap    math.HexOrDecimal256 `json:"cap,string"`
	Staked math.HexOrDecimal256 `json:"staked,string"`
	Locked math.HexOrDecimal256 `json:"locked,string"`
}

type Endpoint struct {
	engine *node.Engine
}

func New(engine *node.Engine) *Endpoint {
	return &Endpoint{engine}
}

func (e *Endpoint) handleGetSupply(w http.ResponseWriter, req *http.Request) error {
	status, err := e.engine.Status()
	if err != nil {
		return err
	}
	return restutil.WriteJSON(w, &Supply{
		Total:  math.HexOrDecimal256(*status.TotalSupply),
		Cap:    math.HexOrDecimal256(*status.Cap),
		Staked: math.HexOrDecimal256(*status.TotalStaked),
		Locked: math.HexOrDecimal256(*status.TotalLocked),
	})
}

func (e *Endpoint) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").
		Methods(http.MethodGet).
		Name("GET /supply").
		HandlerFunc(restutil.WrapHandlerFunc(e.handleGetSupply))
}
