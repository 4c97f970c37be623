// Copyright (c) 2026 The StakeVault developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package status

import (
	"net/http"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/gorilla/mux"

	"github.com/rewardnet/stakevault/api/restutil"
	"github.com/rewardnet/stakevault/builtin/staking"
	"github.com/rewardnet/stakevault/node"
	"github.com/rewardnet/stakevault/rnt"
)

// Status for marshal engine status
type Status struct {
	GenesisID    rnt.Bytes32          `json:"genesisId"`
	Network      string               `json:"network"`
	Strategy     string               `json:"strategy"`
	Paused       bool                 `json:"paused"`
	RewardRate   math.HexOrDecimal256 `json:"rewardRate,string"`
	RewardPerSec math.HexOrDecimal256 `json:"rewardPerSec,string"`
	LockPeriod   uint64               `json:"lockPeriod"`
	TotalStaked  math.HexOrDecimal256 `json:"totalStaked,string"`
	TotalLocked  math.HexOrDecimal256 `json:"totalLocked,string"`
	TotalSupply  math.HexOrDecimal256 `json:"totalSupply,string"`
	Cap          math.HexOrDecimal256 `json:"cap,string"`
	Now          uint64               `json:"now"`
}

func strategyName(strategy uint64) string {
	if strategy == staking.StrategyPool {
		return "pool"
	}
	return "rate"
}

func convertStatus(s *node.Status) *Status {
	return &Status{
		GenesisID:    s.ID,
		Network:      s.Network,
		Strategy:     strategyName(s.Strategy),
		Paused:       s.Paused,
		RewardRate:   math.HexOrDecimal256(*s.RewardRate),
		RewardPerSec: math.HexOrDecimal256(*s.RewardPerSec),
		LockPeriod:   s.LockPeriod,
		TotalStaked:  math.HexOrDecimal256(*s.TotalStaked),
		TotalLocked:  math.HexOrDecimal256(*s.TotalLocked),
		TotalSupply:  math.HexOrDecimal256(*s.TotalSupply),
		Cap:          math.HexOrDecimal256(*s.Cap),
		Now:          s.Now,
	}
}

type Endpoint struct {
	engine *node.Engine
}

func New(engine *node.Engine) *Endpoint {
	return &Endpoint{engine}
}

func (e *Endpoint) handleGetStatus(w http.ResponseWriter, req *http.Request) error {
	status, err := e.engine.Status()
	if err != nil {
		return err
	}
	return restutil.WriteJSON(w, convertStatus(status))
}

func (e *Endpoint) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/status").
		Methods(http.MethodGet).
		Name("GET /node/status").
		HandlerFunc(restutil.WrapHandlerFunc(e.handleGetStatus))
}
