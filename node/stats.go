// Copyright (c) 2026 The StakeVault developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package node

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/mclock"
)

type opStats struct {
	executed, events int
	elapsed          mclock.AbsTime
	lastOp           string
}

func (s *opStats) Update(op string, events int, elapsed mclock.AbsTime) {
	s.executed++
	s.events += events
	s.elapsed += elapsed
	s.lastOp = op
}

func (s *opStats) LogContext() []interface{} {
	return []interface{}{
		"events", s.events,
		"et", common.PrettyDuration(s.elapsed),
		"last", s.lastOp,
	}
}
