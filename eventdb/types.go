// Copyright (c) 2026 The StakeVault developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package eventdb

import (
	"fmt"
	"math/big"

	"github.com/rewardnet/stakevault/rnt"
	"github.com/rewardnet/stakevault/xenv"
)

// Record is an event persisted in the db. Seq is assigned by the db on
// insert and totally orders records across all contracts.
type Record struct {
	Seq     uint64
	Name    string
	Address rnt.Address
	User    rnt.Address
	Amount  *big.Int
	Data    []byte
	Time    uint64
}

// newRecord converts an emitted event to its stored form.
func newRecord(ev *xenv.Event) *Record {
	amount := ev.Amount
	if amount == nil {
		amount = new(big.Int)
	}
	return &Record{
		Name:    ev.Name,
		Address: ev.Address,
		User:    ev.User,
		Amount:  amount,
		Data:    ev.Data,
		Time:    ev.Time,
	}
}

func (r *Record) String() string {
	return fmt.Sprintf(`
		Record(
			seq:     %v,
			name:    %v,
			address: %v,
			user:    %v,
			amount:  %v,
			time:    %v,
			data:    0x%x)`,
		r.Seq,
		r.Name,
		r.Address,
		r.User,
		r.Amount,
		r.Time,
		r.Data)
}

type Order string

const (
	ASC  Order = "asc"
	DESC Order = "desc"
)

// Range bounds matched records by emission time, inclusive on both ends.
type Range struct {
	From uint64
	To   uint64
}

type Options struct {
	Offset uint64
	Limit  uint64
}

// Criteria matches records on any combination of name, emitting contract
// and user account. A nil field matches everything.
type Criteria struct {
	Name    *string
	Address *rnt.Address
	User    *rnt.Address
}

// Filter selects records. Criteria in the set are OR'ed together.
type Filter struct {
	CriteriaSet []*Criteria
	Range       *Range
	Options     *Options
	Order       Order //default asc
}
