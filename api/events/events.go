// Copyright (c) 2026 The StakeVault developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package events

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/rewardnet/stakevault/api/restutil"
	"github.com/rewardnet/stakevault/eventdb"
	"github.com/rewardnet/stakevault/rnt"
)

type Events struct {
	db    *eventdb.EventDB
	limit uint64
}

func New(db *eventdb.EventDB, logsLimit uint64) *Events {
	return &Events{
		db,
		logsLimit,
	}
}

// parseFilter builds the db filter from query params. An absent param leaves
// its criterion open.
func (e *Events) parseFilter(req *http.Request) (*eventdb.Filter, error) {
	query := req.URL.Query()
	filter := &eventdb.Filter{}

	criteria := &eventdb.Criteria{}
	if name := query.Get("name"); name != "" {
		criteria.Name = &name
	}
	if user := query.Get("user"); user != "" {
		addr, err := rnt.ParseAddress(user)
		if err != nil {
			return nil, restutil.BadRequest(errors.WithMessage(err, "user"))
		}
		criteria.User = addr
	}
	if criteria.Name != nil || criteria.User != nil {
		filter.CriteriaSet = []*eventdb.Criteria{criteria}
	}

	if from, to := query.Get("from"), query.Get("to"); from != "" || to != "" {
		r := &eventdb.Range{}
		if from != "" {
			v, err := strconv.ParseUint(from, 10, 64)
			if err != nil {
				return nil, restutil.BadRequest(errors.WithMessage(err, "from"))
			}
			r.From = v
		}
		if to != "" {
			v, err := strconv.ParseUint(to, 10, 64)
			if err != nil {
				return nil, restutil.BadRequest(errors.WithMessage(err, "to"))
			}
			r.To = v
			if r.To < r.From {
				return nil, restutil.BadRequest(errors.New("to must be greater than or equal to from"))
			}
		}
		filter.Range = r
	}

	if order := query.Get("order"); order == string(eventdb.DESC) {
		filter.Order = eventdb.DESC
	}

	options := &eventdb.Options{Limit: e.limit}
	if offset := query.Get("offset"); offset != "" {
		v, err := strconv.ParseUint(offset, 10, 64)
		if err != nil {
			return nil, restutil.BadRequest(errors.WithMessage(err, "offset"))
		}
		options.Offset = v
	}
	if limit := query.Get("limit"); limit != "" {
		v, err := strconv.ParseUint(limit, 10, 64)
		if err != nil {
			return nil, restutil.BadRequest(errors.WithMessage(err, "limit"))
		}
		if v > e.limit {
			return nil, restutil.Forbidden(fmt.Errorf("limit exceeds the maximum allowed value of %d", e.limit))
		}
		options.Limit = v
	}
	filter.Options = options
	return filter, nil
}

func (e *Events) handleFilter(w http.ResponseWriter, req *http.Request) error {
	filter, err := e.parseFilter(req)
	if err != nil {
		return err
	}
	records, err := e.db.Filter(req.Context(), filter)
	if err != nil {
		return err
	}
	fes := make([]*FilteredEvent, len(records))
	for i, r := range records {
		fes[i] = convertRecord(r)
	}
	return restutil.WriteJSON(w, fes)
}

func (e *Events) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").
		Methods(http.MethodGet).
		Name("GET /events").
		HandlerFunc(restutil.WrapHandlerFunc(e.handleFilter))
}
