// Copyright (c) 2026 The StakeVault developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package subscriptions

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/pkg/errors"

	"github.com/rewardnet/stakevault/api/restutil"
	"github.com/rewardnet/stakevault/co"
	"github.com/rewardnet/stakevault/node"
	"github.com/rewardnet/stakevault/rnt"
	"github.com/rewardnet/stakevault/xenv"
)

const eventQueueSize = 512

type Subscriptions struct {
	engine   *node.Engine
	events   *eventDispatch
	done     chan struct{}
	goes     co.Goes
	upgrader *websocket.Upgrader
}

// New creates the subscription endpoint and starts its dispatch loop. Close
// stops the loop and releases connected clients.
func New(engine *node.Engine, allowedOrigins []string) *Subscriptions {
	sub := &Subscriptions{
		engine: engine,
		events: newEventDispatch(engine),
		done:   make(chan struct{}),
		upgrader: &websocket.Upgrader{
			EnableCompression: true,
			CheckOrigin: func(req *http.Request) bool {
				origin := req.Header.Get("Origin")
				if origin == "" {
					return true
				}
				for _, allowed := range allowedOrigins {
					if allowed == "*" || strings.EqualFold(allowed, origin) {
						return true
					}
				}
				return false
			},
		},
	}
	sub.goes.Go(func() { sub.events.DispatchLoop(sub.done) })
	return sub
}

func (s *Subscriptions) handleSubscribeEvents(w http.ResponseWriter, req *http.Request) error {
	var filter eventFilter
	query := req.URL.Query()
	if user := query.Get("user"); user != "" {
		addr, err := rnt.ParseAddress(user)
		if err != nil {
			return restutil.BadRequest(errors.WithMessage(err, "user"))
		}
		filter.user = addr
	}
	filter.name = query.Get("name")

	conn, closed, err := s.setupConn(w, req)
	if err != nil {
		return err
	}
	defer conn.Close()

	ch := make(chan *xenv.Event, eventQueueSize)
	s.events.Subscribe(ch)
	defer s.events.Unsubscribe(ch)

	for {
		select {
		case ev := <-ch:
			if !filter.match(ev) {
				continue
			}
			if err := conn.WriteJSON(convertEvent(ev)); err != nil {
				return err
			}
		case <-closed:
			return nil
		case <-s.done:
			return nil
		}
	}
}

// setupConn upgrades to a websocket and watches the read side, so a client
// going away is noticed even though the stream is write-only.
func (s *Subscriptions) setupConn(w http.ResponseWriter, req *http.Request) (*websocket.Conn, <-chan struct{}, error) {
	conn, err := s.upgrader.Upgrade(w, req, nil)
	if err != nil {
		return nil, nil, err
	}
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
	return conn, closed, nil
}

// Close stops the dispatch loop. Connected clients unblock on the done
// channel and close their hijacked conns on the way out.
func (s *Subscriptions) Close() {
	close(s.done)
	s.goes.Wait()
}

func (s *Subscriptions) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/events").
		Methods(http.MethodGet).
		Name("GET /subscriptions/events").
		HandlerFunc(restutil.WrapHandlerFunc(s.handleSubscribeEvents))
}
