// Copyright (c) 2026 The StakeVault developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package wsclient provides a websocket client to subscribe to the event
// stream of a StakeVault node.
package wsclient

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/gorilla/websocket"

	"github.com/rewardnet/stakevault/api/subscriptions"
	"github.com/rewardnet/stakevault/stakeclient/common"
)

// Client represents a websocket client that connects to a StakeVault node
// for subscribing to the event stream.
type Client struct {
	host   string
	scheme string
}

// NewClient creates a new websocket client from an http or ws URL.
func NewClient(url string) (*Client, error) {
	var host string
	var scheme string

	if strings.Contains(url, "https://") || strings.Contains(url, "wss://") {
		host = strings.TrimPrefix(strings.TrimPrefix(url, "https://"), "wss://")
		scheme = "wss"
	} else if strings.Contains(url, "http://") || strings.Contains(url, "ws://") {
		host = strings.TrimPrefix(strings.TrimPrefix(url, "http://"), "ws://")
		scheme = "ws"
	} else {
		return nil, fmt.Errorf("invalid url")
	}

	return &Client{
		host:   strings.TrimSuffix(host, "/"),
		scheme: scheme,
	}, nil
}

// SubscribeEvents subscribes to the event stream, narrowed by the raw query.
func (c *Client) SubscribeEvents(rawQuery string) (*Subscription[*subscriptions.EventMessage], error) {
	conn, err := c.connect("/subscriptions/events", rawQuery)
	if err != nil {
		return nil, fmt.Errorf("unable to connect - %w", err)
	}

	return subscribe[subscriptions.EventMessage](conn), nil
}

// subscribe reads messages off the connection into a channel until the
// connection dies or Unsubscribe is called.
func subscribe[T any](conn *websocket.Conn) *Subscription[*T] {
	eventChan := make(chan common.EventWrapper[*T], 10_000)
	var closed bool

	go func() {
		defer close(eventChan)
		defer conn.Close()

		for {
			var data T
			if err := conn.ReadJSON(&data); err != nil {
				if !closed {
					eventChan <- common.EventWrapper[*T]{Error: fmt.Errorf("%w: %w", common.ErrUnexpectedMsg, err)}
				}
				return
			}
			eventChan <- common.EventWrapper[*T]{Data: &data}
		}
	}()

	return &Subscription[*T]{
		EventChan: eventChan,
		Unsubscribe: func() error {
			closed = true
			return conn.Close()
		},
	}
}

func (c *Client) connect(endpoint, rawQuery string) (*websocket.Conn, error) {
	u := url.URL{
		Scheme:   c.scheme,
		Host:     c.host,
		Path:     endpoint,
		RawQuery: rawQuery,
	}

	conn, resp, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		return nil, err
	}
	if resp != nil {
		defer resp.Body.Close()
	}
	return conn, nil
}
