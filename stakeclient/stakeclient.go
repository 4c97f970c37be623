// Copyright (c) 2026 The StakeVault developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package stakeclient provides a client for interacting with the StakeVault
// API. It wraps an HTTP client for requests and optionally a websocket client
// for event subscriptions.
package stakeclient

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/ethereum/go-ethereum/common/math"

	"github.com/rewardnet/stakevault/api/events"
	"github.com/rewardnet/stakevault/api/locks"
	"github.com/rewardnet/stakevault/api/stakers"
	"github.com/rewardnet/stakevault/api/status"
	"github.com/rewardnet/stakevault/api/subscriptions"
	"github.com/rewardnet/stakevault/api/supply"
	"github.com/rewardnet/stakevault/rnt"
	"github.com/rewardnet/stakevault/stakeclient/httpclient"
	"github.com/rewardnet/stakevault/stakeclient/wsclient"
)

// Client represents the StakeVault client.
type Client struct {
	httpConn *httpclient.Client
	wsConn   *wsclient.Client
}

// New creates a new Client using the provided URL.
func New(url string) *Client {
	return &Client{httpConn: httpclient.New(url)}
}

// NewWithHTTP creates a new Client using the provided URL and HTTP client.
func NewWithHTTP(url string, c *http.Client) *Client {
	return &Client{httpConn: httpclient.NewWithHTTP(url, c)}
}

// NewWithWS creates a new Client using the provided URL and websocket support.
func NewWithWS(url string) (*Client, error) {
	client, err := wsclient.NewClient(url)
	if err != nil {
		return nil, err
	}

	return &Client{
		httpConn: httpclient.New(url),
		wsConn:   client,
	}, nil
}

// RawHTTPClient returns the underlying HTTP client.
func (c *Client) RawHTTPClient() *httpclient.Client {
	return c.httpConn
}

// RawWSClient returns the underlying websocket client.
func (c *Client) RawWSClient() *wsclient.Client {
	return c.wsConn
}

// Staker returns the staking record of the provided address.
func (c *Client) Staker(addr *rnt.Address) (*stakers.Staker, error) {
	return c.httpConn.GetStaker(addr)
}

// Locks returns the vesting grants of the provided address.
func (c *Client) Locks(addr *rnt.Address) ([]*locks.Lock, error) {
	return c.httpConn.GetLocks(addr)
}

// LockTotal returns the total amount still locked for the provided address.
func (c *Client) LockTotal(addr *rnt.Address) (*math.HexOrDecimal256, error) {
	return c.httpConn.GetLockTotal(addr)
}

// Supply returns the token supply breakdown.
func (c *Client) Supply() (*supply.Supply, error) {
	return c.httpConn.GetSupply()
}

// Status returns the node status.
func (c *Client) Status() (*status.Status, error) {
	return c.httpConn.GetStatus()
}

// FilterEvents returns the event records matching the query.
func (c *Client) FilterEvents(query *httpclient.EventQuery) ([]*events.FilteredEvent, error) {
	return c.httpConn.FilterEvents(query)
}

// Approve lets the staking contract pull up to amount from the address.
// Requires a node in dev mode.
func (c *Client) Approve(addr *rnt.Address, amount *math.HexOrDecimal256) (*math.HexOrDecimal256, error) {
	return c.httpConn.Approve(addr, amount)
}

// Stake deposits amount from the address into the staking contract. Requires
// a node in dev mode.
func (c *Client) Stake(addr *rnt.Address, amount *math.HexOrDecimal256) (*stakers.Staker, error) {
	return c.httpConn.Stake(addr, amount)
}

// Unstake withdraws amount of staked tokens back to the address. Requires a
// node in dev mode.
func (c *Client) Unstake(addr *rnt.Address, amount *math.HexOrDecimal256) (*stakers.Staker, error) {
	return c.httpConn.Unstake(addr, amount)
}

// ClaimReward converts the pending reward of the address into a vesting
// grant. Requires a node in dev mode.
func (c *Client) ClaimReward(addr *rnt.Address) (*stakers.Staker, error) {
	return c.httpConn.ClaimReward(addr)
}

// EmergencyWithdraw pulls the full stake of the address out, forfeiting any
// pending reward. Requires a node in dev mode.
func (c *Client) EmergencyWithdraw(addr *rnt.Address) (*stakers.Staker, error) {
	return c.httpConn.EmergencyWithdraw(addr)
}

// ConvertLock releases the vested portion of the indexed grant to the
// address. Requires a node in dev mode.
func (c *Client) ConvertLock(addr *rnt.Address, index uint64) (*math.HexOrDecimal256, error) {
	return c.httpConn.ConvertLock(addr, index)
}

// SetRewardRate updates the daily reward rate as caller. Requires a node in
// dev mode.
func (c *Client) SetRewardRate(caller *rnt.Address, rate *math.HexOrDecimal256) error {
	return c.httpConn.SetRewardRate(caller, rate)
}

// SetRewardPerSec updates the pool payout rate as caller. Requires a node in
// dev mode.
func (c *Client) SetRewardPerSec(caller *rnt.Address, rate *math.HexOrDecimal256) error {
	return c.httpConn.SetRewardPerSec(caller, rate)
}

// Pause suspends staking operations as caller. Requires a node in dev mode.
func (c *Client) Pause(caller *rnt.Address) error {
	return c.httpConn.Pause(caller)
}

// Unpause resumes staking operations as caller. Requires a node in dev mode.
func (c *Client) Unpause(caller *rnt.Address) error {
	return c.httpConn.Unpause(caller)
}

// SubscribeEvents subscribes to the event stream, narrowed to the user and
// event name when given.
func (c *Client) SubscribeEvents(user *rnt.Address, name string) (*wsclient.Subscription[*subscriptions.EventMessage], error) {
	if c.wsConn == nil {
		return nil, fmt.Errorf("not a websocket typed client")
	}
	values := url.Values{}
	if user != nil {
		values.Set("user", user.String())
	}
	if name != "" {
		values.Set("name", name)
	}
	return c.wsConn.SubscribeEvents(values.Encode())
}
