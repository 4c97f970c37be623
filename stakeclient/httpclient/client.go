// Copyright (c) 2026 The StakeVault developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package httpclient provides an HTTP client to interact with the StakeVault
// API. It offers typed methods for the read endpoints, the dev-mode mutations
// and raw access for everything else.
package httpclient

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/ethereum/go-ethereum/common/math"

	"github.com/rewardnet/stakevault/api/adminops"
	"github.com/rewardnet/stakevault/api/events"
	"github.com/rewardnet/stakevault/api/locks"
	"github.com/rewardnet/stakevault/api/stakers"
	"github.com/rewardnet/stakevault/api/status"
	"github.com/rewardnet/stakevault/api/supply"
	"github.com/rewardnet/stakevault/rnt"
	"github.com/rewardnet/stakevault/stakeclient/common"
)

// Client represents the HTTP client for interacting with a StakeVault node.
// It manages communication via HTTP requests.
type Client struct {
	url string
	c   *http.Client
}

// New creates a new Client with the provided URL.
func New(url string) *Client {
	return NewWithHTTP(url, http.DefaultClient)
}

// NewWithHTTP creates a new Client with the provided URL and HTTP client.
func NewWithHTTP(url string, c *http.Client) *Client {
	return &Client{
		url: url,
		c:   c,
	}
}

// EventQuery narrows and pages a call to the events endpoint. Zero fields are
// left out of the query string, leaving the matching criterion open.
type EventQuery struct {
	User   *rnt.Address
	Name   string
	From   uint64
	To     uint64
	Order  string
	Offset uint64
	Limit  uint64
}

func (q *EventQuery) encode() string {
	if q == nil {
		return ""
	}
	values := url.Values{}
	if q.User != nil {
		values.Set("user", q.User.String())
	}
	if q.Name != "" {
		values.Set("name", q.Name)
	}
	if q.From != 0 {
		values.Set("from", strconv.FormatUint(q.From, 10))
	}
	if q.To != 0 {
		values.Set("to", strconv.FormatUint(q.To, 10))
	}
	if q.Order != "" {
		values.Set("order", q.Order)
	}
	if q.Offset != 0 {
		values.Set("offset", strconv.FormatUint(q.Offset, 10))
	}
	if q.Limit != 0 {
		values.Set("limit", strconv.FormatUint(q.Limit, 10))
	}
	return values.Encode()
}

// GetStaker retrieves the staking record of the provided address.
func (c *Client) GetStaker(addr *rnt.Address) (*stakers.Staker, error) {
	body, err := c.httpGET(c.url + "/stakers/" + addr.String())
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve staker - %w", err)
	}

	var staker stakers.Staker
	if err = json.Unmarshal(body, &staker); err != nil {
		return nil, fmt.Errorf("unable to unmarshal staker - %w", err)
	}

	return &staker, nil
}

// GetLocks retrieves the vesting grants of the provided address.
func (c *Client) GetLocks(addr *rnt.Address) ([]*locks.Lock, error) {
	body, err := c.httpGET(c.url + "/locks/" + addr.String())
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve locks - %w", err)
	}

	var grants []*locks.Lock
	if err = json.Unmarshal(body, &grants); err != nil {
		return nil, fmt.Errorf("unable to unmarshal locks - %w", err)
	}

	return grants, nil
}

// GetLockTotal retrieves the total amount still locked for the provided
// address.
func (c *Client) GetLockTotal(addr *rnt.Address) (*math.HexOrDecimal256, error) {
	body, err := c.httpGET(c.url + "/locks/" + addr.String() + "/total")
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve lock total - %w", err)
	}

	var response struct {
		Total *math.HexOrDecimal256 `json:"total"`
	}
	if err = json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("unable to unmarshal lock total - %w", err)
	}

	return response.Total, nil
}

// GetSupply retrieves the token supply breakdown.
func (c *Client) GetSupply() (*supply.Supply, error) {
	body, err := c.httpGET(c.url + "/supply")
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve supply - %w", err)
	}

	var sup supply.Supply
	if err = json.Unmarshal(body, &sup); err != nil {
		return nil, fmt.Errorf("unable to unmarshal supply - %w", err)
	}

	return &sup, nil
}

// GetStatus retrieves the node status.
func (c *Client) GetStatus() (*status.Status, error) {
	body, err := c.httpGET(c.url + "/node/status")
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve status - %w", err)
	}

	var st status.Status
	if err = json.Unmarshal(body, &st); err != nil {
		return nil, fmt.Errorf("unable to unmarshal status - %w", err)
	}

	return &st, nil
}

// FilterEvents retrieves the event records matching the query.
func (c *Client) FilterEvents(query *EventQuery) ([]*events.FilteredEvent, error) {
	u := c.url + "/events"
	if encoded := query.encode(); encoded != "" {
		u += "?" + encoded
	}
	body, err := c.httpGET(u)
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve events - %w", err)
	}

	var fes []*events.FilteredEvent
	if err = json.Unmarshal(body, &fes); err != nil {
		return nil, fmt.Errorf("unable to unmarshal events - %w", err)
	}

	return fes, nil
}

// Approve lets the staking contract pull up to amount from the address, a
// prerequisite of Stake. Dev mode only.
func (c *Client) Approve(addr *rnt.Address, amount *math.HexOrDecimal256) (*math.HexOrDecimal256, error) {
	request, err := json.Marshal(stakers.AmountRequest{Amount: amount})
	if err != nil {
		return nil, fmt.Errorf("unable to marshal approval - %w", err)
	}
	body, err := c.httpPOST(c.url+"/stakers/"+addr.String()+"/approve", request)
	if err != nil {
		return nil, fmt.Errorf("unable to send approval - %w", err)
	}

	var response struct {
		Approved *math.HexOrDecimal256 `json:"approved"`
	}
	if err = json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("unable to unmarshal approval - %w", err)
	}

	return response.Approved, nil
}

func (c *Client) postStakerOp(path string, request []byte) (*stakers.Staker, error) {
	body, err := c.httpPOST(c.url+path, request)
	if err != nil {
		return nil, err
	}

	var staker stakers.Staker
	if err = json.Unmarshal(body, &staker); err != nil {
		return nil, fmt.Errorf("unable to unmarshal staker - %w", err)
	}

	return &staker, nil
}

// Stake deposits amount from the address into the staking contract. Dev mode
// only.
func (c *Client) Stake(addr *rnt.Address, amount *math.HexOrDecimal256) (*stakers.Staker, error) {
	request, err := json.Marshal(stakers.AmountRequest{Amount: amount})
	if err != nil {
		return nil, fmt.Errorf("unable to marshal stake - %w", err)
	}
	staker, err := c.postStakerOp("/stakers/"+addr.String()+"/stake", request)
	if err != nil {
		return nil, fmt.Errorf("unable to send stake - %w", err)
	}
	return staker, nil
}

// Unstake withdraws amount of previously staked tokens back to the address.
// Dev mode only.
func (c *Client) Unstake(addr *rnt.Address, amount *math.HexOrDecimal256) (*stakers.Staker, error) {
	request, err := json.Marshal(stakers.AmountRequest{Amount: amount})
	if err != nil {
		return nil, fmt.Errorf("unable to marshal unstake - %w", err)
	}
	staker, err := c.postStakerOp("/stakers/"+addr.String()+"/unstake", request)
	if err != nil {
		return nil, fmt.Errorf("unable to send unstake - %w", err)
	}
	return staker, nil
}

// ClaimReward converts the pending reward of the address into a vesting
// grant. Dev mode only.
func (c *Client) ClaimReward(addr *rnt.Address) (*stakers.Staker, error) {
	staker, err := c.postStakerOp("/stakers/"+addr.String()+"/claim", nil)
	if err != nil {
		return nil, fmt.Errorf("unable to send claim - %w", err)
	}
	return staker, nil
}

// EmergencyWithdraw pulls the full stake of the address out, forfeiting any
// pending reward. Dev mode only.
func (c *Client) EmergencyWithdraw(addr *rnt.Address) (*stakers.Staker, error) {
	staker, err := c.postStakerOp("/stakers/"+addr.String()+"/emergency", nil)
	if err != nil {
		return nil, fmt.Errorf("unable to send emergency withdrawal - %w", err)
	}
	return staker, nil
}

// ConvertLock releases the vested portion of the indexed grant to the
// address. Dev mode only.
func (c *Client) ConvertLock(addr *rnt.Address, index uint64) (*math.HexOrDecimal256, error) {
	body, err := c.httpPOST(c.url+"/locks/"+addr.String()+"/"+strconv.FormatUint(index, 10)+"/convert", nil)
	if err != nil {
		return nil, fmt.Errorf("unable to send conversion - %w", err)
	}

	var response struct {
		Received *math.HexOrDecimal256 `json:"received"`
	}
	if err = json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("unable to unmarshal conversion - %w", err)
	}

	return response.Received, nil
}

// SetRewardRate updates the daily reward rate as caller. Dev mode only.
func (c *Client) SetRewardRate(caller *rnt.Address, rate *math.HexOrDecimal256) error {
	request, err := json.Marshal(adminops.RateRequest{Caller: caller, Rate: rate})
	if err != nil {
		return fmt.Errorf("unable to marshal rate update - %w", err)
	}
	if _, err := c.httpPOST(c.url+"/admin-ops/reward-rate", request); err != nil {
		return fmt.Errorf("unable to send rate update - %w", err)
	}
	return nil
}

// SetRewardPerSec updates the pool payout rate as caller. Dev mode only.
func (c *Client) SetRewardPerSec(caller *rnt.Address, rate *math.HexOrDecimal256) error {
	request, err := json.Marshal(adminops.RateRequest{Caller: caller, Rate: rate})
	if err != nil {
		return fmt.Errorf("unable to marshal rate update - %w", err)
	}
	if _, err := c.httpPOST(c.url+"/admin-ops/reward-per-sec", request); err != nil {
		return fmt.Errorf("unable to send rate update - %w", err)
	}
	return nil
}

// Pause suspends staking operations as caller. Dev mode only.
func (c *Client) Pause(caller *rnt.Address) error {
	request, err := json.Marshal(adminops.CallerRequest{Caller: caller})
	if err != nil {
		return fmt.Errorf("unable to marshal pause - %w", err)
	}
	if _, err := c.httpPOST(c.url+"/admin-ops/pause", request); err != nil {
		return fmt.Errorf("unable to send pause - %w", err)
	}
	return nil
}

// Unpause resumes staking operations as caller. Dev mode only.
func (c *Client) Unpause(caller *rnt.Address) error {
	request, err := json.Marshal(adminops.CallerRequest{Caller: caller})
	if err != nil {
		return fmt.Errorf("unable to marshal unpause - %w", err)
	}
	if _, err := c.httpPOST(c.url+"/admin-ops/unpause", request); err != nil {
		return fmt.Errorf("unable to send unpause - %w", err)
	}
	return nil
}

// RawHTTPGet sends a GET request to the destination URL and returns the
// response body and status code.
func (c *Client) RawHTTPGet(url string) ([]byte, int, error) {
	return c.rawHTTPRequest(http.MethodGet, c.url+url, nil)
}

// RawHTTPPost sends a POST request to the destination URL and returns the
// response body and status code.
func (c *Client) RawHTTPPost(url string, calldata []byte) ([]byte, int, error) {
	return c.rawHTTPRequest(http.MethodPost, c.url+url, bytes.NewBuffer(calldata))
}

func (c *Client) httpGET(url string) ([]byte, error) {
	body, statusCode, err := c.rawHTTPRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	return validateResponse(body, statusCode)
}

func (c *Client) httpPOST(url string, request []byte) ([]byte, error) {
	body, statusCode, err := c.rawHTTPRequest(http.MethodPost, url, bytes.NewBuffer(request))
	if err != nil {
		return nil, err
	}
	return validateResponse(body, statusCode)
}

func (c *Client) rawHTTPRequest(method string, url string, body io.Reader) ([]byte, int, error) {
	req, err := http.NewRequest(method, url, body)
	if err != nil {
		return nil, 0, fmt.Errorf("unable to create request - %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.c.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("unable to perform request - %w", err)
	}
	defer resp.Body.Close()

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("unable to read response body - %w", err)
	}
	return responseBody, resp.StatusCode, nil
}

// validateResponse enforces a 200, folding the error body into the returned
// error.
func validateResponse(body []byte, statusCode int) ([]byte, error) {
	if statusCode == http.StatusOK {
		return body, nil
	}
	if statusCode == http.StatusNotFound {
		return nil, common.ErrNotFound
	}
	return nil, fmt.Errorf("http error - Status Code %d - %s - %w", statusCode, string(body), common.ErrNot200Status)
}
