// Copyright (c) 2026 The VeriFund developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package client talks to a VeriFund node over its HTTP and websocket API.
package client

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/adysingh5711/VeriFund/api/funding"
	"github.com/adysingh5711/VeriFund/api/transactions"
	"github.com/adysingh5711/VeriFund/api/voting"
	"github.com/adysingh5711/VeriFund/eventdb"
	"github.com/adysingh5711/VeriFund/tx"
	"github.com/adysingh5711/VeriFund/vf"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrNot200Status = errors.New("not 200 status code")
)

// Head is the last applied log position.
type Head struct {
	Seq  uint64 `json:"seq"`
	Time uint64 `json:"time"`
	Now  uint64 `json:"now"`
}

// Client is the HTTP client of a node.
type Client struct {
	url string
	c   *http.Client
}

// New creates a new Client with the provided URL.
func New(url string) *Client {
	return NewWithHTTP(url, http.DefaultClient)
}

func NewWithHTTP(url string, c *http.Client) *Client {
	return &Client{
		url: strings.TrimSuffix(url, "/"),
		c:   c,
	}
}

// Head returns the head of the transaction log.
func (c *Client) Head() (*Head, error) {
	var head Head
	if err := c.getJSON("/head", &head); err != nil {
		return nil, fmt.Errorf("unable to retrieve head - %w", err)
	}
	return &head, nil
}

// Nonce returns the next nonce of addr.
func (c *Client) Nonce(addr vf.Address) (uint64, error) {
	var res struct {
		Nonce uint64 `json:"nonce"`
	}
	if err := c.getJSON("/nonces/"+addr.String(), &res); err != nil {
		return 0, fmt.Errorf("unable to retrieve nonce - %w", err)
	}
	return res.Nonce, nil
}

// Balance returns the balance of holder in token. The zero token is the native one.
func (c *Client) Balance(token, holder vf.Address) (string, error) {
	tokenPath := "native"
	if !token.IsZero() {
		tokenPath = token.String()
	}
	var res struct {
		Balance string `json:"balance"`
	}
	if err := c.getJSON("/ledger/"+tokenPath+"/"+holder.String(), &res); err != nil {
		return "", fmt.Errorf("unable to retrieve balance - %w", err)
	}
	return res.Balance, nil
}

// SendTransaction submits trx and waits for its receipt.
// A rejected transaction returns an error wrapping ErrNot200Status.
func (c *Client) SendTransaction(trx *tx.Transaction) (*tx.Receipt, error) {
	body, err := c.httpPOST("/transactions", &transactions.RawTx{Raw: trx.Hex()})
	if err != nil {
		return nil, fmt.Errorf("unable to send transaction - %w", err)
	}
	var receipt tx.Receipt
	if err := json.Unmarshal(body, &receipt); err != nil {
		return nil, fmt.Errorf("unable to unmarshal receipt - %w", err)
	}
	return &receipt, nil
}

// Receipt returns the receipt of the transaction with id.
func (c *Client) Receipt(id vf.Bytes32) (*tx.Receipt, error) {
	var receipt tx.Receipt
	if err := c.getJSON("/transactions/"+id.String(), &receipt); err != nil {
		return nil, fmt.Errorf("unable to retrieve receipt - %w", err)
	}
	return &receipt, nil
}

// CurrentRound returns the latest voting round.
func (c *Client) CurrentRound() (*voting.Round, error) {
	var round voting.Round
	if err := c.getJSON("/voting/rounds/current", &round); err != nil {
		return nil, fmt.Errorf("unable to retrieve round - %w", err)
	}
	return &round, nil
}

// Result returns the tally of proposal in round.
func (c *Client) Result(round, proposal uint64) (*voting.Result, error) {
	var res voting.Result
	path := "/voting/rounds/" + strconv.FormatUint(round, 10) + "/proposals/" + strconv.FormatUint(proposal, 10)
	if err := c.getJSON(path, &res); err != nil {
		return nil, fmt.Errorf("unable to retrieve result - %w", err)
	}
	return &res, nil
}

// Project returns the project with its milestones.
func (c *Client) Project(id uint64) (*funding.Project, error) {
	var project funding.Project
	if err := c.getJSON("/funding/projects/"+strconv.FormatUint(id, 10), &project); err != nil {
		return nil, fmt.Errorf("unable to retrieve project - %w", err)
	}
	return &project, nil
}

// Reviewers returns every staked reviewer.
func (c *Client) Reviewers() ([]*funding.Reviewer, error) {
	var reviewers []*funding.Reviewer
	if err := c.getJSON("/funding/reviewers", &reviewers); err != nil {
		return nil, fmt.Errorf("unable to retrieve reviewers - %w", err)
	}
	return reviewers, nil
}

// FilterEvents queries indexed events.
func (c *Client) FilterEvents(filter *eventdb.Filter) ([]*eventdb.Event, error) {
	body, err := c.httpPOST("/logs/event", filter)
	if err != nil {
		return nil, fmt.Errorf("unable to filter events - %w", err)
	}
	var events []*eventdb.Event
	if err := json.Unmarshal(body, &events); err != nil {
		return nil, fmt.Errorf("unable to unmarshal events - %w", err)
	}
	return events, nil
}

func (c *Client) getJSON(path string, v any) error {
	body, err := c.httpRequest(http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("unable to unmarshal response - %w", err)
	}
	return nil
}

func (c *Client) httpPOST(path string, payload any) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("unable to marshal payload - %w", err)
	}
	return c.httpRequest(http.MethodPost, path, bytes.NewReader(data))
}

func (c *Client) httpRequest(method, path string, payload io.Reader) ([]byte, error) {
	req, err := http.NewRequest(method, c.url+path, payload)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}
	if method == http.MethodPost {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.c.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error performing request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading response body: %w", err)
	}
	switch resp.StatusCode {
	case http.StatusOK:
		return body, nil
	case http.StatusNotFound:
		return nil, fmt.Errorf("%s - %w", strings.TrimSpace(string(body)), ErrNotFound)
	default:
		return nil, fmt.Errorf("http error - Status Code %d - %s - %w", resp.StatusCode, strings.TrimSpace(string(body)), ErrNot200Status)
	}
}
