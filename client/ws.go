// Copyright (c) 2026 The VeriFund developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package client

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/adysingh5711/VeriFund/eventdb"
	"github.com/adysingh5711/VeriFund/vf"
)

// EventWrapper carries a received event or the error that ended the subscription.
type EventWrapper struct {
	Event *eventdb.Event
	Error error
}

// Subscription is a live event stream.
type Subscription struct {
	conn      *websocket.Conn
	events    chan EventWrapper
	done      chan struct{}
	closeOnce sync.Once
}

// Events is closed once the connection ends.
func (s *Subscription) Events() <-chan EventWrapper {
	return s.events
}

// Close ends the subscription.
func (s *Subscription) Close() error {
	var err error
	s.closeOnce.Do(func() {
		close(s.done)
		err = s.conn.Close()
	})
	return err
}

func (s *Subscription) send(ev EventWrapper) bool {
	select {
	case s.events <- ev:
		return true
	case <-s.done:
		return false
	}
}

// EventQuery selects the events to stream. Zero fields match everything,
// a zero Pos starts after the current head.
type EventQuery struct {
	Pos     uint64
	Address *vf.Address
	Name    string
}

func (q *EventQuery) encode() string {
	v := url.Values{}
	if q.Pos > 0 {
		v.Set("pos", strconv.FormatUint(q.Pos, 10))
	}
	if q.Address != nil {
		v.Set("address", q.Address.String())
	}
	if q.Name != "" {
		v.Set("name", q.Name)
	}
	return v.Encode()
}

// SubscribeEvents streams the events matching query.
func (c *Client) SubscribeEvents(query *EventQuery) (*Subscription, error) {
	u, err := url.Parse(c.url)
	if err != nil {
		return nil, fmt.Errorf("invalid url - %w", err)
	}
	switch {
	case strings.EqualFold(u.Scheme, "https"):
		u.Scheme = "wss"
	case strings.EqualFold(u.Scheme, "http"):
		u.Scheme = "ws"
	default:
		return nil, fmt.Errorf("invalid url scheme %q", u.Scheme)
	}
	u.Path = strings.TrimSuffix(u.Path, "/") + "/subscriptions/event"
	if query != nil {
		u.RawQuery = query.encode()
	}

	conn, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("unable to connect - %w", err)
	}

	sub := &Subscription{conn: conn, events: make(chan EventWrapper), done: make(chan struct{})}
	go func() {
		defer close(sub.events)
		defer conn.Close()
		for {
			var ev eventdb.Event
			if err := conn.ReadJSON(&ev); err != nil {
				sub.send(EventWrapper{Error: err})
				return
			}
			if !sub.send(EventWrapper{Event: &ev}) {
				return
			}
		}
	}()
	return sub, nil
}
