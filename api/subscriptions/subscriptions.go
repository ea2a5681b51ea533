// Copyright (c) 2026 The VeriFund developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package subscriptions

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/pkg/errors"

	"github.com/adysingh5711/VeriFund/api/utils"
	"github.com/adysingh5711/VeriFund/eventdb"
	"github.com/adysingh5711/VeriFund/log"
	"github.com/adysingh5711/VeriFund/sequencer"
	"github.com/adysingh5711/VeriFund/vf"
)

var logger = log.WithContext("pkg", "subscriptions")

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 7) / 10
)

// Chain notifies about applied transactions.
type Chain interface {
	Head() sequencer.Head
	Ticker() <-chan struct{}
}

type Subscriptions struct {
	chain    Chain
	db       *eventdb.EventDB
	upgrader *websocket.Upgrader
	done     chan struct{}
}

// New creates the subscription handler. allowedOrigins lists the accepted
// websocket origins, "*" accepts any.
func New(chain Chain, db *eventdb.EventDB, allowedOrigins []string) *Subscriptions {
	return &Subscriptions{
		chain: chain,
		db:    db,
		upgrader: &websocket.Upgrader{
			EnableCompression: true,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" {
					return true
				}
				for _, allowed := range allowedOrigins {
					if allowed == "*" || allowed == origin {
						return true
					}
				}
				return false
			},
		},
		done: make(chan struct{}),
	}
}

func (s *Subscriptions) parseReader(req *http.Request) (*eventReader, error) {
	query := req.URL.Query()
	pos := s.chain.Head().Seq + 1
	if v := query.Get("pos"); v != "" {
		p, err := utils.ParseUint64(v, "pos")
		if err != nil {
			return nil, err
		}
		if p == 0 {
			return nil, utils.BadRequest(errors.New("pos: must be positive"))
		}
		pos = p
	}
	var address *vf.Address
	if v := query.Get("address"); v != "" {
		addr, err := utils.ParseAddress(v, "address")
		if err != nil {
			return nil, err
		}
		address = &addr
	}
	return newEventReader(s.db, pos, address, query.Get("name")), nil
}

func (s *Subscriptions) handleSubscribeEvent(w http.ResponseWriter, req *http.Request) error {
	reader, err := s.parseReader(req)
	if err != nil {
		return err
	}
	conn, err := s.upgrader.Upgrade(w, req, nil)
	if err != nil {
		// upgrader has already responded
		logger.Debug("upgrade failed", "err", err)
		return nil
	}
	defer conn.Close()

	closed := make(chan struct{})
	go func() {
		defer close(closed)
		conn.SetReadDeadline(time.Now().Add(pongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(pongWait))
		})
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	if err := s.pipe(conn, reader, closed); err != nil {
		logger.Debug("subscription closed", "err", err)
		msg := websocket.FormatCloseMessage(websocket.CloseInternalServerErr, err.Error())
		conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
		return nil
	}
	conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, ""), time.Now().Add(writeWait))
	return nil
}

func (s *Subscriptions) pipe(conn *websocket.Conn, reader *eventReader, closed <-chan struct{}) error {
	ctx, cancel := contextUntil(closed, s.done)
	defer cancel()

	ping := time.NewTicker(pingPeriod)
	defer ping.Stop()
	for {
		ticker := s.chain.Ticker()
		events, full, err := reader.Read(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
		for _, ev := range events {
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(ev); err != nil {
				return nil
			}
		}
		if full {
			continue
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker:
		case <-ping.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return nil
			}
		}
	}
}

// Close ends all open subscriptions.
func (s *Subscriptions) Close() {
	close(s.done)
}

func (s *Subscriptions) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/event").Methods(http.MethodGet).Name("WS /subscriptions/event").HandlerFunc(utils.WrapHandlerFunc(s.handleSubscribeEvent))
}
