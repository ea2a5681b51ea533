// Copyright (c) 2026 The VeriFund developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package events

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/adysingh5711/VeriFund/api/utils"
	"github.com/adysingh5711/VeriFund/eventdb"
)

type Events struct {
	db    *eventdb.EventDB
	limit uint64
}

// New creates the event query handler. limit caps the page size and falls back to eventdb.MaxLimit.
func New(db *eventdb.EventDB, limit uint64) *Events {
	if limit == 0 || limit > eventdb.MaxLimit {
		limit = eventdb.MaxLimit
	}
	return &Events{db, limit}
}

func (e *Events) validate(filter *eventdb.Filter) error {
	switch filter.Order {
	case "", eventdb.ASC, eventdb.DESC:
	default:
		return errors.Errorf("unknown order %q", filter.Order)
	}
	if r := filter.Range; r != nil {
		switch r.Unit {
		case "", eventdb.Seq, eventdb.Time:
		default:
			return errors.Errorf("unknown range unit %q", r.Unit)
		}
	}
	if filter.Options == nil {
		filter.Options = &eventdb.Options{Limit: e.limit}
	} else if filter.Options.Limit > e.limit {
		return errors.Errorf("limit exceeds %d", e.limit)
	}
	return nil
}

func (e *Events) handleFilter(w http.ResponseWriter, req *http.Request) error {
	var filter eventdb.Filter
	if err := utils.ParseJSON(req.Body, &filter); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	if err := e.validate(&filter); err != nil {
		return utils.BadRequest(err)
	}
	events, err := e.db.Filter(req.Context(), &filter)
	if err != nil {
		return err
	}
	if events == nil {
		events = []*eventdb.Event{}
	}
	return utils.WriteJSON(w, events)
}

func (e *Events) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/event").Methods(http.MethodPost).Name("POST /logs/event").HandlerFunc(utils.WrapHandlerFunc(e.handleFilter))
}
