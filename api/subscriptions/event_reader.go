// Copyright (c) 2026 The VeriFund developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package subscriptions

import (
	"context"

	"github.com/adysingh5711/VeriFund/eventdb"
	"github.com/adysingh5711/VeriFund/vf"
)

const readLimit = 100

// eventReader reads indexed events forward from a log position.
// offset counts the events already delivered at seq from.
type eventReader struct {
	db      *eventdb.EventDB
	address *vf.Address
	name    string
	from    uint64
	offset  uint64
}

func newEventReader(db *eventdb.EventDB, from uint64, address *vf.Address, name string) *eventReader {
	return &eventReader{
		db:      db,
		address: address,
		name:    name,
		from:    from,
	}
}

// Read returns the next page of events. full reports the page was filled and more may follow.
func (r *eventReader) Read(ctx context.Context) (events []*eventdb.Event, full bool, err error) {
	events, err = r.db.Filter(ctx, &eventdb.Filter{
		Address: r.address,
		Name:    r.name,
		Range:   &eventdb.Range{Unit: eventdb.Seq, From: r.from},
		Order:   eventdb.ASC,
		Options: &eventdb.Options{Offset: r.offset, Limit: readLimit},
	})
	if err != nil {
		return nil, false, err
	}
	if len(events) == 0 {
		return nil, false, nil
	}
	last := events[len(events)-1].Seq
	if last != r.from {
		r.from, r.offset = last, 0
	}
	for _, ev := range events {
		if ev.Seq == last {
			r.offset++
		}
	}
	return events, len(events) == readLimit, nil
}
