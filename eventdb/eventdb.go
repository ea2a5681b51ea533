// Copyright (c) 2026 The VeriFund developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package eventdb

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	sqlite3 "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"

	"github.com/adysingh5711/VeriFund/log"
	"github.com/adysingh5711/VeriFund/vf"
)

var logger = log.WithContext("pkg", "eventdb")

const eventTableSchema = `CREATE TABLE IF NOT EXISTS event (
	seq INTEGER NOT NULL,
	idx INTEGER NOT NULL,
	time INTEGER NOT NULL,
	txID BLOB(32) NOT NULL,
	txOrigin BLOB(20) NOT NULL,
	address BLOB(20) NOT NULL,
	name TEXT NOT NULL,
	topic0 BLOB(32),
	topic1 BLOB(32),
	data BLOB,
	PRIMARY KEY (seq, idx)
);
CREATE INDEX IF NOT EXISTS event_i0 ON event(address, name);
CREATE INDEX IF NOT EXISTS event_i1 ON event(time);
CREATE INDEX IF NOT EXISTS event_i2 ON event(topic0);
CREATE INDEX IF NOT EXISTS event_i3 ON event(topic1);`

// EventDB manages all events
type EventDB struct {
	path string
	db   *sql.DB
}

// New open a event db
func New(path string) (*EventDB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, errors.Wrap(err, "open event db")
	}
	if path == ":memory:" {
		// every connection would see its own empty database
		db.SetMaxOpenConns(1)
	}
	if _, err := db.Exec(eventTableSchema); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "create schema")
	}
	v, _, _ := sqlite3.Version()
	logger.Debug("event db opened", "path", path, "sqlite", v)
	return &EventDB{
		path: path,
		db:   db,
	}, nil
}

// NewMem create a memory sqlite db
func NewMem() (*EventDB, error) {
	return New(":memory:")
}

// Insert inserts events in one transaction. Re-inserting a position replaces it.
func (db *EventDB) Insert(events []*Event) error {
	if len(events) == 0 {
		return nil
	}
	tx, err := db.db.Begin()
	if err != nil {
		return errors.Wrap(err, "begin")
	}
	for _, event := range events {
		if _, err = tx.Exec("INSERT OR REPLACE INTO event(seq, idx, time, txID, txOrigin, address, name, topic0, topic1, data) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?);",
			event.Seq,
			event.Index,
			event.Time,
			event.TxID.Bytes(),
			event.TxOrigin.Bytes(),
			event.Address.Bytes(),
			event.Name,
			topicValue(event.Topics[0]),
			topicValue(event.Topics[1]),
			[]byte(event.Data)); err != nil {
			tx.Rollback()
			return errors.Wrap(err, "insert event")
		}
	}
	return tx.Commit()
}

// NewestSeq returns the highest indexed log position, or 0 when empty.
func (db *EventDB) NewestSeq() (uint64, error) {
	var seq sql.NullInt64
	if err := db.db.QueryRow("SELECT MAX(seq) FROM event").Scan(&seq); err != nil {
		return 0, errors.Wrap(err, "query newest seq")
	}
	return uint64(seq.Int64), nil
}

// Filter return events with options
func (db *EventDB) Filter(ctx context.Context, filter *Filter) ([]*Event, error) {
	if filter == nil {
		filter = &Filter{}
	}
	var (
		args  []any
		conds []string
	)
	if filter.Range != nil {
		column := "seq"
		switch filter.Range.Unit {
		case Seq, "":
		case Time:
			column = "time"
		default:
			return nil, errors.Errorf("unknown range unit %q", filter.Range.Unit)
		}
		conds = append(conds, column+" >= ?")
		args = append(args, filter.Range.From)
		if filter.Range.To >= filter.Range.From {
			conds = append(conds, column+" <= ?")
			args = append(args, filter.Range.To)
		}
	}
	if filter.Address != nil {
		conds = append(conds, "address = ?")
		args = append(args, filter.Address.Bytes())
	}
	if filter.Name != "" {
		conds = append(conds, "name = ?")
		args = append(args, filter.Name)
	}
	for i, topic := range filter.Topics {
		if topic != nil {
			conds = append(conds, fmt.Sprintf("topic%d = ?", i))
			args = append(args, topic.Bytes())
		}
	}

	stmt := "SELECT seq, idx, time, txID, txOrigin, address, name, topic0, topic1, data FROM event"
	if len(conds) > 0 {
		stmt += " WHERE " + strings.Join(conds, " AND ")
	}
	if filter.Order == DESC {
		stmt += " ORDER BY seq DESC, idx DESC"
	} else {
		stmt += " ORDER BY seq ASC, idx ASC"
	}
	limit, offset := uint64(MaxLimit), uint64(0)
	if filter.Options != nil {
		offset = filter.Options.Offset
		if filter.Options.Limit > 0 && filter.Options.Limit < limit {
			limit = filter.Options.Limit
		}
	}
	stmt += " LIMIT ? OFFSET ?"
	args = append(args, limit, offset)
	return db.query(ctx, stmt, args...)
}

func (db *EventDB) query(ctx context.Context, stmt string, args ...any) ([]*Event, error) {
	rows, err := db.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, errors.Wrap(err, "query events")
	}
	defer rows.Close()

	events := make([]*Event, 0)
	for rows.Next() {
		var (
			event    Event
			txID     []byte
			txOrigin []byte
			address  []byte
			topics   [2][]byte
			data     []byte
		)
		if err := rows.Scan(
			&event.Seq,
			&event.Index,
			&event.Time,
			&txID,
			&txOrigin,
			&address,
			&event.Name,
			&topics[0],
			&topics[1],
			&data,
		); err != nil {
			return nil, errors.Wrap(err, "scan event")
		}
		event.TxID = vf.BytesToBytes32(txID)
		event.TxOrigin = vf.BytesToAddress(txOrigin)
		event.Address = vf.BytesToAddress(address)
		event.Data = data
		for i, topic := range topics {
			if len(topic) > 0 {
				h := vf.BytesToBytes32(topic)
				event.Topics[i] = &h
			}
		}
		events = append(events, &event)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterate events")
	}
	return events, nil
}

// Path return db's directory
func (db *EventDB) Path() string {
	return db.path
}

// Close close sqlite
func (db *EventDB) Close() error {
	return db.db.Close()
}

func topicValue(topic *vf.Bytes32) []byte {
	if topic == nil {
		return nil
	}
	return topic.Bytes()
}
