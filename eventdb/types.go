// Copyright (c) 2026 The VeriFund developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package eventdb

import (
	"encoding/json"

	"github.com/adysingh5711/VeriFund/tx"
	"github.com/adysingh5711/VeriFund/vf"
)

type RangeType string

const (
	Seq  RangeType = "seq"
	Time RangeType = "time"
)

type OrderType string

const (
	ASC  OrderType = "asc"
	DESC OrderType = "desc"
)

// MaxLimit caps the page size of one query.
const MaxLimit = 1000

type Range struct {
	Unit RangeType `json:"unit"`
	From uint64    `json:"from"`
	To   uint64    `json:"to"`
}

type Options struct {
	Offset uint64 `json:"offset"`
	Limit  uint64 `json:"limit"`
}

// Filter selects events. Nil fields match everything.
type Filter struct {
	Address *vf.Address    `json:"address"`
	Name    string         `json:"name"`
	Topics  [2]*vf.Bytes32 `json:"topics"`
	Range   *Range         `json:"range"`
	Order   OrderType      `json:"order"`
	Options *Options       `json:"options"`
}

// Event is an indexed event with its position in the log.
type Event struct {
	Seq      uint64          `json:"seq"`
	Index    uint32          `json:"index"`
	Time     uint64          `json:"time"`
	TxID     vf.Bytes32      `json:"txId"`
	TxOrigin vf.Address      `json:"txOrigin"`
	Address  vf.Address      `json:"address"`
	Name     string          `json:"name"`
	Topics   [2]*vf.Bytes32  `json:"topics"`
	Data     json.RawMessage `json:"data"`
}

// NewEvents flattens the events of a receipt at log position seq.
func NewEvents(seq uint64, receipt *tx.Receipt) []*Event {
	events := make([]*Event, 0, len(receipt.Events))
	for i, ev := range receipt.Events {
		e := &Event{
			Seq:      seq,
			Index:    uint32(i),
			Time:     receipt.Time,
			TxID:     receipt.TxID,
			TxOrigin: receipt.Origin,
			Address:  ev.Address,
			Name:     ev.Name,
			Data:     ev.Data,
		}
		for j := 0; j < len(ev.Topics) && j < len(e.Topics); j++ {
			topic := ev.Topics[j]
			e.Topics[j] = &topic
		}
		events = append(events, e)
	}
	return events
}
