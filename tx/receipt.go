// Copyright (c) 2026 The VeriFund developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tx

import (
	"encoding/json"

	"github.com/adysingh5711/VeriFund/vf"
)

// Event is a log record produced by a transaction.
type Event struct {
	Address vf.Address      `json:"address"`
	Name    string          `json:"name"`
	Topics  []vf.Bytes32    `json:"topics"`
	Data    json.RawMessage `json:"data"`
}

// Receipt represents the results of a transaction.
type Receipt struct {
	TxID     vf.Bytes32 `json:"txId"`
	Origin   vf.Address `json:"origin"`
	Method   string     `json:"method"`
	Seq      uint64     `json:"seq"`
	Time     uint64     `json:"time"`
	Reverted bool       `json:"reverted"`
	Kind     string     `json:"kind,omitempty"`
	Error    string     `json:"error,omitempty"`
	Events   []*Event   `json:"events"`
}
