// Copyright (c) 2026 The VeriFund developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package transactions

import (
	"github.com/pkg/errors"

	"github.com/adysingh5711/VeriFund/tx"
)

// RawTx is a signed transaction in hex.
type RawTx struct {
	Raw string `json:"raw"`
}

func (r *RawTx) decode() (*tx.Transaction, error) {
	if r == nil || r.Raw == "" {
		return nil, errors.New("empty raw transaction")
	}
	return tx.ParseHex(r.Raw)
}
