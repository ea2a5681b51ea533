// Copyright (c) 2026 The VeriFund developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package transactions

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/adysingh5711/VeriFund/api/utils"
	"github.com/adysingh5711/VeriFund/builtin/reverts"
	"github.com/adysingh5711/VeriFund/tx"
	"github.com/adysingh5711/VeriFund/vf"
)

// Sequencer applies transactions and keeps their receipts.
type Sequencer interface {
	Submit(ctx context.Context, trx *tx.Transaction) (*tx.Receipt, error)
	Receipt(id vf.Bytes32) (*tx.Receipt, error)
	IsNotFound(err error) bool
}

type Transactions struct {
	seq Sequencer
}

func New(seq Sequencer) *Transactions {
	return &Transactions{seq}
}

func (t *Transactions) handleSendTransaction(w http.ResponseWriter, req *http.Request) error {
	var raw *RawTx
	if err := utils.ParseJSON(req.Body, &raw); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	trx, err := raw.decode()
	if err != nil {
		return utils.BadRequest(errors.WithMessage(err, "raw"))
	}
	receipt, err := t.seq.Submit(req.Context(), trx)
	if err != nil {
		if reverts.IsRevertErr(err) {
			return utils.BadRequest(errors.WithMessage(err, "rejected"))
		}
		return err
	}
	return utils.WriteJSON(w, receipt)
}

func (t *Transactions) handleGetReceipt(w http.ResponseWriter, req *http.Request) error {
	id, err := vf.ParseBytes32(mux.Vars(req)["id"])
	if err != nil {
		return utils.BadRequest(errors.WithMessage(err, "id"))
	}
	receipt, err := t.seq.Receipt(id)
	if err != nil {
		if t.seq.IsNotFound(err) {
			return utils.NotFound(errors.New("transaction not found"))
		}
		return err
	}
	return utils.WriteJSON(w, receipt)
}

func (t *Transactions) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").Methods(http.MethodPost).Name("POST /transactions").HandlerFunc(utils.WrapHandlerFunc(t.handleSendTransaction))
	sub.Path("/{id}").Methods(http.MethodGet).Name("GET /transactions/{id}").HandlerFunc(utils.WrapHandlerFunc(t.handleGetReceipt))
}
