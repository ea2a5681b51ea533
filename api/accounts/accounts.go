// Copyright (c) 2026 The VeriFund developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package accounts

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/adysingh5711/VeriFund/api/utils"
	"github.com/adysingh5711/VeriFund/builtin"
	"github.com/adysingh5711/VeriFund/builtin/access"
	"github.com/adysingh5711/VeriFund/runtime"
	"github.com/adysingh5711/VeriFund/state"
)

// Chain gives read access to the committed state.
type Chain interface {
	SnapshotState() (*state.State, func())
}

// Accounts serves capabilities, token balances and nonces.
type Accounts struct {
	chain Chain
}

func New(chain Chain) *Accounts {
	return &Accounts{chain}
}

func (a *Accounts) handleGetPaused(w http.ResponseWriter, req *http.Request) error {
	st, release := a.chain.SnapshotState()
	defer release()
	paused, err := builtin.Access.WithState(st, nil).IsPaused()
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, utils.M{"paused": paused})
}

func (a *Accounts) handleGetCapabilities(w http.ResponseWriter, req *http.Request) error {
	addr, err := utils.ParseAddress(mux.Vars(req)["address"], "address")
	if err != nil {
		return err
	}
	st, release := a.chain.SnapshotState()
	defer release()
	acc := builtin.Access.WithState(st, nil)
	caps := utils.M{"address": addr}
	for _, c := range []access.Capability{access.Admin, access.Reviewer} {
		ok, err := acc.HasCapability(addr, c)
		if err != nil {
			return err
		}
		caps[string(c)] = ok
	}
	return utils.WriteJSON(w, caps)
}

func (a *Accounts) handleGetBalance(w http.ResponseWriter, req *http.Request) error {
	token, err := utils.ParseToken(mux.Vars(req)["token"])
	if err != nil {
		return err
	}
	holder, err := utils.ParseAddress(mux.Vars(req)["address"], "address")
	if err != nil {
		return err
	}
	st, release := a.chain.SnapshotState()
	defer release()
	bal, err := builtin.Ledger.WithState(st, nil).Balance(token, holder)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, utils.M{"token": token, "address": holder, "balance": bal.String()})
}

func (a *Accounts) handleGetNonce(w http.ResponseWriter, req *http.Request) error {
	addr, err := utils.ParseAddress(mux.Vars(req)["address"], "address")
	if err != nil {
		return err
	}
	st, release := a.chain.SnapshotState()
	defer release()
	nonce, err := runtime.New(st).NextNonce(addr)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, utils.M{"address": addr, "nonce": nonce})
}

// Mount registers the access, ledger and nonce routes under their prefixes.
func (a *Accounts) Mount(root *mux.Router, accessPrefix, ledgerPrefix, noncePrefix string) {
	sub := root.PathPrefix(accessPrefix).Subrouter()
	sub.Path("/paused").Methods(http.MethodGet).Name("GET /access/paused").HandlerFunc(utils.WrapHandlerFunc(a.handleGetPaused))
	sub.Path("/{address}").Methods(http.MethodGet).Name("GET /access/{address}").HandlerFunc(utils.WrapHandlerFunc(a.handleGetCapabilities))

	sub = root.PathPrefix(ledgerPrefix).Subrouter()
	sub.Path("/{token}/{address}").Methods(http.MethodGet).Name("GET /ledger/{token}/{address}").HandlerFunc(utils.WrapHandlerFunc(a.handleGetBalance))

	sub = root.PathPrefix(noncePrefix).Subrouter()
	sub.Path("/{address}").Methods(http.MethodGet).Name("GET /nonces/{address}").HandlerFunc(utils.WrapHandlerFunc(a.handleGetNonce))
}
