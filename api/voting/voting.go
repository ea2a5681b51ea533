// Copyright (c) 2026 The VeriFund developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package voting

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/adysingh5711/VeriFund/api/utils"
	"github.com/adysingh5711/VeriFund/builtin"
	"github.com/adysingh5711/VeriFund/builtin/voting"
	"github.com/adysingh5711/VeriFund/state"
)

// Chain gives read access to the committed state.
type Chain interface {
	SnapshotState() (*state.State, func())
	Now() uint64
}

type Voting struct {
	chain Chain
}

func New(chain Chain) *Voting {
	return &Voting{chain}
}

func (v *Voting) voting() (*voting.Voting, func()) {
	st, release := v.chain.SnapshotState()
	return builtin.Voting.WithState(st, nil), release
}

func (v *Voting) getRound(vt *voting.Voting, req *http.Request) (*voting.Round, error) {
	id, err := utils.ParseUint64(mux.Vars(req)["id"], "id")
	if err != nil {
		return nil, err
	}
	round, err := vt.GetRound(id)
	if err != nil {
		return nil, err
	}
	if !round.Exists() {
		return nil, utils.NotFound(errors.New("round not found"))
	}
	return round, nil
}

func (v *Voting) handleGetCurrentRound(w http.ResponseWriter, req *http.Request) error {
	vt, release := v.voting()
	defer release()
	round, err := vt.CurrentRound()
	if err != nil {
		return err
	}
	if !round.Exists() {
		return utils.NotFound(errors.New("no round started"))
	}
	return utils.WriteJSON(w, convertRound(round, v.chain.Now()))
}

func (v *Voting) handleGetRound(w http.ResponseWriter, req *http.Request) error {
	vt, release := v.voting()
	defer release()
	round, err := v.getRound(vt, req)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, convertRound(round, v.chain.Now()))
}

func (v *Voting) handleGetPhase(w http.ResponseWriter, req *http.Request) error {
	vt, release := v.voting()
	defer release()
	round, err := v.getRound(vt, req)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, utils.M{"phase": round.PhaseAt(v.chain.Now())})
}

func (v *Voting) handleGetVote(w http.ResponseWriter, req *http.Request) error {
	vt, release := v.voting()
	defer release()
	round, err := v.getRound(vt, req)
	if err != nil {
		return err
	}
	voter, err := utils.ParseAddress(mux.Vars(req)["address"], "address")
	if err != nil {
		return err
	}
	vote, err := vt.GetVote(round.ID, voter)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, &Vote{
		Commitment: vote.Commitment,
		Committed:  vote.Committed,
		Revealed:   vote.Revealed,
		Counted:    vote.Counted,
		ProposalID: vote.ProposalID,
		VoteCount:  vote.RevealedCount,
		Credits:    vote.Credits,
	})
}

func (v *Voting) handleGetResult(w http.ResponseWriter, req *http.Request) error {
	vt, release := v.voting()
	defer release()
	round, err := v.getRound(vt, req)
	if err != nil {
		return err
	}
	proposal, err := utils.ParseUint64(mux.Vars(req)["proposal"], "proposal")
	if err != nil {
		return err
	}
	res, err := vt.GetResult(round.ID, proposal)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, &Result{
		TotalVotes:     res.TotalVotes,
		QuadraticScore: res.QuadraticScore.String(),
		UniqueVoters:   res.UniqueVoters,
	})
}

func (v *Voting) handleGetReputation(w http.ResponseWriter, req *http.Request) error {
	addr, err := utils.ParseAddress(mux.Vars(req)["address"], "address")
	if err != nil {
		return err
	}
	vt, release := v.voting()
	defer release()
	rep, err := vt.Reputation(addr)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, utils.M{"address": addr, "reputation": rep})
}

func (v *Voting) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/rounds/current").Methods(http.MethodGet).Name("GET /voting/rounds/current").HandlerFunc(utils.WrapHandlerFunc(v.handleGetCurrentRound))
	sub.Path("/rounds/{id}").Methods(http.MethodGet).Name("GET /voting/rounds/{id}").HandlerFunc(utils.WrapHandlerFunc(v.handleGetRound))
	sub.Path("/rounds/{id}/phase").Methods(http.MethodGet).Name("GET /voting/rounds/{id}/phase").HandlerFunc(utils.WrapHandlerFunc(v.handleGetPhase))
	sub.Path("/rounds/{id}/voters/{address}").Methods(http.MethodGet).Name("GET /voting/rounds/{id}/voters/{address}").HandlerFunc(utils.WrapHandlerFunc(v.handleGetVote))
	sub.Path("/rounds/{id}/proposals/{proposal}").Methods(http.MethodGet).Name("GET /voting/rounds/{id}/proposals/{proposal}").HandlerFunc(utils.WrapHandlerFunc(v.handleGetResult))
	sub.Path("/reputation/{address}").Methods(http.MethodGet).Name("GET /voting/reputation/{address}").HandlerFunc(utils.WrapHandlerFunc(v.handleGetReputation))
}
