// Copyright (c) 2026 The VeriFund developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package funding

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/adysingh5711/VeriFund/api/utils"
	"github.com/adysingh5711/VeriFund/builtin"
	"github.com/adysingh5711/VeriFund/builtin/funding"
	"github.com/adysingh5711/VeriFund/state"
)

// Chain gives read access to the committed state.
type Chain interface {
	SnapshotState() (*state.State, func())
}

type Funding struct {
	chain Chain
}

func New(chain Chain) *Funding {
	return &Funding{chain}
}

// funding binds the subsystem to a snapshot, so one response reads one version of the state.
func (f *Funding) funding() (*funding.Funding, func()) {
	st, release := f.chain.SnapshotState()
	return builtin.Funding.WithState(st, nil), release
}

func (f *Funding) getProject(fd *funding.Funding, req *http.Request) (*funding.Project, error) {
	id, err := utils.ParseUint64(mux.Vars(req)["id"], "id")
	if err != nil {
		return nil, err
	}
	p, err := fd.GetProject(id)
	if err != nil {
		return nil, err
	}
	if !p.Exists() {
		return nil, utils.NotFound(errors.New("project not found"))
	}
	return p, nil
}

func (f *Funding) handleGetProject(w http.ResponseWriter, req *http.Request) error {
	fd, release := f.funding()
	defer release()
	p, err := f.getProject(fd, req)
	if err != nil {
		return err
	}
	project := &Project{
		ID:              p.ID,
		Creator:         p.Creator,
		MetadataHash:    p.MetadataHash,
		FundingToken:    p.FundingToken,
		TotalFunding:    p.TotalFunding.String(),
		ReleasedFunding: p.ReleasedFunding.String(),
		Active:          p.Active,
		CreatedAt:       p.CreatedAt,
		Milestones:      make([]*Milestone, 0, p.MilestoneCount),
	}
	for i := range p.MilestoneCount {
		m, err := fd.GetMilestone(p.ID, i)
		if err != nil {
			return err
		}
		project.Milestones = append(project.Milestones, convertMilestone(i, m))
	}
	return utils.WriteJSON(w, project)
}

func (f *Funding) handleGetMilestone(w http.ResponseWriter, req *http.Request) error {
	fd, release := f.funding()
	defer release()
	p, err := f.getProject(fd, req)
	if err != nil {
		return err
	}
	index, err := utils.ParseUint64(mux.Vars(req)["index"], "index")
	if err != nil {
		return err
	}
	if index >= p.MilestoneCount {
		return utils.NotFound(errors.New("milestone not found"))
	}
	m, err := fd.GetMilestone(p.ID, index)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, convertMilestone(index, m))
}

func (f *Funding) handleGetReviewer(w http.ResponseWriter, req *http.Request) error {
	addr, err := utils.ParseAddress(mux.Vars(req)["address"], "address")
	if err != nil {
		return err
	}
	fd, release := f.funding()
	defer release()
	stake, err := fd.GetStake(addr)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, convertReviewer(addr, stake))
}

func (f *Funding) handleGetReviewers(w http.ResponseWriter, req *http.Request) error {
	fd, release := f.funding()
	defer release()
	list, err := fd.Reviewers()
	if err != nil {
		return err
	}
	reviewers := make([]*Reviewer, 0, len(list))
	for _, addr := range list {
		stake, err := fd.GetStake(addr)
		if err != nil {
			return err
		}
		reviewers = append(reviewers, convertReviewer(addr, stake))
	}
	return utils.WriteJSON(w, reviewers)
}

func (f *Funding) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/projects/{id}").Methods(http.MethodGet).Name("GET /funding/projects/{id}").HandlerFunc(utils.WrapHandlerFunc(f.handleGetProject))
	sub.Path("/projects/{id}/milestones/{index}").Methods(http.MethodGet).Name("GET /funding/projects/{id}/milestones/{index}").HandlerFunc(utils.WrapHandlerFunc(f.handleGetMilestone))
	sub.Path("/reviewers").Methods(http.MethodGet).Name("GET /funding/reviewers").HandlerFunc(utils.WrapHandlerFunc(f.handleGetReviewers))
	sub.Path("/reviewers/{address}").Methods(http.MethodGet).Name("GET /funding/reviewers/{address}").HandlerFunc(utils.WrapHandlerFunc(f.handleGetReviewer))
}
