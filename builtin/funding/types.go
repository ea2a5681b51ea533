// Copyright (c) 2026 The VeriFund developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package funding

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/adysingh5711/VeriFund/vf"
)

// MilestoneStatus is the state of a milestone.
type MilestoneStatus uint8

const (
	Pending MilestoneStatus = iota
	InReview
	Approved
	Rejected
	Released
)

func (s MilestoneStatus) String() string {
	switch s {
	case Pending:
		return "pending"
	case InReview:
		return "in-review"
	case Approved:
		return "approved"
	case Rejected:
		return "rejected"
	case Released:
		return "released"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s MilestoneStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *MilestoneStatus) UnmarshalText(text []byte) error {
	for v := Pending; v <= Released; v++ {
		if v.String() == string(text) {
			*s = v
			return nil
		}
	}
	return errors.Errorf("unknown milestone status %q", text)
}

// Project is a funded project made of ordered milestones.
type Project struct {
	ID              uint64
	Creator         vf.Address
	MetadataHash    vf.Bytes32
	FundingToken    vf.Address
	TotalFunding    *big.Int
	ReleasedFunding *big.Int
	MilestoneCount  uint64
	Active          bool
	CreatedAt       uint64
}

// Exists reports whether the project was created.
func (p *Project) Exists() bool {
	return p.ID != 0
}

// Milestone is a stage of a project paid out after review.
type Milestone struct {
	Description       string
	FundingPercentage uint64
	FundingAmount     *big.Int
	Deadline          uint64
	DeliverableHash   vf.Bytes32
	Status            MilestoneStatus
	AssignedReviewers []vf.Address
	ApprovalCount     uint64
	RejectionCount    uint64
	SubmissionTime    uint64
	AutoReleaseTime   uint64
	Submissions       uint64
}

// HasReviewer reports whether addr sits on the current panel.
func (m *Milestone) HasReviewer(addr vf.Address) bool {
	for _, r := range m.AssignedReviewers {
		if r == addr {
			return true
		}
	}
	return false
}

// RequiredApprovals is ceil(panel size * ApprovalThreshold / 100).
func (m *Milestone) RequiredApprovals() uint64 {
	n := uint64(len(m.AssignedReviewers)) * vf.ApprovalThreshold
	return (n + vf.TotalPercentage - 1) / vf.TotalPercentage
}

// Review is the verdict of one panel member on one submission.
type Review struct {
	Reviewed bool
	Approved bool
	Comments string
	Time     uint64
}

// ReviewerStake is the collateral record of a reviewer.
type ReviewerStake struct {
	StakedAmount      *big.Int
	TotalReviews      uint64
	SuccessfulReviews uint64
	Active            bool
	StakedAt          uint64
}

type projectCreatedEvent struct {
	ProjectID    uint64     `json:"projectId"`
	Creator      vf.Address `json:"creator"`
	MetadataHash vf.Bytes32 `json:"metadataHash"`
	FundingToken vf.Address `json:"fundingToken"`
	Milestones   uint64     `json:"milestones"`
}

type projectFundedEvent struct {
	ProjectID    uint64     `json:"projectId"`
	Funder       vf.Address `json:"funder"`
	Amount       string     `json:"amount"`
	TotalFunding string     `json:"totalFunding"`
}

type milestoneSubmittedEvent struct {
	ProjectID       uint64       `json:"projectId"`
	Index           uint64       `json:"index"`
	DeliverableHash vf.Bytes32   `json:"deliverableHash"`
	Reviewers       []vf.Address `json:"reviewers"`
}

type milestoneReviewedEvent struct {
	ProjectID uint64     `json:"projectId"`
	Index     uint64     `json:"index"`
	Reviewer  vf.Address `json:"reviewer"`
	Approved  bool       `json:"approved"`
	Comments  string     `json:"comments"`
}

type milestoneStatusEvent struct {
	ProjectID uint64          `json:"projectId"`
	Index     uint64          `json:"index"`
	Status    MilestoneStatus `json:"status"`
}

type milestoneReleasedEvent struct {
	ProjectID   uint64     `json:"projectId"`
	Index       uint64     `json:"index"`
	Creator     vf.Address `json:"creator"`
	Amount      string     `json:"amount"`
	PlatformFee string     `json:"platformFee"`
	AutoRelease bool       `json:"autoRelease"`
}

type reviewerStakedEvent struct {
	Reviewer vf.Address `json:"reviewer"`
	Amount   string     `json:"amount"`
	Token    vf.Address `json:"token"`
}
