// Copyright (c) 2026 The VeriFund developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package funding

import (
	"github.com/adysingh5711/VeriFund/builtin/funding"
	"github.com/adysingh5711/VeriFund/vf"
)

type Project struct {
	ID              uint64       `json:"id"`
	Creator         vf.Address   `json:"creator"`
	MetadataHash    vf.Bytes32   `json:"metadataHash"`
	FundingToken    vf.Address   `json:"fundingToken"`
	TotalFunding    string       `json:"totalFunding"`
	ReleasedFunding string       `json:"releasedFunding"`
	Active          bool         `json:"active"`
	CreatedAt       uint64       `json:"createdAt"`
	Milestones      []*Milestone `json:"milestones"`
}

type Milestone struct {
	Index             uint64                  `json:"index"`
	Description       string                  `json:"description"`
	FundingPercentage uint64                  `json:"fundingPercentage"`
	FundingAmount     string                  `json:"fundingAmount"`
	Deadline          uint64                  `json:"deadline"`
	DeliverableHash   vf.Bytes32              `json:"deliverableHash"`
	Status            funding.MilestoneStatus `json:"status"`
	Reviewers         []vf.Address            `json:"reviewers"`
	ApprovalCount     uint64                  `json:"approvalCount"`
	RejectionCount    uint64                  `json:"rejectionCount"`
	RequiredApprovals uint64                  `json:"requiredApprovals"`
	SubmissionTime    uint64                  `json:"submissionTime"`
	AutoReleaseTime   uint64                  `json:"autoReleaseTime"`
	Submissions       uint64                  `json:"submissions"`
}

type Reviewer struct {
	Address           vf.Address `json:"address"`
	StakedAmount      string     `json:"stakedAmount"`
	TotalReviews      uint64     `json:"totalReviews"`
	SuccessfulReviews uint64     `json:"successfulReviews"`
	Active            bool       `json:"active"`
	StakedAt          uint64     `json:"stakedAt"`
}

func convertMilestone(index uint64, m *funding.Milestone) *Milestone {
	reviewers := m.AssignedReviewers
	if reviewers == nil {
		reviewers = []vf.Address{}
	}
	return &Milestone{
		Index:             index,
		Description:       m.Description,
		FundingPercentage: m.FundingPercentage,
		FundingAmount:     m.FundingAmount.String(),
		Deadline:          m.Deadline,
		DeliverableHash:   m.DeliverableHash,
		Status:            m.Status,
		Reviewers:         reviewers,
		ApprovalCount:     m.ApprovalCount,
		RejectionCount:    m.RejectionCount,
		RequiredApprovals: m.RequiredApprovals(),
		SubmissionTime:    m.SubmissionTime,
		AutoReleaseTime:   m.AutoReleaseTime,
		Submissions:       m.Submissions,
	}
}

func convertReviewer(addr vf.Address, s *funding.ReviewerStake) *Reviewer {
	return &Reviewer{
		Address:           addr,
		StakedAmount:      s.StakedAmount.String(),
		TotalReviews:      s.TotalReviews,
		SuccessfulReviews: s.SuccessfulReviews,
		Active:            s.Active,
		StakedAt:          s.StakedAt,
	}
}
