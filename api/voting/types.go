// Copyright (c) 2026 The VeriFund developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package voting

import (
	"github.com/adysingh5711/VeriFund/builtin/voting"
	"github.com/adysingh5711/VeriFund/vf"
)

type Round struct {
	ID                   uint64       `json:"id"`
	StartTime            uint64       `json:"startTime"`
	CommitEndTime        uint64       `json:"commitEndTime"`
	EndTime              uint64       `json:"endTime"`
	BaseCredits          uint64       `json:"baseCredits"`
	TotalCreditsConsumed uint64       `json:"totalCreditsConsumed"`
	Finalized            bool         `json:"finalized"`
	EligibilityRoot      vf.Bytes32   `json:"eligibilityRoot"`
	Phase                voting.Phase `json:"phase"`
}

func convertRound(r *voting.Round, now uint64) *Round {
	return &Round{
		ID:                   r.ID,
		StartTime:            r.StartTime,
		CommitEndTime:        r.CommitEndTime,
		EndTime:              r.EndTime,
		BaseCredits:          r.BaseCredits,
		TotalCreditsConsumed: r.TotalCreditsConsumed,
		Finalized:            r.Finalized,
		EligibilityRoot:      r.EligibilityRoot,
		Phase:                r.PhaseAt(now),
	}
}

type Vote struct {
	Commitment vf.Bytes32 `json:"commitment"`
	Committed  bool       `json:"committed"`
	Revealed   bool       `json:"revealed"`
	Counted    bool       `json:"counted"`
	ProposalID uint64     `json:"proposalId"`
	VoteCount  uint64     `json:"voteCount"`
	Credits    uint64     `json:"credits"`
}

type Result struct {
	TotalVotes     uint64 `json:"totalVotes"`
	QuadraticScore string `json:"quadraticScore"`
	UniqueVoters   uint64 `json:"uniqueVoters"`
}
