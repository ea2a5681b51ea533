// Copyright (c) 2026 The VeriFund developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tx

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/pkg/errors"

	"github.com/adysingh5711/VeriFund/builtin/eligibility"
	"github.com/adysingh5711/VeriFund/vf"
)

// Method names.
const (
	MethodStartRound       = "startRound"
	MethodCommitVote       = "commitVote"
	MethodRevealVote       = "revealVote"
	MethodFinalizeRound    = "finalizeRound"
	MethodCreateProject    = "createProject"
	MethodFundProject      = "fundProject"
	MethodSubmitMilestone  = "submitMilestone"
	MethodReviewMilestone  = "reviewMilestone"
	MethodReleaseMilestone = "releaseMilestoneFunds"
	MethodRejectMilestone  = "rejectMilestone"
	MethodStakeAsReviewer  = "stakeAsReviewer"
	MethodTransfer         = "transfer"
	MethodGrantCapability  = "grantCapability"
	MethodRevokeCapability = "revokeCapability"
	MethodPause            = "pause"
	MethodUnpause          = "unpause"
)

type StartRoundArgs struct {
	CommitDuration  uint64     `json:"commitDuration"`
	RevealDuration  uint64     `json:"revealDuration"`
	BaseCredits     uint64     `json:"baseCredits"`
	EligibilityRoot vf.Bytes32 `json:"eligibilityRoot"`
}

type CommitVoteArgs struct {
	Commitment vf.Bytes32        `json:"commitment"`
	Proof      eligibility.Proof `json:"proof"`
}

type RevealVoteArgs struct {
	ProposalID uint64        `json:"proposalId"`
	VoteCount  uint64        `json:"voteCount"`
	Nonce      hexutil.Bytes `json:"nonce"`
}

type CreateProjectArgs struct {
	MetadataHash vf.Bytes32 `json:"metadataHash"`
	FundingToken vf.Address `json:"fundingToken"`
	Descriptions []string   `json:"descriptions"`
	Percentages  []uint64   `json:"percentages"`
	Deadlines    []uint64   `json:"deadlines"`
}

type FundProjectArgs struct {
	ProjectID uint64   `json:"projectId"`
	Amount    *big.Int `json:"amount"`
}

type SubmitMilestoneArgs struct {
	ProjectID       uint64     `json:"projectId"`
	Index           uint64     `json:"index"`
	DeliverableHash vf.Bytes32 `json:"deliverableHash"`
}

type ReviewMilestoneArgs struct {
	ProjectID uint64 `json:"projectId"`
	Index     uint64 `json:"index"`
	Approved  bool   `json:"approved"`
	Comments  string `json:"comments"`
}

// MilestoneArgs addresses one milestone, for release and rejection.
type MilestoneArgs struct {
	ProjectID uint64 `json:"projectId"`
	Index     uint64 `json:"index"`
}

type StakeArgs struct {
	Amount *big.Int `json:"amount"`
}

type TransferArgs struct {
	Token  vf.Address `json:"token"`
	To     vf.Address `json:"to"`
	Amount *big.Int   `json:"amount"`
}

type CapabilityArgs struct {
	Who        vf.Address `json:"who"`
	Capability string     `json:"capability"`
}

// NoArgs is the argument of methods without parameters.
type NoArgs struct{}

var argsFactory = map[string]func() any{
	MethodStartRound:       func() any { return new(StartRoundArgs) },
	MethodCommitVote:       func() any { return new(CommitVoteArgs) },
	MethodRevealVote:       func() any { return new(RevealVoteArgs) },
	MethodFinalizeRound:    func() any { return new(NoArgs) },
	MethodCreateProject:    func() any { return new(CreateProjectArgs) },
	MethodFundProject:      func() any { return new(FundProjectArgs) },
	MethodSubmitMilestone:  func() any { return new(SubmitMilestoneArgs) },
	MethodReviewMilestone:  func() any { return new(ReviewMilestoneArgs) },
	MethodReleaseMilestone: func() any { return new(MilestoneArgs) },
	MethodRejectMilestone:  func() any { return new(MilestoneArgs) },
	MethodStakeAsReviewer:  func() any { return new(StakeArgs) },
	MethodTransfer:         func() any { return new(TransferArgs) },
	MethodGrantCapability:  func() any { return new(CapabilityArgs) },
	MethodRevokeCapability: func() any { return new(CapabilityArgs) },
	MethodPause:            func() any { return new(NoArgs) },
	MethodUnpause:          func() any { return new(NoArgs) },
}

// NewArgs returns a pointer to a zero argument struct of method.
func NewArgs(method string) (any, error) {
	f, ok := argsFactory[method]
	if !ok {
		return nil, errors.Errorf("unknown method %q", method)
	}
	return f(), nil
}

// Methods returns all known method names.
func Methods() []string {
	names := make([]string, 0, len(argsFactory))
	for name := range argsFactory {
		names = append(names, name)
	}
	return names
}
