// Copyright (c) 2026 The VeriFund developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package runtime

import (
	"github.com/pkg/errors"

	"github.com/adysingh5711/VeriFund/builtin/access"
	"github.com/adysingh5711/VeriFund/builtin/reverts"
	"github.com/adysingh5711/VeriFund/tx"
	"github.com/adysingh5711/VeriFund/vf"
)

type handler func(rt *Runtime, origin vf.Address, now uint64, args any) error

// bind adapts a typed handler to the dispatch table.
func bind[A any](f func(rt *Runtime, origin vf.Address, now uint64, args *A) error) handler {
	return func(rt *Runtime, origin vf.Address, now uint64, args any) error {
		a, ok := args.(*A)
		if !ok || a == nil {
			return errors.Errorf("unexpected args type %T", args)
		}
		return f(rt, origin, now, a)
	}
}

var handlers = map[string]handler{
	tx.MethodStartRound: bind(func(rt *Runtime, origin vf.Address, now uint64, a *tx.StartRoundArgs) error {
		_, err := rt.builtins.Voting.StartRound(origin, now, a.CommitDuration, a.RevealDuration, a.BaseCredits, a.EligibilityRoot)
		return err
	}),
	tx.MethodCommitVote: bind(func(rt *Runtime, origin vf.Address, now uint64, a *tx.CommitVoteArgs) error {
		return rt.builtins.Voting.CommitVote(origin, now, a.Commitment, a.Proof)
	}),
	tx.MethodRevealVote: bind(func(rt *Runtime, origin vf.Address, now uint64, a *tx.RevealVoteArgs) error {
		return rt.builtins.Voting.RevealVote(origin, now, a.ProposalID, a.VoteCount, a.Nonce)
	}),
	tx.MethodFinalizeRound: bind(func(rt *Runtime, origin vf.Address, now uint64, _ *tx.NoArgs) error {
		return rt.builtins.Voting.FinalizeRound(origin, now)
	}),
	tx.MethodCreateProject: bind(func(rt *Runtime, origin vf.Address, now uint64, a *tx.CreateProjectArgs) error {
		_, err := rt.builtins.Funding.CreateProject(origin, now, a.MetadataHash, a.FundingToken, a.Descriptions, a.Percentages, a.Deadlines)
		return err
	}),
	tx.MethodFundProject: bind(func(rt *Runtime, origin vf.Address, now uint64, a *tx.FundProjectArgs) error {
		return rt.builtins.Funding.FundProject(origin, now, a.ProjectID, a.Amount)
	}),
	tx.MethodSubmitMilestone: bind(func(rt *Runtime, origin vf.Address, now uint64, a *tx.SubmitMilestoneArgs) error {
		return rt.builtins.Funding.SubmitMilestone(origin, now, a.ProjectID, a.Index, a.DeliverableHash)
	}),
	tx.MethodReviewMilestone: bind(func(rt *Runtime, origin vf.Address, now uint64, a *tx.ReviewMilestoneArgs) error {
		return rt.builtins.Funding.ReviewMilestone(origin, now, a.ProjectID, a.Index, a.Approved, a.Comments)
	}),
	tx.MethodReleaseMilestone: bind(func(rt *Runtime, origin vf.Address, now uint64, a *tx.MilestoneArgs) error {
		return rt.builtins.Funding.ReleaseMilestoneFunds(origin, now, a.ProjectID, a.Index)
	}),
	tx.MethodRejectMilestone: bind(func(rt *Runtime, origin vf.Address, now uint64, a *tx.MilestoneArgs) error {
		return rt.builtins.Funding.RejectMilestone(origin, now, a.ProjectID, a.Index)
	}),
	tx.MethodStakeAsReviewer: bind(func(rt *Runtime, origin vf.Address, now uint64, a *tx.StakeArgs) error {
		return rt.builtins.Funding.StakeAsReviewer(origin, now, a.Amount)
	}),
	tx.MethodTransfer: bind(func(rt *Runtime, origin vf.Address, _ uint64, a *tx.TransferArgs) error {
		if err := rt.builtins.Access.RequireNotPaused(); err != nil {
			return err
		}
		if isBuiltin(a.To) {
			return reverts.New(reverts.InvalidArgument, "transfer to a builtin address")
		}
		return rt.builtins.Ledger.Transfer(a.Token, origin, a.To, a.Amount)
	}),
	tx.MethodGrantCapability: bind(func(rt *Runtime, origin vf.Address, _ uint64, a *tx.CapabilityArgs) error {
		c, err := access.ParseCapability(a.Capability)
		if err != nil {
			return err
		}
		return rt.builtins.Access.GrantCapability(origin, a.Who, c)
	}),
	tx.MethodRevokeCapability: bind(func(rt *Runtime, origin vf.Address, _ uint64, a *tx.CapabilityArgs) error {
		c, err := access.ParseCapability(a.Capability)
		if err != nil {
			return err
		}
		return rt.builtins.Access.RevokeCapability(origin, a.Who, c)
	}),
	tx.MethodPause: bind(func(rt *Runtime, origin vf.Address, _ uint64, _ *tx.NoArgs) error {
		return rt.builtins.Access.Pause(origin)
	}),
	tx.MethodUnpause: bind(func(rt *Runtime, origin vf.Address, _ uint64, _ *tx.NoArgs) error {
		return rt.builtins.Access.Unpause(origin)
	}),
}
