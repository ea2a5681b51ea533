// Copyright (c) 2026 The VeriFund developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package reverts

import (
	"errors"
	"fmt"
)

// Kind classifies a revert. It is stable and surfaces in receipts.
type Kind string

func (k Kind) Error() string {
	return string(k)
}

const (
	// phase
	InvalidVotingPhase Kind = "InvalidVotingPhase"
	// integrity
	InvalidCommitment Kind = "InvalidCommitment"
	// policy
	InvalidVoteCount    Kind = "InvalidVoteCount"
	InsufficientCredits Kind = "InsufficientCredits"
	InsufficientStake   Kind = "InsufficientStake"
	InsufficientBalance Kind = "InsufficientBalance"
	InvalidArgument     Kind = "InvalidArgument"
	// state
	AlreadyVoted           Kind = "AlreadyVoted"
	AlreadyReviewed        Kind = "AlreadyReviewed"
	AlreadyStaked          Kind = "AlreadyStaked"
	AlreadyReleased        Kind = "AlreadyReleased"
	Unauthorized           Kind = "Unauthorized"
	InvalidMilestoneStatus Kind = "InvalidMilestoneStatus"
	InvalidRound           Kind = "InvalidRound"
	RoundNotFinalized      Kind = "RoundNotFinalized"
	InvalidProject         Kind = "InvalidProject"
	InvalidMilestone       Kind = "InvalidMilestone"
	FundingLocked          Kind = "FundingLocked"
	InsufficientReviewers  Kind = "InsufficientReviewers"
	LastAdmin              Kind = "LastAdmin"
	Paused                 Kind = "Paused"
	Reentrant              Kind = "Reentrant"
	// eligibility
	NotQualifiedVoter    Kind = "NotQualifiedVoter"
	UnauthorizedReviewer Kind = "UnauthorizedReviewer"
	// transaction level
	BadNonce      Kind = "BadNonce"
	UnknownMethod Kind = "UnknownMethod"
)

// ErrRevert aborts the enclosing transaction without changing state.
type ErrRevert struct {
	kind    Kind
	message string
}

// New creates a revert of the given kind.
func New(kind Kind, format string, args ...any) *ErrRevert {
	return &ErrRevert{
		kind:    kind,
		message: fmt.Sprintf(format, args...),
	}
}

func (e *ErrRevert) Error() string {
	if e.message == "" {
		return string(e.kind)
	}
	return string(e.kind) + ": " + e.message
}

// Kind returns the kind of the revert.
func (e *ErrRevert) Kind() Kind {
	return e.kind
}

// Message returns the human readable detail.
func (e *ErrRevert) Message() string {
	return e.message
}

// Is makes errors.Is(err, reverts.AlreadyVoted) match reverts of that kind.
func (e *ErrRevert) Is(target error) bool {
	k, ok := target.(Kind)
	return ok && k == e.kind
}

// IsRevertErr reports whether err is a revert, as opposed to an infrastructure failure.
func IsRevertErr(err any) bool {
	if err == nil {
		return false
	}
	e, ok := err.(error)
	if !ok {
		return false
	}
	var ve *ErrRevert
	if errors.As(e, &ve) {
		return ve != nil
	}
	return false
}

// KindOf returns the revert kind of err, or "" if err is not a revert.
func KindOf(err error) Kind {
	var ve *ErrRevert
	if errors.As(err, &ve) && ve != nil {
		return ve.kind
	}
	return ""
}
