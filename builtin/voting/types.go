// Copyright (c) 2026 The VeriFund developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package voting

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/adysingh5711/VeriFund/vf"
)

// Phase of a voting round, derived from the logical clock.
type Phase uint8

const (
	NoRound Phase = iota
	Commit
	Reveal
	Closed
	Finalized
)

func (p Phase) String() string {
	switch p {
	case NoRound:
		return "none"
	case Commit:
		return "commit"
	case Reveal:
		return "reveal"
	case Closed:
		return "closed"
	case Finalized:
		return "finalized"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Phase) UnmarshalText(text []byte) error {
	for v := NoRound; v <= Finalized; v++ {
		if v.String() == string(text) {
			*p = v
			return nil
		}
	}
	return errors.Errorf("unknown phase %q", text)
}

// Round is a voting round.
type Round struct {
	ID                   uint64
	StartTime            uint64
	CommitEndTime        uint64
	EndTime              uint64
	BaseCredits          uint64
	TotalCreditsConsumed uint64
	Finalized            bool
	EligibilityRoot      vf.Bytes32
}

// Exists reports whether the round was ever started.
func (r *Round) Exists() bool {
	return r.ID != 0
}

// PhaseAt returns the phase of the round at the given time.
func (r *Round) PhaseAt(now uint64) Phase {
	switch {
	case !r.Exists():
		return NoRound
	case r.Finalized:
		return Finalized
	case now < r.CommitEndTime:
		return Commit
	case now < r.EndTime:
		return Reveal
	default:
		return Closed
	}
}

// Vote is the ballot of one voter in one round.
type Vote struct {
	Commitment    vf.Bytes32
	Committed     bool
	Revealed      bool
	Counted       bool
	ProposalID    uint64
	RevealedCount uint64
	Credits       uint64
}

// ProposalResult aggregates the revealed votes of a proposal.
type ProposalResult struct {
	TotalVotes     uint64
	QuadraticScore *big.Int
	UniqueVoters   uint64
}

type roundStartedEvent struct {
	RoundID         uint64     `json:"roundId"`
	StartTime       uint64     `json:"startTime"`
	CommitEndTime   uint64     `json:"commitEndTime"`
	EndTime         uint64     `json:"endTime"`
	BaseCredits     uint64     `json:"baseCredits"`
	EligibilityRoot vf.Bytes32 `json:"eligibilityRoot"`
}

type voteCommittedEvent struct {
	RoundID    uint64     `json:"roundId"`
	Voter      vf.Address `json:"voter"`
	Commitment vf.Bytes32 `json:"commitment"`
}

type voteRevealedEvent struct {
	RoundID    uint64     `json:"roundId"`
	Voter      vf.Address `json:"voter"`
	ProposalID uint64     `json:"proposalId"`
	VoteCount  uint64     `json:"voteCount"`
	Credits    uint64     `json:"credits"`
}

type roundFinalizedEvent struct {
	RoundID              uint64 `json:"roundId"`
	TotalCreditsConsumed uint64 `json:"totalCreditsConsumed"`
}
