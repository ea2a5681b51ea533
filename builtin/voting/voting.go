// Copyright (c) 2026 The VeriFund developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package voting

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/adysingh5711/VeriFund/builtin/access"
	"github.com/adysingh5711/VeriFund/builtin/eligibility"
	"github.com/adysingh5711/VeriFund/builtin/reverts"
	"github.com/adysingh5711/VeriFund/builtin/solidity"
	"github.com/adysingh5711/VeriFund/log"
	"github.com/adysingh5711/VeriFund/state"
	"github.com/adysingh5711/VeriFund/vf"
)

var logger = log.WithContext("pkg", "voting")

var (
	slotCurrentRound = nameToSlot("current-round")
	slotRounds       = nameToSlot("rounds")
	slotVotes        = nameToSlot("votes")
	slotResults      = nameToSlot("results")
	slotReputation   = nameToSlot("reputation")
	slotLock         = nameToSlot("lock")
)

// Voting runs quadratic voting rounds with commit-reveal ballots.
type Voting struct {
	ctx          *solidity.Context
	access       *access.Access
	currentRound *solidity.Uint64
	rounds       *solidity.Mapping[vf.Bytes32, *Round]
	votes        *solidity.Mapping[vf.Bytes32, *Vote]
	results      *solidity.Mapping[vf.Bytes32, *ProposalResult]
	reputation   *solidity.Mapping[vf.Address, uint64]
	guard        *solidity.ReentrancyGuard
}

// New create a new instance.
func New(addr vf.Address, state *state.State, acc *access.Access, sink solidity.EventSink) *Voting {
	ctx := solidity.NewContext(addr, state, sink)
	return &Voting{
		ctx:          ctx,
		access:       acc,
		currentRound: solidity.NewUint64(ctx, slotCurrentRound),
		rounds:       solidity.NewMapping[vf.Bytes32, *Round](ctx, slotRounds),
		votes:        solidity.NewMapping[vf.Bytes32, *Vote](ctx, slotVotes),
		results:      solidity.NewMapping[vf.Bytes32, *ProposalResult](ctx, slotResults),
		reputation:   solidity.NewMapping[vf.Address, uint64](ctx, slotReputation),
		guard:        solidity.NewReentrancyGuard(ctx, slotLock),
	}
}

// enter runs the common guard clauses of every mutating entry point.
func (v *Voting) enter() (func(), error) {
	if err := v.access.RequireNotPaused(); err != nil {
		return nil, err
	}
	release, ok, err := v.guard.Enter()
	if err != nil {
		return nil, errors.Wrap(err, "failed to enter")
	}
	if !ok {
		return nil, reverts.New(reverts.Reentrant, "voting")
	}
	return release, nil
}

func voteKey(roundID uint64, voter vf.Address) vf.Bytes32 {
	id := vf.Uint64ToBytes32(roundID)
	return vf.Blake2b(id[:], voter.Bytes())
}

func resultKey(roundID, proposalID uint64) vf.Bytes32 {
	r := vf.Uint64ToBytes32(roundID)
	p := vf.Uint64ToBytes32(proposalID)
	return vf.Blake2b(r[:], p[:])
}

// CurrentRoundID returns the id of the latest round, 0 if none was started.
func (v *Voting) CurrentRoundID() (uint64, error) {
	id, err := v.currentRound.Get()
	if err != nil {
		return 0, errors.Wrap(err, "failed to get current round")
	}
	return id, nil
}

// GetRound returns the round. A round with zero ID does not exist.
func (v *Voting) GetRound(id uint64) (*Round, error) {
	r, err := v.rounds.Get(vf.Uint64ToBytes32(id))
	if err != nil {
		return nil, errors.Wrap(err, "failed to get round")
	}
	return r, nil
}

// CurrentRound returns the latest round.
func (v *Voting) CurrentRound() (*Round, error) {
	id, err := v.CurrentRoundID()
	if err != nil {
		return nil, err
	}
	return v.GetRound(id)
}

// Phase returns the phase of round id at the given time.
func (v *Voting) Phase(id, now uint64) (Phase, error) {
	r, err := v.GetRound(id)
	if err != nil {
		return NoRound, err
	}
	return r.PhaseAt(now), nil
}

// GetVote returns the ballot of voter in round id.
func (v *Voting) GetVote(id uint64, voter vf.Address) (*Vote, error) {
	vote, err := v.votes.Get(voteKey(id, voter))
	if err != nil {
		return nil, errors.Wrap(err, "failed to get vote")
	}
	return vote, nil
}

// GetResult returns the tally of proposal in round id.
func (v *Voting) GetResult(id, proposal uint64) (*ProposalResult, error) {
	res, err := v.results.Get(resultKey(id, proposal))
	if err != nil {
		return nil, errors.Wrap(err, "failed to get result")
	}
	if res.QuadraticScore == nil {
		res.QuadraticScore = new(big.Int)
	}
	return res, nil
}

// Reputation returns the count of successful reveals of addr.
func (v *Voting) Reputation(addr vf.Address) (uint64, error) {
	rep, err := v.reputation.Get(addr)
	if err != nil {
		return 0, errors.Wrap(err, "failed to get reputation")
	}
	return rep, nil
}

// StartRound opens a new round. Admin only.
// A zero baseCredits selects CreditsPerRound.
func (v *Voting) StartRound(sender vf.Address, now, commitDuration, revealDuration, baseCredits uint64, root vf.Bytes32) (uint64, error) {
	release, err := v.enter()
	if err != nil {
		return 0, err
	}
	defer release()

	if err := v.access.Require(sender, access.Admin); err != nil {
		return 0, err
	}
	if commitDuration == 0 || revealDuration == 0 {
		return 0, reverts.New(reverts.InvalidArgument, "durations must be positive")
	}
	if baseCredits == 0 {
		baseCredits = vf.CreditsPerRound
	}
	if baseCredits > vf.CreditsPerRound {
		return 0, reverts.New(reverts.InvalidArgument, "base credits %d exceed %d", baseCredits, vf.CreditsPerRound)
	}
	if root.IsZero() {
		return 0, reverts.New(reverts.InvalidArgument, "empty eligibility root")
	}

	current, err := v.CurrentRound()
	if err != nil {
		return 0, err
	}
	if current.Exists() && !current.Finalized {
		return 0, reverts.New(reverts.RoundNotFinalized, "round %d is still open", current.ID)
	}

	round := &Round{
		ID:              current.ID + 1,
		StartTime:       now,
		CommitEndTime:   now + commitDuration,
		EndTime:         now + commitDuration + revealDuration,
		BaseCredits:     baseCredits,
		EligibilityRoot: root,
	}
	if round.EndTime < now {
		return 0, reverts.New(reverts.InvalidArgument, "durations overflow")
	}
	if err := v.rounds.Set(vf.Uint64ToBytes32(round.ID), round); err != nil {
		return 0, errors.Wrap(err, "failed to set round")
	}
	v.currentRound.Set(round.ID)

	logger.Info("round started", "round", round.ID, "commitEnd", round.CommitEndTime, "end", round.EndTime)
	return round.ID, v.ctx.Emit("RoundStarted", &roundStartedEvent{
		RoundID:         round.ID,
		StartTime:       round.StartTime,
		CommitEndTime:   round.CommitEndTime,
		EndTime:         round.EndTime,
		BaseCredits:     round.BaseCredits,
		EligibilityRoot: round.EligibilityRoot,
	}, vf.Uint64ToBytes32(round.ID))
}

// CommitVote records the sealed ballot of sender in the current round.
func (v *Voting) CommitVote(sender vf.Address, now uint64, commitment vf.Bytes32, proof eligibility.Proof) error {
	release, err := v.enter()
	if err != nil {
		return err
	}
	defer release()

	round, err := v.CurrentRound()
	if err != nil {
		return err
	}
	if phase := round.PhaseAt(now); phase != Commit {
		return reverts.New(reverts.InvalidVotingPhase, "round %d is in %v phase", round.ID, phase)
	}
	if !eligibility.Verify(sender, proof, round.EligibilityRoot) {
		return reverts.New(reverts.NotQualifiedVoter, "%v", sender)
	}
	vote, err := v.GetVote(round.ID, sender)
	if err != nil {
		return err
	}
	if vote.Committed {
		return reverts.New(reverts.AlreadyVoted, "%v committed in round %d", sender, round.ID)
	}

	vote.Commitment = commitment
	vote.Committed = true
	if err := v.votes.Set(voteKey(round.ID, sender), vote); err != nil {
		return errors.Wrap(err, "failed to set vote")
	}
	return v.ctx.Emit("VoteCommitted", &voteCommittedEvent{
		RoundID:    round.ID,
		Voter:      sender,
		Commitment: commitment,
	}, vf.Uint64ToBytes32(round.ID), vf.BytesToBytes32(sender.Bytes()))
}

// RevealVote opens the ballot of sender and tallies it.
func (v *Voting) RevealVote(sender vf.Address, now, proposalID, voteCount uint64, nonce []byte) error {
	release, err := v.enter()
	if err != nil {
		return err
	}
	defer release()

	round, err := v.CurrentRound()
	if err != nil {
		return err
	}
	if phase := round.PhaseAt(now); phase != Reveal {
		return reverts.New(reverts.InvalidVotingPhase, "round %d is in %v phase", round.ID, phase)
	}
	vote, err := v.GetVote(round.ID, sender)
	if err != nil {
		return err
	}
	if vote.Revealed {
		return reverts.New(reverts.AlreadyVoted, "%v revealed in round %d", sender, round.ID)
	}
	if !vote.Committed || ComputeCommitment(proposalID, voteCount, nonce) != vote.Commitment {
		return reverts.New(reverts.InvalidCommitment, "reveal does not match commitment")
	}
	if voteCount == 0 || voteCount > vf.MaxVotesPerProposal {
		return reverts.New(reverts.InvalidVoteCount, "%d", voteCount)
	}
	cost := voteCount * voteCount
	if cost > round.BaseCredits {
		return reverts.New(reverts.InsufficientCredits, "cost %d exceeds %d", cost, round.BaseCredits)
	}

	vote.Revealed = true
	vote.Counted = true
	vote.ProposalID = proposalID
	vote.RevealedCount = voteCount
	vote.Credits = cost
	if err := v.votes.Set(voteKey(round.ID, sender), vote); err != nil {
		return errors.Wrap(err, "failed to set vote")
	}

	res, err := v.GetResult(round.ID, proposalID)
	if err != nil {
		return err
	}
	res.TotalVotes += voteCount
	res.QuadraticScore.Add(res.QuadraticScore, Score(voteCount).ToBig())
	res.UniqueVoters++
	if err := v.results.Set(resultKey(round.ID, proposalID), res); err != nil {
		return errors.Wrap(err, "failed to set result")
	}

	round.TotalCreditsConsumed += cost
	if err := v.rounds.Set(vf.Uint64ToBytes32(round.ID), round); err != nil {
		return errors.Wrap(err, "failed to set round")
	}

	rep, err := v.Reputation(sender)
	if err != nil {
		return err
	}
	if err := v.reputation.Set(sender, rep+1); err != nil {
		return errors.Wrap(err, "failed to set reputation")
	}

	return v.ctx.Emit("VoteRevealed", &voteRevealedEvent{
		RoundID:    round.ID,
		Voter:      sender,
		ProposalID: proposalID,
		VoteCount:  voteCount,
		Credits:    cost,
	}, vf.Uint64ToBytes32(round.ID), vf.BytesToBytes32(sender.Bytes()))
}

// FinalizeRound locks the results of the current round once its reveal window elapsed. Admin only.
func (v *Voting) FinalizeRound(sender vf.Address, now uint64) error {
	release, err := v.enter()
	if err != nil {
		return err
	}
	defer release()

	if err := v.access.Require(sender, access.Admin); err != nil {
		return err
	}
	round, err := v.CurrentRound()
	if err != nil {
		return err
	}
	if !round.Exists() {
		return reverts.New(reverts.InvalidRound, "no round started")
	}
	if round.Finalized {
		return reverts.New(reverts.InvalidRound, "round %d already finalized", round.ID)
	}
	if now <= round.EndTime {
		return reverts.New(reverts.InvalidVotingPhase, "round %d ends at %d", round.ID, round.EndTime)
	}

	round.Finalized = true
	if err := v.rounds.Set(vf.Uint64ToBytes32(round.ID), round); err != nil {
		return errors.Wrap(err, "failed to set round")
	}

	logger.Info("round finalized", "round", round.ID, "credits", round.TotalCreditsConsumed)
	return v.ctx.Emit("RoundFinalized", &roundFinalizedEvent{
		RoundID:              round.ID,
		TotalCreditsConsumed: round.TotalCreditsConsumed,
	}, vf.Uint64ToBytes32(round.ID))
}

func nameToSlot(name string) vf.Bytes32 {
	return vf.BytesToBytes32([]byte(name))
}
