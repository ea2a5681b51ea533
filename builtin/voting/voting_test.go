// Copyright (c) 2026 The VeriFund developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package voting

import (
	"errors"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adysingh5711/VeriFund/builtin/access"
	"github.com/adysingh5711/VeriFund/builtin/eligibility"
	"github.com/adysingh5711/VeriFund/builtin/reverts"
	"github.com/adysingh5711/VeriFund/builtin/solidity"
	"github.com/adysingh5711/VeriFund/lvldb"
	"github.com/adysingh5711/VeriFund/state"
	"github.com/adysingh5711/VeriFund/vf"
)

var (
	admin    = vf.BytesToAddress([]byte("admin"))
	alice    = vf.BytesToAddress([]byte("alice"))
	bob      = vf.BytesToAddress([]byte("bob"))
	mallory  = vf.BytesToAddress([]byte("mallory"))
	nonceABC = []byte("abc")
)

type testEnv struct {
	voting *Voting
	access *access.Access
	tree   *eligibility.Tree
	events []*solidity.Event
}

func newTestEnv(t *testing.T) *testEnv {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	env := &testEnv{}
	sink := func(ev *solidity.Event) { env.events = append(env.events, ev) }
	st := state.NewStater(db, 0).NewState()

	env.access = access.New(vf.BytesToAddress([]byte("Access")), st, sink)
	_, err = env.access.Grant(admin, access.Admin)
	require.NoError(t, err)

	env.voting = New(vf.BytesToAddress([]byte("Voting")), st, env.access, sink)
	env.tree, err = eligibility.NewTree([]vf.Address{alice, bob})
	require.NoError(t, err)
	return env
}

func (env *testEnv) proof(t *testing.T, addr vf.Address) eligibility.Proof {
	p, ok := env.tree.Proof(addr)
	require.True(t, ok)
	return p
}

// startRound opens a round at t=0 with commit and reveal windows of 100.
func (env *testEnv) startRound(t *testing.T) uint64 {
	id, err := env.voting.StartRound(admin, 0, 100, 100, 0, env.tree.Root())
	require.NoError(t, err)
	return id
}

func assertKind(t *testing.T, err error, kind reverts.Kind) {
	t.Helper()
	assert.Error(t, err)
	assert.True(t, errors.Is(err, kind), "expected %v, got %v", kind, err)
}

func TestEndToEndRound(t *testing.T) {
	env := newTestEnv(t)
	id := env.startRound(t)
	assert.Equal(t, uint64(1), id)

	commitment := ComputeCommitment(1, 5, nonceABC)
	require.NoError(t, env.voting.CommitVote(alice, 10, commitment, env.proof(t, alice)))
	require.NoError(t, env.voting.RevealVote(alice, 150, 1, 5, nonceABC))

	res, err := env.voting.GetResult(id, 1)
	require.NoError(t, err)
	assert.Equal(t, uint64(5), res.TotalVotes)
	assert.Equal(t, uint64(1), res.UniqueVoters)
	assert.Equal(t, Score(5).ToBig(), res.QuadraticScore)

	err = env.voting.RevealVote(alice, 250, 1, 5, nonceABC)
	assertKind(t, err, reverts.InvalidVotingPhase)

	vote, err := env.voting.GetVote(id, alice)
	require.NoError(t, err)
	assert.True(t, vote.Revealed)
	assert.Equal(t, uint64(25), vote.Credits)

	round, err := env.voting.GetRound(id)
	require.NoError(t, err)
	assert.Equal(t, uint64(25), round.TotalCreditsConsumed)

	rep, err := env.voting.Reputation(alice)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), rep)

	var names []string
	for _, ev := range env.events {
		names = append(names, ev.Name)
	}
	assert.Equal(t, []string{"RoundStarted", "VoteCommitted", "VoteRevealed"}, names)
}

func TestPhases(t *testing.T) {
	env := newTestEnv(t)

	phase, err := env.voting.Phase(1, 0)
	require.NoError(t, err)
	assert.Equal(t, NoRound, phase)

	id := env.startRound(t)
	for _, tt := range []struct {
		now   uint64
		phase Phase
	}{
		{0, Commit},
		{99, Commit},
		{100, Reveal},
		{199, Reveal},
		{200, Closed},
	} {
		phase, err := env.voting.Phase(id, tt.now)
		require.NoError(t, err)
		assert.Equal(t, tt.phase, phase, "now=%d", tt.now)
	}

	require.NoError(t, env.voting.FinalizeRound(admin, 201))
	phase, _ = env.voting.Phase(id, 201)
	assert.Equal(t, Finalized, phase)
	assert.Equal(t, "finalized", phase.String())
}

func TestCommitOncePerVoter(t *testing.T) {
	env := newTestEnv(t)
	env.startRound(t)

	c := ComputeCommitment(1, 3, nonceABC)
	require.NoError(t, env.voting.CommitVote(alice, 1, c, env.proof(t, alice)))
	err := env.voting.CommitVote(alice, 2, ComputeCommitment(2, 3, nonceABC), env.proof(t, alice))
	assertKind(t, err, reverts.AlreadyVoted)

	// the first commitment stands
	require.NoError(t, env.voting.RevealVote(alice, 100, 1, 3, nonceABC))
	err = env.voting.RevealVote(alice, 101, 1, 3, nonceABC)
	assertKind(t, err, reverts.AlreadyVoted)
}

func TestCommitRequiresEligibilityAndPhase(t *testing.T) {
	env := newTestEnv(t)
	c := ComputeCommitment(1, 1, nonceABC)

	err := env.voting.CommitVote(alice, 0, c, env.proof(t, alice))
	assertKind(t, err, reverts.InvalidVotingPhase)

	env.startRound(t)
	err = env.voting.CommitVote(mallory, 1, c, env.proof(t, alice))
	assertKind(t, err, reverts.NotQualifiedVoter)

	err = env.voting.CommitVote(alice, 100, c, env.proof(t, alice))
	assertKind(t, err, reverts.InvalidVotingPhase)
}

func TestRevealRules(t *testing.T) {
	for _, tt := range []struct {
		name      string
		voteCount uint64
		kind      reverts.Kind
	}{
		{"zero", 0, reverts.InvalidVoteCount},
		{"eleven", 11, reverts.InvalidVoteCount},
		{"thousand", 1000, reverts.InvalidVoteCount},
		{"ten", 10, ""},
		{"one", 1, ""},
	} {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			env.startRound(t)
			require.NoError(t, env.voting.CommitVote(bob, 5, ComputeCommitment(7, tt.voteCount, nonceABC), env.proof(t, bob)))

			err := env.voting.RevealVote(bob, 120, 7, tt.voteCount, nonceABC)
			if tt.kind == "" {
				require.NoError(t, err)
				vote, _ := env.voting.GetVote(1, bob)
				assert.LessOrEqual(t, vote.RevealedCount*vote.RevealedCount, vf.CreditsPerRound)
				return
			}
			assertKind(t, err, tt.kind)
		})
	}
}

func TestRevealMismatch(t *testing.T) {
	env := newTestEnv(t)
	env.startRound(t)
	require.NoError(t, env.voting.CommitVote(alice, 5, ComputeCommitment(1, 4, nonceABC), env.proof(t, alice)))

	assertKind(t, env.voting.RevealVote(alice, 120, 1, 5, nonceABC), reverts.InvalidCommitment)
	assertKind(t, env.voting.RevealVote(alice, 120, 2, 4, nonceABC), reverts.InvalidCommitment)
	assertKind(t, env.voting.RevealVote(alice, 120, 1, 4, []byte("abd")), reverts.InvalidCommitment)
	// never committed
	assertKind(t, env.voting.RevealVote(bob, 120, 1, 4, nonceABC), reverts.InvalidCommitment)

	require.NoError(t, env.voting.RevealVote(alice, 120, 1, 4, nonceABC))
}

func TestRevealRespectsRoundCredits(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.voting.StartRound(admin, 0, 10, 10, 50, env.tree.Root())
	require.NoError(t, err)

	require.NoError(t, env.voting.CommitVote(alice, 1, ComputeCommitment(1, 8, nonceABC), env.proof(t, alice)))
	assertKind(t, env.voting.RevealVote(alice, 12, 1, 8, nonceABC), reverts.InsufficientCredits)
}

func TestStartRoundRules(t *testing.T) {
	env := newTestEnv(t)
	root := env.tree.Root()

	_, err := env.voting.StartRound(alice, 0, 100, 100, 0, root)
	assertKind(t, err, reverts.Unauthorized)

	_, err = env.voting.StartRound(admin, 0, 0, 100, 0, root)
	assertKind(t, err, reverts.InvalidArgument)

	_, err = env.voting.StartRound(admin, 0, 100, 100, 101, root)
	assertKind(t, err, reverts.InvalidArgument)

	_, err = env.voting.StartRound(admin, 0, 100, 100, 0, vf.Bytes32{})
	assertKind(t, err, reverts.InvalidArgument)

	id := env.startRound(t)
	_, err = env.voting.StartRound(admin, 300, 100, 100, 0, root)
	assertKind(t, err, reverts.RoundNotFinalized)

	require.NoError(t, env.voting.FinalizeRound(admin, 300))
	next, err := env.voting.StartRound(admin, 300, 100, 100, 0, root)
	require.NoError(t, err)
	assert.Equal(t, id+1, next)

	round, _ := env.voting.GetRound(next)
	assert.Equal(t, uint64(300), round.StartTime)
	assert.Equal(t, uint64(400), round.CommitEndTime)
	assert.Equal(t, uint64(500), round.EndTime)
	assert.Equal(t, vf.CreditsPerRound, round.BaseCredits)
}

func TestFinalizeRules(t *testing.T) {
	env := newTestEnv(t)
	assertKind(t, env.voting.FinalizeRound(admin, 10), reverts.InvalidRound)

	env.startRound(t)
	assertKind(t, env.voting.FinalizeRound(alice, 300), reverts.Unauthorized)
	assertKind(t, env.voting.FinalizeRound(admin, 200), reverts.InvalidVotingPhase)

	require.NoError(t, env.voting.FinalizeRound(admin, 201))
	assertKind(t, env.voting.FinalizeRound(admin, 202), reverts.InvalidRound)

	last := env.events[len(env.events)-1]
	assert.Equal(t, "RoundFinalized", last.Name)
}

func TestPausedRejectsMutations(t *testing.T) {
	env := newTestEnv(t)
	env.startRound(t)
	require.NoError(t, env.access.Pause(admin))

	err := env.voting.CommitVote(alice, 1, ComputeCommitment(1, 1, nonceABC), env.proof(t, alice))
	assertKind(t, err, reverts.Paused)

	// queries stay available
	_, err = env.voting.CurrentRound()
	assert.NoError(t, err)

	require.NoError(t, env.access.Unpause(admin))
	assert.NoError(t, env.voting.CommitVote(alice, 1, ComputeCommitment(1, 1, nonceABC), env.proof(t, alice)))
}

func TestReentrancyIsRejected(t *testing.T) {
	env := newTestEnv(t)
	release, err := env.voting.enter()
	require.NoError(t, err)

	_, err = env.voting.StartRound(admin, 0, 1, 1, 0, env.tree.Root())
	assertKind(t, err, reverts.Reentrant)

	release()
	env.startRound(t)
}

func TestMultipleVotersAccumulate(t *testing.T) {
	env := newTestEnv(t)
	id := env.startRound(t)

	require.NoError(t, env.voting.CommitVote(alice, 1, ComputeCommitment(3, 4, []byte("a")), env.proof(t, alice)))
	require.NoError(t, env.voting.CommitVote(bob, 2, ComputeCommitment(3, 9, []byte("b")), env.proof(t, bob)))
	require.NoError(t, env.voting.RevealVote(alice, 100, 3, 4, []byte("a")))
	require.NoError(t, env.voting.RevealVote(bob, 101, 3, 9, []byte("b")))

	res, _ := env.voting.GetResult(id, 3)
	assert.Equal(t, uint64(13), res.TotalVotes)
	assert.Equal(t, uint64(2), res.UniqueVoters)
	want := new(big.Int).Add(Score(4).ToBig(), Score(9).ToBig())
	assert.Equal(t, want, res.QuadraticScore)

	// 4 and 9 are perfect squares, so the scores are exact
	assert.Equal(t, uint64(2_000_000_000+3_000_000_000), res.QuadraticScore.Uint64())

	round, _ := env.voting.GetRound(id)
	assert.Equal(t, uint64(16+81), round.TotalCreditsConsumed)
}
