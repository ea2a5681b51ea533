// Copyright (c) 2026 The VeriFund developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package client

import (
	"context"
	"crypto/ecdsa"
	"math/big"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/adysingh5711/VeriFund/api"
	"github.com/adysingh5711/VeriFund/builtin/voting"
	"github.com/adysingh5711/VeriFund/eventdb"
	"github.com/adysingh5711/VeriFund/genesis"
	"github.com/adysingh5711/VeriFund/lvldb"
	"github.com/adysingh5711/VeriFund/sequencer"
	"github.com/adysingh5711/VeriFund/state"
	"github.com/adysingh5711/VeriFund/tx"
	"github.com/adysingh5711/VeriFund/vf"
)

const now = 1767225600 + 500

func newTestClient(t *testing.T) *Client {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	edb, err := eventdb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { edb.Close() })

	stater := state.NewStater(db, 0)
	_, err = genesis.Apply(stater, genesis.DevConfig())
	require.NoError(t, err)
	seq, err := sequencer.New(stater, edb, sequencer.Options{Clock: func() uint64 { return now }})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	var eg errgroup.Group
	eg.Go(func() error { return seq.Run(ctx) })

	handler, closeSubs := api.New(seq, edb, api.Options{AllowedOrigins: "*"})
	ts := httptest.NewServer(handler)
	t.Cleanup(func() {
		closeSubs()
		ts.Close()
		cancel()
		assert.NoError(t, eg.Wait())
	})
	return New(ts.URL + "/")
}

func sendTx(t *testing.T, c *Client, key *ecdsa.PrivateKey, addr vf.Address, method string, args any) *tx.Receipt {
	nonce, err := c.Nonce(addr)
	require.NoError(t, err)
	receipt, err := c.SendTransaction(tx.MustSign(tx.NewBuilder(method).Nonce(nonce).Args(args).MustBuild(), key))
	require.NoError(t, err)
	require.False(t, receipt.Reverted, receipt.Error)
	return receipt
}

func TestClient(t *testing.T) {
	c := newTestClient(t)
	accs := genesis.DevAccounts()
	admin, reviewer := accs[0], accs[3]

	head, err := c.Head()
	require.NoError(t, err)
	assert.Equal(t, uint64(0), head.Seq)
	assert.Equal(t, uint64(now), head.Now)

	_, err = c.CurrentRound()
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = c.Project(1)
	assert.ErrorIs(t, err, ErrNotFound)

	sendTx(t, c, admin.PrivateKey, admin.Address, tx.MethodStartRound, &tx.StartRoundArgs{
		CommitDuration:  100,
		RevealDuration:  100,
		EligibilityRoot: vf.Blake2b([]byte("root")),
	})
	round, err := c.CurrentRound()
	require.NoError(t, err)
	assert.Equal(t, uint64(1), round.ID)
	assert.Equal(t, voting.Commit, round.Phase)
	assert.Equal(t, uint64(now+100), round.CommitEndTime)

	res, err := c.Result(1, 7)
	require.NoError(t, err)
	assert.Equal(t, "0", res.QuadraticScore)

	before, err := c.Balance(vf.Address{}, reviewer.Address)
	require.NoError(t, err)
	assert.Equal(t, "1000000000000000000000000000", before)

	sendTx(t, c, reviewer.PrivateKey, reviewer.Address, tx.MethodStakeAsReviewer, &tx.StakeArgs{Amount: big.NewInt(1e18)})
	after, err := c.Balance(vf.Address{}, reviewer.Address)
	require.NoError(t, err)
	assert.Equal(t, "999999999000000000000000000", after)

	reviewers, err := c.Reviewers()
	require.NoError(t, err)
	require.Len(t, reviewers, 1)
	assert.Equal(t, reviewer.Address, reviewers[0].Address)
	assert.True(t, reviewers[0].Active)

	nonce, err := c.Nonce(reviewer.Address)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), nonce)

	// rejected transactions surface as non-200 errors
	_, err = c.SendTransaction(tx.MustSign(tx.NewBuilder(tx.MethodPause).Nonce(0).MustBuild(), reviewer.PrivateKey))
	assert.ErrorIs(t, err, ErrNot200Status)

	events, err := c.FilterEvents(&eventdb.Filter{Name: "ReviewerStaked"})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, reviewer.Address, events[0].TxOrigin)

	receipt, err := c.Receipt(events[0].TxID)
	require.NoError(t, err)
	assert.Equal(t, tx.MethodStakeAsReviewer, receipt.Method)
}

func TestSubscribeEvents(t *testing.T) {
	c := newTestClient(t)
	accs := genesis.DevAccounts()

	sub, err := c.SubscribeEvents(&EventQuery{Pos: 1, Name: "Transfer"})
	require.NoError(t, err)
	defer sub.Close()

	for i := range 2 {
		sendTx(t, c, accs[4].PrivateKey, accs[4].Address, tx.MethodTransfer, &tx.TransferArgs{To: accs[5].Address, Amount: big.NewInt(int64(i + 1))})
	}

	timeout := time.After(5 * time.Second)
	for i := range 2 {
		select {
		case ev := <-sub.Events():
			require.NoError(t, ev.Error)
			assert.Equal(t, uint64(i+1), ev.Event.Seq)
			assert.Equal(t, "Transfer", ev.Event.Name)
		case <-timeout:
			t.Fatal("timeout waiting for events")
		}
	}
}
