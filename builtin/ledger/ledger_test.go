// Copyright (c) 2026 The VeriFund developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package ledger

import (
	"errors"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adysingh5711/VeriFund/builtin/reverts"
	"github.com/adysingh5711/VeriFund/builtin/solidity"
	"github.com/adysingh5711/VeriFund/lvldb"
	"github.com/adysingh5711/VeriFund/state"
	"github.com/adysingh5711/VeriFund/vf"
)

var (
	alice = vf.BytesToAddress([]byte("alice"))
	bob   = vf.BytesToAddress([]byte("bob"))
	token = vf.BytesToAddress([]byte("token"))
)

func newLedger(t *testing.T) (*Ledger, *[]*solidity.Event) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	var events []*solidity.Event
	l := New(vf.BytesToAddress([]byte("Ledger")), state.NewStater(db, 0).NewState(), func(ev *solidity.Event) {
		events = append(events, ev)
	})
	return l, &events
}

func TestMintAndTransfer(t *testing.T) {
	l, events := newLedger(t)

	require.NoError(t, l.Mint(Native, alice, big.NewInt(1000)))
	require.NoError(t, l.Mint(token, alice, big.NewInt(50)))

	supply, err := l.TotalSupply(Native)
	assert.NoError(t, err)
	assert.Equal(t, big.NewInt(1000), supply)

	require.NoError(t, l.Transfer(Native, alice, bob, big.NewInt(300)))

	bal, _ := l.Balance(Native, alice)
	assert.Equal(t, big.NewInt(700), bal)
	bal, _ = l.Balance(Native, bob)
	assert.Equal(t, big.NewInt(300), bal)

	// tokens are independent
	bal, _ = l.Balance(token, bob)
	assert.Equal(t, 0, bal.Sign())
	bal, _ = l.Balance(token, alice)
	assert.Equal(t, big.NewInt(50), bal)

	require.Len(t, *events, 1)
	assert.Equal(t, "Transfer", (*events)[0].Name)
	assert.Len(t, (*events)[0].Topics, 2)
}

func TestTransferFailures(t *testing.T) {
	l, events := newLedger(t)
	require.NoError(t, l.Mint(Native, alice, big.NewInt(10)))

	err := l.Transfer(Native, alice, bob, big.NewInt(11))
	assert.True(t, errors.Is(err, reverts.InsufficientBalance))

	err = l.Transfer(Native, alice, bob, big.NewInt(-1))
	assert.True(t, errors.Is(err, reverts.InvalidArgument))

	err = l.Transfer(Native, alice, vf.Address{}, big.NewInt(1))
	assert.True(t, errors.Is(err, reverts.InvalidArgument))

	// zero amount is a no-op
	assert.NoError(t, l.Transfer(Native, bob, alice, big.NewInt(0)))
	assert.Empty(t, *events)

	assert.True(t, errors.Is(l.Mint(Native, alice, big.NewInt(-5)), reverts.InvalidArgument))
}
