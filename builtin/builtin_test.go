// Copyright (c) 2026 The VeriFund developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package builtin

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adysingh5711/VeriFund/builtin/access"
	"github.com/adysingh5711/VeriFund/builtin/ledger"
	"github.com/adysingh5711/VeriFund/builtin/solidity"
	"github.com/adysingh5711/VeriFund/lvldb"
	"github.com/adysingh5711/VeriFund/state"
	"github.com/adysingh5711/VeriFund/vf"
)

func TestAddressesDistinct(t *testing.T) {
	seen := map[vf.Address]bool{}
	for _, addr := range []vf.Address{Access.Address, Ledger.Address, Voting.Address, Funding.Address, StakePool, Runtime} {
		assert.False(t, addr.IsZero())
		assert.False(t, seen[addr], "duplicated %v", addr)
		seen[addr] = true
	}
}

func TestBindSharesState(t *testing.T) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	defer db.Close()

	var events []*solidity.Event
	st := state.NewStater(db, 0).NewState()
	set := Bind(st, func(ev *solidity.Event) { events = append(events, ev) })

	admin := vf.BytesToAddress([]byte("admin"))
	_, err = set.Access.Grant(admin, access.Admin)
	require.NoError(t, err)

	// a separately bound instance sees the same storage
	ok, err := Access.WithState(st, nil).HasCapability(admin, access.Admin)
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, set.Ledger.Mint(ledger.Native, admin, big.NewInt(5)))
	bal, err := Ledger.WithState(st, nil).Balance(ledger.Native, admin)
	require.NoError(t, err)
	assert.Equal(t, int64(5), bal.Int64())

	require.NoError(t, set.Access.Pause(admin))
	assert.Equal(t, "Paused", events[len(events)-1].Name)
	assert.Equal(t, Access.Address, events[len(events)-1].Address)
}
